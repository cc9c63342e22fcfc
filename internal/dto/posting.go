package dto

import (
	"time"

	"github.com/poslite/poslite_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ManualJournalLineRequest is one line of a manual journal request.
type ManualJournalLineRequest struct {
	AccountID string             `json:"accountID" binding:"required"`
	Nature    domain.EntryNature `json:"nature" binding:"required,oneof=debit credit"`
	Amount    decimal.Decimal    `json:"amount" binding:"required"`
	Notes     string             `json:"notes"`
}

// CreateManualJournalRequest posts a caller-supplied journal entry.
type CreateManualJournalRequest struct {
	ReferenceNumber string                     `json:"referenceNumber" binding:"required"`
	JournalDate     time.Time                  `json:"journalDate"`
	CurrencyCode    string                     `json:"currencyCode" binding:"required,len=3"`
	Description     string                     `json:"description"`
	Lines           []ManualJournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// ToDomain converts the request to a domain manual journal.
func (r CreateManualJournalRequest) ToDomain() domain.ManualJournal {
	lines := make([]domain.ManualJournalLine, 0, len(r.Lines))
	for _, line := range r.Lines {
		lines = append(lines, domain.ManualJournalLine{
			AccountID: line.AccountID,
			Nature:    line.Nature,
			Amount:    line.Amount,
			Notes:     line.Notes,
		})
	}
	journalDate := r.JournalDate
	if journalDate.IsZero() {
		journalDate = time.Now()
	}
	return domain.ManualJournal{
		ReferenceNumber: r.ReferenceNumber,
		JournalDate:     journalDate,
		CurrencyCode:    r.CurrencyCode,
		Description:     r.Description,
		Lines:           lines,
	}
}

// PostingBatchResponse defines the data returned for a posting batch.
type PostingBatchResponse struct {
	BatchID          string              `json:"batchID"`
	CompanyID        string              `json:"companyID"`
	DocumentID       string              `json:"documentID"`
	ReferenceNumber  string              `json:"referenceNumber"`
	TransactionType  domain.DocumentType `json:"transactionType"`
	TransactionDate  time.Time           `json:"transactionDate"`
	CurrencyCode     string              `json:"currencyCode"`
	ExchangeRate     decimal.Decimal     `json:"exchangeRate"`
	Description      string              `json:"description,omitempty"`
	OriginalBatchID  *string             `json:"originalBatchID,omitempty"`
	ReversingBatchID *string             `json:"reversingBatchID,omitempty"`
	CreatedAt        time.Time           `json:"createdAt"`
	CreatedBy        string              `json:"createdBy"`
}

// ToPostingBatchResponse converts a domain batch to its response DTO.
func ToPostingBatchResponse(batch *domain.PostingBatch) PostingBatchResponse {
	return PostingBatchResponse{
		BatchID:          batch.BatchID,
		CompanyID:        batch.CompanyID,
		DocumentID:       batch.DocumentID,
		ReferenceNumber:  batch.ReferenceNumber,
		TransactionType:  batch.TransactionType,
		TransactionDate:  batch.TransactionDate,
		CurrencyCode:     batch.CurrencyCode,
		ExchangeRate:     batch.ExchangeRate,
		Description:      batch.Description,
		OriginalBatchID:  batch.OriginalBatchID,
		ReversingBatchID: batch.ReversingBatchID,
		CreatedAt:        batch.CreatedAt,
		CreatedBy:        batch.CreatedBy,
	}
}

// LedgerEntryResponse defines the data returned for one ledger entry.
type LedgerEntryResponse struct {
	EntryID                string              `json:"entryID"`
	BatchID                string              `json:"batchID"`
	AccountID              string              `json:"accountID"`
	AccountCode            string              `json:"accountCode"`
	AccountName            string              `json:"accountName"`
	AccountRole            domain.AccountRole  `json:"accountRole,omitempty"`
	Nature                 domain.EntryNature  `json:"nature"`
	Amount                 decimal.Decimal     `json:"amount"`
	ExchangeRate           decimal.Decimal     `json:"exchangeRate"`
	EquivalentDebitAmount  decimal.Decimal     `json:"equivalentDebitAmount"`
	EquivalentCreditAmount decimal.Decimal     `json:"equivalentCreditAmount"`
	ReferenceNumber        string              `json:"referenceNumber"`
	TransactionType        domain.DocumentType `json:"transactionType"`
	TransactionDate        time.Time           `json:"transactionDate"`
	Notes                  string              `json:"notes,omitempty"`
}

// ToLedgerEntryResponse converts a domain entry to its response DTO.
func ToLedgerEntryResponse(entry *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:                entry.EntryID,
		BatchID:                entry.BatchID,
		AccountID:              entry.AccountID,
		AccountCode:            entry.AccountCode,
		AccountName:            entry.AccountName,
		AccountRole:            entry.AccountRole,
		Nature:                 entry.Nature,
		Amount:                 entry.Amount,
		ExchangeRate:           entry.ExchangeRate,
		EquivalentDebitAmount:  entry.EquivalentDebitAmount,
		EquivalentCreditAmount: entry.EquivalentCreditAmount,
		ReferenceNumber:        entry.ReferenceNumber,
		TransactionType:        entry.TransactionType,
		TransactionDate:        entry.TransactionDate,
		Notes:                  entry.Notes,
	}
}

// ToLedgerEntryResponseSlice converts a slice of domain entries.
func ToLedgerEntryResponseSlice(entries []domain.LedgerEntry) []LedgerEntryResponse {
	responses := make([]LedgerEntryResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, ToLedgerEntryResponse(&entries[i]))
	}
	return responses
}

// ListLedgerEntriesResponse is a paginated entry list.
type ListLedgerEntriesResponse struct {
	Entries   []LedgerEntryResponse `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// BatchVerificationResponse is the result of a single-batch balance check.
type BatchVerificationResponse struct {
	BatchID     string          `json:"batchID"`
	Balanced    bool            `json:"balanced"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Delta       decimal.Decimal `json:"delta"`
}

// ToBatchVerificationResponse converts a domain verification result.
func ToBatchVerificationResponse(v *domain.BatchVerification) BatchVerificationResponse {
	return BatchVerificationResponse{
		BatchID:     v.BatchID,
		Balanced:    v.Balanced,
		TotalDebit:  v.TotalDebit,
		TotalCredit: v.TotalCredit,
		Delta:       v.Delta,
	}
}

// AuditFindingResponse is one inconsistency found by the offline scan.
type AuditFindingResponse struct {
	BatchID         string                 `json:"batchID,omitempty"`
	ReferenceNumber string                 `json:"referenceNumber"`
	CheckType       string                 `json:"checkType"`
	Severity        domain.FindingSeverity `json:"severity"`
	Detail          string                 `json:"detail"`
	TotalDebit      decimal.Decimal        `json:"totalDebit"`
	TotalCredit     decimal.Decimal        `json:"totalCredit"`
	Delta           decimal.Decimal        `json:"delta"`
	DetectedAt      time.Time              `json:"detectedAt"`
}

// ToAuditFindingResponseSlice converts domain findings to response DTOs.
func ToAuditFindingResponseSlice(findings []domain.AuditFinding) []AuditFindingResponse {
	responses := make([]AuditFindingResponse, 0, len(findings))
	for _, f := range findings {
		responses = append(responses, AuditFindingResponse{
			BatchID:         f.BatchID,
			ReferenceNumber: f.ReferenceNumber,
			CheckType:       f.CheckType,
			Severity:        f.Severity,
			Detail:          f.Detail,
			TotalDebit:      f.TotalDebit,
			TotalCredit:     f.TotalCredit,
			Delta:           f.Delta,
			DetectedAt:      f.DetectedAt,
		})
	}
	return responses
}
