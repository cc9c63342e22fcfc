package mapping

import (
	"github.com/poslite/poslite_backend/internal/core/domain"
	"github.com/poslite/poslite_backend/internal/models"
)

// ToModelPostingBatch converts a domain PostingBatch to a model PostingBatch
func ToModelPostingBatch(d domain.PostingBatch) models.PostingBatch {
	return models.PostingBatch{
		BatchID:          d.BatchID,
		CompanyID:        d.CompanyID,
		DocumentID:       d.DocumentID,
		ReferenceNumber:  d.ReferenceNumber,
		TransactionType:  string(d.TransactionType),
		TransactionDate:  d.TransactionDate,
		CurrencyCode:     d.CurrencyCode,
		ExchangeRate:     d.ExchangeRate,
		Description:      d.Description,
		OriginalBatchID:  d.OriginalBatchID,
		ReversingBatchID: d.ReversingBatchID,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPostingBatch converts a model PostingBatch to a domain PostingBatch
func ToDomainPostingBatch(m models.PostingBatch) domain.PostingBatch {
	return domain.PostingBatch{
		BatchID:          m.BatchID,
		CompanyID:        m.CompanyID,
		DocumentID:       m.DocumentID,
		ReferenceNumber:  m.ReferenceNumber,
		TransactionType:  domain.DocumentType(m.TransactionType),
		TransactionDate:  m.TransactionDate,
		CurrencyCode:     m.CurrencyCode,
		ExchangeRate:     m.ExchangeRate,
		Description:      m.Description,
		OriginalBatchID:  m.OriginalBatchID,
		ReversingBatchID: m.ReversingBatchID,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:                d.EntryID,
		BatchID:                d.BatchID,
		CompanyID:              d.CompanyID,
		AccountID:              d.AccountID,
		AccountCode:            d.AccountCode,
		AccountName:            d.AccountName,
		AccountRole:            string(d.AccountRole),
		AccountNature:          string(d.Nature),
		Amount:                 d.Amount,
		ExchangeRate:           d.ExchangeRate,
		EquivalentDebitAmount:  d.EquivalentDebitAmount,
		EquivalentCreditAmount: d.EquivalentCreditAmount,
		ReferenceNumber:        d.ReferenceNumber,
		TransactionType:        string(d.TransactionType),
		TransactionDate:        d.TransactionDate,
		Notes:                  d.Notes,
		AuditFields:            ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:                m.EntryID,
		BatchID:                m.BatchID,
		CompanyID:              m.CompanyID,
		AccountID:              m.AccountID,
		AccountCode:            m.AccountCode,
		AccountName:            m.AccountName,
		AccountRole:            domain.AccountRole(m.AccountRole),
		Nature:                 domain.EntryNature(m.AccountNature),
		Amount:                 m.Amount,
		ExchangeRate:           m.ExchangeRate,
		EquivalentDebitAmount:  m.EquivalentDebitAmount,
		EquivalentCreditAmount: m.EquivalentCreditAmount,
		ReferenceNumber:        m.ReferenceNumber,
		TransactionType:        domain.DocumentType(m.TransactionType),
		TransactionDate:        m.TransactionDate,
		Notes:                  m.Notes,
		AuditFields:            ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLedgerEntrySlice converts a slice of model LedgerEntries to domain
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}
