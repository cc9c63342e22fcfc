package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType identifies the kind of business event that produced a batch.
type DocumentType string

const (
	DocSalesInvoice    DocumentType = "SALES_INVOICE"
	DocReceipt         DocumentType = "RECEIPT"
	DocStockAdjustment DocumentType = "STOCK_ADJUSTMENT"
	DocJournalEntry    DocumentType = "JOURNAL_ENTRY"
)

// DocumentStatus is the lifecycle state of a commercial document.
// Draft -> Approved is the only posting transition; Approved -> Voided posts
// the reversing batch. Both are guarded by conditional updates so a document
// can never be posted twice.
type DocumentStatus string

const (
	StatusDraft    DocumentStatus = "DRAFT"
	StatusApproved DocumentStatus = "APPROVED"
	StatusVoided   DocumentStatus = "VOIDED"
)

// Document is the contract every posting source exposes to the rule set.
type Document interface {
	DocType() DocumentType
	DocID() string
	Company() string
	Reference() string
	Date() time.Time
	Currency() string
	DocStatus() DocumentStatus
}

// InvoiceLineItem is one product line of a sales invoice. Account id fields
// are overrides; empty string means "not configured at this level".
type InvoiceLineItem struct {
	LineItemID  string          `json:"lineItemID"`
	ProductID   string          `json:"productID"`
	ProductName string          `json:"productName"`
	IsService   bool            `json:"isService"` // Service lines carry no COGS/inventory postings
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	AverageCost decimal.Decimal `json:"averageCost"`
	// Item-level account overrides.
	COGSAccountID      string `json:"cogsAccountID"`
	InventoryAccountID string `json:"inventoryAccountID"`
	// Category-level defaults, denormalised onto the line at creation time.
	CategoryCOGSAccountID      string `json:"categoryCogsAccountID"`
	CategoryInventoryAccountID string `json:"categoryInventoryAccountID"`
}

// SalesInvoice is the richest posting source: per-line cost postings plus
// receivable, income, tax, withholding and discount entries.
type SalesInvoice struct {
	InvoiceID       string          `json:"invoiceID"`
	CompanyID       string          `json:"companyID"`
	CustomerID      string          `json:"customerID"`
	ReferenceNumber string          `json:"referenceNumber"`
	Status          DocumentStatus  `json:"status"`
	InvoiceDate     time.Time       `json:"invoiceDate"`
	CurrencyCode    string          `json:"currencyCode"`
	Subtotal        decimal.Decimal `json:"subtotal"`       // Pre-tax, pre-discount
	TaxAmount       decimal.Decimal `json:"taxAmount"`      // >= 0
	DiscountAmount  decimal.Decimal `json:"discountAmount"` // >= 0
	WHTAmount       decimal.Decimal `json:"whtAmount"`      // >= 0
	PaidAmount      decimal.Decimal `json:"paidAmount"`     // Paid at posting time
	LineItems       []InvoiceLineItem

	// Customer-level default, applies to the receivable role only.
	CustomerReceivableAccountID string `json:"customerReceivableAccountID"`

	// Document-level fallback accounts.
	ReceivableAccountID string `json:"receivableAccountID"`
	IncomeAccountID     string `json:"incomeAccountID"`
	CashAccountID       string `json:"cashAccountID"`
	TaxAccountID        string `json:"taxAccountID"`
	WHTAccountID        string `json:"whtAccountID"`
	DiscountAccountID   string `json:"discountAccountID"`
	AuditFields
}

func (inv SalesInvoice) DocType() DocumentType     { return DocSalesInvoice }
func (inv SalesInvoice) DocID() string             { return inv.InvoiceID }
func (inv SalesInvoice) Company() string           { return inv.CompanyID }
func (inv SalesInvoice) Reference() string         { return inv.ReferenceNumber }
func (inv SalesInvoice) Date() time.Time           { return inv.InvoiceDate }
func (inv SalesInvoice) Currency() string          { return inv.CurrencyCode }
func (inv SalesInvoice) DocStatus() DocumentStatus { return inv.Status }

// Total is the tax-inclusive amount the customer owes:
// subtotal - discount + tax - withholding.
func (inv SalesInvoice) Total() decimal.Decimal {
	return inv.Subtotal.Sub(inv.DiscountAmount).Add(inv.TaxAmount).Sub(inv.WHTAmount)
}

// BalanceAmount is the receivable at posting time: total minus what was
// already paid. Posting the full total regardless of payments double-counts
// the settled portion.
func (inv SalesInvoice) BalanceAmount() decimal.Decimal {
	return inv.Total().Sub(inv.PaidAmount)
}

// Receipt applies a customer payment: cash in, receivable out.
type Receipt struct {
	ReceiptID       string          `json:"receiptID"`
	CompanyID       string          `json:"companyID"`
	CustomerID      string          `json:"customerID"`
	ReferenceNumber string          `json:"referenceNumber"`
	Status          DocumentStatus  `json:"status"`
	ReceiptDate     time.Time       `json:"receiptDate"`
	CurrencyCode    string          `json:"currencyCode"`
	Amount          decimal.Decimal `json:"amount"`    // Cash received
	WHTAmount       decimal.Decimal `json:"whtAmount"` // Withheld by the customer, >= 0

	CustomerReceivableAccountID string `json:"customerReceivableAccountID"`
	ReceivableAccountID         string `json:"receivableAccountID"`
	CashAccountID               string `json:"cashAccountID"`
	WHTAccountID                string `json:"whtAccountID"`
	AuditFields
}

func (r Receipt) DocType() DocumentType     { return DocReceipt }
func (r Receipt) DocID() string             { return r.ReceiptID }
func (r Receipt) Company() string           { return r.CompanyID }
func (r Receipt) Reference() string         { return r.ReferenceNumber }
func (r Receipt) Date() time.Time           { return r.ReceiptDate }
func (r Receipt) Currency() string          { return r.CurrencyCode }
func (r Receipt) DocStatus() DocumentStatus { return r.Status }

// ReceivableCleared is the receivable reduction: cash received plus the
// amount the customer withheld.
func (r Receipt) ReceivableCleared() decimal.Decimal {
	return r.Amount.Add(r.WHTAmount)
}

// AdjustmentLine is one product line of a stock adjustment. QuantityDelta is
// positive for stock found/added and negative for stock lost/removed.
type AdjustmentLine struct {
	LineID        string          `json:"lineID"`
	ProductID     string          `json:"productID"`
	ProductName   string          `json:"productName"`
	QuantityDelta decimal.Decimal `json:"quantityDelta"`
	UnitCost      decimal.Decimal `json:"unitCost"`

	InventoryAccountID         string `json:"inventoryAccountID"`
	CategoryInventoryAccountID string `json:"categoryInventoryAccountID"`
}

// StockAdjustment posts inventory gains/losses against an adjustment account.
type StockAdjustment struct {
	AdjustmentID        string         `json:"adjustmentID"`
	CompanyID           string         `json:"companyID"`
	ReferenceNumber     string         `json:"referenceNumber"`
	Status              DocumentStatus `json:"status"`
	AdjustmentDate      time.Time      `json:"adjustmentDate"`
	CurrencyCode        string         `json:"currencyCode"`
	Reason              string         `json:"reason"`
	Lines               []AdjustmentLine
	AdjustmentAccountID string `json:"adjustmentAccountID"` // Document-level gain/loss account
	AuditFields
}

func (a StockAdjustment) DocType() DocumentType     { return DocStockAdjustment }
func (a StockAdjustment) DocID() string             { return a.AdjustmentID }
func (a StockAdjustment) Company() string           { return a.CompanyID }
func (a StockAdjustment) Reference() string         { return a.ReferenceNumber }
func (a StockAdjustment) Date() time.Time           { return a.AdjustmentDate }
func (a StockAdjustment) Currency() string          { return a.CurrencyCode }
func (a StockAdjustment) DocStatus() DocumentStatus { return a.Status }

// ManualJournal is a free-form journal entry: the caller picks the accounts
// and natures, the engine only enforces balance.
type ManualJournal struct {
	ReferenceNumber string              `json:"referenceNumber"`
	JournalDate     time.Time           `json:"journalDate"`
	CurrencyCode    string              `json:"currencyCode"`
	Description     string              `json:"description"`
	Lines           []ManualJournalLine `json:"lines"`
}

// ManualJournalLine is one caller-specified line of a manual journal entry.
type ManualJournalLine struct {
	AccountID string          `json:"accountID"`
	Nature    EntryNature     `json:"nature"`
	Amount    decimal.Decimal `json:"amount"`
	Notes     string          `json:"notes"`
}

// LineContext carries the account override hierarchy for one role resolution.
// The first non-empty id wins; Line labels the document line for error
// messages.
type LineContext struct {
	Line              string
	ItemAccountID     string
	CategoryAccountID string
	CustomerAccountID string // Considered for receivable-family roles only
	DocumentAccountID string
}
