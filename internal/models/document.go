package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesInvoice is the sales_invoices table row.
type SalesInvoice struct {
	InvoiceID       string          `db:"invoice_id"`
	CompanyID       string          `db:"company_id"`
	CustomerID      string          `db:"customer_id"`
	ReferenceNumber string          `db:"reference_number"`
	Status          string          `db:"status"`
	InvoiceDate     time.Time       `db:"invoice_date"`
	CurrencyCode    string          `db:"currency_code"`
	Subtotal        decimal.Decimal `db:"subtotal"`
	TaxAmount       decimal.Decimal `db:"tax_amount"`
	DiscountAmount  decimal.Decimal `db:"discount_amount"`
	WHTAmount       decimal.Decimal `db:"wht_amount"`
	PaidAmount      decimal.Decimal `db:"paid_amount"`

	CustomerReceivableAccountID string `db:"customer_receivable_account_id"`
	ReceivableAccountID         string `db:"receivable_account_id"`
	IncomeAccountID             string `db:"income_account_id"`
	CashAccountID               string `db:"cash_account_id"`
	TaxAccountID                string `db:"tax_account_id"`
	WHTAccountID                string `db:"wht_account_id"`
	DiscountAccountID           string `db:"discount_account_id"`
	AuditFields
}

// InvoiceLineItem is the sales_invoice_lines table row.
type InvoiceLineItem struct {
	LineItemID  string          `db:"line_item_id"`
	InvoiceID   string          `db:"invoice_id"`
	ProductID   string          `db:"product_id"`
	ProductName string          `db:"product_name"`
	IsService   bool            `db:"is_service"`
	Quantity    decimal.Decimal `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	AverageCost decimal.Decimal `db:"average_cost"`

	COGSAccountID              string `db:"cogs_account_id"`
	InventoryAccountID         string `db:"inventory_account_id"`
	CategoryCOGSAccountID      string `db:"category_cogs_account_id"`
	CategoryInventoryAccountID string `db:"category_inventory_account_id"`
}

// Receipt is the receipts table row.
type Receipt struct {
	ReceiptID       string          `db:"receipt_id"`
	CompanyID       string          `db:"company_id"`
	CustomerID      string          `db:"customer_id"`
	ReferenceNumber string          `db:"reference_number"`
	Status          string          `db:"status"`
	ReceiptDate     time.Time       `db:"receipt_date"`
	CurrencyCode    string          `db:"currency_code"`
	Amount          decimal.Decimal `db:"amount"`
	WHTAmount       decimal.Decimal `db:"wht_amount"`

	CustomerReceivableAccountID string `db:"customer_receivable_account_id"`
	ReceivableAccountID         string `db:"receivable_account_id"`
	CashAccountID               string `db:"cash_account_id"`
	WHTAccountID                string `db:"wht_account_id"`
	AuditFields
}

// StockAdjustment is the stock_adjustments table row.
type StockAdjustment struct {
	AdjustmentID        string    `db:"adjustment_id"`
	CompanyID           string    `db:"company_id"`
	ReferenceNumber     string    `db:"reference_number"`
	Status              string    `db:"status"`
	AdjustmentDate      time.Time `db:"adjustment_date"`
	CurrencyCode        string    `db:"currency_code"`
	Reason              string    `db:"reason"`
	AdjustmentAccountID string    `db:"adjustment_account_id"`
	AuditFields
}

// AdjustmentLine is the stock_adjustment_lines table row.
type AdjustmentLine struct {
	LineID        string          `db:"line_id"`
	AdjustmentID  string          `db:"adjustment_id"`
	ProductID     string          `db:"product_id"`
	ProductName   string          `db:"product_name"`
	QuantityDelta decimal.Decimal `db:"quantity_delta"`
	UnitCost      decimal.Decimal `db:"unit_cost"`

	InventoryAccountID         string `db:"inventory_account_id"`
	CategoryInventoryAccountID string `db:"category_inventory_account_id"`
}
