package dto

import (
	"time"

	"github.com/poslite/poslite_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InvoiceLineRequest is one product line of an invoice creation request.
type InvoiceLineRequest struct {
	ProductID   string          `json:"productID" binding:"required"`
	ProductName string          `json:"productName" binding:"required"`
	IsService   bool            `json:"isService"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unitPrice" binding:"required"`
	AverageCost decimal.Decimal `json:"averageCost"`

	COGSAccountID              string `json:"cogsAccountID"`
	InventoryAccountID         string `json:"inventoryAccountID"`
	CategoryCOGSAccountID      string `json:"categoryCogsAccountID"`
	CategoryInventoryAccountID string `json:"categoryInventoryAccountID"`
}

// CreateSalesInvoiceRequest defines the data needed to create a draft invoice.
type CreateSalesInvoiceRequest struct {
	CustomerID      string               `json:"customerID" binding:"required"`
	ReferenceNumber string               `json:"referenceNumber" binding:"required"`
	InvoiceDate     time.Time            `json:"invoiceDate"`
	CurrencyCode    string               `json:"currencyCode" binding:"required,len=3"`
	Subtotal        decimal.Decimal      `json:"subtotal" binding:"required"`
	TaxAmount       decimal.Decimal      `json:"taxAmount"`
	DiscountAmount  decimal.Decimal      `json:"discountAmount"`
	WHTAmount       decimal.Decimal      `json:"whtAmount"`
	PaidAmount      decimal.Decimal      `json:"paidAmount"`
	LineItems       []InvoiceLineRequest `json:"lineItems" binding:"required,min=1,dive"`

	CustomerReceivableAccountID string `json:"customerReceivableAccountID"`
	ReceivableAccountID         string `json:"receivableAccountID"`
	IncomeAccountID             string `json:"incomeAccountID"`
	CashAccountID               string `json:"cashAccountID"`
	TaxAccountID                string `json:"taxAccountID"`
	WHTAccountID                string `json:"whtAccountID"`
	DiscountAccountID           string `json:"discountAccountID"`
}

// ToDomain converts the request to a domain invoice.
func (r CreateSalesInvoiceRequest) ToDomain() domain.SalesInvoice {
	lines := make([]domain.InvoiceLineItem, 0, len(r.LineItems))
	for _, line := range r.LineItems {
		lines = append(lines, domain.InvoiceLineItem{
			ProductID:                  line.ProductID,
			ProductName:                line.ProductName,
			IsService:                  line.IsService,
			Quantity:                   line.Quantity,
			UnitPrice:                  line.UnitPrice,
			AverageCost:                line.AverageCost,
			COGSAccountID:              line.COGSAccountID,
			InventoryAccountID:         line.InventoryAccountID,
			CategoryCOGSAccountID:      line.CategoryCOGSAccountID,
			CategoryInventoryAccountID: line.CategoryInventoryAccountID,
		})
	}
	return domain.SalesInvoice{
		CustomerID:                  r.CustomerID,
		ReferenceNumber:             r.ReferenceNumber,
		InvoiceDate:                 r.InvoiceDate,
		CurrencyCode:                r.CurrencyCode,
		Subtotal:                    r.Subtotal,
		TaxAmount:                   r.TaxAmount,
		DiscountAmount:              r.DiscountAmount,
		WHTAmount:                   r.WHTAmount,
		PaidAmount:                  r.PaidAmount,
		LineItems:                   lines,
		CustomerReceivableAccountID: r.CustomerReceivableAccountID,
		ReceivableAccountID:         r.ReceivableAccountID,
		IncomeAccountID:             r.IncomeAccountID,
		CashAccountID:               r.CashAccountID,
		TaxAccountID:                r.TaxAccountID,
		WHTAccountID:                r.WHTAccountID,
		DiscountAccountID:           r.DiscountAccountID,
	}
}

// SalesInvoiceResponse defines the data returned for an invoice.
type SalesInvoiceResponse struct {
	InvoiceID       string                `json:"invoiceID"`
	CompanyID       string                `json:"companyID"`
	CustomerID      string                `json:"customerID"`
	ReferenceNumber string                `json:"referenceNumber"`
	Status          domain.DocumentStatus `json:"status"`
	InvoiceDate     time.Time             `json:"invoiceDate"`
	CurrencyCode    string                `json:"currencyCode"`
	Subtotal        decimal.Decimal       `json:"subtotal"`
	TaxAmount       decimal.Decimal       `json:"taxAmount"`
	DiscountAmount  decimal.Decimal       `json:"discountAmount"`
	WHTAmount       decimal.Decimal       `json:"whtAmount"`
	PaidAmount      decimal.Decimal       `json:"paidAmount"`
	Total           decimal.Decimal       `json:"total"`
	BalanceAmount   decimal.Decimal       `json:"balanceAmount"`
	LineItems       []InvoiceLineResponse `json:"lineItems,omitempty"`
}

// InvoiceLineResponse is one line of an invoice response.
type InvoiceLineResponse struct {
	LineItemID  string          `json:"lineItemID"`
	ProductID   string          `json:"productID"`
	ProductName string          `json:"productName"`
	IsService   bool            `json:"isService"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	AverageCost decimal.Decimal `json:"averageCost"`
}

// ToSalesInvoiceResponse converts a domain invoice to its response DTO.
func ToSalesInvoiceResponse(invoice *domain.SalesInvoice) SalesInvoiceResponse {
	lines := make([]InvoiceLineResponse, 0, len(invoice.LineItems))
	for _, line := range invoice.LineItems {
		lines = append(lines, InvoiceLineResponse{
			LineItemID:  line.LineItemID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			IsService:   line.IsService,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			AverageCost: line.AverageCost,
		})
	}
	return SalesInvoiceResponse{
		InvoiceID:       invoice.InvoiceID,
		CompanyID:       invoice.CompanyID,
		CustomerID:      invoice.CustomerID,
		ReferenceNumber: invoice.ReferenceNumber,
		Status:          invoice.Status,
		InvoiceDate:     invoice.InvoiceDate,
		CurrencyCode:    invoice.CurrencyCode,
		Subtotal:        invoice.Subtotal,
		TaxAmount:       invoice.TaxAmount,
		DiscountAmount:  invoice.DiscountAmount,
		WHTAmount:       invoice.WHTAmount,
		PaidAmount:      invoice.PaidAmount,
		Total:           invoice.Total(),
		BalanceAmount:   invoice.BalanceAmount(),
		LineItems:       lines,
	}
}

// ListSalesInvoicesResponse is a paginated invoice list.
type ListSalesInvoicesResponse struct {
	Invoices  []SalesInvoiceResponse `json:"invoices"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// CreateReceiptRequest defines the data needed to create a draft receipt.
type CreateReceiptRequest struct {
	CustomerID      string          `json:"customerID" binding:"required"`
	ReferenceNumber string          `json:"referenceNumber" binding:"required"`
	ReceiptDate     time.Time       `json:"receiptDate"`
	CurrencyCode    string          `json:"currencyCode" binding:"required,len=3"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	WHTAmount       decimal.Decimal `json:"whtAmount"`

	CustomerReceivableAccountID string `json:"customerReceivableAccountID"`
	ReceivableAccountID         string `json:"receivableAccountID"`
	CashAccountID               string `json:"cashAccountID"`
	WHTAccountID                string `json:"whtAccountID"`
}

// ToDomain converts the request to a domain receipt.
func (r CreateReceiptRequest) ToDomain() domain.Receipt {
	return domain.Receipt{
		CustomerID:                  r.CustomerID,
		ReferenceNumber:             r.ReferenceNumber,
		ReceiptDate:                 r.ReceiptDate,
		CurrencyCode:                r.CurrencyCode,
		Amount:                      r.Amount,
		WHTAmount:                   r.WHTAmount,
		CustomerReceivableAccountID: r.CustomerReceivableAccountID,
		ReceivableAccountID:         r.ReceivableAccountID,
		CashAccountID:               r.CashAccountID,
		WHTAccountID:                r.WHTAccountID,
	}
}

// ReceiptResponse defines the data returned for a receipt.
type ReceiptResponse struct {
	ReceiptID       string                `json:"receiptID"`
	CompanyID       string                `json:"companyID"`
	CustomerID      string                `json:"customerID"`
	ReferenceNumber string                `json:"referenceNumber"`
	Status          domain.DocumentStatus `json:"status"`
	ReceiptDate     time.Time             `json:"receiptDate"`
	CurrencyCode    string                `json:"currencyCode"`
	Amount          decimal.Decimal       `json:"amount"`
	WHTAmount       decimal.Decimal       `json:"whtAmount"`
}

// ToReceiptResponse converts a domain receipt to its response DTO.
func ToReceiptResponse(receipt *domain.Receipt) ReceiptResponse {
	return ReceiptResponse{
		ReceiptID:       receipt.ReceiptID,
		CompanyID:       receipt.CompanyID,
		CustomerID:      receipt.CustomerID,
		ReferenceNumber: receipt.ReferenceNumber,
		Status:          receipt.Status,
		ReceiptDate:     receipt.ReceiptDate,
		CurrencyCode:    receipt.CurrencyCode,
		Amount:          receipt.Amount,
		WHTAmount:       receipt.WHTAmount,
	}
}

// AdjustmentLineRequest is one line of a stock adjustment creation request.
type AdjustmentLineRequest struct {
	ProductID     string          `json:"productID" binding:"required"`
	ProductName   string          `json:"productName" binding:"required"`
	QuantityDelta decimal.Decimal `json:"quantityDelta" binding:"required"`
	UnitCost      decimal.Decimal `json:"unitCost"`

	InventoryAccountID         string `json:"inventoryAccountID"`
	CategoryInventoryAccountID string `json:"categoryInventoryAccountID"`
}

// CreateStockAdjustmentRequest defines the data needed to create a draft
// stock adjustment.
type CreateStockAdjustmentRequest struct {
	ReferenceNumber     string                  `json:"referenceNumber" binding:"required"`
	AdjustmentDate      time.Time               `json:"adjustmentDate"`
	CurrencyCode        string                  `json:"currencyCode" binding:"required,len=3"`
	Reason              string                  `json:"reason"`
	AdjustmentAccountID string                  `json:"adjustmentAccountID"`
	Lines               []AdjustmentLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ToDomain converts the request to a domain stock adjustment.
func (r CreateStockAdjustmentRequest) ToDomain() domain.StockAdjustment {
	lines := make([]domain.AdjustmentLine, 0, len(r.Lines))
	for _, line := range r.Lines {
		lines = append(lines, domain.AdjustmentLine{
			ProductID:                  line.ProductID,
			ProductName:                line.ProductName,
			QuantityDelta:              line.QuantityDelta,
			UnitCost:                   line.UnitCost,
			InventoryAccountID:         line.InventoryAccountID,
			CategoryInventoryAccountID: line.CategoryInventoryAccountID,
		})
	}
	return domain.StockAdjustment{
		ReferenceNumber:     r.ReferenceNumber,
		AdjustmentDate:      r.AdjustmentDate,
		CurrencyCode:        r.CurrencyCode,
		Reason:              r.Reason,
		AdjustmentAccountID: r.AdjustmentAccountID,
		Lines:               lines,
	}
}

// StockAdjustmentResponse defines the data returned for a stock adjustment.
type StockAdjustmentResponse struct {
	AdjustmentID    string                `json:"adjustmentID"`
	CompanyID       string                `json:"companyID"`
	ReferenceNumber string                `json:"referenceNumber"`
	Status          domain.DocumentStatus `json:"status"`
	AdjustmentDate  time.Time             `json:"adjustmentDate"`
	CurrencyCode    string                `json:"currencyCode"`
	Reason          string                `json:"reason"`
}

// ToStockAdjustmentResponse converts a domain adjustment to its response DTO.
func ToStockAdjustmentResponse(adjustment *domain.StockAdjustment) StockAdjustmentResponse {
	return StockAdjustmentResponse{
		AdjustmentID:    adjustment.AdjustmentID,
		CompanyID:       adjustment.CompanyID,
		ReferenceNumber: adjustment.ReferenceNumber,
		Status:          adjustment.Status,
		AdjustmentDate:  adjustment.AdjustmentDate,
		CurrencyCode:    adjustment.CurrencyCode,
		Reason:          adjustment.Reason,
	}
}
