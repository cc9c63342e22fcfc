package mapping

import (
	"github.com/poslite/poslite_backend/internal/core/domain"
	"github.com/poslite/poslite_backend/internal/models"
)

// ToModelSalesInvoice converts a domain SalesInvoice to its model row.
func ToModelSalesInvoice(d domain.SalesInvoice) models.SalesInvoice {
	return models.SalesInvoice{
		InvoiceID:       d.InvoiceID,
		CompanyID:       d.CompanyID,
		CustomerID:      d.CustomerID,
		ReferenceNumber: d.ReferenceNumber,
		Status:          string(d.Status),
		InvoiceDate:     d.InvoiceDate,
		CurrencyCode:    d.CurrencyCode,
		Subtotal:        d.Subtotal,
		TaxAmount:       d.TaxAmount,
		DiscountAmount:  d.DiscountAmount,
		WHTAmount:       d.WHTAmount,
		PaidAmount:      d.PaidAmount,

		CustomerReceivableAccountID: d.CustomerReceivableAccountID,
		ReceivableAccountID:         d.ReceivableAccountID,
		IncomeAccountID:             d.IncomeAccountID,
		CashAccountID:               d.CashAccountID,
		TaxAccountID:                d.TaxAccountID,
		WHTAccountID:                d.WHTAccountID,
		DiscountAccountID:           d.DiscountAccountID,
		AuditFields:                 ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSalesInvoice converts a model SalesInvoice row plus its lines.
func ToDomainSalesInvoice(m models.SalesInvoice, lines []models.InvoiceLineItem) domain.SalesInvoice {
	inv := domain.SalesInvoice{
		InvoiceID:       m.InvoiceID,
		CompanyID:       m.CompanyID,
		CustomerID:      m.CustomerID,
		ReferenceNumber: m.ReferenceNumber,
		Status:          domain.DocumentStatus(m.Status),
		InvoiceDate:     m.InvoiceDate,
		CurrencyCode:    m.CurrencyCode,
		Subtotal:        m.Subtotal,
		TaxAmount:       m.TaxAmount,
		DiscountAmount:  m.DiscountAmount,
		WHTAmount:       m.WHTAmount,
		PaidAmount:      m.PaidAmount,

		CustomerReceivableAccountID: m.CustomerReceivableAccountID,
		ReceivableAccountID:         m.ReceivableAccountID,
		IncomeAccountID:             m.IncomeAccountID,
		CashAccountID:               m.CashAccountID,
		TaxAccountID:                m.TaxAccountID,
		WHTAccountID:                m.WHTAccountID,
		DiscountAccountID:           m.DiscountAccountID,
		AuditFields:                 ToDomainAuditFields(m.AuditFields),
	}
	inv.LineItems = make([]domain.InvoiceLineItem, len(lines))
	for i, line := range lines {
		inv.LineItems[i] = ToDomainInvoiceLine(line)
	}
	return inv
}

// ToModelInvoiceLine converts a domain invoice line to its model row.
func ToModelInvoiceLine(invoiceID string, d domain.InvoiceLineItem) models.InvoiceLineItem {
	return models.InvoiceLineItem{
		LineItemID:  d.LineItemID,
		InvoiceID:   invoiceID,
		ProductID:   d.ProductID,
		ProductName: d.ProductName,
		IsService:   d.IsService,
		Quantity:    d.Quantity,
		UnitPrice:   d.UnitPrice,
		AverageCost: d.AverageCost,

		COGSAccountID:              d.COGSAccountID,
		InventoryAccountID:         d.InventoryAccountID,
		CategoryCOGSAccountID:      d.CategoryCOGSAccountID,
		CategoryInventoryAccountID: d.CategoryInventoryAccountID,
	}
}

// ToDomainInvoiceLine converts a model invoice line to its domain form.
func ToDomainInvoiceLine(m models.InvoiceLineItem) domain.InvoiceLineItem {
	return domain.InvoiceLineItem{
		LineItemID:  m.LineItemID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		IsService:   m.IsService,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		AverageCost: m.AverageCost,

		COGSAccountID:              m.COGSAccountID,
		InventoryAccountID:         m.InventoryAccountID,
		CategoryCOGSAccountID:      m.CategoryCOGSAccountID,
		CategoryInventoryAccountID: m.CategoryInventoryAccountID,
	}
}

// ToModelReceipt converts a domain Receipt to its model row.
func ToModelReceipt(d domain.Receipt) models.Receipt {
	return models.Receipt{
		ReceiptID:       d.ReceiptID,
		CompanyID:       d.CompanyID,
		CustomerID:      d.CustomerID,
		ReferenceNumber: d.ReferenceNumber,
		Status:          string(d.Status),
		ReceiptDate:     d.ReceiptDate,
		CurrencyCode:    d.CurrencyCode,
		Amount:          d.Amount,
		WHTAmount:       d.WHTAmount,

		CustomerReceivableAccountID: d.CustomerReceivableAccountID,
		ReceivableAccountID:         d.ReceivableAccountID,
		CashAccountID:               d.CashAccountID,
		WHTAccountID:                d.WHTAccountID,
		AuditFields:                 ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainReceipt converts a model Receipt to its domain form.
func ToDomainReceipt(m models.Receipt) domain.Receipt {
	return domain.Receipt{
		ReceiptID:       m.ReceiptID,
		CompanyID:       m.CompanyID,
		CustomerID:      m.CustomerID,
		ReferenceNumber: m.ReferenceNumber,
		Status:          domain.DocumentStatus(m.Status),
		ReceiptDate:     m.ReceiptDate,
		CurrencyCode:    m.CurrencyCode,
		Amount:          m.Amount,
		WHTAmount:       m.WHTAmount,

		CustomerReceivableAccountID: m.CustomerReceivableAccountID,
		ReceivableAccountID:         m.ReceivableAccountID,
		CashAccountID:               m.CashAccountID,
		WHTAccountID:                m.WHTAccountID,
		AuditFields:                 ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelStockAdjustment converts a domain StockAdjustment to its model row.
func ToModelStockAdjustment(d domain.StockAdjustment) models.StockAdjustment {
	return models.StockAdjustment{
		AdjustmentID:        d.AdjustmentID,
		CompanyID:           d.CompanyID,
		ReferenceNumber:     d.ReferenceNumber,
		Status:              string(d.Status),
		AdjustmentDate:      d.AdjustmentDate,
		CurrencyCode:        d.CurrencyCode,
		Reason:              d.Reason,
		AdjustmentAccountID: d.AdjustmentAccountID,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainStockAdjustment converts a model StockAdjustment row plus lines.
func ToDomainStockAdjustment(m models.StockAdjustment, lines []models.AdjustmentLine) domain.StockAdjustment {
	adj := domain.StockAdjustment{
		AdjustmentID:        m.AdjustmentID,
		CompanyID:           m.CompanyID,
		ReferenceNumber:     m.ReferenceNumber,
		Status:              domain.DocumentStatus(m.Status),
		AdjustmentDate:      m.AdjustmentDate,
		CurrencyCode:        m.CurrencyCode,
		Reason:              m.Reason,
		AdjustmentAccountID: m.AdjustmentAccountID,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
	adj.Lines = make([]domain.AdjustmentLine, len(lines))
	for i, line := range lines {
		adj.Lines[i] = domain.AdjustmentLine{
			LineID:                     line.LineID,
			ProductID:                  line.ProductID,
			ProductName:                line.ProductName,
			QuantityDelta:              line.QuantityDelta,
			UnitCost:                   line.UnitCost,
			InventoryAccountID:         line.InventoryAccountID,
			CategoryInventoryAccountID: line.CategoryInventoryAccountID,
		}
	}
	return adj
}

// ToModelAdjustmentLine converts a domain adjustment line to its model row.
func ToModelAdjustmentLine(adjustmentID string, d domain.AdjustmentLine) models.AdjustmentLine {
	return models.AdjustmentLine{
		LineID:                     d.LineID,
		AdjustmentID:               adjustmentID,
		ProductID:                  d.ProductID,
		ProductName:                d.ProductName,
		QuantityDelta:              d.QuantityDelta,
		UnitCost:                   d.UnitCost,
		InventoryAccountID:         d.InventoryAccountID,
		CategoryInventoryAccountID: d.CategoryInventoryAccountID,
	}
}
