package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	portssvc "github.com/poslite/poslite_backend/internal/core/ports/services"
	"github.com/poslite/poslite_backend/internal/dto"
	"github.com/poslite/poslite_backend/internal/middleware"
)

// documentHandler handles HTTP requests for draft commercial documents.
// Approving them is the posting handler's job.
type documentHandler struct {
	documentService portssvc.DocumentSvcFacade
}

func newDocumentHandler(documentService portssvc.DocumentSvcFacade) *documentHandler {
	return &documentHandler{documentService: documentService}
}

// registerDocumentRoutes registers document specific routes under a company.
func registerDocumentRoutes(rg *gin.RouterGroup, documentService portssvc.DocumentSvcFacade) {
	h := newDocumentHandler(documentService)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createSalesInvoice)
		invoices.GET("", h.listSalesInvoices)
		invoices.GET("/:invoice_id", h.getSalesInvoice)
	}

	receipts := rg.Group("/receipts")
	{
		receipts.POST("", h.createReceipt)
		receipts.GET("/:receipt_id", h.getReceipt)
	}

	adjustments := rg.Group("/stock-adjustments")
	{
		adjustments.POST("", h.createStockAdjustment)
		adjustments.GET("/:adjustment_id", h.getStockAdjustment)
	}
}

// createSalesInvoice godoc
// @Summary Create a draft sales invoice
// @Tags documents
// @Accept json
// @Produce json
// @Param company_id path string true "Company ID"
// @Param invoice body dto.CreateSalesInvoiceRequest true "Invoice"
// @Success 201 {object} dto.SalesInvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Router /companies/{company_id}/invoices [post]
func (h *documentHandler) createSalesInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateSalesInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	invoice, err := h.documentService.CreateSalesInvoice(c.Request.Context(), c.Param("company_id"), req.ToDomain(), userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToSalesInvoiceResponse(invoice))
}

// listSalesInvoices godoc
// @Summary List sales invoices
// @Tags documents
// @Produce json
// @Param company_id path string true "Company ID"
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListSalesInvoicesResponse
// @Router /companies/{company_id}/invoices [get]
func (h *documentHandler) listSalesInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	var nextToken *string
	if t := c.Query("nextToken"); t != "" {
		nextToken = &t
	}

	invoices, newToken, err := h.documentService.ListSalesInvoices(c.Request.Context(), c.Param("company_id"), limit, nextToken, userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	resp := dto.ListSalesInvoicesResponse{NextToken: newToken}
	resp.Invoices = make([]dto.SalesInvoiceResponse, 0, len(invoices))
	for i := range invoices {
		resp.Invoices = append(resp.Invoices, dto.ToSalesInvoiceResponse(&invoices[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// getSalesInvoice godoc
// @Summary Get a sales invoice with its line items
// @Tags documents
// @Produce json
// @Param company_id path string true "Company ID"
// @Param invoice_id path string true "Invoice ID"
// @Success 200 {object} dto.SalesInvoiceResponse
// @Failure 404 {object} ErrorResponse
// @Router /companies/{company_id}/invoices/{invoice_id} [get]
func (h *documentHandler) getSalesInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	invoice, err := h.documentService.GetSalesInvoiceByID(c.Request.Context(), c.Param("company_id"), c.Param("invoice_id"), userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSalesInvoiceResponse(invoice))
}

// createReceipt godoc
// @Summary Create a draft receipt
// @Tags documents
// @Accept json
// @Produce json
// @Param company_id path string true "Company ID"
// @Param receipt body dto.CreateReceiptRequest true "Receipt"
// @Success 201 {object} dto.ReceiptResponse
// @Failure 400 {object} ErrorResponse
// @Router /companies/{company_id}/receipts [post]
func (h *documentHandler) createReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	receipt, err := h.documentService.CreateReceipt(c.Request.Context(), c.Param("company_id"), req.ToDomain(), userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToReceiptResponse(receipt))
}

// getReceipt godoc
// @Summary Get a receipt
// @Tags documents
// @Produce json
// @Param company_id path string true "Company ID"
// @Param receipt_id path string true "Receipt ID"
// @Success 200 {object} dto.ReceiptResponse
// @Failure 404 {object} ErrorResponse
// @Router /companies/{company_id}/receipts/{receipt_id} [get]
func (h *documentHandler) getReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	receipt, err := h.documentService.GetReceiptByID(c.Request.Context(), c.Param("company_id"), c.Param("receipt_id"), userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReceiptResponse(receipt))
}

// createStockAdjustment godoc
// @Summary Create a draft stock adjustment
// @Tags documents
// @Accept json
// @Produce json
// @Param company_id path string true "Company ID"
// @Param adjustment body dto.CreateStockAdjustmentRequest true "Stock Adjustment"
// @Success 201 {object} dto.StockAdjustmentResponse
// @Failure 400 {object} ErrorResponse
// @Router /companies/{company_id}/stock-adjustments [post]
func (h *documentHandler) createStockAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateStockAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	adjustment, err := h.documentService.CreateStockAdjustment(c.Request.Context(), c.Param("company_id"), req.ToDomain(), userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToStockAdjustmentResponse(adjustment))
}

// getStockAdjustment godoc
// @Summary Get a stock adjustment with its lines
// @Tags documents
// @Produce json
// @Param company_id path string true "Company ID"
// @Param adjustment_id path string true "Adjustment ID"
// @Success 200 {object} dto.StockAdjustmentResponse
// @Failure 404 {object} ErrorResponse
// @Router /companies/{company_id}/stock-adjustments/{adjustment_id} [get]
func (h *documentHandler) getStockAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	adjustment, err := h.documentService.GetStockAdjustmentByID(c.Request.Context(), c.Param("company_id"), c.Param("adjustment_id"), userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToStockAdjustmentResponse(adjustment))
}
