package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/poslite/poslite_backend/internal/core/ports/services"
	"github.com/poslite/poslite_backend/internal/dto"
	"github.com/poslite/poslite_backend/internal/middleware"
)

// postingHandler handles the write side of the ledger: approving documents,
// posting manual journals and reversing batches.
type postingHandler struct {
	postingService portssvc.PostingSvcFacade
}

func newPostingHandler(postingService portssvc.PostingSvcFacade) *postingHandler {
	return &postingHandler{postingService: postingService}
}

// registerPostingRoutes registers posting specific routes under a company.
func registerPostingRoutes(rg *gin.RouterGroup, postingService portssvc.PostingSvcFacade) {
	h := newPostingHandler(postingService)

	rg.POST("/invoices/:invoice_id/approve", h.approveSalesInvoice)
	rg.POST("/receipts/:receipt_id/approve", h.approveReceipt)
	rg.POST("/stock-adjustments/:adjustment_id/approve", h.approveStockAdjustment)
	rg.POST("/journals", h.postManualJournal)
	rg.POST("/batches/:batch_id/reverse", h.reverseBatch)
}

// approveSalesInvoice godoc
// @Summary Approve a sales invoice
// @Description Moves a draft invoice to APPROVED and writes its balanced ledger batch atomically.
// @Tags posting
// @Produce json
// @Param company_id path string true "Company ID"
// @Param invoice_id path string true "Invoice ID"
// @Success 201 {object} dto.PostingBatchResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Document already transitioned"
// @Failure 422 {object} ErrorResponse "Unbalanced batch or missing account configuration"
// @Router /companies/{company_id}/invoices/{invoice_id}/approve [post]
func (h *postingHandler) approveSalesInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	batch, err := h.postingService.ApproveSalesInvoice(c.Request.Context(), c.Param("company_id"), c.Param("invoice_id"), userID)
	if err != nil {
		middleware.RecordPostingBatch("SALES_INVOICE", "rejected")
		respondError(c, logger, err)
		return
	}

	middleware.RecordPostingBatch("SALES_INVOICE", "posted")
	logger.Info("Sales invoice posted", slog.String("batch_id", batch.BatchID))
	c.JSON(http.StatusCreated, dto.ToPostingBatchResponse(batch))
}

// approveReceipt godoc
// @Summary Approve a receipt
// @Description Posts a draft receipt against the customer balance.
// @Tags posting
// @Produce json
// @Param company_id path string true "Company ID"
// @Param receipt_id path string true "Receipt ID"
// @Success 201 {object} dto.PostingBatchResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /companies/{company_id}/receipts/{receipt_id}/approve [post]
func (h *postingHandler) approveReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	batch, err := h.postingService.ApproveReceipt(c.Request.Context(), c.Param("company_id"), c.Param("receipt_id"), userID)
	if err != nil {
		middleware.RecordPostingBatch("RECEIPT", "rejected")
		respondError(c, logger, err)
		return
	}

	middleware.RecordPostingBatch("RECEIPT", "posted")
	logger.Info("Receipt posted", slog.String("batch_id", batch.BatchID))
	c.JSON(http.StatusCreated, dto.ToPostingBatchResponse(batch))
}

// approveStockAdjustment godoc
// @Summary Approve a stock adjustment
// @Tags posting
// @Produce json
// @Param company_id path string true "Company ID"
// @Param adjustment_id path string true "Adjustment ID"
// @Success 201 {object} dto.PostingBatchResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /companies/{company_id}/stock-adjustments/{adjustment_id}/approve [post]
func (h *postingHandler) approveStockAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	batch, err := h.postingService.ApproveStockAdjustment(c.Request.Context(), c.Param("company_id"), c.Param("adjustment_id"), userID)
	if err != nil {
		middleware.RecordPostingBatch("STOCK_ADJUSTMENT", "rejected")
		respondError(c, logger, err)
		return
	}

	middleware.RecordPostingBatch("STOCK_ADJUSTMENT", "posted")
	logger.Info("Stock adjustment posted", slog.String("batch_id", batch.BatchID))
	c.JSON(http.StatusCreated, dto.ToPostingBatchResponse(batch))
}

// postManualJournal godoc
// @Summary Post a manual journal entry
// @Description Writes a caller-supplied set of journal lines. Debits and credits must balance.
// @Tags posting
// @Accept json
// @Produce json
// @Param company_id path string true "Company ID"
// @Param journal body dto.CreateManualJournalRequest true "Journal"
// @Success 201 {object} dto.PostingBatchResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /companies/{company_id}/journals [post]
func (h *postingHandler) postManualJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateManualJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	batch, err := h.postingService.PostManualJournal(c.Request.Context(), c.Param("company_id"), req.ToDomain(), userID)
	if err != nil {
		middleware.RecordPostingBatch("JOURNAL_ENTRY", "rejected")
		respondError(c, logger, err)
		return
	}

	middleware.RecordPostingBatch("JOURNAL_ENTRY", "posted")
	logger.Info("Manual journal posted", slog.String("batch_id", batch.BatchID))
	c.JSON(http.StatusCreated, dto.ToPostingBatchResponse(batch))
}

// reverseBatch godoc
// @Summary Reverse a posted batch
// @Description Voids a posted document by writing a mirror batch that flips each persisted entry. Reversing an already reversed batch is rejected.
// @Tags posting
// @Produce json
// @Param company_id path string true "Company ID"
// @Param batch_id path string true "Batch ID"
// @Success 201 {object} dto.PostingBatchResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Batch already reversed"
// @Router /companies/{company_id}/batches/{batch_id}/reverse [post]
func (h *postingHandler) reverseBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	batch, err := h.postingService.ReverseBatch(c.Request.Context(), c.Param("company_id"), c.Param("batch_id"), userID)
	if err != nil {
		middleware.RecordPostingBatch("REVERSAL", "rejected")
		respondError(c, logger, err)
		return
	}

	middleware.RecordPostingBatch("REVERSAL", "posted")
	logger.Info("Batch reversed", slog.String("original_batch_id", c.Param("batch_id")), slog.String("batch_id", batch.BatchID))
	c.JSON(http.StatusCreated, dto.ToPostingBatchResponse(batch))
}
