package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	portssvc "github.com/poslite/poslite_backend/internal/core/ports/services"
	"github.com/poslite/poslite_backend/internal/dto"
	"github.com/poslite/poslite_backend/internal/middleware"
)

// ledgerHandler handles the read side of the posted ledger.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ledgerService portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ledgerService}
}

// registerLedgerRoutes registers ledger read routes under a company.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	batches := rg.Group("/batches")
	{
		batches.GET("/:batch_id", h.getBatch)
		batches.GET("/:batch_id/entries", h.getBatchEntries)
	}

	rg.GET("/accounts/:account_id/entries", h.listEntriesByAccount)
}

// getBatch godoc
// @Summary Get a posting batch header
// @Tags ledger
// @Produce json
// @Param company_id path string true "Company ID"
// @Param batch_id path string true "Batch ID"
// @Success 200 {object} dto.PostingBatchResponse
// @Failure 404 {object} ErrorResponse
// @Router /companies/{company_id}/batches/{batch_id} [get]
func (h *ledgerHandler) getBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	batch, err := h.ledgerService.GetBatchByID(c.Request.Context(), c.Param("company_id"), c.Param("batch_id"), userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPostingBatchResponse(batch))
}

// getBatchEntries godoc
// @Summary Get the entries of a posting batch
// @Tags ledger
// @Produce json
// @Param company_id path string true "Company ID"
// @Param batch_id path string true "Batch ID"
// @Success 200 {array} dto.LedgerEntryResponse
// @Failure 404 {object} ErrorResponse
// @Router /companies/{company_id}/batches/{batch_id}/entries [get]
func (h *ledgerHandler) getBatchEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	entries, err := h.ledgerService.GetBatchEntries(c.Request.Context(), c.Param("company_id"), c.Param("batch_id"), userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerEntryResponseSlice(entries))
}

// listEntriesByAccount godoc
// @Summary List ledger entries of one account
// @Description Returns a paginated account statement, newest first.
// @Tags ledger
// @Produce json
// @Param company_id path string true "Company ID"
// @Param account_id path string true "Account ID"
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListLedgerEntriesResponse
// @Failure 404 {object} ErrorResponse
// @Router /companies/{company_id}/accounts/{account_id}/entries [get]
func (h *ledgerHandler) listEntriesByAccount(c *gin.Context) {
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

	entries, newToken, err := h.ledgerService.ListEntriesByAccount(c.Request.Context(), c.Param("company_id"), c.Param("account_id"), limit, nextToken, userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListLedgerEntriesResponse{
		Entries:   dto.ToLedgerEntryResponseSlice(entries),
		NextToken: newToken,
	})
}
