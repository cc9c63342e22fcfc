package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/poslite/poslite_backend/internal/core/ports/services"
	"github.com/poslite/poslite_backend/internal/dto"
	"github.com/poslite/poslite_backend/internal/middleware"
)

// auditHandler handles balance verification requests.
type auditHandler struct {
	auditService portssvc.AuditSvcFacade
}

func newAuditHandler(auditService portssvc.AuditSvcFacade) *auditHandler {
	return &auditHandler{auditService: auditService}
}

// registerAuditRoutes registers audit specific routes under a company.
func registerAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditSvcFacade) {
	h := newAuditHandler(auditService)

	rg.GET("/batches/:batch_id/verify", h.verifyBatch)
	rg.GET("/audit/scan", h.scanForImbalance)
}

// verifyBatch godoc
// @Summary Verify the balance of one posting batch
// @Description Recomputes the batch's debit and credit totals and reports whether they balance within tolerance.
// @Tags audit
// @Produce json
// @Param company_id path string true "Company ID"
// @Param batch_id path string true "Batch ID"
// @Success 200 {object} dto.BatchVerificationResponse
// @Failure 404 {object} ErrorResponse
// @Router /companies/{company_id}/batches/{batch_id}/verify [get]
func (h *auditHandler) verifyBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	verification, err := h.auditService.VerifyBatch(c.Request.Context(), c.Param("company_id"), c.Param("batch_id"), userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBatchVerificationResponse(verification))
}

// scanForImbalance godoc
// @Summary Scan posted batches for balance violations
// @Description Sweeps all batches posted on or after the given date and returns balance and consistency findings. Read-only.
// @Tags audit
// @Produce json
// @Param company_id path string true "Company ID"
// @Param since query string false "RFC 3339 date, defaults to 30 days ago"
// @Success 200 {array} dto.AuditFindingResponse
// @Failure 400 {object} ErrorResponse
// @Router /companies/{company_id}/audit/scan [get]
func (h *auditHandler) scanForImbalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	since := time.Now().AddDate(0, 0, -30)
	if s := c.Query("since"); s != "" {
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid 'since' parameter, expected RFC 3339"})
			return
		}
		since = parsed
	}

	findings, err := h.auditService.ScanForImbalance(c.Request.Context(), c.Param("company_id"), since, userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAuditFindingResponseSlice(findings))
}
