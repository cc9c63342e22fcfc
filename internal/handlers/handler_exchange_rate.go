package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/poslite/poslite_backend/internal/core/ports/services"
	"github.com/poslite/poslite_backend/internal/dto"
	"github.com/poslite/poslite_backend/internal/middleware"
)

// exchangeRateHandler handles HTTP requests for exchange rates.
type exchangeRateHandler struct {
	rateService portssvc.ExchangeRateSvcFacade
}

func newExchangeRateHandler(rateService portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{rateService: rateService}
}

// registerExchangeRateRoutes registers exchange rate specific routes
func registerExchangeRateRoutes(rg *gin.RouterGroup, rateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(rateService)

	rates := rg.Group("/exchange-rates")
	{
		rates.POST("", h.createExchangeRate)
		rates.GET("/:rate_id", h.getExchangeRate)
	}
}

// createExchangeRate godoc
// @Summary Record an exchange rate
// @Description Stores a conversion rate effective from a given date. The rate must be strictly positive.
// @Tags exchange-rates
// @Accept json
// @Produce json
// @Param rate body dto.CreateExchangeRateRequest true "Exchange Rate"
// @Success 201 {object} dto.ExchangeRateResponse
// @Failure 400 {object} ErrorResponse
// @Router /exchange-rates [post]
func (h *exchangeRateHandler) createExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	rate, err := h.rateService.CreateExchangeRate(c.Request.Context(), req.ToDomain(), userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(rate))
}

// getExchangeRate godoc
// @Summary Get an exchange rate by ID
// @Tags exchange-rates
// @Produce json
// @Param rate_id path string true "Exchange Rate ID"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 404 {object} ErrorResponse
// @Router /exchange-rates/{rate_id} [get]
func (h *exchangeRateHandler) getExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rate, err := h.rateService.GetExchangeRateByID(c.Request.Context(), c.Param("rate_id"))
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}
