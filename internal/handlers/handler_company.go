package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/poslite/poslite_backend/internal/core/domain"
	portssvc "github.com/poslite/poslite_backend/internal/core/ports/services"
	"github.com/poslite/poslite_backend/internal/dto"
	"github.com/poslite/poslite_backend/internal/middleware"
)

// companyHandler handles HTTP requests related to companies and memberships.
type companyHandler struct {
	companyService portssvc.CompanySvcFacade
}

func newCompanyHandler(companyService portssvc.CompanySvcFacade) *companyHandler {
	return &companyHandler{companyService: companyService}
}

// registerCompanyRoutes registers routes related to companies and all
// company-scoped sub-resources.
func registerCompanyRoutes(rg *gin.RouterGroup, services *portssvc.ServiceProvider) {
	h := newCompanyHandler(services.CompanySvc)

	companiesTopLevel := rg.Group("/companies")
	{
		companiesTopLevel.POST("", h.createCompany)
		companiesTopLevel.GET("", h.listUserCompanies)
	}

	companySpecific := rg.Group("/companies/:company_id")
	{
		companySpecific.GET("", h.getCompany)

		companyUsers := companySpecific.Group("/users")
		{
			companyUsers.POST("", h.addUserToCompany)
		}

		RegisterAccountRoutes(companySpecific, services.AccountSvc)
		registerDocumentRoutes(companySpecific, services.DocumentSvc)
		registerPostingRoutes(companySpecific, services.PostingSvc)
		registerLedgerRoutes(companySpecific, services.LedgerSvc)
		registerAuditRoutes(companySpecific, services.AuditSvc)
	}
}

// createCompany godoc
// @Summary Create a company
// @Description Creates a company and makes the caller its owner.
// @Tags companies
// @Accept json
// @Produce json
// @Param company body dto.CreateCompanyRequest true "Company"
// @Success 201 {object} dto.CompanyResponse
// @Failure 400 {object} ErrorResponse
// @Router /companies [post]
func (h *companyHandler) createCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	company, err := h.companyService.CreateCompany(c.Request.Context(), domain.Company{
		Name:             req.Name,
		BaseCurrencyCode: req.BaseCurrencyCode,
	}, userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	logger.Info("Company created", slog.String("company_id", company.CompanyID))
	c.JSON(http.StatusCreated, dto.ToCompanyResponse(company))
}

// listUserCompanies godoc
// @Summary List the caller's companies
// @Tags companies
// @Produce json
// @Success 200 {array} dto.CompanyResponse
// @Router /companies [get]
func (h *companyHandler) listUserCompanies(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	companies, err := h.companyService.ListUserCompanies(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCompanyResponseSlice(companies))
}

// getCompany godoc
// @Summary Get a company
// @Tags companies
// @Produce json
// @Param company_id path string true "Company ID"
// @Success 200 {object} dto.CompanyResponse
// @Failure 404 {object} ErrorResponse
// @Router /companies/{company_id} [get]
func (h *companyHandler) getCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	company, err := h.companyService.GetCompanyByID(c.Request.Context(), c.Param("company_id"), userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}

// addUserToCompany godoc
// @Summary Add a user to a company
// @Description Grants a user a role in the company. Caller must be an owner.
// @Tags companies
// @Accept json
// @Produce json
// @Param company_id path string true "Company ID"
// @Param membership body dto.AddUserToCompanyRequest true "Membership"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /companies/{company_id}/users [post]
func (h *companyHandler) addUserToCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.AddUserToCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	err := h.companyService.AddUserToCompany(c.Request.Context(), c.Param("company_id"), userID, req.UserID, req.Role)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
