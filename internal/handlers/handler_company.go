package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/spendtrail/spendtrail_backend/internal/core/ports/services"
	"github.com/spendtrail/spendtrail_backend/internal/dto"
)

// CompanyHandler handles the tenant registry requests.
type CompanyHandler struct {
	companyService portssvc.CompanySvcFacade
}

// NewCompanyHandler creates a new CompanyHandler.
func NewCompanyHandler(cs portssvc.CompanySvcFacade) *CompanyHandler {
	return &CompanyHandler{companyService: cs}
}

// registerCompanyRoutes sets up the company registry routes. Registration is
// public so a new tenant can be created before any account exists.
func registerCompanyRoutes(rg *gin.Engine, limitMiddleware gin.HandlerFunc, companyService portssvc.CompanySvcFacade) {
	h := NewCompanyHandler(companyService)

	company := rg.Group("/company-service")
	{
		company.POST("/register", limitMiddleware, h.RegisterCompany)
		company.GET("/companies/:companyDomain", h.GetCompany)
	}
}

// RegisterCompany godoc
// @Summary Register a company
// @Description Registers a tenant identified by its domain name.
// @Tags company
// @Accept json
// @Produce json
// @Param company body dto.RegisterCompanyRequest true "Company"
// @Success 201 {object} dto.CompanyResponse
// @Failure 400 {object} dto.StatusResponse
// @Failure 409 {object} dto.StatusResponse "Domain already registered"
// @Router /company-service/register [post]
func (h *CompanyHandler) RegisterCompany(c *gin.Context) {
	var req dto.RegisterCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	company, err := h.companyService.RegisterCompany(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCompanyResponse(company))
}

// GetCompany godoc
// @Summary Get a company
// @Tags company
// @Produce json
// @Security BearerAuth
// @Param companyDomain path string true "Company domain"
// @Success 200 {object} dto.CompanyResponse
// @Failure 404 {object} dto.StatusResponse
// @Router /company-service/companies/{companyDomain} [get]
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	company, err := h.companyService.GetCompanyByDomain(c.Request.Context(), c.Param("companyDomain"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}
