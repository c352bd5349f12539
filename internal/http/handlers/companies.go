package handlers

import (
	"net/http"

	"subite-backend/internal/domain"
	"subite-backend/internal/http/middleware"
	"subite-backend/internal/logger"
	"subite-backend/internal/repositories"
	"subite-backend/internal/scope"

	"github.com/gin-gonic/gin"
)

type companyRequest struct {
	Name string `json:"name" binding:"required"`
}

// POST /api/companies — any manager may create a company.
func CreateCompany(c *gin.Context) {
	ident := middleware.Identity(c)

	var req companyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "name is required")
		return
	}

	repo := repositories.CompaniesRepository{}
	company, err := repo.Create(req.Name)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	zl := logger.Get()
	zl.Info().
		Int64("companyId", company.ID).
		Int64("managerId", ident.UserID).
		Msg("company created")

	c.JSON(http.StatusCreated, gin.H{"data": company})
}

// GET /api/companies/:id — managers read their own company, with user
// and vehicle counts.
func GetCompany(c *gin.Context) {
	ident := middleware.Identity(c)
	companyID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if ident.Role != domain.RoleManager || !ident.InCompany(companyID) {
		RespondDomainError(c, domain.ForbiddenError{Msg: "Access denied"})
		return
	}

	repo := repositories.CompaniesRepository{}
	company, err := repo.GetByID(companyID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	zl := logger.Get()
	zl.Info().
		Int64("companyId", companyID).
		Int64("userId", ident.UserID).
		Msg("company retrieved")

	c.JSON(http.StatusOK, gin.H{"data": company})
}

// PUT /api/companies/:id — managers rename their own company.
func UpdateCompany(c *gin.Context) {
	ident := middleware.Identity(c)
	companyID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if ident.Role != domain.RoleManager || !ident.InCompany(companyID) {
		RespondDomainError(c, domain.ForbiddenError{Msg: "Access denied"})
		return
	}

	var req companyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "name is required")
		return
	}

	repo := repositories.CompaniesRepository{}
	company, err := repo.Update(companyID, req.Name)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	zl := logger.Get()
	zl.Info().
		Int64("companyId", companyID).
		Int64("managerId", ident.UserID).
		Msg("company updated")

	c.JSON(http.StatusOK, gin.H{"data": company})
}

// GET /api/companies/:id/vehicles?limit=&cursor=&active=
// Every role of the company may list; the scope table narrows rows per
// role (drivers see their own vehicles, passengers only active ones).
func GetCompanyVehicles(c *gin.Context) {
	ident := middleware.Identity(c)
	companyID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if ident == nil {
		RespondDomainError(c, domain.UnauthenticatedError{})
		return
	}
	if !ident.InCompany(companyID) {
		RespondDomainError(c, domain.ForbiddenError{Msg: "Access denied"})
		return
	}

	p, err := scope.Build(ident, scope.Vehicles)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	active, ok := parseBoolQuery(c, "active")
	if !ok {
		return
	}
	p = p.WithActive(active)

	params, ok := parseListParams(c)
	if !ok {
		return
	}

	repo := repositories.VehiclesRepository{}
	page, err := repo.List(p, params.Cursor, params.Limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	zl := logger.Get()
	zl.Info().
		Int64("companyId", companyID).
		Int64("userId", ident.UserID).
		Str("role", string(ident.Role)).
		Int("count", len(page.Data)).
		Msg("company vehicles retrieved")

	c.JSON(http.StatusOK, page)
}
