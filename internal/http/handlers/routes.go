package handlers

import (
	"net/http"
	"strings"
	"time"

	"subite-backend/internal/domain"
	"subite-backend/internal/http/middleware"
	"subite-backend/internal/logger"
	"subite-backend/internal/repositories"
	"subite-backend/internal/scope"
	"subite-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/daily-routes?limit=&cursor=&status=&date=
func GetDailyRoutes(c *gin.Context) {
	ident := middleware.Identity(c)

	p, err := scope.Build(ident, scope.Routes)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	if status := strings.TrimSpace(c.Query("status")); status != "" {
		if !domain.ValidRouteStatus(status) {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "status must be PENDING, IN_PROGRESS, FINISHED or CANCELLED")
			return
		}
		p = p.WithStatus(status)
	}
	if date := strings.TrimSpace(c.Query("date")); date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "date must be YYYY-MM-DD")
			return
		}
		p = p.WithDate(date)
	}

	params, ok := parseListParams(c)
	if !ok {
		return
	}

	repo := repositories.RoutesRepository{}
	page, err := repo.List(p, params.Cursor, params.Limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	zl := logger.Get()
	zl.Info().
		Int64("userId", ident.UserID).
		Str("role", string(ident.Role)).
		Int("count", len(page.Data)).
		Msg("daily routes retrieved")

	c.JSON(http.StatusOK, page)
}

// GET /api/daily-routes/:id
func GetDailyRoute(c *gin.Context) {
	ident := middleware.Identity(c)
	routeID, ok := parseIDParam(c)
	if !ok {
		return
	}

	p, err := scope.Build(ident, scope.Routes)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	repo := repositories.RoutesRepository{}
	route, err := repo.Get(p.WithID(routeID))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	zl := logger.Get()
	zl.Info().
		Int64("routeId", routeID).
		Int64("userId", ident.UserID).
		Str("role", string(ident.Role)).
		Msg("daily route retrieved")

	c.JSON(http.StatusOK, gin.H{"data": route})
}

type createRouteRequest struct {
	Date      string `json:"date" binding:"required"`
	VehicleID *int64 `json:"vehicleId"`
	DriverID  *int64 `json:"driverId"`
}

// POST /api/daily-routes — manager schedules a route in their company.
// Vehicle and driver assignments must resolve inside the same company.
func CreateDailyRoute(c *gin.Context) {
	ident := middleware.Identity(c)

	var req createRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid route payload")
		return
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "date must be YYYY-MM-DD")
		return
	}

	if req.VehicleID != nil {
		vehiclesRepo := repositories.VehiclesRepository{}
		valid, err := vehiclesRepo.ExistsInCompany(*req.VehicleID, *ident.CompanyID)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		if !valid {
			respondError(c, http.StatusBadRequest, "INVALID_VEHICLE", "Vehicle not found or not in same company")
			return
		}
	}
	if req.DriverID != nil {
		usersRepo := repositories.UsersRepository{}
		valid, err := usersRepo.IsDriverInCompany(*req.DriverID, *ident.CompanyID)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		if !valid {
			respondError(c, http.StatusBadRequest, "INVALID_DRIVER", "Driver not found or not in same company")
			return
		}
	}

	repo := repositories.RoutesRepository{}
	route, err := repo.Create(*ident.CompanyID, req.Date, req.VehicleID, req.DriverID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	zl := logger.Get()
	zl.Info().
		Int64("routeId", route.ID).
		Int64("managerId", ident.UserID).
		Int64("companyId", *ident.CompanyID).
		Msg("daily route created")

	c.JSON(http.StatusCreated, gin.H{"data": route})
}

type updateRouteRequest struct {
	Status  string   `json:"status"`
	LastLat *float64 `json:"lastLat"`
	LastLng *float64 `json:"lastLng"`
}

// PUT /api/daily-routes/:id — managers update any route of their
// company; drivers only routes assigned to them (the scope predicate
// enforces that, so a foreign route reads as not found).
func UpdateDailyRoute(c *gin.Context) {
	ident := middleware.Identity(c)
	routeID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req updateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid route payload")
		return
	}
	if req.Status != "" && !domain.ValidRouteStatus(req.Status) {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "status must be PENDING, IN_PROGRESS, FINISHED or CANCELLED")
		return
	}

	p, err := scope.Build(ident, scope.Routes)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	repo := repositories.RoutesRepository{}
	route, err := repo.Update(p.WithID(routeID), repositories.RouteUpdate{
		Status:  req.Status,
		LastLat: req.LastLat,
		LastLng: req.LastLng,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	zl := logger.Get()
	zl.Info().
		Int64("routeId", routeID).
		Int64("userId", ident.UserID).
		Str("role", string(ident.Role)).
		Msg("daily route updated")

	c.JSON(http.StatusOK, gin.H{"data": route})
}

// GET /api/daily-routes/:id/manifest — printable trip sheet (PDF).
func GetRouteManifest(c *gin.Context) {
	ident := middleware.Identity(c)
	routeID, ok := parseIDParam(c)
	if !ok {
		return
	}

	p, err := scope.Build(ident, scope.Routes)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	svc := services.ManifestService{}
	pdfBytes, filename, err := svc.Generate(p.WithID(routeID))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
