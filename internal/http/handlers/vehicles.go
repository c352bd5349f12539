package handlers

import (
	"net/http"

	"subite-backend/internal/http/middleware"
	"subite-backend/internal/logger"
	"subite-backend/internal/repositories"
	"subite-backend/internal/scope"

	"github.com/gin-gonic/gin"
)

// GET /api/vehicles/:id
// Visibility runs through the scope predicate, so a vehicle outside the
// caller's scope is indistinguishable from one that does not exist.
func GetVehicle(c *gin.Context) {
	ident := middleware.Identity(c)
	vehicleID, ok := parseIDParam(c)
	if !ok {
		return
	}

	p, err := scope.Build(ident, scope.Vehicles)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	repo := repositories.VehiclesRepository{}
	vehicle, err := repo.Get(p.WithID(vehicleID))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	zl := logger.Get()
	zl.Info().
		Int64("vehicleId", vehicleID).
		Int64("userId", ident.UserID).
		Str("role", string(ident.Role)).
		Msg("vehicle retrieved")

	c.JSON(http.StatusOK, gin.H{"data": vehicle})
}

type vehicleRequest struct {
	Name     string `json:"name"`
	Plate    string `json:"plate"`
	DriverID *int64 `json:"driverId"`
	Active   *bool  `json:"active"`
}

// POST /api/vehicles — manager creates a vehicle in their company. An
// assigned driver must be a DRIVER of the same company.
func CreateVehicle(c *gin.Context) {
	ident := middleware.Identity(c)

	var req vehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid vehicle payload")
		return
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

	repo := repositories.VehiclesRepository{}
	vehicle, err := repo.Create(*ident.CompanyID, repositories.VehicleInput{
		Name:     req.Name,
		Plate:    req.Plate,
		DriverID: req.DriverID,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	zl := logger.Get()
	zl.Info().
		Int64("vehicleId", vehicle.ID).
		Int64("managerId", ident.UserID).
		Int64("companyId", *ident.CompanyID).
		Msg("vehicle created")

	c.JSON(http.StatusCreated, gin.H{"data": vehicle})
}

// PUT /api/vehicles/:id — manager updates a vehicle of their company.
func UpdateVehicle(c *gin.Context) {
	ident := middleware.Identity(c)
	vehicleID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req vehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid vehicle payload")
		return
	}

	repo := repositories.VehiclesRepository{}
	if _, err := repo.Get(scope.Predicate{CompanyID: *ident.CompanyID}.WithID(vehicleID)); err != nil {
		RespondDomainError(c, err)
		return
	}

	if req.DriverID != nil && *req.DriverID > 0 {
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

	vehicle, err := repo.Update(vehicleID, *ident.CompanyID, repositories.VehicleInput{
		Name:     req.Name,
		Plate:    req.Plate,
		DriverID: req.DriverID,
		Active:   req.Active,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	zl := logger.Get()
	zl.Info().
		Int64("vehicleId", vehicleID).
		Int64("managerId", ident.UserID).
		Msg("vehicle updated")

	c.JSON(http.StatusOK, gin.H{"data": vehicle})
}

// DELETE /api/vehicles/:id — manager removes a vehicle of their company.
func DeleteVehicle(c *gin.Context) {
	ident := middleware.Identity(c)
	vehicleID, ok := parseIDParam(c)
	if !ok {
		return
	}

	repo := repositories.VehiclesRepository{}
	if err := repo.Delete(vehicleID, *ident.CompanyID); err != nil {
		RespondDomainError(c, err)
		return
	}

	zl := logger.Get()
	zl.Info().
		Int64("vehicleId", vehicleID).
		Int64("managerId", ident.UserID).
		Msg("vehicle deleted")

	c.Status(http.StatusNoContent)
}
