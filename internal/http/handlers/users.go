package handlers

import (
	"net/http"

	"subite-backend/internal/domain"
	"subite-backend/internal/http/middleware"
	"subite-backend/internal/logger"
	"subite-backend/internal/repositories"
	"subite-backend/internal/scope"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// GET /api/users?limit=&cursor=&role=
// Listing users is a manager capability; the scope table rejects every
// other role before a query is built.
func GetUsers(c *gin.Context) {
	ident := middleware.Identity(c)

	p, err := scope.Build(ident, scope.Users)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	if raw := c.Query("role"); raw != "" {
		role, ok := domain.ParseRole(raw)
		if !ok {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "role must be MANAGER, DRIVER or PASSENGER")
			return
		}
		p = p.WithRole(role)
	}

	params, ok := parseListParams(c)
	if !ok {
		return
	}

	repo := repositories.UsersRepository{}
	page, err := repo.List(p, params.Cursor, params.Limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	zl := logger.Get()
	zl.Info().
		Int64("companyId", p.CompanyID).
		Int64("managerId", ident.UserID).
		Int("count", len(page.Data)).
		Str("roleFilter", c.Query("role")).
		Msg("users list retrieved")

	c.JSON(http.StatusOK, page)
}

type createUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Role     string `json:"role" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// POST /api/users — manager creates an account inside their company.
func CreateUser(c *gin.Context) {
	ident := middleware.Identity(c)

	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid user payload")
		return
	}
	role, ok := domain.ParseRole(req.Role)
	if !ok {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "role must be MANAGER, DRIVER or PASSENGER")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	repo := repositories.UsersRepository{}
	user, err := repo.Create(req.Email, req.Name, req.Phone, role, ident.CompanyID, string(hash))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	zl := logger.Get()
	zl.Info().
		Int64("userId", user.ID).
		Int64("managerId", ident.UserID).
		Int64("companyId", *ident.CompanyID).
		Msg("user created")

	c.JSON(http.StatusCreated, gin.H{"data": user})
}

type updateUserRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Role  *string `json:"role"`
}

// PUT /api/users/:id — a user may update their own name and phone; a
// manager of the same company may additionally change the role.
func UpdateUser(c *gin.Context) {
	ident := middleware.Identity(c)
	if ident == nil {
		RespondDomainError(c, domain.UnauthenticatedError{})
		return
	}

	userID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid user payload")
		return
	}

	repo := repositories.UsersRepository{}
	target, err := repo.GetByID(userID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	isOwnProfile := ident.UserID == userID
	isManager := ident.Role == domain.RoleManager
	sameCompany := ident.CompanyID != nil && target.CompanyID != nil && *ident.CompanyID == *target.CompanyID

	if !isOwnProfile && (!isManager || !sameCompany) {
		RespondDomainError(c, domain.ForbiddenError{})
		return
	}

	var role *domain.Role
	if req.Role != nil && isManager {
		parsed, ok := domain.ParseRole(*req.Role)
		if !ok {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "role must be MANAGER, DRIVER or PASSENGER")
			return
		}
		role = &parsed
	}

	user, err := repo.Update(userID, req.Name, req.Phone, role)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	zl := logger.Get()
	zl.Info().
		Int64("userId", userID).
		Int64("updatedBy", ident.UserID).
		Bool("isOwnProfile", isOwnProfile).
		Msg("user updated")

	c.JSON(http.StatusOK, gin.H{"data": user})
}
