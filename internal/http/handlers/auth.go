package handlers

import (
	"net/http"
	"strconv"
	"time"

	"subite-backend/internal/domain"
	"subite-backend/internal/http/middleware"
	"subite-backend/internal/logger"
	"subite-backend/internal/repositories"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	jwtSecret = []byte("dev-secret-change-me")
	jwtExpiry = 24 * time.Hour
)

// ConfigureAuth installs the signing secret and token lifetime used by
// login and registration.
func ConfigureAuth(secret string, expiry time.Duration) {
	jwtSecret = []byte(secret)
	if expiry > 0 {
		jwtExpiry = expiry
	}
}

func issueToken(u repositories.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   strconv.FormatInt(u.ID, 10),
		"role":  string(u.Role),
		"email": u.Email,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(jwtExpiry).Unix(),
	}
	if u.CompanyID != nil {
		claims["companyId"] = strconv.FormatInt(*u.CompanyID, 10)
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login verifies email/password credentials and issues a bearer token.
func Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "email and password are required")
		return
	}

	repo := repositories.UsersRepository{}
	creds, err := repo.GetCredentials(req.Email)
	if err != nil {
		if domain.IsNotFound(err) {
			respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
			return
		}
		RespondDomainError(c, err)
		return
	}
	if creds.PasswordHash == "" {
		respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(req.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
		return
	}

	token, err := issueToken(creds.User)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"token": token, "user": creds.User},
	})
}

type registerRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	CompanyID *int64 `json:"companyId"`
	Password  string `json:"password" binding:"required,min=6"`
}

// Register creates an account. Role defaults to PASSENGER.
func Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid registration payload")
		return
	}

	role := domain.RolePassenger
	if req.Role != "" {
		parsed, ok := domain.ParseRole(req.Role)
		if !ok {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "role must be MANAGER, DRIVER or PASSENGER")
			return
		}
		role = parsed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	repo := repositories.UsersRepository{}
	user, err := repo.Create(req.Email, req.Name, req.Phone, role, req.CompanyID, string(hash))
	if err != nil {
		if domain.IsConflict(err) {
			respondError(c, http.StatusBadRequest, "EMAIL_EXISTS", "Email already in use")
			return
		}
		RespondDomainError(c, err)
		return
	}

	token, err := issueToken(user)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	zl := logger.Get()
	zl.Info().
		Int64("userId", user.ID).
		Str("email", user.Email).
		Str("role", string(user.Role)).
		Msg("user registered")

	c.JSON(http.StatusCreated, gin.H{
		"data": gin.H{"token": token, "user": user},
	})
}

// CurrentUser returns the authenticated caller's profile with its
// company summary. Serves both /auth/me and /users/me.
func CurrentUser(c *gin.Context) {
	ident := middleware.Identity(c)
	if ident == nil {
		RespondDomainError(c, domain.UnauthenticatedError{})
		return
	}

	repo := repositories.UsersRepository{}
	user, err := repo.GetProfile(ident.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": user})
}
