package handlers

import (
	"net/http"

	"subite-backend/internal/domain"
	"subite-backend/internal/http/middleware"
	"subite-backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// apiError is the error envelope every failing response carries.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{"error": apiError{Code: code, Message: message}})
}

// RespondDomainError maps domain errors onto the HTTP error taxonomy.
// Internal failures are logged with context and answered with a generic
// message so no detail leaks to the caller.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsUnauthenticated(err):
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
	case domain.IsForbidden(err):
		respondError(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "CONFLICT", err.Error())
	default:
		zl := logger.Get()
		zl.Error().
			Err(err).
			Str("request_id", middleware.GetRequestID(c)).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
