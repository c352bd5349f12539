package middleware

import (
	"net/http"
	"strings"

	"subite-backend/internal/domain"
	"subite-backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// RequireRoles only lets through requests whose identity carries one of
// the allowed roles. It assumes Authenticate ran earlier in the chain.
func RequireRoles(allowedRoles ...domain.Role) gin.HandlerFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	names := make([]string, 0, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
		names = append(names, string(r))
	}
	required := strings.Join(names, ", ")

	return func(c *gin.Context) {
		ident := Identity(c)
		if ident == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"code": "UNAUTHORIZED", "message": "Authentication required"},
			})
			return
		}

		if _, ok := allowed[ident.Role]; !ok {
			zl := logger.Get()
			zl.Warn().
				Int64("userId", ident.UserID).
				Str("userRole", string(ident.Role)).
				Str("requiredRoles", required).
				Str("endpoint", c.Request.URL.Path).
				Msg("insufficient role permissions")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{"code": "FORBIDDEN", "message": "Insufficient permissions. Required roles: " + required},
			})
			return
		}

		c.Next()
	}
}

// RequireCompany rejects identities that are not assigned to any
// company before company-scoped handlers run.
func RequireCompany() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := Identity(c)
		if ident == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"code": "UNAUTHORIZED", "message": "Authentication required"},
			})
			return
		}
		if ident.CompanyID == nil {
			zl := logger.Get()
			zl.Warn().
				Int64("userId", ident.UserID).
				Str("endpoint", c.Request.URL.Path).
				Msg("user has no company assignment")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{"code": "FORBIDDEN", "message": "User must be assigned to a company"},
			})
			return
		}
		c.Next()
	}
}
