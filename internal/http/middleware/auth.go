package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"subite-backend/internal/domain"
	"subite-backend/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const identityKey = "identity"

// Authenticate verifies the bearer token and attaches the caller's
// Identity to the request context. A missing token is 401; an invalid or
// expired one is 403.
func Authenticate(secret string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if header == "" || len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"code": "UNAUTHORIZED", "message": "Access token required"},
			})
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (any, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return key, nil
		})
		if err != nil || !token.Valid {
			zl := logger.Get()
			zl.Warn().Err(err).Str("request_id", GetRequestID(c)).Msg("invalid token")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{"code": "FORBIDDEN", "message": "Invalid or expired token"},
			})
			return
		}

		ident, ok := identityFromClaims(claims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{"code": "FORBIDDEN", "message": "Invalid or expired token"},
			})
			return
		}

		c.Set(identityKey, ident)
		c.Next()
	}
}

// identityFromClaims maps the token payload {sub, role, companyId,
// email} onto a request Identity.
func identityFromClaims(claims jwt.MapClaims) (*domain.Identity, bool) {
	sub, _ := claims["sub"].(string)
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || userID <= 0 {
		return nil, false
	}

	roleStr, _ := claims["role"].(string)
	role, ok := domain.ParseRole(roleStr)
	if !ok {
		return nil, false
	}

	ident := &domain.Identity{UserID: userID, Role: role}
	if email, ok := claims["email"].(string); ok {
		ident.Email = email
	}
	if companyStr, ok := claims["companyId"].(string); ok && companyStr != "" {
		companyID, err := strconv.ParseInt(companyStr, 10, 64)
		if err != nil {
			return nil, false
		}
		ident.CompanyID = &companyID
	}
	return ident, true
}

// Identity returns the authenticated caller attached by Authenticate,
// or nil when the request carries none.
func Identity(c *gin.Context) *domain.Identity {
	if v, ok := c.Get(identityKey); ok {
		if ident, ok := v.(*domain.Identity); ok {
			return ident
		}
	}
	return nil
}

// SetIdentity attaches an identity directly. Intended for tests.
func SetIdentity(c *gin.Context, ident *domain.Identity) {
	c.Set(identityKey, ident)
}
