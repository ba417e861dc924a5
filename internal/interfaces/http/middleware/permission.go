package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// RequireRole lets the request through only when the caller holds one of
// roles. Anonymous callers get 401, everyone else 403. Mount it behind
// Authenticator.Required.
func RequireRole(roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeUnauthorized, "Authentication required", requestIDFromContext(c)))
			return
		}
		if slices.Contains(roles, principal.Role) {
			c.Next()
			return
		}

		logger.FromGin(c).Warn("role check failed",
			zap.Stringer("user_id", principal.UserID),
			zap.String("role", string(principal.Role)))
		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeForbidden, "Insufficient permissions", requestIDFromContext(c)))
	}
}

func RequireAdmin() gin.HandlerFunc { return RequireRole(identity.RoleAdmin) }

// HasRole reports whether the authenticated caller has role.
func HasRole(c *gin.Context, role identity.Role) bool {
	principal, ok := GetPrincipal(c)
	return ok && principal.Role == role
}
