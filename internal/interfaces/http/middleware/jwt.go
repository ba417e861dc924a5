package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Gin context keys populated for authenticated requests.
const (
	JWTClaimsKey = "jwt_claims"
	JWTUserIDKey = "jwt_user_id"
	JWTRoleKey   = "jwt_role"
)

var (
	errNoCredentials = errors.New("no bearer token")
	errBadScheme     = errors.New("authorization scheme is not Bearer")
)

// Authenticator turns bearer tokens into request principals.
type Authenticator struct {
	tokens  *auth.JWTService
	revoked auth.TokenBlacklist
}

// NewAuthenticator validates tokens with tokens. revoked may be nil, in
// which case logged-out tokens stay valid until they expire.
func NewAuthenticator(tokens *auth.JWTService, revoked auth.TokenBlacklist) *Authenticator {
	return &Authenticator{tokens: tokens, revoked: revoked}
}

// Required rejects the request with 401 unless it carries a valid,
// unrevoked access token.
func (a *Authenticator) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := a.authenticate(c)
		if err != nil {
			logger.FromGin(c).Warn("authentication failed", zap.Error(err))
			code, msg := rejection(err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(code, msg, requestIDFromContext(c)))
			return
		}
		bindClaims(c, claims)
		c.Next()
	}
}

// Optional binds the caller when a usable token is present and otherwise
// serves the request anonymously.
func (a *Authenticator) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := a.authenticate(c); err == nil {
			bindClaims(c, claims)
		}
		c.Next()
	}
}

func (a *Authenticator) authenticate(c *gin.Context) (*auth.Claims, error) {
	raw, err := bearerToken(c.GetHeader("Authorization"))
	if err != nil {
		return nil, err
	}
	claims, err := a.tokens.ValidateAccessToken(raw)
	if err != nil {
		return nil, err
	}
	if a.revoked == nil || claims.ID == "" {
		return claims, nil
	}

	revoked, err := a.revoked.IsBlacklisted(c.Request.Context(), claims.ID)
	switch {
	case err != nil:
		// revocation store outage: accept the signature check alone
		logger.FromGin(c).Error("token revocation lookup failed", zap.String("jti", claims.ID), zap.Error(err))
	case revoked:
		return nil, auth.ErrTokenRevoked
	}
	return claims, nil
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errNoCredentials
	}
	scheme, token, _ := strings.Cut(header, " ")
	if !strings.EqualFold(scheme, "Bearer") {
		return "", errBadScheme
	}
	if token = strings.TrimSpace(token); token == "" {
		return "", auth.ErrInvalidToken
	}
	return token, nil
}

func rejection(err error) (code, message string) {
	switch {
	case errors.Is(err, errNoCredentials):
		return dto.ErrCodeUnauthorized, "Authentication required"
	case errors.Is(err, auth.ErrExpiredToken):
		return dto.ErrCodeTokenExpired, "Token has expired"
	case errors.Is(err, auth.ErrTokenRevoked):
		return dto.ErrCodeTokenRevoked, "Token has been revoked"
	case errors.Is(err, auth.ErrTokenNotYetValid):
		return dto.ErrCodeTokenInvalid, "Token is not yet valid"
	}
	return dto.ErrCodeTokenInvalid, "Invalid token"
}

func bindClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(JWTClaimsKey, claims)
	c.Set(JWTUserIDKey, claims.UserID)
	c.Set(JWTRoleKey, claims.Role)
	c.Request = c.Request.WithContext(logger.WithCaller(c.Request.Context(), claims.UserID, claims.Role))
}

// GetJWTClaims returns the claims bound by the Authenticator, or nil.
func GetJWTClaims(c *gin.Context) *auth.Claims {
	claims, _ := c.Value(JWTClaimsKey).(*auth.Claims)
	return claims
}

// GetPrincipal returns the authenticated caller, if any.
func GetPrincipal(c *gin.Context) (identity.Principal, bool) {
	if claims := GetJWTClaims(c); claims != nil {
		return claims.Principal(), true
	}
	return identity.Principal{}, false
}

func GetJWTUserID(c *gin.Context) string { return c.GetString(JWTUserIDKey) }

func GetJWTRole(c *gin.Context) string { return c.GetString(JWTRoleKey) }
