package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(env *testEnv) *gin.Engine {
	h := NewAuthHandler(env.authSvc)
	r := gin.New()
	r.Use(middleware.RequestID())
	r.POST("/auth/login", h.Login)
	protected := r.Group("/auth", middleware.NewAuthenticator(env.jwt, env.blacklist).Required())
	protected.POST("/logout", h.Logout)
	protected.GET("/me", h.Me)
	return r
}

func withBearer(r http.Handler, method, path, token string) int {
	req := newRequest(method, path)
	req.Header.Set("Authorization", "Bearer "+token)
	w := serve(r, req)
	return w.Code
}

func TestAuthHandler_Login(t *testing.T) {
	env := newTestEnv(t)
	r := newAuthRouter(env)

	t.Run("success", func(t *testing.T) {
		w := perform(r, http.MethodPost, "/auth/login", LoginRequest{Username: "ADMIN", Password: testAdminPassword})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		resp := decode[LoginResponse](t, w).Data
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Equal(t, "admin", resp.User.Username)
		assert.Equal(t, "admin", resp.User.Role)
		assert.False(t, resp.ExpiresAt.IsZero())
	})

	t.Run("wrong password", func(t *testing.T) {
		w := perform(r, http.MethodPost, "/auth/login", LoginRequest{Username: "admin", Password: "nope-nope-nope"})
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidCredentials, decode[any](t, w).Error.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		w := perform(r, http.MethodPost, "/auth/login", map[string]any{"username": "admin"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_MeAndLogout(t *testing.T) {
	env := newTestEnv(t)
	r := newAuthRouter(env)

	w := perform(r, http.MethodPost, "/auth/login", LoginRequest{Username: "admin", Password: testAdminPassword})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token := decode[LoginResponse](t, w).Data.AccessToken

	req := newRequest(http.MethodGet, "/auth/me")
	req.Header.Set("Authorization", "Bearer "+token)
	w = serve(r, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	me := decode[AuthUserResponse](t, w).Data
	assert.Equal(t, "admin", me.Username)

	assert.Equal(t, http.StatusOK, withBearer(r, http.MethodPost, "/auth/logout", token))
	assert.Equal(t, http.StatusUnauthorized, withBearer(r, http.MethodGet, "/auth/me", token), "revoked token is rejected")
}

func TestAuthHandler_RequiresClaims(t *testing.T) {
	env := newTestEnv(t)
	h := NewAuthHandler(env.authSvc)
	r := env.router(nil)
	r.POST("/auth/logout", h.Logout)
	r.GET("/auth/me", h.Me)

	assert.Equal(t, http.StatusUnauthorized, perform(r, http.MethodPost, "/auth/logout", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, perform(r, http.MethodGet, "/auth/me", nil).Code)
}
