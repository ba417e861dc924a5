package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	identityapp "github.com/storefront/backend/internal/application/identity"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// LoginRequest represents the login credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=100" example:"admin"`
	Password string `json:"password" binding:"required,max=128" example:"s3cret-passw0rd"`
}

// AuthUserResponse describes the authenticated caller
type AuthUserResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username" example:"admin"`
	Role     string    `json:"role" example:"admin"`
}

// LoginResponse carries the issued access token
type LoginResponse struct {
	AccessToken string           `json:"access_token"`
	TokenType   string           `json:"token_type" example:"Bearer"`
	ExpiresAt   time.Time        `json:"expires_at"`
	User        AuthUserResponse `json:"user"`
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *identityapp.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func toAuthUserResponse(u identityapp.UserInfo) AuthUserResponse {
	return AuthUserResponse{ID: u.ID, Username: u.Username, Role: u.Role}
}

// Login godoc
//
//	@Summary		Admin login
//	@Description	Authenticate the back-office admin and issue an access token
//	@Tags			auth
//	@ID				login
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Login credentials"
//	@Success		200		{object}	APIResponse[LoginResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		429		{object}	ErrorResponse
//	@Router			/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), identityapp.LoginInput{
		Username: req.Username,
		Password: req.Password,
		IP:       c.ClientIP(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Login successful", LoginResponse{
		AccessToken: result.AccessToken,
		TokenType:   result.TokenType,
		ExpiresAt:   result.ExpiresAt,
		User:        toAuthUserResponse(result.User),
	})
}

// Logout godoc
//
//	@Summary		Logout
//	@Description	Revokes the presented access token until it expires
//	@Tags			auth
//	@ID				logout
//	@Produce		json
//	@Success		200	{object}	SuccessResponse
//	@Failure		401	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	input := identityapp.LogoutInput{TokenJTI: claims.ID}
	if id, err := uuid.Parse(claims.UserID); err == nil {
		input.UserID = id
	}
	if claims.ExpiresAt != nil {
		input.ExpiresAt = claims.ExpiresAt.Time
	}

	if err := h.authService.Logout(c.Request.Context(), input); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Logged out successfully", nil)
}

// Me godoc
//
//	@Summary	Current user
//	@Tags		auth
//	@ID			currentUser
//	@Produce	json
//	@Success	200	{object}	APIResponse[AuthUserResponse]
//	@Failure	401	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	principal, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	h.Success(c, "Current user", toAuthUserResponse(h.authService.CurrentUser(principal)))
}
