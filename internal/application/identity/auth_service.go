package identity

import (
	"context"
	"time"

	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// TokenIssuer signs access tokens
type TokenIssuer interface {
	GenerateAccessToken(p identity.Principal) (*auth.AccessToken, error)
}

// AuthService handles authentication operations for the back-office
type AuthService struct {
	admin     *identity.AdminAccount
	issuer    TokenIssuer
	blacklist auth.TokenBlacklist
	logger    *zap.Logger
	now       func() time.Time
}

// NewAuthService creates a new authentication service
func NewAuthService(
	admin *identity.AdminAccount,
	issuer TokenIssuer,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		admin:     admin,
		issuer:    issuer,
		blacklist: blacklist,
		logger:    logger,
		now:       time.Now,
	}
}

// Login authenticates the admin account and returns an access token
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	s.logger.Info("Login attempt", zap.String("username", input.Username), zap.String("ip", input.IP))

	if s.admin == nil {
		s.logger.Warn("Login attempted but no admin account is configured")
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	if !s.admin.Authenticate(input.Username, input.Password) {
		s.logger.Warn("Invalid credentials", zap.String("username", input.Username), zap.String("ip", input.IP))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	principal := s.admin.Principal()
	token, err := s.issuer.GenerateAccessToken(principal)
	if err != nil {
		s.logger.Error("Failed to generate access token", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication token")
	}

	s.logger.Info("Admin logged in successfully",
		zap.String("username", principal.Username),
		zap.String("user_id", principal.UserID.String()))

	return &LoginResult{
		AccessToken: token.Token,
		ExpiresAt:   token.ExpiresAt,
		TokenType:   "Bearer",
		User:        toUserInfo(principal),
	}, nil
}

// Logout revokes the presented access token until it would have expired
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if input.TokenJTI == "" {
		return nil
	}
	ttl := input.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.blacklist.AddToBlacklist(ctx, input.TokenJTI, ttl); err != nil {
		s.logger.Error("Failed to revoke token", zap.String("user_id", input.UserID.String()), zap.Error(err))
		return err
	}
	s.logger.Info("User logged out", zap.String("user_id", input.UserID.String()))
	return nil
}

// CurrentUser describes the caller
func (s *AuthService) CurrentUser(p identity.Principal) UserInfo {
	return toUserInfo(p)
}

func toUserInfo(p identity.Principal) UserInfo {
	return UserInfo{ID: p.UserID, Username: p.Username, Role: string(p.Role)}
}
