package identity

import (
	"time"

	"github.com/google/uuid"
)

// LoginInput contains the input for admin login
type LoginInput struct {
	Username string
	Password string
	IP       string // Client IP for audit logging
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	TokenType   string
	User        UserInfo
}

// UserInfo describes the authenticated caller
type UserInfo struct {
	ID       uuid.UUID
	Username string
	Role     string
}

// LogoutInput contains the input for logout
type LogoutInput struct {
	UserID    uuid.UUID
	TokenJTI  string
	ExpiresAt time.Time
}
