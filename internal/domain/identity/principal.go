// Package identity describes who is calling the API.
package identity

import (
	"strings"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role is the coarse authorization role carried in access tokens
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

const bcryptCost = 12

// adminNamespace derives stable admin user ids from usernames
var adminNamespace = uuid.MustParse("8f4a7c1e-3b2d-4e5f-9a6b-1c2d3e4f5a6b")

// Principal is an authenticated caller
type Principal struct {
	UserID   uuid.UUID
	Username string
	Role     Role
}

// IsAdmin reports whether the principal has the admin role
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// AdminAccount is the back-office account configured for the deployment
type AdminAccount struct {
	Username     string
	PasswordHash string
}

// NewAdminAccount builds an admin account from its configured credentials
func NewAdminAccount(username, passwordHash string) (*AdminAccount, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, shared.NewValidationError("admin username is required")
	}
	if passwordHash == "" {
		return nil, shared.NewValidationError("admin password hash is required")
	}
	return &AdminAccount{Username: username, PasswordHash: passwordHash}, nil
}

// UserID returns the stable id of the admin account
func (a *AdminAccount) UserID() uuid.UUID {
	return uuid.NewSHA1(adminNamespace, []byte(strings.ToLower(a.Username)))
}

// Principal returns the admin principal
func (a *AdminAccount) Principal() Principal {
	return Principal{UserID: a.UserID(), Username: a.Username, Role: RoleAdmin}
}

// Authenticate checks the username and password
func (a *AdminAccount) Authenticate(username, password string) bool {
	if !strings.EqualFold(strings.TrimSpace(username), a.Username) {
		// Still run bcrypt so the failure path costs the same.
		_ = bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password))
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
}

// HashPassword hashes a password for the admin configuration
func HashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", shared.NewValidationError("password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
