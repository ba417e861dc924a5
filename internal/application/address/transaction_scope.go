package address

import (
	"context"

	"github.com/storefront/backend/internal/domain/address"
)

// TransactionScope runs address writes in one database transaction
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the address repository bound to a transaction
type TransactionalRepositories interface {
	AddressRepo() address.AddressRepository
}

// NoOpTransactionScope runs fn against a plain repository. Used in tests.
type NoOpTransactionScope struct {
	addressRepo address.AddressRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope
func NewNoOpTransactionScope(addressRepo address.AddressRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{addressRepo: addressRepo}
}

// Execute runs fn without a transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// AddressRepo returns the address repository
func (s *NoOpTransactionScope) AddressRepo() address.AddressRepository {
	return s.addressRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
