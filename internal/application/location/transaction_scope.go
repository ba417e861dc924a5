package location

import (
	"context"

	"github.com/storefront/backend/internal/domain/location"
)

// TransactionScope provides transactional access to the location repositories.
// All repository calls made inside fn share one database transaction, which is
// rolled back when fn returns an error.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the location repositories bound to one transaction
type TransactionalRepositories interface {
	CountryRepo() location.CountryRepository
	StateRepo() location.StateRepository
	CityRepo() location.CityRepository
	PincodeRepo() location.PincodeRepository
}

// NoOpTransactionScope runs fn against plain repositories without a transaction.
// Used in tests.
type NoOpTransactionScope struct {
	countryRepo location.CountryRepository
	stateRepo   location.StateRepository
	cityRepo    location.CityRepository
	pincodeRepo location.PincodeRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope
func NewNoOpTransactionScope(
	countryRepo location.CountryRepository,
	stateRepo location.StateRepository,
	cityRepo location.CityRepository,
	pincodeRepo location.PincodeRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		countryRepo: countryRepo,
		stateRepo:   stateRepo,
		cityRepo:    cityRepo,
		pincodeRepo: pincodeRepo,
	}
}

// Execute runs fn without a transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) CountryRepo() location.CountryRepository { return s.countryRepo }
func (s *NoOpTransactionScope) StateRepo() location.StateRepository     { return s.stateRepo }
func (s *NoOpTransactionScope) CityRepo() location.CityRepository       { return s.cityRepo }
func (s *NoOpTransactionScope) PincodeRepo() location.PincodeRepository { return s.pincodeRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
