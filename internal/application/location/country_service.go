package location

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/location"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CountryService handles country operations
type CountryService struct {
	countryRepo location.CountryRepository
	cache       ResolutionCache
	logger      *zap.Logger
}

// NewCountryService creates a new CountryService
func NewCountryService(countryRepo location.CountryRepository, cache ResolutionCache, logger *zap.Logger) *CountryService {
	return &CountryService{countryRepo: countryRepo, cache: cache, logger: logger}
}

// Create creates a new country
func (s *CountryService) Create(ctx context.Context, req CreateCountryRequest) (*CountryResponse, error) {
	country, err := location.NewCountry(req.Name, req.ISOCode, req.PhoneCode)
	if err != nil {
		return nil, err
	}
	if err := applyStatus(req.Status, country.SetStatus); err != nil {
		return nil, err
	}

	if err := s.countryRepo.Save(ctx, country); err != nil {
		return nil, err
	}
	invalidateCache(ctx, s.cache, s.logger)

	resp := ToCountryResponse(country)
	return &resp, nil
}

// GetByID retrieves a country by ID
func (s *CountryService) GetByID(ctx context.Context, id uuid.UUID) (*CountryResponse, error) {
	country, err := s.countryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "Country")
	}
	resp := ToCountryResponse(country)
	return &resp, nil
}

// List lists countries
func (s *CountryService) List(ctx context.Context, filter CountryListFilter) (shared.Paginated[CountryResponse], error) {
	f := filter.Filter()
	countries, total, err := s.countryRepo.FindAll(ctx, f)
	if err != nil {
		return shared.Paginated[CountryResponse]{}, err
	}
	return shared.NewPaginated(toResponses(countries, ToCountryResponse), total, f), nil
}

// Update applies the fields present in req
func (s *CountryService) Update(ctx context.Context, id uuid.UUID, req UpdateCountryRequest) (*CountryResponse, error) {
	country, err := s.countryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "Country")
	}

	if req.Name != nil {
		if err := country.SetName(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.ISOCode != nil {
		if err := country.SetISOCode(*req.ISOCode); err != nil {
			return nil, err
		}
	}
	if req.PhoneCode != nil {
		if err := country.SetPhoneCode(*req.PhoneCode); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		if err := applyStatus(*req.Status, country.SetStatus); err != nil {
			return nil, err
		}
	}

	if err := s.countryRepo.Save(ctx, country); err != nil {
		return nil, err
	}
	invalidateCache(ctx, s.cache, s.logger)

	resp := ToCountryResponse(country)
	return &resp, nil
}

// Delete deletes a country that has no states
func (s *CountryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.countryRepo.FindByID(ctx, id); err != nil {
		return notFoundAs(err, "Country")
	}
	hasStates, err := s.countryRepo.HasStates(ctx, id)
	if err != nil {
		return err
	}
	if hasStates {
		return shared.NewConflictError("Country has states and cannot be deleted")
	}
	if err := s.countryRepo.Delete(ctx, id); err != nil {
		return err
	}
	invalidateCache(ctx, s.cache, s.logger)
	return nil
}
