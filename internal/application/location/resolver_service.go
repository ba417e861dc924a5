package location

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/location"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ResolverService resolves a postal code to its city, state and country
type ResolverService struct {
	pincodeRepo location.PincodeRepository
	cityRepo    location.CityRepository
	stateRepo   location.StateRepository
	countryRepo location.CountryRepository
	cache       ResolutionCache
	logger      *zap.Logger
}

// NewResolverService creates a new ResolverService
func NewResolverService(
	pincodeRepo location.PincodeRepository,
	cityRepo location.CityRepository,
	stateRepo location.StateRepository,
	countryRepo location.CountryRepository,
	cache ResolutionCache,
	logger *zap.Logger,
) *ResolverService {
	if cache == nil {
		cache = NoopResolutionCache{}
	}
	return &ResolverService{
		pincodeRepo: pincodeRepo,
		cityRepo:    cityRepo,
		stateRepo:   stateRepo,
		countryRepo: countryRepo,
		cache:       cache,
		logger:      logger,
	}
}

// Resolve walks Pincode -> City -> State -> Country. The first missing link
// short-circuits with a not-found error naming that entity.
func (s *ResolverService) Resolve(ctx context.Context, raw string) (*ResolvedLocation, error) {
	code, err := location.NormalizePincode(raw)
	if err != nil {
		return nil, shared.NewValidationError("pincode must be exactly 6 digits")
	}

	if cached, ok, err := s.cache.Get(ctx, code); err != nil {
		s.logger.Warn("Location cache read failed", zap.String("pincode", code), zap.Error(err))
	} else if ok {
		return cached, nil
	}

	gen, genErr := s.cache.Generation(ctx)
	if genErr != nil {
		s.logger.Warn("Location cache generation read failed", zap.String("pincode", code), zap.Error(genErr))
	}

	pincode, err := s.pincodeRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, notFoundAs(err, "Pincode")
	}
	resolved, err := s.walk(ctx, pincode)
	if err != nil {
		return nil, err
	}

	if genErr == nil {
		if err := s.cache.Set(ctx, gen, code, resolved); err != nil {
			s.logger.Warn("Location cache write failed", zap.String("pincode", code), zap.Error(err))
		}
	}
	return resolved, nil
}

// ResolveByID resolves the chain above a specific pincode row. It is not
// cached because several cities may share one postal code.
func (s *ResolverService) ResolveByID(ctx context.Context, pincodeID uuid.UUID) (*ResolvedLocation, error) {
	pincode, err := s.pincodeRepo.FindByID(ctx, pincodeID)
	if err != nil {
		return nil, notFoundAs(err, "Pincode")
	}
	return s.walk(ctx, pincode)
}

func (s *ResolverService) walk(ctx context.Context, pincode *location.Pincode) (*ResolvedLocation, error) {
	city, err := s.cityRepo.FindByID(ctx, pincode.CityID)
	if err != nil {
		return nil, notFoundAs(err, "City")
	}
	state, err := s.stateRepo.FindByID(ctx, city.StateID)
	if err != nil {
		return nil, notFoundAs(err, "State")
	}
	country, err := s.countryRepo.FindByID(ctx, state.CountryID)
	if err != nil {
		return nil, notFoundAs(err, "Country")
	}

	return &ResolvedLocation{
		PincodeID:   pincode.ID,
		Pincode:     pincode.Code,
		AreaName:    pincode.AreaName,
		CityID:      city.ID,
		CityName:    city.Name,
		StateID:     state.ID,
		StateName:   state.Name,
		CountryID:   country.ID,
		CountryName: country.Name,
	}, nil
}
