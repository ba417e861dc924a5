package location

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/location"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CityService handles city operations
type CityService struct {
	cityRepo  location.CityRepository
	stateRepo location.StateRepository
	cache     ResolutionCache
	logger    *zap.Logger
}

// NewCityService creates a new CityService
func NewCityService(
	cityRepo location.CityRepository,
	stateRepo location.StateRepository,
	cache ResolutionCache,
	logger *zap.Logger,
) *CityService {
	return &CityService{cityRepo: cityRepo, stateRepo: stateRepo, cache: cache, logger: logger}
}

// Create creates a new city
func (s *CityService) Create(ctx context.Context, req CreateCityRequest) (*CityResponse, error) {
	if _, err := s.stateRepo.FindByID(ctx, req.StateID); err != nil {
		return nil, notFoundAs(err, "State")
	}

	city, err := location.NewCity(req.StateID, req.Name)
	if err != nil {
		return nil, err
	}
	if err := applyStatus(req.Status, city.SetStatus); err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, city, nil); err != nil {
		return nil, err
	}

	if err := s.cityRepo.Save(ctx, city); err != nil {
		return nil, err
	}
	invalidateCache(ctx, s.cache, s.logger)

	resp := ToCityResponse(city)
	return &resp, nil
}

// GetByID retrieves a city by ID
func (s *CityService) GetByID(ctx context.Context, id uuid.UUID) (*CityResponse, error) {
	city, err := s.cityRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "City")
	}
	resp := ToCityResponse(city)
	return &resp, nil
}

// List lists cities, optionally within one state
func (s *CityService) List(ctx context.Context, filter CityListFilter) (shared.Paginated[CityResponse], error) {
	f := filter.Filter()
	if filter.StateID != nil {
		f = f.With("state_id", *filter.StateID)
	}
	cities, total, err := s.cityRepo.FindAll(ctx, f)
	if err != nil {
		return shared.Paginated[CityResponse]{}, err
	}
	return shared.NewPaginated(toResponses(cities, ToCityResponse), total, f), nil
}

// Update applies the fields present in req
func (s *CityService) Update(ctx context.Context, id uuid.UUID, req UpdateCityRequest) (*CityResponse, error) {
	city, err := s.cityRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "City")
	}

	keyChanged := false
	if req.StateID != nil && *req.StateID != city.StateID {
		if _, err := s.stateRepo.FindByID(ctx, *req.StateID); err != nil {
			return nil, notFoundAs(err, "State")
		}
		if err := city.SetState(*req.StateID); err != nil {
			return nil, err
		}
		keyChanged = true
	}
	if req.Name != nil {
		if err := city.SetName(*req.Name); err != nil {
			return nil, err
		}
		keyChanged = true
	}
	if req.Status != nil {
		if err := applyStatus(*req.Status, city.SetStatus); err != nil {
			return nil, err
		}
	}
	if keyChanged {
		if err := s.ensureUnique(ctx, city, &city.ID); err != nil {
			return nil, err
		}
	}

	if err := s.cityRepo.Save(ctx, city); err != nil {
		return nil, err
	}
	invalidateCache(ctx, s.cache, s.logger)

	resp := ToCityResponse(city)
	return &resp, nil
}

// Delete deletes a city that has no pincodes
func (s *CityService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.cityRepo.FindByID(ctx, id); err != nil {
		return notFoundAs(err, "City")
	}
	hasPincodes, err := s.cityRepo.HasPincodes(ctx, id)
	if err != nil {
		return err
	}
	if hasPincodes {
		return shared.NewConflictError("City has pincodes and cannot be deleted")
	}
	if err := s.cityRepo.Delete(ctx, id); err != nil {
		return err
	}
	invalidateCache(ctx, s.cache, s.logger)
	return nil
}

func (s *CityService) ensureUnique(ctx context.Context, city *location.City, excludeID *uuid.UUID) error {
	exists, err := s.cityRepo.ExistsByStateAndName(ctx, city.StateID, city.Name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewAlreadyExistsError("City '%s' already exists in this state", city.Name)
	}
	return nil
}
