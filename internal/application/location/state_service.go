package location

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/location"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// StateService handles state operations
type StateService struct {
	stateRepo   location.StateRepository
	countryRepo location.CountryRepository
	cache       ResolutionCache
	logger      *zap.Logger
}

// NewStateService creates a new StateService
func NewStateService(
	stateRepo location.StateRepository,
	countryRepo location.CountryRepository,
	cache ResolutionCache,
	logger *zap.Logger,
) *StateService {
	return &StateService{stateRepo: stateRepo, countryRepo: countryRepo, cache: cache, logger: logger}
}

// Create creates a new state. The (country_id, name) pair must be unique.
func (s *StateService) Create(ctx context.Context, req CreateStateRequest) (*StateResponse, error) {
	if _, err := s.countryRepo.FindByID(ctx, req.CountryID); err != nil {
		return nil, notFoundAs(err, "Country")
	}

	state, err := location.NewState(req.CountryID, req.Name, req.StateCode)
	if err != nil {
		return nil, err
	}
	if err := applyStatus(req.Status, state.SetStatus); err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, state, nil); err != nil {
		return nil, err
	}

	if err := s.stateRepo.Save(ctx, state); err != nil {
		return nil, err
	}
	invalidateCache(ctx, s.cache, s.logger)

	resp := ToStateResponse(state)
	return &resp, nil
}

// GetByID retrieves a state by ID
func (s *StateService) GetByID(ctx context.Context, id uuid.UUID) (*StateResponse, error) {
	state, err := s.stateRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "State")
	}
	resp := ToStateResponse(state)
	return &resp, nil
}

// List lists states, optionally within one country
func (s *StateService) List(ctx context.Context, filter StateListFilter) (shared.Paginated[StateResponse], error) {
	f := filter.Filter()
	if filter.CountryID != nil {
		f = f.With("country_id", *filter.CountryID)
	}
	states, total, err := s.stateRepo.FindAll(ctx, f)
	if err != nil {
		return shared.Paginated[StateResponse]{}, err
	}
	return shared.NewPaginated(toResponses(states, ToStateResponse), total, f), nil
}

// Update applies the fields present in req
func (s *StateService) Update(ctx context.Context, id uuid.UUID, req UpdateStateRequest) (*StateResponse, error) {
	state, err := s.stateRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "State")
	}

	keyChanged := false
	if req.CountryID != nil && *req.CountryID != state.CountryID {
		if _, err := s.countryRepo.FindByID(ctx, *req.CountryID); err != nil {
			return nil, notFoundAs(err, "Country")
		}
		if err := state.SetCountry(*req.CountryID); err != nil {
			return nil, err
		}
		keyChanged = true
	}
	if req.Name != nil {
		if err := state.SetName(*req.Name); err != nil {
			return nil, err
		}
		keyChanged = true
	}
	if req.StateCode != nil {
		if err := state.SetStateCode(*req.StateCode); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		if err := applyStatus(*req.Status, state.SetStatus); err != nil {
			return nil, err
		}
	}
	if keyChanged {
		if err := s.ensureUnique(ctx, state, &state.ID); err != nil {
			return nil, err
		}
	}

	if err := s.stateRepo.Save(ctx, state); err != nil {
		return nil, err
	}
	invalidateCache(ctx, s.cache, s.logger)

	resp := ToStateResponse(state)
	return &resp, nil
}

// Delete deletes a state that has no cities
func (s *StateService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.stateRepo.FindByID(ctx, id); err != nil {
		return notFoundAs(err, "State")
	}
	hasCities, err := s.stateRepo.HasCities(ctx, id)
	if err != nil {
		return err
	}
	if hasCities {
		return shared.NewConflictError("State has cities and cannot be deleted")
	}
	if err := s.stateRepo.Delete(ctx, id); err != nil {
		return err
	}
	invalidateCache(ctx, s.cache, s.logger)
	return nil
}

func (s *StateService) ensureUnique(ctx context.Context, state *location.State, excludeID *uuid.UUID) error {
	exists, err := s.stateRepo.ExistsByCountryAndName(ctx, state.CountryID, state.Name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewAlreadyExistsError("State '%s' already exists in this country", state.Name)
	}
	return nil
}
