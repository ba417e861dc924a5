package location

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/location"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// PincodeService handles pincode operations
type PincodeService struct {
	pincodeRepo location.PincodeRepository
	cityRepo    location.CityRepository
	cache       ResolutionCache
	logger      *zap.Logger
}

// NewPincodeService creates a new PincodeService
func NewPincodeService(
	pincodeRepo location.PincodeRepository,
	cityRepo location.CityRepository,
	cache ResolutionCache,
	logger *zap.Logger,
) *PincodeService {
	return &PincodeService{pincodeRepo: pincodeRepo, cityRepo: cityRepo, cache: cache, logger: logger}
}

// Create creates a new pincode. The (city_id, pincode) pair must be unique.
func (s *PincodeService) Create(ctx context.Context, req CreatePincodeRequest) (*PincodeResponse, error) {
	if _, err := s.cityRepo.FindByID(ctx, req.CityID); err != nil {
		return nil, notFoundAs(err, "City")
	}

	pincode, err := location.NewPincode(req.CityID, req.Pincode, req.AreaName)
	if err != nil {
		return nil, err
	}
	if err := applyStatus(req.Status, pincode.SetStatus); err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, pincode, nil); err != nil {
		return nil, err
	}

	if err := s.pincodeRepo.Save(ctx, pincode); err != nil {
		return nil, err
	}
	invalidateCache(ctx, s.cache, s.logger)

	resp := ToPincodeResponse(pincode)
	return &resp, nil
}

// GetByID retrieves a pincode by ID
func (s *PincodeService) GetByID(ctx context.Context, id uuid.UUID) (*PincodeResponse, error) {
	pincode, err := s.pincodeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "Pincode")
	}
	resp := ToPincodeResponse(pincode)
	return &resp, nil
}

// List lists pincodes, optionally within one city
func (s *PincodeService) List(ctx context.Context, filter PincodeListFilter) (shared.Paginated[PincodeResponse], error) {
	f := filter.Filter()
	if filter.CityID != nil {
		f = f.With("city_id", *filter.CityID)
	}
	pincodes, total, err := s.pincodeRepo.FindAll(ctx, f)
	if err != nil {
		return shared.Paginated[PincodeResponse]{}, err
	}
	return shared.NewPaginated(toResponses(pincodes, ToPincodeResponse), total, f), nil
}

// Update applies the fields present in req
func (s *PincodeService) Update(ctx context.Context, id uuid.UUID, req UpdatePincodeRequest) (*PincodeResponse, error) {
	pincode, err := s.pincodeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "Pincode")
	}

	keyChanged := false
	if req.CityID != nil && *req.CityID != pincode.CityID {
		if _, err := s.cityRepo.FindByID(ctx, *req.CityID); err != nil {
			return nil, notFoundAs(err, "City")
		}
		if err := pincode.SetCity(*req.CityID); err != nil {
			return nil, err
		}
		keyChanged = true
	}
	if req.Pincode != nil {
		if err := pincode.SetCode(*req.Pincode); err != nil {
			return nil, err
		}
		keyChanged = true
	}
	if req.AreaName != nil {
		if err := pincode.SetAreaName(*req.AreaName); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		if err := applyStatus(*req.Status, pincode.SetStatus); err != nil {
			return nil, err
		}
	}
	if keyChanged {
		if err := s.ensureUnique(ctx, pincode, &pincode.ID); err != nil {
			return nil, err
		}
	}

	if err := s.pincodeRepo.Save(ctx, pincode); err != nil {
		return nil, err
	}
	invalidateCache(ctx, s.cache, s.logger)

	resp := ToPincodeResponse(pincode)
	return &resp, nil
}

// Delete deletes a pincode
func (s *PincodeService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.pincodeRepo.FindByID(ctx, id); err != nil {
		return notFoundAs(err, "Pincode")
	}
	if err := s.pincodeRepo.Delete(ctx, id); err != nil {
		return err
	}
	invalidateCache(ctx, s.cache, s.logger)
	return nil
}

func (s *PincodeService) ensureUnique(ctx context.Context, p *location.Pincode, excludeID *uuid.UUID) error {
	exists, err := s.pincodeRepo.ExistsByCityAndCode(ctx, p.CityID, p.Code, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewAlreadyExistsError("Pincode %s already exists in this city", p.Code)
	}
	return nil
}
