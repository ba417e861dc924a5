package payment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/payment"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// GatewayService manages payment gateway configuration
type GatewayService struct {
	gatewayRepo payment.PaymentGatewayRepository
	logger      *zap.Logger
}

// NewGatewayService creates a new GatewayService
func NewGatewayService(gatewayRepo payment.PaymentGatewayRepository, logger *zap.Logger) *GatewayService {
	return &GatewayService{gatewayRepo: gatewayRepo, logger: logger}
}

// Create configures a new gateway
func (s *GatewayService) Create(ctx context.Context, req CreateGatewayRequest) (*GatewayResponse, error) {
	g, err := payment.NewPaymentGateway(req.Name, req.AppID, req.SecretKey)
	if err != nil {
		return nil, err
	}
	g.SetActive(req.IsActive)
	g.SetSortOrder(req.SortOrder)

	if err := s.ensureNameFree(ctx, g.Name, nil); err != nil {
		return nil, err
	}
	if err := s.gatewayRepo.Save(ctx, g); err != nil {
		return nil, err
	}

	s.logger.Info("Payment gateway created", zap.String("gateway_id", g.ID.String()), zap.String("name", g.Name))
	resp := ToGatewayResponse(g)
	return &resp, nil
}

// GetByID retrieves a gateway by ID
func (s *GatewayService) GetByID(ctx context.Context, id uuid.UUID) (*GatewayResponse, error) {
	g, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToGatewayResponse(g)
	return &resp, nil
}

// List lists gateways
func (s *GatewayService) List(ctx context.Context, filter GatewayListFilter) (shared.Paginated[GatewayResponse], error) {
	f := filter.Filter()
	if filter.IsActive != nil {
		f = f.With("is_active", *filter.IsActive)
	}
	gateways, total, err := s.gatewayRepo.FindAll(ctx, f)
	if err != nil {
		return shared.Paginated[GatewayResponse]{}, err
	}
	items := make([]GatewayResponse, len(gateways))
	for i := range gateways {
		items[i] = ToGatewayResponse(&gateways[i])
	}
	return shared.NewPaginated(items, total, f), nil
}

// Active returns the gateways offered at checkout
func (s *GatewayService) Active(ctx context.Context) ([]PublicGatewayResponse, error) {
	gateways, err := s.gatewayRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]PublicGatewayResponse, len(gateways))
	for i := range gateways {
		out[i] = ToPublicGatewayResponse(&gateways[i])
	}
	return out, nil
}

// FindActive returns an active gateway or a not-found error
func (s *GatewayService) FindActive(ctx context.Context, id uuid.UUID) (*payment.PaymentGateway, error) {
	g, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !g.IsActive {
		return nil, shared.NewValidationError("payment gateway %s is not active", g.Name)
	}
	return g, nil
}

// Update applies the fields present in req
func (s *GatewayService) Update(ctx context.Context, id uuid.UUID, req UpdateGatewayRequest) (*GatewayResponse, error) {
	g, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := g.SetName(*req.Name); err != nil {
			return nil, err
		}
		if err := s.ensureNameFree(ctx, g.Name, &g.ID); err != nil {
			return nil, err
		}
	}
	if req.AppID != nil || req.SecretKey != nil {
		appID, secret := g.AppID, g.SecretKey
		if req.AppID != nil {
			appID = *req.AppID
		}
		if req.SecretKey != nil {
			secret = *req.SecretKey
		}
		g.SetCredentials(appID, secret)
	}
	if req.IsActive != nil {
		g.SetActive(*req.IsActive)
	}
	if req.SortOrder != nil {
		g.SetSortOrder(*req.SortOrder)
	}

	if err := s.gatewayRepo.Save(ctx, g); err != nil {
		return nil, err
	}
	resp := ToGatewayResponse(g)
	return &resp, nil
}

// Delete removes a gateway
func (s *GatewayService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	return s.gatewayRepo.Delete(ctx, id)
}

func (s *GatewayService) find(ctx context.Context, id uuid.UUID) (*payment.PaymentGateway, error) {
	g, err := s.gatewayRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("Payment gateway")
		}
		return nil, err
	}
	return g, nil
}

func (s *GatewayService) ensureNameFree(ctx context.Context, name string, excludeID *uuid.UUID) error {
	exists, err := s.gatewayRepo.ExistsByName(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewAlreadyExistsError("Payment gateway '%s' already exists", name)
	}
	return nil
}
