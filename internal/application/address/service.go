package address

import (
	"context"
	"errors"

	"github.com/google/uuid"
	locationapp "github.com/storefront/backend/internal/application/location"
	"github.com/storefront/backend/internal/domain/address"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// LocationResolver resolves postal codes and pincode ids to a location chain
type LocationResolver interface {
	Resolve(ctx context.Context, pincode string) (*locationapp.ResolvedLocation, error)
	ResolveByID(ctx context.Context, pincodeID uuid.UUID) (*locationapp.ResolvedLocation, error)
}

// AddressService manages customer addresses and keeps at most one default
// address per user.
type AddressService struct {
	addressRepo address.AddressRepository
	scope       TransactionScope
	resolver    LocationResolver
	logger      *zap.Logger
}

// NewAddressService creates a new AddressService
func NewAddressService(
	addressRepo address.AddressRepository,
	scope TransactionScope,
	resolver LocationResolver,
	logger *zap.Logger,
) *AddressService {
	return &AddressService{
		addressRepo: addressRepo,
		scope:       scope,
		resolver:    resolver,
		logger:      logger,
	}
}

// Create creates an address. The first address of a user becomes the
// default even when is_default is not set.
func (s *AddressService) Create(ctx context.Context, caller identity.Principal, req CreateAddressRequest) (*AddressResponse, error) {
	userID, err := ownerFor(caller, req.UserID)
	if err != nil {
		return nil, err
	}

	loc, err := s.resolveLocation(ctx, locationInput{
		postalCode: req.PostalCode,
		countryID:  req.CountryID,
		stateID:    req.StateID,
		cityID:     req.CityID,
		pincodeID:  req.PincodeID,
	})
	if err != nil {
		return nil, err
	}

	addr, err := address.NewAddress(userID, address.Contact{
		FullName:     req.FullName,
		Mobile:       req.Mobile,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		Landmark:     req.Landmark,
	}, loc.Pincode, toRef(loc))
	if err != nil {
		return nil, err
	}
	if req.AddressType != "" {
		if err := addr.SetAddressType(address.AddressType(req.AddressType)); err != nil {
			return nil, err
		}
	}
	if req.Status != "" {
		status, err := shared.ParseStatus(req.Status)
		if err != nil {
			return nil, err
		}
		if err := addr.SetStatus(status); err != nil {
			return nil, err
		}
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		makeDefault := req.IsDefault
		if !makeDefault {
			count, err := repos.AddressRepo().CountByUser(ctx, userID)
			if err != nil {
				return err
			}
			makeDefault = count == 0
		}
		if makeDefault {
			return saveAsDefault(ctx, repos.AddressRepo(), addr)
		}
		return repos.AddressRepo().Save(ctx, addr)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Address created",
		zap.String("address_id", addr.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Bool("is_default", addr.IsDefault))

	resp := ToAddressResponse(addr)
	return &resp, nil
}

// GetByID returns an address visible to the caller
func (s *AddressService) GetByID(ctx context.Context, caller identity.Principal, id uuid.UUID) (*AddressResponse, error) {
	addr, err := s.findVisible(ctx, s.addressRepo, caller, id)
	if err != nil {
		return nil, err
	}
	resp := ToAddressResponse(addr)
	return &resp, nil
}

// List lists the caller's addresses, default first. Admins may list any
// user's addresses, or all addresses when no user_id is given.
func (s *AddressService) List(ctx context.Context, caller identity.Principal, filter AddressListFilter) (shared.Paginated[AddressResponse], error) {
	f := filter.Filter()
	switch {
	case filter.UserID != nil:
		userID, err := ownerFor(caller, filter.UserID)
		if err != nil {
			return shared.Paginated[AddressResponse]{}, err
		}
		f = f.With("user_id", userID)
	case !caller.IsAdmin():
		f = f.With("user_id", caller.UserID)
	}

	items, total, err := s.addressRepo.FindAll(ctx, f)
	if err != nil {
		return shared.Paginated[AddressResponse]{}, err
	}
	return shared.NewPaginated(ToAddressResponses(items), total, f), nil
}

// Update applies the fields present in req. Setting is_default=true clears
// the flag on the user's other addresses in the same transaction.
func (s *AddressService) Update(ctx context.Context, caller identity.Principal, id uuid.UUID, req UpdateAddressRequest) (*AddressResponse, error) {
	var result *address.Address
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		addr, err := s.findVisible(ctx, repos.AddressRepo(), caller, id)
		if err != nil {
			return err
		}

		contact := addr.Contact()
		contactChanged := false
		for _, f := range []struct {
			src *string
			dst *string
		}{
			{req.FullName, &contact.FullName},
			{req.Mobile, &contact.Mobile},
			{req.AddressLine1, &contact.AddressLine1},
			{req.AddressLine2, &contact.AddressLine2},
			{req.Landmark, &contact.Landmark},
		} {
			if f.src != nil {
				*f.dst = *f.src
				contactChanged = true
			}
		}
		if contactChanged {
			if err := addr.SetContact(contact); err != nil {
				return err
			}
		}

		if req.touchesLocation() {
			in := locationInput{
				postalCode: addr.PostalCode,
				countryID:  req.CountryID,
				stateID:    req.StateID,
				cityID:     req.CityID,
				pincodeID:  req.PincodeID,
			}
			if req.PostalCode != nil {
				in.postalCode = *req.PostalCode
			}
			loc, err := s.resolveLocation(ctx, in)
			if err != nil {
				return err
			}
			if err := addr.SetLocation(loc.Pincode, toRef(loc)); err != nil {
				return err
			}
		}

		if req.AddressType != nil {
			if err := addr.SetAddressType(address.AddressType(*req.AddressType)); err != nil {
				return err
			}
		}
		if req.Status != nil {
			status, err := shared.ParseStatus(*req.Status)
			if err != nil {
				return err
			}
			if err := addr.SetStatus(status); err != nil {
				return err
			}
		}

		result = addr
		if req.IsDefault != nil {
			if *req.IsDefault {
				return saveAsDefault(ctx, repos.AddressRepo(), addr)
			}
			addr.IsDefault = false
			addr.Touch()
		}
		return repos.AddressRepo().Save(ctx, addr)
	})
	if err != nil {
		return nil, err
	}

	resp := ToAddressResponse(result)
	return &resp, nil
}

// SetDefault makes an address the user's only default address. Repeating
// the call leaves the same single default.
func (s *AddressService) SetDefault(ctx context.Context, caller identity.Principal, id uuid.UUID) (*AddressResponse, error) {
	var result *address.Address
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		addr, err := s.findVisible(ctx, repos.AddressRepo(), caller, id)
		if err != nil {
			return err
		}
		result = addr
		return saveAsDefault(ctx, repos.AddressRepo(), addr)
	})
	if err != nil {
		return nil, err
	}

	resp := ToAddressResponse(result)
	return &resp, nil
}

// Delete deletes an address. When the default address is deleted, the most
// recently updated remaining address becomes the default.
func (s *AddressService) Delete(ctx context.Context, caller identity.Principal, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		addr, err := s.findVisible(ctx, repos.AddressRepo(), caller, id)
		if err != nil {
			return err
		}
		if err := repos.AddressRepo().Delete(ctx, addr.ID); err != nil {
			return err
		}
		if !addr.IsDefault {
			return nil
		}

		next, err := repos.AddressRepo().FindLatestByUser(ctx, addr.UserID, addr.ID)
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return saveAsDefault(ctx, repos.AddressRepo(), next)
	})
}

// saveAsDefault clears the user's other defaults, stores addr as the default
// and fails when the user does not end up with exactly one default address.
func saveAsDefault(ctx context.Context, repo address.AddressRepository, addr *address.Address) error {
	if err := repo.ClearDefault(ctx, addr.UserID, addr.ID); err != nil {
		return err
	}
	addr.MarkDefault()
	if err := repo.Save(ctx, addr); err != nil {
		return err
	}
	n, err := repo.CountDefaults(ctx, addr.UserID)
	if err != nil {
		return err
	}
	if n != 1 {
		return shared.NewConflictError("user %s has %d default addresses", addr.UserID, n)
	}
	return nil
}

// FindForUser returns an active address owned by userID. Used by checkout.
func (s *AddressService) FindForUser(ctx context.Context, userID, id uuid.UUID) (*address.Address, error) {
	addr, err := s.addressRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if !addr.BelongsTo(userID) {
		return nil, shared.NewNotFoundError("Address")
	}
	return addr, nil
}

func (s *AddressService) findVisible(ctx context.Context, repo address.AddressRepository, caller identity.Principal, id uuid.UUID) (*address.Address, error) {
	addr, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if !caller.IsAdmin() && !addr.BelongsTo(caller.UserID) {
		return nil, shared.NewNotFoundError("Address")
	}
	return addr, nil
}

type locationInput struct {
	postalCode string
	countryID  *uuid.UUID
	stateID    *uuid.UUID
	cityID     *uuid.UUID
	pincodeID  *uuid.UUID
}

// resolveLocation builds the location chain for an address and checks that
// any ids supplied by the client agree with it.
func (s *AddressService) resolveLocation(ctx context.Context, in locationInput) (*locationapp.ResolvedLocation, error) {
	var (
		loc *locationapp.ResolvedLocation
		err error
	)
	if in.pincodeID != nil {
		loc, err = s.resolver.ResolveByID(ctx, *in.pincodeID)
	} else {
		loc, err = s.resolver.Resolve(ctx, in.postalCode)
	}
	if err != nil {
		return nil, err
	}

	if in.postalCode != "" && in.pincodeID != nil && loc.Pincode != in.postalCode {
		return nil, shared.NewValidationError("postal_code does not match pincode_id")
	}
	for _, check := range []struct {
		given *uuid.UUID
		want  uuid.UUID
		field string
	}{
		{in.countryID, loc.CountryID, "country_id"},
		{in.stateID, loc.StateID, "state_id"},
		{in.cityID, loc.CityID, "city_id"},
	} {
		if check.given != nil && *check.given != check.want {
			return nil, shared.NewValidationError("%s does not match postal_code %s", check.field, loc.Pincode)
		}
	}
	return loc, nil
}

func toRef(loc *locationapp.ResolvedLocation) address.LocationRef {
	return address.LocationRef{
		CountryID: loc.CountryID,
		StateID:   loc.StateID,
		CityID:    loc.CityID,
		PincodeID: loc.PincodeID,
	}
}

// ownerFor returns the user an operation acts for. Only admins may act for
// another user.
func ownerFor(caller identity.Principal, requested *uuid.UUID) (uuid.UUID, error) {
	if requested == nil || *requested == caller.UserID {
		return caller.UserID, nil
	}
	if !caller.IsAdmin() {
		return uuid.Nil, shared.NewDomainError(shared.CodeForbidden, "Cannot act on behalf of another user")
	}
	return *requested, nil
}

func notFound(err error) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewNotFoundError("Address")
	}
	return err
}
