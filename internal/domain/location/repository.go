package location

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// CountryRepository defines persistence operations for countries
type CountryRepository interface {
	// FindByID finds a country by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Country, error)

	// FindByName finds a country by name, case-insensitively
	FindByName(ctx context.Context, name string) (*Country, error)

	// FindAll lists countries with pagination. Search matches name.
	FindAll(ctx context.Context, filter shared.Filter) ([]Country, int64, error)

	// ExistingIDs returns the subset of ids that exist
	ExistingIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error)

	// HasStates reports whether any state references the country
	HasStates(ctx context.Context, id uuid.UUID) (bool, error)

	// Save creates or updates a country
	Save(ctx context.Context, country *Country) error

	// Delete deletes a country
	Delete(ctx context.Context, id uuid.UUID) error
}

// StateRepository defines persistence operations for states
type StateRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*State, error)

	// FindByCountryAndName finds a state by its natural key, case-insensitively
	FindByCountryAndName(ctx context.Context, countryID uuid.UUID, name string) (*State, error)

	// FindAll lists states. Filters: country_id. Search matches name.
	FindAll(ctx context.Context, filter shared.Filter) ([]State, int64, error)

	// ExistsByCountryAndName checks the natural key, ignoring excludeID when set
	ExistsByCountryAndName(ctx context.Context, countryID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error)

	ExistingIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error)

	// HasCities reports whether any city references the state
	HasCities(ctx context.Context, id uuid.UUID) (bool, error)

	Save(ctx context.Context, state *State) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CityRepository defines persistence operations for cities
type CityRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*City, error)
	FindByStateAndName(ctx context.Context, stateID uuid.UUID, name string) (*City, error)

	// FindAll lists cities. Filters: state_id. Search matches name.
	FindAll(ctx context.Context, filter shared.Filter) ([]City, int64, error)

	ExistsByStateAndName(ctx context.Context, stateID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error)
	ExistingIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error)

	// HasPincodes reports whether any pincode references the city
	HasPincodes(ctx context.Context, id uuid.UUID) (bool, error)

	Save(ctx context.Context, city *City) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PincodeRepository defines persistence operations for pincodes
type PincodeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Pincode, error)

	// FindByCode finds the first pincode row with the exact code
	FindByCode(ctx context.Context, code string) (*Pincode, error)

	FindByCityAndCode(ctx context.Context, cityID uuid.UUID, code string) (*Pincode, error)

	// FindAll lists pincodes. Filters: city_id. Search matches pincode.
	FindAll(ctx context.Context, filter shared.Filter) ([]Pincode, int64, error)

	ExistsByCityAndCode(ctx context.Context, cityID uuid.UUID, code string, excludeID *uuid.UUID) (bool, error)

	Save(ctx context.Context, pincode *Pincode) error
	Delete(ctx context.Context, id uuid.UUID) error
}
