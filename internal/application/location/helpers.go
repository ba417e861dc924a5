package location

import (
	"errors"

	"github.com/storefront/backend/internal/domain/shared"
)

// applyStatus parses raw and hands it to set when raw is non-empty
func applyStatus(raw string, set func(shared.Status) error) error {
	if raw == "" {
		return nil
	}
	status, err := shared.ParseStatus(raw)
	if err != nil {
		return err
	}
	return set(status)
}

// notFoundAs rewrites a generic not-found error to name the entity
func notFoundAs(err error, entity string) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewNotFoundError(entity)
	}
	return err
}
