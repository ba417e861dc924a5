package catalog

import (
	"errors"

	"github.com/storefront/backend/internal/domain/shared"
)

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

func notFoundAs(err error, entity string) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewNotFoundError(entity)
	}
	return err
}
