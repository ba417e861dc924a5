package persistence

import (
	"errors"

	"github.com/storefront/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// translateError maps GORM errors onto the shared domain sentinels.
// The connection is opened with TranslateError so driver-specific unique
// and foreign key violations arrive as gorm.ErrDuplicatedKey and
// gorm.ErrForeignKeyViolated.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.NewAlreadyExistsError("Record already exists")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return shared.NewConflictError("Record is referenced by or references another record")
	default:
		return err
	}
}

// deleteResult turns a delete result into ErrNotFound when nothing was removed
func deleteResult(result *gorm.DB) error {
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
