package postgres

import (
	domainerrors "funntour/internal/domain/errors"
	"funntour/internal/domain/repository"
	"funntour/internal/errors"

	"gorm.io/gorm"
)

// Helper functions for translated GORM constraint errors.
// The connection is opened with TranslateError, so driver codes arrive as GORM sentinels.
func isUniqueConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func isForeignKeyConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated)
}

func isCheckConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrCheckConstraintViolated)
}

// translateWriteError maps a failed INSERT/UPDATE onto the repository sentinels.
func translateWriteError(err error, details string) error {
	switch {
	case isUniqueConstraintViolation(err):
		return errors.Wrap(repository.ErrDuplicate, details)
	case isForeignKeyConstraintViolation(err), isCheckConstraintViolation(err):
		return errors.Wrap(repository.ErrInvalidReference, details)
	default:
		return domainerrors.NewDatabaseExecuteError(err, details)
	}
}

// translateReadError maps a failed lookup onto the repository sentinels.
func translateReadError(err error, details string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrNotFound
	}

	return domainerrors.NewDatabaseExecuteError(err, details)
}
