// Package impl contains the implementation of the application's business logic.
package impl

import (
	"fmt"

	domainerrors "funntour/internal/domain/errors"
	"funntour/internal/domain/repository"
	"funntour/internal/errors"
)

// translateRepoError maps persistence sentinels onto the domain errors of one aggregate.
// AppErrors pass through untouched and anything else keeps its stack trace.
func translateRepoError(err error, notFound, conflict *domainerrors.BaseError) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return notFound
	case errors.Is(err, repository.ErrDuplicate):
		return conflict
	case errors.Is(err, repository.ErrInvalidReference):
		return domainerrors.ErrInvalidReference
	}

	if _, ok := errors.AsType[domainerrors.AppError](err); ok {
		return err
	}

	return errors.WithStack(err)
}

// parentLookupError reports a missing parent as the parent's own NotFound.
func parentLookupError(err error, notFound *domainerrors.BaseError) error {
	return translateRepoError(err, notFound, domainerrors.ErrConflict)
}

// requireNotBlank rejects normalized values that ended up empty. It takes field
// names and values in pairs.
func requireNotBlank(fieldValues ...string) error {
	for i := 0; i+1 < len(fieldValues); i += 2 {
		if fieldValues[i+1] == "" {
			return domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf("field '%s' must not be blank", fieldValues[i]))
		}
	}

	return nil
}

// equalOptional reports whether two optional values are both absent or hold equal values.
func equalOptional[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return *a == *b
}
