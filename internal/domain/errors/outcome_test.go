package errors

import (
	"testing"

	"funntour/internal/errors"

	"github.com/stretchr/testify/assert"
)

func TestOutcomeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Outcome
	}{
		{name: "nil", err: nil, want: OutcomeOK},
		{name: "not found", err: ErrCountryNotFound, want: OutcomeNotFound},
		{name: "wrapped conflict", err: errors.Wrap(ErrStateConflict.WithMessage("dup"), "create state"), want: OutcomeConflict},
		{name: "validation", err: ErrCurrentPasswordMismatch, want: OutcomeInvalid},
		{name: "unauthorized", err: ErrInvalidCredentials, want: OutcomeUnauthorized},
		{name: "database", err: NewDatabaseExecuteError(errors.New("boom"), "x"), want: OutcomeFault},
		{name: "plain error", err: errors.New("boom"), want: OutcomeFault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, OutcomeOf(tt.err))
		})
	}
}

func TestBaseError_IsMatchesCopies(t *testing.T) {
	err := errors.Wrap(ErrCityConflict.WithMessage("Já existe uma cidade cadastrada com o nome 'Brasília' para o estado selecionado"), "create city")

	assert.ErrorIs(t, err, ErrCityConflict)
	assert.NotErrorIs(t, err, ErrStateConflict)

	appErr, ok := errors.AsType[AppError](err)
	assert.True(t, ok)
	assert.Equal(t, "Já existe uma cidade cadastrada com o nome 'Brasília' para o estado selecionado", appErr.Message())
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "conflict", OutcomeConflict.String())
	assert.Equal(t, "unknown", Outcome(99).String())
}
