package errors

import (
	"net/http"

	"funntour/internal/errors"
)

// Outcome classifies the result of a registry operation.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeNotFound
	OutcomeConflict
	OutcomeInvalid
	OutcomeUnauthorized
	OutcomeFault
)

var outcomeNames = map[Outcome]string{
	OutcomeOK:           "ok",
	OutcomeNotFound:     "not_found",
	OutcomeConflict:     "conflict",
	OutcomeInvalid:      "invalid",
	OutcomeUnauthorized: "unauthorized",
	OutcomeFault:        "fault",
}

// String returns the metric/log label of the outcome.
func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}

	return "unknown"
}

// OutcomeOf classifies err. Errors that are not AppErrors, and AppErrors with a 5xx code, are faults.
func OutcomeOf(err error) Outcome {
	if err == nil {
		return OutcomeOK
	}

	appErr, ok := errors.AsType[AppError](err)
	if !ok {
		return OutcomeFault
	}

	switch code := appErr.HTTPCode(); {
	case code == http.StatusNotFound:
		return OutcomeNotFound
	case code == http.StatusConflict:
		return OutcomeConflict
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return OutcomeUnauthorized
	case code >= 400 && code < 500:
		return OutcomeInvalid
	default:
		return OutcomeFault
	}
}
