package middleware

import (
	"log/slog"
	"net/http"
	"strconv"

	"funntour/internal/delivery/api/response"
	deliverycontext "funntour/internal/delivery/context"
	domainerrors "funntour/internal/domain/errors"
	"funntour/internal/errors"
	"funntour/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ErrorMiddlewareParams holds dependencies for ErrorMiddleware, injected by Fx.
type ErrorMiddlewareParams struct {
	fx.In

	Logger  *slog.Logger
	Metrics *metrics.Metrics `optional:"true"`
}

// ErrorMiddleware renders every error returned by a handler and counts its outcome.
type ErrorMiddleware struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(params ErrorMiddlewareParams) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger:  params.Logger,
		metrics: params.Metrics,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	if appErr, ok := errors.AsType[domainerrors.AppError](err); ok {
		outcome := domainerrors.OutcomeOf(err)
		m.metrics.ObserveOutcome(outcome.String(), appErr.ErrorCode())

		if outcome == domainerrors.OutcomeFault {
			m.logFault(c, err)
			_ = response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), nil)

			return
		}

		var details any
		if d := appErr.Details(); d != "" {
			details = d
		}
		_ = response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), details)

		return
	}

	// Echo's own errors: unknown route, method not allowed, body too large, bad binding.
	if httpErr, ok := errors.AsType[*echo.HTTPError](err); ok {
		code := "HTTP_" + strconv.Itoa(httpErr.Code)
		m.metrics.ObserveOutcome(outcomeForStatus(httpErr.Code).String(), code)

		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
		if httpErr.Code >= http.StatusInternalServerError {
			m.logFault(c, err)
		}

		_ = response.Error(c, httpErr.Code, code, message, nil)

		return
	}

	m.metrics.ObserveOutcome(domainerrors.OutcomeFault.String(), domainerrors.ErrInternalError.ErrorCode())
	m.logFault(c, err)

	// For 500 errors, do not expose internal error details to the client
	_ = response.InternalServerError(c, domainerrors.ErrInternalError.ErrorCode(), domainerrors.ErrInternalError.Message())
}

func (m *ErrorMiddleware) logFault(c echo.Context, err error) {
	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)
	logger.Error("Unhandled error",
		slog.String("error", err.Error()),
		slog.String("stack", errors.Stack(err)),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)
}

func outcomeForStatus(status int) domainerrors.Outcome {
	switch {
	case status < http.StatusBadRequest:
		return domainerrors.OutcomeOK
	case status == http.StatusNotFound:
		return domainerrors.OutcomeNotFound
	case status == http.StatusConflict:
		return domainerrors.OutcomeConflict
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return domainerrors.OutcomeUnauthorized
	case status < http.StatusInternalServerError:
		return domainerrors.OutcomeInvalid
	default:
		return domainerrors.OutcomeFault
	}
}
