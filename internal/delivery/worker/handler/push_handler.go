// Package handler holds the Pub/Sub push handlers of the audit worker.
package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"funntour/config"
	deliverycontext "funntour/internal/delivery/context"
	"funntour/internal/domain/entity"
	domainerrors "funntour/internal/domain/errors"
	"funntour/internal/domain/service"
	"funntour/internal/infra/metrics"
	"funntour/internal/infra/pubsub"
	"funntour/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// Results reported on the events-received counter.
const (
	resultRecorded = "recorded"
	resultDropped  = "dropped"
	resultRetry    = "retry"
)

// PushHandler records account events pushed by Pub/Sub (or the local publisher) into the audit trail.
type PushHandler struct {
	verify  func(req *http.Request) error
	logger  *slog.Logger
	audit   usecase.AccountAuditUsecase
	metrics *metrics.Metrics
}

// PushHandlerParams holds dependencies for the PushHandler
type PushHandlerParams struct {
	fx.In

	Config  *config.Config
	Logger  *slog.Logger
	Audit   usecase.AccountAuditUsecase
	Metrics *metrics.Metrics `optional:"true"`
}

// NewPushHandler creates a new Pub/Sub push handler
func NewPushHandler(params PushHandlerParams) *PushHandler {
	h := &PushHandler{
		logger:  params.Logger,
		audit:   params.Audit,
		metrics: params.Metrics,
	}

	if cfg := params.Config.PubSub; cfg != nil && cfg.VerifyPushAuth {
		audience := cfg.PushAudience
		h.verify = func(req *http.Request) error {
			return verifyPubSubToken(req, audience)
		}
	}

	return h
}

// HandlePush acknowledges with 200 anything that must not be redelivered and
// answers 503 when a retry could succeed.
func (h *PushHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	if h.verify != nil {
		if err := h.verify(c.Request()); err != nil {
			h.logger.Warn("[Worker] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var envelope pubsub.PushEnvelope
	if err := c.Bind(&envelope); err != nil {
		return h.malformed(c, err)
	}
	event, err := envelope.Message.Event()
	if err != nil {
		return h.malformed(c, err)
	}

	requestID := extractRequestID(ctx, &envelope.Message, event)
	reqLogger := h.logger.With(slog.String("request_id", requestID))
	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, reqLogger)

	record := &entity.AccountEvent{
		EventID:    event.EventID,
		Type:       event.Type,
		UserID:     event.UserID,
		RequestID:  event.RequestID,
		OccurredAt: event.OccurredAt,
	}
	if record.EventID == "" {
		record.EventID = envelope.Message.MessageID
	}

	if err := h.audit.RecordEvent(ctx, record); err != nil {
		retryable := domainerrors.OutcomeOf(err) == domainerrors.OutcomeFault
		reqLogger.Error("[Worker] Failed to record account event",
			slog.String("event_id", record.EventID),
			slog.Any("error", err),
			slog.Bool("retryable", retryable),
		)
		if retryable {
			h.metrics.ObserveEventReceived(resultRetry)

			return c.NoContent(http.StatusServiceUnavailable)
		}
		h.metrics.ObserveEventReceived(resultDropped)

		return c.NoContent(http.StatusOK)
	}

	h.metrics.ObserveEventReceived(resultRecorded)

	return c.NoContent(http.StatusOK)
}

// malformed rejects a push whose body is not an account event envelope.
func (h *PushHandler) malformed(c echo.Context, err error) error {
	h.logger.Error("[Worker] Malformed push message", slog.Any("error", err))
	h.metrics.ObserveEventReceived(resultDropped)

	return c.NoContent(http.StatusBadRequest)
}

// extractRequestID prefers message attributes, then the event payload, then the
// request header, and finally generates a new id.
func extractRequestID(ctx context.Context, msg *pubsub.PushMessage, event *service.AccountEvent) string {
	if requestID := msg.Attribute(pubsub.AttrRequestID); requestID != "" {
		return requestID
	}

	if event.RequestID != "" {
		return event.RequestID
	}

	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	return uuid.NewString()
}

// verifyPubSubToken verifies the JWT token from Google Pub/Sub push requests
// Reference: https://cloud.google.com/pubsub/docs/push#authenticating_standard_push_requests
func verifyPubSubToken(req *http.Request, audience string) error {
	authHeader := req.Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return errors.New("missing authorization header")
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return errors.New("invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, bearerPrefix)

	if audience == "" {
		scheme := "https"
		if req.TLS == nil {
			scheme = "http"
		}
		audience = fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)
	}

	payload, err := idtoken.Validate(req.Context(), token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}
