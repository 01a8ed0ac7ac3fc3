package pubsub

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"funntour/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const localPushTimeout = 30 * time.Second

// localHTTPPublisher stands in for a push subscription during development by
// POSTing each event straight to the audit worker.
type localHTTPPublisher struct {
	endpoint string
	client   *http.Client
	now      func() time.Time
	logger   *slog.Logger
}

// NewLocalHTTPPublisher creates a publisher that pushes to endpoint.
func NewLocalHTTPPublisher(endpoint string, logger *slog.Logger) service.EventPublisher {
	return &localHTTPPublisher{
		endpoint: endpoint,
		client:   &http.Client{Timeout: localPushTimeout},
		now:      time.Now,
		logger:   logger,
	}
}

func (p *localHTTPPublisher) PublishAccountEvent(ctx context.Context, event *service.AccountEvent) error {
	msg, err := encodeEvent(event)
	if err != nil {
		return err
	}

	body, err := json.Marshal(newPushEnvelope(msg, event.EventID, p.now()))
	if err != nil {
		return errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if event.RequestID != "" {
		req.Header.Set(echo.HeaderXRequestID, event.RequestID)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "failed to push event %s", event.EventID)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errors.Errorf("push endpoint answered %d for event %s", resp.StatusCode, event.EventID)
	}

	p.logger.DebugContext(ctx, "[LocalPubSub] Event pushed",
		slog.String("endpoint", p.endpoint),
		slog.String("event_id", event.EventID),
		slog.String("event_type", event.Type),
	)

	return nil
}

func (p *localHTTPPublisher) Close() error {
	p.client.CloseIdleConnections()

	return nil
}
