package pubsub

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"funntour/config"
	"funntour/internal/domain/constants"
	"funntour/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLocalHTTPPublisher_PushFormat(t *testing.T) {
	var (
		pushed    PushEnvelope
		requestID string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		_ = json.NewDecoder(r.Body).Decode(&pushed)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, newDiscardLogger())
	event := &service.AccountEvent{
		RequestID:  "req-1",
		EventID:    "evt-1",
		Type:       constants.EventUserCreated,
		UserID:     9,
		OccurredAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}

	require.NoError(t, publisher.PublishAccountEvent(context.Background(), event))

	assert.Equal(t, "req-1", requestID)
	assert.Equal(t, "evt-1", pushed.Message.MessageID)
	assert.Equal(t, "user.created", pushed.Message.Attributes["event_type"])
	assert.Equal(t, "9", pushed.Message.Attributes["user_id"])

	assert.Equal(t, "user-9", pushed.Message.OrderingKey)
	assert.Equal(t, LocalSubscription, pushed.Subscription)

	decoded, err := pushed.Message.Event()
	require.NoError(t, err)
	assert.Equal(t, event, decoded)
}

func TestLocalHTTPPublisher_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, newDiscardLogger())
	err := publisher.PublishAccountEvent(context.Background(), &service.AccountEvent{EventID: "e", Type: "t"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestPushMessage_Event(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "event", body: `{"message":{"data":"eyJldmVudF9pZCI6ImUxIiwidHlwZSI6InVzZXIuY3JlYXRlZCIsInVzZXJfaWQiOjN9"}}`},
		{name: "no data", body: `{"message":{"messageId":"1"}}`, wantErr: "no data"},
		{name: "data is not json", body: `{"message":{"data":"bm9wZQ=="}}`, wantErr: "not an account event"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var envelope PushEnvelope
			require.NoError(t, json.Unmarshal([]byte(tt.body), &envelope))

			event, err := envelope.Message.Event()
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, &service.AccountEvent{EventID: "e1", Type: "user.created", UserID: 3}, event)
		})
	}
}

func TestNewEventPublisher_ProviderSelection(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.PubSubConfig
		wantErr bool
		noop    bool
	}{
		{name: "unconfigured uses noop", cfg: nil, noop: true},
		{name: "empty provider uses noop", cfg: &config.PubSubConfig{}, noop: true},
		{name: "local without endpoint", cfg: &config.PubSubConfig{Provider: constants.PubSubProviderLocal}, wantErr: true},
		{name: "local with endpoint", cfg: &config.PubSubConfig{Provider: constants.PubSubProviderLocal, LocalEndpoint: "http://localhost:9"}},
		{name: "google without project", cfg: &config.PubSubConfig{Provider: constants.PubSubProviderGoogle, TopicID: "t"}, wantErr: true},
		{name: "google without topic", cfg: &config.PubSubConfig{Provider: constants.PubSubProviderGoogle, ProjectID: "p"}, wantErr: true},
		{name: "unknown provider", cfg: &config.PubSubConfig{Provider: "kafka"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lc := fxtest.NewLifecycle(t)
			publisher, err := NewEventPublisher(PublisherParams{
				Lc:     lc,
				Ctx:    context.Background(),
				Config: &config.Config{PubSub: tt.cfg},
				Logger: newDiscardLogger(),
			})

			if tt.wantErr {
				assert.Error(t, err)

				return
			}
			require.NoError(t, err)
			require.NotNil(t, publisher)

			_, isNoop := publisher.(*noopPublisher)
			assert.Equal(t, tt.noop, isNoop)
			if isNoop {
				assert.NoError(t, publisher.PublishAccountEvent(context.Background(), &service.AccountEvent{}))
			}
		})
	}
}
