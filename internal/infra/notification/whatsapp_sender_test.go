package notification

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"funntour/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNormalizeWhatsAppNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "formatted mobile", input: "(11) 9 8765-4321", want: "5511987654321"},
		{name: "already prefixed", input: "+55 11 98765-4321", want: "5511987654321"},
		{name: "no digits", input: "--", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, normalizeWhatsAppNumber(tt.input))
		})
	}
}

func TestNewWhatsAppSender_Unconfigured(t *testing.T) {
	logger := newDiscardLogger()

	assert.Nil(t, NewWhatsAppSender(&config.Config{}, logger))
	assert.Nil(t, NewWhatsAppSender(&config.Config{WhatsApp: &config.WhatsAppConfig{APIKey: "k"}}, logger))
	assert.NotNil(t, NewWhatsAppSender(&config.Config{WhatsApp: &config.WhatsAppConfig{DryRun: true}}, logger))
}

func TestWhatsAppSender_PostsCloudAPIPayload(t *testing.T) {
	var (
		gotPath    string
		gotAuth    string
		gotPayload whatsAppTextMessage
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotPayload)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	sender := NewWhatsAppSender(&config.Config{WhatsApp: &config.WhatsAppConfig{
		APIBaseURL:    server.URL,
		APIVersion:    "v17.0",
		APIKey:        "secret-key",
		PhoneNumberID: "12345",
	}}, newDiscardLogger())
	require.NotNil(t, sender)

	err := sender.SendPasswordResetMessage(context.Background(), "(11) 9 8765-4321", "Maria", "tok-123")
	require.NoError(t, err)

	assert.Equal(t, "/v17.0/12345/messages", gotPath)
	assert.Equal(t, "Bearer secret-key", gotAuth)
	assert.Equal(t, "whatsapp", gotPayload.MessagingProduct)
	assert.Equal(t, "individual", gotPayload.RecipientType)
	assert.Equal(t, "text", gotPayload.Type)
	assert.Equal(t, "5511987654321", gotPayload.To)
	assert.Contains(t, gotPayload.Text.Body, "tok-123")
	assert.Contains(t, gotPayload.Text.Body, "Maria")
}

func TestWhatsAppSender_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	sender := NewWhatsAppSender(&config.Config{WhatsApp: &config.WhatsAppConfig{
		APIBaseURL:    server.URL,
		APIKey:        "bad",
		PhoneNumberID: "1",
	}}, newDiscardLogger())

	err := sender.SendPasswordResetMessage(context.Background(), "11987654321", "Maria", "tok")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestWhatsAppSender_DryRunSkipsHTTP(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	sender := NewWhatsAppSender(&config.Config{WhatsApp: &config.WhatsAppConfig{
		APIBaseURL: server.URL,
		DryRun:     true,
	}}, newDiscardLogger())

	require.NoError(t, sender.SendPasswordResetMessage(context.Background(), "11987654321", "Maria", "tok"))
	assert.False(t, called)
}
