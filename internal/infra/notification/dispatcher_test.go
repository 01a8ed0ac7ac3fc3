package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"funntour/internal/domain/entity"
	"funntour/internal/infra/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockEmailSender struct {
	mock.Mock
}

func (m *mockEmailSender) SendPasswordResetEmail(ctx context.Context, recipient, userName, token string, expiresAt time.Time) error {
	args := m.Called(ctx, recipient, userName, token, expiresAt)

	return args.Error(0)
}

type mockMessageSender struct {
	mock.Mock
}

func (m *mockMessageSender) SendPasswordResetMessage(ctx context.Context, phoneNumber, userName, token string) error {
	args := m.Called(ctx, phoneNumber, userName, token)

	return args.Error(0)
}

func TestDispatcher_NotifyPasswordReset(t *testing.T) {
	expires := time.Date(2024, 5, 1, 12, 10, 0, 0, time.UTC)
	full := &entity.ResetRecipient{UserID: 1, Name: "Maria", Email: "maria@example.com", WhatsApp: "(11) 9 8765-4321"}

	tests := []struct {
		name       string
		recipient  *entity.ResetRecipient
		withEmail  bool
		withWA     bool
		emailErr   error
		waErr      error
		wantReport entity.NotificationReport
	}{
		{
			name:       "both channels deliver",
			recipient:  full,
			withEmail:  true,
			withWA:     true,
			wantReport: entity.NotificationReport{Email: true, WhatsApp: true},
		},
		{
			name:       "whatsapp failure is reported not returned",
			recipient:  full,
			withEmail:  true,
			withWA:     true,
			waErr:      errors.New("api down"),
			wantReport: entity.NotificationReport{Email: true, WhatsApp: false},
		},
		{
			name:       "missing contact skips channel",
			recipient:  &entity.ResetRecipient{UserID: 2, Name: "Joao", Email: "joao@example.com"},
			withEmail:  true,
			withWA:     true,
			wantReport: entity.NotificationReport{Email: true},
		},
		{
			name:       "unconfigured channel skips",
			recipient:  full,
			withWA:     true,
			wantReport: entity.NotificationReport{WhatsApp: true},
		},
		{
			name:       "nil recipient",
			recipient:  nil,
			withEmail:  true,
			withWA:     true,
			wantReport: entity.NotificationReport{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			params := DispatcherParams{
				Metrics: metrics.New(prometheus.NewRegistry()),
				Logger:  newDiscardLogger(),
			}

			var email *mockEmailSender
			if tt.withEmail {
				email = &mockEmailSender{}
				if tt.recipient != nil && tt.recipient.Email != "" {
					email.On("SendPasswordResetEmail", ctx, tt.recipient.Email, tt.recipient.Name, "tok", expires).Return(tt.emailErr)
				}
				params.Email = email
			}

			var wa *mockMessageSender
			if tt.withWA {
				wa = &mockMessageSender{}
				if tt.recipient != nil && tt.recipient.WhatsApp != "" {
					wa.On("SendPasswordResetMessage", ctx, tt.recipient.WhatsApp, tt.recipient.Name, "tok").Return(tt.waErr)
				}
				params.WhatsApp = wa
			}

			report := NewDispatcher(params).NotifyPasswordReset(ctx, tt.recipient, "tok", expires)
			assert.Equal(t, tt.wantReport, report)

			if email != nil {
				email.AssertExpectations(t)
			}
			if wa != nil {
				wa.AssertExpectations(t)
			}
		})
	}
}

func TestDispatcher_CountsDeliveries(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	ctx := context.Background()

	email := &mockEmailSender{}
	email.On("SendPasswordResetEmail", mock.Anything, "a@b.com", "Ana", "tok", mock.Anything).Return(errors.New("smtp down"))

	d := NewDispatcher(DispatcherParams{Email: email, Metrics: m, Logger: newDiscardLogger()})
	report := d.NotifyPasswordReset(ctx, &entity.ResetRecipient{UserID: 1, Name: "Ana", Email: "a@b.com"}, "tok", time.Now())

	assert.False(t, report.Email)
	assert.InDelta(t, 1, testutil.ToFloat64(m.NotificationsSent.WithLabelValues(channelEmail, "failed")), 0)
}
