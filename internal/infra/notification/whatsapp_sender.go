package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"funntour/config"
	"funntour/internal/domain/service"
	"funntour/internal/errors"
	"funntour/internal/util"
)

const (
	defaultWhatsAppAPIBaseURL = "https://graph.facebook.com"
	defaultWhatsAppAPIVersion = "v17.0"
	defaultWhatsAppTimeout    = 30 * time.Second
	brazilCountryCode         = "55"
)

// whatsAppTextMessage is the Cloud API payload for a plain text message.
type whatsAppTextMessage struct {
	MessagingProduct string `json:"messaging_product"`
	RecipientType    string `json:"recipient_type"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Text             struct {
		Body string `json:"body"`
	} `json:"text"`
}

// whatsAppSender posts text messages to the WhatsApp Cloud API.
type whatsAppSender struct {
	cfg        config.WhatsAppConfig
	httpClient *http.Client
	logger     *slog.Logger
}

// NewWhatsAppSender returns nil when the channel has no credentials and dry-run is off.
func NewWhatsAppSender(cfg *config.Config, logger *slog.Logger) service.MessageSender {
	if cfg.WhatsApp == nil {
		return nil
	}

	wa := *cfg.WhatsApp
	if !wa.DryRun && (wa.APIKey == "" || wa.PhoneNumberID == "") {
		return nil
	}
	if wa.APIBaseURL == "" {
		wa.APIBaseURL = defaultWhatsAppAPIBaseURL
	}
	if wa.APIVersion == "" {
		wa.APIVersion = defaultWhatsAppAPIVersion
	}
	if wa.Timeout <= 0 {
		wa.Timeout = defaultWhatsAppTimeout
	}

	return &whatsAppSender{
		cfg:        wa,
		httpClient: &http.Client{Timeout: wa.Timeout},
		logger:     logger,
	}
}

func (s *whatsAppSender) SendPasswordResetMessage(ctx context.Context, phoneNumber, userName, token string) error {
	to := normalizeWhatsAppNumber(phoneNumber)
	if to == "" {
		return errors.New("whatsapp number has no digits")
	}

	text, err := renderText(resetWhatsAppText, newResetMessageData(userName, token, time.Time{}))
	if err != nil {
		return err
	}

	if s.cfg.DryRun {
		s.logger.InfoContext(ctx, "WhatsApp dry-run, message not sent", slog.String("to", to))

		return nil
	}

	payload := whatsAppTextMessage{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               to,
		Type:             "text",
	}
	payload.Text.Body = text

	body, err := json.Marshal(payload)
	if err != nil {
		return errors.WithStack(err)
	}

	endpoint := fmt.Sprintf("%s/%s/%s/messages",
		strings.TrimRight(s.cfg.APIBaseURL, "/"), s.cfg.APIVersion, s.cfg.PhoneNumberID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

		return errors.Errorf("whatsapp api returned status %d: %s", resp.StatusCode, snippet)
	}

	s.logger.InfoContext(ctx, "WhatsApp message sent", slog.String("to", to))

	return nil
}

// normalizeWhatsAppNumber keeps the digits and prepends the Brazilian country code when absent.
func normalizeWhatsAppNumber(phone string) string {
	digits := util.DigitsOnly(phone)
	if digits == "" {
		return ""
	}
	if !strings.HasPrefix(digits, brazilCountryCode) {
		digits = brazilCountryCode + digits
	}

	return digits
}
