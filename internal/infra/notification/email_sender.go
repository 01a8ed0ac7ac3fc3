// Package notification delivers password-recovery messages over email and WhatsApp.
package notification

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net"
	"net/smtp"
	"net/textproto"
	"strconv"
	"time"

	"funntour/config"
	"funntour/internal/domain/service"
	"funntour/internal/errors"
)

const defaultSMTPTimeout = 30 * time.Second

// smtpEmailSender sends mail through an SMTP relay, upgrading with STARTTLS when offered.
type smtpEmailSender struct {
	cfg    config.SMTPConfig
	logger *slog.Logger
	now    func() time.Time
}

// NewEmailSender returns nil when no SMTP relay is configured and dry-run is off.
func NewEmailSender(cfg *config.Config, logger *slog.Logger) service.EmailSender {
	if cfg.SMTP == nil || (cfg.SMTP.Host == "" && !cfg.SMTP.DryRun) {
		return nil
	}

	return &smtpEmailSender{
		cfg:    *cfg.SMTP,
		logger: logger,
		now:    time.Now,
	}
}

func (s *smtpEmailSender) SendPasswordResetEmail(ctx context.Context, recipient, userName, token string, expiresAt time.Time) error {
	data := newResetMessageData(userName, token, expiresAt)

	textBody, err := renderText(resetEmailText, data)
	if err != nil {
		return err
	}
	htmlBody, err := renderHTML(resetEmailHTML, data)
	if err != nil {
		return err
	}

	msg, err := s.buildMessage(recipient, passwordResetSubject, textBody, htmlBody)
	if err != nil {
		return err
	}

	if s.cfg.DryRun {
		s.logger.InfoContext(ctx, "Email dry-run, message not sent",
			slog.String("to", recipient),
			slog.String("subject", passwordResetSubject),
		)

		return nil
	}

	if err := s.deliver(ctx, recipient, msg); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Email sent", slog.String("to", recipient), slog.String("subject", passwordResetSubject))

	return nil
}

// buildMessage renders an RFC 5322 message with a multipart/alternative body.
func (s *smtpEmailSender) buildMessage(to, subject, textBody, htmlBody string) ([]byte, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	parts := []struct {
		contentType string
		content     string
	}{
		{contentType: "text/plain; charset=UTF-8", content: textBody},
		{contentType: "text/html; charset=UTF-8", content: htmlBody},
	}
	for _, part := range parts {
		w, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {part.contentType},
			"Content-Transfer-Encoding": {"quoted-printable"},
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create mime part")
		}

		qp := quotedprintable.NewWriter(w)
		if _, err := qp.Write([]byte(part.content)); err != nil {
			return nil, errors.Wrap(err, "failed to encode mime part")
		}
		if err := qp.Close(); err != nil {
			return nil, errors.Wrap(err, "failed to encode mime part")
		}
	}
	if err := mw.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to close multipart body")
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", s.cfg.Sender)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject))
	fmt.Fprintf(&msg, "Date: %s\r\n", s.now().Format(time.RFC1123Z))
	msg.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=%q\r\n", mw.Boundary())
	msg.WriteString("\r\n")
	msg.Write(body.Bytes())

	return msg.Bytes(), nil
}

func (s *smtpEmailSender) deliver(ctx context.Context, to string, msg []byte) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultSMTPTimeout)
		defer cancel()
	}

	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return errors.Wrap(err, "failed to connect to SMTP server")
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		_ = conn.Close()

		return errors.Wrap(err, "failed to create SMTP client")
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		tlsConfig := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}
		if err := client.StartTLS(tlsConfig); err != nil {
			return errors.Wrap(err, "failed to start TLS")
		}
	}

	if s.cfg.Username != "" {
		auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return errors.Wrap(err, "failed to authenticate")
		}
	}

	if err := client.Mail(s.cfg.Sender); err != nil {
		return errors.Wrap(err, "failed to set sender")
	}
	if err := client.Rcpt(to); err != nil {
		return errors.Wrap(err, "failed to set recipient")
	}

	w, err := client.Data()
	if err != nil {
		return errors.Wrap(err, "failed to get data writer")
	}
	if _, err := w.Write(msg); err != nil {
		return errors.Wrap(err, "failed to write message")
	}
	if err := w.Close(); err != nil {
		return errors.Wrap(err, "failed to close data writer")
	}

	return errors.Wrap(client.Quit(), "failed to quit SMTP session")
}
