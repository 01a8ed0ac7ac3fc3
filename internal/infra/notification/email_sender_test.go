package notification

import (
	"bufio"
	"context"
	"mime"
	"mime/multipart"
	"net"
	"net/mail"
	"strconv"
	"strings"
	"testing"
	"time"

	"funntour/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSMTPServer accepts a single plain SMTP session and records the DATA payload.
func fakeSMTPServer(t *testing.T) (host string, port int, received <-chan string) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	out := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		r := bufio.NewReader(conn)
		write := func(line string) { _, _ = conn.Write([]byte(line + "\r\n")) }
		write("220 localhost ESMTP")

		var data strings.Builder
		inData := false
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			if inData {
				if line == ".\r\n" {
					inData = false
					out <- data.String()
					write("250 OK")

					continue
				}
				data.WriteString(line)

				continue
			}

			cmd := strings.ToUpper(strings.TrimSpace(line))
			switch {
			case strings.HasPrefix(cmd, "EHLO"), strings.HasPrefix(cmd, "HELO"):
				write("250 localhost")
			case strings.HasPrefix(cmd, "MAIL"), strings.HasPrefix(cmd, "RCPT"):
				write("250 OK")
			case cmd == "DATA":
				inData = true
				write("354 End data with <CR><LF>.<CR><LF>")
			case cmd == "QUIT":
				write("221 Bye")

				return
			default:
				write("250 OK")
			}
		}
	}()

	addr := ln.Addr().(*net.TCPAddr)

	return addr.IP.String(), addr.Port, out
}

func TestNewEmailSender_Unconfigured(t *testing.T) {
	logger := newDiscardLogger()

	assert.Nil(t, NewEmailSender(&config.Config{}, logger))
	assert.Nil(t, NewEmailSender(&config.Config{SMTP: &config.SMTPConfig{}}, logger))
	assert.NotNil(t, NewEmailSender(&config.Config{SMTP: &config.SMTPConfig{DryRun: true}}, logger))
}

func TestEmailSender_BuildMessage(t *testing.T) {
	sender := NewEmailSender(&config.Config{SMTP: &config.SMTPConfig{
		DryRun: true,
		Sender: "noreply@funntour.com",
	}}, newDiscardLogger()).(*smtpEmailSender)
	sender.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	raw, err := sender.buildMessage("maria@example.com", passwordResetSubject, "texto", "<p>html</p>")
	require.NoError(t, err)

	msg, err := mail.ReadMessage(strings.NewReader(string(raw)))
	require.NoError(t, err)

	subject, err := new(mime.WordDecoder).DecodeHeader(msg.Header.Get("Subject"))
	require.NoError(t, err)
	assert.Equal(t, "Funntour - Recuperação de Senha", subject)
	assert.Equal(t, "maria@example.com", msg.Header.Get("To"))

	mediaType, params, err := mime.ParseMediaType(msg.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/alternative", mediaType)

	mr := multipart.NewReader(msg.Body, params["boundary"])
	var types []string
	for {
		part, err := mr.NextPart()
		if err != nil {
			break
		}
		types = append(types, part.Header.Get("Content-Type"))
	}
	assert.Equal(t, []string{"text/plain; charset=UTF-8", "text/html; charset=UTF-8"}, types)
}

func TestEmailSender_DeliversOverSMTP(t *testing.T) {
	host, port, received := fakeSMTPServer(t)

	sender := NewEmailSender(&config.Config{SMTP: &config.SMTPConfig{
		Host:   host,
		Port:   port,
		Sender: "noreply@funntour.com",
	}}, newDiscardLogger())
	require.NotNil(t, sender)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	expires := time.Date(2024, 5, 1, 15, 10, 0, 0, time.UTC)
	require.NoError(t, sender.SendPasswordResetEmail(ctx, "maria@example.com", "Maria", "tok-abc", expires))

	select {
	case data := <-received:
		assert.Contains(t, data, "multipart/alternative")
		assert.Contains(t, data, "tok-abc")
		assert.Contains(t, data, "01/05/2024 12:10")
	case <-ctx.Done():
		t.Fatal("no message received on " + host + ":" + strconv.Itoa(port))
	}
}
