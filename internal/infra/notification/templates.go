package notification

import (
	"bytes"
	htmltemplate "html/template"
	texttemplate "text/template"
	"time"

	"funntour/internal/errors"
)

const passwordResetSubject = "Funntour - Recuperação de Senha"

// Brazil has observed no daylight saving time since 2019.
var brasiliaTime = time.FixedZone("BRT", -3*60*60)

type resetMessageData struct {
	Name      string
	Token     string
	ExpiresAt string
}

var resetEmailText = texttemplate.Must(texttemplate.New("reset-text").Parse(`Olá, {{.Name}}!

Recebemos uma solicitação para redefinir a senha da sua conta Funntour.

Use o código abaixo para criar uma nova senha:

{{.Token}}

O código expira em {{.ExpiresAt}}.

Se você não fez esta solicitação, ignore este e-mail.

Equipe Funntour
`))

var resetEmailHTML = htmltemplate.Must(htmltemplate.New("reset-html").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Recuperação de Senha</h2>
  <p>Olá, <strong>{{.Name}}</strong>!</p>
  <p>Recebemos uma solicitação para redefinir a senha da sua conta Funntour.</p>
  <p>Use o código abaixo para criar uma nova senha:</p>
  <p style="font-family: monospace; background: #f4f4f4; padding: 12px; word-break: break-all;">{{.Token}}</p>
  <p>O código expira em <strong>{{.ExpiresAt}}</strong>.</p>
  <p>Se você não fez esta solicitação, ignore este e-mail.</p>
  <p>Equipe Funntour</p>
</body>
</html>
`))

var resetWhatsAppText = texttemplate.Must(texttemplate.New("reset-whatsapp").Parse(
	`Olá, {{.Name}}! Seu código de recuperação de senha Funntour é: {{.Token}} ` +
		`O código é válido por 10 minutos. Se você não solicitou, ignore esta mensagem.`))

func newResetMessageData(name, token string, expiresAt time.Time) resetMessageData {
	data := resetMessageData{Name: name, Token: token}
	if !expiresAt.IsZero() {
		data.ExpiresAt = expiresAt.In(brasiliaTime).Format("02/01/2006 15:04") + " (horário de Brasília)"
	}

	return data
}

func renderText(tmpl *texttemplate.Template, data resetMessageData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.Wrapf(err, "failed to render %s", tmpl.Name())
	}

	return buf.String(), nil
}

func renderHTML(tmpl *htmltemplate.Template, data resetMessageData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.Wrapf(err, "failed to render %s", tmpl.Name())
	}

	return buf.String(), nil
}
