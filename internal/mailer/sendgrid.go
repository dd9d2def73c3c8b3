// Package mailer отправляет письма с вопросами через SendGrid.
// Вопросы группируются по предметам в один HTML-документ;
// ошибка провайдера фатальна для конкретной отправки, повторов нет.
package mailer

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/magabrotheeeer/daily-practice/internal/lib/sl"
	"github.com/magabrotheeeer/daily-practice/internal/models"
)

// SendgridMailer реализует отправку писем через SendGrid v3 API.
type SendgridMailer struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
	log       *slog.Logger
}

// New создает новый экземпляр SendgridMailer.
func New(apiKey, fromEmail, fromName string, log *slog.Logger) *SendgridMailer {
	return &SendgridMailer{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
		log:       log,
	}
}

// Send собирает письмо с вопросами и отправляет его получателю.
func (m *SendgridMailer) Send(ctx context.Context, to, recipientName string, bundles []models.SubjectBundle) error {
	const op = "mailer.Send"

	from := sgmail.NewEmail(m.fromName, m.fromEmail)
	toAddr := sgmail.NewEmail(recipientName, to)
	subject := fmt.Sprintf("Practice questions for %s", recipientName)

	message := sgmail.NewSingleEmail(from, subject, toAddr,
		BuildPlainText(recipientName, bundles),
		BuildHTML(recipientName, bundles))

	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		m.log.Error("sendgrid request failed", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		m.log.Error("sendgrid rejected message",
			slog.Int("status", resp.StatusCode), slog.String("body", resp.Body))
		return fmt.Errorf("%s: unexpected status %d", op, resp.StatusCode)
	}

	m.log.Info("email sent successfully", slog.String("to", to))
	return nil
}

// BuildHTML строит HTML-документ письма: заголовок на каждый предмет,
// нумерованный список вопросов с ответами и пояснениями.
func BuildHTML(recipientName string, bundles []models.SubjectBundle) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	b.WriteString(fmt.Sprintf("<h1>Practice questions for %s</h1>", html.EscapeString(recipientName)))

	for _, bundle := range bundles {
		b.WriteString(fmt.Sprintf("<h2>%s</h2>", html.EscapeString(capitalize(bundle.Subject))))
		b.WriteString("<ol>")
		for _, q := range bundle.Questions {
			b.WriteString("<li>")
			b.WriteString(fmt.Sprintf("<p>%s</p>", html.EscapeString(q.Text)))
			b.WriteString(fmt.Sprintf("<p><b>Answer:</b> %s</p>", html.EscapeString(q.Answer)))
			if q.Explanation != "" {
				b.WriteString(fmt.Sprintf("<p><i>%s</i></p>", html.EscapeString(q.Explanation)))
			}
			b.WriteString("</li>")
		}
		b.WriteString("</ol>")
	}

	b.WriteString("</body></html>")
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// BuildPlainText строит текстовую версию письма для клиентов без HTML.
func BuildPlainText(recipientName string, bundles []models.SubjectBundle) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Practice questions for %s\n\n", recipientName))

	for _, bundle := range bundles {
		b.WriteString(strings.ToUpper(bundle.Subject))
		b.WriteString("\n")
		for i, q := range bundle.Questions {
			b.WriteString(fmt.Sprintf("%d. %s\n   Answer: %s\n", i+1, q.Text, q.Answer))
			if q.Explanation != "" {
				b.WriteString(fmt.Sprintf("   %s\n", q.Explanation))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
