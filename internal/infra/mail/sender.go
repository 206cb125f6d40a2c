package mail

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/call-screener/internal/entity"
	"github.com/xavierca1/call-screener/internal/infra/queue"
)

var hostAlertTmpl = template.Must(template.New("host_alert").Parse(
	`{{if eq .Status "on_air"}}Now on air: {{.Name}}{{else}}Queued for you: {{.Name}}{{end}}
Phone: {{.MaskedPhone}}{{if .Location}} ({{.Location}}){{end}}
Topic: {{.Topic}}
Priority: {{.Priority}}{{if .Prioritized}} (prioritized by the screener){{end}}
{{if .Returning}}Returning caller.
{{end}}`))

// Dialer is the part of *gomail.Dialer the sender uses.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// HostAlertSender emails the host when a caller needs their attention.
type HostAlertSender struct {
	EmailSender
	To     string
	dialer Dialer
}

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

func NewHostAlertSender(sender *EmailSender, to string) *HostAlertSender {
	return &HostAlertSender{
		EmailSender: *sender,
		To:          to,
		dialer:      gomail.NewDialer(sender.Host, sender.Port, sender.User, sender.Password),
	}
}

// WithDialer swaps the SMTP dialer.
func (s *HostAlertSender) WithDialer(d Dialer) *HostAlertSender {
	s.dialer = d
	return s
}

func (s *HostAlertSender) NotifyHost(ctx context.Context, event queue.ScreeningEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.To == "" {
		return fmt.Errorf("host alert: no recipient configured")
	}

	data := HostAlertData{
		Name:        event.Name,
		MaskedPhone: event.MaskedPhone,
		Location:    event.Location,
		Topic:       event.Topic,
		Priority:    strings.ToUpper(event.Priority),
		Status:      event.Status,
		Prioritized: event.PrioritizedForHost,
		Returning:   event.CallerType == string(entity.CallerTypeRegular),
	}

	body, err := RenderHostAlert(data)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.To)
	m.SetHeader("Subject", subjectFor(data))
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("host alert: send SMTP: %w", err)
	}
	return nil
}

func RenderHostAlert(data HostAlertData) (string, error) {
	var body bytes.Buffer
	if err := hostAlertTmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("host alert: render template: %w", err)
	}
	return body.String(), nil
}

func subjectFor(d HostAlertData) string {
	if d.Status == string(entity.StatusOnAir) {
		return fmt.Sprintf("[ON AIR] %s", d.Name)
	}
	return fmt.Sprintf("[%s] %s: %s", d.Priority, d.Name, d.Topic)
}
