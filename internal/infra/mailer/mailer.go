// Package mailer sends transactional email over SMTP.
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"
)

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Receipt is the data rendered into a payment confirmation.
type Receipt struct {
	PlanName     string
	Amount       float64
	IsYearly     bool
	BusinessName string
	Role         string
}

type Mailer struct {
	from string
	send func(msgs ...*gomail.Message) error
}

// New returns a mailer that drops every message when no SMTP host is set.
func New(cfg Config) *Mailer {
	if cfg.Host == "" {
		return &Mailer{from: cfg.From, send: func(...*gomail.Message) error { return nil }}
	}
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	return &Mailer{from: cfg.From, send: d.DialAndSend}
}

// NewWithSender is used by tests and alternative transports.
func NewWithSender(from string, s gomail.Sender) *Mailer {
	return &Mailer{from: from, send: func(msgs ...*gomail.Message) error {
		return gomail.Send(s, msgs...)
	}}
}

var receiptTmpl = template.Must(template.New("receipt").Parse(`<p>Thank you for upgrading to <strong>{{.PlanName}}</strong>!</p>
<p>Amount: ${{printf "%.2f" .Amount}} {{if .IsYearly}}per year{{else}}per month{{end}}</p>
{{if .BusinessName}}<p>Your listing <strong>{{.BusinessName}}</strong> is now verified.</p>{{end}}
<p>Your account role is now {{.Role}}.</p>`))

func (m *Mailer) SendPaymentReceipt(ctx context.Context, to string, r Receipt) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var body bytes.Buffer
	if err := receiptTmpl.Execute(&body, r); err != nil {
		return fmt.Errorf("render receipt: %w", err)
	}
	return m.Send(to, "Your PrideNomad "+r.PlanName+" plan is active", body.String())
}

func (m *Mailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.send(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}
