package email

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"fitplan_backend/internal/logger"
)

type Config struct {
	SMTPHost  string
	SMTPPort  int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

func (c Config) Validate() error {
	if c.SMTPHost == "" {
		return errors.New("smtp host is required")
	}
	if c.SMTPPort == 0 {
		return errors.New("smtp port is required")
	}
	if c.FromEmail == "" {
		return errors.New("from email is required")
	}
	return nil
}

// Provider sends customer-facing mail. Every send is best-effort: a failure
// surfaces as a warning upstream and never blocks the operation that
// triggered it.
type Provider interface {
	SendPlanActivated(to, name, planName string, start, end time.Time) error
}

type SMTPProvider struct {
	config Config
	dialer *gomail.Dialer
}

func NewSMTPProvider(config Config) (*SMTPProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid email config: %w", err)
	}

	return &SMTPProvider{
		config: config,
		dialer: gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.Username, config.Password),
	}, nil
}

func (p *SMTPProvider) SendPlanActivated(to, name, planName string, start, end time.Time) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.config.FromEmail, p.config.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Your %s plan is active", planName))
	m.SetBody("text/html", fmt.Sprintf(
		"<p>Hi %s,</p><p>Your <b>%s</b> plan is now active from %s to %s. Enjoy!</p>",
		name, planName,
		start.Format("2 January 2006"), end.Format("2 January 2006"),
	))

	return p.dialer.DialAndSend(m)
}

// NoopProvider stands in when email is disabled in config.
type NoopProvider struct{}

func (NoopProvider) SendPlanActivated(to, name, planName string, start, end time.Time) error {
	logger.Debug("email disabled, skipping plan-activated mail", "to", to, "plan", planName)
	return nil
}
