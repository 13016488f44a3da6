package mailer

import (
	"context"
	"fmt"

	"blogiq/internal/config"
)

// Message is a single HTML email.
type Message struct {
	ToEmail string
	ToName  string
	Subject string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New picks the transport named by cfg.Provider.
func New(cfg config.MailConfig) (Mailer, error) {
	if cfg.SenderEmail == "" {
		return nil, fmt.Errorf("EMAIL_FROM is not set")
	}

	switch cfg.Provider {
	case "smtp":
		if cfg.SMTPHost == "" {
			return nil, fmt.Errorf("SMTP_HOST is not set")
		}
		return NewSMTPMailer(cfg), nil
	case "brevo", "":
		if cfg.BrevoAPIKey == "" {
			return nil, fmt.Errorf("BREVO_API_KEY is not set")
		}
		return NewBrevoMailer(cfg), nil
	default:
		return nil, fmt.Errorf("unknown mail provider %q", cfg.Provider)
	}
}
