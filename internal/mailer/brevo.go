package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"blogiq/internal/config"
)

type contact struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type brevoRequest struct {
	Sender      contact   `json:"sender"`
	To          []contact `json:"to"`
	Subject     string    `json:"subject"`
	HTMLContent string    `json:"htmlContent"`
}

// BrevoMailer sends through Brevo's transactional email API.
type BrevoMailer struct {
	endpoint   string
	apiKey     string
	sender     contact
	httpClient *http.Client
}

func NewBrevoMailer(cfg config.MailConfig) *BrevoMailer {
	return &BrevoMailer{
		endpoint:   cfg.BrevoURL,
		apiKey:     cfg.BrevoAPIKey,
		sender:     contact{Email: cfg.SenderEmail, Name: cfg.SenderName},
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (m *BrevoMailer) Send(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(brevoRequest{
		Sender:      m.sender,
		To:          []contact{{Email: msg.ToEmail, Name: msg.ToName}},
		Subject:     msg.Subject,
		HTMLContent: msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal email: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	request.Header.Set("Accept", "application/json")
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("api-key", m.apiKey)

	response, err := m.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(response.Body, 4096))
		return fmt.Errorf("brevo returned status %d: %s", response.StatusCode, bytes.TrimSpace(body))
	}
	return nil
}
