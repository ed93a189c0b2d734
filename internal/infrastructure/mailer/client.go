package mailer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"resty.dev/v3"

	"movision-server/internal/infrastructure/metrics"
	"movision-server/internal/utils/apperrors"
)

// Recipient is one email destination.
type Recipient struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Message is a single transactional email.
type Message struct {
	Sender      Recipient   `json:"sender"`
	To          []Recipient `json:"to"`
	Subject     string      `json:"subject"`
	HTMLContent string      `json:"htmlContent"`
}

// Client sends transactional email through a Brevo-style HTTP API.
type Client struct {
	httpClient *resty.Client
	baseURL    string
	apiKey     string
	sender     Recipient
}

func NewClient(baseURL, apiKey, senderName, senderEmail string, timeout time.Duration) *Client {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &Client{
		httpClient: client,
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:     apiKey,
		sender:     Recipient{Name: senderName, Email: senderEmail},
	}
}

// Enabled reports whether the mailer is configured with credentials.
func (c *Client) Enabled() bool {
	return strings.TrimSpace(c.apiKey) != "" && strings.TrimSpace(c.sender.Email) != ""
}

// Send delivers one message using the configured sender identity.
func (c *Client) Send(ctx context.Context, to Recipient, subject, htmlContent string) error {
	if !c.Enabled() {
		return apperrors.NewError(ctx, apperrors.LayerInfrastructure, apperrors.ErrorTypeUpstream, "mailer is not configured", nil)
	}

	message := Message{
		Sender:      c.sender,
		To:          []Recipient{to},
		Subject:     subject,
		HTMLContent: htmlContent,
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("api-key", c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(message).
		Post(c.baseURL + "/smtp/email")
	if err != nil {
		metrics.RecordProviderError("mailer", "transport")
		return apperrors.NewError(ctx, apperrors.LayerInfrastructure, apperrors.ErrorTypeUpstream, "email send failed", err)
	}
	if resp.IsError() {
		metrics.RecordProviderError("mailer", "status")
		return apperrors.NewError(ctx, apperrors.LayerInfrastructure, apperrors.ErrorTypeUpstream,
			fmt.Sprintf("email send failed: status %d", resp.StatusCode()), nil)
	}
	return nil
}
