package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"orderflow/internal/core/domain/model/outbox"
)

// Config holds the email provider settings.
type Config struct {
	APIURL string
	APIKey string
	From   string
}

// Client implements the Notifier port against an HTTP email provider.
type Client struct {
	httpClient *http.Client
	cfg        Config
}

// NewClient creates an email client with a tuned transport. Provider calls
// run from the outbox relay, so a hung request must never stall the loop
// longer than the timeout.
func NewClient(cfg Config) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
			},
		},
	}
}

// sendRequest is the provider's wire format.
type sendRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Send renders the notification through the catalog and POSTs it to the
// provider. Non-2xx responses surface the provider's error detail.
func (c *Client) Send(ctx context.Context, notification outbox.Notification) error {
	if c.cfg.APIURL == "" || c.cfg.APIKey == "" {
		return fmt.Errorf("email api url or key is empty")
	}

	subject, body := compose(notification.Tag, notification.Extra)
	payload, err := json.Marshal(sendRequest{
		From:    c.cfg.From,
		To:      notification.Recipient,
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		return fmt.Errorf("marshal email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call email provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("email provider returned %d: %s", resp.StatusCode, detail)
	}

	return nil
}
