package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"sjsage522/propertymonitor/internal/listing"
	"sjsage522/propertymonitor/pkg/errors"
)

// WebhookPayload is the JSON body posted to the webhook
type WebhookPayload struct {
	Recipient string            `json:"recipient,omitempty"`
	Count     int               `json:"count"`
	Summary   string            `json:"summary"`
	Listings  []listing.Listing `json:"listings"`
	FoundAt   time.Time         `json:"found_at"`
}

// WebhookNotifier posts new listings as JSON to a URL
type WebhookNotifier struct {
	url       string
	recipient string
	client    *http.Client
}

// NewWebhookNotifier creates a webhook notifier
func NewWebhookNotifier(url, recipient string, timeout time.Duration) *WebhookNotifier {
	return &WebhookNotifier{
		url:       url,
		recipient: recipient,
		client:    &http.Client{Timeout: timeout},
	}
}

// Notify posts the payload and expects a 2xx answer
func (w *WebhookNotifier) Notify(ctx context.Context, listings []listing.Listing) error {
	if len(listings) == 0 {
		return nil
	}

	body, err := json.Marshal(WebhookPayload{
		Recipient: w.recipient,
		Count:     len(listings),
		Summary:   FormatSummary(listings),
		Listings:  listings,
		FoundAt:   time.Now().UTC(),
	})
	if err != nil {
		return errors.NewNotification(w.Name(), "encode payload", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return errors.NewNotification(w.Name(), "create request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return errors.NewNotification(w.Name(), "post webhook", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.NewNotification(w.Name(), fmt.Sprintf("unexpected status code: %d", resp.StatusCode), nil)
	}
	return nil
}

// Name returns the backend name
func (w *WebhookNotifier) Name() string {
	return "webhook"
}
