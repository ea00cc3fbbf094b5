package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
)

// Client defines the interface for the messaging webhook
type Client interface {
	SendText(ctx context.Context, webhookURL, text string) error
}

type clientImpl struct {
	httpClient *http.Client
}

// NewClient creates a new messaging webhook client
func NewClient() Client {
	return &clientImpl{
		httpClient: &http.Client{},
	}
}

func (c *clientImpl) SendText(ctx context.Context, webhookURL, text string) error {
	payload := map[string]string{
		"text": text,
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error creating payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", webhookURL, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Add("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error sending notification: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("error from messaging webhook: %s", string(body))
	}

	log.Printf("Sent notification (%d bytes)", len(text))
	return nil
}
