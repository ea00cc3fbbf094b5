package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
)

// Client defines the interface for the structured-data webhook backing the
// applicant spreadsheet
type Client interface {
	AppendRecord(ctx context.Context, webhookURL string, record map[string]interface{}) error
}

type clientImpl struct {
	httpClient *http.Client
}

// NewClient creates a new data-sink client
func NewClient() Client {
	return &clientImpl{
		httpClient: &http.Client{},
	}
}

func (c *clientImpl) AppendRecord(ctx context.Context, webhookURL string, record map[string]interface{}) error {
	jsonPayload, err := json.Marshal(record)
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
		return fmt.Errorf("error appending record: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("error from data webhook: %s", string(body))
	}

	log.Printf("Appended applicant record to data sink")
	return nil
}
