package kana

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const defaultEndpoint = "https://labs.goo.ne.jp/api/hiragana"

// Client defines the interface for the kanji-to-hiragana conversion API
type Client interface {
	Convert(ctx context.Context, text string) (string, error)
}

type clientImpl struct {
	appID      string
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a new conversion client. With an empty app ID the
// client is a no-op: Convert returns "" without error, so callers degrade
// to "no suggestion available" instead of failing.
func NewClient(appID string) Client {
	return NewClientWithEndpoint(appID, defaultEndpoint)
}

// NewClientWithEndpoint targets a non-default conversion endpoint.
func NewClientWithEndpoint(appID, endpoint string) Client {
	return &clientImpl{
		appID:      appID,
		endpoint:   endpoint,
		httpClient: &http.Client{},
	}
}

func (c *clientImpl) Convert(ctx context.Context, text string) (string, error) {
	if c.appID == "" || text == "" {
		return "", nil
	}

	payload := map[string]string{
		"app_id":      c.appID,
		"sentence":    text,
		"output_type": "hiragana",
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("error creating payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Add("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error converting text: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("error from conversion API: %s", string(body))
	}

	var response struct {
		Converted string `json:"converted"`
	}

	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("error parsing response: %w", err)
	}

	return response.Converted, nil
}
