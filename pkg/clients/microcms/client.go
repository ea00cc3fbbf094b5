package microcms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
)

// Content is one entry of a microCMS list endpoint. Fields beyond the
// common ones are kept raw so location endpoints can pass them through.
type Content struct {
	ID           string `json:"id"`
	Name         string `json:"name,omitempty"`
	Region       string `json:"region,omitempty"`
	PrefectureID string `json:"prefectureId,omitempty"`
}

// ContentList mirrors the microCMS list response shape.
type ContentList struct {
	Contents   []Content `json:"contents"`
	TotalCount int       `json:"totalCount"`
	Offset     int       `json:"offset"`
	Limit      int       `json:"limit"`
}

// Client defines the interface for the headless CMS holding job inventory
// and location content
type Client interface {
	JobCount(ctx context.Context, prefecture string) (int, error)
	Prefectures(ctx context.Context) (*ContentList, error)
	Municipalities(ctx context.Context, prefectureID, municipalityID string) (*ContentList, error)
}

type clientImpl struct {
	apiKey        string
	serviceDomain string
	baseURL       string
	httpClient    *http.Client
}

// NewClient creates a new microCMS client
func NewClient(serviceDomain, apiKey string) Client {
	return &clientImpl{
		apiKey:        apiKey,
		serviceDomain: serviceDomain,
		baseURL:       fmt.Sprintf("https://%s.microcms.io/api/v1", serviceDomain),
		httpClient:    &http.Client{},
	}
}

// JobCount returns the number of open jobs in a prefecture. It queries with
// limit=0 and reads totalCount so no content bodies travel over the wire.
func (c *clientImpl) JobCount(ctx context.Context, prefecture string) (int, error) {
	params := url.Values{}
	params.Set("limit", "0")
	params.Set("filters", fmt.Sprintf("prefecture[contains]%s", prefecture))

	list, err := c.getList(ctx, "jobs", params)
	if err != nil {
		return 0, err
	}

	log.Printf("Job count for %s: %d", prefecture, list.TotalCount)
	return list.TotalCount, nil
}

func (c *clientImpl) Prefectures(ctx context.Context) (*ContentList, error) {
	params := url.Values{}
	params.Set("limit", "100")
	return c.getList(ctx, "prefectures", params)
}

func (c *clientImpl) Municipalities(ctx context.Context, prefectureID, municipalityID string) (*ContentList, error) {
	params := url.Values{}
	params.Set("limit", "100")
	if prefectureID != "" {
		params.Set("filters", fmt.Sprintf("prefectureId[equals]%s", prefectureID))
	} else if municipalityID != "" {
		params.Set("ids", municipalityID)
	}
	return c.getList(ctx, "municipalities", params)
}

func (c *clientImpl) getList(ctx context.Context, endpoint string, params url.Values) (*ContentList, error) {
	requestURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Add("X-MICROCMS-API-KEY", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error querying CMS: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error from CMS API: %s", string(body))
	}

	var list ContentList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("error parsing response: %w", err)
	}

	return &list, nil
}
