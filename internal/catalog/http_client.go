package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"slate/internal/config"
)

// HTTPDoer describes the HTTP client used by HTTPClient.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPClient implements Conn over a JSON/HTTP catalog endpoint using
// script-name credentials.
type HTTPClient struct {
	baseURL    string
	scriptName string
	apiKey     string
	client     HTTPDoer
}

var _ Conn = (*HTTPClient)(nil)

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client HTTPDoer) Option {
	return func(c *HTTPClient) {
		if client != nil {
			c.client = client
		}
	}
}

// New creates a catalog client from explicit connection values.
func New(baseURL, scriptName, apiKey string, timeout time.Duration, opts ...Option) (*HTTPClient, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("catalog base url required")
	}
	scriptName = strings.TrimSpace(scriptName)
	if scriptName == "" {
		return nil, errors.New("catalog script name required")
	}
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("catalog api key required")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	client := &HTTPClient{
		baseURL:    baseURL,
		scriptName: scriptName,
		apiKey:     apiKey,
		client:     &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// NewFromConfig creates a catalog client from application config.
func NewFromConfig(cfg *config.Config, opts ...Option) (*HTTPClient, error) {
	if cfg == nil {
		return nil, errors.New("catalog config required")
	}
	timeout := time.Duration(cfg.Catalog.RequestTimeout) * time.Second
	return New(cfg.Catalog.URL, cfg.Catalog.ScriptName, cfg.Catalog.APIKey, timeout, opts...)
}

type findResponse struct {
	Records []Record `json:"records"`
}

type findOneResponse struct {
	Record Record `json:"record"`
}

// Find executes a query and returns every matching record.
func (c *HTTPClient) Find(ctx context.Context, query Query) ([]Record, error) {
	var parsed findResponse
	if err := c.post(ctx, "/find", query, &parsed); err != nil {
		return nil, err
	}
	return parsed.Records, nil
}

// FindOne executes a query and returns the first matching record, or nil
// when nothing matches.
func (c *HTTPClient) FindOne(ctx context.Context, query Query) (Record, error) {
	var parsed findOneResponse
	if err := c.post(ctx, "/find_one", query, &parsed); err != nil {
		return nil, err
	}
	if len(parsed.Record) == 0 || string(parsed.Record) == "null" {
		return nil, nil
	}
	return parsed.Record, nil
}

type updateRequest struct {
	Entity string         `json:"entity"`
	ID     int64          `json:"id"`
	Fields map[string]any `json:"fields"`
}

// Update writes field values onto one entity record.
func (c *HTTPClient) Update(ctx context.Context, entity string, id int64, fields map[string]any) error {
	return c.post(ctx, "/update", updateRequest{Entity: entity, ID: id, Fields: fields}, nil)
}

func (c *HTTPClient) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode catalog request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Script-Name", c.scriptName)
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("catalog request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("catalog request %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode catalog response %s: %w", path, err)
	}
	return nil
}
