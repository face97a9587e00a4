// Package ollama is the HTTP client for an Ollama-compatible model server.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cloudwego/eino/schema"
)

const DefaultBaseURL = "http://localhost:11434"

const (
	endpointTags     = "/api/tags"
	endpointGenerate = "/api/generate"
	endpointChat     = "/api/chat"
)

// ErrNotRunning wraps transport failures reaching the server.
var ErrNotRunning = errors.New("model server is not reachable")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("API call failed with status: %s: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("API call failed with status: %s", e.Status)
}

// TokenSource returns an optional bearer token. An empty token sends no Authorization header.
type TokenSource func() (string, error)

type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Token      TokenSource
}

// Client talks to the model server. Safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      TokenSource
}

func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		// no Timeout: streams are bounded by the caller's context
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		token:      cfg.Token,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListModels returns the names of the models the server has installed.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	resp, err := c.do(ctx, http.MethodGet, endpointTags, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, fmt.Errorf("failed to decode model list: %w", err)
	}
	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		if m.Name != "" {
			names = append(names, m.Name)
		}
	}
	return names, nil
}

// Generate opens a streamed completion for a single prompt.
func (c *Client) Generate(ctx context.Context, model, prompt string) (*schema.StreamReader[Fragment], error) {
	resp, err := c.do(ctx, http.MethodPost, endpointGenerate, generateRequest{Model: model, Prompt: prompt})
	if err != nil {
		return nil, err
	}
	return pipeBody(ctx, resp.Body, decodeGenerateLine), nil
}

// Chat opens a streamed chat completion over the given history.
func (c *Client) Chat(ctx context.Context, model string, messages []*schema.Message) (*schema.StreamReader[Fragment], error) {
	wire := make([]wireMessage, 0, len(messages))
	for _, m := range messages {
		if m == nil {
			continue
		}
		wire = append(wire, wireMessage{Role: string(m.Role), Content: m.Content})
	}
	resp, err := c.do(ctx, http.MethodPost, endpointChat, chatRequest{Model: model, Messages: wire})
	if err != nil {
		return nil, err
	}
	return pipeBody(ctx, resp.Body, decodeChatLine), nil
}

// do sends the request and returns the response only for 2xx statuses.
func (c *Client) do(ctx context.Context, method, path string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil {
		token, err := c.token()
		if err != nil {
			return nil, fmt.Errorf("failed to read server token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w at %s: %v", ErrNotRunning, c.baseURL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(errBody)),
		}
	}
	return resp, nil
}
