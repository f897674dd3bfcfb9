package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client provides typed access to a model deployment platform API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	basicUser  string
	basicPass  string
}

// Option customises client instantiation.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithBearerToken attaches a bearer token to every request.
func WithBearerToken(token string) Option {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

// WithBasicAuth attaches basic-auth credentials to every request.
func WithBasicAuth(user, password string) Option {
	return func(c *Client) {
		c.basicUser = user
		c.basicPass = password
	}
}

// New constructs a Client pointing at the provided platform base URL.
func New(base string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		trimmed = "http://localhost:8000"
	}
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		trimmed = "http://" + trimmed
	}
	if _, err := url.Parse(trimmed); err != nil {
		return nil, fmt.Errorf("invalid platform base url: %w", err)
	}
	cli := &Client{
		baseURL:    strings.TrimRight(trimmed, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(cli)
	}
	return cli, nil
}

// HasCredentials reports whether any auth material is configured.
func (c *Client) HasCredentials() bool {
	return c.token != "" || c.basicUser != ""
}

// APIError represents an error response from the platform.
type APIError struct {
	Status  int
	Message string
}

func (e APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("platform request failed with status %d", e.Status)
	}
	return fmt.Sprintf("platform request failed (%d): %s", e.Status, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, body any, v any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	endpoint := c.baseURL + path
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	} else if c.basicUser != "" {
		req.SetBasicAuth(c.basicUser, c.basicPass)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		msg := extractError(resp.Body)
		return APIError{Status: resp.StatusCode, Message: msg}
	}

	if v == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func extractError(body io.Reader) string {
	if body == nil {
		return ""
	}
	var payload struct {
		Error string `json:"error"`
	}
	data, err := io.ReadAll(body)
	if err != nil || len(data) == 0 {
		return ""
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return strings.TrimSpace(string(data))
	}
	return strings.TrimSpace(payload.Error)
}

// SubmitRequest is the deployment registration payload.
type SubmitRequest struct {
	ModelName        string         `json:"model_name"`
	Framework        string         `json:"framework"`
	DeploymentConfig map[string]any `json:"deployment_config"`
	Requirements     []string       `json:"requirements"`
}

// SubmitResponse is the platform's answer to a deployment registration.
type SubmitResponse struct {
	Success  bool   `json:"success"`
	Endpoint string `json:"endpoint"`
	Error    string `json:"error"`
}

// SubmitDeployment registers a model deployment with the platform.
func (c *Client) SubmitDeployment(ctx context.Context, path string, req SubmitRequest) (SubmitResponse, error) {
	var resp SubmitResponse
	if err := c.do(ctx, http.MethodPost, path, req, &resp); err != nil {
		return SubmitResponse{}, err
	}
	return resp, nil
}

// StatusResponse carries the remote deployment status.
type StatusResponse struct {
	Status   string `json:"status"`
	Endpoint string `json:"endpoint"`
	Error    string `json:"error"`
}

// DeploymentStatus queries the status endpoint for a deployment.
func (c *Client) DeploymentStatus(ctx context.Context, path string) (StatusResponse, error) {
	var resp StatusResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return StatusResponse{}, err
	}
	return resp, nil
}

// InferRequest is an inference invocation payload.
type InferRequest struct {
	ModelName  string          `json:"model_name"`
	Data       json.RawMessage `json:"data"`
	Parameters map[string]any  `json:"parameters,omitempty"`
}

// InferResponse wraps the inference result.
type InferResponse struct {
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error"`
}

// Infer invokes a deployed model once. No retry, no polling.
func (c *Client) Infer(ctx context.Context, path string, req InferRequest) (InferResponse, error) {
	var resp InferResponse
	if err := c.do(ctx, http.MethodPost, path, req, &resp); err != nil {
		return InferResponse{}, err
	}
	return resp, nil
}
