// ABOUTME: HTTP client for the GPU TCO Analyzer API
// ABOUTME: Wraps API calls with proper error handling for CLI usage

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Client is the API client for the GPU TCO Analyzer backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client with the given base URL
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    int    `json:"code"`
}

// Health calls GET /api/v1/health
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.getJSON(ctx, "/api/v1/health", &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// Architectures calls GET /api/v1/catalog/architectures
func (c *Client) Architectures(ctx context.Context) ([]Architecture, error) {
	var resp struct {
		Architectures []Architecture `json:"architectures"`
	}
	if err := c.getJSON(ctx, "/api/v1/catalog/architectures", &resp); err != nil {
		return nil, err
	}
	return resp.Architectures, nil
}

// Vendors calls GET /api/v1/catalog/vendors
func (c *Client) Vendors(ctx context.Context) ([]Vendor, error) {
	var resp struct {
		Vendors []Vendor `json:"vendors"`
	}
	if err := c.getJSON(ctx, "/api/v1/catalog/vendors", &resp); err != nil {
		return nil, err
	}
	return resp.Vendors, nil
}

// Combinations calls GET /api/v1/catalog/combinations
func (c *Client) Combinations(ctx context.Context) ([]Combination, error) {
	var resp struct {
		Combinations []Combination `json:"combinations"`
	}
	if err := c.getJSON(ctx, "/api/v1/catalog/combinations", &resp); err != nil {
		return nil, err
	}
	return resp.Combinations, nil
}

// Estimate calls POST /api/v1/storage/estimate
func (c *Client) Estimate(ctx context.Context, input *EstimateRequest) (*EstimateResponse, error) {
	var estimate EstimateResponse
	if err := c.postJSON(ctx, "/api/v1/storage/estimate", input, &estimate); err != nil {
		return nil, err
	}
	return &estimate, nil
}

// GPUInventory calls GET /api/v1/inventory/gpus
func (c *Client) GPUInventory(ctx context.Context) (*GPUInventory, error) {
	var inv GPUInventory
	if err := c.getJSON(ctx, "/api/v1/inventory/gpus", &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(ctx, req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal input: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(ctx, req, out)
}

func (c *Client) do(ctx context.Context, req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.handleErrorResponse(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("request canceled")
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// handleErrorResponse parses API error responses
func (c *Client) handleErrorResponse(resp *http.Response) error {
	var errResp ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Error == "" {
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}
	return fmt.Errorf("backend error: %s", errResp.Error)
}
