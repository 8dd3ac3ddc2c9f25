// Package apiclient is the HTTP client for the storefront API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Product is the client's view of a catalog entry, as served by
// GET /api/products.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
}

type OrderItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type OrderPayload struct {
	Items []OrderItem `json:"items"`
}

type OrderResult struct {
	Ref     string
	Total   float64
	Message string
}

// APIError is a server-reported rejection with a user-facing message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("api error: status %d", e.Status)
}

type envelope struct {
	Success  bool            `json:"success"`
	Error    string          `json:"error"`
	OrderRef string          `json:"orderRef"`
	Total    float64         `json:"total"`
	Message  string          `json:"message"`
	Data     json.RawMessage `json:"data"`
}

func (c *Client) FetchProducts(ctx context.Context) ([]Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/products", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Message: decodeError(resp)}
	}

	var payload struct {
		Data []Product `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return payload.Data, nil
}

func (c *Client) SubmitOrder(ctx context.Context, payload OrderPayload) (*OrderResult, error) {
	env, status, err := c.postJSON(ctx, "/api/orders", payload)
	if err != nil {
		return nil, err
	}
	if status >= http.StatusBadRequest || !env.Success {
		return nil, &APIError{Status: status, Message: env.Error}
	}
	return &OrderResult{Ref: env.OrderRef, Total: env.Total, Message: env.Message}, nil
}

func (c *Client) SubmitContact(ctx context.Context, name, email, message string) error {
	body := map[string]string{"name": name, "email": email, "message": message}
	env, status, err := c.postJSON(ctx, "/api/contact", body)
	if err != nil {
		return err
	}
	if status >= http.StatusBadRequest || !env.Success {
		return &APIError{Status: status, Message: env.Error}
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload any) (*envelope, int, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	return &env, resp.StatusCode, nil
}

func decodeError(resp *http.Response) string {
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return ""
	}
	return env.Error
}
