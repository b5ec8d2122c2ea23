// Package api is the HTTP client for the remote finance API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/service"
)

// Client talks to the finance API. It never retries; every failure is returned to the caller.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a client for the API rooted at baseURL (e.g. http://127.0.0.1:5000/api).
// timeout bounds every request so a hung server cannot block the caller forever.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ service.API = (*Client)(nil)

type messageResponse struct {
	Message string `json:"message"`
}

type userResponse struct {
	User    *model.User `json:"user"`
	Message string      `json:"message"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// transactionRequest is the body for POST /expenses and PUT /expenses/{id}.
// Amount is sent as a JSON number carrying the exact decimal text.
type transactionRequest struct {
	Title    string      `json:"title"`
	Amount   json.Number `json:"amount"`
	Category string      `json:"category"`
	Type     string      `json:"type"`
	UserID   int64       `json:"user_id"`
}

func newTransactionRequest(userID int64, d model.Draft) transactionRequest {
	category := d.Category
	if category == "" {
		category = model.DefaultCategory
	}
	return transactionRequest{
		Title:    d.Title,
		Amount:   json.Number(d.Amount.String()),
		Category: category,
		Type:     string(d.Type),
		UserID:   userID,
	}
}

// Register creates an account. Success carries no payload.
func (c *Client) Register(ctx context.Context, req service.RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/register", req, nil)
}

// Login exchanges credentials for the user record.
func (c *Client) Login(ctx context.Context, email, password string) (model.User, error) {
	var resp userResponse
	if err := c.do(ctx, http.MethodPost, "/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return model.User{}, err
	}
	if resp.User == nil {
		return model.User{}, &common.TransportError{Op: "POST /login", Err: fmt.Errorf("response has no user")}
	}
	return *resp.User, nil
}

// UpdateProfile replaces the account details and returns the stored user.
func (c *Client) UpdateProfile(ctx context.Context, userID int64, req service.ProfileRequest) (model.User, error) {
	var resp userResponse
	path := fmt.Sprintf("/profile/%d", userID)
	if err := c.do(ctx, http.MethodPut, path, req, &resp); err != nil {
		return model.User{}, err
	}
	if resp.User == nil {
		return model.User{}, &common.TransportError{Op: "PUT " + path, Err: fmt.Errorf("response has no user")}
	}
	return *resp.User, nil
}

// Dashboard fetches transactions, financials and chart data in one response.
func (c *Client) Dashboard(ctx context.Context, userID int64) (model.Dashboard, error) {
	var dash model.Dashboard
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/dashboard/%d", userID), nil, &dash); err != nil {
		return model.Dashboard{}, err
	}
	if dash.Transactions == nil {
		dash.Transactions = []model.Transaction{}
	}
	return dash, nil
}

// CreateTransaction posts a new record.
func (c *Client) CreateTransaction(ctx context.Context, userID int64, draft model.Draft) error {
	return c.do(ctx, http.MethodPost, "/expenses", newTransactionRequest(userID, draft), nil)
}

// UpdateTransaction fully replaces record draft.ID.
func (c *Client) UpdateTransaction(ctx context.Context, userID int64, draft model.Draft) error {
	if draft.IsNew() {
		return fmt.Errorf("update requires a transaction id")
	}
	path := fmt.Sprintf("/expenses/%d", draft.ID)
	return c.do(ctx, http.MethodPut, path, newTransactionRequest(userID, draft), nil)
}

// DeleteTransaction moves a record to the trash.
func (c *Client) DeleteTransaction(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/expenses/%d", id), nil, nil)
}

// Trash lists soft-deleted records, newest first as ordered by the server.
func (c *Client) Trash(ctx context.Context, userID int64) ([]model.Transaction, error) {
	var items []model.Transaction
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/trash/%d", userID), nil, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Transaction{}
	}
	return items, nil
}

// RestoreTransaction takes a record back out of the trash.
func (c *Client) RestoreTransaction(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/restore/%d", id), nil, nil)
}

// do sends one request. A nil out skips decoding the success body.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	op := method + " " + path

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", op, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Debug("API request failed", "op", op, "error", err)
		return &common.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	slog.Debug("API request",
		"op", op,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeServerError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &common.TransportError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

func decodeServerError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var msg messageResponse
	if err := json.Unmarshal(raw, &msg); err != nil {
		msg.Message = ""
	}
	return &common.ServerError{Status: resp.StatusCode, Message: msg.Message}
}
