// Package client talks to the expense resource server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sbilibin2017/gw-expense-tracker/internal/logger"
	"github.com/sbilibin2017/gw-expense-tracker/internal/models"
)

const expensesPath = "/expenses"

var (
	// ErrNotFound is returned when the server has no expense with the given id.
	ErrNotFound = errors.New("expense not found")
	// ErrStoreUnavailable is returned on transport failures, 5xx responses and
	// responses that cannot be read.
	ErrStoreUnavailable = errors.New("expense store unavailable")
)

// Client performs CRUD operations against the expense resource server.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
}

// New creates a Client for the server at baseURL. A nil httpClient falls
// back to a default client with no timeout.
func New(httpClient *http.Client, baseURL string) (*Client, error) {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse server url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("server url %q must be absolute", baseURL)
	}
	return &Client{httpClient: httpClient, baseURL: u}, nil
}

// List returns every expense in server order.
func (c *Client) List(ctx context.Context) ([]models.Expense, error) {
	var expenses []models.Expense
	if err := c.do(ctx, http.MethodGet, expensesPath, nil, &expenses); err != nil {
		return nil, err
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}
	return expenses, nil
}

// Create validates the form and stores a new expense.
func (c *Client) Create(ctx context.Context, form ExpenseForm) (*models.Expense, error) {
	in, err := form.Parse()
	if err != nil {
		return nil, err
	}
	var created models.Expense
	if err := c.do(ctx, http.MethodPost, expensesPath, in, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update validates the form and overwrites the expense with the given id.
func (c *Client) Update(ctx context.Context, id string, form ExpenseForm) (*models.Expense, error) {
	in, err := form.Parse()
	if err != nil {
		return nil, err
	}
	var updated models.Expense
	if err := c.do(ctx, http.MethodPut, expensePath(id), in.Fields(), &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the expense with the given id.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, expensePath(id), nil, nil)
}

func expensePath(id string) string {
	return expensesPath + "/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	endpoint := c.baseURL.String() + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Log.Debugw("request failed", "method", method, "url", endpoint, "error", err)
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	logger.Log.Debugw("response", "method", method, "url", endpoint, "status", resp.StatusCode)

	switch {
	case resp.StatusCode == http.StatusNotFound && path != expensesPath:
		// Only a missing id is a miss; a missing collection is a wrong server.
		return ErrNotFound
	case resp.StatusCode == http.StatusBadRequest:
		return &models.ValidationError{Message: readErrorMessage(resp.Body)}
	case resp.StatusCode >= 300:
		return fmt.Errorf("%w: status %d: %s", ErrStoreUnavailable, resp.StatusCode, readErrorMessage(resp.Body))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrStoreUnavailable, err)
	}
	return nil
}

func readErrorMessage(r io.Reader) string {
	var body models.ErrorResponse
	if err := json.NewDecoder(r).Decode(&body); err != nil || body.Error == "" {
		return "request rejected"
	}
	return body.Error
}
