// Package directoryclient is the HTTP client for the Directory Service REST API.
package directoryclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	appborrowing "github.com/borrowtrack/backend/internal/application/borrowing"
	"github.com/borrowtrack/backend/internal/domain/borrowing"
	"github.com/borrowtrack/backend/internal/infrastructure/config"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

const maxResponseSize = 10 << 20

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client talks to the Directory Service.
// Only GET requests are retried; creates are never repeated.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	maxRetries int
	retryDelay time.Duration
	logger     *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the client logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a client for the directory at cfg.BaseURL (e.g. http://localhost:8000/api)
func New(cfg config.DirectoryConfig, opts ...Option) (*Client, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if _, err := url.ParseRequestURI(base); err != nil || base == "" {
		return nil, fmt.Errorf("invalid directory base URL %q", cfg.BaseURL)
	}

	c := &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		userAgent:  cfg.UserAgent,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SearchCustomers lists customers whose names or email contain query
func (c *Client) SearchCustomers(ctx context.Context, query string) ([]borrowing.Customer, error) {
	var rows []customerWire
	if err := c.do(ctx, http.MethodGet, "/customers/", url.Values{"search": {query}}, nil, &rows); err != nil {
		return nil, err
	}
	out := make([]borrowing.Customer, len(rows))
	for i := range rows {
		out[i] = rows[i].toDomain()
	}
	return out, nil
}

// CreateCustomer creates a customer
func (c *Client) CreateCustomer(ctx context.Context, in appborrowing.CustomerInput) (*borrowing.Customer, error) {
	var row customerWire
	if err := c.do(ctx, http.MethodPost, "/customers/", nil, in, &row); err != nil {
		return nil, err
	}
	customer := row.toDomain()
	return &customer, nil
}

// GetCustomer fetches a customer by id
func (c *Client) GetCustomer(ctx context.Context, id int64) (*borrowing.Customer, error) {
	var row customerWire
	if err := c.do(ctx, http.MethodGet, "/customers/"+strconv.FormatInt(id, 10)+"/", nil, nil, &row); err != nil {
		return nil, err
	}
	customer := row.toDomain()
	return &customer, nil
}

// CreateItem creates an item
func (c *Client) CreateItem(ctx context.Context, in appborrowing.ItemInput) (*borrowing.Item, error) {
	var row itemWire
	if err := c.do(ctx, http.MethodPost, "/items/", nil, in, &row); err != nil {
		return nil, err
	}
	item := row.toDomain()
	return &item, nil
}

// GetItem fetches an item by id
func (c *Client) GetItem(ctx context.Context, id int64) (*borrowing.Item, error) {
	var row itemWire
	if err := c.do(ctx, http.MethodGet, "/items/"+strconv.FormatInt(id, 10)+"/", nil, nil, &row); err != nil {
		return nil, err
	}
	item := row.toDomain()
	return &item, nil
}

// ListTransactions lists every transaction in directory order
func (c *Client) ListTransactions(ctx context.Context) ([]borrowing.Transaction, error) {
	var rows []transactionWire
	if err := c.do(ctx, http.MethodGet, "/transactions/", nil, nil, &rows); err != nil {
		return nil, err
	}
	out := make([]borrowing.Transaction, len(rows))
	for i := range rows {
		out[i] = rows[i].toDomain()
	}
	return out, nil
}

// CreateTransaction creates a transaction
func (c *Client) CreateTransaction(ctx context.Context, in appborrowing.TransactionInput) (*borrowing.Transaction, error) {
	var row transactionWire
	if err := c.do(ctx, http.MethodPost, "/transactions/", nil, in, &row); err != nil {
		return nil, err
	}
	txn := row.toDomain()
	return &txn, nil
}

// do sends one request, retrying idempotent GETs on transport errors and 5xx
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var payload []byte
	if in != nil {
		var err error
		payload, err = json.Marshal(in)
		if err != nil {
			return fmt.Errorf("directory: failed to marshal request: %w", err)
		}
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	attempts := 1
	if method == http.MethodGet && c.maxRetries > 0 {
		attempts += c.maxRetries
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.retryDelay * time.Duration(attempt-1)):
			}
		}

		body, status, err := c.send(ctx, method, target, payload)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
			c.logger.Debug("Directory request failed", zap.String("method", method), zap.String("path", path), zap.Int("attempt", attempt), zap.Error(err))
			continue
		}

		if status < 200 || status >= 300 {
			lastErr = parseAPIError(status, body)
			if status >= 500 {
				c.logger.Debug("Directory server error", zap.String("method", method), zap.String("path", path), zap.Int("status", status), zap.Int("attempt", attempt))
				continue
			}
			return lastErr
		}

		if out == nil || len(body) == 0 {
			return nil
		}
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("directory: failed to decode %s %s response: %w", method, path, err)
		}
		return nil
	}
	return lastErr
}

func (c *Client) send(ctx context.Context, method, target string, payload []byte) ([]byte, int, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	return body, resp.StatusCode, nil
}

var _ appborrowing.Directory = (*Client)(nil)

