// Package api is the HTTP client for the FitLife weight-loss API.
package api

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

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Fixed API endpoints.
const (
	ProgressEndpoint      = "/api/get-progress"
	HistoryEndpoint       = "/api/get-weight-history"
	AddWeightEndpoint     = "/api/add-weight"
	DeleteWeightEndpoint  = "/api/delete-weight/"
	SaveProfileEndpoint   = "/api/save-profile"
	CalcIMCEndpoint       = "/api/calculate-imc"
	CalcTMBEndpoint       = "/api/calculate-tmb"
	CalcDeficitEndpoint   = "/api/calculate-deficit"
	CalcIdealEndpoint     = "/api/calculate-peso-ideal"
	requestIDHeader       = "X-Request-ID"
	defaultRequestTimeout = 30 * time.Second
	maxErrorBody          = 4 << 10
)

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	Method     string
	Endpoint   string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: HTTP error! status: %d (%s)", e.Method, e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: HTTP error! status: %d", e.Method, e.Endpoint, e.StatusCode)
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

// Client talks to the API rooted at a base URL.
type Client struct {
	baseURL string
	http    *http.Client
	log     logrus.FieldLogger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http = &http.Client{Timeout: d}
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// New returns a Client for baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: defaultRequestTimeout},
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Request sends method to endpoint and decodes the JSON response into out
// when out is non-nil. An empty method means GET. payload is encoded as the
// JSON body only for non-GET requests. Non-2xx answers become *StatusError;
// transport and decode errors are logged and returned wrapped.
func (c *Client) Request(ctx context.Context, endpoint, method string, payload, out any) error {
	if method == "" {
		method = http.MethodGet
	}
	requestID := uuid.NewString()
	entry := c.log.WithFields(logrus.Fields{
		"method":     method,
		"endpoint":   endpoint,
		"request_id": requestID,
	})

	err := c.do(ctx, endpoint, method, requestID, payload, out)
	if err != nil {
		entry.WithError(err).Error("API Request Error")
		return err
	}
	entry.Debug("api request completed")
	return nil
}

func (c *Client) do(ctx context.Context, endpoint, method, requestID string, payload, out any) error {
	var body io.Reader = http.NoBody
	hasBody := payload != nil && method != http.MethodGet
	if hasBody {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			Method:     method,
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.Body),
		}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func errorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(data) == 0 {
		return ""
	}
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Message
}
