// Package services talks to the Kitsu restaurant backend.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/kitsu-storefront/metrics"
	"github.com/yeremiapane/kitsu-storefront/utils"
)

// ErrUnauthorized matches any 401 or 403 answer.
var ErrUnauthorized = errors.New("unauthorized")

// maxErrorBody caps how much of a failed response is kept in APIError.
const maxErrorBody = 4 << 10

// APIError is a non-2xx answer from the backend.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("backend returned %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Body)
}

func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden {
		return ErrUnauthorized
	}
	return nil
}

// Client is the JSON-over-HTTP base shared by the backend services.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL is the backend root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type call struct {
	method string
	path   string
	// endpoint labels the call in logs and metrics; path may carry IDs.
	endpoint string
	body     interface{}
	token    string
}

// do sends the call and decodes a 2xx body into out when out is non-nil.
func (c *Client) do(ctx context.Context, cl call, out interface{}) error {
	var reader io.Reader
	if cl.body != nil {
		payload, err := json.Marshal(cl.body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", cl.endpoint, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", cl.endpoint, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cl.token != "" {
		req.Header.Set("Authorization", "Token "+cl.token)
	}

	log := utils.InfoLogger.WithFields(logrus.Fields{
		"endpoint":   cl.endpoint,
		"method":     cl.method,
		"request_id": requestID,
	})

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.BackendRequests.WithLabelValues(cl.endpoint, "error").Observe(time.Since(start).Seconds())
		utils.ErrorLogger.WithError(err).WithField("request_id", requestID).Warn("Backend request failed")
		return fmt.Errorf("%s %s: %w", cl.method, cl.endpoint, err)
	}
	defer resp.Body.Close()

	metrics.BackendRequests.WithLabelValues(cl.endpoint, strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())
	log.WithField("status", resp.StatusCode).Debug("Backend responded")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", cl.endpoint, err)
	}
	return nil
}
