package carrier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/ordesk/backoffice/internal/domain/model"
)

// ErrUnknownTracking indicates the carrier doesn't know the AWB code yet.
var ErrUnknownTracking = errors.New("tracking code not registered")

// TooManyRequestsError represents rate limiting signal from the carrier API.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// Tracking is the carrier-reported state of one parcel.
type Tracking struct {
	AWB    string
	Status model.AWBStatus
}

// Client exposes operations to query the carrier tracking API.
type Client interface {
	Track(ctx context.Context, awb string) (*Tracking, error)
}

// HTTPClient implements Client via HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// response mirrors JSON payload from the carrier API.
type response struct {
	AWB    string `json:"awb"`
	Status string `json:"status"`
}

// NewHTTPClient creates HTTP carrier client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse carrier url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("carrier url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Track queries the carrier for parcel status.
func (c *HTTPClient) Track(ctx context.Context, awb string) (*Tracking, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/tracking/", awb)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		var data response
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, err
		}
		status := model.AWBStatus(data.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("unknown carrier status %q", data.Status)
		}
		return &Tracking{AWB: data.AWB, Status: status}, nil
	case http.StatusNoContent, http.StatusNotFound:
		return nil, ErrUnknownTracking
	case http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		return nil, TooManyRequestsError{RetryAfter: retryAfter}
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("carrier request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("carrier error: %s", resp.Status)
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
