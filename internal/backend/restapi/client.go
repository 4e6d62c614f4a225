// Package restapi implements the service.Service interface over a JSON REST
// task collection (GET ?_limit, POST, PATCH /{id}, DELETE /{id}).
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/api/googleapi"

	"tasksync/internal/config"
	"tasksync/internal/service"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// Client implements service.Service against a REST task collection.
type Client struct {
	base    *url.URL
	http    *http.Client
	timeout time.Duration
	logger  *slog.Logger
}

// New creates a client for the collection configured in cfg.
func New(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	c, err := NewWithHTTPClient(cfg.BaseURL, http.DefaultClient)
	if err != nil {
		return nil, err
	}
	c.timeout = cfg.RequestTimeout.Duration
	if logger != nil {
		c.logger = logger
	}
	return c, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpClient *http.Client) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", baseURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		base:   base,
		http:   httpClient,
		logger: slog.New(slog.DiscardHandler),
	}, nil
}

// BaseURL returns the collection URL.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// ListTasks returns up to limit tasks in service order.
func (c *Client) ListTasks(ctx context.Context, limit int) ([]service.Task, error) {
	u := *c.base
	q := u.Query()
	q.Set("_limit", strconv.Itoa(limit))
	u.RawQuery = q.Encode()

	var tasks []service.Task
	if err := c.do(ctx, http.MethodGet, u.String(), nil, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []service.Task{}
	}
	return tasks, nil
}

// CreateTask posts a new task and returns the echoed record.
func (c *Client) CreateTask(ctx context.Context, task service.NewTask) (service.Task, error) {
	var created service.Task
	if err := c.do(ctx, http.MethodPost, c.base.String(), task, &created); err != nil {
		return service.Task{}, err
	}
	return created, nil
}

// UpdateTask patches the given fields of a task.
func (c *Client) UpdateTask(ctx context.Context, id service.TaskID, patch service.Patch) (service.Task, error) {
	var updated service.Task
	if err := c.do(ctx, http.MethodPatch, c.itemURL(id), patch, &updated); err != nil {
		return service.Task{}, err
	}
	return updated, nil
}

// DeleteTask deletes a task. The response body is ignored.
func (c *Client) DeleteTask(ctx context.Context, id service.TaskID) error {
	return c.do(ctx, http.MethodDelete, c.itemURL(id), nil, nil)
}

func (c *Client) itemURL(id service.TaskID) string {
	return c.base.JoinPath(id.String()).String()
}

// do sends one request. Any non-2xx status is returned as *googleapi.Error.
func (c *Client) do(ctx context.Context, method, target string, body, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "url", target, "request_id", requestID, "err", err)
		return wrapError(err)
	}
	defer resp.Body.Close()

	c.logger.Debug("request done",
		"method", method,
		"url", target,
		"request_id", requestID,
		"status", resp.StatusCode,
		"elapsed", time.Since(start),
	)

	if err := googleapi.CheckResponse(resp); err != nil {
		return err
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// wrapError gives transport failures a short description while keeping the cause.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	// Check for timeout
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out: %w", err)
	}

	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("request canceled: %w", err)
	}

	return fmt.Errorf("network error: %w", err)
}

// StatusCode returns the HTTP status of a non-2xx error, or 0 for other errors.
func StatusCode(err error) int {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}
