package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	// DefaultProbeTimeout bounds the liveness probe
	DefaultProbeTimeout = 8 * time.Second
	// DefaultRequestTimeout bounds every other request
	DefaultRequestTimeout = 30 * time.Second

	probePath    = "/status/test"
	downloadPath = "/download"
	statusPath   = "/status/"
	filePath     = "/file/"

	requestIDHeader = "X-Request-ID"
	userAgent       = "vidgrab/2.1"
	maxErrorBody    = 64 << 10
)

// Client talks to the remote processing service
type Client struct {
	baseURL      *url.URL
	http         *http.Client
	probeTimeout time.Duration
	validate     *validator.Validate
	logger       *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithProbeTimeout sets the liveness probe timeout
func WithProbeTimeout(d time.Duration) Option {
	return func(c *Client) { c.probeTimeout = d }
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client for the service at baseURL. A missing scheme
// defaults to http.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	raw := strings.TrimSpace(baseURL)
	if raw == "" {
		return nil, fmt.Errorf("base url is empty")
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base url %q has no host", baseURL)
	}
	u.Path = strings.TrimRight(u.Path, "/")

	c := &Client{
		baseURL:      u,
		http:         &http.Client{Timeout: DefaultRequestTimeout},
		probeTimeout: DefaultProbeTimeout,
		validate:     validator.New(),
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the service root
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) endpoint(path string) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	u.RawPath = ""
	return u.String()
}

func (c *Client) taskURL(prefix, taskID string) *url.URL {
	u := *c.baseURL
	u.Path = c.baseURL.Path + prefix + taskID
	u.RawPath = c.baseURL.EscapedPath() + prefix + url.PathEscape(taskID)
	return &u
}

func (c *Client) newRequest(ctx context.Context, method, target string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set(requestIDHeader, uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// Ping probes the service. Any HTTP response, including an error status,
// means the service is reachable; only transport failures are returned.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodGet, c.endpoint(probePath), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("probe %s: %w", probePath, err)
	}
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	resp.Body.Close()

	c.logger.Debug("probe answered", "status", resp.StatusCode)
	return nil
}

// CreateTask asks the service to start an extraction and returns its task id
func (c *Client) CreateTask(ctx context.Context, in CreateTaskRequest) (string, error) {
	if err := c.validate.Struct(in); err != nil {
		return "", fmt.Errorf("invalid request: %w", err)
	}

	data, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, c.endpoint(downloadPath), bytes.NewReader(data))
	if err != nil {
		return "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", decodeError(resp)
	}

	var out createTaskResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if out.TaskID == "" {
		return "", fmt.Errorf("decode response: missing task_id")
	}
	return out.TaskID, nil
}

// TaskStatus fetches the status of taskID. It returns ErrTaskNotFound on 404.
func (c *Client) TaskStatus(ctx context.Context, taskID string) (*TaskStatus, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.taskURL(statusPath, taskID).String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("status %s: %w", taskID, ErrTaskNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeError(resp)
	}

	var out TaskStatus
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}

// FileURL returns the URL that streams the produced file for taskID
func (c *Client) FileURL(taskID string) *url.URL {
	return c.taskURL(filePath, taskID)
}

// OpenFile starts the file transfer for taskID. The caller must close the
// returned body. The filename comes from Content-Disposition when present.
func (c *Client) OpenFile(ctx context.Context, taskID string) (io.ReadCloser, string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.FileURL(taskID).String(), nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Accept", "*/*")

	// Transfers can outlast the request timeout; rely on ctx instead.
	hc := *c.http
	hc.Timeout = 0

	resp, err := hc.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("execute request: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, "", fmt.Errorf("file %s: %w", taskID, ErrTaskNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, "", decodeError(resp)
	}

	var name string
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			name = params["filename"]
		}
	}
	return resp.Body, name, nil
}

func decodeError(resp *http.Response) error {
	apiErr := &Error{StatusCode: resp.StatusCode}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(body) == 0 {
		return apiErr
	}
	var er errorResponse
	if json.Unmarshal(body, &er) == nil {
		apiErr.Message = er.Message
		if apiErr.Message == "" {
			apiErr.Message = er.Detail
		}
	}
	return apiErr
}
