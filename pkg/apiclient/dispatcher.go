package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/testhub/testhub-go/pkg/logging"
	"golang.org/x/net/publicsuffix"
)

const (
	// DefaultBaseURL is the API root of a local TestHub backend.
	DefaultBaseURL = "http://127.0.0.1:8000/api"
	// DefaultTimeout applies to every request without its own override.
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent identifies this client to the platform.
	DefaultUserAgent = "TestHubClient/1.0"

	// RequestIDHeader carries a per-dispatch identifier.
	RequestIDHeader = "X-Request-ID"
)

// Observer receives the outcome of every dispatch. status is 0 when no
// response arrived.
type Observer interface {
	ObserveDispatch(method, endpoint string, status int, elapsed time.Duration, err error)
}

// Dispatcher sends Requests to a TestHub backend. It holds no per-call
// state and is safe for concurrent use.
type Dispatcher struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	token      string
	userAgent  string
	logger     *slog.Logger
	observer   Observer
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithTimeout sets the default per-request timeout. Zero disables it.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		d.timeout = timeout
	}
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(d *Dispatcher) {
		d.token = token
	}
}

// WithHTTPClient replaces the underlying HTTP client. A Timeout set on it
// caps every request, including those with a longer override.
func WithHTTPClient(client *http.Client) Option {
	return func(d *Dispatcher) {
		if client != nil {
			d.httpClient = client
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(d *Dispatcher) {
		if ua != "" {
			d.userAgent = ua
		}
	}
}

// WithLogger sets the logger for dispatch events.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithObserver registers an Observer, typically a metrics recorder.
func WithObserver(o Observer) Option {
	return func(d *Dispatcher) {
		d.observer = o
	}
}

// New creates a dispatcher rooted at baseURL (e.g. "http://host:8000/api").
func New(baseURL string, opts ...Option) *Dispatcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	// Session cookies set by the backend are kept across calls.
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})

	d := &Dispatcher{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Jar: jar},
		timeout:    DefaultTimeout,
		userAgent:  DefaultUserAgent,
		logger:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// BaseURL returns the API root requests are sent to.
func (d *Dispatcher) BaseURL() string {
	return d.baseURL
}

// Timeout returns the default per-request timeout.
func (d *Dispatcher) Timeout() time.Duration {
	return d.timeout
}

// Do sends req and returns the response of a 2xx reply. Anything else is an
// *APIError. Exactly one HTTP request is issued.
func (d *Dispatcher) Do(ctx context.Context, req *Request) (*Response, error) {
	if req == nil || req.Method == "" {
		return nil, ErrInvalidRequest
	}

	timeout := d.timeout
	if req.Timeout > 0 {
		timeout = req.Timeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	fullURL := d.buildURL(req)
	body, contentType, err := encodeBody(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if req.ResponseType == ResponseBinary {
		httpReq.Header.Set("Accept", "*/*")
	} else {
		httpReq.Header.Set("Accept", "application/json")
	}
	httpReq.Header.Set("User-Agent", d.userAgent)
	httpReq.Header.Set(RequestIDHeader, requestID)
	if d.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+d.token)
	}

	endpoint := req.Endpoint
	if endpoint == "" {
		endpoint = "unnamed"
	}
	log := d.logger.With(
		"method", req.Method,
		"path", req.Path,
		"endpoint", endpoint,
		"request_id", requestID,
	)
	log.Debug("dispatching request", "timeout", timeout)

	start := time.Now()
	resp, err := d.httpClient.Do(httpReq)
	if err != nil {
		apiErr := transportError(ctx, req.Method, fullURL, d.baseURL, err)
		d.finish(log, req.Method, endpoint, 0, start, apiErr)
		return nil, apiErr
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		apiErr := transportError(ctx, req.Method, fullURL, d.baseURL, err)
		apiErr.StatusCode = resp.StatusCode
		d.finish(log, req.Method, endpoint, resp.StatusCode, start, apiErr)
		return nil, apiErr
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := parseError(req.Method, fullURL, resp.StatusCode, data)
		d.finish(log, req.Method, endpoint, resp.StatusCode, start, apiErr)
		return nil, apiErr
	}

	d.finish(log, req.Method, endpoint, resp.StatusCode, start, nil)
	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
		Type:       req.ResponseType,
	}, nil
}

func (d *Dispatcher) buildURL(req *Request) string {
	fullURL := d.baseURL + req.Path
	if q := encodeParams(req.Params); q != "" {
		sep := "?"
		if strings.Contains(fullURL, "?") {
			sep = "&"
		}
		fullURL += sep + q
	}
	return fullURL
}

func (d *Dispatcher) finish(log *slog.Logger, method, endpoint string, status int, start time.Time, err error) {
	elapsed := time.Since(start)
	if err != nil {
		log.Warn("request failed", "status", status, "elapsed", elapsed, "error", err)
	} else {
		log.Debug("request completed", "status", status, "elapsed", elapsed)
	}
	if d.observer != nil {
		d.observer.ObserveDispatch(method, endpoint, status, elapsed, err)
	}
}

func encodeBody(req *Request) (io.Reader, string, error) {
	if isNil(req.Body) {
		return nil, "", nil
	}
	if r, ok := req.Body.(io.Reader); ok {
		contentType := req.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		return r, contentType, nil
	}
	data, err := json.Marshal(req.Body)
	if err != nil {
		return nil, "", err
	}
	return bytes.NewReader(data), "application/json", nil
}

func transportError(ctx context.Context, method, url, baseURL string, err error) *APIError {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return &APIError{
			Code:    CodeTimeout,
			Method:  method,
			URL:     url,
			Message: "request timed out",
			Err:     err,
		}
	}
	return &APIError{
		Code:    CodeConnectionError,
		Method:  method,
		URL:     url,
		Message: fmt.Sprintf("cannot reach TestHub API at %s: %v", baseURL, err),
		Err:     err,
	}
}
