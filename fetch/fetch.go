// Package fetch performs an HTTP request and decodes a JSON response.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/agentic-research/shapekit/internal/logging"
	"github.com/ohler55/ojg/oj"
	"go.uber.org/zap"
)

// StatusError is returned for responses outside the 2xx range.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http error! status: %d (%s)", e.StatusCode, e.URL)
}

type request struct {
	method string
	header http.Header
	body   io.Reader
	client *http.Client
	log    *zap.Logger
}

// Option configures a request.
type Option func(*request)

// WithMethod sets the HTTP method. The default is GET.
func WithMethod(method string) Option {
	return func(r *request) { r.method = method }
}

// WithHeader adds a request header.
func WithHeader(key, value string) Option {
	return func(r *request) { r.header.Add(key, value) }
}

// WithBody sets the request body.
func WithBody(body io.Reader) Option {
	return func(r *request) { r.body = body }
}

// WithClient sets the client used to send the request. The default is
// http.DefaultClient.
func WithClient(c *http.Client) Option {
	return func(r *request) { r.client = c }
}

// WithLogger sets the logger failures are reported to.
func WithLogger(l *zap.Logger) Option {
	return func(r *request) { r.log = l }
}

// JSON sends a request to url and decodes the response body as JSON.
//
// Transport errors are returned unchanged, non-2xx responses as
// *StatusError and undecodable bodies as a wrapped decode error. Every
// failure is logged before it is returned.
func JSON(ctx context.Context, url string, opts ...Option) (any, error) {
	r := &request{
		method: http.MethodGet,
		header: make(http.Header),
		client: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(r)
	}
	log := logging.Or(r.log).With(zap.String("url", url), zap.String("method", r.method))

	v, err := r.do(ctx, url)
	if err != nil {
		log.Warn("fetch error", zap.Error(err))
		return nil, err
	}
	return v, nil
}

func (r *request) do(ctx context.Context, url string) (any, error) {
	req, err := http.NewRequestWithContext(ctx, r.method, url, r.body)
	if err != nil {
		return nil, err
	}
	req.Header = r.header
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }() // safe to ignore

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	v, err := oj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return v, nil
}
