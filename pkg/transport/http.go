package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/saturnines/shopify-gql/pkg/auth"
	"github.com/saturnines/shopify-gql/pkg/errors"
	"github.com/saturnines/shopify-gql/pkg/promise"
)

// DefaultTimeout bounds a single request when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// HTTPDoer is a minimal interface for HTTP clients
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client sends JSON requests and turns connection failures and 4xx/5xx
// statuses into *RequestError.
type Client struct {
	doer        HTTPDoer
	headers     map[string]string
	userAgent   string
	authHandler auth.Handler
}

// NewClient creates a Client backed by a fresh *http.Client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		doer:    &http.Client{Timeout: DefaultTimeout},
		headers: make(map[string]string),
	}
	c.ApplyOptions(opts...)
	return c
}

// Send performs the request and blocks until it completes. The returned
// response body is fully buffered and safe to read more than once via ReadBody.
func (c *Client) Send(ctx context.Context, method, url string, body []byte) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, &RequestError{Err: errors.WrapError(err, errors.ErrTransport, "create request")}
	}

	for key, value := range c.headers {
		req.Header.Set(key, value)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	if c.authHandler != nil {
		if err := c.authHandler.ApplyAuth(req); err != nil {
			return nil, &RequestError{Request: req, Err: err}
		}
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, &RequestError{Request: req, Err: errors.WrapError(err, errors.ErrTransport, "send request")}
	}

	if _, err := ReadBody(resp); err != nil {
		return nil, &RequestError{
			Request:  req,
			Response: resp,
			Err:      errors.WrapError(err, errors.ErrTransport, "read response body"),
		}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &RequestError{
			Request:  req,
			Response: resp,
			Err:      fmt.Errorf("%w: %s %s resulted in %s", errors.ErrHTTPResponse, method, req.URL.Redacted(), resp.Status),
		}
	}

	return resp, nil
}

// SendAsync runs Send on its own goroutine.
func (c *Client) SendAsync(ctx context.Context, method, url string, body []byte) *promise.Promise[*http.Response] {
	return promise.Go(func() (*http.Response, error) {
		return c.Send(ctx, method, url, body)
	})
}

// ReadBody reads the whole response body and puts an identical reader back
// in its place, so every caller sees the same bytes.
func ReadBody(resp *http.Response) ([]byte, error) {
	if resp == nil || resp.Body == nil || resp.Body == http.NoBody {
		return nil, nil
	}

	data, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return data, nil
}
