package transport

import (
	"net/http"
	"time"

	"github.com/saturnines/shopify-gql/pkg/auth"
	"github.com/saturnines/shopify-gql/pkg/ratelimit"
)

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPDoer swaps the underlying HTTPDoer.
func WithHTTPDoer(doer HTTPDoer) ClientOption {
	return func(c *Client) {
		c.doer = doer
	}
}

// WithTimeout sets a timeout on the HTTP client (if it's an *http.Client).
// A caller-supplied *http.Client is copied, not modified.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if httpClient, ok := c.doer.(*http.Client); ok {
			cp := *httpClient
			cp.Timeout = timeout
			c.doer = &cp
		}
	}
}

// WithTimestamps records request times for key in store. Only applies when
// the doer is an *http.Client, which is copied, not modified.
func WithTimestamps(store ratelimit.TimeStore, key string) ClientOption {
	return func(c *Client) {
		if httpClient, ok := c.doer.(*http.Client); ok {
			cp := *httpClient
			cp.Transport = NewTimestampTransport(httpClient.Transport, store, key)
			c.doer = &cp
		}
	}
}

// WithHeader adds a header to every request.
func WithHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// WithHeaders adds multiple headers to every request.
func WithHeaders(headers map[string]string) ClientOption {
	return func(c *Client) {
		for k, v := range headers {
			c.headers[k] = v
		}
	}
}

// WithAuthHandler sets the auth handler applied to every request.
func WithAuthHandler(h auth.Handler) ClientOption {
	return func(c *Client) {
		c.authHandler = h
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) ClientOption {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// ApplyOptions applies ClientOption functions in order.
func (c *Client) ApplyOptions(opts ...ClientOption) {
	for _, opt := range opts {
		opt(c)
	}
}
