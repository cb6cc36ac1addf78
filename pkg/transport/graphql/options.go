package graphql

import (
	"github.com/saturnines/shopify-gql/pkg/report"
	"github.com/saturnines/shopify-gql/pkg/transport"
)

// PayloadOption configures a Payload.
type PayloadOption func(*Payload)

// WithVariable sets a single variable.
func WithVariable(key string, value interface{}) PayloadOption {
	return func(p *Payload) {
		if p.Variables == nil {
			p.Variables = make(map[string]interface{})
		}
		p.Variables[key] = value
	}
}

// WithVariables sets multiple variables.
func WithVariables(variables map[string]interface{}) PayloadOption {
	return func(p *Payload) {
		if len(variables) == 0 {
			return
		}
		if p.Variables == nil {
			p.Variables = make(map[string]interface{})
		}
		for k, v := range variables {
			p.Variables[k] = v
		}
	}
}

// ApplyOptions applies PayloadOption functions in order.
func (p *Payload) ApplyOptions(opts ...PayloadOption) {
	for _, opt := range opts {
		opt(p)
	}
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithSender replaces the HTTP transport.
func WithSender(s Sender) ClientOption {
	return func(c *Client) {
		c.sender = s
	}
}

// WithTransportOptions configures the default transport. Ignored when
// WithSender is used.
func WithTransportOptions(opts ...transport.ClientOption) ClientOption {
	return func(c *Client) {
		c.transportOpts = append(c.transportOpts, opts...)
	}
}

// WithParser replaces the response body parser.
func WithParser(p Parser) ClientOption {
	return func(c *Client) {
		c.parser = p
	}
}

// WithTimeStore sets the rate-limit store read for every Result.
func WithTimeStore(s TimeStore) ClientOption {
	return func(c *Client) {
		c.store = s
	}
}

// WithLogger sets the logger failed requests are written to.
func WithLogger(l Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// WithReporter sets where transport failures are reported.
func WithReporter(r report.Reporter) ClientOption {
	return func(c *Client) {
		c.reporter = r
	}
}
