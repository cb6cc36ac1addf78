package graphql

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/vektah/gqlparser/v2/gqlerror"
	"go.uber.org/zap"

	"github.com/saturnines/shopify-gql/pkg/auth"
	"github.com/saturnines/shopify-gql/pkg/errors"
	"github.com/saturnines/shopify-gql/pkg/promise"
	"github.com/saturnines/shopify-gql/pkg/ratelimit"
	"github.com/saturnines/shopify-gql/pkg/report"
	"github.com/saturnines/shopify-gql/pkg/session"
	"github.com/saturnines/shopify-gql/pkg/transport"
)

const (
	apiType        = "GraphQL"
	failureMessage = "Shopify API request failed"
)

// Sender is the HTTP transport a Client dispatches through. Send returns a
// *transport.RequestError for connection failures and 4xx/5xx responses.
type Sender interface {
	Send(ctx context.Context, method, url string, body []byte) (*http.Response, error)
	SendAsync(ctx context.Context, method, url string, body []byte) *promise.Promise[*http.Response]
}

// TimeStore is the read side of the rate-limit store.
type TimeStore interface {
	Get(key string) ratelimit.Snapshot
}

// Logger is satisfied by *zap.SugaredLogger.
type Logger interface {
	Errorw(msg string, keysAndValues ...interface{})
}

// Result is what every request resolves to, whether it succeeded or not.
type Result struct {
	// Errors is false only when the request was transported successfully and
	// the body reported no API errors.
	Errors bool
	// ErrorList holds API errors from a successfully transported response.
	ErrorList gqlerror.List
	// Response is nil when no response was received.
	Response *http.Response
	// Status is 0 when no response was received.
	Status int
	// Body is the parsed body on success. On failure it only carries the
	// error list, and is nil when the error body held none.
	Body *Response
	// Exception is the transport error, nil on success.
	Exception error
	// Timestamps is read from the store once per Result.
	Timestamps ratelimit.Snapshot
}

// Client executes GraphQL operations against one shop.
type Client struct {
	session  *session.Session
	endpoint string

	sender        Sender
	transportOpts []transport.ClientOption
	parser        Parser
	store         TimeStore
	logger        Logger
	reporter      report.Reporter
}

// NewClient builds a Client for s. Without WithSender it creates a
// transport.Client authenticated for the session which records request
// timestamps in the configured store. A transport.WithAuthHandler passed
// through WithTransportOptions replaces the session's handler.
func NewClient(s *session.Session, opts ...ClientOption) (*Client, error) {
	if s == nil {
		return nil, errors.WrapError(fmt.Errorf("session is nil"), errors.ErrConfiguration, "create client")
	}
	base, err := s.BaseURI()
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrConfiguration, "create client")
	}

	c := &Client{
		session:  s,
		endpoint: base.JoinPath(endpointPath(s.APIVersion)).String(),
		parser:   JSONParser{},
		logger:   zap.NewNop().Sugar(),
		reporter: report.Nop{},
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.store == nil {
		c.store = ratelimit.NewMemoryStore(ratelimit.DefaultLimit)
	}
	if c.sender == nil {
		topts := append([]transport.ClientOption{transport.WithAuthHandler(auth.ForSession(s))}, c.transportOpts...)
		if ts, ok := c.store.(ratelimit.TimeStore); ok {
			topts = append(topts, transport.WithTimestamps(ts, s.Key()))
		}
		c.sender = transport.NewClient(topts...)
	}

	return c, nil
}

// Endpoint is the URL requests are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Session returns the session the client was built for.
func (c *Client) Session() *session.Session {
	return c.session
}

// Request sends query and blocks until the outcome is known. It never
// returns an error; failures are described by the Result.
func (c *Client) Request(ctx context.Context, query string, variables map[string]interface{}) *Result {
	body, err := NewPayload(query, variables).Encode()
	if err != nil {
		return c.HandleFailure(&transport.RequestError{
			Err: errors.WrapError(err, errors.ErrValidation, "encode payload"),
		})
	}

	resp, err := c.sender.Send(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return c.HandleFailure(err)
	}
	return c.HandleSuccess(resp)
}

// RequestAsync sends query without blocking. The returned promise always
// fulfils with a Result and is never rejected.
func (c *Client) RequestAsync(ctx context.Context, query string, variables map[string]interface{}) *promise.Promise[*Result] {
	body, err := NewPayload(query, variables).Encode()
	if err != nil {
		return promise.Resolved(c.HandleFailure(&transport.RequestError{
			Err: errors.WrapError(err, errors.ErrValidation, "encode payload"),
		}))
	}

	pending := c.sender.SendAsync(ctx, http.MethodPost, c.endpoint, body)
	return promise.Then(pending, c.HandleSuccess, c.HandleFailure)
}

// HandleSuccess normalizes a transported response. A nil response, or a
// panic while reading it, is handed to HandleFailure.
func (c *Client) HandleSuccess(resp *http.Response) (res *Result) {
	if resp == nil {
		return c.HandleFailure(&transport.RequestError{
			Err: errors.WrapError(fmt.Errorf("no response"), errors.ErrTransport, "handle response"),
		})
	}
	defer func() {
		if r := recover(); r != nil {
			res = c.HandleFailure(&transport.RequestError{
				Response: resp,
				Err:      errors.WrapError(fmt.Errorf("panic: %v", r), errors.ErrDecode, "handle response"),
			})
		}
	}()

	res = &Result{
		Response: resp,
		Status:   resp.StatusCode,
	}

	body, err := c.parse(resp)
	if err != nil {
		// A 200 we cannot read is still not a usable answer.
		res.Errors = true
	} else {
		res.Body = body
		if body.HasErrors() {
			res.Errors = true
			res.ErrorList = body.GetErrors()
		}
	}

	res.Timestamps = c.timestamps()
	return res
}

// HandleFailure normalizes a transport error. The Result always has Errors
// set. Every call reports once and then logs once.
func (c *Client) HandleFailure(err error) *Result {
	res := &Result{
		Errors:    true,
		Exception: err,
	}

	var reqErr *transport.RequestError
	errors.As(err, &reqErr)

	var logContext []interface{}

	if reqErr != nil && reqErr.Response != nil {
		resp := reqErr.Response
		res.Response = resp
		res.Status = resp.StatusCode

		if resp.Body != nil {
			if list := c.parseErrors(resp); len(list) > 0 {
				res.Body = &Response{Errors: list}
			}
		}

		logContext = append(logContext, "shopify_response", map[string]interface{}{
			"status_code": resp.StatusCode,
			"body":        res.Body.GetErrors(),
			"headers":     resp.Header,
		})
	}

	requestContext := map[string]interface{}{"api_type": apiType}
	if reqErr != nil && reqErr.Request != nil {
		req := reqErr.Request
		requestContext["uri"] = req.URL.Redacted()
		requestContext["method"] = req.Method
		requestContext["headers"] = redactHeaders(req.Header)
		requestContext["body"] = reqErr.RequestBody()
	}
	logContext = append(logContext, "shopify_request", requestContext, "error", err)

	report.Safe(c.reporter, err)
	c.logError(logContext)

	res.Timestamps = c.timestamps()
	return res
}

func (c *Client) logError(logContext []interface{}) {
	defer func() { _ = recover() }()
	c.logger.Errorw(failureMessage, logContext...)
}

func (c *Client) parse(resp *http.Response) (*Response, error) {
	data, err := transport.ReadBody(resp)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrDecode, "read body")
	}
	if len(data) == 0 {
		return nil, errors.WrapError(io.ErrUnexpectedEOF, errors.ErrDecode, "empty body")
	}
	return c.parser.ToResponse(bytes.NewReader(data))
}

// parseErrors returns the API errors of a failed response, nil when the
// body cannot be parsed.
func (c *Client) parseErrors(resp *http.Response) (list gqlerror.List) {
	defer func() {
		if recover() != nil {
			list = nil
		}
	}()
	body, err := c.parse(resp)
	if err != nil {
		return nil
	}
	return body.GetErrors()
}

func (c *Client) timestamps() ratelimit.Snapshot {
	return c.store.Get(c.session.Key())
}

var secretHeaders = []string{auth.AccessTokenHeader, "Authorization"}

func redactHeaders(h http.Header) http.Header {
	out := h.Clone()
	for _, name := range secretHeaders {
		if out.Get(name) != "" {
			out.Set(name, "[REDACTED]")
		}
	}
	return out
}
