package transport

import (
	"io"
	"net/http"
)

// RequestError is returned by Send for any transport-level failure. Response
// is nil when the failure happened before a response was received.
type RequestError struct {
	Request  *http.Request
	Response *http.Response
	Err      error
}

func (e *RequestError) Error() string {
	return e.Err.Error()
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// HasResponse reports whether the server answered at all.
func (e *RequestError) HasResponse() bool {
	return e.Response != nil
}

// StatusCode returns the response status, or 0 without a response.
func (e *RequestError) StatusCode() int {
	if e.Response == nil {
		return 0
	}
	return e.Response.StatusCode
}

// RequestBody returns the serialized body that was sent, if it can be replayed.
func (e *RequestError) RequestBody() string {
	if e.Request == nil || e.Request.GetBody == nil {
		return ""
	}
	rc, err := e.Request.GetBody()
	if err != nil {
		return ""
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return ""
	}
	return string(data)
}
