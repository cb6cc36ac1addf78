package graphql

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/saturnines/shopify-gql/pkg/errors"
)

// Response is a decoded GraphQL response body.
type Response struct {
	Data       json.RawMessage        `json:"data,omitempty"`
	Errors     gqlerror.List          `json:"errors,omitempty"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`
}

// HasErrors reports whether the API returned any errors.
func (r *Response) HasErrors() bool {
	return r != nil && len(r.Errors) > 0
}

// GetErrors returns the API errors.
func (r *Response) GetErrors() gqlerror.List {
	if r == nil {
		return nil
	}
	return r.Errors
}

// Decode unmarshals Data into v.
func (r *Response) Decode(v interface{}) error {
	if r == nil || len(r.Data) == 0 || string(r.Data) == "null" {
		return errors.WrapError(fmt.Errorf("response has no data"), errors.ErrDecode, "decode data")
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return errors.WrapError(err, errors.ErrDecode, "decode data")
	}
	return nil
}

// ThrottleStatus is the bucket state Shopify reports with every query.
type ThrottleStatus struct {
	MaximumAvailable   float64 `json:"maximumAvailable"`
	CurrentlyAvailable float64 `json:"currentlyAvailable"`
	RestoreRate        float64 `json:"restoreRate"`
}

// QueryCost is the extensions.cost object of a response.
type QueryCost struct {
	RequestedQueryCost float64        `json:"requestedQueryCost"`
	ActualQueryCost    float64        `json:"actualQueryCost"`
	ThrottleStatus     ThrottleStatus `json:"throttleStatus"`
}

// Cost returns the query cost extension when present.
func (r *Response) Cost() (*QueryCost, bool) {
	if r == nil {
		return nil, false
	}
	raw, ok := r.Extensions["cost"]
	if !ok {
		return nil, false
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, false
	}
	var cost QueryCost
	if err := json.Unmarshal(data, &cost); err != nil {
		return nil, false
	}
	return &cost, true
}

// Parser turns a response body into a Response.
type Parser interface {
	ToResponse(body io.Reader) (*Response, error)
}

// JSONParser is the default Parser. Besides the standard errors array it
// accepts the string and object forms Shopify uses for auth and
// throttling failures.
type JSONParser struct{}

func (JSONParser) ToResponse(body io.Reader) (*Response, error) {
	var raw struct {
		Data       json.RawMessage        `json:"data"`
		Errors     json.RawMessage        `json:"errors"`
		Extensions map[string]interface{} `json:"extensions"`
	}
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return nil, errors.WrapError(err, errors.ErrDecode, "decode response body")
	}

	list, err := decodeErrors(raw.Errors)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrDecode, "decode errors")
	}

	return &Response{
		Data:       raw.Data,
		Errors:     list,
		Extensions: raw.Extensions,
	}, nil
}

func decodeErrors(raw json.RawMessage) (gqlerror.List, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	switch raw[0] {
	case '[':
		var list gqlerror.List
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, err
		}
		return list, nil
	case '"':
		var msg string
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, err
		}
		return gqlerror.List{{Message: msg}}, nil
	case '{':
		var fields map[string]interface{}
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, err
		}
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		list := make(gqlerror.List, 0, len(keys))
		for _, k := range keys {
			list = append(list, &gqlerror.Error{
				Message:    fmt.Sprintf("%s: %v", k, fields[k]),
				Extensions: map[string]interface{}{"field": k},
			})
		}
		return list, nil
	default:
		return nil, fmt.Errorf("unexpected errors value: %s", string(raw))
	}
}
