package graphql

import (
	"encoding/json"
	"fmt"
)

const (
	// EndpointPath is the unversioned Admin API GraphQL endpoint.
	EndpointPath = "/admin/api/graphql.json"

	versionedEndpointPath = "/admin/api/%s/graphql.json"
)

// Payload is the JSON body of a GraphQL request. Variables is left out of
// the encoded form when empty.
type Payload struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// NewPayload sets up a Payload for query with optional variables.
func NewPayload(query string, variables map[string]interface{}, opts ...PayloadOption) *Payload {
	p := &Payload{Query: query}
	if len(variables) > 0 {
		p.Variables = make(map[string]interface{}, len(variables))
		for k, v := range variables {
			p.Variables[k] = v
		}
	}
	p.ApplyOptions(opts...)
	return p
}

// Encode serializes the payload.
func (p *Payload) Encode() ([]byte, error) {
	if p.Query == "" {
		return nil, fmt.Errorf("query is required")
	}
	return json.Marshal(p)
}

// endpointPath returns the versioned path when version is set.
func endpointPath(version string) string {
	if version == "" {
		return EndpointPath
	}
	return fmt.Sprintf(versionedEndpointPath, version)
}
