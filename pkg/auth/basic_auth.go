package auth

import (
	"fmt"
	"net/http"

	"github.com/saturnines/shopify-gql/pkg/errors"
)

// BasicAuth authenticates private apps with their API key and password
type BasicAuth struct {
	APIKey   string
	Password string
}

// NewBasicAuth creates a new basic authentication handler
func NewBasicAuth(apiKey, password string) *BasicAuth {
	return &BasicAuth{
		APIKey:   apiKey,
		Password: password,
	}
}

// ApplyAuth adds the basic auth header to the request
func (b *BasicAuth) ApplyAuth(req *http.Request) error {
	if b.APIKey == "" || b.Password == "" {
		return errors.WrapError(
			fmt.Errorf("api key and password are required"),
			errors.ErrAuthentication,
			"apply basic auth",
		)
	}
	req.SetBasicAuth(b.APIKey, b.Password)
	return nil
}

// String returns a string representation of this auth method for testing
func (b *BasicAuth) String() string {
	return fmt.Sprintf("BasicAuth(api_key: %s)", b.APIKey)
}
