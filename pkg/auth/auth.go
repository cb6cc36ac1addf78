package auth

import (
	"fmt"
	"net/http"

	"github.com/saturnines/shopify-gql/pkg/errors"
	"github.com/saturnines/shopify-gql/pkg/session"
)

// AccessTokenHeader carries a public app's access token.
const AccessTokenHeader = "X-Shopify-Access-Token"

// Handler defines the interface for auth handlers
type Handler interface {
	ApplyAuth(req *http.Request) error
}

// AccessTokenAuth implements Handler for public apps
type AccessTokenAuth struct {
	Token string
}

// NewAccessTokenAuth creates a new access token handler
func NewAccessTokenAuth(token string) *AccessTokenAuth {
	return &AccessTokenAuth{Token: token}
}

// ApplyAuth sets the access token header
func (a *AccessTokenAuth) ApplyAuth(req *http.Request) error {
	if a.Token == "" {
		return errors.WrapError(
			fmt.Errorf("access token is required"),
			errors.ErrAuthentication,
			"apply access token auth",
		)
	}
	req.Header.Set(AccessTokenHeader, a.Token)
	return nil
}

// String never exposes the token
func (a *AccessTokenAuth) String() string {
	return "AccessTokenAuth(token: [REDACTED])"
}

// ForSession picks basic auth for private apps and the access token otherwise.
func ForSession(s *session.Session) Handler {
	if s.IsPrivate() {
		return NewBasicAuth(s.APIKey, s.Password)
	}
	return NewAccessTokenAuth(s.AccessToken)
}
