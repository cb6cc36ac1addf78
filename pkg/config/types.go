package config

import (
	"time"

	"github.com/saturnines/shopify-gql/pkg/session"
)

// Client represents the full config for one Shopify GraphQL client
type Client struct {
	Shop       string        `yaml:"shop"`                  // Required: shop domain
	APIVersion string        `yaml:"api_version,omitempty"` // Optional API version, e.g. 2024-01
	Auth       *Auth         `yaml:"auth"`                  // Required authentication
	Timeout    time.Duration `yaml:"timeout,omitempty"`     // HTTP timeout (default 30s)
	UserAgent  string        `yaml:"user_agent,omitempty"`  // User-Agent header
	RateLimit  RateLimit     `yaml:"rate_limit,omitempty"`  // Timestamp bookkeeping
	Log        Log           `yaml:"log,omitempty"`         // Logger setup
}

// Auth defines auth methods.
type Auth struct {
	Type        AuthType         `yaml:"type"`                   // Required authentication type
	AccessToken *AccessTokenAuth `yaml:"access_token,omitempty"` // Public app token
	Basic       *BasicAuth       `yaml:"basic,omitempty"`        // Private app key/password
}

// AuthType defines current supported authentication types
type AuthType string

const (
	AuthTypeAccessToken AuthType = "access_token"
	AuthTypeBasic       AuthType = "basic"
)

// AccessTokenAuth carries a public app's offline or online access token
type AccessTokenAuth struct {
	Token string `yaml:"token"`
}

// BasicAuth contains private app credentials
type BasicAuth struct {
	APIKey   string `yaml:"api_key"`
	Password string `yaml:"password"`
}

// RateLimit configures the request timestamp store
type RateLimit struct {
	Keep int `yaml:"keep,omitempty"` // Timestamps kept per shop
}

// Log configures the zap logger
type Log struct {
	Level  string `yaml:"level,omitempty"`  // debug, info, warn, error
	Format string `yaml:"format,omitempty"` // console or json
}

// Session builds the shop session described by the config.
func (c *Client) Session() *session.Session {
	var s *session.Session
	switch {
	case c.Auth != nil && c.Auth.Type == AuthTypeBasic && c.Auth.Basic != nil:
		s = session.NewPrivate(c.Shop, c.Auth.Basic.APIKey, c.Auth.Basic.Password)
	case c.Auth != nil && c.Auth.AccessToken != nil:
		s = session.New(c.Shop, c.Auth.AccessToken.Token)
	default:
		s = session.New(c.Shop, "")
	}
	s.APIVersion = c.APIVersion
	return s
}
