package session

import (
	"fmt"
	"net/url"
	"strings"
)

// Session identifies the shop a client talks to and the credentials used.
// Private apps authenticate with APIKey/Password, public apps with AccessToken.
type Session struct {
	Shop        string // e.g. example.myshopify.com
	AccessToken string
	APIKey      string
	Password    string
	APIVersion  string // e.g. 2024-01; empty uses the unversioned endpoint
}

// New creates a public-app session.
func New(shop, accessToken string) *Session {
	return &Session{Shop: normalizeShop(shop), AccessToken: accessToken}
}

// NewPrivate creates a private-app session.
func NewPrivate(shop, apiKey, password string) *Session {
	return &Session{Shop: normalizeShop(shop), APIKey: apiKey, Password: password}
}

// IsPrivate reports whether the session uses private-app credentials.
func (s *Session) IsPrivate() bool {
	return s.AccessToken == "" && s.APIKey != ""
}

// Key is the session's identity in the rate-limit store.
func (s *Session) Key() string {
	return s.Shop
}

// BaseURI returns https://<shop>.
func (s *Session) BaseURI() (*url.URL, error) {
	if s.Shop == "" {
		return nil, fmt.Errorf("session has no shop domain")
	}
	return &url.URL{Scheme: "https", Host: s.Shop}, nil
}

func normalizeShop(shop string) string {
	shop = strings.TrimSpace(shop)
	shop = strings.TrimPrefix(shop, "https://")
	shop = strings.TrimPrefix(shop, "http://")
	return strings.TrimSuffix(shop, "/")
}
