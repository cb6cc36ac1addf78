package auth

import (
	"encoding/base64"
	"net/http"
	"strings"
	"testing"

	"github.com/saturnines/shopify-gql/pkg/config"
	"github.com/saturnines/shopify-gql/pkg/session"
)

// Helper functions for tests
func assertHeader(t *testing.T, req *http.Request, header, expected string) {
	t.Helper()
	if value := req.Header.Get(header); value != expected {
		t.Errorf("Expected %s header '%s', got '%s'", header, expected, value)
	}
}

func assertErrorContains(t *testing.T, err error, expected string) {
	t.Helper()
	if err == nil {
		t.Errorf("Expected error containing '%s', got nil", expected)
		return
	}
	if !strings.Contains(err.Error(), expected) {
		t.Errorf("Expected error containing '%s', got '%s'", expected, err.Error())
	}
}

func newRequest(t *testing.T) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, "https://example.myshopify.com/admin/api/graphql.json", nil)
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}
	return req
}

func TestAccessTokenAuth(t *testing.T) {
	t.Run("ValidToken", func(t *testing.T) {
		req := newRequest(t)
		if err := NewAccessTokenAuth("shpat_123").ApplyAuth(req); err != nil {
			t.Fatalf("ApplyAuth failed: %v", err)
		}
		assertHeader(t, req, AccessTokenHeader, "shpat_123")
	})

	t.Run("EmptyToken", func(t *testing.T) {
		err := NewAccessTokenAuth("").ApplyAuth(newRequest(t))
		assertErrorContains(t, err, "access token is required")
	})

	t.Run("StringMethod", func(t *testing.T) {
		if str := NewAccessTokenAuth("shpat_123").String(); strings.Contains(str, "shpat_123") {
			t.Errorf("String() should not contain the token, got: %s", str)
		}
	})
}

func TestBasicAuth(t *testing.T) {
	t.Run("ValidCredentials", func(t *testing.T) {
		req := newRequest(t)
		if err := NewBasicAuth("key", "secret").ApplyAuth(req); err != nil {
			t.Fatalf("ApplyAuth failed: %v", err)
		}
		encoded := base64.StdEncoding.EncodeToString([]byte("key:secret"))
		assertHeader(t, req, "Authorization", "Basic "+encoded)
	})

	t.Run("MissingPassword", func(t *testing.T) {
		err := NewBasicAuth("key", "").ApplyAuth(newRequest(t))
		assertErrorContains(t, err, "api key and password are required")
	})

	t.Run("StringMethod", func(t *testing.T) {
		str := NewBasicAuth("key", "secret").String()
		if !strings.Contains(str, "key") || strings.Contains(str, "secret") {
			t.Errorf("unexpected String(): %s", str)
		}
	})
}

func TestForSession(t *testing.T) {
	if _, ok := ForSession(session.New("shop", "tok")).(*AccessTokenAuth); !ok {
		t.Error("public session should use AccessTokenAuth")
	}
	if _, ok := ForSession(session.NewPrivate("shop", "k", "p")).(*BasicAuth); !ok {
		t.Error("private session should use BasicAuth")
	}
}

func TestCreateHandler(t *testing.T) {
	t.Run("AccessTokenCreation", func(t *testing.T) {
		handler, err := CreateHandler(&config.Auth{
			Type:        config.AuthTypeAccessToken,
			AccessToken: &config.AccessTokenAuth{Token: "tok"},
		})
		if err != nil {
			t.Fatalf("CreateHandler failed: %v", err)
		}
		if h, ok := handler.(*AccessTokenAuth); !ok || h.Token != "tok" {
			t.Errorf("Auth not properly configured: %+v", handler)
		}
	})

	t.Run("BasicAuthCreation", func(t *testing.T) {
		handler, err := CreateHandler(&config.Auth{
			Type:  config.AuthTypeBasic,
			Basic: &config.BasicAuth{APIKey: "key", Password: "secret"},
		})
		if err != nil {
			t.Fatalf("CreateHandler failed: %v", err)
		}
		if h, ok := handler.(*BasicAuth); !ok || h.APIKey != "key" {
			t.Errorf("Auth not properly configured: %+v", handler)
		}
	})

	t.Run("MissingBlock", func(t *testing.T) {
		_, err := CreateHandler(&config.Auth{Type: config.AuthTypeBasic})
		assertErrorContains(t, err, "basic auth configuration is required")
	})

	t.Run("UnsupportedAuthType", func(t *testing.T) {
		_, err := CreateHandler(&config.Auth{Type: config.AuthType("unsupported")})
		assertErrorContains(t, err, "unsupported auth type")
	})

	t.Run("NilConfig", func(t *testing.T) {
		_, err := CreateHandler(nil)
		assertErrorContains(t, err, "auth configuration is nil")
	})
}

func TestRegisterAuthHandler(t *testing.T) {
	customType := config.AuthType("custom")

	RegisterAuthHandler(customType, func(cfg *config.Auth) (Handler, error) {
		return NewBasicAuth("custom", "secret"), nil
	})

	handler, err := CreateHandler(&config.Auth{Type: customType})
	if err != nil {
		t.Fatalf("Failed to create custom handler: %v", err)
	}

	customHandler, ok := handler.(*BasicAuth)
	if !ok {
		t.Fatal("Custom handler is not a BasicAuth")
	}
	if customHandler.APIKey != "custom" || customHandler.Password != "secret" {
		t.Error("Custom handler has incorrect values")
	}
}
