package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnines/shopify-gql/pkg/errors"
)

func TestLoader_ValidMinimalConfig(t *testing.T) {
	t.Setenv("TEST_SHOPIFY_TOKEN", "shpat_abc")

	yamlContent := `
shop: example.myshopify.com
auth:
  type: access_token
  access_token:
    token: ${TEST_SHOPIFY_TOKEN}
`

	cfg, err := NewDefaultLoader().Parse([]byte(yamlContent))
	require.NoError(t, err)

	assert.Equal(t, "example.myshopify.com", cfg.Shop)
	assert.Equal(t, "shpat_abc", cfg.Auth.AccessToken.Token)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, DefaultUserAgent, cfg.UserAgent)
	assert.Equal(t, 2, cfg.RateLimit.Keep)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)

	s := cfg.Session()
	assert.False(t, s.IsPrivate())
	assert.Equal(t, "shpat_abc", s.AccessToken)
}

func TestLoader_PrivateAppConfig(t *testing.T) {
	yamlContent := `
shop: example.myshopify.com
api_version: "2024-01"
timeout: 5s
auth:
  type: basic
  basic:
    api_key: key
    password: secret
log:
  level: debug
  format: json
`

	cfg, err := NewDefaultLoader().Parse([]byte(yamlContent))
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.Timeout)
	s := cfg.Session()
	assert.True(t, s.IsPrivate())
	assert.Equal(t, "2024-01", s.APIVersion)
	assert.Equal(t, "key", s.APIKey)
}

func TestLoader_ValidationErrors(t *testing.T) {
	cases := []struct {
		description string
		yaml        string
		field       string
	}{
		{"missing shop", "auth:\n  type: access_token\n  access_token:\n    token: x\n", "shop"},
		{"missing auth", "shop: example.myshopify.com\n", "auth"},
		{"missing token", "shop: a\nauth:\n  type: access_token\n", "auth.access_token.token"},
		{"missing password", "shop: a\nauth:\n  type: basic\n  basic:\n    api_key: k\n", "auth.basic.password"},
		{"unknown auth", "shop: a\nauth:\n  type: oauth2\n", "auth.type"},
		{"unknown log format", "shop: a\nauth:\n  type: access_token\n  access_token:\n    token: x\nlog:\n  format: xml\n", "log.format"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			_, err := NewDefaultLoader().Parse([]byte(tc.yaml))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrValidation))
			assert.Contains(t, err.Error(), tc.field)
		})
	}
}

func TestLoader_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.yaml")
	require.NoError(t, os.WriteFile(path, []byte("shop: a\nauth:\n  type: access_token\n  access_token:\n    token: x\n"), 0o600))

	cfg, err := NewDefaultLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, "a", cfg.Shop)

	_, err = NewDefaultLoader().Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.Is(err, errors.ErrConfiguration))
}

func TestLoader_BadYAML(t *testing.T) {
	_, err := NewDefaultLoader().Parse([]byte("shop: [unterminated"))
	assert.True(t, errors.Is(err, errors.ErrConfiguration))
}
