package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/saturnines/shopify-gql/pkg/errors"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "shopify-gql/1.0"
)

type ValidationError struct {
	Field   string
	Message string
}

type Validator interface {
	Validate(cfg *Client) []ValidationError
}

// Returns the string representation of validation error
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// DefaultValueSetter fills in unset values
type DefaultValueSetter interface {
	SetDefaults(cfg *Client)
}

// VariableExpander defines the interface for expanding variables
type VariableExpander interface {
	Expand(data []byte) []byte
}

// EnvExpander implements VariableExpander using environment variables
type EnvExpander struct{}

// Expand expands environment variables with the given data
func (e *EnvExpander) Expand(data []byte) []byte {
	return []byte(os.Expand(string(data), os.Getenv))
}

// Loader reads Client configurations
type Loader struct {
	expander      VariableExpander
	validators    []Validator
	defaultSetter DefaultValueSetter
}

// NewLoader creates a new Loader with the given components
func NewLoader(
	expander VariableExpander,
	defaultSetter DefaultValueSetter,
	validators ...Validator,
) *Loader {
	return &Loader{
		expander:      expander,
		validators:    validators,
		defaultSetter: defaultSetter,
	}
}

// NewDefaultLoader wires env expansion, defaults and every validator.
func NewDefaultLoader() *Loader {
	return NewLoader(
		&EnvExpander{},
		&ClientDefaults{},
		&RequiredFieldValidator{},
		&AuthValidator{},
	)
}

// Load a client config from a YAML file
func (l *Loader) Load(path string) (*Client, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrConfiguration, "read config file")
	}

	return l.Parse(data)
}

// Parse parses a yaml config
func (l *Loader) Parse(data []byte) (*Client, error) {
	if l.expander != nil {
		data = l.expander.Expand(data)
	}

	var cfg Client
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.WrapError(err, errors.ErrConfiguration, "parse YAML")
	}

	if l.defaultSetter != nil {
		l.defaultSetter.SetDefaults(&cfg)
	}

	var allErrors []ValidationError
	for _, validator := range l.validators {
		allErrors = append(allErrors, validator.Validate(&cfg)...)
	}

	if len(allErrors) > 0 {
		return nil, fmt.Errorf("%w: %v", errors.ErrValidation, allErrors)
	}

	return &cfg, nil
}

// ClientDefaults implements DefaultValueSetter for Client
type ClientDefaults struct{}

// SetDefaults sets default values for Client
func (d *ClientDefaults) SetDefaults(cfg *Client) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.RateLimit.Keep <= 0 {
		cfg.RateLimit.Keep = 2
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
}

// RequiredFieldValidator validates required fields
type RequiredFieldValidator struct{}

// Validate checks that all required fields are present
func (v *RequiredFieldValidator) Validate(cfg *Client) []ValidationError {
	var errs []ValidationError

	if cfg.Shop == "" {
		errs = append(errs, ValidationError{Field: "shop", Message: "is required"})
	}
	if cfg.Auth == nil {
		errs = append(errs, ValidationError{Field: "auth", Message: "is required"})
	}
	switch cfg.Log.Format {
	case "", "console", "json":
	default:
		errs = append(errs, ValidationError{Field: "log.format", Message: fmt.Sprintf("unknown format: %s", cfg.Log.Format)})
	}

	return errs
}

// AuthValidator handles authentication validation
type AuthValidator struct{}

// Validate checks that authentication configuration is valid
func (v *AuthValidator) Validate(cfg *Client) []ValidationError {
	var errs []ValidationError

	if cfg.Auth == nil {
		return errs
	}

	switch cfg.Auth.Type {
	case AuthTypeAccessToken:
		if cfg.Auth.AccessToken == nil || cfg.Auth.AccessToken.Token == "" {
			errs = append(errs, ValidationError{Field: "auth.access_token.token", Message: "is required for access_token auth"})
		}
	case AuthTypeBasic:
		if cfg.Auth.Basic == nil {
			errs = append(errs, ValidationError{Field: "auth.basic", Message: "is required for basic auth"})
		} else {
			if cfg.Auth.Basic.APIKey == "" {
				errs = append(errs, ValidationError{Field: "auth.basic.api_key", Message: "is required for basic auth"})
			}
			if cfg.Auth.Basic.Password == "" {
				errs = append(errs, ValidationError{Field: "auth.basic.password", Message: "is required for basic auth"})
			}
		}
	default:
		errs = append(errs, ValidationError{Field: "auth.type", Message: fmt.Sprintf("unknown auth type: %s", cfg.Auth.Type)})
	}

	return errs
}
