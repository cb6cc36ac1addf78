package auth

import (
	"fmt"

	"github.com/saturnines/shopify-gql/pkg/config"
	"github.com/saturnines/shopify-gql/pkg/errors"
)

func createAccessTokenAuth(authConfig *config.Auth) (Handler, error) {
	if authConfig.AccessToken == nil {
		return nil, errors.WrapError(
			fmt.Errorf("access token configuration is required"),
			errors.ErrConfiguration,
			"create access token auth",
		)
	}
	return NewAccessTokenAuth(authConfig.AccessToken.Token), nil
}

func createBasicAuth(authConfig *config.Auth) (Handler, error) {
	if authConfig.Basic == nil {
		return nil, errors.WrapError(
			fmt.Errorf("basic auth configuration is required"),
			errors.ErrConfiguration,
			"create basic auth",
		)
	}
	return NewBasicAuth(authConfig.Basic.APIKey, authConfig.Basic.Password), nil
}
