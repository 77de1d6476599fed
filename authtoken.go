package sdk

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/openspeleo/speleodb-go/routes"
)

// AuthClient exchanges credentials for API tokens.
type AuthClient struct {
	client *Client
}

func (c *AuthClient) ensureInitialized() error {
	if c == nil || c.client == nil {
		return fmt.Errorf("sdk: auth client not initialized")
	}
	return nil
}

// AcquireToken exchanges email/password credentials for a token usable as
// Config.AuthToken. Works on an unauthenticated client.
func (c *AuthClient) AcquireToken(ctx context.Context, email, password string) (string, error) {
	if err := c.ensureInitialized(); err != nil {
		return "", err
	}
	if strings.TrimSpace(email) == "" {
		return "", fmt.Errorf("sdk: email is required")
	}
	if password == "" {
		return "", fmt.Errorf("sdk: password is required")
	}

	payload := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var out struct {
		Token string `json:"token"`
	}
	if err := c.client.sendAndDecode(ctx, http.MethodPost, routes.AuthToken, payload, &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", fmt.Errorf("sdk: server returned an empty token")
	}
	return out.Token, nil
}
