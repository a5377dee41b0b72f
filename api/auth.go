// ABOUTME: Authentication endpoints: login, register and current user
// ABOUTME: Non-2xx answers from these endpoints become AuthError with the backend detail
package api

import (
	"context"
	"errors"

	"github.com/harperreed/flagshop/models"
)

func asAuthError(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
		return &AuthError{StatusCode: apiErr.StatusCode, Detail: apiErr.Detail}
	}
	return err
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	var out models.AuthResponse
	in := models.LoginRequest{Email: email, Password: password}
	if err := c.postJSON(ctx, "login", "/api/auth/login", false, in, &out); err != nil {
		return nil, asAuthError(err)
	}
	return &out, nil
}

// Register creates an account and returns its access token.
func (c *Client) Register(ctx context.Context, in models.RegisterRequest) (*models.AuthResponse, error) {
	if in.AccountType == "" {
		in.AccountType = models.AccountRegular
	}
	var out models.AuthResponse
	if err := c.postJSON(ctx, "register", "/api/auth/register", false, in, &out); err != nil {
		return nil, asAuthError(err)
	}
	return &out, nil
}

// CurrentUser resolves the viewer behind the stored token.
func (c *Client) CurrentUser(ctx context.Context) (*models.Viewer, error) {
	var out models.Viewer
	if err := c.getJSON(ctx, "current user", "/api/auth/me", true, &out); err != nil {
		return nil, asAuthError(err)
	}
	return &out, nil
}
