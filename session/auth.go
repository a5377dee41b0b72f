// ABOUTME: Session lifecycle: token bootstrap, login, registration and logout
// ABOUTME: A token the backend no longer accepts is dropped without telling the user
package session

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/harperreed/flagshop/models"
)

// Bootstrap restores the viewer from a stored token, then loads the catalog.
// Any failure resolving the token clears it and leaves the viewer anonymous.
func (a *App) Bootstrap(ctx context.Context) error {
	token, err := a.tokens.Token()
	if err != nil {
		a.logger.Warn("failed to read stored token", zap.Error(err))
		token = ""
	}

	if token != "" {
		viewer, err := a.backend.CurrentUser(ctx)
		if err != nil {
			a.logger.Info("stored token rejected, signing out", zap.Error(err))
			if err := a.tokens.ClearToken(); err != nil {
				a.logger.Warn("failed to clear token", zap.Error(err))
			}
		} else {
			a.mu.Lock()
			a.viewer = viewer
			a.mu.Unlock()
		}
	}

	return a.LoadProducts(ctx)
}

// Login authenticates, persists the token and returns to the home view.
func (a *App) Login(ctx context.Context, email, password string) error {
	resp, err := a.backend.Login(ctx, email, password)
	if err != nil {
		return a.fail(err)
	}
	return a.signIn(resp)
}

// Register creates an account and signs it in. Wholesale accounts start
// unapproved and see retail prices until approved.
func (a *App) Register(ctx context.Context, in models.RegisterRequest) error {
	resp, err := a.backend.Register(ctx, in)
	if err != nil {
		return a.fail(err)
	}
	if err := a.signIn(resp); err != nil {
		return err
	}
	if in.AccountType == models.AccountWholesale && !resp.User.WholesaleApproved {
		a.Notify("Account created. Wholesale pricing applies once your account is approved.", false)
	}
	return nil
}

func (a *App) signIn(resp *models.AuthResponse) error {
	if resp == nil || resp.AccessToken == "" {
		return a.fail(errors.New("backend returned no access token"))
	}
	if err := a.tokens.SetToken(resp.AccessToken); err != nil {
		return a.fail(fmt.Errorf("failed to store token: %w", err))
	}

	user := resp.User
	a.mu.Lock()
	a.viewer = &user
	a.view = ViewHome
	a.notice = Notice{Text: "Signed in as " + user.Email}
	a.mu.Unlock()
	return nil
}

// Logout forgets the token and viewer and returns to the home view.
func (a *App) Logout() error {
	err := a.tokens.ClearToken()
	if err != nil {
		a.logger.Warn("failed to clear token", zap.Error(err))
	}

	a.mu.Lock()
	a.viewer = nil
	a.quotes = nil
	a.view = ViewHome
	a.notice = Notice{Text: "Signed out"}
	a.mu.Unlock()
	return err
}
