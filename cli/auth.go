// ABOUTME: Account CLI commands
// ABOUTME: Login, registration, logout and whoami against the storefront backend
package cli

import (
	"context"
	"flag"
	"fmt"

	"go.uber.org/zap"

	"github.com/harperreed/flagshop/models"
	"github.com/harperreed/flagshop/pricing"
	"github.com/harperreed/flagshop/session"
)

// LoginCommand signs in and stores the access token.
func LoginCommand(env *Env, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "Account email (required)")
	password := fs.String("password", "", "Password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" {
		return fmt.Errorf("--email is required")
	}
	if *password == "" {
		pw, err := env.readPassword("Password: ")
		if err != nil {
			return err
		}
		*password = pw
	}

	app := env.NewApp()
	if err := app.Login(context.Background(), *email, *password); err != nil {
		return fmt.Errorf("login failed: %s", session.UserMessage(err))
	}

	printViewer(env, app.Viewer())
	return nil
}

// RegisterCommand creates an account and signs in.
func RegisterCommand(env *Env, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	email := fs.String("email", "", "Account email (required)")
	password := fs.String("password", "", "Password (prompted when omitted)")
	business := fs.String("business", "", "Business name (required)")
	phone := fs.String("phone", "", "Phone number")
	wholesale := fs.Bool("wholesale", false, "Request a wholesale account (pending approval)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" {
		return fmt.Errorf("--email is required")
	}
	if *business == "" {
		return fmt.Errorf("--business is required")
	}
	if *password == "" {
		pw, err := env.readPassword("Password: ")
		if err != nil {
			return err
		}
		*password = pw
	}

	in := models.RegisterRequest{
		Email:        *email,
		Password:     *password,
		BusinessName: *business,
		Phone:        *phone,
		AccountType:  models.AccountRegular,
	}
	if *wholesale {
		in.AccountType = models.AccountWholesale
	}

	app := env.NewApp()
	if err := app.Register(context.Background(), in); err != nil {
		return fmt.Errorf("registration failed: %s", session.UserMessage(err))
	}

	env.printf("✓ Account created\n")
	printViewer(env, app.Viewer())
	return nil
}

func LogoutCommand(env *Env, args []string) error {
	if err := env.NewApp().Logout(); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	env.printf("✓ Signed out\n")
	return nil
}

// WhoamiCommand shows the account behind the stored token.
func WhoamiCommand(env *Env, args []string) error {
	app := env.NewApp()
	if err := app.Bootstrap(context.Background()); err != nil {
		env.Logger.Debug("catalog unavailable", zap.Error(err))
	}

	viewer := app.Viewer()
	if viewer == nil {
		env.printf("Not signed in\n")
		return nil
	}
	printViewer(env, viewer)
	return nil
}

func printViewer(env *Env, v *models.Viewer) {
	if v == nil {
		return
	}
	env.printf("✓ Signed in as %s\n", v.Email)
	if v.BusinessName != "" {
		env.printf("  Business: %s\n", v.BusinessName)
	}
	env.printf("  Account: %s\n", v.AccountType)
	if v.IsWholesale() {
		if v.WholesaleApproved {
			env.printf("  %s\n", pricing.TierWholesaleActive.Badge())
		} else {
			env.printf("  %s\n", pricing.TierWholesalePending.Badge())
		}
	}
}
