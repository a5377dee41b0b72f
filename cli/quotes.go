// ABOUTME: Quote CLI commands
// ABOUTME: Non-interactive customize-and-submit, quote listing, logo upload and local history
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/harperreed/flagshop/models"
	"github.com/harperreed/flagshop/session"
)

const timeLayout = "2006-01-02 15:04"

// signedInApp bootstraps a session and fails unless a viewer is signed in.
func signedInApp(ctx context.Context, env *Env) (*session.App, error) {
	app := env.NewApp()
	if err := app.Bootstrap(ctx); err != nil {
		return nil, fmt.Errorf("failed to reach backend: %s", session.UserMessage(err))
	}
	if app.Viewer() == nil {
		return nil, fmt.Errorf("not signed in: run 'flagshop login' first")
	}
	return app, nil
}

// QuotesCommand lists the signed-in account's quote requests.
func QuotesCommand(env *Env, args []string) error {
	ctx := context.Background()
	app, err := signedInApp(ctx, env)
	if err != nil {
		return err
	}
	if err := app.LoadQuotes(ctx); err != nil {
		return fmt.Errorf("failed to load quotes: %s", session.UserMessage(err))
	}

	quotes := app.Quotes()
	if len(quotes) == 0 {
		env.printf("No quote requests yet\n")
		return nil
	}

	w := tabwriter.NewWriter(env.Out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "PRODUCT\tBUSINESS\tQTY\tSTATUS\tREQUESTED\tID")
	_, _ = fmt.Fprintln(w, "-------\t--------\t---\t------\t---------\t--")
	for _, q := range quotes {
		requested := "-"
		if !q.CreatedAt.IsZero() {
			requested = q.CreatedAt.Local().Format(timeLayout)
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n", q.ProductName, q.BusinessName, q.Quantity, q.Status, requested, q.ID)
	}
	_ = w.Flush()
	return nil
}

// QuoteCommand customizes a product and submits a quote request in one go.
func QuoteCommand(env *Env, args []string) error {
	fs := flag.NewFlagSet("quote", flag.ContinueOnError)
	productID := fs.String("product", "", "Product ID (required)")
	business := fs.String("business", "", "Business name printed on the product (required)")
	phone := fs.String("phone", "", "Phone number printed on the product")
	logo := fs.String("logo", "", "Logo file to upload (.jpg, .jpeg, .png, .pdf, .ai)")
	x := fs.Float64("x", 50, "Logo horizontal position in percent")
	y := fs.Float64("y", 50, "Logo vertical position in percent")
	saveOnly := fs.Bool("save-only", false, "Save the customization without requesting a quote")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *productID == "" {
		return fmt.Errorf("--product is required")
	}

	ctx := context.Background()
	app, err := signedInApp(ctx, env)
	if err != nil {
		return err
	}

	if err := app.Customize(*productID); err != nil {
		return err
	}
	app.SetBusinessName(*business)
	app.SetPhoneNumber(*phone)
	app.UpdatePosition(models.NormalizedPosition{X: *x, Y: *y})

	if *logo != "" {
		ref, err := uploadFile(ctx, app, *logo)
		if err != nil {
			return err
		}
		env.printf("✓ Logo uploaded: %s\n", ref)
	}

	if *saveOnly {
		receipt, err := app.SaveCustomization(ctx)
		if err != nil {
			return fmt.Errorf("failed to save customization: %s", session.UserMessage(err))
		}
		env.printf("✓ %s (ID: %s)\n", receipt.Message, receipt.ID)
		return nil
	}

	receipt, err := app.SubmitQuote(ctx)
	if err != nil {
		return fmt.Errorf("quote request failed: %s", session.UserMessage(err))
	}

	draft := app.Draft()
	env.printf("✓ %s\n", app.Notice().Text)
	env.printf("  Quote ID: %s\n", receipt.ID)
	env.printf("  Logo position: (%.0f%%, %.0f%%)\n", draft.LogoPosition.X, draft.LogoPosition.Y)
	return nil
}

func uploadFile(ctx context.Context, app *session.App, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open logo: %w", err)
	}
	defer f.Close()

	ref, err := app.UploadLogo(ctx, f, filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("upload failed: %s", session.UserMessage(err))
	}
	return ref, nil
}

// UploadCommand uploads a logo and prints the stored reference.
func UploadCommand(env *Env, args []string) error {
	fs := flag.NewFlagSet("upload", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: upload <file>")
	}

	path := fs.Arg(0)
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	result, err := env.Client.Upload(context.Background(), f, filepath.Base(path))
	if err != nil {
		return err
	}

	env.printf("✓ Uploaded %s\n", filepath.Base(path))
	env.printf("  URL: %s\n", result.FileURL)
	if result.FileSize > 0 {
		env.printf("  Size: %d bytes\n", result.FileSize)
	}
	return nil
}

// SavedCommand lists saved customizations.
func SavedCommand(env *Env, args []string) error {
	items, err := env.Client.ListCustomizations(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list customizations: %s", session.UserMessage(err))
	}
	if len(items) == 0 {
		env.printf("No saved customizations\n")
		return nil
	}

	w := tabwriter.NewWriter(env.Out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "PRODUCT\tBUSINESS\tPHONE\tLOGO\tID")
	_, _ = fmt.Fprintln(w, "-------\t--------\t-----\t----\t--")
	for _, c := range items {
		logo := "-"
		if c.LogoURL != nil && *c.LogoURL != "" {
			logo = *c.LogoURL
		}
		phone := c.PhoneNumber
		if phone == "" {
			phone = "-"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.ProductID, c.BusinessName, phone, logo, c.ID)
	}
	_ = w.Flush()
	return nil
}

// HistoryCommand lists locally recorded quote submissions.
func HistoryCommand(env *Env, args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	email := fs.String("email", "", "Only submissions by this account")
	limit := fs.Int("limit", 50, "Maximum results")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if env.History == nil {
		return fmt.Errorf("submission history is not available")
	}

	subs, err := env.History.List(*email, *limit)
	if err != nil {
		return fmt.Errorf("failed to list submissions: %w", err)
	}
	if len(subs) == 0 {
		env.printf("No submissions recorded\n")
		return nil
	}

	w := tabwriter.NewWriter(env.Out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "SUBMITTED\tPRODUCT\tBUSINESS\tEMAIL\tREMOTE ID")
	_, _ = fmt.Fprintln(w, "---------\t-------\t--------\t-----\t---------")
	for _, s := range subs {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			s.SubmittedAt.Local().Format(timeLayout),
			s.Payload.ProductName,
			s.Payload.BusinessName,
			s.Payload.UserEmail,
			s.RemoteID,
		)
	}
	_ = w.Flush()
	return nil
}
