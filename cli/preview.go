// ABOUTME: Preview CLI command
// ABOUTME: Composites a logo onto a product image at a normalized position
package cli

import (
	"context"
	"flag"
	"fmt"
	"net/http"

	"github.com/harperreed/flagshop/models"
	"github.com/harperreed/flagshop/preview"
)

// PreviewCommand renders a PNG/JPEG mockup of a customized product.
func PreviewCommand(env *Env, args []string) error {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	productID := fs.String("product", "", "Product whose image is used as the base")
	base := fs.String("base", "", "Base image path or URL (instead of --product)")
	logo := fs.String("logo", "", "Logo image path, URL or /uploads/ reference (required)")
	x := fs.Float64("x", 50, "Logo horizontal position in percent")
	y := fs.Float64("y", 50, "Logo vertical position in percent")
	scale := fs.Float64("scale", preview.DefaultLogoScale, "Logo size relative to the shorter side of the base")
	output := fs.String("output", "preview.png", "Output file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *logo == "" {
		return fmt.Errorf("--logo is required")
	}
	if (*productID == "") == (*base == "") {
		return fmt.Errorf("exactly one of --product or --base is required")
	}

	ctx := context.Background()
	baseRef := *base
	if *productID != "" {
		product, err := env.Client.GetProduct(ctx, *productID)
		if err != nil {
			return fmt.Errorf("failed to load product: %w", err)
		}
		baseRef = product.ImageURL
	}

	httpClient := &http.Client{Timeout: env.Config.HTTPTimeout}
	baseImg, err := preview.Load(ctx, httpClient, env.Config.APIURL, baseRef)
	if err != nil {
		return fmt.Errorf("failed to load base image: %w", err)
	}
	logoImg, err := preview.Load(ctx, httpClient, env.Config.APIURL, *logo)
	if err != nil {
		return fmt.Errorf("failed to load logo: %w", err)
	}

	pos := models.NormalizedPosition{X: *x, Y: *y}.Clamp()
	out, err := preview.Compose(baseImg, logoImg, pos, preview.Options{LogoScale: *scale})
	if err != nil {
		return err
	}
	if err := preview.Save(out, *output); err != nil {
		return err
	}

	env.printf("✓ Preview written to %s (logo at %.0f%%, %.0f%%)\n", *output, pos.X, pos.Y)
	return nil
}
