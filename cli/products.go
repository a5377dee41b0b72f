// ABOUTME: Catalog CLI commands
// ABOUTME: Lists products grouped by category and resolves the caller's price
package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/harperreed/flagshop/models"
	"github.com/harperreed/flagshop/pricing"
)

// ProductsCommand lists the catalog with the signed-in viewer's prices.
func ProductsCommand(env *Env, args []string) error {
	fs := flag.NewFlagSet("products", flag.ContinueOnError)
	category := fs.String("category", "", "Only show this category")
	customizable := fs.Bool("customizable", false, "Only show customizable products")
	if err := fs.Parse(args); err != nil {
		return err
	}

	app := env.NewApp()
	if err := app.Bootstrap(context.Background()); err != nil {
		return fmt.Errorf("failed to load products: %w", err)
	}

	w := tabwriter.NewWriter(env.Out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "CATEGORY\tID\tNAME\tPRICE\tCUSTOM\t")
	_, _ = fmt.Fprintln(w, "--------\t--\t----\t-----\t------\t")

	shown := 0
	for _, group := range models.GroupByCategory(app.Products()) {
		if *category != "" && !strings.EqualFold(group.Category, *category) {
			continue
		}
		for _, p := range group.Products {
			if *customizable && !p.Customizable {
				continue
			}
			price, tier := app.PriceFor(p)
			label := pricing.FormatPrice(price)
			if badge := tier.Badge(); badge != "" {
				label += " (" + badge + ")"
			}
			custom := "-"
			if p.Customizable {
				custom = "yes"
			}
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n", group.Category, p.ID, p.Name, label, custom)
			shown++
		}
	}
	_ = w.Flush()

	if shown == 0 {
		env.printf("No products found\n")
	}
	return nil
}

// PriceCommand resolves one product's price. Without --account the
// signed-in viewer (or anonymous) is used.
func PriceCommand(env *Env, args []string) error {
	fs := flag.NewFlagSet("price", flag.ContinueOnError)
	account := fs.String("account", "", "Price as this account type (regular or wholesale)")
	approved := fs.Bool("approved", false, "With --account wholesale: treat the account as approved")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: price [--account regular|wholesale] [--approved] <product-id>")
	}

	app := env.NewApp()
	if err := app.Bootstrap(context.Background()); err != nil {
		return fmt.Errorf("failed to load products: %w", err)
	}

	product, ok := app.Product(fs.Arg(0))
	if !ok {
		return fmt.Errorf("product not found: %s", fs.Arg(0))
	}

	var amount float64
	var tier pricing.TierLabel
	switch *account {
	case "":
		amount, tier = app.PriceFor(product)
	case models.AccountRegular, models.AccountWholesale:
		amount, tier = pricing.ResolvePrice(product, &models.Viewer{AccountType: *account, WholesaleApproved: *approved})
	default:
		return fmt.Errorf("invalid --account %q", *account)
	}

	env.printf("%s: %s", product.Name, pricing.FormatPrice(amount))
	if badge := tier.Badge(); badge != "" {
		env.printf(" (%s)", badge)
	}
	env.printf("\n")
	if len(product.Sizes) > 0 {
		env.printf("  Sizes: %s\n", strings.Join(product.Sizes, ", "))
	}
	return nil
}
