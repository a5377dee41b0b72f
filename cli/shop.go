// ABOUTME: Interactive storefront subcommand
// ABOUTME: Runs the bubbletea UI over a fresh session
package cli

import (
	"context"

	"github.com/harperreed/flagshop/tui"
)

// ShopCommand starts the terminal storefront. env.Logger must not write to
// the terminal.
func ShopCommand(env *Env, args []string) error {
	return tui.Run(context.Background(), env.NewApp(), env.Logger)
}
