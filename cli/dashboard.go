package cli

import (
	"flag"
	"fmt"

	"github.com/harperreed/flagshop/web"
)

// DashboardCommand serves the local submission history as a web page.
func DashboardCommand(env *Env, args []string) error {
	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	port := fs.Int("port", 8080, "Port to listen on")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if env.historyDB == nil {
		return fmt.Errorf("submission history is not available")
	}

	server, err := web.NewServer(env.historyDB)
	if err != nil {
		return err
	}
	return server.Start(*port)
}
