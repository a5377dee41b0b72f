// ABOUTME: Entry point for the flagshop storefront CLI
// ABOUTME: Routes to the TUI, account/quote commands, the dev backend or the MCP server
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/harperreed/flagshop/cli"
	"github.com/harperreed/flagshop/config"
)

const version = "0.1.0"

func main() {
	// Global flags
	showVersion := flag.Bool("version", false, "Show version and exit")
	envFile := flag.String("env-file", ".env", "Environment file to load before reading the environment")
	apiURL := flag.String("api-url", "", "Backend base URL (default: $FLAGSHOP_API_URL or http://localhost:8001)")
	dbPath := flag.String("db-path", "", "Submission history database path (default: ~/.local/share/flagshop/history.db)")

	// Parse global flags but don't fail on unknown (for subcommands)
	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("flagshop version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *apiURL != "" {
		cfg.APIURL = *apiURL
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	command := args[0]
	commandArgs := args[1:]

	// The shop draws on the terminal, so it logs to a file.
	logFile := cfg.LogFile
	if command == "shop" {
		logFile = cfg.TUILogFile()
	}
	logger, err := config.NewLogger(cfg, logFile)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if command == "serve" {
		if err := cli.ServeCommand(cfg, logger, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}
		return
	}

	commands := map[string]func(*cli.Env, []string) error{
		"shop":      cli.ShopCommand,
		"products":  cli.ProductsCommand,
		"price":     cli.PriceCommand,
		"login":     cli.LoginCommand,
		"register":  cli.RegisterCommand,
		"logout":    cli.LogoutCommand,
		"whoami":    cli.WhoamiCommand,
		"quotes":    cli.QuotesCommand,
		"quote":     cli.QuoteCommand,
		"saved":     cli.SavedCommand,
		"upload":    cli.UploadCommand,
		"history":   cli.HistoryCommand,
		"preview":   cli.PreviewCommand,
		"dashboard": cli.DashboardCommand,
		"mcp": func(env *cli.Env, _ []string) error {
			return cli.MCPCommand(env)
		},
	}

	run, ok := commands[command]
	if !ok {
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}

	env, err := cli.OpenEnv(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}

	logger.Debug("running command", zap.String("command", command), zap.String("api_url", cfg.APIURL))
	if err := run(env, commandArgs); err != nil {
		_ = env.Close()
		log.Fatalf("Error: %v", err)
	}
	_ = env.Close()
}

func printUsage() {
	fmt.Printf(`flagshop v%s - Custom flags, banners and signs for fireworks businesses

USAGE:
  flagshop [global flags] <command> [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --env-file <path>      Environment file (default: .env)
  --api-url <url>        Backend base URL (default: $FLAGSHOP_API_URL or http://localhost:8001)
  --db-path <path>       Submission history database (default: ~/.local/share/flagshop/history.db)

COMMANDS:
  shop                   Interactive storefront (catalog, customizer, quotes)
  products               List the catalog with your prices
    --category <name>      Only show one category
    --customizable         Only show customizable products

  price <product-id>     Show the price you pay for a product
    --account <type>       Price as regular or wholesale instead of your account
    --approved             Treat the wholesale account as approved

  login                  Sign in
    --email <email>        Account email (required)
    --password <pw>        Password (prompted when omitted)

  register               Create an account and sign in
    --email <email>        Account email (required)
    --password <pw>        Password (prompted when omitted)
    --business <name>      Business name (required)
    --phone <phone>        Phone number
    --wholesale            Request wholesale pricing (needs approval)

  logout                 Forget the stored token
  whoami                 Show the signed-in account

  quote                  Customize a product and request a quote
    --product <id>         Product ID (required)
    --business <name>      Business name on the product (required)
    --phone <phone>        Phone number on the product
    --logo <file>          Logo to upload (.jpg .jpeg .png .pdf .ai)
    --x <pct> --y <pct>    Logo position in percent (default: 50 50)
    --save-only            Save the customization without requesting a quote

  quotes                 List your quote requests
  saved                  List your saved customizations
  upload <file>          Upload a logo and print its URL
  history                List quote submissions recorded on this machine
    --email <email>        Only one account
    --limit <n>            Max results (default: 50)

  preview                Render a mockup of a customized product
    --product <id> | --base <image>
    --logo <image>         Logo path, URL or /uploads/ reference (required)
    --x <pct> --y <pct>    Logo position in percent
    --scale <f>            Logo size relative to the base (default: 0.25)
    --output <file>        Output image (default: preview.png)

  serve                  Run the development backend
    --port <port>          Port (default: $PORT or 8001)
    --db <path>            Backend database
    --uploads <dir>        Upload directory
    --approve <email>      Approve a wholesale account and exit

  dashboard              Web page of local quote submissions
    --port <port>          Port (default: 8080)

  mcp                    Start MCP server on stdio

EXAMPLES:
  # Start the backend and open the shop
  flagshop serve &
  flagshop shop

  # Request a quote for a banner with your logo in the top left
  flagshop quote --product custom-banner-1 --business "Ace Fireworks" --logo logo.png --x 20 --y 20

`, version)
}
