// ABOUTME: MCP server subcommand
// ABOUTME: Exposes catalog, pricing and quote tools over stdio
package cli

import (
	"context"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/flagshop/config"
	"github.com/harperreed/flagshop/handlers"
)

const mcpVersion = "0.1.0"

// NewMCPServer registers every storefront tool, resource and prompt.
func NewMCPServer(env *Env) *mcp.Server {
	catalogHandlers := handlers.NewCatalogHandlers(env.Client)
	quoteHandlers := handlers.NewQuoteHandlers(env.Client, env.History)
	resourceHandlers := handlers.NewResourceHandlers(env.Client, env.History)
	promptHandlers := handlers.NewPromptHandlers(env.Client)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    config.AppName,
		Version: mcpVersion,
	}, nil)

	// Register tools
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_products",
		Description: "List catalog products grouped by category, optionally filtered by category or customizability",
	}, catalogHandlers.ListProducts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "resolve_price",
		Description: "Resolve the price of a product for an anonymous, regular or wholesale buyer",
	}, catalogHandlers.ResolvePrice)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "build_quote_message",
		Description: "Assemble the quote request payload for a product and business name without submitting it",
	}, quoteHandlers.BuildQuoteMessage)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_quotes",
		Description: "List quote requests of the signed-in account, optionally filtered by status",
	}, quoteHandlers.ListQuotes)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_submissions",
		Description: "List quote submissions recorded on this machine",
	}, quoteHandlers.ListSubmissions)

	// Register resources
	server.AddResource(&mcp.Resource{
		URI:         handlers.ProductsURI,
		Name:        "products",
		Description: "The full product catalog",
		MIMEType:    "application/json",
	}, resourceHandlers.ReadResource)

	server.AddResource(&mcp.Resource{
		URI:         handlers.HistoryURI,
		Name:        "history",
		Description: "Recent local quote submissions",
		MIMEType:    "application/json",
	}, resourceHandlers.ReadResource)

	// Register prompts
	server.AddPrompt(&mcp.Prompt{
		Name:        handlers.RecommendProductsPrompt,
		Description: "Recommend catalog products for a fireworks business",
		Arguments: []*mcp.PromptArgument{
			{Name: "business_name", Description: "Business to recommend for", Required: true},
			{Name: "goal", Description: "What the business wants to achieve"},
		},
	}, promptHandlers.GetPrompt)

	return server
}

// MCPCommand starts the MCP server on stdio
func MCPCommand(env *Env) error {
	log.Println("Starting flagshop MCP server...")

	server := NewMCPServer(env)
	ctx := context.Background()
	return server.Run(ctx, &mcp.StdioTransport{})
}
