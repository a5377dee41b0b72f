// ABOUTME: MCP prompt handlers for storefront workflows
// ABOUTME: Provides a product recommendation prompt built from the live catalog
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/flagshop/models"
	"github.com/harperreed/flagshop/pricing"
)

const RecommendProductsPrompt = "recommend-products"

type PromptHandlers struct {
	shop Storefront
}

func NewPromptHandlers(shop Storefront) *PromptHandlers {
	return &PromptHandlers{shop: shop}
}

// GetPrompt generates the prompt message based on the template
func (h *PromptHandlers) GetPrompt(ctx context.Context, request *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	switch request.Params.Name {
	case RecommendProductsPrompt:
		return h.recommendProducts(ctx, request.Params.Arguments)
	default:
		return nil, fmt.Errorf("unknown prompt: %s", request.Params.Name)
	}
}

func (h *PromptHandlers) recommendProducts(ctx context.Context, args map[string]string) (*mcp.GetPromptResult, error) {
	business, ok := args["business_name"]
	if !ok || business == "" {
		return nil, fmt.Errorf("business_name is required")
	}

	products, err := h.shop.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	var text strings.Builder
	text.WriteString(fmt.Sprintf("Recommend advertising products for %s, a fireworks business.\n", business))
	if goal := args["goal"]; goal != "" {
		text.WriteString(fmt.Sprintf("Their goal: %s\n", goal))
	}
	text.WriteString("\nAvailable products:\n")
	for _, group := range models.GroupByCategory(products) {
		text.WriteString(fmt.Sprintf("\n%s\n", group.Category))
		for _, p := range group.Products {
			custom := ""
			if p.Customizable {
				custom = " (customizable)"
			}
			text.WriteString(fmt.Sprintf("- %s: %s%s\n", p.Name, pricing.FormatPrice(p.BasePrice), custom))
		}
	}
	text.WriteString("\nSuggest two or three products and explain how the business name and logo should be placed on each.")

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Product recommendations for %s", business),
		Messages: []*mcp.PromptMessage{
			{
				Role: "user",
				Content: &mcp.TextContent{
					Text: text.String(),
				},
			},
		},
	}, nil
}
