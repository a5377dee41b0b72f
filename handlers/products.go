// ABOUTME: Catalog MCP tool handlers
// ABOUTME: Implements list_products and resolve_price tools
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/flagshop/models"
	"github.com/harperreed/flagshop/pricing"
)

// Storefront is the read side of the backend the tools query.
type Storefront interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	ListQuotes(ctx context.Context) ([]models.Quote, error)
}

type CatalogHandlers struct {
	shop Storefront
}

func NewCatalogHandlers(shop Storefront) *CatalogHandlers {
	return &CatalogHandlers{shop: shop}
}

type ListProductsInput struct {
	Category         string `json:"category,omitempty" jsonschema:"Only products in this category (case-insensitive)"`
	CustomizableOnly bool   `json:"customizable_only,omitempty" jsonschema:"Only products that accept a logo and business name"`
}

type ProductOutput struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	Description    string   `json:"description"`
	Sizes          []string `json:"sizes,omitempty"`
	Customizable   bool     `json:"customizable"`
	BasePrice      string   `json:"base_price"`
	WholesalePrice string   `json:"wholesale_price"`
}

type ListProductsOutput struct {
	Products []ProductOutput `json:"products"`
}

func (h *CatalogHandlers) ListProducts(ctx context.Context, _ *mcp.CallToolRequest, input ListProductsInput) (*mcp.CallToolResult, ListProductsOutput, error) {
	products, err := h.shop.ListProducts(ctx)
	if err != nil {
		return nil, ListProductsOutput{}, fmt.Errorf("failed to list products: %w", err)
	}

	result := []ProductOutput{}
	for _, group := range models.GroupByCategory(products) {
		if input.Category != "" && !strings.EqualFold(group.Category, input.Category) {
			continue
		}
		for _, p := range group.Products {
			if input.CustomizableOnly && !p.Customizable {
				continue
			}
			result = append(result, productToOutput(p))
		}
	}

	return nil, ListProductsOutput{Products: result}, nil
}

type ResolvePriceInput struct {
	ProductID         string `json:"product_id" jsonschema:"Product ID (required)"`
	AccountType       string `json:"account_type,omitempty" jsonschema:"Buyer account type: regular or wholesale (omit for an anonymous buyer)"`
	WholesaleApproved bool   `json:"wholesale_approved,omitempty" jsonschema:"Whether the wholesale account has been approved"`
}

type ResolvePriceOutput struct {
	ProductID string  `json:"product_id"`
	Amount    float64 `json:"amount"`
	Formatted string  `json:"formatted"`
	Tier      string  `json:"tier"`
	Badge     string  `json:"badge,omitempty"`
}

func (h *CatalogHandlers) ResolvePrice(ctx context.Context, _ *mcp.CallToolRequest, input ResolvePriceInput) (*mcp.CallToolResult, ResolvePriceOutput, error) {
	if input.ProductID == "" {
		return nil, ResolvePriceOutput{}, fmt.Errorf("product_id is required")
	}

	var viewer *models.Viewer
	switch input.AccountType {
	case "":
	case models.AccountRegular, models.AccountWholesale:
		viewer = &models.Viewer{AccountType: input.AccountType, WholesaleApproved: input.WholesaleApproved}
	default:
		return nil, ResolvePriceOutput{}, fmt.Errorf("invalid account_type %q", input.AccountType)
	}

	product, err := h.findProduct(ctx, input.ProductID)
	if err != nil {
		return nil, ResolvePriceOutput{}, err
	}

	amount, tier := pricing.ResolvePrice(product, viewer)
	return nil, ResolvePriceOutput{
		ProductID: product.ID,
		Amount:    amount,
		Formatted: pricing.FormatPrice(amount),
		Tier:      tier.String(),
		Badge:     tier.Badge(),
	}, nil
}

func (h *CatalogHandlers) findProduct(ctx context.Context, id string) (models.Product, error) {
	products, err := h.shop.ListProducts(ctx)
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to list products: %w", err)
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, fmt.Errorf("product not found: %s", id)
}

func productToOutput(p models.Product) ProductOutput {
	return ProductOutput{
		ID:             p.ID,
		Name:           p.Name,
		Category:       p.Category,
		Description:    p.Description,
		Sizes:          p.Sizes,
		Customizable:   p.Customizable,
		BasePrice:      pricing.FormatPrice(p.BasePrice),
		WholesalePrice: pricing.FormatPrice(p.WholesalePrice),
	}
}
