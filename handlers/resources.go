// ABOUTME: MCP resource handlers for exposing storefront data
// ABOUTME: Serves the catalog and local submission history as JSON via flagshop:// URIs
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/flagshop/db"
)

const (
	ProductsURI = "flagshop://products"
	HistoryURI  = "flagshop://history"
)

type ResourceHandlers struct {
	shop    Storefront
	history *db.History
}

func NewResourceHandlers(shop Storefront, history *db.History) *ResourceHandlers {
	return &ResourceHandlers{shop: shop, history: history}
}

// ReadResource handles resource read requests
func (h *ResourceHandlers) ReadResource(ctx context.Context, request *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := request.Params.URI
	if !strings.HasPrefix(uri, "flagshop://") {
		return nil, fmt.Errorf("invalid URI scheme: expected flagshop://")
	}

	switch uri {
	case ProductsURI:
		products, err := h.shop.ListProducts(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch products: %w", err)
		}
		return jsonResource(uri, products)

	case HistoryURI:
		if h.history == nil {
			return nil, fmt.Errorf("submission history is not available")
		}
		subs, err := h.history.List("", 100)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch submissions: %w", err)
		}
		return jsonResource(uri, subs)

	default:
		return nil, fmt.Errorf("unknown resource: %s", strings.TrimPrefix(uri, "flagshop://"))
	}
}

func jsonResource(uri string, v interface{}) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}}, nil
}
