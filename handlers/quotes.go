// ABOUTME: Quote MCP tool handlers
// ABOUTME: Implements build_quote_message, list_quotes and list_submissions tools
package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/flagshop/customizer"
	"github.com/harperreed/flagshop/db"
	"github.com/harperreed/flagshop/models"
)

type QuoteHandlers struct {
	catalog *CatalogHandlers
	history *db.History
}

// NewQuoteHandlers wires quote tools. history may be nil, in which case
// list_submissions reports an error.
func NewQuoteHandlers(shop Storefront, history *db.History) *QuoteHandlers {
	return &QuoteHandlers{catalog: NewCatalogHandlers(shop), history: history}
}

type BuildQuoteMessageInput struct {
	ProductID    string `json:"product_id" jsonschema:"Product ID (required)"`
	UserEmail    string `json:"user_email" jsonschema:"Email of the requesting account (required)"`
	BusinessName string `json:"business_name" jsonschema:"Business name printed on the product (required)"`
	PhoneNumber  string `json:"phone_number,omitempty" jsonschema:"Phone number printed on the product"`
}

type BuildQuoteMessageOutput struct {
	Payload models.QuotePayload `json:"payload"`
}

// BuildQuoteMessage assembles the quote payload the storefront would send,
// without sending it.
func (h *QuoteHandlers) BuildQuoteMessage(ctx context.Context, _ *mcp.CallToolRequest, input BuildQuoteMessageInput) (*mcp.CallToolResult, BuildQuoteMessageOutput, error) {
	if input.ProductID == "" {
		return nil, BuildQuoteMessageOutput{}, fmt.Errorf("product_id is required")
	}

	product, err := h.catalog.findProduct(ctx, input.ProductID)
	if err != nil {
		return nil, BuildQuoteMessageOutput{}, err
	}

	var viewer *models.Viewer
	if input.UserEmail != "" {
		viewer = &models.Viewer{Email: input.UserEmail}
	}

	draft := models.NewDraft().
		WithBusinessName(input.BusinessName).
		WithPhoneNumber(input.PhoneNumber)

	payload, err := customizer.BuildQuotePayload(viewer, &product, draft)
	if err != nil {
		return nil, BuildQuoteMessageOutput{}, err
	}
	return nil, BuildQuoteMessageOutput{Payload: payload}, nil
}

type ListQuotesInput struct {
	Status string `json:"status,omitempty" jsonschema:"Only quotes with this status (pending, approved, rejected)"`
}

type QuoteOutput struct {
	ID           string `json:"id"`
	ProductName  string `json:"product_name"`
	BusinessName string `json:"business_name"`
	Quantity     int    `json:"quantity"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at,omitempty"`
	Message      string `json:"message,omitempty"`
}

type ListQuotesOutput struct {
	Quotes []QuoteOutput `json:"quotes"`
}

// ListQuotes returns the signed-in account's quotes.
func (h *QuoteHandlers) ListQuotes(ctx context.Context, _ *mcp.CallToolRequest, input ListQuotesInput) (*mcp.CallToolResult, ListQuotesOutput, error) {
	quotes, err := h.catalog.shop.ListQuotes(ctx)
	if err != nil {
		return nil, ListQuotesOutput{}, fmt.Errorf("failed to list quotes: %w", err)
	}

	result := []QuoteOutput{}
	for _, q := range quotes {
		if input.Status != "" && q.Status != input.Status {
			continue
		}
		out := QuoteOutput{
			ID:           q.ID,
			ProductName:  q.ProductName,
			BusinessName: q.BusinessName,
			Quantity:     q.Quantity,
			Status:       q.Status,
			Message:      q.Message,
		}
		if !q.CreatedAt.IsZero() {
			out.CreatedAt = q.CreatedAt.Format(time.RFC3339)
		}
		result = append(result, out)
	}

	return nil, ListQuotesOutput{Quotes: result}, nil
}

type ListSubmissionsInput struct {
	UserEmail string `json:"user_email,omitempty" jsonschema:"Only submissions made by this account"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 20)"`
}

type SubmissionOutput struct {
	ID           string `json:"id"`
	RemoteID     string `json:"remote_id"`
	ProductName  string `json:"product_name"`
	BusinessName string `json:"business_name"`
	UserEmail    string `json:"user_email"`
	SubmittedAt  string `json:"submitted_at"`
}

type ListSubmissionsOutput struct {
	Submissions []SubmissionOutput `json:"submissions"`
}

// ListSubmissions reads the local submission history.
func (h *QuoteHandlers) ListSubmissions(_ context.Context, _ *mcp.CallToolRequest, input ListSubmissionsInput) (*mcp.CallToolResult, ListSubmissionsOutput, error) {
	if h.history == nil {
		return nil, ListSubmissionsOutput{}, fmt.Errorf("submission history is not available")
	}

	limit := input.Limit
	if limit == 0 {
		limit = 20
	}

	subs, err := h.history.List(input.UserEmail, limit)
	if err != nil {
		return nil, ListSubmissionsOutput{}, fmt.Errorf("failed to list submissions: %w", err)
	}

	result := make([]SubmissionOutput, len(subs))
	for i, s := range subs {
		result[i] = SubmissionOutput{
			ID:           s.ID,
			RemoteID:     s.RemoteID,
			ProductName:  s.Payload.ProductName,
			BusinessName: s.Payload.BusinessName,
			UserEmail:    s.Payload.UserEmail,
			SubmittedAt:  s.SubmittedAt.Format(time.RFC3339),
		}
	}
	return nil, ListSubmissionsOutput{Submissions: result}, nil
}
