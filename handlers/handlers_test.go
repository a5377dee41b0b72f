// ABOUTME: Tests for storefront MCP tool, resource and prompt handlers
// ABOUTME: Uses an in-memory storefront and an in-memory submission history
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/flagshop/customizer"
	"github.com/harperreed/flagshop/db"
	"github.com/harperreed/flagshop/models"
)

type memShop struct {
	products []models.Product
	quotes   []models.Quote
	err      error
}

func (s *memShop) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.products, s.err
}

func (s *memShop) ListQuotes(ctx context.Context) ([]models.Quote, error) {
	return s.quotes, s.err
}

func newShop() *memShop {
	return &memShop{
		products: []models.Product{
			{ID: "flag", Name: "Feather Flag", Category: "Flags", Customizable: true, BasePrice: 129.99, WholesalePrice: 89.99},
			{ID: "banner", Name: "Vinyl Banner", Category: "Banners", Customizable: true, BasePrice: 89.99, WholesalePrice: 59.99},
			{ID: "pole", Name: "Flag Pole Kit", Category: "Flags", BasePrice: 49.5, WholesalePrice: 30},
		},
		quotes: []models.Quote{
			{ID: "q1", ProductName: "Vinyl Banner", Status: models.QuoteStatusPending, Quantity: 1},
			{ID: "q2", ProductName: "Feather Flag", Status: models.QuoteStatusApproved, Quantity: 1},
		},
	}
}

func setupHistory(t *testing.T) *db.History {
	t.Helper()
	database, err := db.OpenDatabase(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return db.NewHistory(database)
}

func TestListProductsGroupsByCategory(t *testing.T) {
	h := NewCatalogHandlers(newShop())

	_, out, err := h.ListProducts(context.Background(), nil, ListProductsInput{})
	require.NoError(t, err)
	require.Len(t, out.Products, 3)
	assert.Equal(t, []string{"flag", "pole", "banner"}, []string{out.Products[0].ID, out.Products[1].ID, out.Products[2].ID})
	assert.Equal(t, "$129.99", out.Products[0].BasePrice)

	_, out, err = h.ListProducts(context.Background(), nil, ListProductsInput{Category: "flags", CustomizableOnly: true})
	require.NoError(t, err)
	require.Len(t, out.Products, 1)
	assert.Equal(t, "flag", out.Products[0].ID)
}

func TestListProductsBackendError(t *testing.T) {
	h := NewCatalogHandlers(&memShop{err: errors.New("down")})

	_, _, err := h.ListProducts(context.Background(), nil, ListProductsInput{})
	assert.Error(t, err)
}

func TestResolvePrice(t *testing.T) {
	h := NewCatalogHandlers(newShop())

	tests := []struct {
		name     string
		input    ResolvePriceInput
		expected string
	}{
		{"anonymous", ResolvePriceInput{ProductID: "flag"}, "$129.99"},
		{"regular", ResolvePriceInput{ProductID: "flag", AccountType: models.AccountRegular}, "$129.99"},
		{"wholesale pending", ResolvePriceInput{ProductID: "flag", AccountType: models.AccountWholesale}, "$129.99"},
		{"wholesale approved", ResolvePriceInput{ProductID: "flag", AccountType: models.AccountWholesale, WholesaleApproved: true}, "$89.99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out, err := h.ResolvePrice(context.Background(), nil, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out.Formatted)
		})
	}
}

func TestResolvePriceErrors(t *testing.T) {
	h := NewCatalogHandlers(newShop())

	_, _, err := h.ResolvePrice(context.Background(), nil, ResolvePriceInput{})
	assert.Error(t, err)

	_, _, err = h.ResolvePrice(context.Background(), nil, ResolvePriceInput{ProductID: "nope"})
	assert.Error(t, err)

	_, _, err = h.ResolvePrice(context.Background(), nil, ResolvePriceInput{ProductID: "flag", AccountType: "vip"})
	assert.Error(t, err)
}

func TestBuildQuoteMessage(t *testing.T) {
	h := NewQuoteHandlers(newShop(), nil)

	_, out, err := h.BuildQuoteMessage(context.Background(), nil, BuildQuoteMessageInput{
		ProductID:    "banner",
		UserEmail:    "owner@example.com",
		BusinessName: "Ace Fireworks",
		PhoneNumber:  "555-1234",
	})
	require.NoError(t, err)
	assert.Equal(t, "Custom Vinyl Banner with business name: Ace Fireworks, phone: 555-1234", out.Payload.Message)
	assert.Equal(t, 1, out.Payload.Quantity)
	assert.Equal(t, "owner@example.com", out.Payload.UserEmail)
}

func TestBuildQuoteMessageIncomplete(t *testing.T) {
	h := NewQuoteHandlers(newShop(), nil)

	_, _, err := h.BuildQuoteMessage(context.Background(), nil, BuildQuoteMessageInput{
		ProductID:    "banner",
		BusinessName: "  ",
	})
	var incomplete *customizer.IncompleteDraftError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, []string{"viewer", "business_name"}, incomplete.Missing)
}

func TestListQuotesFiltersByStatus(t *testing.T) {
	h := NewQuoteHandlers(newShop(), nil)

	_, out, err := h.ListQuotes(context.Background(), nil, ListQuotesInput{})
	require.NoError(t, err)
	assert.Len(t, out.Quotes, 2)

	_, out, err = h.ListQuotes(context.Background(), nil, ListQuotesInput{Status: models.QuoteStatusApproved})
	require.NoError(t, err)
	require.Len(t, out.Quotes, 1)
	assert.Equal(t, "q2", out.Quotes[0].ID)
}

func TestListSubmissions(t *testing.T) {
	history := setupHistory(t)
	payload := models.QuotePayload{UserEmail: "owner@example.com", BusinessName: "Ace", ProductName: "Vinyl Banner", Quantity: 1}
	require.NoError(t, history.RecordSubmission(context.Background(), "remote-1", payload, "ok"))

	h := NewQuoteHandlers(newShop(), history)
	_, out, err := h.ListSubmissions(context.Background(), nil, ListSubmissionsInput{UserEmail: "owner@example.com"})
	require.NoError(t, err)
	require.Len(t, out.Submissions, 1)
	assert.Equal(t, "remote-1", out.Submissions[0].RemoteID)
	assert.Equal(t, "Vinyl Banner", out.Submissions[0].ProductName)

	_, _, err = NewQuoteHandlers(newShop(), nil).ListSubmissions(context.Background(), nil, ListSubmissionsInput{})
	assert.Error(t, err)
}

func TestReadProductsResource(t *testing.T) {
	h := NewResourceHandlers(newShop(), nil)

	result, err := h.ReadResource(context.Background(), &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: ProductsURI}})
	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)

	var products []models.Product
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &products))
	assert.Len(t, products, 3)
}

func TestReadResourceErrors(t *testing.T) {
	h := NewResourceHandlers(newShop(), nil)

	_, err := h.ReadResource(context.Background(), &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: "crm://contacts"}})
	assert.Error(t, err)

	_, err = h.ReadResource(context.Background(), &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: "flagshop://nothing"}})
	assert.Error(t, err)

	_, err = h.ReadResource(context.Background(), &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: HistoryURI}})
	assert.Error(t, err)
}

func TestRecommendProductsPrompt(t *testing.T) {
	h := NewPromptHandlers(newShop())

	result, err := h.GetPrompt(context.Background(), &mcp.GetPromptRequest{Params: &mcp.GetPromptParams{
		Name:      RecommendProductsPrompt,
		Arguments: map[string]string{"business_name": "Ace Fireworks"},
	}})
	require.NoError(t, err)
	require.Len(t, result.Messages, 1)

	text, ok := result.Messages[0].Content.(*mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "Ace Fireworks")
	assert.Contains(t, text.Text, "Feather Flag: $129.99 (customizable)")

	_, err = h.GetPrompt(context.Background(), &mcp.GetPromptRequest{Params: &mcp.GetPromptParams{Name: RecommendProductsPrompt}})
	assert.Error(t, err)
}
