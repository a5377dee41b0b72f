// ABOUTME: Quote and saved-customization endpoints
// ABOUTME: Creating a quote returns a receipt; the quote itself starts as pending
package api

import (
	"context"

	"github.com/harperreed/flagshop/models"
)

type quotesResponse struct {
	Quotes []models.Quote `json:"quotes"`
}

type customizationsResponse struct {
	Customizations []models.SavedCustomization `json:"customizations"`
}

// ListQuotes returns the viewer's quote requests.
func (c *Client) ListQuotes(ctx context.Context) ([]models.Quote, error) {
	var out quotesResponse
	if err := c.getJSON(ctx, "list quotes", "/api/quotes", true, &out); err != nil {
		return nil, err
	}
	return out.Quotes, nil
}

// CreateQuote submits a quote request.
func (c *Client) CreateQuote(ctx context.Context, payload models.QuotePayload) (*models.QuoteReceipt, error) {
	var out models.QuoteReceipt
	if err := c.postJSON(ctx, "create quote", "/api/quotes", true, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveCustomization stores a draft server side without requesting a quote.
func (c *Client) SaveCustomization(ctx context.Context, in models.SavedCustomization) (*models.QuoteReceipt, error) {
	var out models.QuoteReceipt
	if err := c.postJSON(ctx, "save customization", "/api/customizations", true, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCustomizations returns the viewer's saved customizations.
func (c *Client) ListCustomizations(ctx context.Context) ([]models.SavedCustomization, error) {
	var out customizationsResponse
	if err := c.getJSON(ctx, "list customizations", "/api/customizations", true, &out); err != nil {
		return nil, err
	}
	return out.Customizations, nil
}
