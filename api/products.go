package api

import (
	"context"
	"net/url"

	"github.com/harperreed/flagshop/models"
)

type productsResponse struct {
	Products []models.Product `json:"products"`
}

// ListProducts fetches the catalog.
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var out productsResponse
	if err := c.getJSON(ctx, "list products", "/api/products", false, &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}

// GetProduct fetches a single product by id.
func (c *Client) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var out models.Product
	if err := c.getJSON(ctx, "get product", "/api/products/"+url.PathEscape(id), false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
