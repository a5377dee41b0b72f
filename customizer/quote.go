// ABOUTME: Assembles outbound quote request payloads from a draft
// ABOUTME: The message template is parsed downstream and must not change wording
package customizer

import (
	"fmt"
	"strings"

	"github.com/harperreed/flagshop/models"
)

// DefaultQuantity is used for every assembled quote; there is no selector.
const DefaultQuantity = 1

// QuoteMessage renders the fixed human-readable summary of a customization.
func QuoteMessage(productName string, draft models.CustomizationDraft) string {
	return fmt.Sprintf("Custom %s with business name: %s, phone: %s",
		productName, draft.BusinessName, draft.PhoneNumber)
}

// BuildQuotePayload assembles the body for POST /api/quotes.
func BuildQuotePayload(viewer *models.Viewer, product *models.Product, draft models.CustomizationDraft) (models.QuotePayload, error) {
	var missing []string
	if viewer == nil {
		missing = append(missing, "viewer")
	}
	if product == nil {
		missing = append(missing, "product")
	}
	if isBlank(draft.BusinessName) {
		missing = append(missing, "business_name")
	}
	if len(missing) > 0 {
		return models.QuotePayload{}, &IncompleteDraftError{Missing: missing}
	}

	return models.QuotePayload{
		UserEmail:         viewer.Email,
		BusinessName:      draft.BusinessName,
		ProductName:       product.Name,
		CustomizationData: draft.Snapshot(),
		Quantity:          DefaultQuantity,
		Message:           QuoteMessage(product.Name, draft),
	}, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
