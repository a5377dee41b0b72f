// ABOUTME: Price resolution for catalog products based on the viewer's account tier
// ABOUTME: Pure functions: wholesale pricing only applies to approved wholesale accounts
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/harperreed/flagshop/models"
)

// TierLabel classifies which price bracket applies to a viewer/product pair.
type TierLabel int

const (
	TierNone TierLabel = iota
	TierWholesaleActive
	TierWholesalePending
)

func (t TierLabel) String() string {
	switch t {
	case TierWholesaleActive:
		return "WHOLESALE_ACTIVE"
	case TierWholesalePending:
		return "WHOLESALE_PENDING"
	default:
		return "NONE"
	}
}

// Badge is the human-facing text shown next to a price. Active and pending
// wholesale must read differently.
func (t TierLabel) Badge() string {
	switch t {
	case TierWholesaleActive:
		return "Wholesale Price"
	case TierWholesalePending:
		return "Wholesale Pending Approval"
	default:
		return ""
	}
}

// ResolvePrice returns the amount to display and the tier that produced it.
func ResolvePrice(product models.Product, viewer *models.Viewer) (float64, TierLabel) {
	if viewer.IsWholesale() {
		if viewer.WholesaleApproved {
			return product.WholesalePrice, TierWholesaleActive
		}
		return product.BasePrice, TierWholesalePending
	}
	return product.BasePrice, TierNone
}

// FormatPrice renders an amount with exactly two decimals, e.g. "$15.00".
func FormatPrice(amount float64) string {
	return "$" + decimal.NewFromFloat(amount).StringFixed(2)
}
