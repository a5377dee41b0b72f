package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harperreed/flagshop/models"
)

func TestResolvePrice(t *testing.T) {
	product := models.Product{Name: "Banner", BasePrice: 20.00, WholesalePrice: 15.00}

	tests := []struct {
		name       string
		viewer     *models.Viewer
		wantAmount float64
		wantTier   TierLabel
	}{
		{
			name:       "anonymous pays base",
			viewer:     nil,
			wantAmount: 20.00,
			wantTier:   TierNone,
		},
		{
			name:       "regular account pays base",
			viewer:     &models.Viewer{AccountType: models.AccountRegular, WholesaleApproved: true},
			wantAmount: 20.00,
			wantTier:   TierNone,
		},
		{
			name:       "approved wholesale pays wholesale",
			viewer:     &models.Viewer{AccountType: models.AccountWholesale, WholesaleApproved: true},
			wantAmount: 15.00,
			wantTier:   TierWholesaleActive,
		},
		{
			name:       "pending wholesale pays base",
			viewer:     &models.Viewer{AccountType: models.AccountWholesale, WholesaleApproved: false},
			wantAmount: 20.00,
			wantTier:   TierWholesalePending,
		},
		{
			name:       "unknown account type pays base",
			viewer:     &models.Viewer{AccountType: "partner", WholesaleApproved: true},
			wantAmount: 20.00,
			wantTier:   TierNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, tier := ResolvePrice(product, tt.viewer)
			assert.Equal(t, tt.wantAmount, amount)
			assert.Equal(t, tt.wantTier, tier)
		})
	}
}

func TestResolvePriceIsDeterministic(t *testing.T) {
	product := models.Product{BasePrice: 89.99, WholesalePrice: 69.99}
	viewer := &models.Viewer{AccountType: models.AccountWholesale, WholesaleApproved: true}

	a1, t1 := ResolvePrice(product, viewer)
	a2, t2 := ResolvePrice(product, viewer)
	assert.Equal(t, a1, a2)
	assert.Equal(t, t1, t2)
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$15.00", FormatPrice(15))
	assert.Equal(t, "$89.99", FormatPrice(89.99))
	assert.Equal(t, "$129.90", FormatPrice(129.9))
	assert.Equal(t, "$0.00", FormatPrice(0))
}

func TestTierBadgesAreDistinct(t *testing.T) {
	assert.Equal(t, "", TierNone.Badge())
	assert.NotEqual(t, TierWholesaleActive.Badge(), TierWholesalePending.Badge())
	assert.Equal(t, "WHOLESALE_PENDING", TierWholesalePending.String())
}
