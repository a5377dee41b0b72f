// ABOUTME: Tests for storefront data models
// ABOUTME: Validates draft reducers, position clamping and JSON field names
package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDraftDefaults(t *testing.T) {
	d := NewDraft()

	assert.Equal(t, "", d.BusinessName)
	assert.Equal(t, "", d.PhoneNumber)
	assert.Nil(t, d.LogoURL)
	assert.Equal(t, NormalizedPosition{X: 50, Y: 50}, d.LogoPosition)
	assert.False(t, d.HasLogo())
}

func TestDraftReducersReturnNewValues(t *testing.T) {
	original := NewDraft()

	updated := original.
		WithBusinessName("Ace Fireworks").
		WithPhoneNumber("555-1234").
		WithLogo("/uploads/logo.png").
		WithPosition(NormalizedPosition{X: 10, Y: 90})

	assert.Equal(t, "", original.BusinessName, "original draft must not change")
	assert.Nil(t, original.LogoURL)

	assert.Equal(t, "Ace Fireworks", updated.BusinessName)
	assert.Equal(t, "555-1234", updated.PhoneNumber)
	require.NotNil(t, updated.LogoURL)
	assert.Equal(t, "/uploads/logo.png", *updated.LogoURL)
	assert.Equal(t, NormalizedPosition{X: 10, Y: 90}, updated.LogoPosition)
}

func TestWithPositionClamps(t *testing.T) {
	d := NewDraft().WithPosition(NormalizedPosition{X: -20, Y: 250})
	assert.Equal(t, NormalizedPosition{X: 0, Y: 100}, d.LogoPosition)

	d = NewDraft().WithPosition(NormalizedPosition{X: math.NaN(), Y: 42})
	assert.Equal(t, NormalizedPosition{X: 0, Y: 42}, d.LogoPosition)
}

func TestSnapshotIsIndependent(t *testing.T) {
	d := NewDraft().WithLogo("/uploads/a.png")
	snap := d.Snapshot()

	*d.LogoURL = "/uploads/changed.png"
	assert.Equal(t, "/uploads/a.png", *snap.LogoURL)
}

func TestViewerIsWholesale(t *testing.T) {
	var anon *Viewer
	assert.False(t, anon.IsWholesale())
	assert.False(t, (&Viewer{AccountType: AccountRegular}).IsWholesale())
	assert.True(t, (&Viewer{AccountType: AccountWholesale}).IsWholesale())
}

func TestQuotePayloadJSONFieldNames(t *testing.T) {
	payload := QuotePayload{
		UserEmail:         "owner@example.com",
		BusinessName:      "Ace Fireworks",
		ProductName:       "Banner",
		CustomizationData: NewDraft().WithBusinessName("Ace Fireworks"),
		Quantity:          1,
		Message:           "hello",
	}

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))

	for _, key := range []string{"user_email", "business_name", "product_name", "customization_data", "quantity", "message"} {
		assert.Contains(t, raw, key)
	}

	custom := raw["customization_data"].(map[string]interface{})
	assert.Contains(t, custom, "logo_url")
	assert.Nil(t, custom["logo_url"], "logo_url must serialize as null until an upload succeeds")
	assert.Equal(t, map[string]interface{}{"x": 50.0, "y": 50.0}, custom["logo_position"])
}
