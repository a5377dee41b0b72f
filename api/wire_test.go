// ABOUTME: Client decoding against response bodies shaped like the FastAPI backend
// ABOUTME: Covers zone-less timestamps, extra upload fields, list-valued detail, timeouts and body caps
package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/flagshop/models"
)

const fastAPIQuotesBody = `{"quotes":[{
	"id":"9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d",
	"user_email":"owner@example.com",
	"business_name":"Ace Fireworks",
	"product_name":"Custom Feather Flag - Premium",
	"customization_data":{"business_name":"Ace Fireworks","phone_number":"555-1234","logo_url":null,"logo_position":{"x":50,"y":50}},
	"quantity":1,
	"message":null,
	"status":"pending",
	"created_at":"2024-05-01T10:00:00.123000"
}]}`

const fastAPICustomizationsBody = `{"customizations":[{
	"id":"c-1",
	"user_email":"owner@example.com",
	"product_id":"custom-banner-1",
	"business_name":"Ace Fireworks",
	"phone_number":"555-1234",
	"logo_url":"/uploads/abc.png",
	"logo_position":{"x":20,"y":80},
	"created_at":"2024-05-01T10:00:00",
	"updated_at":"2024-05-01T10:00:00"
}]}`

const fastAPIUploadBody = `{"filename":"3f2b.png","original_filename":"logo.png","file_url":"/uploads/3f2b.png","file_size":2048}`

const fastAPIValidationBody = `{"detail":[{"loc":["body","email"],"msg":"value is not a valid email address","type":"value_error.email"}]}`

func TestListQuotesZonelessTimestamp(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, fastAPIQuotesBody)
	})

	quotes, err := c.ListQuotes(context.Background())
	require.NoError(t, err)
	require.Len(t, quotes, 1)

	q := quotes[0]
	want := time.Date(2024, 5, 1, 10, 0, 0, 123000000, time.UTC)
	assert.True(t, want.Equal(q.CreatedAt.Time), "got %v", q.CreatedAt.Time)
	assert.Equal(t, time.UTC, q.CreatedAt.Location())
	assert.Equal(t, "", q.Message)
	require.NotNil(t, q.CustomizationData)
	assert.Nil(t, q.CustomizationData.LogoURL)
	assert.Equal(t, "555-1234", q.CustomizationData.PhoneNumber)
}

func TestListCustomizationsZonelessTimestamp(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/customizations", r.URL.Path)
		_, _ = io.WriteString(w, fastAPICustomizationsBody)
	})

	saved, err := c.ListCustomizations(context.Background())
	require.NoError(t, err)
	require.Len(t, saved, 1)
	require.NotNil(t, saved[0].CreatedAt)
	assert.True(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC).Equal(saved[0].CreatedAt.Time))
	require.NotNil(t, saved[0].LogoPosition)
	assert.Equal(t, models.NormalizedPosition{X: 20, Y: 80}, *saved[0].LogoPosition)
}

func TestUploadDecodesFullResponse(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, fastAPIUploadBody)
	})

	res, err := c.Upload(context.Background(), strings.NewReader("PNGDATA"), "logo.png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/3f2b.png", res.FileURL)
	assert.Equal(t, "3f2b.png", res.Filename)
	assert.Equal(t, "logo.png", res.OriginalFilename)
	assert.Equal(t, int64(2048), res.FileSize)
}

func TestRegisterValidationDetailList(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, fastAPIValidationBody)
	})

	_, err := c.Register(context.Background(), models.RegisterRequest{Email: "nope", Password: "pw", BusinessName: "Ace"})
	var authErr *AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, http.StatusUnprocessableEntity, authErr.StatusCode)
	assert.Contains(t, authErr.Detail, "value is not a valid email address")
	assert.Contains(t, authErr.Detail, `"loc":["body","email"]`)
}

func TestTimeoutIndependentOfOptionOrder(t *testing.T) {
	shared := &http.Client{}

	c := NewClient("http://localhost", nil, WithTimeout(2*time.Second), WithHTTPClient(shared))
	assert.Equal(t, 2*time.Second, c.httpClient.Timeout)

	c = NewClient("http://localhost", nil, WithHTTPClient(shared), WithTimeout(3*time.Second))
	assert.Equal(t, 3*time.Second, c.httpClient.Timeout)

	assert.Equal(t, time.Duration(0), shared.Timeout, "caller's client must not be modified")

	c = NewClient("http://localhost", nil, WithHTTPClient(shared))
	assert.Same(t, shared, c.httpClient)

	c = NewClient("http://localhost", nil)
	assert.Equal(t, DefaultTimeout, c.httpClient.Timeout)
}

func TestOversizedResponseRejected(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, strings.Repeat("a", int(MaxResponseBytes)+1))
	})

	_, err := c.ListProducts(context.Background())
	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Contains(t, netErr.Error(), "exceeds")
}
