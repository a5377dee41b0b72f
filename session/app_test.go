package session

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/flagshop/api"
	"github.com/harperreed/flagshop/customizer"
	"github.com/harperreed/flagshop/models"
	"github.com/harperreed/flagshop/pricing"
)

func newApp(t *testing.T, backend *fakeBackend, tokens *fakeTokens, opts ...Option) *App {
	t.Helper()
	if backend.products == nil {
		backend.products = catalog()
	}
	a := New(backend, tokens, opts...)
	require.NoError(t, a.LoadProducts(context.Background()))
	return a
}

func signedIn(t *testing.T, a *App) {
	t.Helper()
	require.NoError(t, a.Login(context.Background(), "owner@example.com", "pw"))
}

func TestBootstrapAnonymous(t *testing.T) {
	backend := &fakeBackend{products: catalog()}
	a := New(backend, &fakeTokens{})

	require.NoError(t, a.Bootstrap(context.Background()))
	assert.Nil(t, a.Viewer())
	assert.Equal(t, 0, backend.meCalls, "no token means no /me call")
	assert.Len(t, a.Products(), 2)
	assert.Equal(t, ViewHome, a.View())
}

func TestBootstrapRestoresViewer(t *testing.T) {
	backend := &fakeBackend{products: catalog(), viewer: &models.Viewer{Email: "w@x.y", AccountType: models.AccountWholesale, WholesaleApproved: true}}
	a := New(backend, &fakeTokens{token: "saved"})

	require.NoError(t, a.Bootstrap(context.Background()))
	require.NotNil(t, a.Viewer())
	assert.Equal(t, "w@x.y", a.Viewer().Email)
}

func TestBootstrapClearsRejectedToken(t *testing.T) {
	backend := &fakeBackend{products: catalog(), meErr: &api.AuthError{StatusCode: 401, Detail: "Invalid token"}}
	tokens := &fakeTokens{token: "expired"}
	a := New(backend, tokens)

	require.NoError(t, a.Bootstrap(context.Background()))
	assert.Nil(t, a.Viewer())
	assert.Equal(t, "", tokens.token)
	assert.Equal(t, 1, tokens.cleared)
	assert.Equal(t, "", a.Notice().Text, "token clearing is silent")
	assert.Len(t, a.Products(), 2, "catalog still loads")
}

func TestBootstrapNetworkFailureClearsToken(t *testing.T) {
	backend := &fakeBackend{products: catalog(), meErr: &api.NetworkError{Op: "current user", Err: errBoom}}
	tokens := &fakeTokens{token: "saved"}
	a := New(backend, tokens)

	require.NoError(t, a.Bootstrap(context.Background()))
	assert.Nil(t, a.Viewer())
	assert.Equal(t, "", tokens.token)
}

func TestLoginStoresTokenAndGoesHome(t *testing.T) {
	tokens := &fakeTokens{}
	a := newApp(t, &fakeBackend{}, tokens)
	require.NoError(t, a.Navigate(ViewLogin))

	signedIn(t, a)

	assert.Equal(t, "tok-owner@example.com", tokens.token)
	assert.Equal(t, ViewHome, a.View())
	assert.Equal(t, "owner@example.com", a.Viewer().Email)
}

func TestLoginFailureSurfacesDetail(t *testing.T) {
	tokens := &fakeTokens{}
	a := newApp(t, &fakeBackend{loginErr: &api.AuthError{StatusCode: 401, Detail: "Invalid email or password"}}, tokens)
	require.NoError(t, a.Navigate(ViewLogin))

	err := a.Login(context.Background(), "a@b.c", "bad")
	require.Error(t, err)
	assert.Equal(t, Notice{Text: "Invalid email or password", Error: true}, a.Notice())
	assert.Equal(t, ViewLogin, a.View())
	assert.Nil(t, a.Viewer())
	assert.Equal(t, "", tokens.token)
}

func TestLoginNetworkFailureMessage(t *testing.T) {
	a := newApp(t, &fakeBackend{loginErr: &api.NetworkError{Op: "login", Err: errBoom}}, &fakeTokens{})

	require.Error(t, a.Login(context.Background(), "a@b.c", "pw"))
	assert.Equal(t, "Network error", a.Notice().Text)
}

func TestRegisterWholesalePending(t *testing.T) {
	a := newApp(t, &fakeBackend{}, &fakeTokens{})

	err := a.Register(context.Background(), models.RegisterRequest{Email: "w@x.y", Password: "pw", BusinessName: "W", AccountType: models.AccountWholesale})
	require.NoError(t, err)

	_, tier := a.PriceFor(a.Products()[0])
	assert.Equal(t, pricing.TierWholesalePending, tier)
	assert.Contains(t, a.Notice().Text, "approved")
}

func TestLogout(t *testing.T) {
	tokens := &fakeTokens{}
	backend := &fakeBackend{quotes: []models.Quote{{ID: "q"}}}
	a := newApp(t, backend, tokens)
	signedIn(t, a)
	require.NoError(t, a.Navigate(ViewQuotes))
	require.NoError(t, a.LoadQuotes(context.Background()))

	require.NoError(t, a.Logout())
	assert.Nil(t, a.Viewer())
	assert.Empty(t, a.Quotes())
	assert.Equal(t, ViewHome, a.View())
	assert.Equal(t, "", tokens.token)
}

func TestLoadQuotesAnonymousIsNoop(t *testing.T) {
	backend := &fakeBackend{}
	a := newApp(t, backend, &fakeTokens{})

	require.NoError(t, a.LoadQuotes(context.Background()))
	assert.Equal(t, 0, backend.listQuotes)
}

func TestLoadProductsFailureKeepsList(t *testing.T) {
	backend := &fakeBackend{}
	a := newApp(t, backend, &fakeTokens{})

	backend.productErr = errBoom
	require.Error(t, a.LoadProducts(context.Background()))
	assert.Len(t, a.Products(), 2)
	assert.True(t, a.Notice().Error)
}

func TestPriceForScenarios(t *testing.T) {
	product := models.Product{BasePrice: 129.99, WholesalePrice: 99.99}
	a := newApp(t, &fakeBackend{}, &fakeTokens{})

	price, tier := a.PriceFor(product)
	assert.Equal(t, 129.99, price)
	assert.Equal(t, pricing.TierNone, tier)

	a.mu.Lock()
	a.viewer = &models.Viewer{AccountType: models.AccountWholesale, WholesaleApproved: true}
	a.mu.Unlock()

	price, tier = a.PriceFor(product)
	assert.Equal(t, 99.99, price)
	assert.Equal(t, pricing.TierWholesaleActive, tier)
}

func TestUploadLogoSuccessAndFailure(t *testing.T) {
	backend := &fakeBackend{uploadRef: "/uploads/one.png"}
	a := newApp(t, backend, &fakeTokens{})
	signedIn(t, a)
	require.NoError(t, a.Customize("banner"))

	ref, err := a.UploadLogo(context.Background(), strings.NewReader("png"), "logo.png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/one.png", ref)
	require.True(t, a.Draft().HasLogo())

	backend.uploadErr = &api.UploadError{FileName: "two.png", Detail: "File type not allowed. Please upload JPG, PNG, PDF, or AI files."}
	_, err = a.UploadLogo(context.Background(), strings.NewReader("x"), "two.png")
	require.Error(t, err)

	assert.Equal(t, "/uploads/one.png", *a.Draft().LogoURL, "failed upload keeps the previous logo")
	assert.True(t, a.Notice().Error)
}

func TestSubmitQuote(t *testing.T) {
	backend := &fakeBackend{}
	recorder := &fakeRecorder{}
	a := newApp(t, backend, &fakeTokens{}, WithRecorder(recorder))
	signedIn(t, a)
	require.NoError(t, a.Customize("banner"))

	a.SetBusinessName("Ace Fireworks")
	a.SetPhoneNumber("555-1234")
	a.UpdatePosition(models.NormalizedPosition{X: 10, Y: 90})
	require.True(t, a.CanSubmit())

	receipt, err := a.SubmitQuote(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "q-1", receipt.ID)

	p := backend.lastPayload
	assert.Equal(t, "owner@example.com", p.UserEmail)
	assert.Equal(t, "Vinyl Banner", p.ProductName)
	assert.Equal(t, 1, p.Quantity)
	assert.Equal(t, "Custom Vinyl Banner with business name: Ace Fireworks, phone: 555-1234", p.Message)
	assert.Equal(t, models.NormalizedPosition{X: 10, Y: 90}, p.CustomizationData.LogoPosition)
	assert.Nil(t, p.CustomizationData.LogoURL)

	assert.Equal(t, ViewQuotes, a.View())
	assert.Equal(t, []string{"q-1"}, recorder.remoteIDs)
	require.Len(t, a.Quotes(), 1)
	assert.Equal(t, models.QuoteStatusPending, a.Quotes()[0].Status)
	assert.False(t, a.Notice().Error)
}

func TestSubmitQuoteRequiresBusinessName(t *testing.T) {
	backend := &fakeBackend{}
	a := newApp(t, backend, &fakeTokens{})
	signedIn(t, a)
	require.NoError(t, a.Customize("banner"))
	a.SetBusinessName("   ")

	assert.False(t, a.CanSubmit())
	_, err := a.SubmitQuote(context.Background())

	var incomplete *customizer.IncompleteDraftError
	require.True(t, errors.As(err, &incomplete))
	assert.Equal(t, []string{"business_name"}, incomplete.Missing)
	assert.Equal(t, 0, backend.quoteCalls, "nothing is sent")
}

func TestSubmitQuoteAnonymous(t *testing.T) {
	a := newApp(t, &fakeBackend{}, &fakeTokens{})
	require.NoError(t, a.Customize("banner"))
	a.SetBusinessName("Ace")

	_, err := a.SubmitQuote(context.Background())
	var incomplete *customizer.IncompleteDraftError
	require.True(t, errors.As(err, &incomplete))
	assert.Contains(t, incomplete.Missing, "viewer")
}

func TestSubmitQuoteFailureKeepsDraft(t *testing.T) {
	backend := &fakeBackend{quoteErr: &api.APIError{Op: "create quote", StatusCode: 500, Detail: "db down"}}
	recorder := &fakeRecorder{}
	a := newApp(t, backend, &fakeTokens{}, WithRecorder(recorder))
	signedIn(t, a)
	require.NoError(t, a.Customize("banner"))
	a.SetBusinessName("Ace")

	_, err := a.SubmitQuote(context.Background())
	require.Error(t, err)
	assert.Equal(t, ViewCustomize, a.View())
	assert.Equal(t, "Ace", a.Draft().BusinessName)
	assert.Empty(t, recorder.remoteIDs)
	assert.Equal(t, Notice{Text: "db down", Error: true}, a.Notice())
}

func TestSubmitQuoteRecorderFailureIsNotFatal(t *testing.T) {
	a := newApp(t, &fakeBackend{}, &fakeTokens{}, WithRecorder(&fakeRecorder{err: errBoom}))
	signedIn(t, a)
	require.NoError(t, a.Customize("banner"))
	a.SetBusinessName("Ace")

	_, err := a.SubmitQuote(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ViewQuotes, a.View())
}

func TestSaveCustomization(t *testing.T) {
	backend := &fakeBackend{}
	a := newApp(t, backend, &fakeTokens{})

	_, err := a.SaveCustomization(context.Background())
	require.Error(t, err)

	signedIn(t, a)
	require.NoError(t, a.Customize("banner"))
	a.SetBusinessName("Ace")
	a.Nudge(5, -5)

	_, err = a.SaveCustomization(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "banner", backend.lastSaved.ProductID)
	require.NotNil(t, backend.lastSaved.LogoPosition)
	assert.Equal(t, models.NormalizedPosition{X: 55, Y: 45}, *backend.lastSaved.LogoPosition)
}

func TestMoveLogo(t *testing.T) {
	a := newApp(t, &fakeBackend{}, &fakeTokens{})
	require.NoError(t, a.Customize("banner"))

	require.NoError(t, a.MoveLogo(150, 75, customizer.Bounds{Left: 100, Top: 50, Width: 200, Height: 100}))
	assert.Equal(t, models.NormalizedPosition{X: 25, Y: 25}, a.Draft().LogoPosition)

	err := a.MoveLogo(1, 1, customizer.Bounds{})
	var surfaceErr *customizer.InvalidSurfaceError
	assert.True(t, errors.As(err, &surfaceErr))
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, "Network error", UserMessage(&api.NetworkError{Op: "x", Err: errBoom}))
	assert.Equal(t, "Email already registered", UserMessage(&api.AuthError{StatusCode: 400, Detail: "Email already registered"}))
}
