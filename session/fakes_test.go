package session

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/harperreed/flagshop/models"
)

type fakeTokens struct {
	mu      sync.Mutex
	token   string
	cleared int
}

func (f *fakeTokens) Token() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token, nil
}

func (f *fakeTokens) SetToken(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
	return nil
}

func (f *fakeTokens) ClearToken() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = ""
	f.cleared++
	return nil
}

type fakeBackend struct {
	viewer     *models.Viewer
	meErr      error
	loginErr   error
	products   []models.Product
	productErr error
	quotes     []models.Quote
	quotesErr  error
	quoteErr   error
	uploadRef  string
	uploadErr  error

	meCalls     int
	quoteCalls  int
	listQuotes  int
	lastPayload models.QuotePayload
	lastSaved   models.SavedCustomization
}

func (f *fakeBackend) CurrentUser(ctx context.Context) (*models.Viewer, error) {
	f.meCalls++
	if f.meErr != nil {
		return nil, f.meErr
	}
	v := *f.viewer
	return &v, nil
}

func (f *fakeBackend) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &models.AuthResponse{AccessToken: "tok-" + email, User: models.Viewer{Email: email, AccountType: models.AccountRegular}}, nil
}

func (f *fakeBackend) Register(ctx context.Context, in models.RegisterRequest) (*models.AuthResponse, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &models.AuthResponse{
		AccessToken: "tok-" + in.Email,
		User: models.Viewer{
			Email:             in.Email,
			BusinessName:      in.BusinessName,
			AccountType:       in.AccountType,
			WholesaleApproved: in.AccountType != models.AccountWholesale,
		},
	}, nil
}

func (f *fakeBackend) ListProducts(ctx context.Context) ([]models.Product, error) {
	if f.productErr != nil {
		return nil, f.productErr
	}
	return f.products, nil
}

func (f *fakeBackend) ListQuotes(ctx context.Context) ([]models.Quote, error) {
	f.listQuotes++
	if f.quotesErr != nil {
		return nil, f.quotesErr
	}
	return f.quotes, nil
}

func (f *fakeBackend) CreateQuote(ctx context.Context, payload models.QuotePayload) (*models.QuoteReceipt, error) {
	f.quoteCalls++
	f.lastPayload = payload
	if f.quoteErr != nil {
		return nil, f.quoteErr
	}
	f.quotes = append(f.quotes, models.Quote{ID: "q-1", ProductName: payload.ProductName, Status: models.QuoteStatusPending, Quantity: payload.Quantity})
	return &models.QuoteReceipt{ID: "q-1", Message: "Quote request submitted successfully. We'll contact you within 24 hours."}, nil
}

func (f *fakeBackend) SaveCustomization(ctx context.Context, in models.SavedCustomization) (*models.QuoteReceipt, error) {
	f.lastSaved = in
	return &models.QuoteReceipt{ID: "c-1", Message: "Customization saved successfully"}, nil
}

func (f *fakeBackend) UploadLogo(ctx context.Context, r io.Reader, fileName string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	_, _ = io.ReadAll(r)
	return f.uploadRef, nil
}

type fakeRecorder struct {
	remoteIDs []string
	payloads  []models.QuotePayload
	err       error
}

func (f *fakeRecorder) RecordSubmission(ctx context.Context, remoteID string, payload models.QuotePayload, reply string) error {
	if f.err != nil {
		return f.err
	}
	f.remoteIDs = append(f.remoteIDs, remoteID)
	f.payloads = append(f.payloads, payload)
	return nil
}

var errBoom = errors.New("boom")

func catalog() []models.Product {
	return []models.Product{
		{ID: "banner", Name: "Vinyl Banner", Category: "Custom Banners", Customizable: true, BasePrice: 129.99, WholesalePrice: 99.99},
		{ID: "sign", Name: "No Smoking Sign", Category: "No Smoking Signs", Customizable: false, BasePrice: 24.99, WholesalePrice: 18.99},
	}
}
