// ABOUTME: Single application state container shared by the TUI and CLI
// ABOUTME: Holds viewer, catalog, quotes, the customization draft, current view and status line
package session

import (
	"context"
	"errors"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/harperreed/flagshop/api"
	"github.com/harperreed/flagshop/customizer"
	"github.com/harperreed/flagshop/models"
	"github.com/harperreed/flagshop/pricing"
)

// Backend is the remote storefront. *api.Client implements it.
type Backend interface {
	CurrentUser(ctx context.Context) (*models.Viewer, error)
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Register(ctx context.Context, in models.RegisterRequest) (*models.AuthResponse, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	ListQuotes(ctx context.Context) ([]models.Quote, error)
	CreateQuote(ctx context.Context, payload models.QuotePayload) (*models.QuoteReceipt, error)
	SaveCustomization(ctx context.Context, in models.SavedCustomization) (*models.QuoteReceipt, error)
	UploadLogo(ctx context.Context, r io.Reader, fileName string) (string, error)
}

// TokenStore is the persistent access-token cell.
type TokenStore interface {
	Token() (string, error)
	SetToken(token string) error
	ClearToken() error
}

// Recorder keeps a local copy of accepted quote submissions.
type Recorder interface {
	RecordSubmission(ctx context.Context, remoteID string, payload models.QuotePayload, reply string) error
}

// Notice is the status line shown to the user.
type Notice struct {
	Text  string
	Error bool
}

type App struct {
	mu sync.RWMutex

	backend  Backend
	tokens   TokenStore
	recorder Recorder
	logger   *zap.Logger

	viewer   *models.Viewer
	products []models.Product
	quotes   []models.Quote
	custom   *customizer.State
	view     View
	notice   Notice
}

type Option func(*App)

func WithRecorder(r Recorder) Option {
	return func(a *App) { a.recorder = r }
}

func WithLogger(logger *zap.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New returns an anonymous app on the home view.
func New(backend Backend, tokens TokenStore, opts ...Option) *App {
	a := &App{
		backend: backend,
		tokens:  tokens,
		logger:  zap.NewNop(),
		custom:  customizer.NewState(),
		view:    ViewHome,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *App) View() View {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.view
}

// Viewer returns a copy of the signed-in viewer, or nil when anonymous.
func (a *App) Viewer() *models.Viewer {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.viewer == nil {
		return nil
	}
	v := *a.viewer
	return &v
}

func (a *App) Products() []models.Product {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]models.Product(nil), a.products...)
}

func (a *App) Product(id string) (models.Product, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.findProduct(id)
}

func (a *App) findProduct(id string) (models.Product, bool) {
	for _, p := range a.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

func (a *App) Quotes() []models.Quote {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]models.Quote(nil), a.quotes...)
}

// SelectedProduct is the product being customized, or nil.
func (a *App) SelectedProduct() *models.Product {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.custom.Product()
}

func (a *App) Draft() models.CustomizationDraft {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.custom.Draft()
}

// CanSubmit reports whether the quote action should be enabled.
func (a *App) CanSubmit() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.viewer != nil && a.custom.CanSubmit()
}

func (a *App) Notice() Notice {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.notice
}

// Notify replaces the status line.
func (a *App) Notify(text string, isErr bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.notice = Notice{Text: text, Error: isErr}
}

func (a *App) ClearNotice() {
	a.Notify("", false)
}

func (a *App) fail(err error) error {
	a.Notify(UserMessage(err), true)
	return err
}

// PriceFor resolves the price the current viewer pays for product.
func (a *App) PriceFor(product models.Product) (float64, pricing.TierLabel) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return pricing.ResolvePrice(product, a.viewer)
}

func (a *App) SetBusinessName(text string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.custom.SetBusinessName(text)
}

func (a *App) SetPhoneNumber(text string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.custom.SetPhoneNumber(text)
}

func (a *App) UpdatePosition(pos models.NormalizedPosition) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.custom.UpdatePosition(pos)
}

func (a *App) Nudge(dx, dy float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.custom.Nudge(dx, dy)
}

// MoveLogo maps a pointer position on surface to the logo position.
func (a *App) MoveLogo(pointerX, pointerY float64, surface customizer.Bounds) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.custom.MoveTo(pointerX, pointerY, surface)
}

// UserMessage turns an error into the text shown on the status line.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var netErr *api.NetworkError
	if errors.As(err, &netErr) {
		return "Network error"
	}
	return err.Error()
}
