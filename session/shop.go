// ABOUTME: Catalog, quotes, logo upload and quote submission operations
// ABOUTME: Network calls run without holding the state lock; results are applied afterwards
package session

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/harperreed/flagshop/customizer"
	"github.com/harperreed/flagshop/models"
)

// QuoteSubmittedMessage is shown when the backend does not send its own.
const QuoteSubmittedMessage = "Quote request submitted successfully! We'll contact you within 24 hours."

// LoadProducts replaces the catalog. On failure the previous list is kept.
func (a *App) LoadProducts(ctx context.Context) error {
	products, err := a.backend.ListProducts(ctx)
	if err != nil {
		a.logger.Warn("failed to load products", zap.Error(err))
		return a.fail(fmt.Errorf("failed to load products: %w", err))
	}

	a.mu.Lock()
	a.products = products
	a.mu.Unlock()
	return nil
}

// LoadQuotes refreshes the viewer's quotes. Anonymous viewers have none and
// nothing is fetched.
func (a *App) LoadQuotes(ctx context.Context) error {
	if a.Viewer() == nil {
		return nil
	}

	quotes, err := a.backend.ListQuotes(ctx)
	if err != nil {
		a.logger.Warn("failed to load quotes", zap.Error(err))
		return a.fail(fmt.Errorf("failed to load quotes: %w", err))
	}

	a.mu.Lock()
	a.quotes = quotes
	a.mu.Unlock()
	return nil
}

// UploadLogo sends a logo and attaches it to the draft. A failed upload
// leaves the previous logo in place.
func (a *App) UploadLogo(ctx context.Context, r io.Reader, fileName string) (string, error) {
	ref, err := a.backend.UploadLogo(ctx, r, fileName)
	if err != nil {
		a.logger.Warn("logo upload failed", zap.String("file", fileName), zap.Error(err))
		return "", a.fail(err)
	}

	a.mu.Lock()
	a.custom.SetLogo(ref)
	a.notice = Notice{Text: "Logo uploaded"}
	a.mu.Unlock()
	return ref, nil
}

// SubmitQuote assembles the draft into a quote request and sends it. On
// success the submission is recorded locally, the view switches to quotes
// and the list is refreshed. On failure the draft is kept for a retry.
func (a *App) SubmitQuote(ctx context.Context) (*models.QuoteReceipt, error) {
	a.mu.RLock()
	payload, err := customizer.BuildQuotePayload(a.viewer, a.custom.Product(), a.custom.Draft())
	a.mu.RUnlock()
	if err != nil {
		return nil, a.fail(err)
	}

	receipt, err := a.backend.CreateQuote(ctx, payload)
	if err != nil {
		a.logger.Warn("quote submission failed", zap.String("product", payload.ProductName), zap.Error(err))
		return nil, a.fail(err)
	}
	a.logger.Info("quote submitted", zap.String("quote_id", receipt.ID), zap.String("product", payload.ProductName))

	if a.recorder != nil {
		if err := a.recorder.RecordSubmission(ctx, receipt.ID, payload, receipt.Message); err != nil {
			a.logger.Warn("failed to record submission", zap.Error(err))
		}
	}

	text := receipt.Message
	if text == "" {
		text = QuoteSubmittedMessage
	}

	a.mu.Lock()
	a.view = ViewQuotes
	a.notice = Notice{Text: text}
	a.mu.Unlock()

	if err := a.LoadQuotes(ctx); err != nil {
		// The quote was accepted; keep the success message.
		a.Notify(text, false)
	}
	return receipt, nil
}

// SaveCustomization stores the current draft on the backend without
// requesting a quote.
func (a *App) SaveCustomization(ctx context.Context) (*models.QuoteReceipt, error) {
	a.mu.RLock()
	viewer := a.viewer
	product := a.custom.Product()
	draft := a.custom.Draft()
	a.mu.RUnlock()

	var missing []string
	if viewer == nil {
		missing = append(missing, "viewer")
	}
	if product == nil {
		missing = append(missing, "product")
	}
	if len(missing) > 0 {
		return nil, a.fail(&customizer.IncompleteDraftError{Missing: missing})
	}

	pos := draft.LogoPosition
	receipt, err := a.backend.SaveCustomization(ctx, models.SavedCustomization{
		ProductID:    product.ID,
		BusinessName: draft.BusinessName,
		PhoneNumber:  draft.PhoneNumber,
		LogoURL:      draft.LogoURL,
		LogoPosition: &pos,
	})
	if err != nil {
		return nil, a.fail(err)
	}

	a.Notify("Customization saved", false)
	return receipt, nil
}
