// ABOUTME: Renders a customization preview by compositing the logo onto the product image
// ABOUTME: The logo is centred on its normalized position, matching the on-screen overlay
package preview

import (
	"context"
	"fmt"
	"image"
	"io"
	"math"
	"net/http"
	"os"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/harperreed/flagshop/models"
)

// DefaultLogoScale is the largest logo size as a fraction of the surface's
// shorter side.
const DefaultLogoScale = 0.25

type Options struct {
	LogoScale float64
}

func (o Options) scale() float64 {
	if o.LogoScale <= 0 || o.LogoScale > 1 {
		return DefaultLogoScale
	}
	return o.LogoScale
}

// LogoRect returns where a logo of logoSize lands on a surface of
// surfaceSize when centred at pos.
func LogoRect(surfaceSize, logoSize image.Point, pos models.NormalizedPosition) image.Rectangle {
	pos = pos.Clamp()
	cx := int(math.Round(pos.X / 100 * float64(surfaceSize.X)))
	cy := int(math.Round(pos.Y / 100 * float64(surfaceSize.Y)))
	topLeft := image.Pt(cx-logoSize.X/2, cy-logoSize.Y/2)
	return image.Rectangle{Min: topLeft, Max: topLeft.Add(logoSize)}
}

// Compose draws logo over base. The logo is shrunk (never enlarged) to fit a
// square of LogoScale times the base's shorter side.
func Compose(base, logo image.Image, pos models.NormalizedPosition, opts Options) (*image.NRGBA, error) {
	bw, bh := base.Bounds().Dx(), base.Bounds().Dy()
	if bw <= 0 || bh <= 0 {
		return nil, fmt.Errorf("product image is empty")
	}

	side := bw
	if bh < side {
		side = bh
	}
	box := int(float64(side) * opts.scale())
	if box < 1 {
		box = 1
	}
	fitted := imaging.Fit(logo, box, box, imaging.Lanczos)

	rect := LogoRect(image.Pt(bw, bh), fitted.Bounds().Size(), pos)
	return imaging.Overlay(base, fitted, rect.Min, 1.0), nil
}

// Load reads an image from a local path or an http(s) URL. Relative backend
// references such as /uploads/x.png are resolved against baseURL.
func Load(ctx context.Context, client *http.Client, baseURL, ref string) (image.Image, error) {
	switch {
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return fetch(ctx, client, ref)
	case strings.HasPrefix(ref, "/uploads/") && baseURL != "":
		return fetch(ctx, client, strings.TrimSuffix(baseURL, "/")+ref)
	default:
		f, err := os.Open(ref)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return decode(f, ref)
	}
}

func fetch(ctx context.Context, client *http.Client, url string) (image.Image, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: status %d", url, resp.StatusCode)
	}
	return decode(resp.Body, url)
}

func decode(r io.Reader, name string) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("cannot preview %s (only raster images can be previewed): %w", name, err)
	}
	return img, nil
}

// Save writes the preview; the format follows the file extension.
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save preview: %w", err)
	}
	return nil
}
