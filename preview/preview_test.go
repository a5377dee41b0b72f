package preview

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/flagshop/models"
)

var (
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	red   = color.NRGBA{R: 255, A: 255}
)

func TestLogoRectCentresOnPosition(t *testing.T) {
	r := LogoRect(image.Pt(200, 100), image.Pt(20, 10), models.NormalizedPosition{X: 50, Y: 50})
	assert.Equal(t, image.Rect(90, 45, 110, 55), r)

	r = LogoRect(image.Pt(200, 100), image.Pt(20, 10), models.NormalizedPosition{X: 0, Y: 0})
	assert.Equal(t, image.Rect(-10, -5, 10, 5), r, "corner positions hang half off the surface")

	r = LogoRect(image.Pt(200, 100), image.Pt(20, 10), models.NormalizedPosition{X: 500, Y: -20})
	assert.Equal(t, image.Rect(190, -5, 210, 5), r, "positions are clamped first")
}

func TestCompose(t *testing.T) {
	base := imaging.New(200, 100, white)
	logo := imaging.New(20, 20, red)

	out, err := Compose(base, logo, models.NormalizedPosition{X: 25, Y: 50}, Options{})
	require.NoError(t, err)

	assert.Equal(t, image.Pt(200, 100), out.Bounds().Size())
	assert.Equal(t, red, out.NRGBAAt(50, 50))
	assert.Equal(t, red, out.NRGBAAt(41, 41))
	assert.Equal(t, white, out.NRGBAAt(10, 10))
	assert.Equal(t, white, out.NRGBAAt(150, 50))
}

func TestComposeShrinksLargeLogo(t *testing.T) {
	base := imaging.New(200, 100, white)
	logo := imaging.New(400, 400, red)

	out, err := Compose(base, logo, models.DefaultPosition(), Options{LogoScale: 0.5})
	require.NoError(t, err)

	// 50x50 logo centred at (100,50).
	assert.Equal(t, red, out.NRGBAAt(100, 50))
	assert.Equal(t, white, out.NRGBAAt(70, 50))
	assert.Equal(t, white, out.NRGBAAt(130, 50))
}

func TestComposeEmptyBase(t *testing.T) {
	_, err := Compose(image.NewNRGBA(image.Rect(0, 0, 0, 0)), imaging.New(1, 1, red), models.DefaultPosition(), Options{})
	assert.Error(t, err)
}

func TestLoadAndSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "base.png")
	require.NoError(t, Save(imaging.New(4, 4, red), path))

	img, err := Load(context.Background(), nil, "", path)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(4, 4), img.Bounds().Size())

	_, err = Load(context.Background(), nil, "", filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}

func TestLoadFromBackendUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/uploads/logo.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_ = png.Encode(w, imaging.New(3, 2, red))
	}))
	defer srv.Close()

	img, err := Load(context.Background(), srv.Client(), srv.URL, "/uploads/logo.png")
	require.NoError(t, err)
	assert.Equal(t, image.Pt(3, 2), img.Bounds().Size())

	_, err = Load(context.Background(), srv.Client(), srv.URL, "/uploads/missing.png")
	assert.Error(t, err)
}
