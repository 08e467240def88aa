package invoice

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"storeadmin-be/internal/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrder() order.Order {
	return order.Order{
		ID:           1,
		OrderNumber:  "ORD-000001",
		CustomerName: "Zoë Adams",
		Email:        "zoe@example.com",
		PhoneNumber:  "555-0100",
		Address:      "1 Main St\nSpringfield",
		Items: order.LineItems{
			{Name: "Mug", Quantity: 2, Price: decimal.RequireFromString("4.50")},
			{Name: "Tee", Quantity: 1, Price: decimal.NewFromInt(15)},
		},
		TotalAmount: decimal.NewFromInt(24),
		CreatedAt:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestRender(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, sampleOrder(), Settings{}))
		assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	})

	t.Run("WithLogo", func(t *testing.T) {
		dir := t.TempDir()
		logo := filepath.Join(dir, "logo.png")

		img := image.NewRGBA(image.Rect(0, 0, 4, 4))
		img.Set(1, 1, color.RGBA{R: 255, A: 255})
		f, err := os.Create(logo)
		require.NoError(t, err)
		require.NoError(t, png.Encode(f, img))
		require.NoError(t, f.Close())

		var buf bytes.Buffer
		require.NoError(t, Render(&buf, sampleOrder(), Settings{LogoPath: logo, SiteName: "Acme"}))
		assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	})

	t.Run("MissingLogoIsSkipped", func(t *testing.T) {
		var buf bytes.Buffer
		err := Render(&buf, sampleOrder(), Settings{LogoPath: filepath.Join(t.TempDir(), "nope.png")})
		require.NoError(t, err)
		assert.NotZero(t, buf.Len())
	})
}

func TestSettingsDefaults(t *testing.T) {
	s := Settings{SiteName: "Acme"}.withDefaults()
	assert.Equal(t, "Acme", s.SiteName)
	assert.Equal(t, DefaultContactEmail, s.ContactEmail)
	assert.Equal(t, DefaultContactPhone, s.ContactPhone)
}

func TestUsableLogo(t *testing.T) {
	dir := t.TempDir()
	svg := filepath.Join(dir, "logo.svg")
	require.NoError(t, os.WriteFile(svg, []byte("<svg/>"), 0o644))

	assert.Empty(t, usableLogo(""))
	assert.Empty(t, usableLogo(svg))
	assert.Empty(t, usableLogo(dir+".png"))
}
