package render

import (
	"image"

	"github.com/youruser/cardforge/internal/card"
	"github.com/youruser/cardforge/internal/style"
)

// Request is the full request-scoped configuration for one render. Nothing
// else (no session, no globals) feeds the compositor.
type Request struct {
	Data     card.Data
	Template *style.Template
	Scheme   *style.Scheme
	Font     *style.Font
	// Align overrides the per-placement text alignment when non-empty
	// ("left", "center" or "right").
	Align string
}

// Composition is the rendered card, tagged with its logical size and DPI.
// It is immutable once returned from Render and meant to be consumed by a
// single export adapter.
type Composition struct {
	req    Request
	img    image.Image
	Width  int
	Height int
	DPI    int
}

// Image returns the card rendered at the logical canvas size.
func (c *Composition) Image() image.Image { return c.img }

// Request returns the inputs that produced this composition. The HTML
// adapter rebuilds its markup from these rather than from the bitmap.
func (c *Composition) Request() Request { return c.req }

// RenderScaled re-renders the card at an integer multiple of the logical
// size. Export adapters use this to upscale crisply instead of resampling
// the base bitmap.
func (c *Composition) RenderScaled(scale int) (image.Image, error) {
	if scale <= 1 {
		return c.img, nil
	}
	return drawCard(c.req, float64(scale))
}
