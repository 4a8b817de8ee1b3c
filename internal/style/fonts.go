package style

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/youruser/cardforge/internal/apperr"
)

// DefaultFontID is used when a render request names no font or an unknown
// one. Falling back is a visual degradation, not a hard failure.
const DefaultFontID = "inter"

// Font is a catalog entry with regular and bold cuts. The parsed fonts are
// safe for concurrent use; faces are minted per render because font.Face
// carries mutable raster state.
type Font struct {
	ID      string
	regular *opentype.Font
	bold    *opentype.Font
}

// Face returns a face at the given pixel size. Faces are sized against a
// 72 DPI em square so size maps 1:1 to canvas pixels.
func (f *Font) Face(size float64, bold bool) (font.Face, error) {
	src := f.regular
	if bold {
		src = f.bold
	}
	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font %s at %.1f: %w", f.ID, size, err)
	}
	return face, nil
}

// FontRegistry is the fixed font catalog.
type FontRegistry struct {
	byID map[string]*Font
	ids  []string
}

// Lookup resolves a font id. Unknown ids fail with *apperr.UnknownFontError;
// callers are expected to degrade to Default rather than abort a render.
func (r *FontRegistry) Lookup(id string) (*Font, error) {
	f, ok := r.byID[id]
	if !ok {
		return nil, &apperr.UnknownFontError{ID: id}
	}
	return f, nil
}

// Default returns the fallback font.
func (r *FontRegistry) Default() *Font {
	return r.byID[DefaultFontID]
}

// List returns the fonts in catalog order.
func (r *FontRegistry) List() []*Font {
	out := make([]*Font, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, r.byID[id])
	}
	return out
}

// The catalog maps the web font names the original UI offered onto embedded
// Go font cuts, the same way the original mapped them all onto Arial.
func buildFontRegistry() (*FontRegistry, error) {
	entries := []struct {
		id            string
		regular, bold []byte
	}{
		{"inter", goregular.TTF, gobold.TTF},
		{"roboto", goregular.TTF, gobold.TTF},
		{"lato", goregular.TTF, gobold.TTF},
		{"montserrat", gomedium.TTF, gobold.TTF},
		{"merriweather", goitalic.TTF, gobolditalic.TTF},
		{"mono", gomono.TTF, gomonobold.TTF},
	}
	reg := &FontRegistry{byID: make(map[string]*Font, len(entries))}
	for _, e := range entries {
		regular, err := opentype.Parse(e.regular)
		if err != nil {
			return nil, fmt.Errorf("parse font %s: %w", e.id, err)
		}
		bold, err := opentype.Parse(e.bold)
		if err != nil {
			return nil, fmt.Errorf("parse font %s bold: %w", e.id, err)
		}
		reg.byID[e.id] = &Font{ID: e.id, regular: regular, bold: bold}
		reg.ids = append(reg.ids, e.id)
	}
	return reg, nil
}
