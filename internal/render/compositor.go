package render

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/fogleman/gg"

	"github.com/youruser/cardforge/internal/apperr"
	"github.com/youruser/cardforge/internal/style"
)

// Overflow policy: text wider than its placement box is shrunk in 2pt steps
// down to minSizeRatio of the role size, then truncated with an ellipsis.
const (
	shrinkStep   = 2.0
	minSizeRatio = 0.6
	ellipsis     = "…"
)

// Render validates the record and produces the card composition at the
// template's logical canvas size.
func Render(req Request) (*Composition, error) {
	if req.Template == nil || req.Scheme == nil || req.Font == nil {
		return nil, &apperr.ValidationError{Reason: "incomplete style selection"}
	}
	if err := req.Data.Validate(); err != nil {
		return nil, err
	}
	img, err := drawCard(req, 1)
	if err != nil {
		return nil, err
	}
	return &Composition{
		req:    req,
		img:    img,
		Width:  style.CanvasWidth,
		Height: style.CanvasHeight,
		DPI:    style.CanvasDPI,
	}, nil
}

// drawCard renders the full card at the given scale factor. Placements are
// drawn in declaration order, which fixes the z-stacking.
func drawCard(req Request, s float64) (image.Image, error) {
	w := int(style.CanvasWidth * s)
	h := int(style.CanvasHeight * s)
	dc := gg.NewContext(w, h)

	bg, err := resolveBackground(req.Template.Background, req.Scheme)
	if err != nil {
		return nil, err
	}
	dc.SetColor(bg)
	dc.Clear()

	for _, p := range req.Template.Placements {
		switch p.Kind {
		case style.KindRect:
			c, _ := req.Scheme.Slot(p.Slot)
			dc.SetColor(c)
			dc.DrawRectangle(p.X*s, p.Y*s, p.W*s, p.H*s)
			dc.Fill()
		case style.KindFrame:
			c, _ := req.Scheme.Slot(p.Slot)
			dc.SetColor(c)
			dc.SetLineWidth(p.Stroke * s)
			dc.DrawRectangle(p.X*s, p.Y*s, p.W*s, p.H*s)
			dc.Stroke()
		case style.KindEllipse:
			c, _ := req.Scheme.Slot(p.Slot)
			dc.SetColor(c)
			dc.DrawEllipse((p.X+p.W/2)*s, (p.Y+p.H/2)*s, p.W/2*s, p.H/2*s)
			dc.Fill()
		case style.KindLine:
			c, _ := req.Scheme.Slot(p.Slot)
			dc.SetColor(c)
			dc.SetLineWidth(p.Stroke * s)
			dc.DrawLine(p.X*s, p.Y*s, p.X2*s, p.Y2*s)
			dc.Stroke()
		case style.KindText:
			value := req.Data.Field(p.Field)
			if value == "" {
				// Validate already rejected empty names; anything else is
				// an optional field and its placement is skipped.
				continue
			}
			if p.Upper {
				value = strings.ToUpper(value)
			}
			if err := drawText(dc, req, p, value, s); err != nil {
				return nil, err
			}
		case style.KindQR:
			if !req.Data.IncludeQR {
				continue
			}
			qr, err := QRImage(req.Data, int(p.W*s))
			if err != nil {
				return nil, err
			}
			dc.DrawImage(qr, int(p.X*s), int(p.Y*s))
		case style.KindLogo:
			if req.Data.LogoPath == "" {
				continue
			}
			logo := loadLogo(req.Data.LogoPath, int(p.W*s), int(p.H*s))
			if logo == nil {
				continue
			}
			dc.DrawImage(logo, int(p.X*s), int(p.Y*s))
		}
	}
	return dc.Image(), nil
}

func resolveBackground(bg string, scheme *style.Scheme) (color.Color, error) {
	if bg == "" {
		bg = "#ffffff"
	}
	if c, ok := scheme.Slot(bg); ok {
		return c, nil
	}
	c, err := style.ParseHexColor(bg)
	if err != nil {
		return nil, fmt.Errorf("template background: %w", err)
	}
	return c, nil
}

// drawText draws one field value at its placement, applying the overflow
// policy. (X, Y) is the baseline anchor; alignment shifts the anchor across
// the MaxW box.
func drawText(dc *gg.Context, req Request, p style.Placement, value string, s float64) error {
	maxW := p.MaxW * s
	size := style.RoleSize(p.Role) * s
	minSize := size * minSizeRatio

	face, err := req.Font.Face(size, p.Bold)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)
	for {
		tw, _ := dc.MeasureString(value)
		if tw <= maxW || size-shrinkStep*s < minSize {
			break
		}
		size -= shrinkStep * s
		face, err = req.Font.Face(size, p.Bold)
		if err != nil {
			return err
		}
		dc.SetFontFace(face)
	}
	if tw, _ := dc.MeasureString(value); tw > maxW {
		value = ellipsize(dc, value, maxW)
	}

	align := p.Align
	if req.Align != "" {
		align = req.Align
	}
	x, ax := p.X*s, 0.0
	switch align {
	case style.AlignCenter:
		x, ax = (p.X+p.MaxW/2)*s, 0.5
	case style.AlignRight:
		x, ax = (p.X+p.MaxW)*s, 1.0
	}

	c, _ := req.Scheme.Slot(p.Slot)
	dc.SetColor(c)
	dc.DrawStringAnchored(value, x, p.Y*s, ax, 0)
	return nil
}

// ellipsize trims runes from the end until the value plus an ellipsis fits.
func ellipsize(dc *gg.Context, value string, maxW float64) string {
	runes := []rune(value)
	for len(runes) > 1 {
		runes = runes[:len(runes)-1]
		candidate := strings.TrimRight(string(runes), " ") + ellipsis
		if tw, _ := dc.MeasureString(candidate); tw <= maxW {
			return candidate
		}
	}
	return string(runes) + ellipsis
}
