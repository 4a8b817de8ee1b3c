package style

import (
	"fmt"

	"github.com/youruser/cardforge/internal/apperr"
	"github.com/youruser/cardforge/internal/card"
)

// Card canvas in logical units. 3.5 x 2 inches at 300 DPI, the standard US
// business card.
const (
	CanvasWidth  = 1050
	CanvasHeight = 600
	CanvasDPI    = 300
)

// Placement kinds. Graphic kinds come before text kinds in every catalog
// template so z-stacking is deterministic.
const (
	KindRect    = "rect"
	KindFrame   = "frame"
	KindEllipse = "ellipse"
	KindLine    = "line"
	KindText    = "text"
	KindQR      = "qr"
	KindLogo    = "logo"
)

// Font roles, each with a base pixel size on the logical canvas.
const (
	RoleHeading = "heading"
	RoleBody    = "body"
	RoleCaption = "caption"
)

// RoleSize returns the base font size in canvas pixels for a role.
func RoleSize(role string) float64 {
	switch role {
	case RoleHeading:
		return 48
	case RoleBody:
		return 22
	case RoleCaption:
		return 18
	}
	return 22
}

// Align values for text placements.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// Placement declares where and how one element is drawn.
//
// Geometry by kind: rect, frame and logo use X,Y,W,H as a box (frame strokes
// the outline at Stroke width, rect fills); ellipse uses the box as its
// bounds; line runs from (X,Y) to (X2,Y2) at Stroke width; text anchors at
// (X,Y baseline) with MaxW bounding the rendered width; qr uses X,Y,W for a
// W×W square.
type Placement struct {
	Kind   string  `yaml:"kind"`
	Field  string  `yaml:"field,omitempty"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	W      float64 `yaml:"w,omitempty"`
	H      float64 `yaml:"h,omitempty"`
	X2     float64 `yaml:"x2,omitempty"`
	Y2     float64 `yaml:"y2,omitempty"`
	Stroke float64 `yaml:"stroke,omitempty"`
	Slot   string  `yaml:"slot,omitempty"`
	Role   string  `yaml:"role,omitempty"`
	Align  string  `yaml:"align,omitempty"`
	Bold   bool    `yaml:"bold,omitempty"`
	Upper  bool    `yaml:"upper,omitempty"`
	MaxW   float64 `yaml:"max_w,omitempty"`
}

// Template is an immutable catalog layout.
type Template struct {
	ID         string      `yaml:"id"`
	Background string      `yaml:"background"` // slot name or "#rrggbb"
	Placements []Placement `yaml:"placements"`
}

type templateCatalogYAML struct {
	Templates []Template        `yaml:"templates"`
	Aliases   map[string]string `yaml:"aliases"`
}

// TemplateRegistry is the fixed template catalog.
type TemplateRegistry struct {
	byID    map[string]*Template
	ids     []string
	aliases map[string]string
}

// Lookup resolves an id or alias, failing with apperr.ErrNotFound.
func (r *TemplateRegistry) Lookup(id string) (*Template, error) {
	if target, ok := r.aliases[id]; ok {
		id = target
	}
	t, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("template %q: %w", id, apperr.ErrNotFound)
	}
	return t, nil
}

// List returns the templates in catalog order.
func (r *TemplateRegistry) List() []*Template {
	out := make([]*Template, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, r.byID[id])
	}
	return out
}

func buildTemplateRegistry(raw templateCatalogYAML) (*TemplateRegistry, error) {
	reg := &TemplateRegistry{
		byID:    make(map[string]*Template, len(raw.Templates)),
		aliases: raw.Aliases,
	}
	for i := range raw.Templates {
		t := &raw.Templates[i]
		if t.ID == "" {
			return nil, fmt.Errorf("template with empty id")
		}
		if _, dup := reg.byID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate template %q", t.ID)
		}
		if err := validateTemplate(t); err != nil {
			return nil, fmt.Errorf("template %q: %w", t.ID, err)
		}
		reg.byID[t.ID] = t
		reg.ids = append(reg.ids, t.ID)
	}
	for alias, target := range raw.Aliases {
		if _, ok := reg.byID[target]; !ok {
			return nil, fmt.Errorf("alias %q points at unknown template %q", alias, target)
		}
	}
	return reg, nil
}

// validateTemplate enforces the catalog invariants once at load time: every
// slot reference resolves, every text field is a known CardData key, and
// geometry is sane. The render path relies on this and never re-checks.
func validateTemplate(t *Template) error {
	if t.Background != "" && !validSlot(t.Background) {
		if _, err := ParseHexColor(t.Background); err != nil {
			return fmt.Errorf("background: %w", err)
		}
	}
	for i, p := range t.Placements {
		if p.Slot != "" && !validSlot(p.Slot) {
			return fmt.Errorf("placement %d: unknown slot %q", i, p.Slot)
		}
		switch p.Kind {
		case KindText:
			if !card.KnownField(p.Field) {
				return fmt.Errorf("placement %d: unknown field %q", i, p.Field)
			}
			switch p.Role {
			case RoleHeading, RoleBody, RoleCaption:
			default:
				return fmt.Errorf("placement %d: unknown role %q", i, p.Role)
			}
			if p.Slot == "" {
				return fmt.Errorf("placement %d: text needs a slot", i)
			}
			if p.MaxW <= 0 {
				return fmt.Errorf("placement %d: text needs max_w", i)
			}
		case KindRect, KindEllipse:
			if p.Slot == "" || p.W <= 0 || p.H <= 0 {
				return fmt.Errorf("placement %d: %s needs slot and size", i, p.Kind)
			}
		case KindFrame:
			if p.Slot == "" || p.W <= 0 || p.H <= 0 || p.Stroke <= 0 {
				return fmt.Errorf("placement %d: frame needs slot, size and stroke", i)
			}
		case KindLine:
			if p.Slot == "" || p.Stroke <= 0 {
				return fmt.Errorf("placement %d: line needs slot and stroke", i)
			}
		case KindQR, KindLogo:
			if p.W <= 0 || p.H <= 0 {
				return fmt.Errorf("placement %d: %s needs size", i, p.Kind)
			}
		default:
			return fmt.Errorf("placement %d: unknown kind %q", i, p.Kind)
		}
	}
	return nil
}

// QRPlacement returns the template's QR placement, if declared.
func (t *Template) QRPlacement() (Placement, bool) {
	for _, p := range t.Placements {
		if p.Kind == KindQR {
			return p, true
		}
	}
	return Placement{}, false
}

// LogoPlacement returns the template's logo region, if declared.
func (t *Template) LogoPlacement() (Placement, bool) {
	for _, p := range t.Placements {
		if p.Kind == KindLogo {
			return p, true
		}
	}
	return Placement{}, false
}
