package style

import (
	"fmt"
	"image/color"

	"github.com/youruser/cardforge/internal/apperr"
)

// Slot names a color role inside a scheme. Every template placement refers
// to colors through slots, never through literal values, so any scheme can
// drive any template.
const (
	SlotPrimary   = "primary"
	SlotSecondary = "secondary"
	SlotAccent    = "accent"
	SlotText      = "text"
	SlotLight     = "light"
	SlotDark      = "dark"
)

var slotNames = []string{SlotPrimary, SlotSecondary, SlotAccent, SlotText, SlotLight, SlotDark}

// Scheme is an immutable named palette.
type Scheme struct {
	ID        string
	Primary   color.NRGBA
	Secondary color.NRGBA
	Accent    color.NRGBA
	Text      color.NRGBA
	Light     color.NRGBA
	Dark      color.NRGBA
}

// Slot resolves a slot name to its color.
func (s *Scheme) Slot(name string) (color.NRGBA, bool) {
	switch name {
	case SlotPrimary:
		return s.Primary, true
	case SlotSecondary:
		return s.Secondary, true
	case SlotAccent:
		return s.Accent, true
	case SlotText:
		return s.Text, true
	case SlotLight:
		return s.Light, true
	case SlotDark:
		return s.Dark, true
	}
	return color.NRGBA{}, false
}

func validSlot(name string) bool {
	for _, s := range slotNames {
		if s == name {
			return true
		}
	}
	return false
}

type schemeYAML struct {
	ID        string `yaml:"id"`
	Primary   string `yaml:"primary"`
	Secondary string `yaml:"secondary"`
	Accent    string `yaml:"accent"`
	Text      string `yaml:"text"`
	Light     string `yaml:"light"`
	Dark      string `yaml:"dark"`
}

type schemeCatalogYAML struct {
	Schemes []schemeYAML      `yaml:"schemes"`
	Aliases map[string]string `yaml:"aliases"`
}

// ParseHexColor parses "#rrggbb" into an opaque NRGBA.
func ParseHexColor(s string) (color.NRGBA, error) {
	var r, g, b uint8
	if len(s) != 7 || s[0] != '#' {
		return color.NRGBA{}, fmt.Errorf("bad hex color %q", s)
	}
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.NRGBA{}, fmt.Errorf("bad hex color %q: %w", s, err)
	}
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// SchemeRegistry is the fixed color scheme catalog.
type SchemeRegistry struct {
	byID    map[string]*Scheme
	ids     []string
	aliases map[string]string
}

// Lookup resolves an id or alias, failing with apperr.ErrNotFound.
func (r *SchemeRegistry) Lookup(id string) (*Scheme, error) {
	if target, ok := r.aliases[id]; ok {
		id = target
	}
	s, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("color scheme %q: %w", id, apperr.ErrNotFound)
	}
	return s, nil
}

// List returns the schemes in catalog order.
func (r *SchemeRegistry) List() []*Scheme {
	out := make([]*Scheme, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, r.byID[id])
	}
	return out
}

func buildSchemeRegistry(raw schemeCatalogYAML) (*SchemeRegistry, error) {
	reg := &SchemeRegistry{
		byID:    make(map[string]*Scheme, len(raw.Schemes)),
		aliases: raw.Aliases,
	}
	for _, sy := range raw.Schemes {
		if sy.ID == "" {
			return nil, fmt.Errorf("color scheme with empty id")
		}
		if _, dup := reg.byID[sy.ID]; dup {
			return nil, fmt.Errorf("duplicate color scheme %q", sy.ID)
		}
		s := &Scheme{ID: sy.ID}
		for _, f := range []struct {
			hex string
			dst *color.NRGBA
		}{
			{sy.Primary, &s.Primary},
			{sy.Secondary, &s.Secondary},
			{sy.Accent, &s.Accent},
			{sy.Text, &s.Text},
			{sy.Light, &s.Light},
			{sy.Dark, &s.Dark},
		} {
			c, err := ParseHexColor(f.hex)
			if err != nil {
				return nil, fmt.Errorf("color scheme %q: %w", sy.ID, err)
			}
			*f.dst = c
		}
		reg.byID[sy.ID] = s
		reg.ids = append(reg.ids, sy.ID)
	}
	for alias, target := range raw.Aliases {
		if _, ok := reg.byID[target]; !ok {
			return nil, fmt.Errorf("alias %q points at unknown scheme %q", alias, target)
		}
	}
	return reg, nil
}
