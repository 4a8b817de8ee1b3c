package export

import (
	"strings"

	"github.com/google/uuid"

	"github.com/youruser/cardforge/internal/apperr"
	"github.com/youruser/cardforge/internal/render"
)

// Artifact is a finished export: bytes plus everything a caller needs to
// stream it back as a download.
type Artifact struct {
	Bytes    []byte
	MIME     string
	Filename string
}

// Format selects an export adapter.
type Format string

const (
	FormatPNG      Format = "png"
	FormatPDF      Format = "pdf"
	FormatPDFPrint Format = "pdf_print"
	FormatHTML     Format = "html"
)

// Ext returns the artifact file extension for the format.
func (f Format) Ext() string {
	switch f {
	case FormatPDF, FormatPDFPrint:
		return "pdf"
	case FormatHTML:
		return "html"
	}
	return "png"
}

// ParseFormat validates a format string from a request or batch form.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatPNG, FormatPDF, FormatPDFPrint, FormatHTML:
		return Format(s), nil
	}
	return "", &apperr.ValidationError{Field: "format", Reason: "unknown export format " + s}
}

// Export runs the adapter for the chosen format against a composition.
func Export(f Format, comp *render.Composition) (*Artifact, error) {
	switch f {
	case FormatPDF:
		return ScreenPDF(comp)
	case FormatPDFPrint:
		return PrintPDF(comp)
	case FormatHTML:
		return HTML(comp)
	default:
		return PNG(comp)
	}
}

func exportName(ext string) string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
	return "business_card_" + id + "." + ext
}
