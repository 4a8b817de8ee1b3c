package export

import (
	"bytes"
	"image"
	"image/png"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/youruser/cardforge/internal/apperr"
	"github.com/youruser/cardforge/internal/render"
)

// Trim size of a standard US business card in millimeters (3.5 x 2 in).
const (
	TrimWidthMM  = 88.9
	TrimHeightMM = 50.8
)

// Exports carry a fixed creation date so identical compositions always
// produce identical PDF bytes.
var pdfEpoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// ScreenPDF exports the composition as a single-page RGB PDF at trim size,
// suitable for viewing and emailing.
func ScreenPDF(comp *render.Composition) (*Artifact, error) {
	doc := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "mm",
		Size:    fpdf.SizeType{Wd: TrimWidthMM, Ht: TrimHeightMM},
	})
	doc.SetCreationDate(pdfEpoch)
	doc.SetCompression(true)
	doc.AddPage()

	if err := embedImage(doc, comp.Image(), "card", 0, 0, TrimWidthMM, TrimHeightMM); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, &apperr.AdapterError{Stage: "pdf output", Cause: err}
	}
	return &Artifact{
		Bytes:    buf.Bytes(),
		MIME:     "application/pdf",
		Filename: exportName("pdf"),
	}, nil
}

// embedImage PNG-encodes img and places it on the current page.
func embedImage(doc *fpdf.Fpdf, img image.Image, name string, x, y, w, h float64) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return &apperr.AdapterError{Stage: "pdf image encode", Cause: err}
	}
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader(name, opts, &buf)
	doc.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	if err := doc.Error(); err != nil {
		return &apperr.AdapterError{Stage: "pdf image embed", Cause: err}
	}
	return nil
}
