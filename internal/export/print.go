package export

import (
	"bytes"

	"github.com/go-pdf/fpdf"

	"github.com/youruser/cardforge/internal/apperr"
	"github.com/youruser/cardforge/internal/render"
)

// Print geometry in millimeters. The page is trim + bleed + a slug area on
// every side; crop and registration marks live in the slug, outside the
// bleed box.
const (
	BleedMM   = 3.0
	SlugMM    = 5.0
	MarkLenMM = 4.0
	MarkGapMM = 1.0

	PrintPageWidthMM  = TrimWidthMM + 2*(BleedMM+SlugMM)
	PrintPageHeightMM = TrimHeightMM + 2*(BleedMM+SlugMM)

	// printScale re-renders the card at 2x the 300 DPI canvas, a 600 DPI
	// equivalent over the page's physical size.
	printScale = 2
)

// PrintPDF exports the print-ready variant: the raster converted through the
// documented CMYK formula, stretched over the bleed box, with crop marks at
// the trim corners and registration targets on each side.
func PrintPDF(comp *render.Composition) (*Artifact, error) {
	img, err := comp.RenderScaled(printScale)
	if err != nil {
		return nil, &apperr.AdapterError{Stage: "print render", Cause: err}
	}
	converted := applyCMYK(img)

	doc := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "mm",
		Size:    fpdf.SizeType{Wd: PrintPageWidthMM, Ht: PrintPageHeightMM},
	})
	doc.SetCreationDate(pdfEpoch)
	doc.SetCompression(true)
	doc.AddPage()

	bleedX, bleedY := SlugMM, SlugMM
	bleedW := TrimWidthMM + 2*BleedMM
	bleedH := TrimHeightMM + 2*BleedMM
	if err := embedImage(doc, converted, "card_print", bleedX, bleedY, bleedW, bleedH); err != nil {
		return nil, err
	}

	drawCropMarks(doc)
	drawRegistrationTargets(doc)
	if err := doc.Error(); err != nil {
		return nil, &apperr.AdapterError{Stage: "print marks", Cause: err}
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

// drawCropMarks strokes a horizontal and a vertical mark aligned with each
// trim corner, kept MarkGapMM clear of the bleed box.
func drawCropMarks(doc *fpdf.Fpdf) {
	doc.SetDrawColor(0, 0, 0)
	doc.SetLineWidth(0.2)

	left := SlugMM + BleedMM
	right := left + TrimWidthMM
	top := SlugMM + BleedMM
	bottom := top + TrimHeightMM

	in := SlugMM - MarkGapMM
	out := in - MarkLenMM

	for _, x := range []float64{left, right} {
		doc.Line(x, out, x, in)
		doc.Line(x, PrintPageHeightMM-in, x, PrintPageHeightMM-out)
	}
	for _, y := range []float64{top, bottom} {
		doc.Line(out, y, in, y)
		doc.Line(PrintPageWidthMM-in, y, PrintPageWidthMM-out, y)
	}
}

// drawRegistrationTargets puts a circle-and-cross target at the middle of
// each slug edge.
func drawRegistrationTargets(doc *fpdf.Fpdf) {
	doc.SetDrawColor(0, 0, 0)
	doc.SetLineWidth(0.2)

	r := 1.2
	cx := PrintPageWidthMM / 2
	cy := PrintPageHeightMM / 2
	edge := SlugMM / 2

	for _, pt := range [][2]float64{
		{cx, edge},
		{cx, PrintPageHeightMM - edge},
		{edge, cy},
		{PrintPageWidthMM - edge, cy},
	} {
		x, y := pt[0], pt[1]
		doc.Circle(x, y, r, "D")
		doc.Line(x-r-0.5, y, x+r+0.5, y)
		doc.Line(x, y-r-0.5, x, y+r+0.5)
	}
}
