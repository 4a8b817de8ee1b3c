package export

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/youruser/cardforge/internal/card"
	"github.com/youruser/cardforge/internal/render"
	"github.com/youruser/cardforge/internal/style"
)

func testComposition(t *testing.T, d card.Data) *render.Composition {
	t.Helper()
	cat, err := style.Load()
	require.NoError(t, err)
	tpl, err := cat.Templates.Lookup("modern")
	require.NoError(t, err)
	scheme, err := cat.Schemes.Lookup("corporate_blue")
	require.NoError(t, err)
	comp, err := render.Render(render.Request{
		Data: d, Template: tpl, Scheme: scheme, Font: cat.Fonts.Default(),
	})
	require.NoError(t, err)
	return comp
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"png", "pdf", "pdf_print", "html"} {
		f, err := ParseFormat(s)
		require.NoError(t, err)
		require.Equal(t, Format(s), f)
	}
	_, err := ParseFormat("docx")
	require.Error(t, err)
}

func TestFormatExt(t *testing.T) {
	require.Equal(t, "png", FormatPNG.Ext())
	require.Equal(t, "pdf", FormatPDF.Ext())
	require.Equal(t, "pdf", FormatPDFPrint.Ext())
	require.Equal(t, "html", FormatHTML.Ext())
}

func TestPNGExport(t *testing.T) {
	comp := testComposition(t, card.Data{Name: "Ada Lovelace"})

	art, err := PNG(comp)
	require.NoError(t, err)
	require.Equal(t, "image/png", art.MIME)
	require.True(t, strings.HasPrefix(art.Filename, "business_card_"))
	require.True(t, strings.HasSuffix(art.Filename, ".png"))

	img, err := png.Decode(bytes.NewReader(art.Bytes))
	require.NoError(t, err)
	require.Equal(t, style.CanvasWidth*PNGScale, img.Bounds().Dx())
	require.Equal(t, style.CanvasHeight*PNGScale, img.Bounds().Dy())
}

func TestPNGExportIsIdempotent(t *testing.T) {
	comp := testComposition(t, card.Data{Name: "Ada Lovelace", Email: "ada@example.com"})

	first, err := PNG(comp)
	require.NoError(t, err)
	second, err := PNG(comp)
	require.NoError(t, err)
	require.Equal(t, first.Bytes, second.Bytes)
}

func TestScreenPDFExport(t *testing.T) {
	comp := testComposition(t, card.Data{Name: "Ada Lovelace"})

	art, err := ScreenPDF(comp)
	require.NoError(t, err)
	require.Equal(t, "application/pdf", art.MIME)
	require.True(t, bytes.HasPrefix(art.Bytes, []byte("%PDF-")))
}

func TestScreenPDFIsIdempotent(t *testing.T) {
	comp := testComposition(t, card.Data{Name: "Ada Lovelace"})

	first, err := ScreenPDF(comp)
	require.NoError(t, err)
	second, err := ScreenPDF(comp)
	require.NoError(t, err)
	require.Equal(t, first.Bytes, second.Bytes)
}

func TestScreenPDFEmbedsCompositionRaster(t *testing.T) {
	comp := testComposition(t, card.Data{Name: "Ada Lovelace", Email: "ada@example.com"})

	art, err := ScreenPDF(comp)
	require.NoError(t, err)

	// The page image stream carries the PNG encoding of the composition
	// raster: its deflate payload must appear verbatim in the document.
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, comp.Image()))
	require.True(t, bytes.Contains(art.Bytes, pngIDAT(t, buf.Bytes())))
}

func TestPNGAndScreenPDFShareLayout(t *testing.T) {
	comp := testComposition(t, card.Data{Name: "Ada Lovelace", JobTitle: "Analyst"})

	art, err := PNG(comp)
	require.NoError(t, err)
	pngImg, err := png.Decode(bytes.NewReader(art.Bytes))
	require.NoError(t, err)

	// The screen PDF stretches comp.Image() over the full trim page, so the
	// raster it embeds defines its layout. Compare the normalized bounding
	// box of the scheme's primary color across both exports.
	primary := color.NRGBA{R: 0x1e, G: 0x3a, B: 0x8a, A: 0xff}
	fromPNG := colorBounds(t, pngImg, primary)
	fromPDF := colorBounds(t, comp.Image(), primary)
	for i := range fromPNG {
		require.InDelta(t, fromPDF[i], fromPNG[i], 0.01)
	}
}

// colorBounds returns the bounding box of pixels matching target exactly,
// normalized to the image size.
func colorBounds(t *testing.T, img image.Image, target color.NRGBA) [4]float64 {
	t.Helper()
	b := img.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.R != target.R || c.G != target.G || c.B != target.B {
				continue
			}
			if x < minX {
				minX = x
			}
			if y < minY {
				minY = y
			}
			if x > maxX {
				maxX = x
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	require.True(t, maxX >= minX, "target color not present")
	w, h := float64(b.Dx()), float64(b.Dy())
	return [4]float64{
		float64(minX-b.Min.X) / w, float64(minY-b.Min.Y) / h,
		float64(maxX+1-b.Min.X) / w, float64(maxY+1-b.Min.Y) / h,
	}
}

// pngIDAT concatenates the IDAT chunk payloads of an encoded PNG.
func pngIDAT(t *testing.T, raw []byte) []byte {
	t.Helper()
	var out []byte
	for i := 8; i+12 <= len(raw); {
		n := int(binary.BigEndian.Uint32(raw[i:]))
		if string(raw[i+4:i+8]) == "IDAT" {
			out = append(out, raw[i+8:i+8+n]...)
		}
		i += 12 + n
	}
	require.NotEmpty(t, out)
	return out
}

func TestPrintPDFExport(t *testing.T) {
	comp := testComposition(t, card.Data{Name: "Ada Lovelace"})

	art, err := PrintPDF(comp)
	require.NoError(t, err)
	require.Equal(t, "application/pdf", art.MIME)
	require.True(t, bytes.HasPrefix(art.Bytes, []byte("%PDF-")))

	// Print bytes carry marks and the CMYK-converted raster; they must
	// differ from the screen rendition of the same composition.
	screen, err := ScreenPDF(comp)
	require.NoError(t, err)
	require.NotEqual(t, screen.Bytes, art.Bytes)
}

func TestPrintGeometry(t *testing.T) {
	require.InDelta(t, 88.9, TrimWidthMM, 1e-9)
	require.InDelta(t, 50.8, TrimHeightMM, 1e-9)
	require.InDelta(t, 104.9, PrintPageWidthMM, 1e-9)
	require.InDelta(t, 66.8, PrintPageHeightMM, 1e-9)
	// Marks stop short of the bleed box.
	require.Less(t, MarkGapMM+MarkLenMM, SlugMM)
}

func TestHTMLExport(t *testing.T) {
	comp := testComposition(t, card.Data{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Company: "Analytical Engines Ltd",
	})

	art, err := HTML(comp)
	require.NoError(t, err)
	require.Equal(t, "text/html; charset=utf-8", art.MIME)

	body := string(art.Bytes)
	require.Contains(t, body, "Ada Lovelace")
	require.Contains(t, body, "ada@example.com")
	require.Contains(t, body, "copyToClipboard")
}

func TestHTMLExportEscapesMarkup(t *testing.T) {
	comp := testComposition(t, card.Data{Name: "Ada <script>alert(1)</script>"})

	art, err := HTML(comp)
	require.NoError(t, err)
	require.NotContains(t, string(art.Bytes), "<script>alert(1)</script>")
}

func TestHTMLExportIncludesQR(t *testing.T) {
	comp := testComposition(t, card.Data{Name: "Ada Lovelace", IncludeQR: true})

	art, err := HTML(comp)
	require.NoError(t, err)
	require.Contains(t, string(art.Bytes), "data:image/png;base64,")
}

func TestExportDispatch(t *testing.T) {
	comp := testComposition(t, card.Data{Name: "Ada Lovelace"})
	for _, f := range []Format{FormatPNG, FormatPDF, FormatPDFPrint, FormatHTML} {
		art, err := Export(f, comp)
		require.NoError(t, err, string(f))
		require.NotEmpty(t, art.Bytes, string(f))
	}
}
