package export

import (
	"bytes"
	"image/png"

	"github.com/youruser/cardforge/internal/apperr"
	"github.com/youruser/cardforge/internal/render"
)

// PNGScale is the raster export factor over the logical canvas: 2x the
// 300 DPI working size, i.e. a 600 DPI-equivalent bitmap.
const PNGScale = 2

// PNG exports the composition as a high-resolution PNG. The card is
// re-rendered at PNGScale rather than resampled, so text stays crisp.
func PNG(comp *render.Composition) (*Artifact, error) {
	img, err := comp.RenderScaled(PNGScale)
	if err != nil {
		return nil, &apperr.AdapterError{Stage: "png render", Cause: err}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, &apperr.AdapterError{Stage: "png encode", Cause: err}
	}
	return &Artifact{
		Bytes:    buf.Bytes(),
		MIME:     "image/png",
		Filename: exportName("png"),
	}, nil
}
