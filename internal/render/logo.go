package render

import (
	"bytes"
	"image"
	"image/color"
	"os"

	"github.com/disintegration/imaging"
	log "github.com/sirupsen/logrus"
)

// loadLogo reads and scales a logo into a w x h region, preserving aspect
// ratio (letterboxed) on a white backdrop for contrast. A missing or corrupt
// file degrades to no logo; the render itself must not fail over artwork.
func loadLogo(path string, w, h int) image.Image {
	raw, err := os.ReadFile(path)
	if err != nil {
		log.WithError(err).WithField("logo", path).Warn("logo unreadable, omitting")
		return nil
	}
	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		log.WithError(err).WithField("logo", path).Warn("logo undecodable, omitting")
		return nil
	}
	pad := 5
	fitted := imaging.Fit(img, w-2*pad, h-2*pad, imaging.Lanczos)
	backdrop := imaging.New(w, h, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	return imaging.PasteCenter(backdrop, fitted)
}
