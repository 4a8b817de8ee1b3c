package export

import (
	"image"
	"image/color"
)

// RGBToCMYK converts an sRGB triple to CMYK fractions in [0,1] using the
// plain subtractive formula:
//
//	K = 1 - max(R', G', B')
//	C = (1 - R' - K) / (1 - K)   (0 when K == 1; M and Y likewise)
//
// where R', G', B' are channels scaled to [0,1]. This is intentionally not a
// color-managed ICC transform: the same input always yields the same output.
func RGBToCMYK(r, g, b uint8) (c, m, y, k float64) {
	rf := float64(r) / 255
	gf := float64(g) / 255
	bf := float64(b) / 255
	k = 1 - max3(rf, gf, bf)
	if k >= 1 {
		return 0, 0, 0, 1
	}
	c = (1 - rf - k) / (1 - k)
	m = (1 - gf - k) / (1 - k)
	y = (1 - bf - k) / (1 - k)
	return c, m, y, k
}

// CMYKToRGB is the inverse transform, used to bake the CMYK rendition back
// into an embeddable raster.
func CMYKToRGB(c, m, y, k float64) (r, g, b uint8) {
	r = uint8(255*(1-c)*(1-k) + 0.5)
	g = uint8(255*(1-m)*(1-k) + 0.5)
	b = uint8(255*(1-y)*(1-k) + 0.5)
	return r, g, b
}

// applyCMYK round-trips every pixel through the CMYK formula, producing the
// print-simulated raster embedded in the print PDF.
func applyCMYK(src image.Image) *image.NRGBA {
	bounds := src.Bounds()
	dst := image.NewNRGBA(bounds)
	for py := bounds.Min.Y; py < bounds.Max.Y; py++ {
		for px := bounds.Min.X; px < bounds.Max.X; px++ {
			nc := color.NRGBAModel.Convert(src.At(px, py)).(color.NRGBA)
			c, m, y, k := RGBToCMYK(nc.R, nc.G, nc.B)
			r, g, b := CMYKToRGB(c, m, y, k)
			dst.SetNRGBA(px, py, color.NRGBA{R: r, G: g, B: b, A: nc.A})
		}
	}
	return dst
}

func max3(a, b, c float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}
