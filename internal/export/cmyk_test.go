package export

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRGBToCMYKPureColors(t *testing.T) {
	cases := []struct {
		name       string
		r, g, b    uint8
		c, m, y, k float64
	}{
		{"white", 255, 255, 255, 0, 0, 0, 0},
		{"black", 0, 0, 0, 0, 0, 0, 1},
		{"red", 255, 0, 0, 0, 1, 1, 0},
		{"green", 0, 255, 0, 1, 0, 1, 0},
		{"blue", 0, 0, 255, 1, 1, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, m, y, k := RGBToCMYK(tc.r, tc.g, tc.b)
			require.InDelta(t, tc.c, c, 1e-9)
			require.InDelta(t, tc.m, m, 1e-9)
			require.InDelta(t, tc.y, y, 1e-9)
			require.InDelta(t, tc.k, k, 1e-9)
		})
	}
}

func TestRGBToCMYKMidGray(t *testing.T) {
	c, m, y, k := RGBToCMYK(128, 128, 128)
	require.InDelta(t, 0, c, 1e-9)
	require.InDelta(t, 0, m, 1e-9)
	require.InDelta(t, 0, y, 1e-9)
	require.InDelta(t, 1-128.0/255, k, 1e-9)
}

func TestCMYKRoundTripIsStable(t *testing.T) {
	// One trip through the formula may shift a channel by rounding; a second
	// trip must be a fixed point, otherwise repeated exports would drift.
	for _, px := range []color.NRGBA{
		{30, 58, 138, 255},
		{124, 45, 18, 255},
		{255, 255, 255, 255},
		{0, 0, 0, 255},
	} {
		c, m, y, k := RGBToCMYK(px.R, px.G, px.B)
		r1, g1, b1 := CMYKToRGB(c, m, y, k)
		c, m, y, k = RGBToCMYK(r1, g1, b1)
		r2, g2, b2 := CMYKToRGB(c, m, y, k)
		require.Equal(t, r1, r2)
		require.Equal(t, g1, g2)
		require.Equal(t, b1, b2)
	}
}

func TestApplyCMYKPreservesGeometryAndAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	src.SetNRGBA(1, 1, color.NRGBA{R: 30, G: 58, B: 138, A: 200})

	dst := applyCMYK(src)
	require.Equal(t, src.Bounds(), dst.Bounds())
	require.Equal(t, uint8(200), dst.NRGBAAt(1, 1).A)
}

func TestApplyCMYKIsDeterministic(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for i := range src.Pix {
		src.Pix[i] = uint8(i * 7)
	}
	first := applyCMYK(src)
	second := applyCMYK(src)
	require.Equal(t, first.Pix, second.Pix)
}
