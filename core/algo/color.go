package algo

import "github.com/lucasb-eyer/go-colorful"

// ColorInterpolator blends two hex colors. t is in [0, 1] where 0 yields a and 1 yields b.
type ColorInterpolator interface {
	Interpolate(a, b string, t float64) string
}

// RGBInterpolator blends colors linearly in sRGB space.
type RGBInterpolator struct{}

// Interpolate implements ColorInterpolator. Unparseable input falls back to a.
func (RGBInterpolator) Interpolate(a, b string, t float64) string {
	ca, err := colorful.Hex(a)
	if err != nil {
		return a
	}
	cb, err := colorful.Hex(b)
	if err != nil {
		return a
	}
	return ca.BlendRgb(cb, clamp01(t)).Hex()
}

func clamp01(t float64) float64 {
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	default:
		return t
	}
}
