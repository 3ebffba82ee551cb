// Package chroma implements the per-pixel chroma-key classifier.
//
// A pixel is compared to the reference key color in a 2D chrominance
// plane; luma is discarded so shading on the subject does not trigger
// false keying. The transform is pure and stateless per pixel.
package chroma

import "math"

// RGB is a color triple with channels in [0, 1].
type RGB struct {
	R, G, B float64
}

// UV projects a color onto the chroma plane of a YUV-style decomposition.
// The luma axis is deliberately dropped.
func (c RGB) UV() (u, v float64) {
	u = c.R*-0.169 + c.G*-0.331 + c.B*0.5 + 0.5
	v = c.R*0.5 + c.G*-0.419 + c.B*-0.081 + 0.5
	return u, v
}

// Distance returns the Euclidean distance between two colors in the
// chroma plane. Zero means chrominance-identical regardless of brightness.
func Distance(a, b RGB) float64 {
	au, av := a.UV()
	bu, bv := b.UV()
	du := au - bu
	dv := av - bv
	return math.Sqrt(du*du + dv*dv)
}

// KeyParams are the live tunables read by the classifier each frame.
//
// Smoothness and Spill must be non-zero; the classifier divides by them
// without guarding. Callers clamp at the setter boundary.
type KeyParams struct {
	KeyColor   RGB
	Similarity float64 // chroma distance below which a pixel is background
	Smoothness float64 // softness of the alpha falloff past the threshold
	Spill      float64 // softness of the desaturation falloff, tuned separately
}

// DefaultParams returns the green-screen demo defaults.
func DefaultParams() KeyParams {
	return KeyParams{
		KeyColor:   RGB{R: 0, G: 1, B: 0},
		Similarity: 0.4,
		Smoothness: 0.08,
		Spill:      0.06,
	}
}

// KeyPixel classifies one sample against the key color. It returns the
// spill-suppressed color and the opacity: 0 for keyed-out background,
// 1 for fully retained foreground.
func KeyPixel(c RGB, p KeyParams) (out RGB, alpha float64) {
	mask := Distance(c, p.KeyColor) - p.Similarity

	alpha = falloff(mask / p.Smoothness)
	spill := falloff(mask / p.Spill)

	// Desaturate toward perceptual luma where the spill factor is low,
	// so key-colored bleed on the subject loses its tint.
	luma := clamp01(0.2126*c.R + 0.7152*c.G + 0.0722*c.B)
	out = RGB{
		R: lerp(luma, c.R, spill),
		G: lerp(luma, c.G, spill),
		B: lerp(luma, c.B, spill),
	}
	return out, alpha
}

// falloff shapes the transition band. The 1.5 exponent keeps
// near-background pixels more transparent than a linear ramp would.
func falloff(x float64) float64 {
	x = clamp01(x)
	return x * math.Sqrt(x)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
