package chroma

import (
	"image"
	"runtime"
	"sync"
)

// Keyer applies the chroma-key transform to whole frames. The per-pixel
// step has no cross-pixel dependency, so rows are striped across workers.
type Keyer struct {
	workers int
}

func NewKeyer() *Keyer {
	return &Keyer{workers: runtime.NumCPU()}
}

// Apply produces a new buffer of identical dimensions where each sample's
// alpha and color carry the classification result. The source is never
// modified.
func (k *Keyer) Apply(src *image.NRGBA, params KeyParams) *image.NRGBA {
	bounds := src.Bounds()
	dst := image.NewNRGBA(bounds)

	height := bounds.Dy()
	workers := k.workers
	if workers > height {
		workers = height
	}
	if workers < 1 {
		workers = 1
	}

	band := (height + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		y0 := bounds.Min.Y + w*band
		y1 := y0 + band
		if y1 > bounds.Max.Y {
			y1 = bounds.Max.Y
		}
		if y0 >= y1 {
			break
		}

		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			keyRows(src, dst, params, y0, y1)
		}(y0, y1)
	}
	wg.Wait()

	return dst
}

func keyRows(src, dst *image.NRGBA, params KeyParams, y0, y1 int) {
	bounds := src.Bounds()
	for y := y0; y < y1; y++ {
		srcRow := src.Pix[(y-bounds.Min.Y)*src.Stride:]
		dstRow := dst.Pix[(y-bounds.Min.Y)*dst.Stride:]
		for x := 0; x < bounds.Dx(); x++ {
			i := x * 4
			c := RGB{
				R: float64(srcRow[i]) / 255,
				G: float64(srcRow[i+1]) / 255,
				B: float64(srcRow[i+2]) / 255,
			}

			out, alpha := KeyPixel(c, params)

			dstRow[i] = uint8(out.R*255 + 0.5)
			dstRow[i+1] = uint8(out.G*255 + 0.5)
			dstRow[i+2] = uint8(out.B*255 + 0.5)
			dstRow[i+3] = uint8(alpha*255 + 0.5)
		}
	}
}
