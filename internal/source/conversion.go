package source

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"gocv.io/x/gocv"
)

// matToNRGBA converts a decoded BGR Mat into a non-premultiplied RGBA
// buffer at the compositing dimensions.
func matToNRGBA(mat gocv.Mat) (*image.NRGBA, error) {
	img, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("mat conversion: %w", err)
	}

	b := img.Bounds()
	if b.Dx() == FrameWidth && b.Dy() == FrameHeight {
		return imaging.Clone(img), nil
	}
	return imaging.Resize(img, FrameWidth, FrameHeight, imaging.Linear), nil
}
