package gui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"

	"chroma-billboard/internal/source"
)

// ImageDisplay renders the billboard texture. The checkerboard backdrop
// shows through wherever the classifier keyed pixels out.
type ImageDisplay struct {
	container *fyne.Container
	backdrop  *canvas.Image
	frame     *canvas.Image
}

func NewImageDisplay() *ImageDisplay {
	backdrop := canvas.NewImageFromImage(checkerboard())
	backdrop.FillMode = canvas.ImageFillContain

	frame := canvas.NewImageFromImage(image.NewNRGBA(image.Rect(0, 0, source.FrameWidth, source.FrameHeight)))
	frame.FillMode = canvas.ImageFillContain
	frame.SetMinSize(fyne.NewSize(source.FrameWidth, source.FrameHeight))

	return &ImageDisplay{
		container: container.NewStack(backdrop, frame),
		backdrop:  backdrop,
		frame:     frame,
	}
}

func (d *ImageDisplay) GetContainer() *fyne.Container {
	return d.container
}

// Update swaps in the next composited frame. Must run on the fyne thread.
func (d *ImageDisplay) Update(img *image.NRGBA) {
	if img == nil {
		return
	}
	d.frame.Image = img
	d.frame.Refresh()
}

func checkerboard() *image.NRGBA {
	const cell = 32
	img := image.NewNRGBA(image.Rect(0, 0, source.FrameWidth, source.FrameHeight))
	for y := 0; y < source.FrameHeight; y++ {
		for x := 0; x < source.FrameWidth; x++ {
			shade := uint8(70)
			if (x/cell+y/cell)%2 == 0 {
				shade = 110
			}
			i := y*img.Stride + x*4
			img.Pix[i] = shade
			img.Pix[i+1] = shade
			img.Pix[i+2] = shade
			img.Pix[i+3] = 255
		}
	}
	return img
}
