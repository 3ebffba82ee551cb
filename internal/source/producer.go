// Package source maintains exactly one active frame producer and delivers
// a fresh pixel buffer once per display tick. Producers cover decoded
// video, procedural animation, a fetched static image, and a live camera.
package source

import (
	"errors"
	"image"
	"time"
)

// Compositing dimensions. Every buffer handed to the classifier has
// exactly this size; the adapter resizes any producer that disagrees.
const (
	FrameWidth  = 512
	FrameHeight = 512
)

// ErrDeviceAccess reports a refused or missing capture device.
var ErrDeviceAccess = errors.New("capture device unavailable")

// Producer supplies one pixel buffer per tick. Implementations may return
// the same buffer on consecutive ticks when no fresh data exists (a video
// decoder slower than the display rate, a static image). The returned
// buffer is read-only to callers.
type Producer interface {
	Name() string
	Frame(elapsed time.Duration) (*image.NRGBA, error)
	Close() error
}

func frameRect() image.Rectangle {
	return image.Rect(0, 0, FrameWidth, FrameHeight)
}
