package source

import (
	"fmt"
	"image"
	"time"

	"gocv.io/x/gocv"
)

// Camera sources frames from a live capture device. Close releases the
// device deterministically; no capture handle outlives the producer.
type Camera struct {
	device  int
	capture *gocv.VideoCapture
	mat     gocv.Mat
	last    *image.NRGBA
}

// OpenCamera requests the capture device. A refused or missing device
// surfaces as ErrDeviceAccess so callers can keep the previous producer.
func OpenCamera(device int) (*Camera, error) {
	capture, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("%w: device %d: %v", ErrDeviceAccess, device, err)
	}
	return &Camera{
		device:  device,
		capture: capture,
		mat:     gocv.NewMat(),
	}, nil
}

func (c *Camera) Name() string {
	return fmt.Sprintf("Camera %d", c.device)
}

func (c *Camera) Frame(_ time.Duration) (*image.NRGBA, error) {
	if !c.capture.Read(&c.mat) || c.mat.Empty() {
		if c.last != nil {
			return c.last, nil
		}
		return nil, fmt.Errorf("%w: device %d stopped delivering frames", ErrDeviceAccess, c.device)
	}

	frame, err := matToNRGBA(c.mat)
	if err != nil {
		if c.last != nil {
			return c.last, nil
		}
		return nil, err
	}
	c.last = frame
	return frame, nil
}

func (c *Camera) Close() error {
	if err := c.mat.Close(); err != nil {
		return err
	}
	return c.capture.Close()
}
