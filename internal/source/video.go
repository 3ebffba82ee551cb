package source

import (
	"fmt"
	"image"
	"path/filepath"
	"time"

	"gocv.io/x/gocv"
)

// Video samples whatever the decoder currently presents each tick. No
// frame-ready synchronization is performed: a decoder slower than the
// display rate simply repeats its previous frame. Playback loops at end
// of file.
type Video struct {
	path    string
	capture *gocv.VideoCapture
	mat     gocv.Mat
	last    *image.NRGBA
}

func OpenVideo(path string) (*Video, error) {
	capture, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening video %q: %w", path, err)
	}
	return &Video{
		path:    path,
		capture: capture,
		mat:     gocv.NewMat(),
	}, nil
}

func (v *Video) Name() string {
	return "Video: " + filepath.Base(v.path)
}

func (v *Video) Frame(_ time.Duration) (*image.NRGBA, error) {
	if !v.capture.Read(&v.mat) || v.mat.Empty() {
		// End of stream: rewind and try once more.
		v.capture.Set(gocv.VideoCapturePosFrames, 0)
		if !v.capture.Read(&v.mat) || v.mat.Empty() {
			if v.last != nil {
				return v.last, nil
			}
			return nil, fmt.Errorf("video %q yielded no frame", v.path)
		}
	}

	frame, err := matToNRGBA(v.mat)
	if err != nil {
		if v.last != nil {
			return v.last, nil
		}
		return nil, err
	}
	v.last = frame
	return frame, nil
}

func (v *Video) Close() error {
	if err := v.mat.Close(); err != nil {
		return err
	}
	return v.capture.Close()
}
