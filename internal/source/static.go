package source

import (
	"image"
	"time"
)

// Static returns one decoded buffer every tick until replaced. Used for
// externally fetched imagery.
type Static struct {
	name string
	img  *image.NRGBA
}

func NewStatic(name string, img *image.NRGBA) *Static {
	return &Static{name: name, img: img}
}

func (s *Static) Name() string { return s.name }

func (s *Static) Frame(_ time.Duration) (*image.NRGBA, error) {
	return s.img, nil
}

func (s *Static) Close() error { return nil }
