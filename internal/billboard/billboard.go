// Package billboard models the display surface: a flat quad that carries
// the composited texture and continuously re-orients about the vertical
// axis to face the viewer. Pitch and roll never change.
package billboard

import (
	"image"
	"math"
	"sync"
)

// Vec3 is a point or direction in the collaborator scene's space.
type Vec3 struct {
	X, Y, Z float64
}

// Surface owns the current composited texture and its spatial transform.
// The unrotated surface normal points along +Z.
type Surface struct {
	Position Vec3

	mu      sync.Mutex
	yaw     float64
	texture *image.NRGBA
}

func NewSurface(position Vec3) *Surface {
	return &Surface{Position: position}
}

// FaceViewer rotates the surface about the vertical axis so its normal's
// horizontal projection points at the viewer. The viewer's height is
// ignored: this is not full billboarding.
func (s *Surface) FaceViewer(viewer Vec3) {
	dx := viewer.X - s.Position.X
	dz := viewer.Z - s.Position.Z
	if dx == 0 && dz == 0 {
		return // viewer directly above or below, keep current heading
	}

	s.mu.Lock()
	s.yaw = math.Atan2(dx, dz)
	s.mu.Unlock()
}

// Yaw returns the current heading in radians.
func (s *Surface) Yaw() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.yaw
}

// ModelMatrix returns the column-major rotation-then-translation transform
// consumed by the render collaborator.
func (s *Surface) ModelMatrix() [16]float64 {
	s.mu.Lock()
	yaw := s.yaw
	s.mu.Unlock()

	sin, cos := math.Sincos(yaw)
	return [16]float64{
		cos, 0, -sin, 0,
		0, 1, 0, 0,
		sin, 0, cos, 0,
		s.Position.X, s.Position.Y, s.Position.Z, 1,
	}
}

// SetTexture swaps the composited texture reference.
func (s *Surface) SetTexture(tex *image.NRGBA) {
	s.mu.Lock()
	s.texture = tex
	s.mu.Unlock()
}

// Texture returns the currently displayed texture, nil before first tick.
func (s *Surface) Texture() *image.NRGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.texture
}
