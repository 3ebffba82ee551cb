package session

import (
	"context"
	"errors"
	"image"

	"chroma-billboard/internal/billboard"
	"chroma-billboard/internal/chroma"
	"chroma-billboard/internal/generate"
	"chroma-billboard/internal/source"
)

func newGeneratedProducer(img *image.NRGBA) source.Producer {
	return source.NewStatic("Generated Image", img)
}

// minFalloff is the lower bound applied to smoothness and spill. The
// classifier divides by both without guarding, so the setters keep them
// away from zero.
const minFalloff = 1e-4

func (s *Session) SetSimilarity(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.Similarity = clamp(v, 0, 1)
}

func (s *Session) SetSmoothness(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.Smoothness = clamp(v, minFalloff, 1)
}

func (s *Session) SetSpill(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.Spill = clamp(v, minFalloff, 1)
}

func (s *Session) SetKeyColor(c chroma.RGB) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.KeyColor = c
}

func (s *Session) SetChromaEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chromaEnabled = enabled
}

func (s *Session) ChromaEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chromaEnabled
}

// SetViewer updates the viewer position consumed on the next tick.
func (s *Session) SetViewer(v billboard.Vec3) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewer = v
}

// Params returns a copy of the current tunables.
func (s *Session) Params() chroma.KeyParams {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// ActiveSource reports the current producer name for the UI.
func (s *Session) ActiveSource() string {
	return s.adapter.ActiveName()
}

// SceneNames lists the procedural scenes.
func (s *Session) SceneNames() []string {
	return s.procedural.SceneNames()
}

// SelectScene switches the procedural draw routine, effective next tick.
func (s *Session) SelectScene(index int) {
	s.procedural.SelectScene(index)
}

// UseProcedural switches back to the procedural animation producer.
func (s *Session) UseProcedural() {
	s.stopCameraIfActive()
	s.adapter.Switch(s.procedural)
}

// UseVideo activates a video-file producer. On failure the previous
// producer stays active and the user is notified.
func (s *Session) UseVideo(path string) {
	video, err := source.OpenVideo(path)
	if err != nil {
		s.log.Error("Session", err, map[string]interface{}{"path": path})
		s.notifier()("Could not open video, keeping current source")
		return
	}
	s.stopCameraIfActive()
	s.adapter.Switch(video)
}

// GenerateImage fetches prompt-driven imagery asynchronously. While a
// fetch is in flight a new request is ignored; on failure the previous
// producer remains active and a notice is surfaced.
func (s *Session) GenerateImage(prompt string) {
	if prompt == "" {
		s.notifier()("Enter a prompt first")
		return
	}

	go func() {
		img, err := s.generator.Fetch(context.Background(), prompt)
		if err != nil {
			if errors.Is(err, generate.ErrFetchInFlight) {
				s.log.Debug("Session", "generation request ignored, fetch in flight", map[string]interface{}{
					"prompt": prompt,
				})
				return
			}
			s.log.Error("Session", err, map[string]interface{}{"prompt": prompt})
			s.notifier()("Image generation failed, keeping current source")
			return
		}

		s.queueSwap(pendingSwap{producer: newGeneratedProducer(img)})
		s.notifier()("Generated image ready")
	}()
}

// StartCamera requests the capture device asynchronously. On denial the
// previous producer remains active and a notice is surfaced.
func (s *Session) StartCamera(device int) {
	s.mu.Lock()
	// cameraPending covers the window between spawning the setup and its
	// pickup by the tick loop, so a repeated press cannot open the device
	// twice.
	if s.cameraActive || s.cameraPending {
		s.mu.Unlock()
		return
	}
	s.cameraPending = true
	epoch := s.cameraEpoch
	open := s.openCamera
	s.mu.Unlock()

	go func() {
		producer, err := open(device)
		if err != nil {
			s.mu.Lock()
			s.cameraPending = false
			s.mu.Unlock()
			s.log.Error("Session", err, map[string]interface{}{"device": device})
			s.notifier()("Camera unavailable, keeping current source")
			return
		}
		if !s.queueSwap(pendingSwap{producer: producer, keepPrev: true, cameraEpoch: epoch}) {
			s.mu.Lock()
			s.cameraPending = false
			s.mu.Unlock()
		}
	}()
}

// StopCamera tears down the capture device deterministically and reverts
// to the producer that was active before the camera started. Safe to call
// when no camera is running.
func (s *Session) StopCamera() {
	s.mu.Lock()
	// Invalidate any camera setup still in flight.
	s.cameraEpoch++
	if !s.cameraActive {
		s.mu.Unlock()
		return
	}
	prev := s.cameraPrev
	s.cameraActive = false
	s.cameraPrev = nil
	s.mu.Unlock()

	camera := s.adapter.Swap(prev)
	if camera != nil {
		// Retire waits out a Frame call still running on the tick
		// goroutine before releasing the device.
		if err := s.adapter.Retire(camera); err != nil {
			s.log.Warning("Session", "camera release failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	s.log.Info("Session", "camera stopped", map[string]interface{}{
		"reverted_to": s.adapter.ActiveName(),
	})
}

// CameraActive reports whether a live camera producer is displayed.
func (s *Session) CameraActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cameraActive
}

func (s *Session) stopCameraIfActive() {
	s.mu.Lock()
	active := s.cameraActive
	s.mu.Unlock()
	if active {
		s.StopCamera()
	}
}

// queueSwap publishes an async result for pickup on a subsequent tick
// and reports whether it was accepted. If the queue is full the producer
// is released rather than blocking the completing goroutine.
func (s *Session) queueSwap(swap pendingSwap) bool {
	select {
	case s.pending <- swap:
		return true
	default:
		swap.producer.Close()
		s.log.Warning("Session", "pending producer dropped, queue full", map[string]interface{}{
			"producer": swap.producer.Name(),
		})
		return false
	}
}

func (s *Session) notifier() Notifier {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notify
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
