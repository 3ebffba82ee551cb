// Package session owns the live demo state: the key parameters, the
// active frame producer, and the per-tick compositing step. All shared
// state lives in the Session struct; components receive it by reference
// and nothing mutates globals.
package session

import (
	"context"
	"image"
	"sync"
	"time"

	"chroma-billboard/internal/billboard"
	"chroma-billboard/internal/chroma"
	"chroma-billboard/internal/logger"
	"chroma-billboard/internal/source"
)

// Notifier surfaces a short-lived, user-visible notice. Every recoverable
// failure goes through here; none is silently swallowed.
type Notifier func(message string)

// Generator is the prompt-to-image fetcher. Satisfied by generate.Client.
type Generator interface {
	Fetch(ctx context.Context, prompt string) (*image.NRGBA, error)
}

// CameraOpener requests a capture device. Injectable so tests can run
// without hardware.
type CameraOpener func(device int) (source.Producer, error)

// pendingSwap is an asynchronously prepared producer waiting to be picked
// up by the tick loop. In-flight setup never preempts the displayed
// producer until it succeeds.
type pendingSwap struct {
	producer    source.Producer
	keepPrev    bool // camera: remember the replaced producer for revert
	cameraEpoch uint64
}

type Session struct {
	mu            sync.Mutex
	params        chroma.KeyParams
	chromaEnabled bool
	viewer        billboard.Vec3
	lastFrame     *image.NRGBA

	adapter    *source.Adapter
	procedural *source.Procedural
	keyer      *chroma.Keyer
	surface    *billboard.Surface
	generator  Generator
	openCamera CameraOpener
	notify     Notifier
	log        logger.Logger

	start time.Time

	// Camera lifecycle. The epoch invalidates a pending camera that the
	// user stopped before its setup resolved; cameraPending keeps a second
	// StartCamera from opening the device again while the first setup is
	// still in flight.
	cameraPrev    source.Producer
	cameraActive  bool
	cameraPending bool
	cameraEpoch   uint64

	pending chan pendingSwap
}

func New(generator Generator, log logger.Logger) *Session {
	procedural := source.NewProcedural()
	return &Session{
		params:        chroma.DefaultParams(),
		chromaEnabled: true,
		viewer:        billboard.Vec3{Z: 5},
		adapter:       source.NewAdapter(procedural, log),
		procedural:    procedural,
		keyer:         chroma.NewKeyer(),
		surface:       billboard.NewSurface(billboard.Vec3{Y: 1.5}),
		generator:     generator,
		openCamera:    defaultCameraOpener,
		notify:        func(string) {},
		log:           log,
		start:         time.Now(),
		pending:       make(chan pendingSwap, 4),
	}
}

func defaultCameraOpener(device int) (source.Producer, error) {
	return source.OpenCamera(device)
}

// SetNotifier installs the toast callback.
func (s *Session) SetNotifier(n Notifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n != nil {
		s.notify = n
	}
}

// SetCameraOpener overrides the capture device factory.
func (s *Session) SetCameraOpener(open CameraOpener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if open != nil {
		s.openCamera = open
	}
}

// Surface exposes the display surface to the render collaborator.
func (s *Session) Surface() *billboard.Surface {
	return s.surface
}

// Tick runs one display tick: collect any completed async producer, pull
// a frame, classify it when enabled, and hand the texture to the
// billboard. Errors inside a tick never stop subsequent ticks.
func (s *Session) Tick(now time.Time) *image.NRGBA {
	s.collectPending()

	s.mu.Lock()
	elapsed := now.Sub(s.start)
	params := s.params
	enabled := s.chromaEnabled
	viewer := s.viewer
	s.mu.Unlock()

	frame := s.adapter.Tick(elapsed)
	if enabled {
		frame = s.keyer.Apply(frame, params)
	}

	s.surface.FaceViewer(viewer)
	s.surface.SetTexture(frame)

	s.mu.Lock()
	s.lastFrame = frame
	s.mu.Unlock()
	return frame
}

// CurrentFrame returns the most recently composited buffer, nil before
// the first tick.
func (s *Session) CurrentFrame() *image.NRGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastFrame
}

// collectPending applies at most the queued producer swaps prepared by
// async work since the previous tick.
func (s *Session) collectPending() {
	for {
		select {
		case swap := <-s.pending:
			s.applySwap(swap)
		default:
			return
		}
	}
}

func (s *Session) applySwap(swap pendingSwap) {
	if swap.keepPrev {
		s.mu.Lock()
		stale := swap.cameraEpoch != s.cameraEpoch
		s.cameraPending = false
		s.mu.Unlock()

		if stale {
			// The user stopped the camera before setup resolved; release
			// the device instead of activating it.
			swap.producer.Close()
			return
		}

		prev := s.adapter.Swap(swap.producer)
		s.mu.Lock()
		s.cameraPrev = prev
		s.cameraActive = true
		s.mu.Unlock()
		return
	}

	// A non-camera producer becoming active while the camera runs ends
	// the camera session first, so the device is released rather than
	// silently closed by the switch.
	s.stopCameraIfActive()
	s.adapter.Switch(swap.producer)
}

// Close tears down the active producer chain.
func (s *Session) Close() error {
	s.StopCamera()
	return s.adapter.Close()
}
