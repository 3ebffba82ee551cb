package source

import (
	"image"
	"sync"
	"time"

	"github.com/disintegration/imaging"

	"chroma-billboard/internal/logger"
)

// Adapter owns the active producer and the last-known-good buffer.
// Replacing the producer is wholesale: the tick loop never observes a
// half-updated source.
//
// Two locks: mu guards the struct fields; frameMu is held for the whole
// Frame call and by every close of a replaced producer, so a producer is
// never released while its Frame is still executing on the tick
// goroutine. gocv-backed producers read from a CGo capture handle, and a
// close concurrent with a read is a use-after-free.
type Adapter struct {
	mu       sync.Mutex
	frameMu  sync.Mutex
	active   Producer
	lastGood *image.NRGBA
	log      logger.Logger
}

func NewAdapter(initial Producer, log logger.Logger) *Adapter {
	return &Adapter{
		active:   initial,
		lastGood: image.NewNRGBA(frameRect()),
		log:      log,
	}
}

// Tick pulls the current frame from the active producer. A producer error
// falls back to the last-known-good buffer and never propagates; a frame
// of mismatched dimensions is resized so the dimension invariant holds
// across every producer kind.
func (a *Adapter) Tick(elapsed time.Duration) *image.NRGBA {
	a.frameMu.Lock()
	a.mu.Lock()
	producer := a.active
	a.mu.Unlock()

	if producer == nil {
		a.frameMu.Unlock()
		return a.lastKnownGood()
	}

	frame, err := producer.Frame(elapsed)
	a.frameMu.Unlock()

	if err != nil || frame == nil {
		a.log.Warning("FrameSource", "producer failed, keeping previous buffer", map[string]interface{}{
			"producer": producer.Name(),
			"error":    errString(err),
		})
		return a.lastKnownGood()
	}

	if frame.Bounds().Dx() != FrameWidth || frame.Bounds().Dy() != FrameHeight {
		frame = imaging.Resize(frame, FrameWidth, FrameHeight, imaging.Linear)
	}

	a.mu.Lock()
	a.lastGood = frame
	a.mu.Unlock()
	return frame
}

// Switch atomically replaces the active producer and closes the previous
// one, after any in-flight Frame call on it has returned.
func (a *Adapter) Switch(p Producer) {
	old := a.Swap(p)
	if old != nil && old != p {
		if err := a.Retire(old); err != nil {
			a.log.Warning("FrameSource", "closing previous producer failed", map[string]interface{}{
				"producer": old.Name(),
				"error":    err.Error(),
			})
		}
	}
}

// Retire closes a producer that is no longer active. It waits for any
// Frame call still executing on the tick goroutine to return, so callers
// holding a producer obtained from Swap can release it safely from any
// goroutine.
func (a *Adapter) Retire(p Producer) error {
	a.frameMu.Lock()
	defer a.frameMu.Unlock()
	return p.Close()
}

// Swap atomically replaces the active producer and returns the previous
// one without closing it, for callers that intend to restore it later.
func (a *Adapter) Swap(p Producer) Producer {
	a.mu.Lock()
	defer a.mu.Unlock()

	old := a.active
	a.active = p
	if p != nil {
		a.log.Info("FrameSource", "producer switched", map[string]interface{}{
			"producer": p.Name(),
		})
	}
	return old
}

// ActiveName reports the current producer for the UI.
func (a *Adapter) ActiveName() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.active == nil {
		return "none"
	}
	return a.active.Name()
}

// Close releases the active producer.
func (a *Adapter) Close() error {
	a.mu.Lock()
	active := a.active
	a.active = nil
	a.mu.Unlock()

	if active == nil {
		return nil
	}
	return a.Retire(active)
}

func (a *Adapter) lastKnownGood() *image.NRGBA {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastGood
}

func errString(err error) string {
	if err == nil {
		return "nil frame"
	}
	return err.Error()
}
