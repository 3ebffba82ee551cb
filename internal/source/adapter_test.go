package source

import (
	"errors"
	"image"
	"sync/atomic"
	"testing"
	"time"

	"chroma-billboard/internal/logger"
)

// fakeProducer lets tests script frame delivery and observe lifecycle.
type fakeProducer struct {
	name   string
	frame  *image.NRGBA
	err    error
	closed bool
	calls  int
}

func (f *fakeProducer) Name() string { return f.name }

func (f *fakeProducer) Frame(time.Duration) (*image.NRGBA, error) {
	f.calls++
	return f.frame, f.err
}

func (f *fakeProducer) Close() error {
	f.closed = true
	return nil
}

func solidFrame(w, h int, r uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = r
		img.Pix[i+3] = 255
	}
	return img
}

func TestTickEnforcesDimensions(t *testing.T) {
	cases := []struct {
		name string
		w, h int
	}{
		{"exact", FrameWidth, FrameHeight},
		{"undersized", 100, 50},
		{"oversized", 1920, 1080},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			adapter := NewAdapter(&fakeProducer{name: "fake", frame: solidFrame(tc.w, tc.h, 10)}, logger.Nop{})
			frame := adapter.Tick(0)
			if frame.Bounds().Dx() != FrameWidth || frame.Bounds().Dy() != FrameHeight {
				t.Errorf("frame size = %v, want %dx%d", frame.Bounds(), FrameWidth, FrameHeight)
			}
		})
	}
}

func TestTickFallsBackOnProducerError(t *testing.T) {
	good := solidFrame(FrameWidth, FrameHeight, 200)
	producer := &fakeProducer{name: "flaky", frame: good}
	adapter := NewAdapter(producer, logger.Nop{})

	first := adapter.Tick(0)

	producer.frame = nil
	producer.err = errors.New("decoder stalled")

	second := adapter.Tick(time.Second)
	if second != first {
		t.Error("failed tick should return the last-known-good buffer")
	}
	for i := range second.Pix {
		if second.Pix[i] != good.Pix[i] {
			t.Fatalf("pixel %d changed after producer failure", i)
		}
	}
}

func TestSwitchReplacesAndClosesPrevious(t *testing.T) {
	first := &fakeProducer{name: "first", frame: solidFrame(FrameWidth, FrameHeight, 1)}
	second := &fakeProducer{name: "second", frame: solidFrame(FrameWidth, FrameHeight, 2)}
	adapter := NewAdapter(first, logger.Nop{})

	adapter.Switch(second)

	if !first.closed {
		t.Error("Switch must close the replaced producer")
	}
	if got := adapter.ActiveName(); got != "second" {
		t.Errorf("ActiveName = %q, want %q", got, "second")
	}

	frame := adapter.Tick(0)
	if frame.Pix[0] != 2 {
		t.Errorf("frame comes from old producer: pixel = %d, want 2", frame.Pix[0])
	}
	if first.calls != 0 {
		t.Error("replaced producer was still asked for frames")
	}
}

func TestSwapKeepsPreviousProducerAlive(t *testing.T) {
	first := &fakeProducer{name: "first", frame: solidFrame(FrameWidth, FrameHeight, 1)}
	second := &fakeProducer{name: "second", frame: solidFrame(FrameWidth, FrameHeight, 2)}
	adapter := NewAdapter(first, logger.Nop{})

	old := adapter.Swap(second)
	if old != first {
		t.Fatal("Swap must return the replaced producer")
	}
	if first.closed {
		t.Error("Swap must not close the replaced producer")
	}

	// Restoring the old producer works without reopening anything.
	adapter.Swap(first)
	if got := adapter.ActiveName(); got != "first" {
		t.Errorf("ActiveName after restore = %q, want %q", got, "first")
	}
}

// blockingProducer parks inside Frame until released, the way a slow
// capture read holds the tick goroutine, and records whether Close ran
// while a Frame call was still executing.
type blockingProducer struct {
	frame             *image.NRGBA
	entered           chan struct{}
	release           chan struct{}
	inFrame           atomic.Bool
	closed            atomic.Bool
	closedDuringFrame atomic.Bool
}

func newBlockingProducer() *blockingProducer {
	return &blockingProducer{
		frame:   solidFrame(FrameWidth, FrameHeight, 5),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (b *blockingProducer) Name() string { return "blocking" }

func (b *blockingProducer) Frame(time.Duration) (*image.NRGBA, error) {
	b.inFrame.Store(true)
	close(b.entered)
	<-b.release
	b.inFrame.Store(false)
	return b.frame, nil
}

func (b *blockingProducer) Close() error {
	if b.inFrame.Load() {
		b.closedDuringFrame.Store(true)
	}
	b.closed.Store(true)
	return nil
}

func TestSwitchWaitsForInFlightFrame(t *testing.T) {
	first := newBlockingProducer()
	adapter := NewAdapter(first, logger.Nop{})

	tickDone := make(chan struct{})
	go func() {
		adapter.Tick(0)
		close(tickDone)
	}()
	<-first.entered

	switchDone := make(chan struct{})
	go func() {
		adapter.Switch(&fakeProducer{name: "next", frame: solidFrame(FrameWidth, FrameHeight, 9)})
		close(switchDone)
	}()

	select {
	case <-switchDone:
		t.Fatal("Switch completed while the replaced producer's Frame was still executing")
	case <-time.After(50 * time.Millisecond):
	}
	if first.closed.Load() {
		t.Fatal("replaced producer was closed while its Frame was still executing")
	}

	close(first.release)
	<-tickDone
	<-switchDone

	if first.closedDuringFrame.Load() {
		t.Error("Close overlapped an in-flight Frame call")
	}
	if !first.closed.Load() {
		t.Error("replaced producer must be closed once its Frame returns")
	}
}

func TestRetireWaitsForInFlightFrame(t *testing.T) {
	cam := newBlockingProducer()
	adapter := NewAdapter(cam, logger.Nop{})

	tickDone := make(chan struct{})
	go func() {
		adapter.Tick(0)
		close(tickDone)
	}()
	<-cam.entered

	// The revert-to-previous path: swap first, release afterwards.
	adapter.Swap(&fakeProducer{name: "prev", frame: solidFrame(FrameWidth, FrameHeight, 1)})

	retireDone := make(chan struct{})
	go func() {
		adapter.Retire(cam)
		close(retireDone)
	}()

	select {
	case <-retireDone:
		t.Fatal("Retire completed while the producer's Frame was still executing")
	case <-time.After(50 * time.Millisecond):
	}

	close(cam.release)
	<-tickDone
	<-retireDone

	if cam.closedDuringFrame.Load() {
		t.Error("Close overlapped an in-flight Frame call")
	}
	if !cam.closed.Load() {
		t.Error("retired producer must be closed once its Frame returns")
	}
}

func TestStaticProducerReturnsSameBuffer(t *testing.T) {
	img := solidFrame(FrameWidth, FrameHeight, 77)
	static := NewStatic("Generated", img)

	for i := 0; i < 3; i++ {
		frame, err := static.Frame(time.Duration(i) * time.Second)
		if err != nil {
			t.Fatalf("Frame: %v", err)
		}
		if frame != img {
			t.Fatal("static producer must return the decoded buffer unchanged")
		}
	}
}
