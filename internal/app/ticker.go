package app

import (
	"math"
	"sync"
	"time"

	"chroma-billboard/internal/billboard"
	"chroma-billboard/internal/gui"
	"chroma-billboard/internal/logger"
	"chroma-billboard/internal/session"
)

// Display refresh target. The loop is paced by the ticker and never
// self-throttles beyond it; a slow tick simply delays the next one.
const tickInterval = time.Second / 60

// ticker is the display tick driver: once per interval it updates the
// viewer orbit, runs the session tick, and hands the composited frame to
// the GUI.
type ticker struct {
	session *session.Session
	gui     *gui.Manager
	log     logger.Logger

	mu      sync.Mutex
	stop    chan struct{}
	done    chan struct{}
	started bool
}

func newTicker(sess *session.Session, guiManager *gui.Manager, log logger.Logger) *ticker {
	return &ticker{
		session: sess,
		gui:     guiManager,
		log:     log,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

func (t *ticker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.started {
		return
	}
	t.started = true
	go t.loop()
}

func (t *ticker) Stop() {
	t.mu.Lock()
	if !t.started {
		t.mu.Unlock()
		return
	}
	t.mu.Unlock()

	select {
	case <-t.stop:
	default:
		close(t.stop)
	}
	<-t.done
}

func (t *ticker) loop() {
	defer close(t.done)

	tick := time.NewTicker(tickInterval)
	defer tick.Stop()

	start := time.Now()
	for {
		select {
		case <-t.stop:
			t.log.Debug("TickDriver", "stopped", nil)
			return
		case now := <-tick.C:
			t.session.SetViewer(orbitViewer(now.Sub(start).Seconds()))
			frame := t.session.Tick(now)
			t.gui.RefreshFrame(frame)
		}
	}
}

// orbitViewer moves the viewer slowly around the billboard so the
// yaw-only facing behavior is visible.
func orbitViewer(seconds float64) billboard.Vec3 {
	angle := seconds * 0.15
	return billboard.Vec3{
		X: 5 * math.Sin(angle),
		Y: 1.6,
		Z: 5 * math.Cos(angle),
	}
}
