package gui

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const toastDuration = 4 * time.Second

// StatusBar shows persistent state on the left and short-lived notices on
// the right. Notices auto-dismiss.
type StatusBar struct {
	container  *fyne.Container
	stateLabel *widget.Label
	toastLabel *widget.Label

	mu    sync.Mutex
	timer *time.Timer
}

func NewStatusBar() *StatusBar {
	stateLabel := widget.NewLabel("Ready")
	toastLabel := widget.NewLabel("")

	return &StatusBar{
		container:  container.NewBorder(nil, nil, stateLabel, toastLabel),
		stateLabel: stateLabel,
		toastLabel: toastLabel,
	}
}

func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}

// SetState updates the persistent status text. Must run on the fyne thread.
func (sb *StatusBar) SetState(text string) {
	sb.stateLabel.SetText(text)
}

// ShowToast displays a transient notice that clears itself. Safe to call
// from any goroutine.
func (sb *StatusBar) ShowToast(message string) {
	fyne.Do(func() {
		sb.toastLabel.SetText(message)
	})

	sb.mu.Lock()
	defer sb.mu.Unlock()
	if sb.timer != nil {
		sb.timer.Stop()
	}
	sb.timer = time.AfterFunc(toastDuration, func() {
		fyne.Do(func() {
			sb.toastLabel.SetText("")
		})
	})
}
