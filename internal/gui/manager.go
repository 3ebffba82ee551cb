// Package gui is the UI collaborator: it wires fyne widgets to the
// session's command interface and displays the composited texture. The
// session never depends on this package.
package gui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"

	"chroma-billboard/internal/logger"
	"chroma-billboard/internal/session"
)

type Manager struct {
	session *session.Session
	display *ImageDisplay
	params  *ParameterPanel
	sources *SourceControls
	status  *StatusBar
	content *fyne.Container
	log     logger.Logger
}

func NewManager(sess *session.Session, cameraDevice int, videoFile string, log logger.Logger) *Manager {
	status := NewStatusBar()
	display := NewImageDisplay()
	params := NewParameterPanel(sess)
	sources := NewSourceControls(sess, cameraDevice, videoFile, status.ShowToast)

	sess.SetNotifier(status.ShowToast)

	content := container.NewBorder(
		nil,
		status.GetContainer(),
		params.GetContainer(),
		sources.GetContainer(),
		display.GetContainer(),
	)

	return &Manager{
		session: sess,
		display: display,
		params:  params,
		sources: sources,
		status:  status,
		content: content,
		log:     log,
	}
}

func (m *Manager) GetMainContainer() *fyne.Container {
	return m.content
}

// RefreshFrame publishes the latest composited frame to the display.
// Called from the tick goroutine; marshals onto the fyne thread.
func (m *Manager) RefreshFrame(frame *image.NRGBA) {
	name := m.session.ActiveSource()
	fyne.Do(func() {
		m.display.Update(frame)
		m.sources.SetActiveSource(name)
	})
}
