// Package app wires the session, the GUI collaborator, and the display
// tick driver into a runnable application.
package app

import (
	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	"chroma-billboard/internal/generate"
	"chroma-billboard/internal/gui"
	"chroma-billboard/internal/logger"
	"chroma-billboard/internal/session"
	"chroma-billboard/internal/source"
)

const (
	AppName = "Chroma Billboard"
	AppID   = "com.chromademo.chromabillboard"
)

type Application struct {
	fyneApp    fyne.App
	window     fyne.Window
	session    *session.Session
	guiManager *gui.Manager
	ticker     *ticker
	log        logger.Logger
}

func NewApplication(log logger.Logger) (*Application, error) {
	config := ConfigFromEnv()

	log.Info("Application", "starting", map[string]interface{}{
		"generate_url":  config.GenerateURL,
		"camera_device": config.CameraDevice,
		"video_file":    config.VideoFile,
	})

	generator := generate.NewClient(config.GenerateURL, source.FrameWidth, source.FrameHeight)
	sess := session.New(generator, log)

	fyneApp := fyneapp.NewWithID(AppID)
	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(1100, 640))
	window.CenterOnScreen()
	window.SetMaster()

	guiManager := gui.NewManager(sess, config.CameraDevice, config.VideoFile, log)
	window.SetContent(guiManager.GetMainContainer())

	application := &Application{
		fyneApp:    fyneApp,
		window:     window,
		session:    sess,
		guiManager: guiManager,
		ticker:     newTicker(sess, guiManager, log),
		log:        log,
	}

	log.Info("Application", "initialization complete", nil)
	return application, nil
}

func (a *Application) Run() error {
	a.ticker.Start()

	a.window.SetCloseIntercept(func() {
		a.log.Info("Application", "shutdown requested", nil)
		a.Shutdown()
		a.window.Close()
	})

	a.window.Show()
	a.fyneApp.Run()
	return nil
}

// Shutdown stops the tick driver first, then releases producers so no
// capture device outlives the session. Idempotent.
func (a *Application) Shutdown() {
	a.ticker.Stop()

	if err := a.session.Close(); err != nil {
		a.log.Warning("Application", "session close failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
	a.log.Info("Application", "shutdown complete", nil)
}

// Quit asks the fyne event loop to exit. Safe from any goroutine.
func (a *Application) Quit() {
	fyne.Do(func() {
		a.fyneApp.Quit()
	})
}
