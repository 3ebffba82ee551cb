package gui

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"chroma-billboard/internal/session"
	"chroma-billboard/internal/snapshot"
)

// SourceControls drives producer switching: procedural scenes, a video
// file, prompt-generated imagery, and the camera.
type SourceControls struct {
	container   *fyne.Container
	activeLabel *widget.Label
}

func NewSourceControls(sess *session.Session, cameraDevice int, videoFile string, toast func(string)) *SourceControls {
	activeLabel := widget.NewLabel("Source: " + sess.ActiveSource())

	sceneNames := sess.SceneNames()
	sceneSelect := widget.NewSelect(sceneNames, func(name string) {
		for i, n := range sceneNames {
			if n == name {
				sess.SelectScene(i)
				sess.UseProcedural()
				return
			}
		}
	})
	sceneSelect.SetSelectedIndex(0)

	videoEntry := widget.NewEntry()
	videoEntry.SetPlaceHolder("path/to/clip.mp4")
	if videoFile != "" {
		videoEntry.SetText(videoFile)
	}
	videoButton := widget.NewButton("Play Video", func() {
		sess.UseVideo(videoEntry.Text)
	})

	promptEntry := widget.NewEntry()
	promptEntry.SetPlaceHolder("describe an image...")
	generateButton := widget.NewButton("Generate", func() {
		sess.GenerateImage(promptEntry.Text)
	})

	cameraStart := widget.NewButton("Start Camera", func() {
		sess.StartCamera(cameraDevice)
	})
	cameraStop := widget.NewButton("Stop Camera", func() {
		sess.StopCamera()
	})

	snapshotButton := widget.NewButton("Snapshot", func() {
		frame := sess.CurrentFrame()
		path := fmt.Sprintf("snapshot-%d.png", time.Now().Unix())
		if err := snapshot.Save(frame, path); err != nil {
			toast("Snapshot failed")
			return
		}
		toast("Saved " + path)
	})

	return &SourceControls{
		container: container.NewVBox(
			widget.NewLabel("Frame Source"),
			widget.NewSeparator(),
			activeLabel,
			widget.NewLabel("Animation Scene"), sceneSelect,
			widget.NewLabel("Video File"), videoEntry, videoButton,
			widget.NewLabel("Generated Image"), promptEntry, generateButton,
			container.NewGridWithColumns(2, cameraStart, cameraStop),
			widget.NewSeparator(),
			snapshotButton,
		),
		activeLabel: activeLabel,
	}
}

func (sc *SourceControls) GetContainer() *fyne.Container {
	return sc.container
}

// SetActiveSource refreshes the read-only producer name. Must run on the
// fyne thread.
func (sc *SourceControls) SetActiveSource(name string) {
	sc.activeLabel.SetText("Source: " + name)
}
