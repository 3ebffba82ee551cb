package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"chroma-billboard/internal/chroma"
	"chroma-billboard/internal/session"
)

var keyColors = map[string]chroma.RGB{
	"Green":   {R: 0, G: 1, B: 0},
	"Blue":    {R: 0, G: 0, B: 1},
	"Magenta": {R: 1, G: 0, B: 1},
}

// ParameterPanel exposes the live tunables. Slider changes apply
// immediately; the next tick reads the new values.
type ParameterPanel struct {
	container *fyne.Container
}

func NewParameterPanel(sess *session.Session) *ParameterPanel {
	params := sess.Params()

	similarityLabel := widget.NewLabel(fmt.Sprintf("Similarity: %.2f", params.Similarity))
	similaritySlider := widget.NewSlider(0, 1)
	similaritySlider.Step = 0.01
	similaritySlider.SetValue(params.Similarity)
	similaritySlider.OnChanged = func(v float64) {
		similarityLabel.SetText(fmt.Sprintf("Similarity: %.2f", v))
		sess.SetSimilarity(v)
	}

	smoothnessLabel := widget.NewLabel(fmt.Sprintf("Smoothness: %.3f", params.Smoothness))
	smoothnessSlider := widget.NewSlider(0.001, 0.5)
	smoothnessSlider.Step = 0.001
	smoothnessSlider.SetValue(params.Smoothness)
	smoothnessSlider.OnChanged = func(v float64) {
		smoothnessLabel.SetText(fmt.Sprintf("Smoothness: %.3f", v))
		sess.SetSmoothness(v)
	}

	spillLabel := widget.NewLabel(fmt.Sprintf("Spill: %.3f", params.Spill))
	spillSlider := widget.NewSlider(0.001, 0.5)
	spillSlider.Step = 0.001
	spillSlider.SetValue(params.Spill)
	spillSlider.OnChanged = func(v float64) {
		spillLabel.SetText(fmt.Sprintf("Spill: %.3f", v))
		sess.SetSpill(v)
	}

	keyColorSelect := widget.NewSelect([]string{"Green", "Blue", "Magenta"}, func(name string) {
		if c, ok := keyColors[name]; ok {
			sess.SetKeyColor(c)
		}
	})
	keyColorSelect.SetSelected("Green")

	enabledCheck := widget.NewCheck("Chroma key enabled", func(on bool) {
		sess.SetChromaEnabled(on)
	})
	enabledCheck.SetChecked(sess.ChromaEnabled())

	return &ParameterPanel{
		container: container.NewVBox(
			widget.NewLabel("Key Parameters"),
			widget.NewSeparator(),
			similarityLabel, similaritySlider,
			smoothnessLabel, smoothnessSlider,
			spillLabel, spillSlider,
			widget.NewLabel("Key Color"), keyColorSelect,
			enabledCheck,
		),
	}
}

func (pp *ParameterPanel) GetContainer() *fyne.Container {
	return pp.container
}
