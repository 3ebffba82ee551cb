package source

import (
	"image"
	"image/color"
	"math"
	"sync/atomic"
	"time"
)

// keyGreen is the background every scene paints, so the classifier has
// something to remove.
var keyGreen = color.NRGBA{G: 255, A: 255}

// Scene is one deterministic draw routine parameterized by elapsed
// wall-clock time since the session started.
type Scene struct {
	Name string
	Draw func(img *image.NRGBA, elapsed time.Duration)
}

// Procedural paints a fresh buffer every tick using the selected scene.
// The scene index may be switched at any time and takes effect on the
// next tick.
type Procedural struct {
	scenes []Scene
	index  atomic.Int32
}

func NewProcedural() *Procedural {
	return &Procedural{scenes: builtinScenes()}
}

func (p *Procedural) Name() string {
	return "Animation: " + p.scenes[p.sceneIndex()].Name
}

// SceneNames lists the selectable scenes in index order.
func (p *Procedural) SceneNames() []string {
	names := make([]string, len(p.scenes))
	for i, s := range p.scenes {
		names[i] = s.Name
	}
	return names
}

// SelectScene switches the active draw routine. Out-of-range indices are
// ignored.
func (p *Procedural) SelectScene(index int) {
	if index < 0 || index >= len(p.scenes) {
		return
	}
	p.index.Store(int32(index))
}

func (p *Procedural) Frame(elapsed time.Duration) (*image.NRGBA, error) {
	img := image.NewNRGBA(frameRect())
	fill(img, keyGreen)
	p.scenes[p.sceneIndex()].Draw(img, elapsed)
	return img, nil
}

func (p *Procedural) Close() error { return nil }

func (p *Procedural) sceneIndex() int {
	return int(p.index.Load())
}

func builtinScenes() []Scene {
	return []Scene{
		{Name: "Bouncing Ball", Draw: drawBouncingBall},
		{Name: "Orbiting Squares", Draw: drawOrbitingSquares},
	}
}

func drawBouncingBall(img *image.NRGBA, elapsed time.Duration) {
	t := elapsed.Seconds()
	w, h := img.Bounds().Dx(), img.Bounds().Dy()

	// Triangle-wave bounce keeps the motion deterministic in t. The range
	// is inset so the ball never clips the frame edge.
	cx := (0.18 + 0.64*bounce(t*0.37)) * float64(w)
	cy := (0.18 + 0.64*bounce(t*0.53)) * float64(h)
	fillCircle(img, int(cx), int(cy), w/8, color.NRGBA{R: 240, G: 240, B: 240, A: 255})

	// A colored trail ball on a slower phase.
	cx2 := 0.18 + 0.64*bounce(t*0.23+0.4)
	cy2 := 0.18 + 0.64*bounce(t*0.41+0.7)
	fillCircle(img, int(cx2*float64(w)), int(cy2*float64(h)), w/12,
		color.NRGBA{R: 220, G: 80, B: 60, A: 255})
}

func drawOrbitingSquares(img *image.NRGBA, elapsed time.Duration) {
	t := elapsed.Seconds()
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	cx, cy := float64(w)/2, float64(h)/2
	radius := float64(w) / 3

	for i := 0; i < 4; i++ {
		phase := t*0.8 + float64(i)*math.Pi/2
		x := cx + radius*math.Cos(phase)
		y := cy + radius*math.Sin(phase)
		side := w / 10
		tint := uint8(60 * i)
		fillRect(img, int(x)-side/2, int(y)-side/2, side, side,
			color.NRGBA{R: 255 - tint, G: tint, B: 180, A: 255})
	}

	fillCircle(img, int(cx), int(cy), w/16, color.NRGBA{R: 30, G: 30, B: 200, A: 255})
}

// bounce maps t to a [0,1] triangle wave.
func bounce(t float64) float64 {
	_, frac := math.Modf(t)
	if frac < 0 {
		frac += 1
	}
	if frac < 0.5 {
		return frac * 2
	}
	return 2 - frac*2
}

func fill(img *image.NRGBA, c color.NRGBA) {
	b := img.Bounds()
	fillRect(img, b.Min.X, b.Min.Y, b.Dx(), b.Dy(), c)
}

func fillRect(img *image.NRGBA, x0, y0, w, h int, c color.NRGBA) {
	b := img.Bounds()
	for y := y0; y < y0+h; y++ {
		if y < b.Min.Y || y >= b.Max.Y {
			continue
		}
		for x := x0; x < x0+w; x++ {
			if x < b.Min.X || x >= b.Max.X {
				continue
			}
			img.SetNRGBA(x, y, c)
		}
	}
}

func fillCircle(img *image.NRGBA, cx, cy, r int, c color.NRGBA) {
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r*r && image.Pt(x, y).In(img.Bounds()) {
				img.SetNRGBA(x, y, c)
			}
		}
	}
}
