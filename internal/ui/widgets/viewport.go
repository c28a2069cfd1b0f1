package widgets

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/polyhouse/internal/camera"
	"github.com/piwi3910/polyhouse/internal/model"
)

var colorSky = color.NRGBA{R: 236, G: 242, B: 245, A: 255}

// Viewport renders a polyhouse model as a perspective wireframe seen from a
// camera pose. Dragging orbits and scrolling zooms through the callbacks;
// the owner applies them to its camera controller and calls SetPose.
type Viewport struct {
	widget.BaseWidget
	segments []Segment
	pose     camera.Pose

	OnOrbit func(yaw, pitch float64)
	OnZoom  func(factor float64)
}

// NewViewport creates an empty viewport.
func NewViewport() *Viewport {
	v := &Viewport{}
	v.ExtendBaseWidget(v)
	return v
}

// SetModel replaces the drawn model.
func (v *Viewport) SetModel(m model.Model) {
	v.segments = Wireframe(m)
	v.Refresh()
}

// SetPose moves the camera.
func (v *Viewport) SetPose(p camera.Pose) {
	v.pose = p
	v.Refresh()
}

// Dragged implements fyne.Draggable. A full-width drag turns the camera
// half a revolution.
func (v *Viewport) Dragged(e *fyne.DragEvent) {
	if v.OnOrbit == nil {
		return
	}
	size := v.Size()
	if size.Width <= 0 || size.Height <= 0 {
		return
	}
	v.OnOrbit(-float64(e.Dragged.DX/size.Width)*math.Pi, float64(e.Dragged.DY/size.Height)*math.Pi/2)
}

func (v *Viewport) DragEnd() {}

// Scrolled implements fyne.Scrollable.
func (v *Viewport) Scrolled(e *fyne.ScrollEvent) {
	if v.OnZoom == nil || e.Scrolled.DY == 0 {
		return
	}
	if e.Scrolled.DY > 0 {
		v.OnZoom(0.9)
	} else {
		v.OnZoom(1 / 0.9)
	}
}

func (v *Viewport) CreateRenderer() fyne.WidgetRenderer {
	r := &viewportRenderer{v: v, bg: canvas.NewRectangle(colorSky)}
	r.rebuild(v.Size())
	return r
}

type viewportRenderer struct {
	v       *Viewport
	bg      *canvas.Rectangle
	lines   []*canvas.Line
	objects []fyne.CanvasObject
}

// rebuild projects every segment, reusing line objects between frames.
func (r *viewportRenderer) rebuild(size fyne.Size) {
	r.bg.Resize(size)
	r.objects = append(r.objects[:0], r.bg)

	n := 0
	for _, s := range r.v.segments {
		a, okA := Project(r.v.pose, s.A, size)
		b, okB := Project(r.v.pose, s.B, size)
		if !okA || !okB {
			continue
		}
		if n == len(r.lines) {
			r.lines = append(r.lines, canvas.NewLine(s.Color))
		}
		line := r.lines[n]
		line.StrokeColor = s.Color
		line.StrokeWidth = 1
		line.Position1 = a
		line.Position2 = b
		r.objects = append(r.objects, line)
		n++
	}
}

func (r *viewportRenderer) Layout(size fyne.Size) { r.rebuild(size) }

func (r *viewportRenderer) MinSize() fyne.Size { return fyne.NewSize(320, 240) }

func (r *viewportRenderer) Refresh() {
	r.rebuild(r.v.Size())
	canvas.Refresh(r.v)
}

func (r *viewportRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *viewportRenderer) Destroy() {}
