package widgets

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/polyhouse/internal/model"
)

// Elevation draws the front end wall to scale: the outline, the door and
// the eave and ridge heights.
type Elevation struct {
	widget.BaseWidget
	model     model.Model
	maxWidth  float32
	maxHeight float32
}

func NewElevation(m model.Model, maxW, maxH float32) *Elevation {
	e := &Elevation{model: m, maxWidth: maxW, maxHeight: maxH}
	e.ExtendBaseWidget(e)
	return e
}

// SetModel replaces the drawn model.
func (e *Elevation) SetModel(m model.Model) {
	e.model = m
	e.Refresh()
}

func (e *Elevation) CreateRenderer() fyne.WidgetRenderer {
	r := &elevationRenderer{e: e}
	r.rebuild()
	return r
}

type elevationRenderer struct {
	e       *Elevation
	objects []fyne.CanvasObject
}

func (r *elevationRenderer) scale() float32 {
	m := r.e.model
	_, top := m.EndWallProfile.BoundingBox()
	w, h := float32(2*m.HalfWidth), float32(top.Y)
	if w <= 0 || h <= 0 {
		return 0
	}
	return min(r.e.maxWidth/w, r.e.maxHeight/h)
}

func (r *elevationRenderer) rebuild() {
	r.objects = nil
	m := r.e.model
	scale := r.scale()
	if scale == 0 {
		return
	}
	_, top := m.EndWallProfile.BoundingBox()
	canvasH := float32(top.Y) * scale
	toCanvas := func(x, y float64) fyne.Position {
		return fyne.NewPos(float32(x+m.HalfWidth)*scale, canvasH-float32(y)*scale)
	}

	cover := parseHexColor(m.Materials.Cover.Color, color.NRGBA{R: 129, G: 212, B: 250, A: 255})
	closed := m.EndWallProfile.Closed()
	for i := 1; i < len(closed); i++ {
		line := canvas.NewLine(cover)
		line.StrokeWidth = 2
		line.Position1 = toCanvas(closed[i-1].X, closed[i-1].Y)
		line.Position2 = toCanvas(closed[i].X, closed[i].Y)
		r.objects = append(r.objects, line)
	}

	for _, d := range m.FeaturesOfKind(model.FeatureDoor) {
		w, h := d.Params["width"], d.Params["height"]
		door := canvas.NewRectangle(color.Transparent)
		door.StrokeColor = color.NRGBA{R: 121, G: 85, B: 72, A: 255}
		door.StrokeWidth = 2
		door.Move(toCanvas(d.Position.X-w/2, h))
		door.Resize(fyne.NewSize(float32(w)*scale, float32(h)*scale))
		r.objects = append(r.objects, door)
	}

	eave := canvas.NewText(fmt.Sprintf("eave %.2f m", m.Config.EaveHeight), color.Gray{Y: 90})
	eave.TextSize = 10
	eave.Move(toCanvas(-m.HalfWidth, m.Config.EaveHeight).AddXY(4, 2))
	ridge := canvas.NewText(fmt.Sprintf("ridge %.2f m", top.Y), color.Gray{Y: 90})
	ridge.TextSize = 10
	ridge.Move(toCanvas(0, top.Y).AddXY(4, 2))
	r.objects = append(r.objects, eave, ridge)
}

func (r *elevationRenderer) Layout(size fyne.Size)        {}
func (r *elevationRenderer) Refresh()                     { r.rebuild(); canvas.Refresh(r.e) }
func (r *elevationRenderer) Destroy()                     {}
func (r *elevationRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *elevationRenderer) MinSize() fyne.Size {
	m := r.e.model
	_, top := m.EndWallProfile.BoundingBox()
	s := r.scale()
	return fyne.NewSize(float32(2*m.HalfWidth)*s, float32(top.Y)*s)
}
