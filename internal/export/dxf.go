package export

import (
	"fmt"
	"os"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/polyhouse/internal/model"
)

// DXF layer names.
const (
	LayerEndWall      = "ENDWALL"
	LayerRoof         = "ROOF"
	LayerPlanPosts    = "PLAN-POSTS"
	LayerPlanFeatures = "PLAN-FEATURES"
	LayerDimensions   = "DIMENSIONS"
)

// planOffset separates the plan view from the elevation, in metres.
const planOffset = 5.0

var drawingLayers = []struct {
	name  string
	color color.ColorNumber
}{
	{LayerEndWall, color.White},
	{LayerRoof, color.Green},
	{LayerPlanPosts, color.Red},
	{LayerPlanFeatures, color.Cyan},
	{LayerDimensions, color.Yellow},
}

// ExportDXF writes a drawing of m to path: the end-wall elevation and roof
// profile at the origin, and a plan view of posts and features to the
// right of it. Units are metres.
func ExportDXF(path string, m model.Model) error {
	if len(m.Parts) == 0 {
		return ErrEmptyModel
	}

	d := dxf.NewDrawing()
	for _, l := range drawingLayers {
		if _, err := d.AddLayer(l.name, l.color, dxf.DefaultLineType, false); err != nil {
			return fmt.Errorf("adding layer %s: %w", l.name, err)
		}
	}

	if err := drawElevation(d, m); err != nil {
		return err
	}
	if err := drawPlan(d, m); err != nil {
		return err
	}
	if err := drawDimensions(d, m); err != nil {
		return err
	}
	return d.SaveAs(path)
}

// RenderDXF returns the drawing of m as bytes.
func RenderDXF(m model.Model) ([]byte, error) {
	f, err := os.CreateTemp("", "polyhouse-*.dxf")
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	path := f.Name()
	f.Close()
	defer os.Remove(path)

	if err := ExportDXF(path, m); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

func drawElevation(d *drawing.Drawing, m model.Model) error {
	if err := d.ChangeLayer(LayerEndWall); err != nil {
		return err
	}
	if err := polyline(d, m.EndWallProfile); err != nil {
		return fmt.Errorf("end wall: %w", err)
	}

	if err := d.ChangeLayer(LayerRoof); err != nil {
		return err
	}
	roof := m.RoofProfile.Translate(0, m.Config.EaveHeight)
	if err := polyline(d, roof); err != nil {
		return fmt.Errorf("roof: %w", err)
	}
	return nil
}

// drawPlan draws the footprint seen from above. Plan x is the model X axis
// and plan y the model Z axis, shifted right of the elevation.
func drawPlan(d *drawing.Drawing, m model.Model) error {
	ox := 2*m.HalfWidth + planOffset
	toPlan := func(x, z float64) (float64, float64) {
		return ox + x + m.HalfWidth, z + m.HalfLength
	}

	if err := d.ChangeLayer(LayerPlanPosts); err != nil {
		return err
	}
	x0, y0 := toPlan(-m.HalfWidth, -m.HalfLength)
	x1, y1 := toPlan(m.HalfWidth, m.HalfLength)
	if err := polyline(d, rect(x0, y0, x1, y1)); err != nil {
		return fmt.Errorf("footprint: %w", err)
	}
	for _, p := range m.PartsOfKind(model.PartPost) {
		x, y := toPlan(p.Position.X, p.Position.Z)
		if _, err := d.Circle(x, y, 0, p.Radius); err != nil {
			return fmt.Errorf("post %s: %w", p.Name, err)
		}
	}

	if err := d.ChangeLayer(LayerPlanFeatures); err != nil {
		return err
	}
	for _, f := range m.Features {
		hx, hz := f.Size.X/2, f.Size.Z/2
		if hx <= 0 && hz <= 0 {
			continue
		}
		ax, ay := toPlan(f.Position.X-hx, f.Position.Z-hz)
		bx, by := toPlan(f.Position.X+hx, f.Position.Z+hz)
		if err := polyline(d, rect(ax, ay, bx, by)); err != nil {
			return fmt.Errorf("feature %s: %w", f.Name, err)
		}
	}
	return nil
}

func drawDimensions(d *drawing.Drawing, m model.Model) error {
	if err := d.ChangeLayer(LayerDimensions); err != nil {
		return err
	}
	const textHeight = 0.3
	hw := m.HalfWidth

	// Width under the elevation
	if _, err := d.Line(-hw, -0.5, 0, hw, -0.5, 0); err != nil {
		return err
	}
	if _, err := d.Text(fmt.Sprintf("%.2f", 2*hw), -0.5, -1.0, 0, textHeight); err != nil {
		return err
	}

	// Ridge height left of the elevation
	_, top := m.EndWallProfile.BoundingBox()
	if _, err := d.Line(-hw-0.5, 0, 0, -hw-0.5, top.Y, 0); err != nil {
		return err
	}
	if _, err := d.Text(fmt.Sprintf("%.2f", top.Y), -hw-2.0, top.Y/2, 0, textHeight); err != nil {
		return err
	}

	// Length beside the plan
	ox := 2*hw + planOffset
	if _, err := d.Line(ox-0.5, 0, 0, ox-0.5, 2*m.HalfLength, 0); err != nil {
		return err
	}
	if _, err := d.Text(fmt.Sprintf("%.2f", 2*m.HalfLength), ox-2.0, m.HalfLength, 0, textHeight); err != nil {
		return err
	}
	return nil
}

// polyline adds o as a closed LWPOLYLINE.
func polyline(d *drawing.Drawing, o model.Outline) error {
	if len(o) < 2 {
		return nil
	}
	vertices := make([][]float64, len(o))
	for i, p := range o {
		vertices[i] = []float64{p.X, p.Y}
	}
	_, err := d.LwPolyline(true, vertices...)
	return err
}

func rect(x0, y0, x1, y1 float64) model.Outline {
	return model.Outline{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
}
