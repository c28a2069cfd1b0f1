package widgets

import (
	"image/color"
	"math"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/piwi3910/polyhouse/internal/camera"
	"github.com/piwi3910/polyhouse/internal/model"
)

// Wireframe colours for the layers that do not take the material colour.
var (
	colorGutter     = color.NRGBA{R: 120, G: 144, B: 156, A: 255}
	colorCover      = color.NRGBA{R: 129, G: 212, B: 250, A: 160}
	colorFeature    = color.NRGBA{R: 0, G: 188, B: 212, A: 230}
	colorIrrigation = color.NRGBA{R: 33, G: 150, B: 243, A: 200}
	colorBed        = color.NRGBA{R: 121, G: 85, B: 72, A: 200}
	colorGround     = color.NRGBA{R: 104, G: 159, B: 56, A: 180}
)

// nearPlane is the closest distance to the camera that is still drawn.
const nearPlane = 0.1

// Segment is one straight line of the wireframe in model space.
type Segment struct {
	A, B  r3.Vec
	Color color.Color
}

// Wireframe flattens m into line segments: the foundation outline, frame
// members, gutters, both end-wall outlines, feature boxes, beds and drip
// lines.
func Wireframe(m model.Model) []Segment {
	var segs []Segment
	frame := parseHexColor(m.Materials.Frame.Color, color.NRGBA{R: 158, G: 158, B: 158, A: 255})

	segs = appendBox(segs, m.Foundation.Center, m.Foundation.Size, colorGround)
	for _, p := range m.Parts {
		segs = append(segs, Segment{A: p.Start(), B: p.End(), Color: frame})
	}
	for _, g := range m.Gutters {
		segs = append(segs, Segment{A: g.Start(), B: g.End(), Color: colorGutter})
	}
	for _, z := range []float64{-m.HalfLength, m.HalfLength} {
		segs = appendOutline(segs, m.EndWallProfile, z, colorCover)
	}
	for _, f := range m.Features {
		segs = appendBox(segs, f.Position, f.Size, colorFeature)
	}
	for _, b := range m.Interior.Beds {
		segs = appendBox(segs, b.Center, b.Size, colorBed)
	}
	for _, p := range m.Interior.Irrigation {
		segs = append(segs, Segment{A: p.Start(), B: p.End(), Color: colorIrrigation})
	}
	return segs
}

func appendOutline(segs []Segment, o model.Outline, z float64, c color.Color) []Segment {
	closed := o.Closed()
	for i := 1; i < len(closed); i++ {
		a, b := closed[i-1], closed[i]
		segs = append(segs, Segment{
			A:     r3.Vec{X: a.X, Y: a.Y, Z: z},
			B:     r3.Vec{X: b.X, Y: b.Y, Z: z},
			Color: c,
		})
	}
	return segs
}

// appendBox adds the edges of an axis-aligned box. Edges of zero length,
// as on flat panels, are skipped.
func appendBox(segs []Segment, center, size r3.Vec, c color.Color) []Segment {
	h := r3.Scale(0.5, size)
	corner := func(i int) r3.Vec {
		v := center
		v.X += sign(i&1) * h.X
		v.Y += sign(i&2) * h.Y
		v.Z += sign(i&4) * h.Z
		return v
	}
	for i := 0; i < 8; i++ {
		for _, bit := range []int{1, 2, 4} {
			if i&bit != 0 {
				continue
			}
			a, b := corner(i), corner(i|bit)
			if r3.Norm(r3.Sub(a, b)) < 1e-9 {
				continue
			}
			segs = append(segs, Segment{A: a, B: b, Color: c})
		}
	}
	return segs
}

func sign(bit int) float64 {
	if bit != 0 {
		return 1
	}
	return -1
}

// Project maps p to a position on a canvas of the given size as seen from
// pose. It reports false when p lies behind the near plane.
func Project(pose camera.Pose, p r3.Vec, size fyne.Size) (fyne.Position, bool) {
	forward := r3.Unit(r3.Sub(pose.Target, pose.Position))
	right := r3.Cross(forward, r3.Vec{Y: 1})
	if r3.Norm(right) < 1e-9 {
		right = r3.Vec{X: 1}
	}
	right = r3.Unit(right)
	up := r3.Cross(right, forward)

	d := r3.Sub(p, pose.Position)
	depth := r3.Dot(d, forward)
	if depth < nearPlane {
		return fyne.Position{}, false
	}

	fov := pose.FOV
	if fov <= 0 || fov >= 180 {
		fov = 45
	}
	focal := float64(size.Height) / 2 / math.Tan(fov*math.Pi/360)
	x := float64(size.Width)/2 + r3.Dot(d, right)*focal/depth
	y := float64(size.Height)/2 - r3.Dot(d, up)*focal/depth
	return fyne.NewPos(float32(x), float32(y)), true
}

// parseHexColor reads "#rrggbb". Anything else yields fallback.
func parseHexColor(s string, fallback color.NRGBA) color.NRGBA {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return fallback
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fallback
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}
