package importer

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/piwi3910/polyhouse/internal/geometry"
	"github.com/piwi3910/polyhouse/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

const dxfTolerance = 1e-6

// ImportDXF recovers a design from a drawing written by the DXF exporter.
// The first closed polyline is the end wall, the second the roof profile
// and the first polyline lying right of the end wall is the plan
// footprint. Length, width, heights and roof type are recovered; every
// other setting takes its default.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var outlines []model.Outline
	for _, ent := range entities {
		lw, ok := ent.(*entity.LwPolyline)
		if !ok {
			continue
		}
		outline := lwPolylineToOutline(lw)
		if len(outline) >= 3 {
			outlines = append(outlines, outline)
		} else {
			result.Warnings = append(result.Warnings, "Skipped LWPOLYLINE with fewer than 3 vertices")
		}
	}
	if len(outlines) < 3 {
		result.Errors = append(result.Errors, fmt.Sprintf("Expected end wall, roof and footprint polylines, found %d", len(outlines)))
		return result
	}

	endWall, roof := outlines[0], outlines[1]
	wallMin, wallMax := endWall.BoundingBox()
	var footprint model.Outline
	for _, o := range outlines[2:] {
		min, _ := o.BoundingBox()
		if min.X > wallMax.X {
			footprint = o
			break
		}
	}
	if footprint == nil {
		result.Errors = append(result.Errors, "No plan footprint found right of the end wall")
		return result
	}

	roofMin, _ := roof.BoundingBox()
	fpMin, fpMax := footprint.BoundingBox()

	cfg := model.DefaultConfig()
	cfg.Width = wallMax.X - wallMin.X
	cfg.Length = fpMax.Y - fpMin.Y
	cfg.EaveHeight = roofMin.Y - wallMin.Y
	cfg.RidgeHeight = wallMax.Y - wallMin.Y
	cfg.RoofType = inferRoofType(roof.Translate(0, -roofMin.Y))
	if cfg.Width <= 0 || cfg.Length <= 0 || cfg.EaveHeight <= 0 {
		result.Errors = append(result.Errors, "Drawing has a degenerate footprint or end wall")
		return result
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	result.Projects = append(result.Projects, model.NewProjectWithConfig(name, cfg))
	result.Warnings = append(result.Warnings, "Only dimensions and roof type are recovered from a drawing")
	return result
}

// inferRoofType classifies a roof profile resting on y = 0.
func inferRoofType(roof model.Outline) model.RoofType {
	n := len(roof)
	switch {
	case n == 3:
		return model.RoofGable
	case n == 4:
		return model.RoofFlat
	}

	// Sawtooth roofs return to the eave line between peaks.
	for _, p := range roof[1 : n-1] {
		if math.Abs(p.Y) < dxfTolerance {
			return model.RoofVenlo
		}
	}

	if n == geometry.ArchSegments+1 {
		step := roof[1].X - roof[0].X
		for i := 2; i < n; i++ {
			if math.Abs(roof[i].X-roof[i-1].X-step) > 1e-3 {
				return model.RoofQuonset
			}
		}
		return model.RoofGothic
	}
	return model.RoofGable
}

// lwPolylineToOutline converts a DXF LWPOLYLINE entity to an Outline.
// Bulge values on vertices produce interpolated arc segments.
func lwPolylineToOutline(lw *entity.LwPolyline) model.Outline {
	var outline model.Outline

	for i := 0; i < len(lw.Vertices); i++ {
		v := lw.Vertices[i]
		current := model.Point2D{X: v[0], Y: v[1]}

		bulge := 0.0
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}

		if math.Abs(bulge) > 1e-9 {
			nextIdx := (i + 1) % len(lw.Vertices)
			next := model.Point2D{X: lw.Vertices[nextIdx][0], Y: lw.Vertices[nextIdx][1]}
			arcPts := bulgeArcPoints(current, next, bulge, 32)
			outline = append(outline, arcPts[:len(arcPts)-1]...)
		} else {
			outline = append(outline, current)
		}
	}

	return outline
}

// bulgeArcPoints generates points along an arc defined by two endpoints and a
// DXF bulge factor. The bulge is the tangent of 1/4 the included angle.
func bulgeArcPoints(p1, p2 model.Point2D, bulge float64, numSegments int) model.Outline {
	mx := (p1.X + p2.X) / 2
	my := (p1.Y + p2.Y) / 2
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	chordLen := math.Hypot(dx, dy)
	if chordLen < 1e-9 {
		return model.Outline{p1, p2}
	}

	sagitta := math.Abs(bulge) * chordLen / 2
	radius := (chordLen*chordLen/(4*sagitta) + sagitta) / 2

	perpX := -dy / chordLen
	perpY := dx / chordLen
	dist := radius - sagitta
	if bulge > 0 {
		perpX, perpY = -perpX, -perpY
	}
	cx := mx + perpX*dist
	cy := my + perpY*dist

	startAngle := math.Atan2(p1.Y-cy, p1.X-cx)
	endAngle := math.Atan2(p2.Y-cy, p2.X-cx)
	if bulge < 0 {
		if endAngle > startAngle {
			endAngle -= 2 * math.Pi
		}
	} else if endAngle < startAngle {
		endAngle += 2 * math.Pi
	}

	pts := make(model.Outline, 0, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		angle := startAngle + t*(endAngle-startAngle)
		pts = append(pts, model.Point2D{
			X: cx + radius*math.Cos(angle),
			Y: cy + radius*math.Sin(angle),
		})
	}
	return pts
}
