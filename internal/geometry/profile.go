// Package geometry builds the 2D cross-sections of a polyhouse: the roof
// profile above the eaves and the end-wall outline from the ground up.
//
// Profiles lie in the XY plane with X across the width (centred on zero)
// and Y up. Roof profiles start at (-halfWidth, 0) and finish at
// (halfWidth, 0); the closing edge back to the start is implicit.
package geometry

import (
	"math"

	"github.com/piwi3910/polyhouse/internal/model"
)

// ArchSegments is the number of straight segments used to sample the gothic
// and quonset arches.
const ArchSegments = 20

// venloSpanWidth is the nominal width of one venlo bay in metres.
const venloSpanWidth = 8

// flatDrainage is the rise of a flat roof across its span, as a fraction of
// the roof height.
const flatDrainage = 0.1

// PeakCount returns the number of venlo bays for a house of the given width.
// There are always at least two.
func PeakCount(width float64) int {
	width = sanitize(width)
	return max(2, int(math.Floor(width/venloSpanWidth)))
}

// PeakXs returns the X coordinate of every venlo peak.
func PeakXs(halfWidth, width float64) []float64 {
	halfWidth, width = sanitize(halfWidth), sanitize(width)
	n := PeakCount(width)
	span := width / float64(n)
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = -halfWidth + (float64(i)+0.5)*span
	}
	return xs
}

// RoofProfile returns the cross-section of the roof above the eave line.
// A negative or non-finite roofHeight is treated as zero, which collapses
// the profile onto the eave line without producing invalid coordinates.
// Unknown roof types are drawn as gables.
func RoofProfile(roofType model.RoofType, halfWidth, roofHeight, width float64) model.Outline {
	hw := sanitize(halfWidth)
	rh := sanitize(roofHeight)
	w := sanitize(width)

	switch roofType {
	case model.RoofFlat:
		return model.Outline{
			{X: -hw, Y: 0},
			{X: -hw, Y: rh * (1 - flatDrainage)},
			{X: hw, Y: rh},
			{X: hw, Y: 0},
		}

	case model.RoofGothic:
		pts := make(model.Outline, 0, ArchSegments+1)
		for i := 0; i <= ArchSegments; i++ {
			t := float64(i) / ArchSegments
			pts = append(pts, model.Point2D{
				X: -hw + w*t,
				Y: rh * math.Sin(math.Pi*t),
			})
		}
		return snapEnds(pts, hw)

	case model.RoofQuonset:
		pts := make(model.Outline, 0, ArchSegments+1)
		for i := 0; i <= ArchSegments; i++ {
			theta := math.Pi * float64(i) / ArchSegments
			pts = append(pts, model.Point2D{
				X: -hw * math.Cos(theta),
				Y: rh * math.Sin(theta),
			})
		}
		return snapEnds(pts, hw)

	case model.RoofVenlo:
		n := PeakCount(w)
		span := w / float64(n)
		pts := make(model.Outline, 0, 2*n+1)
		pts = append(pts, model.Point2D{X: -hw, Y: 0})
		for i := 0; i < n; i++ {
			start := -hw + float64(i)*span
			pts = append(pts,
				model.Point2D{X: start + span/2, Y: rh},
				model.Point2D{X: start + span, Y: 0},
			)
		}
		return snapEnds(pts, hw)

	default:
		return model.Outline{
			{X: -hw, Y: 0},
			{X: 0, Y: rh},
			{X: hw, Y: 0},
		}
	}
}

// EndWallProfile returns the outline of an end wall: the two side edges up
// to the eaves joined by the roof profile.
func EndWallProfile(roofType model.RoofType, halfWidth, eaveHeight, ridgeHeight, width float64) model.Outline {
	hw := sanitize(halfWidth)
	eave := sanitize(eaveHeight)
	roof := RoofProfile(roofType, hw, sanitize(ridgeHeight)-eave, width)

	pts := make(model.Outline, 0, len(roof)+2)
	pts = append(pts, model.Point2D{X: -hw, Y: 0})
	pts = append(pts, roof.Translate(0, eave)...)
	pts = append(pts, model.Point2D{X: hw, Y: 0})
	return pts
}

// HeightAt returns the height of the roof above the eave line at x. Points
// outside the span are clamped onto it.
func HeightAt(roofType model.RoofType, halfWidth, roofHeight, width, x float64) float64 {
	hw := sanitize(halfWidth)
	rh := sanitize(roofHeight)
	w := sanitize(width)
	if hw == 0 || w == 0 {
		return 0
	}
	x = math.Max(-hw, math.Min(hw, x))

	switch roofType {
	case model.RoofFlat:
		return rh*(1-flatDrainage) + rh*flatDrainage*(x+hw)/w
	case model.RoofGothic:
		return rh * math.Sin(math.Pi*(x+hw)/w)
	case model.RoofQuonset:
		u := x / hw
		return rh * math.Sqrt(math.Max(0, 1-u*u))
	case model.RoofVenlo:
		n := PeakCount(w)
		span := w / float64(n)
		local := math.Mod(x+hw, span)
		if x >= hw {
			local = span
		}
		return rh * (1 - math.Abs(local-span/2)/(span/2))
	default:
		return rh * (1 - math.Abs(x)/hw)
	}
}

// snapEnds pins the first and last points exactly onto the eave line so
// floating point noise in sin and cos does not leave a sliver.
func snapEnds(o model.Outline, hw float64) model.Outline {
	o[0] = model.Point2D{X: -hw, Y: 0}
	o[len(o)-1] = model.Point2D{X: hw, Y: 0}
	return o
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
