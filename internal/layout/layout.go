// Package layout places the frame members of a polyhouse: posts, eave
// beams, end tie beams, the ridge beam and rafters.
package layout

import (
	"fmt"
	"math"

	"github.com/piwi3910/polyhouse/internal/model"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultPostSpacing is the nominal distance between side posts in metres.
const DefaultPostSpacing = 4.0

// Member radii in metres.
const (
	CornerPostRadius = 0.08
	SidePostRadius   = 0.06
	EaveBeamRadius   = 0.05
	TieBeamRadius    = 0.05
	RidgeBeamRadius  = 0.06
	RafterRadius     = 0.03
)

// SidePostCount returns the number of posts along each long side, corners
// included. It is never less than two.
func SidePostCount(length, postSpacing float64) int {
	if math.IsNaN(length) || math.IsInf(length, 0) || length < 0 {
		length = 0
	}
	postSpacing = spacingOrDefault(postSpacing)
	return max(2, int(math.Floor(length/postSpacing))+1)
}

// Stations returns the Z coordinate of every post station along the length,
// from -length/2 to +length/2.
func Stations(length, postSpacing float64) []float64 {
	n := SidePostCount(length, postSpacing)
	hl := length / 2
	zs := make([]float64, n)
	for i := range zs {
		zs[i] = -hl + float64(i)*length/float64(n-1)
	}
	return zs
}

// Layout returns the frame members for a house of the given footprint and
// heights. The ridge beam is only emitted for roofs with a single ridge
// line and rafters only for gable roofs. A ridge at or below the eave is
// treated as level with it.
func Layout(length, width, eaveHeight, ridgeHeight float64, roofType model.RoofType, postSpacing float64) []model.StructurePart {
	hl, hw := length/2, width/2
	ridge := math.Max(eaveHeight, ridgeHeight)
	stations := Stations(length, postSpacing)

	parts := make([]model.StructurePart, 0, 2*len(stations)+5)

	corners := [][2]float64{{-hw, -hl}, {hw, -hl}, {-hw, hl}, {hw, hl}}
	for i, c := range corners {
		parts = append(parts, post(fmt.Sprintf("corner-post-%d", i+1), c[0], c[1], eaveHeight, CornerPostRadius))
	}

	for i, z := range stations {
		if i == 0 || i == len(stations)-1 {
			continue
		}
		parts = append(parts,
			post(fmt.Sprintf("side-post-left-%d", i), -hw, z, eaveHeight, SidePostRadius),
			post(fmt.Sprintf("side-post-right-%d", i), hw, z, eaveHeight, SidePostRadius),
		)
	}

	parts = append(parts,
		model.NewMember(model.PartBeam, "eave-beam-left",
			r3.Vec{X: -hw, Y: eaveHeight, Z: -hl}, r3.Vec{X: -hw, Y: eaveHeight, Z: hl}, EaveBeamRadius),
		model.NewMember(model.PartBeam, "eave-beam-right",
			r3.Vec{X: hw, Y: eaveHeight, Z: -hl}, r3.Vec{X: hw, Y: eaveHeight, Z: hl}, EaveBeamRadius),
		model.NewMember(model.PartTruss, "tie-beam-back",
			r3.Vec{X: -hw, Y: eaveHeight, Z: -hl}, r3.Vec{X: hw, Y: eaveHeight, Z: -hl}, TieBeamRadius),
		model.NewMember(model.PartTruss, "tie-beam-front",
			r3.Vec{X: -hw, Y: eaveHeight, Z: hl}, r3.Vec{X: hw, Y: eaveHeight, Z: hl}, TieBeamRadius),
	)

	if roofType.HasRidge() {
		parts = append(parts, model.NewMember(model.PartBeam, "ridge-beam",
			r3.Vec{Y: ridge, Z: -hl}, r3.Vec{Y: ridge, Z: hl}, RidgeBeamRadius))
	}

	if roofType == model.RoofGable {
		for i, z := range stations {
			apex := r3.Vec{Y: ridge, Z: z}
			parts = append(parts,
				model.NewMember(model.PartRafter, fmt.Sprintf("rafter-left-%d", i),
					r3.Vec{X: -hw, Y: eaveHeight, Z: z}, apex, RafterRadius),
				model.NewMember(model.PartRafter, fmt.Sprintf("rafter-right-%d", i),
					r3.Vec{X: hw, Y: eaveHeight, Z: z}, apex, RafterRadius),
			)
		}
	}

	return parts
}

// Count tallies parts by kind.
func Count(parts []model.StructurePart) map[model.PartKind]int {
	counts := make(map[model.PartKind]int)
	for _, p := range parts {
		counts[p.Kind]++
	}
	return counts
}

// TotalLength sums member lengths by kind.
func TotalLength(parts []model.StructurePart) map[model.PartKind]float64 {
	totals := make(map[model.PartKind]float64)
	for _, p := range parts {
		totals[p.Kind] += p.Length
	}
	return totals
}

func post(name string, x, z, height, radius float64) model.StructurePart {
	return model.NewMember(model.PartPost, name, r3.Vec{X: x, Z: z}, r3.Vec{X: x, Y: height, Z: z}, radius)
}

func spacingOrDefault(s float64) float64 {
	if math.IsNaN(s) || math.IsInf(s, 0) || s <= 0 {
		return DefaultPostSpacing
	}
	return s
}
