package features

import (
	"fmt"
	"math"

	"github.com/piwi3910/polyhouse/internal/geometry"
	"github.com/piwi3910/polyhouse/internal/model"
)

const (
	fanPitch      = 6.0 // metres of length per fan
	fanInset      = 2.0
	fanBlades     = 6
	fanSpin       = 4 * math.Pi // rad/s
	fanMaxDia     = 1.2
	foggerRows    = 3
	foggerPitch   = 4.0
	foggerDrop    = 0.5 // below the roof
	padShare      = 0.7
	padThickness  = 0.15
	unitWallGap   = 1.0
	unitFootprint = 1.0
)

// FanCount returns the number of exhaust fans for a house of the given
// length. It is never less than two.
func FanCount(length float64) int {
	return max(2, int(math.Floor(length/fanPitch)))
}

// FoggersPerRow returns the nozzles in each of the three fogger rows.
func FoggersPerRow(length float64) int {
	return max(1, int(math.Floor(length/foggerPitch)))
}

// fanInsetFor keeps the 2 m end inset inside short houses.
func fanInsetFor(length float64) float64 {
	return math.Min(fanInset, length/4)
}

// fans are spread along the right-hand long side between the end insets.
func fans(f frame) []model.FeatureInstance {
	n := FanCount(f.length)
	inset := fanInsetFor(f.length)
	span := f.length - 2*inset
	dia := math.Min(fanMaxDia, 0.6*f.eave)
	y := math.Max(dia/2+0.1, f.eave*0.45)

	out := make([]model.FeatureInstance, 0, n)
	for i := 0; i < n; i++ {
		z := -f.hl + inset + float64(i)*span/float64(n-1)
		out = append(out, model.FeatureInstance{
			Kind:     model.FeatureFan,
			Name:     fmt.Sprintf("exhaust-fan-%d", i+1),
			Position: vec(f.hw+0.2, y, z),
			Size:     vec(0.4, dia+0.1, dia+0.1),
			Params: map[string]float64{
				"blades":   fanBlades,
				"diameter": dia,
			},
			Elements: []model.Element{
				box("housing", vec(0, 0, 0), vec(0.4, dia+0.1, dia+0.1)),
				{
					Name:     "rotor",
					Shape:    model.ShapeCylinder,
					Position: vec(0.05, 0, 0),
					Size:     vec(dia, 0.05, dia),
					Rotation: vec(0, 0, math.Pi/2),
					Spin:     fanSpin,
				},
				cylinder("hub", vec(0.08, 0, 0), vec(0.15, 0.1, 0.15), vec(0, 0, math.Pi/2)),
			},
		})
	}
	return out
}

// foggers hang in three rows across the width, evenly spaced along the
// length, a little below the roof.
func foggers(f frame) []model.FeatureInstance {
	perRow := FoggersPerRow(f.length)
	out := make([]model.FeatureInstance, 0, foggerRows*perRow)
	for r := 0; r < foggerRows; r++ {
		x := -f.hw + float64(r+1)*f.width/(foggerRows+1)
		roof := geometry.HeightAt(f.roofType, f.hw, f.roofHeight, f.width, x)
		y := math.Max(f.eave*0.8, f.eave+roof-foggerDrop)
		for c := 0; c < perRow; c++ {
			z := -f.hl + (float64(c)+0.5)*f.length/float64(perRow)
			out = append(out, model.FeatureInstance{
				Kind:     model.FeatureFogger,
				Name:     fmt.Sprintf("fogger-%d-%d", r+1, c+1),
				Position: vec(x, y, z),
				Size:     vec(0.1, 0.1, 0.1),
				Params:   map[string]float64{"row": float64(r), "column": float64(c)},
				Elements: []model.Element{
					{Name: "nozzle", Shape: model.ShapeSphere, Size: vec(0.1, 0.1, 0.1)},
					{Name: "mist", Shape: model.ShapeSphere, Position: vec(0, -0.3, 0), Size: vec(0.6, 0.6, 0.6)},
				},
			})
		}
	}
	return out
}

// coolingPad sits on the left-hand long side, opposite the fans.
func coolingPad(f frame) model.FeatureInstance {
	h := f.eave * padShare
	inset := fanInsetFor(f.length)
	l := f.length - 2*inset
	return model.FeatureInstance{
		Kind:     model.FeatureCoolingPad,
		Name:     "cooling-pad",
		Position: vec(-f.hw-0.1, h/2, 0),
		Size:     vec(padThickness, h, l),
		Params:   map[string]float64{"height": h, "length": l},
		Elements: []model.Element{
			box("pad", vec(0, 0, 0), vec(padThickness, h, l)),
			cylinder("water-pipe", vec(0, h/2+0.05, 0), vec(0.08, l, 0.08), vec(math.Pi/2, 0, 0)),
			box("sump", vec(0, -h/2-0.05, 0), vec(padThickness+0.1, 0.1, l)),
		},
	}
}

// climateUnits stand in the two interior corners of the back end wall.
func climateUnits(f frame) []model.FeatureInstance {
	gapX := math.Min(unitWallGap, f.hw/2)
	gapZ := math.Min(unitWallGap, f.hl/2)
	out := make([]model.FeatureInstance, 0, 2)
	for i, sign := range []float64{-1, 1} {
		out = append(out, model.FeatureInstance{
			Kind:     model.FeatureClimateUnit,
			Name:     fmt.Sprintf("climate-unit-%d", i+1),
			Position: vec(sign*(f.hw-gapX), 0.9, -f.hl+gapZ),
			Size:     vec(unitFootprint, 1.8, 0.8),
			Params:   map[string]float64{"capacityKW": 7.5},
			Elements: []model.Element{
				box("cabinet", vec(0, 0, 0), vec(unitFootprint, 1.8, 0.8)),
				box("grille", vec(0, 0.5, 0.41), vec(0.8, 0.5, 0.02)),
				{
					Name:     "fan",
					Shape:    model.ShapeCylinder,
					Position: vec(0, -0.3, 0.42),
					Size:     vec(0.5, 0.03, 0.5),
					Rotation: vec(math.Pi/2, 0, 0),
					Spin:     fanSpin / 2,
				},
			},
		})
	}
	return out
}
