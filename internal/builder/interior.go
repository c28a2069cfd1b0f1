package builder

import (
	"math"

	"github.com/piwi3910/polyhouse/internal/model"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	bedRows     = 4
	plantPitch  = 2.5
	bedSpread   = 0.7
	bedCoverage = 0.85
)

// bedX returns the centre line of growing bed i.
func bedX(cfg model.PolyhouseConfig, i int) float64 {
	hw := cfg.Width / 2
	return -hw*bedSpread + float64(i)*(cfg.Width*bedSpread/(bedRows-1))
}

// PlantsPerRow returns the number of plants in each bed. Plants are spread
// evenly along the bed rather than at the nominal pitch so they never
// overhang its ends.
func PlantsPerRow(length float64) int {
	return int(math.Floor(length / plantPitch))
}

func (b *Builder) interiorFor(cfg model.PolyhouseConfig) model.Interior {
	bedLength := cfg.Length * bedCoverage
	cols := PlantsPerRow(cfg.Length)

	in := model.Interior{
		Beds:       make([]model.Box, 0, bedRows),
		Plants:     make([]model.Plant, 0, bedRows*cols),
		Irrigation: make([]model.StructurePart, 0, bedRows),
	}
	for i := 0; i < bedRows; i++ {
		x := bedX(cfg, i)
		in.Beds = append(in.Beds, model.Box{
			Name:   "bed",
			Center: r3.Vec{X: x, Y: 0.15},
			Size:   r3.Vec{X: cfg.Width * 0.15, Y: 0.3, Z: bedLength},
		})
		in.Irrigation = append(in.Irrigation, model.NewMember(model.PartPipe, "drip-line",
			r3.Vec{X: x, Y: 0.35, Z: -bedLength / 2}, r3.Vec{X: x, Y: 0.35, Z: bedLength / 2}, 0.015))
	}

	for row := 0; row < bedRows; row++ {
		x := bedX(cfg, row)
		for col := 0; col < cols; col++ {
			in.Plants = append(in.Plants, model.Plant{
				Position:      r3.Vec{X: x, Y: 0.3, Z: -bedLength/2 + (float64(col)+0.5)*bedLength/float64(cols)},
				StemHeight:    0.3 + b.rng.Float64()*0.4,
				FoliageRadius: 0.25 + b.rng.Float64()*0.15,
			})
		}
	}
	return in
}
