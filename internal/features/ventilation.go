package features

import (
	"fmt"
	"math"

	"github.com/piwi3910/polyhouse/internal/geometry"
	"github.com/piwi3910/polyhouse/internal/model"
)

// Side vent opening, relative to the eave height and house length.
const (
	ventCentre     = 0.75
	ventHeight     = 0.15
	ventLength     = 0.7
	louverPitch    = 0.3
	louverTilt     = math.Pi / 4
	curtainShare   = 0.4
	rollRadius     = 0.05
	topVentWidth   = 0.8
	topVentLength  = 0.6
	topVentLift    = 0.2
	topVentOpening = 0.35 // radians
)

// LouverSlats returns the number of slats in a louver of the given height.
func LouverSlats(height float64) int {
	return max(1, int(math.Floor(height/louverPitch+1e-9)))
}

func sideVents(f frame, kind model.Ventilation) []model.FeatureInstance {
	h := f.eave * ventHeight
	l := f.length * ventLength

	sides := []struct {
		name string
		sign float64
	}{{"left", -1}, {"right", 1}}

	out := make([]model.FeatureInstance, 0, 2)
	for _, s := range sides {
		inst := model.FeatureInstance{
			Kind:     model.FeatureSideVent,
			Name:     "side-vent-" + s.name,
			Position: vec(s.sign*(f.hw+0.05), f.eave*ventCentre, 0),
			Size:     vec(0.05, h, l),
			Params: map[string]float64{
				"side":   s.sign,
				"height": h,
				"length": l,
			},
			Elements: []model.Element{box("opening", vec(0, 0, 0), vec(0.05, h, l))},
		}

		switch {
		case kind == model.VentLouver:
			n := LouverSlats(h)
			inst.Params["slats"] = float64(n)
			inst.Params["pitch"] = louverPitch
			for i := 0; i < n; i++ {
				slat := box(fmt.Sprintf("slat-%d", i+1),
					vec(0, -h/2+louverPitch/2+float64(i)*louverPitch, 0),
					vec(0.02, louverPitch*0.8, l))
				slat.Rotation = vec(0, 0, s.sign*louverTilt)
				inst.Elements = append(inst.Elements, slat)
			}

		case kind.IsRollup():
			ch := h * curtainShare
			inst.Params["curtainHeight"] = ch
			inst.Elements = append(inst.Elements,
				box("curtain", vec(s.sign*0.02, -h/2+ch/2, 0), vec(0.03, ch, l)),
				cylinder("roll", vec(s.sign*0.04, -h/2+ch, 0), vec(2*rollRadius, l, 2*rollRadius), vec(math.Pi/2, 0, 0)),
			)
			if kind == model.VentMotorizedRollup {
				inst.Params["motorized"] = 1
				inst.Elements = append(inst.Elements,
					box("motor", vec(s.sign*0.1, -h/2+ch, -l/2-0.2), vec(0.25, 0.25, 0.35)))
			}
		}
		out = append(out, inst)
	}
	return out
}

func topVents(f frame, kind model.Ventilation) []model.FeatureInstance {
	xs := []float64{0}
	if f.roofType == model.RoofVenlo {
		xs = geometry.PeakXs(f.hw, f.width)
	}

	l := f.length * topVentLength
	out := make([]model.FeatureInstance, 0, len(xs))
	for i, x := range xs {
		name := "top-vent"
		if len(xs) > 1 {
			name = fmt.Sprintf("top-vent-%d", i+1)
		}
		inst := model.FeatureInstance{
			Kind:     model.FeatureTopVent,
			Name:     name,
			Position: vec(x, f.eave+f.roofHeight+topVentLift, 0),
			Size:     vec(topVentWidth, topVentLift, l),
			Params: map[string]float64{
				"width":     topVentWidth,
				"length":    l,
				"openAngle": topVentOpening,
			},
		}
		flap := box("flap", vec(topVentWidth/4, 0, 0), vec(topVentWidth, 0.05, l))
		flap.Rotation = vec(0, 0, topVentOpening)
		inst.Elements = []model.Element{
			flap,
			box("air-gap", vec(0, -topVentLift/2, 0), vec(topVentWidth, topVentLift, l)),
		}
		if kind == model.VentMotorizedRollup {
			inst.Params["motorized"] = 1
			inst.Elements = append(inst.Elements, box("actuator", vec(0, -topVentLift, -l/2), vec(0.15, 0.15, 0.3)))
		}
		out = append(out, inst)
	}
	return out
}

// insectNets covers both long sides and the far end wall. The front end
// wall carries the door and is left open.
func insectNets(f frame) []model.FeatureInstance {
	sideArea := f.length * f.eave
	endArea := f.width * f.eave
	return []model.FeatureInstance{
		{
			Kind:     model.FeatureInsectNet,
			Name:     "insect-net-left",
			Position: vec(-f.hw-0.03, f.eave/2, 0),
			Size:     vec(0.01, f.eave, f.length),
			Params:   map[string]float64{"area": sideArea},
		},
		{
			Kind:     model.FeatureInsectNet,
			Name:     "insect-net-right",
			Position: vec(f.hw+0.03, f.eave/2, 0),
			Size:     vec(0.01, f.eave, f.length),
			Params:   map[string]float64{"area": sideArea},
		},
		{
			Kind:     model.FeatureInsectNet,
			Name:     "insect-net-back",
			Position: vec(0, f.eave/2, -f.hl-0.03),
			Size:     vec(f.width, f.eave, 0.01),
			Params:   map[string]float64{"area": endArea},
		},
	}
}
