package features

import (
	"fmt"
	"math"

	"github.com/piwi3910/polyhouse/internal/model"
)

const (
	doorHeight    = 2.2
	frameMargin   = 0.2
	curtainFold   = 0.2
	curtainSwing  = 0.3
	shutterSlat   = 0.1
	doorWidthFrac = 0.8
)

// DoorWidth returns the clear opening of a door, limited to 80% of the end
// wall width.
func DoorWidth(d model.DoorEntry, houseWidth float64) float64 {
	var w float64
	switch d {
	case model.DoorDoubleSliding:
		w = 2.4
	case model.DoorRollUp:
		w = 2.0
	case model.DoorCurtain:
		w = 1.8
	default:
		w = 1.2
	}
	return math.Min(w, houseWidth*doorWidthFrac)
}

// DoorHeight returns the opening height, which never exceeds 90% of the eave.
func DoorHeight(eave float64) float64 {
	return math.Min(doorHeight, eave*0.9)
}

// CurtainFolds returns the number of pleats in a curtain door.
func CurtainFolds(width float64) int {
	return max(1, int(math.Floor(width/curtainFold+1e-9)))
}

// door is centred on the front end wall.
func door(f frame, kind model.DoorEntry) model.FeatureInstance {
	w := DoorWidth(kind, f.width)
	h := DoorHeight(f.eave)

	inst := model.FeatureInstance{
		Kind:     model.FeatureDoor,
		Name:     "door",
		Position: vec(0, h/2, f.hl+0.05),
		Size:     vec(w+frameMargin, h+frameMargin, 0.1),
		Params:   map[string]float64{"width": w, "height": h},
		Elements: []model.Element{box("frame", vec(0, frameMargin/2, -0.03), vec(w+frameMargin, h+frameMargin, 0.04))},
	}

	switch kind {
	case model.DoorDoubleSliding:
		inst.Params["leaves"] = 2
		for i, sign := range []float64{-1, 1} {
			side := []string{"left", "right"}[i]
			inst.Elements = append(inst.Elements,
				box("leaf-"+side, vec(sign*w/4, 0, 0.02*float64(i)), vec(w/2, h, 0.05)),
				box("glass-"+side, vec(sign*w/4, h*0.15, 0.03+0.02*float64(i)), vec(w/2*0.6, h*0.4, 0.02)),
			)
		}

	case model.DoorRollUp:
		slats := max(1, int(h/shutterSlat))
		inst.Params["slats"] = float64(slats)
		inst.Elements = append(inst.Elements,
			box("shutter", vec(0, 0, 0), vec(w, h, 0.03)),
			cylinder("drum", vec(0, h/2+0.15, 0.05), vec(0.3, w, 0.3), vec(0, 0, math.Pi/2)),
		)

	case model.DoorCurtain:
		n := CurtainFolds(w)
		inst.Params["folds"] = float64(n)
		fw := w / float64(n)
		for i := 0; i < n; i++ {
			fold := box(fmt.Sprintf("fold-%d", i+1), vec(-w/2+(float64(i)+0.5)*fw, 0, 0), vec(fw, h, 0.04))
			swing := curtainSwing
			if i%2 == 1 {
				swing = -swing
			}
			fold.Rotation = vec(0, swing, 0)
			inst.Elements = append(inst.Elements, fold)
		}

	default:
		inst.Params["leaves"] = 1
		inst.Elements = append(inst.Elements,
			box("leaf", vec(0, 0, 0), vec(w, h, 0.05)),
			box("handle", vec(w/2-0.1, 0, 0.05), vec(0.03, 0.15, 0.04)),
		)
	}
	return inst
}
