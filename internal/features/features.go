// Package features places the optional equipment of a polyhouse: vents,
// insect netting, exhaust fans, foggers, cooling pads, climate units and
// the entrance door.
package features

import (
	"math"

	"github.com/piwi3910/polyhouse/internal/model"
	"gonum.org/v1/gonum/spatial/r3"
)

// frame is the footprint the features attach to.
type frame struct {
	hw, hl     float64
	length     float64
	width      float64
	eave       float64
	roofHeight float64
	roofType   model.RoofType
}

// Compose returns every feature enabled by cfg, attached to the given frame
// members. The frame's posts fix the length and eave height; when parts has
// no posts the configuration's own dimensions are used. The door is always
// present.
func Compose(cfg model.PolyhouseConfig, parts []model.StructurePart) []model.FeatureInstance {
	cfg = cfg.Normalized()
	f := frameFrom(cfg, parts)

	var out []model.FeatureInstance
	if cfg.SideVentilation.Enabled() {
		out = append(out, sideVents(f, cfg.SideVentilation)...)
	}
	if cfg.TopVentilation.Enabled() && cfg.RoofType.SupportsTopVent() {
		out = append(out, topVents(f, cfg.TopVentilation)...)
	}
	if cfg.InsectNet {
		out = append(out, insectNets(f)...)
	}
	if cfg.Fans {
		out = append(out, fans(f)...)
	}
	if cfg.Foggers {
		out = append(out, foggers(f)...)
	}
	if cfg.PolyhouseType == model.FanAndPad {
		out = append(out, coolingPad(f))
	}
	if cfg.PolyhouseType == model.ClimateControlled {
		out = append(out, climateUnits(f)...)
	}
	out = append(out, door(f, cfg.DoorEntry))
	return out
}

func frameFrom(cfg model.PolyhouseConfig, parts []model.StructurePart) frame {
	f := frame{
		hw:         cfg.Width / 2,
		hl:         cfg.Length / 2,
		length:     cfg.Length,
		width:      cfg.Width,
		eave:       cfg.EaveHeight,
		roofHeight: cfg.RoofHeight(),
		roofType:   cfg.RoofType,
	}

	zMin, zMax, top := math.Inf(1), math.Inf(-1), 0.0
	for _, p := range parts {
		if p.Kind != model.PartPost {
			continue
		}
		zMin = math.Min(zMin, p.Position.Z)
		zMax = math.Max(zMax, p.Position.Z)
		top = math.Max(top, p.End().Y)
	}
	if zMax > zMin && top > 0 {
		f.length = zMax - zMin
		f.hl = f.length / 2
		f.eave = top
	}
	return f
}

func vec(x, y, z float64) r3.Vec {
	return r3.Vec{X: x, Y: y, Z: z}
}

func box(name string, pos, size r3.Vec) model.Element {
	return model.Element{Name: name, Shape: model.ShapeBox, Position: pos, Size: size}
}

func cylinder(name string, pos, size, rot r3.Vec) model.Element {
	return model.Element{Name: name, Shape: model.ShapeCylinder, Position: pos, Size: size, Rotation: rot}
}
