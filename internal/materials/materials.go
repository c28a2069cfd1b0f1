// Package materials maps frame and cover selections to the visual
// properties used to draw them.
package materials

import "github.com/piwi3910/polyhouse/internal/model"

var frames = map[model.StructureMaterial]model.FrameProps{
	model.GISteel:   {Material: model.GISteel, Color: "#4a4a4a", Reflectivity: 0.9, Roughness: 0.2},
	model.GIPipe:    {Material: model.GIPipe, Color: "#8a8d8f", Reflectivity: 0.8, Roughness: 0.3},
	model.MSPipe:    {Material: model.MSPipe, Color: "#3b3b3b", Reflectivity: 0.7, Roughness: 0.45},
	model.Aluminium: {Material: model.Aluminium, Color: "#c0c6cc", Reflectivity: 0.95, Roughness: 0.15},
	model.Bamboo:    {Material: model.Bamboo, Color: "#c8a165", Reflectivity: 0.0, Roughness: 0.85},
}

var covers = map[model.CoverMaterial]model.CoverProps{
	model.UVPolyfilm:    {Material: model.UVPolyfilm, Color: "#a8e6cf", Opacity: 0.35, Transparent: true},
	model.Polycarbonate: {Material: model.Polycarbonate, Color: "#e8f5e9", Opacity: 0.45, Transparent: true},
	model.ShadeNet:      {Material: model.ShadeNet, Color: "#4a7c59", Opacity: 0.55, Transparent: true},
	model.InsectNetting: {Material: model.InsectNetting, Color: "#f1f3f2", Opacity: 0.3, Transparent: true},
	model.Glass:         {Material: model.Glass, Color: "#e3f2fd", Opacity: 0.25, Transparent: true},
}

// DefaultFrame is returned for unrecognised structure materials.
var DefaultFrame = frames[model.GISteel]

// DefaultCover is returned for unrecognised cover materials.
var DefaultCover = covers[model.UVPolyfilm]

// ResolveFrame returns the frame properties for m. Aliases such as
// "aluminum" are accepted and anything unknown gets DefaultFrame.
func ResolveFrame(m model.StructureMaterial) model.FrameProps {
	if p, ok := frames[m]; ok {
		return p
	}
	if p, ok := frames[model.ParseStructureMaterial(string(m))]; ok {
		return p
	}
	return DefaultFrame
}

// ResolveCover returns the cover properties for c, falling back to
// DefaultCover for unknown values.
func ResolveCover(c model.CoverMaterial) model.CoverProps {
	if p, ok := covers[c]; ok {
		return p
	}
	if p, ok := covers[model.ParseCoverMaterial(string(c))]; ok {
		return p
	}
	return DefaultCover
}

// Resolve returns both records for a configuration.
func Resolve(cfg model.PolyhouseConfig) model.Materials {
	return model.Materials{
		Frame: ResolveFrame(cfg.StructureMaterial),
		Cover: ResolveCover(cfg.CoverMaterial),
	}
}

// NetOverlay is the look of insect netting drawn over an opening,
// independent of the main cover.
func NetOverlay() model.CoverProps {
	return covers[model.InsectNetting]
}
