// Package builder turns a PolyhouseConfig into a complete Model: roof and
// end-wall profiles, frame members, optional features, cladding, gutters,
// foundation, decorative interior, dimension lines and bounds.
//
// Building is a pure function of the configuration apart from the plant
// jitter in the interior, which draws from the Builder's random source.
package builder

import (
	"math/rand/v2"

	"github.com/piwi3910/polyhouse/internal/features"
	"github.com/piwi3910/polyhouse/internal/geometry"
	"github.com/piwi3910/polyhouse/internal/layout"
	"github.com/piwi3910/polyhouse/internal/materials"
	"github.com/piwi3910/polyhouse/internal/model"
	"gonum.org/v1/gonum/spatial/r3"
)

// Option configures a Builder.
type Option func(*Builder)

// WithRandom sets the source used for plant jitter. Pass a seeded
// generator to make the whole model reproducible.
func WithRandom(rng *rand.Rand) Option {
	return func(b *Builder) {
		if rng != nil {
			b.rng = rng
		}
	}
}

// WithPostSpacing overrides the 4 m spacing between side posts.
func WithPostSpacing(spacing float64) Option {
	return func(b *Builder) {
		b.postSpacing = spacing
	}
}

// WithInterior controls whether beds, plants and irrigation are generated.
func WithInterior(enabled bool) Option {
	return func(b *Builder) {
		b.interior = enabled
	}
}

// Builder assembles models. A Builder is not safe for concurrent use
// because it owns its random source; create one per goroutine.
type Builder struct {
	rng         *rand.Rand
	postSpacing float64
	interior    bool
}

// New returns a Builder seeded from the runtime's entropy source.
func New(opts ...Option) *Builder {
	b := &Builder{
		rng:         rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		postSpacing: layout.DefaultPostSpacing,
		interior:    true,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build builds cfg with a fresh default Builder.
func Build(cfg model.PolyhouseConfig) model.Model {
	return New().Build(cfg)
}

// Build returns the model for cfg. Out-of-range input is normalized first,
// so every configuration yields finite geometry.
func (b *Builder) Build(cfg model.PolyhouseConfig) model.Model {
	cfg = cfg.Normalized()

	hw := cfg.Width / 2
	hl := cfg.Length / 2
	eave := cfg.EaveHeight
	rh := cfg.RoofHeight()

	m := model.Model{
		Config:     cfg,
		HalfWidth:  hw,
		HalfLength: hl,
		RoofHeight: rh,
	}

	m.RoofProfile = geometry.RoofProfile(cfg.RoofType, hw, rh, cfg.Width)
	m.EndWallProfile = geometry.EndWallProfile(cfg.RoofType, hw, eave, eave+rh, cfg.Width)
	m.Materials = materials.Resolve(cfg)
	m.Parts = layout.Layout(cfg.Length, cfg.Width, eave, eave+rh, cfg.RoofType, b.postSpacing)
	m.Features = features.Compose(cfg, m.Parts)

	m.Shell = shell(m)
	m.Gutters = gutters(hw, hl, eave)
	m.Foundation = model.Box{
		Name:   "foundation",
		Center: r3.Vec{Y: 0.05},
		Size:   r3.Vec{X: cfg.Width + 0.4, Y: 0.15, Z: cfg.Length + 0.4},
	}
	if b.interior {
		m.Interior = b.interiorFor(cfg)
	}
	m.Dimensions = dimensions(cfg, eave+rh)
	m.Bounds = bounds(m)
	return m
}

func shell(m model.Model) model.Shell {
	cfg := m.Config
	hw, hl, eave := m.HalfWidth, m.HalfLength, cfg.EaveHeight
	wall := r3.Vec{X: 0.02, Y: eave, Z: cfg.Length}
	return model.Shell{
		SideWalls: []model.Box{
			{Name: "side-wall-left", Center: r3.Vec{X: -hw - 0.01, Y: eave / 2}, Size: wall},
			{Name: "side-wall-right", Center: r3.Vec{X: hw + 0.01, Y: eave / 2}, Size: wall},
		},
		EndWalls: []model.Extrusion{
			{Name: "end-wall-back", Profile: m.EndWallProfile, Origin: r3.Vec{Z: -hl - 0.02}, Depth: 0.02},
			{Name: "end-wall-front", Profile: m.EndWallProfile, Origin: r3.Vec{Z: hl}, Depth: 0.02},
		},
		Roof: model.Extrusion{
			Name:    "roof",
			Profile: m.RoofProfile,
			Origin:  r3.Vec{Y: eave, Z: -hl},
			Depth:   cfg.Length,
		},
	}
}

func gutters(hw, hl, eave float64) []model.StructurePart {
	y := eave - 0.1
	return []model.StructurePart{
		model.NewMember(model.PartGutter, "gutter-left",
			r3.Vec{X: -hw - 0.15, Y: y, Z: -hl}, r3.Vec{X: -hw - 0.15, Y: y, Z: hl}, 0.08),
		model.NewMember(model.PartGutter, "gutter-right",
			r3.Vec{X: hw + 0.15, Y: y, Z: -hl}, r3.Vec{X: hw + 0.15, Y: y, Z: hl}, 0.08),
	}
}

func dimensions(cfg model.PolyhouseConfig, ridge float64) []model.Dimension {
	hw, hl := cfg.Width/2, cfg.Length/2
	return []model.Dimension{
		{Label: "Length", Start: r3.Vec{X: -hw - 3, Y: 0.5, Z: -hl}, End: r3.Vec{X: -hw - 3, Y: 0.5, Z: hl}, Value: cfg.Length},
		{Label: "Width", Start: r3.Vec{X: -hw, Y: 0.5, Z: hl + 3}, End: r3.Vec{X: hw, Y: 0.5, Z: hl + 3}, Value: cfg.Width},
		{Label: "Eave height", Start: r3.Vec{X: hw + 2, Z: hl + 2}, End: r3.Vec{X: hw + 2, Y: cfg.EaveHeight, Z: hl + 2}, Value: cfg.EaveHeight},
		{Label: "Ridge height", Start: r3.Vec{X: hw + 4, Z: hl + 2}, End: r3.Vec{X: hw + 4, Y: ridge, Z: hl + 2}, Value: ridge},
	}
}

// bounds covers the foundation, the roof and every feature. Dimension
// lines are annotations and are left out.
func bounds(m model.Model) model.Bounds {
	f := m.Foundation
	half := r3.Scale(0.5, f.Size)
	b := model.Bounds{Min: r3.Sub(f.Center, half), Max: r3.Add(f.Center, half)}
	b = b.Extend(r3.Vec{Y: m.Config.EaveHeight + m.RoofHeight})
	for _, g := range m.Gutters {
		b = b.Extend(g.Start()).Extend(g.End())
	}
	for _, feat := range m.Features {
		h := r3.Scale(0.5, feat.Size)
		b = b.Extend(r3.Sub(feat.Position, h)).Extend(r3.Add(feat.Position, h))
	}
	return b
}
