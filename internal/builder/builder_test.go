package builder

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/piwi3910/polyhouse/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func seeded(seed uint64) Option {
	return WithRandom(rand.New(rand.NewPCG(seed, seed)))
}

func TestBuild_GableScenario(t *testing.T) {
	cfg := model.DefaultConfig()
	m := Build(cfg)

	assert.Equal(t, 2.0, m.RoofHeight)
	assert.Equal(t, 5.0, m.HalfWidth)
	assert.Equal(t, 15.0, m.HalfLength)
	assert.Equal(t, model.Outline{{X: -5, Y: 0}, {X: 0, Y: 2}, {X: 5, Y: 0}}, m.RoofProfile)
	assert.Equal(t, "#4a4a4a", m.Materials.Frame.Color)
	assert.Equal(t, "#a8e6cf", m.Materials.Cover.Color)
	assert.NotEmpty(t, m.Parts)
	assert.Len(t, m.FeaturesOfKind(model.FeatureDoor), 1)
}

func TestBuild_SeededIsReproducible(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Fans, cfg.Foggers, cfg.InsectNet = true, true, true

	a := New(seeded(42)).Build(cfg)
	b := New(seeded(42)).Build(cfg)
	assert.Equal(t, a, b)
}

func TestBuild_StructureIsDeterministic(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.RoofType = model.RoofVenlo
	cfg.Width = 24
	cfg.TopVentilation = model.VentLouver

	a := New(seeded(1)).Build(cfg)
	b := New(seeded(2)).Build(cfg)
	require.NotEqual(t, a.Interior.Plants, b.Interior.Plants, "different seeds jitter plants differently")

	a.Interior.Plants, b.Interior.Plants = nil, nil
	assert.Equal(t, a, b)
}

func TestBuild_Interior(t *testing.T) {
	cfg := model.DefaultConfig()
	m := New(seeded(7)).Build(cfg)

	assert.Len(t, m.Interior.Beds, 4)
	assert.Len(t, m.Interior.Irrigation, 4)
	require.Len(t, m.Interior.Plants, 4*12)
	for _, p := range m.Interior.Plants {
		assert.GreaterOrEqual(t, p.StemHeight, 0.3)
		assert.Less(t, p.StemHeight, 0.7)
		assert.GreaterOrEqual(t, p.FoliageRadius, 0.25)
		assert.Less(t, p.FoliageRadius, 0.4)
		assert.Less(t, math.Abs(p.Position.Z), m.HalfLength)
		assert.Less(t, math.Abs(p.Position.X), m.HalfWidth)
	}
	assert.InDelta(t, -3.5, m.Interior.Beds[0].Center.X, 1e-9)
	assert.InDelta(t, 3.5, m.Interior.Beds[3].Center.X, 1e-9)

	bare := New(WithInterior(false)).Build(cfg)
	assert.Empty(t, bare.Interior.Beds)
	assert.Empty(t, bare.Interior.Plants)
}

func TestBuild_PostSpacingOption(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Length = 36
	wide := New(WithPostSpacing(6)).Build(cfg)
	narrow := New().Build(cfg)
	assert.Len(t, wide.PartsOfKind(model.PartPost), 4+2*5)
	assert.Len(t, narrow.PartsOfKind(model.PartPost), 4+2*8)
}

func TestBuild_ShellAndGutters(t *testing.T) {
	m := Build(model.DefaultConfig())
	assert.Len(t, m.Shell.SideWalls, 2)
	assert.Len(t, m.Shell.EndWalls, 2)
	assert.Equal(t, m.RoofProfile, m.Shell.Roof.Profile)
	assert.Equal(t, 30.0, m.Shell.Roof.Depth)
	assert.Equal(t, r3.Vec{Y: 4, Z: -15}, m.Shell.Roof.Origin)

	require.Len(t, m.Gutters, 2)
	assert.InDelta(t, 3.9, m.Gutters[0].Position.Y, 1e-9)
	assert.InDelta(t, 30.0, m.Gutters[0].Length, 1e-9)

	assert.InDelta(t, 10.4, m.Foundation.Size.X, 1e-9)
	assert.InDelta(t, 30.4, m.Foundation.Size.Z, 1e-9)
}

func TestBuild_Dimensions(t *testing.T) {
	m := Build(model.DefaultConfig())
	require.Len(t, m.Dimensions, 4)
	values := map[string]float64{}
	for _, d := range m.Dimensions {
		values[d.Label] = d.Value
		assert.InDelta(t, d.Value, r3.Norm(r3.Sub(d.End, d.Start)), 1e-9, d.Label)
	}
	assert.Equal(t, 30.0, values["Length"])
	assert.Equal(t, 10.0, values["Width"])
	assert.Equal(t, 4.0, values["Eave height"])
	assert.Equal(t, 6.0, values["Ridge height"])
}

func TestBuild_BoundsCoverStructure(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Fans = true
	m := Build(cfg)

	assert.InDelta(t, 6.0, m.Bounds.Max.Y, 1e-9)
	assert.InDelta(t, -5.2, m.Bounds.Min.X, 1e-9)
	assert.Greater(t, m.Bounds.Max.X, 5.2, "fans protrude from the right wall")
	assert.InDelta(t, -15.2, m.Bounds.Min.Z, 1e-9)
}

func TestBuild_DegenerateInputNeverProducesNaN(t *testing.T) {
	configs := []model.PolyhouseConfig{
		{},
		{Length: math.NaN(), Width: math.Inf(-1), EaveHeight: -4, RidgeHeight: math.NaN()},
		{Length: 30, Width: 10, EaveHeight: 6, RidgeHeight: 2, RoofType: model.RoofQuonset},
		{Length: 0.1, Width: 0.1, EaveHeight: 0.1, RidgeHeight: 0.1, RoofType: model.RoofVenlo,
			Fans: true, Foggers: true, InsectNet: true, PolyhouseType: model.FanAndPad,
			SideVentilation: model.VentLouver, TopVentilation: model.VentMotorizedRollup},
	}
	for i, cfg := range configs {
		m := Build(cfg)
		assert.True(t, m.RoofProfile.IsFinite(), "config %d roof", i)
		assert.True(t, m.EndWallProfile.IsFinite(), "config %d end wall", i)
		assert.GreaterOrEqual(t, m.RoofHeight, 0.0, "config %d", i)
		for _, p := range m.Parts {
			assert.False(t, math.IsNaN(p.Length) || math.IsNaN(p.Position.Y), "config %d part %s", i, p.Name)
			assert.GreaterOrEqual(t, p.Length, 0.0)
		}
		for _, v := range []float64{m.Bounds.Min.X, m.Bounds.Max.Y, m.Bounds.Max.Z} {
			assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "config %d bounds", i)
		}
	}
}

func TestBuild_HugeDimensionsAreClamped(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Length = 1e18
	cfg.Width = 1e18
	cfg.Fans, cfg.Foggers = true, true

	var m model.Model
	require.NotPanics(t, func() { m = New(seeded(7)).Build(cfg) })
	assert.Equal(t, model.MaxSpan, m.Config.Length)
	assert.Equal(t, model.MaxSpan, m.Config.Width)
	assert.Equal(t, model.MaxSpan/2, m.HalfLength)
	assert.NotEmpty(t, m.FeaturesOfKind(model.FeatureFan))
}

func TestBuild_InvertedRidgeDegradesToBox(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.RidgeHeight = 3
	m := Build(cfg)
	assert.Equal(t, 0.0, m.RoofHeight)
	_, max := m.EndWallProfile.BoundingBox()
	assert.Equal(t, 4.0, max.Y)
}
