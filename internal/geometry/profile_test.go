package geometry

import (
	"math"
	"testing"

	"github.com/piwi3910/polyhouse/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func TestRoofProfile_GableScenario(t *testing.T) {
	p := RoofProfile(model.RoofGable, 5, 2, 10)
	require.Len(t, p, 3)
	assert.Equal(t, model.Outline{{X: -5, Y: 0}, {X: 0, Y: 2}, {X: 5, Y: 0}}, p)
}

func TestRoofProfile_HeightRangeForAllRoofTypes(t *testing.T) {
	for _, rt := range model.RoofTypes {
		for _, width := range []float64{4, 7.5, 10, 16, 33} {
			hw := width / 2
			p := RoofProfile(rt, hw, 2.5, width)
			require.NotEmpty(t, p, "roof %s", rt)

			min, max := p.BoundingBox()
			assert.InDelta(t, 2.5, max.Y, eps, "roof %s width %v max height", rt, width)
			assert.InDelta(t, 0.0, min.Y, eps, "roof %s width %v min height", rt, width)
			assert.InDelta(t, -hw, min.X, eps, "roof %s width %v left edge", rt, width)
			assert.InDelta(t, hw, max.X, eps, "roof %s width %v right edge", rt, width)

			closed := p.Closed()
			assert.Equal(t, closed[0], closed[len(closed)-1], "roof %s must close", rt)
			assert.Equal(t, model.Point2D{X: -hw, Y: 0}, p[0])
			assert.Equal(t, model.Point2D{X: hw, Y: 0}, p[len(p)-1])
		}
	}
}

func TestRoofProfile_FlatHasDrainageSlope(t *testing.T) {
	p := RoofProfile(model.RoofFlat, 5, 2, 10)
	require.Len(t, p, 4)
	assert.InDelta(t, 1.8, p[1].Y, eps)
	assert.InDelta(t, 2.0, p[2].Y, eps)
	assert.InDelta(t, 0.2, p[2].Y-p[1].Y, eps, "rise across the span is 10% of the roof height")
}

func TestRoofProfile_ArchesAreSymmetric(t *testing.T) {
	for _, rt := range []model.RoofType{model.RoofGothic, model.RoofQuonset} {
		p := RoofProfile(rt, 6, 3, 12)
		require.Len(t, p, ArchSegments+1)
		for i := range p {
			j := len(p) - 1 - i
			assert.InDelta(t, -p[i].X, p[j].X, 1e-9, "%s x symmetry at %d", rt, i)
			assert.InDelta(t, p[i].Y, p[j].Y, 1e-9, "%s y symmetry at %d", rt, i)
		}
		assert.InDelta(t, 3.0, p[ArchSegments/2].Y, eps, "%s peak at midspan", rt)
	}
}

func TestRoofProfile_VenloScenario(t *testing.T) {
	p := RoofProfile(model.RoofVenlo, 5, 1.5, 10)
	assert.Equal(t, 2, PeakCount(10))
	require.Len(t, p, 5)
	assert.Equal(t, model.Outline{
		{X: -5, Y: 0},
		{X: -2.5, Y: 1.5},
		{X: 0, Y: 0},
		{X: 2.5, Y: 1.5},
		{X: 5, Y: 0},
	}, p)
}

func TestRoofProfile_VenloPeaks(t *testing.T) {
	for _, width := range []float64{1, 7.9, 8, 16, 24, 31.9, 40} {
		hw := width / 2
		n := PeakCount(width)
		assert.Equal(t, max(2, int(math.Floor(width/8))), n)
		assert.GreaterOrEqual(t, n, 2)

		p := RoofProfile(model.RoofVenlo, hw, 2, width)
		peaks := 0
		for _, pt := range p {
			if math.Abs(pt.Y-2) < eps {
				peaks++
			}
		}
		assert.Equal(t, n, peaks, "width %v", width)

		span := width / float64(n)
		for i, x := range PeakXs(hw, width) {
			assert.InDelta(t, -hw+(float64(i)+0.5)*span, x, eps)
			assert.InDelta(t, 2.0, HeightAt(model.RoofVenlo, hw, 2, width, x), 1e-9)
		}
	}
}

func TestRoofProfile_UnknownTypeIsGable(t *testing.T) {
	assert.Equal(t,
		RoofProfile(model.RoofGable, 4, 1, 8),
		RoofProfile(model.RoofType("geodesic"), 4, 1, 8))
}

func TestRoofProfile_DegenerateInputs(t *testing.T) {
	for _, rt := range model.RoofTypes {
		p := RoofProfile(rt, 5, -2, 10)
		assert.True(t, p.IsFinite(), "%s", rt)
		for _, pt := range p {
			assert.InDelta(t, 0.0, pt.Y, eps, "%s negative roof height collapses to the eave line", rt)
		}

		p = RoofProfile(rt, math.NaN(), math.Inf(1), math.NaN())
		assert.True(t, p.IsFinite(), "%s must not produce NaN", rt)
	}
}

func TestEndWallProfile(t *testing.T) {
	p := EndWallProfile(model.RoofGable, 5, 4, 6, 10)
	assert.Equal(t, model.Outline{
		{X: -5, Y: 0},
		{X: -5, Y: 4},
		{X: 0, Y: 6},
		{X: 5, Y: 4},
		{X: 5, Y: 0},
	}, p)

	for _, rt := range model.RoofTypes {
		p := EndWallProfile(rt, 5, 4, 6, 10)
		min, max := p.BoundingBox()
		assert.InDelta(t, 0.0, min.Y, eps, "%s", rt)
		assert.InDelta(t, 6.0, max.Y, eps, "%s", rt)
	}
}

func TestEndWallProfile_RidgeBelowEave(t *testing.T) {
	p := EndWallProfile(model.RoofGothic, 5, 4, 3, 10)
	require.True(t, p.IsFinite())
	_, max := p.BoundingBox()
	assert.InDelta(t, 4.0, max.Y, eps, "inverted ridge degrades to a box at eave height")
}

func TestHeightAt(t *testing.T) {
	assert.InDelta(t, 2.0, HeightAt(model.RoofGable, 5, 2, 10, 0), eps)
	assert.InDelta(t, 1.0, HeightAt(model.RoofGable, 5, 2, 10, 2.5), eps)
	assert.InDelta(t, 0.0, HeightAt(model.RoofGable, 5, 2, 10, 50), eps, "clamped outside the span")
	assert.InDelta(t, 2.0, HeightAt(model.RoofGothic, 5, 2, 10, 0), eps)
	assert.InDelta(t, 2.0, HeightAt(model.RoofQuonset, 5, 2, 10, 0), eps)
	assert.InDelta(t, 0.0, HeightAt(model.RoofQuonset, 5, 2, 10, -5), eps)
	assert.InDelta(t, 1.8, HeightAt(model.RoofFlat, 5, 2, 10, -5), eps)
	assert.InDelta(t, 2.0, HeightAt(model.RoofFlat, 5, 2, 10, 5), eps)
	assert.InDelta(t, 0.0, HeightAt(model.RoofVenlo, 5, 2, 10, 0), eps)
	assert.InDelta(t, 0.0, HeightAt(model.RoofGable, 0, 2, 0, 0), eps)
}
