package widgets

import (
	"image/color"
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/piwi3910/polyhouse/internal/builder"
	"github.com/piwi3910/polyhouse/internal/camera"
	"github.com/piwi3910/polyhouse/internal/model"
)

func TestProject_TargetAtCentre(t *testing.T) {
	pose := camera.Pose{Position: r3.Vec{Z: 10}, Target: r3.Vec{}, FOV: 90}
	size := fyne.NewSize(400, 300)

	pos, ok := Project(pose, r3.Vec{}, size)
	require.True(t, ok)
	assert.InDelta(t, 200, pos.X, 1e-3)
	assert.InDelta(t, 150, pos.Y, 1e-3)
}

func TestProject_Orientation(t *testing.T) {
	// Looking down -Z: +X is right and +Y is up on screen.
	pose := camera.Pose{Position: r3.Vec{Z: 10}, Target: r3.Vec{}, FOV: 90}
	size := fyne.NewSize(400, 300)

	right, ok := Project(pose, r3.Vec{X: 1}, size)
	require.True(t, ok)
	up, ok := Project(pose, r3.Vec{Y: 1}, size)
	require.True(t, ok)

	assert.Greater(t, right.X, float32(200))
	assert.Less(t, up.Y, float32(150))

	// FOV 90 puts a point at depth d and height d on the top edge.
	edge, ok := Project(pose, r3.Vec{Y: 10}, size)
	require.True(t, ok)
	assert.InDelta(t, 0, edge.Y, 1e-3)
}

func TestProject_BehindCamera(t *testing.T) {
	pose := camera.Pose{Position: r3.Vec{Z: 10}, Target: r3.Vec{}, FOV: 45}
	_, ok := Project(pose, r3.Vec{Z: 20}, fyne.NewSize(100, 100))
	assert.False(t, ok)
}

func TestProject_StraightDown(t *testing.T) {
	pose := camera.Pose{Position: r3.Vec{Y: 10}, Target: r3.Vec{}, FOV: 45}
	pos, ok := Project(pose, r3.Vec{}, fyne.NewSize(100, 100))
	require.True(t, ok)
	assert.InDelta(t, 50, pos.X, 1e-3)
	assert.InDelta(t, 50, pos.Y, 1e-3)
}

func TestWireframe_CoversModel(t *testing.T) {
	cfg := model.DefaultConfig()
	m := builder.Build(cfg)
	segs := Wireframe(m)

	// every member, gutter and edge of both end walls
	minimum := len(m.Parts) + len(m.Gutters) + 2*len(m.EndWallProfile.Closed()) - 2
	assert.GreaterOrEqual(t, len(segs), minimum)

	pose := camera.Preset(cfg)
	visible := 0
	for _, s := range segs {
		if _, ok := Project(pose, s.A, fyne.NewSize(800, 600)); ok {
			visible++
		}
	}
	assert.Equal(t, len(segs), visible, "the preset sees the whole house")
}

func TestAppendBox_SkipsFlatEdges(t *testing.T) {
	assert.Len(t, appendBox(nil, r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1}, color.Black), 12)
	assert.Len(t, appendBox(nil, r3.Vec{}, r3.Vec{X: 1, Y: 1}, color.Black), 4)
	assert.Empty(t, appendBox(nil, r3.Vec{}, r3.Vec{}, color.Black))
}

func TestParseHexColor(t *testing.T) {
	fallback := color.NRGBA{A: 255}
	assert.Equal(t, color.NRGBA{R: 0x9e, G: 0x9e, B: 0x9e, A: 255}, parseHexColor("#9E9E9E", fallback))
	assert.Equal(t, fallback, parseHexColor("nope", fallback))
	assert.Equal(t, fallback, parseHexColor("#12345", fallback))
}
