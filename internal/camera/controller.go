package camera

import (
	"math"

	"github.com/piwi3910/polyhouse/internal/model"
	"gonum.org/v1/gonum/spatial/r3"
)

// Controller owns the transition state for one viewport. It must only be
// used from the goroutine that renders frames.
type Controller struct {
	state    State
	lastType model.PolyhouseType
}

// NewController returns a controller resting at cfg's preset.
func NewController(cfg model.PolyhouseConfig) *Controller {
	return &Controller{
		state:    Rest(Preset(cfg)),
		lastType: cfg.PolyhouseType,
	}
}

// Update reacts to a configuration change. Switching polyhouse type starts
// a transition from the current live pose, even mid-flight. It reports
// whether a transition was started.
func (c *Controller) Update(cfg model.PolyhouseConfig) bool {
	if cfg.PolyhouseType == c.lastType {
		return false
	}
	c.lastType = cfg.PolyhouseType
	c.state = Start(c.state.Pose(), Preset(cfg), cfg.RidgeHeight)
	return true
}

// Reset jumps straight to cfg's preset without animating.
func (c *Controller) Reset(cfg model.PolyhouseConfig) {
	c.lastType = cfg.PolyhouseType
	c.state = Rest(Preset(cfg))
}

// Tick advances the transition and returns the pose to render.
func (c *Controller) Tick(dt float64) Pose {
	c.state = Advance(c.state, dt)
	return c.state.Pose()
}

func (c *Controller) Pose() Pose { return c.state.Pose() }

func (c *Controller) State() State { return c.state }

func (c *Controller) InputEnabled() bool { return c.state.InputEnabled() }

func (c *Controller) Animating() bool { return c.state.Phase == Transitioning }

// Orbit rotates the camera about its target by yaw and pitch radians.
// Input is ignored while a transition runs.
func (c *Controller) Orbit(yaw, pitch float64) {
	if !c.InputEnabled() {
		return
	}
	c.state = Rest(Orbit(c.state.Pose(), yaw, pitch))
}

// Zoom scales the distance to the target. Input is ignored while a
// transition runs.
func (c *Controller) Zoom(factor float64) {
	if !c.InputEnabled() {
		return
	}
	c.state = Rest(Zoom(c.state.Pose(), factor))
}

// Orbit returns p rotated about its target. Pitch is limited so the camera
// never flips over the pole or dips below the ground plane.
func Orbit(p Pose, yaw, pitch float64) Pose {
	off := r3.Sub(p.Position, p.Target)
	r := r3.Norm(off)
	if r == 0 {
		return p
	}
	az := math.Atan2(off.X, off.Z) + yaw
	el := math.Asin(off.Y/r) + pitch
	el = math.Max(0.02, math.Min(math.Pi/2-0.02, el))
	p.Position = r3.Add(p.Target, r3.Vec{
		X: r * math.Cos(el) * math.Sin(az),
		Y: r * math.Sin(el),
		Z: r * math.Cos(el) * math.Cos(az),
	})
	return p
}

// Zoom returns p moved towards (factor < 1) or away from its target.
func Zoom(p Pose, factor float64) Pose {
	if factor <= 0 || math.IsNaN(factor) {
		return p
	}
	off := r3.Scale(factor, r3.Sub(p.Position, p.Target))
	if r3.Norm(off) < 1 {
		return p
	}
	p.Position = r3.Add(p.Target, off)
	return p
}
