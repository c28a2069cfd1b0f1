// Package camera drives the viewport camera: a preset pose per polyhouse
// type and a timed fly-over between poses.
//
// The transition is a value type advanced by a pure function once per
// frame. It follows a quadratic Bezier curve through a waypoint raised
// above both end poses, eased with a quartic ease-in-out, and disables
// user input until it completes.
package camera

import (
	"math"

	"github.com/piwi3910/polyhouse/internal/model"
	"gonum.org/v1/gonum/spatial/r3"
)

// Duration is the length of a transition in seconds.
const Duration = 2.0

// waypointLift is how far above the higher end pose the waypoint sits, in
// multiples of the ridge height.
const waypointLift = 1.5

// Pose is a camera position looking at Target with a vertical field of
// view in degrees.
type Pose struct {
	Position r3.Vec  `json:"position"`
	Target   r3.Vec  `json:"target"`
	FOV      float64 `json:"fov"`
}

// Preset returns the framing used for cfg's polyhouse type. Types without
// a dedicated framing use the naturally ventilated one.
func Preset(cfg model.PolyhouseConfig) Pose {
	w, l, ridge := cfg.Width, cfg.Length, cfg.RidgeHeight
	switch cfg.PolyhouseType {
	case model.ClimateControlled:
		return Pose{
			Position: r3.Vec{X: -w * 0.8, Y: ridge * 1.8, Z: l * 1.6},
			Target:   r3.Vec{Y: ridge * 0.3},
			FOV:      50,
		}
	case model.ShadeNetHouse:
		return Pose{
			Position: r3.Vec{X: w * 1.5, Y: ridge * 2.5, Z: l * 0.8},
			Target:   r3.Vec{Y: ridge * 0.5},
			FOV:      42,
		}
	default:
		return Pose{
			Position: r3.Vec{X: w * 1.2, Y: ridge * 2.2, Z: l * 1.4},
			Target:   r3.Vec{Y: ridge * 0.4},
			FOV:      45,
		}
	}
}

// Phase is the state of the transition machine.
type Phase int

const (
	Idle Phase = iota
	Transitioning
)

func (p Phase) String() string {
	if p == Transitioning {
		return "transitioning"
	}
	return "idle"
}

// State is one snapshot of the camera transition.
type State struct {
	Phase    Phase   `json:"phase"`
	From     Pose    `json:"from"`
	To       Pose    `json:"to"`
	Waypoint r3.Vec  `json:"waypoint"`
	Elapsed  float64 `json:"elapsed"`
}

// Rest returns an idle state holding pose.
func Rest(pose Pose) State {
	return State{Phase: Idle, From: pose, To: pose, Waypoint: pose.Position}
}

// Start begins a transition from the current live pose to goal. The
// waypoint sits midway between the two positions, lifted ridgeHeight*1.5
// above the higher of them. Any transition already in flight is replaced.
func Start(current, goal Pose, ridgeHeight float64) State {
	mid := r3.Scale(0.5, r3.Add(current.Position, goal.Position))
	mid.Y = math.Max(current.Position.Y, goal.Position.Y) + ridgeHeight*waypointLift
	return State{
		Phase:    Transitioning,
		From:     current,
		To:       goal,
		Waypoint: mid,
	}
}

// Advance moves the transition forward by dt seconds. Negative or NaN
// deltas count as zero. When progress reaches 1 the state returns to Idle.
func Advance(s State, dt float64) State {
	if s.Phase != Transitioning {
		return s
	}
	if math.IsNaN(dt) || dt < 0 {
		dt = 0
	}
	s.Elapsed += dt
	if s.Elapsed >= Duration {
		s.Elapsed = Duration
		s.Phase = Idle
	}
	return s
}

// Progress returns the linear progress of the transition in [0, 1].
func (s State) Progress() float64 {
	if s.Phase == Idle {
		return 1
	}
	return clamp01(s.Elapsed / Duration)
}

// InputEnabled reports whether orbit and pan input should be accepted.
func (s State) InputEnabled() bool {
	return s.Phase == Idle
}

// Pose returns the live camera pose for this state.
func (s State) Pose() Pose {
	if s.Phase == Idle {
		return s.To
	}
	t := EaseInOutQuart(s.Progress())
	return Pose{
		Position: Bezier(s.From.Position, s.Waypoint, s.To.Position, t),
		Target:   Lerp(s.From.Target, s.To.Target, t),
		FOV:      s.From.FOV + (s.To.FOV-s.From.FOV)*t,
	}
}

// EaseInOutQuart eases t in [0, 1].
func EaseInOutQuart(t float64) float64 {
	t = clamp01(t)
	if t < 0.5 {
		return 8 * t * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 4)/2
}

// Bezier evaluates the quadratic Bezier curve p0, p1, p2 at t.
func Bezier(p0, p1, p2 r3.Vec, t float64) r3.Vec {
	u := 1 - t
	return r3.Add(r3.Add(r3.Scale(u*u, p0), r3.Scale(2*u*t, p1)), r3.Scale(t*t, p2))
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b r3.Vec, t float64) r3.Vec {
	return r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
}

func clamp01(t float64) float64 {
	if math.IsNaN(t) || t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
