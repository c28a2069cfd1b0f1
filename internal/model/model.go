package model

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Point2D represents a 2D coordinate in metres.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Outline represents a closed polygon as a sequence of 2D points.
// The outline is implicitly closed: the last point connects back to the first.
type Outline []Point2D

// BoundingBox returns the min and max corners of the outline.
func (o Outline) BoundingBox() (min, max Point2D) {
	if len(o) == 0 {
		return Point2D{}, Point2D{}
	}
	min = Point2D{X: o[0].X, Y: o[0].Y}
	max = Point2D{X: o[0].X, Y: o[0].Y}
	for _, p := range o[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max
}

// Translate shifts all points by dx, dy.
func (o Outline) Translate(dx, dy float64) Outline {
	result := make(Outline, len(o))
	for i, p := range o {
		result[i] = Point2D{X: p.X + dx, Y: p.Y + dy}
	}
	return result
}

// Closed returns the outline with the first point repeated at the end, unless
// it is already there.
func (o Outline) Closed() Outline {
	if len(o) == 0 {
		return Outline{}
	}
	result := make(Outline, len(o), len(o)+1)
	copy(result, o)
	if o[0] != o[len(o)-1] {
		result = append(result, o[0])
	}
	return result
}

// IsFinite reports whether every coordinate is a finite number.
func (o Outline) IsFinite() bool {
	for _, p := range o {
		if math.IsNaN(p.X) || math.IsInf(p.X, 0) || math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
			return false
		}
	}
	return true
}

// PartKind classifies a structural frame member.
type PartKind string

const (
	PartPost   PartKind = "post"
	PartBeam   PartKind = "beam"
	PartRafter PartKind = "rafter"
	PartTruss  PartKind = "truss"
	PartGutter PartKind = "gutter"
	PartPipe   PartKind = "pipe"
)

// StructurePart is a cylindrical frame member. Position is the centre of the
// member and Direction its unit axis.
type StructurePart struct {
	Kind      PartKind `json:"kind"`
	Name      string   `json:"name"`
	Position  r3.Vec   `json:"position"`
	Direction r3.Vec   `json:"direction"`
	Length    float64  `json:"length"`
	Radius    float64  `json:"radius"`
}

// Start returns the first end point of the member.
func (p StructurePart) Start() r3.Vec {
	return r3.Sub(p.Position, r3.Scale(p.Length/2, p.Direction))
}

// End returns the second end point of the member.
func (p StructurePart) End() r3.Vec {
	return r3.Add(p.Position, r3.Scale(p.Length/2, p.Direction))
}

// NewMember builds a StructurePart spanning from a to b.
func NewMember(kind PartKind, name string, a, b r3.Vec, radius float64) StructurePart {
	d := r3.Sub(b, a)
	length := r3.Norm(d)
	dir := r3.Vec{Y: 1}
	if length > 0 {
		dir = r3.Scale(1/length, d)
	}
	return StructurePart{
		Kind:      kind,
		Name:      name,
		Position:  r3.Scale(0.5, r3.Add(a, b)),
		Direction: dir,
		Length:    length,
		Radius:    radius,
	}
}

// FeatureKind classifies an optional feature.
type FeatureKind string

const (
	FeatureSideVent    FeatureKind = "side-vent"
	FeatureTopVent     FeatureKind = "top-vent"
	FeatureInsectNet   FeatureKind = "insect-net"
	FeatureFan         FeatureKind = "exhaust-fan"
	FeatureFogger      FeatureKind = "fogger"
	FeatureCoolingPad  FeatureKind = "cooling-pad"
	FeatureClimateUnit FeatureKind = "climate-unit"
	FeatureDoor        FeatureKind = "door"
)

// Shape is the primitive used to draw an Element.
type Shape string

const (
	ShapeBox      Shape = "box"
	ShapeCylinder Shape = "cylinder"
	ShapeSphere   Shape = "sphere"
)

// Element is one drawable piece of a feature, positioned relative to the
// feature's origin. Rotation holds Euler angles in radians. Spin is a
// presentation-only angular speed in radians per second about the
// element's own axis.
type Element struct {
	Name     string  `json:"name"`
	Shape    Shape   `json:"shape"`
	Position r3.Vec  `json:"position"`
	Size     r3.Vec  `json:"size"`
	Rotation r3.Vec  `json:"rotation"`
	Spin     float64 `json:"spin,omitempty"`
}

// FeatureInstance is a placed optional feature.
type FeatureInstance struct {
	Kind     FeatureKind        `json:"kind"`
	Name     string             `json:"name"`
	Position r3.Vec             `json:"position"`
	Size     r3.Vec             `json:"size"`
	Params   map[string]float64 `json:"params,omitempty"`
	Elements []Element          `json:"elements,omitempty"`
}

// FrameProps describes how the frame looks.
type FrameProps struct {
	Material     StructureMaterial `json:"material"`
	Color        string            `json:"color"`
	Reflectivity float64           `json:"reflectivity"`
	Roughness    float64           `json:"roughness"`
}

// CoverProps describes how the cladding looks.
type CoverProps struct {
	Material    CoverMaterial `json:"material"`
	Color       string        `json:"color"`
	Opacity     float64       `json:"opacity"`
	Transparent bool          `json:"transparent"`
}

// Materials pairs the resolved frame and cover properties.
type Materials struct {
	Frame FrameProps `json:"frame"`
	Cover CoverProps `json:"cover"`
}

// Box is an axis-aligned solid.
type Box struct {
	Name   string `json:"name"`
	Center r3.Vec `json:"center"`
	Size   r3.Vec `json:"size"`
}

// Extrusion is a profile in the XY plane placed at Origin and extruded
// along +Z by Depth.
type Extrusion struct {
	Name    string  `json:"name"`
	Profile Outline `json:"profile"`
	Origin  r3.Vec  `json:"origin"`
	Depth   float64 `json:"depth"`
}

// Shell is the cladding: two side walls, two end walls and the roof skin.
type Shell struct {
	SideWalls []Box       `json:"sideWalls"`
	EndWalls  []Extrusion `json:"endWalls"`
	Roof      Extrusion   `json:"roof"`
}

// Plant is a decorative crop plant.
type Plant struct {
	Position      r3.Vec  `json:"position"`
	StemHeight    float64 `json:"stemHeight"`
	FoliageRadius float64 `json:"foliageRadius"`
}

// Interior holds the decorative contents of the house.
type Interior struct {
	Beds       []Box           `json:"beds"`
	Plants     []Plant         `json:"plants"`
	Irrigation []StructurePart `json:"irrigation"`
}

// Dimension is a labelled measurement line.
type Dimension struct {
	Label string  `json:"label"`
	Start r3.Vec  `json:"start"`
	End   r3.Vec  `json:"end"`
	Value float64 `json:"value"`
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min r3.Vec `json:"min"`
	Max r3.Vec `json:"max"`
}

// Size returns the extent along each axis.
func (b Bounds) Size() r3.Vec {
	return r3.Sub(b.Max, b.Min)
}

// Center returns the midpoint of the box.
func (b Bounds) Center() r3.Vec {
	return r3.Scale(0.5, r3.Add(b.Min, b.Max))
}

// Extend grows the box to include p.
func (b Bounds) Extend(p r3.Vec) Bounds {
	b.Min = r3.Vec{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y), Z: math.Min(b.Min.Z, p.Z)}
	b.Max = r3.Vec{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y), Z: math.Max(b.Max.Z, p.Z)}
	return b
}

// Model is the complete geometric description of a polyhouse. The X axis
// runs across the width, Y is up and Z runs along the length, with the
// origin at the centre of the footprint on the ground.
type Model struct {
	Config     PolyhouseConfig `json:"config"`
	HalfWidth  float64         `json:"halfWidth"`
	HalfLength float64         `json:"halfLength"`
	RoofHeight float64         `json:"roofHeight"`

	RoofProfile    Outline           `json:"roofProfile"`
	EndWallProfile Outline           `json:"endWallProfile"`
	Parts          []StructurePart   `json:"parts"`
	Features       []FeatureInstance `json:"features"`
	Materials      Materials         `json:"materials"`

	Shell      Shell           `json:"shell"`
	Gutters    []StructurePart `json:"gutters"`
	Foundation Box             `json:"foundation"`
	Interior   Interior        `json:"interior"`
	Dimensions []Dimension     `json:"dimensions"`
	Bounds     Bounds          `json:"bounds"`
}

// PartsOfKind returns the parts with the given kind.
func (m Model) PartsOfKind(kind PartKind) []StructurePart {
	var out []StructurePart
	for _, p := range m.Parts {
		if p.Kind == kind {
			out = append(out, p)
		}
	}
	return out
}

// FeaturesOfKind returns the features with the given kind.
func (m Model) FeaturesOfKind(kind FeatureKind) []FeatureInstance {
	var out []FeatureInstance
	for _, f := range m.Features {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}
