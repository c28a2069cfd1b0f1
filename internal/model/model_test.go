package model

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestOutlineBoundingBox(t *testing.T) {
	o := Outline{{X: -5, Y: 0}, {X: 0, Y: 2}, {X: 5, Y: 0}}
	min, max := o.BoundingBox()
	if min.X != -5 || min.Y != 0 || max.X != 5 || max.Y != 2 {
		t.Errorf("unexpected bounding box %v %v", min, max)
	}

	min, max = Outline{}.BoundingBox()
	if min != (Point2D{}) || max != (Point2D{}) {
		t.Error("empty outline should have a zero bounding box")
	}
}

func TestOutlineClosed(t *testing.T) {
	o := Outline{{X: -5, Y: 0}, {X: 0, Y: 2}, {X: 5, Y: 0}}
	c := o.Closed()
	if len(c) != 4 {
		t.Fatalf("expected 4 points, got %d", len(c))
	}
	if c[0] != c[len(c)-1] {
		t.Error("closed outline should end at its first point")
	}
	if len(o) != 3 {
		t.Error("Closed must not modify the receiver")
	}
	if len(c.Closed()) != 4 {
		t.Error("closing an already closed outline should not add a point")
	}
}

func TestOutlineTranslate(t *testing.T) {
	o := Outline{{X: 1, Y: 1}}.Translate(2, 3)
	if o[0].X != 3 || o[0].Y != 4 {
		t.Errorf("unexpected translated point %v", o[0])
	}
}

func TestOutlineIsFinite(t *testing.T) {
	if !(Outline{{X: 1, Y: 2}}).IsFinite() {
		t.Error("finite outline reported as non-finite")
	}
	if (Outline{{X: math.NaN(), Y: 2}}).IsFinite() {
		t.Error("NaN outline reported as finite")
	}
}

func TestNewMember(t *testing.T) {
	p := NewMember(PartPost, "post", r3.Vec{X: 1}, r3.Vec{X: 1, Y: 4}, 0.06)
	if p.Length != 4 {
		t.Errorf("expected length 4, got %f", p.Length)
	}
	if p.Position != (r3.Vec{X: 1, Y: 2}) {
		t.Errorf("unexpected centre %v", p.Position)
	}
	if p.Direction != (r3.Vec{Y: 1}) {
		t.Errorf("unexpected direction %v", p.Direction)
	}
	if p.Start() != (r3.Vec{X: 1}) || p.End() != (r3.Vec{X: 1, Y: 4}) {
		t.Errorf("unexpected end points %v %v", p.Start(), p.End())
	}

	zero := NewMember(PartBeam, "zero", r3.Vec{}, r3.Vec{}, 0.05)
	if zero.Length != 0 || math.IsNaN(zero.Direction.Y) {
		t.Errorf("zero-length member should have a defined direction, got %v", zero.Direction)
	}
}

func TestBoundsExtend(t *testing.T) {
	b := Bounds{}
	b = b.Extend(r3.Vec{X: -2, Y: 3, Z: 1})
	b = b.Extend(r3.Vec{X: 4, Y: -1, Z: 5})
	if b.Min != (r3.Vec{X: -2, Y: -1, Z: 0}) || b.Max != (r3.Vec{X: 4, Y: 3, Z: 5}) {
		t.Errorf("unexpected bounds %v", b)
	}
	if b.Size() != (r3.Vec{X: 6, Y: 4, Z: 5}) {
		t.Errorf("unexpected size %v", b.Size())
	}
	if b.Center() != (r3.Vec{X: 1, Y: 1, Z: 2.5}) {
		t.Errorf("unexpected centre %v", b.Center())
	}
}

func TestCostBreakdownSubtotal(t *testing.T) {
	c := CostBreakdown{StructureCost: 1, CoverCost: 2, VentilationCost: 3, FoundationCost: 4,
		IrrigationCost: 5, ElectricalCost: 6, LaborCost: 7, MiscCost: 100}
	if c.Subtotal() != 28 {
		t.Errorf("expected subtotal 28, got %f", c.Subtotal())
	}
	if len(c.LineItems()) != 8 {
		t.Errorf("expected 8 line items, got %d", len(c.LineItems()))
	}
}
