package ui

import (
	"testing"
	"time"

	"github.com/piwi3910/polyhouse/internal/model"
)

func configWithLength(l float64) model.PolyhouseConfig {
	cfg := model.DefaultConfig()
	cfg.Length = l
	return cfg
}

func TestNewHistory(t *testing.T) {
	h := NewHistory()
	if h.maxDepth != defaultMaxDepth {
		t.Errorf("expected maxDepth %d, got %d", defaultMaxDepth, h.maxDepth)
	}
	if h.CanUndo() {
		t.Error("new history should not be undoable")
	}
	if h.CanRedo() {
		t.Error("new history should not be redoable")
	}
}

func TestPushAndUndo(t *testing.T) {
	h := NewHistory()

	snap0 := MakeSnapshot(model.DefaultConfig(), "initial")
	h.Push(snap0)

	if !h.CanUndo() {
		t.Fatal("should be able to undo after push")
	}

	current := MakeSnapshot(configWithLength(40), "current")

	restored, ok := h.Undo(current)
	if !ok {
		t.Fatal("undo should succeed")
	}
	if restored.Config.Length != 30 {
		t.Errorf("expected length 30 after undo, got %.1f", restored.Config.Length)
	}
	if restored.Label != "initial" {
		t.Errorf("expected label 'initial', got %q", restored.Label)
	}
}

func TestUndoRedo(t *testing.T) {
	h := NewHistory()

	h.Push(MakeSnapshot(configWithLength(30), "30 m"))
	h.Push(MakeSnapshot(configWithLength(36), "36 m"))

	current := MakeSnapshot(configWithLength(42), "42 m")

	restored, ok := h.Undo(current)
	if !ok {
		t.Fatal("first undo should succeed")
	}
	if restored.Config.Length != 36 {
		t.Errorf("expected length 36, got %.1f", restored.Config.Length)
	}

	if !h.CanRedo() {
		t.Fatal("should be able to redo")
	}
	redone, ok := h.Redo(restored)
	if !ok {
		t.Fatal("redo should succeed")
	}
	if redone.Config.Length != 42 {
		t.Errorf("expected length 42 after redo, got %.1f", redone.Config.Length)
	}
}

func TestPushClearsRedo(t *testing.T) {
	h := NewHistory()

	h.Push(MakeSnapshot(model.DefaultConfig(), "default"))

	_, ok := h.Undo(MakeSnapshot(configWithLength(40), "longer"))
	if !ok {
		t.Fatal("undo should succeed")
	}
	if !h.CanRedo() {
		t.Fatal("should be able to redo after undo")
	}

	h.Push(MakeSnapshot(configWithLength(20), "new action"))
	if h.CanRedo() {
		t.Error("redo stack should be cleared after push")
	}
}

func TestMaxDepth(t *testing.T) {
	h := &History{maxDepth: 3}

	for i := 0; i < 5; i++ {
		h.Push(MakeSnapshot(configWithLength(float64(10+i)), ""))
	}

	if len(h.undoStack) != 3 {
		t.Errorf("expected undo stack length 3, got %d", len(h.undoStack))
	}
	if h.undoStack[0].Config.Length != 12 {
		t.Errorf("expected oldest kept length 12, got %.1f", h.undoStack[0].Config.Length)
	}
}

func TestDefaultMaxDepthIsFifty(t *testing.T) {
	h := NewHistory()
	for i := 0; i < 60; i++ {
		h.Push(MakeSnapshot(configWithLength(float64(i+1)), ""))
	}
	if len(h.undoStack) != 50 {
		t.Errorf("expected 50 snapshots, got %d", len(h.undoStack))
	}
}

func TestUndoEmpty(t *testing.T) {
	h := NewHistory()
	_, ok := h.Undo(MakeSnapshot(model.DefaultConfig(), "current"))
	if ok {
		t.Error("undo on empty history should return false")
	}
}

func TestRedoEmpty(t *testing.T) {
	h := NewHistory()
	_, ok := h.Redo(MakeSnapshot(model.DefaultConfig(), "current"))
	if ok {
		t.Error("redo on empty history should return false")
	}
}

func TestClear(t *testing.T) {
	h := NewHistory()
	h.Push(MakeSnapshot(configWithLength(10), "a"))
	h.Push(MakeSnapshot(configWithLength(20), "b"))

	h.Undo(MakeSnapshot(configWithLength(30), "current"))

	h.Clear()
	if h.CanUndo() || h.CanRedo() {
		t.Error("after clear, should not be able to undo or redo")
	}
}

func TestSnapshotIndependentOfSource(t *testing.T) {
	cfg := model.DefaultConfig()
	snap := MakeSnapshot(cfg, "test")

	cfg.RoofType = model.RoofVenlo
	cfg.State = "Punjab"

	if snap.Config.RoofType != model.RoofGable || snap.Config.State != "Karnataka" {
		t.Error("snapshot should be independent of the source configuration")
	}
}

func TestMultipleUndoRedo(t *testing.T) {
	h := NewHistory()

	roofs := []model.RoofType{model.RoofGable, model.RoofGothic, model.RoofQuonset}
	for _, r := range roofs {
		cfg := model.DefaultConfig()
		cfg.RoofType = r
		h.Push(MakeSnapshot(cfg, string(r)))
	}

	cur := model.DefaultConfig()
	cur.RoofType = model.RoofVenlo
	s := MakeSnapshot(cur, "venlo")

	for i := len(roofs) - 1; i >= 0; i-- {
		var ok bool
		s, ok = h.Undo(s)
		if !ok || s.Config.RoofType != roofs[i] {
			t.Fatalf("undo %d: expected %s, got %s", len(roofs)-i, roofs[i], s.Config.RoofType)
		}
	}

	if h.CanUndo() {
		t.Error("should not be able to undo further")
	}

	want := []model.RoofType{model.RoofGothic, model.RoofQuonset, model.RoofVenlo}
	for i, r := range want {
		var ok bool
		s, ok = h.Redo(s)
		if !ok || s.Config.RoofType != r {
			t.Fatalf("redo %d: expected %s, got %s", i+1, r, s.Config.RoofType)
		}
	}

	if h.CanRedo() {
		t.Error("should not be able to redo further")
	}
}

func TestRecordCoalescesSameField(t *testing.T) {
	h := NewHistory()
	t0 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	if !h.Record(configWithLength(30), "Length", t0) {
		t.Fatal("first edit should add a step")
	}
	if h.Record(configWithLength(3), "Length", t0.Add(300*time.Millisecond)) {
		t.Error("typing within the window should merge")
	}
	if !h.Record(configWithLength(36), "Width", t0.Add(600*time.Millisecond)) {
		t.Error("another field should add a step")
	}
	if !h.Record(configWithLength(36), "Width", t0.Add(3*time.Second)) {
		t.Error("an edit after the window should add a step")
	}

	var lengths []float64
	for h.CanUndo() {
		s, _ := h.Undo(MakeSnapshot(model.DefaultConfig(), "current"))
		lengths = append(lengths, s.Config.Length)
	}
	if len(lengths) != 3 || lengths[2] != 30 {
		t.Errorf("unexpected undo sequence %v", lengths)
	}
}

func TestRecordAfterUndoStartsNewStep(t *testing.T) {
	h := NewHistory()
	t0 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	h.Record(configWithLength(30), "Length", t0)
	h.Undo(MakeSnapshot(configWithLength(40), "current"))
	if !h.Record(configWithLength(30), "Length", t0.Add(100*time.Millisecond)) {
		t.Error("edit after undo should not merge into the undone step")
	}
}
