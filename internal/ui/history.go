package ui

import (
	"time"

	"github.com/piwi3910/polyhouse/internal/model"
)

const defaultMaxDepth = 50

// coalesceWindow merges rapid edits of one field, such as typing a number,
// into a single undo step.
const coalesceWindow = time.Second

// Snapshot is a design configuration as it was before an edit.
type Snapshot struct {
	Config model.PolyhouseConfig
	Label  string // form field that changed, e.g. "Roof type"
}

// MakeSnapshot records cfg under label. PolyhouseConfig holds only values,
// so the snapshot never aliases the live design.
func MakeSnapshot(cfg model.PolyhouseConfig, label string) Snapshot {
	return Snapshot{Config: cfg, Label: label}
}

// History keeps bounded undo and redo stacks of design snapshots.
type History struct {
	undoStack []Snapshot
	redoStack []Snapshot
	maxDepth  int

	lastLabel string
	lastAt    time.Time
}

func NewHistory() *History {
	return &History{maxDepth: defaultMaxDepth}
}

// Push stores the state before an edit and drops any redo steps. The
// oldest snapshot falls off once the stack exceeds its depth.
func (h *History) Push(s Snapshot) {
	h.undoStack = append(h.undoStack, s)
	if over := len(h.undoStack) - h.maxDepth; over > 0 {
		h.undoStack = h.undoStack[over:]
	}
	h.redoStack = nil
	h.lastLabel = ""
}

// Record pushes before unless the previous edit touched the same field
// less than a second before at. It reports whether a new step was added.
func (h *History) Record(before model.PolyhouseConfig, label string, at time.Time) bool {
	merge := label != "" && label == h.lastLabel && at.Sub(h.lastAt) <= coalesceWindow
	if !merge {
		h.Push(MakeSnapshot(before, label))
	}
	h.lastLabel, h.lastAt = label, at
	return !merge
}

// Undo returns the state to restore and moves current onto the redo stack.
func (h *History) Undo(current Snapshot) (Snapshot, bool) {
	s, ok := pop(&h.undoStack)
	if ok {
		h.redoStack = append(h.redoStack, current)
		h.lastLabel = ""
	}
	return s, ok
}

// Redo is the inverse of Undo.
func (h *History) Redo(current Snapshot) (Snapshot, bool) {
	s, ok := pop(&h.redoStack)
	if ok {
		h.undoStack = append(h.undoStack, current)
		h.lastLabel = ""
	}
	return s, ok
}

func (h *History) CanUndo() bool { return len(h.undoStack) > 0 }

func (h *History) CanRedo() bool { return len(h.redoStack) > 0 }

// Clear forgets every step, e.g. when another design is opened.
func (h *History) Clear() {
	h.undoStack, h.redoStack = nil, nil
	h.lastLabel = ""
}

func pop(stack *[]Snapshot) (Snapshot, bool) {
	n := len(*stack)
	if n == 0 {
		return Snapshot{}, false
	}
	s := (*stack)[n-1]
	*stack = (*stack)[:n-1]
	return s, true
}
