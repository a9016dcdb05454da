package editor

import (
	"fmt"
	"testing"

	"inkling/core"
	"inkling/protocol"
)

func TestHistoryRecordAndPop(t *testing.T) {
	h := NewHistory(0)
	if h.Len() != 0 || h.Last() != nil {
		t.Fatal("fresh history should be empty")
	}

	before := []core.Element{{ID: "a", Kind: core.KindRectangle, X: 1, Y: 2, Width: 3, Height: 4}}
	diff := &protocol.EditDiff{Explanation: "first", Success: true}
	if err := h.Record(diff, before); err != nil {
		t.Fatalf("record: %v", err)
	}

	if h.Len() != 1 {
		t.Errorf("len = %d", h.Len())
	}
	if h.Last().Diff.Explanation != "first" {
		t.Errorf("wrong last entry: %+v", h.Last())
	}

	restored, err := h.Pop()
	if err != nil {
		t.Fatalf("pop: %v", err)
	}
	if len(restored) != 1 || restored[0].ID != "a" || restored[0].Width != 3 {
		t.Errorf("snapshot did not round-trip: %+v", restored)
	}
	if h.Len() != 0 {
		t.Error("pop should remove the entry")
	}
}

func TestHistoryPopEmpty(t *testing.T) {
	h := NewHistory(0)
	elements, err := h.Pop()
	if err != nil {
		t.Fatalf("pop on empty history: %v", err)
	}
	if elements != nil {
		t.Errorf("expected nil, got %+v", elements)
	}
}

func TestHistoryDropsOldestWhenFull(t *testing.T) {
	h := NewHistory(3)
	for i := 0; i < 5; i++ {
		diff := &protocol.EditDiff{Explanation: fmt.Sprintf("edit %d", i)}
		if err := h.Record(diff, nil); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	if h.Len() != 3 {
		t.Fatalf("len = %d, want 3", h.Len())
	}
	if h.Last().Diff.Explanation != "edit 4" {
		t.Errorf("newest entry lost: %q", h.Last().Diff.Explanation)
	}
	// Pop everything; the oldest survivor must be edit 2.
	h.Pop()
	h.Pop()
	if h.Last().Diff.Explanation != "edit 2" {
		t.Errorf("wrong oldest survivor: %q", h.Last().Diff.Explanation)
	}
}
