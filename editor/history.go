package editor

import (
	"encoding/json"
	"time"

	"inkling/core"
	"inkling/protocol"
)

// maxHistoryEntries bounds the diff history ring buffer.
const maxHistoryEntries = 50

// Entry pairs an applied diff with a snapshot of the element list
// taken just before it was applied.
type Entry struct {
	Diff      *protocol.EditDiff
	Snapshot  string // JSON element list
	Timestamp time.Time
}

// History is a bounded ring of applied diffs, kept for undo and audit.
// The oldest entry is dropped once the buffer is full.
type History struct {
	entries []Entry
	max     int
}

// NewHistory creates a history buffer. A non-positive max uses the
// default capacity.
func NewHistory(max int) *History {
	if max <= 0 {
		max = maxHistoryEntries
	}
	return &History{
		entries: make([]Entry, 0, max),
		max:     max,
	}
}

// Record appends an applied diff and its pre-apply snapshot.
func (h *History) Record(diff *protocol.EditDiff, before []core.Element) error {
	data, err := json.Marshal(before)
	if err != nil {
		return err
	}

	h.entries = append(h.entries, Entry{
		Diff:      diff,
		Snapshot:  string(data),
		Timestamp: time.Now(),
	})
	if len(h.entries) > h.max {
		h.entries = h.entries[1:]
	}
	return nil
}

// Len returns the number of recorded entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Last returns the most recent entry, or nil.
func (h *History) Last() *Entry {
	if len(h.entries) == 0 {
		return nil
	}
	return &h.entries[len(h.entries)-1]
}

// Pop removes the most recent entry and returns its pre-apply element
// list, or nil when the history is empty.
func (h *History) Pop() ([]core.Element, error) {
	if len(h.entries) == 0 {
		return nil, nil
	}

	entry := h.entries[len(h.entries)-1]
	h.entries = h.entries[:len(h.entries)-1]

	var elements []core.Element
	if err := json.Unmarshal([]byte(entry.Snapshot), &elements); err != nil {
		return nil, err
	}
	return elements, nil
}
