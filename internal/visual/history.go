package visual

import (
	"fmt"
	"sync"

	"github.com/dshills/vimode/internal/engine/buffer"
	"github.com/dshills/vimode/internal/engine/cursor"
	"github.com/dshills/vimode/internal/input/mode"
)

// Record describes the most recently exited visual or select selection.
type Record struct {
	// Range is the highlighted range at exit.
	Range cursor.Range

	// Type is the selection type at exit.
	Type mode.SelectionType

	// Extent is the shape used by count-prefixed re-entry.
	Extent cursor.Extent

	Anchor buffer.ByteOffset
	Head   buffer.ByteOffset

	// Revision is the buffer revision the selection was captured at.
	Revision buffer.RevisionID
}

// String returns a readable form of the record.
func (r Record) String() string {
	return fmt.Sprintf("%s %s lines=%d cols=%d", r.Type, r.Range, r.Extent.Lines, r.Extent.Cols)
}

// History holds one Record per session. Each exit overwrites it.
// History is safe for concurrent use.
type History struct {
	mu  sync.RWMutex
	rec Record
	ok  bool
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// Record replaces the stored record.
func (h *History) Record(rec Record) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.rec = rec
	h.ok = true
}

// Last returns the stored record, if any.
func (h *History) Last() (Record, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.rec, h.ok
}

// Clear forgets the stored record.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.rec = Record{}
	h.ok = false
}
