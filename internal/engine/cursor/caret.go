package cursor

import (
	"fmt"
	"sort"
)

// CaretID identifies a caret for the lifetime of a session.
type CaretID uint32

// Caret is one cursor/selection locus in the document.
type Caret struct {
	ID  CaretID
	Sel Selection

	// Highlight is the range currently highlighted for the caret. It is
	// empty at the head outside visual and select modes and may be wider
	// than Sel after carets merge.
	Highlight Range

	// Last is the extent of the caret's most recently exited visual or
	// select selection, nil if it never had one.
	Last *Extent
}

// Offset returns the caret position.
func (c Caret) Offset() ByteOffset {
	return c.Sel.Head
}

// String returns a human-readable representation.
func (c Caret) String() string {
	return fmt.Sprintf("#%d %s %s", c.ID, c.Sel, c.Highlight)
}

// Less orders carets by highlight start, then head.
func Less(a, b Caret) bool {
	if a.Highlight.Start != b.Highlight.Start {
		return a.Highlight.Start < b.Highlight.Start
	}
	if a.Sel.Head != b.Sel.Head {
		return a.Sel.Head < b.Sel.Head
	}
	return a.ID < b.ID
}

// Sort orders carets in ascending document order.
func Sort(carets []Caret) {
	sort.SliceStable(carets, func(i, j int) bool {
		return Less(carets[i], carets[j])
	})
}

// CaretSet is the arena of carets owned by one session.
// Carets are kept sorted; the first caret is the primary one.
type CaretSet struct {
	carets []Caret
	nextID CaretID
}

// NewCaretSet creates a set with one caret per offset.
// Duplicate offsets collapse into one caret.
func NewCaretSet(offsets ...ByteOffset) *CaretSet {
	cs := &CaretSet{}
	for _, off := range offsets {
		cs.Add(off)
	}
	return cs
}

// Add places a new caret at offset and returns its ID.
// A caret already at offset is reused.
func (cs *CaretSet) Add(offset ByteOffset) CaretID {
	for _, c := range cs.carets {
		if c.Sel.Head == offset && c.Sel.IsEmpty() {
			return c.ID
		}
	}
	cs.nextID++
	cs.carets = append(cs.carets, Caret{
		ID:        cs.nextID,
		Sel:       NewCursorSelection(offset),
		Highlight: Range{Start: offset, End: offset},
	})
	Sort(cs.carets)
	return cs.nextID
}

// Len returns the number of carets.
func (cs *CaretSet) Len() int {
	return len(cs.carets)
}

// All returns a copy of all carets in ascending order.
func (cs *CaretSet) All() []Caret {
	result := make([]Caret, len(cs.carets))
	copy(result, cs.carets)
	return result
}

// Primary returns the first caret in ascending order.
func (cs *CaretSet) Primary() (Caret, bool) {
	if len(cs.carets) == 0 {
		return Caret{}, false
	}
	return cs.carets[0], true
}

// Get returns the caret with the given ID.
func (cs *CaretSet) Get(id CaretID) (Caret, bool) {
	for _, c := range cs.carets {
		if c.ID == id {
			return c, true
		}
	}
	return Caret{}, false
}

// Replace commits a new caret state. IDs unknown to the set are rejected.
func (cs *CaretSet) Replace(carets []Caret) error {
	for _, c := range carets {
		if c.ID == 0 || c.ID > cs.nextID {
			return fmt.Errorf("caret #%d does not belong to this set", c.ID)
		}
	}
	next := make([]Caret, len(carets))
	copy(next, carets)
	Sort(next)
	cs.carets = next
	return nil
}
