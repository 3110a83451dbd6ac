package operator

import (
	"sort"

	"github.com/dshills/vimode/internal/engine/buffer"
	"github.com/dshills/vimode/internal/engine/cursor"
)

// Insert types text at every caret head. Each caret ends after its text.
func Insert(buf *buffer.Buffer, carets []cursor.Caret, text string) ([]Placement, error) {
	return typeAt(buf, carets, func(head buffer.ByteOffset) buffer.Edit {
		return buffer.NewInsert(head, text)
	})
}

// Overwrite types text over the character under every caret, as replace
// mode does. At a line end the text is inserted.
func Overwrite(buf *buffer.Buffer, carets []cursor.Caret, text string) ([]Placement, error) {
	return typeAt(buf, carets, func(head buffer.ByteOffset) buffer.Edit {
		if buf.IsLineEnd(head) {
			return buffer.NewInsert(head, text)
		}
		return buffer.Edit{Range: buffer.NewRange(head, buf.NextCharOffset(head)), NewText: text}
	})
}

// Backspace deletes the character before every caret. A caret at a line
// start joins its line with the previous one; at the buffer start nothing
// happens.
func Backspace(buf *buffer.Buffer, carets []cursor.Caret) ([]Placement, error) {
	return typeAt(buf, carets, func(head buffer.ByteOffset) buffer.Edit {
		return buffer.NewDelete(buf.PrevCharOffset(head), head)
	})
}

// typeAt builds one edit per caret, applies them together and places every
// caret after its own edit.
func typeAt(buf *buffer.Buffer, carets []cursor.Caret, edit func(head buffer.ByteOffset) buffer.Edit) ([]Placement, error) {
	sorted := append([]cursor.Caret(nil), carets...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Sel.Head < sorted[j].Sel.Head
	})

	edits := make([]buffer.Edit, 0, len(sorted))
	owners := make([]cursor.CaretID, 0, len(sorted))
	placements := make([]Placement, 0, len(sorted))
	for _, c := range sorted {
		e := edit(c.Sel.Head)
		if n := len(edits); n > 0 && e.Range.Start < edits[n-1].Range.End {
			// collides with the previous caret's edit
			placements = append(placements, Placement{Caret: c.ID, Offset: -1})
			continue
		}
		edits = append(edits, e)
		owners = append(owners, c.ID)
	}

	starts, err := commit(buf, edits)
	if err != nil {
		return nil, err
	}
	for i, e := range edits {
		placements = append(placements, Placement{
			Caret:  owners[i],
			Offset: starts[i] + buffer.ByteOffset(len(e.NewText)),
		})
	}

	// colliding carets follow the caret before them
	byID := make(map[cursor.CaretID]buffer.ByteOffset, len(placements))
	for _, p := range placements {
		byID[p.Caret] = p.Offset
	}
	var prev buffer.ByteOffset
	result := make([]Placement, 0, len(sorted))
	for _, c := range sorted {
		off := byID[c.ID]
		if off < 0 {
			off = prev
		}
		prev = off
		result = append(result, Placement{Caret: c.ID, Offset: off})
	}
	return result, nil
}
