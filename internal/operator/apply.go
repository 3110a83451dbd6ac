package operator

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dshills/vimode/internal/engine/buffer"
	"github.com/dshills/vimode/internal/engine/cursor"
	"github.com/dshills/vimode/internal/input/mode"
	"github.com/dshills/vimode/internal/input/vim"
	"github.com/dshills/vimode/internal/motion"
)

// ErrNothingToDo is returned when an operator has no text to act on.
var ErrNothingToDo = errors.New("operator: empty target")

// Placement is where a caret lands after an edit.
type Placement struct {
	Caret  cursor.CaretID
	Offset buffer.ByteOffset
}

// Apply runs op over targets. The text of the first non-empty target goes
// to register reg; unless op is a yank the text of every target is removed. Change keeps
// the last line of a line-wise target as an empty line to type into.
func Apply(buf *buffer.Buffer, regs *vim.RegisterStore, op *vim.Operator, reg rune, targets []Target) ([]Placement, error) {
	if len(targets) == 0 {
		return nil, ErrNothingToDo
	}
	sorted := append([]Target(nil), targets...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start() < sorted[j].Start()
	})

	content := sorted[0].Text(buf)
	for _, t := range sorted {
		if !t.IsEmpty() {
			content = t.Text(buf)
			break
		}
	}
	if !op.ChangesText {
		regs.Yank(reg, content)
		placements := make([]Placement, len(sorted))
		for i, t := range sorted {
			placements[i] = Placement{Caret: t.Caret, Offset: t.Start()}
		}
		return placements, nil
	}

	regs.Delete(reg, content)
	return remove(buf, sorted, op.EntersInsert)
}

// remove deletes every target and places each caret at the start of what
// it removed; line-wise deletes land on the first non-blank.
func remove(buf *buffer.Buffer, targets []Target, change bool) ([]Placement, error) {
	type span struct {
		r      buffer.Range
		target int
	}
	var spans []span
	for i, t := range targets {
		for _, r := range t.Ranges {
			if t.Shape == mode.LineWise {
				r = lineRange(buf, r, change)
			}
			spans = append(spans, span{r: r, target: i})
		}
	}
	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].r.Start < spans[j].r.Start
	})

	// overlapping spans of different carets become one edit
	var edits []buffer.Edit
	first := make(map[int]int, len(targets))
	for _, s := range spans {
		n := len(edits)
		if n > 0 && s.r.Start < edits[n-1].Range.End {
			edits[n-1].Range = edits[n-1].Range.Union(s.r)
		} else {
			edits = append(edits, buffer.NewDelete(s.r.Start, s.r.End))
			n++
		}
		if _, ok := first[s.target]; !ok {
			first[s.target] = n - 1
		}
	}

	starts, err := commit(buf, edits)
	if err != nil {
		return nil, err
	}

	placements := make([]Placement, len(targets))
	for i, t := range targets {
		off := starts[first[i]]
		if t.Shape == mode.LineWise && !change {
			off = motion.FirstNonBlank(buf, buf.LineOf(off))
		}
		placements[i] = Placement{Caret: t.Caret, Offset: off}
	}
	return placements, nil
}

// lineRange adjusts a whole-line range for deletion. Deleting the final
// lines also removes the newline before them; a change keeps the last
// line break so an empty line remains.
func lineRange(buf *buffer.Buffer, r buffer.Range, change bool) buffer.Range {
	endsWithNewline := r.End > r.Start && buf.TextRange(r.End-1, r.End) == "\n"
	switch {
	case change && endsWithNewline:
		r.End--
	case !change && !endsWithNewline && r.End == buf.Len() && r.Start > 0:
		r.Start--
	}
	return r
}

// commit applies edits sorted by ascending, non-overlapping range and
// returns the post-edit start offset of each edit.
func commit(buf *buffer.Buffer, edits []buffer.Edit) ([]buffer.ByteOffset, error) {
	starts := make([]buffer.ByteOffset, len(edits))
	var delta buffer.ByteOffset
	for i, e := range edits {
		starts[i] = e.Range.Start + delta
		delta += e.Delta()
	}

	reversed := make([]buffer.Edit, len(edits))
	for i, e := range edits {
		reversed[len(edits)-1-i] = e
	}
	if err := buf.ApplyEdits(reversed); err != nil {
		return nil, fmt.Errorf("operator: apply %d edits: %w", len(edits), err)
	}
	return starts, nil
}
