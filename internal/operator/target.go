package operator

import (
	"strings"

	"github.com/dshills/vimode/internal/engine/buffer"
	"github.com/dshills/vimode/internal/engine/cursor"
	"github.com/dshills/vimode/internal/input/mode"
	"github.com/dshills/vimode/internal/input/vim"
)

// Target is the text an operator acts on for one caret.
type Target struct {
	Caret cursor.CaretID
	Shape mode.SelectionType

	// Ranges holds one range, or one range per line for block targets.
	Ranges []buffer.Range
}

// Start returns the first offset of the target.
func (t Target) Start() buffer.ByteOffset {
	if len(t.Ranges) == 0 {
		return 0
	}
	return t.Ranges[0].Start
}

// IsEmpty reports whether the target covers no text.
func (t Target) IsEmpty() bool {
	for _, r := range t.Ranges {
		if !r.IsEmpty() {
			return false
		}
	}
	return true
}

// Text returns the target text in register form.
func (t Target) Text(buf *buffer.Buffer) vim.Register {
	reg := vim.Register{Shape: t.Shape}
	switch t.Shape {
	case mode.BlockWise:
		for _, r := range t.Ranges {
			reg.Lines = append(reg.Lines, buf.TextRange(r.Start, r.End))
		}
	case mode.LineWise:
		text := buf.TextRange(t.Ranges[0].Start, t.Ranges[0].End)
		if n := len(text); n > 0 && text[n-1] == '\n' {
			text = text[:n-1]
		}
		reg.Lines = strings.Split(text, "\n")
	default:
		reg.Lines = strings.Split(buf.TextRange(t.Ranges[0].Start, t.Ranges[0].End), "\n")
	}
	return reg
}

// FromSelection returns the target of a caret leaving a selection of type t.
func FromSelection(buf *buffer.Buffer, c cursor.Caret, t mode.SelectionType) Target {
	hl := c.Highlight
	switch t {
	case mode.LineWise:
		last := buf.LineOf(hl.Start)
		if hl.End > hl.Start {
			last = buf.LineOf(hl.End - 1)
		}
		return Lines(buf, c.ID, buf.LineOf(hl.Start), last)
	case mode.BlockWise:
		return Target{Caret: c.ID, Shape: mode.BlockWise, Ranges: cursor.BlockLines(buf, c.Sel)}
	}
	return Chars(c.ID, hl.Start, hl.End)
}

// Lines returns a target covering lines first through last.
func Lines(buf *buffer.Buffer, id cursor.CaretID, first, last uint32) Target {
	first, last = min(first, last), max(first, last)
	last = min(last, buf.LineCount()-1)
	end := buf.Len()
	if last+1 < buf.LineCount() {
		end = buf.LineStartOffset(last + 1)
	}
	return Target{
		Caret:  id,
		Shape:  mode.LineWise,
		Ranges: []buffer.Range{{Start: buf.LineStartOffset(first), End: end}},
	}
}

// LineCount returns a target covering count lines from the line of offset.
func LineCount(buf *buffer.Buffer, id cursor.CaretID, offset buffer.ByteOffset, count int) Target {
	first := buf.LineOf(offset)
	last := uint64(first) + uint64(max(count, 1)) - 1
	return Lines(buf, id, first, uint32(min(last, uint64(buf.LineCount()-1))))
}

// Chars returns a character-wise target over [start, end).
func Chars(id cursor.CaretID, start, end buffer.ByteOffset) Target {
	return Target{
		Caret:  id,
		Shape:  mode.CharacterWise,
		Ranges: []buffer.Range{buffer.NewRange(min(start, end), max(start, end))},
	}
}

// FromMotion returns the target of an operator over the motion from from to
// to. Inclusive motions cover the target character unless it is a line
// end. An exclusive motion
// ending at the start of a later line, or a word motion crossing lines,
// stops at the end of the previous line.
func FromMotion(buf *buffer.Buffer, id cursor.CaretID, from, to buffer.ByteOffset, m *vim.Motion) Target {
	if m.Type == vim.MotionLinewise {
		return Lines(buf, id, buf.LineOf(from), buf.LineOf(to))
	}
	start, end := min(from, to), max(from, to)
	if m.Inclusive {
		if !buf.IsLineEnd(end) {
			end = buf.NextCharOffset(end)
		}
	} else if end > start {
		endLine := buf.LineOf(end)
		if endLine > buf.LineOf(start) && (end == buf.LineStartOffset(endLine) || isWordMotion(m)) {
			end = max(start, buf.LineEndOffset(endLine-1))
		}
	}
	return Chars(id, start, end)
}

func isWordMotion(m *vim.Motion) bool {
	return m.Name == vim.MotionWordForward.Name || m.Name == vim.MotionWORDForward.Name
}
