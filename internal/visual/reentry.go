package visual

import (
	"math"

	"github.com/dshills/vimode/internal/engine/buffer"
	"github.com/dshills/vimode/internal/engine/cursor"
	"github.com/dshills/vimode/internal/input/mode"
)

// DefaultExtent is the shape used by "Nv" when no selection was exited yet.
var DefaultExtent = cursor.Extent{Type: mode.CharacterWise, Lines: 1, Cols: 1}

// reentryExtent picks the shape a count re-entry lays out: the caret's own
// last extent, then the session record, then DefaultExtent.
func reentryExtent(c cursor.Caret, last *Record) cursor.Extent {
	switch {
	case c.Last != nil:
		return *c.Last
	case last != nil:
		return last.Extent
	}
	return DefaultExtent
}

// Layout places ext scaled by n at offset and returns the selection. The
// anchor is offset; the head is clamped to the document and, for character
// and block extents, to its own line.
func Layout(text Document, at buffer.ByteOffset, ext cursor.Extent, n int) cursor.Selection {
	n = max(n, 1)
	line := text.LineOf(at)
	headLine := func() uint32 {
		last := int64(text.LineCount()) - 1
		return uint32(min(int64(line)+scale(n, max(ext.Lines, 1))-1, last))
	}

	var head buffer.ByteOffset
	switch ext.Type {
	case mode.LineWise:
		head = text.OffsetAtColumn(headLine(), text.DisplayColumn(at))
	case mode.BlockWise:
		col := int64(text.DisplayColumn(at)) + scale(n, max(ext.Cols, 1)) - 1
		head = text.OffsetAtColumn(headLine(), clampInt(col))
	default:
		if ext.Lines > 1 {
			head = text.OffsetAtColumn(headLine(), ext.EndCol)
		} else {
			head = text.AdvanceChars(at, clampInt(scale(n, max(ext.Cols, 1))-1))
		}
	}
	return cursor.NewSelection(at, head)
}

func scale(n, k int) int64 {
	return int64(n) * int64(k)
}

func clampInt(v int64) int {
	return int(min(v, math.MaxInt32))
}
