package visual

import (
	"github.com/dshills/vimode/internal/engine/buffer"
	"github.com/dshills/vimode/internal/engine/cursor"
	"github.com/dshills/vimode/internal/input/mode"
)

// MergeIn merges carets the way mode m shapes them. Block-wise carets
// merge by rectangle; every other mode merges by highlight range.
func MergeIn(text cursor.Text, m mode.Mode, carets []cursor.Caret, pre map[cursor.CaretID]buffer.ByteOffset) []cursor.Caret {
	if t, ok := m.SelectionType(); ok && t == mode.BlockWise {
		return MergeBlocks(text, carets, pre)
	}
	return Merge(carets, pre)
}

// Merge collapses carets whose highlights overlap or touch into one caret
// per group. The survivor is the member whose head sorted last before the
// transition (pre, keyed by caret ID; the current head when absent). It
// keeps its own selection and Last extent, and its highlight becomes the
// union of the group. The result is in ascending order and does not depend
// on the order of the input.
func Merge(carets []cursor.Caret, pre map[cursor.CaretID]buffer.ByteOffset) []cursor.Caret {
	if len(carets) < 2 {
		return append([]cursor.Caret(nil), carets...)
	}
	sorted := append([]cursor.Caret(nil), carets...)
	cursor.Sort(sorted)

	closesLater := survivorOrder(pre)
	result := make([]cursor.Caret, 0, len(sorted))
	survivor := sorted[0]
	union := survivor.Highlight
	for _, c := range sorted[1:] {
		if c.Highlight.Start <= union.End {
			union = union.Union(c.Highlight)
			if closesLater(c, survivor) {
				survivor = c
			}
			continue
		}
		survivor.Highlight = union
		result = append(result, survivor)
		survivor, union = c, c.Highlight
	}
	survivor.Highlight = union
	result = append(result, survivor)

	cursor.Sort(result)
	return result
}

// survivorOrder reports whether a should survive a merge with b.
func survivorOrder(pre map[cursor.CaretID]buffer.ByteOffset) func(a, b cursor.Caret) bool {
	preHead := func(c cursor.Caret) buffer.ByteOffset {
		if off, ok := pre[c.ID]; ok {
			return off
		}
		return c.Sel.Head
	}
	return func(a, b cursor.Caret) bool {
		pa, pb := preHead(a), preHead(b)
		if pa != pb {
			return pa > pb
		}
		return a.ID > b.ID
	}
}

// rect is the line and display column span of a block selection.
type rect struct {
	top, bottom uint32
	left, right int
}

func blockRect(text cursor.Text, sel cursor.Selection) rect {
	left, right := cursor.BlockColumns(text, sel)
	return rect{
		top:    text.LineOf(sel.Start()),
		bottom: text.LineOf(sel.End()),
		left:   left,
		right:  right,
	}
}

// touches reports whether two blocks overlap or are adjacent both in lines
// and in columns.
func (r rect) touches(o rect) bool {
	return r.top <= o.bottom+1 && o.top <= r.bottom+1 &&
		r.left <= o.right && o.left <= r.right
}

// MergeBlocks collapses block-wise carets whose rectangles overlap or touch.
// Blocks that share lines but not columns stay apart. Survivors are picked
// as in Merge and the group's highlight is the union of its members.
func MergeBlocks(text cursor.Text, carets []cursor.Caret, pre map[cursor.CaretID]buffer.ByteOffset) []cursor.Caret {
	if len(carets) < 2 {
		return append([]cursor.Caret(nil), carets...)
	}
	sorted := append([]cursor.Caret(nil), carets...)
	cursor.Sort(sorted)

	rects := make([]rect, len(sorted))
	for i, c := range sorted {
		rects[i] = blockRect(text, c.Sel)
	}

	group := make([]int, len(sorted))
	for i := range group {
		group[i] = i
	}
	find := func(i int) int {
		for group[i] != i {
			group[i] = group[group[i]]
			i = group[i]
		}
		return i
	}
	for i := range sorted {
		for j := i + 1; j < len(sorted); j++ {
			if rects[i].touches(rects[j]) {
				a, b := find(i), find(j)
				group[max(a, b)] = min(a, b)
			}
		}
	}

	closesLater := survivorOrder(pre)
	survivors := make(map[int]cursor.Caret, len(sorted))
	order := make([]int, 0, len(sorted))
	for i, c := range sorted {
		root := find(i)
		s, ok := survivors[root]
		if !ok {
			survivors[root] = c
			order = append(order, root)
			continue
		}
		union := s.Highlight.Union(c.Highlight)
		if closesLater(c, s) {
			s = c
		}
		s.Highlight = union
		survivors[root] = s
	}

	result := make([]cursor.Caret, 0, len(order))
	for _, root := range order {
		result = append(result, survivors[root])
	}
	cursor.Sort(result)
	return result
}
