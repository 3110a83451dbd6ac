package visual

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/dshills/vimode/internal/engine/buffer"
	"github.com/dshills/vimode/internal/engine/cursor"
	"github.com/dshills/vimode/internal/input/mode"
	"github.com/dshills/vimode/internal/motion"
)

func caret(id cursor.CaretID, anchor, head buffer.ByteOffset) cursor.Caret {
	sel := cursor.NewSelection(anchor, head)
	return cursor.Caret{ID: id, Sel: sel, Highlight: cursor.Range{Start: sel.Start(), End: sel.End()}}
}

func TestMergeOverlapping(t *testing.T) {
	a := caret(1, 5, 9)
	b := caret(2, 8, 12)

	forward := Merge([]cursor.Caret{a, b}, nil)
	reverse := Merge([]cursor.Caret{b, a}, nil)

	require.Len(t, forward, 1)
	assert.Equal(t, cursor.Range{Start: 5, End: 12}, forward[0].Highlight)
	assert.Equal(t, cursor.CaretID(2), forward[0].ID)
	assert.Equal(t, forward, reverse)
}

func TestMergeTouchingAndTransitive(t *testing.T) {
	carets := []cursor.Caret{caret(1, 0, 3), caret(2, 3, 6), caret(3, 5, 9), caret(4, 20, 22)}
	merged := Merge(carets, nil)

	require.Len(t, merged, 2)
	assert.Equal(t, cursor.Range{Start: 0, End: 9}, merged[0].Highlight)
	assert.Equal(t, cursor.CaretID(3), merged[0].ID)
	assert.Equal(t, cursor.CaretID(4), merged[1].ID)
}

func TestMergeSurvivorFromPreHeads(t *testing.T) {
	a := caret(1, 10, 2)
	b := caret(2, 12, 5)
	pre := map[cursor.CaretID]buffer.ByteOffset{1: 10, 2: 12}

	merged := Merge([]cursor.Caret{a, b}, pre)
	require.Len(t, merged, 1)
	assert.Equal(t, cursor.CaretID(2), merged[0].ID)
	assert.Equal(t, buffer.ByteOffset(5), merged[0].Sel.Head)
	assert.Equal(t, cursor.Range{Start: 2, End: 12}, merged[0].Highlight)
}

func TestMergeBlocks(t *testing.T) {
	buf := buffer.NewBufferFromString("abcdefghij\nabcdefghij\nabcdefghij\n")
	block := func(id cursor.CaretID, anchor, head buffer.ByteOffset) cursor.Caret {
		c := caret(id, anchor, head)
		c.Highlight = cursor.Highlight(buf, c.Sel, mode.BlockWise)
		return c
	}

	t.Run("disjoint columns", func(t *testing.T) {
		carets := []cursor.Caret{block(1, 8, 19), block(2, 12, 23)}
		assert.Len(t, MergeBlocks(buf, carets, nil), 2)
		assert.Len(t, Merge(carets, nil), 1)
	})

	t.Run("adjacent columns", func(t *testing.T) {
		merged := MergeBlocks(buf, []cursor.Caret{block(1, 2, 13), block(2, 14, 25)}, nil)
		require.Len(t, merged, 1)
		assert.Equal(t, cursor.CaretID(2), merged[0].ID)
		assert.Equal(t, cursor.Range{Start: 2, End: 26}, merged[0].Highlight)
	})

	t.Run("other modes merge by range", func(t *testing.T) {
		carets := []cursor.Caret{block(1, 8, 19), block(2, 12, 23)}
		assert.Len(t, MergeIn(buf, mode.Visual(mode.BlockWise), carets, nil), 2)
		assert.Len(t, MergeIn(buf, mode.Visual(mode.CharacterWise), carets, nil), 1)
	})
}

func TestMergeOrderIndependent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 8).Draw(t, "n")
		carets := make([]cursor.Caret, n)
		for i := range carets {
			anchor := buffer.ByteOffset(rapid.IntRange(0, 60).Draw(t, "anchor"))
			head := buffer.ByteOffset(rapid.IntRange(0, 60).Draw(t, "head"))
			carets[i] = caret(cursor.CaretID(i+1), anchor, head)
		}
		perm := rapid.Permutation(carets).Draw(t, "perm")

		want := Merge(carets, nil)
		got := Merge(perm, nil)
		if len(want) != len(got) {
			t.Fatalf("merge sizes differ: %d vs %d", len(want), len(got))
		}
		for i := range want {
			if want[i] != got[i] {
				t.Fatalf("caret %d differs: %v vs %v", i, want[i], got[i])
			}
		}
		for i := 1; i < len(got); i++ {
			if got[i].Highlight.Start <= got[i-1].Highlight.End {
				t.Fatalf("carets %v and %v still touch", got[i-1], got[i])
			}
		}
	})
}

// Nv without history selects min(N, remaining) characters at the caret.
func TestCountEntryWithoutHistory(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringOfN(rapid.RuneFrom([]rune("ab é\n")), 1, 40, -1).Draw(t, "text")
		buf := buffer.NewBufferFromString(text)

		line := uint32(rapid.IntRange(0, int(buf.LineCount())-1).Draw(t, "line"))
		start, end := buf.LineStartOffset(line), buf.LineEndOffset(line)
		if start == end {
			t.Skip("empty line")
		}
		chars := buf.CharCount(start, end)
		caretAt := buf.AdvanceChars(start, rapid.IntRange(0, chars-1).Draw(t, "col"))
		n := rapid.IntRange(1, 50).Draw(t, "count")

		st := State{Mode: mode.Normal(), Carets: cursor.NewCaretSet(caretAt).All(), Text: buf}
		plan, err := NewEngine(motion.NewExecutor()).Transition(st, EnterVisual(mode.CharacterWise), n)
		if err != nil {
			t.Fatalf("transition failed: %v", err)
		}

		hl := plan.Carets[0].Highlight
		want := min(n, buf.CharCount(caretAt, end))
		if hl.Start != caretAt {
			t.Fatalf("selection starts at %d, want %d", hl.Start, caretAt)
		}
		if got := buf.CharCount(hl.Start, hl.End); got != want {
			t.Fatalf("selected %d characters, want %d", got, want)
		}
	})
}

func TestLayoutClampsBlockPerLine(t *testing.T) {
	buf := buffer.NewBufferFromString("abcdef\nab\nabcdefgh")
	ext := cursor.Extent{Type: mode.BlockWise, Lines: 2, Cols: 3}

	sel := Layout(buf, 1, ext, 1)
	assert.Equal(t, buffer.ByteOffset(1), sel.Anchor)
	assert.Equal(t, buf.LineEndOffset(1), sel.Head)

	sel = Layout(buf, 1, ext, 5)
	assert.Equal(t, buf.LineEndOffset(2), sel.Head, "head clamps to the last line end")
}

func TestLayoutHugeCountClamps(t *testing.T) {
	buf := buffer.NewBufferFromString(poem)
	sel := Layout(buf, offFound, cursor.Extent{Type: mode.CharacterWise, Lines: 1, Cols: 1 << 20}, 1<<30)
	assert.Equal(t, buffer.ByteOffset(43), sel.Head)
}
