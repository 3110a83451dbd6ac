package cursor

import (
	"testing"

	"github.com/dshills/vimode/internal/engine/buffer"
	"github.com/dshills/vimode/internal/input/mode"
)

// Selection Tests

func TestSelectionBounds(t *testing.T) {
	s := NewSelection(20, 10)

	if s.Start() != 10 || s.End() != 20 {
		t.Errorf("expected [10,20], got [%d,%d]", s.Start(), s.End())
	}
	if s.Extend(30).Anchor != 20 {
		t.Error("Extend should keep the anchor")
	}
}

// Highlight Tests

const sample = "abcd\nefgh\n\nij"

func TestHighlightCharacterWise(t *testing.T) {
	b := buffer.NewBufferFromString(sample)

	tests := []struct {
		name string
		sel  Selection
		want Range
	}{
		{"cursor covers one char", NewCursorSelection(1), Range{Start: 1, End: 2}},
		{"forward", NewSelection(1, 3), Range{Start: 1, End: 4}},
		{"backward", NewSelection(3, 1), Range{Start: 1, End: 4}},
		{"head on newline is exclusive", NewSelection(1, 4), Range{Start: 1, End: 4}},
		{"across lines", NewSelection(2, 6), Range{Start: 2, End: 7}},
		{"empty line covers its newline", NewCursorSelection(10), Range{Start: 10, End: 11}},
		{"ending on an empty line", NewSelection(6, 10), Range{Start: 6, End: 11}},
		{"buffer end", NewSelection(11, 13), Range{Start: 11, End: 13}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Highlight(b, tt.sel, mode.CharacterWise); got != tt.want {
				t.Errorf("Highlight() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHighlightLineWise(t *testing.T) {
	b := buffer.NewBufferFromString(sample)

	if got := Highlight(b, NewSelection(2, 7), mode.LineWise); got != (Range{Start: 0, End: 10}) {
		t.Errorf("two lines = %v", got)
	}
	if got := Highlight(b, NewCursorSelection(12), mode.LineWise); got != (Range{Start: 11, End: 13}) {
		t.Errorf("last line should end at buffer end, got %v", got)
	}
}

func TestBlockLinesClampPerLine(t *testing.T) {
	b := buffer.NewBufferFromString("abcdef\nab\nabcdef")

	// anchor (0,1) to head (2,3)
	lines := BlockLines(b, NewSelection(1, 13))
	want := []Range{{Start: 1, End: 4}, {Start: 8, End: 9}, {Start: 11, End: 14}}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(lines))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %v, want %v", i, lines[i], want[i])
		}
	}

	if got := Highlight(b, NewSelection(1, 13), mode.BlockWise); got != (Range{Start: 1, End: 14}) {
		t.Errorf("block highlight = %v", got)
	}
}

func TestBlockHeadAtLineEnd(t *testing.T) {
	b := buffer.NewBufferFromString("abcdefgh\nabc")

	// head sits after the last character of the short line
	left, right := BlockColumns(b, NewSelection(1, 12))
	if left != 1 || right != 3 {
		t.Errorf("BlockColumns() = %d,%d, want 1,3", left, right)
	}
}

func TestMeasure(t *testing.T) {
	b := buffer.NewBufferFromString(sample)

	tests := []struct {
		name string
		sel  Selection
		typ  mode.SelectionType
		want Extent
	}{
		{"single line chars", NewSelection(0, 2), mode.CharacterWise, Extent{Type: mode.CharacterWise, Lines: 1, Cols: 3}},
		{"multi line chars", NewSelection(2, 7), mode.CharacterWise, Extent{Type: mode.CharacterWise, Lines: 2, EndCol: 2}},
		{"lines", NewSelection(7, 1), mode.LineWise, Extent{Type: mode.LineWise, Lines: 2}},
		{"block", NewSelection(1, 7), mode.BlockWise, Extent{Type: mode.BlockWise, Lines: 2, Cols: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Measure(b, tt.sel, tt.typ); got != tt.want {
				t.Errorf("Measure() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// CaretSet Tests

func TestCaretSetOrdering(t *testing.T) {
	cs := NewCaretSet(30, 10, 20, 10)

	if cs.Len() != 3 {
		t.Fatalf("duplicate offsets should collapse, got %d carets", cs.Len())
	}
	all := cs.All()
	for i := 1; i < len(all); i++ {
		if !Less(all[i-1], all[i]) {
			t.Errorf("carets not sorted: %v", all)
		}
	}
	primary, ok := cs.Primary()
	if !ok || primary.Offset() != 10 {
		t.Errorf("primary should be the first caret, got %v", primary)
	}
	if _, ok := cs.Get(primary.ID); !ok {
		t.Error("Get should find the primary caret")
	}
}

func TestCaretSetReplace(t *testing.T) {
	cs := NewCaretSet(5, 9)
	all := cs.All()

	all[0].Sel = NewSelection(5, 12)
	all[0].Highlight = Range{Start: 5, End: 13}
	if err := cs.Replace(all[:1]); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if cs.Len() != 1 {
		t.Errorf("expected 1 caret after replace, got %d", cs.Len())
	}

	if err := cs.Replace([]Caret{{ID: 99}}); err == nil {
		t.Error("foreign caret IDs should be rejected")
	}
}

func TestCaretSetEmpty(t *testing.T) {
	cs := NewCaretSet()
	if _, ok := cs.Primary(); ok {
		t.Error("empty set has no primary caret")
	}
}
