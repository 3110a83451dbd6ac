package cursor

import "github.com/dshills/vimode/internal/input/mode"

// Text is the read-only projection of a document used for range math.
// *buffer.Buffer implements it.
type Text interface {
	Len() ByteOffset
	LineCount() uint32
	LineOf(offset ByteOffset) uint32
	LineStartOffset(line uint32) ByteOffset
	LineEndOffset(line uint32) ByteOffset
	IsLineEnd(offset ByteOffset) bool
	NextCharOffset(offset ByteOffset) ByteOffset
	CharCount(start, end ByteOffset) int
	DisplayColumn(offset ByteOffset) int
	OffsetAtColumn(line uint32, col int) ByteOffset
}

// Highlight returns the range covered by sel when interpreted as t.
// For block-wise selections it spans from the first to the last line piece.
func Highlight(text Text, sel Selection, t mode.SelectionType) Range {
	switch t {
	case mode.LineWise:
		first := text.LineOf(sel.Start())
		last := text.LineOf(sel.End())
		return Range{Start: text.LineStartOffset(first), End: lineWiseEnd(text, last)}
	case mode.BlockWise:
		lines := BlockLines(text, sel)
		return Range{Start: lines[0].Start, End: lines[len(lines)-1].End}
	}
	return Range{Start: sel.Start(), End: charWiseEnd(text, sel.End())}
}

// charWiseEnd is the exclusive end of a character-wise selection whose last
// endpoint is hi. An endpoint on a line end covers nothing unless the line
// is empty, where it covers the newline.
func charWiseEnd(text Text, hi ByteOffset) ByteOffset {
	if !text.IsLineEnd(hi) {
		return text.NextCharOffset(hi)
	}
	if hi < text.Len() && hi == text.LineStartOffset(text.LineOf(hi)) {
		return text.NextCharOffset(hi)
	}
	return hi
}

// lineWiseEnd is the exclusive end of line including its newline.
func lineWiseEnd(text Text, line uint32) ByteOffset {
	if line+1 >= text.LineCount() {
		return text.Len()
	}
	return text.LineStartOffset(line + 1)
}

// BlockColumns returns the display columns [left, right) covered by a
// block-wise selection. A rightmost endpoint on a line end is exclusive.
func BlockColumns(text Text, sel Selection) (left, right int) {
	ac := text.DisplayColumn(sel.Anchor)
	hc := text.DisplayColumn(sel.Head)
	left = min(ac, hc)
	right = max(ac, hc) + 1
	switch {
	case hc >= ac && text.IsLineEnd(sel.Head):
		right = hc
	case ac > hc && text.IsLineEnd(sel.Anchor):
		right = ac
	}
	return left, max(left, right)
}

// BlockLines returns one range per line of a block-wise selection, top to
// bottom. Each range is clamped to its own line.
func BlockLines(text Text, sel Selection) []Range {
	top := text.LineOf(sel.Start())
	bottom := text.LineOf(sel.End())
	left, right := BlockColumns(text, sel)

	lines := make([]Range, 0, bottom-top+1)
	for line := top; line <= bottom; line++ {
		lines = append(lines, Range{
			Start: text.OffsetAtColumn(line, left),
			End:   text.OffsetAtColumn(line, right),
		})
	}
	return lines
}

// Extent is the shape of a selection, independent of where it sits.
type Extent struct {
	Type mode.SelectionType

	// Lines is the number of lines spanned.
	Lines int

	// Cols is the number of characters of a single-line character-wise
	// selection, or the display width of a block.
	Cols int

	// EndCol is the display column of the end of a multi-line
	// character-wise selection.
	EndCol int
}

// Measure captures the extent of sel interpreted as t.
func Measure(text Text, sel Selection, t mode.SelectionType) Extent {
	lo, hi := sel.Start(), sel.End()
	ext := Extent{
		Type:  t,
		Lines: int(text.LineOf(hi)-text.LineOf(lo)) + 1,
	}
	switch t {
	case mode.CharacterWise:
		if ext.Lines == 1 {
			ext.Cols = max(1, text.CharCount(lo, charWiseEnd(text, hi)))
		} else {
			ext.EndCol = text.DisplayColumn(hi)
		}
	case mode.BlockWise:
		left, right := BlockColumns(text, sel)
		ext.Cols = max(1, right-left)
	}
	return ext
}
