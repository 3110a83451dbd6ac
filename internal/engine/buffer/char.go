package buffer

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Characters are grapheme clusters. A newline is its own character.

// NextCharOffset returns the offset just past the character at offset.
// At the buffer end it returns the buffer length.
func (b *Buffer) NextCharOffset(offset ByteOffset) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.nextChar(offset)
}

func (b *Buffer) nextChar(offset ByteOffset) ByteOffset {
	offset = b.clamp(offset)
	if offset >= ByteOffset(len(b.text)) {
		return offset
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(b.text[offset:], -1)
	return offset + ByteOffset(len(cluster))
}

// PrevCharOffset returns the start of the character before offset.
// At the buffer start it returns 0.
func (b *Buffer) PrevCharOffset(offset ByteOffset) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.prevChar(offset)
}

func (b *Buffer) prevChar(offset ByteOffset) ByteOffset {
	offset = b.clamp(offset)
	if offset == 0 {
		return 0
	}
	line := b.lineOf(offset)
	start := b.lineStarts[line]
	if start == offset {
		// the previous character is the newline ending the line above
		return offset - 1
	}
	pos := start
	state := -1
	rest := b.text[start:offset]
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if pos+ByteOffset(len(cluster)) >= offset {
			return pos
		}
		pos += ByteOffset(len(cluster))
	}
	return pos
}

// AdvanceChars moves n characters forward from offset without leaving the
// line. The result is clamped to the line end offset.
func (b *Buffer) AdvanceChars(offset ByteOffset, n int) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	offset = b.clamp(offset)
	end := b.lineEnd(b.lineOf(offset))
	for ; n > 0 && offset < end; n-- {
		offset = b.nextChar(offset)
	}
	return offset
}

// LastCharOffset returns the offset of the last character on a line, or the
// line start when the line is empty.
func (b *Buffer) LastCharOffset(line uint32) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	start, end := b.lineStart(line), b.lineEnd(line)
	if start == end {
		return start
	}
	return max(start, b.prevChar(end))
}

// CharCount returns the number of characters in [start, end).
func (b *Buffer) CharCount(start, end ByteOffset) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	start, end = b.clamp(start), b.clamp(end)
	if start >= end {
		return 0
	}
	return uniseg.GraphemeClusterCount(b.text[start:end])
}

// DisplayColumn returns the display column of offset within its line.
// Wide characters count twice; tabs advance to the next tab stop.
func (b *Buffer) DisplayColumn(offset ByteOffset) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	offset = b.clamp(offset)
	start := b.lineStarts[b.lineOf(offset)]
	col := 0
	b.walkLine(start, offset, func(_ ByteOffset, width int) bool {
		col += width
		return true
	})
	return col
}

// OffsetAtColumn returns the offset of the character covering display column
// col on line. Columns past the end of the line clamp to the line end offset.
func (b *Buffer) OffsetAtColumn(line uint32, col int) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	start, end := b.lineStart(line), b.lineEnd(line)
	result := end
	cur := 0
	b.walkLine(start, end, func(pos ByteOffset, width int) bool {
		if cur+width > col {
			result = pos
			return false
		}
		cur += width
		return true
	})
	return result
}

// LineWidth returns the display width of a line.
func (b *Buffer) LineWidth(line uint32) int {
	return b.DisplayColumn(b.LineEndOffset(line))
}

// walkLine visits each character in [from, to) with its display width.
// from must be a line start.
func (b *Buffer) walkLine(from, to ByteOffset, fn func(pos ByteOffset, width int) bool) {
	pos := from
	col := 0
	state := -1
	rest := b.text[from:to]
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		w := runewidth.StringWidth(cluster)
		if cluster == "\t" {
			w = b.tabWidth - col%b.tabWidth
		}
		if !fn(pos, w) {
			return
		}
		col += w
		pos += ByteOffset(len(cluster))
	}
}
