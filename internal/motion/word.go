package motion

import (
	"unicode"
	"unicode/utf8"

	"github.com/dshills/vimode/internal/engine/buffer"
)

// charClass is the Vim word class of a rune.
type charClass uint8

const (
	classBlank charClass = iota
	classPunct
	classWord
)

func classOf(r rune, bigWord bool) charClass {
	switch {
	case unicode.IsSpace(r):
		return classBlank
	case bigWord:
		return classWord
	case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
		return classWord
	}
	return classPunct
}

func runeAt(text string, offset buffer.ByteOffset) rune {
	r, _ := utf8.DecodeRuneInString(text[offset:])
	return r
}

func nextRuneStart(text string, offset buffer.ByteOffset) buffer.ByteOffset {
	_, size := utf8.DecodeRuneInString(text[offset:])
	return offset + buffer.ByteOffset(max(size, 1))
}

func prevRuneStart(text string, offset buffer.ByteOffset) buffer.ByteOffset {
	_, size := utf8.DecodeLastRuneInString(text[:offset])
	return offset - buffer.ByteOffset(max(size, 1))
}

// isEmptyLineAt reports whether offset starts an empty line.
func isEmptyLineAt(text string, offset buffer.ByteOffset) bool {
	end := buffer.ByteOffset(len(text))
	if offset > 0 && text[offset-1] != '\n' {
		return false
	}
	return offset == end || text[offset] == '\n'
}

// findNextWordStart finds the start of the next word. Empty lines count as
// words.
func findNextWordStart(text string, offset buffer.ByteOffset, bigWord bool) buffer.ByteOffset {
	end := buffer.ByteOffset(len(text))
	if offset >= end {
		return end
	}

	// skip the rest of the current word
	if cls := classOf(runeAt(text, offset), bigWord); cls != classBlank {
		for offset < end && classOf(runeAt(text, offset), bigWord) == cls {
			offset = nextRuneStart(text, offset)
		}
	}

	// then blanks, stopping at an empty line
	for offset < end && classOf(runeAt(text, offset), bigWord) == classBlank {
		if text[offset] == '\n' {
			offset++
			if isEmptyLineAt(text, offset) {
				return offset
			}
			continue
		}
		offset = nextRuneStart(text, offset)
	}
	return offset
}

// findPrevWordStart finds the start of the previous word.
func findPrevWordStart(text string, offset buffer.ByteOffset, bigWord bool) buffer.ByteOffset {
	if offset <= 0 {
		return 0
	}
	offset = prevRuneStart(text, offset)

	for offset > 0 && classOf(runeAt(text, offset), bigWord) == classBlank {
		if isEmptyLineAt(text, offset) {
			return offset
		}
		offset = prevRuneStart(text, offset)
	}

	cls := classOf(runeAt(text, offset), bigWord)
	for offset > 0 {
		prev := prevRuneStart(text, offset)
		if classOf(runeAt(text, prev), bigWord) != cls {
			break
		}
		offset = prev
	}
	return offset
}

// findWordEnd finds the end of the current or next word.
func findWordEnd(text string, offset buffer.ByteOffset, bigWord bool) buffer.ByteOffset {
	end := buffer.ByteOffset(len(text))
	if offset >= end {
		return end
	}
	offset = nextRuneStart(text, offset)

	for offset < end && classOf(runeAt(text, offset), bigWord) == classBlank {
		offset = nextRuneStart(text, offset)
	}
	if offset >= end {
		return end
	}

	cls := classOf(runeAt(text, offset), bigWord)
	for {
		next := nextRuneStart(text, offset)
		if next >= end || classOf(runeAt(text, next), bigWord) != cls {
			return offset
		}
		offset = next
	}
}
