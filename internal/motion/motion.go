package motion

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/dshills/vimode/internal/engine/buffer"
	"github.com/dshills/vimode/internal/engine/cursor"
	"github.com/dshills/vimode/internal/input/vim"
)

// Text is the read-only document view motions need. *buffer.Buffer
// implements it.
type Text interface {
	cursor.Text
	Text() string
	RuneAt(offset buffer.ByteOffset) (rune, int)
	PrevCharOffset(offset buffer.ByteOffset) buffer.ByteOffset
	AdvanceChars(offset buffer.ByteOffset, n int) buffer.ByteOffset
	LastCharOffset(line uint32) buffer.ByteOffset
}

// ErrNoProgress is returned when a motion cannot move from its start.
var ErrNoProgress = errors.New("motion: no progress")

// ErrUnknownMotion is returned for a motion the executor does not implement.
var ErrUnknownMotion = errors.New("motion: unknown motion")

// Context tells the executor where the target may land.
type Context uint8

const (
	// ContextNormal keeps the target on a character, never on a newline
	// unless the line is empty.
	ContextNormal Context = iota

	// ContextVisual behaves like ContextNormal except that "$" lands on
	// the line end so the selection covers the whole line.
	ContextVisual

	// ContextOperator allows the target to reach the line end and the
	// buffer end, as an operator range needs.
	ContextOperator
)

// String returns the context name.
func (c Context) String() string {
	switch c {
	case ContextNormal:
		return "normal"
	case ContextVisual:
		return "visual"
	case ContextOperator:
		return "operator"
	default:
		return "unknown"
	}
}

// Request describes one motion execution.
type Request struct {
	Motion  *vim.Motion
	Count   int
	Char    rune
	Context Context
}

func (r Request) count() int {
	if r.Count <= 0 {
		return 1
	}
	return r.Count
}

// Executor moves offsets through a buffer.
type Executor struct{}

// NewExecutor creates a motion executor.
func NewExecutor() *Executor {
	return &Executor{}
}

// Execute applies req starting at from and returns the target offset.
func (e *Executor) Execute(buf Text, from buffer.ByteOffset, req Request) (buffer.ByteOffset, error) {
	if req.Motion == nil {
		return from, ErrUnknownMotion
	}
	n := req.count()
	line := buf.LineOf(from)
	text := buf.Text()

	var target buffer.ByteOffset
	mustMove := true

	switch req.Motion.Name {
	case vim.MotionLeft.Name:
		target = from
		start := buf.LineStartOffset(line)
		for i := 0; i < n && target > start; i++ {
			target = buf.PrevCharOffset(target)
		}

	case vim.MotionRight.Name:
		target = buf.AdvanceChars(from, n)

	case vim.MotionUp.Name, vim.MotionDown.Name:
		toLine := int64(line) - int64(n)
		if req.Motion.Name == vim.MotionDown.Name {
			toLine = int64(line) + int64(n)
		}
		toLine = max(0, min(toLine, int64(buf.LineCount())-1))
		target = buf.OffsetAtColumn(uint32(toLine), buf.DisplayColumn(from))
		if uint32(toLine) == line {
			target = from
		}

	case vim.MotionWordForward.Name, vim.MotionWORDForward.Name:
		big := req.Motion.Name == vim.MotionWORDForward.Name
		target = from
		for i := 0; i < n; i++ {
			target = findNextWordStart(text, target, big)
		}

	case vim.MotionWordBackward.Name, vim.MotionWORDBackward.Name:
		big := req.Motion.Name == vim.MotionWORDBackward.Name
		target = from
		for i := 0; i < n; i++ {
			target = findPrevWordStart(text, target, big)
		}

	case vim.MotionWordEnd.Name, vim.MotionWORDEnd.Name:
		big := req.Motion.Name == vim.MotionWORDEnd.Name
		target = from
		for i := 0; i < n; i++ {
			target = findWordEnd(text, target, big)
		}

	case vim.MotionLineStart.Name:
		target, mustMove = buf.LineStartOffset(line), false

	case vim.MotionFirstNonBlank.Name:
		target, mustMove = FirstNonBlank(buf, line), false

	case vim.MotionLineEnd.Name:
		toLine := min(uint64(line)+uint64(n)-1, uint64(buf.LineCount())-1)
		target = buf.LineEndOffset(uint32(toLine))
		if req.Context == ContextNormal {
			target = buf.LastCharOffset(uint32(toLine))
		}
		return target, nil

	case vim.MotionDocumentStart.Name, vim.MotionDocumentEnd.Name:
		toLine := buf.LineCount() - 1
		if req.Motion.Name == vim.MotionDocumentStart.Name {
			toLine = 0
		}
		if req.Count > 0 {
			toLine = uint32(min(int64(req.Count)-1, int64(buf.LineCount())-1))
		}
		target, mustMove = FirstNonBlank(buf, toLine), false

	case vim.MotionFindChar.Name, vim.MotionTillChar.Name:
		found, ok := findInLine(buf, from, req.Char, n, true)
		if !ok {
			return from, ErrNoProgress
		}
		target = found
		if req.Motion.Name == vim.MotionTillChar.Name {
			target = buf.PrevCharOffset(found)
		}

	case vim.MotionFindCharBack.Name, vim.MotionTillCharBack.Name:
		found, ok := findInLine(buf, from, req.Char, n, false)
		if !ok {
			return from, ErrNoProgress
		}
		target = found
		if req.Motion.Name == vim.MotionTillCharBack.Name {
			target = buf.NextCharOffset(found)
		}

	default:
		return from, fmt.Errorf("%w: %s", ErrUnknownMotion, req.Motion.Name)
	}

	target = clampTarget(buf, target, req.Context)
	if mustMove && target == from {
		return from, ErrNoProgress
	}
	return target, nil
}

// clampTarget keeps a normal or visual target off the newline.
func clampTarget(buf Text, target buffer.ByteOffset, ctx Context) buffer.ByteOffset {
	if ctx == ContextOperator {
		return max(0, min(target, buf.Len()))
	}
	line := buf.LineOf(target)
	return min(target, buf.LastCharOffset(line))
}

// FirstNonBlank returns the first non-blank character of line, or its last
// character when the line is blank.
func FirstNonBlank(buf Text, line uint32) buffer.ByteOffset {
	start, end := buf.LineStartOffset(line), buf.LineEndOffset(line)
	for off := start; off < end; off = buf.NextCharOffset(off) {
		r, _ := buf.RuneAt(off)
		if !IsBlank(r) {
			return off
		}
	}
	return buf.LastCharOffset(line)
}

// findInLine finds the nth occurrence of ch after (or before) from on the
// same line.
func findInLine(buf Text, from buffer.ByteOffset, ch rune, n int, forward bool) (buffer.ByteOffset, bool) {
	line := buf.LineOf(from)
	start, end := buf.LineStartOffset(line), buf.LineEndOffset(line)
	off := from
	for n > 0 {
		if forward {
			off = buf.NextCharOffset(off)
			if off >= end {
				return from, false
			}
		} else {
			if off <= start {
				return from, false
			}
			off = buf.PrevCharOffset(off)
		}
		if r, _ := buf.RuneAt(off); r == ch {
			n--
		}
	}
	return off, true
}

// IsBlank reports whether r is a blank for motion purposes.
func IsBlank(r rune) bool {
	return r != '\n' && unicode.IsSpace(r)
}
