package visual

import (
	"errors"
	"fmt"

	"github.com/dshills/vimode/internal/engine/buffer"
	"github.com/dshills/vimode/internal/engine/cursor"
	"github.com/dshills/vimode/internal/input/mode"
	"github.com/dshills/vimode/internal/input/vim"
	"github.com/dshills/vimode/internal/motion"
)

// Document is the read-only text a transition works on.
// *buffer.Buffer implements it.
type Document interface {
	motion.Text
	RevisionID() buffer.RevisionID
}

// MotionExecutor moves an offset by a motion. It returns
// motion.ErrNoProgress when the motion cannot move.
type MotionExecutor interface {
	Execute(text motion.Text, from buffer.ByteOffset, req motion.Request) (buffer.ByteOffset, error)
}

// Options is the option snapshot a transition reads.
type Options struct {
	// SelectOnCommand redirects v, V and <C-V> to select mode
	// (selectmode contains "cmd").
	SelectOnCommand bool
}

// State is the input of a transition.
type State struct {
	Mode   mode.Mode
	Carets []cursor.Caret
	Text   Document

	// Last is the session record of the last exited selection, nil if none.
	Last *Record

	Options Options
}

// Plan is the outcome of a transition, to be committed as a whole.
type Plan struct {
	From mode.Mode
	Mode mode.Mode

	// Carets are the next caret states in ascending order.
	Carets []cursor.Caret

	// Record is set when a visual or select selection was exited.
	Record *Record

	// Exited holds the carets as they were when the selection was exited,
	// in ascending order. Visual operators act on these.
	Exited []cursor.Caret
}

// Changed reports whether the plan changes the mode.
func (p Plan) Changed() bool {
	return p.From != p.Mode
}

// Engine computes mode transitions.
type Engine struct {
	motions MotionExecutor
}

// NewEngine creates an engine that delegates motions to motions.
func NewEngine(motions MotionExecutor) *Engine {
	return &Engine{motions: motions}
}

// Transition resolves trigger against st. count is the typed count, 0 when
// none was typed. st is not modified.
func (e *Engine) Transition(st State, tr Trigger, count int) (Plan, error) {
	if len(st.Carets) == 0 {
		return Plan{}, ErrNoCarets
	}
	carets := ascending(st.Carets)
	count = max(count, 0)

	switch tr.Kind {
	case TriggerVisual:
		target := mode.KindVisual
		if st.Options.SelectOnCommand {
			target = mode.KindSelect
		}
		return e.enter(st, carets, target, tr, count)

	case TriggerSelect:
		return e.enter(st, carets, mode.KindSelect, tr, count)

	case TriggerSwap:
		t, ok := st.Mode.SelectionType()
		if !ok {
			return Plan{}, ErrInapplicable
		}
		next := mode.Select(t)
		if st.Mode.IsSelect() {
			next = mode.Visual(t)
		}
		return e.plan(st, next, carets), nil

	case TriggerMotion:
		return e.move(st, carets, tr, count)

	case TriggerEscape:
		switch st.Mode.Kind() {
		case mode.KindVisual, mode.KindSelect:
			return e.exit(st, carets, mode.Normal()), nil
		case mode.KindInsert, mode.KindReplace:
			for i := range carets {
				carets[i] = collapse(carets[i], stepLeft(st.Text, carets[i].Sel.Head))
			}
			return e.plan(st, mode.Normal(), carets), nil
		case mode.KindCommandLine, mode.KindOperatorPending:
			return e.plan(st, mode.Normal(), carets), nil
		}
		return Plan{}, ErrInapplicable

	case TriggerExit:
		if !st.Mode.HasSelection() || tr.Next.HasSelection() {
			return Plan{}, ErrInapplicable
		}
		return e.exit(st, carets, tr.Next), nil

	case TriggerInsert, TriggerReplace, TriggerCommandLine, TriggerOperatorPending:
		if st.Mode.Kind() != mode.KindNormal {
			return Plan{}, ErrInapplicable
		}
		next := map[TriggerKind]mode.Mode{
			TriggerInsert:          mode.Insert(),
			TriggerReplace:         mode.Replace(),
			TriggerCommandLine:     mode.CommandLine(),
			TriggerOperatorPending: mode.OperatorPending(),
		}[tr.Kind]
		return e.plan(st, next, carets), nil

	case TriggerReturn:
		switch {
		case st.Mode.Kind() == mode.KindNormal:
			return Plan{}, ErrInapplicable
		case st.Mode.HasSelection():
			return e.exit(st, carets, mode.Normal()), nil
		}
		return e.plan(st, mode.Normal(), carets), nil
	}
	return Plan{}, fmt.Errorf("%w: %s", ErrInapplicable, tr)
}

// enter handles visual and select triggers.
func (e *Engine) enter(st State, carets []cursor.Caret, target mode.Kind, tr Trigger, count int) (Plan, error) {
	if cur, ok := st.Mode.SelectionType(); ok {
		if st.Mode.Kind() == target && cur == tr.Type {
			return e.exit(st, carets, mode.Normal()), nil
		}
		return e.plan(st, selectionMode(target, tr.Type), carets), nil
	}
	if st.Mode.Kind() != mode.KindNormal {
		return Plan{}, ErrInapplicable
	}

	next := selectionMode(target, tr.Type)
	pre := preHeads(carets)

	switch {
	case tr.Motion != nil:
		for i := range carets {
			carets[i].Sel = cursor.NewCursorSelection(carets[i].Sel.Head)
		}
		// a count before the entry key repeats the motion
		n := vim.CombineCounts(count, tr.MotionCount)
		moved, err := e.runMotion(st.Text, carets, tr, n, motion.ContextVisual)
		if err != nil {
			return Plan{}, err
		}
		carets = moved

	case count > 0 && tr.Type == mode.CharacterWise:
		for i := range carets {
			ext := reentryExtent(carets[i], st.Last)
			carets[i].Sel = Layout(st.Text, carets[i].Sel.Head, ext, count)
		}
		// the shape of the primary caret decides the mode
		next = selectionMode(target, reentryExtent(carets[0], st.Last).Type)

	case count > 1:
		ext := cursor.Extent{Type: tr.Type, Lines: 1, Cols: 1}
		if tr.Type == mode.LineWise {
			ext.Lines = count
		} else {
			ext.Cols = count
		}
		for i := range carets {
			carets[i].Sel = Layout(st.Text, carets[i].Sel.Head, ext, 1)
		}

	default:
		for i := range carets {
			carets[i].Sel = cursor.NewCursorSelection(carets[i].Sel.Head)
		}
	}

	carets = highlight(st.Text, carets, next)
	return Plan{From: st.Mode, Mode: next, Carets: MergeIn(st.Text, next, carets, pre)}, nil
}

// move handles motion triggers.
func (e *Engine) move(st State, carets []cursor.Caret, tr Trigger, count int) (Plan, error) {
	if tr.Motion == nil {
		return Plan{}, ErrInapplicable
	}
	ctx := motion.ContextNormal
	switch st.Mode.Kind() {
	case mode.KindNormal:
	case mode.KindVisual, mode.KindSelect:
		ctx = motion.ContextVisual
	default:
		return Plan{}, ErrInapplicable
	}

	pre := preHeads(carets)
	moved, err := e.runMotion(st.Text, carets, tr, count, ctx)
	if err != nil {
		return Plan{}, err
	}
	if ctx == motion.ContextNormal {
		for i := range moved {
			moved[i].Sel = cursor.NewCursorSelection(moved[i].Sel.Head)
		}
	}
	moved = highlight(st.Text, moved, st.Mode)
	return Plan{From: st.Mode, Mode: st.Mode, Carets: MergeIn(st.Text, st.Mode, moved, pre)}, nil
}

// runMotion moves every caret head in ascending order. Carets the motion
// cannot move stay put; if none moves the motion failed.
func (e *Engine) runMotion(text Document, carets []cursor.Caret, tr Trigger, count int, ctx motion.Context) ([]cursor.Caret, error) {
	req := motion.Request{Motion: tr.Motion, Count: count, Char: tr.Char, Context: ctx}
	out := make([]cursor.Caret, len(carets))
	progressed := false
	for i, c := range carets {
		head, err := e.motions.Execute(text, c.Sel.Head, req)
		switch {
		case errors.Is(err, motion.ErrNoProgress):
			head = c.Sel.Head
		case err != nil:
			return nil, fmt.Errorf("%w: %v", ErrMotionFailed, err)
		default:
			progressed = progressed || head != c.Sel.Head
		}
		c.Sel = c.Sel.Extend(head)
		out[i] = c
	}
	if !progressed {
		return nil, ErrMotionFailed
	}
	return out, nil
}

// exit leaves visual or select for next. Every caret remembers the extent
// of its own selection; the session record is taken from the primary caret.
func (e *Engine) exit(st State, carets []cursor.Caret, next mode.Mode) Plan {
	t, _ := st.Mode.SelectionType()
	exited := append([]cursor.Caret(nil), carets...)
	cursor.Sort(exited)

	primary := exited[0]
	rec := &Record{
		Range:    primary.Highlight,
		Type:     t,
		Extent:   cursor.Measure(st.Text, primary.Sel, t),
		Anchor:   primary.Sel.Anchor,
		Head:     primary.Sel.Head,
		Revision: st.Text.RevisionID(),
	}

	pre := preHeads(carets)
	for i, c := range carets {
		ext := cursor.Measure(st.Text, c.Sel, t)
		c.Last = &ext
		head := c.Sel.Head
		if next.Kind() == mode.KindNormal {
			head = clampToChar(st.Text, head)
		}
		carets[i] = collapse(c, head)
	}
	return Plan{
		From:   st.Mode,
		Mode:   next,
		Carets: Merge(carets, pre),
		Record: rec,
		Exited: exited,
	}
}

// plan keeps the carets' geometry and re-highlights them for next.
func (e *Engine) plan(st State, next mode.Mode, carets []cursor.Caret) Plan {
	pre := preHeads(carets)
	if !next.HasSelection() {
		for i := range carets {
			carets[i] = collapse(carets[i], carets[i].Sel.Head)
		}
	}
	carets = highlight(st.Text, carets, next)
	return Plan{From: st.Mode, Mode: next, Carets: MergeIn(st.Text, next, carets, pre)}
}

func selectionMode(kind mode.Kind, t mode.SelectionType) mode.Mode {
	if kind == mode.KindSelect {
		return mode.Select(t)
	}
	return mode.Visual(t)
}

// ascending copies carets ordered by head.
func ascending(carets []cursor.Caret) []cursor.Caret {
	out := append([]cursor.Caret(nil), carets...)
	cursor.Sort(out)
	return out
}

func preHeads(carets []cursor.Caret) map[cursor.CaretID]buffer.ByteOffset {
	pre := make(map[cursor.CaretID]buffer.ByteOffset, len(carets))
	for _, c := range carets {
		pre[c.ID] = c.Sel.Head
	}
	return pre
}

// highlight recomputes the highlighted range of every caret for m.
func highlight(text Document, carets []cursor.Caret, m mode.Mode) []cursor.Caret {
	t, ok := m.SelectionType()
	for i, c := range carets {
		if ok {
			c.Highlight = cursor.Highlight(text, c.Sel, t)
		} else {
			c.Highlight = cursor.Range{Start: c.Sel.Head, End: c.Sel.Head}
		}
		carets[i] = c
	}
	return carets
}

func collapse(c cursor.Caret, head buffer.ByteOffset) cursor.Caret {
	c.Sel = cursor.NewCursorSelection(head)
	c.Highlight = cursor.Range{Start: head, End: head}
	return c
}

// clampToChar keeps a normal-mode caret off the newline.
func clampToChar(text Document, offset buffer.ByteOffset) buffer.ByteOffset {
	return min(offset, text.LastCharOffset(text.LineOf(offset)))
}

// stepLeft moves one character left without leaving the line.
func stepLeft(text Document, offset buffer.ByteOffset) buffer.ByteOffset {
	if offset <= text.LineStartOffset(text.LineOf(offset)) {
		return clampToChar(text, offset)
	}
	return text.PrevCharOffset(offset)
}
