package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/vimode/internal/engine/buffer"
	"github.com/dshills/vimode/internal/engine/cursor"
	"github.com/dshills/vimode/internal/input/mode"
	"github.com/dshills/vimode/internal/input/vim"
	"github.com/dshills/vimode/internal/motion"
	"github.com/dshills/vimode/internal/operator"
	"github.com/dshills/vimode/internal/visual"
)

// ErrUnknownCommand is returned for a command-line command that does not
// exist.
var ErrUnknownCommand = errors.New("session: not an editor command")

// blackHole is the register that discards what is written to it.
const blackHole = '_'

// operateSelection applies op to every selection and leaves visual or
// select mode. linewise widens the selections to whole lines.
// Callers hold s.mu.
func (s *Session) operateSelection(op *vim.Operator, reg rune, linewise bool) error {
	t, ok := s.current.SelectionType()
	if !ok {
		return visual.ErrInapplicable
	}
	if linewise {
		t = mode.LineWise
	}

	next := mode.Normal()
	if op.EntersInsert {
		next = mode.Insert()
	}
	plan, err := s.engine.Transition(s.state(), visual.ExitTo(next), 0)
	if err != nil {
		return err
	}
	targets := make([]operator.Target, 0, len(plan.Exited))
	for _, c := range plan.Exited {
		targets = append(targets, operator.FromSelection(s.buf, c, t))
	}
	placements, err := operator.Apply(s.buf, s.regs, op, reg, targets)
	if err != nil {
		return err
	}
	plan.Carets = s.land(plan.Carets, placements, next)
	return s.commit(plan)
}

// editSelection runs x X D C s S on the selections.
func (s *Session) editSelection(cmd *vim.Command) error {
	switch cmd.Key {
	case 'x':
		return s.operateSelection(&vim.OpDelete, cmd.Register, false)
	case 'X', 'D':
		return s.operateSelection(&vim.OpDelete, cmd.Register, true)
	case 's':
		return s.operateSelection(&vim.OpChange, cmd.Register, false)
	case 'C', 'S':
		return s.operateSelection(&vim.OpChange, cmd.Register, true)
	}
	return fmt.Errorf("%w: %c in %s", visual.ErrInapplicable, cmd.Key, s.current)
}

// editNormal runs x X D C s S in normal mode.
func (s *Session) editNormal(cmd *vim.Command) error {
	if s.current.Kind() != mode.KindNormal {
		return visual.ErrInapplicable
	}
	if cmd.Key == 'S' {
		return s.operateLines(&vim.OpChange, cmd.Register, cmd.GetCount())
	}

	count := cmd.GetCount()
	op := &vim.OpDelete
	if cmd.Key == 's' || cmd.Key == 'C' {
		op = &vim.OpChange
	}

	carets := s.carets.All()
	targets := make([]operator.Target, 0, len(carets))
	for _, c := range carets {
		head := c.Sel.Head
		line := s.buf.LineOf(head)
		var start, end buffer.ByteOffset
		switch cmd.Key {
		case 'x', 's':
			start, end = head, min(s.buf.AdvanceChars(head, count), s.buf.LineEndOffset(line))
		case 'X':
			start, end = head, head
			for lineStart, i := s.buf.LineStartOffset(line), 0; i < count && start > lineStart; i++ {
				start = s.buf.PrevCharOffset(start)
			}
		case 'D', 'C':
			last := min(uint64(line)+uint64(count)-1, uint64(s.buf.LineCount())-1)
			start, end = head, s.buf.LineEndOffset(uint32(last))
		default:
			return fmt.Errorf("%w: %c", visual.ErrInapplicable, cmd.Key)
		}
		targets = append(targets, operator.Chars(c.ID, start, end))
	}

	if !op.EntersInsert && allEmpty(targets) {
		return operator.ErrNothingToDo
	}
	placements, err := operator.Apply(s.buf, s.regs, op, cmd.Register, targets)
	if err != nil {
		return err
	}
	if op.EntersInsert {
		if err := s.carets.Replace(s.land(carets, placements, mode.Insert())); err != nil {
			return err
		}
		return s.transition(visual.EnterInsert(), 0)
	}
	return s.carets.Replace(s.land(carets, placements, mode.Normal()))
}

// operateMotion applies op from every caret over the motion m.
// Carets the motion cannot move are left alone.
func (s *Session) operateMotion(op *vim.Operator, reg rune, m *vim.Motion, count int, char rune) error {
	carets := s.carets.All()
	targets := make([]operator.Target, 0, len(carets))
	ends := make(map[cursor.CaretID]buffer.ByteOffset, len(carets))
	moved := false
	for _, c := range carets {
		head := c.Sel.Head
		mm := m
		if op.EntersInsert {
			mm = changeMotion(s.buf, head, m)
		}
		req := motion.Request{Motion: mm, Count: count, Char: char, Context: motion.ContextOperator}
		to, err := s.motions.Execute(s.buf, head, req)
		switch {
		case errors.Is(err, motion.ErrNoProgress):
			targets = append(targets, operator.Chars(c.ID, head, head))
			ends[c.ID] = head
			continue
		case err != nil:
			return fmt.Errorf("%w: %v", visual.ErrMotionFailed, err)
		}
		moved = true
		targets = append(targets, operator.FromMotion(s.buf, c.ID, head, to, mm))
		ends[c.ID] = min(head, to)
	}
	if !moved {
		return visual.ErrMotionFailed
	}

	placements, err := operator.Apply(s.buf, s.regs, op, reg, targets)
	if err != nil {
		return err
	}
	if !op.ChangesText {
		for i := range placements {
			placements[i].Offset = ends[placements[i].Caret]
		}
	}
	return s.finishOperator(op, carets, placements)
}

// operateLines applies op to count whole lines from every caret (dd, cc,
// yy). A yank leaves the carets where they are.
func (s *Session) operateLines(op *vim.Operator, reg rune, count int) error {
	carets := s.carets.All()
	targets := make([]operator.Target, 0, len(carets))
	for _, c := range carets {
		targets = append(targets, operator.LineCount(s.buf, c.ID, c.Sel.Head, count))
	}
	placements, err := operator.Apply(s.buf, s.regs, op, reg, targets)
	if err != nil {
		return err
	}
	if !op.ChangesText {
		placements = placements[:0]
		for _, c := range carets {
			placements = append(placements, operator.Placement{Caret: c.ID, Offset: c.Sel.Head})
		}
	}
	return s.finishOperator(op, carets, placements)
}

// finishOperator lands the carets and leaves operator-pending mode for
// normal or, after a change, insert mode.
func (s *Session) finishOperator(op *vim.Operator, carets []cursor.Caret, placements []operator.Placement) error {
	next := mode.Normal()
	if op.EntersInsert {
		next = mode.Insert()
	}
	if err := s.carets.Replace(s.land(carets, placements, next)); err != nil {
		return err
	}
	if s.current.Kind() != mode.KindNormal {
		if err := s.transition(visual.Return(), 0); err != nil {
			return err
		}
	}
	if op.EntersInsert {
		return s.transition(visual.EnterInsert(), 0)
	}
	return nil
}

// changeMotion turns cw and cW on a non-blank into ce and cE.
func changeMotion(buf *buffer.Buffer, head buffer.ByteOffset, m *vim.Motion) *vim.Motion {
	r, _ := buf.RuneAt(head)
	if r == '\n' || motion.IsBlank(r) {
		return m
	}
	switch m.Name {
	case vim.MotionWordForward.Name:
		return &vim.MotionWordEnd
	case vim.MotionWORDForward.Name:
		return &vim.MotionWORDEnd
	}
	return m
}

// replaceSelection deletes the selections without touching the registers,
// enters insert mode and types text.
func (s *Session) replaceSelection(text string) error {
	if err := s.operateSelection(&vim.OpChange, blackHole, false); err != nil {
		return err
	}
	if text == "" {
		return nil
	}
	return s.typeText(text)
}

// selectEnter replaces the selections with a line break. With
// octopushandler the Enter handler runs once per caret.
func (s *Session) selectEnter() error {
	if err := s.operateSelection(&vim.OpChange, blackHole, false); err != nil {
		return err
	}
	carets := s.carets.All()

	var placements []operator.Placement
	var err error
	if s.opts.Get().OctopusHandler {
		placements, err = s.enterEach(carets)
	} else {
		placements, err = s.enter(s.buf, carets)
	}
	if err != nil {
		return err
	}
	return s.carets.Replace(s.land(carets, placements, s.current))
}

// enterEach calls the Enter handler for one caret at a time, last caret
// first, shifting the placements already made.
func (s *Session) enterEach(carets []cursor.Caret) ([]operator.Placement, error) {
	sorted := append([]cursor.Caret(nil), carets...)
	cursor.Sort(sorted)

	var out []operator.Placement
	for i := len(sorted) - 1; i >= 0; i-- {
		before := s.buf.Len()
		ps, err := s.enter(s.buf, sorted[i:i+1])
		if err != nil {
			return nil, err
		}
		delta := s.buf.Len() - before
		for j := range out {
			out[j].Offset += delta
		}
		out = append(out, ps...)
	}
	return out, nil
}

// typeText inserts text at every caret, or overwrites in replace mode.
func (s *Session) typeText(text string) error {
	carets := s.carets.All()
	var placements []operator.Placement
	var err error
	if s.current.Kind() == mode.KindReplace {
		placements, err = operator.Overwrite(s.buf, carets, text)
	} else {
		placements, err = operator.Insert(s.buf, carets, text)
	}
	if err != nil {
		return err
	}
	return s.carets.Replace(s.land(carets, placements, s.current))
}

// backspace deletes before every caret in insert mode and moves left in
// replace mode.
func (s *Session) backspace() error {
	carets := s.carets.All()
	if s.current.Kind() == mode.KindReplace {
		placements := make([]operator.Placement, len(carets))
		for i, c := range carets {
			placements[i] = operator.Placement{Caret: c.ID, Offset: s.buf.PrevCharOffset(c.Sel.Head)}
		}
		return s.carets.Replace(s.land(carets, placements, s.current))
	}
	placements, err := operator.Backspace(s.buf, carets)
	if err != nil {
		return err
	}
	return s.carets.Replace(s.land(carets, placements, s.current))
}

// moveInsert moves the carets with a navigation key in insert and replace
// modes. Left and right stay on the line and may reach its end.
func (s *Session) moveInsert(m *vim.Motion) error {
	carets := s.carets.All()
	placements := make([]operator.Placement, 0, len(carets))
	for _, c := range carets {
		head := c.Sel.Head
		line := s.buf.LineOf(head)
		to, err := s.motions.Execute(s.buf, head, motion.Request{Motion: m, Context: motion.ContextOperator})
		if err != nil && !errors.Is(err, motion.ErrNoProgress) {
			return err
		}
		if m.Name == vim.MotionLeft.Name || m.Name == vim.MotionRight.Name {
			to = max(s.buf.LineStartOffset(line), min(to, s.buf.LineEndOffset(line)))
		}
		placements = append(placements, operator.Placement{Caret: c.ID, Offset: to})
	}
	return s.carets.Replace(s.land(carets, placements, s.current))
}

// startInsert runs i a I A o O.
func (s *Session) startInsert(k rune) error {
	if s.current.Kind() != mode.KindNormal {
		return visual.ErrInapplicable
	}
	carets := s.carets.All()
	placements := make([]operator.Placement, 0, len(carets))
	for _, c := range carets {
		head := c.Sel.Head
		line := s.buf.LineOf(head)
		off := head
		switch k {
		case 'a':
			if !s.buf.IsLineEnd(head) {
				off = s.buf.NextCharOffset(head)
			}
		case 'I':
			off = motion.FirstNonBlank(s.buf, line)
		case 'A', 'o':
			off = s.buf.LineEndOffset(line)
		case 'O':
			off = s.buf.LineStartOffset(line)
		}
		placements = append(placements, operator.Placement{Caret: c.ID, Offset: off})
	}

	if k == 'o' || k == 'O' {
		at := s.land(carets, placements, mode.Insert())
		var err error
		placements, err = operator.Insert(s.buf, at, "\n")
		if err != nil {
			return err
		}
		if k == 'O' {
			for i := range placements {
				placements[i].Offset--
			}
		}
		carets = at
	}
	if err := s.carets.Replace(s.land(carets, placements, mode.Insert())); err != nil {
		return err
	}
	return s.transition(visual.EnterInsert(), 0)
}

// runCommand executes a command line. Only :set is supported.
func (s *Session) runCommand(line string) error {
	line = strings.TrimSpace(strings.TrimPrefix(line, ":"))
	if line == "" {
		return nil
	}
	name, args, _ := strings.Cut(line, " ")
	switch name {
	case "set", "se":
		if err := s.opts.Apply(args); err != nil {
			return fmt.Errorf("set %s: %w", args, err)
		}
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
}

// land collapses every caret onto its placement. Carets that end up on the
// same offset merge. In normal mode carets are kept off the newline.
func (s *Session) land(carets []cursor.Caret, placements []operator.Placement, next mode.Mode) []cursor.Caret {
	at := make(map[cursor.CaretID]buffer.ByteOffset, len(placements))
	for _, p := range placements {
		at[p.Caret] = p.Offset
	}

	pre := make(map[cursor.CaretID]buffer.ByteOffset, len(carets))
	out := make([]cursor.Caret, 0, len(carets))
	for _, c := range carets {
		off, ok := at[c.ID]
		if !ok {
			off = c.Sel.Head
		}
		off = max(0, min(off, s.buf.Len()))
		if next.Kind() == mode.KindNormal {
			off = min(off, s.buf.LastCharOffset(s.buf.LineOf(off)))
		}
		pre[c.ID] = c.Sel.Head
		c.Sel = cursor.NewCursorSelection(off)
		c.Highlight = cursor.Range{Start: off, End: off}
		out = append(out, c)
	}
	return visual.Merge(out, pre)
}

func allEmpty(targets []operator.Target) bool {
	for _, t := range targets {
		if !t.IsEmpty() {
			return false
		}
	}
	return true
}
