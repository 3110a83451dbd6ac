package session

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/dshills/vimode/internal/input/key"
	"github.com/dshills/vimode/internal/input/mode"
	"github.com/dshills/vimode/internal/input/vim"
	"github.com/dshills/vimode/internal/visual"
)

// Type feeds a key sequence in Vim notation ("vedx", "<C-V>jld", "<Esc>")
// to the session.
func (s *Session) Type(keys string) error {
	events, err := key.ParseSequence(keys)
	if err != nil {
		return fmt.Errorf("session: parse keys %q: %w", keys, err)
	}
	for _, ev := range events {
		s.HandleKey(ev)
	}
	return nil
}

// HandleKey processes one key press in the current mode. It reports
// whether the key did something.
func (s *Session) HandleKey(ev key.Event) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	var handled bool
	switch s.current.Kind() {
	case mode.KindInsert, mode.KindReplace:
		handled = s.typeKey(ev)
	case mode.KindCommandLine:
		handled = s.commandKey(ev)
	case mode.KindSelect:
		handled = s.selectKey(ev)
	default:
		handled = s.commandInput(ev)
	}
	next := s.current
	s.mu.Unlock()

	s.notify(next)
	return handled
}

// commandInput runs ev through the command parser in normal, visual and
// operator-pending modes. Callers hold s.mu.
func (s *Session) commandInput(ev key.Event) bool {
	res := s.parser.Parse(ev)
	switch res.Status {
	case vim.StatusPending:
		return true

	case vim.StatusOperator:
		if s.current.HasSelection() {
			s.parser.Reset()
			return s.check(s.operateSelection(res.Command.Operator, res.Command.Register, false))
		}
		if err := s.transition(visual.EnterOperatorPending(), 0); err != nil {
			s.parser.Reset()
			return false
		}
		s.pending = res.Command
		return true

	case vim.StatusComplete:
		return s.check(s.execute(res.Command))
	}

	s.log.Debug("key discarded", zap.Stringer("key", ev), zap.Stringer("status", res.Status))
	if s.current.Kind() == mode.KindOperatorPending {
		_ = s.transition(visual.Return(), 0)
	}
	return false
}

// check logs err and reports whether the command succeeded.
func (s *Session) check(err error) bool {
	if err != nil {
		s.log.Debug("command failed", zap.Stringer("mode", s.current), zap.Error(err))
		return false
	}
	return true
}

// execute runs a complete command. Callers hold s.mu.
func (s *Session) execute(cmd *vim.Command) error {
	if s.current.Kind() == mode.KindOperatorPending {
		return s.executePending(cmd)
	}

	switch cmd.Kind {
	case vim.CmdMotion:
		return s.transition(visual.Move(cmd.Motion, cmd.CharArg), cmd.Count)
	case vim.CmdVisual:
		return s.transition(visual.EnterVisual(cmd.Type), cmd.Count)
	case vim.CmdSelect:
		return s.transition(visual.EnterSelect(cmd.Type), cmd.Count)
	case vim.CmdSwapVisualSelect:
		return s.transition(visual.Swap(), 0)
	case vim.CmdEscape:
		return s.transition(visual.Escape(), 0)
	case vim.CmdEdit:
		if s.current.HasSelection() {
			return s.editSelection(cmd)
		}
		return s.editNormal(cmd)
	case vim.CmdInsert:
		return s.startInsert(cmd.Key)
	case vim.CmdReplace:
		return s.transition(visual.EnterReplace(), 0)
	case vim.CmdCommandLine:
		if err := s.transition(visual.EnterCommandLine(), 0); err != nil {
			return err
		}
		s.cmdline = s.cmdline[:0]
		return nil
	}
	return fmt.Errorf("%w: command %d", visual.ErrInapplicable, cmd.Kind)
}

// executePending finishes the operator waiting in OP_PENDING.
func (s *Session) executePending(cmd *vim.Command) error {
	pending := s.pending
	s.pending = nil
	if cmd.Kind == vim.CmdEscape || pending == nil {
		return s.transition(visual.Escape(), 0)
	}

	var err error
	switch cmd.Kind {
	case vim.CmdMotion:
		err = s.operateMotion(cmd.Operator, cmd.Register, cmd.Motion, cmd.Count, cmd.CharArg)
	case vim.CmdLinewise:
		err = s.operateLines(cmd.Operator, cmd.Register, cmd.Count)
	default:
		err = fmt.Errorf("%w: command %d after operator", visual.ErrInapplicable, cmd.Kind)
	}
	if err != nil && s.current.Kind() == mode.KindOperatorPending {
		_ = s.transition(visual.Return(), 0)
	}
	return err
}

// selectKey handles keys in select mode. Printable keys replace the
// selection; navigation keys extend it. Callers hold s.mu.
func (s *Session) selectKey(ev key.Event) bool {
	switch {
	case ev.Key == key.KeyEscape:
		return s.check(s.transition(visual.Escape(), 0))
	case ev.IsCtrl('g'):
		return s.check(s.transition(visual.Swap(), 0))
	case ev.IsChar():
		return s.check(s.replaceSelection(string(ev.Rune)))
	case ev.Key == key.KeyTab:
		return s.check(s.replaceSelection("\t"))
	case ev.Key == key.KeyBackspace, ev.Key == key.KeyDelete:
		return s.check(s.replaceSelection(""))
	case ev.Key == key.KeyEnter:
		return s.check(s.selectEnter())
	}
	if m := vim.MotionForKey(ev.Key); m != nil {
		return s.check(s.transition(visual.Move(m, 0), 0))
	}
	return false
}

// typeKey handles keys in insert and replace modes. Callers hold s.mu.
func (s *Session) typeKey(ev key.Event) bool {
	switch {
	case ev.Key == key.KeyEscape:
		return s.check(s.transition(visual.Escape(), 0))
	case ev.IsChar():
		return s.check(s.typeText(string(ev.Rune)))
	case ev.Key == key.KeyTab:
		return s.check(s.typeText("\t"))
	case ev.Key == key.KeyEnter:
		return s.check(s.typeText("\n"))
	case ev.Key == key.KeyBackspace:
		return s.check(s.backspace())
	}
	if m := vim.MotionForKey(ev.Key); m != nil {
		return s.check(s.moveInsert(m))
	}
	return false
}

// commandKey edits the command line. Callers hold s.mu.
func (s *Session) commandKey(ev key.Event) bool {
	switch {
	case ev.Key == key.KeyEscape:
		s.cmdline = s.cmdline[:0]
		return s.check(s.transition(visual.Escape(), 0))
	case ev.Key == key.KeyEnter:
		line := string(s.cmdline)
		s.cmdline = s.cmdline[:0]
		s.lastErr = s.runCommand(line)
		if s.lastErr != nil {
			s.log.Debug("command line failed", zap.String("command", line), zap.Error(s.lastErr))
		}
		_ = s.transition(visual.Return(), 0)
		return s.lastErr == nil
	case ev.Key == key.KeyBackspace:
		if len(s.cmdline) == 0 {
			return s.check(s.transition(visual.Return(), 0))
		}
		s.cmdline = s.cmdline[:len(s.cmdline)-1]
		return true
	case ev.IsChar():
		s.cmdline = append(s.cmdline, ev.Rune)
		return true
	}
	return false
}

// CommandLine returns the text typed after ":" so far.
func (s *Session) CommandLine() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.cmdline)
}

// PendingKeys returns the keys of an incomplete command.
func (s *Session) PendingKeys() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.parser.PendingKeys()
}
