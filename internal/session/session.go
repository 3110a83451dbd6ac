package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dshills/vimode/internal/config"
	"github.com/dshills/vimode/internal/engine/buffer"
	"github.com/dshills/vimode/internal/engine/cursor"
	"github.com/dshills/vimode/internal/input/mode"
	"github.com/dshills/vimode/internal/input/vim"
	"github.com/dshills/vimode/internal/logger"
	"github.com/dshills/vimode/internal/motion"
	"github.com/dshills/vimode/internal/operator"
	"github.com/dshills/vimode/internal/visual"
)

// ErrClosed is returned by operations on a closed session.
var ErrClosed = errors.New("session: closed")

// EnterHandler inserts a line break at every given caret. Without
// octopushandler select mode calls it once for all carets; with it, once
// per caret.
type EnterHandler func(buf *buffer.Buffer, carets []cursor.Caret) ([]operator.Placement, error)

// DefaultEnterHandler inserts a newline at every caret.
func DefaultEnterHandler(buf *buffer.Buffer, carets []cursor.Caret) ([]operator.Placement, error) {
	return operator.Insert(buf, carets, "\n")
}

// Option configures a Session.
type Option func(*Session)

// WithOptions uses store as the option source.
func WithOptions(store *config.Store) Option {
	return func(s *Session) {
		s.opts = store
	}
}

// WithLogger sets the session logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		s.log = l
	}
}

// WithCarets places one caret per offset instead of a single caret at 0.
func WithCarets(offsets ...buffer.ByteOffset) Option {
	return func(s *Session) {
		s.initial = offsets
	}
}

// WithEnterHandler replaces the editor-wide Enter handler.
func WithEnterHandler(h EnterHandler) Option {
	return func(s *Session) {
		s.enter = h
	}
}

// WithMotionExecutor replaces the motion executor.
func WithMotionExecutor(m visual.MotionExecutor) Option {
	return func(s *Session) {
		s.motions = m
	}
}

// Selection is the observable state of one caret.
type Selection struct {
	Caret  cursor.CaretID
	Range  buffer.Range
	Type   mode.SelectionType
	Anchor buffer.ByteOffset
	Head   buffer.ByteOffset
}

// Session is one editor session: a buffer, its carets and its mode.
// All methods are safe for concurrent use; triggers are applied one at a
// time.
type Session struct {
	id uuid.UUID

	mu      sync.Mutex
	buf     *buffer.Buffer
	carets  *cursor.CaretSet
	current mode.Mode
	closed  bool

	modes   *mode.Manager
	history *visual.History
	engine  *visual.Engine
	motions visual.MotionExecutor
	parser  *vim.Parser
	regs    *vim.RegisterStore
	opts    *config.Store
	unwatch func()
	enter   EnterHandler
	log     *zap.Logger

	initial []buffer.ByteOffset

	// pending is the operator waiting for its motion in OP_PENDING.
	pending *vim.Command
	cmdline []rune
	lastErr error
}

// New creates a session editing text.
func New(text string, opts ...Option) *Session {
	s := &Session{
		id:      uuid.New(),
		current: mode.Normal(),
		modes:   mode.NewManager(),
		history: visual.NewHistory(),
		parser:  vim.NewParser(),
		regs:    vim.NewRegisterStore(),
		enter:   DefaultEnterHandler,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.opts == nil {
		s.opts = config.NewStore(config.Default())
	}
	if s.log == nil {
		s.log = logger.L()
	}
	if s.motions == nil {
		s.motions = motion.NewExecutor()
	}
	s.engine = visual.NewEngine(s.motions)
	s.buf = buffer.NewBufferFromString(text, buffer.WithTabWidth(s.opts.Get().TabWidth))

	if len(s.initial) == 0 {
		s.initial = []buffer.ByteOffset{0}
	}
	s.carets = cursor.NewCaretSet()
	for _, off := range s.initial {
		off = max(0, min(off, s.buf.Len()))
		s.carets.Add(off)
	}
	s.log = s.log.With(zap.String("session", s.id.String()))
	s.unwatch = s.opts.OnChange(s.optionsChanged)
	return s
}

// optionsChanged logs an option update. It runs outside the session lock.
func (s *Session) optionsChanged(prev, next config.Options) {
	s.log.Info("options changed",
		zap.Strings("selectmode", next.SelectMode),
		zap.Bool("octopus", next.OctopusHandler),
		zap.Int("tabwidth", next.TabWidth),
		zap.String("loglevel", next.LogLevel),
		zap.Int("prev_tabwidth", prev.TabWidth),
	)
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// CurrentMode returns the mode of the session.
func (s *Session) CurrentMode() mode.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// CurrentSelections returns every caret in ascending order. Outside visual
// and select modes each range is empty at the head.
func (s *Session) CurrentSelections() []Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, _ := s.current.SelectionType()
	carets := s.carets.All()
	out := make([]Selection, len(carets))
	for i, c := range carets {
		out[i] = Selection{
			Caret:  c.ID,
			Range:  c.Highlight,
			Type:   t,
			Anchor: c.Sel.Anchor,
			Head:   c.Sel.Head,
		}
	}
	return out
}

// SelectedText returns the text under each selection, in caret order.
// Block-wise selections join their line pieces with newlines.
func (s *Session) SelectedText() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.current.SelectionType()
	if !ok {
		return nil
	}
	var out []string
	for _, c := range s.carets.All() {
		out = append(out, operator.FromSelection(s.buf, c, t).Text(s.buf).Text())
	}
	return out
}

// Text returns the buffer content.
func (s *Session) Text() string {
	return s.buf.Text()
}

// Register returns the content of register name; 0 is the unnamed one.
func (s *Session) Register(name rune) (vim.Register, bool) {
	return s.regs.Get(name)
}

// LastSelection returns the record of the last exited selection.
func (s *Session) LastSelection() (visual.Record, bool) {
	return s.history.Last()
}

// LastError returns the error of the last command-line command.
func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Options returns the option store of the session.
func (s *Session) Options() *config.Store {
	return s.opts
}

// OnModeChange registers fn for committed mode changes and returns a
// function removing it. fn runs after the session lock is released.
func (s *Session) OnModeChange(fn mode.ChangeFunc) func() {
	return s.modes.OnChange(fn)
}

// ApplyTrigger resolves tr with count and commits the result. It reports
// false when the trigger does not apply or a motion fails; the session is
// then unchanged.
func (s *Session) ApplyTrigger(tr visual.Trigger, count int) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	err := s.transition(tr, count)
	next := s.current
	s.mu.Unlock()

	s.notify(next)
	return err == nil
}

// transition runs one trigger. Callers hold s.mu.
func (s *Session) transition(tr visual.Trigger, count int) error {
	plan, err := s.engine.Transition(s.state(), tr, count)
	if err != nil {
		s.log.Debug("trigger rejected",
			zap.Stringer("trigger", tr),
			zap.Int("count", count),
			zap.Stringer("mode", s.current),
			zap.Error(err))
		return err
	}
	return s.commit(plan)
}

// state snapshots the transition input. Callers hold s.mu.
func (s *Session) state() visual.State {
	st := visual.State{
		Mode:   s.current,
		Carets: s.carets.All(),
		Text:   s.buf,
		Options: visual.Options{
			SelectOnCommand: s.opts.Get().HasSelectMode(config.SelectModeCmd),
		},
	}
	if rec, ok := s.history.Last(); ok {
		st.Last = &rec
	}
	return st
}

// commit makes plan the session state. Callers hold s.mu.
func (s *Session) commit(plan visual.Plan) error {
	if err := s.carets.Replace(plan.Carets); err != nil {
		return err
	}
	if plan.Record != nil {
		s.history.Record(*plan.Record)
	}
	if plan.Changed() {
		s.log.Debug("mode changed",
			zap.Stringer("from", plan.From),
			zap.Stringer("to", plan.Mode),
			zap.Int("carets", len(plan.Carets)))
	}
	s.current = plan.Mode
	if !s.current.HasSelection() && s.current.Kind() != mode.KindOperatorPending {
		s.pending = nil
	}
	return nil
}

// notify tells observers about the committed mode. It must be called
// without s.mu held.
func (s *Session) notify(m mode.Mode) {
	s.modes.Set(m)
}

// Close discards the session history. Later triggers are rejected.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.closed = true
	s.unwatch()
	s.history.Clear()
	s.parser.Reset()
	return nil
}
