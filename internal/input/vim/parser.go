package vim

import (
	"github.com/dshills/vimode/internal/input/key"
	"github.com/dshills/vimode/internal/input/mode"
)

// ParseStatus indicates the result of parsing a key event.
type ParseStatus uint8

const (
	// StatusPending indicates more input is needed.
	StatusPending ParseStatus = iota

	// StatusComplete indicates a complete command was parsed.
	StatusComplete

	// StatusOperator indicates an operator was read and a motion is awaited.
	StatusOperator

	// StatusInvalid indicates the sequence is invalid.
	StatusInvalid

	// StatusPassthrough indicates the key is not part of the grammar.
	StatusPassthrough
)

// String returns a string representation of the status.
func (s ParseStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusComplete:
		return "complete"
	case StatusOperator:
		return "operator"
	case StatusInvalid:
		return "invalid"
	case StatusPassthrough:
		return "passthrough"
	default:
		return "unknown"
	}
}

// ParseState represents the current state of the parser.
type ParseState uint8

const (
	// StateInitial is waiting for initial input.
	StateInitial ParseState = iota

	// StateCount is accumulating a count prefix.
	StateCount

	// StateRegister is waiting for a register name after ".
	StateRegister

	// StateOperator has received an operator, waiting for a motion.
	StateOperator

	// StateOperatorCount is accumulating count after operator.
	StateOperatorCount

	// StateGPrefix has received 'g', waiting for second key.
	StateGPrefix

	// StateCharSearch has received f/F/t/T, waiting for character.
	StateCharSearch
)

// String returns a string representation of the state.
func (s ParseState) String() string {
	switch s {
	case StateInitial:
		return "initial"
	case StateCount:
		return "count"
	case StateRegister:
		return "register"
	case StateOperator:
		return "operator"
	case StateOperatorCount:
		return "operatorCount"
	case StateGPrefix:
		return "gPrefix"
	case StateCharSearch:
		return "charSearch"
	default:
		return "unknown"
	}
}

// CommandKind identifies what a parsed command does.
type CommandKind uint8

const (
	// CmdMotion moves carets, or applies Operator over the motion.
	CmdMotion CommandKind = iota

	// CmdLinewise applies Operator to whole lines (dd, cc, yy).
	CmdLinewise

	// CmdOperator is an operator still waiting for its motion.
	CmdOperator

	// CmdVisual enters or toggles visual mode of Type (v, V, <C-V>).
	CmdVisual

	// CmdSelect enters select mode of Type (gh, gH, g<C-H>).
	CmdSelect

	// CmdSwapVisualSelect switches between visual and select (<C-G>).
	CmdSwapVisualSelect

	// CmdEdit is a single-key edit: x X D C s S.
	CmdEdit

	// CmdInsert enters insert mode: i a I A o O.
	CmdInsert

	// CmdReplace enters replace mode (R).
	CmdReplace

	// CmdCommandLine opens the command line (:).
	CmdCommandLine

	// CmdEscape returns to normal mode.
	CmdEscape
)

// Command represents a parsed Vim command.
type Command struct {
	Kind CommandKind

	// Count is the repeat count (0 means none was typed).
	Count int

	// Register is the target register (0 means default).
	Register rune

	// Operator is the operator, if any.
	Operator *Operator

	// Motion is the motion, if any.
	Motion *Motion

	// CharArg is the character argument for f/F/t/T.
	CharArg rune

	// Type is the selection type for visual and select entry.
	Type mode.SelectionType

	// Key is the command key of edit and insert commands.
	Key rune
}

// GetCount returns the effective count (1 if none specified).
func (c *Command) GetCount() int {
	if c.Count <= 0 {
		return 1
	}
	return c.Count
}

// ParseResult contains the result of parsing a key event.
type ParseResult struct {
	Status ParseStatus

	// Command is set for StatusComplete and StatusOperator.
	Command *Command

	// PendingDisplay shows the pending keys (for a status line).
	PendingDisplay string
}

// Parser parses Vim-style key sequences into commands.
type Parser struct {
	state ParseState

	count1     CountState // pre-operator count
	count2     CountState // post-operator count
	register   rune
	operator   *Operator
	charSearch *Motion

	pendingKeys []key.Event
}

// NewParser creates a new Vim command parser.
func NewParser() *Parser {
	return &Parser{pendingKeys: make([]key.Event, 0, 8)}
}

// Reset clears all parser state.
func (p *Parser) Reset() {
	p.state = StateInitial
	p.count1.Reset()
	p.count2.Reset()
	p.register = 0
	p.operator = nil
	p.charSearch = nil
	p.pendingKeys = p.pendingKeys[:0]
}

// State returns the current parser state.
func (p *Parser) State() ParseState {
	return p.state
}

// PendingKeys returns the pending keys in Vim notation.
func (p *Parser) PendingKeys() string {
	var s string
	for _, ev := range p.pendingKeys {
		s += ev.String()
	}
	return s
}

// Parse processes a key event and returns the result.
func (p *Parser) Parse(ev key.Event) ParseResult {
	if ev.Key == key.KeyEscape {
		p.Reset()
		return p.complete(&Command{Kind: CmdEscape})
	}
	p.pendingKeys = append(p.pendingKeys, ev)

	if p.state == StateCharSearch {
		if !ev.IsChar() {
			return p.invalid()
		}
		cmd := p.motionCommand(p.charSearch)
		cmd.CharArg = ev.Rune
		return p.complete(cmd)
	}

	if m := MotionForKey(ev.Key); m != nil {
		switch p.state {
		case StateInitial, StateCount, StateOperator, StateOperatorCount:
			return p.complete(p.motionCommand(m))
		}
		return p.invalid()
	}

	if ev.IsRune() && ev.Modifiers.Has(key.ModCtrl) {
		return p.parseCtrl(ev.Rune)
	}
	if !ev.IsChar() {
		p.Reset()
		return ParseResult{Status: StatusPassthrough}
	}

	r := ev.Rune
	switch p.state {
	case StateInitial, StateCount:
		return p.parseStart(r)
	case StateRegister:
		return p.parseRegister(r)
	case StateOperator, StateOperatorCount:
		return p.parseOperator(r)
	case StateGPrefix:
		return p.parseGPrefix(r)
	}
	return p.invalid()
}

func (p *Parser) parseCtrl(r rune) ParseResult {
	switch {
	case r == 'v' && p.operator == nil && (p.state == StateInitial || p.state == StateCount):
		return p.complete(&Command{Kind: CmdVisual, Type: mode.BlockWise, Count: p.count1.Value})
	case r == 'g' && p.state == StateInitial:
		return p.complete(&Command{Kind: CmdSwapVisualSelect})
	case r == 'h' && p.state == StateGPrefix && p.operator == nil:
		return p.complete(&Command{Kind: CmdSelect, Type: mode.BlockWise, Count: p.count1.Value})
	}
	p.Reset()
	return ParseResult{Status: StatusPassthrough}
}

// parseStart handles input before any operator.
func (p *Parser) parseStart(r rune) ParseResult {
	if IsCountStart(r) || (p.state == StateCount && r == '0') {
		p.state = StateCount
		p.count1.AccumulateDigit(r)
		return p.pending()
	}

	switch r {
	case '"':
		if p.register != 0 {
			return p.invalid()
		}
		p.state = StateRegister
		return p.pending()
	case 'g':
		p.state = StateGPrefix
		return p.pending()
	case 'v':
		return p.complete(&Command{Kind: CmdVisual, Type: mode.CharacterWise, Count: p.count1.Value})
	case 'V':
		return p.complete(&Command{Kind: CmdVisual, Type: mode.LineWise, Count: p.count1.Value})
	case 'x', 'X', 'D', 'C', 's', 'S':
		return p.complete(&Command{Kind: CmdEdit, Key: r, Count: p.count1.Value, Register: p.register})
	case 'i', 'a', 'I', 'A', 'o', 'O':
		return p.complete(&Command{Kind: CmdInsert, Key: r, Count: p.count1.Value})
	case 'R':
		return p.complete(&Command{Kind: CmdReplace, Count: p.count1.Value})
	case ':':
		return p.complete(&Command{Kind: CmdCommandLine})
	}

	if op := GetOperator(r); op != nil {
		p.operator = op
		p.state = StateOperator
		return ParseResult{
			Status:         StatusOperator,
			Command:        &Command{Kind: CmdOperator, Operator: op, Count: p.count1.Value, Register: p.register},
			PendingDisplay: p.PendingKeys(),
		}
	}
	return p.parseMotion(r)
}

// parseRegister handles input after ".
func (p *Parser) parseRegister(r rune) ParseResult {
	if !IsValidRegister(r) {
		return p.invalid()
	}
	p.register = r
	p.state = StateInitial
	if p.count1.Active {
		p.state = StateCount
	}
	return p.pending()
}

// parseOperator handles input after an operator key.
func (p *Parser) parseOperator(r rune) ParseResult {
	if IsCountStart(r) || (p.state == StateOperatorCount && r == '0') {
		p.state = StateOperatorCount
		p.count2.AccumulateDigit(r)
		return p.pending()
	}

	// Same operator key = line-wise (dd, yy, cc)
	if r == p.operator.Key {
		return p.complete(&Command{
			Kind:     CmdLinewise,
			Operator: p.operator,
			Count:    CombineCounts(p.count1.Value, p.count2.Value),
			Register: p.register,
		})
	}
	if r == 'g' {
		p.state = StateGPrefix
		return p.pending()
	}
	return p.parseMotion(r)
}

func (p *Parser) parseMotion(r rune) ParseResult {
	m := GetMotion(r)
	switch {
	case m == nil:
		if p.operator == nil && p.state == StateInitial {
			p.Reset()
			return ParseResult{Status: StatusPassthrough}
		}
		return p.invalid()
	case m.NeedsChar:
		p.charSearch = m
		p.state = StateCharSearch
		return p.pending()
	}
	return p.complete(p.motionCommand(m))
}

// parseGPrefix handles the key after 'g'.
func (p *Parser) parseGPrefix(r rune) ParseResult {
	switch {
	case r == 'g':
		return p.complete(p.motionCommand(&MotionDocumentStart))
	case r == 'h' && p.operator == nil:
		return p.complete(&Command{Kind: CmdSelect, Type: mode.CharacterWise, Count: p.count1.Value})
	case r == 'H' && p.operator == nil:
		return p.complete(&Command{Kind: CmdSelect, Type: mode.LineWise, Count: p.count1.Value})
	}
	return p.invalid()
}

func (p *Parser) motionCommand(m *Motion) *Command {
	return &Command{
		Kind:     CmdMotion,
		Motion:   m,
		Operator: p.operator,
		Count:    CombineCounts(p.count1.Value, p.count2.Value),
		Register: p.register,
	}
}

func (p *Parser) pending() ParseResult {
	return ParseResult{Status: StatusPending, PendingDisplay: p.PendingKeys()}
}

func (p *Parser) complete(cmd *Command) ParseResult {
	p.Reset()
	return ParseResult{Status: StatusComplete, Command: cmd}
}

func (p *Parser) invalid() ParseResult {
	p.Reset()
	return ParseResult{Status: StatusInvalid}
}
