package visual

import (
	"fmt"
	"strings"

	"github.com/dshills/vimode/internal/input/mode"
	"github.com/dshills/vimode/internal/input/vim"
)

// TriggerKind identifies what a trigger asks for.
type TriggerKind uint8

const (
	// TriggerVisual enters, re-types or leaves visual mode (v, V, <C-V>).
	TriggerVisual TriggerKind = iota

	// TriggerSelect enters, re-types or leaves select mode (gh, gH, g<C-H>).
	TriggerSelect

	// TriggerSwap switches between visual and select (<C-G>).
	TriggerSwap

	// TriggerMotion moves carets, or extends selections.
	TriggerMotion

	// TriggerEscape returns to normal mode.
	TriggerEscape

	// TriggerExit leaves visual or select for Next, after an operator.
	TriggerExit

	// TriggerInsert enters insert mode.
	TriggerInsert

	// TriggerReplace enters replace mode.
	TriggerReplace

	// TriggerCommandLine enters command-line mode.
	TriggerCommandLine

	// TriggerOperatorPending waits for the motion of an operator.
	TriggerOperatorPending

	// TriggerReturn goes back to normal mode without side effects.
	TriggerReturn
)

var triggerNames = [...]string{
	TriggerVisual:          "visual",
	TriggerSelect:          "select",
	TriggerSwap:            "swap",
	TriggerMotion:          "motion",
	TriggerEscape:          "escape",
	TriggerExit:            "exit",
	TriggerInsert:          "insert",
	TriggerReplace:         "replace",
	TriggerCommandLine:     "commandLine",
	TriggerOperatorPending: "operatorPending",
	TriggerReturn:          "return",
}

// String returns the trigger kind name.
func (k TriggerKind) String() string {
	if int(k) < len(triggerNames) {
		return triggerNames[k]
	}
	return "unknown"
}

// Trigger is one request to the transition engine.
type Trigger struct {
	Kind TriggerKind

	// Type is the selection type of visual and select triggers.
	Type mode.SelectionType

	// Motion is the motion of a motion trigger, or the motion applied
	// right after entering visual or select ("v2e").
	Motion *vim.Motion

	// MotionCount is the count of a motion attached to an entry trigger.
	MotionCount int

	// Char is the argument of f/F/t/T motions.
	Char rune

	// Next is the mode entered by TriggerExit.
	Next mode.Mode
}

// EnterVisual returns a trigger for v, V or <C-V>.
func EnterVisual(t mode.SelectionType) Trigger {
	return Trigger{Kind: TriggerVisual, Type: t}
}

// EnterSelect returns a trigger for gh, gH or g<C-H>.
func EnterSelect(t mode.SelectionType) Trigger {
	return Trigger{Kind: TriggerSelect, Type: t}
}

// Swap returns the <C-G> trigger.
func Swap() Trigger {
	return Trigger{Kind: TriggerSwap}
}

// Move returns a motion trigger. The motion count is the transition count.
func Move(m *vim.Motion, char rune) Trigger {
	return Trigger{Kind: TriggerMotion, Motion: m, Char: char}
}

// Escape returns the <Esc> trigger.
func Escape() Trigger {
	return Trigger{Kind: TriggerEscape}
}

// ExitTo returns a trigger leaving visual or select for next.
func ExitTo(next mode.Mode) Trigger {
	return Trigger{Kind: TriggerExit, Next: next}
}

// EnterInsert returns the trigger for entering insert mode.
func EnterInsert() Trigger { return Trigger{Kind: TriggerInsert} }

// EnterReplace returns the trigger for entering replace mode.
func EnterReplace() Trigger { return Trigger{Kind: TriggerReplace} }

// EnterCommandLine returns the trigger for entering command-line mode.
func EnterCommandLine() Trigger { return Trigger{Kind: TriggerCommandLine} }

// EnterOperatorPending returns the trigger for operator-pending mode.
func EnterOperatorPending() Trigger { return Trigger{Kind: TriggerOperatorPending} }

// Return returns the trigger going back to normal mode.
func Return() Trigger { return Trigger{Kind: TriggerReturn} }

// WithMotion attaches a motion applied after entering visual or select.
func (t Trigger) WithMotion(m *vim.Motion, count int, char rune) Trigger {
	t.Motion = m
	t.MotionCount = count
	t.Char = char
	return t
}

// String returns a readable form of the trigger.
func (t Trigger) String() string {
	var b strings.Builder
	b.WriteString(t.Kind.String())
	switch t.Kind {
	case TriggerVisual, TriggerSelect:
		fmt.Fprintf(&b, "(%s)", t.Type)
	case TriggerExit:
		fmt.Fprintf(&b, "(%s)", t.Next)
	}
	if t.Motion != nil {
		fmt.Fprintf(&b, "+%s", t.Motion.Name)
	}
	return b.String()
}

// ParseTrigger parses the key notation of an entry or exit trigger:
// v, V, <C-V>, gh, gH, g<C-H>, <C-G>, <Esc>, i, R, :, or a canonical
// mode name for TriggerExit ("INSERT").
func ParseTrigger(s string) (Trigger, error) {
	switch strings.TrimSpace(s) {
	case "v":
		return EnterVisual(mode.CharacterWise), nil
	case "V":
		return EnterVisual(mode.LineWise), nil
	case "<C-V>", "<C-v>":
		return EnterVisual(mode.BlockWise), nil
	case "gh":
		return EnterSelect(mode.CharacterWise), nil
	case "gH":
		return EnterSelect(mode.LineWise), nil
	case "g<C-H>", "g<C-h>":
		return EnterSelect(mode.BlockWise), nil
	case "<C-G>", "<C-g>":
		return Swap(), nil
	case "<Esc>", "<ESC>":
		return Escape(), nil
	case "i":
		return EnterInsert(), nil
	case "R":
		return EnterReplace(), nil
	case ":":
		return EnterCommandLine(), nil
	}
	if m, err := mode.Parse(s); err == nil && !m.HasSelection() {
		return ExitTo(m), nil
	}
	return Trigger{}, fmt.Errorf("visual: unknown trigger %q", s)
}
