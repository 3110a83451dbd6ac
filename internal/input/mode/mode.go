package mode

import (
	"fmt"
	"strings"
)

// Kind identifies a mode variant.
type Kind uint8

const (
	KindNormal Kind = iota
	KindInsert
	KindReplace
	KindCommandLine
	KindOperatorPending
	KindVisual
	KindSelect
)

// String returns the canonical kind name.
func (k Kind) String() string {
	switch k {
	case KindNormal:
		return "NORMAL"
	case KindInsert:
		return "INSERT"
	case KindReplace:
		return "REPLACE"
	case KindCommandLine:
		return "CMD_LINE"
	case KindOperatorPending:
		return "OP_PENDING"
	case KindVisual:
		return "VISUAL"
	case KindSelect:
		return "SELECT"
	default:
		return "UNKNOWN"
	}
}

// SelectionType is the shape of a visual or select selection.
type SelectionType uint8

const (
	// CharacterWise selects a run of characters.
	CharacterWise SelectionType = iota

	// LineWise selects whole lines.
	LineWise

	// BlockWise selects a rectangle of display columns.
	BlockWise
)

// String returns a human-readable selection type name.
func (s SelectionType) String() string {
	switch s {
	case CharacterWise:
		return "CHARACTER_WISE"
	case LineWise:
		return "LINE_WISE"
	case BlockWise:
		return "BLOCK_WISE"
	default:
		return "UNKNOWN"
	}
}

// ParseSelectionType parses the names produced by SelectionType.String and
// the short forms "char", "line" and "block".
func ParseSelectionType(s string) (SelectionType, error) {
	switch s {
	case "CHARACTER_WISE", "char":
		return CharacterWise, nil
	case "LINE_WISE", "line":
		return LineWise, nil
	case "BLOCK_WISE", "block":
		return BlockWise, nil
	}
	return CharacterWise, fmt.Errorf("unknown selection type %q", s)
}

// Mode is the editing mode of a session.
// The selection type is zero for every kind except visual and select.
type Mode struct {
	kind      Kind
	selection SelectionType
}

// Normal returns the normal mode.
func Normal() Mode { return Mode{kind: KindNormal} }

// Insert returns the insert mode.
func Insert() Mode { return Mode{kind: KindInsert} }

// Replace returns the replace mode.
func Replace() Mode { return Mode{kind: KindReplace} }

// CommandLine returns the command-line mode.
func CommandLine() Mode { return Mode{kind: KindCommandLine} }

// OperatorPending returns the operator-pending mode.
func OperatorPending() Mode { return Mode{kind: KindOperatorPending} }

// Visual returns the visual mode of the given selection type.
func Visual(t SelectionType) Mode { return Mode{kind: KindVisual, selection: t} }

// Select returns the select mode of the given selection type.
func Select(t SelectionType) Mode { return Mode{kind: KindSelect, selection: t} }

// Kind returns the variant of the mode.
func (m Mode) Kind() Kind { return m.kind }

// SelectionType returns the selection type carried by visual and select
// modes. ok is false for every other kind.
func (m Mode) SelectionType() (t SelectionType, ok bool) {
	return m.selection, m.HasSelection()
}

// HasSelection reports whether the mode carries a selection.
func (m Mode) HasSelection() bool {
	return m.kind == KindVisual || m.kind == KindSelect
}

// IsVisual reports whether m is a visual mode of any type.
func (m Mode) IsVisual() bool { return m.kind == KindVisual }

// IsSelect reports whether m is a select mode of any type.
func (m Mode) IsSelect() bool { return m.kind == KindSelect }

// WithSelectionType returns m with a different selection type.
// Modes without a selection are returned unchanged.
func (m Mode) WithSelectionType(t SelectionType) Mode {
	if !m.HasSelection() {
		return m
	}
	m.selection = t
	return m
}

// String returns the canonical name, e.g. "VISUAL(LINE_WISE)".
func (m Mode) String() string {
	if m.HasSelection() {
		return fmt.Sprintf("%s(%s)", m.kind, m.selection)
	}
	return m.kind.String()
}

// DisplayText returns the status line text for the mode.
// Operator-pending mode has no text.
func (m Mode) DisplayText() string {
	switch m.kind {
	case KindNormal:
		return "NORMAL"
	case KindInsert:
		return "INSERT"
	case KindReplace:
		return "REPLACE"
	case KindCommandLine:
		return "COMMAND"
	case KindVisual:
		switch m.selection {
		case LineWise:
			return "V-LINE"
		case BlockWise:
			return "V-BLOCK"
		}
		return "VISUAL"
	case KindSelect:
		switch m.selection {
		case LineWise:
			return "S-LINE"
		case BlockWise:
			return "S-BLOCK"
		}
		return "SELECT"
	}
	return ""
}

// CursorStyle returns the cursor style for this mode.
func (m Mode) CursorStyle() CursorStyle {
	switch m.kind {
	case KindInsert, KindCommandLine:
		return CursorBar
	case KindReplace, KindOperatorPending:
		return CursorUnderline
	case KindSelect:
		return CursorBar
	}
	return CursorBlock
}

// CursorStyle defines the visual appearance of the cursor.
type CursorStyle uint8

const (
	// CursorBlock is a full-cell block cursor (normal mode).
	CursorBlock CursorStyle = iota

	// CursorBar is a thin vertical bar cursor (insert mode).
	CursorBar

	// CursorUnderline is an underline cursor.
	CursorUnderline

	// CursorHidden hides the cursor.
	CursorHidden
)

// String returns a human-readable cursor style name.
func (c CursorStyle) String() string {
	switch c {
	case CursorBlock:
		return "block"
	case CursorBar:
		return "bar"
	case CursorUnderline:
		return "underline"
	case CursorHidden:
		return "hidden"
	default:
		return "unknown"
	}
}

// Parse parses the canonical name produced by Mode.String.
func Parse(s string) (Mode, error) {
	name, arg := s, ""
	if i := strings.IndexByte(s, '('); i >= 0 && strings.HasSuffix(s, ")") {
		name, arg = s[:i], s[i+1:len(s)-1]
	}
	for k := KindNormal; k <= KindSelect; k++ {
		if k.String() != name {
			continue
		}
		m := Mode{kind: k}
		if !m.HasSelection() {
			if arg != "" {
				return Mode{}, fmt.Errorf("mode %s takes no selection type", name)
			}
			return m, nil
		}
		if arg == "" {
			return m, nil
		}
		t, err := ParseSelectionType(arg)
		if err != nil {
			return Mode{}, err
		}
		m.selection = t
		return m, nil
	}
	return Mode{}, fmt.Errorf("unknown mode %q", s)
}
