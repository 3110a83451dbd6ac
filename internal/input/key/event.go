package key

import (
	"fmt"
	"unicode"
)

// Event is a single key press.
type Event struct {
	Key       Key
	Rune      rune
	Modifiers Modifier
}

// NewRuneEvent creates a character key event. Control characters are
// stored lowercase so <C-V> and <C-v> compare equal.
func NewRuneEvent(r rune, mods Modifier) Event {
	if mods.Has(ModCtrl) {
		r = unicode.ToLower(r)
	}
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates a special key event.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// IsRune returns true if this is a character key.
func (e Event) IsRune() bool {
	return e.Key == KeyRune
}

// IsChar returns true for a printable character without Ctrl or Alt.
func (e Event) IsChar() bool {
	return e.IsRune() && !e.Modifiers.Has(ModCtrl) && !e.Modifiers.Has(ModAlt) && unicode.IsPrint(e.Rune)
}

// IsCtrl returns true if this is Ctrl plus the given letter.
func (e Event) IsCtrl(r rune) bool {
	return e.IsRune() && e.Modifiers.Has(ModCtrl) && e.Rune == unicode.ToLower(r)
}

// IsDigit returns true for an unmodified decimal digit.
func (e Event) IsDigit() bool {
	return e.IsChar() && e.Rune >= '0' && e.Rune <= '9'
}

// String returns the event in Vim notation.
func (e Event) String() string {
	if e.IsRune() {
		if e.Modifiers.Has(ModCtrl) || e.Modifiers.Has(ModAlt) {
			return fmt.Sprintf("<%s%c>", e.Modifiers.String(), unicode.ToUpper(e.Rune))
		}
		switch e.Rune {
		case '<':
			return "<lt>"
		case ' ':
			return "<Space>"
		}
		return string(e.Rune)
	}
	return fmt.Sprintf("<%s%s>", e.Modifiers.String(), e.Key)
}
