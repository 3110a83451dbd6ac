package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a single key in Vim notation: "a", "<Esc>", "<C-V>", "<lt>".
func Parse(spec string) (Event, error) {
	if spec == "" {
		return Event{}, ErrEmptySpec
	}
	if len(spec) > 2 && spec[0] == '<' && spec[len(spec)-1] == '>' {
		return parseVimStyle(spec[1 : len(spec)-1])
	}
	r, size := utf8.DecodeRuneInString(spec)
	if size != len(spec) {
		return Event{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
	}
	return NewRuneEvent(r, ModNone), nil
}

// parseVimStyle parses the inside of <...>, e.g. "C-v", "S-Tab", "CR".
func parseVimStyle(inner string) (Event, error) {
	var mods Modifier
	for len(inner) > 2 && inner[1] == '-' {
		switch strings.ToLower(inner[:1]) {
		case "c":
			mods = mods.With(ModCtrl)
		case "a", "m":
			mods = mods.With(ModAlt)
		case "s":
			mods = mods.With(ModShift)
		default:
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, inner[:1])
		}
		inner = inner[2:]
	}

	switch strings.ToLower(inner) {
	case "lt":
		return NewRuneEvent('<', mods), nil
	case "space":
		return NewRuneEvent(' ', mods), nil
	}
	if k := KeyFromName(inner); k != KeyNone {
		return NewSpecialEvent(k, mods), nil
	}
	r, size := utf8.DecodeRuneInString(inner)
	if size == len(inner) && mods != ModNone {
		return NewRuneEvent(r, mods), nil
	}
	return Event{}, fmt.Errorf("%w: <%s>", ErrInvalidSpec, inner)
}

// ParseSequence parses a continuous Vim-style key sequence such as
// "vedx", "<C-V>jld" or "<ESC>bb". A '<' without a closing '>' is literal.
func ParseSequence(s string) ([]Event, error) {
	var events []Event
	for len(s) > 0 {
		if s[0] == '<' {
			if end := strings.IndexByte(s, '>'); end > 1 {
				ev, err := Parse(s[:end+1])
				if err == nil {
					events = append(events, ev)
					s = s[end+1:]
					continue
				}
				if !errors.Is(err, ErrInvalidSpec) {
					return nil, err
				}
				// not a key name; fall through to a literal '<'
			}
		}
		r, size := utf8.DecodeRuneInString(s)
		events = append(events, NewRuneEvent(r, ModNone))
		s = s[size:]
	}
	return events, nil
}

// MustParseSequence parses a sequence string and panics on error.
// Use only for known-valid sequences in tests and initialization code.
func MustParseSequence(s string) []Event {
	seq, err := ParseSequence(s)
	if err != nil {
		panic("invalid key sequence: " + s + ": " + err.Error())
	}
	return seq
}
