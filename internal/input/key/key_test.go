package key

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		want Event
	}{
		{"v", NewRuneEvent('v', ModNone)},
		{"<Esc>", NewSpecialEvent(KeyEscape, ModNone)},
		{"<ESC>", NewSpecialEvent(KeyEscape, ModNone)},
		{"<CR>", NewSpecialEvent(KeyEnter, ModNone)},
		{"<BS>", NewSpecialEvent(KeyBackspace, ModNone)},
		{"<C-V>", NewRuneEvent('v', ModCtrl)},
		{"<C-h>", NewRuneEvent('h', ModCtrl)},
		{"<lt>", NewRuneEvent('<', ModNone)},
		{"<S-Tab>", NewSpecialEvent(KeyTab, ModShift)},
	}
	for _, tt := range tests {
		got, err := Parse(tt.spec)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.spec, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.spec, got, tt.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse(""); !errors.Is(err, ErrEmptySpec) {
		t.Errorf("expected ErrEmptySpec, got %v", err)
	}
	if _, err := Parse("<Nope>"); !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("expected ErrInvalidSpec, got %v", err)
	}
	if _, err := Parse("<X-a>"); !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("expected ErrInvalidSpec for unknown modifier, got %v", err)
	}
}

func TestParseSequence(t *testing.T) {
	seq, err := ParseSequence("<C-V>j$d2j")
	if err != nil {
		t.Fatalf("ParseSequence error = %v", err)
	}
	want := []string{"<C-V>", "j", "$", "d", "2", "j"}
	if len(seq) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(seq))
	}
	for i, ev := range seq {
		if ev.String() != want[i] {
			t.Errorf("event %d = %s, want %s", i, ev, want[i])
		}
	}

	seq = MustParseSequence("a<b")
	if len(seq) != 3 || seq[1].Rune != '<' {
		t.Errorf("unterminated '<' should be literal, got %v", seq)
	}
}

func TestEventPredicates(t *testing.T) {
	ctrlV := NewRuneEvent('V', ModCtrl)
	if !ctrlV.IsCtrl('v') || ctrlV.IsChar() {
		t.Error("<C-V> should be a ctrl key and not a printable char")
	}
	if !NewRuneEvent('7', ModNone).IsDigit() {
		t.Error("'7' should be a digit")
	}
	if NewSpecialEvent(KeyEnter, ModNone).IsRune() {
		t.Error("Enter is not a rune")
	}
	if got := NewRuneEvent(' ', ModNone).String(); got != "<Space>" {
		t.Errorf("space String() = %q", got)
	}
}

func TestFromTcell(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want Event
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'v', tcell.ModNone), NewRuneEvent('v', ModNone)},
		{tcell.NewEventKey(tcell.KeyRune, 'V', tcell.ModShift), NewRuneEvent('V', ModNone)},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), NewSpecialEvent(KeyEscape, ModNone)},
		{tcell.NewEventKey(tcell.KeyCtrlV, 0, tcell.ModCtrl), NewRuneEvent('v', ModCtrl)},
	}
	for _, tt := range tests {
		got, ok := FromTcell(tt.ev)
		if !ok {
			t.Errorf("FromTcell(%v) not converted", tt.ev.Name())
			continue
		}
		if got != tt.want {
			t.Errorf("FromTcell(%v) = %+v, want %+v", tt.ev.Name(), got, tt.want)
		}
	}

	if _, ok := FromTcell(tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone)); ok {
		t.Error("function keys are not converted")
	}
}
