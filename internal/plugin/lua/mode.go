package lua

import (
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/vimode/internal/input/mode"
	"github.com/dshills/vimode/internal/session"
	"github.com/dshills/vimode/internal/visual"
)

// Session is the part of an editor session the mode module drives.
type Session interface {
	CurrentMode() mode.Mode
	CurrentSelections() []session.Selection
	ApplyTrigger(tr visual.Trigger, count int) bool
	Type(keys string) error
}

// ModeModule implements the mode API module.
type ModeModule struct {
	sess Session
}

// NewModeModule creates a mode module bound to sess.
func NewModeModule(sess Session) *ModeModule {
	return &ModeModule{sess: sess}
}

// Name returns the module name.
func (m *ModeModule) Name() string {
	return "mode"
}

// Register installs the module as the global table "mode".
func (m *ModeModule) Register(L *lua.LState) error {
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"current":    m.current,
		"is":         m.is,
		"display":    m.display,
		"cursor":     m.cursor,
		"selections": m.selections,
		"type":       m.typeKeys,
		"apply":      m.apply,
	})

	for _, c := range []mode.Mode{
		mode.Normal(),
		mode.Insert(),
		mode.Replace(),
		mode.CommandLine(),
		mode.OperatorPending(),
		mode.Visual(mode.CharacterWise),
		mode.Select(mode.CharacterWise),
	} {
		L.SetField(mod, c.Kind().String(), lua.LString(c.Kind().String()))
	}

	L.SetGlobal(m.Name(), mod)
	return nil
}

// current() -> string
func (m *ModeModule) current(L *lua.LState) int {
	L.Push(lua.LString(m.sess.CurrentMode().String()))
	return 1
}

// is(name) -> bool
// A name without a selection type matches every type of that mode.
func (m *ModeModule) is(L *lua.LState) int {
	name := L.CheckString(1)
	want, err := mode.Parse(strings.ToUpper(name))
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}

	cur := m.sess.CurrentMode()
	match := cur == want
	if !strings.Contains(name, "(") {
		match = cur.Kind() == want.Kind()
	}
	L.Push(lua.LBool(match))
	return 1
}

// display() -> string
func (m *ModeModule) display(L *lua.LState) int {
	L.Push(lua.LString(m.sess.CurrentMode().DisplayText()))
	return 1
}

// cursor() -> string
func (m *ModeModule) cursor(L *lua.LState) int {
	L.Push(lua.LString(m.sess.CurrentMode().CursorStyle().String()))
	return 1
}

// selections() -> {{caret, start, finish, type, anchor, head}, ...}
func (m *ModeModule) selections(L *lua.LState) int {
	out := L.NewTable()
	for _, sel := range m.sess.CurrentSelections() {
		t := L.NewTable()
		L.SetField(t, "caret", lua.LNumber(sel.Caret))
		L.SetField(t, "start", lua.LNumber(sel.Range.Start))
		L.SetField(t, "finish", lua.LNumber(sel.Range.End))
		L.SetField(t, "type", lua.LString(sel.Type.String()))
		L.SetField(t, "anchor", lua.LNumber(sel.Anchor))
		L.SetField(t, "head", lua.LNumber(sel.Head))
		out.Append(t)
	}
	L.Push(out)
	return 1
}

// type(keys) -> nil
func (m *ModeModule) typeKeys(L *lua.LState) int {
	keys := L.CheckString(1)
	if err := m.sess.Type(keys); err != nil {
		L.RaiseError("type: %v", err)
	}
	return 0
}

// apply(trigger [, count]) -> bool
func (m *ModeModule) apply(L *lua.LState) int {
	tr, err := visual.ParseTrigger(L.CheckString(1))
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	count := L.OptInt(2, 0)
	if count < 0 {
		L.ArgError(2, "count must not be negative")
		return 0
	}
	L.Push(lua.LBool(m.sess.ApplyTrigger(tr, count)))
	return 1
}
