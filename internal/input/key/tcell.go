package key

import "github.com/gdamore/tcell/v2"

// ctrlKeys maps tcell control keys to the letter held with Ctrl.
var ctrlKeys = map[tcell.Key]rune{
	tcell.KeyCtrlA: 'a', tcell.KeyCtrlB: 'b', tcell.KeyCtrlC: 'c', tcell.KeyCtrlD: 'd',
	tcell.KeyCtrlE: 'e', tcell.KeyCtrlF: 'f', tcell.KeyCtrlG: 'g', tcell.KeyCtrlH: 'h',
	tcell.KeyCtrlK: 'k', tcell.KeyCtrlL: 'l', tcell.KeyCtrlN: 'n', tcell.KeyCtrlO: 'o',
	tcell.KeyCtrlP: 'p', tcell.KeyCtrlQ: 'q', tcell.KeyCtrlR: 'r', tcell.KeyCtrlS: 's',
	tcell.KeyCtrlT: 't', tcell.KeyCtrlU: 'u', tcell.KeyCtrlV: 'v', tcell.KeyCtrlW: 'w',
	tcell.KeyCtrlX: 'x', tcell.KeyCtrlY: 'y', tcell.KeyCtrlZ: 'z',
}

// FromTcell converts a terminal key event. ok is false for keys the mode
// engine has no use for (function keys, paging).
func FromTcell(ev *tcell.EventKey) (e Event, ok bool) {
	mods := convertMod(ev.Modifiers())

	switch ev.Key() {
	case tcell.KeyRune:
		return NewRuneEvent(ev.Rune(), mods&^ModShift), true
	case tcell.KeyEscape:
		return NewSpecialEvent(KeyEscape, mods), true
	case tcell.KeyEnter:
		return NewSpecialEvent(KeyEnter, mods), true
	case tcell.KeyTab:
		return NewSpecialEvent(KeyTab, mods), true
	case tcell.KeyBackspace2:
		return NewSpecialEvent(KeyBackspace, mods), true
	case tcell.KeyDelete:
		return NewSpecialEvent(KeyDelete, mods), true
	case tcell.KeyHome:
		return NewSpecialEvent(KeyHome, mods), true
	case tcell.KeyEnd:
		return NewSpecialEvent(KeyEnd, mods), true
	case tcell.KeyUp:
		return NewSpecialEvent(KeyUp, mods), true
	case tcell.KeyDown:
		return NewSpecialEvent(KeyDown, mods), true
	case tcell.KeyLeft:
		return NewSpecialEvent(KeyLeft, mods), true
	case tcell.KeyRight:
		return NewSpecialEvent(KeyRight, mods), true
	}

	if r, found := ctrlKeys[ev.Key()]; found {
		return NewRuneEvent(r, mods.With(ModCtrl)), true
	}
	return Event{}, false
}

func convertMod(m tcell.ModMask) Modifier {
	var mods Modifier
	if m&tcell.ModShift != 0 {
		mods = mods.With(ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mods = mods.With(ModAlt)
	}
	return mods
}
