// Package key provides key events and the Vim key notation used to drive the
// mode engine.
//
// An Event is either a rune with modifiers or a special key:
//
//	key.NewRuneEvent('v', key.ModNone)
//	key.NewRuneEvent('v', key.ModCtrl)   // <C-V>
//	key.NewSpecialEvent(key.KeyEscape, key.ModNone)
//
// ParseSequence reads Vim notation such as "v2e", "<C-V>jld" or "<Esc>bb"
// into events, and FromTcell translates terminal events delivered by tcell.
package key
