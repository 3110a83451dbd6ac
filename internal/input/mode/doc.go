// Package mode provides the modal state of an editing session.
//
// A Mode is a small tagged value: a Kind (normal, insert, replace,
// command-line, operator-pending, visual, select) plus a SelectionType that
// is only meaningful for the visual and select kinds:
//
//	mode.Normal()
//	mode.Visual(mode.LineWise)  // VISUAL(LINE_WISE), shown as "V-LINE"
//	mode.Select(mode.BlockWise) // SELECT(BLOCK_WISE), shown as "S-BLOCK"
//
// Modes are comparable with ==, so the current mode of a session can be
// checked directly against a constructed value.
//
// # Manager
//
// The Manager holds exactly one current mode and commits transitions
// atomically. Observers registered with OnChange are notified after the
// commit, outside the lock:
//
//	m := mode.NewManager()
//	unregister := m.OnChange(func(from, to mode.Mode) {
//	    statusLine.SetText(to.DisplayText())
//	})
//	m.Set(mode.Visual(mode.CharacterWise))
//
// ChannelSink adapts a channel into an observer that never blocks the
// transition.
package mode
