// Package cursor provides carets and the selection model of the mode engine.
//
// Selection Model:
//
// Selections use an anchor/head model where:
//   - Anchor: the position where the selection started
//   - Head: the current cursor position
//
// The highlighted range of a selection depends on its type. Character-wise
// selections include the character under the larger endpoint, line-wise
// selections cover whole lines, and block-wise selections cover a rectangle
// of display columns projected onto every line between the endpoints:
//
//	r := cursor.Highlight(buf, sel, mode.CharacterWise)
//	for _, line := range cursor.BlockLines(buf, sel) { ... }
//
// Carets:
//
// A Caret pairs a stable CaretID with its selection, its highlighted range and
// the Extent of its most recently exited visual selection. CaretSet is the
// arena owning the carets of one session; it keeps them sorted by the start
// of their highlight so that per-caret work is always applied in ascending
// document order.
package cursor
