// Package operator applies Vim operators (delete, change, yank) and insert
// mode typing to a buffer on behalf of every caret of a session.
//
// An operator acts on Targets: a character range, whole lines, or one range
// per line of a block. Targets come from a visual selection, from a motion,
// or from a count of lines. Edits of all carets are applied in one batch and
// each caret is placed relative to the text that remains.
package operator
