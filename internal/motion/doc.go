// Package motion executes cursor motions against a buffer.
//
// The Executor is the motion collaborator of the mode engine: given a start
// offset, a motion from the vim grammar and a count it returns the target
// offset, or ErrNoProgress when the motion cannot move at all (for example
// "l" on the last character or "w" at the end of the buffer).
//
// Word motions use Vim's character classes: blanks, punctuation and keyword
// characters, where WORD motions treat every non-blank as one class.
package motion
