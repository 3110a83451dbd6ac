// Package visual implements the mode transition engine of an editing session.
//
// The Engine resolves a Trigger (enter visual, enter select, a motion,
// escape, ...) against the current mode, the carets, the last exited
// selection and the option snapshot, and returns a Plan: the next mode and
// the next caret states. Transition is pure; the caller commits the plan.
//
// Carets are transformed independently in ascending order and then merged
// by Merge when their highlighted ranges overlap or touch. History keeps the
// most recently exited visual or select selection, which count-prefixed
// re-entry ("3v") scales and lays out again at the current caret.
package visual
