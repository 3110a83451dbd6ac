package visual

import "errors"

var (
	// ErrInapplicable is returned when a trigger does not apply to the
	// current mode. Callers treat it as a no-op.
	ErrInapplicable = errors.New("visual: trigger not applicable")

	// ErrMotionFailed is returned when a motion cannot move any caret.
	ErrMotionFailed = errors.New("visual: motion failed")

	// ErrNoCarets is returned when a transition is requested without carets.
	ErrNoCarets = errors.New("visual: no carets")
)
