package vim

import "github.com/dshills/vimode/internal/input/key"

// MotionType categorizes motions by the range an operator takes from them.
type MotionType uint8

const (
	// MotionCharwise moves character by character.
	MotionCharwise MotionType = iota

	// MotionLinewise operates on whole lines.
	MotionLinewise
)

// Motion represents a Vim motion command.
type Motion struct {
	// Name is the motion identifier (e.g., "wordEnd", "down").
	Name string

	// Keys is the key sequence that triggers this motion.
	Keys string

	// Type indicates the motion type.
	Type MotionType

	// Inclusive indicates if an operator includes the target character.
	// e.g., 'e' is inclusive, 'w' is exclusive.
	Inclusive bool

	// NeedsChar indicates the motion takes a character argument (f/F/t/T).
	NeedsChar bool
}

// Standard Vim motions.
var (
	MotionLeft          = Motion{Name: "left", Keys: "h"}
	MotionRight         = Motion{Name: "right", Keys: "l"}
	MotionUp            = Motion{Name: "up", Keys: "k", Type: MotionLinewise}
	MotionDown          = Motion{Name: "down", Keys: "j", Type: MotionLinewise}
	MotionWordForward   = Motion{Name: "wordForward", Keys: "w"}
	MotionWordBackward  = Motion{Name: "wordBackward", Keys: "b"}
	MotionWordEnd       = Motion{Name: "wordEnd", Keys: "e", Inclusive: true}
	MotionWORDForward   = Motion{Name: "WORDForward", Keys: "W"}
	MotionWORDBackward  = Motion{Name: "WORDBackward", Keys: "B"}
	MotionWORDEnd       = Motion{Name: "WORDEnd", Keys: "E", Inclusive: true}
	MotionLineStart     = Motion{Name: "lineStart", Keys: "0"}
	MotionFirstNonBlank = Motion{Name: "firstNonBlank", Keys: "^"}
	MotionLineEnd       = Motion{Name: "lineEnd", Keys: "$", Inclusive: true}
	MotionDocumentStart = Motion{Name: "documentStart", Keys: "gg", Type: MotionLinewise}
	MotionDocumentEnd   = Motion{Name: "documentEnd", Keys: "G", Type: MotionLinewise}
	MotionFindChar      = Motion{Name: "findChar", Keys: "f", Inclusive: true, NeedsChar: true}
	MotionFindCharBack  = Motion{Name: "findCharBack", Keys: "F", NeedsChar: true}
	MotionTillChar      = Motion{Name: "tillChar", Keys: "t", Inclusive: true, NeedsChar: true}
	MotionTillCharBack  = Motion{Name: "tillCharBack", Keys: "T", NeedsChar: true}
)

// motions maps single-key motion keys to their definitions.
var motions = map[rune]*Motion{
	'h': &MotionLeft,
	'l': &MotionRight,
	'k': &MotionUp,
	'j': &MotionDown,
	'w': &MotionWordForward,
	'b': &MotionWordBackward,
	'e': &MotionWordEnd,
	'W': &MotionWORDForward,
	'B': &MotionWORDBackward,
	'E': &MotionWORDEnd,
	'0': &MotionLineStart,
	'^': &MotionFirstNonBlank,
	'$': &MotionLineEnd,
	'G': &MotionDocumentEnd,
	'f': &MotionFindChar,
	'F': &MotionFindCharBack,
	't': &MotionTillChar,
	'T': &MotionTillCharBack,
}

// specialMotions maps navigation keys to motions.
var specialMotions = map[key.Key]*Motion{
	key.KeyLeft:  &MotionLeft,
	key.KeyRight: &MotionRight,
	key.KeyUp:    &MotionUp,
	key.KeyDown:  &MotionDown,
	key.KeyHome:  &MotionLineStart,
	key.KeyEnd:   &MotionLineEnd,
}

// GetMotion returns the motion for the given key, or nil.
func GetMotion(r rune) *Motion {
	return motions[r]
}

// MotionForKey returns the motion bound to a special key, or nil.
func MotionForKey(k key.Key) *Motion {
	return specialMotions[k]
}

// LookupMotion returns the motion with the given name, or nil.
func LookupMotion(name string) *Motion {
	for _, m := range motions {
		if m.Name == name {
			return m
		}
	}
	if name == MotionDocumentStart.Name {
		return &MotionDocumentStart
	}
	return nil
}
