package vim

// Operator represents a Vim operator command.
type Operator struct {
	// Name is the operator identifier.
	Name string

	// Key is the key that triggers this operator.
	Key rune

	// ChangesText indicates if this operator modifies the buffer.
	ChangesText bool

	// EntersInsert indicates if this operator enters insert mode after.
	EntersInsert bool
}

// Standard Vim operators.
var (
	OpDelete = Operator{Name: "delete", Key: 'd', ChangesText: true}
	OpChange = Operator{Name: "change", Key: 'c', ChangesText: true, EntersInsert: true}
	OpYank   = Operator{Name: "yank", Key: 'y'}
)

var operators = map[rune]*Operator{
	'd': &OpDelete,
	'c': &OpChange,
	'y': &OpYank,
}

// GetOperator returns the operator for the given key, or nil.
func GetOperator(r rune) *Operator {
	return operators[r]
}
