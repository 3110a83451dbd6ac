package vim

import (
	"strings"
	"sync"
	"unicode"

	"github.com/dshills/vimode/internal/input/mode"
)

// Register is the content of one register. Block-wise content stores one
// line of the block per element of Lines.
type Register struct {
	Lines []string
	Shape mode.SelectionType
}

// Text joins the register lines with newlines.
func (r Register) Text() string {
	return strings.Join(r.Lines, "\n")
}

// RegisterStore holds the registers of a session.
//
// Supported registers: the unnamed register ("), the yank register (0), the
// numbered delete history (1-9), the small delete register (-), named
// registers (a-z, uppercase appends) and the black hole register (_).
type RegisterStore struct {
	mu        sync.RWMutex
	registers map[rune]Register
}

// NewRegisterStore creates an empty register store.
func NewRegisterStore() *RegisterStore {
	return &RegisterStore{registers: make(map[rune]Register)}
}

// IsValidRegister reports whether name can follow a '"' prefix.
func IsValidRegister(name rune) bool {
	switch {
	case name == '"', name == '-', name == '_':
		return true
	case name >= '0' && name <= '9':
		return true
	case name >= 'a' && name <= 'z', name >= 'A' && name <= 'Z':
		return true
	}
	return false
}

// Get returns the content of a register.
func (rs *RegisterStore) Get(name rune) (Register, bool) {
	if name == 0 {
		name = '"'
	}
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	reg, ok := rs.registers[unicode.ToLower(name)]
	return reg, ok
}

// Yank stores yanked text in the target register, register 0 and the
// unnamed register. A zero target means the unnamed register.
func (rs *RegisterStore) Yank(target rune, reg Register) {
	if target == '_' {
		return
	}
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.setNamed(target, reg)
	if target == 0 || target == '"' {
		rs.registers['0'] = reg
	}
	rs.registers['"'] = reg
}

// Delete stores deleted text. Deletes within one line go to the small
// delete register; others shift the numbered history 1-9.
func (rs *RegisterStore) Delete(target rune, reg Register) {
	if target == '_' {
		return
	}
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.setNamed(target, reg)

	if len(reg.Lines) <= 1 && reg.Shape == mode.CharacterWise {
		rs.registers['-'] = reg
	} else {
		for i := '9'; i > '1'; i-- {
			if prev, ok := rs.registers[i-1]; ok {
				rs.registers[i] = prev
			}
		}
		rs.registers['1'] = reg
	}
	rs.registers['"'] = reg
}

func (rs *RegisterStore) setNamed(target rune, reg Register) {
	switch {
	case target >= 'a' && target <= 'z':
		rs.registers[target] = reg
	case target >= 'A' && target <= 'Z':
		lower := unicode.ToLower(target)
		prev, ok := rs.registers[lower]
		if !ok {
			rs.registers[lower] = reg
			return
		}
		lines := append([]string(nil), prev.Lines...)
		if prev.Shape == mode.CharacterWise && reg.Shape == mode.CharacterWise && len(lines) > 0 && len(reg.Lines) > 0 {
			lines[len(lines)-1] += reg.Lines[0]
			lines = append(lines, reg.Lines[1:]...)
		} else {
			lines = append(lines, reg.Lines...)
		}
		prev.Lines = lines
		rs.registers[lower] = prev
	}
}
