package regmap

import "fmt"

// RegisterArray is a fixed-size repetition of a template group of registers
// at consecutive address offsets.
//
// The template registers carry indices 0..len-1 relative to the start of one
// array iteration. Every register array must end up with at least one
// register; the parser enforces this at the end of a register-array node.
type RegisterArray struct {
	name        string
	baseIndex   int
	length      int
	description string
	registers   []*Register
}

// NewRegisterArray creates a register array. The base index is the absolute
// word index of the first register of the first iteration; length is the
// repeat count and must be at least 1.
func NewRegisterArray(name string, baseIndex int, length int, description string) (*RegisterArray, error) {
	if length < 1 {
		return nil, fmt.Errorf(
			"regmap: register array %q: %w, length must be greater than 0, got %d",
			name, ErrInvalidValue, length,
		)
	}

	return &RegisterArray{
		name:        name,
		baseIndex:   baseIndex,
		length:      length,
		description: description,
	}, nil
}

func (a *RegisterArray) Name() string        { return a.name }
func (a *RegisterArray) Description() string { return a.description }

// BaseIndex is the absolute word index where the array starts.
func (a *RegisterArray) BaseIndex() int { return a.baseIndex }

// Length is the number of times the register sequence is repeated.
func (a *RegisterArray) Length() int { return a.length }

// Registers returns the template registers of one array iteration.
func (a *RegisterArray) Registers() []*Register { return a.registers }

// Index is the highest absolute word index this array occupies. Exists to be
// used analogously with Register.Index. Panics on an empty array, which the
// parser never produces.
func (a *RegisterArray) Index() int {
	if len(a.registers) == 0 {
		panic(fmt.Sprintf("regmap: register array %q has no registers", a.name))
	}
	return a.baseIndex + a.length*len(a.registers) - 1
}

// AppendRegister appends a register to the array template.
func (a *RegisterArray) AppendRegister(name string, mode *RegisterMode, description string) (*Register, error) {
	for _, register := range a.registers {
		if register.name == name {
			return nil, fmt.Errorf(
				"regmap: register %q within register array %q: %w",
				name, a.name, ErrDuplicateName,
			)
		}
	}

	register, err := NewRegister(name, len(a.registers), mode, description)
	if err != nil {
		return nil, err
	}
	a.registers = append(a.registers, register)
	return register, nil
}

// GetRegister looks up a template register by name.
func (a *RegisterArray) GetRegister(name string) (*Register, error) {
	for _, register := range a.registers {
		if register.name == name {
			return register, nil
		}
	}
	return nil, fmt.Errorf(
		"regmap: register %q within register array %q: %w", name, a.name, ErrNotFound,
	)
}

// GetStartIndex is the absolute word index where array iteration number
// arrayIndex starts. The iteration index must be less than the array length.
func (a *RegisterArray) GetStartIndex(arrayIndex int) (int, error) {
	if arrayIndex < 0 || arrayIndex >= a.length {
		return 0, fmt.Errorf(
			"regmap: index %d out of range for register array %q of length %d: %w",
			arrayIndex, a.name, a.length, ErrNotFound,
		)
	}
	return a.baseIndex + arrayIndex*len(a.registers), nil
}

func (a *RegisterArray) isRegisterObject() {}
