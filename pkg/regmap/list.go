package regmap

import "fmt"

// RegisterList is the root aggregate of a register map: the ordered
// registers, register arrays and constants of one module.
//
// A list is built once, by a parse or an API session, and is read-only for
// consumers afterwards. Registers, register arrays and constants share one
// namespace: a name collision at insertion is an error.
type RegisterList struct {
	name            string
	sourceReference string
	registerObjects []RegisterObject
	constants       []Constant
}

// NewRegisterList creates an empty register list. The source reference is an
// opaque provenance string, typically the originating file path, used only
// in diagnostics and generated-artifact traceability.
func NewRegisterList(name string, sourceReference string) *RegisterList {
	return &RegisterList{name: name, sourceReference: sourceReference}
}

// FromDefaultRegisters creates a register list seeded with pre-existing
// default registers, e.g. ones required by a standard bus adapter. The
// registers must carry indices 0..len-1 in order. They are deep-copied, so
// the caller's slice stays reusable across parses.
func FromDefaultRegisters(
	name string,
	sourceReference string,
	defaultRegisters []*Register,
) (*RegisterList, error) {
	for listIndex, register := range defaultRegisters {
		if register.index != listIndex {
			return nil, fmt.Errorf(
				"regmap: default register %q: %w, index is %d, expected %d",
				register.name, ErrInvalidValue, register.index, listIndex,
			)
		}
	}

	list := NewRegisterList(name, sourceReference)
	for _, register := range defaultRegisters {
		list.registerObjects = append(list.registerObjects, register.clone())
	}
	return list, nil
}

// Name of the register list. Typically the name of the module that uses it.
func (l *RegisterList) Name() string { return l.name }

// SourceReference is the opaque provenance string, e.g. the defining file.
func (l *RegisterList) SourceReference() string { return l.sourceReference }

// RegisterObjects returns the top-level registers and register arrays in
// declaration order.
func (l *RegisterList) RegisterObjects() []RegisterObject { return l.registerObjects }

// Constants returns the constants in declaration order.
func (l *RegisterList) Constants() []Constant { return l.constants }

func (l *RegisterList) nextIndex() int {
	if len(l.registerObjects) == 0 {
		return 0
	}
	return l.registerObjects[len(l.registerObjects)-1].Index() + 1
}

func (l *RegisterList) checkNameFree(name string) error {
	for _, object := range l.registerObjects {
		if object.Name() == name {
			return fmt.Errorf("regmap: %q within register list %q: %w",
				name, l.name, ErrDuplicateName)
		}
	}
	for _, constant := range l.constants {
		if constant.Name() == name {
			return fmt.Errorf("regmap: %q within register list %q: %w",
				name, l.name, ErrDuplicateName)
		}
	}
	return nil
}

// AppendRegister appends a plain register, assigning the next free index.
func (l *RegisterList) AppendRegister(name string, mode *RegisterMode, description string) (*Register, error) {
	if err := l.checkNameFree(name); err != nil {
		return nil, err
	}

	register, err := NewRegister(name, l.nextIndex(), mode, description)
	if err != nil {
		return nil, err
	}
	l.registerObjects = append(l.registerObjects, register)
	return register, nil
}

// AppendRegisterArray appends a register array starting at the next free
// index. The array is created empty; at least one register must be appended
// to it before the list is used further.
func (l *RegisterList) AppendRegisterArray(name string, length int, description string) (*RegisterArray, error) {
	if err := l.checkNameFree(name); err != nil {
		return nil, err
	}

	array, err := NewRegisterArray(name, l.nextIndex(), length, description)
	if err != nil {
		return nil, err
	}
	l.registerObjects = append(l.registerObjects, array)
	return array, nil
}

// GetRegister looks up a plain register by name. Registers inside register
// arrays are not found by this method.
func (l *RegisterList) GetRegister(name string) (*Register, error) {
	for _, object := range l.registerObjects {
		if register, ok := object.(*Register); ok && register.name == name {
			return register, nil
		}
	}
	return nil, fmt.Errorf(
		"regmap: register %q within register list %q: %w", name, l.name, ErrNotFound,
	)
}

// GetRegisterArray looks up a register array by name.
func (l *RegisterList) GetRegisterArray(name string) (*RegisterArray, error) {
	for _, object := range l.registerObjects {
		if array, ok := object.(*RegisterArray); ok && array.name == name {
			return array, nil
		}
	}
	return nil, fmt.Errorf(
		"regmap: register array %q within register list %q: %w", name, l.name, ErrNotFound,
	)
}

// GetRegisterIndex is the absolute word index of a plain register.
func (l *RegisterList) GetRegisterIndex(registerName string) (int, error) {
	register, err := l.GetRegister(registerName)
	if err != nil {
		return 0, err
	}
	return register.index, nil
}

// GetArrayRegisterIndex is the absolute word index of a register within
// iteration arrayIndex of the named register array.
func (l *RegisterList) GetArrayRegisterIndex(
	arrayName string,
	registerName string,
	arrayIndex int,
) (int, error) {
	array, err := l.GetRegisterArray(arrayName)
	if err != nil {
		return 0, err
	}
	startIndex, err := array.GetStartIndex(arrayIndex)
	if err != nil {
		return 0, err
	}
	register, err := array.GetRegister(registerName)
	if err != nil {
		return 0, err
	}
	return startIndex + register.index, nil
}

// AddBooleanConstant adds a boolean constant to the list.
func (l *RegisterList) AddBooleanConstant(name string, value bool, description string) (*BooleanConstant, error) {
	if err := l.checkNameFree(name); err != nil {
		return nil, err
	}
	constant := NewBooleanConstant(name, value, description)
	l.constants = append(l.constants, constant)
	return constant, nil
}

// AddIntegerConstant adds an integer constant to the list.
func (l *RegisterList) AddIntegerConstant(name string, value int64, description string) (*IntegerConstant, error) {
	if err := l.checkNameFree(name); err != nil {
		return nil, err
	}
	constant := NewIntegerConstant(name, value, description)
	l.constants = append(l.constants, constant)
	return constant, nil
}

// AddFloatConstant adds a float constant to the list.
func (l *RegisterList) AddFloatConstant(name string, value float64, description string) (*FloatConstant, error) {
	if err := l.checkNameFree(name); err != nil {
		return nil, err
	}
	constant := NewFloatConstant(name, value, description)
	l.constants = append(l.constants, constant)
	return constant, nil
}

// AddStringConstant adds a string constant to the list.
func (l *RegisterList) AddStringConstant(name string, value string, description string) (*StringConstant, error) {
	if err := l.checkNameFree(name); err != nil {
		return nil, err
	}
	constant := NewStringConstant(name, value, description)
	l.constants = append(l.constants, constant)
	return constant, nil
}

// AddBitVectorConstant adds a bit vector constant to the list. The value is
// a prefixed literal, e.g. "0x10a_BCde".
func (l *RegisterList) AddBitVectorConstant(name string, value string, description string) (*BitVectorConstant, error) {
	if err := l.checkNameFree(name); err != nil {
		return nil, err
	}
	constant, err := NewBitVectorConstant(name, value, description)
	if err != nil {
		return nil, err
	}
	l.constants = append(l.constants, constant)
	return constant, nil
}

// GetConstant looks up a constant by name.
func (l *RegisterList) GetConstant(name string) (Constant, error) {
	for _, constant := range l.constants {
		if constant.Name() == name {
			return constant, nil
		}
	}
	return nil, fmt.Errorf(
		"regmap: constant %q within register list %q: %w", name, l.name, ErrNotFound,
	)
}

// RegisterIteration is one element of the flattened register sequence of a
// list: a register, the array that contains it (nil for plain registers),
// and its absolute word index.
type RegisterIteration struct {
	Register *Register
	Array    *RegisterArray
	Index    int
}

// Address is the byte address of this iteration's register slot.
func (i RegisterIteration) Address() int { return 4 * i.Index }

// Iterations returns every register slot of the list in address order:
// plain registers as-is, register arrays flattened array-major then
// register-minor over all iterations.
func (l *RegisterList) Iterations() []RegisterIteration {
	var out []RegisterIteration
	for _, object := range l.registerObjects {
		switch typed := object.(type) {
		case *Register:
			out = append(out, RegisterIteration{Register: typed, Index: typed.index})
		case *RegisterArray:
			for arrayIndex := 0; arrayIndex < typed.length; arrayIndex++ {
				start := typed.baseIndex + arrayIndex*len(typed.registers)
				for _, register := range typed.registers {
					out = append(out, RegisterIteration{
						Register: register,
						Array:    typed,
						Index:    start + register.index,
					})
				}
			}
		}
	}
	return out
}
