package regmap

import "fmt"

// RegisterObject is a top-level entry in a register list: either a plain
// *Register or a *RegisterArray. The set of implementations is closed.
type RegisterObject interface {
	// Name of the object.
	Name() string

	// Description is the textual description. May be empty.
	Description() string

	// Index is the highest zero-based 32-bit-word index this object
	// occupies within its register list.
	Index() int

	// seals the interface.
	isRegisterObject()
}

// Register is one 32-bit addressable storage slot with a fixed access mode
// and zero or more bit-packed fields.
//
// Fields are appended during construction only; each one is packed at the
// register's current bit cursor. A register is at most 32 bits wide.
type Register struct {
	name        string
	index       int
	mode        *RegisterMode
	description string
	fields      []Field
	bitCursor   int
}

// NewRegister creates a register. The index is the zero-based position in
// 32-bit words, relative to the start of the containing register list or
// register array.
func NewRegister(name string, index int, mode *RegisterMode, description string) (*Register, error) {
	if mode == nil {
		return nil, fmt.Errorf("regmap: register %q: %w, mode must be set", name, ErrInvalidValue)
	}

	return &Register{
		name:        name,
		index:       index,
		mode:        mode,
		description: description,
	}, nil
}

func (r *Register) Name() string        { return r.name }
func (r *Register) Index() int          { return r.index }
func (r *Register) Mode() *RegisterMode { return r.mode }
func (r *Register) Description() string { return r.description }

// SetDescription overwrites the register description. Used when user data
// further describes a default register.
func (r *Register) SetDescription(description string) {
	r.description = description
}

// Address is the byte address of this register within its register list.
// Registers are 32-bit aligned.
func (r *Register) Address() int { return 4 * r.index }

// Fields returns the fields in bit order, lowest base index first.
func (r *Register) Fields() []Field { return r.fields }

// AppendBit appends a single-bit field at the current bit cursor.
func (r *Register) AppendBit(name string, description string, defaultValue string) (*Bit, error) {
	bit, err := NewBit(name, r.bitCursor, description, defaultValue)
	if err != nil {
		return nil, err
	}
	if err := r.appendField(bit); err != nil {
		return nil, err
	}
	return bit, nil
}

// AppendBitVector appends a bit vector field at the current bit cursor.
// A nil interpretation defaults to unsigned.
func (r *Register) AppendBitVector(
	name string,
	description string,
	width int,
	defaultValue string,
	interpretation NumericalInterpretation,
) (*BitVector, error) {
	vector, err := NewBitVector(name, r.bitCursor, description, width, defaultValue, interpretation)
	if err != nil {
		return nil, err
	}
	if err := r.appendField(vector); err != nil {
		return nil, err
	}
	return vector, nil
}

// AppendEnumeration appends an enumeration field at the current bit cursor.
// An empty defaultValue selects the first declared element.
func (r *Register) AppendEnumeration(
	name string,
	description string,
	elements []EnumerationElementSpec,
	defaultValue string,
) (*Enumeration, error) {
	enumeration, err := NewEnumeration(name, r.bitCursor, description, elements, defaultValue)
	if err != nil {
		return nil, err
	}
	if err := r.appendField(enumeration); err != nil {
		return nil, err
	}
	return enumeration, nil
}

// AppendInteger appends an integer field at the current bit cursor.
func (r *Register) AppendInteger(
	name string,
	description string,
	minValue int64,
	maxValue int64,
	defaultValue int64,
) (*Integer, error) {
	integer, err := NewInteger(name, r.bitCursor, description, minValue, maxValue, defaultValue)
	if err != nil {
		return nil, err
	}
	if err := r.appendField(integer); err != nil {
		return nil, err
	}
	return integer, nil
}

// appendField packs the field at the bit cursor. On overflow the register is
// left exactly as it was: the field is not added.
func (r *Register) appendField(field Field) error {
	if r.bitCursor+field.Width() > 32 {
		return fmt.Errorf(
			"regmap: register %q: %w by field %q",
			r.name, ErrWidthOverflow, field.Name(),
		)
	}

	r.fields = append(r.fields, field)
	r.bitCursor += field.Width()
	return nil
}

// GetField looks up a field in this register by name.
func (r *Register) GetField(name string) (Field, error) {
	for _, field := range r.fields {
		if field.Name() == name {
			return field, nil
		}
	}
	return nil, fmt.Errorf(
		"regmap: field %q within register %q: %w", name, r.name, ErrNotFound,
	)
}

// DefaultValue is the hardware reset value of this register: the bitwise OR
// of every field's unsigned default shifted to its base index.
func (r *Register) DefaultValue() uint32 {
	var value uint32
	for _, field := range r.fields {
		value |= field.DefaultValueUint() << uint(field.BaseIndex())
	}
	return value
}

// clone returns a deep copy, so that a default-register template can be
// reused across parses without cross-contamination.
func (r *Register) clone() *Register {
	copied := *r
	copied.fields = make([]Field, len(r.fields))
	for index, field := range r.fields {
		copied.fields[index] = field.clone()
	}
	return &copied
}

func (r *Register) isRegisterObject() {}
