package regmap

// Constant is a named, typed value attached to a register map but not backed
// by any address. Constants end up in generated packages and headers.
//
// The set of implementations is closed: *BooleanConstant, *IntegerConstant,
// *FloatConstant, *StringConstant and *BitVectorConstant.
type Constant interface {
	// Name of the constant.
	Name() string

	// Description is the textual description. May be empty.
	Description() string

	// seals the interface.
	isConstant()
}

// BooleanConstant is a constant with a boolean value.
type BooleanConstant struct {
	name        string
	value       bool
	description string
}

// NewBooleanConstant creates a boolean constant.
func NewBooleanConstant(name string, value bool, description string) *BooleanConstant {
	return &BooleanConstant{name: name, value: value, description: description}
}

func (c *BooleanConstant) Name() string        { return c.name }
func (c *BooleanConstant) Description() string { return c.description }
func (c *BooleanConstant) Value() bool         { return c.value }
func (c *BooleanConstant) isConstant()         {}

// IntegerConstant is a constant with a signed integer value.
type IntegerConstant struct {
	name        string
	value       int64
	description string
}

// NewIntegerConstant creates an integer constant.
func NewIntegerConstant(name string, value int64, description string) *IntegerConstant {
	return &IntegerConstant{name: name, value: value, description: description}
}

func (c *IntegerConstant) Name() string        { return c.name }
func (c *IntegerConstant) Description() string { return c.description }
func (c *IntegerConstant) Value() int64        { return c.value }
func (c *IntegerConstant) isConstant()         {}

// FloatConstant is a constant with a double-precision floating point value.
type FloatConstant struct {
	name        string
	value       float64
	description string
}

// NewFloatConstant creates a float constant.
func NewFloatConstant(name string, value float64, description string) *FloatConstant {
	return &FloatConstant{name: name, value: value, description: description}
}

func (c *FloatConstant) Name() string        { return c.name }
func (c *FloatConstant) Description() string { return c.description }
func (c *FloatConstant) Value() float64      { return c.value }
func (c *FloatConstant) isConstant()         {}

// StringConstant is a constant with an arbitrary text value.
type StringConstant struct {
	name        string
	value       string
	description string
}

// NewStringConstant creates a string constant.
func NewStringConstant(name string, value string, description string) *StringConstant {
	return &StringConstant{name: name, value: value, description: description}
}

func (c *StringConstant) Name() string        { return c.name }
func (c *StringConstant) Description() string { return c.description }
func (c *StringConstant) Value() string       { return c.value }
func (c *StringConstant) isConstant()         {}
