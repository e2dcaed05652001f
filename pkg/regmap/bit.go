package regmap

import "fmt"

// Bit is a single-bit field in a register.
type Bit struct {
	name         string
	baseIndex    int
	description  string
	defaultValue string
}

// NewBit creates a bit field. The default value must be "0" or "1".
func NewBit(name string, baseIndex int, description string, defaultValue string) (*Bit, error) {
	if defaultValue != "0" && defaultValue != "1" {
		return nil, fmt.Errorf(
			`regmap: bit %q: %w for "default_value", must be "0" or "1", got %q`,
			name, ErrInvalidValue, defaultValue,
		)
	}

	return &Bit{
		name:         name,
		baseIndex:    baseIndex,
		description:  description,
		defaultValue: defaultValue,
	}, nil
}

func (b *Bit) Name() string        { return b.name }
func (b *Bit) Description() string { return b.description }
func (b *Bit) BaseIndex() int      { return b.baseIndex }
func (b *Bit) Width() int          { return 1 }
func (b *Bit) Range() string       { return rangeString(b.baseIndex, 1) }

func (b *Bit) DefaultValueStr() string { return "0b" + b.defaultValue }

func (b *Bit) DefaultValueUint() uint32 {
	if b.defaultValue == "1" {
		return 1
	}
	return 0
}

// Decode extracts the value of this bit from a raw register value.
func (b *Bit) Decode(registerValue uint32) uint32 {
	return extractRaw(registerValue, b.baseIndex, 1)
}

func (b *Bit) clone() Field {
	copied := *b
	return &copied
}
