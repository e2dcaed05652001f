package regmap

import (
	"fmt"
	"strings"
)

const bitVectorSeparator = "_"

// BitVectorConstant is a constant holding a bit vector literal: a "0x" or
// "0b" prefix followed by hexadecimal or binary digits, with optional "_"
// separators. The width is four bits per hexadecimal digit or one bit per
// binary digit, separators excluded.
type BitVectorConstant struct {
	name        string
	prefix      string
	value       string
	description string
}

// NewBitVectorConstant creates a bit vector constant from a prefixed
// literal, e.g. "0x10a_BCde" or "0b10_01".
func NewBitVectorConstant(name string, value string, description string) (*BitVectorConstant, error) {
	if len(value) < 3 || (value[0:2] != "0b" && value[0:2] != "0x") {
		return nil, fmt.Errorf(
			`regmap: constant %q: %w, value must start with "0b" or "0x", got %q`,
			name, ErrInvalidValue, value,
		)
	}

	prefix := value[0:2]
	digits := value[2:]

	allowed := "01" + bitVectorSeparator
	if prefix == "0x" {
		allowed = "0123456789abcdefABCDEF" + bitVectorSeparator
	}
	for _, character := range digits {
		if !strings.ContainsRune(allowed, character) {
			return nil, fmt.Errorf(
				"regmap: constant %q: %w, illegal character %q in value %q",
				name, ErrInvalidValue, string(character), value,
			)
		}
	}

	return &BitVectorConstant{
		name:        name,
		prefix:      prefix,
		value:       digits,
		description: description,
	}, nil
}

func (c *BitVectorConstant) Name() string        { return c.name }
func (c *BitVectorConstant) Description() string { return c.description }

// Prefix is the literal prefix, "0b" or "0x".
func (c *BitVectorConstant) Prefix() string { return c.prefix }

// Value is the digit string after the prefix, separators included.
func (c *BitVectorConstant) Value() string { return c.value }

// ValueWithoutSeparator is the digit string with all separators removed.
func (c *BitVectorConstant) ValueWithoutSeparator() string {
	return strings.ReplaceAll(c.value, bitVectorSeparator, "")
}

// IsHexadecimal reports whether the literal is hexadecimal rather than
// binary.
func (c *BitVectorConstant) IsHexadecimal() bool { return c.prefix == "0x" }

// Width is the number of bits this vector constant occupies.
func (c *BitVectorConstant) Width() int {
	bitsPerCharacter := 1
	if c.IsHexadecimal() {
		bitsPerCharacter = 4
	}
	return len(c.ValueWithoutSeparator()) * bitsPerCharacter
}

func (c *BitVectorConstant) isConstant() {}
