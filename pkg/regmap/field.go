package regmap

import (
	"fmt"
	"strconv"
)

// Field is one named sub-range of bits within a register, with a typed value
// interpretation.
//
// The set of implementations is closed: *Bit, *BitVector, *Enumeration and
// *Integer. Consumers dispatch with a type switch over these four; the
// unexported clone method keeps the set sealed.
type Field interface {
	// Name of the field.
	Name() string

	// Description is the textual field description. May be empty.
	Description() string

	// BaseIndex is the zero-based index within the register of the lowest
	// bit of this field. Assigned by the parent register's packing
	// algorithm, never by the caller.
	BaseIndex() int

	// Width is the number of bits the field occupies.
	Width() int

	// Range is the human-readable bit range of the field within its
	// register, e.g. "4" for a single bit or "11:4" for a vector.
	Range() string

	// DefaultValueStr is the textual representation of the field default,
	// e.g. "0b0110" for a bit vector or an element name for an enumeration.
	DefaultValueStr() string

	// DefaultValueUint is the field default as an unsigned integer, ready to
	// be shifted into the register's reset value.
	DefaultValueUint() uint32

	// clone returns a deep copy. Also seals the interface.
	clone() Field
}

// extractRaw returns the unsigned value of register bits
// [baseIndex, baseIndex+width) of the given register value.
func extractRaw(registerValue uint32, baseIndex int, width int) uint32 {
	mask := uint32(1)<<uint(width) - 1
	if width >= 32 {
		mask = ^uint32(0)
	}
	return (registerValue >> uint(baseIndex)) & mask
}

func rangeString(baseIndex int, width int) string {
	if width == 1 {
		return strconv.Itoa(baseIndex)
	}
	return fmt.Sprintf("%d:%d", baseIndex+width-1, baseIndex)
}
