package regmap

import (
	"fmt"
	"math/bits"
	"strconv"
)

// Integer is a field holding an integer in a caller-specified range.
// The range decides the width: the smallest bit count whose unsigned range
// (or two's complement range, when minValue is negative) covers
// [minValue, maxValue].
type Integer struct {
	name         string
	baseIndex    int
	description  string
	minValue     int64
	maxValue     int64
	defaultValue int64
	width        int
}

// NewInteger creates an integer field. The default value must lie within
// [minValue, maxValue].
func NewInteger(
	name string,
	baseIndex int,
	description string,
	minValue int64,
	maxValue int64,
	defaultValue int64,
) (*Integer, error) {
	if minValue > maxValue {
		return nil, fmt.Errorf(
			"regmap: integer %q: %w, range [%d, %d] is descending",
			name, ErrInvalidValue, minValue, maxValue,
		)
	}

	width, err := integerWidth(minValue, maxValue)
	if err != nil {
		return nil, fmt.Errorf("regmap: integer %q: %w", name, err)
	}

	if defaultValue < minValue || defaultValue > maxValue {
		return nil, fmt.Errorf(
			`regmap: integer %q: %w, "default_value" must be within [%d, %d], got %d`,
			name, ErrInvalidValue, minValue, maxValue, defaultValue,
		)
	}

	return &Integer{
		name:         name,
		baseIndex:    baseIndex,
		description:  description,
		minValue:     minValue,
		maxValue:     maxValue,
		defaultValue: defaultValue,
		width:        width,
	}, nil
}

// integerWidth gives the number of bits needed for the range, at least 1.
func integerWidth(minValue int64, maxValue int64) (int, error) {
	if minValue >= 0 {
		width := bits.Len64(uint64(maxValue))
		if width == 0 {
			width = 1
		}
		if width > 32 {
			return 0, fmt.Errorf(
				"%w, range [%d, %d] does not fit in a register", ErrInvalidValue,
				minValue, maxValue,
			)
		}
		return width, nil
	}

	for width := 1; width <= 32; width++ {
		lowest := -(int64(1) << uint(width-1))
		highest := int64(1)<<uint(width-1) - 1
		if minValue >= lowest && maxValue <= highest {
			return width, nil
		}
	}
	return 0, fmt.Errorf(
		"%w, range [%d, %d] does not fit in a register", ErrInvalidValue, minValue, maxValue,
	)
}

func (i *Integer) Name() string        { return i.name }
func (i *Integer) Description() string { return i.description }
func (i *Integer) BaseIndex() int      { return i.baseIndex }
func (i *Integer) Width() int          { return i.width }
func (i *Integer) Range() string       { return rangeString(i.baseIndex, i.width) }

// MinValue is the smallest value this field can hold.
func (i *Integer) MinValue() int64 { return i.minValue }

// MaxValue is the largest value this field can hold.
func (i *Integer) MaxValue() int64 { return i.maxValue }

// IsSigned reports whether the field encoding is two's complement.
func (i *Integer) IsSigned() bool { return i.minValue < 0 }

// DefaultValue returns the native default value.
func (i *Integer) DefaultValue() int64 { return i.defaultValue }

func (i *Integer) DefaultValueStr() string {
	return strconv.FormatInt(i.defaultValue, 10)
}

// DefaultValueUint returns the default encoded for storage: negative
// defaults are offset into the unsigned range of the field width.
func (i *Integer) DefaultValueUint() uint32 {
	if i.defaultValue >= 0 {
		return uint32(i.defaultValue)
	}
	return uint32(i.defaultValue + int64(1)<<uint(i.width))
}

// Decode extracts this field from a raw register value, sign-extending when
// the field is signed. Fails if the decoded value lies outside the field's
// legal range, which can happen since the range need not fill the width.
func (i *Integer) Decode(registerValue uint32) (int64, error) {
	raw := int64(extractRaw(registerValue, i.baseIndex, i.width))
	if i.IsSigned() && raw&(int64(1)<<uint(i.width-1)) != 0 {
		raw -= int64(1) << uint(i.width)
	}

	if raw < i.minValue || raw > i.maxValue {
		return 0, fmt.Errorf(
			"regmap: integer %q: decoded value %d outside legal range [%d, %d]: %w",
			i.name, raw, i.minValue, i.maxValue, ErrInvalidValue,
		)
	}
	return raw, nil
}

func (i *Integer) clone() Field {
	copied := *i
	return &copied
}
