package regmap

import (
	"fmt"
	"strconv"
)

// BitVector is a multi-bit field in a register, with a numerical
// interpretation that decides how its raw bits map to a numeric value.
type BitVector struct {
	name           string
	baseIndex      int
	description    string
	width          int
	defaultValue   string
	interpretation NumericalInterpretation
}

// NewBitVector creates a bit vector field.
//
// The width must be in [1, 32] and the default value must be a string of
// exactly width "0"/"1" characters. A nil interpretation defaults to
// unsigned. A non-nil interpretation must have a bit width equal to the
// field width.
func NewBitVector(
	name string,
	baseIndex int,
	description string,
	width int,
	defaultValue string,
	interpretation NumericalInterpretation,
) (*BitVector, error) {
	if width < 1 || width > 32 {
		return nil, fmt.Errorf(
			`regmap: bit vector %q: %w for "width", must be in [1, 32], got %d`,
			name, ErrInvalidValue, width,
		)
	}

	if interpretation == nil {
		interpretation = NewUnsigned(width)
	} else if interpretation.BitWidth() != width {
		return nil, fmt.Errorf(
			"regmap: bit vector %q: %w, field is %d bits but its %s interpretation is %d bits",
			name, ErrInvalidValue, width, interpretation.Name(), interpretation.BitWidth(),
		)
	}

	if err := checkBinaryDefault(name, width, defaultValue); err != nil {
		return nil, err
	}

	return &BitVector{
		name:           name,
		baseIndex:      baseIndex,
		description:    description,
		width:          width,
		defaultValue:   defaultValue,
		interpretation: interpretation,
	}, nil
}

func checkBinaryDefault(name string, width int, value string) error {
	if len(value) != width {
		return fmt.Errorf(
			`regmap: bit vector %q: %w, "default_value" must be of length %d, got %q`,
			name, ErrInvalidValue, width, value,
		)
	}
	for _, character := range value {
		if character != '0' && character != '1' {
			return fmt.Errorf(
				`regmap: bit vector %q: %w, "default_value" must be binary, got %q`,
				name, ErrInvalidValue, value,
			)
		}
	}
	return nil
}

func (v *BitVector) Name() string        { return v.name }
func (v *BitVector) Description() string { return v.description }
func (v *BitVector) BaseIndex() int      { return v.baseIndex }
func (v *BitVector) Width() int          { return v.width }
func (v *BitVector) Range() string       { return rangeString(v.baseIndex, v.width) }

// Interpretation returns the numerical interpretation of this field.
func (v *BitVector) Interpretation() NumericalInterpretation { return v.interpretation }

func (v *BitVector) DefaultValueStr() string { return "0b" + v.defaultValue }

func (v *BitVector) DefaultValueUint() uint32 {
	// Can not fail: the constructor checked length and character set.
	value, _ := strconv.ParseUint(v.defaultValue, 2, 64)
	return uint32(value)
}

// Decode extracts this field from a raw register value and converts it to
// its native numeric value per the field's interpretation.
func (v *BitVector) Decode(registerValue uint32) float64 {
	raw := extractRaw(registerValue, v.baseIndex, v.width)
	return v.interpretation.FromUnsigned(uint64(raw))
}

func (v *BitVector) clone() Field {
	copied := *v
	return &copied
}
