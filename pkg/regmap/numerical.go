package regmap

import (
	"fmt"
	"math"
)

// NumericalInterpretation decides how the raw bits of a bit vector field are
// interpreted as a numeric value.
//
// The set of implementations is closed: *Unsigned, *Signed,
// *UnsignedFixedPoint and *SignedFixedPoint.
type NumericalInterpretation interface {
	// Name is the schema name of the interpretation, e.g. "unsigned".
	Name() string

	// BitWidth is the total width in bits.
	BitWidth() int

	// IsSigned reports whether the raw bits are two's complement.
	IsSigned() bool

	// MinValue is the smallest representable native value.
	MinValue() float64

	// MaxValue is the largest representable native value.
	MaxValue() float64

	// FromUnsigned converts the raw unsigned register bits into the native
	// numeric value. The raw value must fit in BitWidth bits.
	FromUnsigned(raw uint64) float64

	// ToUnsigned converts a native numeric value into raw register bits.
	// Fails if the value is outside [MinValue, MaxValue].
	ToUnsigned(value float64) (uint64, error)

	// seals the interface.
	isNumericalInterpretation()
}

// fromUnsignedBinary converts a raw fixed-point word into its native value.
// The binary point sits above the lowest fractionBits bits; signed words use
// two's complement.
func fromUnsignedBinary(numBits int, raw uint64, fractionBits int, signed bool) float64 {
	value := float64(raw)
	if signed && raw&(uint64(1)<<uint(numBits-1)) != 0 {
		value -= math.Pow(2, float64(numBits))
	}
	return value * math.Pow(2, -float64(fractionBits))
}

// toUnsignedBinary is the inverse of fromUnsignedBinary. Floating-point
// values are rounded to the nearest representable word.
func toUnsignedBinary(numBits int, value float64, fractionBits int, signed bool) (uint64, error) {
	scaled := math.Round(value * math.Pow(2, float64(fractionBits)))
	if scaled < 0 {
		if !signed {
			return 0, fmt.Errorf(
				"regmap: can not convert negative value %v to unsigned: %w",
				value, ErrInvalidValue,
			)
		}
		scaled += math.Pow(2, float64(numBits))
	}
	return uint64(scaled), nil
}

// Unsigned interprets the raw bits as a plain unsigned integer.
type Unsigned struct {
	bitWidth int
}

// NewUnsigned creates an unsigned interpretation of the given width.
func NewUnsigned(bitWidth int) *Unsigned {
	return &Unsigned{bitWidth: bitWidth}
}

func (u *Unsigned) Name() string      { return "unsigned" }
func (u *Unsigned) BitWidth() int     { return u.bitWidth }
func (u *Unsigned) IsSigned() bool    { return false }
func (u *Unsigned) MinValue() float64 { return 0 }

func (u *Unsigned) MaxValue() float64 {
	return math.Pow(2, float64(u.bitWidth)) - 1
}

func (u *Unsigned) FromUnsigned(raw uint64) float64 {
	return float64(raw)
}

func (u *Unsigned) ToUnsigned(value float64) (uint64, error) {
	if err := checkNativeRange(u, value); err != nil {
		return 0, err
	}
	return uint64(math.Round(value)), nil
}

func (u *Unsigned) isNumericalInterpretation() {}

// Signed interprets the raw bits as a two's complement signed integer.
type Signed struct {
	bitWidth int
}

// NewSigned creates a signed interpretation of the given width.
func NewSigned(bitWidth int) *Signed {
	return &Signed{bitWidth: bitWidth}
}

func (s *Signed) Name() string   { return "signed" }
func (s *Signed) BitWidth() int  { return s.bitWidth }
func (s *Signed) IsSigned() bool { return true }

func (s *Signed) MinValue() float64 {
	return -math.Pow(2, float64(s.bitWidth-1))
}

func (s *Signed) MaxValue() float64 {
	return math.Pow(2, float64(s.bitWidth-1)) - 1
}

func (s *Signed) FromUnsigned(raw uint64) float64 {
	return fromUnsignedBinary(s.bitWidth, raw, 0, true)
}

func (s *Signed) ToUnsigned(value float64) (uint64, error) {
	if err := checkNativeRange(s, value); err != nil {
		return 0, err
	}
	return toUnsignedBinary(s.bitWidth, value, 0, true)
}

func (s *Signed) isNumericalInterpretation() {}

// fixedPoint holds the shared state of the two fixed-point interpretations.
// The binary point sits between bit indices 0 and -1: maxBitIndex is the
// position of the upper bit relative to the point, minBitIndex the position
// of the lower bit. A negative minBitIndex gives the word fractional bits.
//
// E.g. maxBitIndex=4, minBitIndex=-5 is a 10-bit word with 5 fractional
// bits, so 6.5 is encoded as "00110.10000".
type fixedPoint struct {
	signed      bool
	maxBitIndex int
	minBitIndex int
}

func newFixedPoint(signed bool, maxBitIndex int, minBitIndex int) (fixedPoint, error) {
	if maxBitIndex < minBitIndex {
		return fixedPoint{}, fmt.Errorf(
			"regmap: fixed-point bit index range [%d, %d] is descending: %w",
			minBitIndex, maxBitIndex, ErrInvalidValue,
		)
	}
	return fixedPoint{signed: signed, maxBitIndex: maxBitIndex, minBitIndex: minBitIndex}, nil
}

// IntegerBitWidth is the number of bits above the binary point.
func (f *fixedPoint) IntegerBitWidth() int { return f.maxBitIndex + 1 }

// FractionBitWidth is the number of bits below the binary point.
func (f *fixedPoint) FractionBitWidth() int { return -f.minBitIndex }

// MaxBitIndex is the position of the upper bit relative to the binary point.
func (f *fixedPoint) MaxBitIndex() int { return f.maxBitIndex }

// MinBitIndex is the position of the lower bit relative to the binary point.
func (f *fixedPoint) MinBitIndex() int { return f.minBitIndex }

func (f *fixedPoint) BitWidth() int  { return f.IntegerBitWidth() + f.FractionBitWidth() }
func (f *fixedPoint) IsSigned() bool { return f.signed }

func (f *fixedPoint) MinValue() float64 {
	if !f.signed {
		return 0
	}
	return fromUnsignedBinary(
		f.BitWidth(), uint64(1)<<uint(f.BitWidth()-1), f.FractionBitWidth(), true,
	)
}

func (f *fixedPoint) MaxValue() float64 {
	raw := uint64(1)<<uint(f.BitWidth()) - 1
	if f.signed {
		raw = uint64(1)<<uint(f.BitWidth()-1) - 1
	}
	return fromUnsignedBinary(f.BitWidth(), raw, f.FractionBitWidth(), f.signed)
}

func (f *fixedPoint) FromUnsigned(raw uint64) float64 {
	return fromUnsignedBinary(f.BitWidth(), raw, f.FractionBitWidth(), f.signed)
}

func (f *fixedPoint) ToUnsigned(value float64) (uint64, error) {
	if value < f.MinValue() || value > f.MaxValue() {
		return 0, rangeError(value, f.BitWidth(), f.MinValue(), f.MaxValue())
	}
	return toUnsignedBinary(f.BitWidth(), value, f.FractionBitWidth(), f.signed)
}

// UnsignedFixedPoint interprets the raw bits as an unsigned fixed-point
// number.
type UnsignedFixedPoint struct {
	fixedPoint
}

// NewUnsignedFixedPoint creates an unsigned fixed-point interpretation from
// the bit index positions relative to the binary point.
func NewUnsignedFixedPoint(maxBitIndex int, minBitIndex int) (*UnsignedFixedPoint, error) {
	f, err := newFixedPoint(false, maxBitIndex, minBitIndex)
	if err != nil {
		return nil, err
	}
	return &UnsignedFixedPoint{fixedPoint: f}, nil
}

func (u *UnsignedFixedPoint) Name() string { return "unsigned_fixed_point" }

func (u *UnsignedFixedPoint) isNumericalInterpretation() {}

// SignedFixedPoint interprets the raw bits as a two's complement fixed-point
// number.
type SignedFixedPoint struct {
	fixedPoint
}

// NewSignedFixedPoint creates a signed fixed-point interpretation from the
// bit index positions relative to the binary point.
func NewSignedFixedPoint(maxBitIndex int, minBitIndex int) (*SignedFixedPoint, error) {
	f, err := newFixedPoint(true, maxBitIndex, minBitIndex)
	if err != nil {
		return nil, err
	}
	return &SignedFixedPoint{fixedPoint: f}, nil
}

func (s *SignedFixedPoint) Name() string { return "signed_fixed_point" }

func (s *SignedFixedPoint) isNumericalInterpretation() {}

func checkNativeRange(n NumericalInterpretation, value float64) error {
	if value < n.MinValue() || value > n.MaxValue() {
		return rangeError(value, n.BitWidth(), n.MinValue(), n.MaxValue())
	}
	return nil
}

func rangeError(value float64, bitWidth int, min float64, max float64) error {
	return fmt.Errorf(
		"regmap: value %v out of range of %d-bit field (%v, %v): %w",
		value, bitWidth, min, max, ErrInvalidValue,
	)
}
