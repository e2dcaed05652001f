package regmap

import "errors"

// Sentinel errors for the register map model. Errors returned from this
// package and from pkg/regdata wrap one of these, so callers can discriminate
// with errors.Is while still getting a message that names the offending
// register, field or constant.
var (
	// ErrInvalidType means a value has the wrong host type, e.g. a number
	// where a string was required.
	ErrInvalidType = errors.New("invalid type")

	// ErrInvalidValue means a value is present and correctly typed but
	// violates a domain rule: bad character set, out-of-range, wrong length,
	// zero-length enumeration, illegal width.
	ErrInvalidValue = errors.New("invalid value")

	// ErrWidthOverflow means appending a field would push a register past
	// 32 bits.
	ErrWidthOverflow = errors.New("maximum register width exceeded")

	// ErrDuplicateName means a register, register array or constant name
	// collides with an existing entry.
	ErrDuplicateName = errors.New("duplicate name")

	// ErrNotFound means a lookup by name or index missed.
	ErrNotFound = errors.New("not found")
)
