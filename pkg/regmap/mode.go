package regmap

import (
	"fmt"
	"strings"
)

// SoftwareAccessDirection is a direction in which software can access a
// register over the register bus.
type SoftwareAccessDirection int

const (
	SoftwareRead SoftwareAccessDirection = iota
	SoftwareWrite
)

// HardwareAccessDirection is a direction in which hardware fabric can
// provide ("up") or consume ("down") a register value.
type HardwareAccessDirection int

const (
	HardwareUp HardwareAccessDirection = iota
	HardwareDown
)

// RegisterMode describes how a register can be accessed: which directions
// software can use on the register bus, and which ports the register file
// presents towards the hardware fabric.
//
// Modes are immutable and identified solely by their shorthand. The only
// instances are the members of the fixed catalog below.
type RegisterMode struct {
	shorthand        string
	name             string
	description      string
	softwareCanRead  bool
	softwareCanWrite bool
	hardwareHasUp    bool
}

func newRegisterMode(
	shorthand string,
	name string,
	description string,
	softwareCanRead bool,
	softwareCanWrite bool,
	hardwareHasUp bool,
) *RegisterMode {
	if hardwareHasUp && !softwareCanRead {
		// A mode that is fabric-driven "up" but not software-readable does
		// not make sense. This is a programming error, not a user-data error.
		panic(fmt.Sprintf(
			"regmap: mode %q has hardware up but is not software readable", shorthand,
		))
	}

	return &RegisterMode{
		shorthand:        shorthand,
		name:             name,
		description:      description,
		softwareCanRead:  softwareCanRead,
		softwareCanWrite: softwareCanWrite,
		hardwareHasUp:    hardwareHasUp,
	}
}

// Shorthand returns the short string that identifies this mode, e.g. "r_w".
func (m *RegisterMode) Shorthand() string { return m.shorthand }

// Name returns a short human-readable representation, e.g. "Read, Write".
func (m *RegisterMode) Name() string { return m.name }

// Description returns the textual description of the mode.
func (m *RegisterMode) Description() string { return m.description }

// SoftwareCanRead reports whether software can read the register on the bus.
func (m *RegisterMode) SoftwareCanRead() bool { return m.softwareCanRead }

// SoftwareCanWrite reports whether software can write the register on the bus.
func (m *RegisterMode) SoftwareCanWrite() bool { return m.softwareCanWrite }

// HardwareHasUp reports whether the register gets its software-read value
// from the hardware fabric.
func (m *RegisterMode) HardwareHasUp() bool { return m.hardwareHasUp }

// HardwareHasDown reports whether the register provides a value from software
// to the hardware fabric. At the moment this is the same as being
// software-writeable.
func (m *RegisterMode) HardwareHasDown() bool { return m.softwareCanWrite }

// IsSoftwareAccessible tests if this mode is software-accessible in the
// given direction.
func (m *RegisterMode) IsSoftwareAccessible(direction SoftwareAccessDirection) bool {
	if direction == SoftwareRead {
		return m.softwareCanRead
	}
	return m.softwareCanWrite
}

// IsHardwareAccessible tests if this mode is hardware-accessible in the
// given direction.
func (m *RegisterMode) IsHardwareAccessible(direction HardwareAccessDirection) bool {
	if direction == HardwareUp {
		return m.hardwareHasUp
	}
	return m.HardwareHasDown()
}

// Equal reports whether two modes are the same. There are never two distinct
// modes with the same shorthand, so comparing shorthands is sufficient.
func (m *RegisterMode) Equal(other *RegisterMode) bool {
	return other != nil && m.shorthand == other.shorthand
}

func (m *RegisterMode) String() string {
	return m.shorthand
}

// The official register mode catalog. Initialized once at process start and
// never mutated, so unsynchronized concurrent reads are safe.
var (
	ModeRead = newRegisterMode(
		"r", "Read",
		"Software can read a value that hardware provides.",
		true, false, true,
	)
	ModeWrite = newRegisterMode(
		"w", "Write",
		"Software can write a value that is available for hardware usage.",
		false, true, false,
	)
	// Note that "r_w" does not have hardware up: the software-read value is
	// the previously-written value looped back, not a fabric value.
	ModeReadWrite = newRegisterMode(
		"r_w", "Read, Write",
		"Software can write a value and read it back. "+
			"The written value is available for hardware usage.",
		true, true, false,
	)
	ModeWritePulse = newRegisterMode(
		"wpulse", "Write-pulse",
		"Software can write a value that is asserted for one clock cycle in hardware.",
		false, true, false,
	)
	ModeReadWritePulse = newRegisterMode(
		"r_wpulse", "Read, Write-pulse",
		"Software can read a value that hardware provides. "+
			"Software can write a value that is asserted for one clock cycle in hardware.",
		true, true, true,
	)
)

var modeShorthands = []string{"r", "w", "r_w", "wpulse", "r_wpulse"}

var modes = map[string]*RegisterMode{
	"r":        ModeRead,
	"w":        ModeWrite,
	"r_w":      ModeReadWrite,
	"wpulse":   ModeWritePulse,
	"r_wpulse": ModeReadWritePulse,
}

// ModeByShorthand looks up a catalog mode by its shorthand name.
func ModeByShorthand(shorthand string) (*RegisterMode, error) {
	mode, ok := modes[shorthand]
	if !ok {
		return nil, fmt.Errorf(
			"regmap: mode %q: %w, valid modes are: %s",
			shorthand, ErrNotFound, strings.Join(modeShorthands, ", "),
		)
	}
	return mode, nil
}

// ModeShorthands returns the shorthand names of all catalog modes, in the
// canonical order.
func ModeShorthands() []string {
	out := make([]string, len(modeShorthands))
	copy(out, modeShorthands)
	return out
}
