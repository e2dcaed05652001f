// Package regmap models a hardware register map: the registers, register
// arrays, bit-level fields and named constants of one module, validated and
// ready for consumption by code generators.
//
// # Overview
//
// The root aggregate is RegisterList. It holds an ordered sequence of
// register objects (plain Register or RegisterArray) and an ordered sequence
// of constants, all sharing one namespace. Registers are 32-bit slots;
// fields are bit-packed into them sequentially via the Append methods, and a
// register's hardware reset value (DefaultValue) is derived from its fields'
// defaults.
//
// A register's access mode comes from the fixed five-member RegisterMode
// catalog (r, w, r_w, wpulse, r_wpulse), which describes software bus access
// and hardware fabric "up"/"down" ports. The catalog is immutable package
// data, safe for unsynchronized concurrent reads.
//
// # Usage
//
// Build a list directly through the API:
//
//	list := regmap.NewRegisterList("caesar", "caesar_regs.toml")
//	config, err := list.AppendRegister("config", regmap.ModeReadWrite, "Main config.")
//	if err != nil { ... }
//	_, err = config.AppendBit("enable", "Enable operation.", "1")
//	_, err = config.AppendBitVector("burst_length", "", 8, "00000000", nil)
//
// or let pkg/regdata build one from a register data file. Afterwards the
// list is read-only: iterate RegisterObjects or the flattened Iterations
// sequence, and decode raw register values through the typed fields.
//
// Fields, constants and register objects are closed sums; consumers dispatch
// with type switches over the documented implementations.
package regmap
