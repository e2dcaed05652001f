package regdata

import (
	"errors"
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTraceRegs/pkg/regmap"
)

// buildMapping makes a Mapping from alternating key/value pairs.
func buildMapping(t *testing.T, pairs ...any) *Mapping {
	t.Helper()
	m := NewMapping()
	for i := 0; i+1 < len(pairs); i += 2 {
		if err := m.Add(pairs[i].(string), pairs[i+1]); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	return m
}

func parse(t *testing.T, data *Mapping) (*regmap.RegisterList, error) {
	t.Helper()
	parser, err := New("caesar", "regs_caesar.toml", nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return parser.Parse(data)
}

func mustParse(t *testing.T, data *Mapping) *regmap.RegisterList {
	t.Helper()
	list, err := parse(t, data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return list
}

func TestParseMinimalRegister(t *testing.T) {
	list := mustParse(t, buildMapping(t,
		"a", buildMapping(t, "mode", "r_w"),
	))

	register, err := list.GetRegister("a")
	if err != nil {
		t.Fatalf("GetRegister: %v", err)
	}
	if register.Index() != 0 {
		t.Errorf("index = %d, want 0", register.Index())
	}
	if !register.Mode().Equal(regmap.ModeReadWrite) {
		t.Errorf("mode = %v, want r_w", register.Mode())
	}
	if len(register.Fields()) != 0 {
		t.Errorf("field count = %d, want 0", len(register.Fields()))
	}
}

func TestParseRegisterWithExplicitType(t *testing.T) {
	list := mustParse(t, buildMapping(t,
		"a", buildMapping(t, "type", "register", "mode", "r", "description", "Status."),
	))

	register, err := list.GetRegister("a")
	if err != nil {
		t.Fatalf("GetRegister: %v", err)
	}
	if register.Description() != "Status." {
		t.Errorf("description = %q", register.Description())
	}
}

func TestParseRegisterFields(t *testing.T) {
	list := mustParse(t, buildMapping(t,
		"config", buildMapping(t,
			"mode", "r_w",
			"enable", buildMapping(t, "type", "bit", "default_value", "1"),
			"burst", buildMapping(t, "type", "bit_vector", "width", int64(8)),
			"severity", buildMapping(t,
				"type", "enumeration",
				"element", buildMapping(t, "info", "", "warning", "", "error", "Fatal."),
				"default_value", "warning",
			),
			"count", buildMapping(t,
				"type", "integer",
				"min_value", int64(-10),
				"max_value", int64(10),
			),
		),
	))

	register, err := list.GetRegister("config")
	if err != nil {
		t.Fatalf("GetRegister: %v", err)
	}
	fields := register.Fields()
	if len(fields) != 4 {
		t.Fatalf("field count = %d, want 4", len(fields))
	}

	// Declaration order decides bit placement.
	if fields[0].Name() != "enable" || fields[0].BaseIndex() != 0 {
		t.Errorf("field 0: %q at %d", fields[0].Name(), fields[0].BaseIndex())
	}
	if fields[1].Name() != "burst" || fields[1].BaseIndex() != 1 {
		t.Errorf("field 1: %q at %d", fields[1].Name(), fields[1].BaseIndex())
	}
	if fields[2].Name() != "severity" || fields[2].BaseIndex() != 9 {
		t.Errorf("field 2: %q at %d", fields[2].Name(), fields[2].BaseIndex())
	}
	if fields[3].Name() != "count" || fields[3].BaseIndex() != 11 {
		t.Errorf("field 3: %q at %d", fields[3].Name(), fields[3].BaseIndex())
	}

	// An absent bit_vector default is all zeros.
	if fields[1].DefaultValueStr() != "0b00000000" {
		t.Errorf("burst default = %q", fields[1].DefaultValueStr())
	}

	// An absent integer default is min_value.
	integer, ok := fields[3].(*regmap.Integer)
	if !ok {
		t.Fatalf("count type = %T", fields[3])
	}
	if integer.DefaultValue() != -10 {
		t.Errorf("count default = %d, want -10", integer.DefaultValue())
	}
}

func TestParseBitVectorInterpretations(t *testing.T) {
	list := mustParse(t, buildMapping(t,
		"config", buildMapping(t,
			"mode", "r_w",
			"plain", buildMapping(t, "type", "bit_vector", "width", int64(4)),
			"offset", buildMapping(t,
				"type", "bit_vector", "width", int64(4),
				"numerical_interpretation", "signed",
			),
			"gain", buildMapping(t,
				"type", "bit_vector", "width", int64(8),
				"numerical_interpretation", "unsigned_fixed_point",
				"min_bit_index", int64(-4),
			),
		),
	))

	register, err := list.GetRegister("config")
	if err != nil {
		t.Fatalf("GetRegister: %v", err)
	}

	field, err := register.GetField("plain")
	if err != nil {
		t.Fatalf("GetField: %v", err)
	}
	if field.(*regmap.BitVector).Interpretation().Name() != "unsigned" {
		t.Errorf("plain interpretation = %q",
			field.(*regmap.BitVector).Interpretation().Name())
	}

	field, err = register.GetField("offset")
	if err != nil {
		t.Fatalf("GetField: %v", err)
	}
	if !field.(*regmap.BitVector).Interpretation().IsSigned() {
		t.Error("offset interpretation must be signed")
	}

	field, err = register.GetField("gain")
	if err != nil {
		t.Fatalf("GetField: %v", err)
	}
	fixed, ok := field.(*regmap.BitVector).Interpretation().(*regmap.UnsignedFixedPoint)
	if !ok {
		t.Fatalf("gain interpretation = %T", field.(*regmap.BitVector).Interpretation())
	}
	if fixed.FractionBitWidth() != 4 {
		t.Errorf("fraction bits = %d, want 4", fixed.FractionBitWidth())
	}
	if fixed.BitWidth() != 8 {
		t.Errorf("bit width = %d, want 8", fixed.BitWidth())
	}
}

func TestParseMinBitIndexRequiresFixedPoint(t *testing.T) {
	_, err := parse(t, buildMapping(t,
		"config", buildMapping(t,
			"mode", "r_w",
			"data", buildMapping(t,
				"type", "bit_vector", "width", int64(4),
				"min_bit_index", int64(-2),
			),
		),
	))
	if !errors.Is(err, regmap.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
	if !strings.Contains(err.Error(), `field "data" in register "config"`) {
		t.Errorf("error should locate the field: %v", err)
	}
}

func TestParseRegisterArray(t *testing.T) {
	list := mustParse(t, buildMapping(t,
		"base", buildMapping(t, "mode", "r"),
		"channels", buildMapping(t,
			"type", "register_array",
			"array_length", int64(3),
			"read_address", buildMapping(t, "mode", "r_w"),
			"status", buildMapping(t,
				"mode", "r",
				"enabled", buildMapping(t, "type", "bit"),
			),
		),
	))

	array, err := list.GetRegisterArray("channels")
	if err != nil {
		t.Fatalf("GetRegisterArray: %v", err)
	}
	if array.Length() != 3 {
		t.Errorf("length = %d, want 3", array.Length())
	}
	if len(array.Registers()) != 2 {
		t.Fatalf("template register count = %d, want 2", len(array.Registers()))
	}

	// Slots: base=0, then 3 iterations of 2 registers.
	index, err := list.GetArrayRegisterIndex("channels", "status", 2)
	if err != nil {
		t.Fatalf("GetArrayRegisterIndex: %v", err)
	}
	if index != 6 {
		t.Errorf("index = %d, want 6", index)
	}
}

func TestParseRegisterArrayErrors(t *testing.T) {
	t.Run("missing array_length", func(t *testing.T) {
		_, err := parse(t, buildMapping(t,
			"channels", buildMapping(t,
				"type", "register_array",
				"data", buildMapping(t, "mode", "w"),
			),
		))
		if !errors.Is(err, ErrMissingProperty) {
			t.Errorf("expected ErrMissingProperty, got %v", err)
		}
	})

	t.Run("no registers", func(t *testing.T) {
		_, err := parse(t, buildMapping(t,
			"channels", buildMapping(t,
				"type", "register_array",
				"array_length", int64(2),
			),
		))
		if !errors.Is(err, regmap.ErrInvalidValue) {
			t.Errorf("expected ErrInvalidValue, got %v", err)
		}
	})

	t.Run("array register without mode", func(t *testing.T) {
		_, err := parse(t, buildMapping(t,
			"channels", buildMapping(t,
				"type", "register_array",
				"array_length", int64(2),
				"data", buildMapping(t, "description", "No mode."),
			),
		))
		if !errors.Is(err, ErrMissingProperty) {
			t.Fatalf("expected ErrMissingProperty, got %v", err)
		}
		if !strings.Contains(err.Error(), `register "data" in register array "channels"`) {
			t.Errorf("error should locate the register: %v", err)
		}
	})
}

func TestParseConstants(t *testing.T) {
	list := mustParse(t, buildMapping(t,
		"enabled", buildMapping(t, "type", "constant", "value", true),
		"limit", buildMapping(t, "type", "constant", "value", int64(-42)),
		"scale", buildMapping(t, "type", "constant", "value", 0.25),
		"version", buildMapping(t, "type", "constant", "value", "1.2"),
		"mask", buildMapping(t,
			"type", "constant", "value", "0xff_00", "data_type", "unsigned",
		),
	))

	if len(list.Constants()) != 5 {
		t.Fatalf("constant count = %d, want 5", len(list.Constants()))
	}

	constant, err := list.GetConstant("mask")
	if err != nil {
		t.Fatalf("GetConstant: %v", err)
	}
	vector, ok := constant.(*regmap.BitVectorConstant)
	if !ok {
		t.Fatalf("mask type = %T", constant)
	}
	if vector.Width() != 16 {
		t.Errorf("mask width = %d, want 16", vector.Width())
	}

	constant, err = list.GetConstant("version")
	if err != nil {
		t.Fatalf("GetConstant: %v", err)
	}
	if _, ok := constant.(*regmap.StringConstant); !ok {
		t.Errorf("version type = %T, want *StringConstant", constant)
	}
}

func TestParseConstantErrors(t *testing.T) {
	t.Run("missing value", func(t *testing.T) {
		_, err := parse(t, buildMapping(t,
			"limit", buildMapping(t, "type", "constant"),
		))
		if !errors.Is(err, ErrMissingProperty) {
			t.Fatalf("expected ErrMissingProperty, got %v", err)
		}
		want := `Error while parsing constant "limit" in regs_caesar.toml: `
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error = %q, want prefix %q", err, want)
		}
	})

	t.Run("data_type on non-string", func(t *testing.T) {
		_, err := parse(t, buildMapping(t,
			"limit", buildMapping(t,
				"type", "constant", "value", int64(3), "data_type", "unsigned",
			),
		))
		if !errors.Is(err, regmap.ErrInvalidType) {
			t.Errorf("expected ErrInvalidType, got %v", err)
		}
	})

	t.Run("unknown data_type", func(t *testing.T) {
		_, err := parse(t, buildMapping(t,
			"limit", buildMapping(t,
				"type", "constant", "value", "0x3", "data_type", "signed",
			),
		))
		if !errors.Is(err, regmap.ErrInvalidValue) {
			t.Errorf("expected ErrInvalidValue, got %v", err)
		}
	})
}

func TestParseErrorMessageShape(t *testing.T) {
	_, err := parse(t, buildMapping(t,
		"config", buildMapping(t, "mode", "r_w", "bogus_property", int64(1)),
	))
	if err == nil {
		t.Fatal("expected error")
	}
	// Unrecognized register keys are treated as fields, so the complaint is
	// about the field node.
	want := `Error while parsing field "bogus_property" in register "config" in regs_caesar.toml: `
	if !strings.HasPrefix(err.Error(), want) {
		t.Errorf("error = %q, want prefix %q", err, want)
	}
}

func TestParseUnknownProperty(t *testing.T) {
	_, err := parse(t, buildMapping(t,
		"limit", buildMapping(t,
			"type", "constant", "value", int64(1), "dscription", "typo",
		),
	))
	if !errors.Is(err, ErrUnknownProperty) {
		t.Fatalf("expected ErrUnknownProperty, got %v", err)
	}
	if !strings.Contains(err.Error(), `"dscription"`) {
		t.Errorf("error should name the property: %v", err)
	}
}

func TestParseUnknownMode(t *testing.T) {
	_, err := parse(t, buildMapping(t,
		"config", buildMapping(t, "mode", "rw"),
	))
	if !errors.Is(err, regmap.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
	// The message must list the valid alternatives.
	for _, shorthand := range regmap.ModeShorthands() {
		if !strings.Contains(err.Error(), shorthand) {
			t.Errorf("error should list mode %q: %v", shorthand, err)
		}
	}
}

func TestParseUnknownItemType(t *testing.T) {
	_, err := parse(t, buildMapping(t,
		"thing", buildMapping(t, "type", "registr"),
	))
	if !errors.Is(err, regmap.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
	if !strings.Contains(err.Error(), "constant, register, register_array") {
		t.Errorf("error should list valid types: %v", err)
	}
}

func TestParseDefaultRegisters(t *testing.T) {
	newDefaults := func(t *testing.T) []*regmap.Register {
		t.Helper()
		config, err := regmap.NewRegister("config", 0, regmap.ModeReadWrite, "Standard config.")
		if err != nil {
			t.Fatalf("NewRegister: %v", err)
		}
		command, err := regmap.NewRegister("command", 1, regmap.ModeWritePulse, "")
		if err != nil {
			t.Fatalf("NewRegister: %v", err)
		}
		return []*regmap.Register{config, command}
	}

	t.Run("overlay description and fields", func(t *testing.T) {
		parser, err := New("caesar", "regs_caesar.toml", newDefaults(t))
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		list, err := parser.Parse(buildMapping(t,
			"config", buildMapping(t,
				"description", "Custom description.",
				"enable", buildMapping(t, "type", "bit"),
			),
			"status", buildMapping(t, "mode", "r"),
		))
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}

		register, err := list.GetRegister("config")
		if err != nil {
			t.Fatalf("GetRegister: %v", err)
		}
		if register.Index() != 0 {
			t.Errorf("default register index = %d, want 0", register.Index())
		}
		if register.Description() != "Custom description." {
			t.Errorf("description = %q", register.Description())
		}
		if len(register.Fields()) != 1 {
			t.Errorf("field count = %d, want 1", len(register.Fields()))
		}

		// New registers continue after the defaults.
		index, err := list.GetRegisterIndex("status")
		if err != nil {
			t.Fatalf("GetRegisterIndex: %v", err)
		}
		if index != 2 {
			t.Errorf("status index = %d, want 2", index)
		}
	})

	t.Run("mode of default register is fixed", func(t *testing.T) {
		parser, err := New("caesar", "regs_caesar.toml", newDefaults(t))
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		_, err = parser.Parse(buildMapping(t,
			"config", buildMapping(t, "mode", "r"),
		))
		if !errors.Is(err, regmap.ErrInvalidValue) {
			t.Fatalf("expected ErrInvalidValue, got %v", err)
		}
		if !strings.Contains(err.Error(), `"config"`) {
			t.Errorf("error should name the register: %v", err)
		}
	})

	t.Run("parsing does not mutate the defaults", func(t *testing.T) {
		defaults := newDefaults(t)
		parser, err := New("caesar", "regs_caesar.toml", defaults)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if _, err := parser.Parse(buildMapping(t,
			"config", buildMapping(t,
				"description", "Changed.",
				"enable", buildMapping(t, "type", "bit"),
			),
		)); err != nil {
			t.Fatalf("Parse: %v", err)
		}

		if defaults[0].Description() != "Standard config." {
			t.Errorf("caller's default register description mutated to %q",
				defaults[0].Description())
		}
		if len(defaults[0].Fields()) != 0 {
			t.Errorf("caller's default register gained %d fields", len(defaults[0].Fields()))
		}

		// The same slice must be reusable for a second, independent parse.
		second, err := New("caesar", "regs_caesar.toml", defaults)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		list, err := second.Parse(buildMapping(t, "config", buildMapping(t)))
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		register, err := list.GetRegister("config")
		if err != nil {
			t.Fatalf("GetRegister: %v", err)
		}
		if len(register.Fields()) != 0 {
			t.Errorf("second parse sees %d leaked fields", len(register.Fields()))
		}
	})
}

func TestParseLegacyFormatDetected(t *testing.T) {
	for _, marker := range []string{"register", "register_array", "constant"} {
		_, err := parse(t, buildMapping(t,
			marker, buildMapping(t),
		))
		if !errors.Is(err, ErrLegacyFormat) {
			t.Fatalf("marker %q: expected ErrLegacyFormat, got %v", marker, err)
		}
		if !strings.Contains(err.Error(), "regs_caesar_converted.toml") {
			t.Errorf("error should name the remediation path: %v", err)
		}
		if !strings.Contains(err.Error(), "otr convert") {
			t.Errorf("error should name the conversion command: %v", err)
		}
	}
}

func TestParseTopLevelNotMapping(t *testing.T) {
	_, err := parse(t, buildMapping(t, "config", "oops"))
	if !errors.Is(err, regmap.ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
	if !strings.Contains(err.Error(), `register list "caesar"`) {
		t.Errorf("error should locate the register list: %v", err)
	}
}
