package regdata

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/OpenTraceRegs/pkg/regmap"
)

// Parser builds a validated register list from a hierarchical Mapping.
//
// A parser is created per parse with New and used once. Parsing is a pure
// function of the input mapping, the default-register list and the fixed
// mode catalog: it never mutates caller-owned data (default registers are
// deep-copied) and shares no mutable state, so independent parsers are safe
// to run concurrently.
type Parser struct {
	list                 *regmap.RegisterList
	sourceReference      string
	defaultRegisterNames map[string]struct{}
}

var registerItemTypes = []string{"constant", "register", "register_array"}

var fieldItemTypes = []string{"bit", "bit_vector", "enumeration", "integer"}

// New creates a parser for one register list.
//
// The name is the name of the register list, typically the module that uses
// it. The source reference is an opaque provenance string, typically the
// data file path; it appears in every error message. Default registers are
// pre-existing registers (e.g. required by a standard bus adapter) that user
// data may describe further but not redefine; they are deep-copied and
// occupy the first indices.
func New(name string, sourceReference string, defaultRegisters []*regmap.Register) (*Parser, error) {
	list, err := regmap.FromDefaultRegisters(name, sourceReference, defaultRegisters)
	if err != nil {
		return nil, err
	}

	names := make(map[string]struct{}, len(defaultRegisters))
	for _, register := range defaultRegisters {
		names[register.Name()] = struct{}{}
	}

	return &Parser{
		list:                 list,
		sourceReference:      sourceReference,
		defaultRegisterNames: names,
	}, nil
}

// Parse walks the register data and returns the resulting register list.
// Every violation fails immediately; there is no partial result.
func (p *Parser) Parse(data *Mapping) (*regmap.RegisterList, error) {
	for _, key := range legacyMarkerKeys {
		if data.Has(key) {
			return nil, p.legacyError()
		}
	}

	for _, name := range data.Keys() {
		raw, _ := data.Get(name)
		items, ok := raw.(*Mapping)
		if !ok {
			return nil, p.listError(
				"%w, entry %q must be a mapping, got %s",
				regmap.ErrInvalidType, name, typeName(raw),
			)
		}

		itemType := "register"
		if typeRaw, ok := items.Get("type"); ok {
			typeString, ok := typeRaw.(string)
			if !ok {
				return nil, p.listError(
					`%w, "type" of entry %q must be a string, got %s`,
					regmap.ErrInvalidType, name, typeName(typeRaw),
				)
			}
			itemType = typeString
		}

		var err error
		switch itemType {
		case "constant":
			err = p.parseConstant(name, items)
		case "register":
			err = p.parsePlainRegister(name, items)
		case "register_array":
			err = p.parseRegisterArray(name, items)
		default:
			return nil, p.listError(
				"%w, entry %q has unknown type %q, valid types are: %s",
				regmap.ErrInvalidValue, name, itemType,
				strings.Join(registerItemTypes, ", "),
			)
		}
		if err != nil {
			return nil, err
		}
	}

	return p.list, nil
}

var recognizedConstantKeys = keySet("type", "value", "description", "data_type")

func (p *Parser) parseConstant(name string, items *Mapping) error {
	if !items.Has("value") {
		return p.nodeError("constant", name, "%w %q", ErrMissingProperty, "value")
	}
	if err := checkRecognized(items, recognizedConstantKeys); err != nil {
		return p.nodeWrap("constant", name, err)
	}

	description, err := optionalString(items, "description", "")
	if err != nil {
		return p.nodeWrap("constant", name, err)
	}
	dataType, err := optionalString(items, "data_type", "")
	if err != nil {
		return p.nodeWrap("constant", name, err)
	}

	value, _ := items.Get("value")

	if items.Has("data_type") {
		stringValue, ok := value.(string)
		if !ok {
			return p.nodeError("constant", name,
				`%w, may not set "data_type" for non-string value, got %s`,
				regmap.ErrInvalidType, typeName(value),
			)
		}
		if dataType != "unsigned" {
			return p.nodeError("constant", name,
				"%w, invalid data type %q", regmap.ErrInvalidValue, dataType)
		}
		if _, err := p.list.AddBitVectorConstant(name, stringValue, description); err != nil {
			return p.nodeWrap("constant", name, err)
		}
		return nil
	}

	switch typed := value.(type) {
	case bool:
		_, err = p.list.AddBooleanConstant(name, typed, description)
	case int64:
		_, err = p.list.AddIntegerConstant(name, typed, description)
	case float64:
		_, err = p.list.AddFloatConstant(name, typed, description)
	case string:
		_, err = p.list.AddStringConstant(name, typed, description)
	default:
		return p.nodeError("constant", name,
			`%w, "value" must be a scalar, got %s`, regmap.ErrInvalidType, typeName(value))
	}
	if err != nil {
		return p.nodeWrap("constant", name, err)
	}
	return nil
}

// registerDefaultKeys are the keys of a register node that are attributes of
// the register itself. Every other key is a field name.
var registerDefaultKeys = keySet("type", "mode", "description")

func (p *Parser) parsePlainRegister(name string, items *Mapping) error {
	description, err := optionalString(items, "description", "")
	if err != nil {
		return p.nodeWrap("register", name, err)
	}

	var register *regmap.Register
	if _, isDefault := p.defaultRegisterNames[name]; isDefault {
		// A default register can be "updated": the user can set a custom
		// description and add fields. The mode is fixed by whoever supplied
		// the register.
		if items.Has("mode") {
			return p.nodeError("register", name,
				`%w, can not change "mode" of default register %q`,
				regmap.ErrInvalidValue, name)
		}
		register, err = p.list.GetRegister(name)
		if err != nil {
			return p.nodeWrap("register", name, err)
		}
		register.SetDescription(description)
	} else {
		mode, err := p.requireMode(items)
		if err != nil {
			return p.nodeWrap("register", name, err)
		}
		register, err = p.list.AppendRegister(name, mode, description)
		if err != nil {
			return p.nodeWrap("register", name, err)
		}
	}

	return p.parseRegisterFields(register, name, items)
}

func (p *Parser) requireMode(items *Mapping) (*regmap.RegisterMode, error) {
	raw, ok := items.Get("mode")
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrMissingProperty, "mode")
	}
	shorthand, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf(
			`%w, "mode" must be a string, got %s`, regmap.ErrInvalidType, typeName(raw))
	}
	mode, err := regmap.ModeByShorthand(shorthand)
	if err != nil {
		return nil, fmt.Errorf(
			"%w, mode %q is invalid, valid modes are: %s",
			regmap.ErrInvalidValue, shorthand, strings.Join(regmap.ModeShorthands(), ", "))
	}
	return mode, nil
}

func (p *Parser) parseRegisterFields(register *regmap.Register, registerName string, items *Mapping) error {
	for _, key := range items.Keys() {
		if registerDefaultKeys[key] {
			continue
		}
		raw, _ := items.Get(key)
		if err := p.parseField(register, registerName, key, raw); err != nil {
			return err
		}
	}
	return nil
}

var registerArrayDefaultKeys = keySet("type", "array_length", "description")

func (p *Parser) parseRegisterArray(name string, items *Mapping) error {
	if !items.Has("array_length") {
		return p.nodeError("register array", name, "%w %q", ErrMissingProperty, "array_length")
	}
	length, err := requireInt(items, "array_length")
	if err != nil {
		return p.nodeWrap("register array", name, err)
	}
	description, err := optionalString(items, "description", "")
	if err != nil {
		return p.nodeWrap("register array", name, err)
	}

	array, err := p.list.AppendRegisterArray(name, int(length), description)
	if err != nil {
		return p.nodeWrap("register array", name, err)
	}

	for _, key := range items.Keys() {
		if registerArrayDefaultKeys[key] {
			continue
		}
		raw, _ := items.Get(key)
		registerItems, ok := raw.(*Mapping)
		if !ok {
			return p.nodeError("register array", name,
				"%w, register %q must be a mapping, got %s",
				regmap.ErrInvalidType, key, typeName(raw))
		}
		if err := p.parseArrayRegister(array, name, key, registerItems); err != nil {
			return err
		}
	}

	if len(array.Registers()) == 0 {
		return p.nodeError("register array", name,
			"%w, must contain at least one register", regmap.ErrInvalidValue)
	}
	return nil
}

// parseArrayRegister parses a register node nested in a register array.
// There is no default-register overlay inside arrays: the mode is always
// required.
func (p *Parser) parseArrayRegister(
	array *regmap.RegisterArray,
	arrayName string,
	name string,
	items *Mapping,
) error {
	wrap := func(err error) error {
		return fmt.Errorf("Error while parsing register %q in register array %q in %s: %w",
			name, arrayName, p.sourceReference, err)
	}

	if typeRaw, ok := items.Get("type"); ok {
		if typeString, ok := typeRaw.(string); !ok || typeString != "register" {
			return wrap(fmt.Errorf(
				`%w, "type" of a register within a register array must be "register"`,
				regmap.ErrInvalidValue))
		}
	}

	description, err := optionalString(items, "description", "")
	if err != nil {
		return wrap(err)
	}
	mode, err := p.requireMode(items)
	if err != nil {
		return wrap(err)
	}

	register, err := array.AppendRegister(name, mode, description)
	if err != nil {
		return wrap(err)
	}
	return p.parseRegisterFields(register, name, items)
}

// Error helpers. The message shape
//
//	Error while parsing <kind> "<name>" in <source>: <problem>
//
// is part of the observable contract; tests and downstream tooling match
// against it.

func (p *Parser) listError(format string, args ...any) error {
	return p.nodeError("register list", p.list.Name(), format, args...)
}

func (p *Parser) nodeError(kind string, name string, format string, args ...any) error {
	return p.nodeWrap(kind, name, fmt.Errorf(format, args...))
}

func (p *Parser) nodeWrap(kind string, name string, err error) error {
	return fmt.Errorf("Error while parsing %s %q in %s: %w", kind, name, p.sourceReference, err)
}

func keySet(keys ...string) map[string]bool {
	set := make(map[string]bool, len(keys))
	for _, key := range keys {
		set[key] = true
	}
	return set
}

// checkRecognized fails on the first key outside the recognized set.
func checkRecognized(items *Mapping, recognized map[string]bool) error {
	for _, key := range items.Keys() {
		if !recognized[key] {
			return fmt.Errorf("%w %q", ErrUnknownProperty, key)
		}
	}
	return nil
}

func typeName(value any) string {
	switch value.(type) {
	case string:
		return "a string"
	case int64:
		return "an integer"
	case float64:
		return "a float"
	case bool:
		return "a boolean"
	case *Mapping:
		return "a mapping"
	case nil:
		return "nothing"
	default:
		return fmt.Sprintf("%T", value)
	}
}

func optionalString(items *Mapping, key string, fallback string) (string, error) {
	raw, ok := items.Get(key)
	if !ok {
		return fallback, nil
	}
	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf(
			"%w, %q must be a string, got %s", regmap.ErrInvalidType, key, typeName(raw))
	}
	return value, nil
}

func requireInt(items *Mapping, key string) (int64, error) {
	raw, ok := items.Get(key)
	if !ok {
		return 0, fmt.Errorf("%w %q", ErrMissingProperty, key)
	}
	value, ok := raw.(int64)
	if !ok {
		return 0, fmt.Errorf(
			"%w, %q must be an integer, got %s", regmap.ErrInvalidType, key, typeName(raw))
	}
	return value, nil
}

func optionalInt(items *Mapping, key string, fallback int64) (int64, error) {
	if !items.Has(key) {
		return fallback, nil
	}
	return requireInt(items, key)
}
