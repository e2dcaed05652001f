package regdata

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/OpenTraceRegs/pkg/regmap"
)

var numericalInterpretations = []string{
	"unsigned", "signed", "unsigned_fixed_point", "signed_fixed_point",
}

// parseField parses one field node and appends the field to the register.
// The node key is the field name; the node must be a mapping with a "type"
// key selecting one of the four field kinds.
func (p *Parser) parseField(register *regmap.Register, registerName string, name string, raw any) error {
	wrap := func(err error) error {
		return fmt.Errorf("Error while parsing field %q in register %q in %s: %w",
			name, registerName, p.sourceReference, err)
	}

	items, ok := raw.(*Mapping)
	if !ok {
		return wrap(fmt.Errorf(
			"%w, field must be a mapping, got %s", regmap.ErrInvalidType, typeName(raw)))
	}

	typeRaw, ok := items.Get("type")
	if !ok {
		return wrap(fmt.Errorf("%w %q", ErrMissingProperty, "type"))
	}
	typeString, ok := typeRaw.(string)
	if !ok {
		return wrap(fmt.Errorf(
			`%w, "type" must be a string, got %s`, regmap.ErrInvalidType, typeName(typeRaw)))
	}

	var err error
	switch typeString {
	case "bit":
		err = parseBitField(register, name, items)
	case "bit_vector":
		err = parseBitVectorField(register, name, items)
	case "enumeration":
		err = parseEnumerationField(register, name, items)
	case "integer":
		err = parseIntegerField(register, name, items)
	default:
		err = fmt.Errorf("%w, unknown field type %q, valid types are: %s",
			regmap.ErrInvalidValue, typeString, strings.Join(fieldItemTypes, ", "))
	}
	if err != nil {
		return wrap(err)
	}
	return nil
}

var recognizedBitKeys = keySet("type", "description", "default_value")

func parseBitField(register *regmap.Register, name string, items *Mapping) error {
	if err := checkRecognized(items, recognizedBitKeys); err != nil {
		return err
	}
	description, err := optionalString(items, "description", "")
	if err != nil {
		return err
	}
	defaultValue, err := optionalString(items, "default_value", "0")
	if err != nil {
		return err
	}
	_, err = register.AppendBit(name, description, defaultValue)
	return err
}

var recognizedBitVectorKeys = keySet(
	"type", "description", "width", "default_value",
	"numerical_interpretation", "min_bit_index",
)

func parseBitVectorField(register *regmap.Register, name string, items *Mapping) error {
	if !items.Has("width") {
		return fmt.Errorf("%w %q", ErrMissingProperty, "width")
	}
	if err := checkRecognized(items, recognizedBitVectorKeys); err != nil {
		return err
	}
	width, err := requireInt(items, "width")
	if err != nil {
		return err
	}
	description, err := optionalString(items, "description", "")
	if err != nil {
		return err
	}

	zeroDefault := ""
	if width >= 1 && width <= 32 {
		// Out-of-range widths are rejected when the field is constructed,
		// before the default is inspected.
		zeroDefault = strings.Repeat("0", int(width))
	}
	defaultValue, err := optionalString(items, "default_value", zeroDefault)
	if err != nil {
		return err
	}

	interpretation, err := parseNumericalInterpretation(items, int(width))
	if err != nil {
		return err
	}

	_, err = register.AppendBitVector(name, description, int(width), defaultValue, interpretation)
	return err
}

// parseNumericalInterpretation resolves the optional numerical meaning of a
// bit vector. The default is an unsigned integer. For the fixed-point kinds,
// min_bit_index places the least significant bit relative to the binary
// point: negative values give fractional bits.
func parseNumericalInterpretation(items *Mapping, width int) (regmap.NumericalInterpretation, error) {
	kind, err := optionalString(items, "numerical_interpretation", "unsigned")
	if err != nil {
		return nil, err
	}
	minBitIndex, err := optionalInt(items, "min_bit_index", 0)
	if err != nil {
		return nil, err
	}

	switch kind {
	case "unsigned", "signed":
		if minBitIndex != 0 {
			return nil, fmt.Errorf(
				`%w, may not set "min_bit_index" for interpretation %q`,
				regmap.ErrInvalidValue, kind)
		}
		if kind == "signed" {
			return regmap.NewSigned(width), nil
		}
		// nil lets the field construct its own unsigned interpretation once
		// the width is validated.
		return nil, nil
	case "unsigned_fixed_point":
		return regmap.NewUnsignedFixedPoint(width-1+int(minBitIndex), int(minBitIndex))
	case "signed_fixed_point":
		return regmap.NewSignedFixedPoint(width-1+int(minBitIndex), int(minBitIndex))
	default:
		return nil, fmt.Errorf(
			"%w, unknown numerical interpretation %q, valid interpretations are: %s",
			regmap.ErrInvalidValue, kind, strings.Join(numericalInterpretations, ", "))
	}
}

var recognizedEnumerationKeys = keySet("type", "description", "default_value", "element")

func parseEnumerationField(register *regmap.Register, name string, items *Mapping) error {
	if !items.Has("element") {
		return fmt.Errorf("%w %q", ErrMissingProperty, "element")
	}
	if err := checkRecognized(items, recognizedEnumerationKeys); err != nil {
		return err
	}
	description, err := optionalString(items, "description", "")
	if err != nil {
		return err
	}
	defaultValue, err := optionalString(items, "default_value", "")
	if err != nil {
		return err
	}

	elementsRaw, _ := items.Get("element")
	elementItems, ok := elementsRaw.(*Mapping)
	if !ok {
		return fmt.Errorf(
			`%w, "element" must be a mapping, got %s`, regmap.ErrInvalidType, typeName(elementsRaw))
	}

	elements := make([]regmap.EnumerationElementSpec, 0, elementItems.Len())
	for _, elementName := range elementItems.Keys() {
		raw, _ := elementItems.Get(elementName)
		elementDescription, ok := raw.(string)
		if !ok {
			return fmt.Errorf(
				"%w, description of element %q must be a string, got %s",
				regmap.ErrInvalidType, elementName, typeName(raw))
		}
		elements = append(elements, regmap.EnumerationElementSpec{
			Name:        elementName,
			Description: elementDescription,
		})
	}

	_, err = register.AppendEnumeration(name, description, elements, defaultValue)
	return err
}

var recognizedIntegerKeys = keySet(
	"type", "description", "min_value", "max_value", "default_value",
)

func parseIntegerField(register *regmap.Register, name string, items *Mapping) error {
	if !items.Has("max_value") {
		return fmt.Errorf("%w %q", ErrMissingProperty, "max_value")
	}
	if err := checkRecognized(items, recognizedIntegerKeys); err != nil {
		return err
	}
	description, err := optionalString(items, "description", "")
	if err != nil {
		return err
	}
	maxValue, err := requireInt(items, "max_value")
	if err != nil {
		return err
	}
	minValue, err := optionalInt(items, "min_value", 0)
	if err != nil {
		return err
	}
	defaultValue, err := optionalInt(items, "default_value", minValue)
	if err != nil {
		return err
	}

	_, err = register.AppendInteger(name, description, minValue, maxValue, defaultValue)
	return err
}
