package regmap

import (
	"fmt"
	"math/bits"
)

// EnumerationElement is a single named element within an enumeration field.
// Elements are immutable: renaming or renumbering one after construction
// could collide with siblings or invalidate the field default.
type EnumerationElement struct {
	name        string
	value       int
	description string
}

func (e *EnumerationElement) Name() string        { return e.name }
func (e *EnumerationElement) Value() int          { return e.value }
func (e *EnumerationElement) Description() string { return e.description }

// EnumerationElementSpec names one element when constructing an enumeration
// field. Element values are not specified: they are assigned increasing
// integers from zero in declaration order.
type EnumerationElementSpec struct {
	Name        string
	Description string
}

// Enumeration is a field whose raw bits select one of a fixed set of named
// elements.
type Enumeration struct {
	name         string
	baseIndex    int
	description  string
	elements     []*EnumerationElement
	defaultValue *EnumerationElement
}

// NewEnumeration creates an enumeration field. There must be at least one
// element. An empty defaultValue selects the first declared element.
func NewEnumeration(
	name string,
	baseIndex int,
	description string,
	elements []EnumerationElementSpec,
	defaultValue string,
) (*Enumeration, error) {
	if len(elements) == 0 {
		return nil, fmt.Errorf(
			"regmap: enumeration %q: %w, must have at least one element",
			name, ErrInvalidValue,
		)
	}

	field := &Enumeration{
		name:        name,
		baseIndex:   baseIndex,
		description: description,
	}
	for index, spec := range elements {
		field.elements = append(field.elements, &EnumerationElement{
			name:        spec.Name,
			value:       index,
			description: spec.Description,
		})
	}

	if defaultValue == "" {
		field.defaultValue = field.elements[0]
	} else {
		element, err := field.ElementByName(defaultValue)
		if err != nil {
			return nil, fmt.Errorf(
				`regmap: enumeration %q: %w, "default_value" element %q does not exist`,
				name, ErrInvalidValue, defaultValue,
			)
		}
		field.defaultValue = element
	}

	return field, nil
}

func (e *Enumeration) Name() string        { return e.name }
func (e *Enumeration) Description() string { return e.description }
func (e *Enumeration) BaseIndex() int      { return e.baseIndex }

// Width is the number of bits needed to encode the highest element value.
// A one-element enumeration is still one bit wide.
func (e *Enumeration) Width() int {
	width := bits.Len(uint(len(e.elements) - 1))
	if width == 0 {
		width = 1
	}
	return width
}

func (e *Enumeration) Range() string { return rangeString(e.baseIndex, e.Width()) }

// Elements returns the elements in declaration order.
func (e *Enumeration) Elements() []*EnumerationElement { return e.elements }

// ElementByName looks up an element by name.
func (e *Enumeration) ElementByName(name string) (*EnumerationElement, error) {
	for _, element := range e.elements {
		if element.name == name {
			return element, nil
		}
	}
	return nil, fmt.Errorf(
		"regmap: enumeration %q: element name %q: %w", e.name, name, ErrNotFound,
	)
}

// ElementByValue looks up an element by its integer value.
func (e *Enumeration) ElementByValue(value int) (*EnumerationElement, error) {
	for _, element := range e.elements {
		if element.value == value {
			return element, nil
		}
	}
	return nil, fmt.Errorf(
		"regmap: enumeration %q: element value %d: %w", e.name, value, ErrNotFound,
	)
}

// DefaultValue returns the default element.
func (e *Enumeration) DefaultValue() *EnumerationElement { return e.defaultValue }

func (e *Enumeration) DefaultValueStr() string { return e.defaultValue.name }

func (e *Enumeration) DefaultValueUint() uint32 { return uint32(e.defaultValue.value) }

// Decode extracts this field from a raw register value and looks up the
// element with the decoded value. Fails if the raw bits do not correspond to
// any element.
func (e *Enumeration) Decode(registerValue uint32) (*EnumerationElement, error) {
	raw := extractRaw(registerValue, e.baseIndex, e.Width())
	return e.ElementByValue(int(raw))
}

func (e *Enumeration) clone() Field {
	copied := *e
	copied.elements = make([]*EnumerationElement, len(e.elements))
	for index, element := range e.elements {
		elementCopy := *element
		copied.elements[index] = &elementCopy
		if element == e.defaultValue {
			copied.defaultValue = &elementCopy
		}
	}
	return &copied
}
