package regdata

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceRegs/pkg/regmap"
)

// legacyMarkerKeys are the top-level group keys of the old nested schema.
// Their presence identifies a legacy document: in the current schema every
// top-level key is an item name, and these three names would be rejected as
// items anyway (no "mode", no "value").
var legacyMarkerKeys = []string{"constant", "register", "register_array"}

func (p *Parser) legacyError() error {
	return fmt.Errorf(
		"Error while parsing register list %q in %s: %w, "+
			`run "otr convert" to write %s with the data converted to the current schema`,
		p.list.Name(), p.sourceReference, ErrLegacyFormat,
		RemediationPath(p.sourceReference),
	)
}

// ConvertLegacy rewrites register data from the old nested schema, where
// items are grouped under top-level "register", "register_array" and
// "constant" keys, to the current flat schema where every top-level key is
// an item name and the item kind is a "type" key inside the node.
//
// The transform is purely structural. Values are copied verbatim, including
// keys the current parser would reject, so conversion never hides a
// validation error; it only changes where in the tree it is reported.
func ConvertLegacy(data *Mapping) (*Mapping, error) {
	out := NewMapping()

	if raw, ok := data.Get("register"); ok {
		group, err := legacyGroup("register", raw)
		if err != nil {
			return nil, err
		}
		for _, name := range group.Keys() {
			items, err := legacyNode("register", name, group)
			if err != nil {
				return nil, err
			}
			converted, err := convertLegacyRegister(items)
			if err != nil {
				return nil, err
			}
			if err := out.Add(name, converted); err != nil {
				return nil, err
			}
		}
	}

	if raw, ok := data.Get("register_array"); ok {
		group, err := legacyGroup("register_array", raw)
		if err != nil {
			return nil, err
		}
		for _, name := range group.Keys() {
			items, err := legacyNode("register_array", name, group)
			if err != nil {
				return nil, err
			}
			converted, err := convertLegacyRegisterArray(items)
			if err != nil {
				return nil, err
			}
			if err := out.Add(name, converted); err != nil {
				return nil, err
			}
		}
	}

	if raw, ok := data.Get("constant"); ok {
		group, err := legacyGroup("constant", raw)
		if err != nil {
			return nil, err
		}
		for _, name := range group.Keys() {
			items, err := legacyNode("constant", name, group)
			if err != nil {
				return nil, err
			}
			converted := NewMapping()
			converted.Set("type", "constant")
			for _, key := range items.Keys() {
				value, _ := items.Get(key)
				converted.Set(key, value)
			}
			if err := out.Add(name, converted); err != nil {
				return nil, err
			}
		}
	}

	// Anything outside the three legacy groups was already top-level item
	// data; pass it through unchanged.
	for _, key := range data.Keys() {
		switch key {
		case "register", "register_array", "constant":
			continue
		}
		value, _ := data.Get(key)
		if err := out.Add(key, value); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// legacyFieldGroupKeys are the per-kind field group keys of a legacy
// register node. Fields lived grouped by kind; the current schema inlines
// them into the register node with a "type" key.
var legacyFieldGroupKeys = keySet("bit", "bit_vector", "enumeration", "integer")

// convertLegacyRegister flattens the field groups of one legacy register
// node. Fields end up grouped by kind in the order the kinds first appear,
// which the parser accepts: field bit indices follow declaration order, and
// the legacy decoders produced this very grouping.
func convertLegacyRegister(items *Mapping) (*Mapping, error) {
	out := NewMapping()
	for _, key := range items.Keys() {
		value, _ := items.Get(key)

		if !legacyFieldGroupKeys[key] {
			out.Set(key, value)
			continue
		}

		group, err := legacyGroup(key, value)
		if err != nil {
			return nil, err
		}
		for _, fieldName := range group.Keys() {
			fieldItems, err := legacyNode(key, fieldName, group)
			if err != nil {
				return nil, err
			}
			field := NewMapping()
			field.Set("type", key)
			for _, fieldKey := range fieldItems.Keys() {
				fieldValue, _ := fieldItems.Get(fieldKey)
				field.Set(fieldKey, fieldValue)
			}
			if err := out.Add(fieldName, field); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func convertLegacyRegisterArray(items *Mapping) (*Mapping, error) {
	out := NewMapping()
	out.Set("type", "register_array")

	for _, key := range items.Keys() {
		value, _ := items.Get(key)
		if key != "register" {
			out.Set(key, value)
			continue
		}

		group, err := legacyGroup("register", value)
		if err != nil {
			return nil, err
		}
		for _, registerName := range group.Keys() {
			registerItems, err := legacyNode("register", registerName, group)
			if err != nil {
				return nil, err
			}
			// Registers nested in an array carry no "type" tag; position
			// makes their kind unambiguous.
			converted, err := convertLegacyRegister(registerItems)
			if err != nil {
				return nil, err
			}
			if err := out.Add(registerName, converted); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func legacyGroup(key string, raw any) (*Mapping, error) {
	group, ok := raw.(*Mapping)
	if !ok {
		return nil, fmt.Errorf(
			"regdata: legacy group %q: %w, must be a mapping, got %s",
			key, regmap.ErrInvalidType, typeName(raw))
	}
	return group, nil
}

func legacyNode(kind string, name string, group *Mapping) (*Mapping, error) {
	raw, _ := group.Get(name)
	node, ok := raw.(*Mapping)
	if !ok {
		return nil, fmt.Errorf(
			"regdata: legacy %s %q: %w, must be a mapping, got %s",
			kind, name, regmap.ErrInvalidType, typeName(raw))
	}
	return node, nil
}
