package regdata

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/OpenTraceLab/OpenTraceRegs/pkg/regmap"
)

// LoadTOML decodes a TOML document into an ordered Mapping.
//
// The toml package decodes into unordered Go maps, so declaration order is
// reconstructed from the decode metadata, which records every defined key in
// document order. Keys of inline tables are not always present in the
// metadata; a completion pass over the raw maps picks those up afterwards,
// so their relative order within the table is not guaranteed. Register data
// conventionally uses standard [table] syntax, where order is exact.
func LoadTOML(document []byte) (*Mapping, error) {
	var raw map[string]any
	metadata, err := toml.Decode(string(document), &raw)
	if err != nil {
		return nil, fmt.Errorf("regdata: toml: %w", err)
	}

	root := NewMapping()
	for _, key := range metadata.Keys() {
		if err := insertTOMLKey(root, raw, key); err != nil {
			return nil, err
		}
	}
	if err := completeTOMLMapping(root, raw); err != nil {
		return nil, err
	}
	return root, nil
}

// insertTOMLKey walks one metadata key path from the root, creating
// intermediate mappings as needed and inserting the leaf value.
func insertTOMLKey(root *Mapping, raw map[string]any, key toml.Key) error {
	current := root
	level := raw
	for position, part := range key {
		value, ok := level[part]
		if !ok {
			// Metadata can mention keys of array tables and similar shapes
			// that were rejected below; nothing to insert.
			return nil
		}

		subLevel, isTable := value.(map[string]any)
		if isTable {
			existing, ok := current.Get(part)
			if !ok {
				sub := NewMapping()
				if err := current.Add(part, sub); err != nil {
					return err
				}
				current = sub
			} else {
				sub, ok := existing.(*Mapping)
				if !ok {
					return fmt.Errorf(
						"regdata: toml key %q: %w, redefined as a table",
						strings.Join(key[:position+1], "."), regmap.ErrInvalidType)
				}
				current = sub
			}
			level = subLevel
			continue
		}

		converted, err := convertTOMLValue(strings.Join(key, "."), value)
		if err != nil {
			return err
		}
		if !current.Has(part) {
			if err := current.Add(part, converted); err != nil {
				return err
			}
		}
		return nil
	}
	return nil
}

// completeTOMLMapping inserts any raw keys the metadata pass missed.
func completeTOMLMapping(m *Mapping, raw map[string]any) error {
	for key, value := range raw {
		if subRaw, isTable := value.(map[string]any); isTable {
			existing, ok := m.Get(key)
			if !ok {
				sub := NewMapping()
				if err := m.Add(key, sub); err != nil {
					return err
				}
				existing = sub
			}
			sub, ok := existing.(*Mapping)
			if !ok {
				return fmt.Errorf(
					"regdata: toml key %q: %w, redefined as a table", key, regmap.ErrInvalidType)
			}
			if err := completeTOMLMapping(sub, subRaw); err != nil {
				return err
			}
			continue
		}

		if m.Has(key) {
			continue
		}
		converted, err := convertTOMLValue(key, value)
		if err != nil {
			return err
		}
		if err := m.Add(key, converted); err != nil {
			return err
		}
	}
	return nil
}

func convertTOMLValue(key string, value any) (any, error) {
	switch typed := value.(type) {
	case string, int64, float64, bool:
		return typed, nil
	case []any:
		return nil, fmt.Errorf(
			"regdata: toml key %q: %w, arrays are not supported in register data",
			key, regmap.ErrInvalidType)
	case time.Time, toml.Primitive:
		return nil, fmt.Errorf(
			"regdata: toml key %q: %w, unsupported value type %T",
			key, regmap.ErrInvalidType, value)
	default:
		return nil, fmt.Errorf(
			"regdata: toml key %q: %w, unsupported value type %T",
			key, regmap.ErrInvalidType, value)
	}
}

// EncodeTOML renders a Mapping as a TOML document, preserving key order.
// Scalar keys of a table are written before its sub-tables, as TOML
// requires; sub-table order is declaration order.
func EncodeTOML(m *Mapping) ([]byte, error) {
	var builder strings.Builder
	if err := encodeTOMLTable(&builder, m, nil); err != nil {
		return nil, err
	}
	return []byte(builder.String()), nil
}

var bareTOMLKey = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func encodeTOMLTable(builder *strings.Builder, m *Mapping, path []string) error {
	for _, key := range m.Keys() {
		value, _ := m.Get(key)
		if _, isTable := value.(*Mapping); isTable {
			continue
		}
		literal, err := tomlScalar(value)
		if err != nil {
			return fmt.Errorf("regdata: toml key %q: %w", key, err)
		}
		fmt.Fprintf(builder, "%s = %s\n", tomlKey(key), literal)
	}

	for _, key := range m.Keys() {
		value, _ := m.Get(key)
		sub, isTable := value.(*Mapping)
		if !isTable {
			continue
		}
		subPath := append(append([]string{}, path...), key)
		if builder.Len() > 0 {
			builder.WriteString("\n")
		}
		header := make([]string, len(subPath))
		for i, part := range subPath {
			header[i] = tomlKey(part)
		}
		fmt.Fprintf(builder, "[%s]\n", strings.Join(header, "."))
		if err := encodeTOMLTable(builder, sub, subPath); err != nil {
			return err
		}
	}
	return nil
}

func tomlKey(key string) string {
	if bareTOMLKey.MatchString(key) {
		return key
	}
	return strconv.Quote(key)
}

func tomlScalar(value any) (string, error) {
	switch typed := value.(type) {
	case string:
		return strconv.Quote(typed), nil
	case int64:
		return strconv.FormatInt(typed, 10), nil
	case bool:
		return strconv.FormatBool(typed), nil
	case float64:
		return floatLiteral(typed), nil
	default:
		return "", fmt.Errorf("%w, unsupported value type %T", regmap.ErrInvalidType, value)
	}
}

// floatLiteral formats a float so it round-trips as a float: a bare "256"
// would re-parse as an integer.
func floatLiteral(value float64) string {
	literal := strconv.FormatFloat(value, 'g', -1, 64)
	if !strings.ContainsAny(literal, ".eE") {
		literal += ".0"
	}
	return literal
}
