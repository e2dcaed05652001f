package regdata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/OpenTraceRegs/pkg/regmap"
)

// LoadJSON decodes a JSON document into an ordered Mapping. The standard
// decoder unmarshals objects into unordered maps, so the token stream is
// walked directly instead; object member order is exactly document order.
// Numbers without a fraction or exponent become int64, everything else
// float64.
func LoadJSON(document []byte) (*Mapping, error) {
	decoder := json.NewDecoder(bytes.NewReader(document))
	decoder.UseNumber()

	token, err := decoder.Token()
	if err != nil {
		return nil, fmt.Errorf("regdata: json: %w", err)
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf(
			"regdata: json: %w, top level must be an object", regmap.ErrInvalidType)
	}

	m, err := jsonObject(decoder)
	if err != nil {
		return nil, err
	}
	if _, err := decoder.Token(); err == nil {
		return nil, fmt.Errorf(
			"regdata: json: %w, trailing data after top-level object", regmap.ErrInvalidValue)
	}
	return m, nil
}

// jsonObject consumes members up to and including the closing brace. The
// opening brace has already been consumed.
func jsonObject(decoder *json.Decoder) (*Mapping, error) {
	m := NewMapping()
	for {
		token, err := decoder.Token()
		if err != nil {
			return nil, fmt.Errorf("regdata: json: %w", err)
		}
		if delim, ok := token.(json.Delim); ok && delim == '}' {
			return m, nil
		}

		key, ok := token.(string)
		if !ok {
			return nil, fmt.Errorf(
				"regdata: json: %w, object key must be a string", regmap.ErrInvalidType)
		}
		value, err := jsonValue(decoder, key)
		if err != nil {
			return nil, err
		}
		if err := m.Add(key, value); err != nil {
			return nil, err
		}
	}
}

func jsonValue(decoder *json.Decoder, key string) (any, error) {
	token, err := decoder.Token()
	if err != nil {
		return nil, fmt.Errorf("regdata: json: %w", err)
	}

	switch typed := token.(type) {
	case json.Delim:
		switch typed {
		case '{':
			return jsonObject(decoder)
		case '[':
			return nil, fmt.Errorf(
				"regdata: json key %q: %w, arrays are not supported in register data",
				key, regmap.ErrInvalidType)
		}
		return nil, fmt.Errorf(
			"regdata: json key %q: %w, unexpected delimiter %q",
			key, regmap.ErrInvalidValue, typed.String())
	case string:
		return typed, nil
	case bool:
		return typed, nil
	case json.Number:
		return jsonNumber(key, typed)
	case nil:
		return nil, fmt.Errorf(
			"regdata: json key %q: %w, null values are not supported in register data",
			key, regmap.ErrInvalidType)
	default:
		return nil, fmt.Errorf(
			"regdata: json key %q: %w, unsupported value type %T",
			key, regmap.ErrInvalidType, token)
	}
}

func jsonNumber(key string, number json.Number) (any, error) {
	literal := number.String()
	if !strings.ContainsAny(literal, ".eE") {
		value, err := number.Int64()
		if err != nil {
			return nil, fmt.Errorf("regdata: json key %q: %w", key, err)
		}
		return value, nil
	}
	value, err := number.Float64()
	if err != nil {
		return nil, fmt.Errorf("regdata: json key %q: %w", key, err)
	}
	return value, nil
}

// EncodeJSON renders a Mapping as an indented JSON document, preserving key
// order.
func EncodeJSON(m *Mapping) ([]byte, error) {
	var builder strings.Builder
	if err := encodeJSONObject(&builder, m, 0); err != nil {
		return nil, err
	}
	builder.WriteString("\n")
	return []byte(builder.String()), nil
}

func encodeJSONObject(builder *strings.Builder, m *Mapping, depth int) error {
	if m.Len() == 0 {
		builder.WriteString("{}")
		return nil
	}

	indent := strings.Repeat("  ", depth+1)
	builder.WriteString("{\n")
	for position, key := range m.Keys() {
		value, _ := m.Get(key)
		encodedKey, err := json.Marshal(key)
		if err != nil {
			return fmt.Errorf("regdata: json key %q: %w", key, err)
		}
		builder.WriteString(indent)
		builder.Write(encodedKey)
		builder.WriteString(": ")
		if err := encodeJSONValue(builder, key, value, depth+1); err != nil {
			return err
		}
		if position < m.Len()-1 {
			builder.WriteString(",")
		}
		builder.WriteString("\n")
	}
	builder.WriteString(strings.Repeat("  ", depth))
	builder.WriteString("}")
	return nil
}

func encodeJSONValue(builder *strings.Builder, key string, value any, depth int) error {
	switch typed := value.(type) {
	case *Mapping:
		return encodeJSONObject(builder, typed, depth)
	case string:
		encoded, err := json.Marshal(typed)
		if err != nil {
			return fmt.Errorf("regdata: json key %q: %w", key, err)
		}
		builder.Write(encoded)
		return nil
	case int64:
		builder.WriteString(strconv.FormatInt(typed, 10))
		return nil
	case float64:
		builder.WriteString(strconv.FormatFloat(typed, 'g', -1, 64))
		return nil
	case bool:
		builder.WriteString(strconv.FormatBool(typed))
		return nil
	default:
		return fmt.Errorf(
			"regdata: json key %q: %w, unsupported value type %T",
			key, regmap.ErrInvalidType, value)
	}
}
