package regdata

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/OpenTraceLab/OpenTraceRegs/pkg/regmap"
)

// LoadYAML decodes a YAML document into an ordered Mapping. The document is
// decoded through the yaml node tree, which preserves declaration order,
// unlike decoding into Go maps. Aliases are followed; merge keys are not
// expanded.
func LoadYAML(document []byte) (*Mapping, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(document, &root); err != nil {
		return nil, fmt.Errorf("regdata: yaml: %w", err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return NewMapping(), nil
	}
	return mappingFromYAMLNode(root.Content[0])
}

func mappingFromYAMLNode(node *yaml.Node) (*Mapping, error) {
	node = resolveYAMLAlias(node)
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf(
			"regdata: yaml line %d: %w, expected a mapping",
			node.Line, regmap.ErrInvalidType)
	}

	m := NewMapping()
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		value, err := valueFromYAMLNode(node.Content[i+1])
		if err != nil {
			return nil, err
		}
		if err := m.Add(keyNode.Value, value); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func valueFromYAMLNode(node *yaml.Node) (any, error) {
	node = resolveYAMLAlias(node)
	switch node.Kind {
	case yaml.MappingNode:
		return mappingFromYAMLNode(node)
	case yaml.ScalarNode:
		return scalarFromYAMLNode(node)
	case yaml.SequenceNode:
		return nil, fmt.Errorf(
			"regdata: yaml line %d: %w, sequences are not supported in register data",
			node.Line, regmap.ErrInvalidType)
	default:
		return nil, fmt.Errorf(
			"regdata: yaml line %d: %w, unsupported node kind",
			node.Line, regmap.ErrInvalidType)
	}
}

func scalarFromYAMLNode(node *yaml.Node) (any, error) {
	switch node.Tag {
	case "!!str":
		return node.Value, nil
	case "!!int":
		var value int64
		if err := node.Decode(&value); err != nil {
			return nil, fmt.Errorf("regdata: yaml line %d: %w", node.Line, err)
		}
		return value, nil
	case "!!float":
		var value float64
		if err := node.Decode(&value); err != nil {
			return nil, fmt.Errorf("regdata: yaml line %d: %w", node.Line, err)
		}
		return value, nil
	case "!!bool":
		var value bool
		if err := node.Decode(&value); err != nil {
			return nil, fmt.Errorf("regdata: yaml line %d: %w", node.Line, err)
		}
		return value, nil
	case "!!null":
		return nil, fmt.Errorf(
			"regdata: yaml line %d: %w, null values are not supported in register data",
			node.Line, regmap.ErrInvalidType)
	default:
		return nil, fmt.Errorf(
			"regdata: yaml line %d: %w, unsupported scalar tag %q",
			node.Line, regmap.ErrInvalidType, node.Tag)
	}
}

func resolveYAMLAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

// EncodeYAML renders a Mapping as a YAML document, preserving key order.
// Strings are double-quoted so values like "r_w", "0b01" and "1" survive a
// re-parse as strings.
func EncodeYAML(m *Mapping) ([]byte, error) {
	node, err := yamlNodeFromMapping(m)
	if err != nil {
		return nil, err
	}
	out, err := yaml.Marshal(node)
	if err != nil {
		return nil, fmt.Errorf("regdata: yaml: %w", err)
	}
	return out, nil
}

func yamlNodeFromMapping(m *Mapping) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range m.Keys() {
		value, _ := m.Get(key)
		valueNode, err := yamlNodeFromValue(value)
		if err != nil {
			return nil, fmt.Errorf("regdata: yaml key %q: %w", key, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			valueNode,
		)
	}
	return node, nil
}

func yamlNodeFromValue(value any) (*yaml.Node, error) {
	switch typed := value.(type) {
	case *Mapping:
		return yamlNodeFromMapping(typed)
	case string:
		return &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Value: typed,
			Style: yaml.DoubleQuotedStyle,
		}, nil
	case int64:
		return &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!int",
			Value: fmt.Sprintf("%d", typed),
		}, nil
	case float64:
		return &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!float",
			Value: floatLiteral(typed),
		}, nil
	case bool:
		return &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!bool",
			Value: fmt.Sprintf("%t", typed),
		}, nil
	default:
		return nil, fmt.Errorf("%w, unsupported value type %T", regmap.ErrInvalidType, value)
	}
}
