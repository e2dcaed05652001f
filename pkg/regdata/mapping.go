package regdata

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceRegs/pkg/regmap"
)

// Mapping is an insertion-ordered mapping from string keys to node values.
// It is the hierarchical input the parser consumes; the format adapters in
// this package build it from TOML, YAML or JSON text.
//
// Values are one of: string, int64, float64, bool, *Mapping. Iteration
// order reflects declaration order in the source document, which matters:
// register and field indices are assigned in that order.
type Mapping struct {
	keys   []string
	values map[string]any
}

// NewMapping creates an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{values: make(map[string]any)}
}

// Add inserts a key. Duplicate keys are rejected: every supported input
// format gets the same policy regardless of what its own decoder would do.
func (m *Mapping) Add(key string, value any) error {
	if _, ok := m.values[key]; ok {
		return fmt.Errorf("regdata: key %q: %w", key, regmap.ErrDuplicateName)
	}
	m.keys = append(m.keys, key)
	m.values[key] = value
	return nil
}

// Set inserts a key or replaces the value of an existing key in place.
// Used by the legacy-format transform, which merges field groups into their
// register node.
func (m *Mapping) Set(key string, value any) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value for a key.
func (m *Mapping) Get(key string) (any, bool) {
	value, ok := m.values[key]
	return value, ok
}

// Has reports whether the key is present.
func (m *Mapping) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []string { return m.keys }

// Len is the number of keys.
func (m *Mapping) Len() int { return len(m.keys) }
