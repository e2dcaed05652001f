package regdata

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/OpenTraceLab/OpenTraceRegs/pkg/regmap"
)

// FromFile parses a register data file into a register list, choosing the
// format from the file extension. Supported extensions are .toml, .yaml,
// .yml and .json.
func FromFile(name string, path string, defaultRegisters []*regmap.Register) (*regmap.RegisterList, error) {
	data, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	parser, err := New(name, path, defaultRegisters)
	if err != nil {
		return nil, err
	}
	return parser.Parse(data)
}

// FromTOMLFile parses a TOML register data file into a register list.
func FromTOMLFile(name string, path string, defaultRegisters []*regmap.Register) (*regmap.RegisterList, error) {
	return fromFile(name, path, defaultRegisters, LoadTOML)
}

// FromYAMLFile parses a YAML register data file into a register list.
func FromYAMLFile(name string, path string, defaultRegisters []*regmap.Register) (*regmap.RegisterList, error) {
	return fromFile(name, path, defaultRegisters, LoadYAML)
}

// FromJSONFile parses a JSON register data file into a register list.
func FromJSONFile(name string, path string, defaultRegisters []*regmap.Register) (*regmap.RegisterList, error) {
	return fromFile(name, path, defaultRegisters, LoadJSON)
}

func fromFile(
	name string,
	path string,
	defaultRegisters []*regmap.Register,
	load func([]byte) (*Mapping, error),
) (*regmap.RegisterList, error) {
	document, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("regdata: %w", err)
	}
	data, err := load(document)
	if err != nil {
		return nil, fmt.Errorf("regdata: %s: %w", path, err)
	}
	parser, err := New(name, path, defaultRegisters)
	if err != nil {
		return nil, err
	}
	return parser.Parse(data)
}

// LoadFile decodes a register data file into an ordered Mapping, choosing
// the format from the file extension.
func LoadFile(path string) (*Mapping, error) {
	load, err := loaderForPath(path)
	if err != nil {
		return nil, err
	}
	document, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("regdata: %w", err)
	}
	data, err := load(document)
	if err != nil {
		return nil, fmt.Errorf("regdata: %s: %w", path, err)
	}
	return data, nil
}

// EncodeForPath renders a Mapping in the format implied by the file
// extension.
func EncodeForPath(path string, data *Mapping) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return EncodeTOML(data)
	case ".yaml", ".yml":
		return EncodeYAML(data)
	case ".json":
		return EncodeJSON(data)
	}
	return nil, unknownExtensionError(path)
}

func loaderForPath(path string) (func([]byte) (*Mapping, error), error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return LoadTOML, nil
	case ".yaml", ".yml":
		return LoadYAML, nil
	case ".json":
		return LoadJSON, nil
	}
	return nil, unknownExtensionError(path)
}

func unknownExtensionError(path string) error {
	return fmt.Errorf(
		"regdata: %s: %w, unknown file extension %q, expected .toml, .yaml, .yml or .json",
		path, regmap.ErrInvalidValue, filepath.Ext(path))
}

// RemediationPath is where a converted copy of a legacy-format data file is
// written: the input path with "_converted" appended to the stem.
func RemediationPath(path string) string {
	extension := filepath.Ext(path)
	return strings.TrimSuffix(path, extension) + "_converted" + extension
}

// ConvertLegacyFile reads a legacy-format data file, converts it to the
// current schema and writes the result to RemediationPath(path). It returns
// the output path.
func ConvertLegacyFile(path string) (string, error) {
	data, err := LoadFile(path)
	if err != nil {
		return "", err
	}
	converted, err := ConvertLegacy(data)
	if err != nil {
		return "", fmt.Errorf("regdata: %s: %w", path, err)
	}
	document, err := EncodeForPath(path, converted)
	if err != nil {
		return "", err
	}
	outputPath := RemediationPath(path)
	if err := os.WriteFile(outputPath, document, 0o644); err != nil {
		return "", fmt.Errorf("regdata: %w", err)
	}
	return outputPath, nil
}
