package regdata

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTraceRegs/pkg/regmap"
)

func TestLoadTOML(t *testing.T) {
	document := `
[zebra]
mode = "r_w"
description = "Last in the alphabet, first in the file."

[zebra.enable]
type = "bit"
default_value = "1"

[alpha]
mode = "r"

[limit]
type = "constant"
value = 42
`
	data, err := LoadTOML([]byte(document))
	if err != nil {
		t.Fatalf("LoadTOML: %v", err)
	}

	// Document order, not alphabetical.
	if !reflect.DeepEqual(data.Keys(), []string{"zebra", "alpha", "limit"}) {
		t.Fatalf("keys = %v", data.Keys())
	}

	zebraRaw, _ := data.Get("zebra")
	zebra := zebraRaw.(*Mapping)
	if !reflect.DeepEqual(zebra.Keys(), []string{"mode", "description", "enable"}) {
		t.Errorf("zebra keys = %v", zebra.Keys())
	}

	limitRaw, _ := data.Get("limit")
	value, _ := limitRaw.(*Mapping).Get("value")
	if value != int64(42) {
		t.Errorf("value = %v (%T), want int64 42", value, value)
	}
}

func TestLoadTOMLScalarTypes(t *testing.T) {
	document := `
[node]
text = "hi"
count = 3
scale = 0.5
flag = true
`
	data, err := LoadTOML([]byte(document))
	if err != nil {
		t.Fatalf("LoadTOML: %v", err)
	}
	nodeRaw, _ := data.Get("node")
	node := nodeRaw.(*Mapping)

	cases := []struct {
		key  string
		want any
	}{
		{"text", "hi"},
		{"count", int64(3)},
		{"scale", 0.5},
		{"flag", true},
	}
	for _, c := range cases {
		value, ok := node.Get(c.key)
		if !ok || value != c.want {
			t.Errorf("%s = %v (%T), want %v (%T)", c.key, value, value, c.want, c.want)
		}
	}
}

func TestLoadTOMLRejectsArrays(t *testing.T) {
	_, err := LoadTOML([]byte(`values = [1, 2, 3]`))
	if !errors.Is(err, regmap.ErrInvalidType) {
		t.Errorf("expected ErrInvalidType, got %v", err)
	}
}

func TestLoadTOMLSyntaxError(t *testing.T) {
	if _, err := LoadTOML([]byte(`key = `)); err == nil {
		t.Error("expected error for malformed document")
	}
}

func TestEncodeTOMLRoundTrip(t *testing.T) {
	original := buildMapping(t,
		"config", buildMapping(t,
			"mode", "r_w",
			"description", "Main config.",
			"enable", buildMapping(t, "type", "bit", "default_value", "1"),
		),
		"limit", buildMapping(t,
			"type", "constant", "value", int64(-42),
		),
		"scale", buildMapping(t,
			"type", "constant", "value", 2.0,
		),
		"enabled", buildMapping(t,
			"type", "constant", "value", true,
		),
	)

	document, err := EncodeTOML(original)
	if err != nil {
		t.Fatalf("EncodeTOML: %v", err)
	}
	decoded, err := LoadTOML(document)
	if err != nil {
		t.Fatalf("LoadTOML of encoded document: %v\n%s", err, document)
	}

	if !reflect.DeepEqual(decoded.Keys(), original.Keys()) {
		t.Errorf("top-level keys = %v, want %v", decoded.Keys(), original.Keys())
	}

	scaleRaw, _ := decoded.Get("scale")
	value, _ := scaleRaw.(*Mapping).Get("value")
	if value != 2.0 {
		t.Errorf("float survived as %v (%T), want float64 2", value, value)
	}

	configRaw, _ := decoded.Get("config")
	config := configRaw.(*Mapping)
	mode, _ := config.Get("mode")
	if mode != "r_w" {
		t.Errorf("mode = %v", mode)
	}
	enableRaw, ok := config.Get("enable")
	if !ok {
		t.Fatalf("enable missing:\n%s", document)
	}
	defaultValue, _ := enableRaw.(*Mapping).Get("default_value")
	if defaultValue != "1" {
		t.Errorf("default_value = %v (%T), want string", defaultValue, defaultValue)
	}
}

func TestEncodeTOMLQuotesNonBareKeys(t *testing.T) {
	document, err := EncodeTOML(buildMapping(t, "weird key", "value"))
	if err != nil {
		t.Fatalf("EncodeTOML: %v", err)
	}
	if !strings.Contains(string(document), `"weird key"`) {
		t.Errorf("key not quoted:\n%s", document)
	}
}
