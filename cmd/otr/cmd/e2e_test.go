package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeDataFile(t *testing.T, name string, document string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(document), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// Capture stdout
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	var buf bytes.Buffer
	done := make(chan struct{})
	go func() {
		buf.ReadFrom(r)
		close(done)
	}()

	// Reset flags to prevent accumulation between tests
	verbose = false
	showFields = false

	rootCmd.SetArgs(args)
	err := rootCmd.Execute()

	w.Close()
	os.Stdout = old
	<-done

	return buf.String(), err
}

const validDocument = `
[config]
mode = "r_w"
description = "Main config."

[config.enable]
type = "bit"
default_value = "1"

[channels]
type = "register_array"
array_length = 2

[channels.data]
mode = "w"

[limit]
type = "constant"
value = 42
`

func TestValidateE2E(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		path := writeDataFile(t, "regs_caesar.toml", validDocument)
		output, err := runCommand(t, "validate", path)
		if err != nil {
			t.Fatalf("Unexpected error: %v\nOutput: %s", err, output)
		}
		for _, want := range []string{"caesar", "is valid", "2 register objects", "3 register slots"} {
			if !strings.Contains(output, want) {
				t.Errorf("Output missing %q:\n%s", want, output)
			}
		}
	})

	t.Run("invalid file", func(t *testing.T) {
		path := writeDataFile(t, "regs_caesar.toml", "[config]\nmode = \"bogus\"\n")
		_, err := runCommand(t, "validate", path)
		if err == nil {
			t.Fatal("Expected error but got none")
		}
		if !strings.Contains(err.Error(), "bogus") {
			t.Errorf("Error should name the bad mode: %v", err)
		}
	})
}

func TestInfoE2E(t *testing.T) {
	path := writeDataFile(t, "regs_caesar.toml", validDocument)

	output, err := runCommand(t, "info", "--fields", path)
	if err != nil {
		t.Fatalf("Unexpected error: %v\nOutput: %s", err, output)
	}

	wantContain := []string{
		"Register list: caesar",
		"config",
		"channels.data",
		"r_w",
		"enable",
		"Constants:",
		"limit",
		"42",
	}
	for _, want := range wantContain {
		if !strings.Contains(output, want) {
			t.Errorf("Output missing %q:\n%s", want, output)
		}
	}
}

func TestConvertE2E(t *testing.T) {
	legacy := `
[register.config]
mode = "r_w"

[register.config.bit.enable]
default_value = "1"
`
	path := writeDataFile(t, "regs_caesar.toml", legacy)

	output, err := runCommand(t, "convert", path)
	if err != nil {
		t.Fatalf("Unexpected error: %v\nOutput: %s", err, output)
	}

	convertedPath := filepath.Join(filepath.Dir(path), "regs_caesar_converted.toml")
	if !strings.Contains(output, convertedPath) {
		t.Errorf("Output missing converted path:\n%s", output)
	}

	// The converted file must validate.
	validateOutput, err := runCommand(t, "validate", convertedPath)
	if err != nil {
		t.Fatalf("Converted file does not validate: %v\nOutput: %s", err, validateOutput)
	}
}

func TestListName(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"regs_caesar.toml", "caesar"},
		{"/some/dir/regs_module.yaml", "module"},
		{"plain.json", "plain"},
	}
	for _, c := range cases {
		if got := listName(c.path); got != c.want {
			t.Errorf("listName(%q) = %q, want %q", c.path, got, c.want)
		}
	}
}
