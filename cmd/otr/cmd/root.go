package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "otr",
	Short: "OpenTraceRegs - FPGA register map tools",
	Long: `OpenTraceRegs (otr) works with register data files that describe the
register map of an FPGA module: its registers, register arrays, bit-level
fields and constants. Data files may be TOML, YAML or JSON.

Examples:
  otr validate caesar/regs_caesar.toml          # Parse and validate a data file
  otr info caesar/regs_caesar.toml              # Show the resulting register map
  otr convert old/regs_caesar.toml              # Rewrite a legacy-format data file`,
	Version: "0.9.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// listName derives the register list name from the data file path. Register
// data files are conventionally named regs_<module>.<ext>; otherwise the
// file stem is used as-is.
func listName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if stripped := strings.TrimPrefix(base, "regs_"); stripped != "" {
		return stripped
	}
	return base
}
