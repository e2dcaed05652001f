package cmd

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceRegs/pkg/regdata"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert <data-file>",
	Short: "Rewrite a legacy-format register data file",
	Long: `Convert a register data file from the old nested schema, where items
are grouped under top-level "register", "register_array" and "constant"
keys, to the current flat schema. The converted file is written next to the
input with "_converted" appended to the file stem; the input is untouched.

Examples:
  otr convert old/regs_caesar.toml     # writes old/regs_caesar_converted.toml`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	path := args[0]

	if verbose {
		fmt.Printf("Converting register data file: %s\n", path)
	}

	outputPath, err := regdata.ConvertLegacyFile(path)
	if err != nil {
		return err
	}

	fmt.Printf("Wrote converted register data to %s\n", outputPath)
	return nil
}
