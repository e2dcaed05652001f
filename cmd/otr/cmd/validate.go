package cmd

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceRegs/pkg/regdata"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <data-file>",
	Short: "Parse and validate a register data file",
	Long: `Parse a register data file and report whether it is valid. All schema
rules are checked: recognized and required properties, type tags, modes,
field packing, name collisions.

Examples:
  otr validate caesar/regs_caesar.toml
  otr validate -v module/regs_module.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]

	if verbose {
		fmt.Printf("Parsing register data file: %s\n\n", path)
	}

	list, err := regdata.FromFile(listName(path), path, nil)
	if err != nil {
		return err
	}

	registerCount := 0
	for range list.Iterations() {
		registerCount++
	}
	fmt.Printf("Register list %q is valid: %d register objects, %d register slots, %d constants\n",
		list.Name(), len(list.RegisterObjects()), registerCount, len(list.Constants()))
	return nil
}
