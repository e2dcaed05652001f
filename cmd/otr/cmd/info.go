package cmd

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceRegs/pkg/regdata"
	"github.com/OpenTraceLab/OpenTraceRegs/pkg/regmap"
	"github.com/spf13/cobra"
)

var showFields bool

var infoCmd = &cobra.Command{
	Use:   "info <data-file>",
	Short: "Show the register map described by a data file",
	Long: `Parse a register data file and print the resulting register map: every
register slot with its address and mode, and the constants.

Examples:
  otr info caesar/regs_caesar.toml
  otr info --fields caesar/regs_caesar.toml`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().BoolVarP(&showFields, "fields", "f", false,
		"show the fields of each register")
}

func runInfo(cmd *cobra.Command, args []string) error {
	path := args[0]

	list, err := regdata.FromFile(listName(path), path, nil)
	if err != nil {
		return err
	}

	fmt.Printf("Register list: %s\n", list.Name())
	fmt.Printf("Source:        %s\n\n", list.SourceReference())

	fmt.Printf("Registers:\n")
	for _, iteration := range list.Iterations() {
		name := iteration.Register.Name()
		if iteration.Array != nil {
			name = fmt.Sprintf("%s.%s", iteration.Array.Name(), name)
		}
		fmt.Printf("  0x%04X  %-30s %-8s %s\n",
			iteration.Address(), name,
			iteration.Register.Mode().Shorthand(),
			iteration.Register.Description())

		if showFields || verbose {
			for _, field := range iteration.Register.Fields() {
				fmt.Printf("          %8s  %-22s default=%s\n",
					field.Range(), field.Name(), field.DefaultValueStr())
			}
		}
	}

	if constants := list.Constants(); len(constants) > 0 {
		fmt.Printf("\nConstants:\n")
		for _, constant := range constants {
			fmt.Printf("  %-30s %s\n", constant.Name(), constantValue(constant))
		}
	}
	return nil
}

func constantValue(constant regmap.Constant) string {
	switch typed := constant.(type) {
	case *regmap.BooleanConstant:
		return fmt.Sprintf("%t", typed.Value())
	case *regmap.IntegerConstant:
		return fmt.Sprintf("%d", typed.Value())
	case *regmap.FloatConstant:
		return fmt.Sprintf("%g", typed.Value())
	case *regmap.StringConstant:
		return fmt.Sprintf("%q", typed.Value())
	case *regmap.BitVectorConstant:
		return typed.Prefix() + typed.Value()
	}
	return ""
}
