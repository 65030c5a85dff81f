package main

import (
	"github.com/spf13/cobra"

	"github.com/yacobolo/tachywind"
)

var debugCmd = &cobra.Command{
	Use:   "debug <file>",
	Short: "Show the string and comment spans found in a file",
	Long: `Scan a single file and print every string literal and comment span with its
byte offsets, plus the registered classes it references. With --rewrite the
rewritten text is printed as well. Nothing is written.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rewrite, _ := cmd.Flags().GetBool("rewrite")

		reg, err := openRegistry()
		if err != nil {
			return err
		}
		defer reg.Close()

		report, err := tachywind.Debug(cmd.Context(), reg, args[0], rewrite)
		if err != nil {
			return err
		}
		return tachywind.WriteScan(cmd.OutOrStdout(), report, buildOutputConfig())
	},
}

func init() {
	debugCmd.Flags().Bool("rewrite", false, "Also print the rewritten text")
}
