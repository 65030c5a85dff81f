package main

import (
	"github.com/spf13/cobra"

	"github.com/yacobolo/tachywind"
)

var replaceCmd = &cobra.Command{
	Use:   "replace",
	Short: "Write rewritten copies of every file that uses a registered class",
	Long: `Rewrite the class names inside string literals of every recorded file and
write the result next to it with a .new suffix. Originals are never touched.

Refuses to run while any used class has no mapping; see "tachywind status".`,
	Args: cobra.NoArgs,
	RunE: runReplace,
}

func init() {
	f := replaceCmd.Flags()
	f.IntP("jobs", "j", 0, "Concurrent file workers (0 = number of CPUs)")
	f.Bool("dry-run", false, "Report what would change without writing files")
}

func runReplace(cmd *cobra.Command, _ []string) error {
	reg, err := openRegistry()
	if err != nil {
		return err
	}
	defer reg.Close()

	result, err := tachywind.Replace(cmd.Context(), reg, buildReplaceConfig())
	if err != nil {
		return err
	}

	if isQuiet() {
		return nil
	}
	return tachywind.WriteReplaceResult(cmd.OutOrStdout(), result, buildOutputConfig())
}
