package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yacobolo/tachywind"
	"github.com/yacobolo/tachywind/internal/walk"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Register stylesheet classes and record where they are used",
	Long: `Read every flat ".name { ... }" rule of the stylesheets into the registry,
then scan the source tree and record which files use which classes.
Existing mappings are kept, so parse can be repeated at any time.`,
	Args: cobra.NoArgs,
	RunE: runParse,
}

func init() {
	f := parseCmd.Flags()
	f.StringSliceP("stylesheet", "s", []string{"css/tachyons.css"}, "Stylesheet paths or glob patterns")
	f.String("source", ".", "Source directory to scan")
	f.StringSlice("ignore-dir", walk.DefaultIgnoreDirs, "Directory names to skip")
	f.StringSlice("ext", walk.DefaultExtensions, "File extensions to scan")
	f.StringSlice("exclude", nil, "Glob patterns (relative to --source) to skip")
	f.Bool("gitignore", true, "Honor the .gitignore in the source directory")
	f.IntP("jobs", "j", 0, "Concurrent file workers (0 = number of CPUs)")
}

func runParse(cmd *cobra.Command, _ []string) error {
	reg, err := openRegistry()
	if err != nil {
		return err
	}
	defer reg.Close()

	result, err := tachywind.Parse(cmd.Context(), reg, buildParseConfig())
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	if isQuiet() {
		return nil
	}
	return tachywind.WriteParseResult(cmd.OutOrStdout(), result, buildOutputConfig())
}
