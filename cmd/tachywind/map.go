package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yacobolo/tachywind"
)

var mapCmd = &cobra.Command{
	Use:   "map <class> [replacement]",
	Short: "Set or clear the Tailwind replacement of a class",
	Long: `Set the replacement of a registered class. Several Tailwind classes can be
given as one quoted argument, e.g. tachywind map ph3 "px-4".`,
	Example: `  tachywind map pa3 p-4
  tachywind map dn --clear`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runMap,
}

func init() {
	mapCmd.Flags().Bool("clear", false, "Remove the replacement instead of setting one")
}

func runMap(cmd *cobra.Command, args []string) error {
	clearMapping, _ := cmd.Flags().GetBool("clear")

	var replacement *string
	switch {
	case clearMapping && len(args) == 2:
		return errors.New("--clear takes no replacement")
	case !clearMapping && len(args) == 1:
		return errors.New("missing replacement (or pass --clear)")
	case !clearMapping:
		replacement = &args[1]
	}

	reg, err := openRegistry()
	if err != nil {
		return err
	}
	defer reg.Close()

	name := args[0]
	if err := reg.SetMapping(cmd.Context(), name, replacement); err != nil {
		if errors.Is(err, tachywind.ErrUnknownClass) {
			return fmt.Errorf("unknown class %q (run parse first)", name)
		}
		return err
	}

	if isQuiet() {
		return nil
	}
	if replacement == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared mapping for %s\n", name)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Mapped %s → %s\n", name, *replacement)
	}
	return nil
}
