package main

import (
	"github.com/spf13/cobra"

	"github.com/yacobolo/tachywind"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Summarize the registry and list used classes without a mapping",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		reg, err := openRegistry()
		if err != nil {
			return err
		}
		defer reg.Close()

		status, err := tachywind.Status(cmd.Context(), reg)
		if err != nil {
			return err
		}
		return tachywind.WriteStatus(cmd.OutOrStdout(), status, buildOutputConfig())
	},
}
