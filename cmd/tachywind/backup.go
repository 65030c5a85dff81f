package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yacobolo/tachywind"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Write the classes and their mappings to a JSON file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		reg, err := openRegistry()
		if err != nil {
			return err
		}
		defer reg.Close()

		path := backupPath()
		mappedOnly := getBoolWithFallback("mapped-only", "backup.mapped-only", false)

		n, err := tachywind.Backup(cmd.Context(), reg, path, mappedOnly)
		if err != nil {
			return err
		}

		if !isQuiet() {
			fmt.Fprintf(cmd.OutOrStdout(), "Backed up %d classes to %s\n", n, path)
		}
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Load classes and mappings from a JSON backup",
	Long: `Load a backup written by "tachywind backup". Missing classes are created;
an entry whose "tailwind" value is null keeps the mapping already stored.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		reg, err := openRegistry()
		if err != nil {
			return err
		}
		defer reg.Close()

		path := backupPath()
		n, err := tachywind.Restore(cmd.Context(), reg, path)
		if err != nil {
			return err
		}

		if !isQuiet() {
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %d classes from %s\n", n, path)
		}
		return nil
	},
}

func init() {
	backupCmd.Flags().String("file", tachywind.DefaultBackupFile, "Backup file path")
	backupCmd.Flags().Bool("mapped-only", false, "Only include classes with a mapping")
	restoreCmd.Flags().String("file", tachywind.DefaultBackupFile, "Backup file path")
}
