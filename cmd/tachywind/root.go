package main

import (
	"github.com/spf13/cobra"

	"github.com/yacobolo/tachywind"
	"github.com/yacobolo/tachywind/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "tachywind",
	Short: "Migrate Tachyons class names to Tailwind",
	Long: `Register the classes of a Tachyons stylesheet, find where the source tree uses
them, and write rewritten copies of each file with the Tailwind replacements.

Typical run:
  tachywind parse --stylesheet css/tachyons.css --source src
  tachywind status
  tachywind map pa3 p-4
  tachywind replace`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		setupLogging(cmd)
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().String("config", defaultConfigFile, "Config file path")
	rootCmd.PersistentFlags().String("db", tachywind.DefaultRegistryPath, "Registry database path (:memory: for a throwaway registry)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug|info|warn|error")
	rootCmd.PersistentFlags().Bool("quiet", false, "Only log errors and skip reports")
	rootCmd.PersistentFlags().Bool("color", false, "Force color output")
	rootCmd.PersistentFlags().String("output-format", "text", "Report format: text|json")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(replaceCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(mapCmd)
	rootCmd.AddCommand(debugCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}

// setupLogging installs the configured logger as default and on the command context.
func setupLogging(cmd *cobra.Command) {
	level := getStringWithFallback("log-level", "log.level", "info")
	if isQuiet() {
		level = "error"
	}

	logger := logging.NewWithWriter(cmd.ErrOrStderr(), level)
	logging.SetDefault(logger)
	cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
}
