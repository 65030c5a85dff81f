package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .tachywind.yaml config file",
	Long:  `Create a .tachywind.yaml configuration file in the current directory with sensible defaults.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(defaultConfigFile); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", defaultConfigFile)
		}

		if err := os.WriteFile(defaultConfigFile, []byte(defaultConfig), 0o644); err != nil { //nolint:gosec // config is meant to be committed
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", defaultConfigFile)
		return nil
	},
}

const defaultConfig = `# tachywind configuration
# Precedence: flags > TACHYWIND_* environment > this file > defaults
# Env names use _ for nesting and __ for hyphens: TACHYWIND_REPLACE_DRY__RUN=true

registry:
  path: tachywind.sqlite   # :memory: keeps nothing between runs

log:
  level: info              # debug | info | warn | error
quiet: false
color: false
output:
  format: text             # text | json

parse:
  stylesheets:
    - css/tachyons.css
  source: .
  ignore-dirs:
    - node_modules
    - obj
    - bin
    - wwwroot
    - Migrations
  extensions: [.js, .jsx, .ts, .tsx, .html, .cs, .cshtml]
  exclude: []
  gitignore: true
  jobs: 0                  # 0 = number of CPUs

replace:
  jobs: 0
  dry-run: false

backup:
  file: mapping.json
  mapped-only: false
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
