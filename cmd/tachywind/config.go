package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yacobolo/tachywind"
	"github.com/yacobolo/tachywind/internal/walk"
)

const defaultConfigFile = ".tachywind.yaml"

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigFile
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags, only those set explicitly so flag defaults never mask
	// values from the file or the environment
	flags := cmd.Flags()
	if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		return f.Name, posflag.FlagVal(flags, f)
	}), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (TACHYWIND_* prefix)
	if err := k.Load(env.Provider("TACHYWIND_", ".", envKey), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// envKey maps an environment variable to a config key. A double underscore
// stands for a hyphen:
//
//	TACHYWIND_PARSE_SOURCE      -> parse.source
//	TACHYWIND_REPLACE_DRY__RUN  -> replace.dry-run
//	TACHYWIND_QUIET             -> quiet
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, "TACHYWIND_"))
	key = strings.ReplaceAll(key, "__", "-")
	return strings.ReplaceAll(key, "_", ".")
}

// buildParseConfig constructs the library's ParseConfig from koanf state.
func buildParseConfig() tachywind.ParseConfig {
	return tachywind.ParseConfig{
		Stylesheets:  getStringsWithFallback("stylesheet", "parse.stylesheets", []string{"css/tachyons.css"}),
		SourceDir:    getStringWithFallback("source", "parse.source", "."),
		IgnoreDirs:   getStringsWithFallback("ignore-dir", "parse.ignore-dirs", walk.DefaultIgnoreDirs),
		Extensions:   getStringsWithFallback("ext", "parse.extensions", walk.DefaultExtensions),
		Exclude:      getStringsWithFallback("exclude", "parse.exclude", nil),
		UseGitignore: getBoolWithFallback("gitignore", "parse.gitignore", true),
		Jobs:         getIntWithFallback("jobs", "parse.jobs", 0),
	}
}

// buildReplaceConfig constructs the library's ReplaceConfig from koanf state.
func buildReplaceConfig() tachywind.ReplaceConfig {
	return tachywind.ReplaceConfig{
		Jobs:   getIntWithFallback("jobs", "replace.jobs", 0),
		DryRun: getBoolWithFallback("dry-run", "replace.dry-run", false),
	}
}

// buildOutputConfig resolves the report format and color settings.
func buildOutputConfig() tachywind.OutputConfig {
	return tachywind.OutputConfig{
		Format:    tachywind.DetermineOutputFormat(getStringWithFallback("output-format", "output.format", "text")),
		UseColors: getBoolWithFallback("color", "color", false),
	}
}

func registryPath() string {
	return getStringWithFallback("db", "registry.path", tachywind.DefaultRegistryPath)
}

func backupPath() string {
	return getStringWithFallback("file", "backup.file", tachywind.DefaultBackupFile)
}

func isQuiet() bool {
	return getBoolWithFallback("quiet", "quiet", false)
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getStringsWithFallback checks the flag key first, then the config file key, then returns the default.
// A comma-separated string (as set through the environment) is split into values.
func getStringsWithFallback(flagKey, configKey string, defaultVal []string) []string {
	for _, key := range []string{flagKey, configKey} {
		if !k.Exists(key) {
			continue
		}
		switch v := k.Get(key).(type) {
		case string:
			if values := splitList(v); len(values) > 0 {
				return values
			}
		default:
			if values := k.Strings(key); len(values) > 0 {
				return values
			}
		}
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
