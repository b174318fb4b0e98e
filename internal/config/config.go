// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/typefriend/meow/internal/issue"
	"github.com/typefriend/meow/pkg/cueutil"
	"github.com/typefriend/meow/pkg/project"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "meow"
	// ConfigFileName is the user config file name.
	ConfigFileName = "config.toml"
	// EnvPrefix prefixes environment overrides (MEOW_BUILD_TOOL, ...).
	EnvPrefix = "MEOW"
	// SourceDateEpochEnv is the reproducible-builds timestamp variable.
	SourceDateEpochEnv = "SOURCE_DATE_EPOCH"

	schemaDefinition = "#Config"
	toolTablePath    = "tool.meow"
)

//go:embed config_schema.cue
var configSchema []byte

// ConfigDir returns the meow configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// loadWithOptions performs option-driven config loading and returns the
// configuration with the list of files that contributed to it.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, []string, error) {
	select {
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("source_date_epoch", EnvPrefix+"_SOURCE_DATE_EPOCH", SourceDateEpochEnv); err != nil {
		return nil, nil, fmt.Errorf("failed to bind %s: %w", SourceDateEpochEnv, err)
	}

	var sources []string

	if !opts.SkipUserConfig {
		cfgDir, err := configDirWithOverride(string(opts.ConfigDirPath))
		if err != nil {
			return nil, nil, err
		}
		userPath := filepath.Join(cfgDir, ConfigFileName)
		if fileExists(userPath) {
			if err := loadFileIntoViper(v, userPath); err != nil {
				return nil, nil, fileLoadError(userPath, err)
			}
			sources = append(sources, userPath)
		}
	}

	if opts.ProjectDir != "" {
		descriptor := opts.ProjectDir.Join(project.DescriptorFile).String()
		if fileExists(descriptor) {
			loaded, err := loadToolTableIntoViper(v, descriptor)
			if err != nil {
				return nil, nil, issue.NewErrorContext().
					WithOperation("load configuration").
					WithResource(descriptor).
					WithSuggestion("Check the [tool.meow] table against 'meow config show'").
					WithSuggestion("Keys may use either dashes or underscores (compat-tag, compat_tag)").
					Wrap(err).
					BuildError()
			}
			if loaded {
				sources = append(sources, descriptor+" [tool.meow]")
			}
		}
	}

	if opts.ConfigFilePath != "" {
		path := string(opts.ConfigFilePath)
		if !fileExists(path) {
			return nil, nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Check that the file exists and is readable").
				WithSuggestion("Use 'meow config show' to see the default configuration").
				Wrap(fmt.Errorf("config file not found: %s", path)).
				BuildError()
		}
		if err := loadFileIntoViper(v, path); err != nil {
			return nil, nil, fileLoadError(path, err)
		}
		sources = append(sources, path)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, issue.NewErrorContext().
			WithOperation("validate configuration").
			WithSuggestion("Check MEOW_* environment variables for typos").
			WithSuggestion("Use 'meow config show' to see the resolved configuration").
			Wrap(err).
			BuildError()
	}

	return &cfg, sources, nil
}

func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()
	v.SetDefault("compat_tag", string(defaults.CompatTag))
	v.SetDefault("generator", defaults.Generator)
	v.SetDefault("build.tool", defaults.Build.Tool)
	v.SetDefault("build.optimize", defaults.Build.Optimize)
	v.SetDefault("build.python", defaults.Build.Python)
	v.SetDefault("build.extra_args", defaults.Build.ExtraArgs)
	v.SetDefault("build.library_suffix", defaults.Build.LibrarySuffix)
	v.SetDefault("build.extension_suffix", defaults.Build.ExtensionSuffix)
	v.SetDefault("build.requires", defaults.Build.Requires)
	v.SetDefault("wheel.digest_encoding", string(defaults.Wheel.DigestEncoding))
	v.SetDefault("sdist.source_dirs", defaults.Sdist.SourceDirs)
	v.SetDefault("sdist.include", defaults.Sdist.Include)
	v.SetDefault("sdist.pkg_info", defaults.Sdist.PKGInfo)
	v.SetDefault("source_date_epoch", defaults.SourceDateEpoch)
}

func fileLoadError(path string, err error) error {
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path).
		WithSuggestion("Check that the file contains valid TOML syntax").
		WithSuggestion("Verify the configuration values match the expected schema").
		WithSuggestion("See 'meow config --help' for configuration options").
		Wrap(err).
		BuildError()
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}
	return ConfigDir()
}

// loadFileIntoViper parses a TOML config file, validates it against the
// #Config schema and merges it into Viper.
func loadFileIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return err
	}

	var table map[string]any
	if err := toml.Unmarshal(data, &table); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return mergeTable(v, normalizeKeys(table), "")
}

// loadToolTableIntoViper merges the [tool.meow] table of the descriptor at
// path. It reports whether the table was present.
func loadToolTableIntoViper(v *viper.Viper, path string) (bool, error) {
	doc, err := project.ReadDescriptor(path)
	if err != nil {
		return false, err
	}
	tool, _ := doc["tool"].(map[string]any)
	table, ok := tool[AppName].(map[string]any)
	if !ok {
		return false, nil
	}
	return true, mergeTable(v, normalizeKeys(table), toolTablePath)
}

// mergeTable validates table against the schema and merges it into Viper
// (preserving defaults and env overrides).
func mergeTable(v *viper.Viper, table map[string]any, prefix string) error {
	if _, err := cueutil.Validate(configSchema, table, schemaDefinition,
		cueutil.WithConcrete(false),
		cueutil.WithPathPrefix(prefix),
	); err != nil {
		return err
	}
	if err := v.MergeConfigMap(table); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

// normalizeKeys rewrites dashed keys to the underscored form, recursively.
func normalizeKeys(table map[string]any) map[string]any {
	out := make(map[string]any, len(table))
	for k, val := range table {
		if nested, ok := val.(map[string]any); ok {
			val = normalizeKeys(nested)
		}
		out[strings.ReplaceAll(k, "-", "_")] = val
	}
	return out
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// Sources returns the files that contributed to the configuration for opts,
// lowest precedence first.
func Sources(ctx context.Context, opts LoadOptions) ([]string, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	_, sources, err := loadWithOptions(ctx, opts)
	return sources, err
}
