// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/typefriend/meow/internal/toolchain"
	"github.com/typefriend/meow/pkg/distinfo"
	"github.com/typefriend/meow/pkg/sdist"
	"github.com/typefriend/meow/pkg/types"
)

// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
var ErrInvalidConfig = errors.New("invalid config")

type (
	// Config holds the resolved build configuration.
	Config struct {
		// CompatTag is the "{python}-{abi}-{platform}" tag of the wheel.
		CompatTag types.CompatTag `json:"compat_tag" yaml:"compat_tag" mapstructure:"compat_tag"`
		// Generator is written to the WHEEL file.
		Generator string      `json:"generator" yaml:"generator" mapstructure:"generator"`
		Build     BuildConfig `json:"build" yaml:"build" mapstructure:"build"`
		Wheel     WheelConfig `json:"wheel" yaml:"wheel" mapstructure:"wheel"`
		Sdist     SdistConfig `json:"sdist" yaml:"sdist" mapstructure:"sdist"`
		// SourceDateEpoch pins archive timestamps when non-zero.
		SourceDateEpoch int64 `json:"source_date_epoch" yaml:"source_date_epoch" mapstructure:"source_date_epoch"`
	}

	// BuildConfig configures the compiler invocation.
	BuildConfig struct {
		// Tool is the build tool, resolved against the project directory when relative.
		Tool     string `json:"tool" yaml:"tool" mapstructure:"tool"`
		Optimize string `json:"optimize" yaml:"optimize" mapstructure:"optimize"`
		Python   string `json:"python" yaml:"python" mapstructure:"python"`
		// ExtraArgs is a shell-quoted string appended to the build command.
		ExtraArgs       string   `json:"extra_args" yaml:"extra_args" mapstructure:"extra_args"`
		LibrarySuffix   string   `json:"library_suffix" yaml:"library_suffix" mapstructure:"library_suffix"`
		ExtensionSuffix string   `json:"extension_suffix" yaml:"extension_suffix" mapstructure:"extension_suffix"`
		Requires        []string `json:"requires" yaml:"requires" mapstructure:"requires"`
	}

	// WheelConfig configures wheel assembly.
	WheelConfig struct {
		DigestEncoding distinfo.DigestEncoding `json:"digest_encoding" yaml:"digest_encoding" mapstructure:"digest_encoding"`
	}

	// SdistConfig configures the source distribution filter.
	SdistConfig struct {
		SourceDirs []string `json:"source_dirs" yaml:"source_dirs" mapstructure:"source_dirs"`
		Include    []string `json:"include" yaml:"include" mapstructure:"include"`
		PKGInfo    bool     `json:"pkg_info" yaml:"pkg_info" mapstructure:"pkg_info"`
	}

	// InvalidConfigError is returned when resolved settings fail validation.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidConfigError struct {
		FieldErrors []error
	}
)

// DefaultConfig returns the default configuration for the host platform.
func DefaultConfig() *Config {
	filter := sdist.DefaultFilter()
	return &Config{
		CompatTag: types.DefaultCompatTag,
		Generator: distinfo.DefaultGenerator,
		Build: BuildConfig{
			Tool:            defaultTool(),
			Optimize:        toolchain.DefaultOptimize,
			Python:          defaultPython(),
			LibrarySuffix:   defaultLibrarySuffix(),
			ExtensionSuffix: defaultExtensionSuffix(),
			Requires:        []string{},
		},
		Wheel: WheelConfig{
			DigestEncoding: distinfo.DigestHex,
		},
		Sdist: SdistConfig{
			SourceDirs: filter.SourceDirs,
			Include:    filter.Include,
			PKGInfo:    true,
		},
	}
}

// Filter returns the sdist filter described by the configuration.
func (c *Config) Filter() sdist.Filter {
	return sdist.Filter{SourceDirs: c.Sdist.SourceDirs, Include: c.Sdist.Include}
}

// Validate checks settings that may come from the environment, which no
// schema has seen.
func (c *Config) Validate() error {
	var errs []error
	if err := c.CompatTag.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Wheel.DigestEncoding.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := types.FilesystemPath(c.Build.Tool).Validate(); err != nil {
		errs = append(errs, fmt.Errorf("build.tool: %w", err))
	}
	if c.Build.LibrarySuffix == "" || c.Build.ExtensionSuffix == "" {
		errs = append(errs, errors.New("build.library_suffix and build.extension_suffix must be set"))
	}
	if c.SourceDateEpoch < 0 {
		errs = append(errs, fmt.Errorf("source_date_epoch must not be negative, got %d", c.SourceDateEpoch))
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msg := fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msg += "\n  " + err.Error()
	}
	return msg
}

// Unwrap returns ErrInvalidConfig followed by the field errors, so both
// errors.Is(err, ErrInvalidConfig) and checks for a field's sentinel match.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

func defaultTool() string {
	if runtime.GOOS == "windows" {
		return "zig.exe"
	}
	return "zig"
}

// defaultPython prefers $PYTHON, then the first interpreter found on PATH.
func defaultPython() string {
	if p := os.Getenv("PYTHON"); p != "" {
		return p
	}
	for _, name := range []string{"python3", "python"} {
		if p, err := exec.LookPath(name); err == nil {
			return p
		}
	}
	return "python"
}

func defaultLibrarySuffix() string {
	switch runtime.GOOS {
	case "windows":
		return ".dll"
	case "darwin":
		return ".dylib"
	default:
		return ".so"
	}
}

func defaultExtensionSuffix() string {
	if runtime.GOOS == "windows" {
		return ".pyd"
	}
	return ".so"
}
