// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/typefriend/meow/internal/backend"
	"github.com/typefriend/meow/internal/config"
	"github.com/typefriend/meow/internal/issue"
	"github.com/typefriend/meow/pkg/types"

	"github.com/charmbracelet/log"
)

// App holds the per-invocation state shared by all commands: the output
// streams, the global flags and the lazily built logger.
type App struct {
	stdout io.Writer
	stderr io.Writer

	projectDir string
	configPath string
	verbose    bool

	config config.Provider
	logger *log.Logger
}

// NewApp returns an App writing to stdout and stderr.
func NewApp(stdout, stderr io.Writer) *App {
	return &App{
		stdout: stdout,
		stderr: stderr,
		config: config.NewProvider(),
	}
}

// Logger returns the stderr logger, at debug level when --verbose is set.
func (a *App) Logger() *log.Logger {
	if a.logger == nil {
		level := log.InfoLevel
		if a.verbose {
			level = log.DebugLevel
		}
		a.logger = log.NewWithOptions(a.stderr, log.Options{
			Prefix: "meow",
			Level:  level,
		})
	}
	return a.logger
}

// loadOptions returns the config load options implied by the global flags.
func (a *App) loadOptions() (config.LoadOptions, error) {
	dir, err := types.FilesystemPath(a.projectDir).Abs()
	if err != nil {
		return config.LoadOptions{}, fmt.Errorf("project dir: %w", err)
	}
	return config.LoadOptions{
		ProjectDir:     dir,
		ConfigFilePath: types.FilesystemPath(a.configPath),
	}, nil
}

// loadConfig resolves the layered configuration and the absolute project root.
func (a *App) loadConfig(ctx context.Context) (*config.Config, types.FilesystemPath, error) {
	opts, err := a.loadOptions()
	if err != nil {
		return nil, "", &ExitError{Code: types.ExitFailure, Err: err}
	}
	cfg, err := a.config.Load(ctx, opts)
	if err != nil {
		return nil, "", configError(err)
	}
	return cfg, opts.ProjectDir, nil
}

// newBackend returns a Backend for the project whose tool output goes to
// stderr, keeping stdout for hook results.
func (a *App) newBackend(ctx context.Context) (*backend.Backend, error) {
	cfg, dir, err := a.loadConfig(ctx)
	if err != nil {
		return nil, err
	}
	b := backend.New(dir.String(), cfg, a.Logger())
	// stdout carries only the hook result.
	b.Stdout = a.stderr
	b.Stderr = a.stderr
	return b, nil
}

// configError links a config load failure to its catalog entry.
func configError(err error) error {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		if ae.Issue == 0 {
			ae.Issue = issue.ConfigLoadFailedId
		}
		return &ExitError{Code: types.ExitFailure, Err: err}
	}
	return hookError("load configuration", "", err)
}
