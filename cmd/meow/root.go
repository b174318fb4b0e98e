// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// newRootCommand builds the command tree around app.
func newRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "meow",
		Short: "A build backend for compiled Python extensions",
		Long: TitleStyle.Render("meow") + SubtitleStyle.Render(" - A build backend for compiled Python extensions") + `

meow compiles a native extension with 'zig build' and packages it as a
wheel, or packages the project's sources as an sdist. The package version
is read from build.zig.zon; everything else comes from pyproject.toml.

Each build hook prints its result as the last line of stdout.

` + SubtitleStyle.Render("Examples:") + `
  meow build-wheel dist          Build a wheel into ./dist
  meow build-sdist dist          Build an sdist into ./dist
  meow metadata --format json    Show the resolved project metadata
  meow config show               Show the resolved configuration`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&app.projectDir, "project-dir", "C", ".", "project root containing pyproject.toml")
	rootCmd.PersistentFlags().StringVar(&app.configPath, "config", "", "extra TOML config file applied above [tool.meow]")
	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(
		newBuildWheelCommand(app),
		newBuildSdistCommand(app),
		newPrepareMetadataCommand(app),
		newGetRequiresCommand(app),
		newMetadataCommand(app),
		newConfigCommand(app),
	)
	return rootCmd
}

// Execute runs the CLI with the process arguments and exits with its status.
// This is called by main.main().
func Execute() {
	os.Exit(Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// Run executes the CLI with args and returns the process exit status.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	app := NewApp(stdout, stderr)
	rootCmd := newRootCommand(app)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	// fang overrides rootCmd.Version, so the version goes through WithVersion.
	err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(func(w io.Writer, _ fang.Styles, err error) {
			renderError(w, err, app.verbose, app.Logger())
		}),
	)
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return int(exitErr.Code)
	}
	return 1
}
