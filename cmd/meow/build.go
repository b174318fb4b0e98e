// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newBuildWheelCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "build-wheel <wheel-dir>",
		Short: "Compile the extension and build a wheel",
		Long: `Compile the extension with the configured zig toolchain and package it
as a wheel in wheel-dir. The wheel's absolute path is printed on stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.newBackend(cmd.Context())
			if err != nil {
				return err
			}
			path, err := b.BuildWheel(cmd.Context(), args[0])
			if err != nil {
				return hookError("build wheel", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func newBuildSdistCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "build-sdist <sdist-dir>",
		Short: "Build a source distribution",
		Long: `Package the project's sources as a .tar.gz in sdist-dir. Only the
configured source directories and include files are archived. The
archive's absolute path is printed on stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.newBackend(cmd.Context())
			if err != nil {
				return err
			}
			path, err := b.BuildSdist(cmd.Context(), args[0])
			if err != nil {
				return hookError("build sdist", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func newPrepareMetadataCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "prepare-metadata <metadata-dir>",
		Short: "Write the wheel's dist-info metadata without building",
		Long: `Write {name}-{version}.dist-info with WHEEL and METADATA into
metadata-dir. Nothing is compiled. The dist-info directory name is
printed on stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.newBackend(cmd.Context())
			if err != nil {
				return err
			}
			name, err := b.PrepareMetadataForBuildWheel(args[0])
			if err != nil {
				return hookError("prepare metadata", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}
}

func newGetRequiresCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "get-requires {wheel|sdist}",
		Short:     "Print the extra build requirements as a JSON list",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"wheel", "sdist"},
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.newBackend(cmd.Context())
			if err != nil {
				return err
			}
			requires := b.GetRequiresForBuildWheel()
			if args[0] == "sdist" {
				requires = b.GetRequiresForBuildSdist()
			}
			data, err := json.Marshal(requires)
			if err != nil {
				return fmt.Errorf("encode requirements: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}
