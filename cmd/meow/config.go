// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/typefriend/meow/internal/config"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCommand(app *App) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the build configuration",
		Long: `Inspect the layered build configuration.

Values are resolved, lowest precedence first, from the built-in defaults,
the user config file, the [tool.meow] table of pyproject.toml, the file
given with --config, and MEOW_* environment variables. SOURCE_DATE_EPOCH
is honored as well.`,
	}

	configCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the resolved configuration as YAML",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, _, err := app.loadConfig(cmd.Context())
				if err != nil {
					return err
				}
				data, err := yaml.Marshal(cfg)
				if err != nil {
					return fmt.Errorf("encode config: %w", err)
				}
				fmt.Fprint(cmd.OutOrStdout(), string(data))
				return nil
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the config files that contribute to the configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				opts, err := app.loadOptions()
				if err != nil {
					return err
				}
				dir, err := config.ConfigDir()
				if err != nil {
					return err
				}
				sources, err := config.Sources(cmd.Context(), opts)
				if err != nil {
					return configError(err)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, SubtitleStyle.Render("User config: ")+CmdStyle.Render(filepath.Join(dir, config.ConfigFileName)))
				if len(sources) == 0 {
					fmt.Fprintln(out, SubtitleStyle.Render("Loaded: ")+"defaults only")
					return nil
				}
				fmt.Fprintln(out, SubtitleStyle.Render("Loaded: ")+strings.Join(sources, ", "))
				return nil
			},
		},
	)
	return configCmd
}
