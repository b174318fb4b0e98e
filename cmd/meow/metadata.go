// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/typefriend/meow/pkg/project"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func newMetadataCommand(app *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "metadata",
		Short: "Show the resolved project metadata",
		Long: `Resolve the project metadata from pyproject.toml and build.zig.zon and
print it. Use --format json or --format yaml for machine-readable output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := app.newBackend(cmd.Context())
			if err != nil {
				return err
			}
			m, err := b.Metadata()
			if err != nil {
				return hookError("resolve metadata", b.ProjectDir, err)
			}
			return writeMetadata(cmd.OutOrStdout(), m, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text, json or yaml")
	return cmd
}

func writeMetadata(w io.Writer, m *project.Metadata, format string) error {
	switch format {
	case formatText:
		fmt.Fprint(w, renderMetadataText(m))
		return nil
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want %s, %s or %s)", format, formatText, formatJSON, formatYAML)
	}
}

func renderMetadataText(m *project.Metadata) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(m.ArchiveBase()) + "\n")

	field := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(labelStyle.Render(label) + value + "\n")
	}
	field("Name", string(m.Name))
	field("Version", m.Version)
	field("Summary", m.Description)
	field("Requires-Python", m.RequiresPython)
	field("License", m.License)
	field("Readme", m.Readme.File)
	field("Dynamic", strings.Join(m.Dynamic, ", "))
	for _, dep := range m.Dependencies {
		field("Requires-Dist", dep)
	}
	return b.String()
}
