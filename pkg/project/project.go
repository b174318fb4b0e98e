// SPDX-License-Identifier: MPL-2.0

package project

import (
	_ "embed"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/typefriend/meow/pkg/cueutil"
	"github.com/typefriend/meow/pkg/types"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	// DescriptorFile is the project descriptor read from the project root.
	DescriptorFile = "pyproject.toml"
	// VersionSourceFile holds the package version.
	VersionSourceFile = "build.zig.zon"

	dynamicVersion = "version"
)

//go:embed project_schema.cue
var projectSchema []byte

type (
	// Metadata is the resolved metadata of one build invocation.
	Metadata struct {
		Name    types.PackageName `json:"name" yaml:"name"`
		Version string            `json:"version" yaml:"version"`

		Description    string   `json:"description,omitempty" yaml:"description,omitempty"`
		RequiresPython string   `json:"requires_python,omitempty" yaml:"requires_python,omitempty"`
		Dependencies   []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
		License        string   `json:"license,omitempty" yaml:"license,omitempty"`
		Readme         Readme   `json:"readme,omitzero" yaml:"readme,omitempty"`
		// Dynamic lists the remaining dynamic keys; "version" is removed once resolved.
		Dynamic []string `json:"dynamic" yaml:"dynamic"`

		// Extra holds every other [project] key, uninterpreted.
		Extra map[string]any `json:"extra,omitempty" yaml:"extra,omitempty"`
	}

	// Readme points at the long description declared by the descriptor.
	Readme struct {
		// File is relative to the project root.
		File        string `json:"file,omitempty" yaml:"file,omitempty"`
		Text        string `json:"text,omitempty" yaml:"text,omitempty"`
		ContentType string `json:"content_type,omitempty" yaml:"content_type,omitempty"`
	}
)

// ArchiveBase returns "{name}-{version}", the sdist root and file stem.
func (m *Metadata) ArchiveBase() string {
	return string(m.Name) + "-" + m.Version
}

// WheelStem returns "{name}-{version}" with both fields escaped so that '-'
// only ever separates fields, as wheel and dist-info names require.
func (m *Metadata) WheelStem() string {
	return m.Name.Escaped() + "-" + strings.ReplaceAll(m.Version, "-", "_")
}

// DistInfoDir returns the dist-info directory name, "{name}-{version}.dist-info".
func (m *Metadata) DistInfoDir() string {
	return m.WheelStem() + ".dist-info"
}

// Load resolves the metadata of the project rooted at dir.
func Load(dir string) (*Metadata, error) {
	descriptorPath := filepath.Join(dir, DescriptorFile)

	table, err := ReadProjectTable(descriptorPath)
	if err != nil {
		return nil, err
	}

	if _, declared := table[dynamicVersion]; declared {
		return nil, &InvariantViolationError{Path: descriptorPath, Key: dynamicVersion}
	}
	if _, ok := table["name"]; !ok {
		return nil, &MetadataError{Path: descriptorPath, Reason: "missing required key project.name"}
	}
	if _, ok := table["dynamic"]; !ok {
		return nil, &MetadataError{Path: descriptorPath, Reason: "missing required key project.dynamic"}
	}

	if _, err := cueutil.Validate(projectSchema, table, "#Project",
		cueutil.WithPathPrefix("project"),
	); err != nil {
		return nil, &MetadataError{Path: descriptorPath, Reason: "descriptor does not match the expected shape", Err: err}
	}

	dynamic := stringList(table["dynamic"])
	idx := slices.Index(dynamic, dynamicVersion)
	if idx < 0 {
		return nil, &MetadataError{Path: descriptorPath, Reason: `project.dynamic must contain "version"`}
	}
	dynamic = slices.Delete(dynamic, idx, idx+1)

	version, err := ReadVersion(filepath.Join(dir, VersionSourceFile))
	if err != nil {
		return nil, err
	}

	m := &Metadata{
		Name:           types.PackageName(stringValue(table["name"])),
		Version:        version,
		Description:    stringValue(table["description"]),
		RequiresPython: stringValue(table["requires-python"]),
		Dependencies:   stringList(table["dependencies"]),
		License:        licenseValue(table["license"]),
		Readme:         readmeValue(table["readme"]),
		Dynamic:        dynamic,
		Extra:          extraKeys(table),
	}
	if err := m.Name.Validate(); err != nil {
		return nil, &MetadataError{Path: descriptorPath, Reason: "invalid project.name", Err: err}
	}
	return m, nil
}

// ReadProjectTable decodes the descriptor at path and returns its [project] table.
func ReadProjectTable(path string) (map[string]any, error) {
	doc, err := ReadDescriptor(path)
	if err != nil {
		return nil, err
	}
	table, ok := doc["project"].(map[string]any)
	if !ok {
		return nil, &MetadataError{Path: path, Reason: "missing [project] table"}
	}
	return table, nil
}

// ReadDescriptor decodes the whole descriptor at path.
func ReadDescriptor(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &MetadataError{Path: path, Reason: "failed to read descriptor", Err: err}
	}
	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return nil, &MetadataError{Path: path, Reason: "descriptor too large", Err: err}
	}

	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, &MetadataError{Path: path, Reason: "failed to parse descriptor", Err: err}
	}
	return doc, nil
}

var interpretedKeys = []string{
	"name", "dynamic", "description", "requires-python", "dependencies", "license", "readme",
}

func extraKeys(table map[string]any) map[string]any {
	extra := make(map[string]any)
	for k, v := range table {
		if !slices.Contains(interpretedKeys, k) {
			extra[k] = v
		}
	}
	if len(extra) == 0 {
		return nil
	}
	return extra
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

func stringList(v any) []string {
	items, _ := v.([]any)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func licenseValue(v any) string {
	switch l := v.(type) {
	case string:
		return l
	case map[string]any:
		return stringValue(l["text"])
	}
	return ""
}

func readmeValue(v any) Readme {
	switch r := v.(type) {
	case string:
		return Readme{File: r, ContentType: contentTypeFor(r)}
	case map[string]any:
		readme := Readme{
			File:        stringValue(r["file"]),
			Text:        stringValue(r["text"]),
			ContentType: stringValue(r["content-type"]),
		}
		if readme.ContentType == "" {
			readme.ContentType = contentTypeFor(readme.File)
		}
		return readme
	}
	return Readme{}
}

func contentTypeFor(file string) string {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".md", ".markdown":
		return "text/markdown"
	case ".rst":
		return "text/x-rst"
	default:
		return "text/plain"
	}
}

// ReadmeText returns the long description: the inline text, or the contents
// of the readme file under projectDir. It returns "" when no readme is declared.
func (m *Metadata) ReadmeText(projectDir string) (string, error) {
	if m.Readme.Text != "" {
		return m.Readme.Text, nil
	}
	if m.Readme.File == "" {
		return "", nil
	}
	path := filepath.Join(projectDir, filepath.FromSlash(m.Readme.File))
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &MetadataError{Path: path, Reason: "failed to read readme", Err: err}
	}
	return string(data), nil
}
