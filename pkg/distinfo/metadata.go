// SPDX-License-Identifier: MPL-2.0

package distinfo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/typefriend/meow/pkg/project"
	"github.com/typefriend/meow/pkg/types"
)

const (
	// WheelFile describes the archive format.
	WheelFile = "WHEEL"
	// MetadataFile holds the package's core metadata.
	MetadataFile = "METADATA"

	// WheelVersion is the archive format version meow produces.
	WheelVersion = "1.0"
	// MetadataVersion is the core metadata version meow produces.
	MetadataVersion = "2.3"

	// DefaultGenerator is the WHEEL Generator value when none is configured.
	DefaultGenerator = "meow"
)

// WheelInfo renders the WHEEL file. Packages built by meow always contain a
// compiled component, so Root-Is-Purelib is always false. A compressed tag
// set ("py2.py3-none-any") is expanded into one Tag line per combination.
func WheelInfo(generator string, tag types.CompatTag) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "Wheel-Version: %s\n", WheelVersion)
	fmt.Fprintf(&b, "Generator: %s\n", generator)
	b.WriteString("Root-Is-Purelib: false\n")
	for _, t := range ExpandTag(tag) {
		fmt.Fprintf(&b, "Tag: %s\n", t)
	}
	return []byte(b.String())
}

// ExpandTag expands a compressed tag set into its individual tags.
func ExpandTag(tag types.CompatTag) []types.CompatTag {
	var out []types.CompatTag
	for _, py := range strings.Split(tag.Python(), ".") {
		for _, abi := range strings.Split(tag.ABI(), ".") {
			for _, plat := range strings.Split(tag.Platform(), ".") {
				out = append(out, types.CompatTag(py+"-"+abi+"-"+plat))
			}
		}
	}
	return out
}

// CoreMetadata renders the METADATA file. Only Metadata-Version, Name and
// Version are always present; the other fields are emitted when the
// descriptor declares them. A non-empty description becomes the message body.
func CoreMetadata(m *project.Metadata, description string) []byte {
	var b strings.Builder
	header := func(key, value string) {
		fmt.Fprintf(&b, "%s: %s\n", key, value)
	}

	header("Metadata-Version", MetadataVersion)
	header("Name", string(m.Name))
	header("Version", m.Version)
	if m.Description != "" {
		header("Summary", singleLine(m.Description))
	}
	if m.License != "" {
		header("License", foldLines(m.License))
	}
	if m.RequiresPython != "" {
		header("Requires-Python", m.RequiresPython)
	}
	for _, dep := range m.Dependencies {
		header("Requires-Dist", dep)
	}
	if description != "" {
		if m.Readme.ContentType != "" {
			header("Description-Content-Type", m.Readme.ContentType)
		}
		b.WriteString("\n")
		b.WriteString(description)
		if !strings.HasSuffix(description, "\n") {
			b.WriteString("\n")
		}
	}
	return []byte(b.String())
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// foldLines indents continuation lines so a multi-line value stays inside
// its header field.
func foldLines(s string) string {
	return strings.ReplaceAll(strings.TrimRight(s, "\n"), "\n", "\n        ")
}

// WriteMetadataFiles creates dir (the dist-info directory) and writes WHEEL
// and METADATA into it.
func WriteMetadataFiles(dir string, m *project.Metadata, description, generator string, tag types.CompatTag) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return types.NewFilesystemError("create dist-info directory", dir, err)
	}
	files := []struct {
		name string
		data []byte
	}{
		{WheelFile, WheelInfo(generator, tag)},
		{MetadataFile, CoreMetadata(m, description)},
	}
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := os.WriteFile(path, f.data, 0o644); err != nil {
			return types.NewFilesystemError("write", path, err)
		}
	}
	return nil
}
