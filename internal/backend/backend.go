// SPDX-License-Identifier: MPL-2.0

package backend

import (
	"context"
	"io"
	"path/filepath"
	"slices"

	"github.com/typefriend/meow/internal/config"
	"github.com/typefriend/meow/internal/toolchain"
	"github.com/typefriend/meow/pkg/archive"
	"github.com/typefriend/meow/pkg/distinfo"
	"github.com/typefriend/meow/pkg/project"
	"github.com/typefriend/meow/pkg/sdist"
	"github.com/typefriend/meow/pkg/types"
	"github.com/typefriend/meow/pkg/wheel"

	"github.com/charmbracelet/log"
)

// Backend runs the build hooks for the project rooted at ProjectDir.
// Each hook resolves metadata afresh; a Backend holds no state between calls.
type Backend struct {
	ProjectDir string
	Config     *config.Config
	Logger     *log.Logger
	// Stdout and Stderr receive the build tool's output; nil means the
	// process's own streams.
	Stdout io.Writer
	Stderr io.Writer
}

// New returns a Backend for projectDir. A nil cfg means config.DefaultConfig().
func New(projectDir string, cfg *config.Config, logger *log.Logger) *Backend {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Backend{ProjectDir: projectDir, Config: cfg, Logger: logger}
}

// Metadata resolves the project metadata.
func (b *Backend) Metadata() (*project.Metadata, error) {
	m, err := project.Load(b.ProjectDir)
	if err != nil {
		return nil, err
	}
	b.Logger.Debug("resolved metadata", "name", m.Name, "version", m.Version)
	return m, nil
}

// BuildWheel compiles the extension and writes the wheel into wheelDir.
// It returns the wheel's absolute path.
func (b *Backend) BuildWheel(ctx context.Context, wheelDir string) (string, error) {
	m, err := b.Metadata()
	if err != nil {
		return "", err
	}
	compiler, err := b.Compiler()
	if err != nil {
		return "", err
	}

	return wheel.Build(ctx, wheel.Options{
		Project:         m,
		ProjectDir:      b.ProjectDir,
		OutputDir:       wheelDir,
		CompatTag:       b.Config.CompatTag,
		Compiler:        compiler,
		LibrarySuffix:   b.Config.Build.LibrarySuffix,
		ExtensionSuffix: b.Config.Build.ExtensionSuffix,
		Generator:       b.Config.Generator,
		DigestEncoding:  b.Config.Wheel.DigestEncoding,
		Timestamp:       archive.FromEpoch(b.Config.SourceDateEpoch),
		Logger:          b.Logger,
	})
}

// BuildSdist writes the source distribution into sdistDir and returns its
// absolute path.
func (b *Backend) BuildSdist(ctx context.Context, sdistDir string) (string, error) {
	m, err := b.Metadata()
	if err != nil {
		return "", err
	}

	return sdist.Build(ctx, sdist.Options{
		Project:    m,
		ProjectDir: b.ProjectDir,
		OutputDir:  sdistDir,
		Filter:     b.Config.Filter(),
		PKGInfo:    b.Config.Sdist.PKGInfo,
		Timestamp:  archive.FromEpoch(b.Config.SourceDateEpoch),
		Logger:     b.Logger,
	})
}

// PrepareMetadataForBuildWheel writes "{name}-{version}.dist-info" with WHEEL
// and METADATA (no RECORD) into metadataDir and returns the directory's base
// name. Nothing is compiled.
func (b *Backend) PrepareMetadataForBuildWheel(metadataDir string) (string, error) {
	if err := types.FilesystemPath(metadataDir).Validate(); err != nil {
		return "", err
	}
	m, err := b.Metadata()
	if err != nil {
		return "", err
	}
	if err := b.Config.CompatTag.Validate(); err != nil {
		return "", err
	}
	description, err := m.ReadmeText(b.ProjectDir)
	if err != nil {
		return "", err
	}

	name := m.DistInfoDir()
	dir := filepath.Join(metadataDir, name)
	if err := distinfo.WriteMetadataFiles(dir, m, description, b.Config.Generator, b.Config.CompatTag); err != nil {
		return "", err
	}
	b.Logger.Info("prepared metadata", "path", dir)
	return name, nil
}

// GetRequiresForBuildWheel returns the extra requirements for building a wheel.
func (b *Backend) GetRequiresForBuildWheel() []string {
	return b.requires()
}

// GetRequiresForBuildSdist returns the extra requirements for building an sdist.
func (b *Backend) GetRequiresForBuildSdist() []string {
	return b.requires()
}

func (b *Backend) requires() []string {
	if len(b.Config.Build.Requires) == 0 {
		return []string{}
	}
	return slices.Clone(b.Config.Build.Requires)
}

// Compiler returns the Zig toolchain described by the configuration. A
// relative build.tool is resolved against the project directory.
func (b *Backend) Compiler() (*toolchain.Zig, error) {
	extra, err := toolchain.ParseExtraArgs(b.Config.Build.ExtraArgs)
	if err != nil {
		return nil, err
	}

	tool := b.Config.Build.Tool
	if !filepath.IsAbs(tool) {
		tool = filepath.Join(b.ProjectDir, tool)
	}

	return &toolchain.Zig{
		Path:      tool,
		Optimize:  b.Config.Build.Optimize,
		PythonExe: b.Config.Build.Python,
		ExtraArgs: extra,
		Dir:       b.ProjectDir,
		Stdout:    b.Stdout,
		Stderr:    b.Stderr,
		Logger:    b.Logger,
	}, nil
}
