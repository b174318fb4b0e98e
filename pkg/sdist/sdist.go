// SPDX-License-Identifier: MPL-2.0

package sdist

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/typefriend/meow/pkg/archive"
	"github.com/typefriend/meow/pkg/distinfo"
	"github.com/typefriend/meow/pkg/project"
	"github.com/typefriend/meow/pkg/types"

	"github.com/charmbracelet/log"
)

const (
	// Extension is the sdist file extension.
	Extension = ".tar.gz"
	// PKGInfoFile is the generated metadata file at the archive root.
	PKGInfoFile = "PKG-INFO"
)

// Options configures one sdist build.
type Options struct {
	Project    *project.Metadata
	ProjectDir string
	OutputDir  string
	Filter     Filter
	// PKGInfo adds a generated PKG-INFO at the archive root.
	PKGInfo bool
	// Timestamp overrides every entry's modification time when non-zero.
	Timestamp time.Time
	Logger    *log.Logger
}

// FileName returns "{name}-{version}.tar.gz".
func FileName(m *project.Metadata) string {
	return m.ArchiveBase() + Extension
}

// Build writes the sdist and returns its absolute path.
func Build(ctx context.Context, opts Options) (string, error) {
	if opts.Project == nil {
		return "", errors.New("sdist: project metadata is required")
	}
	if err := types.FilesystemPath(opts.ProjectDir).Validate(); err != nil {
		return "", fmt.Errorf("sdist: project directory: %w", err)
	}
	if err := types.FilesystemPath(opts.OutputDir).Validate(); err != nil {
		return "", fmt.Errorf("sdist: output directory: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	outputDir, err := filepath.Abs(opts.OutputDir)
	if err != nil {
		return "", types.NewFilesystemError("resolve output directory", opts.OutputDir, err)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", types.NewFilesystemError("create output directory", outputDir, err)
	}

	var pkgInfo []byte
	if opts.PKGInfo {
		description, err := opts.Project.ReadmeText(opts.ProjectDir)
		if err != nil {
			return "", err
		}
		pkgInfo = distinfo.CoreMetadata(opts.Project, description)
	}

	sdistPath := filepath.Join(outputDir, FileName(opts.Project))
	err = archive.WriteFileAtomic(sdistPath, func(w io.Writer) (err error) {
		tw, err := archive.NewTarGzWriter(w, opts.Timestamp)
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := tw.Close(); closeErr != nil && err == nil {
				err = types.NewFilesystemError("finalize sdist", sdistPath, closeErr)
			}
		}()

		if err := addTree(ctx, tw, opts, logger); err != nil {
			return err
		}
		if pkgInfo != nil {
			name := path.Join(opts.Project.ArchiveBase(), PKGInfoFile)
			logger.Infof("adding %s to sdist", PKGInfoFile)
			return tw.AddBytes(name, pkgInfo, opts.pkgInfoTime())
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	logger.Info("built sdist", "path", sdistPath)
	return sdistPath, nil
}

// addTree walks the project in lexical order and adds every path the filter
// accepts. Directories the filter rejects are not entered.
func addTree(ctx context.Context, tw *archive.TarGzWriter, opts Options, logger *log.Logger) error {
	base := opts.Project.ArchiveBase()
	return filepath.WalkDir(opts.ProjectDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return types.NewFilesystemError("walk", p, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(opts.ProjectDir, p)
		if err != nil {
			return types.NewFilesystemError("resolve sdist path", p, err)
		}
		rel = filepath.ToSlash(rel)

		if !opts.Filter.Match(rel) {
			if d.IsDir() && !opts.Filter.Descend(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return types.NewFilesystemError("stat", p, err)
		}
		name := base
		if rel != "." {
			name = path.Join(base, rel)
			logger.Infof("adding %s to sdist", rel)
		}
		return tw.AddPath(name, p, info)
	})
}

// pkgInfoTime stamps PKG-INFO with the descriptor's modification time when
// no timestamp is configured, so unchanged projects produce the same entry.
func (o *Options) pkgInfoTime() time.Time {
	if !o.Timestamp.IsZero() {
		return o.Timestamp
	}
	info, err := os.Stat(filepath.Join(o.ProjectDir, project.DescriptorFile))
	if err != nil {
		return archive.FixedZipTime
	}
	return info.ModTime()
}
