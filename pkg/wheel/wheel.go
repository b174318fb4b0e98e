// SPDX-License-Identifier: MPL-2.0

package wheel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/typefriend/meow/pkg/archive"
	"github.com/typefriend/meow/pkg/distinfo"
	"github.com/typefriend/meow/pkg/project"
	"github.com/typefriend/meow/pkg/types"

	"github.com/charmbracelet/log"
)

const (
	// Extension is the wheel file extension.
	Extension = ".whl"

	contentsDir = "contents"
)

type (
	// Compiler produces the compiled extension.
	Compiler interface {
		// Check fails when the build tool is unavailable. It must not start a process.
		Check() error
		// Compile builds into prefixDir and blocks until done.
		Compile(ctx context.Context, prefixDir string) error
	}

	// Options configures one wheel build.
	Options struct {
		Project *project.Metadata
		// ProjectDir is used to read the readme for METADATA.
		ProjectDir string
		OutputDir  string
		CompatTag  types.CompatTag
		Compiler   Compiler
		// LibrarySuffix is the suffix of the library the compiler emits (".dll").
		LibrarySuffix string
		// ExtensionSuffix is the suffix of the importable module (".pyd").
		ExtensionSuffix string
		// Generator is written to the WHEEL file.
		Generator      string
		DigestEncoding distinfo.DigestEncoding
		// Timestamp is stamped on every archive entry; zero means archive.FixedZipTime.
		Timestamp time.Time
		// TempDir is where the staging area is created; "" means os.TempDir().
		TempDir string
		Logger  *log.Logger
	}
)

// FileName returns "{name}-{version}-{compat_tag}.whl".
func FileName(m *project.Metadata, tag types.CompatTag) string {
	return m.WheelStem() + "-" + string(tag) + Extension
}

// Build assembles the wheel and returns its absolute path.
func Build(ctx context.Context, opts Options) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}
	logger := opts.logger()

	// Fail before any process or directory exists.
	if err := opts.Compiler.Check(); err != nil {
		return "", err
	}

	outputDir, err := filepath.Abs(opts.OutputDir)
	if err != nil {
		return "", types.NewFilesystemError("resolve output directory", opts.OutputDir, err)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", types.NewFilesystemError("create output directory", outputDir, err)
	}

	stage, err := newStagingArea(opts.TempDir)
	if err != nil {
		return "", err
	}
	defer stage.release(logger)

	logger.Debug("staging wheel", "dir", stage.dir)
	if err := opts.Compiler.Compile(ctx, stage.dir); err != nil {
		return "", err
	}

	contents := filepath.Join(stage.dir, contentsDir)
	if err := os.Mkdir(contents, 0o755); err != nil {
		return "", types.NewFilesystemError("create", contents, err)
	}

	if err := opts.placeArtifact(stage.dir, contents); err != nil {
		return "", err
	}

	if err := opts.writeDistInfo(contents); err != nil {
		return "", err
	}

	wheelPath := filepath.Join(outputDir, FileName(opts.Project, opts.CompatTag))
	recordPath := opts.Project.DistInfoDir() + "/" + distinfo.RecordFile
	err = archive.WriteFileAtomic(wheelPath, func(w io.Writer) error {
		return archive.ZipDir(w, contents, archive.ZipOptions{
			Modified: opts.Timestamp,
			Last:     []string{recordPath},
		})
	})
	if err != nil {
		return "", err
	}

	logger.Info("built wheel", "path", wheelPath)
	return wheelPath, nil
}

func (o *Options) validate() error {
	switch {
	case o.Project == nil:
		return errors.New("wheel: project metadata is required")
	case o.Compiler == nil:
		return errors.New("wheel: compiler is required")
	case o.LibrarySuffix == "" || o.ExtensionSuffix == "":
		return errors.New("wheel: library and extension suffixes are required")
	}
	if err := types.FilesystemPath(o.OutputDir).Validate(); err != nil {
		return fmt.Errorf("wheel: output directory: %w", err)
	}
	if err := o.CompatTag.Validate(); err != nil {
		return err
	}
	if o.DigestEncoding != "" {
		if err := o.DigestEncoding.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (o *Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.New(io.Discard)
}

// placeArtifact moves "{name}{library suffix}" from the staging area into
// contents as "{name}{extension suffix}". Exactly one file carrying the
// library suffix may exist.
func (o *Options) placeArtifact(stageDir, contents string) error {
	expected := string(o.Project.Name) + o.LibrarySuffix

	entries, err := os.ReadDir(stageDir)
	if err != nil {
		return types.NewFilesystemError("read", stageDir, err)
	}
	var candidates []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), o.LibrarySuffix) {
			candidates = append(candidates, e.Name())
		}
	}
	sort.Strings(candidates)

	found := false
	for _, c := range candidates {
		if c == expected {
			found = true
		}
	}
	switch {
	case !found:
		return &ArtifactError{Expected: expected, Found: candidates, Err: ErrArtifactMissing}
	case len(candidates) > 1:
		return &ArtifactError{Expected: expected, Found: candidates, Err: ErrAmbiguousArtifact}
	}

	src := filepath.Join(stageDir, expected)
	dst := filepath.Join(contents, string(o.Project.Name)+o.ExtensionSuffix)
	if err := os.Rename(src, dst); err != nil {
		return types.NewFilesystemError("move artifact", src, err)
	}
	return nil
}

// writeDistInfo writes WHEEL and METADATA, then RECORD. Nothing may be added
// under contents after RECORD is computed.
func (o *Options) writeDistInfo(contents string) error {
	description, err := o.Project.ReadmeText(o.ProjectDir)
	if err != nil {
		return err
	}

	generator := o.Generator
	if generator == "" {
		generator = distinfo.DefaultGenerator
	}

	distInfo := o.Project.DistInfoDir()
	if err := distinfo.WriteMetadataFiles(filepath.Join(contents, distInfo), o.Project, description, generator, o.CompatTag); err != nil {
		return err
	}

	entries, err := distinfo.WriteRecord(contents, distInfo, o.DigestEncoding)
	if err != nil {
		return err
	}
	o.logger().Debug("wrote RECORD", "entries", len(entries))
	return nil
}
