// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"archive/tar"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/typefriend/meow/pkg/types"

	"github.com/klauspost/compress/gzip"
)

// TarGzWriter writes a gzip-compressed tar with normalized ownership and modes.
type TarGzWriter struct {
	gz *gzip.Writer
	tw *tar.Writer
	// modTime overrides entry timestamps when non-zero.
	modTime time.Time
}

// NewTarGzWriter wraps w. A non-zero modTime is stamped on every entry and
// on the gzip header; otherwise entries keep their file modification times.
func NewTarGzWriter(w io.Writer, modTime time.Time) (*TarGzWriter, error) {
	gz, err := gzip.NewWriterLevel(w, gzip.BestCompression)
	if err != nil {
		return nil, err
	}
	gz.ModTime = modTime
	return &TarGzWriter{gz: gz, tw: tar.NewWriter(gz), modTime: modTime}, nil
}

// AddPath adds the filesystem entry at path under the archive name.
// Directories, regular files and symlinks are supported.
func (t *TarGzWriter) AddPath(name, path string, info fs.FileInfo) (err error) {
	link := ""
	if info.Mode()&fs.ModeSymlink != 0 {
		if link, err = os.Readlink(path); err != nil {
			return types.NewFilesystemError("read link", path, err)
		}
	}

	header, err := tar.FileInfoHeader(info, link)
	if err != nil {
		return types.NewFilesystemError("create tar header", path, err)
	}
	header.Name = name
	t.normalize(header)

	if info.IsDir() {
		header.Name += "/"
		header.Mode = 0o755
	}

	if err := t.tw.WriteHeader(header); err != nil {
		return types.NewFilesystemError("write tar header", name, err)
	}
	if !info.Mode().IsRegular() {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return types.NewFilesystemError("open", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = types.NewFilesystemError("close", path, closeErr)
		}
	}()
	if _, err := io.Copy(t.tw, f); err != nil {
		return types.NewFilesystemError("write tar entry", name, err)
	}
	return nil
}

// AddBytes adds a generated regular file.
func (t *TarGzWriter) AddBytes(name string, data []byte, modTime time.Time) error {
	header := &tar.Header{
		Typeflag: tar.TypeReg,
		Name:     name,
		Size:     int64(len(data)),
		Mode:     0o644,
		ModTime:  modTime,
	}
	t.normalize(header)
	if err := t.tw.WriteHeader(header); err != nil {
		return types.NewFilesystemError("write tar header", name, err)
	}
	if _, err := t.tw.Write(data); err != nil {
		return types.NewFilesystemError("write tar entry", name, err)
	}
	return nil
}

// Close flushes the tar and gzip streams. It does not close the underlying writer.
func (t *TarGzWriter) Close() error {
	if err := t.tw.Close(); err != nil {
		_ = t.gz.Close()
		return err
	}
	return t.gz.Close()
}

func (t *TarGzWriter) normalize(h *tar.Header) {
	h.Uid, h.Gid = 0, 0
	h.Uname, h.Gname = "", ""
	h.Mode = int64(normalizeMode(fs.FileMode(h.Mode)))
	h.Format = tar.FormatPAX
	h.AccessTime, h.ChangeTime = time.Time{}, time.Time{}
	if !t.modTime.IsZero() {
		h.ModTime = t.modTime
	}
	h.ModTime = h.ModTime.Truncate(time.Second)
}
