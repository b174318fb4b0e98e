// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"time"

	"github.com/typefriend/meow/pkg/types"

	"github.com/klauspost/compress/flate"
)

// ZipOptions controls ZipDir.
type ZipOptions struct {
	// Modified is stamped on every entry; the zero value means FixedZipTime.
	Modified time.Time
	// Last lists root-relative, slash-separated paths written after every
	// other entry, in the given order (a wheel's RECORD goes last).
	Last []string
}

// ZipDir writes every regular file under root into a zip at w. Entry names
// are root-relative with forward slashes, sorted, and directories get no
// entries of their own.
func ZipDir(w io.Writer, root string, opts ZipOptions) (err error) {
	files, err := listFiles(root)
	if err != nil {
		return err
	}
	sortLast(files, opts.Last)

	modified := opts.Modified
	if modified.IsZero() {
		modified = FixedZipTime
	}

	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})
	defer func() {
		if closeErr := zw.Close(); closeErr != nil && err == nil {
			err = types.NewFilesystemError("finalize zip", root, closeErr)
		}
	}()

	for _, rel := range files {
		if err := addZipFile(zw, root, rel, modified); err != nil {
			return err
		}
	}
	return nil
}

func addZipFile(zw *zip.Writer, root, rel string, modified time.Time) (err error) {
	path := filepath.Join(root, filepath.FromSlash(rel))
	info, err := os.Stat(path)
	if err != nil {
		return types.NewFilesystemError("stat", path, err)
	}

	header := &zip.FileHeader{Name: rel, Method: zip.Deflate, Modified: modified}
	header.SetMode(normalizeMode(info.Mode()))

	entry, err := zw.CreateHeader(header)
	if err != nil {
		return types.NewFilesystemError("create zip entry", rel, err)
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

	if _, err := io.Copy(entry, f); err != nil {
		return types.NewFilesystemError("write zip entry", rel, err)
	}
	return nil
}

// listFiles returns the slash-separated, root-relative paths of all regular
// files under root, sorted.
func listFiles(root string) ([]string, error) {
	var files []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return types.NewFilesystemError("walk", path, err)
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			return types.NewFilesystemError("archive", path, fmt.Errorf("unsupported file type %s", d.Type()))
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return types.NewFilesystemError("resolve archive path", path, err)
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	sort.Strings(files)
	return files, nil
}

// sortLast moves the paths named in last to the end of files, in order.
func sortLast(files, last []string) {
	rank := func(p string) int {
		if i := slices.Index(last, p); i >= 0 {
			return i + 1
		}
		return 0
	}
	sort.SliceStable(files, func(i, j int) bool { return rank(files[i]) < rank(files[j]) })
}
