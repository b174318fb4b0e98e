// SPDX-License-Identifier: MPL-2.0

package distinfo

import (
	"bytes"
	"crypto/sha256"
	"encoding/csv"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/typefriend/meow/pkg/types"
)

// RecordFile is the manifest file name inside the dist-info directory.
const RecordFile = "RECORD"

// RecordEntry is one RECORD line. Digest and Size are empty for the RECORD
// file itself.
type RecordEntry struct {
	// Path is archive-relative with forward slashes.
	Path string
	// Digest is "<algorithm>=<encoded digest>".
	Digest string
	Size   string
}

// HashFile returns the encoded SHA-256 digest and size of the file at path.
func HashFile(path string, enc DigestEncoding) (digest string, size int64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	h := sha256.New()
	size, err = io.Copy(h, f)
	if err != nil {
		return "", 0, err
	}
	return DigestAlgorithm + "=" + enc.Encode(h.Sum(nil)), size, nil
}

// BuildRecord walks root and returns one entry per file, sorted by path,
// including an entry for recordPath (relative to root) without digest or
// size. Directories are not listed. recordPath need not exist yet; if it
// does, its contents are ignored.
func BuildRecord(root, recordPath string, enc DigestEncoding) ([]RecordEntry, error) {
	recordPath = filepath.ToSlash(recordPath)
	entries := []RecordEntry{{Path: recordPath}}

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return types.NewFilesystemError("walk", path, err)
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return types.NewFilesystemError("resolve record path", path, err)
		}
		rel = filepath.ToSlash(rel)
		if rel == recordPath {
			return nil
		}
		if !d.Type().IsRegular() {
			return types.NewFilesystemError("record", path, fmt.Errorf("unsupported file type %s", d.Type()))
		}

		digest, size, err := HashFile(path, enc)
		if err != nil {
			return types.NewFilesystemError("hash", path, err)
		}
		entries = append(entries, RecordEntry{Path: rel, Digest: digest, Size: strconv.FormatInt(size, 10)})
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

// FormatRecord renders entries as RECORD content (CSV, "\n" line endings).
func FormatRecord(entries []RecordEntry) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, e := range entries {
		// Writes to a bytes.Buffer cannot fail.
		_ = w.Write([]string{e.Path, e.Digest, e.Size})
	}
	w.Flush()
	return buf.Bytes()
}

// ParseRecord parses RECORD content.
func ParseRecord(data []byte) ([]RecordEntry, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = 3
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", RecordFile, err)
	}
	entries := make([]RecordEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, RecordEntry{Path: row[0], Digest: row[1], Size: row[2]})
	}
	return entries, nil
}

// WriteRecord computes the manifest of root and writes it to
// root/distInfoDir/RECORD. It must be the last write under root.
func WriteRecord(root, distInfoDir string, enc DigestEncoding) ([]RecordEntry, error) {
	recordRel := strings.TrimSuffix(filepath.ToSlash(distInfoDir), "/") + "/" + RecordFile
	entries, err := BuildRecord(root, recordRel, enc)
	if err != nil {
		return nil, err
	}
	recordPath := filepath.Join(root, filepath.FromSlash(recordRel))
	if err := os.WriteFile(recordPath, FormatRecord(entries), 0o644); err != nil {
		return nil, types.NewFilesystemError("write", recordPath, err)
	}
	return entries, nil
}
