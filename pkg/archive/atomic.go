// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"io"
	"os"
	"path/filepath"

	"github.com/typefriend/meow/pkg/types"
)

// WriteFileAtomic creates dest by running write against a temporary file in
// the same directory and renaming it into place once write and Close succeed.
// On any failure the temporary file is removed and dest is left untouched.
func WriteFileAtomic(dest string, write func(w io.Writer) error) (err error) {
	dir := filepath.Dir(dest)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dest)+".*.tmp")
	if err != nil {
		return types.NewFilesystemError("create", dest, err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath) // Best-effort cleanup
		}
	}()

	if err = write(tmp); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return types.NewFilesystemError("close", tmpPath, err)
	}
	if err = os.Chmod(tmpPath, 0o644); err != nil {
		return types.NewFilesystemError("chmod", tmpPath, err)
	}
	if err = os.Rename(tmpPath, dest); err != nil {
		return types.NewFilesystemError("rename", dest, err)
	}
	return nil
}
