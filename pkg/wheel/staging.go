// SPDX-License-Identifier: MPL-2.0

package wheel

import (
	"os"

	"github.com/typefriend/meow/pkg/types"

	"github.com/charmbracelet/log"
)

// stagingArea is a temporary directory owned by a single Build call.
type stagingArea struct {
	dir string
}

func newStagingArea(parent string) (*stagingArea, error) {
	dir, err := os.MkdirTemp(parent, "meow-wheel-*")
	if err != nil {
		if parent == "" {
			parent = os.TempDir()
		}
		return nil, types.NewFilesystemError("create staging area", parent, err)
	}
	return &stagingArea{dir: dir}, nil
}

// release removes the staging area recursively. A failure is logged rather
// than returned so it never masks the build's own result.
func (s *stagingArea) release(logger *log.Logger) {
	if err := os.RemoveAll(s.dir); err != nil {
		logger.Warn("failed to remove staging area", "dir", s.dir, "err", err)
	}
}
