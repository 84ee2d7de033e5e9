//go:build !unix

package fsops

import (
	"fmt"
	"os"

	"github.com/desertthunder/tidyx/internal/shared"
)

// CheckDirectoryAccess verifies that dir exists and is a directory.
func CheckDirectoryAccess(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", shared.ErrDirectoryNotFound, dir, unwrapPath(err))
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", shared.ErrDirectoryNotFound, dir)
	}
	if _, err := os.ReadDir(dir); err != nil {
		return fmt.Errorf("%w: %s: %v", shared.ErrDirectoryNotFound, dir, unwrapPath(err))
	}
	return nil
}
