//go:build unix

package fsops

import (
	"fmt"
	"os"

	"github.com/desertthunder/tidyx/internal/shared"
	"golang.org/x/sys/unix"
)

// CheckDirectoryAccess verifies that dir exists, is a directory, and can be listed and written.
func CheckDirectoryAccess(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", shared.ErrDirectoryNotFound, dir, unwrapPath(err))
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", shared.ErrDirectoryNotFound, dir)
	}
	if err := unix.Access(dir, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return fmt.Errorf("%w: %s: insufficient permissions: %v", shared.ErrDirectoryNotFound, dir, err)
	}
	return nil
}
