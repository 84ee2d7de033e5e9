package fsops

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/tidyx/internal/models"
	"github.com/desertthunder/tidyx/internal/shared"
)

// DefaultDirPermissions is used for category directories.
const DefaultDirPermissions = 0755

// SplitExt splits name into base and extension, keeping the original case.
//
// Leading dots belong to the base, so ".bashrc" has no extension while
// "archive.tar.gz" has ".gz" and "notes." has ".".
func SplitExt(name string) (string, string) {
	i := strings.LastIndex(name, ".")
	if i <= 0 {
		return name, ""
	}
	if strings.TrimLeft(name[:i], ".") == "" {
		return name, ""
	}
	return name[:i], name[i:]
}

// Ext returns the lowercase extension of name as defined by [SplitExt].
func Ext(name string) string {
	_, ext := SplitExt(name)
	return strings.ToLower(ext)
}

// ListFiles returns the immediate regular files of dir sorted by name.
//
// Any failure to read dir is reported as [shared.ErrDirectoryNotFound].
func ListFiles(dir string) ([]models.FileEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", shared.ErrDirectoryNotFound, dir, unwrapPath(err))
	}

	files := make([]models.FileEntry, 0, len(entries))
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		var info fs.FileInfo
		switch {
		case entry.Type().IsRegular():
			info, err = entry.Info()
		case entry.Type()&fs.ModeSymlink != 0:
			info, err = os.Stat(path)
		default:
			continue
		}
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		files = append(files, models.FileEntry{
			Name: entry.Name(),
			Ext:  Ext(entry.Name()),
			Path: path,
			Size: info.Size(),
		})
	}
	return files, nil
}

// EnsureDir creates dir and any missing parents. An existing directory is not an error.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		return fmt.Errorf("%w: %s: %v", shared.ErrDirectoryCreateFailed, dir, unwrapPath(err))
	}
	return nil
}

// Exists reports whether anything, including a dangling symlink, occupies path.
func Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// unwrapPath drops the *PathError wrapper so messages don't repeat the path.
func unwrapPath(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	return err
}
