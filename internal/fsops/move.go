package fsops

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"syscall"

	"github.com/desertthunder/tidyx/internal/shared"
)

// Move moves src to dst without replacing an existing dst.
//
// Returns an error wrapping [shared.ErrDestinationExists] when dst is taken. On
// any error src is left in place.
func Move(src, dst string) error {
	err := renameNoReplace(src, dst)
	if err == nil {
		return nil
	}

	if errors.Is(err, syscall.EXDEV) {
		return copyAcross(src, dst)
	}
	return err
}

// linkOrRename moves src to dst using a hard link and unlink, falling back to a
// stat-guarded rename when the filesystem has no hard links.
func linkOrRename(src, dst string) error {
	err := os.Link(src, dst)
	switch {
	case err == nil:
		if err := os.Remove(src); err != nil {
			_ = os.Remove(dst)
			return err
		}
		return nil
	case errors.Is(err, fs.ErrExist):
		return destinationExists(dst)
	case errors.Is(err, syscall.EXDEV), errors.Is(err, fs.ErrNotExist):
		return err
	}

	exists, statErr := Exists(dst)
	if statErr != nil {
		return statErr
	}
	if exists {
		return destinationExists(dst)
	}
	return os.Rename(src, dst)
}

// copyAcross copies src to a new dst, verifies it, and removes src.
func copyAcross(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	if err := copyVerified(src, dst, info); err != nil {
		return err
	}

	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("preserve modification time: %w", err)
	}

	if err := os.Remove(src); err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("remove source after copy: %w", err)
	}
	return nil
}

// copyVerified streams src into a freshly created dst with SHA256 + size
// verification. dst must not exist. Removes dst on any failure.
func copyVerified(src, dst string, info fs.FileInfo) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return destinationExists(dst)
		}
		return err
	}
	defer func() {
		_ = out.Close()
		if err != nil {
			_ = os.Remove(dst)
		}
	}()

	srcHasher := sha256.New()
	dstHasher := sha256.New()
	tee := io.TeeReader(in, srcHasher)
	multi := io.MultiWriter(out, dstHasher)

	written, err := io.Copy(multi, tee)
	if err != nil {
		return err
	}
	if err = out.Sync(); err != nil {
		return err
	}
	if err = out.Close(); err != nil {
		return err
	}

	if written != info.Size() {
		err = fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", info.Size(), written)
		return err
	}
	if !bytes.Equal(srcHasher.Sum(nil), dstHasher.Sum(nil)) {
		err = fmt.Errorf("copy hash mismatch: file corrupted during copy")
		return err
	}
	return nil
}

func destinationExists(dst string) error {
	return fmt.Errorf("%w: %s", shared.ErrDestinationExists, dst)
}
