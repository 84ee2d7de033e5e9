package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"

	"github.com/desertthunder/tidyx/internal/shared"
	"github.com/gofrs/flock"
)

// lockPath names the lock file for dir. It lives outside dir so it is never organized.
func (r *Runner) lockPath(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", shared.ErrInvalidArgument, dir, err)
	}
	sum := sha256.Sum256([]byte(filepath.Clean(abs)))
	return filepath.Join(r.lockDir, "tidyx-"+hex.EncodeToString(sum[:8])+".lock"), nil
}

// acquireLock takes the per-folder lock, failing fast when another run holds it.
func (r *Runner) acquireLock(dir string) (*flock.Flock, error) {
	path, err := r.lockPath(dir)
	if err != nil {
		return nil, err
	}

	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrOrganizeInProgress, dir)
	}

	r.logger.Debug("lock acquired", "dir", dir, "lock", path)
	return lock, nil
}

func (r *Runner) releaseLock(lock *flock.Flock) {
	if err := lock.Unlock(); err != nil {
		r.logger.Warn("failed to release lock", "lock", lock.Path(), "error", err)
	}
}
