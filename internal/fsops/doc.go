// Package fsops holds the filesystem primitives used by the organizer.
//
// # Listing
//
// [ListFiles] returns the immediate regular files of a directory in name order.
// Subdirectories are never descended into. Symlinks count when they resolve to a
// regular file.
//
// # Moving
//
// [Move] never overwrites. On Linux it uses renameat2 with RENAME_NOREPLACE so the
// existence check and the rename are a single step. Elsewhere, or when the
// filesystem rejects the flag, a hard link followed by an unlink gives the same
// create-if-absent behaviour; a stat-guarded rename is the last resort and has a
// small race window.
//
// Moves that cross a device boundary fall back to an exclusive copy verified by
// size and SHA-256, then removal of the source. When any step fails the
// destination is removed and the source is left where it was.
//
// # Collisions
//
// [Namer] hands out free destination names. The first alternative is
// base_<unix seconds>ext, matching earlier releases; repeated collisions append a
// strictly increasing counter so two files renamed in the same second never clash.
package fsops
