// Package tasks runs the organize operation and reports its progress.
//
// # Organize
//
// [Organizer.Organize] lists the immediate regular files of a directory, looks up
// each file's extension in a [models.Table], creates the category directory when
// needed and moves the file into it. Name collisions are resolved by
// [fsops.Namer]; moves never overwrite.
//
// A run only fails as a whole when the directory cannot be listed
// ([shared.ErrDirectoryNotFound]), and that happens before anything is touched.
// Per-file failures are logged, recorded as [models.Failed] outcomes and the run
// continues.
//
// # Progress Reporting
//
// Progress is sent as [ProgressUpdate] values on a caller-supplied channel, one
// per file plus a final completion (or "already empty") event. Sends block until
// the consumer receives or the context is done, so no per-file event is dropped.
// [Forward] adapts the channel to a (status, fraction) callback.
//
// # Lifecycle
//
// Idle → Scanning → (Empty | Processing) → Done, observable through
// [Organizer.State]. The Organizer holds no lock: callers must not start a second
// run while one is in flight. Cancelling the context stops the run between files
// and leaves the remaining files untouched.
package tasks
