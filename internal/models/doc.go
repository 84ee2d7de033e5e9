// Package models defines the data types shared by the organizer and its shells.
//
// The package contains three groups of types:
//
// 1. Classification: the routing table from categories to extensions
//   - [Category] : A named bucket and the lowercase extensions it claims
//   - [Table] : Ordered categories; the first category listing an extension wins
//
// 2. Inputs: what a run sees in the target directory
//   - [FileEntry] : An immediate regular file with its derived extension
//
// 3. Outputs: what a run did with each file
//   - [Outcome] : Moved, skipped, failed, planned or the informational "already empty"
//   - [Result] : A [FileEntry] paired with its [Outcome]
//
// Nothing here persists beyond a single run.
package models
