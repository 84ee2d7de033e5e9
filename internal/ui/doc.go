// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a short workflow for organizing a folder:
//  1. [PathView] : Edit the folder path (pre-filled with the user's Downloads folder)
//  2. [OrganizeView] : Monitor the progress bar and status text while files are moved
//  3. [ResultView] : Display the moved/total summary and any files that could not be moved
//  4. [CategoriesView] : Browse the active classification table
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Progress updates flow through a channel from the [tasks.Engine]; the model drains it one message at a time,
// so widgets are only ever touched from Update.
//
// Keyboard navigation uses enter, tab, esc, r and q with contextual help displayed via charmbracelet/bubbles/help.
package ui
