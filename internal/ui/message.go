package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tidyx/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgPathChecked MsgKind = iota
	MsgProgressUpdate
	MsgOrganizeComplete
)

// Kind reports which member of the union m is.
func (m Msg) Kind() MsgKind { return m.kind }

type pathChecked struct {
	path string
	err  error
}

type organizeComplete struct {
	result *tasks.RunResult
	err    error
}

// pathCheckedMsg is the constructor for [MsgPathChecked]
func pathCheckedMsg(path string, err error) Msg {
	return Msg{kind: MsgPathChecked, data: pathChecked{path, err}}
}

// progressUpdateMsg is the constructor for [MsgProgressUpdate]
func progressUpdateMsg(update tasks.ProgressUpdate) Msg {
	return Msg{kind: MsgProgressUpdate, data: update}
}

// organizeCompleteMsg is the constructor for [MsgOrganizeComplete]
func organizeCompleteMsg(result *tasks.RunResult, err error) Msg {
	return Msg{kind: MsgOrganizeComplete, data: organizeComplete{result, err}}
}
