package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tidyx/internal/formatter"
	"github.com/desertthunder/tidyx/internal/fsops"
	"github.com/desertthunder/tidyx/internal/models"
	"github.com/desertthunder/tidyx/internal/shared"
	"github.com/desertthunder/tidyx/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	PathView ViewState = iota
	OrganizeView
	ResultView
	CategoriesView
)

func (v ViewState) String() string {
	switch v {
	case PathView:
		return "path"
	case OrganizeView:
		return "organize"
	case ResultView:
		return "result"
	case CategoriesView:
		return "categories"
	default:
		return ""
	}
}

// progressBuffer sizes the channel between the engine and the model.
const progressBuffer = 50

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	cancel       context.CancelFunc
	view         ViewState
	engine       tasks.Engine
	table        models.Table
	width        int
	height       int
	input        textinput.Model
	bar          progress.Model
	categories   list.Model
	path         string
	running      bool
	progressChan chan tasks.ProgressUpdate
	done         chan organizeComplete
	progress     tasks.ProgressUpdate
	received     bool
	result       *tasks.RunResult
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model. startPath pre-fills the folder input.
func NewModel(ctx context.Context, engine tasks.Engine, table models.Table, startPath string) *Model {
	input := textinput.New()
	input.Prompt = "Folder: "
	input.Placeholder = shared.DefaultDownloadsDir()
	input.CharLimit = 4096
	input.Width = 60
	input.SetValue(startPath)
	input.Focus()

	return &Model{
		ctx:        ctx,
		view:       PathView,
		engine:     engine,
		table:      table,
		input:      input,
		bar:        progress.New(progress.WithDefaultGradient()),
		categories: newCategoryList(table),
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Init starts the cursor blinking in the path input.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Current returns the view currently shown.
func (m *Model) Current() ViewState { return m.view }

// Running reports whether an organize run is in flight.
func (m *Model) Running() bool { return m.running }

// Result returns the last completed run, if any.
func (m *Model) Result() *tasks.RunResult { return m.result }

// Err returns the error currently displayed, if any.
func (m *Model) Err() error { return m.err }

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = max(msg.Width-8, 10)
		m.categories.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case PathView:
			return m.handlePathKeys(msg)
		case OrganizeView:
			return m.handleOrganizeKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		case CategoriesView:
			return m.handleCategoriesKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	var cmd tea.Cmd
	switch m.view {
	case PathView:
		m.input, cmd = m.input.Update(msg)
	case CategoriesView:
		m.categories, cmd = m.categories.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgPathChecked:
		data := msg.data.(pathChecked)
		if data.err != nil {
			m.err = data.err
			return m, nil
		}
		return m, m.startOrganize(data.path)

	case MsgProgressUpdate:
		m.progress = msg.data.(tasks.ProgressUpdate)
		m.received = true
		return m, m.waitForProgress()

	case MsgOrganizeComplete:
		data := msg.data.(organizeComplete)
		m.running = false
		m.progressChan = nil
		m.done = nil
		if m.cancel != nil {
			m.cancel()
			m.cancel = nil
		}
		m.result = data.result
		m.err = data.err
		m.view = ResultView
		return m, nil
	}
	return m, nil
}

func (m *Model) handlePathKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.forceQuit), msg.Type == tea.KeyEsc:
		return m, tea.Quit
	case key.Matches(msg, m.keys.start):
		if m.running {
			return m, nil
		}
		m.err = nil
		return m, checkPath(m.input.Value())
	case key.Matches(msg, m.keys.categories):
		m.view = CategoriesView
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if msg.Type == tea.KeyRunes || msg.Type == tea.KeyBackspace {
		m.err = nil
	}
	return m, cmd
}

func (m *Model) handleOrganizeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.forceQuit):
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit
	case key.Matches(msg, m.keys.cancel):
		if m.cancel != nil {
			m.cancel()
		}
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.restart):
		m.view = PathView
		m.result = nil
		m.err = nil
		m.progress = tasks.ProgressUpdate{}
		return m, m.input.Focus()
	}
	return m, nil
}

func (m *Model) handleCategoriesKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.forceQuit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = PathView
		return m, nil
	}

	var cmd tea.Cmd
	m.categories, cmd = m.categories.Update(msg)
	return m, cmd
}

// checkPath validates the folder before anything is touched.
func checkPath(raw string) tea.Cmd {
	return func() tea.Msg {
		path := shared.ExpandHome(strings.TrimSpace(raw))
		if path == "" {
			return pathCheckedMsg("", fmt.Errorf("%w: folder path is empty", shared.ErrMissingArgument))
		}
		return pathCheckedMsg(path, fsops.CheckDirectoryAccess(path))
	}
}

func (m *Model) startOrganize(path string) tea.Cmd {
	if m.running {
		return nil
	}

	ctx, cancel := context.WithCancel(m.ctx)
	progressChan := make(chan tasks.ProgressUpdate, progressBuffer)
	done := make(chan organizeComplete, 1)

	m.cancel = cancel
	m.progressChan = progressChan
	m.done = done
	m.path = path
	m.running = true
	m.result = nil
	m.err = nil
	m.progress = tasks.ProgressUpdate{Message: "Scanning..."}
	m.received = false
	m.view = OrganizeView

	engine, table := m.engine, m.table
	go func() {
		result, err := engine.Organize(ctx, path, table, progressChan)
		done <- organizeComplete{result: result, err: err}
		close(progressChan)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	progressChan, done := m.progressChan, m.done
	return func() tea.Msg {
		if progressChan == nil {
			return organizeCompleteMsg(nil, nil)
		}

		update, ok := <-progressChan
		if !ok {
			res := <-done
			return organizeCompleteMsg(res.result, res.err)
		}
		return progressUpdateMsg(update)
	}
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case PathView:
		return m.renderPath()
	case OrganizeView:
		return m.renderOrganize()
	case ResultView:
		return m.renderResult()
	case CategoriesView:
		return m.renderCategories()
	default:
		return ""
	}
}

func (m *Model) renderPath() string {
	title := styles.title.Render("Organize a folder")

	var status string
	if m.err != nil {
		status = "\n" + styles.err.Render(fmt.Sprintf("Error: %v", m.err))
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.start, m.keys.categories, m.keys.forceQuit})
	return fmt.Sprintf("%s\n%s\n%s\n\n%s", title, m.input.View(), status, helpView)
}

func (m *Model) renderOrganize() string {
	title := styles.title.Render(fmt.Sprintf("Organizing %s", m.path))

	counter := ""
	if m.progress.Total > 0 {
		counter = fmt.Sprintf(" (%d/%d)", m.progress.Step, m.progress.Total)
	}
	fraction := 0.0
	if m.received {
		fraction = m.progress.Fraction()
	}

	status := styles.status.Render(m.progress.Message + counter)
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.cancel, m.keys.forceQuit})
	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s", title, m.bar.ViewAs(fraction), status, helpView)
}

func (m *Model) renderResult() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.restart, m.keys.quit})

	if m.err != nil {
		return fmt.Sprintf("%s\n\n%s", styles.err.Render(fmt.Sprintf("Organize failed: %v", m.err)), helpView)
	}
	if m.result == nil {
		return fmt.Sprintf("%s\n\n%s", styles.err.Render("No result available"), helpView)
	}

	var title string
	switch {
	case m.result.Empty:
		title = styles.ok.Render("Folder is already empty!")
	case m.result.Canceled:
		title = styles.warn.Render("Organize canceled")
	case m.result.DryRun:
		title = styles.ok.Render("Dry run complete")
	default:
		title = styles.ok.Render(fmt.Sprintf("Success! Organized %d files.", m.result.Moved))
	}

	info := "\n" + formatter.SummaryLine(m.result)

	var failed string
	if failures := m.result.Failures(); len(failures) > 0 {
		failed = fmt.Sprintf("\n\n%s", styles.warn.Render(fmt.Sprintf("Could not move %d files:", len(failures))))
		for _, res := range failures {
			failed += fmt.Sprintf("\n  • %s - %s", res.File.Name, res.Outcome.Reason)
		}
	}

	return fmt.Sprintf("%s\n%s%s\n\n%s", title, info, failed, helpView)
}

func (m *Model) renderCategories() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.forceQuit})
	return fmt.Sprintf("%s\n\n%s", m.categories.View(), helpView)
}
