// Package tui is the full-screen task list: one row per task, with a
// prompt for adding and renaming tasks.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"task-list/internal/domain"
	"task-list/internal/errors"
	"task-list/internal/presenter"
)

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeEdit
)

const (
	addPrompt  = "New Task"
	editPrompt = "Edit"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#1565C0")).
			Padding(0, 1)
	promptLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1565C0"))
	promptBoxStyle   = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#1565C0")).
				Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
)

// taskItem implements list.Item for a task row
type taskItem struct {
	task *domain.Task
}

func (i taskItem) Title() string       { return i.task.Title }
func (i taskItem) Description() string { return "" }
func (i taskItem) FilterValue() string { return i.task.Title }

// Model is the bubbletea model for the list screen
type Model struct {
	ctx       context.Context
	presenter *presenter.TaskListPresenter
	title     string
	keys      keyMap

	list      list.Model
	input     textinput.Model
	help      help.Model
	mode      mode
	editIndex int

	status string
	err    error

	width  int
	height int
}

// New creates the list screen and loads the current tasks. A failed load is
// shown in the status line.
func New(ctx context.Context, p *presenter.TaskListPresenter, title string) *Model {
	keys := defaultKeyMap()

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	rows := list.New(nil, delegate, 0, 0)
	rows.SetShowTitle(false)
	rows.SetShowStatusBar(false)
	rows.SetFilteringEnabled(false)
	rows.DisableQuitKeybindings()
	rows.SetStatusBarItemName("task", "tasks")
	rows.AdditionalShortHelpKeys = keys.listKeys
	rows.AdditionalFullHelpKeys = keys.listKeys

	input := textinput.New()
	input.CharLimit = 0

	m := &Model{
		ctx:       ctx,
		presenter: p,
		title:     title,
		keys:      keys,
		list:      rows,
		input:     input,
		help:      help.New(),
		mode:      modeBrowse,
	}
	m.reload()
	return m
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if m.mode != modeBrowse {
			return m.updatePrompt(msg)
		}
		if cmd, handled := m.handleBrowseKey(msg); handled {
			return m, cmd
		}
	}

	if m.mode != modeBrowse {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) handleBrowseKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit, true
	case key.Matches(msg, m.keys.Add):
		return m.openPrompt(modeAdd, -1, ""), true
	case key.Matches(msg, m.keys.Edit):
		index := m.list.Index()
		task, err := m.presenter.TaskAt(index)
		if err != nil {
			return nil, true
		}
		return m.openPrompt(modeEdit, index, task.Title), true
	case key.Matches(msg, m.keys.Delete):
		m.deleteSelected()
		return nil, true
	case key.Matches(msg, m.keys.Reload):
		m.reload()
		return nil, true
	}
	return nil, false
}

func (m *Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closePrompt()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		m.submitPrompt()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) openPrompt(md mode, index int, value string) tea.Cmd {
	m.mode = md
	m.editIndex = index
	m.input.Prompt = "> "
	m.input.Placeholder = ""
	if md == modeAdd {
		m.input.Placeholder = addPrompt
	}
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.resize()
	return m.input.Focus()
}

func (m *Model) closePrompt() {
	m.mode = modeBrowse
	m.editIndex = -1
	m.input.Blur()
	m.input.Reset()
	m.resize()
}

// submitPrompt runs the add or edit for the prompt's value. Blank input
// closes the prompt without touching the list.
func (m *Model) submitPrompt() {
	value := m.input.Value()
	md, index := m.mode, m.editIndex
	m.closePrompt()

	if strings.TrimSpace(value) == "" {
		return
	}

	switch md {
	case modeAdd:
		task, err := m.presenter.Add(m.ctx, value)
		if err != nil {
			m.setError(err)
			return
		}
		m.syncItems()
		m.list.Select(m.presenter.Len() - 1)
		m.setStatus("Added " + task.Title)
	case modeEdit:
		task, err := m.presenter.Edit(m.ctx, index, value)
		if err != nil {
			m.setError(err)
			m.syncItems()
			return
		}
		m.syncItems()
		m.setStatus("Updated " + task.Title)
	}
}

func (m *Model) deleteSelected() {
	if m.presenter.Len() == 0 {
		return
	}
	index := m.list.Index()
	task, err := m.presenter.Delete(m.ctx, index)
	if err != nil {
		m.setError(err)
		return
	}
	m.syncItems()
	if index >= m.presenter.Len() && index > 0 {
		m.list.Select(index - 1)
	}
	m.setStatus("Deleted " + task.Title)
}

// reload fetches the tasks again. On failure the rows already on screen stay.
func (m *Model) reload() {
	if err := m.presenter.Load(m.ctx); err != nil {
		m.setError(err)
		return
	}
	m.syncItems()
	m.setStatus("")
}

func (m *Model) syncItems() {
	tasks := m.presenter.Tasks()
	items := make([]list.Item, len(tasks))
	for i, task := range tasks {
		items[i] = taskItem{task: task}
	}
	m.list.SetItems(items)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.err = nil
}

func (m *Model) setError(err error) {
	m.err = err
	m.status = errors.GetUserMessage(err)
}

func (m *Model) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}
	listHeight := m.height - lipgloss.Height(m.headerView()) - 1
	if m.mode != modeBrowse {
		listHeight -= lipgloss.Height(m.promptView())
	}
	if listHeight < 1 {
		listHeight = 1
	}
	m.list.SetSize(m.width, listHeight)
	m.help.Width = m.width
	m.input.Width = max(10, m.width-len(m.input.Prompt)-6)
}

// View implements tea.Model
func (m *Model) View() string {
	sections := []string{m.headerView()}
	if m.mode != modeBrowse {
		sections = append(sections, m.promptView())
	}
	if m.presenter.Len() == 0 {
		sections = append(sections,
			statusStyle.Render("No tasks yet. Press a to add one."),
			m.help.ShortHelpView(m.keys.emptyKeys()),
		)
	} else {
		sections = append(sections, m.list.View())
	}
	sections = append(sections, m.statusView())
	return strings.Join(sections, "\n")
}

func (m *Model) headerView() string {
	style := headerStyle
	if m.width > 0 {
		style = style.Width(m.width)
	}
	return style.Render(m.title)
}

func (m *Model) promptView() string {
	label := promptLabelStyle.Render(promptFor(m.mode))
	return promptBoxStyle.Render(label + "\n" + m.input.View())
}

func (m *Model) statusView() string {
	if m.err != nil {
		return errorStyle.Render(m.status)
	}
	return statusStyle.Render(m.status)
}

func promptFor(md mode) string {
	if md == modeEdit {
		return editPrompt
	}
	return addPrompt
}
