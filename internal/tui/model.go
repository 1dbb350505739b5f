// Package tui is the interactive terminal front end: a chat tab that feeds
// commands to a session, the rendered task canvas and a task list.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/tasklit/internal/logger"
	"github.com/julianstephens/tasklit/internal/session"
	"github.com/julianstephens/tasklit/internal/tui/components/tasklist"
	"github.com/julianstephens/tasklit/internal/tui/components/transcript"
)

type SessionState int

const (
	StateChat SessionState = iota
	StateCanvas
	StateTasks
	StateConfirmDelete
)

const tabCount = 3

// chrome is the rows taken by tabs, help and margins around a tab's body.
const chrome = 6

const (
	defaultWidth  = 80
	defaultHeight = 24
)

type Model struct {
	sess           *session.Session
	state          SessionState
	keys           KeyMap
	help           help.Model
	input          textinput.Model
	transcript     transcript.Model
	canvasView     viewport.Model
	advanced       bool
	taskList       tasklist.Model
	taskToDeleteID string
	status         string
	quitting       bool
	width          int
	height         int
}

func NewModel(sess *session.Session) Model {
	ti := textinput.New()
	ti.Placeholder = "create an urgent meeting with the team tomorrow"
	ti.Prompt = "› "
	ti.CharLimit = 500
	ti.Focus()

	tasks, err := sess.Tasks()
	if err != nil {
		logger.Warn("failed to load tasks", "error", err)
	}

	m := Model{
		sess:       sess,
		state:      StateChat,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		input:      ti,
		transcript: transcript.New(defaultWidth, defaultHeight-chrome-3),
		canvasView: viewport.New(defaultWidth, defaultHeight-chrome),
		taskList:   tasklist.New(tasks, defaultWidth, defaultHeight-chrome),
	}
	m.resize(defaultWidth, defaultHeight)
	m.refresh()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit}
	switch m.state {
	case StateChat:
		keys = append(keys, m.keys.Send, m.keys.Scroll)
	case StateCanvas:
		keys = append(keys, m.keys.Close, m.keys.Advanced)
	case StateTasks:
		keys = append(keys, m.keys.Close, m.keys.Done, m.keys.Delete)
	case StateConfirmDelete:
		keys = []key.Binding{m.keys.Confirm, m.keys.Cancel}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	bodyW := max(width-4, 20)
	bodyH := max(height-chrome, 3)
	m.input.Width = bodyW - 6
	m.transcript.SetSize(bodyW, max(bodyH-3, 1))
	m.canvasView.Width = bodyW
	m.canvasView.Height = bodyH
	m.taskList.SetSize(bodyW, bodyH)
}

// refresh reloads the canvas and task list from the store.
func (m *Model) refresh() {
	out, err := m.sess.Canvas(m.advanced)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.canvasView.SetContent(out)

	tasks, err := m.sess.Tasks()
	if err != nil {
		m.status = err.Error()
		return
	}
	m.taskList.SetTasks(tasks)
}
