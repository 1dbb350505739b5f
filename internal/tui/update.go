package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/tasklit/internal/session"
	"github.com/julianstephens/tasklit/internal/tui/components/tasklist"
	"github.com/julianstephens/tasklit/internal/tui/components/transcript"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tasklist.DoneTaskMsg:
		task, err := m.sess.Complete(msg.ID)
		if err != nil {
			m.status = err.Error()
		} else {
			m.status = "Completed: " + task.Content
		}
		m.refresh()
		return m, nil

	case tasklist.DeleteTaskMsg:
		m.taskToDeleteID = msg.ID
		m.state = StateConfirmDelete
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		if m.state == StateConfirmDelete {
			return m.updateConfirmDelete(msg)
		}
		if !m.taskList.Filtering() {
			switch {
			case key.Matches(msg, m.keys.Tab):
				m.switchTab(1)
				return m, nil
			case key.Matches(msg, m.keys.ShiftTab):
				m.switchTab(tabCount - 1)
				return m, nil
			case m.state != StateChat && key.Matches(msg, m.keys.Close):
				m.quitting = true
				return m, tea.Quit
			case m.state != StateChat && key.Matches(msg, m.keys.Help):
				m.help.ShowAll = !m.help.ShowAll
				return m, nil
			}
		}
	}

	switch m.state {
	case StateChat:
		return m.updateChat(msg)
	case StateCanvas:
		return m.updateCanvas(msg)
	case StateTasks:
		var cmd tea.Cmd
		m.taskList, cmd = m.taskList.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) switchTab(step int) {
	m.state = (m.state + SessionState(step)) % tabCount
	m.status = ""
	if m.state == StateChat {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
	m.refresh()
}

func (m Model) updateChat(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Send):
			m.submit()
			return m, nil
		case key.Matches(msg, m.keys.Scroll):
			m.transcript, cmd = m.transcript.Update(msg)
			return m, cmd
		}
	}
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submit() {
	text := m.input.Value()
	m.input.Reset()

	res, err := m.sess.Handle(text)
	if errors.Is(err, session.ErrEmptyCommand) {
		return
	}
	m.transcript.Append(transcript.Entry{Input: text, Result: res, Err: err})
	m.refresh()
}

func (m Model) updateCanvas(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Advanced) {
		m.advanced = !m.advanced
		m.refresh()
		m.canvasView.GotoTop()
		return m, nil
	}
	var cmd tea.Cmd
	m.canvasView, cmd = m.canvasView.Update(msg)
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		res, err := m.sess.Handle("delete " + m.taskToDeleteID)
		switch {
		case err != nil:
			m.status = err.Error()
		default:
			m.status = res.Command.Message
		}
	case key.Matches(msg, m.keys.Cancel):
		m.status = fmt.Sprintf("Kept task %s.", m.taskToDeleteID)
	default:
		return m, nil
	}
	m.taskToDeleteID = ""
	m.state = StateTasks
	m.refresh()
	return m, nil
}
