package tui

import (
	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateChat:
		content = m.viewChat()
	case StateCanvas:
		content = docStyle.Render(m.canvasView.View())
	case StateTasks:
		content = docStyle.Render(m.taskList.View())
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	parts := []string{m.viewTabs(), content}
	if m.status != "" {
		parts = append(parts, statusStyle.Render(m.status))
	}
	parts = append(parts, m.help.View(m))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Chat", "Canvas", "Tasks"} {
		if m.state == SessionState(i) || (m.state == StateConfirmDelete && SessionState(i) == StateTasks) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewChat() string {
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.transcript.View(),
		inputBoxStyle.Render(m.input.View()),
	))
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, max(m.height-4, 5),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Are you sure you want to delete this task?"),
			m.taskToDeleteID,
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
