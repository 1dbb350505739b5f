package transcript

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/julianstephens/tasklit/internal/session"
)

var (
	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	suggestionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

const greeting = "Tell me what to do, e.g. \"create an urgent meeting with the team tomorrow\"."

// Entry is one exchange: the text typed and what came back.
type Entry struct {
	Input  string
	Result session.Result
	Err    error
}

type Model struct {
	viewport viewport.Model
	entries  []Entry
	width    int
}

func New(width, height int) Model {
	m := Model{viewport: viewport.New(width, height), width: width}
	m.Render()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m Model) Entries() []Entry {
	return m.entries
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

// Append adds an exchange and scrolls to it.
func (m *Model) Append(e Entry) {
	m.entries = append(m.entries, e)
	m.Render()
	m.viewport.GotoBottom()
}

func (m *Model) wrap(s string) string {
	if m.width <= 4 {
		return s
	}
	return wordwrap.String(s, m.width-4)
}

func (m *Model) Render() {
	if len(m.entries) == 0 {
		m.viewport.SetContent(suggestionStyle.Render(m.wrap(greeting)))
		return
	}

	var b strings.Builder
	for _, e := range m.entries {
		b.WriteString(inputStyle.Render("› "+e.Input) + "\n")
		if e.Err != nil {
			b.WriteString(errorStyle.Render(m.wrap("Error: "+e.Err.Error())) + "\n\n")
			continue
		}
		cmd := e.Result.Command
		b.WriteString(messageStyle.Render(m.wrap(cmd.Message)) + "\n")
		if cmd.Task != nil && cmd.Task.Content != "" {
			b.WriteString(messageStyle.Render("  "+cmd.Task.Content+"  ["+cmd.Task.ID+"]") + "\n")
		}
		for _, s := range cmd.Suggestions {
			b.WriteString(suggestionStyle.Render(m.wrap("  • "+s)) + "\n")
		}
		if e.Result.Output != "" {
			b.WriteString(e.Result.Output)
		}
		b.WriteString("\n")
	}
	m.viewport.SetContent(b.String())
}
