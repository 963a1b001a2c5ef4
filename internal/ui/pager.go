package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

type pagerModel struct {
	viewport viewport.Model
	content  string
	ready    bool
	maxWidth int // maximum viewport width (0 = no limit)
	width    int
	height   int
	theme    Theme
}

func (m pagerModel) Init() tea.Cmd {
	return nil
}

func (m pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(m.contentWidth(), msg.Height-1)
			m.ready = true
		} else {
			m.viewport.Width = m.contentWidth()
			m.viewport.Height = msg.Height - 1
		}
		m.viewport.SetContent(m.content)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m pagerModel) contentWidth() int {
	if m.maxWidth > 0 && m.width > m.maxWidth {
		return m.maxWidth
	}
	return m.width
}

func (m pagerModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	footer := m.theme.HelpStyle().Render("↑/↓ scroll • q quit")
	body := lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), footer)
	body = lipgloss.NewStyle().Width(m.contentWidth()).Render(body)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Top, body)
}

// Pager writes long output through an interactive viewport when stdout is a
// terminal that cannot fit it.
type Pager struct {
	Theme    Theme
	MaxWidth int
}

// Page writes content to stdout, paging it if it exceeds the terminal height.
func (p Pager) Page(content string) error {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		fmt.Print(content)
		return nil
	}

	_, height, err := term.GetSize(fd)
	if err != nil || strings.Count(content, "\n")+1 <= height-2 {
		fmt.Print(content)
		return nil
	}

	maxWidth := p.MaxWidth
	if maxWidth == 0 {
		maxWidth = 100
	}
	prog := tea.NewProgram(pagerModel{content: content, maxWidth: maxWidth, theme: p.Theme}, tea.WithAltScreen())
	_, err = prog.Run()
	return err
}

// OutputOrPage writes content to w, using the pager only when w is stdout and
// the output is not JSON.
func (p Pager) OutputOrPage(w io.Writer, content string, jsonOutput bool) error {
	if !jsonOutput && w == os.Stdout {
		return p.Page(content)
	}
	_, err := fmt.Fprint(w, content)
	return err
}
