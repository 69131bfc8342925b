// Package tui provides the Bubble Tea game interface.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/scramble/internal/engine"
	"github.com/verte-zerg/scramble/internal/session"
)

// Model implements the Bubble Tea game UI.
type Model struct {
	sess  *session.Session
	input textinput.Model

	width  int
	height int

	notice       engine.Message
	showingError bool
	err          error
}

var (
	rootStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	counterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	wordStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#FF4D4F")).
			Padding(0, 1)
	errorTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
)

const helpText = "enter submit · ctrl+r restart · esc quit"

// NewModel constructs the game UI for a started session.
func NewModel(s *session.Session) *Model {
	input := textinput.New()
	input.Placeholder = "Enter your word"
	input.Prompt = "> "
	input.CharLimit = 64
	input.Focus()
	return &Model{sess: s, input: input}
}

// Err returns the error that ended the program, if any.
func (m *Model) Err() error {
	return m.err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.showingError {
				m.dismissError()
				return m, nil
			}
			return m, m.submit()
		case tea.KeyCtrlR:
			return m, m.restart()
		}
		m.dismissError()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	sections := []string{
		labelStyle.Render("Root word") + " " + rootStyle.Render(m.sess.Root()),
		m.input.View(),
		m.renderCounters(),
	}
	if m.showingError {
		sections = append(sections, m.renderError())
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	if lines := wrapWords(m.sess.Used(), width-2); len(lines) > 0 {
		for i, line := range lines {
			lines[i] = wordStyle.Render(line)
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}
	sections = append(sections, footerStyle.Render(helpText))
	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Top, content)
}

func (m *Model) submit() tea.Cmd {
	res, err := m.sess.Submit(m.input.Value())
	if err != nil {
		m.err = err
		return tea.Quit
	}
	if res.OK() {
		m.input.Reset()
		m.dismissError()
		return nil
	}
	// Keep the input so the word can be edited and resubmitted.
	m.notice = res.Message(m.sess.Root())
	m.showingError = true
	return nil
}

func (m *Model) restart() tea.Cmd {
	if err := m.sess.Restart(); err != nil {
		m.err = err
		return tea.Quit
	}
	m.input.Reset()
	m.dismissError()
	return nil
}

func (m *Model) dismissError() {
	m.showingError = false
	m.notice = engine.Message{}
}

func (m *Model) renderCounters() string {
	score := m.sess.Score()
	return fmt.Sprintf("%s %s   %s %s",
		labelStyle.Render("Words"), counterStyle.Render(fmt.Sprintf("%d", score.Words)),
		labelStyle.Render("Letters"), counterStyle.Render(fmt.Sprintf("%d", score.Letters)),
	)
}

func (m *Model) renderError() string {
	return errorStyle.Render(errorTitleStyle.Render(m.notice.Title) + "\n" + m.notice.Text)
}
