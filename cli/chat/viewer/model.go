package viewer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/malonaz/docqa/cli/chat/styles"
	"github.com/malonaz/docqa/internal/conversation"
	"github.com/malonaz/docqa/internal/markdown"
)

// Reserved for the divider and footer.
const footerHeight = 2

var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(styles.SecondaryColor)

// ExitMsg is sent when exiting the viewer.
type ExitMsg struct{}

// Model is a full-screen reader showing one conversation entry at a time.
type Model struct {
	entries      []*conversation.Entry
	currentIndex int
	viewport     viewport.Model
	renderer     *markdown.Renderer
	width        int
	height       int
}

// New creates a new viewer starting at the latest entry.
func New(entries []*conversation.Entry, renderer *markdown.Renderer, width, height int) *Model {
	m := &Model{
		entries:      entries,
		currentIndex: max(len(entries)-1, 0),
		renderer:     renderer,
		width:        width,
		height:       height,
	}
	m.viewport = viewport.New(width, max(height-footerHeight, 1))
	// Leave the mouse to the terminal so text can be selected.
	m.viewport.MouseWheelEnabled = false
	m.updateContent()
	return m
}

// Init initializes the viewer model.
func (m *Model) Init() tea.Cmd {
	return tea.DisableMouse
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc":
			return m, func() tea.Msg { return ExitMsg{} }

		case "j", "right":
			if m.currentIndex < len(m.entries)-1 {
				m.currentIndex++
				m.updateContent()
			}
			return m, nil

		case "k", "left":
			if m.currentIndex > 0 {
				m.currentIndex--
				m.updateContent()
			}
			return m, nil

		case "g":
			m.viewport.GotoTop()
			return m, nil

		case "G":
			m.viewport.GotoBottom()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-footerHeight, 1)
		m.updateContent()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the viewer.
func (m *Model) View() string {
	if len(m.entries) == 0 {
		return "No messages to display. Press q to exit."
	}

	var b strings.Builder
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(styles.Divider(m.width))
	b.WriteString("\n")
	footer := fmt.Sprintf(" %d/%d │ k/j prev/next │ ↑/↓ scroll │ q exit", m.currentIndex+1, len(m.entries))
	b.WriteString(styles.HelpStyle.Render(footer))
	return b.String()
}

// Current returns the entry being shown, or nil when there is none.
func (m *Model) Current() *conversation.Entry {
	if len(m.entries) == 0 {
		return nil
	}
	return m.entries[m.currentIndex]
}

// updateContent shows the current entry from its top.
func (m *Model) updateContent() {
	entry := m.Current()
	if entry == nil {
		m.viewport.SetContent("No messages")
		return
	}

	var b strings.Builder
	switch {
	case entry.Role == conversation.RoleUser:
		b.WriteString(headerStyle.Render("👤 You"))
		b.WriteString("\n\n")
		b.WriteString(entry.Text)
	default:
		b.WriteString(headerStyle.Render("📚 Assistant"))
		b.WriteString("\n\n")
		if entry.Pending {
			b.WriteString(entry.Text)
			break
		}
		b.WriteString(m.renderer.Render(entry.ID, entry.Blocks...))
		if sources := entry.UniqueSources(); len(sources) > 0 {
			b.WriteString("\n\n")
			b.WriteString(headerStyle.Render("📄 Sources"))
			for _, source := range sources {
				b.WriteString("\n  • " + source)
			}
		}
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoTop()
}
