package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/malonaz/docqa/cli/chat/styles"
	"github.com/malonaz/docqa/internal/conversation"
)

const (
	helpText       = "Enter: send │ Tab: switch input │ Ctrl+O: upload │ Alt+P/N: history │ Alt+W: copy answer │ Alt+V: view │ Ctrl+C: quit"
	pickerHelpText = "Enter: upload │ Esc: cancel"

	entrySeparator = "\n\n"
)

// View renders the model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing..."
	}
	if m.viewerMode && m.viewerModel != nil {
		return m.alert.Render(m.viewerModel.View())
	}

	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteString("\n")
	if m.pickerOpen {
		b.WriteString(styles.PickerStyle.Render(m.picker.View()))
		b.WriteString("\n")
		b.WriteString(styles.HelpStyle.Render(pickerHelpText))
	} else {
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
		b.WriteString(m.renderFooter())
	}
	return m.alert.Render(b.String())
}

func (m *Model) renderTitle() string {
	identity := "not logged in"
	if m.identityLabel != "" {
		identity = m.identityLabel
	}
	title := fmt.Sprintf(" 📚 docqa │ %s ", styles.IdentityStyle.Render(identity))
	return styles.TitleStyle.Width(m.width).Render(title)
}

func (m *Model) renderFooter() string {
	lines := []string{
		styles.Divider(m.width),
		m.renderStatus(),
		renderInput("Username", m.usernameInput, m.focus == focusUsername),
		renderInput("Question", m.queryInput, m.focus == focusQuery),
		styles.HelpStyle.Render(helpText),
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderStatus() string {
	var parts []string
	if m.inFlight > 0 {
		parts = append(parts, m.spinner.View())
	}
	if m.uploadStatus != nil {
		parts = append(parts, styles.StatusStyle(m.uploadStatus.Tone).Render(m.uploadStatus.Text))
	}
	return strings.Join(parts, " ")
}

func renderInput(label string, input textinput.Model, focused bool) string {
	style := styles.BlurredInputStyle
	if focused {
		style = styles.FocusedInputStyle
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, styles.InputLabelStyle.Render(label), style.Render(input.View()))
}

func (m *Model) renderTranscript() string {
	entries := m.transcript.Entries()
	rendered := make([]string, 0, len(entries))
	for _, entry := range entries {
		rendered = append(rendered, m.renderEntry(entry))
	}
	return strings.Join(rendered, entrySeparator)
}

func (m *Model) renderEntry(entry *conversation.Entry) string {
	switch {
	case entry.Pending:
		return styles.PendingMessageStyle.Render(entry.Text)

	case entry.Role == conversation.RoleUser:
		// User text is shown verbatim, never interpreted as markup.
		width := m.viewport.Width - styles.UserMessageStyle.GetHorizontalFrameSize()
		if width < 1 {
			return styles.UserMessageStyle.Render(entry.Text)
		}
		return styles.UserMessageStyle.Render(lipgloss.NewStyle().Width(width).Render(entry.Text))

	default:
		rendered := styles.AIMessageStyle.Render(m.renderer.Render(entry.ID, entry.Blocks...))
		if annotation := entry.SourceAnnotation(); annotation != "" {
			rendered += "\n" + styles.SourcesStyle.Render("📄 "+annotation)
		}
		return rendered
	}
}
