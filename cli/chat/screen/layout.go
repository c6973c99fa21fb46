package screen

import (
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/malonaz/docqa/cli/chat/styles"
	"github.com/malonaz/docqa/internal/conversation"
)

// recalculateLayout adjusts viewport and input dimensions based on current state.
func (m *Model) recalculateLayout() {
	if m.width == 0 || m.height == 0 {
		return
	}

	inputWidth := m.width - styles.InputLabelWidth - styles.FocusedInputStyle.GetHorizontalFrameSize() - 1
	if inputWidth < 1 {
		inputWidth = 1
	}
	m.usernameInput.Width = inputWidth
	m.queryInput.Width = inputWidth

	viewportHeight := m.height - lipgloss.Height(m.renderTitle()) - lipgloss.Height(m.renderFooter())
	if viewportHeight < styles.MinViewportHeight {
		viewportHeight = styles.MinViewportHeight
	}
	if err := m.renderer.SetWidth(m.width - styles.MessageHorizontalFrameSize()); err != nil {
		log.Error("resizing markdown renderer", "error", err)
	}

	if !m.ready {
		m.viewport = viewport.New(m.width, viewportHeight)
		m.ready = true
		m.refreshTranscript()
		return
	}
	m.viewport.Height = viewportHeight
	if m.viewport.Width != m.width {
		m.viewport.Width = m.width
		m.refreshTranscript()
		return
	}
	m.viewport.GotoBottom()
}

// refreshTranscript re-renders the whole conversation and scrolls to the latest entry.
func (m *Model) refreshTranscript() {
	if !m.ready {
		return
	}
	m.transcriptContent = m.renderTranscript()
	m.viewport.SetContent(m.transcriptContent)
	m.viewport.GotoBottom()
}

// appendToTranscript renders only the new entry after the existing content.
func (m *Model) appendToTranscript(entry *conversation.Entry) {
	if !m.ready {
		return
	}
	if m.transcriptContent != "" {
		m.transcriptContent += entrySeparator
	}
	m.transcriptContent += m.renderEntry(entry)
	m.viewport.SetContent(m.transcriptContent)
	m.viewport.GotoBottom()
}
