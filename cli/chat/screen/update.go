package screen

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.dalton.dog/bubbleup"
	"golang.design/x/clipboard"

	"github.com/malonaz/docqa/cli/chat/viewer"
)

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Always update the alert model with every message
	outAlert, alertCmd := m.alert.Update(msg)
	m.alert = outAlert.(bubbleup.AlertModel)
	if alertCmd != nil {
		cmds = append(cmds, alertCmd)
	}

	defer func() {
		switch msg.(type) {
		case spinner.TickMsg, cursor.BlinkMsg, tea.MouseMsg:
		default:
			log.Debug("update completed", "msg_type", fmt.Sprintf("%T", msg), "in_flight", m.inFlight)
		}
	}()

	switch msg := msg.(type) {
	case viewer.ExitMsg:
		m.viewerMode = false
		m.viewerModel = nil
		m.refreshTranscript()
		return m, tea.Batch(append(cmds, tea.EnableMouseCellMotion)...)

	case tea.KeyMsg:
		if m.viewerMode {
			var cmd tea.Cmd
			m.viewerModel, cmd = m.viewerModel.Update(msg)
			return m, tea.Batch(append(cmds, cmd)...)
		}
		cmds = append(cmds, m.handleKey(msg))
		cmds = append(cmds, m.drainQueue()...)
		return m, tea.Batch(cmds...)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.viewerMode {
			m.viewerModel, _ = m.viewerModel.Update(msg)
		}
		m.recalculateLayout()

	case settleMsg:
		m.inFlight--
		if msg.settle != nil {
			msg.settle()
		}
		m.recalculateLayout()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	// Directory listings, cursor blinks and resizes.
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	cmds = append(cmds, cmd)
	m.usernameInput, cmd = m.usernameInput.Update(msg)
	cmds = append(cmds, cmd)
	m.queryInput, cmd = m.queryInput.Update(msg)
	cmds = append(cmds, cmd)
	if m.ready {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	cmds = append(cmds, m.drainQueue()...)
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return tea.Quit
	}
	if m.pickerOpen {
		return m.handlePickerKey(msg)
	}

	switch msg.String() {
	case "tab", "shift+tab":
		if m.focus == focusUsername {
			m.setFocus(focusQuery)
		} else {
			m.setFocus(focusUsername)
		}
		return nil

	case "ctrl+o":
		m.gateway.DropzoneActivated()
		return nil

	case "alt+w":
		return m.copyLastAnswer()

	case "alt+v":
		if m.transcript.Len() == 0 {
			return nil
		}
		m.viewerMode = true
		m.viewerModel = viewer.New(m.transcript.Entries(), m.renderer, m.width, m.height)
		return m.viewerModel.Init()

	case "pgup", "pgdown", "ctrl+u", "ctrl+d", "up", "down":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}

	if m.focus == focusUsername {
		return m.handleUsernameKey(msg)
	}
	return m.handleQueryKey(msg)
}

func (m *Model) handleUsernameKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyEnter {
		return m.dispatch(m.gateway.RegisterPressed(m.usernameInput.Value()))
	}
	var cmd tea.Cmd
	m.usernameInput, cmd = m.usernameInput.Update(msg)
	return cmd
}

func (m *Model) handleQueryKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "alt+p":
		if entry, ok := m.history.Previous(m.queryInput.Value()); ok {
			m.queryInput.SetValue(entry)
			m.queryInput.CursorEnd()
			m.historyNavigating = true
		}
		return nil
	case "alt+n":
		if entry, ok := m.history.Next(); ok {
			m.queryInput.SetValue(entry)
			m.queryInput.CursorEnd()
			m.historyNavigating = true
		}
		return nil
	}

	if request := m.gateway.KeyPressed(msg.String(), m.queryInput.Value()); request != nil {
		return m.dispatch(request)
	}

	if m.historyNavigating {
		switch msg.Type {
		case tea.KeyRunes, tea.KeyBackspace, tea.KeyDelete:
			m.history.Reset()
			m.historyNavigating = false
		}
	}
	var cmd tea.Cmd
	m.queryInput, cmd = m.queryInput.Update(msg)
	return cmd
}

func (m *Model) handlePickerKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyEsc {
		m.pickerOpen = false
		return nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.pickerOpen = false
		return tea.Batch(cmd, m.dispatch(m.gateway.FileSelected(path)))
	}
	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		m.Notice(fmt.Sprintf("%s is not an accepted document", filepath.Base(path)))
	}
	return cmd
}

// copyLastAnswer writes the latest answer to the system clipboard.
func (m *Model) copyLastAnswer() tea.Cmd {
	entry := m.transcript.LastAnswer()
	if entry == nil {
		return m.alert.NewAlertCmd(bubbleup.InfoKey, "Nothing to copy yet")
	}
	if err := clipboard.Init(); err != nil {
		log.Error("initializing clipboard", "error", err)
		return m.alert.NewAlertCmd(bubbleup.ErrorKey, "Clipboard unavailable")
	}
	clipboard.Write(clipboard.FmtText, []byte(entry.Text))
	return m.alert.NewAlertCmd(bubbleup.InfoKey, "Copied to clipboard!")
}
