package screen

import (
	"go.dalton.dog/bubbleup"

	"github.com/malonaz/docqa/internal/conversation"
	"github.com/malonaz/docqa/internal/orchestrator"
	"github.com/malonaz/docqa/internal/session"
)

var (
	_ orchestrator.Notifier = (*Model)(nil)
	_ conversation.Sink     = (*Model)(nil)
	_ session.Observer      = (*Model)(nil)
)

// Notice implements the orchestrator.Notifier interface.
func (m *Model) Notice(text string) {
	log.Info("notice", "text", text)
	m.queue(m.alert.NewAlertCmd(bubbleup.WarnKey, text))
}

// UploadStatusChanged implements the orchestrator.Notifier interface.
func (m *Model) UploadStatusChanged(status orchestrator.UploadStatus) {
	m.uploadStatus = &status
	m.recalculateLayout()
}

// ClearInput implements the orchestrator.Notifier interface.
// It is only called once a query was accepted, so this is where it joins the history.
func (m *Model) ClearInput() {
	m.history.Add(m.queryInput.Value())
	m.historyNavigating = false
	m.queryInput.Reset()
}

// OpenPicker implements the gateway.Picker interface.
func (m *Model) OpenPicker() {
	m.pickerOpen = true
	m.queue(m.picker.Init())
}

// EntryAppended implements the conversation.Sink interface.
func (m *Model) EntryAppended(entry *conversation.Entry) {
	log.Debug("entry appended", "id", entry.ID, "role", entry.Role.String(), "pending", entry.Pending)
	m.appendToTranscript(entry)
}

// EntryRemoved implements the conversation.Sink interface.
func (m *Model) EntryRemoved(entry *conversation.Entry) {
	log.Debug("entry removed", "id", entry.ID)
	m.renderer.Forget(entry.ID)
	m.refreshTranscript()
}

// IdentityChanged implements the session.Observer interface.
func (m *Model) IdentityChanged(identity *session.Identity) {
	if identity == nil {
		m.identityLabel = ""
		return
	}
	m.identityLabel = identity.Label()
	m.setFocus(focusQuery)
}
