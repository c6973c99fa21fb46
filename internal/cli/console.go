package cli

import (
	"fmt"
	"io"

	"github.com/malonaz/docqa/internal/conversation"
	"github.com/malonaz/docqa/internal/markdown"
	"github.com/malonaz/docqa/internal/orchestrator"
	"github.com/malonaz/docqa/internal/session"
)

var (
	_ orchestrator.Notifier = (*Console)(nil)
	_ conversation.Sink     = (*Console)(nil)
	_ session.Observer      = (*Console)(nil)
)

// Moves to the start of the line and erases it.
const eraseLine = "\r\x1b[K"

// Console is the line-mode rendering of a conversation.
type Console struct {
	w        io.Writer
	renderer *markdown.Renderer
	// EchoUser prints user entries, for terminals that do not echo input.
	EchoUser bool

	pickerRequested bool
	// Placeholder printed without a line break, so removing it can erase it.
	openPending *conversation.Entry
}

// NewConsole instantiates and returns a console writing to w. A nil renderer prints answers as plain text.
func NewConsole(w io.Writer, renderer *markdown.Renderer) *Console {
	return &Console{w: w, renderer: renderer}
}

// Notice implements the orchestrator.Notifier interface.
func (c *Console) Notice(text string) {
	c.closePending()
	noticeColor.Fprintf(c.w, "! %s\n", text)
}

// UploadStatusChanged implements the orchestrator.Notifier interface.
func (c *Console) UploadStatusChanged(status orchestrator.UploadStatus) {
	c.closePending()
	switch status.Tone {
	case orchestrator.ToneSuccess:
		successColor.Fprintln(c.w, status.Text)
	case orchestrator.ToneError:
		errorColor.Fprintln(c.w, status.Text)
	default:
		pendingColor.Fprintln(c.w, status.Text)
	}
}

// ClearInput implements the orchestrator.Notifier interface.
// The prompt is already empty once a line was submitted.
func (c *Console) ClearInput() {}

// OpenPicker implements the gateway.Picker interface.
func (c *Console) OpenPicker() {
	c.pickerRequested = true
}

// TakePickerRequest reports whether the picker was requested since the last call.
func (c *Console) TakePickerRequest() bool {
	requested := c.pickerRequested
	c.pickerRequested = false
	return requested
}

// EntryAppended implements the conversation.Sink interface.
func (c *Console) EntryAppended(entry *conversation.Entry) {
	c.closePending()
	switch {
	case entry.Pending:
		pendingColor.Fprint(c.w, entry.Text)
		c.openPending = entry
	case entry.Role == conversation.RoleUser:
		if c.EchoUser {
			userColor.Fprintf(c.w, "-> %s\n", entry.Text)
		}
	default:
		aiOutputColor.Fprintln(c.w, c.render(entry))
		if annotation := entry.SourceAnnotation(); annotation != "" {
			sourcesColor.Fprintln(c.w, annotation)
		}
	}
}

// EntryRemoved implements the conversation.Sink interface.
// A placeholder still on the current line is erased; older lines cannot be.
func (c *Console) EntryRemoved(entry *conversation.Entry) {
	if entry == c.openPending {
		fmt.Fprint(c.w, eraseLine)
		c.openPending = nil
	}
	if c.renderer != nil {
		c.renderer.Forget(entry.ID)
	}
}

// IdentityChanged implements the session.Observer interface.
func (c *Console) IdentityChanged(identity *session.Identity) {
	c.closePending()
	if identity != nil {
		Title(c.w, "%s", identity.Label())
	}
}

// closePending ends the line of a placeholder that is still shown.
func (c *Console) closePending() {
	if c.openPending != nil {
		fmt.Fprintln(c.w)
		c.openPending = nil
	}
}

func (c *Console) render(entry *conversation.Entry) string {
	if c.renderer == nil {
		return markdown.Plain(entry.Blocks)
	}
	return c.renderer.Render(entry.ID, entry.Blocks...)
}
