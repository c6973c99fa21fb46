package gateway

import (
	"fmt"
	"strings"

	"github.com/malonaz/docqa/internal/debug"
	"github.com/malonaz/docqa/internal/file"
	"github.com/malonaz/docqa/internal/orchestrator"
)

// KeyEnter is the key name that submits the query input.
const KeyEnter = "enter"

var log = debug.GetLogger()

// Operations are the orchestrator calls the gateway dispatches to.
type Operations interface {
	LoggedIn() bool
	Register(username string) orchestrator.Request
	UploadDocument(document *file.File) orchestrator.Request
	SubmitQuery(text string) orchestrator.Request
}

// Picker opens the document picker.
type Picker interface {
	OpenPicker()
}

// Noticer shows a blocking notice to the user.
type Noticer interface {
	Notice(text string)
}

// Gateway translates raw input events into orchestrator calls.
type Gateway struct {
	operations Operations
	picker     Picker
	noticer    Noticer
	extensions []string
}

// New instantiates and returns a gateway. Only files with one of the given
// extensions can be uploaded; an empty list accepts everything.
func New(operations Operations, picker Picker, noticer Noticer, extensions []string) *Gateway {
	return &Gateway{
		operations: operations,
		picker:     picker,
		noticer:    noticer,
		extensions: extensions,
	}
}

// RegisterPressed handles the register button with the username input's value.
func (g *Gateway) RegisterPressed(username string) orchestrator.Request {
	return g.operations.Register(strings.TrimSpace(username))
}

// DropzoneActivated opens the file picker.
func (g *Gateway) DropzoneActivated() {
	g.picker.OpenPicker()
}

// FileSelected handles a file chosen in the picker. An empty path is a cancelled selection.
// Identity is checked before the selection, so nothing is read from disk when logged out.
func (g *Gateway) FileSelected(path string) orchestrator.Request {
	path = strings.TrimSpace(path)
	if path == "" || !g.operations.LoggedIn() {
		return g.operations.UploadDocument(nil)
	}
	document, err := file.Read(path, g.extensions)
	if err != nil {
		log.Warn("reading selected file", "path", path, "error", err)
		g.noticer.Notice(fmt.Sprintf("Cannot upload %s: %v", path, err))
		return nil
	}
	return g.operations.UploadDocument(document)
}

// KeyPressed handles a key press while the query input is focused.
func (g *Gateway) KeyPressed(key, query string) orchestrator.Request {
	if key != KeyEnter {
		return nil
	}
	return g.operations.SubmitQuery(query)
}
