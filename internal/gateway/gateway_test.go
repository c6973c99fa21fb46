package gateway

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/malonaz/docqa/internal/conversation"
	"github.com/malonaz/docqa/internal/file"
	"github.com/malonaz/docqa/internal/orchestrator"
	"github.com/malonaz/docqa/internal/session"
)

var noopRequest orchestrator.Request = func(ctx context.Context) orchestrator.Settle { return func() {} }

type fakeOperations struct {
	loggedOut bool
	usernames []string
	documents []*file.File
	queries   []string
}

func (o *fakeOperations) LoggedIn() bool { return !o.loggedOut }

func (o *fakeOperations) Register(username string) orchestrator.Request {
	o.usernames = append(o.usernames, username)
	return noopRequest
}

func (o *fakeOperations) UploadDocument(document *file.File) orchestrator.Request {
	o.documents = append(o.documents, document)
	if document == nil {
		return nil
	}
	return noopRequest
}

func (o *fakeOperations) SubmitQuery(text string) orchestrator.Request {
	o.queries = append(o.queries, text)
	return noopRequest
}

type fakeUI struct {
	opened  int
	notices []string
}

func (u *fakeUI) OpenPicker()        { u.opened++ }
func (u *fakeUI) Notice(text string) { u.notices = append(u.notices, text) }

func (u *fakeUI) UploadStatusChanged(status orchestrator.UploadStatus) {}
func (u *fakeUI) ClearInput()                                          {}

func newGateway(extensions ...string) (*Gateway, *fakeOperations, *fakeUI) {
	operations := &fakeOperations{}
	ui := &fakeUI{}
	return New(operations, ui, ui, extensions), operations, ui
}

func TestGateway_RegisterPressedTrimsUsername(t *testing.T) {
	g, operations, _ := newGateway()

	require.NotNil(t, g.RegisterPressed("  ada  "))
	require.NotNil(t, g.RegisterPressed("   "))
	// Validation of the empty name belongs to the orchestrator, which reports it.
	require.Equal(t, []string{"ada", ""}, operations.usernames)
}

func TestGateway_DropzoneOpensPicker(t *testing.T) {
	g, operations, ui := newGateway()

	g.DropzoneActivated()

	require.Equal(t, 1, ui.opened)
	require.Empty(t, operations.documents)
}

func TestGateway_FileSelected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF"), 0644))
	g, operations, ui := newGateway(".pdf", ".txt")

	require.NotNil(t, g.FileSelected(path))

	require.Len(t, operations.documents, 1)
	require.Equal(t, "doc.pdf", operations.documents[0].Name())
	require.Equal(t, []byte("%PDF"), operations.documents[0].Content)
	require.Empty(t, ui.notices)
}

func TestGateway_FileSelected_NoSelection(t *testing.T) {
	g, operations, ui := newGateway()

	require.Nil(t, g.FileSelected(""))

	// The orchestrator still sees the empty selection so it can check identity first.
	require.Equal(t, []*file.File{nil}, operations.documents)
	require.Empty(t, ui.notices)
}

func TestGateway_FileSelected_LoggedOut(t *testing.T) {
	dir := t.TempDir()
	allowed := filepath.Join(dir, "doc.pdf")
	require.NoError(t, os.WriteFile(allowed, []byte("%PDF"), 0644))
	g, operations, ui := newGateway(".pdf")
	operations.loggedOut = true

	require.Nil(t, g.FileSelected(allowed))

	require.Equal(t, []*file.File{nil}, operations.documents)
	require.Empty(t, ui.notices)
}

func TestGateway_FileSelected_LoginRequiredBeforeSelection(t *testing.T) {
	dir := t.TempDir()
	disallowed := filepath.Join(dir, "x.exe")
	require.NoError(t, os.WriteFile(disallowed, []byte{0x4d, 0x5a}, 0644))

	for name, path := range map[string]string{
		"empty selection": "",
		"disallowed file": disallowed,
		"missing file":    filepath.Join(dir, "missing.pdf"),
		"whitespace":      "   ",
	} {
		t.Run(name, func(t *testing.T) {
			ui := &fakeUI{}
			o := orchestrator.New(nil, session.NewStore(nil), conversation.NewLog(nil), ui)
			g := New(o, ui, ui, []string{".pdf"})

			require.Nil(t, g.FileSelected(path))

			require.Equal(t, []string{orchestrator.NoticeLoginRequired}, ui.notices)
		})
	}
}

func TestGateway_FileSelected_Unreadable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "image.png")
	require.NoError(t, os.WriteFile(path, []byte{0x89}, 0644))
	g, operations, ui := newGateway(".pdf")

	require.Nil(t, g.FileSelected(path))
	require.Nil(t, g.FileSelected(filepath.Join(dir, "missing.pdf")))

	require.Empty(t, operations.documents)
	require.Len(t, ui.notices, 2)
}

func TestGateway_KeyPressed(t *testing.T) {
	g, operations, _ := newGateway()

	require.Nil(t, g.KeyPressed("a", "What is X?"))
	require.Empty(t, operations.queries)

	require.NotNil(t, g.KeyPressed(KeyEnter, "What is X?"))
	require.Equal(t, []string{"What is X?"}, operations.queries)
}
