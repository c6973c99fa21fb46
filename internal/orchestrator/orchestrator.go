package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"github.com/malonaz/docqa/internal/conversation"
	"github.com/malonaz/docqa/internal/debug"
	"github.com/malonaz/docqa/internal/file"
	"github.com/malonaz/docqa/internal/session"
)

// User-facing texts.
const (
	NoticeEmptyUsername      = "Please enter a username"
	NoticeLoginRequired      = "Please login first"
	NoticeRegistrationFailed = "Registration failed. Please try again."

	UploadProcessingText = "Uploading and processing... ⏳"
	UploadFailedText     = "❌ Error processing document."

	PendingText     = "Thinking... 🔍"
	QueryFailedText = "❌ Sorry, I encountered an error while processing your request."
)

var log = debug.GetLogger()

// UploadResult is the outcome of a successful upload.
type UploadResult struct {
	Chunks int
}

// QueryResult is the outcome of a successful query.
type QueryResult struct {
	Answer  string
	Sources []string
}

// Service is the remote document-QA service.
type Service interface {
	Register(ctx context.Context, username string) (*session.Identity, error)
	Upload(ctx context.Context, userID string, document *file.File) (*UploadResult, error)
	Query(ctx context.Context, userID, text string) (*QueryResult, error)
}

// Tone of the upload status strip.
type Tone int

const (
	ToneNeutral Tone = iota
	ToneSuccess
	ToneError
)

// UploadStatus reflects the latest upload attempt only.
type UploadStatus struct {
	Text string
	Tone Tone
}

// Notifier receives the transient UI feedback of the orchestrator.
type Notifier interface {
	// Notice shows a blocking notice to the user.
	Notice(text string)
	// UploadStatusChanged overwrites the upload status strip.
	UploadStatusChanged(status UploadStatus)
	// ClearInput empties the query input.
	ClearInput()
}

// Settle applies the outcome of a finished request.
// It must run on the control flow that started the operation.
type Settle func()

// Request performs the network half of an operation and returns how to settle it.
// Requests may run concurrently with each other and never touch shared state.
type Request func(ctx context.Context) Settle

// Run performs the request and settles it on the calling goroutine.
// It is meant for line-mode front ends that have a single blocking flow.
func (r Request) Run(ctx context.Context) {
	if r == nil {
		return
	}
	r(ctx)()
}

// Orchestrator drives the register, upload and query operations.
// Its methods and the Settle functions it hands out must all be called from a
// single control flow; the returned Requests may run anywhere.
type Orchestrator struct {
	service    Service
	session    *session.Store
	transcript *conversation.Log
	notifier   Notifier
}

// New instantiates and returns a new orchestrator.
func New(service Service, sessionStore *session.Store, transcript *conversation.Log, notifier Notifier) *Orchestrator {
	return &Orchestrator{
		service:    service,
		session:    sessionStore,
		transcript: transcript,
		notifier:   notifier,
	}
}

// LoggedIn reports whether an identity is set.
func (o *Orchestrator) LoggedIn() bool {
	return o.session.Get() != nil
}

// Register logs a user in. It returns nil if nothing was dispatched.
func (o *Orchestrator) Register(username string) Request {
	if username == "" {
		o.notifier.Notice(NoticeEmptyUsername)
		return nil
	}

	return func(ctx context.Context) Settle {
		log.Info("registering", "username", username)
		identity, err := o.service.Register(ctx, username)
		if err != nil {
			log.Error("registration failed", "username", username, "error", err)
			return func() {
				o.notifier.Notice(NoticeRegistrationFailed)
			}
		}
		return func() {
			o.session.Set(identity)
			o.transcript.Append(conversation.NewAIEntry(WelcomeText(identity.Username)))
		}
	}
}

// UploadDocument sends a document for ingestion. It returns nil if nothing was dispatched.
func (o *Orchestrator) UploadDocument(document *file.File) Request {
	identity := o.session.Get()
	if identity == nil {
		o.notifier.Notice(NoticeLoginRequired)
		return nil
	}
	if document == nil {
		return nil
	}

	o.notifier.UploadStatusChanged(UploadStatus{Text: UploadProcessingText, Tone: ToneNeutral})

	userID := identity.ID
	return func(ctx context.Context) Settle {
		log.Info("uploading document", "user_id", userID, "name", document.Name(), "bytes", len(document.Content))
		result, err := o.service.Upload(ctx, userID, document)
		if err != nil {
			log.Error("upload failed", "user_id", userID, "name", document.Name(), "error", err)
			return func() {
				o.notifier.UploadStatusChanged(UploadStatus{Text: UploadFailedText, Tone: ToneError})
			}
		}
		return func() {
			text := UploadedText(document.Name(), result.Chunks)
			o.notifier.UploadStatusChanged(UploadStatus{Text: text, Tone: ToneSuccess})
			o.transcript.Append(conversation.NewAIEntry(text))
		}
	}
}

// SubmitQuery asks a question about the uploaded documents.
// It returns nil if nothing was dispatched.
func (o *Orchestrator) SubmitQuery(text string) Request {
	identity := o.session.Get()
	if identity == nil {
		o.notifier.Notice(NoticeLoginRequired)
		return nil
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}

	o.transcript.Append(conversation.NewUserEntry(text))
	o.notifier.ClearInput()
	pending := o.transcript.Append(conversation.NewPendingEntry(PendingText))

	userID := identity.ID
	return func(ctx context.Context) Settle {
		log.Info("querying", "user_id", userID, "pending_entry", pending.ID)
		result, err := o.service.Query(ctx, userID, text)
		return func() {
			// The placeholder is owned by this request only.
			o.transcript.Remove(pending)
			if err != nil {
				log.Error("query failed", "user_id", userID, "pending_entry", pending.ID, "error", err)
				o.transcript.Append(conversation.NewAIEntry(QueryFailedText))
				return
			}
			o.transcript.Append(conversation.NewAIEntry(result.Answer, result.Sources...))
		}
	}
}

// WelcomeText greets a freshly registered user.
func WelcomeText(username string) string {
	return fmt.Sprintf("Welcome back, %s! Your personal knowledge base is ready.", username)
}

// UploadedText reports a successful ingestion.
func UploadedText(name string, chunks int) string {
	return fmt.Sprintf(`✅ Document "%s" processed into %d chunks.`, name, chunks)
}
