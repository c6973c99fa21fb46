package screen

import (
	"context"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.dalton.dog/bubbleup"

	"github.com/malonaz/docqa/cli/chat/styles"
	"github.com/malonaz/docqa/cli/chat/viewer"
	"github.com/malonaz/docqa/internal/configuration"
	"github.com/malonaz/docqa/internal/conversation"
	"github.com/malonaz/docqa/internal/debug"
	"github.com/malonaz/docqa/internal/gateway"
	"github.com/malonaz/docqa/internal/history"
	"github.com/malonaz/docqa/internal/markdown"
	"github.com/malonaz/docqa/internal/orchestrator"
	"github.com/malonaz/docqa/internal/session"
)

var log = debug.GetLogger()

type focus int

const (
	focusUsername focus = iota
	focusQuery
)

// settleMsg carries a finished request back to the update loop.
type settleMsg struct {
	settle orchestrator.Settle
}

// Model represents the Bubble Tea model for the document-QA chat.
type Model struct {
	// Core dependencies
	ctx          context.Context
	config       *configuration.Config
	orchestrator *orchestrator.Orchestrator
	gateway      *gateway.Gateway
	transcript   *conversation.Log
	session      *session.Store

	// UI components
	usernameInput textinput.Model
	queryInput    textinput.Model
	picker        filepicker.Model
	viewport      viewport.Model
	spinner       spinner.Model
	renderer      *markdown.Renderer
	alert         bubbleup.AlertModel

	// UI state
	width         int
	height        int
	ready         bool
	quitting      bool
	focus         focus
	pickerOpen    bool
	identityLabel string
	uploadStatus  *orchestrator.UploadStatus

	// Rendered transcript, extended entry by entry.
	transcriptContent string
	// Requests dispatched and not yet settled.
	inFlight int

	// Input history
	history           *history.History
	historyNavigating bool

	// Sub-views
	viewerMode  bool
	viewerModel *viewer.Model

	// Commands produced by callbacks during an update, drained when it returns.
	queued []tea.Cmd
}

// New creates a new chat model talking to the given service.
func New(ctx context.Context, config *configuration.Config, service orchestrator.Service) (*Model, error) {
	usernameInput := textinput.New()
	usernameInput.Placeholder = "Enter your username"
	usernameInput.Prompt = ""
	usernameInput.CharLimit = 64
	usernameInput.Focus()

	queryInput := textinput.New()
	queryInput.Placeholder = "Ask a question about your documents..."
	queryInput.Prompt = ""
	queryInput.CharLimit = 0

	picker := filepicker.New()
	picker.CurrentDirectory = config.Upload.StartDirectory
	picker.AllowedTypes = config.Upload.FileExtensions

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	renderer, err := markdown.NewRenderer(styles.DefaultWidth)
	if err != nil {
		return nil, err
	}

	m := &Model{
		ctx:           ctx,
		config:        config,
		usernameInput: usernameInput,
		queryInput:    queryInput,
		picker:        picker,
		spinner:       sp,
		renderer:      renderer,
		alert:         *bubbleup.NewAlertModel(40, true, 2),
		history:       history.New(config.Chat.HistorySize),
		focus:         focusUsername,
	}
	m.session = session.NewStore(m)
	m.transcript = conversation.NewLog(m)
	m.orchestrator = orchestrator.New(service, m.session, m.transcript, m)
	m.gateway = gateway.New(m.orchestrator, m, m, config.Upload.FileExtensions)
	return m, nil
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		m.alert.Init(),
	)
}

// dispatch runs a request off the update loop and brings its settle back as a message.
func (m *Model) dispatch(request orchestrator.Request) tea.Cmd {
	if request == nil {
		return nil
	}
	m.inFlight++
	ctx := m.ctx
	return func() tea.Msg {
		return settleMsg{settle: request(ctx)}
	}
}

// queue schedules a command to be returned by the current update.
func (m *Model) queue(cmd tea.Cmd) {
	if cmd != nil {
		m.queued = append(m.queued, cmd)
	}
}

func (m *Model) drainQueue() []tea.Cmd {
	cmds := m.queued
	m.queued = nil
	return cmds
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	switch f {
	case focusUsername:
		m.queryInput.Blur()
		m.queue(m.usernameInput.Focus())
	case focusQuery:
		m.usernameInput.Blur()
		m.queue(m.queryInput.Focus())
	}
}
