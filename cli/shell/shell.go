package shell

import (
	"context"
	"strings"

	"github.com/malonaz/docqa/internal/cli"
	"github.com/malonaz/docqa/internal/conversation"
	"github.com/malonaz/docqa/internal/gateway"
	"github.com/malonaz/docqa/internal/orchestrator"
	"github.com/malonaz/docqa/internal/session"
)

const helpText = `Commands:
  /register [name]   log in as name (prompted when omitted)
  /upload [path]     upload a document (prompted when omitted)
  /whoami            show the current identity
  /help              show this help
  /quit              exit
Anything else is asked as a question.`

// Asker prompts the user for missing command arguments.
type Asker interface {
	AskUsername() (string, error)
	AskPath() (string, error)
}

// Shell interprets line-mode input.
type Shell struct {
	console *cli.Console
	session *session.Store
	gateway *gateway.Gateway
	asker   Asker
}

// New instantiates and returns a shell writing through the given console.
func New(service orchestrator.Service, console *cli.Console, asker Asker, extensions []string) *Shell {
	sessionStore := session.NewStore(console)
	transcript := conversation.NewLog(console)
	o := orchestrator.New(service, sessionStore, transcript, console)
	return &Shell{
		console: console,
		session: sessionStore,
		gateway: gateway.New(o, console, console, extensions),
		asker:   asker,
	}
}

// Handle runs a single line to completion. It returns false once the user asked to quit.
func (s *Shell) Handle(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return true
	}
	command, argument, _ := strings.Cut(line, " ")
	argument = strings.TrimSpace(argument)

	switch command {
	case "/quit", "/exit":
		return false

	case "/help":
		s.console.Notice(helpText)

	case "/whoami":
		if identity := s.session.Get(); identity != nil {
			s.console.Notice(identity.Label())
		} else {
			s.console.Notice(orchestrator.NoticeLoginRequired)
		}

	case "/register":
		if argument == "" {
			username, err := s.asker.AskUsername()
			if err != nil {
				return true
			}
			argument = username
		}
		s.gateway.RegisterPressed(argument).Run(ctx)

	case "/upload":
		if argument == "" {
			s.gateway.DropzoneActivated()
			if !s.console.TakePickerRequest() {
				return true
			}
			path, err := s.asker.AskPath()
			if err != nil {
				return true
			}
			argument = path
		}
		s.gateway.FileSelected(argument).Run(ctx)

	default:
		s.gateway.KeyPressed(gateway.KeyEnter, line).Run(ctx)
	}
	return true
}
