package shell

import (
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/malonaz/docqa/internal/cli"
	"github.com/malonaz/docqa/internal/configuration"
	"github.com/malonaz/docqa/internal/markdown"
	"github.com/malonaz/docqa/internal/orchestrator"
)

type surveyAsker struct {
	startDirectory string
}

func (a surveyAsker) AskUsername() (string, error) { return cli.AskUsername() }
func (a surveyAsker) AskPath() (string, error) {
	return cli.AskPath("Document:", a.startDirectory+"/")
}

// NewCmd instantiates and returns the shell command.
func NewCmd(config *configuration.Config, service orchestrator.Service) *cobra.Command {
	var opts struct {
		Username string
	}
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Chat with your documents from a line-mode prompt",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			prompter, err := cli.NewPrompter()
			if err != nil {
				return err
			}
			defer prompter.Close()

			renderer, err := markdown.NewRenderer(cli.Width())
			if err != nil {
				return err
			}
			out := prompter.Stdout()
			console := cli.NewConsole(out, renderer)
			s := New(service, console, surveyAsker{startDirectory: config.Upload.StartDirectory}, config.Upload.FileExtensions)

			cli.Title(out, "docqa")
			if opts.Username != "" {
				s.Handle(ctx, "/register "+opts.Username)
			} else {
				console.Notice("Type /register to log in, /help for commands.")
			}

			for {
				line, err := prompter.Prompt()
				if errors.Is(err, cli.ErrInterrupt) {
					if cli.QueryUser("Quit?") {
						return nil
					}
					continue
				}
				if errors.Is(err, io.EOF) {
					return nil
				}
				if err != nil {
					return errors.Wrap(err, "reading input")
				}
				if !s.Handle(ctx, line) {
					return nil
				}
				cli.Separator(out)
			}
		},
	}
	cmd.Flags().StringVarP(&opts.Username, "user", "u", "", "Log in as this user on start")
	return cmd
}
