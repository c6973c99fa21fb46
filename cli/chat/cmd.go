package chat

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/malonaz/docqa/cli/chat/screen"
	"github.com/malonaz/docqa/internal/configuration"
	"github.com/malonaz/docqa/internal/orchestrator"
)

// NewCmd instantiates and returns the chat command.
func NewCmd(config *configuration.Config, service orchestrator.Service) *cobra.Command {
	var opts struct {
		StartDirectory string
	}
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Open the document chat in a full-screen terminal UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if opts.StartDirectory != "" {
				config.Upload.StartDirectory = opts.StartDirectory
			}

			m, err := screen.New(ctx, config, service)
			if err != nil {
				return errors.Wrap(err, "creating chat model")
			}

			p := tea.NewProgram(
				m,
				tea.WithAltScreen(),
				tea.WithContext(ctx),
				tea.WithMouseCellMotion(),
			)
			if _, err := p.Run(); err != nil {
				return errors.Wrap(err, "running chat")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.StartDirectory, "dir", "d", "", "Directory the upload picker opens in")
	return cmd
}
