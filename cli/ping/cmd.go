package ping

import (
	"context"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Pinger checks that the service is up.
type Pinger interface {
	Ping(ctx context.Context) (string, error)
}

// NewCmd instantiates and returns the ping command.
func NewCmd(serviceURL string, pinger Pinger) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the document-QA service is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			message, err := pinger.Ping(cmd.Context())
			if err != nil {
				return errors.Wrapf(err, "pinging %s", serviceURL)
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "%s: %s\n", serviceURL, message)
			return nil
		},
	}
}
