package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/malonaz/docqa/cli/chat"
	"github.com/malonaz/docqa/cli/ping"
	"github.com/malonaz/docqa/cli/shell"
	"github.com/malonaz/docqa/internal/configuration"
	"github.com/malonaz/docqa/internal/debug"
	"github.com/malonaz/docqa/internal/ragclient"
)

var rootCmd = &cobra.Command{
	Use:     "docqa",
	Short:   "Chat with your documents",
	Version: "1.0",
}

func main() {
	configPath := configuration.DefaultPath
	if path := os.Getenv("DOCQA_CONFIG"); path != "" {
		configPath = path
	}
	config, err := configuration.Parse(configPath)
	cobra.CheckErr(err)
	cobra.CheckErr(debug.SetOutputFile(config.DebugLog))

	client := ragclient.New(config.ServiceURL, config.Timeout())

	rootCmd.AddCommand(chat.NewCmd(config, client))
	rootCmd.AddCommand(shell.NewCmd(config, client))
	rootCmd.AddCommand(ping.NewCmd(config.ServiceURL, client))
	rootCmd.Execute()
}
