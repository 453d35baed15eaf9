package main

import (
	"bufio"
	"os"

	"github.com/spf13/cobra"

	"github.com/pvetools/pve-attach/internal/ask"
	"github.com/pvetools/pve-attach/internal/logger"
	"github.com/pvetools/pve-attach/internal/version"
)

type cmdGlobal struct {
	asker ask.Asker

	flagVersion    bool
	flagHelp       bool
	flagLogVerbose bool
	flagLogDebug   bool
}

// PreRun runs immediately prior to the main Run function.
func (c *cmdGlobal) PreRun(cmd *cobra.Command, args []string) error {
	logger.InitLogger(c.flagLogVerbose, c.flagLogDebug)
	return nil
}

func main() {
	// attach command (main)
	attachCmd := cmdAttach{}
	app := attachCmd.command()
	app.SilenceUsage = true
	app.CompletionOptions = cobra.CompletionOptions{DisableDefaultCmd: true}

	// Global flags
	globalCmd := cmdGlobal{asker: ask.NewAsker(bufio.NewReader(os.Stdin))}
	attachCmd.global = &globalCmd
	app.PersistentFlags().BoolVar(&globalCmd.flagVersion, "version", false, "Print version number")
	app.PersistentFlags().BoolVarP(&globalCmd.flagHelp, "help", "h", false, "Print help")
	app.PersistentFlags().BoolVarP(&globalCmd.flagLogVerbose, "verbose", "v", false, "Show all information messages")
	app.PersistentFlags().BoolVarP(&globalCmd.flagLogDebug, "debug", "d", false, "Show debug messages")
	app.PersistentPreRunE = globalCmd.PreRun

	// Version handling
	app.SetVersionTemplate("{{.Version}}\n")
	app.Version = version.Version

	// Run the main command and handle errors
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
