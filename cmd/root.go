// Package cmd defines and implements the CLI commands for the pagearchiver
// executable.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pagearchiver",
		Short: "Fetches a fixed list of web pages and archives their raw content.",
		Long: `pagearchiver downloads the pages named in a URL list file and saves
their raw HTML into a local directory, recording each success in an
append-only ledger. Re-running the tool skips pages the ledger already
records, so an interrupted run picks up where it left off.`,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (YAML); defaults apply when omitted")

	cmd.AddCommand(newFetchCmd())

	return cmd
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
