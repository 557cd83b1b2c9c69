// Package cli implements the mt4adm operator command line: directory
// queries, margin and presence inspection, and broker-side trade
// operations over the adapter.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RootConfig carries the global flags shared by every subcommand.
type RootConfig struct {
	ConfigPath string
	LogLevel   string
	NoColor    bool
}

func NewRootCmd() *cobra.Command {
	rc := &RootConfig{}

	cmd := &cobra.Command{
		Use:           "mt4adm",
		Short:         "mt4adm — back-office tooling for an MT4 server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global / persistent flags
	cmd.PersistentFlags().StringVar(&rc.ConfigPath, "config", "", "Path to config file (optional)")
	cmd.PersistentFlags().StringVar(&rc.LogLevel, "log-level", "", "Log level: debug|info|warn|error")
	cmd.PersistentFlags().BoolVar(&rc.NoColor, "no-color", false, "Disable colored output")

	// Subcommands
	cmd.AddCommand(
		newAccountsCmd(rc),
		newSymbolsCmd(rc),
		newTradesCmd(rc),
		newMarginCmd(rc),
		newOnlineCmd(rc),
		newOpenCmd(rc),
		newCloseCmd(rc),
		newModifyCmd(rc),
		newJournalCmd(rc),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("mt4adm (dev)")
		},
	})

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
