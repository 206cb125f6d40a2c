// Package cli implements screenctl, the screener's command-line companion for
// checking how a call will be classified and stored.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit string) {
	appVersion = version
	appCommit = commit
}

// NewRootCommand builds the command tree. Output goes to cmd.OutOrStdout so
// tests can capture it.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "screenctl",
		Short: "Call screener toolbox",
		Long: `screenctl classifies call topics, encodes and decodes the notes field
the way the screener service stores it, and looks up a caller's history
in the caller store.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newClassifyCmd(),
		newEncodeCmd(),
		newDecodeCmd(),
		newHistoryCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "screenctl %s\ncommit: %s\n", appVersion, appCommit)
			},
		},
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
