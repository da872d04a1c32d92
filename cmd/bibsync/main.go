// Package main provides the bibsync CLI entry point.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/neuropoly/bibsync/internal/logging"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	verbose bool
	quiet   bool

	// logger is configured once per invocation in PersistentPreRun.
	logger zerolog.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bibsync",
	Short: "Keep lab publication records and the CCV in sync",
	Long: `bibsync reconciles the lab's publication spreadsheet against CCV-CVC
curriculum vitae XML exports.

The spreadsheet is the source of truth. Commands fetch and cache it,
render citations for reports and the lab website, cross-check it against
a CCV export, push field updates back into the XML, and rewrite
reference IDs in report text when a new export renumbers everything.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.Setup(verbose, quiet)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log per-record detail")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Log errors only")
	rootCmd.Version = Version
}
