package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neuropoly/bibsync/internal/config"
	"github.com/neuropoly/bibsync/internal/gsheet"
	"github.com/neuropoly/bibsync/internal/store"
)

var fetchURL string

func init() {
	fetchCmd.Flags().StringVar(&fetchURL, "url", "", "Spreadsheet URL (default from config or BIBSYNC_SHEET_URL)")
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Refresh the local spreadsheet cache",
	Long: `Download the xlsx export of the publication spreadsheet into the
cache directory and rebuild the record index.

Examples:
  bibsync fetch
  bibsync fetch --url https://docs.google.com/spreadsheets/d/...`,
	RunE: runFetch,
}

func runFetch(cmd *cobra.Command, args []string) error {
	url := fetchURL
	if url == "" {
		url = config.GetSheetURL()
	}
	if url == "" {
		exitWithError(ExitConfigError, "%s", config.HelpfulConfigMessage())
	}

	cachePath, err := config.SheetCachePath()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	client := gsheet.NewClient()
	logger.Info().Str("url", url).Msg("downloading spreadsheet export")
	if err := client.Fetch(cmd.Context(), url, cachePath); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	records, err := gsheet.Parse(cachePath, nil)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	dbPath, err := config.DBPath()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	db, err := store.Open(dbPath)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	defer db.Close()
	if err := db.Rebuild(records); err != nil {
		exitWithError(ExitError, "rebuilding record cache: %v", err)
	}

	fmt.Printf("Fetched %d records to %s\n", len(records), cachePath)
	return nil
}
