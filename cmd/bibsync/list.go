package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neuropoly/bibsync/internal/config"
	"github.com/neuropoly/bibsync/internal/record"
	"github.com/neuropoly/bibsync/internal/store"
)

var (
	listType string
	listYear int
)

func init() {
	listCmd.Flags().StringVar(&listType, "type", "", "Restrict to one publication type")
	listCmd.Flags().IntVar(&listYear, "year", 0, "Keep publications from this year on")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached publication records",
	Long: `List the records in the local cache, most recent fetch wins.

Examples:
  bibsync list
  bibsync list --type article --year 2020`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	var kind record.Kind
	if listType != "" {
		var ok bool
		kind, ok = record.ParseKind(listType)
		if !ok {
			exitWithError(ExitError, "unknown publication kind %q (valid: %v)", listType, record.Kinds)
		}
	}

	db := mustOpenCache()
	defer db.Close()

	records, err := db.List(kind, listYear)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if len(records) == 0 {
		fmt.Println("No cached records match")
		return nil
	}
	fmt.Printf("%d record(s):\n\n", len(records))
	for _, r := range records {
		printRecordLine(r)
	}
	return nil
}

// mustOpenCache opens the record cache, exiting with guidance when it was
// never built.
func mustOpenCache() *store.Store {
	dbPath, err := config.DBPath()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	db, err := store.Open(dbPath)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if ts, err := db.LastRebuild(); err != nil || ts.IsZero() {
		db.Close()
		exitWithError(ExitConfigError, "record cache is empty; run 'bibsync fetch' first")
	}
	return db
}
