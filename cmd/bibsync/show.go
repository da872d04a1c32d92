package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neuropoly/bibsync/internal/record"
)

func init() {
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show <id>...",
	Short: "Show cached records by ID",
	Long: `Show the full cached record for one or more reference IDs.

Examples:
  bibsync show J12
  bibsync show J12 C3 T1`,
	Args: cobra.MinimumNArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	db := mustOpenCache()
	defer db.Close()

	records, err := db.Get(args)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	found := make(map[string]bool, len(records))
	for _, r := range records {
		found[r.ID] = true
		printRecordDetail(r)
	}
	for _, id := range args {
		if !found[id] {
			fmt.Printf("%s: not in cache\n", id)
		}
	}
	return nil
}

// printRecordDetail prints every populated field of one record.
func printRecordDetail(r record.Record) {
	fmt.Printf("%s (%s, %d)\n", r.ID, r.Kind, r.Year)
	fmt.Printf("  Title:   %s\n", r.Title)
	fmt.Printf("  Venue:   %s\n", r.Venue)
	if s := r.AuthorString(); s != "" {
		fmt.Printf("  Authors: %s\n", s)
	}
	if r.Impact != "" {
		fmt.Printf("  Impact:  %s\n", r.Impact)
	}
	if r.Pages != "" {
		fmt.Printf("  Pages:   %s\n", r.Pages)
	}
	if r.Labels != "" {
		fmt.Printf("  Labels:  %s\n", r.Labels)
	}
	if r.Prize != "" {
		fmt.Printf("  Prize:   %s\n", r.Prize)
	}
	if r.URL != "" {
		fmt.Printf("  URL:     %s\n", r.URL)
	}
	fmt.Println()
}
