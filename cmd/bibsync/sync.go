package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/neuropoly/bibsync/internal/ccv"
)

var (
	syncSheet  string
	syncOutput string
)

func init() {
	syncCmd.Flags().StringVar(&syncSheet, "sheet", "", "Local xlsx file (default: the fetch cache)")
	syncCmd.Flags().StringVarP(&syncOutput, "output", "o", "", "Output XML file (default: <input>-synced.xml)")
	rootCmd.AddCommand(syncCmd)
}

var syncCmd = &cobra.Command{
	Use:   "sync <ccv.xml>",
	Short: "Push spreadsheet field values into a CCV XML export",
	Long: `Overwrite the Authors and journal/conference fields of every CCV
publication entry with the spreadsheet values for the same title.

Entries absent from the spreadsheet are left untouched. Entries whose
title matches several spreadsheet rows that venue equality cannot
separate abort the write: nothing is saved and the command exits with a
disambiguation failure so the duplicate rows get fixed first.

Examples:
  bibsync sync ccv-20260828.xml
  bibsync sync ccv.xml -o ccv-updated.xml`,
	Args: cobra.ExactArgs(1),
	RunE: runSync,
}

func runSync(cmd *cobra.Command, args []string) error {
	input := args[0]
	output := syncOutput
	if output == "" {
		output = strings.TrimSuffix(input, ".xml") + "-synced.xml"
	}

	source := loadSheetRecords(syncSheet, nil)

	doc, err := ccv.Open(input)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	result, err := ccv.Sync(logger, source, doc)
	if err != nil {
		if ccv.IsAmbiguous(err) {
			exitWithError(ExitDisambiguation, "%v\ntitles: %s\nfix the duplicate rows and rerun; %s was not written",
				err, strings.Join(result.Ambiguous, "; "), output)
		}
		exitWithError(ExitDataError, "%v", err)
	}

	if err := ccv.Save(doc, output); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	fmt.Printf("Updated %d entries (%d skipped) -> %s\n", result.Updated, result.Skipped, output)
	return nil
}
