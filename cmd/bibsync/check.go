package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/neuropoly/bibsync/internal/ccv"
	"github.com/neuropoly/bibsync/internal/reconcile"
	"github.com/neuropoly/bibsync/internal/record"
)

var (
	checkSheet string
	checkTypes []string
)

func init() {
	checkCmd.Flags().StringVar(&checkSheet, "sheet", "", "Local xlsx file (default: the fetch cache)")
	checkCmd.Flags().StringSliceVar(&checkTypes, "type", nil, "Publication types to reconcile (default: article, proceedings)")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check <ccv.xml>",
	Short: "Cross-check the spreadsheet against a CCV XML export",
	Long: `Reconcile the cached spreadsheet against a CCV XML export and report
per-type match, missed, duplicate, and orphaned counts.

Missed and orphaned records are data-quality findings, not tool failures;
the command exits 0 so the report itself is the product.

Examples:
  bibsync check ccv-20260828.xml
  bibsync check --type article ccv.xml`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	kinds, err := record.ParseKinds(checkTypes)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	source := loadSheetRecords(checkSheet, nil)

	doc, err := ccv.Open(args[0])
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	target, err := ccv.Records(doc)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	_, report, err := reconcile.Reconcile(logger, source, target, kinds)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	printReport(report)
	return nil
}

// printReport renders a reconciliation report for a human operator.
func printReport(report *reconcile.Report) {
	for _, s := range report.Kinds {
		fmt.Printf("%s: %d matched, %d missed, %d duplicate, %d orphaned\n",
			kindHeadings[s.Kind], s.Matched, s.Missed, s.Duplicate, len(s.Orphaned))
		for _, orphan := range s.Orphaned {
			fmt.Printf("  orphaned in CCV: %s  %s\n", orphan.ID, truncateString(orphan.Title, ListTitleMaxLen))
		}
	}

	if len(report.Warnings) > 0 {
		fmt.Printf("\n%d matched pair(s) with mismatched fields:\n", len(report.Warnings))
		for _, w := range report.Warnings {
			fmt.Printf("  %s -> %s: %s\n", w.SourceID, w.TargetID, strings.Join(w.Fields, ", "))
		}
	}

	if report.Clean() {
		fmt.Println("\nSpreadsheet and CCV agree.")
	}
}
