package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/neuropoly/bibsync/internal/ccv"
	"github.com/neuropoly/bibsync/internal/reconcile"
	"github.com/neuropoly/bibsync/internal/record"
	"github.com/neuropoly/bibsync/internal/refblock"
)

var (
	replaceFile   string
	replaceOutput string
	replaceSort   bool
	replaceTypes  []string
)

func init() {
	replaceCmd.Flags().StringVar(&replaceFile, "file", "", "Read the text from this file instead of the argument")
	replaceCmd.Flags().StringVarP(&replaceOutput, "output", "o", "", "Output file (default stdout)")
	replaceCmd.Flags().BoolVar(&replaceSort, "sort", false, "Sort IDs inside each bracket block")
	replaceCmd.Flags().StringSliceVar(&replaceTypes, "type", nil, "Publication types to map (default: article, proceedings)")
	rootCmd.AddCommand(replaceCmd)
}

var replaceCmd = &cobra.Command{
	Use:   "replace <old-ccv.xml> <new-ccv.xml> [text]",
	Short: "Rewrite bracketed reference IDs after a CCV re-export",
	Long: `A fresh CCV export renumbers every publication, which breaks the
[J12, C3] reference blocks pasted into grant reports. replace reconciles
the old export against the new one and rewrites each ID in the text to
its new value. IDs with no counterpart in the new export become '?'.

Examples:
  bibsync replace old.xml new.xml 'strong results [J9, J14]'
  bibsync replace old.xml new.xml --file report.md -o report-new.md --sort`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runReplace,
}

func runReplace(cmd *cobra.Command, args []string) error {
	var text string
	switch {
	case replaceFile != "":
		data, err := os.ReadFile(replaceFile)
		if err != nil {
			exitWithError(ExitError, "reading %s: %v", replaceFile, err)
		}
		text = string(data)
	case len(args) == 3:
		text = args[2]
	default:
		exitWithError(ExitError, "no text given: pass it as an argument or with --file")
	}

	kinds, err := record.ParseKinds(replaceTypes)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	oldRecords := loadCCVRecords(args[0])
	newRecords := loadCCVRecords(args[1])

	mapping, _, err := reconcile.Reconcile(logger, oldRecords, newRecords, kinds)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	// Unmatched old IDs must surface as the placeholder, not as sentinels.
	matched := make(map[string]string)
	for id := range mapping {
		if mapping.Matched(id) {
			matched[id] = mapping[id]
		}
	}

	if err := writeOutput(replaceOutput, refblock.Rewrite(text, matched, replaceSort)); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	return nil
}

// loadCCVRecords opens a CCV export and projects its publication records.
func loadCCVRecords(path string) []record.Record {
	doc, err := ccv.Open(path)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	records, err := ccv.Records(doc)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	return records
}
