package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/neuropoly/bibsync/internal/config"
	"github.com/neuropoly/bibsync/internal/gsheet"
	"github.com/neuropoly/bibsync/internal/record"
	"github.com/neuropoly/bibsync/internal/render"
	"github.com/neuropoly/bibsync/internal/roster"
)

var (
	formatSheet        string
	formatStyle        string
	formatTypes        []string
	formatYear         int
	formatReverse      bool
	formatMarker       string
	formatRequired     []string
	formatCheckLabels  bool
	formatLabelsFile   string
	formatWebsite      bool
	formatBibtex       bool
	formatKeepSeparate bool
	formatOutput       string
)

func init() {
	formatCmd.Flags().StringVar(&formatSheet, "sheet", "", "Local xlsx file (default: the fetch cache)")
	formatCmd.Flags().StringVar(&formatStyle, "style", string(render.StyleCustom), "Citation style: APA, custom, talk")
	formatCmd.Flags().StringSliceVar(&formatTypes, "type", nil, "Publication types (sheet names) to include")
	formatCmd.Flags().IntVar(&formatYear, "year", 0, "Keep publications from this year on")
	formatCmd.Flags().BoolVar(&formatReverse, "reverse", false, "Most recent first")
	formatCmd.Flags().StringVar(&formatMarker, "marker", "", "Keep rows marked 'x' in this column")
	formatCmd.Flags().StringSliceVar(&formatRequired, "required-columns", []string{gsheet.ColTitle, gsheet.ColAuthors},
		"Drop rows lacking a value in these columns")
	formatCmd.Flags().BoolVar(&formatCheckLabels, "check-labels", false, "Validate labels against the authorized list")
	formatCmd.Flags().StringVar(&formatLabelsFile, "labels-file", "", "Authorized labels file (default from config)")
	formatCmd.Flags().BoolVar(&formatWebsite, "website", false, "Render website markdown instead of citations")
	formatCmd.Flags().BoolVar(&formatBibtex, "bibtex", false, "Render BibTeX instead of citations")
	formatCmd.Flags().BoolVar(&formatKeepSeparate, "keep-separate", false, "Group output by publication type")
	formatCmd.Flags().StringVarP(&formatOutput, "output", "o", "", "Output file (default stdout)")
	rootCmd.AddCommand(formatCmd)
}

var formatCmd = &cobra.Command{
	Use:   "format",
	Short: "Render cached publications as citations, website markdown, or BibTeX",
	Long: `Render the cached spreadsheet as formatted text.

Examples:
  bibsync format --style APA --year 2019
  bibsync format --website -o publications.md
  bibsync format --bibtex --type article -o refs.bib`,
	RunE: runFormat,
}

// kindHeadings names the per-type section headings for --keep-separate.
var kindHeadings = map[record.Kind]string{
	record.KindArticle:     "Journal Articles",
	record.KindProceedings: "Conference Proceedings",
	record.KindTalk:        "Talks",
	record.KindBookChapter: "Book Chapters",
}

func runFormat(cmd *cobra.Command, args []string) error {
	records := loadSheetRecords(formatSheet, formatTypes)

	var authorized []string
	if formatCheckLabels {
		labelsPath := formatLabelsFile
		if labelsPath == "" {
			cfg, _ := config.LoadGlobalConfig()
			labelsPath = cfg.LabelsFile
		}
		if labelsPath == "" {
			exitWithError(ExitConfigError, "no labels file configured; pass --labels-file or set labels_file in config")
		}
		var err error
		authorized, err = gsheet.ReadAuthorizedLabels(labelsPath)
		if err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		if err := gsheet.CheckLabels(records, authorized); err != nil {
			exitWithError(ExitDataError, "%v", err)
		}
	}

	filter := gsheet.Filter{
		MinYear:         formatYear,
		Marker:          formatMarker,
		Reverse:         formatReverse,
		RequiredColumns: formatRequired,
	}
	records = filter.Apply(records)

	var out string
	switch {
	case formatWebsite:
		out = render.Website(records)
		if len(authorized) > 0 {
			out = render.LabelButtons(authorized) + out
		}
	case formatBibtex:
		out = render.ToBibTeXList(records)
	default:
		style, err := render.ParseStyle(formatStyle)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		out = renderCitations(records, style, loadRoster())
	}

	if err := writeOutput(formatOutput, out); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	return nil
}

// renderCitations renders records as one citation per line, optionally
// grouped under per-type headings.
func renderCitations(records []record.Record, style render.Style, students roster.Roster) string {
	if !formatKeepSeparate {
		return render.Citations(records, style, students)
	}

	var b strings.Builder
	for _, kind := range record.Kinds {
		var group []record.Record
		for _, r := range records {
			if r.Kind == kind {
				group = append(group, r)
			}
		}
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n", kindHeadings[kind])
		b.WriteString(render.Citations(group, style, students))
		b.WriteString("\n")
	}
	return b.String()
}

// loadSheetRecords parses the given xlsx path, falling back to the fetch
// cache, exiting with a helpful message when neither exists.
func loadSheetRecords(path string, types []string) []record.Record {
	if path == "" {
		var err error
		path, err = config.SheetCachePath()
		if err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		if _, err := os.Stat(path); err != nil {
			exitWithError(ExitConfigError, "no cached spreadsheet at %s; run 'bibsync fetch' first", path)
		}
	}
	records, err := gsheet.Parse(path, types)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	return records
}

// loadRoster loads the configured student roster, or an empty roster when
// none is configured.
func loadRoster() roster.Roster {
	cfg, _ := config.LoadGlobalConfig()
	if cfg.RosterFile == "" {
		return roster.New()
	}
	students, err := roster.Load(cfg.RosterFile)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	return students
}
