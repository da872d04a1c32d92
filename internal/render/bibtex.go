package render

import (
	"fmt"
	"strings"

	"github.com/neuropoly/bibsync/internal/record"
)

// bibtexEntryType maps canonical kinds to BibTeX entry types.
var bibtexEntryType = map[record.Kind]string{
	record.KindArticle:     "article",
	record.KindProceedings: "inproceedings",
	record.KindBookChapter: "incollection",
	record.KindTalk:        "misc",
}

// ToBibTeX converts one record to a BibTeX entry suitable for importing
// into CCV.
func ToBibTeX(r record.Record) string {
	entryType := bibtexEntryType[r.Kind]
	if entryType == "" {
		entryType = "misc"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "@%s{%s,\n", entryType, r.ID)

	if len(r.Authors) > 0 {
		fmt.Fprintf(&b, "  author = {%s},\n", strings.Join(r.Authors, " and "))
	}
	fmt.Fprintf(&b, "  title = {%s},\n", escapeLatex(r.Title))

	if r.Venue != "" {
		fieldName := "journal"
		if entryType == "inproceedings" || entryType == "incollection" {
			fieldName = "booktitle"
		} else if entryType == "misc" {
			fieldName = "howpublished"
		}
		fmt.Fprintf(&b, "  %s = {%s},\n", fieldName, escapeLatex(r.Venue))
	}

	fmt.Fprintf(&b, "  year = {%d},\n", r.Year)

	if r.Pages != "" {
		// The spreadsheet stores "volume:pages" in one column.
		volume, pages, found := strings.Cut(r.Pages, ":")
		if found {
			fmt.Fprintf(&b, "  volume = {%s},\n", strings.TrimSpace(volume))
			fmt.Fprintf(&b, "  pages = {%s},\n", strings.TrimSpace(pages))
		} else {
			fmt.Fprintf(&b, "  pages = {%s},\n", strings.TrimSpace(r.Pages))
		}
	}
	if r.URL != "" {
		fmt.Fprintf(&b, "  url = {%s},\n", r.URL)
	}

	b.WriteString("}\n")
	return b.String()
}

// ToBibTeXList converts a record collection to BibTeX.
func ToBibTeXList(records []record.Record) string {
	var entries []string
	for _, r := range records {
		entries = append(entries, ToBibTeX(r))
	}
	return strings.Join(entries, "\n")
}

// escapeLatex escapes special LaTeX characters.
func escapeLatex(s string) string {
	// Order matters: & must be first (before other escapes that might produce &)
	replacer := strings.NewReplacer(
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"{", `\{`,
		"}", `\}`,
		"~", `\textasciitilde{}`,
		"^", `\textasciicircum{}`,
	)
	return replacer.Replace(s)
}
