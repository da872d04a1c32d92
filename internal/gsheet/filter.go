package gsheet

import (
	"fmt"
	"sort"
	"strings"

	"github.com/neuropoly/bibsync/internal/record"
)

// Filter narrows a parsed record collection before formatting.
type Filter struct {
	MinYear int    // Keep records with Year >= MinYear (0 disables)
	Marker  string // Keep records whose Extra[Marker] == "x" ("" disables)
	Reverse bool   // Most recent first
	// RequiredColumns drops records lacking a non-empty value in every
	// named column. Title and Authors by default at the CLI.
	RequiredColumns []string
}

// columnValue reads a record field by its spreadsheet column name.
func columnValue(r record.Record, col string) string {
	switch col {
	case ColID:
		return r.ID
	case ColTitle:
		return r.Title
	case ColYear:
		if r.Year == 0 {
			return ""
		}
		return fmt.Sprint(r.Year)
	case ColAuthors:
		return r.AuthorString()
	case ColVenue:
		return r.Venue
	case ColImpact:
		return r.Impact
	case ColURL:
		return r.URL
	case ColLabels:
		return r.Labels
	case ColPrize:
		return r.Prize
	case ColPages:
		return r.Pages
	case ColLocation:
		return r.Location
	default:
		return r.Extra[col]
	}
}

// Apply returns the records passing the filter, sorted by year. The input
// slice is not modified.
func (f Filter) Apply(records []record.Record) []record.Record {
	var out []record.Record
	for _, r := range records {
		if f.MinYear != 0 && r.Year < f.MinYear {
			continue
		}
		if f.Marker != "" && strings.ToLower(r.Extra[f.Marker]) != "x" {
			continue
		}
		missing := false
		for _, col := range f.RequiredColumns {
			if columnValue(r, col) == "" {
				missing = true
				break
			}
		}
		if missing {
			continue
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if f.Reverse {
			return out[i].Year > out[j].Year
		}
		return out[i].Year < out[j].Year
	})
	return out
}
