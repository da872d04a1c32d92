package gsheet

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/neuropoly/bibsync/internal/record"
)

// ErrInvalidSheet marks a request for a sheet that the workbook does not
// contain.
var ErrInvalidSheet = errors.New("invalid sheet")

// Spreadsheet column headers. Title, Year and Journal/Conference are
// required for a row to participate in matching.
const (
	ColID       = "ID"
	ColTitle    = "Title"
	ColYear     = "Year"
	ColAuthors  = "Authors"
	ColVenue    = "Journal/Conference"
	ColImpact   = "Impact"
	ColURL      = "URL"
	ColLabels   = "Labels"
	ColPrize    = "Prize"
	ColPages    = "Volume:Pages"
	ColLocation = "Location"
)

// Parse reads the requested sheets of an xlsx workbook into records. Each
// sheet holds one publication kind, named after it; the sheet name is
// translated through the canonical vocabulary and stamped on every row.
// A nil sheet list selects every sheet in the workbook. Requesting a sheet
// the workbook lacks is an error naming both the invalid and the available
// sets. Sheets whose names map to no canonical kind are dropped. Rows
// missing Title, Year, or Journal/Conference are dropped before matching.
func Parse(path string, sheets []string) ([]record.Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening spreadsheet %s: %w", path, err)
	}
	defer f.Close()

	available := f.GetSheetList()
	if len(sheets) == 0 {
		sheets = available
	} else {
		availSet := make(map[string]bool, len(available))
		for _, s := range available {
			availSet[s] = true
		}
		var invalid []string
		for _, s := range sheets {
			if !availSet[s] {
				invalid = append(invalid, s)
			}
		}
		if len(invalid) > 0 {
			return nil, fmt.Errorf("%w: requested publication types %v do not exist in the source (available: %v)",
				ErrInvalidSheet, invalid, available)
		}
	}

	var records []record.Record
	for _, sheet := range sheets {
		kind, ok := record.ParseKind(sheet)
		if !ok {
			// Unmapped kinds are dropped, never defaulted.
			continue
		}

		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
		}
		if len(rows) < 2 {
			continue
		}

		header := rows[0]
		for _, row := range rows[1:] {
			if r, ok := rowToRecord(header, row, kind); ok {
				records = append(records, r)
			}
		}
	}
	return records, nil
}

// rowToRecord builds a Record from one sheet row. Reports ok=false for
// rows missing a required field.
func rowToRecord(header, row []string, kind record.Kind) (record.Record, bool) {
	cell := func(col string) string {
		for i, h := range header {
			if strings.TrimSpace(h) == col {
				if i < len(row) {
					return strings.TrimSpace(row[i])
				}
				return ""
			}
		}
		return ""
	}

	title := cell(ColTitle)
	venue := cell(ColVenue)
	year, err := strconv.Atoi(cell(ColYear))
	if title == "" || venue == "" || err != nil {
		return record.Record{}, false
	}

	r := record.Record{
		ID:       cell(ColID),
		Kind:     kind,
		Title:    title,
		Venue:    venue,
		Year:     year,
		Authors:  record.SplitAuthors(cell(ColAuthors)),
		Impact:   cell(ColImpact),
		URL:      cell(ColURL),
		Labels:   cell(ColLabels),
		Prize:    cell(ColPrize),
		Pages:    cell(ColPages),
		Location: cell(ColLocation),
	}

	known := map[string]bool{
		ColID: true, ColTitle: true, ColYear: true, ColAuthors: true, ColVenue: true,
		ColImpact: true, ColURL: true, ColLabels: true, ColPrize: true, ColPages: true,
		ColLocation: true,
	}
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" || known[h] || i >= len(row) {
			continue
		}
		if v := strings.TrimSpace(row[i]); v != "" {
			if r.Extra == nil {
				r.Extra = make(map[string]string)
			}
			r.Extra[h] = v
		}
	}
	return r, true
}
