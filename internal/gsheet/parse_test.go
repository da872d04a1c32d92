package gsheet

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/neuropoly/bibsync/internal/record"
)

// writeWorkbook builds an xlsx fixture with one sheet per kind name.
func writeWorkbook(t *testing.T, sheets map[string][][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for name, rows := range sheets {
		if _, err := f.NewSheet(name); err != nil {
			t.Fatalf("NewSheet(%s): %v", name, err)
		}
		for i, row := range rows {
			cell, _ := excelize.CoordinatesToCellName(1, i+1)
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				t.Fatalf("SetSheetRow: %v", err)
			}
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		t.Fatalf("DeleteSheet: %v", err)
	}

	path := filepath.Join(t.TempDir(), "publications.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	return path
}

var articleHeader = []interface{}{"ID", "Title", "Year", "Authors", "Journal/Conference", "Impact", "URL", "Labels", "IVADO17"}

func TestParse(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"article": {
			articleHeader,
			{"csv1", "Alpha", 2021, "A. One, B. Two", "Nature", "12.3", "https://doi.org/x", "MRI", "x"},
			{"csv2", "Beta", 2019, "C. Three", "Science", "", "", "", ""},
		},
		"proceedings": {
			{"ID", "Title", "Year", "Authors", "Journal/Conference"},
			{"csv3", "Gamma", 2020, "A. One", "ISMRM"},
		},
	})

	records, err := Parse(path, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	byID := make(map[string]record.Record)
	for _, r := range records {
		byID[r.ID] = r
	}

	r := byID["csv1"]
	if r.Kind != record.KindArticle || r.Title != "Alpha" || r.Year != 2021 || r.Venue != "Nature" {
		t.Errorf("csv1 = %+v", r)
	}
	if r.AuthorString() != "A. One, B. Two" {
		t.Errorf("csv1 authors = %q", r.AuthorString())
	}
	if r.Impact != "12.3" || r.Labels != "MRI" {
		t.Errorf("csv1 optional fields = %+v", r)
	}
	if r.Extra["IVADO17"] != "x" {
		t.Errorf("csv1 extra = %v, want IVADO17 marker", r.Extra)
	}
	if byID["csv3"].Kind != record.KindProceedings {
		t.Errorf("csv3 kind = %q", byID["csv3"].Kind)
	}
}

func TestParse_RequestedSheets(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"article": {
			{"ID", "Title", "Year", "Journal/Conference"},
			{"csv1", "Alpha", 2021, "Nature"},
		},
		"talk": {
			{"ID", "Title", "Year", "Journal/Conference"},
			{"csv2", "Invited talk", 2022, "OHBM"},
		},
	})

	records, err := Parse(path, []string{"article"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(records) != 1 || records[0].ID != "csv1" {
		t.Errorf("records = %+v, want only csv1", records)
	}
}

func TestParse_InvalidSheet(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"article": {
			{"ID", "Title", "Year", "Journal/Conference"},
		},
	})

	_, err := Parse(path, []string{"article", "poster"})
	if !errors.Is(err, ErrInvalidSheet) {
		t.Fatalf("expected ErrInvalidSheet, got %v", err)
	}
	// The message names both the invalid and the available sets.
	if !strings.Contains(err.Error(), "poster") || !strings.Contains(err.Error(), "article") {
		t.Errorf("error %q does not enumerate invalid and available sheets", err)
	}
}

func TestParse_DropsIncompleteRows(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"article": {
			{"ID", "Title", "Year", "Authors", "Journal/Conference"},
			{"csv1", "", 2021, "A. One", "Nature"},        // no title
			{"csv2", "Beta", "", "A. One", "Science"},     // no year
			{"csv3", "Gamma", 2020, "A. One", ""},         // no venue
			{"csv4", "Delta", 2019, "A. One", "NeuroImage"},
		},
	})

	records, err := Parse(path, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(records) != 1 || records[0].ID != "csv4" {
		t.Errorf("records = %+v, want only csv4", records)
	}
}

func TestParse_UnmappedSheetDropped(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"article": {
			{"ID", "Title", "Year", "Journal/Conference"},
			{"csv1", "Alpha", 2021, "Nature"},
		},
		"media": {
			{"ID", "Title", "Year", "Journal/Conference"},
			{"csv9", "Radio interview", 2021, "CBC"},
		},
	})

	records, err := Parse(path, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(records) != 1 || records[0].ID != "csv1" {
		t.Errorf("records = %+v, want media sheet dropped", records)
	}
}

func TestParse_MissingFile(t *testing.T) {
	if _, err := Parse(filepath.Join(t.TempDir(), "nope.xlsx"), nil); err == nil {
		t.Fatal("expected error for missing workbook")
	}
}
