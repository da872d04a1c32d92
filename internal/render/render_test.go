package render

import (
	"strings"
	"testing"

	"github.com/neuropoly/bibsync/internal/record"
	"github.com/neuropoly/bibsync/internal/roster"
)

var sample = record.Record{
	ID:      "J12",
	Kind:    record.KindArticle,
	Title:   "Spinal cord imaging",
	Venue:   "NeuroImage",
	Year:    2021,
	Authors: []string{"Cohen-Adad J", "Gros C"},
	Impact:  "5.9",
	Pages:   "238:118046",
	Prize:   "Best paper award",
}

func TestParseStyle(t *testing.T) {
	if _, err := ParseStyle("APA"); err != nil {
		t.Errorf("APA rejected: %v", err)
	}
	if _, err := ParseStyle("chicago"); err == nil {
		t.Error("expected error for unknown style")
	}
}

func TestCitation_APA(t *testing.T) {
	got := Citation(sample, StyleAPA, roster.New("Gros C"))

	wantParts := []string{
		"Cohen-Adad J, <u>Gros C</u>",
		". (2021)",
		". Spinal cord imaging",
		". *NeuroImage*",
		" (IF: 5.9)",
		", 238:118046",
		". *Best paper award*",
	}
	for _, part := range wantParts {
		if !strings.Contains(got, part) {
			t.Errorf("APA citation %q missing %q", got, part)
		}
	}
	// Fragments appear in the fixed style order.
	if strings.Index(got, "(2021)") > strings.Index(got, "Spinal cord imaging") {
		t.Errorf("APA order wrong: %q", got)
	}
}

func TestCitation_Custom(t *testing.T) {
	got := Citation(sample, StyleCustom, nil)
	if !strings.HasPrefix(got, "**[J12]**\t") {
		t.Errorf("custom citation %q must lead with the bold ID", got)
	}
	if !strings.Contains(got, "*Spinal cord imaging*") || !strings.Contains(got, "**NeuroImage**") {
		t.Errorf("custom citation = %q", got)
	}
}

func TestCitation_Talk_NoAuthors(t *testing.T) {
	talk := record.Record{
		Kind:  record.KindTalk,
		Title: "Open science in MRI",
		Venue: "OHBM",
		Year:  2022,
	}
	got := Citation(talk, StyleTalk, nil)
	if !strings.HasPrefix(got, "Open science in MRI. *OHBM*") {
		t.Errorf("talk citation = %q", got)
	}
	// Absent optional fields leave no trace.
	if strings.Contains(got, "IF:") || strings.Contains(got, "()") {
		t.Errorf("talk citation leaks empty fields: %q", got)
	}
}

func TestCitation_SkipsEmptyFields(t *testing.T) {
	minimal := record.Record{
		Kind: record.KindArticle, Title: "Foo", Venue: "Bar", Year: 2020,
		Authors: []string{"A. One"},
	}
	got := Citation(minimal, StyleAPA, nil)
	if strings.Contains(got, "IF:") || strings.Contains(got, "<u>") {
		t.Errorf("citation rendered absent fields: %q", got)
	}
}

func TestWebsite(t *testing.T) {
	records := []record.Record{
		{Title: "Old", Venue: "A", Year: 2019, Authors: []string{"X"}, URL: "http://a", Labels: "MRI, Deep Learning"},
		{Title: "New", Venue: "B", Year: 2023, Authors: []string{"Y"}, URL: "http://b"},
	}
	got := Website(records)

	if strings.Index(got, "## 2023") > strings.Index(got, "## 2019") {
		t.Error("years must be most recent first")
	}
	if !strings.Contains(got, `data-labels="MRI Deep Learning"`) {
		t.Errorf("data-labels wrong: %q", got)
	}
	if !strings.Contains(got, "(Labels: MRI, Deep Learning)") {
		t.Error("label info missing")
	}
	if strings.Contains(got, `publication-label"> (Labels: )`) {
		t.Error("empty labels must not render a label span")
	}
	if strings.Count(got, "publications-container") != 2 {
		t.Errorf("want one container per year, got %d", strings.Count(got, "publications-container"))
	}
}

func TestLabelButtons(t *testing.T) {
	got := LabelButtons([]string{"MRI", "Deep Learning"})
	if !strings.Contains(got, `<button class="label" data-label="MRI">MRI</button>`) {
		t.Errorf("buttons = %q", got)
	}
	if !strings.HasPrefix(got, "<!-- label_definitions.md -->") {
		t.Error("missing header comment")
	}
}

func TestToBibTeX(t *testing.T) {
	got := ToBibTeX(sample)
	for _, part := range []string{
		"@article{J12,",
		"author = {Cohen-Adad J and Gros C}",
		"title = {Spinal cord imaging}",
		"journal = {NeuroImage}",
		"year = {2021}",
		"volume = {238}",
		"pages = {118046}",
	} {
		if !strings.Contains(got, part) {
			t.Errorf("bibtex %q missing %q", got, part)
		}
	}
}

func TestToBibTeX_Proceedings(t *testing.T) {
	r := record.Record{ID: "C3", Kind: record.KindProceedings, Title: "Fast & robust", Venue: "ISMRM", Year: 2020}
	got := ToBibTeX(r)
	if !strings.Contains(got, "@inproceedings{C3,") {
		t.Errorf("bibtex = %q", got)
	}
	if !strings.Contains(got, "booktitle = {ISMRM}") {
		t.Error("proceedings venue must be booktitle")
	}
	if !strings.Contains(got, `title = {Fast \& robust}`) {
		t.Error("latex escaping missing")
	}
}
