package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/neuropoly/bibsync/internal/record"
)

// Website renders records as the lab website's publication markup: one
// year heading per publication year (most recent first), each year wrapped
// in a container div of per-publication divs tagged with data-labels.
func Website(records []record.Record) string {
	byYear := make(map[int][]record.Record)
	for _, r := range records {
		byYear[r.Year] = append(byYear[r.Year], r)
	}
	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	var b strings.Builder
	for _, year := range years {
		fmt.Fprintf(&b, "\n## %d\n", year)
		b.WriteString("<div class=\"publications-container\">\n")
		for _, r := range byYear[year] {
			b.WriteString(websiteEntry(r))
			b.WriteString("\n")
		}
		b.WriteString("</div>\n")
	}
	return b.String()
}

// websiteEntry renders one publication div.
func websiteEntry(r record.Record) string {
	labels := record.SplitLabels(r.Labels)
	dataLabels := strings.Join(labels, " ")
	labelInfo := ""
	if len(labels) > 0 {
		labelInfo = fmt.Sprintf("<span class=\"publication-label\"> (Labels: %s)</span>", strings.Join(labels, ", "))
	}

	return fmt.Sprintf(`<div class="publication" data-labels="%s">
    <h3>%s</h3>
    <p><em>%s</em></p>
    <p><strong>%s</strong> (%d) <a href="%s">Link to paper</a>%s</p>
</div>`,
		dataLabels, r.Title, r.AuthorString(), r.Venue, r.Year, r.URL, labelInfo)
}

// LabelButtons renders the authorized-labels file contents as the website's
// label filter buttons.
func LabelButtons(labels []string) string {
	var b strings.Builder
	b.WriteString("<!-- label_definitions.md -->\n\n")
	for _, label := range labels {
		fmt.Fprintf(&b, "<button class=\"label\" data-label=\"%s\">%s</button>\n", label, label)
	}
	return b.String()
}
