// Package render turns publication records into the downstream publication
// formats: styled citation text, website markup, label buttons, and BibTeX.
package render

import (
	"fmt"
	"strings"

	"github.com/neuropoly/bibsync/internal/record"
	"github.com/neuropoly/bibsync/internal/roster"
)

// Style selects a citation layout.
type Style string

const (
	StyleAPA    Style = "APA"
	StyleCustom Style = "custom"
	StyleTalk   Style = "talk"
)

// Styles lists the supported citation styles.
var Styles = []Style{StyleAPA, StyleCustom, StyleTalk}

// ParseStyle validates a style name.
func ParseStyle(s string) (Style, error) {
	for _, known := range Styles {
		if Style(s) == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown citation style %q (valid: %v)", s, Styles)
}

// step is one fragment of a citation: rendered only when its field is
// present and non-empty, in a fixed order per style.
type step struct {
	present func(record.Record) bool
	render  func(b *strings.Builder, r record.Record, students roster.Roster)
}

func always(record.Record) bool { return true }

func field(get func(record.Record) string) func(record.Record) bool {
	return func(r record.Record) bool { return get(r) != "" }
}

// Markdown styling helpers shared by the steps.
func bold(s string) string      { return "**" + s + "**" }
func italic(s string) string    { return "*" + s + "*" }
func underline(s string) string { return "<u>" + s + "</u>" }

// authors writes the author list, underlining students. Each call receives
// its own roster copy; the renderer never mutates shared state.
func authors(b *strings.Builder, r record.Record, students roster.Roster) {
	for i, a := range r.Authors {
		if i > 0 {
			b.WriteString(", ")
		}
		if students.Contains(a) {
			b.WriteString(underline(a))
		} else {
			b.WriteString(a)
		}
	}
}

// Shared optional-field steps.
var (
	stepLocation = step{field(func(r record.Record) string { return r.Location }),
		func(b *strings.Builder, r record.Record, _ roster.Roster) {
			fmt.Fprintf(b, ", (%s)", r.Location)
		}}
	stepImpact = step{field(func(r record.Record) string { return r.Impact }),
		func(b *strings.Builder, r record.Record, _ roster.Roster) {
			fmt.Fprintf(b, " (IF: %s)", r.Impact)
		}}
	stepPages = step{field(func(r record.Record) string { return r.Pages }),
		func(b *strings.Builder, r record.Record, _ roster.Roster) {
			fmt.Fprintf(b, ", %s", r.Pages)
		}}
	stepPrize = step{field(func(r record.Record) string { return r.Prize }),
		func(b *strings.Builder, r record.Record, _ roster.Roster) {
			fmt.Fprintf(b, ". %s", italic(r.Prize))
		}}
	stepURL = step{field(func(r record.Record) string { return r.URL }),
		func(b *strings.Builder, r record.Record, _ roster.Roster) {
			fmt.Fprintf(b, ". %s", italic(r.URL))
		}}
	stepAuthors = step{field(func(r record.Record) string { return r.AuthorString() }), authors}
)

// styleSteps maps each style to its ordered fragment sequence.
var styleSteps = map[Style][]step{
	StyleAPA: {
		stepAuthors,
		{always, func(b *strings.Builder, r record.Record, _ roster.Roster) {
			fmt.Fprintf(b, ". (%d)", r.Year)
		}},
		{always, func(b *strings.Builder, r record.Record, _ roster.Roster) {
			fmt.Fprintf(b, ". %s", r.Title)
		}},
		{always, func(b *strings.Builder, r record.Record, _ roster.Roster) {
			fmt.Fprintf(b, ". %s", italic(r.Venue))
		}},
		stepLocation,
		stepImpact,
		stepPages,
		stepPrize,
		stepURL,
	},
	StyleCustom: {
		{field(func(r record.Record) string { return r.ID }),
			func(b *strings.Builder, r record.Record, _ roster.Roster) {
				fmt.Fprintf(b, "%s\t", bold("["+r.ID+"]"))
			}},
		stepAuthors,
		{always, func(b *strings.Builder, r record.Record, _ roster.Roster) {
			// Talks carry no authors; only separate when something precedes.
			if len(r.Authors) > 0 {
				b.WriteString(". ")
			}
			b.WriteString(italic(r.Title))
		}},
		{always, func(b *strings.Builder, r record.Record, _ roster.Roster) {
			fmt.Fprintf(b, ". %s", bold(r.Venue))
		}},
		stepLocation,
		stepImpact,
		stepPages,
		{always, func(b *strings.Builder, r record.Record, _ roster.Roster) {
			fmt.Fprintf(b, ", %d", r.Year)
		}},
		stepPrize,
	},
	StyleTalk: {
		{always, func(b *strings.Builder, r record.Record, _ roster.Roster) {
			b.WriteString(r.Title)
		}},
		{always, func(b *strings.Builder, r record.Record, _ roster.Roster) {
			fmt.Fprintf(b, ". %s", italic(r.Venue))
		}},
		stepLocation,
		stepImpact,
		stepPages,
		{always, func(b *strings.Builder, r record.Record, _ roster.Roster) {
			fmt.Fprintf(b, ", %d. ", r.Year)
		}},
		stepPrize,
		stepURL,
	},
}

// Citation renders one record in the given style. Students found in the
// roster are underlined in the author list.
func Citation(r record.Record, style Style, students roster.Roster) string {
	var b strings.Builder
	for _, s := range styleSteps[style] {
		if s.present(r) {
			s.render(&b, r, students)
		}
	}
	return b.String()
}

// Citations renders a record collection, one citation per line.
func Citations(records []record.Record, style Style, students roster.Roster) string {
	var b strings.Builder
	for _, r := range records {
		b.WriteString(Citation(r, style, students))
		b.WriteString("\n")
	}
	return b.String()
}
