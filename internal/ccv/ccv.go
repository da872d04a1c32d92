// Package ccv reads and updates CCV-CVC curriculum vitae XML exports.
//
// The adapter projects the Publications section into record.Record values
// and writes field-level updates back into the parsed tree without touching
// any other node, so an export round-trips through a sync run with only the
// edited values changed.
package ccv

import (
	"errors"
	"fmt"
	"os"

	"github.com/beevik/etree"

	"github.com/neuropoly/bibsync/internal/record"
)

// Namespace is the generic-cv XML namespace declared by CCV exports. It
// must survive a parse/serialize round trip or CCV refuses the re-import.
const Namespace = "http://www.cihr-irsc.gc.ca/generic-cv/1.0.0"

// ErrNotFound marks a missing file or a missing required XML substructure.
var ErrNotFound = errors.New("not found")

// AuthorsLabel is the field label holding the comma-joined author list.
const AuthorsLabel = "Authors"

// fieldLabels names the per-kind field labels for the two matching keys.
// The title and venue live under different labels depending on the section.
type fieldLabels struct {
	title string
	venue string
}

var labelsByKind = map[record.Kind]fieldLabels{
	record.KindArticle:     {title: "Article Title", venue: "Journal"},
	record.KindProceedings: {title: "Publication Title", venue: "Conference Name"},
}

// TitleLabel returns the title field label for a CCV-mappable kind.
func TitleLabel(k record.Kind) (string, bool) {
	l, ok := labelsByKind[k]
	return l.title, ok
}

// VenueLabel returns the venue field label for a CCV-mappable kind.
func VenueLabel(k record.Kind) (string, bool) {
	l, ok := labelsByKind[k]
	return l.venue, ok
}

// Open parses a CCV XML export from disk.
func Open(path string) (*etree.Document, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: CCV XML %s", ErrNotFound, path)
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("parsing CCV XML %s: %w", path, err)
	}
	return doc, nil
}

// Parse reads a CCV XML document from a byte slice. Used by tests and by
// callers that already hold the export in memory.
func Parse(data []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parsing CCV XML: %w", err)
	}
	return doc, nil
}

// Publications locates the Contributions/Publications section. Its children
// are one section per publication entry, labeled by kind.
func Publications(doc *etree.Document) (*etree.Element, error) {
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: document has no root element", ErrNotFound)
	}
	pubs := root.FindElement("./section[@label='Contributions']/section[@label='Publications']")
	if pubs == nil {
		return nil, fmt.Errorf("%w: section Contributions/Publications", ErrNotFound)
	}
	return pubs, nil
}

// Entries returns the publication entry elements of recognized kinds, in
// document order. Entries of unrecognized kinds are skipped, not an error.
func Entries(doc *etree.Document) ([]*etree.Element, error) {
	pubs, err := Publications(doc)
	if err != nil {
		return nil, err
	}
	var entries []*etree.Element
	for _, child := range pubs.ChildElements() {
		if _, ok := record.KindFromCCVLabel(child.SelectAttrValue("label", "")); ok {
			entries = append(entries, child)
		}
	}
	return entries, nil
}

// EntryKind returns the canonical kind of a publication entry element.
func EntryKind(entry *etree.Element) (record.Kind, bool) {
	return record.KindFromCCVLabel(entry.SelectAttrValue("label", ""))
}

// FieldValue returns the text of field[@label]/value under an entry.
// Reports ok=false when the field or its value child is absent.
func FieldValue(entry *etree.Element, label string) (string, bool) {
	value := entry.FindElement(fmt.Sprintf("./field[@label='%s']/value", label))
	if value == nil {
		return "", false
	}
	return value.Text(), true
}

// SetField overwrites the text of field[@label]/value under an entry.
// Nothing else in the tree is altered.
func SetField(entry *etree.Element, label, text string) error {
	value := entry.FindElement(fmt.Sprintf("./field[@label='%s']/value", label))
	if value == nil {
		return fmt.Errorf("%w: field %q under entry %q", ErrNotFound, label, entry.SelectAttrValue("label", ""))
	}
	value.SetText(text)
	return nil
}

// Records projects the recognized publication entries into Records. IDs are
// synthesized as {prefix}{1-based sequence within kind, in document order},
// e.g. J1, J2, C1. Source records are read-only from here on.
func Records(doc *etree.Document) ([]record.Record, error) {
	entries, err := Entries(doc)
	if err != nil {
		return nil, err
	}

	counters := make(map[record.Kind]int)
	records := make([]record.Record, 0, len(entries))
	for _, entry := range entries {
		kind, _ := EntryKind(entry)
		counters[kind]++

		labels := labelsByKind[kind]
		authors, _ := FieldValue(entry, AuthorsLabel)
		title, _ := FieldValue(entry, labels.title)
		venue, _ := FieldValue(entry, labels.venue)

		records = append(records, record.Record{
			ID:      kind.Prefix() + fmt.Sprint(counters[kind]),
			Kind:    kind,
			Authors: record.SplitAuthors(authors),
			Title:   title,
			Venue:   venue,
		})
	}
	return records, nil
}

// Save serializes the document to disk, re-emitting the generic-cv
// namespace declaration on the root if the source omitted it.
func Save(doc *etree.Document, path string) error {
	if root := doc.Root(); root != nil {
		if root.SelectAttr("xmlns:generic-cv") == nil {
			root.CreateAttr("xmlns:generic-cv", Namespace)
		}
	}
	if err := doc.WriteToFile(path); err != nil {
		return fmt.Errorf("writing CCV XML %s: %w", path, err)
	}
	return nil
}
