package record

import (
	"fmt"
	"strings"
)

// Kind is the canonical publication category, shared by both adapters.
// Spreadsheet sheet names and CCV section labels both map into this
// vocabulary; an unmapped kind is dropped, never defaulted.
type Kind string

const (
	KindArticle     Kind = "article"
	KindProceedings Kind = "proceedings"
	KindTalk        Kind = "talk"
	KindBookChapter Kind = "bookchapter"
)

// Kinds lists all canonical kinds in display order.
var Kinds = []Kind{KindArticle, KindProceedings, KindTalk, KindBookChapter}

// kindToCCVLabel maps canonical kinds to CCV XML section labels. Only
// articles and proceedings exist in a CCV export.
var kindToCCVLabel = map[Kind]string{
	KindArticle:     "Journal Articles",
	KindProceedings: "Conference Publications",
}

// ccvLabelToKind is the inverse of kindToCCVLabel.
var ccvLabelToKind = map[string]Kind{
	"Journal Articles":        KindArticle,
	"Conference Publications": KindProceedings,
}

// kindToPrefix maps canonical kinds to the reference-ID prefix letter used
// in text files ("[J1, C5]") and synthesized IDs.
var kindToPrefix = map[Kind]string{
	KindArticle:     "J",
	KindProceedings: "C",
	KindTalk:        "T",
	KindBookChapter: "B",
}

// ParseKind converts a source-vocabulary name (sheet name, flag value) into
// a canonical Kind. Reports ok=false for unknown names.
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return known, true
		}
	}
	return "", false
}

// ParseKinds converts a list of source names, failing on the first unknown
// one. An empty input selects the kinds present in both sources: articles
// and proceedings.
func ParseKinds(names []string) ([]Kind, error) {
	if len(names) == 0 {
		return []Kind{KindArticle, KindProceedings}, nil
	}
	kinds := make([]Kind, 0, len(names))
	for _, name := range names {
		k, ok := ParseKind(name)
		if !ok {
			return nil, fmt.Errorf("unknown publication kind %q (valid: %v)", name, Kinds)
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// CCVLabel returns the CCV section label for a kind. Reports ok=false for
// kinds that have no CCV section (talks, book chapters).
func (k Kind) CCVLabel() (string, bool) {
	label, ok := kindToCCVLabel[k]
	return label, ok
}

// KindFromCCVLabel maps a CCV section label back to its canonical kind.
func KindFromCCVLabel(label string) (Kind, bool) {
	k, ok := ccvLabelToKind[label]
	return k, ok
}

// Prefix returns the reference-ID prefix letter for a kind.
func (k Kind) Prefix() string {
	return kindToPrefix[k]
}

// KindFromPrefix maps a prefix letter back to its canonical kind.
func KindFromPrefix(prefix string) (Kind, bool) {
	for k, p := range kindToPrefix {
		if p == prefix {
			return k, true
		}
	}
	return "", false
}
