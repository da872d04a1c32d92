// Package refblock rewrites bracketed reference-ID lists embedded in free
// text, e.g. "results were [J1, J5] strong". IDs follow the
// {PrefixLetter}{integer} convention (J=article, C=proceedings, T=talk,
// B=bookchapter).
package refblock

import (
	"regexp"
	"sort"
	"strings"
)

// Placeholder replaces an ID with no entry in the mapping, marking it for
// manual resolution.
const Placeholder = "?"

// blockRe matches a bracketed block and captures its contents.
var blockRe = regexp.MustCompile(`\[([^\[\]]*)\]`)

// idRe matches a single reference ID.
var idRe = regexp.MustCompile(`^[JCTB]\d+$`)

// Blocks extracts the contents of every bracketed block, in order.
// "Blah [J1, J5] pouf [C45] yay!" -> ["J1, J5", "C45"].
func Blocks(text string) []string {
	var blocks []string
	for _, m := range blockRe.FindAllStringSubmatch(text, -1) {
		blocks = append(blocks, m[1])
	}
	return blocks
}

// IsRefID reports whether s looks like a reference ID.
func IsRefID(s string) bool {
	return idRe.MatchString(s)
}

// Rewrite replaces every ID inside every bracketed block through the
// mapping, leaving all text outside brackets verbatim. IDs absent from the
// mapping (or mapped to a reconciliation sentinel the caller translated to
// "") become the Placeholder. With sortIDs set, each rewritten block is
// sorted in place. Empty input comes back unchanged.
func Rewrite(text string, mapping map[string]string, sortIDs bool) string {
	return blockRe.ReplaceAllStringFunc(text, func(block string) string {
		inner := block[1 : len(block)-1]
		ids := strings.Split(inner, ", ")

		replaced := make([]string, 0, len(ids))
		for _, id := range ids {
			newID, ok := mapping[id]
			if !ok || newID == "" {
				newID = Placeholder
			}
			replaced = append(replaced, newID)
		}
		if sortIDs {
			sort.Strings(replaced)
		}
		return "[" + strings.Join(replaced, ", ") + "]"
	})
}
