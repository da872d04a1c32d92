package roster

import (
	"strings"

	"github.com/beevik/etree"
)

// Asterisk is appended to student names in CCV author lists.
const Asterisk = "*"

// MarkAuthors rewrites a comma-joined author string, stripping any existing
// asterisks and appending one to every roster member. Name order and
// spacing convention are preserved. Idempotent.
func MarkAuthors(authorList string, students Roster) string {
	if strings.TrimSpace(authorList) == "" {
		return authorList
	}

	names := strings.Split(authorList, ",")
	for i, name := range names {
		name = strings.TrimSpace(strings.ReplaceAll(name, Asterisk, ""))
		if students.Contains(name) {
			name += Asterisk
		}
		names[i] = name
	}
	return strings.Join(names, ", ")
}

// MarkCCVAuthors appends asterisks to student names in every Authors field
// of a CCV XML tree. Fields are located with structured queries rather than
// element-order tracking; nothing outside the Authors values is modified.
// Returns the number of fields whose value changed.
func MarkCCVAuthors(doc *etree.Document, students Roster) int {
	changed := 0
	for _, value := range doc.FindElements("//field[@label='Authors']/value") {
		old := value.Text()
		if old == "" {
			continue
		}
		marked := MarkAuthors(old, students)
		if marked != old {
			value.SetText(marked)
			changed++
		}
	}
	return changed
}
