package roster

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beevik/etree"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.txt")
	if err := os.WriteFile(path, []byte("Gros C\nDe Leener B\n\nDuval T\n"), 0644); err != nil {
		t.Fatal(err)
	}

	r, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(r) != 3 {
		t.Errorf("len = %d, want 3", len(r))
	}
	if !r.Contains("Gros C") || r.Contains("Cohen-Adad J") {
		t.Errorf("membership wrong: %v", r.Names())
	}
}

func TestWith_DoesNotMutateReceiver(t *testing.T) {
	base := New("Gros C")
	extended := base.With("Cohen-Adad J")

	if base.Contains("Cohen-Adad J") {
		t.Error("With leaked into the receiver")
	}
	if !extended.Contains("Cohen-Adad J") || !extended.Contains("Gros C") {
		t.Errorf("extended = %v", extended.Names())
	}
}

func TestMarkAuthors(t *testing.T) {
	students := New("Gros C", "Duval T")

	tests := []struct {
		in   string
		want string
	}{
		{"Cohen-Adad J, Gros C, Duval T", "Cohen-Adad J, Gros C*, Duval T*"},
		// Existing asterisks are stripped first, so the rewrite is idempotent.
		{"Cohen-Adad J, Gros C*, Duval T*", "Cohen-Adad J, Gros C*, Duval T*"},
		{"Cohen-Adad J", "Cohen-Adad J"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := MarkAuthors(tt.in, students); got != tt.want {
			t.Errorf("MarkAuthors(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMarkAuthors_Idempotent(t *testing.T) {
	students := New("Gros C")
	once := MarkAuthors("Gros C, Cohen-Adad J", students)
	twice := MarkAuthors(once, students)
	if once != twice {
		t.Errorf("not idempotent: %q vs %q", once, twice)
	}
}

const asteriskFixture = `<?xml version="1.0"?>
<generic-cv:generic-cv xmlns:generic-cv="http://www.cihr-irsc.gc.ca/generic-cv/1.0.0">
  <section label="Contributions">
    <section label="Publications">
      <section label="Journal Articles">
        <field label="Article Title"><value>Alpha</value></field>
        <field label="Authors"><value>Cohen-Adad J, Gros C</value></field>
      </section>
      <section label="Conference Publications">
        <field label="Publication Title"><value>Beta</value></field>
        <field label="Authors"><value>Duval T, Cohen-Adad J</value></field>
      </section>
    </section>
  </section>
</generic-cv:generic-cv>`

func TestMarkCCVAuthors(t *testing.T) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(asteriskFixture); err != nil {
		t.Fatalf("parse: %v", err)
	}

	changed := MarkCCVAuthors(doc, New("Gros C", "Duval T"))
	if changed != 2 {
		t.Errorf("changed = %d, want 2", changed)
	}

	out, _ := doc.WriteToString()
	if !strings.Contains(out, "Cohen-Adad J, Gros C*") {
		t.Error("article authors not marked")
	}
	if !strings.Contains(out, "Duval T*, Cohen-Adad J") {
		t.Error("proceedings authors not marked")
	}
	if !strings.Contains(out, "Alpha") || !strings.Contains(out, "Beta") {
		t.Error("non-author fields disturbed")
	}
}

func TestMarkCCVAuthors_Idempotent(t *testing.T) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(asteriskFixture); err != nil {
		t.Fatalf("parse: %v", err)
	}
	students := New("Gros C")

	MarkCCVAuthors(doc, students)
	once, _ := doc.WriteToString()
	if n := MarkCCVAuthors(doc, students); n != 0 {
		t.Errorf("second pass changed %d fields, want 0", n)
	}
	twice, _ := doc.WriteToString()
	if once != twice {
		t.Error("second pass altered the tree")
	}
}
