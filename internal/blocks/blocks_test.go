package blocks

import (
	"reflect"
	"strings"
	"testing"

	"github.com/tsawler/swtk/model"
)

func TestReadLines(t *testing.T) {
	lines, err := ReadLines(strings.NewReader("café\r\nsecond\n\nlast"))
	if err != nil {
		t.Fatalf("ReadLines() error = %v", err)
	}
	want := []string{"café", "second", "", "last"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("ReadLines() = %q, want %q", lines, want)
	}
}

func TestPending(t *testing.T) {
	var p Pending
	if !p.Empty() {
		t.Fatal("new Pending is not empty")
	}
	p.Add("  A sentence that", 4)
	p.Add("wraps lines.  ", 5)
	if p.Line() != 4 {
		t.Errorf("Line() = %d, want 4", p.Line())
	}
	if got := p.Text(); got != "A sentence that wraps lines." {
		t.Errorf("Text() = %q", got)
	}
	if got := p.Lines(); len(got) != 2 || got[1] != "wraps lines.  " {
		t.Errorf("Lines() = %q", got)
	}
	p.Reset()
	if !p.Empty() || p.Line() != 0 {
		t.Errorf("after Reset() Empty() = %v, Line() = %d", p.Empty(), p.Line())
	}
}

func TestNormalize(t *testing.T) {
	b := New(model.DefaultParseOptions(), []Replacement{
		R(`\\emph\{([^}]*)\}`, "$1"),
		R(`\\noindent`, ""),
	})
	tests := []struct {
		in   string
		want string
	}{
		{`\noindent A \emph{bold} claim.`, "A bold claim."},
		{"Fig.~3   shows   it.", "Fig. 3 shows it."},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := b.Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuilderBlocks(t *testing.T) {
	b := New(model.DefaultParseOptions(), nil)

	p := b.Paragraph("abstract", "First one. Second one.")
	if p == nil || len(p.Sentences()) != 2 || p.Class != "abstract" {
		t.Fatalf("Paragraph() = %v", p)
	}
	if b.Paragraph("", "  ") != nil {
		t.Error("Paragraph() of blank text is not nil")
	}

	s := b.Section(2, "Results. And more")
	if len(s.Sentences()) != 1 || s.Level != 2 {
		t.Errorf("Section() sentences = %d, level = %d", len(s.Sentences()), s.Level)
	}

	e := b.Enumeration(true, []string{"alpha", "", "beta"})
	if e == nil || len(e.Items) != 2 || !e.Ordered {
		t.Errorf("Enumeration() = %v", e)
	}
	if b.Enumeration(false, []string{"", " "}) != nil {
		t.Error("Enumeration() of empty items is not nil")
	}

	if f := b.Float("A plot."); f == nil || f.Caption.Class != "float" {
		t.Errorf("Float() = %v", f)
	}
	if b.Float("") != nil {
		t.Error("Float() of empty caption is not nil")
	}
}
