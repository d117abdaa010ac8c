package txtdoc

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/tsawler/swtk/model"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		kinds []model.BlockKind
	}{
		{"heading", "Introduction", []model.BlockKind{model.BlockSection}},
		{"one sentence line", "This is a sentence.", []model.BlockKind{model.BlockParagraph}},
		{"two lines without period", "Results\nand more", []model.BlockKind{model.BlockParagraph}},
		{"list", "- first\n- second", []model.BlockKind{model.BlockEnumeration}},
		{"list with prose", "- first\nsecond line.", []model.BlockKind{model.BlockParagraph}},
		{"mixed", "Title\n\nBody text here.\n\n- a\n- b", []model.BlockKind{
			model.BlockSection, model.BlockParagraph, model.BlockEnumeration,
		}},
		{"empty", "\n\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, warnings, err := Parse(strings.Split(tt.src, "\n"), model.DefaultParseOptions())
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if len(warnings) != 0 {
				t.Errorf("warnings = %v, want none", warnings)
			}
			var got []model.BlockKind
			for _, b := range doc.Blocks() {
				got = append(got, b.Kind())
			}
			if !reflect.DeepEqual(got, tt.kinds) {
				t.Errorf("kinds = %v, want %v", got, tt.kinds)
			}
		})
	}
}

func TestListItemsStripped(t *testing.T) {
	doc, _, _ := Parse([]string{"- alpha beta", "- gamma"}, model.DefaultParseOptions())
	list := doc.Blocks()[0].(*model.Enumeration)
	if list.Ordered {
		t.Error("plaintext lists are unordered")
	}
	if got := list.Items[0].PlainText(); got != "alpha beta" {
		t.Errorf("Items[0] = %q, want %q", got, "alpha beta")
	}
}

func TestMathMasking(t *testing.T) {
	tests := []struct {
		math model.MathMode
		want string
	}{
		{model.MathOff, "Let [Eq] be small."},
		{model.MathInline, "Let $x$ be small."},
	}
	for _, tt := range tests {
		opts := model.DefaultParseOptions()
		opts.Math = tt.math
		doc, _, _ := Parse([]string{"Let $x$ be small."}, opts)
		if got := doc.PlainText(); got != tt.want {
			t.Errorf("PlainText() with math %v = %q, want %q", tt.math, got, tt.want)
		}
	}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("Notes\n\nA line\nthat wraps.\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, _, err := Open(path, model.DefaultParseOptions())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if got := doc.PlainText(); got != "Notes\n\nA line that wraps." {
		t.Errorf("PlainText() = %q", got)
	}
}
