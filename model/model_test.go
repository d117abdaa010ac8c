package model

import (
	"reflect"
	"strings"
	"testing"
)

// ============================================================================
// Token Tests
// ============================================================================

func TestTokenAnnotations(t *testing.T) {
	tok := NewToken("IEEE")
	if got := tok.Annotations(); got != nil {
		t.Errorf("Annotations() = %v, want nil", got)
	}

	tok.Annotate("abbrev_0")
	tok.Annotate("")
	tok.Annotate("abbrev_0")
	want := []string{"abbrev_0", "abbrev_0"}
	if got := tok.Annotations(); !reflect.DeepEqual(got, want) {
		t.Errorf("Annotations() = %v, want %v", got, want)
	}

	// Returned slices are copies
	got := tok.Annotations()
	got[0] = "changed"
	if tok.Annotations()[0] != "abbrev_0" {
		t.Error("Annotations() exposed internal slice")
	}
}

func TestTokenIsMath(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"$x^2$", true},
		{"$ x + y $", true},
		{"$", false},
		{"dollar", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := NewToken(tt.text).IsMath(); got != tt.want {
				t.Errorf("IsMath(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

// ============================================================================
// Sentence Tests
// ============================================================================

func TestSentenceText(t *testing.T) {
	tests := []struct {
		name  string
		words []string
		want  string
	}{
		{"simple", []string{"This", "is", "a", "sentence", "."}, "This is a sentence."},
		{"comma", []string{"First", ",", "second", "."}, "First, second."},
		{"citation", []string{"As", "shown", "in", "[", "1", "]", "."}, "As shown in [1]."},
		{"parens", []string{"see", "(", "3", ")", "!"}, "see (3)!"},
		{"clitic", []string{"It", "does", "n't", "work", "."}, "It doesn't work."},
		{"possessive", []string{"Bob", "'s", "car"}, "Bob's car"},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSentence(strings.Join(tt.words, " "), tt.words)
			if got := s.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSentenceTokenIdentity(t *testing.T) {
	s := NewSentence("a b", []string{"a", "b"})
	first := s.Tokens()
	second := s.Tokens()
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Tokens()[%d] pointer changed between calls", i)
		}
	}
	if s.Last() != first[1] {
		t.Errorf("Last() = %v, want %v", s.Last(), first[1])
	}
	if NewSentence("", nil).Last() != nil {
		t.Error("Last() on empty sentence should be nil")
	}
}

// ============================================================================
// Block Tests
// ============================================================================

func newTestParagraph(class string, texts ...string) *Paragraph {
	var sentences []*Sentence
	for _, text := range texts {
		sentences = append(sentences, NewSentence(text, strings.Fields(text)))
	}
	return NewParagraph(class, sentences)
}

func TestBlockKinds(t *testing.T) {
	tests := []struct {
		block     Block
		kind      BlockKind
		paragraph bool
		sentences int
	}{
		{NewSection(1, NewSentence("Intro", []string{"Intro"})), BlockSection, false, 1},
		{newTestParagraph("", "a .", "b ."), BlockParagraph, true, 2},
		{NewEnumeration(false, []*Paragraph{newTestParagraph("", "x"), newTestParagraph("", "y z")}), BlockEnumeration, true, 2},
		{NewEquation(" E = mc^2 "), BlockEquation, false, 0},
		{NewFloat(newTestParagraph("float", "A caption .")), BlockFloat, false, 1},
		{NewFloat(nil), BlockFloat, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := tt.block.Kind(); got != tt.kind {
				t.Errorf("Kind() = %v, want %v", got, tt.kind)
			}
			if got := tt.block.CountsAsParagraph(); got != tt.paragraph {
				t.Errorf("CountsAsParagraph() = %v, want %v", got, tt.paragraph)
			}
			if got := len(tt.block.Sentences()); got != tt.sentences {
				t.Errorf("len(Sentences()) = %d, want %d", got, tt.sentences)
			}
		})
	}
}

func TestRenderBlock(t *testing.T) {
	heading := NewSentence("Introduction", []string{"Introduction"})
	para := newTestParagraph("abstract", "We study x .")
	para.Sentences()[0].Annotate("_longSentence")
	para.Sentences()[0].Tokens()[1].Annotate("pos_verb")
	para.Sentences()[0].Tokens()[1].AddAlternative("examine")

	math := NewSentence("$x$ holds", []string{"$x$", "holds"})

	tests := []struct {
		name  string
		block Block
		opts  RenderOptions
		want  string
	}{
		{"section", NewSection(2, heading), RenderOptions{}, "<h2>Introduction</h2>"},
		{"zero section", &Section{}, RenderOptions{}, "<h1></h1>"},
		{"deep section", NewSection(9, heading), RenderOptions{}, "<h6>Introduction</h6>"},
		{
			"annotated paragraph", para, RenderOptions{},
			`<p class="abstract"><span class="_longSentence">We <span class="pos_verb" data-alt="examine">study</span> x.</span></p>`,
		},
		{
			"ordered list", NewEnumeration(true, []*Paragraph{newTestParagraph("", "one")}), RenderOptions{},
			"<ol><li><p>one</p></li></ol>",
		},
		{"equation", NewEquation("a<b"), RenderOptions{}, `<p class="equation">$$a&lt;b$$</p>`},
		{"math off", NewParagraph("", []*Sentence{math}), RenderOptions{}, "<p>$x$ holds</p>"},
		{"math on", NewParagraph("", []*Sentence{math}), RenderOptions{Math: MathInline}, `<p>\(x\) holds</p>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RenderBlock(tt.block, tt.opts)
			if err != nil {
				t.Fatalf("RenderBlock() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("RenderBlock() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ============================================================================
// Document Tests
// ============================================================================

func sampleDocument() *Document {
	doc := NewDocument()
	doc.Metadata.Title = "Title"
	doc.AddBlock(NewSection(1, NewSentence("Intro", []string{"Intro"})))
	doc.AddBlock(newTestParagraph("abstract", "We present it ."))
	doc.AddBlock(NewEquation("x"))
	doc.AddBlock(newTestParagraph("", "First one .", "Second one ."))
	return doc
}

func TestDocumentSentenceOrder(t *testing.T) {
	doc := sampleDocument()
	var got []string
	for _, s := range doc.Sentences() {
		got = append(got, s.Text())
	}
	want := []string{"Intro", "We present it.", "First one.", "Second one."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Sentences() = %v, want %v", got, want)
	}
	if doc.ParagraphCount() != 2 {
		t.Errorf("ParagraphCount() = %d, want 2", doc.ParagraphCount())
	}
	if doc.Abstract() != "We present it." {
		t.Errorf("Abstract() = %q, want %q", doc.Abstract(), "We present it.")
	}
}

func TestDocumentPlainText(t *testing.T) {
	doc := sampleDocument()
	want := "Intro\n\nWe present it.\n\nFirst one. Second one."
	if got := doc.PlainText(); got != want {
		t.Errorf("PlainText() = %q, want %q", got, want)
	}
}

func TestCheckpointRestore(t *testing.T) {
	doc := sampleDocument()
	doc.SetStat("words", 7)
	first := doc.Sentences()[1]
	first.Tokens()[0].Annotate("keep")
	before := doc.Fingerprint()

	cp := doc.Checkpoint()
	first.Annotate("drop")
	first.Tokens()[0].Annotate("drop")
	first.Tokens()[0].SetTag("PRP")
	first.Tokens()[0].AddAlternative("Us")
	doc.Blocks()[0].Annotate("drop")
	doc.SetStat("words", 99)
	doc.SetStat("extra", 1)
	doc.AddReport(NewReport("Broken", "", ""))

	if doc.Fingerprint() == before {
		t.Fatal("Fingerprint() did not change after mutation")
	}

	cp.Restore()

	if got := first.Tokens()[0].Annotations(); !reflect.DeepEqual(got, []string{"keep"}) {
		t.Errorf("token Annotations() = %v, want [keep]", got)
	}
	if first.Tokens()[0].Tag() != "" {
		t.Errorf("Tag() = %q, want empty", first.Tokens()[0].Tag())
	}
	if v, _ := doc.Stat("words"); v != 7 {
		t.Errorf("Stat(words) = %v, want 7", v)
	}
	if _, ok := doc.Stat("extra"); ok {
		t.Error("Stat(extra) should be gone after Restore()")
	}
	if len(doc.Reports()) != 0 {
		t.Errorf("len(Reports()) = %d, want 0", len(doc.Reports()))
	}
	if got := doc.Fingerprint(); got != before {
		t.Errorf("Fingerprint() = %s, want %s", got, before)
	}
}

func TestFingerprintDeterministic(t *testing.T) {
	a, b := sampleDocument(), sampleDocument()
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("identical documents produced different fingerprints")
	}
	b.Sentences()[0].Annotate("x")
	if a.Fingerprint() == b.Fingerprint() {
		t.Error("different documents produced equal fingerprints")
	}
}

// ============================================================================
// Report Tests
// ============================================================================

func TestStyleCSS(t *testing.T) {
	tests := []struct {
		name  string
		style Style
		want  string
	}{
		{"color", ColorStyle("abbrev_0", Color{240, 240, 0}), ".abbrev_0 { background-color: #f0f000; }"},
		{"hex", HexStyle("pos_verb", "F5E679"), ".pos_verb { background-color: #f5e679; }"},
		{"short hex", HexStyle("x", "#fcc"), ".x { background-color: #ffcccc; }"},
		{"custom", CustomStyle("equation", "font-style: italic;"), ".equation { font-style: italic; }"},
		{"plain", PlainStyle("rareWord_1"), ""},
		{"bad hex", HexStyle("y", "zz"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.style.CSS(); got != tt.want {
				t.Errorf("CSS() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReportStylesUnique(t *testing.T) {
	r := NewReport("Passive voice", "", "")
	r.AddStyle(HexStyle("passiveVoice", "D0DEFF"))
	r.AddStyle(HexStyle("passiveVoice", "000000"))
	r.AddStyle(PlainStyle("passiveVerb"))
	if got := r.StyleNames(); !reflect.DeepEqual(got, []string{"passiveVoice", "passiveVerb"}) {
		t.Errorf("StyleNames() = %v", got)
	}
	if r.ID() != "passive-voice" {
		t.Errorf("ID() = %q, want %q", r.ID(), "passive-voice")
	}
}

func TestParseMathMode(t *testing.T) {
	tests := []struct {
		in      string
		want    MathMode
		wantErr bool
	}{
		{"", MathOff, false},
		{"inline", MathInline, false},
		{"Display", MathDisplay, false},
		{"bogus", MathOff, true},
	}

	for _, tt := range tests {
		got, err := ParseMathMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMathMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseMathMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if !MathDisplay.Inline() || MathInline.Display() {
		t.Error("math modes should escalate")
	}
}
