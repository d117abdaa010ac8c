package model

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"

	"github.com/zeebo/blake3"
)

// Fingerprint returns a hex-encoded BLAKE3 digest of the document structure,
// every annotation, tag and alternative, the statistics and the reports.
// Two runs over the same input produce the same fingerprint.
func (d *Document) Fingerprint() string {
	h := blake3.New()
	d.writeCanonical(h)
	return hex.EncodeToString(h.Sum(nil))
}

func (d *Document) writeCanonical(w io.Writer) {
	field := func(tag string, values ...string) {
		fmt.Fprintf(w, "%s", tag)
		for _, v := range values {
			fmt.Fprintf(w, "\x1f%d:%s", len(v), v)
		}
		io.WriteString(w, "\x1e")
	}
	list := func(tag string, a *annotationList) {
		field(tag, a.classes...)
	}

	field("meta", d.Metadata.Title, d.Metadata.Author)
	d.walkAnnotated(func(a *annotationList) { list("bnote", a) })
	for _, b := range d.blocks {
		field("block", b.Kind().String())
		if eq, ok := b.(*Equation); ok {
			field("tex", eq.TeX)
		}
		for _, s := range b.Sentences() {
			field("sentence", s.raw)
			list("snote", &s.notes)
			for _, t := range s.tokens {
				field("token", t.text, t.tag)
				list("tnote", &t.notes)
				field("alt", t.alternatives...)
			}
		}
	}
	for _, name := range d.StatNames() {
		field("stat", name, strconv.FormatFloat(d.stats[name], 'g', -1, 64))
	}
	for _, r := range d.reports {
		field("report", r.Label, r.Help, r.Summary)
		for _, det := range r.Details {
			field("detail", det.Text, det.Class)
		}
		for _, st := range r.Styles {
			field("style", st.Name, st.CSS())
		}
	}
}
