// Package report holds the helpers analyzers share when turning counts into
// reports: frequency ranking, palette colours for ranked keys, toggle
// details, and number formatting.
package report

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tsawler/swtk/model"
)

var printer = message.NewPrinter(language.English)

// Sprintf formats like fmt.Sprintf with English digit grouping, so 12345
// prints as 12,345.
func Sprintf(format string, args ...any) string {
	return printer.Sprintf(format, args...)
}

// Count formats an integer with digit grouping.
func Count(n int) string {
	return printer.Sprintf("%d", n)
}

// Percent returns part/whole as a percentage with one decimal. ok is false
// when whole is not positive.
func Percent(part, whole float64) (s string, ok bool) {
	if whole <= 0 {
		return "", false
	}
	return printer.Sprintf("%.1f%%", 100*part/whole), true
}

// Entry is one ranked key with its number of occurrences.
type Entry struct {
	Key   string
	Count int
}

func (e Entry) String() string {
	return e.Key + " : " + Count(e.Count)
}

// Rank returns the keys with at least atLeast occurrences, most frequent first.
// Ties are broken by key so the order never depends on map iteration.
func Rank(counts map[string]int, atLeast int) []Entry {
	entries := make([]Entry, 0, len(counts))
	for k, v := range counts {
		if v >= atLeast {
			entries = append(entries, Entry{Key: k, Count: v})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Key < entries[j].Key
	})
	return entries
}

// Top summarizes the first k entries, e.g. "Top 3 : IEEE, DCT, JPEG".
func Top(entries []Entry, k int) string {
	k = min(k, len(entries))
	keys := make([]string, k)
	for i := 0; i < k; i++ {
		keys[i] = entries[i].Key
	}
	return fmt.Sprintf("Top %d : %s", k, strings.Join(keys, ", "))
}

// Toggle returns a detail whose text toggles the highlight of class.
func Toggle(text, class string) model.Detail {
	return model.Detail{Text: text, Class: class}
}

// Palette assigns colours to ranked keys. The channel value starts at Start
// for the most frequent key and moves by Step per rank until it reaches
// Bound; Mix turns the channel value into a colour.
type Palette struct {
	Start int
	Step  int
	Bound int
	Mix   func(c int) model.Color
}

// Color returns the colour for the key at rank (0 is the most frequent) in
// a set of n keys. It depends on nothing but its arguments.
func (p Palette) Color(rank, n int) model.Color {
	if n > 0 && rank >= n {
		rank = n - 1
	}
	rank = max(rank, 0)
	c := p.Start + rank*p.Step
	if p.Step < 0 {
		c = max(c, p.Bound)
	} else {
		c = min(c, p.Bound)
	}
	c = min(max(c, 0), 255)
	return p.Mix(c)
}

func scale(c int, f float64) uint8 { return uint8(float64(c) * f) }

var (
	// AbbreviationPalette runs from bright to darker yellow.
	AbbreviationPalette = Palette{Start: 240, Step: -8, Bound: 208, Mix: func(c int) model.Color {
		return model.Color{R: uint8(c), G: uint8(c), B: 0}
	}}

	// BigramPalette runs through teal.
	BigramPalette = Palette{Start: 192, Step: 2, Bound: 255, Mix: func(c int) model.Color {
		return model.Color{R: scale(c, 0.65), G: uint8(c), B: uint8(c)}
	}}

	// TrigramPalette runs through green.
	TrigramPalette = Palette{Start: 192, Step: 2, Bound: 255, Mix: func(c int) model.Color {
		return model.Color{R: scale(c, 0.65), G: uint8(c), B: scale(c, 0.65)}
	}}
)

// Classed is a ranked entry with the annotation class and style assigned
// to it.
type Classed struct {
	Entry
	Class string
	Style model.Style
}

// Classify numbers ranked entries as prefix_1, prefix_2, ... and colours
// them with the palette. A nil palette gives plain styles, which the
// renderer colours from its fallback rotation.
func Classify(entries []Entry, prefix string, p *Palette) []Classed {
	out := make([]Classed, len(entries))
	for i, e := range entries {
		class := fmt.Sprintf("%s_%d", prefix, i+1)
		style := model.PlainStyle(class)
		if p != nil {
			style = model.ColorStyle(class, p.Color(i, len(entries)))
		}
		out[i] = Classed{Entry: e, Class: class, Style: style}
	}
	return out
}

// Hidden returns the class in its hidden form.
func Hidden(class string) string {
	return model.HiddenPrefix + class
}
