package model

import (
	"fmt"
	"strings"
)

// Color represents an RGB color
type Color struct {
	R, G, B uint8
}

// Hex returns the color as six lowercase hex digits, without '#'.
func (c Color) Hex() string {
	return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHexColor parses "rgb", "rrggbb" or the same prefixed with '#'.
func ParseHexColor(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	var c Color
	switch len(s) {
	case 3:
		var r, g, b uint8
		if _, err := fmt.Sscanf(s, "%1x%1x%1x", &r, &g, &b); err != nil {
			return c, fmt.Errorf("invalid color %q: %w", s, err)
		}
		return Color{R: r * 17, G: g * 17, B: b * 17}, nil
	case 6:
		if _, err := fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
			return c, fmt.Errorf("invalid color %q: %w", s, err)
		}
		return c, nil
	default:
		return c, fmt.Errorf("invalid color %q", s)
	}
}

// Style is a named CSS class definition. A style with neither a color nor a
// custom rule is a plain class name; the renderer assigns it a fallback color.
type Style struct {
	Name     string
	Color    Color
	Custom   string
	hasColor bool
}

// ColorStyle creates a style that sets the background color.
func ColorStyle(name string, c Color) Style {
	return Style{Name: name, Color: c, hasColor: true}
}

// HexStyle creates a background-color style from a hex string. Invalid
// strings produce a plain style.
func HexStyle(name, hex string) Style {
	c, err := ParseHexColor(hex)
	if err != nil {
		return PlainStyle(name)
	}
	return ColorStyle(name, c)
}

// CustomStyle creates a style from a raw CSS declaration block.
func CustomStyle(name, css string) Style {
	return Style{Name: name, Custom: css}
}

// PlainStyle creates a style with only a name.
func PlainStyle(name string) Style {
	return Style{Name: name}
}

// Defined reports whether the style carries its own color or CSS.
func (s Style) Defined() bool {
	return s.hasColor || s.Custom != ""
}

// HasColor reports whether the style sets a background color.
func (s Style) HasColor() bool { return s.hasColor }

// WithColor returns a copy of the style using the given background color.
func (s Style) WithColor(c Color) Style {
	return Style{Name: s.Name, Color: c, hasColor: true}
}

// CSS returns the CSS rule for the style, or "" for a plain style.
func (s Style) CSS() string {
	switch {
	case s.Custom != "":
		return fmt.Sprintf(".%s { %s }", s.Name, s.Custom)
	case s.hasColor:
		return fmt.Sprintf(".%s { background-color: #%s; }", s.Name, s.Color.Hex())
	default:
		return ""
	}
}

func (s Style) String() string { return s.Name }

// Detail is one line of a report's detail list. When Class is set the line
// toggles that style.
type Detail struct {
	Text  string
	Class string
}

// Report is a structured finding produced by one analyzer.
type Report struct {
	Label string
	// Details is nil when the report has no detail list.
	Details []Detail
	Help    string
	Summary string
	Styles  []Style
}

// NewReport creates a report with a label, help text and summary.
func NewReport(label, help, summary string) *Report {
	return &Report{Label: label, Help: help, Summary: summary}
}

// ID returns a DOM-friendly identifier derived from the label.
func (r *Report) ID() string {
	return strings.ReplaceAll(strings.ToLower(r.Label), " ", "-")
}

// AddDetail appends a detail line.
func (r *Report) AddDetail(text, class string) {
	r.Details = append(r.Details, Detail{Text: text, Class: class})
}

// AddStyle appends a style definition, ignoring names already present.
func (r *Report) AddStyle(s Style) {
	for _, existing := range r.Styles {
		if existing.Name == s.Name {
			return
		}
	}
	r.Styles = append(r.Styles, s)
}

// StyleNames returns the names of the report's styles in order.
func (r *Report) StyleNames() []string {
	names := make([]string, len(r.Styles))
	for i, s := range r.Styles {
		names[i] = s.Name
	}
	return names
}

func (r *Report) String() string {
	texts := make([]string, len(r.Details))
	for i, d := range r.Details {
		texts[i] = d.Text
	}
	return fmt.Sprintf("%s : %s", r.Label, strings.Join(texts, ", "))
}
