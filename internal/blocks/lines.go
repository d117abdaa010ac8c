package blocks

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const maxLineSize = 1024 * 1024

// ReadLines reads r into NFC-normalized lines without line terminators.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		lines = append(lines, norm.NFC.String(strings.TrimRight(scanner.Text(), "\r")))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return lines, nil
}

// Pending accumulates the lines of the paragraph being read.
type Pending struct {
	lines []string
	start int
}

// Add appends a line. n is its 1-indexed source line number.
func (p *Pending) Add(line string, n int) {
	if len(p.lines) == 0 {
		p.start = n
	}
	p.lines = append(p.lines, line)
}

// Empty reports whether no line is pending.
func (p *Pending) Empty() bool { return len(p.lines) == 0 }

// Lines returns the pending lines.
func (p *Pending) Lines() []string { return p.lines }

// Line returns the source line of the first pending line.
func (p *Pending) Line() int { return p.start }

// Text joins the pending lines with single spaces.
func (p *Pending) Text() string {
	parts := make([]string, 0, len(p.lines))
	for _, l := range p.lines {
		if l = strings.TrimSpace(l); l != "" {
			parts = append(parts, l)
		}
	}
	return strings.Join(parts, " ")
}

// Reset clears the buffer.
func (p *Pending) Reset() {
	p.lines = nil
	p.start = 0
}
