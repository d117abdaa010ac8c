package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tsawler/swtk"
	"github.com/tsawler/swtk/config"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Width(12)
	failureStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

// summary renders the verbose report printed after a run.
func summary(input, output string, cfg *config.Config, analysis *swtk.Analysis) string {
	doc := analysis.Document
	resources := []string{"embedded"}
	if cfg.Resources.Stylesheet != "" || cfg.Resources.Script != "" {
		resources = []string{cfg.Resources.Stylesheet, cfg.Resources.Script}
	}

	rows := [][2]string{
		{"input", input},
		{"output", output},
		{"resources", strings.Join(resources, " ")},
		{"math", cfg.Math},
		{"blocks", fmt.Sprint(doc.BlockCount())},
		{"reports", fmt.Sprint(len(doc.Reports()))},
		{"warnings", fmt.Sprint(len(analysis.Warnings))},
		{"fingerprint", doc.Fingerprint()},
	}
	lines := []string{headerStyle.Render("SWTK · " + input)}
	for _, r := range rows {
		lines = append(lines, keyStyle.Render(r[0])+r[1])
	}
	for _, f := range analysis.Result.Failures {
		lines = append(lines, failureStyle.Render(fmt.Sprintf("failed %s (%s): %v", f.Analyzer, f.Phase, f.Err)))
	}
	for _, r := range doc.Reports() {
		if r.Summary != "" {
			lines = append(lines, keyStyle.Render("")+r.Label+": "+r.Summary)
		}
	}

	return boxStyle.Render(strings.Join(lines, "\n")) + "\n" + strings.TrimRight(doc.Summary(), "\n")
}
