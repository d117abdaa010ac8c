// Command swtk analyzes a LaTeX, Markdown or plain text paper and writes an
// interactive HTML report of its writing style.
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/tsawler/swtk"
	"github.com/tsawler/swtk/config"
	"github.com/tsawler/swtk/format"
	"github.com/tsawler/swtk/internal/logging"
	"github.com/tsawler/swtk/model"
)

const version = "0.1.0"

// CLI defines the command-line interface for swtk.
type CLI struct {
	File string `arg:"" help:"Input file (LaTeX, Markdown, plaintext)"`

	Output      string `short:"o" help:"Output filename (HTML), - for stdout"`
	Stylesheet  string `short:"s" help:"Custom CSS stylesheet" type:"path"`
	Javascript  string `short:"j" help:"Custom JavaScript" type:"path"`
	External    bool   `short:"e" help:"Link resources instead of embedding them"`
	Verbose     bool   `short:"v" help:"Print an analysis summary"`
	Floats      bool   `short:"f" help:"Include captions of figures and tables"`
	Math        bool   `short:"m" help:"Enable MathJax for inline math"`
	DisplayMath bool   `name:"display-math" short:"M" help:"Enable MathJax and keep standalone equations"`
	Config      string `help:"YAML configuration file" type:"path"`
	LogLevel    string `name:"log-level" help:"Log level (debug, info, warn, error)"`
	LogFormat   string `name:"log-format" help:"Log format (text, json)"`

	Version kong.VersionFlag `help:"Print version information"`
}

// Run executes the analysis.
func (c *CLI) Run() error {
	return c.run(os.Stdout, os.Stderr)
}

func (c *CLI) run(stdout, stderr io.Writer) error {
	if _, err := format.DetectInput(c.File); err != nil {
		return err
	}
	output := c.Output
	if output == "" {
		output = format.DefaultOutput(c.File)
	}
	if _, err := format.DetectOutput(output); err != nil {
		return err
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	level, _ := logging.ParseLevel(cfg.Log.Level)
	logFormat, _ := logging.ParseFormat(cfg.Log.Format)
	logging.InitLogger(level, logFormat, stderr)

	var buf bytes.Buffer
	analysis, err := swtk.Open(c.File).Config(cfg).Render(&buf)
	if err != nil {
		return err
	}

	if output == format.Stdout {
		if _, err := buf.WriteTo(stdout); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	} else if err := os.WriteFile(output, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	if c.Verbose {
		w := stdout
		if output == format.Stdout {
			w = stderr
		}
		fmt.Fprintln(w, summary(c.File, output, cfg, analysis))
	}
	return nil
}

// loadConfig reads the configuration file, the environment and then the
// flags, each overriding the previous.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if c.Config != "" {
		loaded, err := config.Load(c.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.ApplyEnv()

	if c.Stylesheet != "" {
		cfg.Resources.Stylesheet = c.Stylesheet
	}
	if c.Javascript != "" {
		cfg.Resources.Script = c.Javascript
	}
	if c.External {
		cfg.External = true
	}
	if c.Floats {
		cfg.Floats = true
	}
	switch {
	case c.DisplayMath:
		cfg.Math = model.MathDisplay.String()
	case c.Math:
		cfg.Math = model.MathInline.String()
	}
	if c.LogLevel != "" {
		cfg.Log.Level = c.LogLevel
	}
	if c.LogFormat != "" {
		cfg.Log.Format = c.LogFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("swtk"),
		kong.Description("Scientific Writing Toolkit - writing style analysis for papers"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
