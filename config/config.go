// Package config loads swtk settings from a YAML file and the environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/swtk/analyzers"
	"github.com/tsawler/swtk/internal/logging"
	"github.com/tsawler/swtk/model"
	"github.com/tsawler/swtk/pipeline"
	"github.com/tsawler/swtk/render"
)

// Environment variables read by ApplyEnv.
const (
	EnvLogLevel   = "SWTK_LOG_LEVEL"
	EnvLogFormat  = "SWTK_LOG_FORMAT"
	EnvStylesheet = "SWTK_STYLESHEET"
	EnvScript     = "SWTK_SCRIPT"
)

// DefaultYAML documents every setting with its default value.
const DefaultYAML = `# swtk configuration
resources:
  stylesheet: ""   # empty: embedded default
  script: ""
  mathjax: ""
external: false    # link stylesheet and script instead of inlining them
floats: false      # keep figure and table captions
math: off          # off | inline | display

dictionaries:
  frequent_words: ""
  filter_words: ""
  guidelines: ""

# Per-analyzer settings, e.g.
# analyzers:
#   sentence-length:
#     options: {long: 30}
#   bigrams:
#     disabled: true
analyzers: {}

# Highlight colors: #rrggbb, rrggbb or a CSS color name.
styles: {}

log:
  level: info      # debug | info | warn | error
  format: text     # text | json
`

// Resources names the page assets.
type Resources struct {
	Stylesheet string `yaml:"stylesheet"`
	Script     string `yaml:"script"`
	MathJax    string `yaml:"mathjax"`
}

// Dictionaries names files replacing the embedded analyzer resources.
type Dictionaries struct {
	FrequentWords string `yaml:"frequent_words"`
	FilterWords   string `yaml:"filter_words"`
	Guidelines    string `yaml:"guidelines"`
}

// AnalyzerConfig adjusts one analyzer.
type AnalyzerConfig struct {
	Disabled bool           `yaml:"disabled"`
	Priority *int           `yaml:"priority,omitempty"`
	Options  map[string]any `yaml:"options,omitempty"`
}

// LogConfig selects the log level and handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config holds every setting of a run.
type Config struct {
	Resources    Resources                 `yaml:"resources"`
	External     bool                      `yaml:"external"`
	Floats       bool                      `yaml:"floats"`
	Math         string                    `yaml:"math"`
	Dictionaries Dictionaries              `yaml:"dictionaries"`
	Analyzers    map[string]AnalyzerConfig `yaml:"analyzers"`
	Styles       map[string]string         `yaml:"styles"`
	Log          LogConfig                 `yaml:"log"`
}

// MissingResourceError reports a configured file that cannot be read.
type MissingResourceError struct {
	Kind string
	Path string
	Err  error
}

func (e *MissingResourceError) Error() string {
	return fmt.Sprintf("missing %s %q: %v", e.Kind, e.Path, e.Err)
}

func (e *MissingResourceError) Unwrap() error {
	return e.Err
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Math:      model.MathOff.String(),
		Analyzers: map[string]AnalyzerConfig{},
		Styles:    map[string]string{},
		Log:       LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads a YAML file over the defaults. Unknown keys are an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	c, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes YAML over the defaults.
func Parse(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if c.Analyzers == nil {
		c.Analyzers = map[string]AnalyzerConfig{}
	}
	if c.Styles == nil {
		c.Styles = map[string]string{}
	}
	return c, nil
}

// ApplyEnv overlays environment variables, after loading a .env file from
// the working directory when one exists.
func (c *Config) ApplyEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logging.Warn("ignoring .env file", "error", err)
	}
	c.Log.Level = getEnv(EnvLogLevel, c.Log.Level)
	c.Log.Format = getEnv(EnvLogFormat, c.Log.Format)
	c.Resources.Stylesheet = getEnv(EnvStylesheet, c.Resources.Stylesheet)
	c.Resources.Script = getEnv(EnvScript, c.Resources.Script)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Validate checks every value and that configured files exist. A missing
// file is reported as *MissingResourceError.
func (c *Config) Validate() error {
	if _, err := model.ParseMathMode(c.Math); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := c.StyleColors(); err != nil {
		return err
	}
	for id, a := range c.Analyzers {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("config: analyzer id is required")
		}
		if a.Priority != nil && *a.Priority < 0 {
			return fmt.Errorf("config: analyzer %s: negative priority %d", id, *a.Priority)
		}
	}

	files := []struct{ kind, path string }{
		{"stylesheet", c.Resources.Stylesheet},
		{"script", c.Resources.Script},
		{"frequent words dictionary", c.Dictionaries.FrequentWords},
		{"filter words dictionary", c.Dictionaries.FilterWords},
		{"guidelines", c.Dictionaries.Guidelines},
	}
	for _, f := range files {
		if f.path == "" {
			continue
		}
		if _, err := os.Stat(f.path); err != nil {
			return &MissingResourceError{Kind: f.kind, Path: f.path, Err: err}
		}
	}
	return nil
}

// MathMode returns the parsed math setting.
func (c *Config) MathMode() (model.MathMode, error) {
	return model.ParseMathMode(c.Math)
}

// ParseColor accepts "#rrggbb", "rrggbb", "#rgb" or a CSS color name.
func ParseColor(s string) (model.Color, error) {
	if rgba, ok := colornames.Map[strings.ToLower(strings.TrimSpace(s))]; ok {
		return model.Color{R: rgba.R, G: rgba.G, B: rgba.B}, nil
	}
	return model.ParseHexColor(s)
}

// StyleColors returns the parsed style overrides.
func (c *Config) StyleColors() (map[string]model.Color, error) {
	colors := make(map[string]model.Color, len(c.Styles))
	for name, value := range c.Styles {
		color, err := ParseColor(value)
		if err != nil {
			return nil, fmt.Errorf("config: style %s: %w", name, err)
		}
		colors[name] = color
	}
	return colors, nil
}

// AnalyzerSettings converts the analyzer section for pipeline.Registry.Build.
func (c *Config) AnalyzerSettings() map[string]pipeline.Settings {
	settings := make(map[string]pipeline.Settings, len(c.Analyzers))
	for id, a := range c.Analyzers {
		settings[id] = pipeline.Settings{
			Disabled: a.Disabled,
			Priority: a.Priority,
			Options:  pipeline.Options(a.Options),
		}
	}
	return settings
}

// LoadResources returns the analyzer resources: the embedded defaults with
// configured dictionary files read over them.
func (c *Config) LoadResources() (map[string][]byte, error) {
	resources := analyzers.DefaultResources()
	files := []struct{ kind, name, path string }{
		{"frequent words dictionary", analyzers.ResourceFrequentWords, c.Dictionaries.FrequentWords},
		{"filter words dictionary", analyzers.ResourceFilterWords, c.Dictionaries.FilterWords},
		{"guidelines", analyzers.ResourceGuidelines, c.Dictionaries.Guidelines},
	}
	for _, f := range files {
		if f.path == "" {
			continue
		}
		data, err := os.ReadFile(f.path)
		if err != nil {
			return nil, &MissingResourceError{Kind: f.kind, Path: f.path, Err: err}
		}
		resources[f.name] = data
	}
	return resources, nil
}

// RenderOptions returns the renderer settings.
func (c *Config) RenderOptions() (render.Options, error) {
	math, err := c.MathMode()
	if err != nil {
		return render.Options{}, fmt.Errorf("config: %w", err)
	}
	colors, err := c.StyleColors()
	if err != nil {
		return render.Options{}, err
	}
	return render.Options{
		Resources: render.Resources{
			Stylesheet: c.Resources.Stylesheet,
			Script:     c.Resources.Script,
			MathJax:    c.Resources.MathJax,
		},
		External:       c.External,
		Math:           math,
		StyleOverrides: colors,
	}, nil
}
