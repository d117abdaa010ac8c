package swtk

import (
	"maps"

	"github.com/tsawler/swtk/model"
	"github.com/tsawler/swtk/pipeline"
	"github.com/tsawler/swtk/render"
	"github.com/tsawler/swtk/tokenize"
)

// AnalyzeOptions holds the configuration of one analysis run.
type AnalyzeOptions struct {
	// Parsing
	includeFloats bool
	math          model.MathMode
	mathSet       bool // set by Paper.Math, which wins over Config
	tokenizer     tokenize.Tokenizer

	// Pipeline
	tagger    tokenize.Tagger
	settings  map[string]pipeline.Settings
	resources map[string][]byte

	// Rendering
	render render.Options
}

// defaultOptions returns options with floats excluded, math off and every
// analyzer enabled.
func defaultOptions() AnalyzeOptions {
	return AnalyzeOptions{
		math:     model.MathOff,
		settings: map[string]pipeline.Settings{},
	}
}

// clone creates a deep copy of AnalyzeOptions.
func (o AnalyzeOptions) clone() AnalyzeOptions {
	newOpts := o
	newOpts.settings = maps.Clone(o.settings)
	if newOpts.settings == nil {
		newOpts.settings = map[string]pipeline.Settings{}
	}
	newOpts.resources = maps.Clone(o.resources)
	newOpts.render.StyleOverrides = maps.Clone(o.render.StyleOverrides)
	return newOpts
}

func (o AnalyzeOptions) parseOptions() model.ParseOptions {
	return model.ParseOptions{
		Math:          o.math,
		IncludeFloats: o.includeFloats,
		Tokenizer:     o.tokenizer,
	}
}

func (o AnalyzeOptions) renderOptions() render.Options {
	opts := o.render
	opts.Math = o.math
	return opts
}
