package analyzers

import (
	"github.com/tsawler/swtk/internal/logging"
	"github.com/tsawler/swtk/model"
	"github.com/tsawler/swtk/pipeline"
)

// Help adds the "Getting started" report carrying the writing guidelines.
type Help struct {
	pipeline.Base
	guidelines string
}

// NewHelp creates the help analyzer.
func NewHelp(env pipeline.Env) (pipeline.Analyzer, error) {
	guidelines := env.Resource(ResourceGuidelines)
	if guidelines == nil {
		guidelines = defaultGuidelines
	}
	return &Help{
		Base:       pipeline.NewBase(IDHelp, 0, pipeline.DocumentLevel),
		guidelines: string(guidelines),
	}, nil
}

func (h *Help) ProcessDocument(doc *model.Document) error { return nil }

func (h *Help) Finalize(doc *model.Document) error {
	if h.guidelines == "" {
		logging.Warn("guidelines are empty, skipping help report")
		return nil
	}
	doc.AddReport(model.NewReport("Getting started", h.guidelines, ""))
	return nil
}
