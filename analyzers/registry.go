package analyzers

import "github.com/tsawler/swtk/pipeline"

// Analyzer ids, in registration order.
const (
	IDHelp           = "help"
	IDTextStats      = "text-stats"
	IDPOSTagger      = "pos-tagger"
	IDSentenceLength = "sentence-length"
	IDBuriedVerbs    = "buried-verbs"
	IDRareWords      = "rare-words"
	IDBigrams        = "bigrams"
	IDTrigrams       = "trigrams"
	IDAbbreviations  = "abbreviations"
	IDAcronyms       = "acronyms"
	IDWeakVerbs      = "weak-verbs"
	IDFilterWords    = "filter-words"
	IDPassiveVoice   = "passive-voice"
)

// Register adds every built-in analyzer to r.
func Register(r *pipeline.Registry) error {
	builtins := []struct {
		id      string
		factory pipeline.Factory
	}{
		{IDHelp, NewHelp},
		{IDTextStats, NewTextStats},
		{IDPOSTagger, NewPOSTagger},
		{IDSentenceLength, NewSentenceLength},
		{IDBuriedVerbs, NewBuriedVerbs},
		{IDRareWords, NewRareWords},
		{IDBigrams, NewBigrams},
		{IDTrigrams, NewTrigrams},
		{IDAbbreviations, NewAbbreviations},
		{IDAcronyms, NewAcronyms},
		{IDWeakVerbs, NewWeakVerbs},
		{IDFilterWords, NewFilterWords},
		{IDPassiveVoice, NewPassiveVoice},
	}
	for _, b := range builtins {
		if err := r.Register(b.id, b.factory); err != nil {
			return err
		}
	}
	return nil
}

// Default returns a registry holding the built-in analyzers.
func Default() *pipeline.Registry {
	r := pipeline.NewRegistry()
	if err := Register(r); err != nil {
		panic(err)
	}
	return r
}
