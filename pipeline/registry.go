package pipeline

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/tsawler/swtk/tokenize"
)

// ErrDuplicate is returned when an analyzer id is registered twice.
var ErrDuplicate = errors.New("analyzer already registered")

// Options holds the free-form settings of one analyzer, usually decoded
// from the configuration file.
type Options map[string]any

// Int returns an integer option, or def when it is absent or not a number.
func (o Options) Int(key string, def int) int {
	switch v := o[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// Strings returns a list option, or def when it is absent.
func (o Options) Strings(key string, def []string) []string {
	switch v := o[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	}
	return def
}

// Env carries the shared read-only resources analyzers are built from.
type Env struct {
	Tokenizer tokenize.Tokenizer
	Tagger    tokenize.Tagger

	// Resources holds named data files such as dictionaries, loaded once.
	Resources map[string][]byte

	// Settings holds per-analyzer configuration keyed by analyzer id.
	Settings map[string]Settings

	// Options is filled with the settings of the analyzer being built.
	Options Options
}

// Settings is the configuration of one analyzer.
type Settings struct {
	Disabled bool
	Priority *int
	Options  Options
}

// Resource returns a named resource, or nil.
func (e Env) Resource(name string) []byte {
	return e.Resources[name]
}

// Factory constructs an analyzer from the shared environment.
type Factory func(Env) (Analyzer, error)

type entry struct {
	id      string
	factory Factory
}

// Registry maps analyzer ids to factories, in registration order.
type Registry struct {
	mu      sync.RWMutex
	entries []entry
	index   map[string]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: map[string]int{}}
}

// Register adds an analyzer factory. Registration order is the discovery
// order used to break priority ties.
func (r *Registry) Register(id string, factory Factory) error {
	if id == "" {
		return fmt.Errorf("pipeline: analyzer id is required")
	}
	if factory == nil {
		return fmt.Errorf("pipeline: factory is required for %s", id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.index[id]; exists {
		return fmt.Errorf("pipeline: %s: %w", id, ErrDuplicate)
	}
	r.index[id] = len(r.entries)
	r.entries = append(r.entries, entry{id: id, factory: factory})
	return nil
}

// MustRegister panics if registration fails.
func (r *Registry) MustRegister(id string, factory Factory) {
	if err := r.Register(id, factory); err != nil {
		panic(err)
	}
}

// IDs returns the registered ids in registration order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, len(r.entries))
	for i, e := range r.entries {
		ids[i] = e.id
	}
	return ids
}

// Build constructs every analyzer that is not disabled, in registration
// order, and validates its capabilities.
func (r *Registry) Build(env Env) ([]Analyzer, error) {
	r.mu.RLock()
	entries := append([]entry(nil), r.entries...)
	r.mu.RUnlock()

	analyzers := make([]Analyzer, 0, len(entries))
	for _, e := range entries {
		settings := env.Settings[e.id]
		if settings.Disabled {
			continue
		}
		local := env
		local.Options = settings.Options
		if local.Options == nil {
			local.Options = Options{}
		}

		a, err := e.factory(local)
		if err != nil {
			return nil, fmt.Errorf("building analyzer %s: %w", e.id, err)
		}
		if err := Validate(a); err != nil {
			return nil, err
		}
		if settings.Priority != nil {
			if p, ok := a.(interface{ SetPriority(int) }); ok {
				p.SetPriority(*settings.Priority)
			}
		}
		analyzers = append(analyzers, a)
	}
	return analyzers, nil
}
