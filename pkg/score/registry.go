package score

import (
	"sort"
	"sync"

	"github.com/agentstation/mirror/pkg/errors"
)

// Legacy identifiers accepted in scoring assignments.
const (
	AliasAbs             = "abs"
	AliasSequenceMatcher = "sequence-matcher"
)

// Registry maps strategy names and aliases to strategies. It is safe for
// concurrent use.
type Registry struct {
	mu         sync.RWMutex
	strategies map[string]Strategy
	aliases    map[string]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		strategies: make(map[string]Strategy),
		aliases:    make(map[string]string),
	}
}

// Default returns a registry holding every built-in strategy and the
// legacy aliases.
func Default() *Registry {
	r := NewRegistry()
	for _, s := range []Strategy{
		NewExactMatch(),
		NewSimilarityRatio(),
		NewCaseInsensitive(),
		NewNumericTolerance(),
	} {
		_ = r.Register(s)
	}
	_ = r.Alias(AliasAbs, ExactMatch)
	_ = r.Alias(AliasSequenceMatcher, SimilarityRatio)
	return r
}

// Register adds a strategy under its own name.
func (r *Registry) Register(s Strategy) error {
	if s == nil || s.Name() == "" {
		return errors.NewValidationError("strategy", nil, "strategy name is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	name := s.Name()
	if _, ok := r.strategies[name]; ok {
		return errors.NewValidationError("strategy", name, "strategy "+name+" is already registered")
	}
	if _, ok := r.aliases[name]; ok {
		return errors.NewValidationError("strategy", name, name+" is already an alias")
	}
	r.strategies[name] = s
	return nil
}

// Alias makes alias resolve to the registered strategy target.
func (r *Registry) Alias(alias, target string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if alias == "" {
		return errors.NewValidationError("alias", nil, "alias is required")
	}
	if _, ok := r.strategies[alias]; ok {
		return errors.NewValidationError("alias", alias, alias+" is already a strategy name")
	}
	if _, ok := r.strategies[target]; !ok {
		return errors.NewNotFoundError("strategy", target)
	}
	r.aliases[alias] = target
	return nil
}

// Resolve returns the canonical name for a strategy name or alias.
func (r *Registry) Resolve(name string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.resolve(name)
}

func (r *Registry) resolve(name string) (string, error) {
	if _, ok := r.strategies[name]; ok {
		return name, nil
	}
	if target, ok := r.aliases[name]; ok {
		return target, nil
	}
	return "", errors.Configf("score", "unknown scoring strategy %q", name)
}

// Get returns the strategy registered under name or alias.
func (r *Registry) Get(name string) (Strategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	canonical, err := r.resolve(name)
	if err != nil {
		return nil, err
	}
	return r.strategies[canonical], nil
}

// Names returns the registered strategy names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Aliases returns a copy of the alias table.
func (r *Registry) Aliases() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]string, len(r.aliases))
	for k, v := range r.aliases {
		out[k] = v
	}
	return out
}

// List returns the registered strategies ordered by name.
func (r *Registry) List() []Strategy {
	names := r.Names()
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Strategy, 0, len(names))
	for _, n := range names {
		out = append(out, r.strategies[n])
	}
	return out
}
