package strategy

import (
	"sort"
	"sync"

	"github.com/Protrader1988/protrader-terminal-backend/internal/version"
	"github.com/Protrader1988/protrader-terminal-backend/pkg/errors"
)

// Registry holds strategies by id.
type Registry struct {
	strategies map[string]Strategy
	mu         sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		strategies: make(map[string]Strategy),
		mu:         sync.RWMutex{},
	}
}

// NewDefaultRegistry builds every built-in bot. overrides maps a strategy id
// to parameter overrides; an id that names no bot is rejected.
func NewDefaultRegistry(overrides map[string]map[string]any) (*Registry, error) {
	registry := NewRegistry()
	definitions := Definitions()

	known := make(map[string]struct{}, len(definitions))
	for _, def := range definitions {
		known[def.ID] = struct{}{}
	}

	for id := range overrides {
		if _, ok := known[id]; !ok {
			return nil, errors.Newf(errors.ErrCodeStrategyNotFound, "config overrides unknown strategy %s", id)
		}
	}

	for _, def := range definitions {
		bot, err := NewBot(def, overrides[def.ID])
		if err != nil {
			return nil, err
		}

		if err := registry.Register(bot); err != nil {
			return nil, err
		}
	}

	return registry, nil
}

// Register adds a strategy. Ids must be unique and versions valid semver.
func (r *Registry) Register(s Strategy) error {
	if _, err := version.Parse(s.Version()); err != nil {
		return errors.Wrapf(errors.ErrCodeStrategyConfigError, err, "strategy %s", s.ID())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.strategies[s.ID()]; exists {
		return errors.Newf(errors.ErrCodeStrategyAlreadyExists, "strategy %s already registered", s.ID())
	}

	r.strategies[s.ID()] = s

	return nil
}

// Get returns the strategy registered under id.
func (r *Registry) Get(id string) (Strategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.strategies[id]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeStrategyNotFound, "strategy %s not found", id)
	}

	return s, nil
}

// List returns the registered ids in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.strategies))
	for id := range r.strategies {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	return ids
}

// All returns the registered strategies ordered by id.
func (r *Registry) All() []Strategy {
	ids := r.List()

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Strategy, 0, len(ids))
	for _, id := range ids {
		if s, ok := r.strategies[id]; ok {
			out = append(out, s)
		}
	}

	return out
}

// Remove deletes the strategy registered under id.
func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.strategies[id]; !ok {
		return errors.Newf(errors.ErrCodeStrategyNotFound, "strategy %s not found", id)
	}

	delete(r.strategies, id)

	return nil
}
