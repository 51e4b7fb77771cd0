package config

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/thruflo/context-engine/internal/logging"
)

// Resolver caches one ProjectConfig per project root. A root is read on
// first access and not again until Reload is called; file changes alone do
// not invalidate the cache.
type Resolver struct {
	mu      sync.Mutex
	configs map[string]*ProjectConfig
	load    func(string) (*ProjectConfig, error)
}

// NewResolver creates a Resolver backed by Load.
func NewResolver() *Resolver {
	return &Resolver{
		configs: make(map[string]*ProjectConfig),
		load:    Load,
	}
}

// Resolve returns the configuration for projectRoot, loading it on first use.
func (r *Resolver) Resolve(projectRoot string) (*ProjectConfig, error) {
	root, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if cfg, ok := r.configs[root]; ok {
		return cfg.Clone(), nil
	}

	cfg, err := r.load(root)
	if err != nil {
		return nil, err
	}
	r.configs[root] = cfg
	return cfg.Clone(), nil
}

// Reload re-reads the configuration for projectRoot. On failure the
// previously cached value, if any, stays in place.
func (r *Resolver) Reload(projectRoot string) (*ProjectConfig, error) {
	root, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cfg, err := r.load(root)
	if err != nil {
		logging.Warn("config reload failed, keeping previous", "root", root, "error", err)
		return nil, err
	}
	r.configs[root] = cfg

	logging.Info("config reloaded", "root", root)
	return cfg.Clone(), nil
}
