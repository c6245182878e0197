// Package gridglue reconciles utility and plant identities across
// regulatory data sources. It maintains a registry of canonical entities,
// per-source record linkages, and utility-plant associations, plus the
// reference classification tables the source filings are coded against.
package gridglue

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/gridglue/gridglue/pkg/classifications"
	"github.com/gridglue/gridglue/pkg/reconcile"
	"github.com/gridglue/gridglue/pkg/registry"
)

// GridGlue is the top-level entry point: registry access, reconciliation,
// reference tables, and persistence.
type GridGlue interface {
	// Registry returns the live identity registry.
	Registry() *registry.Registry

	// Reconcile runs one batch of source candidates through the
	// reconciliation engine and commits the decisions to the registry.
	Reconcile(ctx context.Context, batch *reconcile.Batch) (*reconcile.Result, error)

	// Accounts returns the FERC Uniform System of Accounts table.
	Accounts() (*classifications.Table, error)

	// DepreciationLines returns the FERC Form 1 depreciation line table.
	DepreciationLines() (*classifications.Table, error)

	// Save persists the registry tables to the configured data directory.
	Save() error
}

// gridglue is the internal implementation of the GridGlue interface.
type gridglue struct {
	config     *config
	registry   *registry.Registry
	reconciler *reconcile.Reconciler

	accountsOnce sync.Once
	accounts     *classifications.Table
	accountsErr  error

	deprOnce sync.Once
	depr     *classifications.Table
	deprErr  error
}

// New creates a GridGlue instance with the given options. Without options
// it starts from an empty registry; with WithDataDir it loads any tables
// already persisted there.
func New(opts ...Option) (GridGlue, error) {
	g := &gridglue{
		config: defaultConfig(),
	}

	for _, opt := range opts {
		if err := opt(g.config); err != nil {
			return nil, fmt.Errorf("applying options: %w", err)
		}
	}

	switch {
	case g.config.registry != nil:
		g.registry = g.config.registry
	case g.config.dataDir != "" && dirExists(g.config.dataDir):
		r, err := registry.LoadFromPath(g.config.dataDir)
		if err != nil {
			return nil, fmt.Errorf("loading registry from %s: %w", g.config.dataDir, err)
		}
		g.registry = r
	default:
		// First run: nothing persisted yet.
		g.registry = registry.New()
	}

	g.reconciler = reconcile.New(g.registry, g.config.reconcileOpts...)
	return g, nil
}

// Registry returns the live identity registry.
func (g *gridglue) Registry() *registry.Registry {
	return g.registry
}

// Reconcile runs one batch through the reconciliation engine.
func (g *gridglue) Reconcile(ctx context.Context, batch *reconcile.Batch) (*reconcile.Result, error) {
	return g.reconciler.Reconcile(ctx, batch)
}

// Accounts returns the FERC Uniform System of Accounts table, loaded once
// from the embedded reference data.
func (g *gridglue) Accounts() (*classifications.Table, error) {
	g.accountsOnce.Do(func() {
		g.accounts, g.accountsErr = classifications.Accounts()
	})
	return g.accounts, g.accountsErr
}

// DepreciationLines returns the FERC Form 1 depreciation line table,
// loaded once from the embedded reference data.
func (g *gridglue) DepreciationLines() (*classifications.Table, error) {
	g.deprOnce.Do(func() {
		g.depr, g.deprErr = classifications.DepreciationLines()
	})
	return g.depr, g.deprErr
}

// Save persists the registry tables to the configured data directory.
func (g *gridglue) Save() error {
	return g.registry.Save(g.config.dataDir)
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
