package gridglue

import (
	internalconfig "github.com/gridglue/gridglue/internal/config"
	"github.com/gridglue/gridglue/pkg/reconcile"
	"github.com/gridglue/gridglue/pkg/registry"
)

// Option is a function that configures a GridGlue instance.
type Option func(*config) error

// config holds construction settings for a GridGlue instance.
type config struct {
	dataDir       string
	registry      *registry.Registry
	reconcileOpts []reconcile.Option
}

// defaultConfig resolves defaults from the environment: the data directory
// and matching threshold come from GRIDGLUE_* variables when set.
func defaultConfig() *config {
	c := &config{}
	if env, err := internalconfig.Load(); err == nil {
		c.dataDir = env.DataDir
		c.reconcileOpts = append(c.reconcileOpts, reconcile.WithThreshold(env.MatchThreshold))
	}
	return c
}

// WithDataDir sets the directory used to load and persist registry tables.
func WithDataDir(dir string) Option {
	return func(c *config) error {
		c.dataDir = dir
		return nil
	}
}

// WithRegistry supplies an existing registry instead of loading one from
// the data directory.
func WithRegistry(r *registry.Registry) Option {
	return func(c *config) error {
		c.registry = r
		return nil
	}
}

// WithReconcileOptions configures the reconciliation engine. Options append
// to the environment-derived defaults, so later options win.
func WithReconcileOptions(opts ...reconcile.Option) Option {
	return func(c *config) error {
		c.reconcileOpts = append(c.reconcileOpts, opts...)
		return nil
	}
}
