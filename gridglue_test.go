package gridglue

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridglue/gridglue/pkg/reconcile"
	"github.com/gridglue/gridglue/pkg/registry"
)

func TestNewStartsEmpty(t *testing.T) {
	g, err := New(WithDataDir(filepath.Join(t.TempDir(), "registry")))
	require.NoError(t, err)

	assert.Equal(t, 0, g.Registry().Utilities().Len())
	assert.Equal(t, 0, g.Registry().Plants().Len())
}

func TestNewWithRegistry(t *testing.T) {
	reg := registry.New()
	id, err := reg.UpsertUtility("Acme Power")
	require.NoError(t, err)

	g, err := New(WithRegistry(reg))
	require.NoError(t, err)

	utility, err := g.Registry().Utility(id)
	require.NoError(t, err)
	assert.Equal(t, "Acme Power", utility.Name)
}

func TestReconcileAndPersist(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "registry")

	g, err := New(WithDataDir(dir))
	require.NoError(t, err)

	batch := &reconcile.Batch{
		Utilities: []reconcile.UtilityCandidate{
			{Source: registry.FERC1, ID: 44, Name: "Acme Power Co"},
			{Source: registry.EIA923, ID: 903, Name: "Acme Power"},
		},
		Plants: []reconcile.PlantCandidate{
			{Source: registry.FERC1, UtilityID: 44, Name: "Riverside Station"},
			{Source: registry.EIA923, UtilityID: 903, ID: 55, Name: "Riverside Station"},
		},
	}

	result, err := g.Reconcile(context.Background(), batch)
	require.NoError(t, err)
	assert.Equal(t, 1, result.UtilitiesMinted)
	assert.Equal(t, 1, result.PlantsMinted)

	require.NoError(t, g.Save())

	// A fresh instance over the same directory sees the committed state.
	reopened, err := New(WithDataDir(dir))
	require.NoError(t, err)
	assert.Equal(t, 1, reopened.Registry().Utilities().Len())
	assert.Equal(t, 1, reopened.Registry().Plants().Len())

	utility, err := reopened.Registry().SourceUtility(registry.EIA923, 903)
	require.NoError(t, err)
	plant, err := reopened.Registry().SourcePlant(registry.EIA923PlantKey(55))
	require.NoError(t, err)
	assert.True(t, reopened.Registry().Associated(utility.CanonicalID, plant.CanonicalID))
}

func TestReconcileOptionsApply(t *testing.T) {
	g, err := New(
		WithDataDir(filepath.Join(t.TempDir(), "registry")),
		WithReconcileOptions(reconcile.WithThreshold(0.99)),
	)
	require.NoError(t, err)

	// At 0.99 the suffix variants no longer match and each mints.
	batch := &reconcile.Batch{
		Utilities: []reconcile.UtilityCandidate{
			{Source: registry.FERC1, ID: 44, Name: "Acme Power Holdings"},
			{Source: registry.EIA923, ID: 903, Name: "Acme Power Holding"},
		},
	}

	result, err := g.Reconcile(context.Background(), batch)
	require.NoError(t, err)
	assert.Equal(t, 2, result.UtilitiesMinted)
}

func TestAccountsTable(t *testing.T) {
	g, err := New(WithDataDir(filepath.Join(t.TempDir(), "registry")))
	require.NoError(t, err)

	accounts, err := g.Accounts()
	require.NoError(t, err)
	assert.True(t, accounts.Exists("101"))
	entry, ok := accounts.Get("101")
	require.True(t, ok)
	assert.Contains(t, entry.Description, "Electric plant in service")

	// The table is loaded once and shared.
	again, err := g.Accounts()
	require.NoError(t, err)
	assert.Same(t, accounts, again)
}

func TestDepreciationLinesTable(t *testing.T) {
	g, err := New(WithDataDir(filepath.Join(t.TempDir(), "registry")))
	require.NoError(t, err)

	lines, err := g.DepreciationLines()
	require.NoError(t, err)
	assert.True(t, lines.Exists("balance_beginning_of_year"))
	assert.True(t, lines.Exists("depreciation_expense"))
}
