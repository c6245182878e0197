package reconcile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridglue/gridglue/pkg/errors"
	"github.com/gridglue/gridglue/pkg/registry"
)

func TestReconcileMintsNewEntities(t *testing.T) {
	reg := registry.New()
	rc := New(reg)

	batch := &Batch{
		Utilities: []UtilityCandidate{
			{Source: registry.FERC1, ID: 145, Name: "Duke Energy Carolinas"},
			{Source: registry.EIA923, ID: 14354, Name: "Pacific Gas & Electric"},
		},
		Plants: []PlantCandidate{
			{Source: registry.FERC1, UtilityID: 145, Name: "Marshall Steam Station"},
			{Source: registry.EIA923, UtilityID: 14354, ID: 271, Name: "Diablo Canyon"},
		},
	}

	result, err := rc.Reconcile(context.Background(), batch)
	require.NoError(t, err)

	assert.Equal(t, 2, result.UtilitiesMinted)
	assert.Equal(t, 2, result.PlantsMinted)
	assert.Equal(t, 2, result.AssociationsRecorded)
	require.Len(t, result.Utilities, 2)
	for _, outcome := range result.Utilities {
		assert.Equal(t, OutcomeMinted, outcome.Outcome)
	}

	// The dissimilar names must not collapse into one canonical entity.
	assert.Equal(t, 2, reg.Utilities().Len())
	assert.Equal(t, 2, reg.Plants().Len())

	linked, err := reg.SourceUtility(registry.FERC1, 145)
	require.NoError(t, err)
	assert.True(t, reg.Associated(linked.CanonicalID, result.Plants[0].CanonicalID))
}

func TestReconcileMatchesAcrossSources(t *testing.T) {
	reg := registry.New()
	rc := New(reg)

	// Same operating company filed under both systems with suffix noise.
	batch := &Batch{
		Utilities: []UtilityCandidate{
			{Source: registry.FERC1, ID: 44, Name: "Acme Power Co"},
			{Source: registry.EIA923, ID: 903, Name: "ACME POWER"},
		},
	}

	result, err := rc.Reconcile(context.Background(), batch)
	require.NoError(t, err)

	assert.Equal(t, 1, result.UtilitiesMinted)
	require.Len(t, result.Utilities, 2)
	assert.Equal(t, OutcomeMinted, result.Utilities[0].Outcome)
	assert.Equal(t, OutcomeMatched, result.Utilities[1].Outcome)
	assert.Equal(t, result.Utilities[0].CanonicalID, result.Utilities[1].CanonicalID)
	assert.Equal(t, 1, reg.Utilities().Len())
}

func TestReconcileKeepsExistingLinkage(t *testing.T) {
	reg := registry.New()
	id, err := reg.UpsertUtility("Acme Power")
	require.NoError(t, err)
	require.NoError(t, reg.LinkSourceUtility(registry.FERC1, 44, "Acme Power", id))

	rc := New(reg)
	batch := &Batch{
		Utilities: []UtilityCandidate{
			{Source: registry.FERC1, ID: 44, Name: "Acme Power Company"},
		},
	}

	result, err := rc.Reconcile(context.Background(), batch)
	require.NoError(t, err)

	require.Len(t, result.Utilities, 1)
	assert.Equal(t, OutcomeExisting, result.Utilities[0].Outcome)
	assert.Equal(t, id, result.Utilities[0].CanonicalID)
	assert.Equal(t, 0, result.UtilitiesMinted)

	// The reported name refreshes on re-reconciliation.
	record, err := reg.SourceUtility(registry.FERC1, 44)
	require.NoError(t, err)
	assert.Equal(t, "Acme Power Company", record.Name)
}

func TestReconcileCuratedDecision(t *testing.T) {
	reg := registry.New()
	id, err := reg.UpsertUtility("Consolidated Edison")
	require.NoError(t, err)

	rc := New(reg)

	// The heuristic would never link these names; the decision forces it.
	cand := UtilityCandidate{Source: registry.EIA923, ID: 4226, Name: "Con Ed of NY"}
	batch := &Batch{Utilities: []UtilityCandidate{cand}}
	batch.DecideUtility(cand, id)

	result, err := rc.Reconcile(context.Background(), batch)
	require.NoError(t, err)

	require.Len(t, result.Utilities, 1)
	assert.Equal(t, OutcomeDecided, result.Utilities[0].Outcome)
	assert.Equal(t, id, result.Utilities[0].CanonicalID)
	assert.Equal(t, 1, reg.Utilities().Len())
}

func TestReconcileConflictingDecisionFailsBatch(t *testing.T) {
	reg := registry.New()
	first, err := reg.UpsertUtility("First Energy")
	require.NoError(t, err)
	second, err := reg.UpsertUtility("Second Energy")
	require.NoError(t, err)
	require.NoError(t, reg.LinkSourceUtility(registry.FERC1, 7, "First Energy", first))

	cand := UtilityCandidate{Source: registry.FERC1, ID: 7, Name: "First Energy"}
	fresh := UtilityCandidate{Source: registry.EIA923, ID: 99, Name: "Brand New Utility"}

	batch := &Batch{Utilities: []UtilityCandidate{fresh, cand}}
	batch.DecideUtility(cand, second)

	rc := New(reg)
	_, err = rc.Reconcile(context.Background(), batch)
	require.Error(t, err)

	var relinkErr *errors.RelinkError
	assert.ErrorAs(t, err, &relinkErr)

	// The whole batch rolls back: the unrelated candidate minted nothing.
	assert.Equal(t, 2, reg.Utilities().Len())
	_, err = reg.SourceUtility(registry.EIA923, 99)
	assert.True(t, errors.IsNotFound(err))
}

func TestReconcileRelinkOverride(t *testing.T) {
	reg := registry.New()
	first, err := reg.UpsertUtility("First Energy")
	require.NoError(t, err)
	second, err := reg.UpsertUtility("Second Energy")
	require.NoError(t, err)
	require.NoError(t, reg.LinkSourceUtility(registry.FERC1, 7, "First Energy", first))

	cand := UtilityCandidate{Source: registry.FERC1, ID: 7, Name: "First Energy"}
	batch := &Batch{Utilities: []UtilityCandidate{cand}}
	batch.DecideUtility(cand, second)

	rc := New(reg, WithRelinkOverride())
	result, err := rc.Reconcile(context.Background(), batch)
	require.NoError(t, err)

	assert.Equal(t, OutcomeDecided, result.Utilities[0].Outcome)
	record, err := reg.SourceUtility(registry.FERC1, 7)
	require.NoError(t, err)
	assert.Equal(t, second, record.CanonicalID)
}

func TestReconcileAssociationCorroboration(t *testing.T) {
	seed := func(t *testing.T) *registry.Registry {
		t.Helper()
		reg := registry.New()
		uid, err := reg.UpsertUtility("Acme Power One")
		require.NoError(t, err)
		pid, err := reg.UpsertPlant("Riverside Station")
		require.NoError(t, err)
		require.NoError(t, reg.RecordAssociation(uid, pid))
		return reg
	}

	// "Acme Power Nine" scores just below the 0.9 threshold against
	// "Acme Power One"; a shared plant name supplies the missing margin.
	cand := UtilityCandidate{Source: registry.FERC1, ID: 12, Name: "Acme Power Nine"}

	t.Run("shared plant tips the match", func(t *testing.T) {
		reg := seed(t)
		rc := New(reg, WithThreshold(0.9))
		batch := &Batch{
			Utilities: []UtilityCandidate{cand},
			Plants: []PlantCandidate{
				{Source: registry.FERC1, UtilityID: 12, Name: "Riverside Station"},
			},
		}

		result, err := rc.Reconcile(context.Background(), batch)
		require.NoError(t, err)
		assert.Equal(t, OutcomeMatched, result.Utilities[0].Outcome)
		assert.Equal(t, 1, reg.Utilities().Len())
	})

	t.Run("no shared plant mints", func(t *testing.T) {
		reg := seed(t)
		rc := New(reg, WithThreshold(0.9))
		batch := &Batch{
			Utilities: []UtilityCandidate{cand},
			Plants: []PlantCandidate{
				{Source: registry.FERC1, UtilityID: 12, Name: "Hilltop Station"},
			},
		}

		result, err := rc.Reconcile(context.Background(), batch)
		require.NoError(t, err)
		assert.Equal(t, OutcomeMinted, result.Utilities[0].Outcome)
		assert.Equal(t, 2, reg.Utilities().Len())
	})
}

func TestReconcilePlantValidation(t *testing.T) {
	t.Run("FERC plant requires respondent ID", func(t *testing.T) {
		reg := registry.New()
		rc := New(reg)
		batch := &Batch{
			Plants: []PlantCandidate{
				{Source: registry.FERC1, Name: "Orphan Station"},
			},
		}
		_, err := rc.Reconcile(context.Background(), batch)
		assert.True(t, errors.IsValidation(err))
	})

	t.Run("EIA plant requires plant ID", func(t *testing.T) {
		reg := registry.New()
		rc := New(reg)
		batch := &Batch{
			Plants: []PlantCandidate{
				{Source: registry.EIA923, Name: "Orphan Station"},
			},
		}
		_, err := rc.Reconcile(context.Background(), batch)
		assert.True(t, errors.IsValidation(err))
	})

	t.Run("FERC plant with unlinked respondent fails", func(t *testing.T) {
		reg := registry.New()
		rc := New(reg)
		batch := &Batch{
			Plants: []PlantCandidate{
				{Source: registry.FERC1, UtilityID: 12, Name: "Orphan Station"},
			},
		}
		_, err := rc.Reconcile(context.Background(), batch)
		assert.True(t, errors.IsIntegrity(err))
		assert.Equal(t, 0, reg.Plants().Len())
	})
}

func TestReconcileEIAPlantWithoutOperator(t *testing.T) {
	reg := registry.New()
	rc := New(reg)

	// Plant-only filings carry no operator; the plant still reconciles
	// but contributes no association fact.
	batch := &Batch{
		Plants: []PlantCandidate{
			{Source: registry.EIA923, ID: 3, Name: "Barry"},
		},
	}

	result, err := rc.Reconcile(context.Background(), batch)
	require.NoError(t, err)
	assert.Equal(t, 1, result.PlantsMinted)
	assert.Equal(t, 0, result.AssociationsRecorded)
	assert.Empty(t, reg.Associations())
}

func TestReconcileNilBatch(t *testing.T) {
	rc := New(registry.New())
	result, err := rc.Reconcile(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, result.Utilities)
	assert.Empty(t, result.Plants)
}

func TestReconcileCancelledContext(t *testing.T) {
	rc := New(registry.New())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := rc.Reconcile(ctx, &Batch{})
	assert.ErrorIs(t, err, context.Canceled)
}
