package registry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridglue/gridglue/pkg/errors"
)

func TestApplyCommitsAsUnit(t *testing.T) {
	r := New()

	err := r.Apply(func(batch *Registry) error {
		uid, err := batch.UpsertUtility("Acme Power")
		if err != nil {
			return err
		}
		if err := batch.LinkSourceUtility(FERC1, 100, "Acme Power", uid); err != nil {
			return err
		}
		return batch.LinkSourceUtility(EIA923, 7001, "Acme Power Co", uid)
	})
	require.NoError(t, err)

	assert.Equal(t, 1, r.Utilities().Len())
	ferc, err := r.SourceUtility(FERC1, 100)
	require.NoError(t, err)
	eia, err := r.SourceUtility(EIA923, 7001)
	require.NoError(t, err)
	assert.Equal(t, ferc.CanonicalID, eia.CanonicalID)
}

func TestApplyRollsBackEntirely(t *testing.T) {
	r := New()
	uid, _ := r.UpsertUtility("Existing Utility")

	err := r.Apply(func(batch *Registry) error {
		if _, err := batch.UpsertUtility("Doomed Utility"); err != nil {
			return err
		}
		if err := batch.LinkSourceUtility(FERC1, 1, "Doomed Utility", 999); err != nil {
			return err // integrity violation aborts the batch
		}
		return nil
	})
	require.Error(t, err)
	assert.True(t, errors.IsIntegrity(err))

	// Nothing from the failed batch persists, including the minted utility.
	assert.Equal(t, 1, r.Utilities().Len())
	_, err = r.SourceUtility(FERC1, 1)
	assert.True(t, errors.IsNotFound(err))

	// The failed batch did not burn a canonical ID on the live registry.
	next, _ := r.UpsertUtility("Next Utility")
	assert.Equal(t, uid+1, next)
}

func TestApplyBatchesSerialize(t *testing.T) {
	r := New()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = r.Apply(func(batch *Registry) error {
				// Check-then-act: only mint if no utility exists yet. Without
				// batch serialization this races and mints duplicates.
				if batch.Utilities().Len() == 0 {
					_, err := batch.UpsertUtility("Acme Power")
					return err
				}
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, r.Utilities().Len(), "serialized batches must not mint duplicate canonical entities")
}
