package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridglue/gridglue/pkg/constants"
)

func populatedRegistry(t *testing.T) *Registry {
	t.Helper()
	r := New()

	uid1, err := r.UpsertUtility("Acme Power")
	require.NoError(t, err)
	uid2, err := r.UpsertUtility("Basin Electric")
	require.NoError(t, err)
	pid1, err := r.UpsertPlant("Coleman")
	require.NoError(t, err)
	pid2, err := r.UpsertPlant("")
	require.NoError(t, err)

	require.NoError(t, r.LinkSourceUtility(FERC1, 145, "Acme Power", uid1))
	require.NoError(t, r.LinkSourceUtility(EIA923, 7001, "Acme Power Co", uid1))
	require.NoError(t, r.LinkSourceUtility(EIA923, 7002, "Basin Electric Coop", uid2))
	require.NoError(t, r.LinkFERC1Plant(145, "Coleman", pid1))
	require.NoError(t, r.LinkEIA923Plant(3443, "Coleman Station", pid1))
	require.NoError(t, r.LinkEIA923Plant(3500, "North Unit", pid2))
	require.NoError(t, r.RecordAssociation(uid1, pid1))
	require.NoError(t, r.RecordAssociation(uid2, pid1))
	require.NoError(t, r.RecordAssociation(uid2, pid2))
	return r
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	r := populatedRegistry(t)
	require.NoError(t, r.Save(dir))

	// All table files exist.
	for _, file := range []string{
		constants.UtilitiesFile,
		constants.PlantsFile,
		constants.UtilitiesFERC1File,
		constants.UtilitiesEIA923File,
		constants.PlantsFERC1File,
		constants.PlantsEIA923File,
		constants.AssociationsFile,
	} {
		_, err := os.Stat(filepath.Join(dir, file))
		require.NoError(t, err, file)
	}

	loaded, err := LoadFromPath(dir)
	require.NoError(t, err)

	assert.Equal(t, r.Utilities().Len(), loaded.Utilities().Len())
	assert.Equal(t, r.Plants().Len(), loaded.Plants().Len())
	assert.Equal(t, r.SourceUtilities(FERC1), loaded.SourceUtilities(FERC1))
	assert.Equal(t, r.SourceUtilities(EIA923), loaded.SourceUtilities(EIA923))
	assert.Equal(t, r.SourcePlants(FERC1), loaded.SourcePlants(FERC1))
	assert.Equal(t, r.SourcePlants(EIA923), loaded.SourcePlants(EIA923))
	assert.Equal(t, r.Associations(), loaded.Associations())
}

func TestLoadContinuesMintingAfterMaxID(t *testing.T) {
	dir := t.TempDir()
	r := populatedRegistry(t)
	require.NoError(t, r.Save(dir))

	loaded, err := LoadFromPath(dir)
	require.NoError(t, err)

	// Newly minted IDs must not collide with persisted ones.
	uid, err := loaded.UpsertUtility("Consumers Energy")
	require.NoError(t, err)
	assert.Equal(t, UtilityID(3), uid)

	pid, err := loaded.UpsertPlant("South Unit")
	require.NoError(t, err)
	assert.Equal(t, PlantID(3), pid)
}

func TestLoadMissingFilesIsEmpty(t *testing.T) {
	loaded, err := LoadFromPath(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Utilities().Len())
	assert.Empty(t, loaded.Associations())
}

func TestLoadRejectsDanglingAssociation(t *testing.T) {
	dir := t.TempDir()
	// An association table referencing canonical IDs with no canonical
	// tables present violates referential integrity on replay.
	data := "- utility_id: 1\n  plant_id: 1\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, constants.AssociationsFile), []byte(data), 0o644))

	_, err := LoadFromPath(dir)
	require.Error(t, err)
}

func TestSaveRequiresPath(t *testing.T) {
	r := New()
	assert.Error(t, r.Save(""))
}
