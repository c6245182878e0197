package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridglue/gridglue/pkg/constants"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.DataDir)
	assert.Equal(t, constants.DefaultMatchThreshold, cfg.MatchThreshold)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("GRIDGLUE_DATA_DIR", "/var/lib/gridglue")
	t.Setenv("GRIDGLUE_MATCH_THRESHOLD", "0.95")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/gridglue", cfg.DataDir)
	assert.Equal(t, 0.95, cfg.MatchThreshold)
}

func TestLoadRejectsBadThreshold(t *testing.T) {
	t.Setenv("GRIDGLUE_MATCH_THRESHOLD", "1.5")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "match threshold")
}
