// Package config resolves runtime settings from the environment and
// optional .env files. All settings have working defaults; nothing here is
// required for library use.
package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/gridglue/gridglue/pkg/constants"
	"github.com/gridglue/gridglue/pkg/errors"
)

// Environment variable keys, resolved under the GRIDGLUE prefix.
const (
	keyDataDir        = "data_dir"
	keyMatchThreshold = "match_threshold"
)

// Config holds the resolved runtime settings.
type Config struct {
	// DataDir is the directory holding the persisted registry tables.
	DataDir string
	// MatchThreshold is the minimum similarity score for heuristic matches.
	MatchThreshold float64
}

// Load resolves configuration from the environment. A .env file in the
// working directory is read first if present; real environment variables
// win over it.
func Load() (*Config, error) {
	// Best effort: a missing .env is the normal case.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("GRIDGLUE")
	v.AutomaticEnv()

	v.SetDefault(keyDataDir, defaultDataDir())
	v.SetDefault(keyMatchThreshold, constants.DefaultMatchThreshold)

	cfg := &Config{
		DataDir:        v.GetString(keyDataDir),
		MatchThreshold: v.GetFloat64(keyMatchThreshold),
	}

	if cfg.MatchThreshold <= 0 || cfg.MatchThreshold > 1 {
		return nil, &errors.ConfigError{
			Component: "GRIDGLUE_MATCH_THRESHOLD",
			Message:   "match threshold must be in (0, 1]",
		}
	}
	return cfg, nil
}

// GetString returns a raw environment value, checking both the process
// environment and any loaded .env values.
func GetString(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return viper.GetString(key)
}

func defaultDataDir() string {
	if dir, err := os.UserHomeDir(); err == nil && dir != "" {
		return dir + "/.gridglue"
	}
	return ".gridglue"
}
