package registry

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/gridglue/gridglue/pkg/constants"
	"github.com/gridglue/gridglue/pkg/errors"
	"github.com/gridglue/gridglue/pkg/logging"
)

// Save writes the registry to basePath as one YAML document per table:
// canonical utilities and plants, per-source record tables, and the
// utility-plant association table. The layout is the persisted interface
// surface read by downstream consumers.
func (r *Registry) Save(basePath string) error {
	if basePath == "" {
		return &errors.ConfigError{
			Component: "registry",
			Message:   "no write path configured for saving",
		}
	}

	if err := os.MkdirAll(basePath, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", basePath, err)
	}

	// Write from a snapshot so concurrent writes cannot tear the saved state
	// across table files.
	r = r.Copy()

	writeTable := func(file string, v any) error {
		data, err := yaml.Marshal(v)
		if err != nil {
			return errors.WrapParse("yaml", file, err)
		}
		path := filepath.Join(basePath, file)
		if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
			return errors.WrapIO("write", path, err)
		}
		return nil
	}

	utilities := make([]Utility, 0)
	for _, u := range r.Utilities().List() {
		utilities = append(utilities, *u)
	}
	if err := writeTable(constants.UtilitiesFile, utilities); err != nil {
		return err
	}

	plants := make([]Plant, 0)
	for _, p := range r.Plants().List() {
		plants = append(plants, *p)
	}
	if err := writeTable(constants.PlantsFile, plants); err != nil {
		return err
	}

	if err := writeTable(constants.UtilitiesFERC1File, r.SourceUtilities(FERC1)); err != nil {
		return err
	}
	if err := writeTable(constants.UtilitiesEIA923File, r.SourceUtilities(EIA923)); err != nil {
		return err
	}
	if err := writeTable(constants.PlantsFERC1File, r.SourcePlants(FERC1)); err != nil {
		return err
	}
	if err := writeTable(constants.PlantsEIA923File, r.SourcePlants(EIA923)); err != nil {
		return err
	}
	if err := writeTable(constants.AssociationsFile, r.Associations()); err != nil {
		return err
	}

	logging.Debug().
		Str("path", basePath).
		Int("utilities", len(utilities)).
		Int("plants", len(plants)).
		Msg("Saved registry")
	return nil
}
