package registry

import (
	"io/fs"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/gridglue/gridglue/pkg/constants"
	"github.com/gridglue/gridglue/pkg/errors"
)

// Load builds a registry from the table files on the given filesystem.
// Missing table files are treated as empty tables, so a registry can be
// loaded from a partially populated data directory. Referential integrity
// is checked as the linkage and association tables are replayed; a violation
// fails the whole load.
func Load(fsys fs.FS) (*Registry, error) {
	r := New()

	readTable := func(file string, v any) error {
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil // missing table file is an empty table
		}
		if err := yaml.Unmarshal(data, v); err != nil {
			return errors.WrapParse("yaml", file, err)
		}
		return nil
	}

	var utilities []Utility
	if err := readTable(constants.UtilitiesFile, &utilities); err != nil {
		return nil, err
	}
	for _, u := range utilities {
		utility := u
		_ = r.utilities.Set(utility.ID, &utility)
		if utility.ID >= r.nextUtilityID {
			r.nextUtilityID = utility.ID + 1
		}
	}

	var plants []Plant
	if err := readTable(constants.PlantsFile, &plants); err != nil {
		return nil, err
	}
	for _, p := range plants {
		plant := p
		_ = r.plants.Set(plant.ID, &plant)
		if plant.ID >= r.nextPlantID {
			r.nextPlantID = plant.ID + 1
		}
	}

	for _, file := range []string{constants.UtilitiesFERC1File, constants.UtilitiesEIA923File} {
		var records []SourceUtility
		if err := readTable(file, &records); err != nil {
			return nil, err
		}
		for _, record := range records {
			if err := r.LinkSourceUtility(record.Source, record.ID, record.Name, record.CanonicalID); err != nil {
				return nil, err
			}
		}
	}

	var fercPlants []SourcePlant
	if err := readTable(constants.PlantsFERC1File, &fercPlants); err != nil {
		return nil, err
	}
	for _, record := range fercPlants {
		if err := r.LinkFERC1Plant(record.UtilityID, record.Name, record.CanonicalID); err != nil {
			return nil, err
		}
	}

	var eiaPlants []SourcePlant
	if err := readTable(constants.PlantsEIA923File, &eiaPlants); err != nil {
		return nil, err
	}
	for _, record := range eiaPlants {
		if err := r.LinkEIA923Plant(record.ID, record.Name, record.CanonicalID); err != nil {
			return nil, err
		}
	}

	var assns []Association
	if err := readTable(constants.AssociationsFile, &assns); err != nil {
		return nil, err
	}
	for _, assn := range assns {
		if err := r.RecordAssociation(assn.UtilityID, assn.PlantID); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// LoadFromPath builds a registry from the table files in a directory.
func LoadFromPath(path string) (*Registry, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.WrapIO("stat", path, err)
	}
	return Load(os.DirFS(path))
}
