// Package constants provides shared constants used throughout the gridglue
// codebase. This includes file permissions, persisted table file names, and
// reconciliation defaults that should be consistent across the application.
package constants

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Persisted table file names. One YAML document per logical table so that
// downstream consumers can read a single table without parsing the rest.
const (
	// UtilitiesFile holds the canonical utilities table
	UtilitiesFile = "utilities.yaml"

	// PlantsFile holds the canonical plants table
	PlantsFile = "plants.yaml"

	// UtilitiesFERC1File holds FERC Form 1 respondent records
	UtilitiesFERC1File = "utilities_ferc1.yaml"

	// PlantsFERC1File holds FERC Form 1 plant records
	PlantsFERC1File = "plants_ferc1.yaml"

	// UtilitiesEIA923File holds EIA Form 923 operator records
	UtilitiesEIA923File = "utilities_eia923.yaml"

	// PlantsEIA923File holds EIA Form 923 plant records
	PlantsEIA923File = "plants_eia923.yaml"

	// AssociationsFile holds the utility-plant association table
	AssociationsFile = "utility_plant_assn.yaml"
)

// Reconciliation defaults
const (
	// DefaultMatchThreshold is the minimum normalized name similarity for the
	// default matcher to treat a candidate as the same entity as an existing
	// canonical record. Chosen conservatively: a false split is recoverable
	// with a curated decision, a false merge corrupts downstream joins.
	DefaultMatchThreshold = 0.88

	// AssociationBonus is added to a candidate's similarity score when the
	// candidate and an existing canonical utility share at least one plant
	// association, corroborating the name evidence.
	AssociationBonus = 0.05
)
