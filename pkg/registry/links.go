package registry

import (
	"sort"

	"github.com/gridglue/gridglue/pkg/errors"
)

// LinkOption configures a linkage write.
type LinkOption func(*linkOptions)

type linkOptions struct {
	override bool
}

// WithOverride allows a linkage write to move a source record to a different
// canonical entity. Without it, changing an existing linkage is rejected as
// a conflicting relink to prevent silent identity drift.
func WithOverride() LinkOption {
	return func(o *linkOptions) {
		o.override = true
	}
}

// LinkSourceUtility binds a source utility record to a canonical utility,
// recording the reconciliation decision.
//
// The canonical utility must exist. If the source record is already linked
// to the same canonical utility the call refreshes the reported name and
// succeeds; if it is linked to a different one, the call fails with a
// RelinkError unless WithOverride is given.
func (r *Registry) LinkSourceUtility(source SourceID, sourceID int, name string, canonical UtilityID, opts ...LinkOption) error {
	options := &linkOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if err := validateSource(source); err != nil {
		return err
	}
	table := utilitiesFERC1Table
	if source == EIA923 {
		table = utilitiesEIATable
	}
	if name == "" {
		return errors.NewValidationError(table, name, "utility name must not be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.utilities.Exists(canonical) {
		return errors.NewIntegrityError(table, "utility_id", "utility", canonical.String())
	}

	key := SourceUtilityKey{Source: source, ID: sourceID}
	if existing, ok := r.sourceUtilities[key]; ok && existing.CanonicalID != canonical && !options.override {
		return errors.NewRelinkError(table, key.String(), existing.CanonicalID.String(), canonical.String())
	}

	r.sourceUtilities[key] = &SourceUtility{
		Source:      source,
		ID:          sourceID,
		Name:        name,
		CanonicalID: canonical,
	}
	return nil
}

// LinkFERC1Plant binds a FERC Form 1 plant record to a canonical plant.
// FERC assigns no plant IDs, so the record is identified by the reporting
// respondent's source-local ID together with the reported plant name. The
// reporting respondent must already be linked as a FERC source utility.
func (r *Registry) LinkFERC1Plant(utilityID int, name string, canonical PlantID, opts ...LinkOption) error {
	options := &linkOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if name == "" {
		return errors.NewValidationError(plantsFERC1Table, name, "plant name must not be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sourceUtilities[SourceUtilityKey{Source: FERC1, ID: utilityID}]; !ok {
		return errors.NewIntegrityError(plantsFERC1Table, "utility_id_ferc1", "ferc1 utility", SourceUtilityKey{Source: FERC1, ID: utilityID}.String())
	}

	record := &SourcePlant{
		Source:      FERC1,
		UtilityID:   utilityID,
		Name:        name,
		CanonicalID: canonical,
	}
	return r.linkSourcePlant(plantsFERC1Table, record, options)
}

// LinkEIA923Plant binds an EIA 923 plant record, identified by its
// source-assigned plant ID, to a canonical plant.
func (r *Registry) LinkEIA923Plant(plantID int, name string, canonical PlantID, opts ...LinkOption) error {
	options := &linkOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if name == "" {
		return errors.NewValidationError(plantsEIATable, name, "plant name must not be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	record := &SourcePlant{
		Source:      EIA923,
		ID:          plantID,
		Name:        name,
		CanonicalID: canonical,
	}
	return r.linkSourcePlant(plantsEIATable, record, options)
}

// linkSourcePlant writes a source plant linkage. Caller holds r.mu.
func (r *Registry) linkSourcePlant(table string, record *SourcePlant, options *linkOptions) error {
	if !r.plants.Exists(record.CanonicalID) {
		return errors.NewIntegrityError(table, "plant_id", "plant", record.CanonicalID.String())
	}

	key := record.Key()
	if existing, ok := r.sourcePlants[key]; ok && existing.CanonicalID != record.CanonicalID && !options.override {
		return errors.NewRelinkError(table, key.String(), existing.CanonicalID.String(), record.CanonicalID.String())
	}

	r.sourcePlants[key] = record
	return nil
}

// SourceUtility returns the source utility record for the given source and
// source-local ID.
func (r *Registry) SourceUtility(source SourceID, sourceID int) (SourceUtility, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := SourceUtilityKey{Source: source, ID: sourceID}
	record, ok := r.sourceUtilities[key]
	if !ok {
		return SourceUtility{}, errors.NewNotFoundError("source utility", key.String())
	}
	return *record, nil
}

// SourcePlant returns the source plant record for the given key.
func (r *Registry) SourcePlant(key SourcePlantKey) (SourcePlant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.sourcePlants[key]
	if !ok {
		return SourcePlant{}, errors.NewNotFoundError("source plant", key.String())
	}
	return *record, nil
}

// SourceUtilities returns all source utility records for a source, sorted by
// source-local ID.
func (r *Registry) SourceUtilities(source SourceID) []SourceUtility {
	r.mu.RLock()
	records := make([]SourceUtility, 0)
	for _, record := range r.sourceUtilities {
		if record.Source == source {
			records = append(records, *record)
		}
	}
	r.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records
}

// SourcePlants returns all source plant records for a source.
func (r *Registry) SourcePlants(source SourceID) []SourcePlant {
	r.mu.RLock()
	records := make([]SourcePlant, 0)
	for _, record := range r.sourcePlants {
		if record.Source == source {
			records = append(records, *record)
		}
	}
	r.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool { return records[i].Key().String() < records[j].Key().String() })
	return records
}

// SourceUtilitiesFor returns the source utility records linked to a
// canonical utility, across all sources.
func (r *Registry) SourceUtilitiesFor(canonical UtilityID) []SourceUtility {
	r.mu.RLock()
	records := make([]SourceUtility, 0)
	for _, record := range r.sourceUtilities {
		if record.CanonicalID == canonical {
			records = append(records, *record)
		}
	}
	r.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool { return records[i].Key().String() < records[j].Key().String() })
	return records
}

// SourcePlantsFor returns the source plant records linked to a canonical
// plant, across all sources.
func (r *Registry) SourcePlantsFor(canonical PlantID) []SourcePlant {
	r.mu.RLock()
	records := make([]SourcePlant, 0)
	for _, record := range r.sourcePlants {
		if record.CanonicalID == canonical {
			records = append(records, *record)
		}
	}
	r.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool { return records[i].Key().String() < records[j].Key().String() })
	return records
}
