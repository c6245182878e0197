package registry

import (
	"sort"

	"github.com/gridglue/gridglue/pkg/errors"
)

// RecordAssociation records that a canonical utility is known to be
// connected to a canonical plant. Both endpoints must exist; re-recording an
// existing pair is a no-op, not an error.
func (r *Registry) RecordAssociation(utilityID UtilityID, plantID PlantID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.utilities.Exists(utilityID) {
		return errors.NewIntegrityError(associationsTable, "utility_id", "utility", utilityID.String())
	}
	if !r.plants.Exists(plantID) {
		return errors.NewIntegrityError(associationsTable, "plant_id", "plant", plantID.String())
	}

	r.associations[Association{UtilityID: utilityID, PlantID: plantID}] = struct{}{}
	return nil
}

// Associated reports whether a utility-plant association has been recorded.
func (r *Registry) Associated(utilityID UtilityID, plantID PlantID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.associations[Association{UtilityID: utilityID, PlantID: plantID}]
	return ok
}

// UtilitiesForPlant returns the canonical utilities associated with a plant.
// The result is a set; no ordering is guaranteed to callers, though the
// implementation returns IDs in ascending order.
func (r *Registry) UtilitiesForPlant(plantID PlantID) []UtilityID {
	r.mu.RLock()
	ids := make([]UtilityID, 0)
	for assn := range r.associations {
		if assn.PlantID == plantID {
			ids = append(ids, assn.UtilityID)
		}
	}
	r.mu.RUnlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// PlantsForUtility returns the canonical plants associated with a utility.
func (r *Registry) PlantsForUtility(utilityID UtilityID) []PlantID {
	r.mu.RLock()
	ids := make([]PlantID, 0)
	for assn := range r.associations {
		if assn.UtilityID == utilityID {
			ids = append(ids, assn.PlantID)
		}
	}
	r.mu.RUnlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Associations returns all recorded utility-plant associations.
func (r *Registry) Associations() []Association {
	r.mu.RLock()
	assns := make([]Association, 0, len(r.associations))
	for assn := range r.associations {
		assns = append(assns, assn)
	}
	r.mu.RUnlock()

	sort.Slice(assns, func(i, j int) bool {
		if assns[i].UtilityID != assns[j].UtilityID {
			return assns[i].UtilityID < assns[j].UtilityID
		}
		return assns[i].PlantID < assns[j].PlantID
	})
	return assns
}
