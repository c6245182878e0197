package registry

import (
	"maps"
	"sync"

	"github.com/gridglue/gridglue/pkg/errors"
)

// Table names, used in error context and as persisted file stems.
const (
	utilitiesTable      = "utilities"
	plantsTable         = "plants"
	utilitiesFERC1Table = "utilities_ferc1"
	plantsFERC1Table    = "plants_ferc1"
	utilitiesEIATable   = "utilities_eia923"
	plantsEIATable      = "plants_eia923"
	associationsTable   = "utility_plant_assn"
)

// Compile-time interface checks to ensure proper implementation.
var (
	_ Reader     = (*Registry)(nil)
	_ Writer     = (*Registry)(nil)
	_ Associator = (*Registry)(nil)
)

// Registry holds the canonical entity tables, the per-source identity
// records with their canonical linkages, and the utility-plant association
// table.
//
// Reads may run concurrently. Individual writes are safe for concurrent use,
// but a reconciliation pass must execute as a single batch through Apply so
// that its check-then-act matching decisions are not interleaved with other
// writers.
type Registry struct {
	mu sync.RWMutex // guards the fields below

	// batchMu serializes Apply batches against each other.
	batchMu sync.Mutex

	utilities *Utilities
	plants    *Plants

	sourceUtilities map[SourceUtilityKey]*SourceUtility
	sourcePlants    map[SourcePlantKey]*SourcePlant
	associations    map[Association]struct{}

	// Next canonical IDs to mint. Monotonic; IDs are never reused.
	nextUtilityID UtilityID
	nextPlantID   PlantID
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		utilities:       NewUtilities(),
		plants:          NewPlants(),
		sourceUtilities: make(map[SourceUtilityKey]*SourceUtility),
		sourcePlants:    make(map[SourcePlantKey]*SourcePlant),
		associations:    make(map[Association]struct{}),
		nextUtilityID:   1,
		nextPlantID:     1,
	}
}

// UpsertUtility mints a new canonical utility for the given display name and
// returns its ID. It is the "no existing match" path of the reconciliation
// contract: reusing an existing canonical ID is a matching decision made by
// the caller, not by this method.
func (r *Registry) UpsertUtility(name string) (UtilityID, error) {
	if name == "" {
		return 0, errors.NewValidationError(utilitiesTable, name, "utility name must not be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextUtilityID
	r.nextUtilityID++
	_ = r.utilities.Set(id, &Utility{ID: id, Name: name})
	return id, nil
}

// UpsertPlant mints a new canonical plant and returns its ID. The display
// name is optional: some plants are known only by their per-source names.
func (r *Registry) UpsertPlant(name string) (PlantID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextPlantID
	r.nextPlantID++
	_ = r.plants.Set(id, &Plant{ID: id, Name: name})
	return id, nil
}

// Utility returns a canonical utility by ID.
func (r *Registry) Utility(id UtilityID) (Utility, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	utility, ok := r.utilities.Get(id)
	if !ok {
		return Utility{}, errors.NewNotFoundError("utility", id.String())
	}
	return *utility, nil
}

// Plant returns a canonical plant by ID.
func (r *Registry) Plant(id PlantID) (Plant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plant, ok := r.plants.Get(id)
	if !ok {
		return Plant{}, errors.NewNotFoundError("plant", id.String())
	}
	return *plant, nil
}

// Utilities returns the canonical utilities collection.
func (r *Registry) Utilities() *Utilities {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.utilities
}

// Plants returns the canonical plants collection.
func (r *Registry) Plants() *Plants {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.plants
}

// Copy returns a deep copy of the registry, including linkages,
// associations, and the next canonical IDs to mint.
func (r *Registry) Copy() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dup := New()
	dup.utilities = r.utilities.copy()
	dup.plants = r.plants.copy()
	for key, record := range r.sourceUtilities {
		recordCopy := *record
		dup.sourceUtilities[key] = &recordCopy
	}
	for key, record := range r.sourcePlants {
		recordCopy := *record
		dup.sourcePlants[key] = &recordCopy
	}
	maps.Copy(dup.associations, r.associations)
	dup.nextUtilityID = r.nextUtilityID
	dup.nextPlantID = r.nextPlantID
	return dup
}

// Apply executes fn as a single transaction-scoped batch. The function
// operates on a deep copy of the registry; if it returns nil the copy
// replaces the live state as a unit, and if it returns an error the copy is
// discarded entirely, so no partial canonical-ID assignments ever persist.
//
// Batches are serialized against each other, bounding the matching decision
// and the linkage write together. Readers observe either the state before
// the batch or the state after it, never an intermediate one.
func (r *Registry) Apply(fn func(*Registry) error) error {
	r.batchMu.Lock()
	defer r.batchMu.Unlock()

	staged := r.Copy()
	if err := fn(staged); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.utilities = staged.utilities
	r.plants = staged.plants
	r.sourceUtilities = staged.sourceUtilities
	r.sourcePlants = staged.sourcePlants
	r.associations = staged.associations
	r.nextUtilityID = staged.nextUtilityID
	r.nextPlantID = staged.nextPlantID
	return nil
}
