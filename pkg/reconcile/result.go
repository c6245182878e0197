package reconcile

import (
	"time"

	"github.com/gridglue/gridglue/pkg/registry"
)

// Outcome describes how a candidate was resolved.
type Outcome string

const (
	// OutcomeMinted means no existing canonical entity matched and a new
	// one was created.
	OutcomeMinted Outcome = "minted"
	// OutcomeMatched means the heuristic matched the candidate to an
	// existing canonical entity.
	OutcomeMatched Outcome = "matched"
	// OutcomeDecided means a curated decision supplied the canonical ID.
	OutcomeDecided Outcome = "decided"
	// OutcomeExisting means the source record was already linked and the
	// existing linkage was kept.
	OutcomeExisting Outcome = "existing"
)

// UtilityOutcome is the per-candidate resolution for a utility record.
type UtilityOutcome struct {
	// Key is the candidate's source record key.
	Key registry.SourceUtilityKey
	// Name is the name the candidate reported.
	Name string
	// CanonicalID is the canonical utility the candidate was linked to.
	CanonicalID registry.UtilityID
	// Outcome describes how the linkage was decided.
	Outcome Outcome
}

// PlantOutcome is the per-candidate resolution for a plant record.
type PlantOutcome struct {
	// Key is the candidate's source record key.
	Key registry.SourcePlantKey
	// Name is the name the candidate reported.
	Name string
	// CanonicalID is the canonical plant the candidate was linked to.
	CanonicalID registry.PlantID
	// Outcome describes how the linkage was decided.
	Outcome Outcome
}

// Result summarizes a committed reconciliation pass.
type Result struct {
	// Utilities holds the per-candidate utility resolutions, in batch order.
	Utilities []UtilityOutcome
	// Plants holds the per-candidate plant resolutions, in batch order.
	Plants []PlantOutcome
	// UtilitiesMinted counts newly created canonical utilities.
	UtilitiesMinted int
	// PlantsMinted counts newly created canonical plants.
	PlantsMinted int
	// AssociationsRecorded counts new utility-plant association facts
	// written; re-reporting a known pair does not count.
	AssociationsRecorded int
	// Duration is the wall-clock time the pass took.
	Duration time.Duration
}
