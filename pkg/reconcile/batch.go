// Package reconcile provides the reconciliation engine: given a batch of
// source utility and plant candidates, it decides for each whether it
// matches an existing canonical entity or requires minting a new one, and
// writes the decisions to the registry as linkages and associations.
//
// Matching is name similarity plus corroborating structural evidence
// (shared plant associations). It is not guaranteed one-to-one: a single
// canonical entity commonly aggregates multiple source records, and false
// merges or false splits are expected failure modes, correctable with
// curated decisions. Curated decisions always win over the heuristic.
//
// A batch executes as one transaction-scoped unit: either every linkage and
// association in the batch commits, or none do.
package reconcile

import (
	"github.com/gridglue/gridglue/pkg/registry"
)

// UtilityCandidate is a source utility record awaiting a reconciliation
// decision: the source naming plus the source-local ID, with no canonical
// reference yet.
type UtilityCandidate struct {
	// Source is the filing system that reported the candidate.
	Source registry.SourceID
	// ID is the source-local utility identifier.
	ID int
	// Name is the utility name as reported by the source.
	Name string
}

// Key returns the candidate's source record key.
func (c UtilityCandidate) Key() registry.SourceUtilityKey {
	return registry.SourceUtilityKey{Source: c.Source, ID: c.ID}
}

// PlantCandidate is a source plant record awaiting a reconciliation
// decision.
type PlantCandidate struct {
	// Source is the filing system that reported the candidate.
	Source registry.SourceID
	// UtilityID is the source-local ID of the reporting utility. Required
	// for FERC Form 1 records (part of the record key); optional for EIA
	// 923, where it identifies the operator for association facts.
	UtilityID int
	// ID is the source-assigned plant identifier (EIA 923 only).
	ID int
	// Name is the plant name as reported by the source.
	Name string
}

// Key returns the candidate's source record key.
func (c PlantCandidate) Key() registry.SourcePlantKey {
	if c.Source == registry.FERC1 {
		return registry.FERC1PlantKey(c.UtilityID, c.Name)
	}
	return registry.EIA923PlantKey(c.ID)
}

// Batch is one reconciliation pass worth of candidates, plus any curated
// match decisions. Decisions map a candidate's source record key to the
// canonical ID it must be linked to, overriding the matching heuristic.
type Batch struct {
	// Utilities are the source utility candidates to reconcile.
	Utilities []UtilityCandidate
	// Plants are the source plant candidates to reconcile. Plant candidates
	// are processed after utilities so that FERC plant keys can reference
	// respondents linked in the same batch.
	Plants []PlantCandidate
	// UtilityDecisions are curated utility match decisions by source key.
	UtilityDecisions map[registry.SourceUtilityKey]registry.UtilityID
	// PlantDecisions are curated plant match decisions by source key.
	PlantDecisions map[registry.SourcePlantKey]registry.PlantID
}

// DecideUtility records a curated decision that the candidate refers to the
// given canonical utility.
func (b *Batch) DecideUtility(c UtilityCandidate, id registry.UtilityID) {
	if b.UtilityDecisions == nil {
		b.UtilityDecisions = make(map[registry.SourceUtilityKey]registry.UtilityID)
	}
	b.UtilityDecisions[c.Key()] = id
}

// DecidePlant records a curated decision that the candidate refers to the
// given canonical plant.
func (b *Batch) DecidePlant(c PlantCandidate, id registry.PlantID) {
	if b.PlantDecisions == nil {
		b.PlantDecisions = make(map[registry.SourcePlantKey]registry.PlantID)
	}
	b.PlantDecisions[c.Key()] = id
}
