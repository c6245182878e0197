// Package registry provides the canonical entity registry for the energy
// identity reconciliation system: the deduplicated utilities and plants,
// the per-source identity records that name them, the linkages binding each
// source record to exactly one canonical entity, and the utility-plant
// association table aggregated across sources.
//
// The registry is the persisted interface surface between the ingestion
// pipelines that write source records, the reconciliation engine that
// decides linkages, and the downstream analytics that join across sources.
package registry

import (
	"fmt"
	"strconv"

	"github.com/gridglue/gridglue/pkg/errors"
)

// SourceID identifies an upstream filing system.
type SourceID string

// The known data sources. Source-local identifiers are stable only within
// their own source; they carry no meaning across sources.
const (
	// FERC1 is FERC Form 1, the federal regulatory accounting filing.
	// Respondents are typically utility companies. FERC assigns respondent
	// IDs but no plant IDs.
	FERC1 SourceID = "ferc1"

	// EIA923 is EIA Form 923, the federal energy statistics filing.
	// EIA assigns unique IDs to both operators and plants.
	EIA923 SourceID = "eia923"
)

// SourceIDs lists every known data source.
var SourceIDs = []SourceID{FERC1, EIA923}

// Valid reports whether the source is one of the known data sources.
func (s SourceID) Valid() bool {
	for _, known := range SourceIDs {
		if s == known {
			return true
		}
	}
	return false
}

// UtilityID is an auto-assigned canonical utility identifier. IDs are minted
// by the registry and never reused, even if the entity later proves to be a
// false split.
type UtilityID int

// String renders the ID for error messages.
func (id UtilityID) String() string {
	return strconv.Itoa(int(id))
}

// PlantID is an auto-assigned canonical plant identifier, minted by the
// registry and never reused.
type PlantID int

// String renders the ID for error messages.
func (id PlantID) String() string {
	return strconv.Itoa(int(id))
}

// Utility is a canonical electric utility, constructed from FERC, EIA and
// other data. It correlates FERC respondents and EIA operators that are
// inferred to be the same real-world operating entity. There is not a
// one-to-one correspondence between respondents and operators, so some
// ambiguity is inherent in this correspondence.
type Utility struct {
	// ID is the canonical utility identifier, assigned by the registry.
	ID UtilityID `yaml:"id"`
	// Name is the display name for the canonical utility.
	Name string `yaml:"name"`
}

// Plant is a canonical co-located collection of electricity generating
// infrastructure. Plants are enumerated based on appearing in at least one
// data source, but may not appear in all of them, and may be broken into
// smaller units in one source than in another.
type Plant struct {
	// ID is the canonical plant identifier, assigned by the registry.
	ID PlantID `yaml:"id"`
	// Name is the display name for the canonical plant. Optional: some
	// plants are known only by their per-source names.
	Name string `yaml:"name,omitempty"`
}

// SourceUtility is a utility as reported by one upstream source: a FERC
// respondent or an EIA operator. Each source record is bound to exactly one
// canonical utility.
type SourceUtility struct {
	// Source is the filing system that reported this record.
	Source SourceID `yaml:"source"`
	// ID is the source-local utility identifier, unique within Source only.
	ID int `yaml:"id"`
	// Name is the utility name as reported by the source.
	Name string `yaml:"name"`
	// CanonicalID is the canonical utility this record is linked to,
	// recording the reconciliation decision.
	CanonicalID UtilityID `yaml:"utility_id"`
}

// Key returns the composite identity of the source record.
func (u SourceUtility) Key() SourceUtilityKey {
	return SourceUtilityKey{Source: u.Source, ID: u.ID}
}

// SourceUtilityKey is the composite primary key of a SourceUtility.
type SourceUtilityKey struct {
	// Source is the filing system that reported the record.
	Source SourceID `yaml:"source"`
	// ID is the source-local utility identifier.
	ID int `yaml:"id"`
}

// String renders the key for error messages.
func (k SourceUtilityKey) String() string {
	return fmt.Sprintf("%s/%d", k.Source, k.ID)
}

// SourcePlant is a plant as reported by one upstream source. Each source
// record is bound to exactly one canonical plant.
//
// The two sources identify plants differently. FERC assigns no plant IDs:
// the only identifying information is the plant name and the respondent
// reporting it, so FERC records are keyed by (UtilityID, Name). EIA assigns
// a unique plant ID, so EIA records are keyed by ID alone. A plant reported
// under one source utility may, in the other source, appear associated with
// a different source utility; the utility-plant mapping is inherently
// many-to-many across sources even before canonicalization.
type SourcePlant struct {
	// Source is the filing system that reported this record.
	Source SourceID `yaml:"source"`
	// UtilityID is the source-local identifier of the reporting utility.
	// Part of the record key for FERC Form 1; unset for EIA 923.
	UtilityID int `yaml:"utility_id,omitempty"`
	// ID is the source-assigned plant identifier. Set for EIA 923 only.
	ID int `yaml:"id,omitempty"`
	// Name is the plant name as reported by the source.
	Name string `yaml:"name"`
	// CanonicalID is the canonical plant this record is linked to,
	// recording the reconciliation decision.
	CanonicalID PlantID `yaml:"plant_id"`
}

// Key returns the composite identity of the source record.
func (p SourcePlant) Key() SourcePlantKey {
	if p.Source == FERC1 {
		return FERC1PlantKey(p.UtilityID, p.Name)
	}
	return EIA923PlantKey(p.ID)
}

// SourcePlantKey is the composite primary key of a SourcePlant. Exactly one
// of the two key shapes is populated, depending on the source.
type SourcePlantKey struct {
	// Source is the filing system that reported the record.
	Source SourceID
	// UtilityID is the reporting utility's source-local ID (FERC Form 1).
	UtilityID int
	// Name is the reported plant name (FERC Form 1).
	Name string
	// ID is the source-assigned plant ID (EIA 923).
	ID int
}

// FERC1PlantKey builds the key for a FERC Form 1 plant record.
func FERC1PlantKey(utilityID int, name string) SourcePlantKey {
	return SourcePlantKey{Source: FERC1, UtilityID: utilityID, Name: name}
}

// EIA923PlantKey builds the key for an EIA 923 plant record.
func EIA923PlantKey(id int) SourcePlantKey {
	return SourcePlantKey{Source: EIA923, ID: id}
}

// String renders the key for error messages.
func (k SourcePlantKey) String() string {
	if k.Source == FERC1 {
		return fmt.Sprintf("%s/%d/%s", k.Source, k.UtilityID, k.Name)
	}
	return fmt.Sprintf("%s/%d", k.Source, k.ID)
}

// Association records that some source, at some time, reported a connection
// between a canonical utility and a canonical plant (ownership or
// operation). It is a fact with no attributes beyond existence. Multiple
// utilities may be associated with the same plant (co-ownership) and vice
// versa.
type Association struct {
	// UtilityID is the associated canonical utility.
	UtilityID UtilityID `yaml:"utility_id"`
	// PlantID is the associated canonical plant.
	PlantID PlantID `yaml:"plant_id"`
}

// validateSource rejects unknown source identifiers.
func validateSource(s SourceID) error {
	if !s.Valid() {
		return errors.NewValidationError("source", string(s), fmt.Sprintf("%s is not a known data source", s))
	}
	return nil
}
