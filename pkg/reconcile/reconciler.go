package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/gridglue/gridglue/pkg/errors"
	"github.com/gridglue/gridglue/pkg/logging"
	"github.com/gridglue/gridglue/pkg/registry"
)

// Reconciler decides canonical identities for batches of source records and
// writes the decisions to a registry.
type Reconciler struct {
	registry *registry.Registry
	opts     *options
}

// New creates a Reconciler writing to the given registry.
func New(r *registry.Registry, opts ...Option) *Reconciler {
	options := defaults()
	for _, opt := range opts {
		opt(options)
	}
	return &Reconciler{registry: r, opts: options}
}

// Reconcile executes one reconciliation pass. The whole batch runs as a
// single transaction-scoped unit: on any error no linkage, canonical entity,
// or association from the batch persists.
//
// Utilities are resolved first, then plants, then utility-plant association
// facts are derived from plant candidates that name their reporting source
// utility.
func (rc *Reconciler) Reconcile(ctx context.Context, batch *Batch) (*Result, error) {
	logger := logging.FromContext(ctx)
	start := time.Now()

	if batch == nil {
		return &Result{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{}
	err := rc.registry.Apply(func(staged *registry.Registry) error {
		for _, cand := range batch.Utilities {
			outcome, err := rc.reconcileUtility(staged, batch, cand)
			if err != nil {
				return err
			}
			if outcome.Outcome == OutcomeMinted {
				result.UtilitiesMinted++
			}
			result.Utilities = append(result.Utilities, outcome)
		}

		for _, cand := range batch.Plants {
			outcome, err := rc.reconcilePlant(staged, batch, cand)
			if err != nil {
				return err
			}
			if outcome.Outcome == OutcomeMinted {
				result.PlantsMinted++
			}
			result.Plants = append(result.Plants, outcome)
		}

		recorded, err := rc.recordAssociations(staged, batch)
		if err != nil {
			return err
		}
		result.AssociationsRecorded = recorded
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Duration = time.Since(start)
	logger.Info().
		Int("utility_candidates", len(result.Utilities)).
		Int("plant_candidates", len(result.Plants)).
		Int("utilities_minted", result.UtilitiesMinted).
		Int("plants_minted", result.PlantsMinted).
		Int("associations", result.AssociationsRecorded).
		Dur("duration", result.Duration).
		Msg("Reconciliation pass committed")
	return result, nil
}

// reconcileUtility resolves one utility candidate against the staged state.
func (rc *Reconciler) reconcileUtility(staged *registry.Registry, batch *Batch, cand UtilityCandidate) (UtilityOutcome, error) {
	outcome := UtilityOutcome{Key: cand.Key(), Name: cand.Name}

	if !cand.Source.Valid() {
		return outcome, errors.NewValidationError("source", string(cand.Source), fmt.Sprintf("%s is not a known data source", cand.Source))
	}
	if cand.Name == "" {
		return outcome, errors.NewValidationError("name", cand.Name, fmt.Sprintf("utility candidate %s has no name", cand.Key()))
	}

	var linkOpts []registry.LinkOption
	if rc.opts.relinkOverride {
		linkOpts = append(linkOpts, registry.WithOverride())
	}

	// Curated decision wins over everything.
	if id, ok := batch.UtilityDecisions[cand.Key()]; ok {
		if err := staged.LinkSourceUtility(cand.Source, cand.ID, cand.Name, id, linkOpts...); err != nil {
			return outcome, err
		}
		outcome.CanonicalID = id
		outcome.Outcome = OutcomeDecided
		return outcome, nil
	}

	// Already linked: keep the linkage, refresh the reported name.
	if existing, err := staged.SourceUtility(cand.Source, cand.ID); err == nil {
		if err := staged.LinkSourceUtility(cand.Source, cand.ID, cand.Name, existing.CanonicalID); err != nil {
			return outcome, err
		}
		outcome.CanonicalID = existing.CanonicalID
		outcome.Outcome = OutcomeExisting
		return outcome, nil
	}

	// Heuristic match against the staged canonical table, which includes
	// entities minted earlier in this same batch.
	if id, found := rc.bestUtilityMatch(staged, batch, cand); found {
		if err := staged.LinkSourceUtility(cand.Source, cand.ID, cand.Name, id); err != nil {
			return outcome, err
		}
		outcome.CanonicalID = id
		outcome.Outcome = OutcomeMatched
		return outcome, nil
	}

	id, err := staged.UpsertUtility(cand.Name)
	if err != nil {
		return outcome, err
	}
	if err := staged.LinkSourceUtility(cand.Source, cand.ID, cand.Name, id); err != nil {
		return outcome, err
	}
	outcome.CanonicalID = id
	outcome.Outcome = OutcomeMinted
	return outcome, nil
}

// bestUtilityMatch scores the candidate against every canonical utility and
// returns the best one at or above the threshold.
func (rc *Reconciler) bestUtilityMatch(staged *registry.Registry, batch *Batch, cand UtilityCandidate) (registry.UtilityID, bool) {
	var bestID registry.UtilityID
	bestScore := 0.0

	for _, utility := range staged.Utilities().List() {
		score := rc.opts.matcher.Similarity(cand.Name, utility.Name)
		if rc.sharesPlantEvidence(staged, batch, cand, utility.ID) {
			score += rc.opts.associationBonus
			if score > 1 {
				score = 1
			}
		}
		if score > bestScore {
			bestScore = score
			bestID = utility.ID
		}
	}

	if bestScore >= rc.opts.threshold && bestID != 0 {
		return bestID, true
	}
	return 0, false
}

// sharesPlantEvidence reports whether a plant name reported under the
// candidate in this batch matches a plant already associated with the
// canonical utility. Shared facilities corroborate a borderline name match.
func (rc *Reconciler) sharesPlantEvidence(staged *registry.Registry, batch *Batch, cand UtilityCandidate, id registry.UtilityID) bool {
	reported := make(map[string]bool)
	for _, plant := range batch.Plants {
		if plant.Source == cand.Source && plant.UtilityID == cand.ID && plant.Name != "" {
			reported[Normalize(plant.Name)] = true
		}
	}
	if len(reported) == 0 {
		return false
	}

	for _, pid := range staged.PlantsForUtility(id) {
		if plant, err := staged.Plant(pid); err == nil && plant.Name != "" && reported[Normalize(plant.Name)] {
			return true
		}
		for _, record := range staged.SourcePlantsFor(pid) {
			if reported[Normalize(record.Name)] {
				return true
			}
		}
	}
	return false
}

// reconcilePlant resolves one plant candidate against the staged state.
func (rc *Reconciler) reconcilePlant(staged *registry.Registry, batch *Batch, cand PlantCandidate) (PlantOutcome, error) {
	outcome := PlantOutcome{Key: cand.Key(), Name: cand.Name}

	if !cand.Source.Valid() {
		return outcome, errors.NewValidationError("source", string(cand.Source), fmt.Sprintf("%s is not a known data source", cand.Source))
	}
	if cand.Name == "" {
		return outcome, errors.NewValidationError("name", cand.Name, fmt.Sprintf("plant candidate %s has no name", cand.Key()))
	}
	if cand.Source == registry.FERC1 && cand.UtilityID == 0 {
		return outcome, errors.NewValidationError("utility_id", cand.UtilityID, "FERC Form 1 plant candidates require the reporting respondent ID")
	}
	if cand.Source == registry.EIA923 && cand.ID == 0 {
		return outcome, errors.NewValidationError("id", cand.ID, "EIA 923 plant candidates require the source-assigned plant ID")
	}

	var linkOpts []registry.LinkOption
	if rc.opts.relinkOverride {
		linkOpts = append(linkOpts, registry.WithOverride())
	}

	link := func(id registry.PlantID, opts ...registry.LinkOption) error {
		if cand.Source == registry.FERC1 {
			return staged.LinkFERC1Plant(cand.UtilityID, cand.Name, id, opts...)
		}
		return staged.LinkEIA923Plant(cand.ID, cand.Name, id, opts...)
	}

	if id, ok := batch.PlantDecisions[cand.Key()]; ok {
		if err := link(id, linkOpts...); err != nil {
			return outcome, err
		}
		outcome.CanonicalID = id
		outcome.Outcome = OutcomeDecided
		return outcome, nil
	}

	if existing, err := staged.SourcePlant(cand.Key()); err == nil {
		outcome.CanonicalID = existing.CanonicalID
		outcome.Outcome = OutcomeExisting
		return outcome, nil
	}

	if id, found := rc.bestPlantMatch(staged, cand); found {
		if err := link(id); err != nil {
			return outcome, err
		}
		outcome.CanonicalID = id
		outcome.Outcome = OutcomeMatched
		return outcome, nil
	}

	id, err := staged.UpsertPlant(cand.Name)
	if err != nil {
		return outcome, err
	}
	if err := link(id); err != nil {
		return outcome, err
	}
	outcome.CanonicalID = id
	outcome.Outcome = OutcomeMinted
	return outcome, nil
}

// bestPlantMatch scores the candidate name against canonical plant names
// and the names of their linked source records. Canonical plants without a
// display name are matched through their source records only.
func (rc *Reconciler) bestPlantMatch(staged *registry.Registry, cand PlantCandidate) (registry.PlantID, bool) {
	var bestID registry.PlantID
	bestScore := 0.0

	for _, plant := range staged.Plants().List() {
		score := 0.0
		if plant.Name != "" {
			score = rc.opts.matcher.Similarity(cand.Name, plant.Name)
		}
		for _, record := range staged.SourcePlantsFor(plant.ID) {
			if s := rc.opts.matcher.Similarity(cand.Name, record.Name); s > score {
				score = s
			}
		}
		if score > bestScore {
			bestScore = score
			bestID = plant.ID
		}
	}

	if bestScore >= rc.opts.threshold && bestID != 0 {
		return bestID, true
	}
	return 0, false
}

// recordAssociations derives utility-plant facts from plant candidates that
// name their reporting source utility. A candidate whose reporting utility
// is not linked contributes no fact; that is the expected shape for
// statistics filings that omit the operator.
func (rc *Reconciler) recordAssociations(staged *registry.Registry, batch *Batch) (int, error) {
	recorded := 0
	for _, cand := range batch.Plants {
		if cand.UtilityID == 0 {
			continue
		}

		utility, err := staged.SourceUtility(cand.Source, cand.UtilityID)
		if err != nil {
			continue
		}
		plant, err := staged.SourcePlant(cand.Key())
		if err != nil {
			continue
		}

		if staged.Associated(utility.CanonicalID, plant.CanonicalID) {
			continue
		}
		if err := staged.RecordAssociation(utility.CanonicalID, plant.CanonicalID); err != nil {
			return recorded, err
		}
		recorded++
	}
	return recorded, nil
}
