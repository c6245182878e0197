package reconcile

import (
	"github.com/gridglue/gridglue/pkg/constants"
)

// Option configures a Reconciler.
type Option func(*options)

type options struct {
	matcher          Matcher
	threshold        float64
	associationBonus float64
	relinkOverride   bool
}

func defaults() *options {
	return &options{
		matcher:          NewNameMatcher(),
		threshold:        constants.DefaultMatchThreshold,
		associationBonus: constants.AssociationBonus,
	}
}

// WithMatcher replaces the name-similarity matcher. The heuristic is
// inherently approximate; callers with better signals can supply their own.
func WithMatcher(m Matcher) Option {
	return func(o *options) {
		if m != nil {
			o.matcher = m
		}
	}
}

// WithThreshold sets the minimum similarity score for the heuristic to
// treat a candidate as an existing canonical entity.
func WithThreshold(threshold float64) Option {
	return func(o *options) {
		o.threshold = threshold
	}
}

// WithAssociationBonus sets the score bonus applied when a candidate and an
// existing canonical utility share corroborating plant evidence.
func WithAssociationBonus(bonus float64) Option {
	return func(o *options) {
		o.associationBonus = bonus
	}
}

// WithRelinkOverride allows curated decisions in a batch to move already
// linked source records to a different canonical entity. Without it a
// conflicting decision fails the batch.
func WithRelinkOverride() Option {
	return func(o *options) {
		o.relinkOverride = true
	}
}
