// Package jurisdictions provides the closed jurisdiction-code enumerations
// used to validate state and province valued attributes across the system.
//
// Three sets are predefined: the full US states and territories list, the
// lower-48 subset used for continuous emissions monitoring reporting, and the
// combined US and Canada list. The sets are closed: extending them is a code
// change, not a runtime operation.
package jurisdictions

import (
	"sort"

	"github.com/gridglue/gridglue/pkg/errors"
)

// Code is a two-letter jurisdiction code (state, territory, or province).
type Code string

// Set is a named, immutable membership set of jurisdiction codes.
// Membership is checked at write time by callers; a Set is never mutated
// after package initialization.
type Set struct {
	name    string
	members map[Code]string // code -> human-readable jurisdiction name
}

// newSet builds a Set from one or more code->name maps. Later maps may not
// redefine a code from an earlier one; the reference lists are disjoint.
func newSet(name string, maps ...map[Code]string) *Set {
	members := make(map[Code]string)
	for _, m := range maps {
		for code, desc := range m {
			members[code] = desc
		}
	}
	return &Set{name: name, members: members}
}

// Name returns the enumeration name, as used in validation errors.
func (s *Set) Name() string {
	return s.name
}

// Len returns the number of codes in the set.
func (s *Set) Len() int {
	return len(s.members)
}

// Contains reports whether code is a member of the set.
func (s *Set) Contains(code Code) bool {
	_, ok := s.members[code]
	return ok
}

// Description returns the human-readable jurisdiction name for a code and
// whether the code is a member of the set.
func (s *Set) Description(code Code) (string, bool) {
	desc, ok := s.members[code]
	return desc, ok
}

// Codes returns the member codes in sorted order.
func (s *Set) Codes() []Code {
	codes := make([]Code, 0, len(s.members))
	for code := range s.members {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// Validate returns nil if value is a member of the set, or a ValidationError
// identifying the offending value and the allowed set name. Values are never
// coerced.
func (s *Set) Validate(value string) error {
	if s.Contains(Code(value)) {
		return nil
	}
	return errors.NewValidationError(s.name, value, value+" is not a member of "+s.name)
}

// Validate checks value against the named enumeration set.
// It is a convenience wrapper for Set.Validate.
func Validate(value string, set *Set) error {
	return set.Validate(value)
}
