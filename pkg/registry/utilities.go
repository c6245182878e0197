package registry

import (
	"sort"
	"sync"

	"github.com/gridglue/gridglue/pkg/errors"
)

// Utilities is a concurrent safe map of canonical utilities.
type Utilities struct {
	mu        sync.RWMutex
	utilities map[UtilityID]*Utility
}

// NewUtilities creates a new Utilities map.
func NewUtilities() *Utilities {
	return &Utilities{
		utilities: make(map[UtilityID]*Utility),
	}
}

// Get returns a utility by id and whether it exists.
func (u *Utilities) Get(id UtilityID) (*Utility, bool) {
	u.mu.RLock()
	utility, ok := u.utilities[id]
	u.mu.RUnlock()
	return utility, ok
}

// Set sets a utility by id. Returns an error if utility is nil.
func (u *Utilities) Set(id UtilityID, utility *Utility) error {
	if utility == nil {
		return errors.NewValidationError("utility", nil, "utility cannot be nil")
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	u.utilities[id] = utility
	return nil
}

// Exists checks if a utility exists without returning it.
func (u *Utilities) Exists(id UtilityID) bool {
	u.mu.RLock()
	_, ok := u.utilities[id]
	u.mu.RUnlock()
	return ok
}

// Len returns the number of utilities.
func (u *Utilities) Len() int {
	u.mu.RLock()
	length := len(u.utilities)
	u.mu.RUnlock()
	return length
}

// List returns a slice of all utilities sorted by ID.
func (u *Utilities) List() []*Utility {
	u.mu.RLock()
	utilities := make([]*Utility, 0, len(u.utilities))
	for _, utility := range u.utilities {
		utilities = append(utilities, utility)
	}
	u.mu.RUnlock()

	sort.Slice(utilities, func(i, j int) bool { return utilities[i].ID < utilities[j].ID })
	return utilities
}

// copy returns a deep copy of the collection.
func (u *Utilities) copy() *Utilities {
	u.mu.RLock()
	defer u.mu.RUnlock()

	dup := NewUtilities()
	for id, utility := range u.utilities {
		utilityCopy := *utility
		dup.utilities[id] = &utilityCopy
	}
	return dup
}
