package registry

import (
	"sort"
	"sync"

	"github.com/gridglue/gridglue/pkg/errors"
)

// Plants is a concurrent safe map of canonical plants.
type Plants struct {
	mu     sync.RWMutex
	plants map[PlantID]*Plant
}

// NewPlants creates a new Plants map.
func NewPlants() *Plants {
	return &Plants{
		plants: make(map[PlantID]*Plant),
	}
}

// Get returns a plant by id and whether it exists.
func (p *Plants) Get(id PlantID) (*Plant, bool) {
	p.mu.RLock()
	plant, ok := p.plants[id]
	p.mu.RUnlock()
	return plant, ok
}

// Set sets a plant by id. Returns an error if plant is nil.
func (p *Plants) Set(id PlantID, plant *Plant) error {
	if plant == nil {
		return errors.NewValidationError("plant", nil, "plant cannot be nil")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.plants[id] = plant
	return nil
}

// Exists checks if a plant exists without returning it.
func (p *Plants) Exists(id PlantID) bool {
	p.mu.RLock()
	_, ok := p.plants[id]
	p.mu.RUnlock()
	return ok
}

// Len returns the number of plants.
func (p *Plants) Len() int {
	p.mu.RLock()
	length := len(p.plants)
	p.mu.RUnlock()
	return length
}

// List returns a slice of all plants sorted by ID.
func (p *Plants) List() []*Plant {
	p.mu.RLock()
	plants := make([]*Plant, 0, len(p.plants))
	for _, plant := range p.plants {
		plants = append(plants, plant)
	}
	p.mu.RUnlock()

	sort.Slice(plants, func(i, j int) bool { return plants[i].ID < plants[j].ID })
	return plants
}

// copy returns a deep copy of the collection.
func (p *Plants) copy() *Plants {
	p.mu.RLock()
	defer p.mu.RUnlock()

	dup := NewPlants()
	for id, plant := range p.plants {
		plantCopy := *plant
		dup.plants[id] = &plantCopy
	}
	return dup
}
