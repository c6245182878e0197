// Package classifications provides the static classification tables: FERC
// account codes and FERC depreciation line identifiers, each pairing a
// stable human-assigned identifier with a long-form description.
//
// Tables are populated once from a fixed reference list and referenced (not
// owned) by downstream fact tables. Reloading with identical input is a
// no-op; a reload that changes the description of an existing identifier is
// rejected unless upserting is explicitly requested.
package classifications

import (
	"sort"
	"sync"

	"github.com/gridglue/gridglue/pkg/errors"
)

// Entry is a single classification record: a stable identifier and its
// human-readable description.
type Entry struct {
	// ID is the human-assigned identifier, stable across reporting years.
	ID string `yaml:"id"`
	// Description is the long-form description of the classification.
	Description string `yaml:"description"`
}

// Table is a concurrent safe classification table keyed by entry ID.
type Table struct {
	mu      sync.RWMutex
	name    string
	entries map[string]Entry
}

// NewTable creates an empty classification table with the given name.
// The name identifies the table in conflict and validation errors.
func NewTable(name string) *Table {
	return &Table{
		name:    name,
		entries: make(map[string]Entry),
	}
}

// Name returns the table name.
func (t *Table) Name() string {
	return t.name
}

// Get returns an entry by id and whether it exists.
func (t *Table) Get(id string) (Entry, bool) {
	t.mu.RLock()
	entry, ok := t.entries[id]
	t.mu.RUnlock()
	return entry, ok
}

// Exists checks if an entry exists without returning it.
func (t *Table) Exists(id string) bool {
	t.mu.RLock()
	_, ok := t.entries[id]
	t.mu.RUnlock()
	return ok
}

// Len returns the number of entries.
func (t *Table) Len() int {
	t.mu.RLock()
	length := len(t.entries)
	t.mu.RUnlock()
	return length
}

// List returns all entries sorted by ID.
func (t *Table) List() []Entry {
	t.mu.RLock()
	entries := make([]Entry, 0, len(t.entries))
	for _, entry := range t.entries {
		entries = append(entries, entry)
	}
	t.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries
}

// LoadOption configures a Load call.
type LoadOption func(*loadOptions)

type loadOptions struct {
	upsert bool
}

// WithUpsert allows a reload to replace the description of an existing
// identifier instead of rejecting the conflict.
func WithUpsert() LoadOption {
	return func(o *loadOptions) {
		o.upsert = true
	}
}

// Load populates the table from a reference list. Loading is idempotent:
// entries already present with an identical description are skipped. An
// entry whose description differs from the loaded one is a conflict and
// fails the whole load unless WithUpsert is given. Entries with an empty
// identifier or description are rejected.
//
// Load validates the full input before writing, so a failed load leaves the
// table unchanged.
func (t *Table) Load(entries []Entry, opts ...LoadOption) error {
	options := &loadOptions{}
	for _, opt := range opts {
		opt(options)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	// Validate first. Duplicate IDs within the input itself are also
	// conflicts unless their descriptions agree.
	seen := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.ID == "" {
			return errors.NewValidationError(t.name, entry.ID, "classification identifier must not be empty")
		}
		if entry.Description == "" {
			return errors.NewValidationError(t.name, entry.ID, "classification description must not be empty")
		}
		if prev, dup := seen[entry.ID]; dup && prev != entry.Description {
			return errors.NewConflictError(t.name, entry.ID, prev, entry.Description)
		}
		seen[entry.ID] = entry.Description

		if existing, ok := t.entries[entry.ID]; ok && !options.upsert && existing.Description != entry.Description {
			return errors.NewConflictError(t.name, entry.ID, existing.Description, entry.Description)
		}
	}

	for _, entry := range entries {
		t.entries[entry.ID] = entry
	}
	return nil
}
