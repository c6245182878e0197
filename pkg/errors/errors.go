// Package errors provides custom error types for the gridglue system.
// These errors enable programmatic error checking and carry enough context
// (offending value, table, key) to diagnose data and reconciliation failures.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the gridglue system
var (
	// ErrNotFound indicates that a requested record was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates that a record already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict indicates an attempted write that conflicts with existing data
	ErrConflict = errors.New("conflict")

	// ErrIntegrity indicates a referential integrity violation
	ErrIntegrity = errors.New("referential integrity violation")

	// ErrReadOnly indicates an attempt to modify a read-only table
	ErrReadOnly = errors.New("read only")
)

// NotFoundError represents an error when a record is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure, including enumeration
// violations where a value falls outside its closed set.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// IntegrityError represents a referential integrity violation: a linkage or
// association referencing a canonical ID that does not exist. Rejected at
// write time, never deferred to cleanup.
type IntegrityError struct {
	Table    string // table being written
	Column   string // referencing column
	Resource string // referenced resource kind
	ID       string // referenced ID that was not found
}

// Error implements the error interface
func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s.%s references %s %s which does not exist", e.Table, e.Column, e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *IntegrityError) Is(target error) bool {
	return target == ErrIntegrity
}

// NewIntegrityError creates a new IntegrityError
func NewIntegrityError(table, column, resource, id string) *IntegrityError {
	return &IntegrityError{Table: table, Column: column, Resource: resource, ID: id}
}

// RelinkError represents an attempt to change an existing source record's
// canonical linkage without an explicit override. Rejected to prevent silent
// identity drift.
type RelinkError struct {
	Table    string // linkage table
	Key      string // source record key
	Current  string // currently linked canonical ID
	Proposed string // proposed canonical ID
}

// Error implements the error interface
func (e *RelinkError) Error() string {
	return fmt.Sprintf("%s record %s is already linked to %s; relinking to %s requires an explicit override",
		e.Table, e.Key, e.Current, e.Proposed)
}

// Is implements errors.Is support
func (e *RelinkError) Is(target error) bool {
	return target == ErrConflict
}

// NewRelinkError creates a new RelinkError
func NewRelinkError(table, key, current, proposed string) *RelinkError {
	return &RelinkError{Table: table, Key: key, Current: current, Proposed: proposed}
}

// ConflictError represents a reload of reference data that introduces a
// conflicting description for an existing identifier, surfaced rather than
// silently overwritten.
type ConflictError struct {
	Table    string
	ID       string
	Existing string
	Proposed string
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s entry %s already loaded with a different description", e.Table, e.ID)
}

// Is implements errors.Is support
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// NewConflictError creates a new ConflictError
func NewConflictError(table, id, existing, proposed string) *ConflictError {
	return &ConflictError{Table: table, ID: id, Existing: existing, Proposed: proposed}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "yaml", "json", etc.
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "delete"
	Path      string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("IO error during %s: %v", e.Operation, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsIntegrity checks if an error is a referential integrity violation
func IsIntegrity(err error) bool {
	return errors.Is(err, ErrIntegrity)
}

// IsConflict checks if an error is a conflict error
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Operation: operation, Path: path, Err: err}
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, File: file, Message: err.Error(), Err: err}
}
