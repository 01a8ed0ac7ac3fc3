// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import "funntour/internal/errors"

// Persistence-level sentinel errors. Use cases translate them into domain errors.
var (
	// ErrNotFound is returned when no live (non-deleted) row matches.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a unique index rejects a write.
	ErrDuplicate = errors.New("duplicate record")

	// ErrInvalidReference is returned when a foreign key points at a missing row.
	ErrInvalidReference = errors.New("invalid reference")
)
