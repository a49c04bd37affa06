package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/citizenprep/backend/internal/domain/result"
	"github.com/citizenprep/backend/internal/domain/testset"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrPersistence = errors.New("persistence failure")
)

// PersistenceError wraps a failure of the underlying database.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

func persistenceErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}

// UpdateFunc mutates a record inside a read-modify-write cycle. Returning an
// error aborts the cycle and nothing is written.
type UpdateFunc func(rec *result.Record) error

// Store persists one Record per user and test type.
type Store interface {
	// GetRecord returns ErrNotFound when the user has no results of type t.
	GetRecord(ctx context.Context, userID string, t testset.TestType) (*result.Record, error)
	// UpdateRecord loads the record (or a new empty one), applies fn and
	// writes the whole record back. Concurrent updates of the same key are
	// last-writer-wins unless the implementation serializes them.
	UpdateRecord(ctx context.Context, userID string, t testset.TestType, fn UpdateFunc) (*result.Record, error)
	Close() error
}
