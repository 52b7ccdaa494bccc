package chart

import (
	"context"

	"github.com/google/uuid"
)

type EntryRepository interface {
	Create(ctx context.Context, e *Entry) error
	GetByID(ctx context.Context, id uuid.UUID) (*Entry, error)
	// Update persists e together with its revision in one atomic write:
	// either both land or neither does. The entry is written only if the
	// stored version still equals expectedVersion and the entry is not
	// deleted; on success the stored version (and e.Version) is
	// incremented. Fails with ErrEntryNotFound, ErrEntryDeleted or
	// ErrVersionConflict otherwise.
	Update(ctx context.Context, e *Entry, expectedVersion int, rev *Revision) error
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Entry, error)
}

type RevisionRepository interface {
	ListByEntry(ctx context.Context, entryID uuid.UUID) ([]*Revision, error)
}

// Store combines entry and revision persistence over one backing store.
type Store interface {
	EntryRepository
	RevisionRepository
}

// Directory resolves patient identity. The chart store does not own patient
// demographics; it only needs to know whether a patient exists.
type Directory interface {
	Exists(ctx context.Context, patientID uuid.UUID) (bool, error)
}
