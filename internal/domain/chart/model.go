package chart

import (
	"time"

	"github.com/google/uuid"
)

// Entry maps to the chart_entry table: one clinical note for one visit.
//
// Entries are never physically removed. A delete marks IsDeleted and stamps
// DeletedAt/DeleteReason exactly once; ID and CreatedAt never change after
// creation. ModifiedAt/ModifiedReason always reflect the most recent edit;
// the full edit trail lives in chart_entry_revision.
type Entry struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	PatientID       uuid.UUID  `db:"patient_id" json:"patient_id"`
	Date            time.Time  `db:"visit_date" json:"date"`
	Content         string     `db:"content" json:"content"`
	TherapyMethods  []string   `db:"therapy_methods" json:"therapy_methods"`
	NextAppointment *time.Time `db:"next_appointment" json:"next_appointment,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	ModifiedAt      *time.Time `db:"modified_at" json:"modified_at,omitempty"`
	ModifiedReason  *string    `db:"modified_reason" json:"modified_reason,omitempty"`
	IsDeleted       bool       `db:"is_deleted" json:"is_deleted"`
	DeletedAt       *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
	DeleteReason    *string    `db:"delete_reason" json:"delete_reason,omitempty"`
	Version         int        `db:"version" json:"version"`
}

// Clone returns a deep copy so repository callers cannot mutate stored state.
func (e *Entry) Clone() *Entry {
	c := *e
	c.TherapyMethods = append([]string(nil), e.TherapyMethods...)
	if e.NextAppointment != nil {
		t := *e.NextAppointment
		c.NextAppointment = &t
	}
	if e.ModifiedAt != nil {
		t := *e.ModifiedAt
		c.ModifiedAt = &t
	}
	if e.ModifiedReason != nil {
		s := *e.ModifiedReason
		c.ModifiedReason = &s
	}
	if e.DeletedAt != nil {
		t := *e.DeletedAt
		c.DeletedAt = &t
	}
	if e.DeleteReason != nil {
		s := *e.DeleteReason
		c.DeleteReason = &s
	}
	return &c
}

type RevisionKind string

const (
	RevisionEdit   RevisionKind = "edit"
	RevisionDelete RevisionKind = "delete"
)

// Revision maps to the chart_entry_revision table. Each successful edit
// appends one revision holding the snapshot of the entry as it was BEFORE
// the change, plus the justification; a delete appends a terminal revision.
type Revision struct {
	ID              uuid.UUID    `db:"id" json:"id"`
	EntryID         uuid.UUID    `db:"entry_id" json:"entry_id"`
	Kind            RevisionKind `db:"kind" json:"kind"`
	Reason          string       `db:"reason" json:"reason"`
	RecordedAt      time.Time    `db:"recorded_at" json:"recorded_at"`
	Content         string       `db:"content" json:"content"`
	TherapyMethods  []string     `db:"therapy_methods" json:"therapy_methods"`
	NextAppointment *time.Time   `db:"next_appointment" json:"next_appointment,omitempty"`
}

// CreateEntryInput carries the caller's fields for a new entry. Dates arrive
// as "2006-01-02" strings so malformed input is rejected by the store itself
// rather than lost in transport binding.
type CreateEntryInput struct {
	Date            string   `json:"date"`
	Content         string   `json:"content"`
	TherapyMethods  []string `json:"therapy_methods"`
	NextAppointment string   `json:"next_appointment,omitempty"`
}

// EditEntryInput overwrites content, therapy methods and next appointment.
// Reason is the mandatory justification recorded in the audit trail.
type EditEntryInput struct {
	Content         string   `json:"content"`
	TherapyMethods  []string `json:"therapy_methods"`
	NextAppointment string   `json:"next_appointment,omitempty"`
	Reason          string   `json:"reason"`
}

type DeleteEntryInput struct {
	Reason string `json:"reason"`
}
