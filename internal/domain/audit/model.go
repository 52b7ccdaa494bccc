package audit

import (
	"time"

	"github.com/google/uuid"

	"github.com/karte/emr/internal/domain/chart"
	"github.com/karte/emr/internal/domain/patient"
)

type EventType string

const (
	EventEdit   EventType = "edit"
	EventDelete EventType = "delete"
)

// LogEntry is one row of the modification/deletion oversight listing:
// who was charted, what happened, when, and the recorded justification.
type LogEntry struct {
	PatientID       uuid.UUID  `json:"patient_id"`
	PatientName     string     `json:"patient_name"`
	PatientNameKana string     `json:"patient_name_kana"`
	EntryID         uuid.UUID  `json:"entry_id"`
	EntryDate       time.Time  `json:"entry_date"`
	EventTimestamp  time.Time  `json:"event_timestamp"`
	Type            EventType  `json:"type"`
	Reason          string     `json:"reason"`
	Content         string     `json:"content"`
	NextAppointment *time.Time `json:"next_appointment,omitempty"`
}

// Filter narrows the projection. Zero value means "everything".
type Filter struct {
	Type       EventType // "", "edit" or "delete"; empty matches both
	SearchText string
	From       *time.Time
	To         *time.Time
}

// Warning records a single entry the projection had to skip. A malformed
// record never aborts the whole listing.
type Warning struct {
	PatientID uuid.UUID `json:"patient_id"`
	EntryID   uuid.UUID `json:"entry_id"`
	Message   string    `json:"message"`
}

// PatientRecord bundles one patient with their chart entries for projection.
type PatientRecord struct {
	Patient *patient.Patient
	Entries []*chart.Entry
}
