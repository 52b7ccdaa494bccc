package chart

import (
	"context"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MinReasonLength is the minimum justification length for edits and
// deletions, counted in runes so Japanese clinical text is measured the
// same way the charting UI measures it.
const MinReasonLength = 10

const dateLayout = "2006-01-02"

type Service struct {
	entries   EntryRepository
	revisions RevisionRepository
	directory Directory
	now       func() time.Time
}

func NewService(entries EntryRepository, revisions RevisionRepository, directory Directory) *Service {
	return &Service{
		entries:   entries,
		revisions: revisions,
		directory: directory,
		now:       time.Now,
	}
}

// AddEntry creates a new chart entry for the patient. CreatedAt is stamped
// once and never changes afterwards.
func (s *Service) AddEntry(ctx context.Context, patientID uuid.UUID, in CreateEntryInput) (*Entry, error) {
	if err := s.checkPatient(ctx, patientID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, &ValidationError{Field: "content", Message: "content is required"}
	}
	visitDate, err := parseDate("date", in.Date)
	if err != nil {
		return nil, err
	}
	nextAppt, err := parseOptionalDate("next_appointment", in.NextAppointment)
	if err != nil {
		return nil, err
	}

	e := &Entry{
		ID:              uuid.New(),
		PatientID:       patientID,
		Date:            visitDate,
		Content:         in.Content,
		TherapyMethods:  normalizeMethods(in.TherapyMethods),
		NextAppointment: nextAppt,
		CreatedAt:       s.now(),
		Version:         1,
	}
	if err := s.entries.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// EditEntry overwrites content, therapy methods and next appointment, and
// records the pre-edit state as a revision. Every accepted edit produces a
// modification event, even when the submitted fields are identical to the
// stored ones: the audit trail records attempts, not just changes.
func (s *Service) EditEntry(ctx context.Context, patientID, entryID uuid.UUID, in EditEntryInput) (*Entry, error) {
	if err := validateReason(in.Reason); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, &ValidationError{Field: "content", Message: "content is required"}
	}
	nextAppt, err := parseOptionalDate("next_appointment", in.NextAppointment)
	if err != nil {
		return nil, err
	}

	e, err := s.getPatientEntry(ctx, patientID, entryID)
	if err != nil {
		return nil, err
	}
	if e.IsDeleted {
		return nil, ErrEntryDeleted
	}

	// One timestamp per operation: the revision and the entry must agree on
	// when the edit happened.
	now := s.now()
	rev := snapshotRevision(e, RevisionEdit, in.Reason, now)

	prevVersion := e.Version
	e.Content = in.Content
	e.TherapyMethods = normalizeMethods(in.TherapyMethods)
	e.NextAppointment = nextAppt
	e.ModifiedAt = &now
	reason := in.Reason
	e.ModifiedReason = &reason

	if err := s.entries.Update(ctx, e, prevVersion, rev); err != nil {
		return nil, err
	}
	return e, nil
}

// DeleteEntry soft-deletes the entry. The entry stays in the collection and
// in every read that does not explicitly filter deleted entries; a second
// delete on the same entry fails, it does not silently succeed.
func (s *Service) DeleteEntry(ctx context.Context, patientID, entryID uuid.UUID, in DeleteEntryInput) error {
	if err := validateReason(in.Reason); err != nil {
		return err
	}

	e, err := s.getPatientEntry(ctx, patientID, entryID)
	if err != nil {
		return err
	}
	if e.IsDeleted {
		return ErrEntryDeleted
	}

	now := s.now()
	rev := snapshotRevision(e, RevisionDelete, in.Reason, now)

	prevVersion := e.Version
	e.IsDeleted = true
	e.DeletedAt = &now
	reason := in.Reason
	e.DeleteReason = &reason

	return s.entries.Update(ctx, e, prevVersion, rev)
}

func (s *Service) GetEntry(ctx context.Context, patientID, entryID uuid.UUID) (*Entry, error) {
	return s.getPatientEntry(ctx, patientID, entryID)
}

// ListEntries returns every entry for the patient, deleted ones included,
// newest visit first. Order is re-derived by sort, not storage position.
func (s *Service) ListEntries(ctx context.Context, patientID uuid.UUID) ([]*Entry, error) {
	if err := s.checkPatient(ctx, patientID); err != nil {
		return nil, err
	}
	items, err := s.entries.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].Date.Equal(items[j].Date) {
			return items[i].Date.After(items[j].Date)
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

// ListRevisions returns the entry's full edit/delete history, oldest first.
func (s *Service) ListRevisions(ctx context.Context, patientID, entryID uuid.UUID) ([]*Revision, error) {
	if _, err := s.getPatientEntry(ctx, patientID, entryID); err != nil {
		return nil, err
	}
	revs, err := s.revisions.ListByEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(revs, func(i, j int) bool {
		return revs[i].RecordedAt.Before(revs[j].RecordedAt)
	})
	return revs, nil
}

func (s *Service) checkPatient(ctx context.Context, patientID uuid.UUID) error {
	ok, err := s.directory.Exists(ctx, patientID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPatientNotFound
	}
	return nil
}

func (s *Service) getPatientEntry(ctx context.Context, patientID, entryID uuid.UUID) (*Entry, error) {
	if err := s.checkPatient(ctx, patientID); err != nil {
		return nil, err
	}
	e, err := s.entries.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if e.PatientID != patientID {
		return nil, ErrEntryNotFound
	}
	return e, nil
}

func snapshotRevision(e *Entry, kind RevisionKind, reason string, at time.Time) *Revision {
	return &Revision{
		ID:              uuid.New(),
		EntryID:         e.ID,
		Kind:            kind,
		Reason:          reason,
		RecordedAt:      at,
		Content:         e.Content,
		TherapyMethods:  append([]string(nil), e.TherapyMethods...),
		NextAppointment: e.NextAppointment,
	}
}

func validateReason(reason string) error {
	if utf8.RuneCountInString(reason) < MinReasonLength {
		return &ValidationError{Field: "reason", Message: "reason must be at least 10 characters"}
	}
	return nil
}

func parseDate(field, v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, &ValidationError{Field: field, Message: "must be a valid date in YYYY-MM-DD format"}
	}
	return t, nil
}

func parseOptionalDate(field, v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := parseDate(field, v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func normalizeMethods(methods []string) []string {
	if methods == nil {
		return []string{}
	}
	return append([]string(nil), methods...)
}
