package audit

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/karte/emr/internal/domain/chart"
	"github.com/karte/emr/internal/domain/patient"
)

// Service assembles patient records from the underlying stores and projects
// them into the modification/deletion log.
type Service struct {
	patients patient.Repository
	entries  chart.EntryRepository
}

func NewService(patients patient.Repository, entries chart.EntryRepository) *Service {
	return &Service{patients: patients, entries: entries}
}

func (s *Service) ModificationLog(ctx context.Context, f Filter) ([]LogEntry, []Warning, error) {
	pts, err := s.patients.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list patients: %w", err)
	}

	records := make([]PatientRecord, 0, len(pts))
	var warnings []Warning
	for _, p := range pts {
		entries, err := s.entries.ListByPatient(ctx, p.ID)
		if err != nil {
			// One unreadable chart must not take down the whole listing.
			log.Warn().Err(err).Str("patient_id", p.ID.String()).
				Msg("skipping patient in modification log")
			warnings = append(warnings, Warning{
				PatientID: p.ID,
				Message:   "chart entries could not be loaded",
			})
			continue
		}
		records = append(records, PatientRecord{Patient: p, Entries: entries})
	}

	rows, projWarnings := BuildLog(records, f)
	for _, w := range projWarnings {
		log.Warn().
			Str("patient_id", w.PatientID.String()).
			Str("entry_id", w.EntryID.String()).
			Msg(w.Message)
	}
	return rows, append(warnings, projWarnings...), nil
}
