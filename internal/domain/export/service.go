package export

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/karte/emr/internal/domain/chart"
	"github.com/karte/emr/internal/domain/patient"
	"github.com/karte/emr/pkg/treatment"
)

// Service assembles export documents. It reads through the same repositories
// the chart store writes, so an export always reflects committed state.
type Service struct {
	patients patient.Repository
	entries  chart.EntryRepository
	now      func() time.Time
}

func NewService(patients patient.Repository, entries chart.EntryRepository) *Service {
	return &Service{patients: patients, entries: entries, now: time.Now}
}

func (s *Service) BuildDocument(ctx context.Context, patientID uuid.UUID) (*Document, error) {
	p, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	entries, err := s.entries.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	// Chronological order reads naturally in a chart printout.
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.Before(entries[j].Date)
		}
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})

	records := make([]Record, 0, len(entries))
	for _, e := range entries {
		records = append(records, Record{
			Entry:   e,
			Elapsed: treatment.Elapsed(p.FirstVisitDate, e.Date),
		})
	}
	return &Document{Patient: p, GeneratedAt: s.now(), Records: records}, nil
}
