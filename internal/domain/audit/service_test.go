package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/karte/emr/internal/domain/chart"
	"github.com/karte/emr/internal/domain/patient"
)

type stubPatients struct{ items []*patient.Patient }

func (s *stubPatients) Create(context.Context, *patient.Patient) error { return nil }

func (s *stubPatients) GetByID(_ context.Context, id uuid.UUID) (*patient.Patient, error) {
	for _, p := range s.items {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, patient.ErrNotFound
}

func (s *stubPatients) List(context.Context) ([]*patient.Patient, error) {
	return s.items, nil
}

// flakyEntries fails chart reads for one patient, standing in for a chart
// that has become unreadable.
type flakyEntries struct {
	chart.Store
	failFor uuid.UUID
}

func (f flakyEntries) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*chart.Entry, error) {
	if patientID == f.failFor {
		return nil, errors.New("relation unavailable")
	}
	return f.Store.ListByPatient(ctx, patientID)
}

func TestModificationLogDegradesToWarningOnUnreadableChart(t *testing.T) {
	healthy := &patient.Patient{ID: uuid.New(), Name: "山田太郎", NameKana: "ヤマダタロウ"}
	broken := &patient.Patient{ID: uuid.New(), Name: "佐藤花子", NameKana: "サトウハナコ"}

	store := chart.NewMemoryStore()
	modifiedAt := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	reason := "記載内容に誤りがあったため修正"
	if err := store.Create(context.Background(), &chart.Entry{
		ID:             uuid.New(),
		PatientID:      healthy.ID,
		Date:           time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Content:        "修正後の記載",
		CreatedAt:      time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC),
		ModifiedAt:     &modifiedAt,
		ModifiedReason: &reason,
		Version:        2,
	}); err != nil {
		t.Fatalf("seed entry: %v", err)
	}

	svc := NewService(
		&stubPatients{items: []*patient.Patient{healthy, broken}},
		flakyEntries{Store: store, failFor: broken.ID},
	)

	rows, warnings, err := svc.ModificationLog(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("one unreadable chart must not fail the listing: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected the healthy patient's edit row, got %d rows", len(rows))
	}
	if rows[0].PatientID != healthy.ID || rows[0].Type != EventEdit {
		t.Errorf("unexpected row %+v", rows[0])
	}
	if len(warnings) != 1 {
		t.Fatalf("expected one warning for the unreadable chart, got %d", len(warnings))
	}
	if warnings[0].PatientID != broken.ID {
		t.Errorf("warning must name the skipped patient, got %+v", warnings[0])
	}
	if warnings[0].Message != "chart entries could not be loaded" {
		t.Errorf("unexpected warning message %q", warnings[0].Message)
	}
}
