package patient

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
)

func TestCreatePatient(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	p, err := svc.CreatePatient(context.Background(), CreatePatientInput{
		Name:           "山田太郎",
		NameKana:       "ヤマダタロウ",
		FirstVisitDate: "2024-01-01",
	})
	if err != nil {
		t.Fatalf("CreatePatient: %v", err)
	}
	if p.ID == uuid.Nil {
		t.Error("expected a generated id")
	}
	if p.FirstVisitDate.Format("2006-01-02") != "2024-01-01" {
		t.Errorf("unexpected first visit date %v", p.FirstVisitDate)
	}

	got, err := svc.GetPatient(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("GetPatient: %v", err)
	}
	if got.Name != "山田太郎" {
		t.Errorf("unexpected name %q", got.Name)
	}
}

func TestCreatePatientValidation(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	if _, err := svc.CreatePatient(context.Background(), CreatePatientInput{Name: " ", FirstVisitDate: "2024-01-01"}); err == nil {
		t.Error("expected an error for a blank name")
	}
	if _, err := svc.CreatePatient(context.Background(), CreatePatientInput{Name: "山田太郎", FirstVisitDate: "01/01/2024"}); err == nil {
		t.Error("expected an error for a malformed date")
	}
}

func TestGetPatientNotFound(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	_, err := svc.GetPatient(context.Background(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestExists(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	p, err := svc.CreatePatient(context.Background(), CreatePatientInput{
		Name:           "佐藤花子",
		NameKana:       "サトウハナコ",
		FirstVisitDate: "2024-02-01",
	})
	if err != nil {
		t.Fatalf("CreatePatient: %v", err)
	}

	ok, err := svc.Exists(context.Background(), p.ID)
	if err != nil || !ok {
		t.Errorf("expected existing patient, got ok=%v err=%v", ok, err)
	}
	ok, err = svc.Exists(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Exists on unknown id must not error: %v", err)
	}
	if ok {
		t.Error("unknown id reported as existing")
	}
}

// wrappingRepo decorates lookup failures the way a storage layer adding
// query context would.
type wrappingRepo struct{ Repository }

func (r wrappingRepo) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, err := r.Repository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("query patient %s: %w", id, err)
	}
	return p, nil
}

func TestExistsMatchesWrappedNotFound(t *testing.T) {
	svc := NewService(wrappingRepo{NewMemoryRepo()})
	ok, err := svc.Exists(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("a wrapped not-found must not surface as an error: %v", err)
	}
	if ok {
		t.Error("unknown id reported as existing")
	}
}

func TestListPatientsSortedByKana(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	for _, in := range []CreatePatientInput{
		{Name: "山田太郎", NameKana: "ヤマダタロウ", FirstVisitDate: "2024-01-01"},
		{Name: "佐藤花子", NameKana: "サトウハナコ", FirstVisitDate: "2024-02-01"},
	} {
		if _, err := svc.CreatePatient(context.Background(), in); err != nil {
			t.Fatalf("CreatePatient: %v", err)
		}
	}

	items, err := svc.ListPatients(context.Background())
	if err != nil {
		t.Fatalf("ListPatients: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 patients, got %d", len(items))
	}
	if items[0].NameKana != "サトウハナコ" {
		t.Errorf("expected kana order, got %q first", items[0].NameKana)
	}
}
