package patient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) CreatePatient(ctx context.Context, in CreatePatientInput) (*Patient, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	firstVisit, err := time.Parse("2006-01-02", in.FirstVisitDate)
	if err != nil {
		return nil, fmt.Errorf("first_visit_date must be a valid date in YYYY-MM-DD format")
	}
	p := &Patient{
		ID:             uuid.New(),
		Name:           in.Name,
		NameKana:       in.NameKana,
		FirstVisitDate: firstVisit,
		CreatedAt:      s.now(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context) ([]*Patient, error) {
	return s.repo.List(ctx)
}

// Exists satisfies the chart store's patient directory dependency.
func (s *Service) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
