package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patient table. FirstVisitDate anchors every elapsed
// treatment computation for the patient's chart entries.
type Patient struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	NameKana       string    `db:"name_kana" json:"name_kana"`
	FirstVisitDate time.Time `db:"first_visit_date" json:"first_visit_date"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

type CreatePatientInput struct {
	Name           string `json:"name"`
	NameKana       string `json:"name_kana"`
	FirstVisitDate string `json:"first_visit_date"`
}
