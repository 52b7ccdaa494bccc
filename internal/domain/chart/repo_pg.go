package chart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type entryRepoPG struct{ pool *pgxpool.Pool }

func NewEntryRepoPG(pool *pgxpool.Pool) EntryRepository { return &entryRepoPG{pool: pool} }

const entryCols = `id, patient_id, visit_date, content, therapy_methods, next_appointment,
	created_at, modified_at, modified_reason, is_deleted, deleted_at, delete_reason, version`

func scanEntry(row pgx.Row) (*Entry, error) {
	var e Entry
	err := row.Scan(&e.ID, &e.PatientID, &e.Date, &e.Content, &e.TherapyMethods, &e.NextAppointment,
		&e.CreatedAt, &e.ModifiedAt, &e.ModifiedReason, &e.IsDeleted, &e.DeletedAt, &e.DeleteReason, &e.Version)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	if e.TherapyMethods == nil {
		e.TherapyMethods = []string{}
	}
	return &e, nil
}

func (r *entryRepoPG) Create(ctx context.Context, e *Entry) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO chart_entry (id, patient_id, visit_date, content, therapy_methods,
			next_appointment, created_at, is_deleted, version)
		VALUES ($1,$2,$3,$4,$5,$6,$7,false,$8)`,
		e.ID, e.PatientID, e.Date, e.Content, e.TherapyMethods,
		e.NextAppointment, e.CreatedAt, e.Version)
	return err
}

func (r *entryRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Entry, error) {
	return scanEntry(r.pool.QueryRow(ctx, `SELECT `+entryCols+` FROM chart_entry WHERE id = $1`, id))
}

// Update writes the entry mutation and its revision inside one transaction,
// so a failed revision insert rolls the mutation back and the database never
// holds an edit or delete without its history row. The UPDATE is guarded by
// the version counter and the is_deleted flag: of two concurrent writers
// exactly one wins, the other gets ErrVersionConflict (or ErrEntryDeleted if
// the winner was a delete). created_at, id and patient_id are never written
// here.
func (r *entryRepoPG) Update(ctx context.Context, e *Entry, expectedVersion int, rev *Revision) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE chart_entry SET content=$2, therapy_methods=$3, next_appointment=$4,
			modified_at=$5, modified_reason=$6, is_deleted=$7, deleted_at=$8, delete_reason=$9,
			version = version + 1
		WHERE id = $1 AND version = $10 AND NOT is_deleted`,
		e.ID, e.Content, e.TherapyMethods, e.NextAppointment,
		e.ModifiedAt, e.ModifiedReason, e.IsDeleted, e.DeletedAt, e.DeleteReason,
		expectedVersion)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		// No row matched: distinguish missing, deleted and stale-version cases.
		cur, err := r.GetByID(ctx, e.ID)
		if err != nil {
			return err
		}
		if cur.IsDeleted {
			return ErrEntryDeleted
		}
		return ErrVersionConflict
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO chart_entry_revision (id, entry_id, kind, reason, recorded_at,
			content, therapy_methods, next_appointment)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		rev.ID, rev.EntryID, rev.Kind, rev.Reason, rev.RecordedAt,
		rev.Content, rev.TherapyMethods, rev.NextAppointment); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	e.Version = expectedVersion + 1
	return nil
}

func (r *entryRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Entry, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+entryCols+` FROM chart_entry WHERE patient_id = $1 ORDER BY visit_date DESC, created_at DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

type revisionRepoPG struct{ pool *pgxpool.Pool }

func NewRevisionRepoPG(pool *pgxpool.Pool) RevisionRepository { return &revisionRepoPG{pool: pool} }

const revisionCols = `id, entry_id, kind, reason, recorded_at, content, therapy_methods, next_appointment`

func (r *revisionRepoPG) ListByEntry(ctx context.Context, entryID uuid.UUID) ([]*Revision, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+revisionCols+` FROM chart_entry_revision WHERE entry_id = $1 ORDER BY recorded_at ASC`, entryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var revs []*Revision
	for rows.Next() {
		var rev Revision
		if err := rows.Scan(&rev.ID, &rev.EntryID, &rev.Kind, &rev.Reason, &rev.RecordedAt,
			&rev.Content, &rev.TherapyMethods, &rev.NextAppointment); err != nil {
			return nil, err
		}
		if rev.TherapyMethods == nil {
			rev.TherapyMethods = []string{}
		}
		revs = append(revs, &rev)
	}
	return revs, rows.Err()
}
