package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrNotFound is returned when no record matches the given id.
var ErrNotFound = errors.New("job record not found")

// JobRecord is one persisted job listing. Field names match the original
// dataset wire format, including url_lowongan for the listing-specific URL.
type JobRecord struct {
	ID               uuid.UUID `json:"id"`
	URL              string    `json:"url"`
	JobTitle         string    `json:"job_title"`
	Company          string    `json:"company"`
	Location         string    `json:"location"`
	RequirementsText string    `json:"requirements_text"`
	LabelSkill       string    `json:"label_skill"`
	URLLowongan      string    `json:"url_lowongan"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// JobPatch is a partial update. Nil fields are left untouched; only title,
// company and skills are mutable after creation.
type JobPatch struct {
	JobTitle   *string
	Company    *string
	LabelSkill *string
}

// IsEmpty reports whether the patch carries no fields.
func (p JobPatch) IsEmpty() bool {
	return p.JobTitle == nil && p.Company == nil && p.LabelSkill == nil
}

const jobColumns = `id, url, job_title, company, location, requirements_text,
	       label_skill, url_lowongan, created_at, updated_at`

// InsertJobs inserts a batch of records inside a single transaction. Either
// all records are committed or none are; ids and timestamps are assigned by
// the store.
func (db *DB) InsertJobs(ctx context.Context, records []JobRecord) ([]JobRecord, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("insert batch is empty")
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	inserted := make([]JobRecord, 0, len(records))
	for _, r := range records {
		var row JobRecord
		err := tx.QueryRow(ctx,
			`INSERT INTO job_records (url, job_title, company, location, requirements_text, label_skill, url_lowongan)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 RETURNING `+jobColumns,
			r.URL, r.JobTitle, r.Company, r.Location, r.RequirementsText, r.LabelSkill, r.URLLowongan,
		).Scan(&row.ID, &row.URL, &row.JobTitle, &row.Company, &row.Location,
			&row.RequirementsText, &row.LabelSkill, &row.URLLowongan, &row.CreatedAt, &row.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to insert job record: %w", err)
		}
		inserted = append(inserted, row)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit insert batch: %w", err)
	}

	return inserted, nil
}

// ListJobs returns all records, most recently created first. A non-empty
// query filters by title, company or skills (case-insensitive substring).
func (db *DB) ListJobs(ctx context.Context, query string) ([]JobRecord, error) {
	sql := `SELECT ` + jobColumns + ` FROM job_records`
	var args []any
	if q := strings.TrimSpace(query); q != "" {
		sql += ` WHERE job_title ILIKE $1 OR company ILIKE $1 OR label_skill ILIKE $1`
		args = append(args, "%"+q+"%")
	}
	sql += ` ORDER BY created_at DESC`

	rows, err := db.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list job records: %w", err)
	}
	defer rows.Close()

	records := []JobRecord{}
	for rows.Next() {
		var r JobRecord
		if err := rows.Scan(&r.ID, &r.URL, &r.JobTitle, &r.Company, &r.Location,
			&r.RequirementsText, &r.LabelSkill, &r.URLLowongan, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read job records: %w", err)
	}

	return records, nil
}

// UpdateJob applies a partial update to the record with the given id and
// returns the updated row. Returns ErrNotFound when no record matches.
// Field validation (trimming, non-empty title/company) is the caller's job.
func (db *DB) UpdateJob(ctx context.Context, id uuid.UUID, patch JobPatch) (*JobRecord, error) {
	if patch.IsEmpty() {
		return nil, fmt.Errorf("patch contains no fields")
	}

	set := []string{"updated_at = NOW()"}
	args := []any{id}
	arg := 2
	if patch.JobTitle != nil {
		set = append(set, fmt.Sprintf("job_title = $%d", arg))
		args = append(args, *patch.JobTitle)
		arg++
	}
	if patch.Company != nil {
		set = append(set, fmt.Sprintf("company = $%d", arg))
		args = append(args, *patch.Company)
		arg++
	}
	if patch.LabelSkill != nil {
		set = append(set, fmt.Sprintf("label_skill = $%d", arg))
		args = append(args, *patch.LabelSkill)
	}

	var row JobRecord
	err := db.pool.QueryRow(ctx,
		`UPDATE job_records SET `+strings.Join(set, ", ")+` WHERE id = $1 RETURNING `+jobColumns,
		args...,
	).Scan(&row.ID, &row.URL, &row.JobTitle, &row.Company, &row.Location,
		&row.RequirementsText, &row.LabelSkill, &row.URLLowongan, &row.CreatedAt, &row.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update job record: %w", err)
	}

	return &row, nil
}

// DeleteJob removes the record with the given id. Returns ErrNotFound when no
// record matches.
func (db *DB) DeleteJob(ctx context.Context, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM job_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
