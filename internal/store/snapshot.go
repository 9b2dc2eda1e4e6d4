// Package store persists the accepted set between engine runs. The dedup
// core itself is persistence-free; this is the surrounding application's
// snapshot of the working set, replaced wholesale after every cycle.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"deskscan-engine/internal/domain"
)

func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	// pos records insertion order; the accepted set is an ordered sequence
	// and first-seen-survives depends on that order surviving restarts.
	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS accepted_jobs (
  pos INTEGER PRIMARY KEY,
  title TEXT NOT NULL,
  company TEXT NOT NULL,
  location TEXT NOT NULL,
  work_mode TEXT NOT NULL,
  experience TEXT NOT NULL,
  salary TEXT NOT NULL,
  source TEXT NOT NULL,
  url TEXT NOT NULL DEFAULT '',
  date_posted TEXT NOT NULL,
  scraped_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_accepted_jobs_source
ON accepted_jobs(source);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}

	return tx.Commit()
}

// ReplaceSnapshot swaps the stored set for records, preserving slice order.
// Done in one transaction so a crash never leaves a half-written snapshot.
func ReplaceSnapshot(ctx context.Context, db *sql.DB, records []domain.JobRecord) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM accepted_jobs;`); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO accepted_jobs (pos, title, company, location, work_mode, experience, salary, source, url, date_posted, scraped_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?);`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.ExecContext(ctx, i,
			r.Title, r.Company, r.Location, r.WorkMode,
			r.Experience, r.Salary, r.Source, r.URL,
			r.DatePosted, r.ScrapedAt,
		); err != nil {
			return fmt.Errorf("insert snapshot row %d: %w", i, err)
		}
	}

	return tx.Commit()
}

func LoadSnapshot(ctx context.Context, db *sql.DB) ([]domain.JobRecord, error) {
	rows, err := db.QueryContext(ctx, `
SELECT title, company, location, work_mode, experience, salary, source, url, date_posted, scraped_at
FROM accepted_jobs
ORDER BY pos;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.JobRecord
	for rows.Next() {
		var r domain.JobRecord
		if err := rows.Scan(
			&r.Title, &r.Company, &r.Location, &r.WorkMode,
			&r.Experience, &r.Salary, &r.Source, &r.URL,
			&r.DatePosted, &r.ScrapedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func ClearSnapshot(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `DELETE FROM accepted_jobs;`)
	return err
}
