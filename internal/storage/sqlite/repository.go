package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"job104-crawler/internal/checksum"
	"job104-crawler/internal/observability"
	"job104-crawler/internal/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS crawl_runs (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	keyword    TEXT NOT NULL,
	area       TEXT NOT NULL,
	fetched_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS job_records (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id      INTEGER NOT NULL REFERENCES crawl_runs(id),
	seq         INTEGER NOT NULL,
	title       TEXT NOT NULL,
	link        TEXT NOT NULL,
	experience  TEXT NOT NULL,
	company     TEXT NOT NULL,
	location    TEXT NOT NULL,
	salary_text TEXT NOT NULL,
	pay_basis   TEXT NOT NULL,
	salary_low  INTEGER NOT NULL,
	salary_high INTEGER NOT NULL,
	checksum    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_job_records_run ON job_records(run_id);
`

type Repository struct {
	db             *sql.DB
	commandTimeout time.Duration
	logger         *observability.Logger
}

// NewRepository opens (or creates) the database file at path and applies the schema.
func NewRepository(path string, commandTimeout time.Duration, logger *observability.Logger) (*Repository, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// sqlite wants a single writer
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Repository{
		db:             db,
		commandTimeout: commandTimeout,
		logger:         logger,
	}, nil
}

func (r *Repository) SaveRun(ctx context.Context, run *storage.Run) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.commandTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO crawl_runs (keyword, area, fetched_at) VALUES (?, ?, ?)`,
		run.Keyword, run.Area, run.FetchedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO job_records
			(run_id, seq, title, link, experience, company, location, salary_text, pay_basis, salary_low, salary_high, checksum)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			r.logger.Error("Failed to close statement", "error", err.Error())
		}
	}()

	for i, rec := range run.Records {
		if _, err := stmt.ExecContext(ctx,
			runID, i, rec.Title, rec.Link, rec.Experience, rec.Company, rec.Location,
			rec.SalaryText, rec.PayBasis, rec.SalaryLow, rec.SalaryHigh, checksum.RecordHash(rec),
		); err != nil {
			return 0, fmt.Errorf("failed to insert record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}

	r.logger.Info("Run archived", "driver", "sqlite", "run_id", runID, "records", len(run.Records))
	return runID, nil
}

func (r *Repository) CountRecords(ctx context.Context, runID int64) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, r.commandTimeout)
	defer cancel()

	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM job_records WHERE run_id = ?`, runID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to query database: %w", err)
	}
	return count, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

var _ storage.Repository = (*Repository)(nil)
