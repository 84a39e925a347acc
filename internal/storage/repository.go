package storage

import (
	"context"
	"time"

	"job104-crawler/internal/scraper"
)

// Run is one crawl: its search filter and every record it produced, in order.
type Run struct {
	Keyword   string
	Area      string
	FetchedAt time.Time
	Records   []scraper.JobRecord
}

// Repository archives crawl runs. Records are stored as-is; duplicates across
// or within runs are kept.
type Repository interface {
	// SaveRun stores the run and its records in one transaction and returns the run ID.
	SaveRun(ctx context.Context, run *Run) (int64, error)

	// CountRecords returns how many records are stored for a run.
	CountRecords(ctx context.Context, runID int64) (int, error)

	Close() error
}
