package mssql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/microsoft/go-mssqldb"

	"job104-crawler/internal/checksum"
	"job104-crawler/internal/observability"
	"job104-crawler/internal/storage"
)

const schema = `
IF OBJECT_ID(N'TblCrawlRuns', N'U') IS NULL
CREATE TABLE TblCrawlRuns (
	[UID]       BIGINT IDENTITY(1,1) PRIMARY KEY,
	[Keyword]   NVARCHAR(200) NOT NULL,
	[Area]      NVARCHAR(1000) NOT NULL,
	[FetchedAt] DATETIME2 NOT NULL
);
IF OBJECT_ID(N'TblJobRecords', N'U') IS NULL
CREATE TABLE TblJobRecords (
	[UID]        BIGINT IDENTITY(1,1) PRIMARY KEY,
	[Run_UID]    BIGINT NOT NULL REFERENCES TblCrawlRuns([UID]),
	[Seq]        INT NOT NULL,
	[Title]      NVARCHAR(500) NOT NULL,
	[Link]       NVARCHAR(1000) NOT NULL,
	[Experience] NVARCHAR(200) NOT NULL,
	[Company]    NVARCHAR(500) NOT NULL,
	[Location]   NVARCHAR(200) NOT NULL,
	[SalaryText] NVARCHAR(200) NOT NULL,
	[PayBasis]   NVARCHAR(10) NOT NULL,
	[SalaryLow]  INT NOT NULL,
	[SalaryHigh] INT NOT NULL,
	[CheckSum]   CHAR(64) NOT NULL
);
`

type Repository struct {
	db             *sql.DB
	commandTimeout time.Duration
	logger         *observability.Logger
}

func NewRepository(dsn string, commandTimeout time.Duration, logger *observability.Logger) (*Repository, error) {
	db, err := sql.Open("sqlserver", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

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

// SaveRun inserts the run header and its records inside one transaction.
func (r *Repository) SaveRun(ctx context.Context, run *storage.Run) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.commandTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var runID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO TblCrawlRuns ([Keyword], [Area], [FetchedAt])
		OUTPUT INSERTED.[UID]
		VALUES (@Keyword, @Area, @FetchedAt)`,
		sql.Named("Keyword", run.Keyword),
		sql.Named("Area", run.Area),
		sql.Named("FetchedAt", run.FetchedAt.UTC()),
	).Scan(&runID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO TblJobRecords
			([Run_UID], [Seq], [Title], [Link], [Experience], [Company], [Location], [SalaryText], [PayBasis], [SalaryLow], [SalaryHigh], [CheckSum])
		VALUES (@RunUID, @Seq, @Title, @Link, @Experience, @Company, @Location, @SalaryText, @PayBasis, @SalaryLow, @SalaryHigh, @CheckSum)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			r.logger.Error("Failed to close statement", "error", err.Error())
		}
	}()

	for i, rec := range run.Records {
		_, err := stmt.ExecContext(ctx,
			sql.Named("RunUID", runID),
			sql.Named("Seq", i),
			sql.Named("Title", rec.Title),
			sql.Named("Link", rec.Link),
			sql.Named("Experience", rec.Experience),
			sql.Named("Company", rec.Company),
			sql.Named("Location", rec.Location),
			sql.Named("SalaryText", rec.SalaryText),
			sql.Named("PayBasis", rec.PayBasis),
			sql.Named("SalaryLow", rec.SalaryLow),
			sql.Named("SalaryHigh", rec.SalaryHigh),
			sql.Named("CheckSum", checksum.RecordHash(rec)),
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}

	r.logger.Info("Run archived", "driver", "mssql", "run_id", runID, "records", len(run.Records))
	return runID, nil
}

func (r *Repository) CountRecords(ctx context.Context, runID int64) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, r.commandTimeout)
	defer cancel()

	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM TblJobRecords WHERE [Run_UID] = @RunUID`,
		sql.Named("RunUID", runID),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to query database: %w", err)
	}
	return count, nil
}

// Close releases the connection pool.
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

var _ storage.Repository = (*Repository)(nil)
