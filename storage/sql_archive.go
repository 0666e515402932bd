package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"inquiry-desk/models"
	"inquiry-desk/utils"
)

// ErrUnknownArchiveDriver is returned for an ARCHIVE_DRIVER other than
// postgres, pgx or sqlite.
var ErrUnknownArchiveDriver = errors.New("unknown archive driver")

// SQLArchive stores completed inquiries in a SQL database. The same schema
// serves PostgreSQL (through lib/pq or pgx) and SQLite.
type SQLArchive struct {
	db     *sql.DB
	driver string
	logger *utils.Logger
}

// NewSQLArchive opens a connection, waits for the database to answer and
// runs schema migrations.
func NewSQLArchive(ctx context.Context, driver, dsn string, retry *utils.RetryConfig, logger *utils.Logger) (*SQLArchive, error) {
	switch driver {
	case "postgres", "pgx":
	case "sqlite":
		if dsn != ":memory:" && !strings.HasPrefix(dsn, "file:") {
			if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
				return nil, fmt.Errorf("archive: create sqlite dir: %w", err)
			}
		}
	default:
		return nil, fmt.Errorf("archive: %q: %w", driver, ErrUnknownArchiveDriver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("archive: open: %w", err)
	}
	if driver == "sqlite" {
		db.SetMaxOpenConns(1)
	}

	if err := retry.Do(ctx, "archive ping", db.PingContext); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("archive: ping: %w", err)
	}

	a := &SQLArchive{db: db, driver: driver, logger: logger.With("archive")}
	if err := a.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("archive: migrate: %w", err)
	}
	return a, nil
}

func (a *SQLArchive) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS inquiries (
			id                 TEXT PRIMARY KEY,
			position           INTEGER NOT NULL,
			type               TEXT NOT NULL,
			country_name       TEXT NOT NULL DEFAULT '',
			home_budget        DOUBLE PRECISION,
			home_value         DOUBLE PRECISION,
			financing_advisory BOOLEAN,
			payload            TEXT NOT NULL,
			created_at         TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_inquiries_position ON inquiries(position)`,
		`CREATE INDEX IF NOT EXISTS idx_inquiries_type     ON inquiries(type)`,
		`CREATE INDEX IF NOT EXISTS idx_inquiries_country  ON inquiries(country_name)`,
	}
	for _, q := range stmts {
		if _, err := a.db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

// placeholder returns the n-th (1-based) bind parameter for the driver.
func (a *SQLArchive) placeholder(n int) string {
	if a.driver == "sqlite" {
		return "?"
	}
	return fmt.Sprintf("$%d", n)
}

// Write replaces the archived collection with inquiries, keeping their order.
func (a *SQLArchive) Write(ctx context.Context, inquiries []models.Inquiry) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("archive: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM inquiries"); err != nil {
		return fmt.Errorf("archive: clear: %w", err)
	}

	const batchSize = 50
	for i := 0; i < len(inquiries); i += batchSize {
		end := i + batchSize
		if end > len(inquiries) {
			end = len(inquiries)
		}
		if err := a.insertBatch(ctx, tx, i, inquiries[i:end]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("archive: commit: %w", err)
	}
	a.logger.Info("Archived %d inquiries", len(inquiries))
	return nil
}

func (a *SQLArchive) insertBatch(ctx context.Context, tx *sql.Tx, offset int, batch []models.Inquiry) error {
	const cols = 9
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]any, 0, len(batch)*cols)

	for idx, inq := range batch {
		payload, err := models.MarshalInquiry(inq)
		if err != nil {
			return fmt.Errorf("archive: encode: %w", err)
		}
		base := inq.Common()
		budget, value, advisory := priceColumns(inq)

		ph := make([]string, cols)
		for c := 0; c < cols; c++ {
			ph[c] = a.placeholder(idx*cols + c + 1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(ph, ",")+")")
		valueArgs = append(valueArgs,
			base.ID, offset+idx, string(base.Type), base.CountryName(),
			budget, value, advisory, string(payload), base.CreatedAt)
	}

	query := fmt.Sprintf(`
		INSERT INTO inquiries (id, position, type, country_name, home_budget, home_value, financing_advisory, payload, created_at)
		VALUES %s
		ON CONFLICT (id) DO NOTHING
	`, strings.Join(valueStrings, ","))

	if _, err := tx.ExecContext(ctx, query, valueArgs...); err != nil {
		return fmt.Errorf("archive: insert: %w", err)
	}
	return nil
}

func priceColumns(inq models.Inquiry) (budget, value sql.NullFloat64, advisory sql.NullBool) {
	switch v := inq.(type) {
	case models.RentInquiry:
		budget = nullFloat(v.HomeBudget)
	case models.BuyInquiry:
		budget = nullFloat(v.HomeBudget)
		if v.FinancingAdvisory != nil {
			advisory = sql.NullBool{Bool: *v.FinancingAdvisory, Valid: true}
		}
	case models.SellInquiry:
		value = nullFloat(v.HomeValue)
	}
	return budget, value, advisory
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

// FetchAll returns every archived inquiry in collection order.
func (a *SQLArchive) FetchAll(ctx context.Context) ([]models.Inquiry, error) {
	rows, err := a.db.QueryContext(ctx, `SELECT payload FROM inquiries ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("archive: fetch all: %w", err)
	}
	defer rows.Close()

	var inquiries []models.Inquiry
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("archive: scan row: %w", err)
		}
		inq, err := models.UnmarshalInquiry([]byte(payload))
		if err != nil {
			return nil, fmt.Errorf("archive: decode row: %w", err)
		}
		inquiries = append(inquiries, inq)
	}
	return inquiries, rows.Err()
}

// CountByType runs the per-type count in the database, for archives too large
// to load into memory.
func (a *SQLArchive) CountByType(ctx context.Context) (map[models.InquiryType]int, error) {
	rows, err := a.db.QueryContext(ctx, `SELECT type, COUNT(*) FROM inquiries GROUP BY type`)
	if err != nil {
		return nil, fmt.Errorf("archive: count by type: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.InquiryType]int)
	for rows.Next() {
		var t string
		var n int
		if err := rows.Scan(&t, &n); err != nil {
			return nil, fmt.Errorf("archive: scan count: %w", err)
		}
		counts[models.InquiryType(t)] = n
	}
	return counts, rows.Err()
}

func (a *SQLArchive) Close() error {
	return a.db.Close()
}
