// Package history records recompute runs in a local SQLite database so
// score changes can be reviewed after the fact. Recording is best-effort:
// the scoring output never depends on it.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/winbio/vendorscore/internal/score"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	run_at       TEXT NOT NULL,
	as_of        TEXT NOT NULL,
	quantity     INTEGER NOT NULL,
	source       TEXT NOT NULL,
	row_count    INTEGER NOT NULL,
	scored_count INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS run_rows (
	run_id       INTEGER NOT NULL REFERENCES runs(id),
	product      TEXT NOT NULL,
	vendor_code  TEXT NOT NULL,
	price        REAL,
	terms_days   INTEGER,
	vendor_score REAL,
	total_cost   REAL,
	rank         INTEGER,
	rank_badge   TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS run_rows_run_id ON run_rows(run_id);
`

// Store is a SQLite-backed run archive.
type Store struct {
	db *sql.DB
}

// Run is the metadata of one recorded recompute pass.
type Run struct {
	ID       int64
	RunAt    time.Time
	AsOf     string
	Quantity int
	Source   string
	Rows     int
	Scored   int
}

// RunRow is one vendor result within a recorded run.
type RunRow struct {
	Product     string
	VendorCode  string
	Price       sql.NullFloat64
	TermsDays   sql.NullInt64
	VendorScore sql.NullFloat64
	TotalCost   sql.NullFloat64
	Rank        sql.NullInt64
	RankBadge   string
}

// Open opens (or creates) the history database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores one recompute pass and its per-row results, returning the
// new run ID.
func (s *Store) Record(asOf time.Time, quantity int, source string, rows []*score.VendorRow) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin history transaction: %w", err)
	}
	defer tx.Rollback()

	scored := 0
	for _, r := range rows {
		if r.Scored() {
			scored++
		}
	}

	res, err := tx.Exec(
		`INSERT INTO runs (run_at, as_of, quantity, source, row_count, scored_count) VALUES (?, ?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339),
		asOf.Format("2006-01-02"),
		quantity,
		source,
		len(rows),
		scored,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run id: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO run_rows (run_id, product, vendor_code, price, terms_days, vendor_score, total_cost, rank, rank_badge)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare row insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.Exec(
			runID,
			r.Product,
			r.VendorCode,
			nullFloat(r.Price),
			nullDays(r.TermsDays),
			nullFloat(r.VendorScore),
			nullFloat(r.TotalCost),
			nullRank(r.Rank),
			r.RankBadge,
		); err != nil {
			return 0, fmt.Errorf("failed to insert row for %s: %w", r.VendorCode, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit history transaction: %w", err)
	}
	return runID, nil
}

// Runs returns the most recent runs, newest first. limit <= 0 returns all.
func (s *Store) Runs(limit int) ([]Run, error) {
	query := `SELECT id, run_at, as_of, quantity, source, row_count, scored_count FROM runs ORDER BY id DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var runAt string
		if err := rows.Scan(&r.ID, &runAt, &r.AsOf, &r.Quantity, &r.Source, &r.Rows, &r.Scored); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.RunAt, _ = time.Parse(time.RFC3339, runAt)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunRows returns the per-vendor results of one run in recorded order.
func (s *Store) RunRows(runID int64) ([]RunRow, error) {
	rows, err := s.db.Query(
		`SELECT product, vendor_code, price, terms_days, vendor_score, total_cost, rank, rank_badge
		 FROM run_rows WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query run rows: %w", err)
	}
	defer rows.Close()

	var result []RunRow
	for rows.Next() {
		var r RunRow
		if err := rows.Scan(&r.Product, &r.VendorCode, &r.Price, &r.TermsDays,
			&r.VendorScore, &r.TotalCost, &r.Rank, &r.RankBadge); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

func nullFloat(a score.Amount) sql.NullFloat64 {
	return sql.NullFloat64{Float64: a.Value, Valid: a.Valid}
}

func nullDays(td score.TermDays) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(td.Days), Valid: td.Valid}
}

func nullRank(rank int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(rank), Valid: rank > 0}
}
