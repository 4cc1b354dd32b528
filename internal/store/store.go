// Package store reads launch records from a SQLite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/verte-zerg/launchdash/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// LaunchesTable is the table holding launch records.
const LaunchesTable = "launches"

// Column names of the launches table.
const (
	ColumnSite    = "launch_site"
	ColumnPayload = "payload_mass_kg"
	ColumnClass   = "class"
	ColumnBooster = "booster_version_category"
)

// RequiredColumns lists the columns the launches table must provide.
var RequiredColumns = []string{ColumnSite, ColumnPayload, ColumnClass, ColumnBooster}

// ErrMissingTable is returned when the database has no launches table.
var ErrMissingTable = errors.New("launches table not found")

// MissingColumnError names a required column absent from the launches table.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("launches table is missing column %q", e.Column)
}

// Store wraps read-only SQLite access to launch records.
type Store struct {
	db *sql.DB
}

// Open opens an existing SQLite database in read-only mode. A missing file is
// reported as os.ErrNotExist rather than creating an empty database.
func Open(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", readOnlyDSN(path))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on ping failure.
			_ = cerr
		}
		return nil, err
	}
	return &Store{db: db}, nil
}

func readOnlyDSN(path string) string {
	return "file:" + path + "?mode=ro"
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// CheckSchema verifies the launches table exists with every required column.
func (s *Store) CheckSchema(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", LaunchesTable))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	present := map[string]struct{}{}
	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return err
		}
		present[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(present) == 0 {
		return ErrMissingTable
	}
	for _, col := range RequiredColumns {
		if _, ok := present[col]; !ok {
			return &MissingColumnError{Column: col}
		}
	}
	return nil
}

// ListLaunches returns every launch record in insertion order.
func (s *Store) ListLaunches(ctx context.Context) ([]model.Record, error) {
	if err := s.CheckSchema(ctx); err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s ORDER BY rowid ASC`,
		ColumnSite, ColumnPayload, ColumnClass, ColumnBooster, LaunchesTable)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var records []model.Record
	for rows.Next() {
		var (
			rec   model.Record
			class int64
		)
		if err := rows.Scan(&rec.Site, &rec.PayloadMass, &class, &rec.BoosterCategory); err != nil {
			return nil, err
		}
		if !model.IsFinite(rec.PayloadMass) {
			return nil, fmt.Errorf("row %d: %s must be finite, got %v", len(records)+1, ColumnPayload, rec.PayloadMass)
		}
		switch class {
		case 0:
		case 1:
			rec.Success = true
		default:
			return nil, fmt.Errorf("row %d: class must be 0 or 1, got %d", len(records)+1, class)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
