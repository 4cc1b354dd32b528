package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/verte-zerg/launchdash/internal/model"
)

func createDB(t *testing.T, stmts ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "launches.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
	return path
}

func TestListLaunches(t *testing.T) {
	path := createDB(t,
		`CREATE TABLE launches (launch_site TEXT, payload_mass_kg REAL, class INTEGER, booster_version_category TEXT, flight_number INTEGER)`,
		`INSERT INTO launches VALUES ('A', 500, 1, 'v1.0', 1)`,
		`INSERT INTO launches VALUES ('A', 900, 0, 'v1.1', 2)`,
		`INSERT INTO launches VALUES ('B', 300, 1, 'FT', 3)`,
	)
	st, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	records, err := st.ListLaunches(context.Background())
	if err != nil {
		t.Fatalf("list launches: %v", err)
	}
	want := []model.Record{
		{Site: "A", PayloadMass: 500, Success: true, BoosterCategory: "v1.0"},
		{Site: "A", PayloadMass: 900, Success: false, BoosterCategory: "v1.1"},
		{Site: "B", PayloadMass: 300, Success: true, BoosterCategory: "FT"},
	}
	if len(records) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(records))
	}
	for i := range want {
		if records[i] != want[i] {
			t.Fatalf("record %d: expected %+v, got %+v", i, want[i], records[i])
		}
	}
}

func TestListLaunchesMissingColumn(t *testing.T) {
	path := createDB(t,
		`CREATE TABLE launches (launch_site TEXT, payload_mass_kg REAL, class INTEGER)`,
	)
	st, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	_, err = st.ListLaunches(context.Background())
	var colErr *MissingColumnError
	if !errors.As(err, &colErr) {
		t.Fatalf("expected MissingColumnError, got %v", err)
	}
	if colErr.Column != ColumnBooster {
		t.Fatalf("expected missing %q, got %q", ColumnBooster, colErr.Column)
	}
}

func TestListLaunchesMissingTable(t *testing.T) {
	path := createDB(t, `CREATE TABLE other (id INTEGER)`)
	st, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	if _, err := st.ListLaunches(context.Background()); !errors.Is(err, ErrMissingTable) {
		t.Fatalf("expected ErrMissingTable, got %v", err)
	}
}

func TestListLaunchesRejectsBadClass(t *testing.T) {
	path := createDB(t,
		`CREATE TABLE launches (launch_site TEXT, payload_mass_kg REAL, class INTEGER, booster_version_category TEXT)`,
		`INSERT INTO launches VALUES ('A', 500, 2, 'v1.0')`,
	)
	st, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	if _, err := st.ListLaunches(context.Background()); err == nil {
		t.Fatalf("expected error for class 2")
	}
}

func TestOpenMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.db")
	if _, err := Open(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("open must not create the database file")
	}
}

func TestListLaunchesRejectsInfinitePayload(t *testing.T) {
	path := createDB(t,
		`CREATE TABLE launches (launch_site TEXT, payload_mass_kg REAL, class INTEGER, booster_version_category TEXT)`,
		`INSERT INTO launches VALUES ('A', 500, 1, 'v1.0')`,
		`INSERT INTO launches VALUES ('A', 9e999, 0, 'FT')`,
	)
	st, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	if _, err := st.ListLaunches(context.Background()); err == nil {
		t.Fatalf("expected error for infinite payload")
	}
}

func TestOpenIsReadOnly(t *testing.T) {
	path := createDB(t,
		`CREATE TABLE launches (launch_site TEXT, payload_mass_kg REAL, class INTEGER, booster_version_category TEXT)`,
		`INSERT INTO launches VALUES ('A', 500, 1, 'v1.0')`,
	)
	st, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	if _, err := st.db.Exec(`INSERT INTO launches VALUES ('B', 300, 0, 'FT')`); err == nil {
		t.Fatalf("expected write to a read-only database to fail")
	}
	records, err := st.ListLaunches(context.Background())
	if err != nil {
		t.Fatalf("list launches: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
}
