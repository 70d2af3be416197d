package internal

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/styx-analyse/styx-session/testutil"
)

func TestReadRawTableFromDB(t *testing.T) {
	db := testutil.CreateTestDB(t)

	tbl, err := ReadRawTableFromDB(db, "")
	if err != nil {
		t.Fatalf("ReadRawTableFromDB() error = %v", err)
	}
	if tbl.Len() != len(testutil.RecorderRows) {
		t.Fatalf("Len() = %d, want %d", tbl.Len(), len(testutil.RecorderRows))
	}
	if diff := cmp.Diff(testutil.RecorderColumns, tbl.Header()); diff != "" {
		t.Errorf("Header() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{0, 9.5, 14}, tbl.Series(ColSpeed).Values); diff != "" {
		t.Errorf("speed mismatch (-want +got):\n%s", diff)
	}
	if clocks, _ := tbl.Text("Heure"); clocks[0] != "8150000" {
		t.Errorf("Heure[0] = %q", clocks[0])
	}
}

func TestReadRawTableFromDB_InvalidTable(t *testing.T) {
	db := testutil.CreateTestDB(t)
	for _, name := range []string{"data; DROP TABLE data", "missing"} {
		if _, err := ReadRawTableFromDB(db, name); err == nil {
			t.Errorf("ReadRawTableFromDB(%q) should fail", name)
		}
	}
}

func TestStore_ImportDatabase(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	dbPath := filepath.Join(dir, "recorder.db")
	testutil.CreateSQLiteFixture(t, dbPath)

	s := newTestStore(t)
	id, imported, err := s.ImportDatabase(dbPath, "data")
	if err != nil {
		t.Fatalf("ImportDatabase() error = %v", err)
	}
	if !imported || id != "session_2024-05-02_10-15-00.csv" {
		t.Errorf("ImportDatabase() = %q, %v", id, imported)
	}
	if s.Stats().TotalTrips != 1 {
		t.Errorf("TotalTrips = %d, want 1", s.Stats().TotalTrips)
	}

	_, _, err = s.ImportDatabase(filepath.Join(dir, "absent.db"), "data")
	var serr *StorageError
	if !errors.As(err, &serr) {
		t.Errorf("ImportDatabase() of a missing file error = %v, want *StorageError", err)
	}
}

func TestListTables(t *testing.T) {
	db := testutil.CreateTestDB(t)
	testutil.CreateRecorderTable(t, db, "ride_2")

	tables, err := ListTables(db)
	if err != nil {
		t.Fatalf("ListTables() error = %v", err)
	}
	if diff := cmp.Diff([]string{"data", "ride_2"}, tables); diff != "" {
		t.Errorf("ListTables() mismatch (-want +got):\n%s", diff)
	}
}
