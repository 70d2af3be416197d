package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/styx-analyse/styx-session/testutil"
)

func TestInspectCommand_CSV(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	csv := testutil.WriteFile(t, dir, "ride.csv", testutil.RecorderCSV)

	out, err := runCLI(t, dir, "inspect", csv, "--format", "json")
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}

	var report FileInspection
	testutil.JSONUnmarshal(t, []byte(out), &report)

	if report.Rows != 6 {
		t.Errorf("Rows = %d, want 6", report.Rows)
	}
	if report.DateCol != "Date" || report.TimeCol != "Heure" {
		t.Errorf("stamp columns = %q/%q, want Date/Heure", report.DateCol, report.TimeCol)
	}
	if report.SessionID != recorderID {
		t.Errorf("SessionID = %q, want %q", report.SessionID, recorderID)
	}

	byName := make(map[string]ColumnInspection)
	for _, c := range report.Columns {
		byName[c.Name] = c
	}
	if c := byName["Vitesse"]; !c.Known || c.Unit != "km/h" || c.Present != 6 {
		t.Errorf("Vitesse = %+v, want known km/h with 6 values", c)
	}
	if c := byName["Note"]; c.Known || c.Present != 2 {
		t.Errorf("Note = %+v, want unknown with 2 values", c)
	}
}

func TestInspectCommand_SQLite(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	dbPath := filepath.Join(dir, "dump.db")
	testutil.CreateSQLiteFixture(t, dbPath)

	out, err := runCLI(t, dir, "inspect", dbPath)
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	for _, want := range []string{"Tables: data", "Rows: 3", "session_2024-05-02_10-15-00.csv"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if _, err := runCLI(t, dir, "inspect", dbPath, "--sqlite-table", "missing"); err == nil {
		t.Error("expected an error for a missing table")
	}
}

func TestInspectCommand_NoTimestamps(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	csv := testutil.WriteFile(t, dir, "plain.csv", testutil.ExampleCSV)

	out, err := runCLI(t, dir, "inspect", csv)
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	if !strings.Contains(out, "No date/time columns") {
		t.Errorf("expected a warning about timestamps, got:\n%s", out)
	}
}
