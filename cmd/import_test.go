package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/styx-analyse/styx-session/testutil"
)

func TestImportCommand_CSV(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	dataDir := filepath.Join(dir, "data")
	csv := testutil.WriteFile(t, dir, "ride.csv", testutil.RecorderCSV)

	out, err := runCLI(t, dataDir, "import", csv)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if !strings.Contains(out, recorderID) {
		t.Errorf("output should name the session id, got:\n%s", out)
	}
	if !testutil.FileExists(filepath.Join(dataDir, "sessions", recorderID)) {
		t.Error("session table was not written")
	}

	out, err = runCLI(t, dataDir, "import", csv)
	if err != nil {
		t.Fatalf("second import failed: %v", err)
	}
	if !strings.Contains(out, "already imported") {
		t.Errorf("second import should be skipped, got:\n%s", out)
	}
}

func TestImportCommand_SQLite(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	dataDir := filepath.Join(dir, "data")
	dbPath := filepath.Join(dir, "dump.db")
	testutil.CreateSQLiteFixture(t, dbPath)

	out, err := runCLI(t, dataDir, "import", dbPath)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	const want = "session_2024-05-02_10-15-00.csv"
	if !strings.Contains(out, want) {
		t.Errorf("output should name %s, got:\n%s", want, out)
	}
}

func TestImportCommand_Failures(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	good := testutil.WriteFile(t, dir, "ride.csv", testutil.RecorderCSV)
	missing := filepath.Join(dir, "missing.csv")

	_, err := runCLI(t, filepath.Join(dir, "data"), "import", good, missing)
	if err == nil {
		t.Fatal("expected an error when one file fails")
	}
	if !strings.Contains(err.Error(), "1 of 2") {
		t.Errorf("error = %v, want a count of failed imports", err)
	}
	if !testutil.FileExists(filepath.Join(dir, "data", "sessions", recorderID)) {
		t.Error("the readable file should still be imported")
	}
}

func TestImportCommand_RequiresFile(t *testing.T) {
	if _, err := runCLI(t, testutil.CreateTempDir(t), "import"); err == nil {
		t.Error("expected an error without arguments")
	}
}

func TestIsSQLiteFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"ride.db", true},
		{"ride.SQLite", true},
		{"dir/ride.sqlite3", true},
		{"ride.csv", false},
		{"ride", false},
	}
	for _, tt := range tests {
		if got := isSQLiteFile(tt.path); got != tt.want {
			t.Errorf("isSQLiteFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
