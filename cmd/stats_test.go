package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/styx-analyse/styx-session/internal"
	"github.com/styx-analyse/styx-session/testutil"
)

func TestStatsCommand(t *testing.T) {
	dataDir := importRecorder(t)

	out, err := runCLI(t, dataDir, "stats")
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if !strings.Contains(out, "Lifetime totals") {
		t.Errorf("unexpected output:\n%s", out)
	}

	out, err = runCLI(t, dataDir, "stats", "--format", "json")
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	var stats internal.AggregateStats
	testutil.JSONUnmarshal(t, []byte(out), &stats)
	if stats.TotalTrips != 1 {
		t.Errorf("TotalTrips = %d, want 1", stats.TotalTrips)
	}
	if stats.TotalDuration != 5 {
		t.Errorf("TotalDuration = %v, want 5", stats.TotalDuration)
	}
}

func TestStatsCommand_Recompute(t *testing.T) {
	dataDir := importRecorder(t)
	testutil.WriteFile(t, dataDir, "global_stats.json", `{"total_trips": 7, "total_distance": 99999}`)

	out, err := runCLI(t, dataDir, "stats", "--recompute", "--format", "json")
	if err != nil {
		t.Fatalf("stats --recompute failed: %v", err)
	}
	var stats internal.AggregateStats
	testutil.JSONUnmarshal(t, []byte(out), &stats)
	if stats.TotalTrips != 1 {
		t.Errorf("TotalTrips = %d, want 1 after recompute", stats.TotalTrips)
	}

	saved, err := internal.LoadStats(filepath.Join(dataDir, "global_stats.json"))
	if err != nil {
		t.Fatal(err)
	}
	if saved.Totals() != stats.Totals() {
		t.Errorf("saved totals %+v differ from printed %+v", saved.Totals(), stats.Totals())
	}
}

func TestStatsCommand_BadFormat(t *testing.T) {
	if _, err := runCLI(t, testutil.CreateTempDir(t), "stats", "--format", "xml"); err == nil {
		t.Error("expected an error for an unsupported format")
	}
}
