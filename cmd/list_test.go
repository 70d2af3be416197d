package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/styx-analyse/styx-session/internal"
	"github.com/styx-analyse/styx-session/testutil"
)

func TestListCommand_Empty(t *testing.T) {
	out, err := runCLI(t, testutil.CreateTempDir(t), "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, "No sessions found") {
		t.Errorf("expected the empty message, got:\n%s", out)
	}
}

func TestListCommand_All(t *testing.T) {
	dataDir := importRecorder(t)
	const unlisted = "session_2024-04-01_10-00-00.csv"
	testutil.WriteFile(t, filepath.Join(dataDir, "sessions"), unlisted, "Temps\n0\n")

	out, err := runCLI(t, dataDir, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, recorderID) {
		t.Errorf("list should show %s, got:\n%s", recorderID, out)
	}
	if strings.Contains(out, unlisted) {
		t.Errorf("list without --all should not show %s", unlisted)
	}

	out, err = runCLI(t, dataDir, "list", "--all")
	if err != nil {
		t.Fatalf("list --all failed: %v", err)
	}
	if !strings.Contains(out, unlisted) {
		t.Errorf("list --all should show %s, got:\n%s", unlisted, out)
	}
	if strings.Index(out, recorderID) > strings.Index(out, unlisted) {
		t.Error("recent sessions should come first")
	}
}

func TestDisplaySessions(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Fatal(err)
	}
	rows := []listRow{
		{entry: internal.RecentEntry{ID: recorderID, Distance: 2500, Duration: 725}, indexed: true},
		{entry: internal.RecentEntry{ID: "session_2024-04-01_10-00-00.csv"}},
	}
	comments := internal.Comments{recorderID: "Headwind"}

	var buf bytes.Buffer
	displaySessions(&buf, rows, comments, loc)
	out := buf.String()

	for _, want := range []string{recorderID, "2.50 km", "12m05s", "Headwind"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		s    float64
		want string
	}{
		{0, "0s"},
		{5, "5s"},
		{185, "3m05s"},
		{3725, "1h02m05s"},
		{59.6, "1m00s"},
	}
	for _, tt := range tests {
		if got := formatSeconds(tt.s); got != tt.want {
			t.Errorf("formatSeconds(%v) = %q, want %q", tt.s, got, tt.want)
		}
	}
}
