package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mlktrr/fokus/internal/workspace"
)

func buildWorkspace(t *testing.T) *workspace.Workspace {
	t.Helper()
	ws := workspace.New()
	g := ws.AddGoal("Work")
	p := ws.AddProject(g.ID, "Fokus")

	start := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	ws.AppendSession(workspace.SessionRecord{
		ID:              "s1",
		SessionType:     workspace.ModeFocus,
		StartTime:       start,
		EndTime:         start.Add(25 * time.Minute),
		DurationSeconds: 1500,
		Completed:       true,
		Context:         &workspace.ContextRef{GoalID: g.ID, ProjectID: p.ID},
		Note:            "proposal draft",
	})
	ws.AppendSession(workspace.SessionRecord{
		ID:              "s2",
		SessionType:     workspace.ModeShortBreak,
		StartTime:       start.Add(25 * time.Minute),
		EndTime:         start.Add(30 * time.Minute),
		DurationSeconds: 300,
		Completed:       true,
		Context:         &workspace.ContextRef{ProjectID: "deleted"},
	})
	return ws
}

// ============================================================
// JSON
// ============================================================

func TestJSONRoundTrip(t *testing.T) {
	ws := buildWorkspace(t)
	ws.SetReview("2026-W23", workspace.WeekReview{Reflection: "good week"})
	path := filepath.Join(t.TempDir(), "export.json")

	if err := ToJSON(ws, path); err != nil {
		t.Fatalf("export: %v", err)
	}

	got, err := FromJSON(path)
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	if got.Version != workspace.CurrentVersion {
		t.Fatalf("version %d", got.Version)
	}
	if len(got.Sessions) != 2 || got.Sessions[0].ID != "s1" {
		t.Fatalf("sessions lost: %+v", got.Sessions)
	}
	if got.Sessions[0].Note != "proposal draft" {
		t.Fatalf("note lost: %q", got.Sessions[0].Note)
	}
	if got.Reviews["2026-W23"].Reflection != "good week" {
		t.Fatal("review lost")
	}
	if got.ProjectByID(ws.Projects[0].ID) == nil {
		t.Fatal("hierarchy lost")
	}
}

func TestFromJSONMissingFile(t *testing.T) {
	if _, err := FromJSON(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFromJSONRunsMigration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	doc := `{"version":1,"tasks":[{"id":"t1","name":"Old task"}],"sessions":[]}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := FromJSON(path)
	if err != nil {
		t.Fatalf("import v1: %v", err)
	}
	if got.ProjectByID("t1") == nil {
		t.Fatal("v1 import should lift tasks to projects")
	}
}

// ============================================================
// CSV
// ============================================================

func TestSessionsToCSV(t *testing.T) {
	ws := buildWorkspace(t)
	path := filepath.Join(t.TempDir(), "sessions.csv")

	if err := SessionsToCSV(ws, path); err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][7] != "Goal" {
		t.Fatalf("header mismatch: %v", rows[0])
	}

	first := rows[1]
	if first[0] != "s1" || first[1] != "focus" || first[4] != "1500" {
		t.Fatalf("row mismatch: %v", first)
	}
	if first[5] != "00:25:00" {
		t.Fatalf("duration format: %q", first[5])
	}
	if first[7] != "Work" || first[8] != "Fokus" {
		t.Fatalf("context not resolved: %v", first)
	}
	if first[10] != "proposal draft" {
		t.Fatalf("note column: %q", first[10])
	}

	second := rows[2]
	if second[8] != "Unknown" {
		t.Fatalf("dangling project should render Unknown, got %q", second[8])
	}
	if second[7] != "" {
		t.Fatalf("absent goal id should render empty, got %q", second[7])
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		secs int
		want string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{1500, "00:25:00"},
		{3661, "01:01:01"},
	}
	for _, tc := range cases {
		if got := formatDuration(tc.secs); got != tc.want {
			t.Fatalf("formatDuration(%d) = %q, want %q", tc.secs, got, tc.want)
		}
	}
}
