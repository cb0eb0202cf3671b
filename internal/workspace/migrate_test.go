package workspace

import (
	"encoding/json"
	"errors"
	"testing"

	"pgregory.net/rapid"
)

func migrateJSON(t *testing.T, doc string) *Workspace {
	t.Helper()
	ws, err := MigrateJSON([]byte(doc))
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return ws
}

// ============================================================
// Version gate
// ============================================================

func TestMigrateNonObjectYieldsDefaults(t *testing.T) {
	for _, doc := range []string{`null`, `42`, `"workspace"`, `[1,2,3]`} {
		ws := migrateJSON(t, doc)
		if ws.Version != CurrentVersion {
			t.Fatalf("doc %s: version %d", doc, ws.Version)
		}
		if ws.Settings != DefaultSettings() {
			t.Fatalf("doc %s: settings not defaults", doc)
		}
	}
}

func TestMigrateMissingVersionYieldsDefaults(t *testing.T) {
	ws := migrateJSON(t, `{"settings":{"focusMinutes":50},"sessions":[]}`)
	if ws.Settings.FocusMinutes != DefaultFocusMinutes {
		t.Fatal("versionless payload should be discarded, not partially read")
	}
	if len(ws.Sessions) != 0 || len(ws.Goals) != 0 {
		t.Fatal("versionless payload should yield an empty workspace")
	}
}

func TestMigrateUnsupportedVersion(t *testing.T) {
	for _, doc := range []string{`{"version":99}`, `{"version":0}`, `{"version":"banana"}`} {
		_, err := MigrateJSON([]byte(doc))
		if !errors.Is(err, ErrUnsupportedVersion) {
			t.Fatalf("doc %s: expected ErrUnsupportedVersion, got %v", doc, err)
		}
	}
}

func TestMigrateUndecodableJSON(t *testing.T) {
	_, err := MigrateJSON([]byte(`{"version":`))
	if err == nil {
		t.Fatal("expected decode error")
	}
	if errors.Is(err, ErrUnsupportedVersion) {
		t.Fatal("decode failure must not report a version problem")
	}
}

// ============================================================
// v1 -> current
// ============================================================

const v1Payload = `{
	"version": 1,
	"settings": {"focusMinutes": 30, "soundEnabled": false},
	"tasks": [
		{"id": "t1", "name": "Write report", "pomodoros": 3},
		{"id": "t2", "name": "Review PRs", "archived": true}
	],
	"sessions": [
		{"id": "s1", "sessionType": "focus", "taskId": "t1",
		 "startTime": "2026-03-01T09:00:00Z", "endTime": "2026-03-01T09:30:00Z",
		 "durationSeconds": 1800, "completed": true},
		{"id": "s2", "sessionType": "short_break",
		 "startTime": "2026-03-01T09:30:00Z", "endTime": "2026-03-01T09:35:00Z",
		 "durationSeconds": 300, "completed": true},
		{"id": "s3", "sessionType": "focus", "taskId": "t1",
		 "startTime": "2026-03-01T09:35:00Z", "endTime": "2026-03-01T09:50:00Z",
		 "durationSeconds": 900, "completed": false}
	]
}`

func TestMigrateV1LiftsTasksToProjects(t *testing.T) {
	ws := migrateJSON(t, v1Payload)

	if ws.Version != CurrentVersion {
		t.Fatalf("version %d", ws.Version)
	}
	if len(ws.Goals) != 1 {
		t.Fatalf("expected one umbrella goal, got %d", len(ws.Goals))
	}
	goal := ws.Goals[0]
	if goal.Name != "Migrated Tasks" {
		t.Fatalf("umbrella goal named %q", goal.Name)
	}

	if len(ws.Projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(ws.Projects))
	}
	p := ws.ProjectByID("t1")
	if p == nil {
		t.Fatal("task id t1 should survive as a project id")
	}
	if p.GoalID != goal.ID || p.Name != "Write report" || p.Pomodoros != 3 {
		t.Fatalf("lifted project mismatch: %+v", *p)
	}
	if p2 := ws.ProjectByID("t2"); p2 == nil || !p2.Archived {
		t.Fatal("archived flag should survive the lift")
	}

	if len(ws.Sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(ws.Sessions))
	}
	for _, id := range []string{"s1", "s3"} {
		var rec *SessionRecord
		for i := range ws.Sessions {
			if ws.Sessions[i].ID == id {
				rec = &ws.Sessions[i]
			}
		}
		if rec == nil {
			t.Fatalf("session %s missing after migration", id)
		}
		if rec.Context == nil || rec.Context.ProjectID != "t1" || rec.Context.GoalID != goal.ID {
			t.Fatalf("session %s context not rewritten: %+v", id, rec.Context)
		}
	}
	// s2 had no taskId: no context is synthesized for it.
	for i := range ws.Sessions {
		if ws.Sessions[i].ID == "s2" && ws.Sessions[i].Context != nil {
			t.Fatal("session without taskId gained a context")
		}
	}

	if ws.Settings.FocusMinutes != 30 {
		t.Fatalf("settings lost in migration: focus %d", ws.Settings.FocusMinutes)
	}
	if ws.Settings.SoundEnabled {
		t.Fatal("explicit false lost in migration")
	}
	if ws.Daily == nil || ws.Reviews == nil {
		t.Fatal("new collections must be initialized")
	}
}

func TestMigrateV1WithoutTasksCreatesNoGoal(t *testing.T) {
	ws := migrateJSON(t, `{"version":1,"tasks":[],"sessions":[]}`)
	if len(ws.Goals) != 0 {
		t.Fatalf("empty task list should synthesize no goal, got %d", len(ws.Goals))
	}
}

// ============================================================
// v2 -> current
// ============================================================

func TestMigrateV2AddsHierarchyCollections(t *testing.T) {
	ws := migrateJSON(t, `{
		"version": 2,
		"tasks": [{"id": "t9", "name": "Ship it"}],
		"sessions": [],
		"daily": {"2026-04-01": {"todos": [{"id": "td1", "text": "standup"}]}}
	}`)

	if ws.ProjectByID("t9") == nil {
		t.Fatal("v2 tasks should lift to projects")
	}
	day, ok := ws.Daily["2026-04-01"]
	if !ok || len(day.Todos) != 1 || day.Todos[0].Text != "standup" {
		t.Fatalf("planner day lost: %+v", ws.Daily)
	}
}

// ============================================================
// Sanitize details
// ============================================================

func TestMigrateDiscardsInvalidBlocks(t *testing.T) {
	ws := migrateJSON(t, `{
		"version": 3,
		"daily": {
			"2026-04-01": {
				"blocks": [
					{"id": "b1", "start": "09:00", "end": "10:00", "title": "ok"},
					{"id": "b2", "start": "10:00", "end": "09:00", "title": "inverted"},
					{"id": "b3", "start": "06:00", "end": "07:00", "title": "before window"},
					{"id": "b4", "start": "morning", "end": "10:00", "title": "garbage"}
				],
				"todos": [
					{"id": "td1", "text": "linked ok", "scheduled": true, "blockId": "b1"},
					{"id": "td2", "text": "linked to dropped", "scheduled": true, "blockId": "b2"}
				]
			},
			"not-a-date": {"blocks": [], "todos": []}
		}
	}`)

	day := ws.Daily["2026-04-01"]
	if day == nil || len(day.Blocks) != 1 || day.Blocks[0].ID != "b1" {
		t.Fatalf("expected only the valid block to survive: %+v", day)
	}
	if len(day.Todos) != 2 {
		t.Fatalf("todos should never be dropped, got %d", len(day.Todos))
	}
	if day.Todos[0].BlockID != "b1" || !day.Todos[0].Scheduled {
		t.Fatal("valid link should survive")
	}
	if day.Todos[1].BlockID != "" || day.Todos[1].Scheduled {
		t.Fatal("link to a dropped block should be cleared")
	}
	if _, ok := ws.Daily["not-a-date"]; ok {
		t.Fatal("invalid date key should be skipped")
	}
}

func TestMigrateClampsQuality(t *testing.T) {
	ws := migrateJSON(t, `{
		"version": 3,
		"sessions": [{"id": "s1", "sessionType": "focus",
			"quality": {"rating": 11, "distractions": -4}}]
	}`)
	q := ws.Sessions[0].Quality
	if q == nil || q.Rating != 5 || q.Distractions != 0 {
		t.Fatalf("quality not clamped: %+v", q)
	}
}

// ============================================================
// Idempotence
// ============================================================

func TestMigrateIdempotent(t *testing.T) {
	first := migrateJSON(t, v1Payload)

	encoded, err := first.Encode()
	if err != nil {
		t.Fatal(err)
	}
	second, err := MigrateJSON(encoded)
	if err != nil {
		t.Fatalf("re-migrate: %v", err)
	}

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Fatalf("second migration changed the workspace:\n first %s\nsecond %s", a, b)
	}
}

// Property: migrating the encoding of any migrated workspace is a fixed
// point, for arbitrary session logs.
func TestMigrateFixedPoint(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ws := New()
		n := rapid.IntRange(0, 8).Draw(t, "sessions")
		for i := 0; i < n; i++ {
			ws.AppendSession(SessionRecord{
				ID:              rapid.StringMatching(`[a-z0-9]{8}`).Draw(t, "id"),
				SessionType:     NormalizeMode(rapid.SampledFrom([]string{"focus", "short_break", "long_break"}).Draw(t, "mode")),
				DurationSeconds: rapid.IntRange(0, 10800).Draw(t, "dur"),
				Completed:       rapid.Bool().Draw(t, "done"),
			})
		}

		encoded, err := ws.Encode()
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		once, err := MigrateJSON(encoded)
		if err != nil {
			t.Fatalf("migrate: %v", err)
		}
		reencoded, err := once.Encode()
		if err != nil {
			t.Fatalf("re-encode: %v", err)
		}
		twice, err := MigrateJSON(reencoded)
		if err != nil {
			t.Fatalf("re-migrate: %v", err)
		}

		a, _ := json.Marshal(once)
		b, _ := json.Marshal(twice)
		if string(a) != string(b) {
			t.Fatalf("not a fixed point:\n once %s\ntwice %s", a, b)
		}
	})
}
