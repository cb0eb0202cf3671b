package workspace

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnsupportedVersion is reported when a payload declares a schema
// version no upgrader recognizes. It is the only way migration fails;
// every other malformed shape degrades to defaults.
var ErrUnsupportedVersion = errors.New("unsupported data version")

// upgraders maps a schema version to the pure step that lifts a raw
// payload to the next version. Steps compose until CurrentVersion, then
// the sanitize pass produces the canonical workspace.
var upgraders = map[int]func(map[string]any) map[string]any{
	1: upgradeV1,
	2: upgradeV2,
}

// Migrate normalizes any persisted or imported payload into a canonical
// workspace. Non-object input or a payload with no version field yields a
// fresh default workspace; a declared version outside the known range
// yields ErrUnsupportedVersion.
func Migrate(raw any) (*Workspace, error) {
	m, ok := raw.(map[string]any)
	if !ok || m == nil {
		return New(), nil
	}

	versionRaw, present := m["version"]
	if !present {
		return New(), nil
	}
	version := asInt(versionRaw, -1)
	if version < 1 || version > CurrentVersion {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedVersion, versionRaw)
	}

	for v := version; v < CurrentVersion; v++ {
		m = upgraders[v](m)
	}
	return sanitizeWorkspace(m), nil
}

// MigrateJSON decodes a JSON document and migrates it.
func MigrateJSON(data []byte) (*Workspace, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return Migrate(raw)
}

// upgradeV1 lifts the oldest schema (settings, flat tasks, sessions) to
// v2 by adding the planner map.
func upgradeV1(m map[string]any) map[string]any {
	out := make(map[string]any, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	out["version"] = 2
	if _, ok := out["daily"].(map[string]any); !ok {
		out["daily"] = map[string]any{}
	}
	return out
}

// upgradeV2 lifts the flat-task schema to the hierarchy schema. Every
// task becomes a project under one synthesized umbrella goal, and each
// session's taskId becomes a context reference pointing at that project.
// Task ids are reused as project ids so session references keep working.
func upgradeV2(m map[string]any) map[string]any {
	out := make(map[string]any, len(m)+4)
	for k, v := range m {
		out[k] = v
	}
	out["version"] = 3

	goalID := newID()
	goals := []any{}
	projects := []any{}

	tasks := asSlice(m["tasks"])
	if len(tasks) > 0 {
		goals = append(goals, map[string]any{
			"id":       goalID,
			"name":     "Migrated Tasks",
			"archived": false,
		})
	}
	for _, rawTask := range tasks {
		tm := asMap(rawTask)
		id := asString(tm["id"], "")
		if id == "" {
			id = newID()
		}
		projects = append(projects, map[string]any{
			"id":        id,
			"goalId":    goalID,
			"name":      asString(tm["name"], "Untitled"),
			"archived":  asBool(tm["archived"], false),
			"pomodoros": asInt(tm["pomodoros"], 0),
		})
	}

	sessions := []any{}
	for _, rawSession := range asSlice(m["sessions"]) {
		sm := asMap(rawSession)
		s := make(map[string]any, len(sm)+1)
		for k, v := range sm {
			s[k] = v
		}
		if taskID := asString(sm["taskId"], ""); taskID != "" {
			s["context"] = map[string]any{
				"goalId":    goalID,
				"projectId": taskID,
				"topicId":   "",
			}
		}
		delete(s, "taskId")
		sessions = append(sessions, s)
	}

	out["goals"] = goals
	out["projects"] = projects
	out["topics"] = []any{}
	out["sessions"] = sessions
	out["reviews"] = map[string]any{}
	delete(out, "tasks")
	return out
}
