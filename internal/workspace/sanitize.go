package workspace

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Coercion helpers. Raw payloads are whatever encoding/json produced from
// user-editable data, so every field is read defensively: wrong types fall
// back to the supplied default instead of failing.

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

func asString(v any, def string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return def
}

func asBool(v any, def bool) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return def
}

func asInt(v any, def int) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i
		}
	}
	return def
}

func asTime(v any, def time.Time) time.Time {
	s, ok := v.(string)
	if !ok {
		return def
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	return def
}

func newID() string {
	return uuid.NewString()
}

// ParseClock parses an "HH:MM" string into minutes since midnight.
func ParseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", s, err)
	}
	if h < 0 || h > 24 || m < 0 || m > 59 {
		return 0, fmt.Errorf("parse clock %q: out of range", s)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// sanitizeSettings builds valid settings from a raw map, starting from the
// defaults and overriding only fields that are present and well-typed.
func sanitizeSettings(raw any) Settings {
	s := DefaultSettings()
	m := asMap(raw)
	if m == nil {
		return s
	}

	s.FocusMinutes = asInt(m["focusMinutes"], DefaultFocusMinutes)
	s.ShortBreakMinutes = asInt(m["shortBreakMinutes"], DefaultShortBreakMinutes)
	s.LongBreakMinutes = asInt(m["longBreakMinutes"], DefaultLongBreakMinutes)
	s.LongBreakInterval = asInt(m["longBreakInterval"], DefaultLongBreakInterval)
	s.AutoStartNext = asBool(m["autoStartNext"], false)
	s.SoundEnabled = asBool(m["soundEnabled"], true)
	s.NotificationsEnabled = asBool(m["notificationsEnabled"], true)
	s.EndSessionConfirmation = asBool(m["endSessionConfirmation"], true)
	s.DayStartHour = asInt(m["dayStartHour"], DefaultDayStartHour)
	s.DayEndHour = asInt(m["dayEndHour"], DefaultDayEndHour)
	s.Theme = asString(m["theme"], "system")

	s.Clamp()
	return s
}

func sanitizeGoal(raw any) Goal {
	m := asMap(raw)
	g := Goal{
		ID:       asString(m["id"], ""),
		Name:     asString(m["name"], "Untitled"),
		Archived: asBool(m["archived"], false),
	}
	if g.ID == "" {
		g.ID = newID()
	}
	if g.Name == "" {
		g.Name = "Untitled"
	}
	return g
}

func sanitizeProject(raw any) Project {
	m := asMap(raw)
	p := Project{
		ID:       asString(m["id"], ""),
		GoalID:   asString(m["goalId"], ""),
		Name:     asString(m["name"], "Untitled"),
		Archived: asBool(m["archived"], false),
	}
	if p.ID == "" {
		p.ID = newID()
	}
	if p.Name == "" {
		p.Name = "Untitled"
	}
	if n := asInt(m["pomodoros"], 0); n > 0 {
		p.Pomodoros = n
	}
	return p
}

func sanitizeTopic(raw any) Topic {
	m := asMap(raw)
	t := Topic{
		ID:        asString(m["id"], ""),
		ProjectID: asString(m["projectId"], ""),
		Name:      asString(m["name"], "Untitled"),
		Archived:  asBool(m["archived"], false),
	}
	if t.ID == "" {
		t.ID = newID()
	}
	if t.Name == "" {
		t.Name = "Untitled"
	}
	return t
}

func sanitizeContext(raw any) *ContextRef {
	m := asMap(raw)
	if m == nil {
		return nil
	}
	ref := &ContextRef{
		GoalID:    asString(m["goalId"], ""),
		ProjectID: asString(m["projectId"], ""),
		TopicID:   asString(m["topicId"], ""),
	}
	if ref.GoalID == "" && ref.ProjectID == "" && ref.TopicID == "" {
		return nil
	}
	return ref
}

func sanitizeQuality(raw any) *Quality {
	m := asMap(raw)
	if m == nil {
		return nil
	}
	q := &Quality{
		Rating:       asInt(m["rating"], 3),
		Distractions: asInt(m["distractions"], 0),
		Note:         asString(m["note"], ""),
	}
	if q.Rating < 1 {
		q.Rating = 1
	}
	if q.Rating > 5 {
		q.Rating = 5
	}
	if q.Distractions < 0 {
		q.Distractions = 0
	}
	return q
}

// sanitizeSession coerces a single raw session into a valid-shaped record.
// A malformed session never rejects the payload; each field degrades
// independently.
func sanitizeSession(raw any) SessionRecord {
	m := asMap(raw)
	rec := SessionRecord{
		ID:              asString(m["id"], ""),
		SessionType:     NormalizeMode(asString(m["sessionType"], "focus")),
		StartTime:       asTime(m["startTime"], time.Time{}),
		EndTime:         asTime(m["endTime"], time.Time{}),
		DurationSeconds: asInt(m["durationSeconds"], 0),
		Completed:       asBool(m["completed"], false),
		Context:         sanitizeContext(m["context"]),
		Note:            asString(m["note"], ""),
		Quality:         sanitizeQuality(m["quality"]),
	}
	if rec.ID == "" {
		rec.ID = newID()
	}
	if rec.DurationSeconds < 0 {
		rec.DurationSeconds = 0
	}
	return rec
}

// sanitizeDay rebuilds one planner day. Blocks that cannot satisfy
// start < end within the day window are discarded; todos referencing a
// block that no longer exists in the day are unlinked, not dropped.
func sanitizeDay(raw any, settings Settings) *PlannerDay {
	m := asMap(raw)
	day := &PlannerDay{Blocks: []TimeBlock{}, Todos: []DailyTodo{}}

	windowStart := settings.DayStartHour * 60
	windowEnd := settings.DayEndHour * 60

	blockIDs := map[string]bool{}
	for _, rawBlock := range asSlice(m["blocks"]) {
		bm := asMap(rawBlock)
		b := TimeBlock{
			ID:     asString(bm["id"], ""),
			Start:  asString(bm["start"], ""),
			End:    asString(bm["end"], ""),
			Title:  asString(bm["title"], ""),
			TodoID: asString(bm["todoId"], ""),
		}
		if b.ID == "" {
			b.ID = newID()
		}
		switch BlockSource(asString(bm["source"], "")) {
		case BlockFromTodo:
			b.Source = BlockFromTodo
		default:
			b.Source = BlockManual
		}

		start, err := ParseClock(b.Start)
		if err != nil {
			continue
		}
		end, err := ParseClock(b.End)
		if err != nil {
			continue
		}
		if start >= end || start < windowStart || end > windowEnd {
			continue
		}
		blockIDs[b.ID] = true
		day.Blocks = append(day.Blocks, b)
	}

	for _, rawTodo := range asSlice(m["todos"]) {
		tm := asMap(rawTodo)
		todo := DailyTodo{
			ID:        asString(tm["id"], ""),
			Text:      asString(tm["text"], ""),
			Done:      asBool(tm["done"], false),
			Scheduled: asBool(tm["scheduled"], false),
			BlockID:   asString(tm["blockId"], ""),
		}
		if todo.ID == "" {
			todo.ID = newID()
		}
		if todo.BlockID != "" && !blockIDs[todo.BlockID] {
			todo.BlockID = ""
			todo.Scheduled = false
		}
		day.Todos = append(day.Todos, todo)
	}

	return day
}

// sanitizeWorkspace normalizes a current-version raw payload into the
// canonical typed form. Idempotent: applying it to the output of a
// previous pass changes nothing.
func sanitizeWorkspace(m map[string]any) *Workspace {
	ws := New()
	ws.Settings = sanitizeSettings(m["settings"])

	for _, raw := range asSlice(m["goals"]) {
		ws.Goals = append(ws.Goals, sanitizeGoal(raw))
	}
	for _, raw := range asSlice(m["projects"]) {
		ws.Projects = append(ws.Projects, sanitizeProject(raw))
	}
	for _, raw := range asSlice(m["topics"]) {
		ws.Topics = append(ws.Topics, sanitizeTopic(raw))
	}
	for _, raw := range asSlice(m["sessions"]) {
		ws.Sessions = append(ws.Sessions, sanitizeSession(raw))
	}

	for key, raw := range asMap(m["daily"]) {
		if _, err := time.Parse("2006-01-02", key); err != nil {
			continue
		}
		ws.Daily[key] = sanitizeDay(raw, ws.Settings)
	}

	for key, raw := range asMap(m["reviews"]) {
		if key == "" {
			continue
		}
		rm := asMap(raw)
		ws.Reviews[key] = WeekReview{
			Reflection: asString(rm["reflection"], ""),
			Intention:  asString(rm["intention"], ""),
		}
	}

	return ws
}
