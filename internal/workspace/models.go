package workspace

import (
	"fmt"
	"time"
)

// CurrentVersion is the canonical schema version of a persisted workspace.
const CurrentVersion = 3

// Mode is the category of a timed phase.
type Mode string

const (
	ModeFocus      Mode = "focus"
	ModeShortBreak Mode = "short_break"
	ModeLongBreak  Mode = "long_break"
)

// NormalizeMode coerces any string into a valid Mode, defaulting to focus.
func NormalizeMode(s string) Mode {
	switch Mode(s) {
	case ModeShortBreak:
		return ModeShortBreak
	case ModeLongBreak:
		return ModeLongBreak
	default:
		return ModeFocus
	}
}

// Settings holds every user-tunable value. Numeric fields are clamped on
// every write; invalid input falls back to the named default, never to an
// error.
type Settings struct {
	FocusMinutes           int    `json:"focusMinutes"`
	ShortBreakMinutes      int    `json:"shortBreakMinutes"`
	LongBreakMinutes       int    `json:"longBreakMinutes"`
	LongBreakInterval      int    `json:"longBreakInterval"`
	AutoStartNext          bool   `json:"autoStartNext"`
	SoundEnabled           bool   `json:"soundEnabled"`
	NotificationsEnabled   bool   `json:"notificationsEnabled"`
	EndSessionConfirmation bool   `json:"endSessionConfirmation"`
	DayStartHour           int    `json:"dayStartHour"`
	DayEndHour             int    `json:"dayEndHour"`
	Theme                  string `json:"theme"`
}

// Goal is the top level of the categorization hierarchy.
type Goal struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Archived bool   `json:"archived"`
}

// Project belongs to a goal. GoalID may dangle; consumers resolve a
// missing reference as "Unknown".
type Project struct {
	ID        string `json:"id"`
	GoalID    string `json:"goalId"`
	Name      string `json:"name"`
	Archived  bool   `json:"archived"`
	Pomodoros int    `json:"pomodoros"`
}

// Topic belongs to a project. ProjectID may dangle.
type Topic struct {
	ID        string `json:"id"`
	ProjectID string `json:"projectId"`
	Name      string `json:"name"`
	Archived  bool   `json:"archived"`
}

// ContextRef is the optional goal/project/topic selection attached to a
// session. Any id may dangle.
type ContextRef struct {
	GoalID    string `json:"goalId"`
	ProjectID string `json:"projectId"`
	TopicID   string `json:"topicId"`
}

// Quality is the optional after-the-fact annotation on a session record.
type Quality struct {
	Rating       int    `json:"rating"` // 1..5
	Distractions int    `json:"distractions"`
	Note         string `json:"note,omitempty"`
}

// SessionRecord is one immutable entry in the append-only session log.
// Only the Quality annotation may be attached after creation.
type SessionRecord struct {
	ID              string      `json:"id"`
	SessionType     Mode        `json:"sessionType"`
	StartTime       time.Time   `json:"startTime"`
	EndTime         time.Time   `json:"endTime"`
	DurationSeconds int         `json:"durationSeconds"`
	Completed       bool        `json:"completed"`
	Context         *ContextRef `json:"context,omitempty"`
	Note            string      `json:"note,omitempty"`
	Quality         *Quality    `json:"quality,omitempty"`
}

// BlockSource records how a time block came to exist.
type BlockSource string

const (
	BlockManual   BlockSource = "manual"
	BlockFromTodo BlockSource = "todo"
)

// TimeBlock is a planned slot within a planner day. Start and End are
// "HH:MM" strings satisfying start < end within the day window.
type TimeBlock struct {
	ID     string      `json:"id"`
	Start  string      `json:"start"`
	End    string      `json:"end"`
	Title  string      `json:"title"`
	Source BlockSource `json:"source"`
	TodoID string      `json:"todoId,omitempty"`
}

// DailyTodo is a planner checklist item, optionally linked to a block.
type DailyTodo struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Done      bool   `json:"done"`
	Scheduled bool   `json:"scheduled"`
	BlockID   string `json:"blockId,omitempty"`
}

// PlannerDay holds the blocks and todos for one calendar date.
type PlannerDay struct {
	Blocks []TimeBlock `json:"blocks"`
	Todos  []DailyTodo `json:"todos"`
}

// WeekReview is the single edited document for one ISO week.
type WeekReview struct {
	Reflection string `json:"reflection"`
	Intention  string `json:"intention"`
}

// Workspace is the root aggregate: the unit of persistence, export,
// import, and merge.
type Workspace struct {
	Version  int                    `json:"version"`
	Settings Settings               `json:"settings"`
	Goals    []Goal                 `json:"goals"`
	Projects []Project              `json:"projects"`
	Topics   []Topic                `json:"topics"`
	Daily    map[string]*PlannerDay `json:"daily"`
	Sessions []SessionRecord        `json:"sessions"`
	Reviews  map[string]WeekReview  `json:"reviews"`
}

// New returns a fresh default workspace at the current schema version.
func New() *Workspace {
	return &Workspace{
		Version:  CurrentVersion,
		Settings: DefaultSettings(),
		Goals:    []Goal{},
		Projects: []Project{},
		Topics:   []Topic{},
		Daily:    map[string]*PlannerDay{},
		Sessions: []SessionRecord{},
		Reviews:  map[string]WeekReview{},
	}
}

// DayKey formats a time as the planner's calendar date key.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// WeekKey formats a time as the ISO week key used for weekly reviews.
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}
