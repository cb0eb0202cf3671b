package timer

import (
	"math"
	"time"

	"github.com/mlktrr/fokus/internal/workspace"
)

// Reason describes why a phase ended.
type Reason string

const (
	ReasonSkip    Reason = "skip"
	ReasonReset   Reason = "reset"
	ReasonElapsed Reason = "elapsed"
)

// ConfirmFunc is consulted before a user-initiated phase end when the
// end-session confirmation setting is on. Returning false aborts the end
// with no side effects.
type ConfirmFunc func(prompt string) bool

// NotifyFunc is invoked with the emitted record after every completed
// phase. Implementations no-op silently when notifications are disabled.
type NotifyFunc func(rec workspace.SessionRecord)

// Machine owns the focus/break phase lifecycle. Timing correctness
// depends only on the startedAt/endAt wall-clock anchors, never on tick
// regularity: a missed tick delays observation of an elapsed phase but
// never shifts it. All state transitions happen on the caller's single
// control flow; the machine does no scheduling of its own.
type Machine struct {
	ws      *workspace.Workspace
	now     func() time.Time
	confirm ConfirmFunc
	notify  NotifyFunc

	mode       workspace.Mode
	phaseCount int
	running    bool
	paused     bool
	startedAt  time.Time // zero while idle
	endAt      time.Time

	remainingSeconds int
	totalSeconds     int

	context     *workspace.ContextRef
	pendingNote string // one-shot, cleared on first attach
}

// NewMachine creates an idle machine in focus mode over the given
// workspace.
func NewMachine(ws *workspace.Workspace) *Machine {
	m := &Machine{ws: ws, now: time.Now, mode: workspace.ModeFocus}
	m.Initialize()
	return m
}

// SetClock replaces the wall-clock source. Used by tests and by hosts
// that poll on their own schedule.
func (m *Machine) SetClock(now func() time.Time) {
	if now != nil {
		m.now = now
	}
}

// SetConfirm installs the confirmation collaborator.
func (m *Machine) SetConfirm(fn ConfirmFunc) { m.confirm = fn }

// SetNotify installs the notification collaborator.
func (m *Machine) SetNotify(fn NotifyFunc) { m.notify = fn }

// SetContext selects the goal/project/topic attached to subsequent
// session records. A nil ref clears the selection.
func (m *Machine) SetContext(ref *workspace.ContextRef) { m.context = ref }

// Context returns the current selection, or nil.
func (m *Machine) Context() *workspace.ContextRef { return m.context }

// SetPendingNote stores a one-shot note attached to the next recorded
// session only.
func (m *Machine) SetPendingNote(note string) { m.pendingNote = note }

// Initialize resets to Idle in the current mode with a fresh planned
// duration. Cancels any in-flight phase without recording a session, so
// it is called only on settings changes and explicit resets from Idle.
func (m *Machine) Initialize() {
	seconds := DurationSeconds(m.mode, m.ws.Settings)
	m.totalSeconds = seconds
	m.remainingSeconds = seconds
	m.running = false
	m.paused = false
	m.startedAt = time.Time{}
	m.endAt = time.Time{}
}

// Start transitions Idle or Paused to Running, anchoring the phase end at
// now + remaining. No-op while already running.
func (m *Machine) Start() { m.startAt(m.now()) }

func (m *Machine) startAt(now time.Time) {
	if m.running {
		return
	}
	// Recover from corrupted state rather than anchoring a zero-length
	// phase.
	if m.remainingSeconds <= 0 || m.totalSeconds <= 0 {
		m.Initialize()
	}
	m.running = true
	m.paused = false
	m.startedAt = now
	m.endAt = now.Add(time.Duration(m.remainingSeconds) * time.Second)
}

// Pause transitions Running to Paused, first reconciling elapsed
// wall-clock time so the displayed remaining seconds are accurate at the
// instant of pausing. No-op otherwise.
func (m *Machine) Pause() {
	if !m.running || m.paused {
		return
	}
	m.Resync(m.now())
	// The phase may have ended (and possibly auto-advanced) during
	// reconciliation; only a still-running phase can pause.
	if !m.running {
		return
	}
	m.paused = true
	m.running = false
}

// Resume transitions Paused to Running, re-anchoring from the current
// remaining seconds. No-op if not paused.
func (m *Machine) Resume() {
	if !m.paused {
		return
	}
	m.paused = false
	m.startAt(m.now())
}

// Resync reconciles the machine with the wall clock. Every phase boundary
// that elapsed since the last call ends its phase as completed at the
// boundary timestamp, so a process suspended across several phases still
// records one session per boundary and lands in the mode consistent with
// that many sequential completions.
func (m *Machine) Resync(now time.Time) {
	if !m.running || m.paused {
		return
	}
	for m.running && !now.Before(m.endAt) {
		m.EndPhase(true, ReasonElapsed, m.endAt)
	}
	if m.running {
		remaining := int(math.Ceil(m.endAt.Sub(now).Seconds()))
		if remaining < 0 {
			remaining = 0
		}
		m.remainingSeconds = remaining
	}
}

// Skip ends the current phase as interrupted. Reports false when the
// confirmation gate declined.
func (m *Machine) Skip() bool {
	return m.EndPhase(false, ReasonSkip, m.now())
}

// Reset ends a running or paused phase as interrupted; from Idle it
// simply re-initializes the current mode.
func (m *Machine) Reset() bool {
	if m.running || m.paused {
		return m.EndPhase(false, ReasonReset, m.now())
	}
	m.Initialize()
	return true
}

// Retarget points the machine at a replacement workspace, keeping the
// mode, the long-break counter, and any in-flight phase. An idle machine
// picks up the replacement's planned durations immediately.
func (m *Machine) Retarget(ws *workspace.Workspace) {
	m.ws = ws
	if m.Idle() {
		m.Initialize()
	}
}

// EndPhase is the central transition: records the session (if the phase
// ever started or completed), advances the mode, and either chains into
// the next phase (auto-start after a natural completion) or stops idle.
// Reports false only when the confirmation gate declined.
func (m *Machine) EndPhase(completed bool, reason Reason, now time.Time) bool {
	if !completed && (reason == ReasonSkip || reason == ReasonReset) && m.ws.Settings.EndSessionConfirmation {
		if m.confirm != nil && !m.confirm("End this session now?") {
			return false
		}
	}

	planned := m.totalSeconds
	elapsed := 0
	if !m.startedAt.IsZero() {
		elapsed = int(math.Round(now.Sub(m.startedAt).Seconds()))
		if elapsed < 0 {
			elapsed = 0
		}
		if elapsed > planned {
			elapsed = planned
		}
	}
	// A completed phase always credits the full planned duration; the
	// observed boundary may lag under throttled ticks and must not
	// shorten or stretch the recorded session.
	duration := elapsed
	if completed {
		duration = planned
	}

	if !m.startedAt.IsZero() || completed {
		rec := m.recordPhaseEnd(completed, duration, planned, now)
		m.ws.AppendSession(rec)
		if completed && m.mode == workspace.ModeFocus && rec.Context != nil {
			if p := m.ws.ProjectByID(rec.Context.ProjectID); p != nil {
				p.Pomodoros++
			}
		}
		if completed && m.notify != nil {
			m.notify(rec)
		}
	}

	if completed && m.mode == workspace.ModeFocus {
		m.phaseCount++
	}
	m.mode = nextMode(m.mode, m.phaseCount, m.ws.Settings.LongBreakInterval)
	m.totalSeconds = DurationSeconds(m.mode, m.ws.Settings)
	m.remainingSeconds = m.totalSeconds
	m.startedAt = time.Time{}
	m.endAt = time.Time{}
	m.paused = false
	m.running = false

	if completed && m.ws.Settings.AutoStartNext {
		// Chained transition: anchor the next phase at the boundary so
		// consecutive elapsed phases stack without drift.
		m.startAt(now)
	}
	return true
}

// nextMode applies the long-break cadence rule using the post-increment
// phase count: after completing the Nth focus phase, a long break occurs
// exactly when N is a multiple of the interval.
func nextMode(current workspace.Mode, phaseCount, longBreakInterval int) workspace.Mode {
	if current != workspace.ModeFocus {
		return workspace.ModeFocus
	}
	if longBreakInterval < workspace.MinLongBreakInterval {
		longBreakInterval = workspace.DefaultLongBreakInterval
	}
	if phaseCount%longBreakInterval == 0 {
		return workspace.ModeLongBreak
	}
	return workspace.ModeShortBreak
}

// --- Accessors ---

func (m *Machine) Mode() workspace.Mode { return m.mode }
func (m *Machine) PhaseCount() int      { return m.phaseCount }
func (m *Machine) Running() bool        { return m.running }
func (m *Machine) Paused() bool         { return m.paused }
func (m *Machine) Idle() bool           { return !m.running && !m.paused }
func (m *Machine) Remaining() int       { return m.remainingSeconds }
func (m *Machine) Total() int           { return m.totalSeconds }
