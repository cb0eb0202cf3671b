package timer

import (
	"time"

	"github.com/google/uuid"

	"github.com/mlktrr/fokus/internal/workspace"
)

// recordPhaseEnd builds the immutable record for a phase termination.
// Completed sessions take startedAt + planned as their end time (the
// intended boundary, not observed now, which may lag); interrupted
// sessions take observed now. The pending note is use-once and cleared
// here.
func (m *Machine) recordPhaseEnd(completed bool, duration, planned int, now time.Time) workspace.SessionRecord {
	start := m.startedAt
	if start.IsZero() {
		start = now
	}
	end := now
	if completed {
		end = start.Add(time.Duration(planned) * time.Second)
	}

	rec := workspace.SessionRecord{
		ID:              uuid.NewString(),
		SessionType:     m.mode,
		StartTime:       start,
		EndTime:         end,
		DurationSeconds: duration,
		Completed:       completed,
		Note:            m.pendingNote,
	}
	m.pendingNote = ""

	if m.context != nil {
		ref := *m.context
		rec.Context = &ref
	}
	return rec
}
