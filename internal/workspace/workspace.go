package workspace

import (
	"encoding/json"
	"fmt"
)

// AppendSession grows the append-only session log. The timer's recorder
// and the merge engine are the only writers.
func (ws *Workspace) AppendSession(rec SessionRecord) {
	ws.Sessions = append(ws.Sessions, rec)
}

// AttachQuality attaches the one permitted after-the-fact annotation to a
// session record. Reports whether a record with the id was found. Rating
// is clamped to 1..5, distractions to >= 0.
func (ws *Workspace) AttachQuality(sessionID string, rating, distractions int, note string) bool {
	for i := range ws.Sessions {
		if ws.Sessions[i].ID != sessionID {
			continue
		}
		if rating < 1 {
			rating = 1
		}
		if rating > 5 {
			rating = 5
		}
		if distractions < 0 {
			distractions = 0
		}
		ws.Sessions[i].Quality = &Quality{Rating: rating, Distractions: distractions, Note: note}
		return true
	}
	return false
}

// SetReview stores the review document for an ISO week key, replacing any
// previous one.
func (ws *Workspace) SetReview(week string, review WeekReview) {
	if ws.Reviews == nil {
		ws.Reviews = map[string]WeekReview{}
	}
	ws.Reviews[week] = review
}

// Encode serializes the workspace as the UTF-8 JSON interchange document.
func (ws *Workspace) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(ws, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode workspace: %w", err)
	}
	return data, nil
}
