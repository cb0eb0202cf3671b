package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/mlktrr/fokus/internal/workspace"
)

// SessionsToCSV writes the session log with context references resolved
// to display names. Dangling references render as "Unknown" rather than
// failing.
func SessionsToCSV(ws *workspace.Workspace, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Type", "Start", "End", "Duration (s)", "Duration", "Completed", "Goal", "Project", "Topic", "Note"}); err != nil {
		return err
	}

	for _, s := range ws.Sessions {
		resolved := ws.ResolveContext(s.Context)

		row := []string{
			s.ID,
			string(s.SessionType),
			s.StartTime.Local().Format(time.RFC3339),
			s.EndTime.Local().Format(time.RFC3339),
			strconv.Itoa(s.DurationSeconds),
			formatDuration(s.DurationSeconds),
			strconv.FormatBool(s.Completed),
			resolved.GoalName,
			resolved.ProjectName,
			resolved.TopicName,
			s.Note,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func formatDuration(secs int) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
