package workspace

import (
	"errors"
	"fmt"
)

// ErrInvalidBlock is returned when a time block fails validation. No
// partial block is ever stored.
var ErrInvalidBlock = errors.New("invalid time block")

// Day returns the planner day for the given date key, creating it if
// needed.
func (ws *Workspace) Day(date string) *PlannerDay {
	if ws.Daily == nil {
		ws.Daily = map[string]*PlannerDay{}
	}
	day, ok := ws.Daily[date]
	if !ok {
		day = &PlannerDay{Blocks: []TimeBlock{}, Todos: []DailyTodo{}}
		ws.Daily[date] = day
	}
	return day
}

// DayView returns a copy of the planner day for reading. Absent days
// read as empty; nothing is created or stored.
func (ws *Workspace) DayView(date string) PlannerDay {
	if day, ok := ws.Daily[date]; ok && day != nil {
		return *day
	}
	return PlannerDay{}
}

// validateBlockBounds checks start < end within the configured day
// window, returning the parsed minutes.
func (ws *Workspace) validateBlockBounds(start, end string) (int, int, error) {
	startMin, err := ParseClock(start)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrInvalidBlock, err)
	}
	endMin, err := ParseClock(end)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrInvalidBlock, err)
	}
	if startMin >= endMin {
		return 0, 0, fmt.Errorf("%w: start %s is not before end %s", ErrInvalidBlock, start, end)
	}
	if startMin < ws.Settings.DayStartHour*60 || endMin > ws.Settings.DayEndHour*60 {
		return 0, 0, fmt.Errorf("%w: %s-%s outside day window %02d:00-%02d:00",
			ErrInvalidBlock, start, end, ws.Settings.DayStartHour, ws.Settings.DayEndHour)
	}
	return startMin, endMin, nil
}

// AddBlock validates and stores a manual time block on the given date.
func (ws *Workspace) AddBlock(date, start, end, title string) (TimeBlock, error) {
	if _, _, err := ws.validateBlockBounds(start, end); err != nil {
		return TimeBlock{}, err
	}
	b := TimeBlock{ID: newID(), Start: start, End: end, Title: title, Source: BlockManual}
	day := ws.Day(date)
	day.Blocks = append(day.Blocks, b)
	return b, nil
}

// RemoveBlock deletes a block and unlinks (not deletes) any todo that
// referenced it.
func (ws *Workspace) RemoveBlock(date, blockID string) {
	day, ok := ws.Daily[date]
	if !ok {
		return
	}
	for i := range day.Blocks {
		if day.Blocks[i].ID != blockID {
			continue
		}
		day.Blocks = append(day.Blocks[:i], day.Blocks[i+1:]...)
		break
	}
	for i := range day.Todos {
		if day.Todos[i].BlockID == blockID {
			day.Todos[i].BlockID = ""
			day.Todos[i].Scheduled = false
		}
	}
}

// AddTodo appends a todo to the given date.
func (ws *Workspace) AddTodo(date, text string) DailyTodo {
	todo := DailyTodo{ID: newID(), Text: text}
	day := ws.Day(date)
	day.Todos = append(day.Todos, todo)
	return todo
}

// ToggleTodo flips a todo's done flag.
func (ws *Workspace) ToggleTodo(date, todoID string) {
	day, ok := ws.Daily[date]
	if !ok {
		return
	}
	for i := range day.Todos {
		if day.Todos[i].ID == todoID {
			day.Todos[i].Done = !day.Todos[i].Done
			return
		}
	}
}

// ScheduleTodo creates a todo-sourced block for the todo and links the
// two. Fails with ErrInvalidBlock on bad bounds; the todo is untouched on
// failure.
func (ws *Workspace) ScheduleTodo(date, todoID, start, end string) (TimeBlock, error) {
	day, ok := ws.Daily[date]
	if !ok {
		return TimeBlock{}, fmt.Errorf("%w: no planner day %s", ErrInvalidBlock, date)
	}
	var todo *DailyTodo
	for i := range day.Todos {
		if day.Todos[i].ID == todoID {
			todo = &day.Todos[i]
			break
		}
	}
	if todo == nil {
		return TimeBlock{}, fmt.Errorf("%w: no todo %s on %s", ErrInvalidBlock, todoID, date)
	}
	if _, _, err := ws.validateBlockBounds(start, end); err != nil {
		return TimeBlock{}, err
	}

	b := TimeBlock{ID: newID(), Start: start, End: end, Title: todo.Text, Source: BlockFromTodo, TodoID: todo.ID}
	day.Blocks = append(day.Blocks, b)
	todo.Scheduled = true
	todo.BlockID = b.ID
	return b, nil
}

// RemoveTodo deletes a todo and its linked block, if any.
func (ws *Workspace) RemoveTodo(date, todoID string) {
	day, ok := ws.Daily[date]
	if !ok {
		return
	}
	blockID := ""
	for i := range day.Todos {
		if day.Todos[i].ID != todoID {
			continue
		}
		blockID = day.Todos[i].BlockID
		day.Todos = append(day.Todos[:i], day.Todos[i+1:]...)
		break
	}
	if blockID == "" {
		return
	}
	for i := range day.Blocks {
		if day.Blocks[i].ID == blockID {
			day.Blocks = append(day.Blocks[:i], day.Blocks[i+1:]...)
			return
		}
	}
}
