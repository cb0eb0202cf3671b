package workspace

import "sort"

// Merge deterministically combines two canonical workspaces. The central
// invariant: the session log is an immutable fact record, so on id
// collision the base copy wins and an import can never rewrite history;
// settings, hierarchy, planner artifacts, and reviews are mutable
// documents, so there the incoming copy wins. Order within each
// collection keeps base entries first, then new incoming entries in
// input order.
func Merge(base, incoming *Workspace) *Workspace {
	out := New()

	out.Settings = incoming.Settings
	out.Settings.Clamp()

	out.Goals = mergeGoals(base.Goals, incoming.Goals)
	out.Projects = mergeProjects(base.Projects, incoming.Projects)
	out.Topics = mergeTopics(base.Topics, incoming.Topics)
	out.Sessions = mergeSessions(base.Sessions, incoming.Sessions)
	out.Daily = mergeDaily(base.Daily, incoming.Daily)

	for week, review := range base.Reviews {
		out.Reviews[week] = review
	}
	for week, review := range incoming.Reviews {
		out.Reviews[week] = review
	}

	return out
}

func mergeGoals(base, incoming []Goal) []Goal {
	out := make([]Goal, len(base))
	index := make(map[string]int, len(base))
	for i, g := range base {
		out[i] = g
		index[g.ID] = i
	}
	for _, g := range incoming {
		if i, ok := index[g.ID]; ok {
			out[i] = g
			continue
		}
		index[g.ID] = len(out)
		out = append(out, g)
	}
	return out
}

func mergeProjects(base, incoming []Project) []Project {
	out := make([]Project, len(base))
	index := make(map[string]int, len(base))
	for i, p := range base {
		out[i] = p
		index[p.ID] = i
	}
	for _, p := range incoming {
		if i, ok := index[p.ID]; ok {
			out[i] = p
			continue
		}
		index[p.ID] = len(out)
		out = append(out, p)
	}
	return out
}

func mergeTopics(base, incoming []Topic) []Topic {
	out := make([]Topic, len(base))
	index := make(map[string]int, len(base))
	for i, t := range base {
		out[i] = t
		index[t.ID] = i
	}
	for _, t := range incoming {
		if i, ok := index[t.ID]; ok {
			out[i] = t
			continue
		}
		index[t.ID] = len(out)
		out = append(out, t)
	}
	return out
}

// mergeSessions is first-write-wins: incoming records whose id is already
// present are dropped. The union is re-sorted ascending by start time.
func mergeSessions(base, incoming []SessionRecord) []SessionRecord {
	out := make([]SessionRecord, len(base))
	seen := make(map[string]bool, len(base))
	for i, s := range base {
		out[i] = s
		seen[s.ID] = true
	}
	for _, s := range incoming {
		if seen[s.ID] {
			continue
		}
		seen[s.ID] = true
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out
}

func mergeDaily(base, incoming map[string]*PlannerDay) map[string]*PlannerDay {
	out := map[string]*PlannerDay{}
	for date, day := range base {
		out[date] = copyDay(day)
	}
	for date, day := range incoming {
		existing, ok := out[date]
		if !ok {
			out[date] = copyDay(day)
			continue
		}
		out[date] = mergeDay(existing, day)
	}
	return out
}

func mergeDay(base, incoming *PlannerDay) *PlannerDay {
	out := &PlannerDay{Blocks: []TimeBlock{}, Todos: []DailyTodo{}}

	blockIndex := map[string]int{}
	for _, b := range base.Blocks {
		blockIndex[b.ID] = len(out.Blocks)
		out.Blocks = append(out.Blocks, b)
	}
	for _, b := range incoming.Blocks {
		if i, ok := blockIndex[b.ID]; ok {
			out.Blocks[i] = b
			continue
		}
		blockIndex[b.ID] = len(out.Blocks)
		out.Blocks = append(out.Blocks, b)
	}

	todoIndex := map[string]int{}
	for _, todo := range base.Todos {
		todoIndex[todo.ID] = len(out.Todos)
		out.Todos = append(out.Todos, todo)
	}
	for _, todo := range incoming.Todos {
		if i, ok := todoIndex[todo.ID]; ok {
			out.Todos[i] = todo
			continue
		}
		todoIndex[todo.ID] = len(out.Todos)
		out.Todos = append(out.Todos, todo)
	}

	return out
}

func copyDay(day *PlannerDay) *PlannerDay {
	out := &PlannerDay{
		Blocks: make([]TimeBlock, len(day.Blocks)),
		Todos:  make([]DailyTodo, len(day.Todos)),
	}
	copy(out.Blocks, day.Blocks)
	copy(out.Todos, day.Todos)
	return out
}
