package workspace

import "testing"

func buildHierarchy(t *testing.T) (*Workspace, Goal, Project, Topic) {
	t.Helper()
	ws := New()
	g := ws.AddGoal("Health")
	p := ws.AddProject(g.ID, "Running")
	topic := ws.AddTopic(p.ID, "Intervals")
	return ws, g, p, topic
}

// ============================================================
// Creation and lookup
// ============================================================

func TestAddAndLookup(t *testing.T) {
	ws, g, p, topic := buildHierarchy(t)

	if got := ws.GoalByID(g.ID); got == nil || got.Name != "Health" {
		t.Fatalf("goal lookup: %+v", got)
	}
	if got := ws.ProjectByID(p.ID); got == nil || got.GoalID != g.ID {
		t.Fatalf("project lookup: %+v", got)
	}
	if got := ws.TopicByID(topic.ID); got == nil || got.ProjectID != p.ID {
		t.Fatalf("topic lookup: %+v", got)
	}
	if ws.GoalByID("missing") != nil {
		t.Fatal("lookup of missing id should be nil")
	}
}

func TestAddEmptyNameFallsBack(t *testing.T) {
	ws := New()
	if g := ws.AddGoal(""); g.Name != "Untitled" {
		t.Fatalf("empty goal name: %q", g.Name)
	}
	if p := ws.AddProject("", ""); p.Name != "Untitled" {
		t.Fatalf("empty project name: %q", p.Name)
	}
}

func TestAddProjectUnderMissingGoal(t *testing.T) {
	ws := New()
	p := ws.AddProject("ghost", "Orphan")
	if got := ws.ProjectByID(p.ID); got == nil || got.GoalID != "ghost" {
		t.Fatal("dangling goal reference must be stored as-is")
	}
}

func TestRename(t *testing.T) {
	ws, g, p, topic := buildHierarchy(t)

	ws.RenameGoal(g.ID, "Fitness")
	ws.RenameProject(p.ID, "Cycling")
	ws.RenameTopic(topic.ID, "Climbs")

	if ws.GoalByID(g.ID).Name != "Fitness" ||
		ws.ProjectByID(p.ID).Name != "Cycling" ||
		ws.TopicByID(topic.ID).Name != "Climbs" {
		t.Fatal("rename not applied")
	}

	ws.RenameGoal(g.ID, "")
	if ws.GoalByID(g.ID).Name != "Fitness" {
		t.Fatal("empty rename must be ignored")
	}
	ws.RenameGoal("missing", "x") // no-op
}

// ============================================================
// Archiving
// ============================================================

func TestArchiveGoalCascades(t *testing.T) {
	ws, g, p, topic := buildHierarchy(t)
	other := ws.AddProject("", "Unrelated")

	ws.ArchiveGoal(g.ID)

	if !ws.GoalByID(g.ID).Archived {
		t.Fatal("goal not archived")
	}
	if !ws.ProjectByID(p.ID).Archived {
		t.Fatal("archive must sweep projects")
	}
	if !ws.TopicByID(topic.ID).Archived {
		t.Fatal("archive must sweep topics")
	}
	if ws.ProjectByID(other.ID).Archived {
		t.Fatal("unrelated project swept")
	}
}

func TestArchiveProjectCascadesToTopics(t *testing.T) {
	ws, g, p, topic := buildHierarchy(t)

	ws.ArchiveProject(p.ID)

	if ws.GoalByID(g.ID).Archived {
		t.Fatal("archiving a project must not touch its goal")
	}
	if !ws.TopicByID(topic.ID).Archived {
		t.Fatal("project archive must sweep its topics")
	}
}

// ============================================================
// Deletion
// ============================================================

func TestDeleteGoalLeavesChildrenDangling(t *testing.T) {
	ws, g, p, _ := buildHierarchy(t)

	ws.DeleteGoal(g.ID)

	if ws.GoalByID(g.ID) != nil {
		t.Fatal("goal not deleted")
	}
	got := ws.ProjectByID(p.ID)
	if got == nil {
		t.Fatal("deletion must never cascade")
	}
	if got.GoalID != g.ID {
		t.Fatal("dangling reference must be preserved")
	}
}

func TestDeleteProjectLeavesSessionsIntact(t *testing.T) {
	ws, g, p, _ := buildHierarchy(t)
	ws.AppendSession(SessionRecord{
		ID:          "s1",
		SessionType: ModeFocus,
		Completed:   true,
		Context:     &ContextRef{GoalID: g.ID, ProjectID: p.ID},
	})

	ws.DeleteProject(p.ID)

	if len(ws.Sessions) != 1 || ws.Sessions[0].Context.ProjectID != p.ID {
		t.Fatal("session log must keep the dangling reference")
	}
}

// ============================================================
// Context resolution
// ============================================================

func TestResolveContext(t *testing.T) {
	ws, g, p, topic := buildHierarchy(t)

	got := ws.ResolveContext(&ContextRef{GoalID: g.ID, ProjectID: p.ID, TopicID: topic.ID})
	if got.GoalName != "Health" || got.ProjectName != "Running" || got.TopicName != "Intervals" {
		t.Fatalf("full resolution: %+v", got)
	}

	got = ws.ResolveContext(&ContextRef{ProjectID: "deleted"})
	if got.ProjectName != "Unknown" {
		t.Fatalf("dangling id should resolve as Unknown, got %q", got.ProjectName)
	}
	if got.GoalName != "" || got.TopicName != "" {
		t.Fatalf("empty ids should resolve to empty names: %+v", got)
	}

	if got := ws.ResolveContext(nil); got != (ResolvedContext{}) {
		t.Fatalf("nil ref should resolve empty: %+v", got)
	}
}

// ============================================================
// Quality annotation
// ============================================================

func TestAttachQuality(t *testing.T) {
	ws := New()
	ws.AppendSession(SessionRecord{ID: "s1", SessionType: ModeFocus, Completed: true})

	if !ws.AttachQuality("s1", 9, -2, "solid block") {
		t.Fatal("attach to existing session failed")
	}
	q := ws.Sessions[0].Quality
	if q.Rating != 5 || q.Distractions != 0 || q.Note != "solid block" {
		t.Fatalf("quality not clamped: %+v", q)
	}

	if ws.AttachQuality("missing", 3, 0, "") {
		t.Fatal("attach to missing session should report false")
	}
}
