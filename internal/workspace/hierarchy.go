package workspace

// Hierarchy operations. References are soft: a project's goalId or a
// topic's projectId may point at a deleted entity, and lookups resolve a
// missing reference as "Unknown" instead of failing. Archiving cascades
// down as an explicit sweep; deletion never cascades.

const unknownName = "Unknown"

// AddGoal appends a new goal and returns it.
func (ws *Workspace) AddGoal(name string) Goal {
	g := Goal{ID: newID(), Name: name}
	if g.Name == "" {
		g.Name = "Untitled"
	}
	ws.Goals = append(ws.Goals, g)
	return g
}

// AddProject appends a new project under the given goal id. The goal is
// not required to exist.
func (ws *Workspace) AddProject(goalID, name string) Project {
	p := Project{ID: newID(), GoalID: goalID, Name: name}
	if p.Name == "" {
		p.Name = "Untitled"
	}
	ws.Projects = append(ws.Projects, p)
	return p
}

// AddTopic appends a new topic under the given project id.
func (ws *Workspace) AddTopic(projectID, name string) Topic {
	t := Topic{ID: newID(), ProjectID: projectID, Name: name}
	if t.Name == "" {
		t.Name = "Untitled"
	}
	ws.Topics = append(ws.Topics, t)
	return t
}

// GoalByID returns the goal with the given id, or nil.
func (ws *Workspace) GoalByID(id string) *Goal {
	for i := range ws.Goals {
		if ws.Goals[i].ID == id {
			return &ws.Goals[i]
		}
	}
	return nil
}

// ProjectByID returns the project with the given id, or nil.
func (ws *Workspace) ProjectByID(id string) *Project {
	for i := range ws.Projects {
		if ws.Projects[i].ID == id {
			return &ws.Projects[i]
		}
	}
	return nil
}

// TopicByID returns the topic with the given id, or nil.
func (ws *Workspace) TopicByID(id string) *Topic {
	for i := range ws.Topics {
		if ws.Topics[i].ID == id {
			return &ws.Topics[i]
		}
	}
	return nil
}

// RenameGoal sets a goal's name. Empty names are ignored.
func (ws *Workspace) RenameGoal(id, name string) {
	if name == "" {
		return
	}
	if g := ws.GoalByID(id); g != nil {
		g.Name = name
	}
}

// RenameProject sets a project's name. Empty names are ignored.
func (ws *Workspace) RenameProject(id, name string) {
	if name == "" {
		return
	}
	if p := ws.ProjectByID(id); p != nil {
		p.Name = name
	}
}

// RenameTopic sets a topic's name. Empty names are ignored.
func (ws *Workspace) RenameTopic(id, name string) {
	if name == "" {
		return
	}
	if t := ws.TopicByID(id); t != nil {
		t.Name = name
	}
}

// ArchiveGoal archives a goal and sweeps the archive flag over its
// projects and their topics. Children are never deleted.
func (ws *Workspace) ArchiveGoal(id string) {
	g := ws.GoalByID(id)
	if g == nil {
		return
	}
	g.Archived = true
	for i := range ws.Projects {
		if ws.Projects[i].GoalID == id {
			ws.archiveProjectAt(i)
		}
	}
}

// ArchiveProject archives a project and sweeps its topics.
func (ws *Workspace) ArchiveProject(id string) {
	for i := range ws.Projects {
		if ws.Projects[i].ID == id {
			ws.archiveProjectAt(i)
			return
		}
	}
}

func (ws *Workspace) archiveProjectAt(i int) {
	ws.Projects[i].Archived = true
	for j := range ws.Topics {
		if ws.Topics[j].ProjectID == ws.Projects[i].ID {
			ws.Topics[j].Archived = true
		}
	}
}

// ArchiveTopic archives a single topic.
func (ws *Workspace) ArchiveTopic(id string) {
	if t := ws.TopicByID(id); t != nil {
		t.Archived = true
	}
}

// DeleteGoal removes a goal. Projects referencing it keep their goalId;
// the reference simply dangles.
func (ws *Workspace) DeleteGoal(id string) {
	for i := range ws.Goals {
		if ws.Goals[i].ID == id {
			ws.Goals = append(ws.Goals[:i], ws.Goals[i+1:]...)
			return
		}
	}
}

// DeleteProject removes a project, leaving topic and session references
// dangling.
func (ws *Workspace) DeleteProject(id string) {
	for i := range ws.Projects {
		if ws.Projects[i].ID == id {
			ws.Projects = append(ws.Projects[:i], ws.Projects[i+1:]...)
			return
		}
	}
}

// DeleteTopic removes a topic.
func (ws *Workspace) DeleteTopic(id string) {
	for i := range ws.Topics {
		if ws.Topics[i].ID == id {
			ws.Topics = append(ws.Topics[:i], ws.Topics[i+1:]...)
			return
		}
	}
}

// ResolvedContext is a context reference with every id looked up.
type ResolvedContext struct {
	GoalName    string
	ProjectName string
	TopicName   string
}

// ResolveContext resolves a context reference to display names. Missing
// entities resolve as "Unknown"; a nil reference resolves to empty names.
func (ws *Workspace) ResolveContext(ref *ContextRef) ResolvedContext {
	var out ResolvedContext
	if ref == nil {
		return out
	}
	if ref.GoalID != "" {
		out.GoalName = unknownName
		if g := ws.GoalByID(ref.GoalID); g != nil {
			out.GoalName = g.Name
		}
	}
	if ref.ProjectID != "" {
		out.ProjectName = unknownName
		if p := ws.ProjectByID(ref.ProjectID); p != nil {
			out.ProjectName = p.Name
		}
	}
	if ref.TopicID != "" {
		out.TopicName = unknownName
		if t := ws.TopicByID(ref.TopicID); t != nil {
			out.TopicName = t.Name
		}
	}
	return out
}
