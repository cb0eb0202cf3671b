// Package app owns the single shared workspace aggregate. Every mutation
// path (timer, planner edits, import, reset) goes through one App; there
// are no ambient singletons.
package app

import (
	"fmt"

	"github.com/mlktrr/fokus/internal/export"
	"github.com/mlktrr/fokus/internal/store"
	"github.com/mlktrr/fokus/internal/timer"
	"github.com/mlktrr/fokus/internal/workspace"
)

// ImportMode selects how an imported payload combines with local data.
type ImportMode string

const (
	ImportReplace ImportMode = "replace"
	ImportMerge   ImportMode = "merge"
)

type App struct {
	Store     *store.Store
	Workspace *workspace.Workspace
	Machine   *timer.Machine

	// LoadWarning is set when the persisted payload could not be
	// migrated and the app fell back to a fresh workspace.
	LoadWarning string

	confirm timer.ConfirmFunc
	notify  timer.NotifyFunc
}

// Open loads (or initializes) the workspace from the store at dbPath and
// builds the timer over it. A payload that fails migration is reported
// via LoadWarning and replaced with a fresh default workspace; load never
// fails on data shape.
func Open(dbPath string) (*App, error) {
	s, err := store.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	a := &App{Store: s, Workspace: workspace.New()}

	data, ok, err := s.Load()
	if err != nil {
		s.Close()
		return nil, err
	}
	if ok {
		ws, err := workspace.MigrateJSON(data)
		if err != nil {
			a.LoadWarning = fmt.Sprintf("stored data unusable (%v), starting fresh", err)
		} else {
			a.Workspace = ws
		}
	}

	a.Machine = timer.NewMachine(a.Workspace)
	return a, nil
}

// Close releases the store.
func (a *App) Close() error {
	return a.Store.Close()
}

// SetConfirm installs the confirmation collaborator on the current and
// every future machine.
func (a *App) SetConfirm(fn timer.ConfirmFunc) {
	a.confirm = fn
	a.Machine.SetConfirm(fn)
}

// SetNotify installs the notification collaborator on the current and
// every future machine.
func (a *App) SetNotify(fn timer.NotifyFunc) {
	a.notify = fn
	a.Machine.SetNotify(fn)
}

// Save persists the current workspace.
func (a *App) Save() error {
	data, err := a.Workspace.Encode()
	if err != nil {
		return err
	}
	return a.Store.Save(data)
}

// replaceWorkspace swaps in a new aggregate, retargeting the existing
// timer so the mode, the long-break counter, and any in-flight phase
// survive an import.
func (a *App) replaceWorkspace(ws *workspace.Workspace) {
	a.Workspace = ws
	a.Machine.Retarget(ws)
}

// Import reads a JSON document and applies it in the given mode: replace
// discards local data for the migrated import, merge combines the two
// workspaces. The result is persisted before returning.
func (a *App) Import(path string, mode ImportMode) error {
	incoming, err := export.FromJSON(path)
	if err != nil {
		return err
	}

	switch mode {
	case ImportReplace:
		a.replaceWorkspace(incoming)
	case ImportMerge:
		a.replaceWorkspace(workspace.Merge(a.Workspace, incoming))
	default:
		return fmt.Errorf("unrecognized import mode %q", mode)
	}
	return a.Save()
}

// Export writes the workspace JSON document to path.
func (a *App) Export(path string) error {
	return export.ToJSON(a.Workspace, path)
}

// ResetAll discards every task, session, and setting: fresh workspace,
// fresh timer, cleared phase count.
func (a *App) ResetAll() error {
	a.Workspace = workspace.New()
	a.Machine = timer.NewMachine(a.Workspace)
	a.Machine.SetConfirm(a.confirm)
	a.Machine.SetNotify(a.notify)
	return a.Save()
}
