package export

import (
	"fmt"
	"os"

	"github.com/mlktrr/fokus/internal/workspace"
)

// ToJSON writes the workspace as the interchange JSON document.
func ToJSON(ws *workspace.Workspace, path string) error {
	data, err := ws.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}

// FromJSON reads a JSON document and migrates it to a canonical
// workspace. The returned error distinguishes an unreadable file, an
// undecodable document, and an unsupported schema version
// (workspace.ErrUnsupportedVersion); every lesser defect degrades to
// defaults inside migration.
func FromJSON(path string) (*workspace.Workspace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read import file: %w", err)
	}
	return workspace.MigrateJSON(data)
}
