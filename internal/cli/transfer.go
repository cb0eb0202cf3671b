package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mlktrr/fokus/internal/app"
	"github.com/mlktrr/fokus/internal/export"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Export the workspace as JSON, or the session log as CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		path := args[0]
		switch exportFormat {
		case "json":
			err = a.Export(path)
		case "csv":
			err = export.SessionsToCSV(a.Workspace, path)
		default:
			return fmt.Errorf("unrecognized format %q (want json or csv)", exportFormat)
		}
		if err != nil {
			return err
		}
		fmt.Printf("Exported %s\n", path)
		return nil
	},
}

var importMode string

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import a workspace JSON document",
	Long: `Import a previously exported workspace document.

In replace mode the local workspace is discarded for the import. In
merge mode the two are combined: planning edits propagate (incoming
wins), while session history is append-only (local wins on collision),
so merging the same file repeatedly never corrupts history.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		mode := app.ImportMode(importMode)
		if mode != app.ImportReplace && mode != app.ImportMerge {
			return fmt.Errorf("unrecognized mode %q (want replace or merge)", importMode)
		}
		if err := a.Import(args[0], mode); err != nil {
			return err
		}
		fmt.Println("Import successful.")
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "export format: json or csv")
	importCmd.Flags().StringVar(&importMode, "mode", "merge", "import mode: merge or replace")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
