package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mlktrr/fokus/internal/app"
	"github.com/mlktrr/fokus/internal/store"
	"github.com/mlktrr/fokus/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "fokus",
	Short: "Local-first pomodoro timer, daily planner, and focus history",
	Long: `fokus is a local-first productivity timer: a pomodoro-style
focus/break scheduler with a daily planner, a goal/project/topic
hierarchy, and streak/heatmap statistics. All data stays on this
machine in a single SQLite file and can be exported, imported, and
merged as a JSON document.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()
		return tui.Run(a)
	},
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "path to the database file (default ~/.config/fokus/fokus.db)")
	viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
	viper.SetEnvPrefix("fokus")
	viper.BindEnv("db") // FOKUS_DB
}

// SetVersionInfo wires build metadata into the root command.
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func resolveDBPath() (string, error) {
	if p := viper.GetString("db"); p != "" {
		return p, nil
	}
	return store.DefaultDBPath()
}

func openApp() (*app.App, error) {
	path, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve db path: %w", err)
	}
	return app.Open(path)
}
