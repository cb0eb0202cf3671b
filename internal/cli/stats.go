package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mlktrr/fokus/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print focus statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		sum := stats.Compute(a.Workspace, time.Now())

		fmt.Printf("Today       %d min across %d sessions\n", sum.TodayFocusMinutes, sum.TodayFocusCount)
		fmt.Printf("Streak      %d days\n", sum.StreakDays)
		fmt.Printf("Best day    %d min\n", sum.BestDayMinutes)
		fmt.Printf("All time    %.1f h\n", float64(sum.TotalFocusMinutes)/60)
		fmt.Println()
		for _, d := range sum.Last7Days {
			bar := ""
			for i := 0; i < d.Minutes/15; i++ {
				bar += "█"
			}
			fmt.Printf("%s %3d min %s\n", d.Label, d.Minutes, bar)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
