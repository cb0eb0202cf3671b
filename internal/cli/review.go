package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/mlktrr/fokus/internal/workspace"
)

var (
	reviewWeek       string
	reviewReflection string
	reviewIntention  string
	reviewList       bool
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Show or edit the weekly review",
	Long: `Show or edit the review document for an ISO week (for example
2026-W23). Without flags the current week's review is shown; passing
--reflection or --intention writes that part of it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if reviewList {
			weeks := make([]string, 0, len(a.Workspace.Reviews))
			for week := range a.Workspace.Reviews {
				weeks = append(weeks, week)
			}
			sort.Strings(weeks)
			if len(weeks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No reviews yet.")
				return nil
			}
			for _, week := range weeks {
				fmt.Fprintln(cmd.OutOrStdout(), week)
			}
			return nil
		}

		week := reviewWeek
		if week == "" {
			week = workspace.WeekKey(time.Now())
		}

		if cmd.Flags().Changed("reflection") || cmd.Flags().Changed("intention") {
			review := a.Workspace.Reviews[week]
			if cmd.Flags().Changed("reflection") {
				review.Reflection = reviewReflection
			}
			if cmd.Flags().Changed("intention") {
				review.Intention = reviewIntention
			}
			a.Workspace.SetReview(week, review)
			if err := a.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Review saved for %s.\n", week)
			return nil
		}

		review, ok := a.Workspace.Reviews[week]
		if !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "No review for %s yet.\n", week)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Week %s\n", week)
		if review.Reflection != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Reflection: %s\n", review.Reflection)
		}
		if review.Intention != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Intention:  %s\n", review.Intention)
		}
		return nil
	},
}

func init() {
	reviewCmd.Flags().StringVar(&reviewWeek, "week", "", "ISO week key (default: the current week)")
	reviewCmd.Flags().StringVar(&reviewReflection, "reflection", "", "what went well and what got in the way")
	reviewCmd.Flags().StringVar(&reviewIntention, "intention", "", "the focus for next week")
	reviewCmd.Flags().BoolVar(&reviewList, "list", false, "list the weeks that have a review")
	rootCmd.AddCommand(reviewCmd)
}
