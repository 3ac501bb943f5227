// ABOUTME: CLI command for the logging streak.
// ABOUTME: Shows current and longest streaks plus the reached and next milestone.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show consecutive days with a logged meal",
	Long: `Show your logging streak.

The current streak counts consecutive logged days back from today. It is 0
until a meal is logged today; the longest streak is kept regardless.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newService().Streak()
		if err != nil {
			return fmt.Errorf("failed to compute streak: %w", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, r)
		}

		bold.Fprintf(out, "🔥 %d day streak\n", r.Current)
		kv(out, "Longest", "%d days", r.Longest)
		if r.HasToday {
			kv(out, "Today", "%s", green.Sprint("logged"))
		} else {
			kv(out, "Today", "%s", yellow.Sprint("not logged yet"))
		}
		if r.Milestone != nil {
			kv(out, "Milestone", "%s: %s", r.Milestone.Title, r.Milestone.Message)
		}
		if r.Next != nil {
			kv(out, "Next", "%s in %d days", r.Next.Title, r.Next.Days-r.Current)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(streakCmd)
}
