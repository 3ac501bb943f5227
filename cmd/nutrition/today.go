// ABOUTME: CLI command for today's intake.
// ABOUTME: Lists today's meals with totals against the calorie target.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var todayCmd = &cobra.Command{
	Use:     "today",
	Aliases: []string{"t"},
	Short:   "Show today's meals and remaining calories",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newService().Day()
		if err != nil {
			return fmt.Errorf("failed to build today's report: %w", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, r)
		}

		bold.Fprintln(out, r.Date.Format("Monday, January 2"))
		if len(r.Meals) == 0 {
			fmt.Fprintln(out, "  No meals logged yet.")
		}
		for _, m := range r.Meals {
			fmt.Fprintf(out, "  %s %s %6.0f kcal  %s\n",
				faint.Sprint(m.EatenAt.Format("15:04")),
				padRight(string(m.MealType), 9),
				m.Calories,
				truncate(m.Name, 40))
		}
		fmt.Fprintln(out)

		t := r.Totals
		kv(out, "Calories", "%.0f kcal", t.Calories)
		kv(out, "Macros", "P%.0f/C%.0f/F%.0f g (%d/%d/%d%%)",
			t.ProteinG, t.CarbsG, t.FatG, r.Macros.ProteinPct, r.Macros.CarbsPct, r.Macros.FatPct)
		if r.TargetCalories > 0 {
			kv(out, "Target", "%d kcal", r.TargetCalories)
			kv(out, "Remaining", "%d kcal", r.RemainingCalories)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(todayCmd)
}
