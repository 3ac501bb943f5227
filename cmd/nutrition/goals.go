// ABOUTME: CLI commands for derived energy goals and weight plans.
// ABOUTME: Both read the stored profile; plans also use the latest weight entry.
package main

import (
	"errors"
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/harperreed/nutrition/internal/energy"
	"github.com/harperreed/nutrition/internal/models"
	"github.com/harperreed/nutrition/internal/plan"
)

var planTarget float64

const incompleteHint = "Profile incomplete. Set weight, height, age and sex with 'nutrition profile set'."

var goalsCmd = &cobra.Command{
	Use:     "goals",
	Aliases: []string{"g"},
	Short:   "Show BMR, TDEE and daily targets",
	Long: `Show goals derived from your profile:

  BMR       Mifflin-St Jeor basal metabolic rate
  TDEE      BMR times the activity multiplier
  Target    TDEE adjusted for your goal
  Macros    protein, carbs and fat in grams for your goal`,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newService().Goals()
		if err != nil {
			return fmt.Errorf("failed to compute goals: %w", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, r)
		}
		if !r.Complete {
			yellow.Fprintln(out, incompleteHint)
			return nil
		}

		g := r.Goals
		bold.Fprintln(out, "Daily goals")
		kv(out, "BMR", "%d kcal", g.BMR)
		kv(out, "TDEE", "%d kcal", g.TDEE)
		kv(out, "Target", "%d kcal", g.TargetCalories)
		kv(out, "Protein", "%d g", g.ProteinG)
		kv(out, "Carbs", "%d g", g.CarbsG)
		kv(out, "Fat", "%d g", g.FatG)
		return nil
	},
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Project weight plans toward a target",
	Long: `Project 3, 6, 9 and 12 month plans from your latest weight to a target.

Each plan shows the weekly rate, daily calories and macros, and whether the
rate is healthy (0.25 to 1.0 kg per week). The recommended plan is the
shortest healthy one.

Examples:
  nutrition plan               # use the profile's target weight
  nutrition plan --target 72   # explicit target`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var target *float64
		if cmd.Flags().Changed("target") {
			if err := models.ValidateWeight(planTarget); err != nil {
				return fmt.Errorf("target %w", err)
			}
			target = &planTarget
		}

		proj, err := newService().Plans(target)
		out := cmd.OutOrStdout()
		if errors.Is(err, energy.ErrIncompleteProfile) {
			yellow.Fprintln(out, incompleteHint)
			return nil
		}
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(out, proj)
		}

		direction := "gain"
		if proj.IsLosing {
			direction = "lose"
		}
		bold.Fprintf(out, "%.1f kg → %.1f kg (%s %.1f kg)\n",
			proj.CurrentWeightKg, proj.TargetWeightKg, direction, math.Abs(proj.WeightDiffKg))
		fmt.Fprintln(out)

		fmt.Fprintf(out, "  %s %s %s %s %s\n",
			faint.Sprint(padRight("months", 7)),
			faint.Sprint(padRight("kg/week", 8)),
			faint.Sprint(padRight("kcal/day", 9)),
			faint.Sprint(padRight("P/C/F g", 14)),
			faint.Sprint("feasibility"))
		for _, p := range proj.Plans {
			marker := " "
			if p.HorizonMonths == proj.Recommended.HorizonMonths {
				marker = "*"
			}
			fmt.Fprintf(out, "%s %s %s %s %s %s\n",
				marker,
				padRight(fmt.Sprintf("%d", p.HorizonMonths), 7),
				padRight(fmt.Sprintf("%.2f", p.WeeklyChangeKg), 8),
				padRight(fmt.Sprintf("%d", p.DailyCalories), 9),
				padRight(fmt.Sprintf("%d/%d/%d", p.Macros.ProteinG, p.Macros.CarbsG, p.Macros.FatG), 14),
				feasibilityLabel(p.Feasibility))
		}
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Recommended: %d months, ending %s\n",
			proj.Recommended.HorizonMonths, proj.Recommended.ProjectedEndDate.Format("2006-01-02"))
		return nil
	},
}

func feasibilityLabel(f plan.Feasibility) string {
	switch f {
	case plan.Healthy:
		return green.Sprint("healthy")
	case plan.TooFast:
		return red.Sprint("too fast")
	default:
		return yellow.Sprint("too slow")
	}
}

func init() {
	planCmd.Flags().Float64Var(&planTarget, "target", 0, "target weight in kg (default: profile target)")

	rootCmd.AddCommand(goalsCmd)
	rootCmd.AddCommand(planCmd)
}
