// ABOUTME: CLI commands for period statistics, trends and distributions.
// ABOUTME: Windows are whole calendar days ending today unless --from/--to are given.
package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/harperreed/nutrition/internal/eventlog"
	"github.com/harperreed/nutrition/internal/models"
	"github.com/harperreed/nutrition/internal/stats"
)

var (
	statsDays   int
	statsFrom   string
	statsTo     string
	bucketsBy   string
	mealsDays   int
	trendDays   int
	macrosDays  int
	bucketsDays int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize intake over a period",
	Long: `Summarize calories and macros over a period.

Without flags the period is the last 7 days including today.

Examples:
  nutrition stats --days 14
  nutrition stats --from 2024-12-01 --to 2024-12-15
  nutrition stats week
  nutrition stats trend --days 30
  nutrition stats buckets --by week --days 90`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := newService()

		var (
			ps  stats.PeriodStats
			err error
		)
		switch {
		case statsFrom != "" || statsTo != "":
			if statsFrom == "" || statsTo == "" {
				return fmt.Errorf("--from and --to must be given together")
			}
			from, err := models.ParseDate(statsFrom)
			if err != nil {
				return err
			}
			to, err := models.ParseDate(statsTo)
			if err != nil {
				return err
			}
			if to.Before(from) {
				return fmt.Errorf("--to is before --from")
			}
			ps, err = svc.Period(from, eventlog.EndOfDay(to))
			if err != nil {
				return fmt.Errorf("failed to compute stats: %w", err)
			}
		default:
			if statsDays < 1 {
				return fmt.Errorf("--days must be at least 1")
			}
			ps, err = svc.LastDays(statsDays)
			if err != nil {
				return fmt.Errorf("failed to compute stats: %w", err)
			}
		}

		return writePeriod(cmd.OutOrStdout(), "Period", ps)
	},
}

var statsWeekCmd = &cobra.Command{
	Use:   "week",
	Short: "Summarize the last 7 days",
	RunE: func(cmd *cobra.Command, args []string) error {
		ps, err := newService().Week()
		if err != nil {
			return fmt.Errorf("failed to compute weekly stats: %w", err)
		}
		return writePeriod(cmd.OutOrStdout(), "Last 7 days", ps)
	},
}

var statsMonthCmd = &cobra.Command{
	Use:   "month",
	Short: "Summarize the last 30 days",
	RunE: func(cmd *cobra.Command, args []string) error {
		ps, err := newService().Month()
		if err != nil {
			return fmt.Errorf("failed to compute monthly stats: %w", err)
		}
		return writePeriod(cmd.OutOrStdout(), "Last 30 days", ps)
	},
}

var statsTrendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Compare calories in the later half of a window with the earlier half",
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := newService().Trend(trendDays)
		if err != nil {
			return fmt.Errorf("failed to compute trend: %w", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, t)
		}
		bold.Fprintf(out, "Calorie trend, last %d days\n", trendDays)
		kv(out, "Direction", "%s", t.Direction)
		kv(out, "Change", "%+d kcal/day", t.Change)
		return nil
	},
}

var statsMealsCmd = &cobra.Command{
	Use:   "meals",
	Short: "Count meals by type",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newService().MealTypes(mealsDays)
		if err != nil {
			return fmt.Errorf("failed to count meals: %w", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, c)
		}
		bold.Fprintf(out, "Meals by type, last %d days\n", mealsDays)
		for _, mt := range models.AllMealTypes {
			kv(out, string(mt), "%d", c.Get(mt))
		}
		kv(out, "total", "%d", c.Total())
		return nil
	},
}

var statsMacrosCmd = &cobra.Command{
	Use:   "macros",
	Short: "Show the energy share of protein, carbs and fat",
	RunE: func(cmd *cobra.Command, args []string) error {
		ps, err := newService().LastDays(macrosDays)
		if err != nil {
			return fmt.Errorf("failed to compute macros: %w", err)
		}
		share := stats.MacroDistribution(ps.TotalProtein, ps.TotalCarbs, ps.TotalFat)

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, share)
		}
		bold.Fprintf(out, "Macro split, last %d days\n", macrosDays)
		kv(out, "Protein", "%d%% (%.0f g)", share.ProteinPct, ps.TotalProtein)
		kv(out, "Carbs", "%d%% (%.0f g)", share.CarbsPct, ps.TotalCarbs)
		kv(out, "Fat", "%d%% (%.0f g)", share.FatPct, ps.TotalFat)
		return nil
	},
}

var statsBucketsCmd = &cobra.Command{
	Use:   "buckets",
	Short: "Group a window into day, week or month buckets",
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := stats.ParseGranularity(bucketsBy)
		if err != nil {
			return err
		}
		buckets, err := newService().Buckets(bucketsDays, g)
		if err != nil {
			return fmt.Errorf("failed to compute buckets: %w", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			if buckets == nil {
				buckets = []stats.Bucket{}
			}
			return printJSON(out, buckets)
		}
		if len(buckets) == 0 {
			fmt.Fprintln(out, "No meals in this window.")
			return nil
		}
		for _, b := range buckets {
			fmt.Fprintf(out, "%s %7.0f kcal  avg %5d  %3d meals  %2d days\n",
				faint.Sprint(b.Start.Format("2006-01-02")),
				b.TotalCalories, b.AvgCalories, b.TotalMeals, b.DaysTracked)
		}
		return nil
	},
}

func writePeriod(out io.Writer, title string, ps stats.PeriodStats) error {
	if jsonOutput {
		return printJSON(out, ps)
	}
	bold.Fprintln(out, title)
	kv(out, "Days tracked", "%d", ps.DaysTracked)
	kv(out, "Meals", "%d", ps.TotalMeals)
	kv(out, "Total calories", "%.0f kcal", ps.TotalCalories)
	kv(out, "Avg per day", "%d kcal", ps.AvgCalories)
	kv(out, "Protein", "%.0f g", ps.TotalProtein)
	kv(out, "Carbs", "%.0f g", ps.TotalCarbs)
	kv(out, "Fat", "%.0f g", ps.TotalFat)
	return nil
}

func init() {
	statsCmd.Flags().IntVarP(&statsDays, "days", "d", stats.WeekDays, "trailing window in days")
	statsCmd.Flags().StringVar(&statsFrom, "from", "", "start date (YYYY-MM-DD)")
	statsCmd.Flags().StringVar(&statsTo, "to", "", "end date, inclusive (YYYY-MM-DD)")

	statsTrendCmd.Flags().IntVarP(&trendDays, "days", "d", stats.WeekDays, "trailing window in days")
	statsMealsCmd.Flags().IntVarP(&mealsDays, "days", "d", stats.MonthDays, "trailing window in days")
	statsMacrosCmd.Flags().IntVarP(&macrosDays, "days", "d", stats.WeekDays, "trailing window in days")
	statsBucketsCmd.Flags().IntVarP(&bucketsDays, "days", "d", stats.MonthDays, "trailing window in days")
	statsBucketsCmd.Flags().StringVar(&bucketsBy, "by", string(stats.ByWeek), "bucket size: day, week or month")

	statsCmd.AddCommand(statsWeekCmd)
	statsCmd.AddCommand(statsMonthCmd)
	statsCmd.AddCommand(statsTrendCmd)
	statsCmd.AddCommand(statsMealsCmd)
	statsCmd.AddCommand(statsMacrosCmd)
	statsCmd.AddCommand(statsBucketsCmd)
	rootCmd.AddCommand(statsCmd)
}
