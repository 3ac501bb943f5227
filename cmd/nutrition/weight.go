// ABOUTME: CLI commands for logging and reviewing body weight.
// ABOUTME: Weight entries are stored in kilograms.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/harperreed/nutrition/internal/models"
)

var (
	weightAt    string
	weightNotes string
	weightLimit int
)

var weightCmd = &cobra.Command{
	Use:     "weight",
	Aliases: []string{"w"},
	Short:   "Log and review body weight",
	Long: `Log body weight in kilograms and review the trend.

COMMANDS:

  add      Log a weight entry
  list     List recent entries
  delete   Delete an entry by ID or ID prefix
  stats    Start, current, change and weekly rate`,
}

var weightAddCmd = &cobra.Command{
	Use:     "add <kg>",
	Aliases: []string{"a"},
	Short:   "Log a weight entry",
	Long: `Log a weight entry in kilograms.

Examples:
  nutrition weight add 79.6
  nutrition weight add 80.1 --at 2024-12-10 --notes "after holidays"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kg, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid weight: %s", args[0])
		}
		if err := models.ValidateWeight(kg); err != nil {
			return err
		}

		w := models.NewWeightEntry(kg)
		if weightAt != "" {
			t, err := models.ParseTimestamp(weightAt)
			if err != nil {
				return fmt.Errorf("invalid timestamp: %s", weightAt)
			}
			w.WithRecordedAt(t)
		}
		if weightNotes != "" {
			w.WithNotes(weightNotes)
		}

		if err := repo.CreateWeight(w); err != nil {
			return fmt.Errorf("failed to create weight entry: %w", err)
		}

		out := cmd.OutOrStdout()
		green.Fprintln(out, "✓ Added weight")
		fmt.Fprintf(out, "  %s %.1f kg\n", faint.Sprint(shortID(w.ID)), w.WeightKg)
		return nil
	},
}

var weightListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List recent weight entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		weights, err := repo.ListWeights(weightLimit)
		if err != nil {
			return fmt.Errorf("failed to list weights: %w", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, weights)
		}
		if len(weights) == 0 {
			fmt.Fprintln(out, "No weight entries found.")
			return nil
		}

		for _, w := range weights {
			line := fmt.Sprintf("%s %s %6.1f kg",
				faint.Sprint(shortID(w.ID)),
				faint.Sprint(w.RecordedAt.Format("2006-01-02 15:04")),
				w.WeightKg)
			if w.Notes != nil {
				line += "  " + faint.Sprint(truncate(*w.Notes, 40))
			}
			fmt.Fprintln(out, line)
		}
		return nil
	},
}

var weightDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a weight entry",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := repo.GetWeight(args[0])
		if err != nil {
			return fmt.Errorf("weight entry not found: %w", err)
		}

		if err := repo.DeleteWeight(w.ID.String()); err != nil {
			return fmt.Errorf("failed to delete weight entry: %w", err)
		}

		out := cmd.OutOrStdout()
		yellow.Fprintln(out, "✗ Deleted weight")
		fmt.Fprintf(out, "  %s %.1f kg\n", faint.Sprint(shortID(w.ID)), w.WeightKg)
		return nil
	},
}

var weightStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize weight history",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newService().Weight()
		if err != nil {
			return fmt.Errorf("failed to compute weight stats: %w", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, r)
		}
		if r.Entries == 0 {
			fmt.Fprintln(out, "No weight entries found.")
			return nil
		}

		bold.Fprintln(out, "Weight")
		kv(out, "Start", "%.1f kg", *r.StartKg)
		kv(out, "Current", "%.1f kg", *r.CurrentKg)
		kv(out, "Change", "%+.1f kg (%+.1f%%)", r.TotalChangeKg, r.ChangePct)
		kv(out, "Weekly rate", "%+.2f kg/week", r.WeeklyChangeKg)
		kv(out, "Trend", "%s", r.Trend)
		kv(out, "Entries", "%d", r.Entries)
		return nil
	},
}

func init() {
	weightAddCmd.Flags().StringVar(&weightAt, "at", "", "timestamp (YYYY-MM-DD HH:MM)")
	weightAddCmd.Flags().StringVar(&weightNotes, "notes", "", "optional notes")

	weightListCmd.Flags().IntVarP(&weightLimit, "limit", "n", 20, "max number of results")

	weightCmd.AddCommand(weightAddCmd)
	weightCmd.AddCommand(weightListCmd)
	weightCmd.AddCommand(weightDeleteCmd)
	weightCmd.AddCommand(weightStatsCmd)
	rootCmd.AddCommand(weightCmd)
}
