// ABOUTME: CLI commands for logging, listing and deleting meals.
// ABOUTME: Meals carry calories plus optional protein, carbs and fat in grams.
package main

import (
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/harperreed/nutrition/internal/models"
)

var (
	mealType    string
	mealProtein float64
	mealCarbs   float64
	mealFat     float64
	mealAt      string
	mealLimit   int
	mealFilter  string
)

var mealCmd = &cobra.Command{
	Use:     "meal",
	Aliases: []string{"m"},
	Short:   "Log and manage meals",
	Long: `Log meals with calories and optional macros.

COMMANDS:

  add      Log a meal
  list     List recent meals
  delete   Delete a meal by ID or ID prefix

Meal types: breakfast, lunch, dinner, snack`,
}

var mealAddCmd = &cobra.Command{
	Use:     "add <name> <calories>",
	Aliases: []string{"a"},
	Short:   "Log a meal",
	Long: `Log a meal.

Examples:
  nutrition meal add "Oatmeal" 350 --type breakfast
  nutrition meal add "Chicken salad" 520 -t lunch --protein 42 --carbs 20 --fat 28
  nutrition meal add "Pizza" 900 -t dinner --at "2024-12-14 19:30"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		calories, err := strconv.ParseFloat(args[1], 64)
		if err != nil || math.IsNaN(calories) || math.IsInf(calories, 0) {
			return fmt.Errorf("invalid calories: %s", args[1])
		}

		m := models.NewMeal(args[0], models.MealType(mealType), calories).
			WithMacros(mealProtein, mealCarbs, mealFat)

		if mealAt != "" {
			t, err := models.ParseTimestamp(mealAt)
			if err != nil {
				return fmt.Errorf("invalid timestamp: %s", mealAt)
			}
			m.WithEatenAt(t)
		}

		if err := models.ValidateMeal(m); err != nil {
			return err
		}

		if err := repo.CreateMeal(m); err != nil {
			return fmt.Errorf("failed to create meal: %w", err)
		}

		out := cmd.OutOrStdout()
		green.Fprintf(out, "✓ Added %s\n", m.MealType)
		fmt.Fprintf(out, "  %s %s %.0f kcal\n", faint.Sprint(shortID(m.ID)), m.Name, m.Calories)
		return nil
	},
}

var mealListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List recent meals",
	Long: `List recent meals, most recent first.

Each line shows: ID  TIMESTAMP  TYPE  KCAL  P/C/F  NAME

The ID is an 8-character prefix you can use with 'nutrition meal delete'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var filter *models.MealType
		if mealFilter != "" {
			if !models.IsValidMealType(mealFilter) {
				return fmt.Errorf("unknown meal type: %s", mealFilter)
			}
			mt := models.MealType(mealFilter)
			filter = &mt
		}

		meals, err := repo.ListMeals(filter, mealLimit)
		if err != nil {
			return fmt.Errorf("failed to list meals: %w", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, meals)
		}
		if len(meals) == 0 {
			fmt.Fprintln(out, "No meals found.")
			return nil
		}

		for _, m := range meals {
			fmt.Fprintf(out, "%s %s %s %6.0f kcal  %s  %s\n",
				faint.Sprint(shortID(m.ID)),
				faint.Sprint(m.EatenAt.Format("2006-01-02 15:04")),
				padRight(string(m.MealType), 9),
				m.Calories,
				faint.Sprintf("P%.0f/C%.0f/F%.0f", m.ProteinG, m.CarbsG, m.FatG),
				truncate(m.Name, 40))
		}
		return nil
	},
}

var mealDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a meal",
	Long: `Delete a meal by its ID or ID prefix.

If the prefix matches multiple meals, an error is returned.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := repo.GetMeal(args[0])
		if err != nil {
			return fmt.Errorf("meal not found: %w", err)
		}

		if err := repo.DeleteMeal(m.ID.String()); err != nil {
			return fmt.Errorf("failed to delete meal: %w", err)
		}

		out := cmd.OutOrStdout()
		yellow.Fprintf(out, "✗ Deleted %s\n", m.MealType)
		fmt.Fprintf(out, "  %s %s %.0f kcal\n", faint.Sprint(shortID(m.ID)), m.Name, m.Calories)
		return nil
	},
}

func init() {
	mealAddCmd.Flags().StringVarP(&mealType, "type", "t", string(models.MealSnack), "meal type: breakfast, lunch, dinner or snack")
	mealAddCmd.Flags().Float64Var(&mealProtein, "protein", 0, "protein in grams")
	mealAddCmd.Flags().Float64Var(&mealCarbs, "carbs", 0, "carbohydrates in grams")
	mealAddCmd.Flags().Float64Var(&mealFat, "fat", 0, "fat in grams")
	mealAddCmd.Flags().StringVar(&mealAt, "at", "", "timestamp (YYYY-MM-DD HH:MM)")

	mealListCmd.Flags().StringVarP(&mealFilter, "type", "t", "", "filter by meal type")
	mealListCmd.Flags().IntVarP(&mealLimit, "limit", "n", 20, "max number of results")

	mealCmd.AddCommand(mealAddCmd)
	mealCmd.AddCommand(mealListCmd)
	mealCmd.AddCommand(mealDeleteCmd)
	rootCmd.AddCommand(mealCmd)
}
