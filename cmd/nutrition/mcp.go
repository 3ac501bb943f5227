// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs a stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harperreed/nutrition/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout. Logs go to stderr.

CONFIGURATION:

  {
    "mcpServers": {
      "nutrition": {
        "command": "nutrition",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  add_meal, list_meals, delete_meal          Meal log
  add_weight, list_weights, delete_weight    Weight log
  set_profile, get_profile                   Profile
  get_user_goals                             BMR, TDEE, calorie and macro targets
  get_weight_plans                           3/6/9/12 month plans toward a target
  get_streak                                 Current and longest logging streak
  get_period_stats                           Totals and averages for a date range
  get_calorie_trend                          Calorie direction over a window
  get_meal_type_distribution                 Meals per type over a window
  get_macro_distribution                     Protein/carbs/fat energy share
  get_weight_stats                           Weight change and weekly rate

AVAILABLE RESOURCES:

  nutrition://today      Today's meals and remaining calories
  nutrition://recent     Recent meals and weight entries
  nutrition://summary    Goals, streak and 7-day statistics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(repo, mcp.WithLogger(logger), mcp.WithClock(timeNow))
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
