// ABOUTME: Root Cobra command for the nutrition CLI.
// ABOUTME: Loads config and opens the storage backend via PersistentPre/PostRunE.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harperreed/nutrition/internal/config"
	"github.com/harperreed/nutrition/internal/logging"
	"github.com/harperreed/nutrition/internal/report"
	"github.com/harperreed/nutrition/internal/storage"
)

var (
	repo   storage.Repository
	cfg    *config.Config
	logger = logging.Discard()

	verbose     bool
	jsonOutput  bool
	backendFlag string
	dataDirFlag string
)

// Commands that never touch storage.
var noStorageCmds = map[string]bool{
	"version":       true,
	"help":          true,
	"install-skill": true,
	"completion":    true,
}

var rootCmd = &cobra.Command{
	Use:   "nutrition",
	Short: "Personal nutrition tracker with goals, plans and streaks",
	Long: `Nutrition is a CLI tool for logging meals and body weight, and for
turning that log into energy goals, weight plans, streaks and statistics.

QUICK START:

  $ nutrition profile set --weight 80 --height 180 --age 30 --sex male \
      --activity moderate --goal lose_weight --target 72
  $ nutrition goals                          # BMR, TDEE, calorie and macro targets
  $ nutrition meal add "Oatmeal" 350 --type breakfast --protein 12 --carbs 60 --fat 6
  $ nutrition weight add 79.6                # Log today's weight
  $ nutrition today                          # Today's intake vs target
  $ nutrition plan                           # 3/6/9/12 month plans toward your target
  $ nutrition streak                         # Consecutive days with a logged meal
  $ nutrition stats week                     # Weekly summary

STORAGE BACKENDS:

  sqlite     (default) ~/.local/share/nutrition/nutrition.db
  markdown   one file per meal/weight with YAML frontmatter
  charm      Charm KV with automatic cloud sync

  Select with --backend, NUTRITION_BACKEND, or "backend" in
  ~/.config/nutrition/config.json.

INTEGRATIONS:

  $ nutrition mcp                 # MCP server on stdio for AI assistants
  $ nutrition serve               # HTTP JSON API on 127.0.0.1:8080

  {
    "mcpServers": {
      "nutrition": { "command": "nutrition", "args": ["mcp"] }
    }
  }`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.New(os.Stderr, verbose)

		if noStorageCmds[cmd.Name()] {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if backendFlag != "" {
			if !config.IsValidBackend(backendFlag) {
				return fmt.Errorf("unknown backend: %q", backendFlag)
			}
			cfg.Backend = backendFlag
		}
		if dataDirFlag != "" {
			cfg.DataDir = dataDirFlag
		}

		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open %s storage: %w", cfg.GetBackend(), err)
		}
		logger.Debug("opened storage", "backend", cfg.GetBackend(), "data_dir", cfg.GetDataDir())
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo != nil {
			err := repo.Close()
			repo = nil
			return err
		}
		return nil
	},
}

// newService builds a report service over the open repository.
func newService() *report.Service {
	return report.NewService(repo, report.WithClock(timeNow), report.WithLogger(logger))
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging on stderr")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print reports as JSON")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "storage backend: sqlite, markdown or charm")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "data directory (default ~/.local/share/nutrition)")
}
