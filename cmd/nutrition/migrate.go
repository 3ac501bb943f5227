// ABOUTME: CLI command for copying data between storage backends.
// ABOUTME: Refuses to write into a non-empty destination unless --force is given.
package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/harperreed/nutrition/internal/config"
	"github.com/harperreed/nutrition/internal/storage"
)

var (
	migrateTo     string
	migrateToDir  string
	migrateDryRun bool
	migrateForce  bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy data to another storage backend",
	Long: `Copy the profile, meals and weight entries from the current backend
to another one.

USAGE:

  nutrition migrate --to markdown --dry-run   # Preview what would be migrated
  nutrition migrate --to markdown             # Perform the migration
  nutrition migrate --to sqlite --to-dir ~/nutrition-backup

After migrating, switch backends with --backend, NUTRITION_BACKEND, or the
"backend" key in ~/.config/nutrition/config.json.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if !config.IsValidBackend(migrateTo) {
			return fmt.Errorf("unknown backend: %q (use sqlite, markdown, or charm)", migrateTo)
		}
		if migrateTo == cfg.GetBackend() && (migrateToDir == "" || migrateTo == config.BackendCharm) {
			return fmt.Errorf("already using the %s backend", migrateTo)
		}

		dstDir := cfg.GetDataDir()
		if migrateToDir != "" {
			dstDir = config.ExpandPath(migrateToDir)
		}

		if migrateDryRun {
			data, err := repo.GetAllData()
			if err != nil {
				return fmt.Errorf("failed to read source data: %w", err)
			}
			yellow.Fprintln(out, "Dry run mode - no changes will be made")
			fmt.Fprintf(out, "  %s → %s (%s)\n", cfg.GetBackend(), migrateTo, dstDir)
			fmt.Fprintf(out, "  Profile: %t\n", data.Profile != nil)
			fmt.Fprintf(out, "  Meals:   %d\n", len(data.Meals))
			fmt.Fprintf(out, "  Weights: %d\n", len(data.Weights))
			return nil
		}

		if !migrateForce {
			if err := checkMigrateDestination(migrateTo, dstDir); err != nil {
				return err
			}
		}

		dst, err := config.OpenBackend(migrateTo, dstDir)
		if err != nil {
			return fmt.Errorf("failed to open %s storage: %w", migrateTo, err)
		}
		defer dst.Close()

		summary, err := storage.MigrateData(repo, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		green.Fprintf(out, "✓ Migrated to %s\n", migrateTo)
		fmt.Fprintf(out, "  Profile: %t\n", summary.Profile)
		fmt.Fprintf(out, "  Meals:   %d\n", summary.Meals)
		fmt.Fprintf(out, "  Weights: %d\n", summary.Weights)
		return nil
	},
}

// checkMigrateDestination rejects destinations that already hold data.
func checkMigrateDestination(backend, dir string) error {
	switch backend {
	case config.BackendMarkdown:
		for _, sub := range []string{"meals", "weights"} {
			nonEmpty, err := storage.IsDirNonEmpty(filepath.Join(dir, sub))
			if err != nil {
				return err
			}
			if nonEmpty {
				return fmt.Errorf("destination %s already has data (use --force to merge)", dir)
			}
		}
	case config.BackendSQLite:
		dst, err := config.OpenBackend(backend, dir)
		if err != nil {
			return fmt.Errorf("failed to open %s storage: %w", backend, err)
		}
		defer dst.Close()
		data, err := dst.GetAllData()
		if err != nil {
			return fmt.Errorf("failed to read destination: %w", err)
		}
		if len(data.Meals) > 0 || len(data.Weights) > 0 {
			return fmt.Errorf("destination %s already has data (use --force to merge)", dir)
		}
	}
	return nil
}

func init() {
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "destination backend: sqlite, markdown or charm")
	migrateCmd.Flags().StringVar(&migrateToDir, "to-dir", "", "destination data directory (default: current data dir)")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "migrate even if the destination has data")
	_ = migrateCmd.MarkFlagRequired("to")

	rootCmd.AddCommand(migrateCmd)
}
