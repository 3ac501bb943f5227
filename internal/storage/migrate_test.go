// ABOUTME: Tests for data migration between storage backends.
// ABOUTME: Covers sqlite-to-markdown, markdown-to-sqlite, and directory checks.
package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMigrateDataSQLiteToMarkdown(t *testing.T) {
	src := setupTestDB(t)
	m1, _, w := seed(t, src)
	dst := setupTestMarkdown(t)

	summary, err := MigrateData(src, dst)
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	if !summary.Profile || summary.Meals != 2 || summary.Weights != 1 {
		t.Errorf("unexpected summary: %+v", summary)
	}

	got, err := dst.GetMeal(m1.ID.String())
	if err != nil {
		t.Fatalf("GetMeal from dst failed: %v", err)
	}
	if got.Name != "Eggs" || got.FatG != 24 {
		t.Errorf("meal not preserved: %+v", got)
	}

	gw, err := dst.GetWeight(w.ID.String())
	if err != nil {
		t.Fatalf("GetWeight from dst failed: %v", err)
	}
	if gw.Notes == nil || *gw.Notes != "fasted" {
		t.Errorf("weight notes not preserved: %v", gw.Notes)
	}
}

func TestMigrateDataMarkdownToSQLite(t *testing.T) {
	src := setupTestMarkdown(t)
	seed(t, src)
	dst := setupTestDB(t)

	summary, err := MigrateData(src, dst)
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	if summary.Meals != 2 {
		t.Errorf("expected 2 meals, got %d", summary.Meals)
	}

	p, err := dst.GetProfile()
	if err != nil || p == nil {
		t.Fatalf("expected migrated profile, got %v, %v", p, err)
	}
	if p.Goal != "lose_weight" {
		t.Errorf("goal not preserved: %q", p.Goal)
	}
}

func TestMigrateEmptySource(t *testing.T) {
	summary, err := MigrateData(setupTestDB(t), setupTestMarkdown(t))
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	if summary.Profile || summary.Meals != 0 || summary.Weights != 0 {
		t.Errorf("expected empty summary, got %+v", summary)
	}
}

func TestIsDirNonEmpty(t *testing.T) {
	dir := t.TempDir()

	nonEmpty, err := IsDirNonEmpty(filepath.Join(dir, "missing"))
	if err != nil || nonEmpty {
		t.Errorf("missing dir: got %v, %v", nonEmpty, err)
	}

	nonEmpty, err = IsDirNonEmpty(dir)
	if err != nil || nonEmpty {
		t.Errorf("empty dir: got %v, %v", nonEmpty, err)
	}

	if err := os.WriteFile(filepath.Join(dir, "x"), nil, 0600); err != nil {
		t.Fatal(err)
	}
	nonEmpty, err = IsDirNonEmpty(dir)
	if err != nil || !nonEmpty {
		t.Errorf("non-empty dir: got %v, %v", nonEmpty, err)
	}
}
