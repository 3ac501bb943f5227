// ABOUTME: Tests specific to the markdown file layout.
// ABOUTME: Checks paths, frontmatter parsing, and atomic writes.
package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harperreed/nutrition/internal/models"
)

func TestMarkdownFileLayout(t *testing.T) {
	dir := t.TempDir()
	store, err := NewMarkdownStore(dir)
	if err != nil {
		t.Fatalf("NewMarkdownStore failed: %v", err)
	}

	m := models.NewMeal("Salad", models.MealLunch, 420).WithEatenAt(day(15, 12))
	if err := store.CreateMeal(m); err != nil {
		t.Fatalf("CreateMeal failed: %v", err)
	}
	want := filepath.Join(dir, "meals", "2024", "01", "2024-01-15-lunch-"+m.ID.String()[:8]+".md")
	if _, err := os.Stat(want); err != nil {
		t.Errorf("expected meal file at %s: %v", want, err)
	}

	w := models.NewWeightEntry(80).WithRecordedAt(day(15, 7)).WithNotes("scale at gym")
	if err := store.CreateWeight(w); err != nil {
		t.Fatalf("CreateWeight failed: %v", err)
	}
	path := filepath.Join(dir, "weights", "2024", "01", "2024-01-15-"+w.ID.String()[:8]+".md")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected weight file: %v", err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "---\n") || !strings.Contains(content, "weight_kg: 80") {
		t.Errorf("unexpected frontmatter: %s", content)
	}
	if !strings.Contains(content, "scale at gym") {
		t.Error("expected notes in body")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected 0600 permissions, got %v", info.Mode().Perm())
	}
}

func TestParseFrontmatter(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantHeader string
		wantBody   string
	}{
		{"header and body", "---\nid: x\n---\nnotes\n", "id: x\n", "notes\n"},
		{"no body", "---\nid: x\n---\n", "id: x\n", ""},
		{"no frontmatter", "just text", "", "just text"},
		{"unterminated", "---\nid: x\n", "", "---\nid: x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header, body := parseFrontmatter(tt.content)
			if header != tt.wantHeader {
				t.Errorf("header: got %q, want %q", header, tt.wantHeader)
			}
			if body != tt.wantBody {
				t.Errorf("body: got %q, want %q", body, tt.wantBody)
			}
		})
	}
}

func TestMarkdownSkipsNonMarkdownFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewMarkdownStore(dir)
	if err != nil {
		t.Fatalf("NewMarkdownStore failed: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "meals"), 0750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "meals", "README.txt"), []byte("ignore me"), 0600); err != nil {
		t.Fatal(err)
	}

	meals, err := store.ListMeals(nil, 0)
	if err != nil {
		t.Fatalf("ListMeals failed: %v", err)
	}
	if len(meals) != 0 {
		t.Errorf("expected no meals, got %d", len(meals))
	}
}

func TestMarkdownRejectsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewMarkdownStore(dir)
	if err != nil {
		t.Fatalf("NewMarkdownStore failed: %v", err)
	}
	if err := atomicWrite(filepath.Join(dir, "meals", "2024", "01", "bad.md"), []byte("no header")); err != nil {
		t.Fatal(err)
	}

	if _, err := store.ListMeals(nil, 0); err == nil {
		t.Error("expected error for file without frontmatter")
	}
}
