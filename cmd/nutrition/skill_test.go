// ABOUTME: Tests for the install-skill command.
// ABOUTME: Validates skill installation, confirmation handling, and embedded content.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func withSkipConfirm(t *testing.T, skip bool) {
	t.Helper()
	old := skillSkipConfirm
	skillSkipConfirm = skip
	t.Cleanup(func() { skillSkipConfirm = old })
}

// TestSkillInstallCreatesFile verifies the skill directory and file are created
// when they don't exist.
func TestSkillInstallCreatesFile(t *testing.T) {
	withSkipConfirm(t, true)
	home := t.TempDir()

	var out bytes.Buffer
	if err := installSkill(strings.NewReader(""), &out, home); err != nil {
		t.Fatalf("installSkill failed: %v", err)
	}

	skillPath := filepath.Join(home, ".claude", "skills", "nutrition", "SKILL.md")
	written, err := os.ReadFile(skillPath)
	if err != nil {
		t.Fatalf("Skill file not created: %v", err)
	}

	embedded, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		t.Fatalf("Failed to read embedded skill: %v", err)
	}
	if !bytes.Equal(written, embedded) {
		t.Error("Installed skill does not match embedded content")
	}
	if !strings.Contains(out.String(), "Installed nutrition skill") {
		t.Errorf("Expected success message, got %q", out.String())
	}
}

// TestSkillInstallOverwritesExistingFile verifies that an existing skill file
// is replaced.
func TestSkillInstallOverwritesExistingFile(t *testing.T) {
	withSkipConfirm(t, true)
	home := t.TempDir()

	skillDir := filepath.Join(home, ".claude", "skills", "nutrition")
	skillPath := filepath.Join(skillDir, "SKILL.md")
	if err := os.MkdirAll(skillDir, 0755); err != nil {
		t.Fatalf("Failed to create skill directory: %v", err)
	}
	if err := os.WriteFile(skillPath, []byte("# Old Skill\nstale content"), 0644); err != nil {
		t.Fatalf("Failed to write old skill file: %v", err)
	}

	var out bytes.Buffer
	if err := installSkill(strings.NewReader(""), &out, home); err != nil {
		t.Fatalf("installSkill failed: %v", err)
	}

	if !strings.Contains(out.String(), "already exists") {
		t.Error("Expected overwrite notice")
	}
	newData, err := os.ReadFile(skillPath)
	if err != nil {
		t.Fatalf("Failed to read new skill file: %v", err)
	}
	if strings.Contains(string(newData), "stale content") {
		t.Error("Old content should have been replaced")
	}
	if !strings.Contains(string(newData), "name: nutrition") {
		t.Error("Expected new content to contain 'name: nutrition'")
	}
}

// TestSkillInstallDeclined verifies nothing is written when the prompt is declined.
func TestSkillInstallDeclined(t *testing.T) {
	withSkipConfirm(t, false)
	home := t.TempDir()

	var out bytes.Buffer
	if err := installSkill(strings.NewReader("n\n"), &out, home); err != nil {
		t.Fatalf("installSkill failed: %v", err)
	}

	if !strings.Contains(out.String(), "Installation canceled.") {
		t.Errorf("Expected cancel message, got %q", out.String())
	}
	if _, err := os.Stat(filepath.Join(home, ".claude")); !os.IsNotExist(err) {
		t.Error("Expected no .claude directory after declining")
	}
}

// TestSkillInstallConfirmed verifies "yes" at the prompt installs the skill.
func TestSkillInstallConfirmed(t *testing.T) {
	withSkipConfirm(t, false)
	home := t.TempDir()

	var out bytes.Buffer
	if err := installSkill(strings.NewReader("yes\n"), &out, home); err != nil {
		t.Fatalf("installSkill failed: %v", err)
	}

	skillPath := filepath.Join(home, ".claude", "skills", "nutrition", "SKILL.md")
	if _, err := os.Stat(skillPath); err != nil {
		t.Fatalf("Skill file not created: %v", err)
	}
}

// TestSkillFSReadEmbeddedContent verifies the embedded SKILL.md has frontmatter.
func TestSkillFSReadEmbeddedContent(t *testing.T) {
	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		t.Fatalf("Failed to read embedded skill/SKILL.md: %v", err)
	}

	contentStr := string(content)
	if !strings.HasPrefix(contentStr, "---") {
		t.Error("Expected SKILL.md to start with YAML frontmatter (---)")
	}
	if !strings.Contains(contentStr, "name: nutrition") {
		t.Error("Expected frontmatter to contain 'name: nutrition'")
	}
	if !strings.Contains(contentStr, "description:") {
		t.Error("Expected frontmatter to contain 'description:'")
	}
}

// TestSkillSkipConfirmFlag verifies the flag exists and has correct defaults.
func TestSkillSkipConfirmFlag(t *testing.T) {
	flag := installSkillCmd.Flags().Lookup("yes")
	if flag == nil {
		t.Fatal("Expected --yes flag to be defined")
	}
	if flag.Shorthand != "y" {
		t.Errorf("Expected shorthand 'y', got %q", flag.Shorthand)
	}
	if flag.DefValue != "false" {
		t.Errorf("Expected default value 'false', got %q", flag.DefValue)
	}
}

// TestSkillEmbeddedContentReferencesTools verifies every MCP tool is documented.
func TestSkillEmbeddedContentReferencesTools(t *testing.T) {
	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		t.Fatalf("Failed to read embedded skill: %v", err)
	}

	expectedTools := []string{
		"mcp__nutrition__add_meal",
		"mcp__nutrition__list_meals",
		"mcp__nutrition__delete_meal",
		"mcp__nutrition__add_weight",
		"mcp__nutrition__set_profile",
		"mcp__nutrition__get_user_goals",
		"mcp__nutrition__get_weight_plans",
		"mcp__nutrition__get_streak",
		"mcp__nutrition__get_period_stats",
		"mcp__nutrition__get_calorie_trend",
		"mcp__nutrition__get_meal_type_distribution",
		"mcp__nutrition__get_macro_distribution",
		"mcp__nutrition__get_weight_stats",
	}

	contentStr := string(content)
	for _, tool := range expectedTools {
		if !strings.Contains(contentStr, tool) {
			t.Errorf("Expected embedded SKILL.md to reference %q", tool)
		}
	}
	for _, mt := range []string{"breakfast", "lunch", "dinner", "snack"} {
		if !strings.Contains(contentStr, mt) {
			t.Errorf("Expected embedded SKILL.md to document meal type %q", mt)
		}
	}
}
