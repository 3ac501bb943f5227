// ABOUTME: Integration tests for the nutrition CLI binary.
// ABOUTME: Builds the binary and drives a full logging workflow through it.
package test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFullWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping binary build in short mode")
	}

	projectRoot, _ := filepath.Abs("..")
	tmpDir := t.TempDir()
	binary := filepath.Join(tmpDir, "nutrition")

	buildCmd := exec.Command("go", "build", "-o", binary, "./cmd/nutrition")
	buildCmd.Dir = projectRoot
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build: %v\n%s", err, output)
	}

	dataDir := filepath.Join(tmpDir, "data")
	env := append(os.Environ(),
		"XDG_CONFIG_HOME="+filepath.Join(tmpDir, "config"),
		"NUTRITION_BACKEND=sqlite",
		"NO_COLOR=1",
	)

	run := func(args ...string) (string, error) {
		fullArgs := append([]string{"--data-dir", dataDir}, args...)
		cmd := exec.Command(binary, fullArgs...)
		cmd.Env = env
		output, err := cmd.CombinedOutput()
		return string(output), err
	}

	output, err := run("profile", "set", "--weight", "82.5", "--height", "178", "--age", "41", "--sex", "female",
		"--activity", "light", "--goal", "lose_weight", "--target", "75")
	if err != nil {
		t.Fatalf("Failed to set profile: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Profile updated") {
		t.Errorf("Expected 'Profile updated' in output, got: %s", output)
	}

	now := time.Now().Format("2006-01-02 15:04")
	output, err = run("meal", "add", "Greek yogurt", "180", "--type", "breakfast", "--protein", "17", "--at", now)
	if err != nil {
		t.Fatalf("Failed to add meal: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Added breakfast") {
		t.Errorf("Expected 'Added breakfast' in output, got: %s", output)
	}

	output, err = run("weight", "add", "82.1")
	if err != nil {
		t.Fatalf("Failed to add weight: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Added weight") {
		t.Errorf("Expected 'Added weight' in output, got: %s", output)
	}

	output, err = run("today")
	if err != nil {
		t.Fatalf("Failed to show today: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Greek yogurt") {
		t.Errorf("Expected meal in today output, got: %s", output)
	}

	output, err = run("streak")
	if err != nil {
		t.Fatalf("Failed to show streak: %v\n%s", err, output)
	}
	if !strings.Contains(output, "1 day streak") {
		t.Errorf("Expected '1 day streak' in output, got: %s", output)
	}

	output, err = run("plan")
	if err != nil {
		t.Fatalf("Failed to show plan: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Recommended") {
		t.Errorf("Expected 'Recommended' in plan output, got: %s", output)
	}

	if _, err := os.Stat(filepath.Join(dataDir, "nutrition.db")); err != nil {
		t.Errorf("Expected database in data dir: %v", err)
	}
}
