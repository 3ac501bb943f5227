// ABOUTME: Tests for nutrition configuration management.
// ABOUTME: Covers load precedence, save, backend selection, and path expansion.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harperreed/nutrition/internal/storage"
)

// clearEnv unsets every NUTRITION_* override for the duration of a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"NUTRITION_BACKEND", "NUTRITION_DATA_DIR", "NUTRITION_LISTEN_ADDR"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

// withConfigHome points XDG_CONFIG_HOME at a fresh temp dir.
func withConfigHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestGetters(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		backend string
		addr    string
	}{
		{name: "defaults", cfg: Config{}, backend: BackendSQLite, addr: DefaultListenAddr},
		{name: "markdown", cfg: Config{Backend: BackendMarkdown}, backend: BackendMarkdown, addr: DefaultListenAddr},
		{name: "charm on custom port", cfg: Config{Backend: BackendCharm, ListenAddr: ":9000"}, backend: BackendCharm, addr: ":9000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.GetBackend(); got != tt.backend {
				t.Errorf("GetBackend() = %q, want %q", got, tt.backend)
			}
			if got := tt.cfg.GetListenAddr(); got != tt.addr {
				t.Errorf("GetListenAddr() = %q, want %q", got, tt.addr)
			}
		})
	}
}

func TestGetDataDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/xdg/data")
	if got := (&Config{}).GetDataDir(); got != storage.DataDir() {
		t.Errorf("GetDataDir() = %q, want %q", got, storage.DataDir())
	}
	if got := (&Config{}).GetDataDir(); got != filepath.Join("/xdg/data", "nutrition") {
		t.Errorf("GetDataDir() = %q, want XDG data dir", got)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := (&Config{DataDir: "~/food"}).GetDataDir(); got != filepath.Join(home, "food") {
		t.Errorf("GetDataDir() = %q, want expanded path", got)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		input string
		want  string
	}{
		{input: "", want: ""},
		{input: "/tmp/foo", want: "/tmp/foo"},
		{input: "relative/path", want: "relative/path"},
		{input: "~", want: home},
		{input: "~/nutrition", want: filepath.Join(home, "nutrition")},
		{input: "~other/x", want: "~other/x"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ExpandPath(tt.input); got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsValidBackend(t *testing.T) {
	for _, b := range Backends {
		if !IsValidBackend(b) {
			t.Errorf("IsValidBackend(%q) = false, want true", b)
		}
	}
	for _, b := range []string{"", "gorm", "SQLite"} {
		if IsValidBackend(b) {
			t.Errorf("IsValidBackend(%q) = true, want false", b)
		}
	}
}

func TestGetConfigPath(t *testing.T) {
	dir := withConfigHome(t)
	want := filepath.Join(dir, "nutrition", "config.json")
	if got := GetConfigPath(); got != want {
		t.Errorf("GetConfigPath() = %q, want %q", got, want)
	}
}

func TestLoadWithoutConfigFile(t *testing.T) {
	withConfigHome(t)
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with no config file should not error: %v", err)
	}
	if *cfg != (Config{}) {
		t.Errorf("Expected zero config, got %+v", cfg)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := withConfigHome(t)
	clearEnv(t)

	want := Config{Backend: BackendMarkdown, DataDir: "/srv/nutrition", ListenAddr: "0.0.0.0:8081"}
	if err := want.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, "nutrition", "config.json"))
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("config file mode = %v, want 0600", info.Mode().Perm())
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if *got != want {
		t.Errorf("Load() = %+v, want %+v", *got, want)
	}
}

func TestConfigJSONOmitsEmpty(t *testing.T) {
	data, err := json.Marshal(Config{Backend: BackendCharm})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `{"backend":"charm"}` {
		t.Errorf("Marshal = %s", data)
	}
}

func TestLoadFromInvalidJSON(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, path, "{not json")

	_, err := LoadFrom(path, "")
	if err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Errorf("Expected parse error, got %v", err)
	}
}

func TestLoadFromPrecedence(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		dotenv  string
		env     map[string]string
		want    Config
		wantErr bool
	}{
		{
			name: "file only",
			file: `{"backend":"markdown","data_dir":"/from/file"}`,
			want: Config{Backend: BackendMarkdown, DataDir: "/from/file"},
		},
		{
			name: "env overrides file",
			file: `{"backend":"sqlite","data_dir":"/from/file"}`,
			env:  map[string]string{"NUTRITION_BACKEND": "markdown"},
			want: Config{Backend: BackendMarkdown, DataDir: "/from/file"},
		},
		{
			name:   "dotenv overrides file",
			file:   `{"listen_addr":"127.0.0.1:8080"}`,
			dotenv: "NUTRITION_LISTEN_ADDR=127.0.0.1:9999\n",
			want:   Config{ListenAddr: "127.0.0.1:9999"},
		},
		{
			name:   "process env beats dotenv",
			dotenv: "NUTRITION_DATA_DIR=/from/dotenv\n",
			env:    map[string]string{"NUTRITION_DATA_DIR": "/from/env"},
			want:   Config{DataDir: "/from/env"},
		},
		{
			name:    "unknown backend",
			env:     map[string]string{"NUTRITION_BACKEND": "postgres"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			dir := t.TempDir()
			path := filepath.Join(dir, "config.json")
			dotenv := filepath.Join(dir, ".env")
			if tt.file != "" {
				writeFile(t, path, tt.file)
			}
			if tt.dotenv != "" {
				writeFile(t, dotenv, tt.dotenv)
				// godotenv sets process env; undo it after the test.
				for _, line := range strings.Split(strings.TrimSpace(tt.dotenv), "\n") {
					key, _, _ := strings.Cut(line, "=")
					t.Setenv(key, "")
					os.Unsetenv(key)
				}
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			got, err := LoadFrom(path, dotenv)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadFrom() failed: %v", err)
			}
			if *got != tt.want {
				t.Errorf("LoadFrom() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestOpenBackend(t *testing.T) {
	tests := []struct {
		backend string
		created string
	}{
		{backend: BackendSQLite, created: "nutrition.db"},
		{backend: BackendMarkdown},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			dir := t.TempDir()
			repo, err := OpenBackend(tt.backend, dir)
			if err != nil {
				t.Fatalf("OpenBackend(%q) failed: %v", tt.backend, err)
			}
			defer repo.Close()

			if tt.created != "" {
				if _, err := os.Stat(filepath.Join(dir, tt.created)); err != nil {
					t.Errorf("Expected %s to be created: %v", tt.created, err)
				}
			}

			p, err := repo.GetProfile()
			if err != nil || p != nil {
				t.Errorf("fresh store GetProfile() = %v, %v; want nil, nil", p, err)
			}
		})
	}
}

func TestOpenStorageDefaultsToSQLite(t *testing.T) {
	dir := t.TempDir()
	repo, err := (&Config{DataDir: dir}).OpenStorage()
	if err != nil {
		t.Fatalf("OpenStorage() failed: %v", err)
	}
	defer repo.Close()

	if _, ok := repo.(*storage.DB); !ok {
		t.Errorf("OpenStorage() returned %T, want *storage.DB", repo)
	}
}

func TestOpenBackendUnknown(t *testing.T) {
	if _, err := OpenBackend("postgres", t.TempDir()); err == nil {
		t.Error("Expected error for unknown backend")
	}
}
