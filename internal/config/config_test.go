package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lepa/internal/config"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[access]
viewer_key = "sea"
admin_key = "shore"
`)

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected resolved path %q to exist, got %q (%v)", path, resolved, exists)
	}
	if cfg.Paths.APIBind != "127.0.0.1:7519" {
		t.Fatalf("unexpected api bind: %q", cfg.Paths.APIBind)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.Blobs.PublicBaseURL != "http://127.0.0.1:7519" {
		t.Fatalf("unexpected public base url: %q", cfg.Blobs.PublicBaseURL)
	}
}

func TestLoadRequiresKeys(t *testing.T) {
	path := writeConfig(t, "")

	_, _, _, err := config.Load(path)
	if err == nil {
		t.Fatal("expected error when access keys missing")
	}
	if !strings.Contains(err.Error(), "viewer_key") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadRejectsMatchingKeys(t *testing.T) {
	path := writeConfig(t, `
[access]
viewer_key = "same"
admin_key = "same"
`)

	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error when viewer and admin keys match")
	}
}

func TestEnvironmentOverridesFileKeys(t *testing.T) {
	t.Setenv("LEPA_VIEWER_KEY", "env-viewer")
	t.Setenv("LEPA_ADMIN_KEY", "env-admin")

	path := writeConfig(t, `
[access]
viewer_key = "file-viewer"
admin_key = "file-admin"
`)

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Access.ViewerKey != "env-viewer" || cfg.Access.AdminKey != "env-admin" {
		t.Fatalf("expected env keys to win, got %+v", cfg.Access)
	}
}

func TestLoadRejectsUnknownLogFormat(t *testing.T) {
	path := writeConfig(t, `
[access]
viewer_key = "sea"
admin_key = "shore"

[logging]
format = "xml"
`)

	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for unknown log format")
	}
}

func TestEnsureDirectoriesCreatesBlobFolders(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.BlobDir = filepath.Join(base, "blobs")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{"music", "images"} {
		if _, err := os.Stat(filepath.Join(base, "blobs", dir)); err != nil {
			t.Fatalf("expected blob folder %s: %v", dir, err)
		}
	}
}
