package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"slate/internal/config"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const minimalConfig = `
[catalog]
url = "https://studio.example.com/api"
script_name = "slate"
api_key = "secret"
project_id = 42
`

func TestLoadMinimalConfigAppliesDefaults(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := writeConfig(t, minimalConfig)
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected resolved existing path %q, got %q exists=%v", path, resolved, exists)
	}

	if cfg.Catalog.DeliveryStatus != "rfd" {
		t.Fatalf("unexpected delivery status: %q", cfg.Catalog.DeliveryStatus)
	}
	if cfg.Catalog.DeliveredStatus != "dlvr" {
		t.Fatalf("unexpected delivered status: %q", cfg.Catalog.DeliveredStatus)
	}
	if cfg.Catalog.RequestTimeout != 30 {
		t.Fatalf("unexpected request timeout: %d", cfg.Catalog.RequestTimeout)
	}
	wantRoot := filepath.Join(tempHome, "deliveries")
	if cfg.Paths.DeliveryRoot != wantRoot {
		t.Fatalf("unexpected delivery root: got %q want %q", cfg.Paths.DeliveryRoot, wantRoot)
	}
	if !cfg.Journal.Enabled {
		t.Fatal("expected journal enabled by default")
	}
	if cfg.Journal.Path != filepath.Join(tempHome, ".local", "share", "slate", "journal.db") {
		t.Fatalf("unexpected journal path: %q", cfg.Journal.Path)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if !strings.Contains(cfg.Templates.DeliverySequence, "%04d") {
		t.Fatalf("expected frame placeholder in default sequence template: %q", cfg.Templates.DeliverySequence)
	}
}

func TestLoadReadsAPIKeyFromEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SLATE_CATALOG_KEY", "env-secret")

	path := writeConfig(t, `
[catalog]
url = "https://studio.example.com/api"
script_name = "slate"
project_id = 7
`)
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Catalog.APIKey != "env-secret" {
		t.Fatalf("expected API key from env, got %q", cfg.Catalog.APIKey)
	}
}

func TestLoadRejectsMissingCatalogSettings(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cases := []struct {
		name     string
		contents string
		want     string
	}{
		{
			name:     "missing url",
			contents: "[catalog]\nscript_name = \"slate\"\napi_key = \"k\"\nproject_id = 1\n",
			want:     "catalog.url is required",
		},
		{
			name:     "bad url scheme",
			contents: "[catalog]\nurl = \"ftp://x\"\nscript_name = \"slate\"\napi_key = \"k\"\nproject_id = 1\n",
			want:     "must be an http(s) URL",
		},
		{
			name:     "missing project",
			contents: "[catalog]\nurl = \"https://x\"\nscript_name = \"slate\"\napi_key = \"k\"\n",
			want:     "catalog.project_id",
		},
		{
			name:     "same status codes",
			contents: "[catalog]\nurl = \"https://x\"\nscript_name = \"slate\"\napi_key = \"k\"\nproject_id = 1\ndelivery_status = \"fin\"\ndelivered_status = \"fin\"\n",
			want:     "must differ",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.contents)
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err.Error(), tc.want)
			}
		})
	}
}

func TestLoadRejectsTemplateWithoutShotToken(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeConfig(t, minimalConfig+`
[templates]
delivery_sequence = "{root}/{Sequence}/plate.%04d.exr"
`)
	_, _, _, err := config.Load(path)
	if err == nil || !strings.Contains(err.Error(), "{Shot}") {
		t.Fatalf("expected missing {Shot} token error, got %v", err)
	}
}

func TestWriteSampleRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := config.WriteSample(path); err != nil {
		t.Fatalf("WriteSample: %v", err)
	}
	if err := config.WriteSample(path); err == nil {
		t.Fatal("expected overwrite refusal")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[catalog]") {
		t.Fatal("sample config missing catalog section")
	}
}

func TestEnsureDirectoriesCreatesLogAndJournalDirs(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Journal.Enabled = true
	cfg.Journal.Path = filepath.Join(base, "journal", "journal.db")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, dir := range []string{cfg.Paths.LogDir, filepath.Join(base, "journal")} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s, err=%v", dir, err)
		}
	}
}
