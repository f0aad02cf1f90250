package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"slate/internal/catalog"
	"slate/internal/config"
	"slate/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	fake       *testsupport.FakeCatalog
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	cfg := testsupport.NewConfig(t)
	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		fake:       testsupport.NewFakeCatalog(),
		configPath: configPath,
		baseDir:    base,
	}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
delivery_root = %q
log_dir = %q

[catalog]
url = %q
script_name = %q
api_key = %q
project_id = %d

[journal]
enabled = true
path = %q
`,
		cfg.Paths.DeliveryRoot,
		cfg.Paths.LogDir,
		cfg.Catalog.URL,
		cfg.Catalog.ScriptName,
		cfg.Catalog.APIKey,
		cfg.Catalog.ProjectID,
		cfg.Journal.Path,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, conn catalog.Conn, configPath string) (string, string, error) {
	t.Helper()
	var configFlag string
	ctx := newCommandContext(&configFlag)
	ctx.conn = conn

	cmd := newRootCommandWithContext(ctx)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func intPtr(v int) *int { return &v }

// seedReadyShot registers one ready shot in the fake catalog and returns its
// frame pattern rooted in a fresh temp dir.
func seedReadyShot(t *testing.T, fake *testsupport.FakeCatalog, shotID int64, code string, frames ...int) string {
	t.Helper()
	pattern := testsupport.SequencePattern(t, "plate")
	if len(frames) > 0 {
		testsupport.WriteFrames(t, pattern, frames...)
	}

	fake.Shots = append(fake.Shots, catalog.Shot{
		ID:       shotID,
		Code:     code,
		Sequence: catalog.Ref{ID: 1, Type: "Sequence", Name: "010"},
	})
	fileID := shotID * 10
	fake.Versions[shotID] = catalog.Version{
		ID:             shotID + 100,
		FirstFrame:     intPtr(1001),
		LastFrame:      intPtr(1003),
		PublishedFiles: []catalog.Ref{{ID: fileID, Type: "PublishedFile"}},
	}
	fake.PublishedFiles[fileID] = catalog.PublishedFile{
		ID:            fileID,
		Path:          catalog.PlatformPath{Windows: pattern, Mac: pattern, Linux: pattern},
		VersionNumber: 3,
	}
	fake.Projects[99] = catalog.Project{ID: 99, Code: "NFA"}
	return pattern
}
