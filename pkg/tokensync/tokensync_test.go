package tokensync

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// Compile-time interface checks.
var (
	_ Checker = (*Client)(nil)
	_ Syncer  = (*Client)(nil)
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestNewDefaults(t *testing.T) {
	local := t.TempDir()
	client, err := New(Options{LocalDir: local})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	cfg := client.Config()
	if cfg.LocalDir != local {
		t.Errorf("local dir = %q, want %q", cfg.LocalDir, local)
	}
	if len(cfg.Files) != len(DefaultFiles) {
		t.Errorf("files = %v", cfg.Files)
	}
	if cfg.SourceDir != "" {
		t.Errorf("source dir = %q, want empty", cfg.SourceDir)
	}
}

func TestNewFromConfigWithOverride(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "tokensync.yaml")
	writeFile(t, cfgPath, "version: 1\nsource_dir: /from/config\nfiles: [A.tokens.json]\n")

	client, err := New(Options{ConfigPath: cfgPath, SourceDir: "/from/options"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	cfg := client.Config()
	if cfg.SourceDir != "/from/options" {
		t.Errorf("source dir = %q, options should win", cfg.SourceDir)
	}
	if len(cfg.Files) != 1 || cfg.Files[0] != "A.tokens.json" {
		t.Errorf("files = %v, want config list", cfg.Files)
	}
	if cfg.LocalDir != dir {
		t.Errorf("local dir = %q, want config dir %q", cfg.LocalDir, dir)
	}
}

func TestNewInvalidOptions(t *testing.T) {
	if _, err := New(Options{LocalDir: t.TempDir(), Files: []string{"../escape.json"}}); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestNewMissingConfig(t *testing.T) {
	if _, err := New(Options{ConfigPath: filepath.Join(t.TempDir(), "missing.yaml")}); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestClientCheckAndSync(t *testing.T) {
	local := t.TempDir()
	source := t.TempDir()
	writeFile(t, filepath.Join(local, "A.tokens.json"), `{"x":{"$value":1}}`)
	writeFile(t, filepath.Join(source, "A.tokens.json"), `{"x":{"$value":1},"y":{"$value":2}}`)

	client, err := New(Options{LocalDir: local, SourceDir: source, Files: []string{"A.tokens.json"}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx := context.Background()
	result, err := client.Check(ctx)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if result.Clean() {
		t.Fatal("expected drift before sync")
	}
	fr := result.Files[0]
	if fr.Status != StatusOutdated || fr.Counts == nil || fr.Counts.Diff != 1 {
		t.Errorf("result = %+v", fr)
	}

	syncResult, err := client.Sync(ctx, SyncOptions{})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if len(syncResult.Written) != 1 {
		t.Errorf("written = %v", syncResult.Written)
	}

	result, err = client.Check(ctx)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !result.Clean() || !result.CacheWritten {
		t.Errorf("expected clean run with cache written, got %+v", result)
	}
}
