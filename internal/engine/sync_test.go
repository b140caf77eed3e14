package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/bianoble/tokensync/internal/checksum"
)

func TestSyncWritesOutdatedAndMissing(t *testing.T) {
	cfg := testConfig(t)
	writeAll(t, cfg, oneToken)
	writeToken(t, cfg.SourceDir, cfg.Files[0], twoTokens)
	if err := os.Remove(filepath.Join(cfg.LocalDir, cfg.Files[1])); err != nil {
		t.Fatal(err)
	}

	eng := &SyncEngine{}
	result, err := eng.Sync(context.Background(), cfg, SyncOptions{})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}

	if len(result.Written) != 2 {
		t.Errorf("written = %v, want 2 files", result.Written)
	}
	if len(result.Unchanged) != 1 || result.Unchanged[0].Path != cfg.Files[2] {
		t.Errorf("unchanged = %v", result.Unchanged)
	}
	if !result.CacheWritten {
		t.Error("cache should be refreshed after a full sync")
	}

	data, err := os.ReadFile(filepath.Join(cfg.LocalDir, cfg.Files[0]))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != twoTokens {
		t.Errorf("local content = %s, want source content", data)
	}
	if _, err := os.Stat(filepath.Join(cfg.LocalDir, cfg.Files[1])); err != nil {
		t.Errorf("missing file should be created: %v", err)
	}

	check, err := (&CheckEngine{}).Check(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Check after sync: %v", err)
	}
	if !check.Clean() {
		t.Errorf("check after sync should be clean, drifted = %d", check.Drifted)
	}
}

func TestSyncDryRun(t *testing.T) {
	cfg := testConfig(t)
	writeAll(t, cfg, oneToken)
	writeToken(t, cfg.SourceDir, cfg.Files[0], twoTokens)

	eng := &SyncEngine{}
	result, err := eng.Sync(context.Background(), cfg, SyncOptions{DryRun: true})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}

	if len(result.Written) != 1 {
		t.Errorf("written = %v, want 1 planned write", result.Written)
	}
	if result.CacheWritten {
		t.Error("dry run must not write the cache")
	}

	data, _ := os.ReadFile(filepath.Join(cfg.LocalDir, cfg.Files[0]))
	if string(data) != oneToken {
		t.Error("dry run must not modify local files")
	}
	if _, err := os.Stat(cachePath(cfg)); !os.IsNotExist(err) {
		t.Error("dry run must not create the cache")
	}
}

func TestSyncSkipsMissingSource(t *testing.T) {
	cfg := testConfig(t)
	writeAll(t, cfg, oneToken)
	if err := os.Remove(filepath.Join(cfg.SourceDir, cfg.Files[0])); err != nil {
		t.Fatal(err)
	}

	eng := &SyncEngine{}
	result, err := eng.Sync(context.Background(), cfg, SyncOptions{})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}

	if len(result.Skipped) != 1 || result.Skipped[0].Path != cfg.Files[0] {
		t.Fatalf("skipped = %v", result.Skipped)
	}
	if result.Skipped[0].Reason == "" {
		t.Error("skipped file should carry a reason")
	}
	if !result.CacheWritten {
		t.Error("cache should be written when every file exists locally")
	}

	rec, err := checksum.Load(cachePath(cfg))
	if err != nil {
		t.Fatal(err)
	}
	if rec[cfg.Files[0]] != checksum.Compute([]byte(oneToken)) {
		t.Error("skipped file should keep its local digest in the cache")
	}
}

func TestSyncIncompleteLeavesCache(t *testing.T) {
	cfg := testConfig(t)
	writeAll(t, cfg, oneToken)
	if err := os.Remove(filepath.Join(cfg.SourceDir, cfg.Files[0])); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(filepath.Join(cfg.LocalDir, cfg.Files[0])); err != nil {
		t.Fatal(err)
	}

	eng := &SyncEngine{}
	result, err := eng.Sync(context.Background(), cfg, SyncOptions{})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if result.CacheWritten {
		t.Error("cache must not be written while a file is still missing locally")
	}
}

func TestSyncNoSourceDir(t *testing.T) {
	cfg := testConfig(t)
	writeAll(t, cfg, oneToken)
	cfg.SourceDir = ""

	eng := &SyncEngine{}
	result, err := eng.Sync(context.Background(), cfg, SyncOptions{})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if len(result.Skipped) != len(cfg.Files) {
		t.Errorf("skipped = %d, want %d", len(result.Skipped), len(cfg.Files))
	}
}

func TestSyncCreatesLocalDir(t *testing.T) {
	cfg := testConfig(t)
	writeAll(t, cfg, oneToken)
	cfg.LocalDir = filepath.Join(cfg.LocalDir, "new", "tokens")

	eng := &SyncEngine{}
	result, err := eng.Sync(context.Background(), cfg, SyncOptions{})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if len(result.Written) != len(cfg.Files) {
		t.Errorf("written = %d, want %d", len(result.Written), len(cfg.Files))
	}
	if !result.CacheWritten {
		t.Error("cache should be written")
	}
}

func TestSyncPreservesPermissions(t *testing.T) {
	cfg := testConfig(t)
	writeAll(t, cfg, oneToken)
	writeToken(t, cfg.SourceDir, cfg.Files[0], twoTokens)
	localPath := filepath.Join(cfg.LocalDir, cfg.Files[0])
	if err := os.Chmod(localPath, 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := (&SyncEngine{}).Sync(context.Background(), cfg, SyncOptions{}); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	info, err := os.Stat(localPath)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("perm = %04o, want 0600", perm)
	}
}

func TestSyncRefusesSymlinkOutsideLocalDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink test not reliable on Windows")
	}

	cfg := testConfig(t)
	cfg.Files = []string{"Desktop.tokens.json"}
	writeToken(t, cfg.SourceDir, cfg.Files[0], twoTokens)

	outside := t.TempDir()
	writeToken(t, outside, cfg.Files[0], oneToken)
	if err := os.Symlink(filepath.Join(outside, cfg.Files[0]), filepath.Join(cfg.LocalDir, cfg.Files[0])); err != nil {
		t.Fatal(err)
	}

	eng := &SyncEngine{}
	_, err := eng.Sync(context.Background(), cfg, SyncOptions{})
	var fe FileError
	if !errors.As(err, &fe) || fe.File != cfg.Files[0] {
		t.Fatalf("expected FileError for %s, got %v", cfg.Files[0], err)
	}

	data, err := os.ReadFile(filepath.Join(outside, cfg.Files[0]))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != oneToken {
		t.Errorf("file outside the local directory was modified: %s", data)
	}
}
