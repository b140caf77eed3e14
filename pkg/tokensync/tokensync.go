// Package tokensync provides the public Go library API for tokensync.
//
// tokensync detects drift between a local set of design-token files and a
// canonical source copy, and can copy the source over the local files.
//
// # Basic Usage
//
//	client, err := tokensync.New(tokensync.Options{
//	    LocalDir:  "./tokens",
//	    SourceDir: "/mnt/design/export",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := client.Check(ctx)
//	if !result.Clean() {
//	    syncResult, err := client.Sync(ctx, tokensync.SyncOptions{})
//	}
package tokensync

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/bianoble/tokensync/internal/config"
	"github.com/bianoble/tokensync/internal/engine"
)

// Checker compares local token files against their source copies.
type Checker interface {
	Check(ctx context.Context) (*CheckResult, error)
}

// Syncer copies source token files over their local copies.
type Syncer interface {
	Sync(ctx context.Context, opts SyncOptions) (*SyncResult, error)
}

// SyncOptions configures a sync operation.
type SyncOptions struct {
	DryRun bool
}

// Options configures a tokensync client. Explicit fields override the
// values read from ConfigPath.
type Options struct {
	// ConfigPath is an optional tokensync.yaml to start from.
	ConfigPath string

	// LocalDir holds the working copy. Default: the config file's directory,
	// or the current directory without a config file.
	LocalDir string

	// SourceDir holds the canonical copy. Empty means unreachable.
	SourceDir string

	// Files to compare, in report order. Default: DefaultFiles.
	Files []string

	// CacheFile is relative to LocalDir. Default: ".token-checksums.json".
	CacheFile string

	// Logger receives debug and info records. Nil discards them.
	Logger *slog.Logger
}

// Client is the main entry point for the tokensync library.
// It implements Checker and Syncer.
type Client struct {
	cfg    config.Config
	logger *slog.Logger
}

// New creates a Client from opts and validates the resulting config.
func New(opts Options) (*Client, error) {
	var base *config.Config
	if opts.ConfigPath != "" {
		cfg, err := config.Load(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		base = cfg
	} else {
		base = config.Default(".")
	}

	overlay := &config.Config{
		SourceDir: opts.SourceDir,
		LocalDir:  opts.LocalDir,
		Files:     opts.Files,
		CacheFile: opts.CacheFile,
	}
	cfg := config.Merge(base, overlay)

	abs, err := filepath.Abs(cfg.LocalDir)
	if err != nil {
		return nil, fmt.Errorf("resolving local directory: %w", err)
	}
	cfg.LocalDir = abs

	if errs := config.Validate(cfg); len(errs) > 0 {
		return nil, &config.ValidationError{Errors: errs}
	}

	return &Client{cfg: *cfg, logger: opts.Logger}, nil
}

// Config returns the resolved configuration the client runs with.
func (c *Client) Config() Config {
	return c.cfg
}

// Check compares every configured file and saves the checksum cache when
// nothing drifted.
func (c *Client) Check(ctx context.Context) (*CheckResult, error) {
	eng := &engine.CheckEngine{Logger: c.logger}
	return eng.Check(ctx, c.cfg)
}

// Sync copies differing source files into the local directory.
func (c *Client) Sync(ctx context.Context, opts SyncOptions) (*SyncResult, error) {
	eng := &engine.SyncEngine{Logger: c.logger}
	return eng.Sync(ctx, c.cfg, engine.SyncOptions{DryRun: opts.DryRun})
}
