package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bianoble/tokensync/internal/checksum"
	"github.com/bianoble/tokensync/internal/config"
	"github.com/bianoble/tokensync/internal/sandbox"
)

// SyncEngine copies source token files over their local copies.
// The source always wins; there is no merging.
type SyncEngine struct {
	Logger *slog.Logger
}

// SyncOptions configures a sync operation.
type SyncOptions struct {
	DryRun bool
}

// Sync brings every local token file in line with its source copy. Files
// whose source cannot be read are skipped. After a real run in which every
// token file exists locally, the checksum cache is refreshed so the next
// check starts from the synced state.
func (e *SyncEngine) Sync(ctx context.Context, cfg config.Config, opts SyncOptions) (*SyncResult, error) {
	log := loggerOrDiscard(e.Logger)
	result := &SyncResult{}

	// Dry runs never write, so the token directory stays nil and need not exist.
	var dir *sandbox.Dir
	if !opts.DryRun {
		if err := os.MkdirAll(cfg.LocalDir, 0755); err != nil {
			return nil, fmt.Errorf("creating local directory %s: %w", cfg.LocalDir, err)
		}
		var err error
		if dir, err = sandbox.Open(cfg.LocalDir); err != nil {
			return nil, err
		}
	}

	sums := checksum.Record{}
	complete := true

	for _, name := range cfg.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		action, content, err := e.syncFile(cfg, dir, name, opts, log)
		if err != nil {
			return nil, FileError{File: name, Err: err}
		}

		switch action.Action {
		case "written":
			result.Written = append(result.Written, action)
		case "unchanged":
			result.Unchanged = append(result.Unchanged, action)
		default:
			result.Skipped = append(result.Skipped, action)
		}

		if content == nil {
			complete = false
			continue
		}
		sums[name] = checksum.Compute(content)
	}

	if opts.DryRun {
		return result, nil
	}
	if !complete {
		log.Info("some token files are still missing locally, checksum cache not updated")
		return result, nil
	}

	if err := checksum.Save(cfg.LocalDir, cfg.CacheFile, sums); err != nil {
		return nil, err
	}
	result.CacheWritten = true

	return result, nil
}

// syncFile handles one token file. It returns the action taken and the
// local content after the action, or nil if the file has no local copy.
func (e *SyncEngine) syncFile(cfg config.Config, dir *sandbox.Dir, name string, opts SyncOptions, log *slog.Logger) (FileAction, []byte, error) {
	action := FileAction{Path: name}
	localPath := filepath.Join(cfg.LocalDir, name)

	local, localErr := os.ReadFile(localPath)
	if localErr != nil && !errors.Is(localErr, fs.ErrNotExist) {
		return action, nil, localErr
	}
	localExists := localErr == nil

	sourcePath, ok := sourceFile(cfg, name)
	if !ok {
		action.Action = "skipped"
		action.Reason = "source directory not configured"
		return action, existingContent(local, localExists), nil
	}

	source, err := os.ReadFile(sourcePath)
	if err != nil {
		log.Debug("source file unreadable", "path", sourcePath, "err", err)
		action.Action = "skipped"
		action.Reason = "source file not found"
		return action, existingContent(local, localExists), nil
	}

	if localExists && bytes.Equal(local, source) {
		action.Action = "unchanged"
		return action, local, nil
	}

	action.Action = "written"
	if opts.DryRun {
		return action, source, nil
	}

	perm := os.FileMode(0644)
	if info, err := os.Stat(localPath); err == nil {
		perm = info.Mode().Perm()
	}
	if err := dir.WriteFile(name, source, perm); err != nil {
		return action, nil, err
	}
	log.Debug("token file written", "file", name, "bytes", len(source))

	return action, source, nil
}

func existingContent(data []byte, ok bool) []byte {
	if !ok {
		return nil
	}
	if data == nil {
		return []byte{}
	}
	return data
}
