package engine

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/bianoble/tokensync/internal/checksum"
	"github.com/bianoble/tokensync/internal/config"
	"github.com/bianoble/tokensync/internal/tokens"
)

// CheckEngine compares local token files against their source copies.
type CheckEngine struct {
	Logger *slog.Logger
}

// Check classifies every configured token file and, if none drifted,
// saves the local checksums to the cache file. The cache is left untouched
// whenever drift is found so that it always holds the last clean state.
//
// Per-file conditions (missing files, unparseable content, an unreadable
// cache) become statuses. Only unexpected I/O failures are returned.
func (e *CheckEngine) Check(ctx context.Context, cfg config.Config) (*CheckResult, error) {
	log := loggerOrDiscard(e.Logger)
	result := &CheckResult{Checksums: checksum.Record{}}

	cachePath := filepath.Join(cfg.LocalDir, cfg.CacheFile)
	previous, err := checksum.Load(cachePath)
	if err != nil {
		log.Debug("no usable checksum cache", "path", cachePath, "err", err)
	}

	for _, name := range cfg.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fr, sum, err := e.checkFile(cfg, name, log)
		if err != nil {
			return nil, FileError{File: name, Err: err}
		}
		if sum != "" {
			result.Checksums[name] = sum
			if prev, ok := previous[name]; ok && prev != sum {
				log.Debug("local content changed since last clean run", "file", name)
			}
		}
		if fr.Status.Drift() {
			result.Drifted++
		}
		log.Debug("checked token file", "file", name, "status", fr.Status)
		result.Files = append(result.Files, fr)
	}

	if !result.Clean() {
		log.Info("drift detected, checksum cache not updated", "drifted", result.Drifted)
		return result, nil
	}

	if err := checksum.Save(cfg.LocalDir, cfg.CacheFile, result.Checksums); err != nil {
		return nil, err
	}
	result.CacheWritten = true
	log.Info("checksum cache written", "path", cachePath, "files", len(result.Checksums))

	return result, nil
}

// checkFile returns the result for one file and the digest of its local
// copy, or "" if there is no local copy.
func (e *CheckEngine) checkFile(cfg config.Config, name string, log *slog.Logger) (FileResult, string, error) {
	fr := FileResult{Name: name}
	localPath := filepath.Join(cfg.LocalDir, name)

	localExists, err := exists(localPath)
	if err != nil {
		return fr, "", err
	}
	if !localExists {
		fr.Status = StatusMissing
		return fr, "", nil
	}

	localData, err := os.ReadFile(localPath)
	if err != nil {
		return fr, "", err
	}
	localSum := checksum.Compute(localData)

	sourcePath, ok := sourceFile(cfg, name)
	if !ok {
		log.Debug("source directory not configured", "file", name)
		fr.Status = StatusWarning
		return fr, localSum, nil
	}
	if found, err := exists(sourcePath); err != nil || !found {
		if err != nil {
			log.Debug("source file unreachable", "path", sourcePath, "err", err)
		}
		fr.Status = StatusWarning
		return fr, localSum, nil
	}

	sourceSum, err := checksum.File(sourcePath)
	if err != nil {
		log.Debug("source file unreadable", "path", sourcePath, "err", err)
		fr.Status = StatusWarning
		return fr, localSum, nil
	}

	if localSum == sourceSum {
		fr.Status = StatusCurrent
		return fr, localSum, nil
	}

	fr.Status = StatusOutdated
	fr.LocalTime = modTime(localPath)
	fr.SourceTime = modTime(sourcePath)

	counts, err := tokens.Compare(localPath, sourcePath, cfg.ValueMarker)
	if err != nil {
		log.Debug("token counts unavailable", "file", name, "err", err)
	} else {
		fr.Counts = counts
	}

	return fr, localSum, nil
}

// sourceFile returns the source path for name, or false when no source
// directory is configured.
func sourceFile(cfg config.Config, name string) (string, bool) {
	if cfg.SourceDir == "" {
		return "", false
	}
	return filepath.Join(cfg.SourceDir, name), true
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// modTime returns the modification time of path, or the zero time if it
// cannot be read.
func modTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

func loggerOrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return l
}
