package engine

import (
	"time"

	"github.com/bianoble/tokensync/internal/checksum"
	"github.com/bianoble/tokensync/internal/tokens"
)

// Status classifies one token file after comparing local and source copies.
type Status string

const (
	StatusMissing  Status = "missing"  // no local copy
	StatusWarning  Status = "warning"  // local present, source unreachable
	StatusOutdated Status = "outdated" // contents differ
	StatusCurrent  Status = "current"  // contents identical
)

// Drift reports whether the status should prompt an update.
func (s Status) Drift() bool {
	return s == StatusMissing || s == StatusOutdated
}

// Message is the human-readable description of the status.
func (s Status) Message() string {
	switch s {
	case StatusMissing:
		return "Local file missing"
	case StatusWarning:
		return "Source file not found"
	case StatusOutdated:
		return "Updates available"
	case StatusCurrent:
		return "Up to date"
	default:
		return string(s)
	}
}

// FileError ties an unexpected failure to the token file it occurred on.
type FileError struct {
	File string
	Err  error
}

func (e FileError) Error() string {
	return e.File + ": " + e.Err.Error()
}

func (e FileError) Unwrap() error {
	return e.Err
}

// FileResult is the comparison outcome for one token file.
// Timestamps and Counts are only set for outdated files. A zero timestamp
// means the modification time could not be read; nil Counts means one of
// the documents could not be parsed.
type FileResult struct {
	Name       string
	Status     Status
	LocalTime  time.Time
	SourceTime time.Time
	Counts     *tokens.Counts
}

// Message is the human-readable status line for the file.
func (r FileResult) Message() string {
	return r.Status.Message()
}

// CheckResult holds the outcome of a check operation.
type CheckResult struct {
	// Files are in configured order.
	Files []FileResult

	// Drifted is the number of missing or outdated files.
	Drifted int

	// Checksums holds the local digest of every file that exists locally.
	Checksums checksum.Record

	// CacheWritten is true when the run was clean and Checksums was saved.
	CacheWritten bool
}

// Clean reports whether no file drifted.
func (r *CheckResult) Clean() bool {
	return r.Drifted == 0
}

// FileAction represents an action taken on a single token file during sync.
type FileAction struct {
	Path   string
	Action string // "written", "unchanged", "skipped"
	Reason string
}

// SyncResult holds the outcome of a sync operation.
type SyncResult struct {
	Written   []FileAction
	Unchanged []FileAction
	Skipped   []FileAction

	// CacheWritten is true when the checksum cache was refreshed.
	CacheWritten bool
}
