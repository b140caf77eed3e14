package tokensync

import (
	"github.com/bianoble/tokensync/internal/config"
	"github.com/bianoble/tokensync/internal/engine"
	"github.com/bianoble/tokensync/internal/tokens"
)

// Type aliases re-export engine result types as the public API.

type Config = config.Config
type Status = engine.Status
type FileResult = engine.FileResult
type CheckResult = engine.CheckResult
type FileAction = engine.FileAction
type SyncResult = engine.SyncResult
type FileError = engine.FileError
type Counts = tokens.Counts

const (
	StatusMissing  = engine.StatusMissing
	StatusWarning  = engine.StatusWarning
	StatusOutdated = engine.StatusOutdated
	StatusCurrent  = engine.StatusCurrent
)

// DefaultFiles is the token file list used when none is configured.
var DefaultFiles = config.DefaultFiles
