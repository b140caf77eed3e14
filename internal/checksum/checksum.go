// Package checksum computes content digests for token files and persists
// the last known-good set of local digests between runs.
package checksum

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/bianoble/tokensync/internal/sandbox"
)

// Record maps a token file name to the hex digest of its local content.
type Record map[string]string

// Compute returns the hex digest of content. Any byte difference, including
// whitespace, yields a different digest.
func Compute(content []byte) string {
	h := md5.Sum(content)
	return hex.EncodeToString(h[:])
}

// File reads path and returns its digest.
func File(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return Compute(data), nil
}

// Load reads a record from path. A missing, unreadable or corrupt file is
// not an error: it yields an empty record and the reason, which callers
// may log.
func Load(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, fmt.Errorf("reading checksum cache %s: %w", path, err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("parsing checksum cache %s: %w", path, err)
	}
	if rec == nil {
		rec = Record{}
	}
	return rec, nil
}

// Save writes rec as indented JSON to relPath inside root, replacing any
// previous file atomically.
func Save(root, relPath string, rec Record) error {
	if rec == nil {
		rec = Record{}
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling checksum cache: %w", err)
	}
	data = append(data, '\n')

	dir, err := sandbox.Open(root)
	if err != nil {
		return fmt.Errorf("writing checksum cache %s: %w", relPath, err)
	}
	if err := dir.WriteFile(relPath, data, 0644); err != nil {
		return fmt.Errorf("writing checksum cache %s: %w", relPath, err)
	}
	return nil
}
