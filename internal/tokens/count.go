// Package tokens counts design tokens in parsed token documents.
//
// A token is a mapping that carries the value marker key (normally "$value").
// Any other mapping is a group and contributes only through its children.
// Arrays and scalars are never tokens and are not descended into.
package tokens

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// Counts compares the number of tokens in a local and a source document.
type Counts struct {
	Local  int
	Source int
	Diff   int // Source - Local
}

// Count returns the number of tokens in node.
func Count(node any, marker string) int {
	m, ok := node.(map[string]any)
	if !ok {
		return 0
	}
	if _, ok := m[marker]; ok {
		return 1
	}

	n := 0
	for _, child := range m {
		n += Count(child, marker)
	}
	return n
}

// Parse decodes a token document, keeping numbers as json.Number. Anything
// but whitespace after the top-level value is an error.
func Parse(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}
	return doc, nil
}

// CountFile parses the JSON document at path and counts its tokens.
func CountFile(path, marker string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", path, err)
	}
	return Count(doc, marker), nil
}

// Compare counts the tokens in both files. It fails if either file cannot
// be read or parsed.
func Compare(localPath, sourcePath, marker string) (*Counts, error) {
	local, err := CountFile(localPath, marker)
	if err != nil {
		return nil, err
	}
	source, err := CountFile(sourcePath, marker)
	if err != nil {
		return nil, err
	}
	return &Counts{Local: local, Source: source, Diff: source - local}, nil
}
