package config

import (
	"strings"
	"testing"
)

func TestValidateSchemaValid(t *testing.T) {
	issues, err := ValidateSchema([]byte(exampleConfig))
	if err != nil {
		t.Fatalf("ValidateSchema: %v", err)
	}
	if len(issues) != 0 {
		t.Errorf("expected no issues, got: %v", issues)
	}
}

func TestValidateSchemaIssues(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		path string
	}{
		{"unknown key", "version: 1\nsource: x\n", ""},
		{"wrong type", "version: one\n", "/version"},
		{"empty file name", "version: 1\nfiles: [\"\"]\n", "/files/0"},
		{"empty document", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues, err := ValidateSchema([]byte(tt.doc))
			if err != nil {
				t.Fatalf("ValidateSchema: %v", err)
			}
			if len(issues) == 0 {
				t.Fatal("expected at least one issue")
			}
			if tt.path == "" {
				return
			}
			found := false
			for _, issue := range issues {
				if issue.Path == tt.path {
					found = true
				}
			}
			if !found {
				t.Errorf("no issue at %s: %v", tt.path, issues)
			}
		})
	}
}

func TestValidateSchemaParseError(t *testing.T) {
	_, err := ValidateSchema([]byte("version: [1\n"))
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "parsing YAML") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSchemaIssueString(t *testing.T) {
	if got := (SchemaIssue{Path: "/files", Message: "bad"}).String(); got != "/files: bad" {
		t.Errorf("got %q", got)
	}
	if got := (SchemaIssue{Message: "bad"}).String(); got != "bad" {
		t.Errorf("got %q", got)
	}
}
