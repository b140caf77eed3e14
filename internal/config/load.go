package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a tokensync.yaml configuration file.
// Relative directories are resolved against the directory containing path,
// which is also the default local directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	issues, err := ValidateSchema(data)
	if err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if len(issues) > 0 {
		errs := make([]string, 0, len(issues))
		for _, issue := range issues {
			errs = append(errs, issue.String())
		}
		return nil, &ValidationError{Errors: errs}
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving config path: %w", err)
	}
	cfg.Resolve(filepath.Dir(abs))

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	return &cfg, nil
}

// Resolve anchors relative directories at baseDir and fills in defaults.
// An empty LocalDir becomes baseDir; an empty SourceDir stays empty.
func (c *Config) Resolve(baseDir string) {
	if c.LocalDir == "" {
		c.LocalDir = baseDir
	} else if !filepath.IsAbs(c.LocalDir) {
		c.LocalDir = filepath.Join(baseDir, c.LocalDir)
	}
	if c.SourceDir != "" && !filepath.IsAbs(c.SourceDir) {
		c.SourceDir = filepath.Join(baseDir, c.SourceDir)
	}
	c.applyDefaults()
}

// ValidationError holds multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Validate checks a resolved Config for semantic correctness.
// Returns a list of validation error messages (empty if valid).
func Validate(cfg *Config) []string {
	var errs []string

	if cfg.Version != 1 {
		errs = append(errs, fmt.Sprintf("unsupported version %d: only version 1 is supported", cfg.Version))
	}

	if cfg.LocalDir == "" {
		errs = append(errs, "'local_dir' is required")
	}

	if len(cfg.Files) == 0 {
		errs = append(errs, "at least one token file is required")
	}

	seen := make(map[string]bool, len(cfg.Files))
	for i, name := range cfg.Files {
		prefix := fmt.Sprintf("files[%d]", i)
		if name != "" {
			prefix = fmt.Sprintf("file '%s'", name)
		}

		switch {
		case name == "":
			errs = append(errs, fmt.Sprintf("%s: name is required", prefix))
		case !filepath.IsLocal(name):
			errs = append(errs, fmt.Sprintf("%s: must be a relative path inside the local directory", prefix))
		case seen[filepath.Clean(name)]:
			errs = append(errs, fmt.Sprintf("%s: listed more than once", prefix))
		default:
			seen[filepath.Clean(name)] = true
		}
	}

	switch {
	case cfg.CacheFile == "":
		errs = append(errs, "'cache_file' is required")
	case !filepath.IsLocal(cfg.CacheFile):
		errs = append(errs, fmt.Sprintf("cache file '%s': must be a relative path inside the local directory", cfg.CacheFile))
	case seen[filepath.Clean(cfg.CacheFile)]:
		errs = append(errs, fmt.Sprintf("cache file '%s': collides with a token file", cfg.CacheFile))
	}

	if cfg.ValueMarker == "" {
		errs = append(errs, "'value_marker' is required")
	}

	return errs
}
