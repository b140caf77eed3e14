package config

// Default values applied when the config file omits a key or does not exist.
const (
	DefaultCacheFile     = ".token-checksums.json"
	DefaultValueMarker   = "$value"
	DefaultUpdateCommand = "tokensync sync"
)

// DefaultFiles is the token file list used when the config names none.
var DefaultFiles = []string{
	"Desktop.tokens.json",
	"Tablet.tokens.json",
	"Mobile.tokens.json",
}

// Config represents the tokensync.yaml configuration file.
type Config struct {
	Version int `yaml:"version"`

	// LocalDir holds the working copy of the token files and the checksum cache.
	LocalDir string `yaml:"local_dir,omitempty"`

	// SourceDir is the canonical copy. Empty means unreachable: every file
	// reports a warning instead of failing startup.
	SourceDir string `yaml:"source_dir,omitempty"`

	// CacheFile is the checksum cache path, relative to LocalDir.
	CacheFile string `yaml:"cache_file,omitempty"`

	// Files are checked and reported in this order.
	Files []string `yaml:"files,omitempty"`

	ValueMarker   string `yaml:"value_marker,omitempty"`
	UpdateCommand string `yaml:"update_command,omitempty"`
}

// Default returns a config rooted at dir with every default applied.
func Default(dir string) *Config {
	cfg := &Config{Version: 1, LocalDir: dir}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.CacheFile == "" {
		c.CacheFile = DefaultCacheFile
	}
	if len(c.Files) == 0 {
		c.Files = append([]string(nil), DefaultFiles...)
	}
	if c.ValueMarker == "" {
		c.ValueMarker = DefaultValueMarker
	}
	if c.UpdateCommand == "" {
		c.UpdateCommand = DefaultUpdateCommand
	}
}
