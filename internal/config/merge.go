package config

// Merge combines two configs where overlay takes precedence over base.
//   - version: overlay wins when non-zero
//   - scalar fields: non-empty overlay values replace base values
//   - files: a non-empty overlay list replaces the base list entirely
//
// Neither input is modified.
func Merge(base, overlay *Config) *Config {
	if base == nil {
		return overlay
	}
	if overlay == nil {
		return base
	}

	result := *base
	result.Files = append([]string(nil), base.Files...)

	if overlay.Version != 0 {
		result.Version = overlay.Version
	}
	result.LocalDir = pick(base.LocalDir, overlay.LocalDir)
	result.SourceDir = pick(base.SourceDir, overlay.SourceDir)
	result.CacheFile = pick(base.CacheFile, overlay.CacheFile)
	result.ValueMarker = pick(base.ValueMarker, overlay.ValueMarker)
	result.UpdateCommand = pick(base.UpdateCommand, overlay.UpdateCommand)

	if len(overlay.Files) > 0 {
		result.Files = append([]string(nil), overlay.Files...)
	}

	return &result
}

func pick(base, overlay string) string {
	if overlay != "" {
		return overlay
	}
	return base
}
