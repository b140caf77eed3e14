// Package sandbox confines writes to the local token directory.
package sandbox

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Dir is a token directory whose writes may not leave it. The root is
// resolved through symlinks once, when the Dir is opened.
type Dir struct {
	root string
}

// Open resolves root, which must already exist.
func Open(root string) (*Dir, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving token directory %s: %w", root, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("resolving token directory %s: %w", root, err)
	}
	return &Dir{root: resolved}, nil
}

// Root returns the resolved directory.
func (d *Dir) Root() string {
	return d.root
}

// Resolve returns the real path of name inside d. It fails when name, after
// following any symlinks that already exist, points outside the directory.
func (d *Dir) Resolve(name string) (string, error) {
	resolved, err := followExisting(filepath.Join(d.root, name))
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", name, err)
	}
	if !d.contains(resolved) {
		return "", fmt.Errorf("%s resolves to %s which is outside %s", name, resolved, d.root)
	}
	return resolved, nil
}

func (d *Dir) contains(path string) bool {
	return path == d.root || strings.HasPrefix(path, d.root+string(filepath.Separator))
}

// followExisting evaluates symlinks along the deepest ancestor of path that
// exists and re-attaches the remaining, not yet created, elements.
func followExisting(path string) (string, error) {
	var missing []string
	for {
		resolved, err := filepath.EvalSymlinks(path)
		if err == nil {
			for i := len(missing) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, missing[i])
			}
			return resolved, nil
		}
		if !os.IsNotExist(err) {
			return "", err
		}
		parent := filepath.Dir(path)
		if parent == path {
			return "", err
		}
		missing = append(missing, filepath.Base(path))
		path = parent
	}
}

// WriteFile replaces name inside d with data. The bytes go to a temp file
// beside the target which is then renamed over it, so a token file or the
// checksum cache is never seen half written.
func (d *Dir) WriteFile(name string, data []byte, perm os.FileMode) error {
	target, err := d.Resolve(name)
	if err != nil {
		return err
	}

	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".tokensync-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	done := false
	defer func() {
		if !done {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		return fmt.Errorf("replacing %s: %w", target, err)
	}

	done = true
	return nil
}
