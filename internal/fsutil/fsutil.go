// Package fsutil holds the small filesystem conventions shared by the save
// registry, the watcher, and the UI: bookkeeping file names, the data
// directory location, and atomic writes.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// StateFile is the per-directory bookkeeping file holding the persisted
	// skeleton. Never shown in the tree, never watched.
	StateFile = "state.json"
	// ActiveGameFile marks the active game at the data-directory root.
	ActiveGameFile = "active_game"
)

// Ignored reports whether a path's base name is invisible to the save
// registry: dotfiles and internal bookkeeping files.
func Ignored(name string) bool {
	if name == "" {
		return true
	}
	if strings.HasPrefix(name, ".") {
		return true
	}
	return name == StateFile || name == ActiveGameFile
}

// DataDir resolves the saveman data directory, creating it when missing.
// An explicit override wins; otherwise XDG_DATA_HOME, then ~/.local/share.
func DataDir(override string) (string, error) {
	path := strings.TrimSpace(override)
	if path == "" {
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			path = filepath.Join(xdg, "saveman")
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("resolve home directory: %w", err)
			}
			path = filepath.Join(home, ".local", "share", "saveman")
		}
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}
	return path, nil
}

// RelComponents returns child's path components relative to parent, or false
// when child is not inside parent.
func RelComponents(parent, child string) ([]string, bool) {
	rel, err := filepath.Rel(parent, child)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return nil, false
	}
	return strings.Split(rel, string(filepath.Separator)), true
}

// CheckForDup fails when the target path already exists, naming what is in
// the way.
func CheckForDup(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}
	kind := "file"
	if info.IsDir() {
		kind = "directory"
	}
	return fmt.Errorf("a %s named %q already exists", kind, filepath.Base(path))
}

// Rename moves a file or directory, refusing to overwrite an existing
// target.
func Rename(from, to string) error {
	if err := CheckForDup(to); err != nil {
		return err
	}
	return os.Rename(from, to)
}

// WriteAtomic replaces path's contents via a temp file in the same
// directory so readers never observe a partial write. The temp name is
// dot-prefixed so the watcher filter never surfaces it.
func WriteAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if info, err := os.Stat(path); err == nil {
		os.Chmod(tmpName, info.Mode().Perm())
	}
	return os.Rename(tmpName, path)
}

// CopyFile copies src over dst, creating dst when missing.
func CopyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}
