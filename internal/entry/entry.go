// Package entry defines the payload stored in a profile's tree: one save
// file or folder, plus the helpers that build the tree from a directory
// walk merged with a persisted skeleton, and keep cached paths in sync with
// renames.
package entry

import "path/filepath"

// Entry is a single save file or folder inside a profile directory. The
// path is an absolute cached location; reconciliation rewrites it on
// renames while the owning NodeID stays put.
type Entry struct {
	Name  string
	Path  string
	IsDir bool
}

// New builds an entry for the given absolute path.
func New(path string, isDir bool) Entry {
	return Entry{Name: filepath.Base(path), Path: path, IsDir: isDir}
}

// Relocate moves the entry to a new absolute path, refreshing its name.
func (e *Entry) Relocate(path string) {
	e.Path = path
	e.Name = filepath.Base(path)
}

// Skeleton is the persisted shape of one entry: its name plus, for folders,
// the ordered names of its children. Only ordering survives restarts; all
// other metadata is re-derived from the live directory.
type Skeleton struct {
	Name    string     `json:"name"`
	Entries []Skeleton `json:"entries,omitempty"`
}
