package save

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/saveman/saveman/internal/entry"
	"github.com/saveman/saveman/internal/fsutil"
	"github.com/saveman/saveman/internal/tree"
)

// Profile is one profile directory and, once loaded, its entry tree plus
// the navigation state the UI works against.
type Profile struct {
	Name string
	Path string

	Entries *tree.Tree[entry.Entry]
	State   *tree.State[entry.Entry]

	// ActiveSaveFile is the absolute path of the entry last loaded into
	// the game's save slot, empty when none.
	ActiveSaveFile string
}

// NewProfile wraps a profile directory without touching the disk. Load
// builds the tree on first selection.
func NewProfile(path string) *Profile {
	return &Profile{Name: filepath.Base(path), Path: path}
}

func (p *Profile) Loaded() bool { return p.Entries != nil }

// Load builds the entry tree from the directory, merging the persisted
// skeleton for ordering and restoring the active save file marker.
func (p *Profile) Load() error {
	var st ProfileState
	readState(p.Path, &st)

	t, err := entry.Build(p.Path, st.Entries)
	if err != nil {
		return fmt.Errorf("load profile %s: %w", p.Name, err)
	}
	p.Entries = t
	p.State = tree.NewState[entry.Entry]()
	p.ActiveSaveFile = ""
	if st.ActiveSaveFile != "" {
		p.setActive(filepath.Join(p.Path, filepath.FromSlash(st.ActiveSaveFile)))
	}
	if first := t.At(tree.Root).FirstChild(); first.IsNode() {
		p.State.SelectUnchecked(first)
	}
	return nil
}

// WriteState persists the sibling ordering and active save file marker.
func (p *Profile) WriteState() error {
	if !p.Loaded() {
		return nil
	}
	st := ProfileState{Entries: entry.Skeletonize(p.Entries, tree.Root)}
	if p.ActiveSaveFile != "" {
		if rel, err := filepath.Rel(p.Path, p.ActiveSaveFile); err == nil {
			st.ActiveSaveFile = filepath.ToSlash(rel)
		}
	}
	return writeState(p.Path, st)
}

// setActive records path as the active save file when it names a file in
// the tree; anything else clears the marker.
func (p *Profile) setActive(path string) {
	p.ActiveSaveFile = ""
	p.State.Active = tree.NoNode
	id := entry.Find(p.Entries, path)
	if !id.IsNode() || p.Entries.At(id).Value.IsDir {
		return
	}
	p.ActiveSaveFile = path
	p.State.Active = id
}

// OnCreate reconciles a path that appeared inside the profile directory.
// Unknown parents and already-known paths are no-ops: the former means a
// notification for a subtree never built, the latter a watcher echo of a
// mutation already applied.
func (p *Profile) OnCreate(path string) error {
	if !p.Loaded() {
		return nil
	}
	parent := entry.Find(p.Entries, filepath.Dir(path))
	if !parent.IsNode() {
		return nil
	}
	if entry.Find(p.Entries, path).IsNode() {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil // gone again before we looked
	}
	id := p.Entries.Add(entry.New(path, info.IsDir()))
	if info.IsDir() {
		p.Entries.At(id).Expanded = tree.FoldCollapsed
	}
	p.Entries.Append(parent, id)
	return nil
}

// OnRename reconciles a move from old to new. Descendant paths and the
// active save file marker follow the subtree; node ids are untouched. A
// move into a different folder relinks the subtree under its new parent.
func (p *Profile) OnRename(old, moved string) error {
	if !p.Loaded() {
		return nil
	}
	id := entry.Find(p.Entries, old)
	if !id.IsNode() {
		return nil
	}
	if filepath.Dir(old) != filepath.Dir(moved) {
		parent := entry.Find(p.Entries, filepath.Dir(moved))
		if !parent.IsNode() {
			// moved somewhere never built, so it leaves the tree
			return p.OnDelete(old)
		}
		p.Entries.Detach(id)
		p.Entries.Append(parent, id)
		if p.inSubtree(p.State.Selected, id) {
			p.State.Select(p.State.Selected, p.Entries)
		}
	}
	entry.Rebase(p.Entries, id, moved)
	if active, ok := rewritePrefix(p.ActiveSaveFile, old, moved); ok {
		p.ActiveSaveFile = active
		p.State.Active = entry.Find(p.Entries, active)
	}
	return nil
}

// inSubtree reports whether id lies at or below root.
func (p *Profile) inSubtree(id, root tree.NodeID) bool {
	for id.IsNode() {
		if id == root {
			return true
		}
		id = p.Entries.At(id).Parent()
	}
	return false
}

// OnDelete reconciles a disappearance: the subtree is detached and the
// navigation state repaired so selection lands on a visible neighbour.
func (p *Profile) OnDelete(path string) error {
	if !p.Loaded() {
		return nil
	}
	id := entry.Find(p.Entries, path)
	if !id.IsNode() {
		return nil
	}
	if _, ok := rewritePrefix(p.ActiveSaveFile, path, ""); ok {
		p.ActiveSaveFile = ""
	}
	p.State.DropSubtree(p.Entries, id)
	p.Entries.Detach(id)
	return nil
}

// CreateFolder makes a directory under parent and reflects it in the tree
// immediately; the watcher echo is absorbed by OnCreate's known-path check.
func (p *Profile) CreateFolder(parent tree.NodeID, name string) error {
	dir := p.Entries.At(parent).Value
	if !dir.IsDir {
		return fmt.Errorf("%s is not a folder", dir.Name)
	}
	path := filepath.Join(dir.Path, name)
	if err := fsutil.CheckForDup(path); err != nil {
		return err
	}
	if err := os.Mkdir(path, 0o755); err != nil {
		return err
	}
	return p.OnCreate(path)
}

// Rename gives the entry at id a new base name, disk first.
func (p *Profile) Rename(id tree.NodeID, name string) error {
	old := p.Entries.At(id).Value.Path
	moved := filepath.Join(filepath.Dir(old), name)
	if err := fsutil.Rename(old, moved); err != nil {
		return err
	}
	return p.OnRename(old, moved)
}

// Delete removes the entry at id and its files.
func (p *Profile) Delete(id tree.NodeID) error {
	path := p.Entries.At(id).Value.Path
	if err := os.RemoveAll(path); err != nil {
		return err
	}
	return p.OnDelete(path)
}

// MoveAfter reorders id behind sibling under the same parent. Pure
// bookkeeping; nothing on disk changes, so the new order is persisted
// right away.
func (p *Profile) MoveAfter(id, sibling tree.NodeID) error {
	if p.Entries.At(id).Parent() != p.Entries.At(sibling).Parent() {
		return fmt.Errorf("can only reorder within the same folder")
	}
	p.Entries.Detach(id)
	p.Entries.InsertAfter(sibling, id)
	return p.WriteState()
}

// rewritePrefix maps path from location from to location to when path is
// from itself or lies below it. An empty to collapses to empty.
func rewritePrefix(path, from, to string) (string, bool) {
	if path == "" {
		return "", false
	}
	if path == from {
		return to, true
	}
	if strings.HasPrefix(path, from+string(filepath.Separator)) {
		if to == "" {
			return "", true
		}
		return to + path[len(from):], true
	}
	return "", false
}
