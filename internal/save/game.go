package save

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/saveman/saveman/internal/entry"
	"github.com/saveman/saveman/internal/fsutil"
	"github.com/saveman/saveman/internal/tree"
)

// Game is one game directory: its profiles, the path of the real save file
// the game reads, and which profile is active.
type Game struct {
	Name string
	Path string

	// SavefilePath is where the game itself keeps its save, outside the
	// data directory. Load/import/replace copy against it.
	SavefilePath string

	Profiles []*Profile
	Active   *Profile
}

// LoadGame reads a game directory: its bookkeeping file and the profile
// list. The active profile's entry tree is built; the others stay unloaded
// until selected.
func LoadGame(path string) (*Game, error) {
	var st GameState
	readState(path, &st)

	g := &Game{Name: filepath.Base(path), Path: path, SavefilePath: st.SavefilePath}

	dirents, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("load game %s: %w", g.Name, err)
	}
	for _, de := range dirents {
		if !de.IsDir() || fsutil.Ignored(de.Name()) {
			continue
		}
		g.Profiles = append(g.Profiles, NewProfile(filepath.Join(path, de.Name())))
	}
	sortProfiles(g.Profiles)

	if st.ActiveProfile != "" {
		if p := g.profileNamed(st.ActiveProfile); p != nil {
			if err := g.SelectProfile(p); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

// WriteState persists the active profile name and save file location.
func (g *Game) WriteState() error {
	st := GameState{SavefilePath: g.SavefilePath}
	if g.Active != nil {
		st.ActiveProfile = g.Active.Name
	}
	return writeState(g.Path, st)
}

func (g *Game) profileNamed(name string) *Profile {
	for _, p := range g.Profiles {
		if p.Name == name {
			return p
		}
	}
	return nil
}

func (g *Game) profileAt(path string) *Profile {
	for _, p := range g.Profiles {
		if p.Path == path {
			return p
		}
	}
	return nil
}

// profileOwning finds the profile whose directory contains path.
func (g *Game) profileOwning(path string) *Profile {
	for _, p := range g.Profiles {
		if _, ok := fsutil.RelComponents(p.Path, path); ok {
			return p
		}
	}
	return nil
}

// SelectProfile makes p the active profile, building its entry tree on
// first selection, and persists the choice.
func (g *Game) SelectProfile(p *Profile) error {
	if !p.Loaded() {
		if err := p.Load(); err != nil {
			return err
		}
	}
	g.Active = p
	return g.WriteState()
}

// OnCreate reconciles a directory that appeared at the profile level.
// Non-directories at this level are noise from stray files.
func (g *Game) OnCreate(path string) error {
	if g.profileAt(path) != nil {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return nil
	}
	g.Profiles = append(g.Profiles, NewProfile(path))
	sortProfiles(g.Profiles)
	return nil
}

// OnRename reconciles a moved profile directory. A loaded entry tree
// follows along with all its cached paths.
func (g *Game) OnRename(old, moved string) error {
	p := g.profileAt(old)
	if p == nil {
		return nil
	}
	p.Path = moved
	p.Name = filepath.Base(moved)
	if p.Loaded() {
		entry.Rebase(p.Entries, tree.Root, moved)
		if active, ok := rewritePrefix(p.ActiveSaveFile, old, moved); ok {
			p.ActiveSaveFile = active
		}
	}
	sortProfiles(g.Profiles)
	if g.Active == p {
		return g.WriteState()
	}
	return nil
}

// OnDelete reconciles a removed profile directory.
func (g *Game) OnDelete(path string) error {
	p := g.profileAt(path)
	if p == nil {
		return nil
	}
	for i, q := range g.Profiles {
		if q == p {
			g.Profiles = append(g.Profiles[:i], g.Profiles[i+1:]...)
			break
		}
	}
	if g.Active == p {
		g.Active = nil
		return g.WriteState()
	}
	return nil
}

// CreateProfile makes a new profile directory, disk first.
func (g *Game) CreateProfile(name string) error {
	path := filepath.Join(g.Path, name)
	if err := fsutil.CheckForDup(path); err != nil {
		return err
	}
	if err := os.Mkdir(path, 0o755); err != nil {
		return err
	}
	return g.OnCreate(path)
}

// RenameProfile renames p's directory, disk first.
func (g *Game) RenameProfile(p *Profile, name string) error {
	moved := filepath.Join(g.Path, name)
	if err := fsutil.Rename(p.Path, moved); err != nil {
		return err
	}
	return g.OnRename(p.Path, moved)
}

// DeleteProfile removes p's directory and everything in it.
func (g *Game) DeleteProfile(p *Profile) error {
	if err := os.RemoveAll(p.Path); err != nil {
		return err
	}
	return g.OnDelete(p.Path)
}

// LoadEntry copies the entry at id over the game's save file and records
// it as active.
func (g *Game) LoadEntry(p *Profile, id tree.NodeID) error {
	if g.SavefilePath == "" {
		return fmt.Errorf("no save file configured for %s", g.Name)
	}
	e := p.Entries.At(id).Value
	if e.IsDir {
		return fmt.Errorf("%s is a folder", e.Name)
	}
	if err := fsutil.CopyFile(e.Path, g.SavefilePath); err != nil {
		return err
	}
	p.setActive(e.Path)
	return p.WriteState()
}

// ImportSave copies the game's save file into the tree as a new entry
// under parent.
func (g *Game) ImportSave(p *Profile, parent tree.NodeID, name string) error {
	if g.SavefilePath == "" {
		return fmt.Errorf("no save file configured for %s", g.Name)
	}
	dir := p.Entries.At(parent).Value
	if !dir.IsDir {
		return fmt.Errorf("%s is not a folder", dir.Name)
	}
	path := filepath.Join(dir.Path, name)
	if err := fsutil.CheckForDup(path); err != nil {
		return err
	}
	if err := fsutil.CopyFile(g.SavefilePath, path); err != nil {
		return err
	}
	return p.OnCreate(path)
}

// ReplaceEntry overwrites the entry at id with the game's current save
// file.
func (g *Game) ReplaceEntry(p *Profile, id tree.NodeID) error {
	if g.SavefilePath == "" {
		return fmt.Errorf("no save file configured for %s", g.Name)
	}
	e := p.Entries.At(id).Value
	if e.IsDir {
		return fmt.Errorf("%s is a folder", e.Name)
	}
	return fsutil.CopyFile(g.SavefilePath, e.Path)
}

func sortProfiles(ps []*Profile) {
	sort.Slice(ps, func(i, j int) bool { return ps[i].Name < ps[j].Name })
}
