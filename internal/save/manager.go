// Package save owns the registry mirrored from the data directory: games,
// their profiles, and each profile's entry tree, plus the reconciliation
// handlers the watcher feeds and the user-initiated operations the UI
// invokes. Mutations go to disk first; the in-memory mirror is updated by
// the same handlers that absorb the watcher echo.
package save

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/saveman/saveman/internal/entry"
	"github.com/saveman/saveman/internal/fsutil"
	"github.com/saveman/saveman/internal/tree"
	"github.com/saveman/saveman/internal/watcher"
)

// Handler reconciles one tier of the registry against filesystem changes.
// Implementations never fail on lookups that find nothing; only real I/O
// errors come back.
type Handler interface {
	OnCreate(path string) error
	OnRename(old, moved string) error
	OnDelete(path string) error
}

// Manager is the root of the registry: every game under the data
// directory, with at most one active.
type Manager struct {
	DataDir string
	Games   []*Game
	Active  *Game
}

// NewManager scans the data directory and restores the active game from
// the marker file.
func NewManager(dataDir string) (*Manager, error) {
	m := &Manager{DataDir: dataDir}

	dirents, err := os.ReadDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("scan data directory: %w", err)
	}
	for _, de := range dirents {
		if !de.IsDir() || fsutil.Ignored(de.Name()) {
			continue
		}
		g, err := LoadGame(filepath.Join(dataDir, de.Name()))
		if err != nil {
			return nil, err
		}
		m.Games = append(m.Games, g)
	}
	sortGames(m.Games)

	if name := m.readActiveMarker(); name != "" {
		if g := m.gameNamed(name); g != nil {
			m.Active = g
		}
	}
	return m, nil
}

// Dispatch routes one watcher event to the tier it belongs to. Events for
// games or profiles the registry never saw are dropped the same way tier
// handlers drop unknown paths.
func (m *Manager) Dispatch(ev watcher.Event) error {
	h := m.handlerFor(ev)
	if h == nil {
		return nil
	}
	switch ev.Kind {
	case watcher.KindCreate:
		return h.OnCreate(ev.Path)
	case watcher.KindRename:
		return h.OnRename(ev.Path, ev.NewPath)
	case watcher.KindDelete:
		return h.OnDelete(ev.Path)
	default:
		return nil
	}
}

func (m *Manager) handlerFor(ev watcher.Event) Handler {
	switch ev.Tier {
	case watcher.TierGame:
		return m
	case watcher.TierProfile:
		g := m.gameOwning(ev.Path)
		if g == nil {
			return nil
		}
		return g
	case watcher.TierEntry:
		g := m.gameOwning(ev.Path)
		if g == nil {
			return nil
		}
		p := g.profileOwning(ev.Path)
		if p == nil {
			return nil
		}
		return p
	default:
		return nil
	}
}

func (m *Manager) gameNamed(name string) *Game {
	for _, g := range m.Games {
		if g.Name == name {
			return g
		}
	}
	return nil
}

func (m *Manager) gameAt(path string) *Game {
	for _, g := range m.Games {
		if g.Path == path {
			return g
		}
	}
	return nil
}

func (m *Manager) gameOwning(path string) *Game {
	for _, g := range m.Games {
		if _, ok := fsutil.RelComponents(g.Path, path); ok {
			return g
		}
	}
	return nil
}

// OnCreate reconciles a directory that appeared at the game level.
func (m *Manager) OnCreate(path string) error {
	if m.gameAt(path) != nil {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return nil
	}
	g, err := LoadGame(path)
	if err != nil {
		return err
	}
	m.Games = append(m.Games, g)
	sortGames(m.Games)
	return nil
}

// OnRename reconciles a moved game directory, dragging every loaded
// profile tree's cached paths along.
func (m *Manager) OnRename(old, moved string) error {
	g := m.gameAt(old)
	if g == nil {
		return nil
	}
	g.Path = moved
	g.Name = filepath.Base(moved)
	for _, p := range g.Profiles {
		p.Path = filepath.Join(moved, p.Name)
		if p.Loaded() {
			entry.Rebase(p.Entries, tree.Root, p.Path)
			if active, ok := rewritePrefix(p.ActiveSaveFile, old, moved); ok {
				p.ActiveSaveFile = active
			}
		}
	}
	sortGames(m.Games)
	if m.Active == g {
		return m.writeActiveMarker(g.Name)
	}
	return nil
}

// OnDelete reconciles a removed game directory.
func (m *Manager) OnDelete(path string) error {
	g := m.gameAt(path)
	if g == nil {
		return nil
	}
	for i, q := range m.Games {
		if q == g {
			m.Games = append(m.Games[:i], m.Games[i+1:]...)
			break
		}
	}
	if m.Active == g {
		m.Active = nil
		return m.writeActiveMarker("")
	}
	return nil
}

// CreateGame makes a new game directory and records where its real save
// file lives.
func (m *Manager) CreateGame(name, savefilePath string) error {
	path := filepath.Join(m.DataDir, name)
	if err := fsutil.CheckForDup(path); err != nil {
		return err
	}
	if err := os.Mkdir(path, 0o755); err != nil {
		return err
	}
	if err := writeState(path, GameState{SavefilePath: savefilePath}); err != nil {
		return err
	}
	return m.OnCreate(path)
}

// RenameGame renames g's directory, disk first.
func (m *Manager) RenameGame(g *Game, name string) error {
	moved := filepath.Join(m.DataDir, name)
	if err := fsutil.Rename(g.Path, moved); err != nil {
		return err
	}
	return m.OnRename(g.Path, moved)
}

// DeleteGame removes g's directory and everything in it.
func (m *Manager) DeleteGame(g *Game) error {
	if err := os.RemoveAll(g.Path); err != nil {
		return err
	}
	return m.OnDelete(g.Path)
}

// SelectGame makes g the active game and persists the marker.
func (m *Manager) SelectGame(g *Game) error {
	m.Active = g
	return m.writeActiveMarker(g.Name)
}

// ActiveProfile is the profile the UI works against, nil when no game or
// profile is selected.
func (m *Manager) ActiveProfile() *Profile {
	if m.Active == nil {
		return nil
	}
	return m.Active.Active
}

func (m *Manager) readActiveMarker() string {
	data, err := os.ReadFile(filepath.Join(m.DataDir, fsutil.ActiveGameFile))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func (m *Manager) writeActiveMarker(name string) error {
	path := filepath.Join(m.DataDir, fsutil.ActiveGameFile)
	if name == "" {
		err := os.Remove(path)
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return fsutil.WriteAtomic(path, []byte(name+"\n"))
}

func sortGames(gs []*Game) {
	sort.Slice(gs, func(i, j int) bool { return gs[i].Name < gs[j].Name })
}
