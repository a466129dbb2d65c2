package save

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/saveman/saveman/internal/entry"
	"github.com/saveman/saveman/internal/tree"
	"github.com/saveman/saveman/internal/watcher"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func loadedProfile(t *testing.T, files ...string) *Profile {
	t.Helper()
	dir := t.TempDir()
	for _, f := range files {
		if f[len(f)-1] == '/' {
			if err := os.MkdirAll(filepath.Join(dir, filepath.FromSlash(f)), 0o755); err != nil {
				t.Fatalf("mkdir: %v", err)
			}
			continue
		}
		writeFile(t, filepath.Join(dir, filepath.FromSlash(f)), f)
	}
	p := NewProfile(dir)
	if err := p.Load(); err != nil {
		t.Fatalf("load profile: %v", err)
	}
	return p
}

func entryNames(p *Profile, parent tree.NodeID) []string {
	var out []string
	for _, id := range p.Entries.Children(parent).Collect() {
		out = append(out, p.Entries.At(id).Value.Name)
	}
	return out
}

func TestProfileLoadSelectsFirstEntry(t *testing.T) {
	p := loadedProfile(t, "a.sav", "b.sav")
	if !p.State.Selected.IsNode() {
		t.Fatal("expected an initial selection")
	}
	if got := p.Entries.At(p.State.Selected).Value.Name; got != "a.sav" {
		t.Fatalf("expected a.sav selected, got %s", got)
	}
}

func TestProfileOnCreateAppendsUnderKnownParent(t *testing.T) {
	p := loadedProfile(t, "a.sav")

	path := filepath.Join(p.Path, "b.sav")
	writeFile(t, path, "b")
	if err := p.OnCreate(path); err != nil {
		t.Fatalf("on create: %v", err)
	}
	if got := entryNames(p, tree.Root); !reflect.DeepEqual(got, []string{"a.sav", "b.sav"}) {
		t.Fatalf("expected [a.sav b.sav], got %v", got)
	}

	// the echo of a mutation already applied changes nothing
	if err := p.OnCreate(path); err != nil {
		t.Fatalf("on create echo: %v", err)
	}
	if got := entryNames(p, tree.Root); len(got) != 2 {
		t.Fatalf("expected 2 entries after echo, got %v", got)
	}

	// a parent the tree never saw is a silent no-op
	orphan := filepath.Join(p.Path, "ghost", "c.sav")
	if err := p.OnCreate(orphan); err != nil {
		t.Fatalf("orphan create: %v", err)
	}
	if entry.Find(p.Entries, orphan).IsNode() {
		t.Fatal("expected orphan path to stay out of the tree")
	}
}

func TestProfileOnRenameMovesSubtreeAndActiveMarker(t *testing.T) {
	p := loadedProfile(t, "dir/", "dir/x.sav")
	active := filepath.Join(p.Path, "dir", "x.sav")
	p.setActive(active)
	if p.ActiveSaveFile != active || !p.State.Active.IsNode() {
		t.Fatal("expected an active save file")
	}

	old := filepath.Join(p.Path, "dir")
	moved := filepath.Join(p.Path, "renamed")
	if err := p.OnRename(old, moved); err != nil {
		t.Fatalf("on rename: %v", err)
	}
	want := filepath.Join(moved, "x.sav")
	if p.ActiveSaveFile != want {
		t.Fatalf("expected active marker %s, got %s", want, p.ActiveSaveFile)
	}
	if !entry.Find(p.Entries, want).IsNode() {
		t.Fatal("expected descendant path to follow the rename")
	}

	if err := p.OnRename(filepath.Join(p.Path, "nope"), filepath.Join(p.Path, "x")); err != nil {
		t.Fatalf("unknown rename should be a no-op, got %v", err)
	}
}

func TestProfileOnRenameAcrossFoldersRelinks(t *testing.T) {
	p := loadedProfile(t, "a/", "a/f.sav", "b/")
	old := filepath.Join(p.Path, "a", "f.sav")
	moved := filepath.Join(p.Path, "b", "f.sav")
	p.setActive(old)
	id := entry.Find(p.Entries, old)
	p.State.SelectUnchecked(id)

	if err := os.Rename(old, moved); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if err := p.OnRename(old, moved); err != nil {
		t.Fatalf("on rename: %v", err)
	}

	if entry.Find(p.Entries, old).IsNode() {
		t.Fatal("expected the old path to leave the tree")
	}
	if got := entry.Find(p.Entries, moved); got != id {
		t.Fatalf("expected the node to keep its id, got %v", got)
	}
	b := entry.Find(p.Entries, filepath.Join(p.Path, "b"))
	if p.Entries.At(id).Parent() != b {
		t.Fatal("expected the entry to hang under its new folder")
	}
	if got := entryNames(p, b); !reflect.DeepEqual(got, []string{"f.sav"}) {
		t.Fatalf("expected [f.sav] under b, got %v", got)
	}
	if p.ActiveSaveFile != moved || p.State.Active != id {
		t.Fatalf("expected the active marker to follow, got %s", p.ActiveSaveFile)
	}
	// selection followed the move, so the new folder must be open
	if p.State.Selected != id || !p.Entries.At(b).IsExpanded() {
		t.Fatal("expected the selection to stay visible under the new folder")
	}

	// a move into a folder the tree never built drops the subtree
	ghost := filepath.Join(p.Path, "ghost", "f.sav")
	if err := p.OnRename(moved, ghost); err != nil {
		t.Fatalf("on rename to unknown parent: %v", err)
	}
	if entry.Find(p.Entries, moved).IsNode() || entry.Find(p.Entries, ghost).IsNode() {
		t.Fatal("expected the entry to be gone")
	}
	if p.ActiveSaveFile != "" {
		t.Fatal("expected the active marker to be cleared")
	}
}

func TestProfileOnDeleteRepairsState(t *testing.T) {
	p := loadedProfile(t, "a.sav", "b.sav", "c.sav")
	b := entry.Find(p.Entries, filepath.Join(p.Path, "b.sav"))
	p.State.SelectUnchecked(b)
	p.State.Mark(b)
	p.setActive(filepath.Join(p.Path, "b.sav"))

	if err := p.OnDelete(filepath.Join(p.Path, "b.sav")); err != nil {
		t.Fatalf("on delete: %v", err)
	}
	if entry.Find(p.Entries, filepath.Join(p.Path, "b.sav")).IsNode() {
		t.Fatal("expected b.sav to be gone")
	}
	if got := p.Entries.At(p.State.Selected).Value.Name; got != "a.sav" {
		t.Fatalf("expected selection on the preceding neighbour, got %s", got)
	}
	if len(p.State.Marked) != 0 {
		t.Fatal("expected marks on the deleted entry to be cleared")
	}
	if p.ActiveSaveFile != "" || p.State.Active.IsNode() {
		t.Fatal("expected the active marker to be cleared")
	}
}

func TestProfileWriteStateRoundTrip(t *testing.T) {
	p := loadedProfile(t, "b.sav", "a.sav", "dir/", "dir/x.sav")
	p.setActive(filepath.Join(p.Path, "dir", "x.sav"))

	// reorder: move a.sav behind b.sav's successor set, i.e. after dir
	a := entry.Find(p.Entries, filepath.Join(p.Path, "a.sav"))
	dir := entry.Find(p.Entries, filepath.Join(p.Path, "dir"))
	if err := p.MoveAfter(a, dir); err != nil {
		t.Fatalf("move: %v", err)
	}

	q := NewProfile(p.Path)
	if err := q.Load(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := entryNames(q, tree.Root); !reflect.DeepEqual(got, []string{"b.sav", "dir", "a.sav"}) {
		t.Fatalf("expected persisted order [b.sav dir a.sav], got %v", got)
	}
	if q.ActiveSaveFile != filepath.Join(q.Path, "dir", "x.sav") {
		t.Fatalf("expected active marker to survive reload, got %s", q.ActiveSaveFile)
	}
	if !q.State.Active.IsNode() {
		t.Fatal("expected active node to be resolved on reload")
	}
}

func TestProfileUserMutationsHitDiskFirst(t *testing.T) {
	p := loadedProfile(t, "a.sav")

	if err := p.CreateFolder(tree.Root, "bosses"); err != nil {
		t.Fatalf("create folder: %v", err)
	}
	if _, err := os.Stat(filepath.Join(p.Path, "bosses")); err != nil {
		t.Fatalf("expected the folder on disk: %v", err)
	}
	if err := p.CreateFolder(tree.Root, "bosses"); err == nil {
		t.Fatal("expected a duplicate-name error")
	}

	id := entry.Find(p.Entries, filepath.Join(p.Path, "a.sav"))
	if err := p.Rename(id, "first.sav"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if _, err := os.Stat(filepath.Join(p.Path, "first.sav")); err != nil {
		t.Fatalf("expected the renamed file on disk: %v", err)
	}
	if got := p.Entries.At(id).Value.Name; got != "first.sav" {
		t.Fatalf("expected tree to follow rename, got %s", got)
	}

	if err := p.Delete(id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(p.Path, "first.sav")); !os.IsNotExist(err) {
		t.Fatal("expected the file to be deleted from disk")
	}
	if entry.Find(p.Entries, filepath.Join(p.Path, "first.sav")).IsNode() {
		t.Fatal("expected the entry to be detached")
	}
}

func gameFixture(t *testing.T) (*Manager, *Game) {
	t.Helper()
	dataDir := t.TempDir()
	savefile := filepath.Join(t.TempDir(), "game.sav")
	writeFile(t, savefile, "current save")

	m, err := NewManager(dataDir)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	if err := m.CreateGame("elden-ring", savefile); err != nil {
		t.Fatalf("create game: %v", err)
	}
	g := m.gameNamed("elden-ring")
	if g == nil {
		t.Fatal("expected the game to be registered")
	}
	return m, g
}

func TestGameProfileLifecycle(t *testing.T) {
	_, g := gameFixture(t)

	if err := g.CreateProfile("mage"); err != nil {
		t.Fatalf("create profile: %v", err)
	}
	if err := g.CreateProfile("mage"); err == nil {
		t.Fatal("expected a duplicate-name error")
	}
	p := g.profileNamed("mage")
	if p == nil {
		t.Fatal("expected the profile to be registered")
	}

	if err := g.SelectProfile(p); err != nil {
		t.Fatalf("select profile: %v", err)
	}
	if !p.Loaded() {
		t.Fatal("expected selection to build the entry tree")
	}

	if err := g.RenameProfile(p, "sorcerer"); err != nil {
		t.Fatalf("rename profile: %v", err)
	}
	if p.Name != "sorcerer" || filepath.Base(p.Path) != "sorcerer" {
		t.Fatalf("expected profile to follow the rename, got %s at %s", p.Name, p.Path)
	}
	if p.Entries.At(tree.Root).Value.Path != p.Path {
		t.Fatal("expected the tree root path to follow the rename")
	}

	reloaded, err := LoadGame(g.Path)
	if err != nil {
		t.Fatalf("reload game: %v", err)
	}
	if reloaded.Active == nil || reloaded.Active.Name != "sorcerer" {
		t.Fatal("expected the active profile to be persisted")
	}

	if err := g.DeleteProfile(p); err != nil {
		t.Fatalf("delete profile: %v", err)
	}
	if len(g.Profiles) != 0 || g.Active != nil {
		t.Fatal("expected the profile to be dropped")
	}
}

func TestGameSaveOperations(t *testing.T) {
	_, g := gameFixture(t)
	if err := g.CreateProfile("mage"); err != nil {
		t.Fatalf("create profile: %v", err)
	}
	p := g.profileNamed("mage")
	if err := g.SelectProfile(p); err != nil {
		t.Fatalf("select profile: %v", err)
	}

	if err := g.ImportSave(p, tree.Root, "slot1.sav"); err != nil {
		t.Fatalf("import: %v", err)
	}
	slot := entry.Find(p.Entries, filepath.Join(p.Path, "slot1.sav"))
	if !slot.IsNode() {
		t.Fatal("expected the imported entry in the tree")
	}
	data, err := os.ReadFile(filepath.Join(p.Path, "slot1.sav"))
	if err != nil || string(data) != "current save" {
		t.Fatalf("expected import to copy the save file, got %q, %v", data, err)
	}
	if err := g.ImportSave(p, tree.Root, "slot1.sav"); err == nil {
		t.Fatal("expected a duplicate-name error")
	}

	writeFile(t, g.SavefilePath, "later save")
	if err := g.ReplaceEntry(p, slot); err != nil {
		t.Fatalf("replace: %v", err)
	}
	data, _ = os.ReadFile(filepath.Join(p.Path, "slot1.sav"))
	if string(data) != "later save" {
		t.Fatalf("expected replace to overwrite the entry, got %q", data)
	}

	writeFile(t, g.SavefilePath, "stale")
	if err := g.LoadEntry(p, slot); err != nil {
		t.Fatalf("load: %v", err)
	}
	data, _ = os.ReadFile(g.SavefilePath)
	if string(data) != "later save" {
		t.Fatalf("expected load to copy the entry over the save file, got %q", data)
	}
	if p.ActiveSaveFile != filepath.Join(p.Path, "slot1.sav") || p.State.Active != slot {
		t.Fatal("expected load to record the active save file")
	}
}

func TestManagerActiveGamePersistence(t *testing.T) {
	m, g := gameFixture(t)
	if err := m.SelectGame(g); err != nil {
		t.Fatalf("select game: %v", err)
	}

	again, err := NewManager(m.DataDir)
	if err != nil {
		t.Fatalf("reopen manager: %v", err)
	}
	if again.Active == nil || again.Active.Name != "elden-ring" {
		t.Fatal("expected the active game to be restored from the marker")
	}

	if err := m.DeleteGame(g); err != nil {
		t.Fatalf("delete game: %v", err)
	}
	if m.Active != nil || len(m.Games) != 0 {
		t.Fatal("expected the game to be dropped")
	}
	if _, err := os.Stat(filepath.Join(m.DataDir, "active_game")); !os.IsNotExist(err) {
		t.Fatal("expected the marker file to be removed")
	}
}

func TestManagerDispatchRoutesByTier(t *testing.T) {
	m, g := gameFixture(t)
	if err := g.CreateProfile("mage"); err != nil {
		t.Fatalf("create profile: %v", err)
	}
	p := g.profileNamed("mage")
	if err := g.SelectProfile(p); err != nil {
		t.Fatalf("select profile: %v", err)
	}

	// entry tier
	path := filepath.Join(p.Path, "slot1.sav")
	writeFile(t, path, "x")
	ev := watcher.Event{Tier: watcher.TierEntry, Kind: watcher.KindCreate, Path: path}
	if err := m.Dispatch(ev); err != nil {
		t.Fatalf("dispatch entry create: %v", err)
	}
	if !entry.Find(p.Entries, path).IsNode() {
		t.Fatal("expected the entry create to reach the profile tree")
	}

	// profile tier
	newProfile := filepath.Join(g.Path, "knight")
	if err := os.Mkdir(newProfile, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	ev = watcher.Event{Tier: watcher.TierProfile, Kind: watcher.KindCreate, Path: newProfile}
	if err := m.Dispatch(ev); err != nil {
		t.Fatalf("dispatch profile create: %v", err)
	}
	if g.profileNamed("knight") == nil {
		t.Fatal("expected the profile create to reach the game")
	}

	// game tier
	newGame := filepath.Join(m.DataDir, "sekiro")
	if err := os.Mkdir(newGame, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	ev = watcher.Event{Tier: watcher.TierGame, Kind: watcher.KindCreate, Path: newGame}
	if err := m.Dispatch(ev); err != nil {
		t.Fatalf("dispatch game create: %v", err)
	}
	if m.gameNamed("sekiro") == nil {
		t.Fatal("expected the game create to reach the manager")
	}

	// events under unknown owners vanish quietly
	ev = watcher.Event{Tier: watcher.TierEntry, Kind: watcher.KindDelete, Path: filepath.Join(m.DataDir, "unknown", "p", "x.sav")}
	if err := m.Dispatch(ev); err != nil {
		t.Fatalf("dispatch unknown owner: %v", err)
	}
}

func TestManagerGameRenameDragsLoadedTrees(t *testing.T) {
	m, g := gameFixture(t)
	if err := g.CreateProfile("mage"); err != nil {
		t.Fatalf("create profile: %v", err)
	}
	p := g.profileNamed("mage")
	if err := g.SelectProfile(p); err != nil {
		t.Fatalf("select profile: %v", err)
	}
	if err := g.ImportSave(p, tree.Root, "slot1.sav"); err != nil {
		t.Fatalf("import: %v", err)
	}
	if err := g.LoadEntry(p, entry.Find(p.Entries, filepath.Join(p.Path, "slot1.sav"))); err != nil {
		t.Fatalf("load entry: %v", err)
	}
	if err := m.SelectGame(g); err != nil {
		t.Fatalf("select game: %v", err)
	}

	if err := m.RenameGame(g, "elden-ring-dlc"); err != nil {
		t.Fatalf("rename game: %v", err)
	}
	if g.Name != "elden-ring-dlc" {
		t.Fatalf("expected game rename, got %s", g.Name)
	}
	wantProfile := filepath.Join(g.Path, "mage")
	if p.Path != wantProfile {
		t.Fatalf("expected profile path %s, got %s", wantProfile, p.Path)
	}
	wantEntry := filepath.Join(wantProfile, "slot1.sav")
	if !entry.Find(p.Entries, wantEntry).IsNode() {
		t.Fatal("expected cached entry paths to follow the game rename")
	}
	if p.ActiveSaveFile != wantEntry {
		t.Fatalf("expected active marker %s, got %s", wantEntry, p.ActiveSaveFile)
	}
	if got := m.readActiveMarker(); got != "elden-ring-dlc" {
		t.Fatalf("expected marker rewrite, got %q", got)
	}
}
