package entry

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/saveman/saveman/internal/fsutil"
	"github.com/saveman/saveman/internal/tree"
)

// Build walks the profile directory rooted at root and produces its entry
// tree. The persisted skeleton recovers sibling ordering: children named by
// the skeleton come first in skeleton order, anything new on disk follows
// alphabetically. Folders start collapsed; the root starts expanded.
//
// The walk keeps an explicit work stack so arbitrarily deep directory trees
// never grow the call stack.
func Build(root string, skel []Skeleton) (*tree.Tree[Entry], error) {
	t := tree.New[Entry]()
	rootID := t.Add(New(root, true))
	t.At(rootID).Expanded = tree.FoldExpanded

	type frame struct {
		parent tree.NodeID
		path   string
		skel   []Skeleton
	}
	var stack []frame

	populate := func(f frame) error {
		names, dirs, err := readDir(f.path)
		if err != nil {
			return err
		}
		for _, name := range orderNames(names, f.skel) {
			childPath := filepath.Join(f.path, name)
			isDir := dirs[name]
			id := t.Add(New(childPath, isDir))
			t.Append(f.parent, id)
			if isDir {
				t.At(id).Expanded = tree.FoldCollapsed
				stack = append(stack, frame{parent: id, path: childPath, skel: childSkel(f.skel, name)})
			}
		}
		return nil
	}

	if err := populate(frame{parent: rootID, path: root, skel: skel}); err != nil {
		return nil, err
	}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		// ignore read errors below the root: the directory vanished
		// mid-walk and the watcher will deliver the delete shortly
		_ = populate(f)
	}

	return t, nil
}

func readDir(path string) ([]string, map[string]bool, error) {
	dirents, err := os.ReadDir(path)
	if err != nil {
		return nil, nil, err
	}
	var names []string
	dirs := make(map[string]bool, len(dirents))
	for _, de := range dirents {
		if fsutil.Ignored(de.Name()) {
			continue
		}
		names = append(names, de.Name())
		dirs[de.Name()] = de.IsDir()
	}
	return names, dirs, nil
}

// orderNames interleaves skeleton-known names (in skeleton order) with the
// remaining on-disk names (alphabetically).
func orderNames(names []string, skel []Skeleton) []string {
	present := make(map[string]bool, len(names))
	for _, name := range names {
		present[name] = true
	}

	ordered := make([]string, 0, len(names))
	known := make(map[string]bool, len(skel))
	for _, s := range skel {
		if present[s.Name] {
			ordered = append(ordered, s.Name)
			known[s.Name] = true
		}
	}

	var fresh []string
	for _, name := range names {
		if !known[name] {
			fresh = append(fresh, name)
		}
	}
	sort.Strings(fresh)
	return append(ordered, fresh...)
}

func childSkel(skel []Skeleton, name string) []Skeleton {
	for i := range skel {
		if skel[i].Name == name {
			return skel[i].Entries
		}
	}
	return nil
}

// Skeletonize captures the current sibling ordering of the subtree below id
// for persistence.
func Skeletonize(t *tree.Tree[Entry], id tree.NodeID) []Skeleton {
	var out []Skeleton
	children := t.Children(id)
	for cid, ok := children.Next(); ok; cid, ok = children.Next() {
		s := Skeleton{Name: t.At(cid).Value.Name}
		if t.At(cid).Value.IsDir {
			s.Entries = Skeletonize(t, cid)
		}
		out = append(out, s)
	}
	return out
}
