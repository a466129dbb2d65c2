package entry

import (
	"path/filepath"

	"github.com/saveman/saveman/internal/tree"
)

// Find returns the node whose entry occupies path, or NoNode. The tree root
// itself is matched too.
func Find(t *tree.Tree[Entry], path string) tree.NodeID {
	d := t.Descendants(tree.Root)
	for id, ok := d.Next(); ok; id, ok = d.Next() {
		if t.At(id).Value.Path == path {
			return id
		}
	}
	return tree.NoNode
}

// Rebase moves the subtree rooted at id to newPath, rewriting the cached
// paths of every descendant. Node identity is untouched, only the payloads
// change.
func Rebase(t *tree.Tree[Entry], id tree.NodeID, newPath string) {
	t.At(id).Value.Relocate(newPath)
	d := t.Descendants(id)
	d.Next() // the subtree root is already done
	for nid, ok := d.Next(); ok; nid, ok = d.Next() {
		node := t.At(nid)
		parentPath := t.At(node.Parent()).Value.Path
		node.Value.Path = filepath.Join(parentPath, node.Value.Name)
	}
}

// RelPaths lists the paths of all file entries below the root, relative to
// the root's own path. Directories are omitted.
func RelPaths(t *tree.Tree[Entry]) []string {
	base := t.At(tree.Root).Value.Path
	var out []string
	d := t.Descendants(tree.Root)
	d.Next()
	for id, ok := d.Next(); ok; id, ok = d.Next() {
		e := t.At(id).Value
		if e.IsDir {
			continue
		}
		rel, err := filepath.Rel(base, e.Path)
		if err != nil {
			continue
		}
		out = append(out, rel)
	}
	return out
}
