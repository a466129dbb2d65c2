// Package tree implements an arena-indexed intrusive tree plus the traversal
// and selection state used to render and navigate it. The arena is the sole
// owner of node storage: external holders keep NodeIDs, never references.
// Slots are append-only; Detach unlinks a node without recycling its slot.
package tree

import "fmt"

// Tree is an append-only arena of nodes. Slot 0, when occupied, is the root.
type Tree[T any] struct {
	nodes []Node[T]
}

// New returns an empty tree.
func New[T any]() *Tree[T] {
	return &Tree[T]{}
}

// Len returns the number of slots in the arena, attached or not.
func (t *Tree[T]) Len() int { return len(t.nodes) }

// At returns the node for the given id. Indexing with a stale or
// out-of-range id is a programmer error and panics.
func (t *Tree[T]) At(id NodeID) *Node[T] {
	if id < 0 || int(id) >= len(t.nodes) {
		panic(fmt.Sprintf("tree: invalid node id %d (arena has %d slots)", id, len(t.nodes)))
	}
	return &t.nodes[id]
}

// Get returns the node for the given id, or nil if the id does not name a
// slot. Unlike At it never panics.
func (t *Tree[T]) Get(id NodeID) *Node[T] {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return &t.nodes[id]
}

// HasRoot reports whether slot 0 is occupied.
func (t *Tree[T]) HasRoot() bool { return len(t.nodes) > 0 }

// Add creates a node with the given value, unattached, and returns its id.
func (t *Tree[T]) Add(value T) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, newNode(value))
	return id
}

// Reset drops all nodes. Previously issued ids become invalid; callers must
// not retain ids across a Reset.
func (t *Tree[T]) Reset() {
	t.nodes = t.nodes[:0]
}

// Append attaches new as parent's last child.
func (t *Tree[T]) Append(parent, new NodeID) {
	t.link(new, parent, t.At(parent).lastChild, NoNode)
}

// Prepend attaches new as parent's first child.
func (t *Tree[T]) Prepend(parent, new NodeID) {
	t.link(new, parent, NoNode, t.At(parent).firstChild)
}

// InsertAfter attaches new as sibling's next sibling.
func (t *Tree[T]) InsertAfter(sibling, new NodeID) {
	node := t.At(sibling)
	t.link(new, node.parent, sibling, node.nextSibling)
}

// InsertBefore attaches new as sibling's previous sibling.
func (t *Tree[T]) InsertBefore(sibling, new NodeID) {
	node := t.At(sibling)
	t.link(new, node.parent, node.previousSibling, sibling)
}

// Detach unlinks a node from its parent and siblings and repairs the vacated
// position on both sides. The slot stays in the arena and the id stays
// valid; the node is merely unreachable by traversal from the root.
func (t *Tree[T]) Detach(id NodeID) {
	node := t.At(id)
	parent, prev, next := node.parent, node.previousSibling, node.nextSibling
	node.parent, node.previousSibling, node.nextSibling = NoNode, NoNode, NoNode

	t.bridge(parent, prev, next)
}

// link splices new between prev and next under parent. Exactly the pointers
// adjacent to the spliced position are rewritten.
func (t *Tree[T]) link(new, parent, prev, next NodeID) {
	t.At(new).parent = parent
	t.bridge(parent, prev, new)
	t.bridge(parent, new, next)
}

// bridge makes prev and next adjacent siblings, falling back to the parent's
// first/last child pointers at either open end.
func (t *Tree[T]) bridge(parent, prev, next NodeID) {
	if prev.IsNode() {
		t.At(prev).nextSibling = next
	} else if parent.IsNode() {
		t.At(parent).firstChild = next
	}

	if next.IsNode() {
		t.At(next).previousSibling = prev
	} else if parent.IsNode() {
		t.At(parent).lastChild = prev
	}
}
