package tree

// NodeID is a stable, copyable handle to a slot in a Tree's arena. IDs are
// issued in insertion order and remain valid for the lifetime of the tree;
// detaching a node does not invalidate its id.
type NodeID int32

// NoNode is the sentinel for "no node". It is never issued by a tree, which
// keeps it distinct from Root (slot 0).
const NoNode NodeID = -1

// Root is the id of the arena's first slot when it is occupied.
const Root NodeID = 0

// IsNode reports whether the id refers to a slot rather than the sentinel.
func (id NodeID) IsNode() bool {
	return id != NoNode
}
