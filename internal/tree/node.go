package tree

// Fold is the tri-state expansion flag of a node. Leaf nodes carry FoldNone;
// container nodes are either FoldExpanded or FoldCollapsed.
type Fold int8

const (
	// FoldNone marks a node that is not a container, or a container whose
	// fold state is unknown.
	FoldNone Fold = iota
	FoldExpanded
	FoldCollapsed
)

// Node is an arena record holding a payload plus structural links. All links
// are NodeIDs into the owning tree, never pointers, so holders of a Node's id
// share no aliasing with the tree's storage.
type Node[T any] struct {
	Value    T
	Expanded Fold

	parent          NodeID
	previousSibling NodeID
	nextSibling     NodeID
	firstChild      NodeID
	lastChild       NodeID
}

func newNode[T any](value T) Node[T] {
	return Node[T]{
		Value:           value,
		parent:          NoNode,
		previousSibling: NoNode,
		nextSibling:     NoNode,
		firstChild:      NoNode,
		lastChild:       NoNode,
	}
}

// Parent returns the id of the parent node, or NoNode for a root.
func (n *Node[T]) Parent() NodeID { return n.parent }

// PreviousSibling returns the id of the previous sibling, or NoNode if the
// node is its parent's first child.
func (n *Node[T]) PreviousSibling() NodeID { return n.previousSibling }

// NextSibling returns the id of the next sibling, or NoNode if the node is
// its parent's last child.
func (n *Node[T]) NextSibling() NodeID { return n.nextSibling }

// FirstChild returns the id of the first child, or NoNode.
func (n *Node[T]) FirstChild() NodeID { return n.firstChild }

// LastChild returns the id of the last child, or NoNode.
func (n *Node[T]) LastChild() NodeID { return n.lastChild }

// HasChildren reports whether the node has at least one attached child.
func (n *Node[T]) HasChildren() bool { return n.firstChild.IsNode() }

// IsExpanded reports whether the node is a container that is unfolded.
func (n *Node[T]) IsExpanded() bool { return n.Expanded == FoldExpanded }

// IsCollapsed reports whether the node is a container that is folded shut.
func (n *Node[T]) IsCollapsed() bool { return n.Expanded == FoldCollapsed }

// ToggleFold flips the fold state of a container node. Leaves are unchanged.
func (n *Node[T]) ToggleFold() {
	switch n.Expanded {
	case FoldExpanded:
		n.Expanded = FoldCollapsed
	case FoldCollapsed:
		n.Expanded = FoldExpanded
	}
}
