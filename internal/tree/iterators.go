package tree

// Children is a double-ended iterator over a parent's child list, bounded by
// the parent's first and last child pointers.
type Children[T any] struct {
	tree *Tree[T]
	head NodeID
	tail NodeID
}

// Children returns an iterator over parent's children in sibling order.
func (t *Tree[T]) Children(parent NodeID) *Children[T] {
	node := t.At(parent)
	return &Children[T]{tree: t, head: node.firstChild, tail: node.lastChild}
}

// Next yields the head child and advances towards the tail.
func (c *Children[T]) Next() (NodeID, bool) {
	if !c.head.IsNode() {
		return NoNode, false
	}
	current := c.head
	if current == c.tail {
		c.head, c.tail = NoNode, NoNode
	} else {
		c.head = c.tree.At(current).nextSibling
	}
	return current, true
}

// Prev yields the tail child and retreats towards the head.
func (c *Children[T]) Prev() (NodeID, bool) {
	if !c.tail.IsNode() {
		return NoNode, false
	}
	current := c.tail
	if current == c.head {
		c.head, c.tail = NoNode, NoNode
	} else {
		c.tail = c.tree.At(current).previousSibling
	}
	return current, true
}

// Collect drains the iterator forward into a slice.
func (c *Children[T]) Collect() []NodeID {
	var ids []NodeID
	for id, ok := c.Next(); ok; id, ok = c.Next() {
		ids = append(ids, id)
	}
	return ids
}

// chain is a single-ended iterator following one link per step.
type chain[T any] struct {
	tree *Tree[T]
	node NodeID
	step func(*Node[T]) NodeID
}

func (it *chain[T]) Next() (NodeID, bool) {
	if !it.node.IsNode() {
		return NoNode, false
	}
	current := it.node
	it.node = it.step(it.tree.At(current))
	return current, true
}

func (it *chain[T]) Collect() []NodeID {
	var ids []NodeID
	for id, ok := it.Next(); ok; id, ok = it.Next() {
		ids = append(ids, id)
	}
	return ids
}

// Ancestors iterates a node's ancestors, nearest first. The starting node
// itself is not yielded.
type Ancestors[T any] struct{ chain[T] }

// Ancestors returns an iterator over node's ancestors up to the root.
func (t *Tree[T]) Ancestors(node NodeID) *Ancestors[T] {
	return &Ancestors[T]{chain[T]{
		tree: t,
		node: t.At(node).parent,
		step: func(n *Node[T]) NodeID { return n.parent },
	}}
}

// Predecessors iterates the nodes before a given node in document order,
// following previous-sibling links and falling back to the parent. The
// starting node itself is not yielded.
type Predecessors[T any] struct{ chain[T] }

// Predecessors returns an iterator over the nodes preceding node.
func (t *Tree[T]) Predecessors(node NodeID) *Predecessors[T] {
	step := func(n *Node[T]) NodeID {
		if n.previousSibling.IsNode() {
			return n.previousSibling
		}
		return n.parent
	}
	return &Predecessors[T]{chain[T]{tree: t, node: step(t.At(node)), step: step}}
}

// FollowingSiblings is a double-ended iterator over the siblings after a
// node, bounded by the parent's last child.
type FollowingSiblings[T any] struct{ Children[T] }

// FollowingSiblings returns an iterator over the siblings after node.
func (t *Tree[T]) FollowingSiblings(node NodeID) *FollowingSiblings[T] {
	n := t.At(node)
	tail := NoNode
	if n.parent.IsNode() {
		tail = t.At(n.parent).lastChild
	}
	if !n.nextSibling.IsNode() {
		tail = NoNode
	}
	return &FollowingSiblings[T]{Children[T]{tree: t, head: n.nextSibling, tail: tail}}
}

// PrecedingSiblings is a double-ended iterator over the siblings before a
// node, nearest first, bounded by the parent's first child.
type PrecedingSiblings[T any] struct {
	tree *Tree[T]
	head NodeID
	tail NodeID
}

// PrecedingSiblings returns an iterator over the siblings before node,
// nearest first.
func (t *Tree[T]) PrecedingSiblings(node NodeID) *PrecedingSiblings[T] {
	n := t.At(node)
	tail := NoNode
	if n.parent.IsNode() {
		tail = t.At(n.parent).firstChild
	}
	if !n.previousSibling.IsNode() {
		tail = NoNode
	}
	return &PrecedingSiblings[T]{tree: t, head: n.previousSibling, tail: tail}
}

// Next yields the nearest remaining preceding sibling.
func (p *PrecedingSiblings[T]) Next() (NodeID, bool) {
	if !p.head.IsNode() {
		return NoNode, false
	}
	current := p.head
	if current == p.tail {
		p.head, p.tail = NoNode, NoNode
	} else {
		p.head = p.tree.At(current).previousSibling
	}
	return current, true
}

// Prev yields the furthest remaining preceding sibling.
func (p *PrecedingSiblings[T]) Prev() (NodeID, bool) {
	if !p.tail.IsNode() {
		return NoNode, false
	}
	current := p.tail
	if current == p.head {
		p.head, p.tail = NoNode, NoNode
	} else {
		p.tail = p.tree.At(current).nextSibling
	}
	return current, true
}

// Collect drains the iterator forward into a slice.
func (p *PrecedingSiblings[T]) Collect() []NodeID {
	var ids []NodeID
	for id, ok := p.Next(); ok; id, ok = p.Next() {
		ids = append(ids, id)
	}
	return ids
}
