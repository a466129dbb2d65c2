package tree

// Edge is one visit phase of a depth-first walk: entering a node (Start) or
// leaving it (End). Encoding the walk as edge successors keeps traversal
// iterative and reversible, so deep trees never grow the call stack and the
// same walk serves both forward rendering and backward navigation.
type Edge struct {
	Node NodeID
	Exit bool
}

// Start returns the entering edge for a node.
func Start(id NodeID) Edge { return Edge{Node: id} }

// End returns the leaving edge for a node.
func End(id NodeID) Edge { return Edge{Node: id, Exit: true} }

func nextEdge[T any](t *Tree[T], e Edge, visibleOnly bool) (Edge, bool) {
	if !e.Exit {
		node := t.At(e.Node)
		if node.firstChild.IsNode() && (!visibleOnly || node.IsExpanded()) {
			return Start(node.firstChild), true
		}
		return End(e.Node), true
	}

	node := t.At(e.Node)
	if node.nextSibling.IsNode() {
		return Start(node.nextSibling), true
	}
	if node.parent.IsNode() {
		return End(node.parent), true
	}
	return Edge{}, false
}

func prevEdge[T any](t *Tree[T], e Edge, visibleOnly bool) (Edge, bool) {
	if e.Exit {
		node := t.At(e.Node)
		if node.lastChild.IsNode() && (!visibleOnly || node.IsExpanded()) {
			return End(node.lastChild), true
		}
		return Start(e.Node), true
	}

	node := t.At(e.Node)
	if node.previousSibling.IsNode() {
		return End(node.previousSibling), true
	}
	if node.parent.IsNode() {
		return Start(node.parent), true
	}
	return Edge{}, false
}

// Traverse walks the edges of a depth-first traversal between a head and a
// tail edge. It is double-ended: Next advances the head, Prev retreats the
// tail, and the walk is exhausted once either would produce the other end.
type Traverse[T any] struct {
	tree    *Tree[T]
	head    Edge
	tail    Edge
	done    bool
	visible bool
}

// Walk returns a traversal over the whole tree, from Start(Root) up to (and
// excluding) End(Root).
func (t *Tree[T]) Walk() *Traverse[T] {
	return &Traverse[T]{
		tree: t,
		head: Start(Root),
		tail: End(Root),
		done: !t.HasRoot(),
	}
}

// Visible switches the walk to the fold-aware variant: children of a node
// whose fold state is not FoldExpanded are never descended into.
func (w *Traverse[T]) Visible() *Traverse[T] {
	w.visible = true
	return w
}

// From rebases the head of the walk to Start(id).
func (w *Traverse[T]) From(id NodeID) *Traverse[T] {
	w.head = Start(id)
	w.done = false
	return w
}

// To bounds the tail of the walk at Start(id). Forward iteration stops
// before that edge; backward iteration begins with it.
func (w *Traverse[T]) To(id NodeID) *Traverse[T] {
	w.tail = Start(id)
	w.done = false
	return w
}

// Next yields the head edge and advances it. The walk ends once the head
// would step onto the tail, so the tail edge itself is never yielded going
// forward.
func (w *Traverse[T]) Next() (Edge, bool) {
	if w.done {
		return Edge{}, false
	}
	current := w.head
	next, ok := nextEdge(w.tree, current, w.visible)
	if !ok || next == w.tail {
		w.done = true
	} else {
		w.head = next
	}
	return current, true
}

// Prev yields the tail edge and retreats it. The walk ends once the tail
// would step onto the head, so the head edge itself is never yielded going
// backward.
func (w *Traverse[T]) Prev() (Edge, bool) {
	if w.done {
		return Edge{}, false
	}
	current := w.tail
	prev, ok := prevEdge(w.tree, current, w.visible)
	if !ok || prev == w.head {
		w.done = true
	} else {
		w.tail = prev
	}
	return current, true
}

// NextNode advances forward to the next Start edge and returns its node.
func (w *Traverse[T]) NextNode() (NodeID, bool) {
	for {
		edge, ok := w.Next()
		if !ok {
			return NoNode, false
		}
		if !edge.Exit {
			return edge.Node, true
		}
	}
}

// PrevNode retreats backward to the nearest Start edge and returns its node.
func (w *Traverse[T]) PrevNode() (NodeID, bool) {
	for {
		edge, ok := w.Prev()
		if !ok {
			return NoNode, false
		}
		if !edge.Exit {
			return edge.Node, true
		}
	}
}

// Descendants yields ancestor and its descendants in preorder by filtering a
// subtree walk down to Start edges.
type Descendants[T any] struct {
	walk Traverse[T]
}

// Descendants returns a preorder iterator over the subtree rooted at
// ancestor, including ancestor itself.
func (t *Tree[T]) Descendants(ancestor NodeID) *Descendants[T] {
	return &Descendants[T]{walk: Traverse[T]{
		tree: t,
		head: Start(ancestor),
		tail: End(ancestor),
	}}
}

// Next returns the next node in preorder.
func (d *Descendants[T]) Next() (NodeID, bool) {
	return d.walk.NextNode()
}

// Collect drains the iterator into a slice.
func (d *Descendants[T]) Collect() []NodeID {
	var ids []NodeID
	for id, ok := d.Next(); ok; id, ok = d.Next() {
		ids = append(ids, id)
	}
	return ids
}
