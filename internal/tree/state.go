package tree

// State is the interactive cursor over a tree: current selection, scroll
// offset, the multi-select marked set, and the "active" highlighted node.
// Selected, Active, and every member of Marked must reference nodes that are
// currently attached; reconciliation repairs them via DropSubtree whenever a
// node is removed.
type State[T any] struct {
	Selected NodeID
	Offset   int
	Marked   map[NodeID]struct{}
	Active   NodeID
}

// NewState returns an empty cursor with nothing selected.
func NewState[T any]() *State[T] {
	return &State[T]{
		Selected: NoNode,
		Active:   NoNode,
		Marked:   make(map[NodeID]struct{}),
	}
}

// Select sets the selection and expands every ancestor of id so the
// selection is immediately visible under the fold-aware traversal. Passing
// NoNode clears the selection.
func (s *State[T]) Select(id NodeID, t *Tree[T]) {
	s.Selected = id
	if !id.IsNode() {
		return
	}
	anc := t.Ancestors(id)
	for aid, ok := anc.Next(); ok; aid, ok = anc.Next() {
		t.At(aid).Expanded = FoldExpanded
	}
}

// SelectUnchecked sets the selection without expanding ancestors or
// validating reachability. The root is never selectable.
func (s *State[T]) SelectUnchecked(id NodeID) {
	if id.IsNode() && id != Root {
		s.Selected = id
	}
}

// Mark adds id to the marked set and reports whether the set changed.
func (s *State[T]) Mark(id NodeID) bool {
	if _, ok := s.Marked[id]; ok {
		return false
	}
	s.Marked[id] = struct{}{}
	return true
}

// Unmark removes id from the marked set and reports whether the set changed.
func (s *State[T]) Unmark(id NodeID) bool {
	if _, ok := s.Marked[id]; !ok {
		return false
	}
	delete(s.Marked, id)
	return true
}

// ToggleMark flips id's membership in the marked set.
func (s *State[T]) ToggleMark(id NodeID) {
	if !s.Mark(id) {
		s.Unmark(id)
	}
}

// SelectNext moves the selection one step forward along the visible
// traversal, or to the first item when nothing is selected. Advancing past
// the last visible item wraps to the first.
func (s *State[T]) SelectNext(t *Tree[T]) {
	if s.Selected.IsNode() {
		id, ok := t.Walk().Visible().From(s.Selected).skipNextNode()
		if ok {
			s.Selected = id
			return
		}
		s.Selected = NoNode
	}
	s.SelectFirst(t)
}

// SelectPrev moves the selection one step backward along the visible
// traversal, or to the last item when nothing is selected. Retreating past
// the first visible item wraps to the last.
func (s *State[T]) SelectPrev(t *Tree[T]) {
	if s.Selected.IsNode() {
		id, ok := t.Walk().Visible().To(s.Selected).skipPrevNode()
		if ok {
			s.Selected = id
			return
		}
		s.Selected = NoNode
	}
	s.SelectLast(t)
}

// skipNextNode drops the head Start edge and yields the following one.
func (w *Traverse[T]) skipNextNode() (NodeID, bool) {
	if _, ok := w.NextNode(); !ok {
		return NoNode, false
	}
	return w.NextNode()
}

// skipPrevNode drops the tail Start edge and yields the preceding one.
func (w *Traverse[T]) skipPrevNode() (NodeID, bool) {
	if _, ok := w.PrevNode(); !ok {
		return NoNode, false
	}
	return w.PrevNode()
}

// SelectFirst selects the root's first child. The root itself is never
// selectable.
func (s *State[T]) SelectFirst(t *Tree[T]) {
	if !t.HasRoot() {
		s.Selected = NoNode
		return
	}
	s.Selected = t.At(Root).firstChild
}

// SelectLast selects the deepest visible last-descendant: it descends into
// last children for as long as each successive node is expanded.
func (s *State[T]) SelectLast(t *Tree[T]) {
	if !t.HasRoot() {
		s.Selected = NoNode
		return
	}
	id := t.At(Root).lastChild
	for id.IsNode() {
		node := t.At(id)
		if !node.IsExpanded() || !node.lastChild.IsNode() {
			break
		}
		id = node.lastChild
	}
	s.Selected = id
}

// DropSubtree repairs the cursor ahead of detaching the subtree rooted at
// id: marked and active references into the subtree are cleared, and a
// selection inside it is repositioned to a neighbouring visible node. Must
// be called while the subtree is still attached.
func (s *State[T]) DropSubtree(t *Tree[T], id NodeID) {
	doomed := make(map[NodeID]struct{})
	desc := t.Descendants(id)
	for did, ok := desc.Next(); ok; did, ok = desc.Next() {
		doomed[did] = struct{}{}
	}

	for mid := range s.Marked {
		if _, gone := doomed[mid]; gone {
			delete(s.Marked, mid)
		}
	}
	if _, gone := doomed[s.Active]; s.Active.IsNode() && gone {
		s.Active = NoNode
	}

	if !s.Selected.IsNode() {
		return
	}
	if _, gone := doomed[s.Selected]; !gone {
		return
	}

	// Prefer the visible node just before the subtree, then the one after.
	// The walk's head filter keeps the root itself out of reach.
	if prev, ok := t.Walk().Visible().To(id).skipPrevNode(); ok {
		s.Selected = prev
		return
	}
	walk := t.Walk().Visible().From(id)
	walk.NextNode() // the subtree root itself
	for {
		next, ok := walk.NextNode()
		if !ok {
			s.Selected = NoNode
			return
		}
		if _, gone := doomed[next]; !gone {
			s.Selected = next
			return
		}
	}
}
