package tree

import "testing"

func add(t *Tree[string], values ...string) []NodeID {
	ids := make([]NodeID, len(values))
	for i, v := range values {
		ids[i] = t.Add(v)
	}
	return ids
}

func assertIDs(t *testing.T, got, want []NodeID) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d ids, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected ids %v, got %v", want, got)
		}
	}
}

func TestAppendOrder(t *testing.T) {
	tr := New[string]()
	ids := add(tr, "r", "a", "b", "c")
	r, a, b, c := ids[0], ids[1], ids[2], ids[3]

	tr.Append(r, a)
	tr.Append(r, b)
	tr.Append(r, c)

	assertIDs(t, tr.Children(r).Collect(), []NodeID{a, b, c})
}

func TestPrependReversesOrder(t *testing.T) {
	tr := New[string]()
	ids := add(tr, "r", "a", "b")
	r, a, b := ids[0], ids[1], ids[2]

	tr.Prepend(r, a)
	tr.Prepend(r, b)

	assertIDs(t, tr.Children(r).Collect(), []NodeID{b, a})
}

func TestInsertBeforeAndAfter(t *testing.T) {
	tr := New[string]()
	ids := add(tr, "r", "a", "b", "c", "d")
	r, a, b, c, d := ids[0], ids[1], ids[2], ids[3], ids[4]

	tr.Append(r, a)
	tr.Append(r, b)
	tr.InsertAfter(a, c)
	tr.InsertBefore(a, d)

	assertIDs(t, tr.Children(r).Collect(), []NodeID{d, a, c, b})

	if got := tr.At(c).Parent(); got != r {
		t.Fatalf("expected parent %d for inserted node, got %d", r, got)
	}
}

func TestDetachRepairsSiblingsAndParent(t *testing.T) {
	tr := New[string]()
	ids := add(tr, "r", "a", "b", "c")
	r, a, b, c := ids[0], ids[1], ids[2], ids[3]

	tr.Append(r, a)
	tr.Append(r, b)
	tr.Append(r, c)
	tr.Detach(b)

	assertIDs(t, tr.Children(r).Collect(), []NodeID{a, c})

	node := tr.At(b)
	if node.Parent().IsNode() || node.PreviousSibling().IsNode() || node.NextSibling().IsNode() {
		t.Fatalf("expected detached node links cleared, got parent=%d prev=%d next=%d",
			node.Parent(), node.PreviousSibling(), node.NextSibling())
	}
	if got := tr.At(a).NextSibling(); got != c {
		t.Fatalf("expected sibling gap bridged to %d, got %d", c, got)
	}
}

func TestDetachEndsUpdateParentPointers(t *testing.T) {
	tr := New[string]()
	ids := add(tr, "r", "a", "b")
	r, a, b := ids[0], ids[1], ids[2]

	tr.Append(r, a)
	tr.Append(r, b)

	tr.Detach(a)
	if got := tr.At(r).FirstChild(); got != b {
		t.Fatalf("expected first child %d after detaching head, got %d", b, got)
	}
	tr.Detach(b)
	if tr.At(r).FirstChild().IsNode() || tr.At(r).LastChild().IsNode() {
		t.Fatalf("expected no children after detaching all, got first=%d last=%d",
			tr.At(r).FirstChild(), tr.At(r).LastChild())
	}
}

func TestDetachKeepsSlotAndID(t *testing.T) {
	tr := New[string]()
	ids := add(tr, "r", "a")
	r, a := ids[0], ids[1]

	tr.Append(r, a)
	tr.Detach(a)

	if tr.Len() != 2 {
		t.Fatalf("expected arena to retain %d slots, got %d", 2, tr.Len())
	}
	if got := tr.At(a).Value; got != "a" {
		t.Fatalf("expected detached slot to keep value %q, got %q", "a", got)
	}

	// A detached id can be re-attached elsewhere.
	tr.Append(r, a)
	assertIDs(t, tr.Children(r).Collect(), []NodeID{a})
}

func TestDetachThenReinsertMovesNode(t *testing.T) {
	tr := New[string]()
	ids := add(tr, "r", "a", "b", "c")
	r, a, b, c := ids[0], ids[1], ids[2], ids[3]

	tr.Append(r, a)
	tr.Append(r, b)
	tr.Append(r, c)

	tr.Detach(a)
	tr.InsertAfter(c, a)

	assertIDs(t, tr.Children(r).Collect(), []NodeID{b, c, a})
}

func TestChildrenIsDoubleEnded(t *testing.T) {
	tr := New[string]()
	ids := add(tr, "r", "a", "b", "c")
	r, a, b, c := ids[0], ids[1], ids[2], ids[3]

	tr.Append(r, a)
	tr.Append(r, b)
	tr.Append(r, c)

	it := tr.Children(r)
	var back []NodeID
	for id, ok := it.Prev(); ok; id, ok = it.Prev() {
		back = append(back, id)
	}
	assertIDs(t, back, []NodeID{c, b, a})

	// Mixed direction stops when the ends meet.
	it = tr.Children(r)
	first, _ := it.Next()
	last, _ := it.Prev()
	mid, ok := it.Next()
	if first != a || last != c || mid != b || !ok {
		t.Fatalf("expected a/c/b from mixed iteration, got %d/%d/%d", first, last, mid)
	}
	if _, ok := it.Next(); ok {
		t.Fatal("expected iterator exhausted after ends met")
	}
}

func TestAtPanicsOnStaleID(t *testing.T) {
	tr := New[string]()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out-of-range id")
		}
	}()
	tr.At(NodeID(7))
}

func TestAncestorsAndPredecessorsExcludeStart(t *testing.T) {
	tr := New[string]()
	ids := add(tr, "r", "a", "b", "c", "d")
	r, a, b, c, d := ids[0], ids[1], ids[2], ids[3], ids[4]

	tr.Append(r, a)
	tr.Append(a, c)
	tr.Append(a, d)
	tr.Append(r, b)

	assertIDs(t, tr.Ancestors(d).Collect(), []NodeID{a, r})
	assertIDs(t, tr.Predecessors(d).Collect(), []NodeID{c, a, r})
}

func TestSiblingIterators(t *testing.T) {
	tr := New[string]()
	ids := add(tr, "r", "a", "b", "c")
	r, a, b, c := ids[0], ids[1], ids[2], ids[3]

	tr.Append(r, a)
	tr.Append(r, b)
	tr.Append(r, c)

	assertIDs(t, tr.FollowingSiblings(a).Collect(), []NodeID{b, c})
	assertIDs(t, tr.PrecedingSiblings(c).Collect(), []NodeID{b, a})

	if _, ok := tr.PrecedingSiblings(a).Next(); ok {
		t.Fatal("expected no preceding siblings for first child")
	}
	if _, ok := tr.FollowingSiblings(c).Next(); ok {
		t.Fatal("expected no following siblings for last child")
	}
}

func TestDescendantsPreorder(t *testing.T) {
	tr := New[string]()
	ids := add(tr, "r", "a", "b", "c", "d", "e")
	r, a, b, c, d, e := ids[0], ids[1], ids[2], ids[3], ids[4], ids[5]

	tr.Append(r, a)
	tr.Append(a, c)
	tr.Append(a, d)
	tr.Append(d, e)
	tr.Append(r, b)

	assertIDs(t, tr.Descendants(r).Collect(), []NodeID{r, a, c, d, e, b})
	assertIDs(t, tr.Descendants(a).Collect(), []NodeID{a, c, d, e})
	assertIDs(t, tr.Descendants(b).Collect(), []NodeID{b})
}
