package timeline

import "testing"

func TestFragmentSetAppendSyncedIndexesLiveFragment(t *testing.T) {
	fs := NewFragmentSet()
	fresh := fs.AppendSynced(events("e1", "e2"), false, nil)

	if len(fresh) != 2 {
		t.Fatalf("fresh = %v, want 2 events", fresh)
	}
	f, ok := fs.FragmentForEvent("e1")
	if !ok || f != fs.live {
		t.Fatalf("FragmentForEvent(e1) = %v,%v, want live fragment", f, ok)
	}
}

func TestFragmentSetAppendSyncedLimitedStartsNewLiveFragment(t *testing.T) {
	fs := NewFragmentSet()
	old := fs.live
	fs.AppendSynced(events("e1"), false, nil)

	gap := "gap-token"
	fresh := fs.AppendSynced(events("e2", "e3"), true, &gap)

	if fs.live == old {
		t.Fatalf("live fragment unchanged after limited sync")
	}
	if tok := old.Token(Forward); tok == nil || *tok != gap {
		t.Fatalf("old fragment forward token = %v, want %q", tok, gap)
	}
	f, ok := fs.FragmentForEvent("e2")
	if !ok || f != fs.live {
		t.Fatalf("e2 should be indexed in the new live fragment")
	}
	if len(fresh) != 2 || fresh[0].ID != "e2" {
		t.Fatalf("fresh = %v, want e2,e3 in the new fragment", fresh)
	}
	if _, ok := old.sliceIndexOf("e2"); ok {
		t.Fatalf("e2 should not land in the old fragment")
	}
}

func TestFragmentSetLinkContiguousSetsSymmetricNeighbours(t *testing.T) {
	fs := NewFragmentSet()
	a := NewFragment()
	a.Append(Forward, events("a1", "a2"))
	fs.RegisterFragment(a, a.Events())

	b := fs.NewDisjointFragment()
	b.Append(Forward, events("b1", "b2"))
	fs.RegisterFragment(b, b.Events())

	fs.LinkContiguous(a, b)

	if a.Neighbour(Forward) != b || b.Neighbour(Backward) != a {
		t.Fatalf("LinkContiguous did not link a<->b symmetrically")
	}
	if len(a.Events()) != 2 || len(b.Events()) != 2 {
		t.Fatalf("LinkContiguous must not splice event slices together")
	}
}

func TestFragmentSetFragmentForEventMissIsNotFound(t *testing.T) {
	fs := NewFragmentSet()
	if _, ok := fs.FragmentForEvent("never-seen"); ok {
		t.Fatalf("FragmentForEvent(never-seen) = true, want false")
	}
}
