package timeline

import "testing"

func TestThreadContextMainWhenNoThreadRoot(t *testing.T) {
	root, isMain := ThreadContext(Event{ID: "e1"}, false)
	if !isMain || root != "" {
		t.Fatalf("root=%q isMain=%v, want main", root, isMain)
	}
}

func TestThreadContextMainWhenIsThreadRootItself(t *testing.T) {
	e := Event{ID: "e1", ThreadRootID: "e1"}
	root, isMain := ThreadContext(e, true)
	if !isMain || root != "" {
		t.Fatalf("root=%q isMain=%v, want main", root, isMain)
	}
}

func TestThreadContextMainWhenRelatedButNotThread(t *testing.T) {
	e := Event{
		ID:           "e2",
		ThreadRootID: "root",
		Relation:     Relation{Type: RelationReplyTo, Target: "somethingElse"},
	}
	root, isMain := ThreadContext(e, false)
	if !isMain || root != "" {
		t.Fatalf("root=%q isMain=%v, want main (reply relation, not thread)", root, isMain)
	}
}

func TestThreadContextIsThreadRootIDWhenThreadReply(t *testing.T) {
	e := Event{
		ID:           "e3",
		ThreadRootID: "root",
		Relation:     Relation{Type: RelationThreadReply, Target: "root"},
	}
	root, isMain := ThreadContext(e, false)
	if isMain || root != "root" {
		t.Fatalf("root=%q isMain=%v, want root,false", root, isMain)
	}
}
