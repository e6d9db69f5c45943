package timeline

// ThreadContext resolves the receipt thread context for an event, per
// spec.md §4.6: "main" if the event has no thread root, is itself a
// thread root, or is related (but not thread-related) to a thread
// root; otherwise the event's thread root id.
//
// This is a pure function so the decryption/receipts integration
// contract is executable rather than descriptive: the receipts
// subsystem (out of core) calls this to recompute unread state after
// an event decrypts out of order, relying on the core's guarantee
// that Event identity and get_events() order are stable across
// decryption.
func ThreadContext(e Event, isThreadRoot bool) (root string, isMain bool) {
	if e.ThreadRootID == "" {
		return "", true
	}
	if isThreadRoot {
		return "", true
	}
	if e.Relation.Type != RelationNone && e.Relation.Type != RelationThreadReply {
		return "", true
	}
	return e.ThreadRootID, false
}
