package timeline

import "context"

// ContextResult is the normalised result of a context fetch (spec.md
// §6.1's fetch_context), already reordered to chronological order:
// events_before, then the target event, then events_after. The
// events_after field the transport hands back arrives newest-first;
// normalising that reversal is the Pager's job so the core never
// reasons about wire ordering.
type ContextResult struct {
	EventsBefore []Event
	Target       Event
	EventsAfter  []Event
	StartToken   *string
	EndToken     *string
}

// MessagesResult is the normalised result of a messages fetch
// (spec.md §6.1's fetch_messages). An empty Events with NextToken ==
// nil signals end-of-history in that direction; a NextToken equal to
// the token requested is not treated as end-of-history. The pager is responsible for collapsing the
// transport's start==end convention into NextToken == nil.
type MessagesResult struct {
	Events    []Event
	NextToken *string
}

// Pager is the stateless helper the Window calls into when in-memory
// extension is insufficient. It is consumed as an interface here so
// the core has no dependency on any transport library; see
// pkg/pager for the concrete implementation over a homeserver client.
type Pager interface {
	// Context fetches the neighbourhood around eventID for Load.
	Context(ctx context.Context, eventID string) (ContextResult, error)

	// Messages fetches size events in direction direction starting
	// from token for Paginate.
	Messages(ctx context.Context, token string, direction Direction, size int) (MessagesResult, error)
}
