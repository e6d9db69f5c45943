// Package pager implements the Pager of spec.md §4.5: a stateless
// helper that issues remote context and messages requests against a
// Matrix homeserver and normalises the results for
// pkg/timeline.Window to integrate.
package pager

import (
	"context"

	"github.com/matrix-org/gomatrix"
	"github.com/matrix-org/timeline-core/pkg/timeline"
)

// RawEvent is the wire-shaped event the transport hands back, before
// projection into the core's opaque-but-for-a-few-fields
// timeline.Event. We reuse gomatrix.Event directly: it is the one
// Matrix event shape this retrieval pack's reference client
// (t3chguy/riot-static) already imports for exactly this purpose.
type RawEvent = gomatrix.Event

// ContextResponse mirrors spec.md §6.1's ContextResponse.
// EventsAfter arrives in reverse chronological order (newest first),
// matching what a homeserver actually returns; Pager.Context reverses
// it when composing a ContextResult.
type ContextResponse struct {
	EventsBefore []RawEvent
	Event        RawEvent
	EventsAfter  []RawEvent
	Start        string
	End          string
	State        []RawEvent
}

// MessagesResponse mirrors spec.md §6.1's MessagesResponse.
// Pager.Messages treats End == Start as end-of-history in that
// direction, whether or not Chunk is empty.
type MessagesResponse struct {
	Chunk []RawEvent
	Start string
	End   string
	State []RawEvent
}

// Filter narrows a messages fetch, e.g. for lazy-loading room
// members. A nil *Filter means no filtering.
type Filter struct {
	LazyLoadMembers bool
}

// Transport is the external collaborator consumed from the transport
// layer (spec.md §6.1): wire framing, auth, and retry-with-backoff of
// HTTP itself are its responsibility, not the core's.
type Transport interface {
	FetchContext(ctx context.Context, roomID, eventID string, limit int) (ContextResponse, error)
	FetchMessages(ctx context.Context, roomID, fromToken string, limit int, direction timeline.Direction, filter *Filter) (MessagesResponse, error)
}
