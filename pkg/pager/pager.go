package pager

import (
	"context"

	"github.com/matrix-org/timeline-core/pkg/timeline"
)

const (
	relReplace      = "m.replace"
	relThread       = "m.thread"
	relAnnotation   = "m.annotation"
	relInReplyToKey = "m.in_reply_to"
	relatesToKey    = "m.relates_to"
	redactionType   = "m.room.redaction"
)

// Pager issues context and messages requests for one room against a
// Transport, normalising results into the shapes pkg/timeline
// consumes. It holds no pagination state of its own — the fragment
// graph owns tokens and in-flight markers — matching spec.md §4.5's
// "stateless helper" contract.
type Pager struct {
	roomID    string
	transport Transport
	limit     int
}

// New returns a Pager for roomID issuing requests through transport.
// contextLimit bounds how many events surround the target in a
// context fetch; <= 0 uses a sensible default.
func New(roomID string, transport Transport, contextLimit int) *Pager {
	if contextLimit <= 0 {
		contextLimit = 20
	}
	return &Pager{roomID: roomID, transport: transport, limit: contextLimit}
}

// Context implements timeline.Pager.
func (p *Pager) Context(ctx context.Context, eventID string) (timeline.ContextResult, error) {
	resp, err := p.transport.FetchContext(ctx, p.roomID, eventID, p.limit)
	if err != nil {
		return timeline.ContextResult{}, err
	}

	after := convertAll(resp.EventsAfter)
	reverse(after)

	return timeline.ContextResult{
		EventsBefore: convertAll(resp.EventsBefore),
		Target:       convert(resp.Event),
		EventsAfter:  after,
		StartToken:   tokenOrNil(resp.Start),
		EndToken:     tokenOrNil(resp.End),
	}, nil
}

// Messages implements timeline.Pager.
func (p *Pager) Messages(ctx context.Context, token string, direction timeline.Direction, size int) (timeline.MessagesResult, error) {
	resp, err := p.transport.FetchMessages(ctx, p.roomID, token, size, direction, nil)
	if err != nil {
		return timeline.MessagesResult{}, err
	}

	events := convertAll(filterRedactions(resp.Chunk))

	var next *string
	if resp.End != resp.Start {
		next = tokenOrNil(resp.End)
	}

	return timeline.MessagesResult{Events: events, NextToken: next}, nil
}

func filterRedactions(events []RawEvent) []RawEvent {
	out := make([]RawEvent, 0, len(events))
	for _, e := range events {
		if e.Type == redactionType {
			continue
		}
		out = append(out, e)
	}
	return out
}

func convertAll(events []RawEvent) []timeline.Event {
	out := make([]timeline.Event, 0, len(events))
	for _, e := range events {
		out = append(out, convert(e))
	}
	return out
}

func convert(e RawEvent) timeline.Event {
	rel, threadRoot := parseRelation(e.Content)
	return timeline.Event{
		ID:           e.ID,
		Sender:       e.Sender,
		OriginTS:     e.Timestamp,
		ThreadRootID: threadRoot,
		Relation:     rel,
	}
}

func parseRelation(content map[string]interface{}) (timeline.Relation, string) {
	relatesTo, ok := content[relatesToKey].(map[string]interface{})
	if !ok {
		return timeline.Relation{}, ""
	}

	if relType, ok := relatesTo["rel_type"].(string); ok {
		target, _ := relatesTo["event_id"].(string)
		switch relType {
		case relReplace:
			return timeline.Relation{Type: timeline.RelationReplaces, Target: target}, ""
		case relThread:
			return timeline.Relation{Type: timeline.RelationThreadReply, Target: target}, target
		case relAnnotation:
			return timeline.Relation{Type: timeline.RelationReaction, Target: target}, ""
		}
	}

	if inReplyTo, ok := relatesTo[relInReplyToKey].(map[string]interface{}); ok {
		target, _ := inReplyTo["event_id"].(string)
		return timeline.Relation{Type: timeline.RelationReplyTo, Target: target}, ""
	}

	return timeline.Relation{}, ""
}

func reverse(events []timeline.Event) {
	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}
}

func tokenOrNil(tok string) *string {
	if tok == "" {
		return nil
	}
	return &tok
}
