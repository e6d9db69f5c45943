package pager

import (
	"context"
	"testing"

	"github.com/matrix-org/timeline-core/pkg/timeline"
)

type fakeTransport struct {
	context  ContextResponse
	messages MessagesResponse
}

func (f *fakeTransport) FetchContext(ctx context.Context, roomID, eventID string, limit int) (ContextResponse, error) {
	return f.context, nil
}

func (f *fakeTransport) FetchMessages(ctx context.Context, roomID, fromToken string, limit int, direction timeline.Direction, filter *Filter) (MessagesResponse, error) {
	return f.messages, nil
}

func TestContextReversesEventsAfter(t *testing.T) {
	ft := &fakeTransport{
		context: ContextResponse{
			EventsBefore: []RawEvent{{ID: "b1"}, {ID: "b2"}},
			Event:        RawEvent{ID: "target"},
			EventsAfter:  []RawEvent{{ID: "a3"}, {ID: "a2"}, {ID: "a1"}}, // newest first, as the wire delivers
			Start:        "s",
			End:          "e",
		},
	}
	p := New("!room:example.org", ft, 10)
	res, err := p.Context(context.Background(), "target")
	if err != nil {
		t.Fatalf("Context: %v", err)
	}
	if res.Target.ID != "target" {
		t.Fatalf("target = %s, want target", res.Target.ID)
	}
	want := []string{"a1", "a2", "a3"}
	for i, e := range res.EventsAfter {
		if e.ID != want[i] {
			t.Fatalf("EventsAfter = %v, want chronological %v", res.EventsAfter, want)
		}
	}
	if res.StartToken == nil || *res.StartToken != "s" {
		t.Fatalf("StartToken = %v, want s", res.StartToken)
	}
}

func TestMessagesFiltersRedactionsAndEndOfHistory(t *testing.T) {
	ft := &fakeTransport{
		messages: MessagesResponse{
			Chunk: []RawEvent{
				{ID: "e1", Type: "m.room.message"},
				{ID: "r1", Type: "m.room.redaction"},
			},
			Start: "tok",
			End:   "tok", // start == end signals end of history
		},
	}
	p := New("!room:example.org", ft, 10)
	res, err := p.Messages(context.Background(), "tok", timeline.Backward, 20)
	if err != nil {
		t.Fatalf("Messages: %v", err)
	}
	if len(res.Events) != 1 || res.Events[0].ID != "e1" {
		t.Fatalf("Events = %v, want only e1 (redaction filtered)", res.Events)
	}
	if res.NextToken != nil {
		t.Fatalf("NextToken = %v, want nil (start==end => end of history)", *res.NextToken)
	}
}

func TestParseRelationThreadReply(t *testing.T) {
	content := map[string]interface{}{
		"m.relates_to": map[string]interface{}{
			"rel_type": "m.thread",
			"event_id": "$root",
		},
	}
	rel, root := parseRelation(content)
	if rel.Type != timeline.RelationThreadReply || rel.Target != "$root" {
		t.Fatalf("rel = %+v, want thread-reply to $root", rel)
	}
	if root != "$root" {
		t.Fatalf("root = %s, want $root", root)
	}
}

func TestParseRelationReplyTo(t *testing.T) {
	content := map[string]interface{}{
		"m.relates_to": map[string]interface{}{
			"m.in_reply_to": map[string]interface{}{
				"event_id": "$parent",
			},
		},
	}
	rel, root := parseRelation(content)
	if rel.Type != timeline.RelationReplyTo || rel.Target != "$parent" {
		t.Fatalf("rel = %+v, want reply-to $parent", rel)
	}
	if root != "" {
		t.Fatalf("root = %s, want empty (reply is not a thread relation)", root)
	}
}
