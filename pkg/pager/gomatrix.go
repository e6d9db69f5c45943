package pager

import (
	"context"
	"strconv"

	"github.com/matrix-org/gomatrix"
	"github.com/matrix-org/timeline-core/pkg/timeline"
)

// GomatrixTransport adapts a *gomatrix.Client to Transport. It is the
// concrete transport the rest of this module is grounded on: the one
// Matrix-domain reference in this retrieval pack
// (t3chguy/riot-static's mxclient package) imports gomatrix for its
// Event type and drives identically-shaped context/messages calls.
type GomatrixTransport struct {
	Client *gomatrix.Client
}

// NewGomatrixTransport wraps an already-authenticated client.
func NewGomatrixTransport(client *gomatrix.Client) *GomatrixTransport {
	return &GomatrixTransport{Client: client}
}

// respContext is the wire shape of GET /rooms/{roomId}/context/{eventId}.
// gomatrix exposes no Context method or RespContext type of its own
// (its client.go only has Messages, MakeRequest,
// BuildURL/BuildURLWithQuery and similar low-level helpers), so this
// is built directly on those the way gomatrix's own higher-level
// methods are.
type respContext struct {
	Start        string           `json:"start"`
	End          string           `json:"end"`
	EventsBefore []gomatrix.Event `json:"events_before"`
	Event        gomatrix.Event   `json:"event"`
	EventsAfter  []gomatrix.Event `json:"events_after"`
	State        []gomatrix.Event `json:"state"`
}

func (t *GomatrixTransport) FetchContext(ctx context.Context, roomID, eventID string, limit int) (ContextResponse, error) {
	urlPath := t.Client.BuildURLWithQuery([]string{"rooms", roomID, "context", eventID}, map[string]string{
		"limit": strconv.Itoa(limit),
	})
	var resp respContext
	if _, err := t.Client.MakeRequest("GET", urlPath, nil, &resp); err != nil {
		return ContextResponse{}, err
	}
	return ContextResponse{
		EventsBefore: resp.EventsBefore,
		Event:        resp.Event,
		EventsAfter:  resp.EventsAfter,
		Start:        resp.Start,
		End:          resp.End,
		State:        resp.State,
	}, nil
}

func (t *GomatrixTransport) FetchMessages(ctx context.Context, roomID, fromToken string, limit int, direction timeline.Direction, filter *Filter) (MessagesResponse, error) {
	dir := 'b'
	if direction == timeline.Forward {
		dir = 'f'
	}
	resp, err := t.Client.Messages(roomID, fromToken, "", dir, limit)
	if err != nil {
		return MessagesResponse{}, err
	}
	return MessagesResponse{
		Chunk: resp.Chunk,
		Start: resp.Start,
		End:   resp.End,
	}, nil
}
