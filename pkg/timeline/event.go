package timeline

// RelationType classifies how an event relates to another, per
// spec.md §3: none | reply-to | replaces | thread-reply | reaction.
type RelationType int8

const (
	RelationNone RelationType = iota
	RelationReplyTo
	RelationReplaces
	RelationThreadReply
	RelationReaction
)

// Relation describes an event's relationship to another event, when
// one exists.
type Relation struct {
	Type   RelationType
	Target string // event_id this event relates to
}

// Event is the core's view of a timeline event. The core treats
// events as opaque beyond these fields; content, event type, and
// transport-specific shape live above this layer (see pkg/pager for
// the gomatrix.Event projection).
type Event struct {
	ID           string
	Sender       string
	OriginTS     int64
	ThreadRootID string // empty if the event is not part of a thread
	Relation     Relation
}

// The core does not interpret event types itself; redaction filtering
// happens above this layer (see pkg/pager.filterRedactions), so a
// redaction event from a messages fetch never reaches Fragment.Append.
// Context fetch results are not filtered.
