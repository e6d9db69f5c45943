package timeline

// Fragment is an ordered, append-both-ends sequence of events with a
// stable base index, up to two neighbour links, up to two pagination
// tokens, and a single-flight pending-pagination slot per direction.
//
// Fragments are owned by a FragmentSet arena; neighbour links are
// plain pointers into that arena rather than owning references.
type Fragment struct {
	events []Event
	ids    map[string]struct{} // de-duplication, enforced at this level per spec.md §4.5

	// baseIndex anchors offsets: the logical index of events[k] is
	// k - baseIndex. Prepending n events increases baseIndex by n instead of
	// renumbering outstanding cursors into this fragment.
	baseIndex int

	backwardToken *string
	forwardToken  *string

	backwardNeighbour *Fragment
	forwardNeighbour  *Fragment

	pendingBack *pagePromise
	pendingFwd  *pagePromise
}

// NewFragment returns an empty fragment with no tokens or neighbours.
func NewFragment() *Fragment {
	return &Fragment{ids: make(map[string]struct{})}
}

// MinOffset is the smallest valid cursor offset into this fragment,
// always <= 0.
func (f *Fragment) MinOffset() int { return -f.baseIndex }

// MaxOffset is one past the largest valid cursor offset into this
// fragment.
func (f *Fragment) MaxOffset() int { return len(f.events) - f.baseIndex }

// Events returns a read-only view of the fragment's stored events.
func (f *Fragment) Events() []Event { return f.events }

// Neighbour returns the fragment linked in the given direction, if
// any.
func (f *Fragment) Neighbour(dir Direction) *Fragment {
	if dir == Backward {
		return f.backwardNeighbour
	}
	return f.forwardNeighbour
}

// Token returns the pagination token for the given direction, if any.
func (f *Fragment) Token(dir Direction) *string {
	if dir == Backward {
		return f.backwardToken
	}
	return f.forwardToken
}

// SetToken sets (or clears, with nil) the pagination token for the
// given direction.
func (f *Fragment) SetToken(dir Direction, token *string) {
	if dir == Backward {
		f.backwardToken = token
	} else {
		f.forwardToken = token
	}
}

// TakePending atomically reads and clears the in-flight pagination
// promise for the given direction, the fragment half of the
// single-flight protocol in spec.md §4.3.4.
func (f *Fragment) TakePending(dir Direction) *pagePromise {
	var p *pagePromise
	if dir == Backward {
		p, f.pendingBack = f.pendingBack, nil
	} else {
		p, f.pendingFwd = f.pendingFwd, nil
	}
	return p
}

// Pending returns the in-flight pagination promise for the given
// direction without clearing it.
func (f *Fragment) Pending(dir Direction) *pagePromise {
	if dir == Backward {
		return f.pendingBack
	}
	return f.pendingFwd
}

// SetPending registers p as the in-flight pagination for the given
// direction.
func (f *Fragment) SetPending(dir Direction, p *pagePromise) {
	if dir == Backward {
		f.pendingBack = p
	} else {
		f.pendingFwd = p
	}
}

// LinkNeighbours sets a.forwardNeighbour = b and b.backwardNeighbour =
// a, keeping the symmetric invariant spec.md §3 requires.
func LinkNeighbours(a, b *Fragment) {
	a.forwardNeighbour = b
	b.backwardNeighbour = a
}

// Append adds events to the given end of the fragment. Events whose
// id is already present anywhere in this fragment are dropped
// (de-duplication, spec.md §4.5) and not included in the returned
// slice of newly stored events. Appending at the Backward end (prepending) grows
// baseIndex so outstanding cursor offsets into this fragment remain
// numerically valid; appending at the Forward end never changes
// baseIndex.
func (f *Fragment) Append(dir Direction, events []Event) []Event {
	if f.ids == nil {
		f.ids = make(map[string]struct{})
	}
	fresh := make([]Event, 0, len(events))
	for _, e := range events {
		if _, seen := f.ids[e.ID]; seen {
			continue
		}
		f.ids[e.ID] = struct{}{}
		fresh = append(fresh, e)
	}
	if len(fresh) == 0 {
		return nil
	}
	if dir == Backward {
		// fresh arrives oldest-to-newest from the pager in the order
		// it should appear before the fragment's current head, so we
		// prepend it whole and shift the base by its length.
		f.events = append(append([]Event{}, fresh...), f.events...)
		f.baseIndex += len(fresh)
	} else {
		f.events = append(f.events, fresh...)
	}
	return fresh
}

// sliceIndexOf returns the position of id within f.events, if present.
func (f *Fragment) sliceIndexOf(id string) (int, bool) {
	for i, e := range f.events {
		if e.ID == id {
			return i, true
		}
	}
	return 0, false
}
