package timeline

import "context"

// Window owns a pair of cursors start (inclusive) and end (exclusive)
// delimiting the half-open range of events currently materialised
// across one or more contiguous fragments, with a hard cap on
// retained events and drop-from-the-other-end semantics. See spec.md
// §4.3.
type Window struct {
	cfg       Config
	fragments *FragmentSet
	pager     Pager

	start, end Index
	eventCount int
	loaded     bool
}

// NewWindow returns a Window over fragments, fetching further history
// through pager as needed. It must not be used before Load completes.
func NewWindow(fragments *FragmentSet, pager Pager, opts ...Option) *Window {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Window{cfg: cfg, fragments: fragments, pager: pager}
}

// EventCount returns the number of events currently materialised in
// [start, end).
func (w *Window) EventCount() int { return w.eventCount }

// Loaded reports whether Load has completed successfully.
func (w *Window) Loaded() bool { return w.loaded }

// Load initialises the window, either centred on eventID (if given)
// or anchored to the live fragment's forward end. initialSize <= 0
// falls back to the configured default. If eventID names an event
// already held in FragmentSet, initialisation is synchronous — this
// matters for UI responsiveness when switching between already
// visited conversations. Otherwise a context fetch is issued through
// the Pager.
func (w *Window) Load(ctx context.Context, eventID *string, initialSize int) error {
	if initialSize <= 0 {
		initialSize = w.cfg.initialSize
	}

	if eventID == nil {
		w.fragments.Lock()
		live := w.fragments.LiveFragment()
		w.initFromSliceIndex(live, len(live.events), initialSize)
		w.fragments.Unlock()
		w.cfg.logger.Log(LevelDebug, "window loaded at live end", "event_count", w.eventCount)
		return nil
	}

	w.fragments.Lock()
	if f, ok := w.fragments.FragmentForEvent(*eventID); ok {
		idx, found := f.sliceIndexOf(*eventID)
		if !found { // index lost consistency; fall through to remote fetch
			w.fragments.Unlock()
		} else {
			w.initFromSliceIndex(f, idx, initialSize)
			w.fragments.Unlock()
			w.cfg.logger.Log(LevelDebug, "window loaded synchronously", "event_id", *eventID)
			return nil
		}
	} else {
		w.fragments.Unlock()
	}

	res, err := w.pager.Context(ctx, *eventID)
	if err != nil {
		w.cfg.logger.Log(LevelWarn, "context fetch failed", "event_id", *eventID, "err", err)
		return transportFailed(err)
	}

	all := make([]Event, 0, len(res.EventsBefore)+1+len(res.EventsAfter))
	all = append(all, res.EventsBefore...)
	all = append(all, res.Target)
	all = append(all, res.EventsAfter...)

	found := false
	for _, e := range all {
		if e.ID == *eventID {
			found = true
			break
		}
	}
	if !found {
		return &EventNotInContextError{EventID: *eventID}
	}

	w.fragments.Lock()
	f := w.fragments.NewDisjointFragment()
	fresh := f.Append(Forward, all)
	w.fragments.RegisterFragment(f, fresh)
	f.SetToken(Backward, res.StartToken)
	f.SetToken(Forward, res.EndToken)
	idx, _ := f.sliceIndexOf(*eventID)
	w.initFromSliceIndex(f, idx, initialSize)
	w.fragments.Unlock()
	w.cfg.logger.Log(LevelDebug, "window loaded from context fetch", "event_id", *eventID)
	return nil
}

// initFromSliceIndex centres the window on the event at slice index
// eventIndex within f (or, for a live-end load, eventIndex ==
// len(f.events)), per spec.md §4.3.1's formula:
// end_index = min(len, event_index + ceil(size/2))
// start_index = max(0, end_index - size)
func (w *Window) initFromSliceIndex(f *Fragment, eventIndex, size int) {
	n := len(f.events)
	endIdx := eventIndex + (size+1)/2
	if endIdx > n {
		endIdx = n
	}
	startIdx := endIdx - size
	if startIdx < 0 {
		startIdx = 0
	}

	w.start = NewIndex(f, startIdx-f.baseIndex)
	w.end = NewIndex(f, endIdx-f.baseIndex)
	w.eventCount = endIdx - startIdx
	w.loaded = true

	w.cfg.hooks.eachInserted(f.events[startIdx:endIdx], Forward)
}

// Extend attempts to grow the window from the given end using only
// in-memory events already held in the fragment graph. It returns
// whether any events were added. If growing past window_limit, the
// opposite end is trimmed so the window never grows without bound and
// the caller's scroll position at the extended end remains stable.
func (w *Window) Extend(direction Direction, size int) (bool, error) {
	if !w.loaded {
		return false, &NotLoadedError{Op: "extend"}
	}
	if !direction.valid() {
		return false, &InvalidDirectionError{Got: direction}
	}
	w.fragments.Lock()
	defer w.fragments.Unlock()
	return w.extendLocked(direction, size)
}

func (w *Window) extendLocked(direction Direction, size int) (bool, error) {
	if size == 0 {
		return false, nil
	}
	cursor := &w.start
	if direction == Forward {
		cursor = &w.end
	}
	before := *cursor

	var moved int
	if direction == Backward {
		moved = cursor.Retreat(size)
	} else {
		moved = cursor.Advance(size)
	}
	if moved == 0 {
		return false, nil
	}
	w.eventCount += moved

	var inserted []Event
	if direction == Backward {
		inserted = eventsBetween(*cursor, before)
	} else {
		inserted = eventsBetween(before, *cursor)
	}
	w.cfg.hooks.eachInserted(inserted, direction)

	if w.eventCount > w.cfg.windowLimit {
		excess := w.eventCount - w.cfg.windowLimit
		opposite := Forward
		if direction == Forward {
			opposite = Backward
		}
		if err := w.unpaginateLocked(excess, opposite); err != nil {
			return true, err
		}
	}
	return true, nil
}

// CanPaginate reports whether a Paginate call in the given direction
// is worth making: either there is in-fragment room not yet
// materialised, a neighbour fragment exists, or a pagination token is
// present. It does not guarantee more events exist server-side.
func (w *Window) CanPaginate(direction Direction) bool {
	if !w.loaded || !direction.valid() {
		return false
	}
	w.fragments.Lock()
	defer w.fragments.Unlock()

	cursor := w.start
	if direction == Forward {
		cursor = w.end
	}
	f := cursor.fragment
	if direction == Backward {
		if cursor.offset > f.MinOffset() {
			return true
		}
	} else if cursor.offset < f.MaxOffset() {
		return true
	}
	if f.Neighbour(direction) != nil {
		return true
	}
	return f.Token(direction) != nil
}

// Paginate runs the full pagination protocol of spec.md §4.3.4:
// in-memory extension first, then single-flight-coalesced remote
// fetch, integrating results and recursing up to requestLimit times
// to defeat a server anomaly where non-empty tokens return no new
// events. The returned bool is "something was added just now", not
// "this is definitely the end of history".
func (w *Window) Paginate(ctx context.Context, direction Direction, size int, makeRequest bool, requestLimit int) (bool, error) {
	if !direction.valid() {
		return false, &InvalidDirectionError{Got: direction}
	}
	if requestLimit <= 0 {
		requestLimit = w.cfg.requestLimit
	}
	return w.paginate(ctx, direction, size, makeRequest, requestLimit)
}

func (w *Window) paginate(ctx context.Context, direction Direction, size int, makeRequest bool, requestLimit int) (bool, error) {
	w.fragments.Lock()
	if !w.loaded {
		w.fragments.Unlock()
		return false, &NotLoadedError{Op: "paginate"}
	}

	cursor := w.start
	if direction == Forward {
		cursor = w.end
	}
	frag := cursor.fragment

	if pending := frag.Pending(direction); pending != nil {
		w.fragments.Unlock()
		w.cfg.logger.Log(LevelDebug, "paginate coalesced onto in-flight request", "direction", direction)
		return pending.wait(ctx)
	}

	if ok, err := w.extendLocked(direction, size); ok || err != nil {
		w.fragments.Unlock()
		return ok, err
	}

	if !makeRequest || requestLimit == 0 {
		w.fragments.Unlock()
		return false, nil
	}

	token := frag.Token(direction)
	if token == nil {
		w.fragments.Unlock()
		return false, nil
	}

	promise := newPagePromise()
	frag.SetPending(direction, promise)
	w.fragments.Unlock()

	w.cfg.logger.Log(LevelDebug, "issuing messages request", "direction", direction, "size", size, "requests_remaining", requestLimit)
	result, err := w.pager.Messages(ctx, *token, direction, size)

	w.fragments.Lock()
	frag.TakePending(direction)
	w.fragments.Unlock()

	if err != nil {
		w.cfg.logger.Log(LevelWarn, "messages request failed", "direction", direction, "err", err)
		wrapped := transportFailed(err)
		promise.resolve(false, wrapped)
		return false, wrapped
	}

	w.fragments.Lock()
	fresh := frag.Append(direction, result.Events)
	w.fragments.RegisterFragment(frag, fresh)
	frag.SetToken(direction, result.NextToken)
	noMore := len(fresh) == 0 && result.NextToken == nil
	w.fragments.Unlock()

	if noMore {
		promise.resolve(false, nil)
		return false, nil
	}

	ok, err := w.paginate(ctx, direction, size, true, requestLimit-1)
	promise.resolve(ok, err)
	return ok, err
}

// Unpaginate trims delta events from the window, moving the cursor on
// the given end inward. end selects which cursor moves: Backward
// advances start (dropping the oldest materialised events), Forward
// retreats end (dropping the newest). It fails with
// CannotUnpaginateError if the cursor cannot traverse the full delta,
// which indicates accounting corruption rather than end-of-history
// (end-of-history is never reached mid-window: delta never exceeds
// event_count).
func (w *Window) Unpaginate(delta int, end Direction) error {
	if !w.loaded {
		return &NotLoadedError{Op: "unpaginate"}
	}
	if !end.valid() {
		return &InvalidDirectionError{Got: end}
	}
	w.fragments.Lock()
	defer w.fragments.Unlock()
	return w.unpaginateLocked(delta, end)
}

func (w *Window) unpaginateLocked(delta int, end Direction) error {
	if delta == 0 {
		return nil
	}
	if delta < 0 || delta > w.eventCount {
		return &CannotUnpaginateError{Remaining: delta, Direction: end}
	}

	var moved int
	if end == Backward {
		moved = w.start.Advance(delta)
	} else {
		moved = w.end.Retreat(delta)
	}
	if moved != delta {
		return &CannotUnpaginateError{Remaining: delta - moved, Direction: end}
	}
	w.eventCount -= delta
	w.cfg.hooks.trimmed(delta, end)
	return nil
}

// GetEvents returns the sequence of events currently materialised in
// [start, end), walking forward through fragment neighbours. It
// returns an empty sequence if the window is not loaded.
func (w *Window) GetEvents() []Event {
	if !w.loaded {
		return nil
	}
	w.fragments.Lock()
	defer w.fragments.Unlock()
	return eventsBetween(w.start, w.end)
}

// eventsBetween walks from a to b (which must satisfy a.LessEqual(b))
// through forward neighbour links, collecting the logical event range
// [a, b).
func eventsBetween(a, b Index) []Event {
	if a.fragment == nil || b.fragment == nil {
		return nil
	}
	var out []Event
	for f := a.fragment; f != nil; f = f.Neighbour(Forward) {
		lo, hi := 0, len(f.events)
		if f == a.fragment {
			lo = a.offset + f.baseIndex
		}
		last := f == b.fragment
		if last {
			hi = b.offset + f.baseIndex
		}
		if lo < 0 {
			lo = 0
		}
		if hi > len(f.events) {
			hi = len(f.events)
		}
		if lo < hi {
			out = append(out, f.events[lo:hi]...)
		}
		if last {
			break
		}
	}
	return out
}
