package matching

// DragSession is the state of one in-progress pointer gesture.
type DragSession struct {
	SourceID string `json:"source_id"`
	Current  Point  `json:"current"`
}

// DragTracker holds at most one DragSession. The zero value is idle and
// ready to use.
type DragTracker struct {
	session DragSession
	active  bool
}

// Begin starts tracking a drag of sourceID. It is a no-op returning false
// when a session is already active.
func (t *DragTracker) Begin(sourceID string, p Point) bool {
	if t.active {
		return false
	}
	t.session = DragSession{SourceID: sourceID, Current: p}
	t.active = true
	return true
}

// Update overwrites the live coordinate. It is a no-op returning false when
// no session is active.
func (t *DragTracker) Update(p Point) bool {
	if !t.active {
		return false
	}
	t.session.Current = p
	return true
}

// End returns the final session and clears it. ok is false when no session
// was active.
func (t *DragTracker) End() (s DragSession, ok bool) {
	if !t.active {
		return DragSession{}, false
	}
	s = t.session
	t.session = DragSession{}
	t.active = false
	return s, true
}

// Active reports whether a gesture is in progress.
func (t *DragTracker) Active() bool { return t.active }

// Session returns the live session, if any.
func (t *DragTracker) Session() (DragSession, bool) {
	return t.session, t.active
}
