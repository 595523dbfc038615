package matching

// Layout stores item bounding boxes captured once after the host lays the
// items out. Gesture handlers only read from it.
type Layout struct {
	bounds       map[string]Rect
	destinations []string
}

// NewLayout prepares a layout for the given destination display order.
func NewLayout(destinations []Item) *Layout {
	order := make([]string, len(destinations))
	for i, it := range destinations {
		order[i] = it.ID
	}
	return &Layout{
		bounds:       make(map[string]Rect, len(destinations)*2),
		destinations: order,
	}
}

// Set records the bounding box of an item. Later calls overwrite earlier ones.
func (l *Layout) Set(id string, r Rect) {
	l.bounds[id] = r
}

// Bounds returns the recorded box for id.
func (l *Layout) Bounds(id string) (Rect, bool) {
	r, ok := l.bounds[id]
	return r, ok
}

// Anchor returns the line anchor (box midpoint) for id.
func (l *Layout) Anchor(id string) (Point, bool) {
	r, ok := l.bounds[id]
	if !ok {
		return Point{}, false
	}
	return r.Center(), true
}

// HitTest returns the first destination, in display order, whose box
// contains p. Destinations without a recorded box never match.
func (l *Layout) HitTest(p Point) (string, bool) {
	for _, id := range l.destinations {
		r, ok := l.bounds[id]
		if !ok {
			continue
		}
		if r.Contains(p) {
			return id, true
		}
	}
	return "", false
}

// Ready reports whether every destination has a recorded box.
func (l *Layout) Ready() bool {
	for _, id := range l.destinations {
		if _, ok := l.bounds[id]; !ok {
			return false
		}
	}
	return true
}
