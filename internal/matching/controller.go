package matching

// GestureState is the per-gesture state of a controller.
type GestureState string

const (
	StateIdle      GestureState = "idle"
	StateDragging  GestureState = "dragging"
	StateConnected GestureState = "connected"
)

// Options configures a Controller.
type Options struct {
	// EnforceDestinationUniqueness lets a destination hold a single source.
	EnforceDestinationUniqueness bool
	// Redrawer is invalidated whenever Lines may have changed. Optional.
	Redrawer Redrawer
}

// Controller drives one match-the-following question: it turns pointer
// events and layout callbacks into connections, lines and a score.
// It is not safe for concurrent use.
type Controller struct {
	question Question
	sides    map[string]Side
	layout   *Layout
	drag     DragTracker
	conns    *ConnectionSet
	redraw   Redrawer
	state    GestureState
}

// NewController validates q and returns an idle controller for it.
func NewController(q Question, opts Options) (*Controller, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	rd := opts.Redrawer
	if rd == nil {
		rd = noopRedrawer{}
	}
	return &Controller{
		question: q,
		sides:    q.sideIndex(),
		layout:   NewLayout(q.Destinations),
		conns:    NewConnectionSet(opts.EnforceDestinationUniqueness),
		redraw:   rd,
		state:    StateIdle,
	}, nil
}

// Question returns the question the controller was built for.
func (c *Controller) Question() Question { return c.question }

// SetItemBounds is the layout callback. Unknown ids are ignored and it
// reports whether the box was recorded.
func (c *Controller) SetItemBounds(id string, r Rect) bool {
	if c.sides[id] == SideNone {
		return false
	}
	c.layout.Set(id, r)
	c.redraw.Invalidate()
	return true
}

// PointerDown starts a drag when id is a source item and no drag is active.
func (c *Controller) PointerDown(id string, p Point) bool {
	if c.sides[id] != SideSource {
		return false
	}
	if !c.drag.Begin(id, p) {
		return false
	}
	c.state = StateDragging
	c.redraw.Invalidate()
	return true
}

// PointerMove updates the live drag line. Constant time, no layout work.
func (c *Controller) PointerMove(p Point) bool {
	if !c.drag.Update(p) {
		return false
	}
	c.redraw.Invalidate()
	return true
}

// PointerUp ends the drag at p. When p lies over a destination the
// connection is upserted and returned; otherwise the gesture is discarded.
func (c *Controller) PointerUp(p Point) (Connection, bool) {
	if !c.drag.Update(p) {
		return Connection{}, false
	}
	s, _ := c.drag.End()
	defer c.redraw.Invalidate()

	dst, ok := c.layout.HitTest(s.Current)
	if !ok {
		c.state = StateIdle
		return Connection{}, false
	}
	c.conns.Upsert(s.SourceID, dst)
	c.state = StateConnected
	return Connection{SourceID: s.SourceID, DestinationID: dst}, true
}

// PointerCancel discards the active drag, if any.
func (c *Controller) PointerCancel() bool {
	if _, ok := c.drag.End(); !ok {
		return false
	}
	c.state = StateIdle
	c.redraw.Invalidate()
	return true
}

// Clear removes every connection of the question.
func (c *Controller) Clear() {
	c.conns.Clear()
	c.redraw.Invalidate()
}

// Connections exposes the connection set for read access.
func (c *Controller) Connections() *ConnectionSet { return c.conns }

// Drag returns the live drag session, if any.
func (c *Controller) Drag() (DragSession, bool) { return c.drag.Session() }

// State returns the current gesture state.
func (c *Controller) State() GestureState { return c.state }

// Layout exposes the recorded item boxes.
func (c *Controller) Layout() *Layout { return c.layout }

// Lines renders the current connections and live drag.
func (c *Controller) Lines() []Segment {
	var live *DragSession
	if s, ok := c.drag.Session(); ok {
		live = &s
	}
	return Render(c.conns.All(), c.layout, live)
}

// Check grades the current connections. It returns ErrNoConnections when
// nothing is connected so the host can prompt for a match first.
func (c *Controller) Check() (Score, error) {
	if c.conns.Len() == 0 {
		return Score{}, ErrNoConnections
	}
	return Validate(c.conns.All(), c.question.Sources, c.question.Key), nil
}

// Restore replays previously saved connections, skipping pairs that do not
// reference a source and a destination of this question.
func (c *Controller) Restore(conns []Connection) int {
	n := 0
	for _, conn := range conns {
		if c.sides[conn.SourceID] != SideSource || c.sides[conn.DestinationID] != SideDestination {
			continue
		}
		if c.conns.Upsert(conn.SourceID, conn.DestinationID) {
			n++
		}
	}
	if n > 0 {
		c.redraw.Invalidate()
	}
	return n
}
