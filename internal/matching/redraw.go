package matching

// Redrawer is notified whenever the rendered lines may have changed.
// Implementations must return immediately.
type Redrawer interface {
	Invalidate()
}

// RedrawFunc adapts a plain function to Redrawer.
type RedrawFunc func()

// Invalidate calls f.
func (f RedrawFunc) Invalidate() { f() }

type noopRedrawer struct{}

func (noopRedrawer) Invalidate() {}

// RedrawSignal coalesces invalidations into a single pending notification.
// A render loop selects on C and then reads the controller's current state,
// so stale frames are dropped instead of queued.
type RedrawSignal struct {
	ch chan struct{}
}

// NewRedrawSignal returns a signal with room for one pending notification.
func NewRedrawSignal() *RedrawSignal {
	return &RedrawSignal{ch: make(chan struct{}, 1)}
}

// Invalidate marks a redraw as pending without blocking.
func (s *RedrawSignal) Invalidate() {
	select {
	case s.ch <- struct{}{}:
	default:
	}
}

// C delivers one value per pending redraw.
func (s *RedrawSignal) C() <-chan struct{} { return s.ch }

// Pending consumes a pending notification, reporting whether there was one.
func (s *RedrawSignal) Pending() bool {
	select {
	case <-s.ch:
		return true
	default:
		return false
	}
}
