package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// languageQuestion lays sources out in a left column (x 0..100) and
// destinations in a right column (x 300..400), 60px apart.
func languageQuestion() Question {
	return Question{
		Sources: []Item{
			{ID: "python", Label: "Python"},
			{ID: "sql", Label: "SQL"},
			{ID: "html", Label: "HTML"},
		},
		Destinations: []Item{
			{ID: "general", Label: "General Programming"},
			{ID: "databases", Label: "Databases"},
			{ID: "markup", Label: "Markup"},
		},
		Key: AnswerKey{"python": "general", "sql": "databases", "html": "markup"},
	}
}

func newLaidOutController(t *testing.T, unique bool, rd Redrawer) *Controller {
	t.Helper()
	q := languageQuestion()
	c, err := NewController(q, Options{EnforceDestinationUniqueness: unique, Redrawer: rd})
	require.NoError(t, err)
	for i, it := range q.Sources {
		c.SetItemBounds(it.ID, Rect{X: 0, Y: float64(i * 60), Width: 100, Height: 40})
	}
	for i, it := range q.Destinations {
		c.SetItemBounds(it.ID, Rect{X: 300, Y: float64(i * 60), Width: 100, Height: 40})
	}
	return c
}

func drag(c *Controller, source string, to Point) (Connection, bool) {
	c.PointerDown(source, Point{X: 50, Y: 20})
	c.PointerMove(Point{X: 200, Y: to.Y})
	return c.PointerUp(to)
}

func TestControllerDropOnDestination(t *testing.T) {
	c := newLaidOutController(t, true, nil)

	conn, ok := drag(c, "python", Point{X: 350, Y: 20})
	require.True(t, ok)
	assert.Equal(t, Connection{SourceID: "python", DestinationID: "general"}, conn)
	assert.Equal(t, []Connection{{SourceID: "python", DestinationID: "general"}}, c.Connections().List())
	assert.Equal(t, StateConnected, c.State())

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, LineSolid, lines[0].Style)
	assert.Equal(t, Point{X: 50, Y: 20}, lines[0].From)
	assert.Equal(t, Point{X: 350, Y: 20}, lines[0].To)
}

func TestControllerDestinationUniqueness(t *testing.T) {
	c := newLaidOutController(t, true, nil)
	drag(c, "python", Point{X: 350, Y: 20})
	drag(c, "sql", Point{X: 350, Y: 20})

	assert.Equal(t, []Connection{{SourceID: "sql", DestinationID: "general"}}, c.Connections().List())
}

func TestControllerSharedDestinationWithoutUniqueness(t *testing.T) {
	c := newLaidOutController(t, false, nil)
	drag(c, "python", Point{X: 350, Y: 20})
	drag(c, "sql", Point{X: 350, Y: 20})

	assert.Equal(t, 2, c.Connections().Len())
}

func TestControllerReleaseOverEmptySpace(t *testing.T) {
	c := newLaidOutController(t, true, nil)
	drag(c, "python", Point{X: 350, Y: 20})
	before := c.Connections().List()

	_, ok := drag(c, "sql", Point{X: 200, Y: 500})
	assert.False(t, ok)
	assert.Equal(t, before, c.Connections().List())
	assert.Equal(t, StateIdle, c.State())
}

func TestControllerReleaseOverSameSide(t *testing.T) {
	c := newLaidOutController(t, true, nil)

	_, ok := drag(c, "python", Point{X: 50, Y: 80})
	assert.False(t, ok)
	assert.Zero(t, c.Connections().Len())
}

func TestControllerPointerDownOnDestinationIgnored(t *testing.T) {
	c := newLaidOutController(t, true, nil)
	assert.False(t, c.PointerDown("general", Point{}))
	assert.False(t, c.PointerDown("unknown", Point{}))
	assert.Equal(t, StateIdle, c.State())
}

func TestControllerSecondPointerDownIsNoop(t *testing.T) {
	c := newLaidOutController(t, true, nil)
	require.True(t, c.PointerDown("python", Point{X: 10, Y: 10}))
	assert.False(t, c.PointerDown("sql", Point{X: 10, Y: 70}))

	s, ok := c.Drag()
	require.True(t, ok)
	assert.Equal(t, "python", s.SourceID)
}

func TestControllerPointerCancel(t *testing.T) {
	c := newLaidOutController(t, true, nil)
	c.PointerDown("python", Point{X: 10, Y: 10})
	c.PointerMove(Point{X: 350, Y: 20})

	assert.True(t, c.PointerCancel())
	assert.Zero(t, c.Connections().Len())
	assert.False(t, c.PointerCancel())

	_, ok := c.PointerUp(Point{X: 350, Y: 20})
	assert.False(t, ok)
}

func TestControllerDropBeforeLayout(t *testing.T) {
	c, err := NewController(languageQuestion(), Options{EnforceDestinationUniqueness: true})
	require.NoError(t, err)

	require.True(t, c.PointerDown("python", Point{}))
	_, ok := c.PointerUp(Point{X: 350, Y: 20})
	assert.False(t, ok)
	assert.Empty(t, c.Lines())
}

func TestControllerLiveLine(t *testing.T) {
	c := newLaidOutController(t, true, nil)
	drag(c, "python", Point{X: 350, Y: 20})

	c.PointerDown("sql", Point{X: 50, Y: 80})
	c.PointerMove(Point{X: 210, Y: 95})

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, LineSolid, lines[0].Style)
	assert.Equal(t, Segment{From: Point{X: 50, Y: 80}, To: Point{X: 210, Y: 95}, Style: LineDashed, SourceID: "sql"}, lines[1])
}

func TestControllerClearAndCheck(t *testing.T) {
	c := newLaidOutController(t, true, nil)
	drag(c, "python", Point{X: 350, Y: 20})
	drag(c, "sql", Point{X: 350, Y: 80})
	drag(c, "html", Point{X: 350, Y: 80})
	drag(c, "sql", Point{X: 350, Y: 140})
	require.Equal(t, 3, c.Connections().Len())

	score, err := c.Check()
	require.NoError(t, err)
	assert.Equal(t, 1, score.Correct)

	c.Clear()
	assert.Empty(t, c.Connections().List())
	assert.Empty(t, c.Lines())

	_, err = c.Check()
	assert.ErrorIs(t, err, ErrNoConnections)
	assert.Equal(t, 0, Validate(c.Connections().All(), c.Question().Sources, c.Question().Key).Correct)
}

func TestControllerRedrawCoalesces(t *testing.T) {
	sig := NewRedrawSignal()
	c := newLaidOutController(t, true, sig)
	sig.Pending()

	c.PointerDown("python", Point{})
	for i := 0; i < 100; i++ {
		c.PointerMove(Point{X: float64(i)})
	}
	assert.True(t, sig.Pending())
	assert.False(t, sig.Pending())

	s, _ := c.Drag()
	assert.Equal(t, Point{X: 99}, s.Current)
}

func TestControllerRedrawFunc(t *testing.T) {
	calls := 0
	c := newLaidOutController(t, true, RedrawFunc(func() { calls++ }))
	calls = 0

	c.PointerMove(Point{})
	assert.Zero(t, calls)

	drag(c, "python", Point{X: 350, Y: 20})
	assert.Equal(t, 3, calls)
}

func TestControllerRestore(t *testing.T) {
	c := newLaidOutController(t, true, nil)
	n := c.Restore([]Connection{
		{SourceID: "python", DestinationID: "general"},
		{SourceID: "general", DestinationID: "python"},
		{SourceID: "sql", DestinationID: "nowhere"},
	})
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, c.Connections().Len())
}

func TestNewControllerRejectsInvalidQuestion(t *testing.T) {
	q := languageQuestion()
	q.Destinations = append(q.Destinations, Item{ID: "python"})

	_, err := NewController(q, Options{})
	assert.ErrorIs(t, err, ErrInvalidQuestion)

	q = languageQuestion()
	q.Key["ghost"] = "general"
	_, err = NewController(q, Options{})
	assert.ErrorIs(t, err, ErrInvalidQuestion)

	q = languageQuestion()
	delete(q.Key, "sql")
	_, err = NewController(q, Options{})
	assert.ErrorIs(t, err, ErrInvalidQuestion)
	assert.ErrorContains(t, err, `source "sql" has no answer`)
}

func TestControllerCheckCountsEverySource(t *testing.T) {
	c := newLaidOutController(t, true, nil)
	c.Connections().Upsert("python", "general")
	c.Connections().Upsert("sql", "markup")

	score, err := c.Check()
	require.NoError(t, err)
	assert.Equal(t, 3, score.Total)
	assert.Equal(t, 1, score.Correct)
	assert.False(t, score.Passed)
	assert.Equal(t, map[string]bool{"python": true, "sql": false, "html": false}, score.Results)
}
