package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderSkipsItemsWithoutLayout(t *testing.T) {
	l := NewLayout([]Item{{ID: "1"}, {ID: "2"}})
	l.Set("a", Rect{Width: 10, Height: 10})
	l.Set("1", Rect{X: 100, Width: 10, Height: 10})

	s := NewConnectionSet(false)
	s.Upsert("a", "1")
	s.Upsert("b", "2")

	got := Render(s.All(), l, &DragSession{SourceID: "b", Current: Point{X: 1, Y: 1}})
	assert.Equal(t, []Segment{{
		From:          Point{X: 5, Y: 5},
		To:            Point{X: 105, Y: 5},
		Style:         LineSolid,
		SourceID:      "a",
		DestinationID: "1",
	}}, got)
}
