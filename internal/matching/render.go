package matching

import "iter"

// LineStyle distinguishes settled connections from the live drag line.
type LineStyle string

const (
	LineSolid  LineStyle = "solid"
	LineDashed LineStyle = "dashed"
)

// Segment is one line for a 2D vector surface.
type Segment struct {
	From          Point     `json:"from"`
	To            Point     `json:"to"`
	Style         LineStyle `json:"style"`
	SourceID      string    `json:"source_id"`
	DestinationID string    `json:"destination_id,omitempty"`
}

// Render computes every line to draw: a solid segment between the anchors
// of each connection, then a dashed segment from the dragged source to the
// live pointer. Items without a recorded box are skipped.
func Render(conns iter.Seq[Connection], layout *Layout, live *DragSession) []Segment {
	var out []Segment
	for c := range conns {
		from, ok := layout.Anchor(c.SourceID)
		if !ok {
			continue
		}
		to, ok := layout.Anchor(c.DestinationID)
		if !ok {
			continue
		}
		out = append(out, Segment{
			From:          from,
			To:            to,
			Style:         LineSolid,
			SourceID:      c.SourceID,
			DestinationID: c.DestinationID,
		})
	}
	if live != nil {
		if from, ok := layout.Anchor(live.SourceID); ok {
			out = append(out, Segment{
				From:     from,
				To:       live.Current,
				Style:    LineDashed,
				SourceID: live.SourceID,
			})
		}
	}
	return out
}
