package matching

import "fmt"

// Side identifies which column an item belongs to.
type Side int

const (
	SideNone Side = iota
	SideSource
	SideDestination
)

func (s Side) String() string {
	switch s {
	case SideSource:
		return "source"
	case SideDestination:
		return "destination"
	default:
		return "none"
	}
}

// Item is one entry of a match-the-following column.
type Item struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// AnswerKey maps each source item to its single correct destination.
type AnswerKey map[string]string

// Question is the immutable input of a controller: two disjoint ordered
// item sequences plus the answer key.
type Question struct {
	Sources      []Item    `json:"sources"`
	Destinations []Item    `json:"destinations"`
	Key          AnswerKey `json:"key"`
}

// Validate checks that item ids are unique across both columns, that the
// answer key only references known items and that every source is keyed.
func (q Question) Validate() error {
	seen := make(map[string]Side, len(q.Sources)+len(q.Destinations))
	for _, it := range q.Sources {
		if it.ID == "" {
			return fmt.Errorf("%w: source item with empty id", ErrInvalidQuestion)
		}
		if _, dup := seen[it.ID]; dup {
			return fmt.Errorf("%w: duplicate item id %q", ErrInvalidQuestion, it.ID)
		}
		seen[it.ID] = SideSource
	}
	for _, it := range q.Destinations {
		if it.ID == "" {
			return fmt.Errorf("%w: destination item with empty id", ErrInvalidQuestion)
		}
		if _, dup := seen[it.ID]; dup {
			return fmt.Errorf("%w: duplicate item id %q", ErrInvalidQuestion, it.ID)
		}
		seen[it.ID] = SideDestination
	}
	for src, dst := range q.Key {
		if seen[src] != SideSource {
			return fmt.Errorf("%w: answer key references unknown source %q", ErrInvalidQuestion, src)
		}
		if seen[dst] != SideDestination {
			return fmt.Errorf("%w: answer key references unknown destination %q", ErrInvalidQuestion, dst)
		}
	}
	for _, it := range q.Sources {
		if _, ok := q.Key[it.ID]; !ok {
			return fmt.Errorf("%w: source %q has no answer", ErrInvalidQuestion, it.ID)
		}
	}
	return nil
}

// sideIndex builds the id -> side lookup used by the controller.
func (q Question) sideIndex() map[string]Side {
	idx := make(map[string]Side, len(q.Sources)+len(q.Destinations))
	for _, it := range q.Sources {
		idx[it.ID] = SideSource
	}
	for _, it := range q.Destinations {
		idx[it.ID] = SideDestination
	}
	return idx
}
