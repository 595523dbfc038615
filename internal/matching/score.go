package matching

import (
	"fmt"
	"iter"
)

// Score is the outcome of checking a connection set against an answer key.
type Score struct {
	Results map[string]bool `json:"results"`
	Correct int             `json:"correct"`
	Total   int             `json:"total"`
	Passed  bool            `json:"passed"`
}

// Validate grades conns against key, one result per source item. A source
// missing from conns or from key counts as incorrect. conns is only read.
func Validate(conns iter.Seq[Connection], sources []Item, key AnswerKey) Score {
	got := make(map[string]string, len(sources))
	for c := range conns {
		got[c.SourceID] = c.DestinationID
	}

	score := Score{
		Results: make(map[string]bool, len(sources)),
		Total:   len(sources),
	}
	for _, src := range sources {
		want, keyed := key[src.ID]
		dst, connected := got[src.ID]
		ok := keyed && connected && dst == want
		score.Results[src.ID] = ok
		if ok {
			score.Correct++
		}
	}
	score.Passed = score.Total > 0 && score.Correct == score.Total
	return score
}

// Summary renders the pass/fail line shown after a check.
func (s Score) Summary() string {
	if s.Passed {
		return fmt.Sprintf("All correct: %d of %d matched", s.Correct, s.Total)
	}
	return fmt.Sprintf("Not quite: %d of %d matched correctly", s.Correct, s.Total)
}
