// Package progress produces progress ticks for long-running work such as
// material uploads and assessment generation. Real work uses TweenSource;
// tests use StepSource for a deterministic, synchronous stream.
package progress

import (
	"context"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Tick is one progress report.
type Tick struct {
	Percent float64 `json:"percent"`
	Done    bool    `json:"done"`
}

// Source delivers ticks to fn until the work completes or ctx ends.
// Run returns ctx.Err() when cancelled before completion.
type Source interface {
	Run(ctx context.Context, fn func(Tick)) error
}

// Func adapts a function to Source.
type Func func(ctx context.Context, fn func(Tick)) error

// Run calls f.
func (f Func) Run(ctx context.Context, fn func(Tick)) error { return f(ctx, fn) }

// TweenSource eases progress from 0 to 100 over Duration, reporting every
// Interval.
type TweenSource struct {
	Duration time.Duration
	Interval time.Duration
	Ease     ease.TweenFunc
}

const defaultInterval = 100 * time.Millisecond

// NewTweenSource returns a linear source reporting every 100ms.
func NewTweenSource(d time.Duration) *TweenSource {
	return &TweenSource{Duration: d, Interval: defaultInterval, Ease: ease.Linear}
}

// Run implements Source.
func (s *TweenSource) Run(ctx context.Context, fn func(Tick)) error {
	if s.Duration <= 0 {
		fn(Tick{Percent: 100, Done: true})
		return nil
	}
	interval := s.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	easeFn := s.Ease
	if easeFn == nil {
		easeFn = ease.Linear
	}

	tw := gween.New(0, 100, float32(s.Duration.Seconds()), easeFn)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			current, finished := tw.Update(float32(dt.Seconds()))
			if finished {
				fn(Tick{Percent: 100, Done: true})
				return nil
			}
			fn(Tick{Percent: float64(current)})
		}
	}
}

// StepSource emits a fixed list of percentages synchronously, then a final
// done tick at 100.
type StepSource struct {
	Steps []float64
}

// NewStepSource returns a StepSource over steps.
func NewStepSource(steps ...float64) *StepSource {
	return &StepSource{Steps: steps}
}

// Run implements Source.
func (s *StepSource) Run(ctx context.Context, fn func(Tick)) error {
	for _, p := range s.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if p >= 100 {
			break
		}
		fn(Tick{Percent: p})
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	fn(Tick{Percent: 100, Done: true})
	return nil
}
