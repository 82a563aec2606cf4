package timeline

import (
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/acmload/clustertime/internal/extract"
	"github.com/acmload/clustertime/internal/milestone"
)

// Step is one milestone of a built Timeline.
type Step struct {
	Name milestone.Name
	// Nil if the milestone was not found in its source.
	Instant *time.Time
	// Elapsed since the previous milestone, rounded to whole seconds. Zero for
	// the first step and whenever this or the previous instant is absent.
	Duration time.Duration
	// Sum of Duration of this and all preceding steps.
	Total time.Duration
}

func (s Step) Found() bool {
	return s.Instant != nil
}

// Timeline is built once and never modified afterwards.
type Timeline struct {
	steps []Step
}

// Build merges extractor outputs into one Timeline following the registry
// order. Instants are never re-sorted: an instant earlier than its predecessor
// produces a negative step.
func Build(outputs map[milestone.Source]extract.Instants) (*Timeline, error) {
	merged := map[milestone.Name]time.Time{}

	for source, instants := range outputs {
		for name, instant := range instants {
			owner, found := milestone.Owner(name)
			if !found {
				return nil, fmt.Errorf("source %q produced unknown milestone %q", source, name)
			}

			if owner != source {
				return nil, fmt.Errorf("source %q produced milestone %q owned by source %q", source, name, owner)
			}

			merged[name] = instant.UTC()
		}
	}

	steps := lo.Reduce(milestone.Order(), func(steps []Step, name milestone.Name, i int) []Step {
		step := Step{Name: name}

		if instant, found := merged[name]; found {
			step.Instant = &instant
		}

		if i == 0 {
			return append(steps, step)
		}

		prev := steps[i-1]
		step.Total = prev.Total

		if step.Instant != nil && prev.Instant != nil {
			step.Duration = roundSeconds(step.Instant.Sub(*prev.Instant))
			step.Total += step.Duration
		}

		return append(steps, step)
	}, make([]Step, 0, len(milestone.Order())))

	return &Timeline{steps: steps}, nil
}

// Steps returns a copy of the steps in registry order.
func (t *Timeline) Steps() []Step {
	return lo.Map(t.steps, func(s Step, _ int) Step {
		if s.Instant != nil {
			instant := *s.Instant
			s.Instant = &instant
		}

		return s
	})
}

func (t *Timeline) Step(name milestone.Name) (Step, bool) {
	return lo.Find(t.Steps(), func(s Step) bool {
		return s.Name == name
	})
}

func (t *Timeline) Instant(name milestone.Name) (time.Time, bool) {
	step, found := t.Step(name)
	if !found || step.Instant == nil {
		return time.Time{}, false
	}

	return *step.Instant, true
}

// Total is the running total of the last step.
func (t *Timeline) Total() time.Duration {
	if len(t.steps) == 0 {
		return 0
	}

	return t.steps[len(t.steps)-1].Total
}

// Missing lists milestones with no instant, in registry order.
func (t *Timeline) Missing() []milestone.Name {
	return lo.FilterMap(t.steps, func(s Step, _ int) (milestone.Name, bool) {
		return s.Name, s.Instant == nil
	})
}

// OutOfOrder lists milestones observed before their predecessor, which shows
// up as a negative step.
func (t *Timeline) OutOfOrder() []milestone.Name {
	return lo.FilterMap(t.steps, func(s Step, _ int) (milestone.Name, bool) {
		return s.Name, s.Duration < 0
	})
}

// Halfway values are rounded away from zero.
func roundSeconds(d time.Duration) time.Duration {
	return d.Round(time.Second)
}
