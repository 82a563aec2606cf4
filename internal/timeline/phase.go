package timeline

import (
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/acmload/clustertime/internal/milestone"
)

// MissingMilestoneError is returned when a phase endpoint has no instant.
type MissingMilestoneError struct {
	Phase     milestone.PhaseName
	Milestone milestone.Name
}

func (e *MissingMilestoneError) Error() string {
	return fmt.Sprintf("phase %q: milestone %q was not found", e.Phase, e.Milestone)
}

type PhaseTotal struct {
	milestone.Phase

	Duration time.Duration
}

type PhaseTotals struct {
	totals []PhaseTotal
}

func (p *PhaseTotals) List() []PhaseTotal {
	return lo.Map(p.totals, func(t PhaseTotal, _ int) PhaseTotal {
		return t
	})
}

func (p *PhaseTotals) Get(name milestone.PhaseName) (time.Duration, bool) {
	total, found := lo.Find(p.totals, func(t PhaseTotal) bool {
		return t.Name == name
	})

	return total.Duration, found
}

// Aggregate computes the duration of each phase as the difference between its
// end and start instants, rounded the same way as step durations. Unlike steps,
// a phase with an absent endpoint is an error.
func Aggregate(tl *Timeline, phases []milestone.Phase) (*PhaseTotals, error) {
	totals := &PhaseTotals{}

	for _, phase := range phases {
		start, found := tl.Instant(phase.Start)
		if !found {
			return nil, &MissingMilestoneError{Phase: phase.Name, Milestone: phase.Start}
		}

		end, found := tl.Instant(phase.End)
		if !found {
			return nil, &MissingMilestoneError{Phase: phase.Name, Milestone: phase.End}
		}

		totals.totals = append(totals.totals, PhaseTotal{
			Phase:    phase,
			Duration: roundSeconds(end.Sub(start)),
		})
	}

	return totals, nil
}
