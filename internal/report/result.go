package report

import (
	"time"

	"github.com/samber/lo"

	"github.com/acmload/clustertime/internal/timeline"
)

const ResultApiVersionV1 = "v1"

const timestampLayout = "2006-01-02T15:04:05Z"

type ResultV1 struct {
	ApiVersion string         `json:"apiVersion"`
	Cluster    string         `json:"cluster"`
	Steps      []*ResultStep  `json:"steps"`
	Phases     []*ResultPhase `json:"phases,omitempty"`
}

type ResultStep struct {
	Name            string     `json:"name"`
	Timestamp       *time.Time `json:"timestamp"`
	DurationSeconds int64      `json:"durationSeconds"`
	TotalSeconds    int64      `json:"totalSeconds"`
}

type ResultPhase struct {
	Name            string `json:"name"`
	Label           string `json:"label"`
	Start           string `json:"start"`
	End             string `json:"end"`
	DurationSeconds int64  `json:"durationSeconds"`
	Human           string `json:"human"`
}

// NewResult converts a timeline and its phase totals into the printable
// result. totals is nil when phases could not be computed.
func NewResult(cluster string, tl *timeline.Timeline, totals *timeline.PhaseTotals) *ResultV1 {
	result := &ResultV1{
		ApiVersion: ResultApiVersionV1,
		Cluster:    cluster,
		Steps: lo.Map(tl.Steps(), func(step timeline.Step, _ int) *ResultStep {
			return &ResultStep{
				Name:            string(step.Name),
				Timestamp:       step.Instant,
				DurationSeconds: seconds(step.Duration),
				TotalSeconds:    seconds(step.Total),
			}
		}),
	}

	if totals != nil {
		result.Phases = lo.Map(totals.List(), func(total timeline.PhaseTotal, _ int) *ResultPhase {
			return &ResultPhase{
				Name:            string(total.Name),
				Label:           total.Label,
				Start:           string(total.Start),
				End:             string(total.End),
				DurationSeconds: seconds(total.Duration),
				Human:           FormatClock(total.Duration),
			}
		})
	}

	return result
}

func seconds(d time.Duration) int64 {
	return int64(d / time.Second)
}

func formatTimestamp(ts *time.Time) string {
	if ts == nil {
		return "-"
	}

	return ts.UTC().Format(timestampLayout)
}
