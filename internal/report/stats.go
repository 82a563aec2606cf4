package report

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/acmload/clustertime/pkg/log"
)

const statsSeparator = "################################################################################"

// WriteStats writes the plain-text stats report. Lines are echoed to the debug
// log, the terminal gets the Print output instead.
func WriteStats(ctx context.Context, w io.Writer, result *ResultV1) error {
	lines := []string{
		fmt.Sprintf("Install times on %s", result.Cluster),
		fmt.Sprintf("%-25s %-20s %-8s %-5s", "Step", "Timestamp", "Duration", "Total"),
	}

	for _, step := range result.Steps {
		lines = append(lines, fmt.Sprintf("%-25s %-20s %8d %5d", step.Name, formatTimestamp(step.Timestamp), step.DurationSeconds, step.TotalSeconds))
	}

	lines = append(lines, statsSeparator)

	if len(result.Phases) > 0 {
		lines = append(lines, fmt.Sprintf("Major phases of install for %s", result.Cluster))

		for _, phase := range result.Phases {
			lines = append(lines, fmt.Sprintf("%-19s%8d :: %s", phase.Label+":", phase.DurationSeconds, phase.Human))
		}
	}

	for _, line := range lines {
		log.Default.Debug(ctx, "%s", line)
	}

	if _, err := io.WriteString(w, strings.Join(lines, "\n")+"\n"); err != nil {
		return fmt.Errorf("write stats: %w", err)
	}

	return nil
}
