package report

import (
	"fmt"
	"time"
)

// FormatClock renders a whole-second duration as H:MM:SS. Hours are not
// wrapped into days.
func FormatClock(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}

	total := int64(d.Round(time.Second) / time.Second)

	return fmt.Sprintf("%s%d:%02d:%02d", sign, total/3600, total/60%60, total%60)
}
