package countdown

import (
	"fmt"
	"time"
)

const Started = "Event has started!"

// Format renders the time left until target. Once target is reached Started is returned instead.
func Format(target time.Time, now time.Time) string {
	remaining := target.Sub(now)
	if remaining <= 0 {
		return Started
	}

	seconds := int64(remaining / time.Second)
	days := seconds / 86400
	hours := seconds % 86400 / 3600
	minutes := seconds % 3600 / 60
	seconds = seconds % 60
	return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
}
