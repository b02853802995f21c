package kintai

import (
	"fmt"
	"time"
)

// DurationMinutes rounds to the nearest minute, half up. Flooring here
// makes the final stored figure visibly disagree with the live ticking
// display around sub-minute boundaries.
func DurationMinutes(start, end time.Time) int {
	return int(end.Sub(start).Round(time.Minute) / time.Minute)
}

const emptyDurationStr = "--:--"

// FormatMinutes renders minutes as zero-padded HH:MM. The hour field is not
// wrapped at 24. A nil value (open session) renders as the placeholder.
func FormatMinutes(minutes *int) string {
	if minutes == nil {
		return emptyDurationStr
	}
	return fmt.Sprintf("%02d:%02d", *minutes/60, *minutes%60)
}
