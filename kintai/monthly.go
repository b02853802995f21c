package kintai

import "time"

// MonthlyStats is derived on demand and never persisted.
type MonthlyStats struct {
	Month                Month
	TotalMinutes         int
	ContractMinutes      int
	RemainingMinutes     int
	DaysWorked           int
	AverageMinutesPerDay int
}

// BuildMonthlyStats totals a JST calendar month against the contracted
// quota. Closed records contribute when their clock-in day falls in the
// month. The open session contributes its live elapsed minutes, and only to
// the month its clock-in falls in; a session spanning a month boundary is
// never split. Pure function of its inputs.
func BuildMonthlyStats(records []Record, month Month, contractMinutes int, now time.Time) MonthlyStats {
	total := 0
	days := make(map[Date]struct{})

	open, hasOpen := FindOpenSession(records)
	for _, r := range records {
		if r.Open() {
			continue
		}
		day := LocalDateKey(r.ClockIn)
		if day.Month() != month {
			continue
		}
		total += DurationMinutes(r.ClockIn, *r.ClockOut)
		days[day] = struct{}{}
	}
	if hasOpen {
		day := LocalDateKey(open.ClockIn)
		if day.Month() == month {
			total += DurationMinutes(open.ClockIn, now)
			days[day] = struct{}{}
		}
	}

	remaining := contractMinutes - total
	if remaining < 0 {
		remaining = 0
	}
	average := 0
	if len(days) > 0 {
		average = total / len(days)
	}
	return MonthlyStats{
		Month:                month,
		TotalMinutes:         total,
		ContractMinutes:      contractMinutes,
		RemainingMinutes:     remaining,
		DaysWorked:           len(days),
		AverageMinutesPerDay: average,
	}
}
