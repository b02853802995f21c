package kintai

import (
	"sort"
	"time"
)

// Session is a per-day view of one record. Minutes is nil while the session
// is open; its live elapsed value still counts toward the day's total.
type Session struct {
	Record
	Number  int
	Minutes *int
}

type DailyReport struct {
	Date         Date
	Sessions     []Session // clock-in ascending; render newest-first
	TotalMinutes int
}

// BuildDailyReport groups records onto one JST calendar day. A closed
// record belongs to the day only when both endpoints fall on it; the open
// record belongs to the day being viewed no matter when it started, so an
// overnight session keeps showing up in today's live view. Pure function of
// its inputs.
func BuildDailyReport(records []Record, day Date, now time.Time) DailyReport {
	picked := make(map[string]Record)
	for _, r := range records {
		if r.Open() {
			picked[r.ID] = r
			continue
		}
		if LocalDateKey(r.ClockIn) == day && LocalDateKey(*r.ClockOut) == day {
			picked[r.ID] = r
		}
	}

	sessions := make([]Session, 0, len(picked))
	for _, r := range picked {
		sessions = append(sessions, Session{Record: r, Minutes: r.Minutes()})
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].ClockIn.Before(sessions[j].ClockIn)
	})

	total := 0
	for i := range sessions {
		sessions[i].Number = i + 1
		total += sessions[i].LiveMinutes(now)
	}
	return DailyReport{Date: day, Sessions: sessions, TotalMinutes: total}
}
