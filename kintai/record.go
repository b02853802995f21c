package kintai

import "time"

// Record is one attendance session. ClockOut stays nil while the session is
// open and transitions to a value exactly once; ClockIn and Date never
// change after creation. Date is the JST day of the clock-in, even when the
// session runs past midnight.
type Record struct {
	ID       string     `json:"id"`
	ClockIn  time.Time  `json:"clockIn"`
	ClockOut *time.Time `json:"clockOut"`
	Date     Date       `json:"date"`
}

func (r Record) Open() bool {
	return r.ClockOut == nil
}

// Minutes returns the session length, or nil while the session is open.
func (r Record) Minutes() *int {
	if r.ClockOut == nil {
		return nil
	}
	m := DurationMinutes(r.ClockIn, *r.ClockOut)
	return &m
}

// LiveMinutes is the elapsed time against now for an open session, and the
// final length for a closed one. The live value is display-only state and
// is never persisted.
func (r Record) LiveMinutes(now time.Time) int {
	end := now
	if r.ClockOut != nil {
		end = *r.ClockOut
	}
	return DurationMinutes(r.ClockIn, end)
}
