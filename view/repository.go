package view

import (
	"sort"
	"time"

	"kintai/kintai"
)

// Repository is the aggregation query surface over the record store.
// Everything here is a pure read; results are recomputed per call.
type Repository interface {
	DailyView(day kintai.Date) (kintai.DailyReport, error)
	MonthlyView(month kintai.Month, contractMinutes int) (kintai.MonthlyStats, error)
	History() ([]MonthHistory, error)
	OpenSession() (kintai.Record, bool, error)
}

// MonthHistory is one month's sessions for the history table, newest first.
// TotalMinutes covers closed sessions only.
type MonthHistory struct {
	Month        kintai.Month
	Sessions     []kintai.Session
	TotalMinutes int
}

type repository struct {
	repo  kintai.Repository
	clock func() time.Time
}

func NewRepository(repo kintai.Repository) Repository {
	return &repository{repo: repo, clock: time.Now}
}

// DailyView builds the report for the given day, defaulting to today (JST)
// when day is empty.
func (r *repository) DailyView(day kintai.Date) (kintai.DailyReport, error) {
	records, err := r.repo.ListRecords()
	if err != nil {
		return kintai.DailyReport{}, err
	}
	now := r.clock()
	if day == "" {
		day = kintai.LocalDateKey(now)
	}
	return kintai.BuildDailyReport(records, day, now), nil
}

// MonthlyView builds the stats for the given month, defaulting to the
// current month (JST) when month is empty.
func (r *repository) MonthlyView(month kintai.Month, contractMinutes int) (kintai.MonthlyStats, error) {
	records, err := r.repo.ListRecords()
	if err != nil {
		return kintai.MonthlyStats{}, err
	}
	now := r.clock()
	if month == "" {
		month = kintai.LocalMonthKey(now)
	}
	return kintai.BuildMonthlyStats(records, month, contractMinutes, now), nil
}

func (r *repository) History() ([]MonthHistory, error) {
	records, err := r.repo.ListRecords()
	if err != nil {
		return nil, err
	}

	byMonth := make(map[kintai.Month][]kintai.Record)
	for _, rec := range records {
		m := kintai.LocalDateKey(rec.ClockIn).Month()
		byMonth[m] = append(byMonth[m], rec)
	}
	months := make([]kintai.Month, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i] > months[j] })

	history := make([]MonthHistory, 0, len(months))
	for _, m := range months {
		recs := byMonth[m]
		sort.Slice(recs, func(i, j int) bool { return recs[i].ClockIn.After(recs[j].ClockIn) })
		h := MonthHistory{Month: m}
		for i, rec := range recs {
			s := kintai.Session{Record: rec, Number: len(recs) - i, Minutes: rec.Minutes()}
			if s.Minutes != nil {
				h.TotalMinutes += *s.Minutes
			}
			h.Sessions = append(h.Sessions, s)
		}
		history = append(history, h)
	}
	return history, nil
}

func (r *repository) OpenSession() (kintai.Record, bool, error) {
	records, err := r.repo.ListRecords()
	if err != nil {
		return kintai.Record{}, false, err
	}
	rec, found := kintai.FindOpenSession(records)
	return rec, found, nil
}
