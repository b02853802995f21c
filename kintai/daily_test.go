package kintai_test

import (
	"reflect"
	"testing"
	"time"

	"kintai/kintai"
)

func closedRecord(id string, clockIn time.Time, d time.Duration) kintai.Record {
	out := clockIn.Add(d)
	return kintai.Record{
		ID:       id,
		ClockIn:  clockIn,
		ClockOut: &out,
		Date:     kintai.LocalDateKey(clockIn),
	}
}

func openRecord(id string, clockIn time.Time) kintai.Record {
	return kintai.Record{
		ID:      id,
		ClockIn: clockIn,
		Date:    kintai.LocalDateKey(clockIn),
	}
}

func TestBuildDailyReport_Selection(t *testing.T) {
	// 2025-03-22 09:00 JST
	morning := time.Date(2025, 3, 22, 0, 0, 0, 0, time.UTC)
	day := kintai.LocalDateKey(morning)
	now := morning.Add(4 * time.Hour)

	records := []kintai.Record{
		closedRecord("today-1", morning, 2*time.Hour),
		closedRecord("yesterday", morning.Add(-24*time.Hour), time.Hour),
		openRecord("open-from-yesterday", morning.Add(-20*time.Hour)),
		closedRecord("today-2", morning.Add(3*time.Hour), 30*time.Minute),
	}

	report := kintai.BuildDailyReport(records, day, now)

	if len(report.Sessions) != 3 {
		t.Fatalf("got %d sessions, want 3", len(report.Sessions))
	}
	// Numbering follows clock-in ascending: the open overnight session is
	// the earliest.
	if report.Sessions[0].ID != "open-from-yesterday" || report.Sessions[0].Number != 1 {
		t.Fatalf("session 1 = %s (#%d), want open-from-yesterday #1",
			report.Sessions[0].ID, report.Sessions[0].Number)
	}
	if report.Sessions[1].ID != "today-1" || report.Sessions[2].ID != "today-2" {
		t.Fatalf("unexpected ordering: %s, %s", report.Sessions[1].ID, report.Sessions[2].ID)
	}
	if report.Sessions[0].Minutes != nil {
		t.Fatal("open session should have nil minutes")
	}

	// 120 + 30 closed, plus 24h live elapsed for the open session.
	want := 120 + 30 + 24*60
	if report.TotalMinutes != want {
		t.Fatalf("total = %d, want %d", report.TotalMinutes, want)
	}
}

func TestBuildDailyReport_ClosedYesterdayDoesNotLeak(t *testing.T) {
	morning := time.Date(2025, 3, 22, 0, 0, 0, 0, time.UTC)
	day := kintai.LocalDateKey(morning)

	records := []kintai.Record{
		closedRecord("yesterday", morning.Add(-24*time.Hour), time.Hour),
	}
	report := kintai.BuildDailyReport(records, day, morning)
	if len(report.Sessions) != 0 || report.TotalMinutes != 0 {
		t.Fatalf("closed session from another day leaked: %+v", report)
	}
}

func TestBuildDailyReport_MidnightSpanExcluded(t *testing.T) {
	// Starts 23:30 JST on the 21st, ends 00:30 JST on the 22nd: both
	// endpoints never land on the same day, so neither day lists it.
	start := time.Date(2025, 3, 21, 14, 30, 0, 0, time.UTC)
	records := []kintai.Record{closedRecord("overnight", start, time.Hour)}

	for _, day := range []kintai.Date{"2025-03-21", "2025-03-22"} {
		report := kintai.BuildDailyReport(records, day, start.Add(2*time.Hour))
		if len(report.Sessions) != 0 {
			t.Fatalf("day %s should not list the midnight-spanning session", day)
		}
	}
}

func TestBuildDailyReport_DeduplicatesByID(t *testing.T) {
	morning := time.Date(2025, 3, 22, 0, 0, 0, 0, time.UTC)
	day := kintai.LocalDateKey(morning)
	r := closedRecord("dup", morning, time.Hour)

	report := kintai.BuildDailyReport([]kintai.Record{r, r}, day, morning.Add(2*time.Hour))
	if len(report.Sessions) != 1 {
		t.Fatalf("got %d sessions, want 1", len(report.Sessions))
	}
	if report.TotalMinutes != 60 {
		t.Fatalf("total = %d, want 60", report.TotalMinutes)
	}
}

func TestBuildDailyReport_Idempotent(t *testing.T) {
	morning := time.Date(2025, 3, 22, 0, 0, 0, 0, time.UTC)
	day := kintai.LocalDateKey(morning)
	now := morning.Add(5 * time.Hour)
	records := []kintai.Record{
		closedRecord("a", morning, time.Hour),
		openRecord("b", morning.Add(2*time.Hour)),
	}

	first := kintai.BuildDailyReport(records, day, now)
	second := kintai.BuildDailyReport(records, day, now)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("aggregation not idempotent:\n%+v\n%+v", first, second)
	}
}
