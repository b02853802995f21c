package view_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"kintai/kintai"
	"kintai/view"
)

func TestRenderDaily(t *testing.T) {
	start := time.Date(2025, 3, 22, 9, 0, 0, 0, kintai.JST)
	now := start.Add(5 * time.Hour)
	records := []kintai.Record{
		closedRecord("a", start, 125*time.Minute),
		{ID: "b", ClockIn: start.Add(3 * time.Hour), Date: kintai.LocalDateKey(start)},
	}
	report := kintai.BuildDailyReport(records, "2025-03-22", now)

	var buf bytes.Buffer
	view.RenderDaily(&buf, report, now)
	out := buf.String()

	for _, want := range []string{"09:00", "02:05", "勤務中", "02:00", "合計", "04:05"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderMonthly(t *testing.T) {
	stats := kintai.MonthlyStats{
		Month:                "2025-03",
		TotalMinutes:         375,
		ContractMinutes:      7680,
		RemainingMinutes:     7305,
		DaysWorked:           2,
		AverageMinutesPerDay: 187,
	}

	var buf bytes.Buffer
	view.RenderMonthly(&buf, stats)
	out := buf.String()

	for _, want := range []string{"06:15", "128:00", "121:45", "2日", "03:07"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderHistory(t *testing.T) {
	march := time.Date(2025, 3, 10, 9, 0, 0, 0, kintai.JST)
	history := []view.MonthHistory{
		{
			Month: "2025-03",
			Sessions: []kintai.Session{
				{Record: closedRecord("a", march, 2*time.Hour), Number: 1, Minutes: intPtr(120)},
			},
			TotalMinutes: 120,
		},
	}

	var buf bytes.Buffer
	view.RenderHistory(&buf, history)
	out := buf.String()

	for _, want := range []string{"2025-03", "2025-03-10", "02:00", "総勤務時間"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func intPtr(n int) *int { return &n }
