package view

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"kintai/kintai"
)

// RenderDaily prints one day's sessions newest-first. The open session shows
// its live elapsed time with a working marker.
func RenderDaily(w io.Writer, report kintai.DailyReport, now time.Time) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(fmt.Sprintf("%s の勤務記録", report.Date))
	t.AppendHeader(table.Row{"#", "出勤", "退勤", "勤務時間"})

	for i := len(report.Sessions) - 1; i >= 0; i-- {
		s := report.Sessions[i]
		if s.Open() {
			live := s.LiveMinutes(now)
			t.AppendRow(table.Row{
				s.Number,
				timeToString(&s.ClockIn),
				"勤務中",
				kintai.FormatMinutes(&live),
			})
			continue
		}
		t.AppendRow(table.Row{
			s.Number,
			timeToString(&s.ClockIn),
			timeToString(s.ClockOut),
			kintai.FormatMinutes(s.Minutes),
		})
	}
	total := report.TotalMinutes
	t.AppendFooter(table.Row{"", "", "合計", kintai.FormatMinutes(&total)})
	t.SetStyle(table.StyleRounded)
	t.Render()
}

func RenderMonthly(w io.Writer, stats kintai.MonthlyStats) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(fmt.Sprintf("%s の勤務サマリー", stats.Month))
	t.AppendRows([]table.Row{
		{"合計時間", formatMinutesValue(stats.TotalMinutes)},
		{"契約時間", formatMinutesValue(stats.ContractMinutes)},
		{"残り時間", formatMinutesValue(stats.RemainingMinutes)},
		{"勤務日数", fmt.Sprintf("%d日", stats.DaysWorked)},
		{"1日平均", formatMinutesValue(stats.AverageMinutesPerDay)},
	})
	t.SetStyle(table.StyleRounded)
	t.Render()
}

func RenderHistory(w io.Writer, history []MonthHistory) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"月", "日付", "出勤", "退勤", "勤務時間", "月合計"})

	grandTotal := 0
	for _, h := range history {
		grandTotal += h.TotalMinutes
		monthTotal := h.TotalMinutes
		for _, s := range h.Sessions {
			t.AppendRow(table.Row{
				string(h.Month),
				string(s.Date),
				timeToString(&s.ClockIn),
				timeToString(s.ClockOut),
				kintai.FormatMinutes(s.Minutes),
				formatMinutesValue(monthTotal),
			})
		}
	}
	t.AppendFooter(table.Row{"", "", "", "", "総勤務時間", formatMinutesValue(grandTotal)})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AutoMerge: true},
		{Number: 6, AutoMerge: true},
	})
	t.SetStyle(table.StyleRounded)
	t.Render()
}

func formatMinutesValue(m int) string {
	return kintai.FormatMinutes(&m)
}

func timeToString(t *time.Time) string {
	if t == nil {
		return "--:--"
	}
	return kintai.ToLocal(*t).Format("15:04")
}
