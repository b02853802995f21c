package view

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"kintai/kintai"
)

// TUI is the live dashboard: current time, open-session elapsed, today's
// sessions and the monthly summary, refreshed on a one-second tick.
type TUI struct {
	tracker         *kintai.Tracker
	repo            Repository
	contractMinutes int
	logger          *slog.Logger

	app      *tview.Application
	clock    *tview.TextView
	status   *tview.TextView
	monthly  *tview.TextView
	sessions *tview.Table
	message  *tview.TextView
}

func NewTUI(tracker *kintai.Tracker, repo Repository, contractMinutes int, logger *slog.Logger) *TUI {
	return &TUI{
		tracker:         tracker,
		repo:            repo,
		contractMinutes: contractMinutes,
		logger:          logger,
	}
}

func (t *TUI) Run() error {
	t.app = tview.NewApplication()

	t.clock = tview.NewTextView().SetTextAlign(tview.AlignCenter)
	t.status = tview.NewTextView()
	t.status.SetBorder(true).SetTitle("現在の勤務状況")
	t.monthly = tview.NewTextView()
	t.monthly.SetBorder(true).SetTitle("今月の勤務サマリー")
	t.sessions = tview.NewTable().SetBorders(true)
	t.message = tview.NewTextView()

	top := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(t.status, 0, 1, false).
		AddItem(t.monthly, 0, 1, false)
	root := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(t.clock, 1, 0, false).
		AddItem(top, 9, 0, false).
		AddItem(t.sessions, 0, 1, true).
		AddItem(t.message, 1, 0, false).
		AddItem(tview.NewTextView().SetText("i: 出勤  o: 退勤  r: 更新  q: 終了"), 1, 0, false)

	t.app.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		switch ev.Rune() {
		case 'i':
			t.clockIn()
		case 'o':
			t.clockOut()
		case 'r':
			t.refresh()
		case 'q':
			t.app.Stop()
		}
		return ev
	})

	t.refresh()

	stop := make(chan struct{})
	go t.tick(stop)
	err := t.app.SetRoot(root, true).Run()
	close(stop)
	return err
}

// tick drives the live elapsed-time display. It only recomputes derived
// view state; nothing it does is persisted.
func (t *TUI) tick(stop <-chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			t.app.QueueUpdateDraw(t.refresh)
		case <-stop:
			return
		}
	}
}

func (t *TUI) clockIn() {
	r, err := t.tracker.ClockIn()
	if err != nil {
		t.showError(err)
		return
	}
	t.message.SetText(fmt.Sprintf("出勤しました (%s)", kintai.ToLocal(r.ClockIn).Format("15:04")))
	t.refresh()
}

func (t *TUI) clockOut() {
	open, found, err := t.tracker.Status()
	if err != nil {
		t.showError(err)
		return
	}
	if !found {
		t.message.SetText("勤務していません")
		return
	}
	r, err := t.tracker.ClockOut(open.ID)
	if err != nil {
		t.showError(err)
		return
	}
	t.message.SetText(fmt.Sprintf("退勤しました (勤務時間 %s)", kintai.FormatMinutes(r.Minutes())))
	t.refresh()
}

func (t *TUI) refresh() {
	now := kintai.NowLocal()
	t.clock.SetText(now.Format("2006-01-02 (Mon) 15:04:05"))

	open, found, err := t.repo.OpenSession()
	if err != nil {
		t.showError(err)
		return
	}
	if found {
		live := open.LiveMinutes(now)
		t.status.SetText(fmt.Sprintf("\n 出勤時間: %s\n 経過時間: %s",
			kintai.ToLocal(open.ClockIn).Format("15:04"),
			kintai.FormatMinutes(&live)))
	} else {
		t.status.SetText("\n 勤務していません")
	}

	daily, err := t.repo.DailyView("")
	if err != nil {
		t.showError(err)
		return
	}
	t.renderSessions(daily, now)

	stats, err := t.repo.MonthlyView("", t.contractMinutes)
	if err != nil {
		t.showError(err)
		return
	}
	t.monthly.SetText(fmt.Sprintf("\n 合計時間: %s\n 契約時間: %s\n 残り時間: %s\n 勤務日数: %d日\n 1日平均: %s",
		formatMinutesValue(stats.TotalMinutes),
		formatMinutesValue(stats.ContractMinutes),
		formatMinutesValue(stats.RemainingMinutes),
		stats.DaysWorked,
		formatMinutesValue(stats.AverageMinutesPerDay)))
}

func (t *TUI) renderSessions(daily kintai.DailyReport, now time.Time) {
	t.sessions.Clear()
	for col, h := range []string{"#", "出勤", "退勤", "勤務時間"} {
		t.sessions.SetCell(0, col, tview.NewTableCell(h).SetAlign(tview.AlignCenter).SetSelectable(false))
	}
	row := 1
	for i := len(daily.Sessions) - 1; i >= 0; i-- {
		s := daily.Sessions[i]
		out := "勤務中"
		minutes := s.Minutes
		if !s.Open() {
			out = kintai.ToLocal(*s.ClockOut).Format("15:04")
		} else {
			live := s.LiveMinutes(now)
			minutes = &live
		}
		t.sessions.SetCell(row, 0, tview.NewTableCell(fmt.Sprintf("%d", s.Number)).SetAlign(tview.AlignCenter))
		t.sessions.SetCell(row, 1, tview.NewTableCell(kintai.ToLocal(s.ClockIn).Format("15:04")).SetAlign(tview.AlignCenter))
		t.sessions.SetCell(row, 2, tview.NewTableCell(out).SetAlign(tview.AlignCenter))
		t.sessions.SetCell(row, 3, tview.NewTableCell(kintai.FormatMinutes(minutes)).SetAlign(tview.AlignCenter))
		row++
	}
	total := daily.TotalMinutes
	t.sessions.SetCell(row, 2, tview.NewTableCell("合計").SetAlign(tview.AlignCenter).SetSelectable(false))
	t.sessions.SetCell(row, 3, tview.NewTableCell(kintai.FormatMinutes(&total)).SetAlign(tview.AlignCenter).SetSelectable(false))
}

func (t *TUI) showError(err error) {
	t.logger.Error("tui", slog.String("error", err.Error()))
	t.message.SetText(fmt.Sprintf("エラー: %v", err))
}
