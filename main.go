package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alexflint/go-filemutex"
	"github.com/tidwall/buntdb"
	"github.com/urfave/cli/v2"

	"kintai/kintai"
	"kintai/view"
)

// 月間の契約時間（時間）
const defaultContractHours = 128

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.App{
		Name:  "kintai",
		Usage: "勤怠管理システム",
		Commands: []*cli.Command{
			inCommand,
			outCommand,
			statusCommand,
			todayCommand,
			monthCommand,
			historyCommand,
			tuiCommand,
			slackCommand,
		},
	}
	return app.Run(os.Args)
}

var inCommand = &cli.Command{
	Name:  "in",
	Usage: "出勤する",
	Action: func(c *cli.Context) error {
		env, err := newEnv()
		if err != nil {
			return err
		}
		defer env.close()

		r, err := env.tracker.ClockIn()
		if err != nil {
			return err
		}
		fmt.Printf("出勤しました (%s)\n", kintai.ToLocal(r.ClockIn).Format("15:04"))
		return nil
	},
}

var outCommand = &cli.Command{
	Name:  "out",
	Usage: "退勤する",
	Action: func(c *cli.Context) error {
		env, err := newEnv()
		if err != nil {
			return err
		}
		defer env.close()

		open, found, err := env.tracker.Status()
		if err != nil {
			return err
		}
		if !found {
			return errors.New("勤務していません")
		}
		r, err := env.tracker.ClockOut(open.ID)
		if err != nil {
			return err
		}
		fmt.Printf("退勤しました (%s・勤務時間 %s)\n",
			kintai.ToLocal(*r.ClockOut).Format("15:04"),
			kintai.FormatMinutes(r.Minutes()))
		return nil
	},
}

var statusCommand = &cli.Command{
	Name:  "status",
	Usage: "現在の勤務状況を表示",
	Action: func(c *cli.Context) error {
		env, err := newEnv()
		if err != nil {
			return err
		}
		defer env.close()

		open, found, err := env.tracker.Status()
		if err != nil {
			return err
		}
		if !found {
			fmt.Println("勤務していません")
			return nil
		}
		now := kintai.NowLocal()
		live := open.LiveMinutes(now)
		fmt.Printf("勤務中 (出勤 %s・経過 %s)\n",
			kintai.ToLocal(open.ClockIn).Format("15:04"),
			kintai.FormatMinutes(&live))
		return nil
	},
}

var todayCommand = &cli.Command{
	Name:  "today",
	Usage: "1日の勤務記録を表示",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "date", Usage: "対象日 (YYYY-MM-DD)"},
	},
	Action: func(c *cli.Context) error {
		env, err := newEnv()
		if err != nil {
			return err
		}
		defer env.close()

		var day kintai.Date
		if s := c.String("date"); s != "" {
			day, err = kintai.ParseDate(s)
			if err != nil {
				return fmt.Errorf("日付の指定が不正です ex: 2025-03-22")
			}
		}
		report, err := env.views.DailyView(day)
		if err != nil {
			return err
		}
		view.RenderDaily(os.Stdout, report, kintai.NowLocal())
		return nil
	},
}

var monthCommand = &cli.Command{
	Name:  "month",
	Usage: "月の勤務サマリーを表示",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "month", Usage: "対象月 (YYYY-MM)"},
		&cli.IntFlag{Name: "contract-hours", Value: defaultContractHours, Usage: "月間の契約時間"},
	},
	Action: func(c *cli.Context) error {
		env, err := newEnv()
		if err != nil {
			return err
		}
		defer env.close()

		var month kintai.Month
		if s := c.String("month"); s != "" {
			month, err = kintai.ParseMonth(s)
			if err != nil {
				return fmt.Errorf("月の指定が不正です ex: 2025-03")
			}
		}
		stats, err := env.views.MonthlyView(month, c.Int("contract-hours")*60)
		if err != nil {
			return err
		}
		view.RenderMonthly(os.Stdout, stats)
		return nil
	},
}

var historyCommand = &cli.Command{
	Name:  "history",
	Usage: "全期間の勤務記録を月ごとに表示",
	Action: func(c *cli.Context) error {
		env, err := newEnv()
		if err != nil {
			return err
		}
		defer env.close()

		history, err := env.views.History()
		if err != nil {
			return err
		}
		view.RenderHistory(os.Stdout, history)
		return nil
	},
}

var tuiCommand = &cli.Command{
	Name:  "tui",
	Usage: "ライブダッシュボードを表示",
	Flags: []cli.Flag{
		&cli.IntFlag{Name: "contract-hours", Value: defaultContractHours, Usage: "月間の契約時間"},
	},
	Action: func(c *cli.Context) error {
		env, err := newEnv()
		if err != nil {
			return err
		}
		defer env.close()

		t := view.NewTUI(env.tracker, env.views, c.Int("contract-hours")*60, env.logger)
		return t.Run()
	},
}

var slackCommand = &cli.Command{
	Name:  "slack",
	Usage: "Slack通知の設定を表示・更新",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "webhook-url"},
		&cli.StringFlag{Name: "channel"},
		&cli.StringFlag{Name: "in-message", Usage: "出勤メッセージ (%time% が時刻に置換される)"},
		&cli.StringFlag{Name: "out-message", Usage: "退勤メッセージ (%time%, %duration% が置換される)"},
	},
	Action: func(c *cli.Context) error {
		env, err := newEnv()
		if err != nil {
			return err
		}
		defer env.close()

		cfg, err := env.repo.GetSlackConfig()
		if err != nil {
			return err
		}
		if c.IsSet("webhook-url") {
			cfg.WebhookURL = c.String("webhook-url")
		}
		if c.IsSet("channel") {
			cfg.Channel = c.String("channel")
		}
		if c.IsSet("in-message") {
			cfg.ClockInMessage = c.String("in-message")
		}
		if c.IsSet("out-message") {
			cfg.ClockOutMessage = c.String("out-message")
		}
		if c.NumFlags() > 0 {
			if err := env.repo.SaveSlackConfig(cfg); err != nil {
				return err
			}
		}
		fmt.Printf("webhook-url: %s\nchannel: %s\nin-message: %s\nout-message: %s\n",
			cfg.WebhookURL, cfg.Channel, cfg.ClockInMessage, cfg.ClockOutMessage)
		return nil
	},
}

type env struct {
	db      *buntdb.DB
	repo    kintai.Repository
	tracker *kintai.Tracker
	views   view.Repository
	logger  *slog.Logger
}

func newEnv() (*env, error) {
	db, err := initDB()
	if err != nil {
		return nil, err
	}
	repo, err := kintai.NewRepository(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	logger, err := newLogger()
	if err != nil {
		db.Close()
		return nil, err
	}
	fm, err := newFileMutex()
	if err != nil {
		db.Close()
		return nil, err
	}
	tracker := kintai.NewTracker(repo, fm, kintai.NewSlackNotificator(repo), logger)
	return &env{
		db:      db,
		repo:    repo,
		tracker: tracker,
		views:   view.NewRepository(repo),
		logger:  logger,
	}, nil
}

func (e *env) close() {
	e.db.Close()
}

func initDB() (*buntdb.DB, error) {
	dir, err := getKintaiDir()
	if err != nil {
		return nil, err
	}
	return buntdb.Open(filepath.Join(dir, "kintai.db"))
}

func newLogger() (*slog.Logger, error) {
	dir, err := getKintaiDir()
	if err != nil {
		return nil, err
	}
	logFile, err := os.OpenFile(filepath.Join(dir, "log.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, err
	}
	return slog.New(
		slog.NewJSONHandler(logFile, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}),
	), nil
}

func newFileMutex() (*filemutex.FileMutex, error) {
	dir, err := getKintaiDir()
	if err != nil {
		return nil, err
	}
	return filemutex.New(filepath.Join(dir, "kintai.lock"))
}

func getKintaiDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".kintai")
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.Mkdir(dir, 0755); err != nil {
			return "", err
		}
	}
	return dir, nil
}
