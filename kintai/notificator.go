package kintai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	ActionClockIn  = "clock-in"
	ActionClockOut = "clock-out"
)

// Event is the payload handed to the notifier on a committed clock-in/out.
// DurationMinutes is set only for clock-out.
type Event struct {
	Action          string
	At              time.Time
	DurationMinutes *int
}

type Notificator interface {
	Notify(ev Event) error
}

type NopNotificator struct{}

func (NopNotificator) Notify(Event) error { return nil }

type SlackConfig struct {
	WebhookURL      string `json:"slackWebhookUrl"`
	Channel         string `json:"slackChannel"`
	ClockInMessage  string `json:"slackClockInMessage"`
	ClockOutMessage string `json:"slackClockOutMessage"`
}

const (
	DefaultClockInMessage  = "🟢 出勤しました (%time%)"
	DefaultClockOutMessage = "🔴 退勤しました (%time%・%duration%)"
)

// withDefaults fills in template defaults for configs saved before the
// message fields existed.
func (c SlackConfig) withDefaults() SlackConfig {
	if c.ClockInMessage == "" {
		c.ClockInMessage = DefaultClockInMessage
	}
	if c.ClockOutMessage == "" {
		c.ClockOutMessage = DefaultClockOutMessage
	}
	return c
}

// SlackNotificator posts clock events to a Slack incoming webhook. The
// webhook settings are read from the repository on every event so config
// changes apply without a restart.
type SlackNotificator struct {
	repo   Repository
	client *http.Client
}

func NewSlackNotificator(repo Repository) *SlackNotificator {
	return &SlackNotificator{
		repo:   repo,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (n *SlackNotificator) Notify(ev Event) error {
	cfg, err := n.repo.GetSlackConfig()
	if err != nil {
		return err
	}
	if cfg.WebhookURL == "" {
		return nil
	}

	payload := map[string]string{"text": buildMessage(cfg, ev)}
	if ch := normalizeChannel(cfg.Channel); ch != "" {
		payload["channel"] = ch
	}
	bs, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := n.client.Post(cfg.WebhookURL, "application/json", bytes.NewReader(bs))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("slack webhook: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	return nil
}

func buildMessage(cfg SlackConfig, ev Event) string {
	cfg = cfg.withDefaults()
	tmpl := cfg.ClockInMessage
	if ev.Action == ActionClockOut {
		tmpl = cfg.ClockOutMessage
	}
	msg := strings.ReplaceAll(tmpl, "%time%", ToLocal(ev.At).Format("15:04"))
	return strings.ReplaceAll(msg, "%duration%", FormatMinutes(ev.DurationMinutes))
}

// normalizeChannel prefixes bare channel names with "#". Names already
// addressed to a channel or user pass through.
func normalizeChannel(ch string) string {
	if ch == "" || strings.HasPrefix(ch, "#") || strings.HasPrefix(ch, "@") {
		return ch
	}
	return "#" + ch
}
