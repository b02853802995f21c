package kintai_test

import (
	"testing"
	"time"

	"kintai/kintai"
)

func TestLocalDateKey_MidnightBoundary(t *testing.T) {
	// JST midnight is 15:00 UTC. Two instants 1ms apart straddling it must
	// land on different calendar days.
	before := time.Date(2025, 3, 21, 14, 59, 59, 999_000_000, time.UTC)
	after := before.Add(time.Millisecond)

	if got := kintai.LocalDateKey(before); got != "2025-03-21" {
		t.Fatalf("before midnight: got %q, want 2025-03-21", got)
	}
	if got := kintai.LocalDateKey(after); got != "2025-03-22" {
		t.Fatalf("after midnight: got %q, want 2025-03-22", got)
	}
}

func TestLocalDateKey_IgnoresSourceZone(t *testing.T) {
	// Same instant expressed in different zones keys identically.
	utc := time.Date(2025, 3, 22, 4, 46, 0, 0, time.UTC)
	ny := utc.In(time.FixedZone("EST", -5*60*60))

	if kintai.LocalDateKey(utc) != kintai.LocalDateKey(ny) {
		t.Fatalf("date key depends on source zone: %q vs %q",
			kintai.LocalDateKey(utc), kintai.LocalDateKey(ny))
	}
}

func TestLocalMonthKey(t *testing.T) {
	// 2025-03-31T15:30Z is already 2025-04-01 in JST.
	tm := time.Date(2025, 3, 31, 15, 30, 0, 0, time.UTC)
	if got := kintai.LocalMonthKey(tm); got != "2025-04" {
		t.Fatalf("got %q, want 2025-04", got)
	}
}

func TestDateMonth(t *testing.T) {
	if got := kintai.Date("2025-03-22").Month(); got != "2025-03" {
		t.Fatalf("got %q, want 2025-03", got)
	}
	if got := kintai.Date("bad").Month(); got != "" {
		t.Fatalf("got %q, want empty", got)
	}
}

func TestParseDate(t *testing.T) {
	d, err := kintai.ParseDate("2025-03-22")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != "2025-03-22" {
		t.Fatalf("got %q", d)
	}
	if _, err := kintai.ParseDate("03/22/2025"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestParseMonth(t *testing.T) {
	m, err := kintai.ParseMonth("2025-03")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m != "2025-03" {
		t.Fatalf("got %q", m)
	}
	if _, err := kintai.ParseMonth("2025/03"); err == nil {
		t.Fatal("expected parse error")
	}
}
