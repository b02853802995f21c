package kintai

import "time"

// JST is the fixed display offset (UTC+9). Stored instants are absolute;
// every date key and wall-clock rendering goes through this zone no matter
// where the process runs. There is no DST, so no tzdata lookup.
var JST = time.FixedZone("JST", 9*60*60)

type Date string

type Month string

func ToLocal(t time.Time) time.Time {
	return t.In(JST)
}

func NowLocal() time.Time {
	return time.Now().In(JST)
}

// LocalDateKey truncates an instant to the JST calendar day it falls on.
func LocalDateKey(t time.Time) Date {
	return Date(t.In(JST).Format("2006-01-02"))
}

func LocalMonthKey(t time.Time) Month {
	return Month(t.In(JST).Format("2006-01"))
}

func (d Date) Month() Month {
	if len(d) < 7 {
		return ""
	}
	return Month(d[:7])
}

func (d Date) Time() (time.Time, error) {
	return time.ParseInLocation("2006-01-02", string(d), JST)
}

func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation("2006-01-02", s, JST)
	if err != nil {
		return "", err
	}
	return LocalDateKey(t), nil
}

func ParseMonth(s string) (Month, error) {
	t, err := time.ParseInLocation("2006-01", s, JST)
	if err != nil {
		return "", err
	}
	return LocalMonthKey(t), nil
}
