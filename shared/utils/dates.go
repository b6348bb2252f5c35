package utils

import "time"

// DateLayout - формат дат в API (start_date, suspension_date).
const DateLayout = "2006-01-02"

// TruncateToDate отбрасывает время и возвращает полночь UTC того же календарного дня.
func TruncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateIn возвращает календарный день момента t в зоне loc как полночь UTC.
// nil loc означает UTC.
func DateIn(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate разбирает дату в формате DateLayout.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// DaysBetween возвращает число календарных дней от from до to.
func DaysBetween(from, to time.Time) int {
	return int(TruncateToDate(to).Sub(TruncateToDate(from)).Hours() / 24)
}
