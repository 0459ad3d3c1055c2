package query

import (
	"time"

	"venture-feed/internal/domain/entity"
)

// TimeRange is a listing window anchored at the start of the current UTC day.
type TimeRange string

const (
	RangeTodayFuture TimeRange = "today_future"
	Range7d          TimeRange = "7d"
	Range30d         TimeRange = "30d"
	Range90d         TimeRange = "90d"
	RangeAll         TimeRange = "all"
)

var rangeDays = map[TimeRange]int{
	Range7d:  7,
	Range30d: 30,
	Range90d: 90,
}

// ParseTimeRange returns def for an empty string and a validation error for
// an unknown bucket.
func ParseTimeRange(s string, def TimeRange) (TimeRange, error) {
	if s == "" {
		return def, nil
	}
	switch r := TimeRange(s); r {
	case RangeTodayFuture, Range7d, Range30d, Range90d, RangeAll:
		return r, nil
	}
	return "", &entity.ValidationError{
		Field:   "timeRange",
		Message: "timeRange must be one of today_future, 7d, 30d, 90d, all",
	}
}

// startOfDay truncates t to midnight UTC.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Since returns the lower bound of the window, or nil for RangeAll.
func (r TimeRange) Since(now time.Time) *time.Time {
	today := startOfDay(now)
	if r == RangeTodayFuture {
		return &today
	}
	days, ok := rangeDays[r]
	if !ok {
		return nil
	}
	from := today.AddDate(0, 0, -days)
	return &from
}
