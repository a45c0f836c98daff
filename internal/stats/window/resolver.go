// Package window turns symbolic time-range selectors into concrete
// half-open [start, end) windows. Conventions: weeks start Monday,
// months start on day 1, all boundaries at midnight in the now's
// location.
package window

import (
	"time"

	statsdomain "github.com/haixin886/recharge-hub-system-sub001/internal/stats/domain"
)

// Resolve maps a selector to a TimeWindow relative to now. Pure
// function: same now and selector always yield the same window.
func Resolve(now time.Time, selector statsdomain.TimeRangeType, custom *statsdomain.CustomRange) (statsdomain.TimeWindow, error) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch selector {
	case statsdomain.RangeToday:
		return statsdomain.TimeWindow{Start: midnight, End: midnight.AddDate(0, 0, 1)}, nil

	case statsdomain.RangeWeek:
		// Monday is day 1; Sunday counts as day 7 of the running week,
		// so it rolls back six days rather than zero.
		offset := int(now.Weekday()) - 1
		if now.Weekday() == time.Sunday {
			offset = 6
		}
		start := midnight.AddDate(0, 0, -offset)
		return statsdomain.TimeWindow{Start: start, End: midnight.AddDate(0, 0, 1)}, nil

	case statsdomain.RangeMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return statsdomain.TimeWindow{Start: start, End: start.AddDate(0, 1, 0)}, nil

	case statsdomain.RangeLastMonth:
		thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return statsdomain.TimeWindow{Start: thisMonth.AddDate(0, -1, 0), End: thisMonth}, nil

	case statsdomain.RangeCustom:
		if custom == nil || custom.StartDate.IsZero() || custom.EndDate.IsZero() {
			return statsdomain.TimeWindow{}, statsdomain.ErrInvalidRange
		}
		if !custom.StartDate.Before(custom.EndDate) {
			return statsdomain.TimeWindow{}, statsdomain.ErrInvalidRange
		}
		return statsdomain.TimeWindow{Start: custom.StartDate, End: custom.EndDate}, nil
	}

	return statsdomain.TimeWindow{}, statsdomain.ErrInvalidRange
}

// maxDailySpan is the longest window still bucketed per day.
const maxDailySpan = 31 * 24 * time.Hour

// GranularityFor picks the trend bucket size: daily for windows up to
// 31 days, monthly beyond that.
func GranularityFor(w statsdomain.TimeWindow) statsdomain.Granularity {
	if w.Duration() <= maxDailySpan {
		return statsdomain.GranularityDay
	}
	return statsdomain.GranularityMonth
}
