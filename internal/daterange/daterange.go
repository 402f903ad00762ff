// Package daterange resolves the symbolic date filters used by the
// reporting and listing endpoints into concrete bounds.
package daterange

import (
	"strings"
	"time"
)

// Supported filter kinds. Anything else resolves to an unbounded range.
const (
	KindToday     = "today"
	KindYesterday = "yesterday"
	KindWeek      = "week"
	KindMonth     = "month"
	KindYear      = "year"
	KindCustom    = "custom"
	KindAll       = "all"
)

// Range is a half-open-ended pair of bounds. A nil bound means unbounded on
// that side.
type Range struct {
	Start *time.Time
	End   *time.Time
}

const dateLayout = "2006-01-02"

// Resolve translates a filter kind into concrete bounds relative to now.
// Weeks start on Monday; on a Sunday the week began six days prior. Custom
// bounds that are missing or unparseable fall back to unbounded on that
// side rather than failing.
func Resolve(kind, customStart, customEnd string, now time.Time) Range {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case KindToday:
		return Range{Start: timePtr(startOfDay(now)), End: timePtr(endOfDay(now))}
	case KindYesterday:
		yesterday := now.AddDate(0, 0, -1)
		return Range{Start: timePtr(startOfDay(yesterday)), End: timePtr(endOfDay(yesterday))}
	case KindWeek:
		offset := int(now.Weekday()) - 1
		if now.Weekday() == time.Sunday {
			offset = 6
		}
		monday := startOfDay(now.AddDate(0, 0, -offset))
		return Range{Start: timePtr(monday), End: timePtr(endOfDay(now))}
	case KindMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return Range{Start: timePtr(first), End: timePtr(endOfDay(now))}
	case KindYear:
		first := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return Range{Start: timePtr(first), End: timePtr(endOfDay(now))}
	case KindCustom:
		return customRange(customStart, customEnd, now.Location())
	default:
		return Range{}
	}
}

func customRange(customStart, customEnd string, loc *time.Location) Range {
	var bounds Range
	if start, err := time.ParseInLocation(dateLayout, strings.TrimSpace(customStart), loc); err == nil {
		bounds.Start = timePtr(start)
	}
	if end, err := time.ParseInLocation(dateLayout, strings.TrimSpace(customEnd), loc); err == nil {
		bounds.End = timePtr(endOfDay(end))
	}
	return bounds
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

func timePtr(t time.Time) *time.Time {
	return &t
}
