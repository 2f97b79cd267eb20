package planning

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Week keys identify ISO-8601 weeks as "2025-W34" (Monday week start,
// Thursday-anchored week numbering, zero-padded week).

var weekKeyPattern = regexp.MustCompile(`^(\d{4})-W(\d{2})$`)

// WeekKey returns the ISO week key for the given date.
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// ParseWeekKey splits a week key into its ISO year and week number.
func ParseWeekKey(key string) (year, week int, err error) {
	m := weekKeyPattern.FindStringSubmatch(key)
	if m == nil {
		return 0, 0, fmt.Errorf("invalid week key %q", key)
	}
	year, _ = strconv.Atoi(m[1])
	week, _ = strconv.Atoi(m[2])
	if week < 1 || week > 53 {
		return 0, 0, fmt.Errorf("invalid week number in %q", key)
	}
	return year, week, nil
}

// WeekBounds returns the Monday and Sunday (UTC, midnight) of the week
// identified by key.
func WeekBounds(key string) (start, end time.Time, err error) {
	year, week, err := ParseWeekKey(key)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	// January 4th is always in ISO week 1.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	weekday := int(jan4.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	week1Monday := jan4.AddDate(0, 0, 1-weekday)

	start = week1Monday.AddDate(0, 0, (week-1)*7)
	end = start.AddDate(0, 0, 6)
	return start, end, nil
}

// WeekKeysInRange lists the ISO week keys touched by the inclusive date
// range. Returns nil when end precedes start.
func WeekKeysInRange(start, end time.Time) []string {
	if end.Before(start) {
		return nil
	}

	var keys []string
	seen := make(map[string]bool)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 7) {
		key := WeekKey(d)
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	// The stride can skip the final partial week.
	if key := WeekKey(end); !seen[key] {
		keys = append(keys, key)
	}
	return keys
}
